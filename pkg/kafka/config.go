package kafka

import "time"

// Config holds Kafka configuration
type Config struct {
	Brokers       []string
	ConsumerGroup string
	ClientID      string

	// Producer settings
	BatchSize    int
	BatchTimeout time.Duration
	RequiredAcks int // 0: no ack, 1: leader ack, -1: all replicas ack

	// Consumer settings
	MinBytes      int
	MaxBytes      int
	MaxWait       time.Duration
	CommitTimeout time.Duration

	// HandlerAttempts is how often a failing handler runs before its message is skipped
	HandlerAttempts int
	RetryBackoff    time.Duration
}

// DefaultConfig targets a local single broker
func DefaultConfig() *Config {
	return &Config{
		Brokers:       []string{"localhost:9092"},
		ConsumerGroup: "aips-scheduler",
		ClientID:      "aips-scheduler",

		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: -1,

		MinBytes:      1,
		MaxBytes:      10e6,
		MaxWait:       500 * time.Millisecond,
		CommitTimeout: 5 * time.Second,

		HandlerAttempts: 3,
		RetryBackoff:    500 * time.Millisecond,
	}
}

// Topics contains the scheduler Kafka topic names
var Topics = struct {
	// Schedule, matrix and scenario events published by the scheduler
	SchedulesEvents string
	// Shop-floor actuals consumed by the scheduler
	ProductionFeedback string
}{
	SchedulesEvents:    "aips.schedules.events",
	ProductionFeedback: "aips.production.feedback",
}
