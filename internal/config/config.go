package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dallyp22/Scheduler-VS/internal/workflows"
	"github.com/dallyp22/Scheduler-VS/pkg/kafka"
	"github.com/dallyp22/Scheduler-VS/pkg/mongodb"
	"github.com/dallyp22/Scheduler-VS/pkg/temporal"
)

// Config holds the scheduler configuration for the api and worker binaries
type Config struct {
	ServiceName string
	ServerAddr  string
	Environment string

	MongoDB  *mongodb.Config
	Kafka    *kafka.Config
	Temporal *temporal.Config

	KafkaEnabled    bool
	TemporalEnabled bool
	TracingEnabled  bool
	OTLPEndpoint    string

	// ScheduleWindow is the default window length when a request gives only a start
	ScheduleWindow time.Duration
	// VarianceSeed seeds the changeover variance model when set
	VarianceSeed *int64
	// ActualsSeed enables simulated shop-floor actuals on completed blocks
	ActualsSeed *int64
	// FixturePath points at a YAML plant fixture used to seed an empty registry
	FixturePath string

	CORSOrigins []string
}

// Load reads configuration from the environment
func Load(serviceName string) *Config {
	return &Config{
		ServiceName: serviceName,
		ServerAddr:  getEnv("SERVER_ADDR", ":8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		MongoDB: &mongodb.Config{
			URI:            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			AppName:        serviceName,
			Database:       getEnv("MONGODB_DATABASE", "aips_scheduler"),
			ConnectTimeout: 10 * time.Second,
			MaxPoolSize:    100,
			MinPoolSize:    5,
		},
		Kafka: &kafka.Config{
			Brokers:       splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
			ConsumerGroup: serviceName,
			ClientID:      serviceName,
			BatchSize:     100,
			BatchTimeout:  10 * time.Millisecond,
			RequiredAcks:  -1,
			MinBytes:      1,
			MaxBytes:      10e6,
			MaxWait:       500 * time.Millisecond,
			CommitTimeout: 5 * time.Second,

			HandlerAttempts: 3,
			RetryBackoff:    500 * time.Millisecond,
		},
		Temporal: &temporal.Config{
			HostPort:        getEnv("TEMPORAL_HOST", "localhost:7233"),
			Namespace:       getEnv("TEMPORAL_NAMESPACE", "default"),
			Identity:        serviceName,
			WorkflowTimeout: workflows.ScenarioWorkflowTimeout,
		},
		KafkaEnabled:    getEnvBool("KAFKA_ENABLED", true),
		TemporalEnabled: getEnvBool("TEMPORAL_ENABLED", true),
		TracingEnabled:  getEnvBool("TRACING_ENABLED", true),
		OTLPEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		ScheduleWindow:  parseDuration(getEnv("SCHEDULE_WINDOW", "24h"), 24*time.Hour),
		VarianceSeed:    parseSeed(os.Getenv("MATRIX_VARIANCE_SEED")),
		ActualsSeed:     parseSeed(os.Getenv("ACTUALS_SIMULATION_SEED")),
		FixturePath:     os.Getenv("FIXTURE_PATH"),
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseSeed(s string) *int64 {
	if s == "" {
		return nil
	}
	seed, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &seed
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
