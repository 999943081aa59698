package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all scheduler metrics
type Metrics struct {
	serviceName string
	registry    *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Kafka metrics
	KafkaEventsPublished *prometheus.CounterVec
	KafkaEventsConsumed  *prometheus.CounterVec
	KafkaPublishDuration *prometheus.HistogramVec

	// MongoDB metrics
	MongoDBOperations        *prometheus.CounterVec
	MongoDBOperationDuration *prometheus.HistogramVec

	// Temporal metrics
	WorkflowsStarted *prometheus.CounterVec

	// Scheduling metrics
	ScheduleRuns        *prometheus.CounterVec
	SequencingDuration  *prometheus.HistogramVec
	BlocksScheduled     *prometheus.CounterVec
	OrdersUnscheduled   *prometheus.CounterVec
	ChangeoverMinutes   *prometheus.HistogramVec
	ScheduleUtilization *prometheus.GaugeVec
	MatrixCacheLookups  *prometheus.CounterVec
	MatrixBuildDuration prometheus.Histogram
	FeedbackRecorded    *prometheus.CounterVec

	// Circuit breaker metrics
	CircuitBreakerState *prometheus.GaugeVec
	CircuitBreakerTrips *prometheus.CounterVec
}

// Config holds metrics configuration
type Config struct {
	ServiceName string
	Namespace   string
}

// DefaultConfig returns default metrics configuration
func DefaultConfig(serviceName string) *Config {
	return &Config{
		ServiceName: serviceName,
		Namespace:   "aips",
	}
}

// New creates a new Metrics instance on its own registry
func New(config *Config) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	ns := config.Namespace
	m := &Metrics{
		serviceName: config.ServiceName,
		registry:    registry,
	}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: ns, Name: "http_requests_total", Help: "Total number of HTTP requests"},
		[]string{"service", "method", "path", "status"},
	)
	m.HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"service", "method", "path"},
	)
	m.HTTPRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace:   ns,
			Name:        "http_requests_in_flight",
			Help:        "Number of HTTP requests currently being processed",
			ConstLabels: prometheus.Labels{"service": config.ServiceName},
		},
	)

	m.KafkaEventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: ns, Name: "kafka_events_published_total", Help: "Total number of Kafka events published"},
		[]string{"service", "topic", "event_type", "status"},
	)
	m.KafkaEventsConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: ns, Name: "kafka_events_consumed_total", Help: "Total number of Kafka events consumed"},
		[]string{"service", "topic", "event_type", "status"},
	)
	m.KafkaPublishDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "kafka_publish_duration_seconds",
			Help:      "Kafka publish duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"service", "topic"},
	)

	m.MongoDBOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: ns, Name: "mongodb_operations_total", Help: "Total number of MongoDB operations"},
		[]string{"service", "collection", "operation", "status"},
	)
	m.MongoDBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "mongodb_operation_duration_seconds",
			Help:      "MongoDB operation duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"service", "collection", "operation"},
	)

	m.WorkflowsStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: ns, Name: "temporal_workflows_started_total", Help: "Total number of Temporal workflows started"},
		[]string{"service", "workflow_type"},
	)

	m.ScheduleRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: ns, Name: "schedule_runs_total", Help: "Total number of scheduling runs"},
		[]string{"service", "strategy", "status"},
	)
	m.SequencingDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "sequencing_duration_seconds",
			Help:      "Time spent assigning and sequencing orders",
			Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"service", "strategy"},
	)
	m.BlocksScheduled = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: ns, Name: "schedule_blocks_total", Help: "Total number of schedule blocks produced"},
		[]string{"service", "line"},
	)
	m.OrdersUnscheduled = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: ns, Name: "orders_unscheduled_total", Help: "Total number of orders left unscheduled"},
		[]string{"service", "reason"},
	)
	m.ChangeoverMinutes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "changeover_minutes",
			Help:      "Planned changeover minutes per block",
			Buckets:   []float64{5, 10, 15, 20, 30, 45, 60, 90, 120},
		},
		[]string{"service", "complexity"},
	)
	m.ScheduleUtilization = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Namespace: ns, Name: "line_utilization_percent", Help: "Planned utilization of the last generated schedule"},
		[]string{"service", "line"},
	)
	m.MatrixCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: ns, Name: "matrix_cache_lookups_total", Help: "Changeover matrix cache lookups"},
		[]string{"service", "result"},
	)
	m.MatrixBuildDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace:   ns,
			Name:        "matrix_build_duration_seconds",
			Help:        "Changeover matrix build duration in seconds",
			Buckets:     []float64{.0005, .001, .005, .01, .05, .1, .5},
			ConstLabels: prometheus.Labels{"service": config.ServiceName},
		},
	)
	m.FeedbackRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: ns, Name: "feedback_recorded_total", Help: "Shop floor actuals recorded"},
		[]string{"service", "kind", "source"},
	)

	m.CircuitBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Namespace: ns, Name: "circuit_breaker_state", Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)"},
		[]string{"service", "name"},
	)
	m.CircuitBreakerTrips = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: ns, Name: "circuit_breaker_trips_total", Help: "Total number of circuit breaker trips"},
		[]string{"service", "name"},
	)

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.KafkaEventsPublished,
		m.KafkaEventsConsumed,
		m.KafkaPublishDuration,
		m.MongoDBOperations,
		m.MongoDBOperationDuration,
		m.WorkflowsStarted,
		m.ScheduleRuns,
		m.SequencingDuration,
		m.BlocksScheduled,
		m.OrdersUnscheduled,
		m.ChangeoverMinutes,
		m.ScheduleUtilization,
		m.MatrixCacheLookups,
		m.MatrixBuildDuration,
		m.FeedbackRecorded,
		m.CircuitBreakerState,
		m.CircuitBreakerTrips,
	)

	return m
}

// Handler returns an HTTP handler for the metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Registry returns the prometheus registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func statusLabel(success bool) string {
	if success {
		return "success"
	}
	return "error"
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(duration.Seconds())
}

// RecordKafkaPublish records a Kafka publish
func (m *Metrics) RecordKafkaPublish(topic, eventType string, success bool, duration time.Duration) {
	m.KafkaEventsPublished.WithLabelValues(m.serviceName, topic, eventType, statusLabel(success)).Inc()
	m.KafkaPublishDuration.WithLabelValues(m.serviceName, topic).Observe(duration.Seconds())
}

// RecordKafkaConsume records a consumed Kafka message
func (m *Metrics) RecordKafkaConsume(topic, eventType string, success bool) {
	m.KafkaEventsConsumed.WithLabelValues(m.serviceName, topic, eventType, statusLabel(success)).Inc()
}

// RecordMongoDBOperation records a MongoDB operation
func (m *Metrics) RecordMongoDBOperation(collection, operation string, success bool, duration time.Duration) {
	m.MongoDBOperations.WithLabelValues(m.serviceName, collection, operation, statusLabel(success)).Inc()
	m.MongoDBOperationDuration.WithLabelValues(m.serviceName, collection, operation).Observe(duration.Seconds())
}

// RecordWorkflowStarted records a workflow start
func (m *Metrics) RecordWorkflowStarted(workflowType string) {
	m.WorkflowsStarted.WithLabelValues(m.serviceName, workflowType).Inc()
}

// RecordScheduleRun records the outcome and sequencing time of a scheduling run
func (m *Metrics) RecordScheduleRun(strategy string, success bool, duration time.Duration) {
	m.ScheduleRuns.WithLabelValues(m.serviceName, strategy, statusLabel(success)).Inc()
	m.SequencingDuration.WithLabelValues(m.serviceName, strategy).Observe(duration.Seconds())
}

// RecordBlock records a produced block and its changeover
func (m *Metrics) RecordBlock(lineID, complexity string, changeoverMinutes int) {
	m.BlocksScheduled.WithLabelValues(m.serviceName, lineID).Inc()
	if changeoverMinutes > 0 {
		m.ChangeoverMinutes.WithLabelValues(m.serviceName, complexity).Observe(float64(changeoverMinutes))
	}
}

// RecordUnscheduled records an order left out of a schedule
func (m *Metrics) RecordUnscheduled(reason string) {
	m.OrdersUnscheduled.WithLabelValues(m.serviceName, reason).Inc()
}

// SetLineUtilization sets the planned utilization of a line
func (m *Metrics) SetLineUtilization(lineID string, percent float64) {
	m.ScheduleUtilization.WithLabelValues(m.serviceName, lineID).Set(percent)
}

// RecordMatrixLookup records a matrix cache hit or miss
func (m *Metrics) RecordMatrixLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.MatrixCacheLookups.WithLabelValues(m.serviceName, result).Inc()
}

// RecordMatrixBuild records the duration of a matrix build
func (m *Metrics) RecordMatrixBuild(duration time.Duration) {
	m.MatrixBuildDuration.Observe(duration.Seconds())
}

// RecordFeedback records a stored actual, kind is changeover or production
func (m *Metrics) RecordFeedback(kind, source string) {
	m.FeedbackRecorded.WithLabelValues(m.serviceName, kind, source).Inc()
}

// SetCircuitBreakerState sets the circuit breaker state
func (m *Metrics) SetCircuitBreakerState(name string, state int) {
	m.CircuitBreakerState.WithLabelValues(m.serviceName, name).Set(float64(state))
}

// RecordCircuitBreakerTrip records a circuit breaker trip
func (m *Metrics) RecordCircuitBreakerTrip(name string) {
	m.CircuitBreakerTrips.WithLabelValues(m.serviceName, name).Inc()
}
