package workflows

import "time"

// Activity and workflow timeout defaults
const (
	DefaultActivityTimeout time.Duration = 5 * time.Minute
)

// Retry policy defaults
const (
	DefaultRetryInitialInterval    time.Duration = time.Second
	DefaultRetryMaxInterval        time.Duration = time.Minute
	DefaultRetryBackoffCoefficient float64       = 2.0
	DefaultMaxRetryAttempts        int32         = 3
)

// Scenario workflow configuration
const (
	// ScenarioWorkflowTimeout is the maximum duration of a what-if comparison
	ScenarioWorkflowTimeout time.Duration = 30 * time.Minute

	// ScenarioActivityTimeout bounds a single sequencing run
	ScenarioActivityTimeout time.Duration = 2 * time.Minute

	// RunScenarioActivity is the registered name of the scenario activity
	RunScenarioActivity = "RunScenario"
)

// Error types that are never retried
const (
	ValidationErrorType = "ValidationError"
	NotFoundErrorType   = "NotFoundError"
)
