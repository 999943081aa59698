package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// RetryPolicyType defines different retry policy configurations
type RetryPolicyType int

const (
	// StandardRetry for normal operations (3 attempts, 1s-1m backoff)
	StandardRetry RetryPolicyType = iota
	// ConservativeRetry for expensive operations (2 attempts, 2s-2m backoff)
	ConservativeRetry
	// NoRetry for operations that should run once
	NoRetry
)

// GetRetryPolicy returns a configured retry policy based on type
func GetRetryPolicy(policyType RetryPolicyType) *temporal.RetryPolicy {
	switch policyType {
	case ConservativeRetry:
		return &temporal.RetryPolicy{
			InitialInterval:        2 * DefaultRetryInitialInterval,
			BackoffCoefficient:     DefaultRetryBackoffCoefficient,
			MaximumInterval:        2 * DefaultRetryMaxInterval,
			MaximumAttempts:        2,
			NonRetryableErrorTypes: []string{ValidationErrorType, NotFoundErrorType},
		}

	case NoRetry:
		return &temporal.RetryPolicy{
			MaximumAttempts: 1,
		}

	case StandardRetry:
		fallthrough
	default:
		return &temporal.RetryPolicy{
			InitialInterval:        DefaultRetryInitialInterval,
			BackoffCoefficient:     DefaultRetryBackoffCoefficient,
			MaximumInterval:        DefaultRetryMaxInterval,
			MaximumAttempts:        DefaultMaxRetryAttempts,
			NonRetryableErrorTypes: []string{ValidationErrorType, NotFoundErrorType},
		}
	}
}

// ActivityOptionsConfig defines configuration for activity options
type ActivityOptionsConfig struct {
	StartToCloseTimeout time.Duration
	RetryPolicy         RetryPolicyType
	HeartbeatTimeout    time.Duration
}

// GetActivityOptions returns configured activity options
func GetActivityOptions(config ActivityOptionsConfig) workflow.ActivityOptions {
	if config.StartToCloseTimeout == 0 {
		config.StartToCloseTimeout = DefaultActivityTimeout
	}

	opts := workflow.ActivityOptions{
		StartToCloseTimeout: config.StartToCloseTimeout,
		RetryPolicy:         GetRetryPolicy(config.RetryPolicy),
	}

	if config.HeartbeatTimeout > 0 {
		opts.HeartbeatTimeout = config.HeartbeatTimeout
	}

	return opts
}

// GetScenarioActivityOptions returns the options used for each scenario run
func GetScenarioActivityOptions() workflow.ActivityOptions {
	return GetActivityOptions(ActivityOptionsConfig{
		StartToCloseTimeout: ScenarioActivityTimeout,
		RetryPolicy:         StandardRetry,
	})
}
