package llm

import "time"

// RetryConfig holds the backoff schedule for retryable failures.
//
// Backoff is deliberately deterministic (no jitter): this client serves one
// sequential interactive run, so there is no herd to desynchronize, and fixed
// delays keep the schedule testable and the waits reportable to the user.
type RetryConfig struct {
	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries int

	// BackoffBase is the first retry delay. Rate limits and network
	// failures share it.
	BackoffBase time.Duration

	// BackoffMultiplier is applied to the delay on each further retry.
	BackoffMultiplier float64
}

// DefaultRetryConfig returns the production schedule: 5s, 10s, 20s.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:        3,
		BackoffBase:       5 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// Backoff returns the delay before retry number attempt (0-based).
func (c RetryConfig) Backoff(attempt int) time.Duration {
	multiplier := 1.0
	for i := 0; i < attempt; i++ {
		multiplier *= c.BackoffMultiplier
	}
	return time.Duration(float64(c.BackoffBase) * multiplier)
}

// WaitFunc is notified before each backoff sleep with the rounded-up wait in
// seconds, the retry number about to run (1-based) and the retry budget.
type WaitFunc func(waitSeconds, attempt, maxAttempts int)
