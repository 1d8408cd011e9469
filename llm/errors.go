package llm

import (
	"errors"
	"fmt"
)

// Error types classifying the outcome of one generation attempt. The batch
// runner keys its control flow off these: retryable errors go back through the
// backoff loop, fatal errors abort the whole run, everything else is counted
// against the row and the run moves on.

// AuthError means the API rejected the credential (HTTP 401). Never retried;
// aborts the run so a bad key does not burn through the remaining rows.
type AuthError struct {
	err error
}

func (e *AuthError) Error() string {
	return e.err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.err
}

// NewAuthError wraps an error as an authentication failure.
func NewAuthError(err error) error {
	return &AuthError{err: err}
}

// RateLimitError means the API returned HTTP 429. Retried with exponential
// backoff until the retry budget runs out.
type RateLimitError struct {
	err error
}

func (e *RateLimitError) Error() string {
	return e.err.Error()
}

func (e *RateLimitError) Unwrap() error {
	return e.err
}

// NewRateLimitError wraps an error as a rate-limit rejection.
func NewRateLimitError(err error) error {
	return &RateLimitError{err: err}
}

// NetworkError means no response was received at all. Retried with the same
// backoff schedule as rate limits.
type NetworkError struct {
	err error
}

func (e *NetworkError) Error() string {
	return e.err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.err
}

// NewNetworkError wraps a transport-level failure.
func NewNetworkError(err error) error {
	return &NetworkError{err: err}
}

// UpstreamError is a server-side failure that retrying will not fix: an
// unexpected status code, a malformed body, or an empty completion. Counted as
// a row error, never retried, never fatal.
type UpstreamError struct {
	// Status is the HTTP status code, or 0 when the response was 2xx but
	// unusable.
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 && e.Message == "" {
		return fmt.Sprintf("HTTP error: %d", e.Status)
	}
	return e.Message
}

// ErrCannotGenerate is returned when the model answered with the sentinel
// marker instead of content: the row's source text was not enough to write a
// description from. Distinct from upstream failures so callers can report it
// as a content problem rather than an API problem.
var ErrCannotGenerate = errors.New("model could not generate a description from the given input")

// ErrRetriesExhausted wraps the last retryable error once the retry budget is
// spent. Non-fatal: the run continues with the next row.
var ErrRetriesExhausted = errors.New("retries exhausted")

// IsFatal reports whether the error must abort the entire run.
func IsFatal(err error) bool {
	var auth *AuthError
	return errors.As(err, &auth)
}

// IsRetryable reports whether another attempt may succeed.
func IsRetryable(err error) bool {
	var rate *RateLimitError
	var network *NetworkError
	return errors.As(err, &rate) || errors.As(err, &network)
}

// IsRateLimited reports whether the error originated as an HTTP 429.
func IsRateLimited(err error) bool {
	var rate *RateLimitError
	return errors.As(err, &rate)
}

// IsCannotGenerate reports the insufficient-input sentinel outcome.
func IsCannotGenerate(err error) bool {
	return errors.Is(err, ErrCannotGenerate)
}
