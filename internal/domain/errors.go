// Package domain contains the core domain models and types.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure cases.
var (
	// ErrNoImage indicates the request carried no image payload.
	ErrNoImage = errors.New("no image provided")

	// ErrImageTooLarge indicates the image exceeds the maximum allowed size.
	ErrImageTooLarge = errors.New("image exceeds maximum size")

	// ErrUnsupportedImage indicates the payload is not a recognized image format.
	ErrUnsupportedImage = errors.New("unsupported image format")

	// ErrEmptyQuestion indicates the advisory question is empty or whitespace.
	ErrEmptyQuestion = errors.New("question is required")

	// ErrNoBackendAvailable indicates every inference backend failed.
	ErrNoBackendAvailable = errors.New("no inference backend available")

	// ErrUpstreamTimeout indicates the upstream service did not respond in time.
	ErrUpstreamTimeout = errors.New("upstream service timeout")

	// ErrUpstreamUnavailable indicates the upstream service returned 5xx.
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")

	// ErrRateLimited indicates too many requests were made upstream.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidResponse indicates an upstream response failed to parse.
	ErrInvalidResponse = errors.New("invalid upstream response format")

	// ErrInvalidConfig indicates invalid configuration.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// PipelineError wraps an error with the failing operation and whether a
// retry could succeed.
type PipelineError struct {
	// Op is the operation that failed.
	Op string

	// Err is the underlying error.
	Err error

	// Retryable indicates if the operation can be retried.
	Retryable bool
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// WrapError creates a new PipelineError with context.
func WrapError(op string, err error, retryable bool) *PipelineError {
	return &PipelineError{
		Op:        op,
		Err:       err,
		Retryable: retryable,
	}
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Retryable
	}
	return false
}
