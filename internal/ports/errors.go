package ports

import (
	"errors"
	"fmt"
)

// Failure modes of the reasoning backend. All of them are absorbed at the
// call site of the LLM-assisted path and silently trigger the deterministic
// fallback; none ever reaches the caller of extract, explain or parse.
var (
	// ErrBackendUnavailable indicates the backend was called without a
	// configured credential.
	ErrBackendUnavailable = errors.New("reasoning backend unavailable")

	// ErrBackendTransport indicates the request failed in transit.
	ErrBackendTransport = errors.New("reasoning backend transport error")

	// ErrBackendResponseParse indicates the backend answered but the
	// response carried no usable structured content.
	ErrBackendResponseParse = errors.New("reasoning backend response parse error")
)

// BackendError represents a failed interaction with the reasoning backend.
// It records the model and operation for logging while classifying the
// failure through the wrapped sentinel.
type BackendError struct {
	// Model is the identifier of the model that was asked.
	Model string

	// Operation names the call that failed.
	Operation string

	// Err is the underlying cause, typically wrapping one of the
	// sentinel errors above.
	Err error
}

// Error implements the error interface for BackendError.
func (e *BackendError) Error() string {
	return fmt.Sprintf("backend error: model=%s, operation=%s, err=%v", e.Model, e.Operation, e.Err)
}

// Unwrap returns the underlying error.
func (e *BackendError) Unwrap() error { return e.Err }

// NewBackendError creates a new BackendError with the given details.
func NewBackendError(model, operation string, err error) *BackendError {
	return &BackendError{Model: model, Operation: operation, Err: err}
}
