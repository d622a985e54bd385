// Package ports defines the interfaces that connect the core engine to
// infrastructure such as the reasoning backend. Depending only on these
// interfaces keeps the core testable with doubles that simulate
// unavailability or malformed responses.
package ports

import "context"

// LLMClient abstracts an external text-completion service used to assist
// extraction, explanation and query parsing. The backend is optional:
// every consumer must treat any failure as non-fatal and fall through to
// its deterministic counterpart.
type LLMClient interface {
	// Available reports whether the backend can accept requests.
	// Availability is decided once at construction, from the presence of
	// a configured credential, and never changes afterwards.
	Available() bool

	// Complete sends a completion request and returns the response text.
	// The options map carries provider-agnostic settings:
	//   - "system": string system instruction
	//   - "temperature": float64
	//   - "max_tokens": int
	//
	// The response should, but is not guaranteed to, contain a single
	// JSON object; callers own the parsing trust boundary. Complete on an
	// unavailable client fails with ErrBackendUnavailable. One call is one
	// synchronous round-trip: no retries, and no timeout beyond the
	// transport default, so callers needing bounded latency must arrange
	// cancellation through ctx.
	Complete(ctx context.Context, prompt string, options map[string]any) (string, error)

	// GetModel returns the model identifier used by this client, for
	// logging and debugging.
	GetModel() string
}
