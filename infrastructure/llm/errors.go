package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/caliperhq/go-caliper/internal/ports"
)

// Construction and response errors shared by the providers.
var (
	// ErrEmptyAPIKey indicates a client was constructed without a credential.
	ErrEmptyAPIKey = errors.New("API key cannot be empty")

	// ErrNoResponseChoice indicates the provider answered with no choices.
	ErrNoResponseChoice = errors.New("no response choices returned")
)

// classifyError wraps a provider failure as a ports.BackendError carrying
// the transport sentinel, so consumers can treat every backend failure
// uniformly when deciding to fall back. Context cancellation is preserved
// for errors.Is inspection alongside the sentinel.
func classifyError(model, operation string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ports.NewBackendError(model, operation,
			fmt.Errorf("%w: %w", ports.ErrBackendTransport, err))
	}

	return ports.NewBackendError(model, operation,
		fmt.Errorf("%w: %v", ports.ErrBackendTransport, err))
}
