package llm

import (
	"context"

	"github.com/caliperhq/go-caliper/internal/ports"
)

// disabledClient is the backend adapter used when no credential is
// configured. It reports unavailable and fails every call, which the
// consumers treat as the signal to use their deterministic paths.
type disabledClient struct{}

// NewDisabledClient returns a ports.LLMClient representing an absent
// backend. Absence of a credential is not an error condition; it just
// deterministically disables all LLM-assisted paths.
func NewDisabledClient() ports.LLMClient { return disabledClient{} }

func (disabledClient) Available() bool { return false }

func (disabledClient) Complete(ctx context.Context, prompt string, options map[string]any) (string, error) {
	return "", ports.NewBackendError("", "complete", ports.ErrBackendUnavailable)
}

func (disabledClient) GetModel() string { return "" }
