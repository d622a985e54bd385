package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/caliperhq/go-caliper/internal/domain"
	"github.com/caliperhq/go-caliper/internal/ports"
)

// FallbackExplanation is returned whenever the backend path was attempted
// and failed. Callers render it verbatim.
const FallbackExplanation = "Explanation unavailable."

const explainSystemPrompt = `Using ONLY these JSON facts, write exactly 2 short bullet points
explaining the validation outcome to an engineer. Do not invent numbers
or units that are not in the facts. Plain text bullets, no markdown headers.`

// Facts is the grounding payload for an explanation request. Every field
// the backend may mention comes from here; nothing else is shown to it.
type Facts struct {
	RunID        string   `json:"run_id"`
	Component    string   `json:"component,omitempty"`
	Metric       string   `json:"metric,omitempty"`
	Status       string   `json:"status"`
	MeasuredNorm *float64 `json:"measured_norm,omitempty"`
	Target       *float64 `json:"target,omitempty"`
	Unit         string   `json:"unit,omitempty"`
}

// Explainer renders human-readable explanations of validation outcomes.
// Summary is deterministic and always available; Explain consults the
// reasoning backend and degrades to FallbackExplanation on any failure.
type Explainer struct {
	client ports.LLMClient
	logger *slog.Logger
}

// NewExplainer creates an explainer over the given backend. The client may
// be nil or unavailable; Explain then returns the deterministic summary.
func NewExplainer(client ports.LLMClient) *Explainer {
	return &Explainer{
		client: client,
		logger: slog.Default().With("component", "explainer"),
	}
}

// Summary renders the one-line template for a validation outcome. The
// measured value is shortened to three significant digits; the target is
// printed exactly.
func (e *Explainer) Summary(f Facts) string {
	if f.MeasuredNorm == nil || f.Target == nil || f.Unit == "" {
		return "Unknown: missing unit/comparator/data."
	}

	measured := strconv.FormatFloat(*f.MeasuredNorm, 'g', 3, 64)
	target := strconv.FormatFloat(*f.Target, 'g', -1, 64)

	switch domain.Status(f.Status) {
	case domain.StatusPass:
		return fmt.Sprintf("Pass: measured %s %s meets target %s %s.", measured, f.Unit, target, f.Unit)
	case domain.StatusFail:
		relation := "below"
		if *f.MeasuredNorm > *f.Target {
			relation = "above"
		}
		return fmt.Sprintf("Fail: measured %s %s is %s target %s %s.", measured, f.Unit, relation, target, f.Unit)
	default:
		return "Unknown: missing unit/comparator/data."
	}
}

// Explain asks the reasoning backend for a short grounded explanation of
// the facts. Without an available backend it returns Summary; with one
// that fails, it returns FallbackExplanation.
func (e *Explainer) Explain(ctx context.Context, f Facts) string {
	if e.client == nil || !e.client.Available() {
		return e.Summary(f)
	}

	payload, err := json.Marshal(f)
	if err != nil {
		e.logger.Debug("facts marshal failed", "error", err)
		return FallbackExplanation
	}

	response, err := e.client.Complete(ctx, string(payload), map[string]any{
		"system":      explainSystemPrompt,
		"temperature": 0.2,
	})
	if err != nil {
		e.logger.Debug("backend explanation failed", "run_id", f.RunID, "error", err)
		return FallbackExplanation
	}
	if strings.TrimSpace(response) == "" {
		return FallbackExplanation
	}

	return strings.TrimSpace(response)
}
