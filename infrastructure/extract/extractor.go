package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/caliperhq/go-caliper/internal/domain"
	"github.com/caliperhq/go-caliper/internal/ports"
)

// extractSystemPrompt constrains the backend to the requirement schema.
// The five comparator symbols and the unit set are fixed; anything the
// model cannot place stays null.
const extractSystemPrompt = `You extract structured requirement facts as JSON.
Return ONLY a JSON object with keys:
metric (snake_case), comparator (one of ≥, ≤, =, <, >), value (number), unit (kN/N/mm),
component (snake_case if present), condition (string or null).
If ambiguous, use nulls. Do not add extra keys.`

// Deterministic fallback patterns. The comparator cues are checked in a
// fixed priority order and the first matching rule wins; later rules are
// not consulted once one matches.
var (
	valueUnitRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(kN|N|mm)\b`)

	comparatorCues = []struct {
		re     *regexp.Regexp
		symbol domain.Comparator
	}{
		{regexp.MustCompile(`(?i)≥|>=|at\s+least|minimum|min`), domain.CompGreaterEqual},
		{regexp.MustCompile(`(?i)≤|<=|not\s+exceed|maximum|max`), domain.CompLessEqual},
		{regexp.MustCompile(`(?i)\bequals?\b|^=`), domain.CompEqual},
		{regexp.MustCompile(`(?i)\bmore than\b|>`), domain.CompGreater},
		{regexp.MustCompile(`(?i)\bless than\b|<`), domain.CompLess},
	}

	temperatureRe = regexp.MustCompile(`-?\d+\s*°\s*C`)
	ambientRe     = regexp.MustCompile(`(?i)ambient|room temperature`)
)

// FactExtractor converts free requirement text into a structured
// domain.Requirement, via the reasoning backend when one is available and
// a deterministic pattern matcher otherwise. Extract never fails: any
// backend trouble falls through to the pattern path.
type FactExtractor struct {
	client ports.LLMClient
	vocab  Vocabulary
	units  *domain.UnitRegistry
	logger *slog.Logger

	metricRes    []*regexp.Regexp
	componentRes []*regexp.Regexp
}

// NewFactExtractor creates an extractor over the given backend, vocabulary
// and unit registry. The client may be nil or unavailable; extraction then
// runs purely on the deterministic path. A nil registry falls back to the
// default unit set.
func NewFactExtractor(client ports.LLMClient, vocab Vocabulary, units *domain.UnitRegistry) *FactExtractor {
	if units == nil {
		units = domain.NewUnitRegistry()
	}

	e := &FactExtractor{
		client: client,
		vocab:  vocab,
		units:  units,
		logger: slog.Default().With("component", "fact_extractor"),
	}

	for _, m := range vocab.Metrics {
		e.metricRes = append(e.metricRes, wordBoundaryRe(m.Alias))
	}
	for _, c := range vocab.Components {
		e.componentRes = append(e.componentRes, wordBoundaryRe(c))
	}

	return e
}

// wordBoundaryRe compiles a case-insensitive whole-word matcher for a
// vocabulary entry.
func wordBoundaryRe(term string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
}

// Extract converts requirement text into a structured Requirement.
// Empty or whitespace-only text yields the zero Requirement. The backend
// path is attempted first when available; any failure there (transport,
// missing JSON, schema mismatch) is logged and absorbed, and the
// deterministic pattern path answers instead.
func (e *FactExtractor) Extract(ctx context.Context, text string) domain.Requirement {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return domain.Requirement{}
	}

	if e.client != nil && e.client.Available() {
		req, err := e.extractBackend(ctx, trimmed)
		if err == nil {
			return req
		}
		e.logger.Debug("backend extraction failed, using pattern fallback", "error", err)
	}

	return e.extractPattern(trimmed)
}

// extractBackend asks the reasoning backend for the structured fields and
// validates whatever it returns.
func (e *FactExtractor) extractBackend(ctx context.Context, text string) (domain.Requirement, error) {
	prompt := fmt.Sprintf("Text:\n---\n%s\n---", text)

	response, err := e.client.Complete(ctx, prompt, map[string]any{
		"system":      extractSystemPrompt,
		"temperature": 0.0,
	})
	if err != nil {
		return domain.Requirement{}, err
	}

	raw, ok := firstJSONObject(response)
	if !ok {
		return domain.Requirement{}, ports.NewBackendError(e.client.GetModel(), "extract",
			fmt.Errorf("%w: no JSON object in response", ports.ErrBackendResponseParse))
	}

	var req domain.Requirement
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		return domain.Requirement{}, ports.NewBackendError(e.client.GetModel(), "extract",
			fmt.Errorf("%w: %v", ports.ErrBackendResponseParse, err))
	}

	if err := validate.Struct(req); err != nil {
		return domain.Requirement{}, ports.NewBackendError(e.client.GetModel(), "extract",
			fmt.Errorf("%w: %v", ports.ErrBackendResponseParse, err))
	}

	if canonical, ok := e.units.Canonical(req.Unit); ok {
		req.Unit = canonical
	}

	return req, nil
}

// extractPattern is the deterministic fallback. It is total: any text
// yields a Requirement, with unmatched fields left empty.
func (e *FactExtractor) extractPattern(text string) domain.Requirement {
	var req domain.Requirement

	if m := valueUnitRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			req.Value = &v
			if canonical, ok := e.units.Canonical(m[2]); ok {
				req.Unit = canonical
			} else {
				req.Unit = m[2]
			}
		}
	}

	for _, cue := range comparatorCues {
		if cue.re.MatchString(text) {
			req.Comparator = cue.symbol
			break
		}
	}

	for i, re := range e.metricRes {
		if re.MatchString(text) {
			req.Metric = e.vocab.Metrics[i].Canonical
			break
		}
	}

	for i, re := range e.componentRes {
		if re.MatchString(text) {
			req.Component = e.vocab.Components[i]
			break
		}
	}

	if m := temperatureRe.FindString(text); m != "" {
		req.Condition = m
	} else if ambientRe.MatchString(text) {
		req.Condition = "ambient"
	}

	return req
}
