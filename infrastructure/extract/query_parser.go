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

// chatSystemPrompt teaches the backend the filter schema and the
// disambiguation rules the deterministic path also follows.
const chatSystemPrompt = `You convert a result-table question into a JSON filter.
Return ONLY a JSON object with keys:
component (string or null), metric (snake_case or null),
status (one of pass, fail, unknown, or null),
min_value (number or null), unit (kN/N/mm or null).
Rules:
- "failed"/"fail" means status fail; "passed"/"pass" means status pass.
- A bare unit mention ("results in kN") sets unit only, not min_value.
- A threshold with a unit ("above 5 kN") sets both min_value and unit.
- A bare threshold ("above 5") sets min_value only.
- Never invent fields the question does not ask for.
Examples:
Q: show failed door tests -> {"component":"door","status":"fail"}
Q: results above 5 kN -> {"min_value":5,"unit":"kN"}
Q: shear strength rows in N -> {"metric":"shear_strength","unit":"N"}`

// Status cues are checked in this order so "failed" wins before "fail"
// strips only part of the word.
var statusCues = []struct {
	word   string
	status domain.Status
}{
	{"failed", domain.StatusFail},
	{"fail", domain.StatusFail},
	{"passed", domain.StatusPass},
	{"pass", domain.StatusPass},
}

var (
	unitOnlyRes = []*regexp.Regexp{
		regexp.MustCompile(`\bin\s+(kn|n|mm)\b`),
		regexp.MustCompile(`\bunit\s+(?:is\s+)?(kn|n|mm)\b`),
		regexp.MustCompile(`\bunit\s+having\s+(kn|n|mm)\b`),
		regexp.MustCompile(`\bunit\s*(?:=|equals?)\s*(kn|n|mm)\b`),
		regexp.MustCompile(`\bunits?\s+of\s+(kn|n|mm)\b`),
		regexp.MustCompile(`\bmeasured\s+in\s+(kn|n|mm)\b`),
		regexp.MustCompile(`\b(kn|n|mm)\s+unit\b`),
		regexp.MustCompile(`\b(kn|n|mm)\s+rows\b`),
		regexp.MustCompile(`\bwith\s+(kn|n|mm)\b`),
	}

	minValueUnitRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(kn|n|mm)\b`)

	thresholdRes = []*regexp.Regexp{
		regexp.MustCompile(`(?:greater than|more than|above|over|>|≥)\s*(\d+(?:\.\d+)?)`),
		regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:or more|or greater|plus)`),
		regexp.MustCompile(`measured_norm\s*[>≥]\s*(\d+(?:\.\d+)?)`),
	}

	// Stray unit tokens for threshold-only queries, highest magnitude first.
	strayUnitCues = []struct {
		re   *regexp.Regexp
		unit string
	}{
		{regexp.MustCompile(`\bkn\b|kilo`), "kN"},
		{regexp.MustCompile(`\bn\b`), "N"},
		{regexp.MustCompile(`\bmm\b`), "mm"},
	}
)

// QueryParser turns a natural-language question about the result table
// into a structured domain.ChatFilter. Like FactExtractor it is total:
// the backend path is best effort and the deterministic path answers for
// anything the backend cannot.
type QueryParser struct {
	client ports.LLMClient
	vocab  Vocabulary
	units  *domain.UnitRegistry
	logger *slog.Logger
}

// NewQueryParser creates a parser over the given backend, vocabulary and
// unit registry. A nil registry falls back to the default unit set.
func NewQueryParser(client ports.LLMClient, vocab Vocabulary, units *domain.UnitRegistry) *QueryParser {
	if units == nil {
		units = domain.NewUnitRegistry()
	}
	return &QueryParser{
		client: client,
		vocab:  vocab,
		units:  units,
		logger: slog.Default().With("component", "query_parser"),
	}
}

// Parse converts a question into a filter. Empty or whitespace-only input
// yields the zero filter, which callers treat as "no filtering".
func (p *QueryParser) Parse(ctx context.Context, query string) domain.ChatFilter {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return domain.ChatFilter{}
	}

	if p.client != nil && p.client.Available() {
		filter, err := p.parseBackend(ctx, trimmed)
		if err == nil {
			return filter
		}
		p.logger.Debug("backend query parse failed, using pattern fallback", "error", err)
	}

	return p.parsePattern(trimmed)
}

func (p *QueryParser) parseBackend(ctx context.Context, query string) (domain.ChatFilter, error) {
	prompt := fmt.Sprintf("Q: %s", query)

	response, err := p.client.Complete(ctx, prompt, map[string]any{
		"system":      chatSystemPrompt,
		"temperature": 0.0,
	})
	if err != nil {
		return domain.ChatFilter{}, err
	}

	raw, ok := firstJSONObject(response)
	if !ok {
		return domain.ChatFilter{}, ports.NewBackendError(p.client.GetModel(), "query",
			fmt.Errorf("%w: no JSON object in response", ports.ErrBackendResponseParse))
	}

	var filter domain.ChatFilter
	if err := json.Unmarshal([]byte(raw), &filter); err != nil {
		return domain.ChatFilter{}, ports.NewBackendError(p.client.GetModel(), "query",
			fmt.Errorf("%w: %v", ports.ErrBackendResponseParse, err))
	}

	if err := validate.Struct(filter); err != nil {
		return domain.ChatFilter{}, ports.NewBackendError(p.client.GetModel(), "query",
			fmt.Errorf("%w: %v", ports.ErrBackendResponseParse, err))
	}

	if canonical, ok := p.units.Canonical(filter.Unit); ok {
		filter.Unit = canonical
	}

	return filter, nil
}

// parsePattern is the deterministic fallback. Matching runs over a folded
// copy of the query; the status word, once matched, is stripped so it
// cannot shadow a component mention later in the scan.
func (p *QueryParser) parsePattern(query string) domain.ChatFilter {
	var filter domain.ChatFilter
	folded := fold(query)

	for _, cue := range statusCues {
		if strings.Contains(folded, cue.word) {
			filter.Status = cue.status
			folded = strings.ReplaceAll(folded, cue.word, " ")
			break
		}
	}

	for _, component := range p.vocab.FilterComponents {
		if strings.Contains(folded, fold(component)) {
			filter.Component = component
			break
		}
	}

	for _, m := range p.vocab.Metrics {
		if strings.Contains(folded, fold(m.Alias)) {
			filter.Metric = m.Canonical
			break
		}
	}

	for _, re := range unitOnlyRes {
		if m := re.FindStringSubmatch(folded); m != nil {
			if canonical, ok := p.units.Canonical(m[1]); ok {
				filter.Unit = canonical
			}
			break
		}
	}

	// A matched unit-only pattern settles the unit question; threshold
	// scanning only runs when no unit was named that way.
	if filter.Unit != "" {
		return filter
	}

	if m := minValueUnitRe.FindStringSubmatch(folded); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			filter.MinValue = &v
			if canonical, ok := p.units.Canonical(m[2]); ok {
				filter.Unit = canonical
			}
		}
		return filter
	}

	for _, re := range thresholdRes {
		if m := re.FindStringSubmatch(folded); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				filter.MinValue = &v
				filter.Unit = strayUnit(folded)
			}
			break
		}
	}

	return filter
}

// strayUnit infers a unit from loose tokens in a threshold-only query.
// Returns "" when nothing plausible appears.
func strayUnit(folded string) string {
	for _, cue := range strayUnitCues {
		if cue.re.MatchString(folded) {
			return cue.unit
		}
	}
	return ""
}
