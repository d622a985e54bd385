package application

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/caliperhq/go-caliper/infrastructure/extract"
	"github.com/caliperhq/go-caliper/internal/domain"
	"github.com/caliperhq/go-caliper/internal/ports"
)

// Engine wires the converters and the validator into the three pipeline
// operations: extract, validate, query. One Engine serves one vocabulary
// and one unit registry; it is safe for concurrent use.
type Engine struct {
	extractor *extract.FactExtractor
	explainer *extract.Explainer
	parser    *extract.QueryParser
	validator *domain.Validator
	vocab     extract.Vocabulary

	tracer trace.Tracer
	logger *slog.Logger
}

// NewEngine creates an engine over the given reasoning backend, vocabulary
// and unit registry. The client may be nil or unavailable; every operation
// then runs on the deterministic paths. A nil registry falls back to the
// default unit set.
func NewEngine(client ports.LLMClient, vocab extract.Vocabulary, units *domain.UnitRegistry) *Engine {
	if units == nil {
		units = domain.NewUnitRegistry()
	}

	return &Engine{
		extractor: extract.NewFactExtractor(client, vocab, units),
		explainer: extract.NewExplainer(client),
		parser:    extract.NewQueryParser(client, vocab, units),
		validator: domain.NewValidator(units),
		vocab:     vocab,
		tracer:    otel.Tracer("github.com/caliperhq/go-caliper/internal/application"),
		logger:    slog.Default().With("component", "engine"),
	}
}

// ExtractRequirements fills the structured fields of each record from its
// free text. Already populated fields are never overwritten, so running
// extraction twice is a no-op. Records are processed sequentially in input
// order.
func (e *Engine) ExtractRequirements(ctx context.Context, records []RequirementRecord) []RequirementRecord {
	ctx, span := e.tracer.Start(ctx, "engine.extract_requirements",
		trace.WithAttributes(attribute.Int("requirements.count", len(records))))
	defer span.End()

	out := make([]RequirementRecord, len(records))
	filled := 0
	for i, rec := range records {
		if rec.FreeText != "" && needsExtraction(rec.Requirement) {
			extracted := e.extractor.Extract(ctx, rec.FreeText)
			rec.Requirement = rec.Requirement.Merge(extracted)
			filled++
		}
		out[i] = rec
	}

	span.SetAttributes(attribute.Int("requirements.extracted", filled))
	e.logger.Debug("extraction finished", "total", len(records), "extracted", filled)

	return out
}

// Validate reconciles test reports against requirements, joining on ReqID.
// Every test produces exactly one result row in input order; a test whose
// ReqID matches no requirement comes back unknown. When several
// requirement rows share an ID the first one wins.
func (e *Engine) Validate(ctx context.Context, requirements []RequirementRecord, tests []TestRecord) []ResultRecord {
	_, span := e.tracer.Start(ctx, "engine.validate",
		trace.WithAttributes(
			attribute.Int("requirements.count", len(requirements)),
			attribute.Int("tests.count", len(tests)),
		))
	defer span.End()

	index := make(map[string]RequirementRecord, len(requirements))
	for _, req := range requirements {
		if _, seen := index[req.ReqID]; !seen {
			index[req.ReqID] = req
		}
	}

	results := make([]ResultRecord, 0, len(tests))
	counts := map[domain.Status]int{}

	for _, test := range tests {
		rec := ResultRecord{
			TestID:    test.TestID,
			ReqID:     test.ReqID,
			Component: test.Component,
		}

		req, ok := index[test.ReqID]
		if !ok {
			rec.ValidationResult = domain.ValidationResult{
				Status: domain.StatusUnknown,
				Reason: domain.ReasonMissingTarget,
			}
		} else {
			if rec.Component == "" {
				rec.Component = req.Component
			}
			rec.Metric = req.Metric
			rec.ValidationResult = e.validator.ValidateRow(req.Requirement, test.TestMeasurement)
		}

		rec.Explanation = e.explainer.Summary(e.facts(rec))
		counts[rec.Status]++
		results = append(results, rec)
	}

	span.SetAttributes(
		attribute.Int("results.pass", counts[domain.StatusPass]),
		attribute.Int("results.fail", counts[domain.StatusFail]),
		attribute.Int("results.unknown", counts[domain.StatusUnknown]),
	)
	e.logger.Info("validation finished",
		"tests", len(tests),
		"pass", counts[domain.StatusPass],
		"fail", counts[domain.StatusFail],
		"unknown", counts[domain.StatusUnknown])

	return results
}

// Explain produces a richer explanation for one result row via the
// reasoning backend. Without an available backend it is the same template
// text Validate already attached.
func (e *Engine) Explain(ctx context.Context, rec ResultRecord) string {
	ctx, span := e.tracer.Start(ctx, "engine.explain",
		trace.WithAttributes(attribute.String("test.id", rec.TestID)))
	defer span.End()

	return e.explainer.Explain(ctx, e.facts(rec))
}

// Query parses a free-text question into a filter and applies it to the
// result table. The zero filter comes back for questions the parser cannot
// place, so an unrecognized query returns the table unchanged.
func (e *Engine) Query(ctx context.Context, query string, results []ResultRecord) ([]ResultRecord, domain.ChatFilter) {
	ctx, span := e.tracer.Start(ctx, "engine.query")
	defer span.End()

	filter := e.parser.Parse(ctx, query)
	filtered := ApplyFilter(results, filter, e.validator.Units())

	span.SetAttributes(
		attribute.Int("results.in", len(results)),
		attribute.Int("results.out", len(filtered)),
	)

	return filtered, filter
}

// SuggestComponent proposes the closest known component for a filter term
// that matched nothing, for "did you mean" hints.
func (e *Engine) SuggestComponent(name string) (string, bool) {
	return suggestComponent(name, e.vocab.FilterComponents)
}

// needsExtraction reports whether any extractable field is still empty.
// A row that can already validate may still be missing metric, component
// or condition; those gaps get filled too.
func needsExtraction(req domain.Requirement) bool {
	return req.Metric == "" || req.Comparator == "" || req.Value == nil ||
		req.Unit == "" || req.Component == "" || req.Condition == ""
}

func (e *Engine) facts(rec ResultRecord) extract.Facts {
	return extract.Facts{
		RunID:        rec.TestID,
		Component:    rec.Component,
		Metric:       rec.Metric,
		Status:       string(rec.Status),
		MeasuredNorm: rec.MeasuredNorm,
		Target:       rec.Target,
		Unit:         rec.Unit,
	}
}
