package domain

// Status classifies the outcome of one requirement/test pairing.
type Status string

// Validation outcomes.
const (
	// StatusPass indicates the normalized measurement satisfies the
	// requirement's comparator and target.
	StatusPass Status = "pass"

	// StatusFail indicates the normalized measurement does not satisfy
	// the requirement.
	StatusFail Status = "fail"

	// StatusUnknown indicates the pairing could not be evaluated; the
	// result's Reason field says why.
	StatusUnknown Status = "unknown"
)

// Requirement is a structured engineering requirement. Fields may be empty
// when the source row carried only free text; extraction fills the gaps.
//
// The zero value represents a fully unextracted requirement. String fields
// use "" as absent; Value uses nil so a genuine target of zero stays
// distinguishable from a missing one.
type Requirement struct {
	// Metric is the canonical metric name, e.g. "shear_strength".
	Metric string `json:"metric,omitempty"`

	// Comparator is the relation the measurement must satisfy.
	Comparator Comparator `json:"comparator,omitempty" validate:"omitempty,oneof=> ≥ >= = ≤ <= <"`

	// Value is the target value, expressed in Unit.
	Value *float64 `json:"value,omitempty"`

	// Unit is the requirement's unit; measurements are normalized into it.
	Unit string `json:"unit,omitempty"`

	// Component names the physical part the requirement applies to.
	Component string `json:"component,omitempty"`

	// Condition records the test condition, e.g. "-30°C" or "ambient".
	Condition string `json:"condition,omitempty"`
}

// Merge fills empty fields of r from extracted and returns the result.
// Populated fields are never overwritten, which makes extraction idempotent
// on already-structured requirements.
func (r Requirement) Merge(extracted Requirement) Requirement {
	if r.Metric == "" {
		r.Metric = extracted.Metric
	}
	if r.Comparator == "" {
		r.Comparator = extracted.Comparator
	}
	if r.Value == nil {
		r.Value = extracted.Value
	}
	if r.Unit == "" {
		r.Unit = extracted.Unit
	}
	if r.Component == "" {
		r.Component = extracted.Component
	}
	if r.Condition == "" {
		r.Condition = extracted.Condition
	}
	return r
}

// Complete reports whether the requirement carries everything ValidateRow
// needs: a comparator, a target value and a unit.
func (r Requirement) Complete() bool {
	return r.Comparator != "" && r.Value != nil && r.Unit != ""
}

// TestMeasurement is one measured test result. It is externally supplied
// and read-only to the engine.
type TestMeasurement struct {
	// MeasuredValue is the raw measurement, expressed in Unit.
	MeasuredValue float64 `json:"measured_value"`

	// Unit is the unit the measurement was taken in.
	Unit string `json:"unit"`

	// Component names the part the test exercised, when recorded.
	Component string `json:"component,omitempty"`
}

// ValidationResult is the immutable outcome of validating one
// requirement/test pairing.
//
// MeasuredNorm and Target are always expressed in Unit, which is the
// requirement's unit: measurements are normalized into it, never the
// reverse. They are nil when normalization did not succeed, and status is
// never pass or fail without a successful normalization.
type ValidationResult struct {
	// Status is pass, fail or unknown.
	Status Status `json:"status"`

	// Reason is a machine-readable explanation, present only when Status
	// is unknown.
	Reason string `json:"reason,omitempty"`

	// MeasuredNorm is the measurement normalized into Unit.
	MeasuredNorm *float64 `json:"measured_norm,omitempty"`

	// Target is the requirement's target value in Unit.
	Target *float64 `json:"target,omitempty"`

	// Unit is the requirement's unit.
	Unit string `json:"unit,omitempty"`

	// Explanation is a short human-readable justification of the outcome.
	Explanation string `json:"explanation,omitempty"`
}

// ChatFilter is a structured filter parsed from a free-text query.
// All fields are optional; the zero value matches every result. A filter is
// produced per query and consumed once, never persisted.
type ChatFilter struct {
	// Component restricts results to components containing this text.
	Component string `json:"component,omitempty"`

	// Metric restricts results to this canonical metric.
	Metric string `json:"metric,omitempty"`

	// Status restricts results to one validation status.
	Status Status `json:"status,omitempty" validate:"omitempty,oneof=pass fail unknown"`

	// MinValue keeps only results whose normalized measurement meets this
	// threshold, interpreted in Unit when one is set.
	MinValue *float64 `json:"min_value,omitempty"`

	// Unit restricts results by unit, or qualifies MinValue.
	Unit string `json:"unit,omitempty"`
}

// IsZero reports whether the filter has no criteria at all.
func (f ChatFilter) IsZero() bool {
	return f.Component == "" && f.Metric == "" && f.Status == "" &&
		f.MinValue == nil && f.Unit == ""
}
