package domain

// Validator classifies requirement/test pairings using a unit registry.
// It is stateless apart from the registry and safe for concurrent use.
type Validator struct {
	units *UnitRegistry
}

// NewValidator creates a Validator backed by the given unit registry.
// A nil registry falls back to the default unit set.
func NewValidator(units *UnitRegistry) *Validator {
	if units == nil {
		units = NewUnitRegistry()
	}
	return &Validator{units: units}
}

// Units exposes the validator's registry so callers can share it for
// filter-time conversions.
func (v *Validator) Units() *UnitRegistry { return v.units }

// ValidateRow classifies a single requirement/test pairing.
//
// The measured value is normalized from the test's unit into the
// requirement's unit; a conversion failure yields status unknown with
// reason "unit_conversion_failed" and no normalized values. A missing or
// unrecognized comparator yields status unknown with reason
// "invalid_comparator", and a missing target value yields reason
// "missing_target". Otherwise the comparator decides pass or fail, and the
// result always carries the normalized measurement, the target and the
// requirement's unit.
//
// ValidateRow is deterministic and has no side effects. Degraded inputs
// produce a well-formed result, never an error.
func (v *Validator) ValidateRow(req Requirement, test TestMeasurement) ValidationResult {
	norm, err := v.units.Normalize(test.MeasuredValue, test.Unit, req.Unit)
	if err != nil {
		return ValidationResult{
			Status: StatusUnknown,
			Reason: ReasonUnitConversionFailed,
		}
	}

	if !KnownComparator(req.Comparator) {
		return ValidationResult{
			Status: StatusUnknown,
			Reason: ReasonInvalidComparator,
		}
	}

	if req.Value == nil {
		return ValidationResult{
			Status: StatusUnknown,
			Reason: ReasonMissingTarget,
		}
	}

	ok, err := Compare(req.Comparator, norm, *req.Value)
	if err != nil {
		// Unreachable after the KnownComparator check, but kept so a
		// registry change cannot turn this into a silent pass.
		return ValidationResult{
			Status: StatusUnknown,
			Reason: ReasonInvalidComparator,
		}
	}

	status := StatusFail
	if ok {
		status = StatusPass
	}

	target := *req.Value
	return ValidationResult{
		Status:       status,
		MeasuredNorm: &norm,
		Target:       &target,
		Unit:         req.Unit,
	}
}
