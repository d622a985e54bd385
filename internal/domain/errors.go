package domain

import (
	"errors"
	"fmt"
)

// Common domain errors that can occur during requirement validation.
var (
	// ErrUnknownUnit indicates that a unit symbol is not present in the
	// unit registry.
	ErrUnknownUnit = errors.New("unknown unit")

	// ErrIncompatibleUnits indicates that two units belong to different
	// physical dimensions and cannot be converted.
	ErrIncompatibleUnits = errors.New("incompatible unit dimensions")

	// ErrUnknownComparator indicates that a comparator symbol is not one
	// of the supported relational operators.
	ErrUnknownComparator = errors.New("unknown comparator")
)

// Machine-readable reasons attached to ValidationResult when status is
// unknown. These are part of the output record contract and must remain
// stable.
const (
	// ReasonUnitConversionFailed reports that the measured value could not
	// be normalized into the requirement's unit.
	ReasonUnitConversionFailed = "unit_conversion_failed"

	// ReasonInvalidComparator reports that the requirement's comparator
	// symbol was missing or unrecognized.
	ReasonInvalidComparator = "invalid_comparator"

	// ReasonMissingTarget reports that the requirement carries no target
	// value to compare against.
	ReasonMissingTarget = "missing_target"
)

// UnitConversionError represents a failed conversion between two units.
// It carries both unit symbols so callers can report which pairing failed.
type UnitConversionError struct {
	// From is the unit the value was expressed in.
	From string

	// To is the unit the value should have been converted into.
	To string

	// Err is the underlying cause, one of ErrUnknownUnit or
	// ErrIncompatibleUnits.
	Err error
}

// Error implements the error interface for UnitConversionError.
func (e *UnitConversionError) Error() string {
	return fmt.Sprintf("unit conversion error: from=%q, to=%q, err=%v", e.From, e.To, e.Err)
}

// Unwrap returns the underlying error, supporting errors.Is matching.
func (e *UnitConversionError) Unwrap() error { return e.Err }

// NewUnitConversionError creates a new UnitConversionError for the given
// unit pair and cause.
func NewUnitConversionError(from, to string, err error) *UnitConversionError {
	return &UnitConversionError{From: from, To: to, Err: err}
}

// InvalidComparatorError represents an unrecognized comparator symbol.
// It is a distinct error condition rather than a panic so callers can map
// it to an unknown validation status.
type InvalidComparatorError struct {
	// Symbol is the comparator text that failed to resolve.
	Symbol string
}

// Error implements the error interface for InvalidComparatorError.
func (e *InvalidComparatorError) Error() string {
	return fmt.Sprintf("invalid comparator: %q", e.Symbol)
}

// Unwrap returns ErrUnknownComparator so errors.Is can classify the failure.
func (e *InvalidComparatorError) Unwrap() error { return ErrUnknownComparator }
