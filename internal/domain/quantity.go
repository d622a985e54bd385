// Package domain contains the pure core of the reconciliation engine:
// dimensional unit algebra, comparator semantics, and single-row
// requirement/test validation. It has no side effects and no dependencies
// on the reasoning backend.
package domain

import "strings"

// Dimension identifies the physical dimension a unit measures.
// Conversion is only permitted between units of the same dimension.
type Dimension string

// Dimensions covered by the default registry.
const (
	// DimForce covers newton-family units.
	DimForce Dimension = "force"

	// DimLength covers metre-family units.
	DimLength Dimension = "length"
)

// unitDef describes one registered unit: its dimension and the factor that
// converts a value in this unit into the dimension's base unit.
type unitDef struct {
	dim    Dimension
	factor float64
}

// UnitRegistry converts physical quantities between units of the same
// dimension. The zero value is not usable; construct with NewUnitRegistry,
// which seeds the registry with the force and length units the engine
// recognizes out of the box. Additional units can be added with Register.
//
// Lookups are case-sensitive ("N" and "n" are distinct symbols); Canonical
// resolves a case-insensitive token to its registered spelling for parsers
// that scan free text.
//
// UnitRegistry is immutable after construction apart from Register and is
// safe for concurrent reads.
type UnitRegistry struct {
	units map[string]unitDef
}

// NewUnitRegistry creates a registry seeded with the default unit set:
// N, kN, MN (force) and mm, cm, m (length).
func NewUnitRegistry() *UnitRegistry {
	r := &UnitRegistry{units: make(map[string]unitDef)}

	r.Register("N", DimForce, 1)
	r.Register("kN", DimForce, 1e3)
	r.Register("MN", DimForce, 1e6)

	r.Register("m", DimLength, 1)
	r.Register("cm", DimLength, 1e-2)
	r.Register("mm", DimLength, 1e-3)

	return r
}

// Register adds a unit to the registry. The factor converts a value in this
// unit into the dimension's base unit (e.g. kN registers with factor 1000
// because 1 kN = 1000 N). Re-registering a symbol replaces it.
func (r *UnitRegistry) Register(symbol string, dim Dimension, factor float64) {
	r.units[symbol] = unitDef{dim: dim, factor: factor}
}

// Normalize converts value from one unit into another using the registry's
// dimensional algebra.
//
// It returns a *UnitConversionError wrapping ErrUnknownUnit when either
// symbol is unregistered, or ErrIncompatibleUnits when the units measure
// different dimensions (e.g. kN into mm). Normalize is a pure function.
func (r *UnitRegistry) Normalize(value float64, from, to string) (float64, error) {
	src, ok := r.units[from]
	if !ok {
		return 0, NewUnitConversionError(from, to, ErrUnknownUnit)
	}

	dst, ok := r.units[to]
	if !ok {
		return 0, NewUnitConversionError(from, to, ErrUnknownUnit)
	}

	if src.dim != dst.dim {
		return 0, NewUnitConversionError(from, to, ErrIncompatibleUnits)
	}

	return value * src.factor / dst.factor, nil
}

// Canonical resolves a case-insensitive unit token ("kn", "KN") to its
// registered spelling ("kN"). It reports false for unregistered tokens.
// Exact-case matches win over folded matches so that symbols differing
// only by case stay distinguishable.
func (r *UnitRegistry) Canonical(token string) (string, bool) {
	if _, ok := r.units[token]; ok {
		return token, true
	}

	for symbol := range r.units {
		if strings.EqualFold(symbol, token) {
			return symbol, true
		}
	}

	return "", false
}
