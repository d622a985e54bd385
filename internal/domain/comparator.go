package domain

import "math"

// Comparator is a relational operator between a measured and a target value.
type Comparator string

// Supported comparator symbols. The ASCII spellings ">=" and "<=" are
// accepted as aliases for the Unicode forms.
const (
	CompGreater      Comparator = ">"
	CompGreaterEqual Comparator = "≥"
	CompEqual        Comparator = "="
	CompLessEqual    Comparator = "≤"
	CompLess         Comparator = "<"
)

// EqualityTolerance is the absolute tolerance used by the "=" comparator.
// Measured and target values closer than this are considered equal.
const EqualityTolerance = 1e-9

// comparators maps each accepted symbol to its evaluation function.
// The measured value is always the first operand.
var comparators = map[Comparator]func(measured, target float64) bool{
	CompGreater:      func(a, b float64) bool { return a > b },
	CompGreaterEqual: func(a, b float64) bool { return a >= b },
	">=":             func(a, b float64) bool { return a >= b },
	CompEqual:        func(a, b float64) bool { return math.Abs(a-b) < EqualityTolerance },
	CompLessEqual:    func(a, b float64) bool { return a <= b },
	"<=":             func(a, b float64) bool { return a <= b },
	CompLess:         func(a, b float64) bool { return a < b },
}

// Compare evaluates the comparator symbol against the measured and target
// operands. An unrecognized symbol returns a *InvalidComparatorError rather
// than panicking so the caller can degrade to an unknown status.
func Compare(symbol Comparator, measured, target float64) (bool, error) {
	fn, ok := comparators[symbol]
	if !ok {
		return false, &InvalidComparatorError{Symbol: string(symbol)}
	}
	return fn(measured, target), nil
}

// KnownComparator reports whether the symbol resolves to a comparator.
func KnownComparator(symbol Comparator) bool {
	_, ok := comparators[symbol]
	return ok
}
