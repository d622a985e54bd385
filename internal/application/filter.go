package application

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/caliperhq/go-caliper/internal/domain"
)

// suggestionMaxDistance bounds how far a "did you mean" candidate may be
// from the input before no suggestion is offered.
const suggestionMaxDistance = 3

// ApplyFilter narrows a result table by the filter's criteria. Criteria
// combine with AND; the zero filter returns the input unchanged.
//
// The threshold criterion is unit-aware. With both MinValue and Unit set,
// rows already in that unit are compared directly; when no row carries the
// unit at all, each row's normalized measurement is converted into it and
// rows that fail to convert are dropped. With MinValue alone the
// normalized measurements are compared as-is, and with Unit alone rows are
// kept by exact unit match.
func ApplyFilter(results []ResultRecord, filter domain.ChatFilter, units *domain.UnitRegistry) []ResultRecord {
	if filter.IsZero() {
		return results
	}
	if units == nil {
		units = domain.NewUnitRegistry()
	}

	kept := make([]ResultRecord, 0, len(results))
	for _, rec := range results {
		if filter.Component != "" &&
			!strings.Contains(strings.ToLower(rec.Component), strings.ToLower(filter.Component)) {
			continue
		}
		if filter.Metric != "" && rec.Metric != filter.Metric {
			continue
		}
		if filter.Status != "" && rec.Status != filter.Status {
			continue
		}
		kept = append(kept, rec)
	}

	switch {
	case filter.MinValue != nil && filter.Unit != "":
		return thresholdInUnit(kept, *filter.MinValue, filter.Unit, units)
	case filter.MinValue != nil:
		return threshold(kept, *filter.MinValue)
	case filter.Unit != "":
		return inUnit(kept, filter.Unit)
	default:
		return kept
	}
}

// threshold keeps rows whose normalized measurement meets min. Rows
// without a normalized measurement cannot satisfy a threshold and are
// dropped.
func threshold(results []ResultRecord, min float64) []ResultRecord {
	kept := make([]ResultRecord, 0, len(results))
	for _, rec := range results {
		if rec.MeasuredNorm != nil && *rec.MeasuredNorm >= min {
			kept = append(kept, rec)
		}
	}
	return kept
}

// inUnit keeps rows whose result unit matches exactly.
func inUnit(results []ResultRecord, unit string) []ResultRecord {
	kept := make([]ResultRecord, 0, len(results))
	for _, rec := range results {
		if rec.Unit == unit {
			kept = append(kept, rec)
		}
	}
	return kept
}

// thresholdInUnit applies a threshold expressed in a specific unit. When
// some rows already carry that unit the threshold only applies to them;
// otherwise every row is converted into the unit for comparison, silently
// dropping rows whose unit cannot convert.
func thresholdInUnit(results []ResultRecord, min float64, unit string, units *domain.UnitRegistry) []ResultRecord {
	sameUnit := false
	for _, rec := range results {
		if rec.Unit == unit {
			sameUnit = true
			break
		}
	}

	kept := make([]ResultRecord, 0, len(results))
	for _, rec := range results {
		if rec.MeasuredNorm == nil {
			continue
		}

		if sameUnit {
			if rec.Unit == unit && *rec.MeasuredNorm >= min {
				kept = append(kept, rec)
			}
			continue
		}

		converted, err := units.Normalize(*rec.MeasuredNorm, rec.Unit, unit)
		if err != nil {
			continue
		}
		if converted >= min {
			kept = append(kept, rec)
		}
	}
	return kept
}

// suggestComponent returns the candidate closest to name by edit distance,
// if any is close enough to plausibly be a typo.
func suggestComponent(name string, candidates []string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", false
	}

	best := ""
	bestDist := suggestionMaxDistance + 1
	for _, candidate := range candidates {
		d := levenshtein.ComputeDistance(name, strings.ToLower(candidate))
		if d < bestDist {
			best, bestDist = candidate, d
		}
	}

	if best == "" {
		return "", false
	}
	return best, true
}
