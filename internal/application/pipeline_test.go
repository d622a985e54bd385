package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caliperhq/go-caliper/infrastructure/extract"
	"github.com/caliperhq/go-caliper/internal/domain"
	"github.com/caliperhq/go-caliper/internal/testutils"
)

func floatPtr(v float64) *float64 { return &v }

func newTestEngine() *Engine {
	return NewEngine(nil, extract.DefaultVocabulary(), nil)
}

func TestEngine_ExtractRequirements(t *testing.T) {
	engine := newTestEngine()

	records := []RequirementRecord{
		{ReqID: "R-1", FreeText: "Door shear strength must be at least 5.5 kN"},
		{
			ReqID:    "R-2",
			FreeText: "Panel gap equals 2 mm",
			Requirement: domain.Requirement{
				// A populated metric must survive extraction untouched.
				Metric: "custom_gap",
			},
		},
		{ReqID: "R-3"},
	}

	out := engine.ExtractRequirements(context.Background(), records)
	require.Len(t, out, 3)

	assert.Equal(t, domain.Requirement{
		Metric:     "shear_strength",
		Comparator: domain.CompGreaterEqual,
		Value:      floatPtr(5.5),
		Unit:       "kN",
		Component:  "door",
	}, out[0].Requirement)

	assert.Equal(t, "custom_gap", out[1].Metric)
	assert.Equal(t, domain.CompEqual, out[1].Comparator)
	assert.Equal(t, floatPtr(2.0), out[1].Value)

	// No free text, nothing to do.
	assert.Equal(t, domain.Requirement{}, out[2].Requirement)

	// Idempotence: a second run changes nothing.
	again := engine.ExtractRequirements(context.Background(), out)
	assert.Equal(t, out, again)
}

func TestEngine_ExtractRequirements_FillsGapsOnValidatableRows(t *testing.T) {
	engine := newTestEngine()

	// The row can already validate (comparator, value, unit) but is still
	// missing metric and component; those come from the free text.
	records := []RequirementRecord{
		{
			ReqID:    "R-1",
			FreeText: "Door shear strength must be at least 5.5 kN",
			Requirement: domain.Requirement{
				Comparator: domain.CompGreaterEqual,
				Value:      floatPtr(5.5),
				Unit:       "kN",
			},
		},
	}

	out := engine.ExtractRequirements(context.Background(), records)
	require.Len(t, out, 1)

	assert.Equal(t, "shear_strength", out[0].Metric)
	assert.Equal(t, "door", out[0].Component)

	// The populated fields stay exactly as given.
	assert.Equal(t, domain.CompGreaterEqual, out[0].Comparator)
	assert.Equal(t, floatPtr(5.5), out[0].Value)
	assert.Equal(t, "kN", out[0].Unit)
}

func TestEngine_Validate(t *testing.T) {
	engine := newTestEngine()

	requirements := []RequirementRecord{
		{
			ReqID: "R-1",
			Requirement: domain.Requirement{
				Metric:     "shear_strength",
				Comparator: domain.CompGreaterEqual,
				Value:      floatPtr(5.5),
				Unit:       "kN",
				Component:  "door",
			},
		},
		{
			ReqID: "R-2",
			Requirement: domain.Requirement{
				Metric:     "gap",
				Comparator: domain.CompLessEqual,
				Value:      floatPtr(3),
				Unit:       "mm",
				Component:  "panel",
			},
		},
	}

	tests := []TestRecord{
		{TestID: "T-1", ReqID: "R-1", TestMeasurement: domain.TestMeasurement{MeasuredValue: 6000, Unit: "N"}},
		{TestID: "T-2", ReqID: "R-1", TestMeasurement: domain.TestMeasurement{MeasuredValue: 5000, Unit: "N", Component: "door_frame"}},
		{TestID: "T-3", ReqID: "R-2", TestMeasurement: domain.TestMeasurement{MeasuredValue: 4, Unit: "mm"}},
		{TestID: "T-4", ReqID: "R-404", TestMeasurement: domain.TestMeasurement{MeasuredValue: 1, Unit: "N"}},
		{TestID: "T-5", ReqID: "R-1", TestMeasurement: domain.TestMeasurement{MeasuredValue: 6, Unit: "mm"}},
	}

	results := engine.Validate(context.Background(), requirements, tests)
	require.Len(t, results, 5)

	// Cross-unit pass: 6000 N normalizes to 6 kN against a 5.5 kN target.
	assert.Equal(t, "T-1", results[0].TestID)
	assert.Equal(t, domain.StatusPass, results[0].Status)
	assert.Equal(t, floatPtr(6.0), results[0].MeasuredNorm)
	assert.Equal(t, floatPtr(5.5), results[0].Target)
	assert.Equal(t, "kN", results[0].Unit)
	assert.Equal(t, "door", results[0].Component)
	assert.Equal(t, "shear_strength", results[0].Metric)
	assert.Equal(t, "Pass: measured 6 kN meets target 5.5 kN.", results[0].Explanation)

	// The test row's component wins over the requirement's.
	assert.Equal(t, domain.StatusFail, results[1].Status)
	assert.Equal(t, "door_frame", results[1].Component)
	assert.Equal(t, "Fail: measured 5 kN is below target 5.5 kN.", results[1].Explanation)

	// Upper bound exceeded.
	assert.Equal(t, domain.StatusFail, results[2].Status)
	assert.Equal(t, "Fail: measured 4 mm is above target 3 mm.", results[2].Explanation)

	// No requirement with that ID.
	assert.Equal(t, domain.StatusUnknown, results[3].Status)
	assert.Equal(t, domain.ReasonMissingTarget, results[3].Reason)
	assert.Equal(t, "Unknown: missing unit/comparator/data.", results[3].Explanation)

	// Length cannot convert into force.
	assert.Equal(t, domain.StatusUnknown, results[4].Status)
	assert.Equal(t, domain.ReasonUnitConversionFailed, results[4].Reason)
	assert.Nil(t, results[4].MeasuredNorm)
}

func TestEngine_Validate_DuplicateRequirementIDs(t *testing.T) {
	engine := newTestEngine()

	requirements := []RequirementRecord{
		{ReqID: "R-1", Requirement: domain.Requirement{
			Comparator: domain.CompGreaterEqual, Value: floatPtr(5), Unit: "kN",
		}},
		{ReqID: "R-1", Requirement: domain.Requirement{
			Comparator: domain.CompGreaterEqual, Value: floatPtr(100), Unit: "kN",
		}},
	}
	tests := []TestRecord{
		{TestID: "T-1", ReqID: "R-1", TestMeasurement: domain.TestMeasurement{MeasuredValue: 6, Unit: "kN"}},
	}

	results := engine.Validate(context.Background(), requirements, tests)
	require.Len(t, results, 1)
	assert.Equal(t, domain.StatusPass, results[0].Status)
	assert.Equal(t, floatPtr(5.0), results[0].Target)
}

func TestEngine_Explain(t *testing.T) {
	rec := ResultRecord{
		TestID:    "T-1",
		ReqID:     "R-1",
		Component: "door",
		Metric:    "shear_strength",
		ValidationResult: domain.ValidationResult{
			Status:       domain.StatusPass,
			MeasuredNorm: floatPtr(6),
			Target:       floatPtr(5.5),
			Unit:         "kN",
		},
	}

	t.Run("no backend returns template", func(t *testing.T) {
		engine := newTestEngine()
		got := engine.Explain(context.Background(), rec)
		assert.Equal(t, "Pass: measured 6 kN meets target 5.5 kN.", got)
	})

	t.Run("backend answer wins", func(t *testing.T) {
		client := testutils.NewMockLLMClient("mock-model")
		client.AddResponse(testutils.MockResponse{
			Pattern:  "T-1",
			Response: "- The door cleared its shear target with margin.\n- No unit conversion was required.",
		})
		engine := NewEngine(client, extract.DefaultVocabulary(), nil)

		got := engine.Explain(context.Background(), rec)
		assert.Contains(t, got, "cleared its shear target")
	})
}

func TestEngine_Query(t *testing.T) {
	engine := newTestEngine()

	results := []ResultRecord{
		{TestID: "T-1", Component: "door", ValidationResult: domain.ValidationResult{
			Status: domain.StatusPass, MeasuredNorm: floatPtr(6), Unit: "kN",
		}},
		{TestID: "T-2", Component: "door", ValidationResult: domain.ValidationResult{
			Status: domain.StatusFail, MeasuredNorm: floatPtr(5), Unit: "kN",
		}},
		{TestID: "T-3", Component: "panel", ValidationResult: domain.ValidationResult{
			Status: domain.StatusFail, MeasuredNorm: floatPtr(4), Unit: "mm",
		}},
	}

	t.Run("status and component", func(t *testing.T) {
		filtered, filter := engine.Query(context.Background(), "show failed door tests", results)
		assert.Equal(t, domain.ChatFilter{Component: "door", Status: domain.StatusFail}, filter)
		require.Len(t, filtered, 1)
		assert.Equal(t, "T-2", filtered[0].TestID)
	})

	t.Run("unrecognized query returns everything", func(t *testing.T) {
		filtered, filter := engine.Query(context.Background(), "tell me a story", results)
		assert.True(t, filter.IsZero())
		assert.Equal(t, results, filtered)
	})
}

func TestEngine_SuggestComponent(t *testing.T) {
	engine := newTestEngine()

	got, ok := engine.SuggestComponent("dor")
	require.True(t, ok)
	assert.Equal(t, "door", got)

	_, ok = engine.SuggestComponent("flux_capacitor")
	assert.False(t, ok)
}
