package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequirement_Merge(t *testing.T) {
	extracted := Requirement{
		Metric:     "shear_strength",
		Comparator: "≥",
		Value:      floatPtr(5.5),
		Unit:       "kN",
		Component:  "door_frame",
		Condition:  "ambient",
	}

	t.Run("fills only missing fields", func(t *testing.T) {
		partial := Requirement{Metric: "gap", Unit: "mm"}
		got := partial.Merge(extracted)

		assert.Equal(t, "gap", got.Metric, "populated field is never overwritten")
		assert.Equal(t, "mm", got.Unit)
		assert.Equal(t, Comparator("≥"), got.Comparator)
		assert.Equal(t, 5.5, *got.Value)
		assert.Equal(t, "door_frame", got.Component)
		assert.Equal(t, "ambient", got.Condition)
	})

	t.Run("fully populated requirement is unchanged", func(t *testing.T) {
		full := Requirement{
			Metric:     "rigidity",
			Comparator: "<",
			Value:      floatPtr(2),
			Unit:       "mm",
			Component:  "panel",
			Condition:  "-30°C",
		}
		got := full.Merge(extracted)
		assert.Equal(t, full, got)
	})

	t.Run("zero target value is treated as populated", func(t *testing.T) {
		withZero := Requirement{Value: floatPtr(0)}
		got := withZero.Merge(extracted)
		assert.Equal(t, 0.0, *got.Value)
	})

	t.Run("merge into zero value takes everything", func(t *testing.T) {
		got := Requirement{}.Merge(extracted)
		assert.Equal(t, extracted, got)
	})
}

func TestRequirement_Complete(t *testing.T) {
	assert.True(t, Requirement{Comparator: "≥", Value: floatPtr(1), Unit: "N"}.Complete())
	assert.False(t, Requirement{Comparator: "≥", Unit: "N"}.Complete())
	assert.False(t, Requirement{Comparator: "≥", Value: floatPtr(1)}.Complete())
	assert.False(t, Requirement{Value: floatPtr(1), Unit: "N"}.Complete())
}

func TestChatFilter_IsZero(t *testing.T) {
	assert.True(t, ChatFilter{}.IsZero())
	assert.False(t, ChatFilter{Status: StatusFail}.IsZero())
	assert.False(t, ChatFilter{MinValue: floatPtr(0)}.IsZero())
	assert.False(t, ChatFilter{Unit: "kN"}.IsZero())
}
