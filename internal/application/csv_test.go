package application

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caliperhq/go-caliper/internal/domain"
)

func TestReadRequirements(t *testing.T) {
	t.Run("full columns", func(t *testing.T) {
		input := "req_id,text,metric,comparator,value,unit,component,condition\n" +
			"R-1,Door shear at least 5.5 kN,shear_strength,≥,5.5,kN,door,ambient\n"

		records, err := ReadRequirements(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, records, 1)

		rec := records[0]
		assert.Equal(t, "R-1", rec.ReqID)
		assert.Equal(t, "Door shear at least 5.5 kN", rec.FreeText)
		assert.Equal(t, "shear_strength", rec.Metric)
		assert.Equal(t, domain.CompGreaterEqual, rec.Comparator)
		require.NotNil(t, rec.Value)
		assert.Equal(t, 5.5, *rec.Value)
		assert.Equal(t, "kN", rec.Unit)
		assert.Equal(t, "door", rec.Component)
		assert.Equal(t, "ambient", rec.Condition)
	})

	t.Run("text only, reordered columns", func(t *testing.T) {
		input := "text,req_id\nPanel gap equals 2 mm,R-2\n"

		records, err := ReadRequirements(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "R-2", records[0].ReqID)
		assert.Equal(t, "Panel gap equals 2 mm", records[0].FreeText)
		assert.False(t, records[0].Complete())
	})

	t.Run("unknown columns ignored", func(t *testing.T) {
		input := "req_id,text,reviewer\nR-3,whatever,alice\n"

		records, err := ReadRequirements(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "R-3", records[0].ReqID)
	})

	t.Run("missing req_id rejected", func(t *testing.T) {
		input := "req_id,text\n,no id here\n"

		_, err := ReadRequirements(strings.NewReader(input))
		assert.ErrorContains(t, err, "missing req_id")
	})

	t.Run("bad value rejected", func(t *testing.T) {
		input := "req_id,value\nR-4,lots\n"

		_, err := ReadRequirements(strings.NewReader(input))
		assert.ErrorContains(t, err, `value "lots"`)
	})

	t.Run("empty input rejected", func(t *testing.T) {
		_, err := ReadRequirements(strings.NewReader(""))
		assert.ErrorContains(t, err, "no header row")
	})
}

func TestReadTestReports(t *testing.T) {
	t.Run("valid table", func(t *testing.T) {
		input := "test_id,req_id,measured_value,unit,component\n" +
			"T-1,R-1,6000,N,door\n" +
			"T-2,R-2,2.1,mm,\n"

		records, err := ReadTestReports(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, records, 2)

		assert.Equal(t, "T-1", records[0].TestID)
		assert.Equal(t, "R-1", records[0].ReqID)
		assert.Equal(t, 6000.0, records[0].MeasuredValue)
		assert.Equal(t, "N", records[0].Unit)
		assert.Equal(t, "door", records[0].Component)

		assert.Equal(t, "", records[1].Component)
	})

	t.Run("missing measured_value rejected", func(t *testing.T) {
		input := "test_id,req_id,measured_value\nT-1,R-1,\n"

		_, err := ReadTestReports(strings.NewReader(input))
		assert.ErrorContains(t, err, "missing measured_value")
	})

	t.Run("missing keys rejected", func(t *testing.T) {
		input := "test_id,req_id,measured_value\nT-1,,5\n"

		_, err := ReadTestReports(strings.NewReader(input))
		assert.ErrorContains(t, err, "missing test_id or req_id")
	})
}

func TestWriteRequirementsRoundTrip(t *testing.T) {
	value := 5.5
	records := []RequirementRecord{
		{
			ReqID:    "R-1",
			FreeText: "Door shear at least 5.5 kN",
			Requirement: domain.Requirement{
				Metric:     "shear_strength",
				Comparator: domain.CompGreaterEqual,
				Value:      &value,
				Unit:       "kN",
				Component:  "door",
			},
		},
		{ReqID: "R-2", FreeText: "unextracted"},
	}

	var buf strings.Builder
	require.NoError(t, WriteRequirements(&buf, records))

	readBack, err := ReadRequirements(strings.NewReader(buf.String()))
	require.NoError(t, err)
	assert.Equal(t, records, readBack)
}

func TestWriteResults(t *testing.T) {
	norm, target := 6.0, 5.5
	records := []ResultRecord{
		{
			TestID:    "T-1",
			ReqID:     "R-1",
			Component: "door",
			Metric:    "shear_strength",
			ValidationResult: domain.ValidationResult{
				Status:       domain.StatusPass,
				MeasuredNorm: &norm,
				Target:       &target,
				Unit:         "kN",
				Explanation:  "Pass: measured 6 kN meets target 5.5 kN.",
			},
		},
		{
			TestID: "T-2",
			ReqID:  "R-9",
			ValidationResult: domain.ValidationResult{
				Status: domain.StatusUnknown,
				Reason: domain.ReasonMissingTarget,
			},
		},
	}

	var buf strings.Builder
	require.NoError(t, WriteResults(&buf, records))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "test_id,req_id,component,metric,status,reason,measured_norm,target,unit,explanation", lines[0])
	assert.Equal(t, "T-1,R-1,door,shear_strength,pass,,6,5.5,kN,Pass: measured 6 kN meets target 5.5 kN.", lines[1])
	assert.Equal(t, "T-2,R-9,,,unknown,missing_target,,,,", lines[2])
}
