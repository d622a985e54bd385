package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitRegistry_Normalize(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		from    string
		to      string
		want    float64
		wantErr error
	}{
		{
			name:  "kilonewtons to newtons",
			value: 5.5,
			from:  "kN",
			to:    "N",
			want:  5500,
		},
		{
			name:  "newtons to kilonewtons",
			value: 6000,
			from:  "N",
			to:    "kN",
			want:  6.0,
		},
		{
			name:  "same unit is identity",
			value: 42.5,
			from:  "mm",
			to:    "mm",
			want:  42.5,
		},
		{
			name:  "millimetres to metres",
			value: 1500,
			from:  "mm",
			to:    "m",
			want:  1.5,
		},
		{
			name:    "force into length is incompatible",
			value:   1,
			from:    "kN",
			to:      "mm",
			wantErr: ErrIncompatibleUnits,
		},
		{
			name:    "unknown source unit",
			value:   1,
			from:    "furlong",
			to:      "mm",
			wantErr: ErrUnknownUnit,
		},
		{
			name:    "unknown target unit",
			value:   1,
			from:    "N",
			to:      "psi",
			wantErr: ErrUnknownUnit,
		},
		{
			name:    "empty target unit",
			value:   1,
			from:    "N",
			to:      "",
			wantErr: ErrUnknownUnit,
		},
	}

	reg := NewUnitRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reg.Normalize(tt.value, tt.from, tt.to)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)

				var convErr *UnitConversionError
				require.ErrorAs(t, err, &convErr)
				assert.Equal(t, tt.from, convErr.From)
				assert.Equal(t, tt.to, convErr.To)
				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestUnitRegistry_NormalizeInverseConsistent(t *testing.T) {
	pairs := [][2]string{
		{"kN", "N"},
		{"N", "MN"},
		{"mm", "m"},
		{"cm", "mm"},
		{"N", "N"},
	}

	reg := NewUnitRegistry()
	for _, p := range pairs {
		forward, err := reg.Normalize(123.456, p[0], p[1])
		require.NoError(t, err)

		back, err := reg.Normalize(forward, p[1], p[0])
		require.NoError(t, err)
		assert.InDelta(t, 123.456, back, 1e-9, "round trip %s -> %s -> %s", p[0], p[1], p[0])
	}
}

func TestUnitRegistry_Register(t *testing.T) {
	reg := NewUnitRegistry()
	reg.Register("lbf", DimForce, 4.4482216152605)

	got, err := reg.Normalize(1, "lbf", "N")
	require.NoError(t, err)
	assert.InDelta(t, 4.4482216152605, got, 1e-12)

	_, err = reg.Normalize(1, "lbf", "mm")
	assert.ErrorIs(t, err, ErrIncompatibleUnits)
}

func TestUnitRegistry_Canonical(t *testing.T) {
	tests := []struct {
		token string
		want  string
		ok    bool
	}{
		{"kN", "kN", true},
		{"kn", "kN", true},
		{"KN", "kN", true},
		{"N", "N", true},
		{"mm", "mm", true},
		{"MM", "mm", true},
		{"psi", "", false},
		{"", "", false},
	}

	reg := NewUnitRegistry()
	for _, tt := range tests {
		got, ok := reg.Canonical(tt.token)
		assert.Equal(t, tt.ok, ok, "token %q", tt.token)
		assert.Equal(t, tt.want, got, "token %q", tt.token)
	}
}
