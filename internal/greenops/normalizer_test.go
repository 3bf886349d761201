package greenops

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeQuantity(t *testing.T) {
	tests := []struct {
		name    string
		kind    ActivityKind
		value   float64
		unit    string
		want    float64
		wantErr error
	}{
		{name: "grams base unit", kind: KindMeal, value: 150, unit: "g", want: 150},
		{name: "empty unit is base", kind: KindMeal, value: 150, unit: "", want: 150},
		{name: "kilograms", kind: KindMeal, value: 0.2, unit: "kg", want: 200},
		{name: "korean serving", kind: KindMeal, value: 1.5, unit: "인분", want: 300},
		{name: "uppercase unit", kind: KindMeal, value: 1, unit: "KG", want: 1000},
		{name: "watt hours", kind: KindEnergy, value: 1500, unit: "Wh", want: 1.5},
		{name: "cubic metres", kind: KindEnergy, value: 12, unit: "m³", want: 12},
		{name: "metres", kind: KindTransport, value: 2500, unit: "m", want: 2.5},
		{name: "miles", kind: KindTransport, value: 10, unit: "mi", want: 16.09344},
		{name: "millilitres", kind: KindFuel, value: 500, unit: "ml", want: 0.5},
		{name: "zero is valid", kind: KindMeal, value: 0, unit: "g", want: 0},
		{name: "unit from another kind", kind: KindMeal, value: 1, unit: "km", wantErr: ErrInvalidUnit},
		{name: "unknown unit", kind: KindFuel, value: 1, unit: "gallon", wantErr: ErrInvalidUnit},
		{name: "unrecognized kind", kind: KindUnrecognized, value: 1, unit: "", wantErr: ErrInvalidUnit},
		{name: "negative", kind: KindMeal, value: -1, unit: "g", wantErr: ErrNegativeValue},
		{name: "infinity", kind: KindMeal, value: math.Inf(1), unit: "g", wantErr: ErrCalculationOverflow},
		{name: "nan", kind: KindMeal, value: math.NaN(), unit: "g", wantErr: ErrCalculationOverflow},
		{name: "overflowing result", kind: KindMeal, value: math.MaxFloat64, unit: "kg", wantErr: ErrCalculationOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeQuantity(tt.kind, tt.value, tt.unit)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestRound(t *testing.T) {
	assert.InDelta(t, 1.235, Round(1.23456, 3), 1e-12)
	assert.InDelta(t, 3.0, Round(2.5, 0), 1e-12)
	assert.InDelta(t, -3.0, Round(-2.5, 0), 1e-12)
	assert.InDelta(t, 0.1, Round(0.1234, 1), 1e-12)
}
