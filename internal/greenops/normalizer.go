package greenops

import (
	"math"
	"strings"
)

// getUnitFactor returns the conversion factor from unit to the base unit of
// kind and whether the unit is recognised for that kind. Matching is
// case-insensitive. An empty unit selects the base unit.
//
// Base units: grams (meal), kWh or m³ (energy), km (transport), liters (fuel).
func getUnitFactor(kind ActivityKind, unit string) (float64, bool) {
	u := strings.ToLower(strings.TrimSpace(unit))
	switch kind {
	case KindMeal:
		switch u {
		case "", "g", "gram", "grams":
			return 1, true
		case "kg":
			return 1000, true
		case "serving", "servings", "인분":
			return ReferenceServingGrams, true
		}
	case KindEnergy:
		switch u {
		case "", "kwh", "m3", "m³":
			return 1, true
		case "wh":
			return 0.001, true
		case "mwh":
			return 1000, true
		}
	case KindTransport:
		switch u {
		case "", "km":
			return 1, true
		case "m":
			return 0.001, true
		case "mi":
			return 1.609344, true
		}
	case KindFuel:
		switch u {
		case "", "l", "liter", "liters":
			return 1, true
		case "ml":
			return 0.001, true
		}
	case KindUnrecognized:
		return 0, false
	}
	return 0, false
}

// NormalizeQuantity converts value in unit to the base unit of kind.
//
// Returns ErrCalculationOverflow for Inf/NaN input or an overflowing result,
// ErrNegativeValue for negative input and ErrInvalidUnit when the unit is not
// valid for the kind.
func NormalizeQuantity(kind ActivityKind, value float64, unit string) (float64, error) {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, ErrCalculationOverflow
	}

	if value < 0 {
		return 0, ErrNegativeValue
	}

	factor, ok := getUnitFactor(kind, unit)
	if !ok {
		return 0, ErrInvalidUnit
	}

	result := value * factor
	if math.IsInf(result, 0) {
		return 0, ErrCalculationOverflow
	}

	return result, nil
}

// Round rounds v half away from zero to the given number of decimal places.
func Round(v float64, places int) float64 {
	const base = 10
	m := math.Pow(base, float64(places))
	return math.Round(v*m) / m
}
