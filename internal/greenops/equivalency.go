package greenops

import (
	"math"

	"github.com/rs/zerolog/log"
)

// Equivalency expresses an amount of CO2e in relatable terms.
type Equivalency struct {
	InputKg float64 `json:"input_kg"`

	// Trees is the number of tree seedlings absorbing InputKg over ten years.
	Trees float64 `json:"trees"`

	// CarKM is the distance a gasoline passenger car emits InputKg over.
	CarKM float64 `json:"car_km"`

	// Phones is the number of smartphone charges emitting InputKg.
	Phones float64 `json:"smartphones"`

	IsEmpty bool `json:"-"`
}

// CalculateEquivalency converts a kg CO2e amount, typically accumulated
// savings, into trees, car kilometres and smartphone charges.
//
// Amounts below MinDisplayThresholdKg yield an empty result. Negative and
// non-finite amounts return an error.
func CalculateEquivalency(kg float64) (Equivalency, error) {
	if math.IsInf(kg, 0) || math.IsNaN(kg) {
		return Equivalency{IsEmpty: true}, ErrCalculationOverflow
	}
	if kg < 0 {
		return Equivalency{IsEmpty: true}, ErrNegativeValue
	}
	if kg < MinDisplayThresholdKg {
		return Equivalency{InputKg: kg, IsEmpty: true}, nil
	}

	out := Equivalency{
		InputKg: kg,
		Trees:   Round(kg/TreeSeedlingFactorKg, 1),
		Phones:  math.Round(kg / SmartphoneChargeFactorKg),
	}
	if perKM := TransportFactor("car_gasoline"); perKM > 0 {
		out.CarKM = Round(kg/perKM, 1)
	}

	log.Debug().
		Str("component", "greenops").
		Float64("kg", kg).
		Float64("trees", out.Trees).
		Float64("car_km", out.CarKM).
		Msg("equivalency calculated")
	return out, nil
}

// DisplayText renders the equivalency as a short Korean sentence, or an empty
// string for empty results.
func (e Equivalency) DisplayText() string {
	if e.IsEmpty {
		return ""
	}
	return printer.Sprintf("나무 %s그루 또는 자동차 %skm 운행과 같아요",
		FormatFloat(e.Trees, 1), FormatFloat(e.CarKM, 1))
}
