// Package greenops estimates greenhouse-gas emissions for logged activities.
//
// It resolves a food name, an energy reading, a transport trip or a fuel
// purchase against static Korean reference tables and returns an emissions
// value in kg CO2e, together with a food category and a sustainability rating.
// All functions are pure; the tables are package-level and read-only.
package greenops

import (
	"fmt"
	"strings"
)

// ActivityKind identifies what a logged activity describes.
type ActivityKind int

const (
	// KindUnrecognized is returned by ParseActivityKind for unknown keys.
	KindUnrecognized ActivityKind = iota

	// KindMeal is a food item with a portion in grams.
	KindMeal

	// KindEnergy is household electricity (kWh) or city gas (m³) usage.
	KindEnergy

	// KindTransport is a trip with a transport mode and a distance in km.
	KindTransport

	// KindFuel is a fuel purchase in liters.
	KindFuel
)

// String returns the canonical key of the ActivityKind.
func (k ActivityKind) String() string {
	switch k {
	case KindMeal:
		return "meal"
	case KindEnergy:
		return "energy"
	case KindTransport:
		return "transport"
	case KindFuel:
		return "fuel"
	case KindUnrecognized:
		return "unrecognized"
	default:
		return fmt.Sprintf("ActivityKind(%d)", k)
	}
}

// MarshalText encodes the kind as its canonical key.
func (k ActivityKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a key with ParseActivityKind; it never fails.
func (k *ActivityKind) UnmarshalText(b []byte) error {
	*k = ParseActivityKind(string(b))
	return nil
}

// ParseActivityKind maps a string key to an ActivityKind. The mapping is total:
// unknown keys yield KindUnrecognized rather than an error.
func ParseActivityKind(s string) ActivityKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "meal", "food":
		return KindMeal
	case "energy":
		return KindEnergy
	case "transport":
		return KindTransport
	case "fuel":
		return KindFuel
	default:
		return KindUnrecognized
	}
}

// Energy source identifiers accepted for KindEnergy.
const (
	EnergyElectricity = "electricity"
	EnergyGas         = "gas"
)

// Category is a food category label.
type Category string

// Food categories, in classification order.
const (
	CategoryMeat      Category = "육류"
	CategorySeafood   Category = "해산물"
	CategoryDairy     Category = "유제품"
	CategoryGrain     Category = "곡물"
	CategoryVegetable Category = "채소"
	CategoryFruit     Category = "과일"
	CategoryOther     Category = "기타"
)


// Rating is a sustainability rating derived from an emissions value.
type Rating string

// Sustainability ratings. HIGH means the most sustainable choice.
const (
	RatingHigh   Rating = "HIGH"
	RatingMedium Rating = "MEDIUM"
	RatingLow    Rating = "LOW"
)

// ActivityInput is a tagged activity description passed to EstimateActivity.
type ActivityInput struct {
	// Kind selects which table Identifier is resolved against.
	Kind ActivityKind `json:"kind"`

	// Identifier is a food name, an energy source, a transport mode or a fuel type.
	Identifier string `json:"identifier"`

	// Quantity is the amount in Unit.
	Quantity float64 `json:"quantity"`

	// Unit is the unit of Quantity. Empty selects the kind's base unit
	// (g, kWh or m³, km, L).
	Unit string `json:"unit,omitempty"`
}

// Estimate is the result of estimating one activity.
type Estimate struct {
	Kind       ActivityKind `json:"kind"`
	Identifier string       `json:"identifier"`

	// Quantity is the input quantity normalised to the kind's base unit.
	Quantity float64 `json:"quantity"`

	// Emissions is kg CO2e rounded to ResultPrecision decimals.
	Emissions float64 `json:"emissions"`

	// Category is the food category for meals and empty otherwise.
	Category Category `json:"category,omitempty"`

	// Rating is the sustainability rating of Emissions.
	Rating Rating `json:"rating"`
}

// EnergyBreakdown is the result of estimating a household energy reading.
type EnergyBreakdown struct {
	ElectricityKWh       float64 `json:"electricity_kwh"`
	GasM3                float64 `json:"gas_m3"`
	ElectricityEmissions float64 `json:"electricity_emissions"`
	GasEmissions         float64 `json:"gas_emissions"`
	TotalEmissions       float64 `json:"total_emissions"`
}

// TripEstimate is the result of estimating a transport activity.
type TripEstimate struct {
	Mode       string  `json:"mode"`
	DistanceKM float64 `json:"distance_km"`
	Emissions  float64 `json:"emissions"`

	// EfficiencyNote explains an inferred distance when the trip was given in liters.
	EfficiencyNote string `json:"efficiency_note,omitempty"`
}
