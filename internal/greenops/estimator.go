package greenops

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// matchSource records which resolution step produced a food factor. It is
// used for debug logging only; callers see a plain emissions value.
type matchSource string

const (
	matchExact     matchSource = "exact"
	matchSubstring matchSource = "substring"
	matchKeyword   matchSource = "keyword"
	matchDefault   matchSource = "default"
)

// EstimateFood returns kg CO2e for portionGrams of the named food.
//
// Resolution order:
//  1. exact food-table key: factor * portion/ReferenceServingGrams
//  2. table keys containing the name (lowest factor wins), then table keys the
//     name contains (table order): same per-serving scaling
//  3. first category keyword contained in the name: portion/100 * factor
//  4. DefaultFoodFactorPer100g: portion/100 * 0.5
//
// The result is rounded to ResultPrecision decimals. Unknown foods are not an
// error; they resolve to the default factor.
func EstimateFood(name string, portionGrams float64) float64 {
	kg, source, key := resolveFood(name, portionGrams)
	log.Debug().
		Str("component", "greenops").
		Str("food", name).
		Str("match", string(source)).
		Str("key", key).
		Float64("portion_g", portionGrams).
		Float64("kg_co2e", kg).
		Msg("food estimate resolved")
	return kg
}

func resolveFood(name string, portionGrams float64) (float64, matchSource, string) {
	servings := portionGrams / ReferenceServingGrams

	if f, ok := foodIndex[name]; ok {
		return Round(f*servings, ResultPrecision), matchExact, name
	}

	if key, f, ok := substringMatch(name); ok {
		return Round(f*servings, ResultPrecision), matchSubstring, key
	}

	hundreds := portionGrams / GramsPerHundred
	for _, kw := range keywordFactorsPer100g {
		if strings.Contains(name, kw.Key) {
			return Round(hundreds*kw.Factor, ResultPrecision), matchKeyword, kw.Key
		}
	}

	return Round(hundreds*DefaultFoodFactorPer100g, ResultPrecision), matchDefault, ""
}

// substringMatch finds a food-table key related to name. Keys that contain the
// name are preferred and ranked by ascending factor; otherwise the first key
// (in table order) contained in the name is used.
func substringMatch(name string) (string, float64, bool) {
	if name == "" {
		return "", 0, false
	}

	similar := SearchFoods(name)
	if len(similar) > 0 {
		return similar[0].Name, similar[0].Factor, true
	}

	for _, e := range foodTable {
		if strings.Contains(name, e.Key) {
			return e.Key, e.Factor, true
		}
	}
	return "", 0, false
}

// FoodMatch is a food-table entry returned by SearchFoods.
type FoodMatch struct {
	Name     string   `json:"name"`
	Factor   float64  `json:"carbon_footprint"`
	Category Category `json:"category"`
}

// SearchFoods returns the food-table entries whose key contains query
// (case-insensitive), ordered by ascending factor. Ties keep table order.
func SearchFoods(query string) []FoodMatch {
	q := strings.ToLower(query)
	var matches []FoodMatch
	for _, e := range foodTable {
		if strings.Contains(strings.ToLower(e.Key), q) {
			matches = append(matches, FoodMatch{Name: e.Key, Factor: e.Factor, Category: Categorize(e.Key)})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Factor < matches[j].Factor
	})
	return matches
}

// Alternative is a lower-carbon dish from the same dish grouping.
type Alternative struct {
	Name                string  `json:"name"`
	Factor              float64 `json:"carbon_footprint"`
	Reduction           float64 `json:"carbon_reduction"`
	ReductionPercentage float64 `json:"reduction_percentage"`
}

// LowCarbonAlternatives returns up to maxResults dishes from the same dish
// grouping as name with a lower per-serving factor, largest reduction first.
// Names outside the food table yield nil.
func LowCarbonAlternatives(name string, maxResults int) []Alternative {
	original, ok := foodIndex[name]
	if !ok || maxResults <= 0 {
		return nil
	}

	var alts []Alternative
	for _, dish := range DishesInGroup(DishGroupOf(name)) {
		f, known := foodIndex[dish]
		if !known || f >= original {
			continue
		}
		reduction := original - f
		alts = append(alts, Alternative{
			Name:                dish,
			Factor:              f,
			Reduction:           Round(reduction, ResultPrecision),
			ReductionPercentage: Round(reduction/original*100, 1),
		})
	}
	sort.SliceStable(alts, func(i, j int) bool {
		return alts[i].Reduction > alts[j].Reduction
	})
	if len(alts) > maxResults {
		alts = alts[:maxResults]
	}
	return alts
}

// EstimateElectricity returns kg CO2e for kwh of grid electricity.
func EstimateElectricity(kwh float64) float64 {
	return Round(kwh*ElectricityFactorKgPerKWh, ResultPrecision)
}

// EstimateGas returns kg CO2e for m3 of city gas.
func EstimateGas(m3 float64) float64 {
	return Round(m3*CityGasFactorKgPerM3, ResultPrecision)
}

// EstimateTransport returns kg CO2e for km travelled by mode. Unknown modes
// have a zero factor.
func EstimateTransport(mode string, km float64) float64 {
	return Round(km*TransportFactor(mode), ResultPrecision)
}

// EstimateFuel returns kg CO2e for liters of fuel. Unknown fuels have a zero factor.
func EstimateFuel(fuel string, liters float64) float64 {
	return Round(liters*FuelFactor(fuel), ResultPrecision)
}

// EnergyReading is a household energy reading. Measured quantities take
// precedence over bill amounts (KRW) for the same source.
type EnergyReading struct {
	ElectricityKWh  float64 `json:"electricity_kwh,omitempty"  yaml:"electricity_kwh,omitempty"`
	ElectricityBill float64 `json:"electricity_bill,omitempty" yaml:"electricity_bill,omitempty"`
	GasM3           float64 `json:"gas_m3,omitempty"           yaml:"gas_m3,omitempty"`
	GasBill         float64 `json:"gas_bill,omitempty"         yaml:"gas_bill,omitempty"`
}

// EstimateEnergy estimates an energy reading, inferring usage from bills when
// no measured quantity is given.
func EstimateEnergy(r EnergyReading) EnergyBreakdown {
	var out EnergyBreakdown

	switch {
	case r.ElectricityKWh > 0:
		out.ElectricityKWh = r.ElectricityKWh
	case r.ElectricityBill > 0:
		out.ElectricityKWh = r.ElectricityBill / AverageElectricityPricePerKWh
	}

	switch {
	case r.GasM3 > 0:
		out.GasM3 = r.GasM3
	case r.GasBill > 0:
		out.GasM3 = r.GasBill / AverageGasPricePerM3
	}

	elec := out.ElectricityKWh * ElectricityFactorKgPerKWh
	gas := out.GasM3 * CityGasFactorKgPerM3
	out.ElectricityEmissions = Round(elec, ResultPrecision)
	out.GasEmissions = Round(gas, ResultPrecision)
	out.TotalEmissions = Round(elec+gas, ResultPrecision)
	return out
}

// TripInput describes a trip by distance, or by fuel burned for car modes.
type TripInput struct {
	Mode       string  `json:"mode"                  yaml:"mode"`
	DistanceKM float64 `json:"distance_km,omitempty" yaml:"distance_km,omitempty"`
	FuelLiters float64 `json:"fuel_liters,omitempty" yaml:"fuel_liters,omitempty"`
}

// EstimateTrip estimates a trip. A distance uses the per-km table. Without a
// distance, car modes are estimated from fuel liters: gasoline when the mode
// names gasoline, diesel otherwise. Gasoline and diesel cars also get an
// inferred distance from the assumed fuel efficiency.
func EstimateTrip(in TripInput) TripEstimate {
	out := TripEstimate{Mode: in.Mode, DistanceKM: in.DistanceKM}

	switch {
	case in.DistanceKM > 0:
		out.Emissions = EstimateTransport(in.Mode, in.DistanceKM)
	case in.FuelLiters > 0 && strings.Contains(in.Mode, "car"):
		fuel := "diesel"
		if strings.Contains(in.Mode, "gasoline") {
			fuel = "gasoline"
		}
		out.Emissions = EstimateFuel(fuel, in.FuelLiters)

		var kmPerLiter float64
		switch in.Mode {
		case "car_gasoline":
			kmPerLiter = GasolineCarKmPerLiter
		case "car_diesel":
			kmPerLiter = DieselCarKmPerLiter
		}
		if kmPerLiter > 0 {
			out.DistanceKM = in.FuelLiters * kmPerLiter
			out.EfficiencyNote = fmt.Sprintf("추정 주행거리: %.1fkm (연비 %.0fkm/L 기준)", out.DistanceKM, kmPerLiter)
		}
	}

	return out
}

// EstimateActivity estimates a tagged activity. Quantities are normalised with
// NormalizeQuantity first, so only malformed quantities and unrecognised kinds
// return an error; unknown identifiers fall back to default or zero factors.
func EstimateActivity(in ActivityInput) (Estimate, error) {
	if in.Kind == KindUnrecognized {
		return Estimate{}, fmt.Errorf("%w: %s", ErrUnrecognizedKind, in.Kind)
	}

	qty, err := NormalizeQuantity(in.Kind, in.Quantity, in.Unit)
	if err != nil {
		return Estimate{}, fmt.Errorf("normalizing %s quantity: %w", in.Kind, err)
	}

	out := Estimate{Kind: in.Kind, Identifier: in.Identifier, Quantity: qty}

	switch in.Kind {
	case KindMeal:
		out.Emissions = EstimateFood(in.Identifier, qty)
		out.Category = Categorize(in.Identifier)
	case KindEnergy:
		if strings.EqualFold(in.Identifier, EnergyGas) {
			out.Emissions = EstimateGas(qty)
		} else if strings.EqualFold(in.Identifier, EnergyElectricity) {
			out.Emissions = EstimateElectricity(qty)
		}
	case KindTransport:
		out.Emissions = EstimateTransport(in.Identifier, qty)
	case KindFuel:
		out.Emissions = EstimateFuel(in.Identifier, qty)
	case KindUnrecognized:
	}

	out.Rating = RateSustainability(out.Emissions)
	return out, nil
}
