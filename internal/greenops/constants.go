package greenops

// Serving and fallback constants used by the food estimator.
const (
	// ReferenceServingGrams is the portion size, in grams, that one entry of the
	// food table describes. Table factors are kg CO2e per 200 g serving.
	ReferenceServingGrams = 200.0

	// GramsPerHundred is the basis of the keyword and default factors.
	GramsPerHundred = 100.0

	// DefaultFoodFactorPer100g is the kg CO2e per 100 g applied when a food
	// identifier matches no table entry and no keyword.
	DefaultFoodFactorPer100g = 0.5

	// ResultPrecision is the number of decimal places every estimate is rounded to.
	ResultPrecision = 3
)

// Korean national emission factors (Ministry of Environment, 2024 approval).
const (
	// ElectricityFactorKgPerKWh is kg CO2e per kWh of grid electricity.
	ElectricityFactorKgPerKWh = 0.4541

	// CityGasFactorKgPerM3 is kg CO2e per cubic metre of city gas.
	CityGasFactorKgPerM3 = 2.176
)

// Bill-based usage estimation constants (KRW).
const (
	// AverageElectricityPricePerKWh converts an electricity bill into kWh.
	AverageElectricityPricePerKWh = 120.0

	// AverageGasPricePerM3 converts a gas bill into cubic metres.
	AverageGasPricePerM3 = 800.0
)

// Fuel efficiency assumptions used to infer a trip distance from fuel use.
const (
	// GasolineCarKmPerLiter is the assumed efficiency of a gasoline passenger car.
	GasolineCarKmPerLiter = 12.0

	// DieselCarKmPerLiter is the assumed efficiency of a diesel passenger car.
	DieselCarKmPerLiter = 15.0
)

// Sustainability rating thresholds, kg CO2e per logged item.
const (
	// HighSustainabilityBelow is the exclusive upper bound of the HIGH rating.
	HighSustainabilityBelow = 0.5

	// MediumSustainabilityBelow is the exclusive upper bound of the MEDIUM rating.
	MediumSustainabilityBelow = 1.5
)

// Equivalency factors used to make savings relatable.
const (
	// TreeSeedlingFactorKg is kg CO2e absorbed per tree seedling over 10 years.
	// Source: EPA GHG Equivalencies Calculator (2024 edition).
	TreeSeedlingFactorKg = 60.0

	// SmartphoneChargeFactorKg is kg CO2e per smartphone charge.
	SmartphoneChargeFactorKg = 0.00822
)

// Display thresholds for formatted output.
const (
	// MinDisplayThresholdKg is the minimum kg CO2e for any display.
	MinDisplayThresholdKg = 0.001
)
