package greenops

import "strings"

// transportFactorsPerKM is kg CO2e per passenger-km by transport mode.
//
//nolint:gochecknoglobals // Read-only reference data.
var transportFactorsPerKM = []FactorEntry{
	// Private
	{"car_gasoline", 0.2157},
	{"car_diesel", 0.1943},
	{"car_lpg", 0.1847},
	{"motorcycle", 0.0988},
	// Public
	{"bus_city", 0.0648},
	{"bus_express", 0.0432},
	{"subway", 0.0288},
	{"train_ktx", 0.0156},
	{"train_regular", 0.0324},
	// Air
	{"airplane_domestic", 0.1576},
	{"airplane_international", 0.1899},
	// Low carbon
	{"bicycle", 0.0},
	{"walking", 0.0},
	{"electric_car", 0.0541},
}

// fuelFactorsPerLiter is kg CO2e per liter burned.
//
//nolint:gochecknoglobals // Read-only reference data.
var fuelFactorsPerLiter = []FactorEntry{
	{"gasoline", 2.27},
	{"diesel", 2.64},
	{"lpg", 1.68},
	{"kerosene", 2.46},
}

//nolint:gochecknoglobals // Built once from the tables above.
var (
	transportIndex = buildIndex(transportFactorsPerKM)
	fuelIndex      = buildIndex(fuelFactorsPerLiter)
)

// TransportGroup is a display grouping of transport modes.
type TransportGroup struct {
	Name  string
	Modes []TransportModeLabel
}

// TransportModeLabel pairs a transport mode key with its Korean label.
type TransportModeLabel struct {
	Mode  string
	Label string
}

// TransportModes returns transport modes grouped for display.
func TransportModes() []TransportGroup {
	return []TransportGroup{
		{"개인교통", []TransportModeLabel{
			{"car_gasoline", "승용차 (휘발유)"},
			{"car_diesel", "승용차 (경유)"},
			{"car_lpg", "승용차 (LPG)"},
			{"electric_car", "전기차"},
			{"motorcycle", "오토바이"},
		}},
		{"대중교통", []TransportModeLabel{
			{"bus_city", "시내버스"},
			{"bus_express", "고속버스"},
			{"subway", "지하철"},
			{"train_ktx", "KTX"},
			{"train_regular", "일반열차"},
		}},
		{"항공", []TransportModeLabel{
			{"airplane_domestic", "국내선"},
			{"airplane_international", "국제선"},
		}},
		{"친환경", []TransportModeLabel{
			{"bicycle", "자전거"},
			{"walking", "도보"},
		}},
	}
}

// TransportFactor returns the per-km factor for a mode, or 0 when unknown.
func TransportFactor(mode string) float64 {
	return transportIndex[strings.ToLower(mode)]
}

// FuelFactor returns the per-liter factor for a fuel, or 0 when unknown.
func FuelFactor(fuel string) float64 {
	return fuelIndex[strings.ToLower(fuel)]
}

// IsKnownTransportMode reports whether mode is a key of the transport table.
func IsKnownTransportMode(mode string) bool {
	_, ok := transportIndex[strings.ToLower(mode)]
	return ok
}

// TransportClass is the coarse transport category stored on an activity record.
type TransportClass string

// Transport classes. TransportUnrecognized is the explicit result for modes
// outside the table.
const (
	TransportCar          TransportClass = "car"
	TransportBus          TransportClass = "bus"
	TransportSubway       TransportClass = "subway"
	TransportBicycle      TransportClass = "bicycle"
	TransportWalking      TransportClass = "walking"
	TransportAirplane     TransportClass = "airplane"
	TransportTrain        TransportClass = "train"
	TransportMotorcycle   TransportClass = "motorcycle"
	TransportUnrecognized TransportClass = "unrecognized"
)

// ClassifyTransportMode maps a transport table key to its TransportClass.
// The mapping is total; unknown modes yield TransportUnrecognized.
func ClassifyTransportMode(mode string) TransportClass {
	m := strings.ToLower(strings.TrimSpace(mode))
	switch {
	case m == "electric_car" || strings.HasPrefix(m, "car_"):
		return TransportCar
	case strings.HasPrefix(m, "bus_"):
		return TransportBus
	case m == "subway":
		return TransportSubway
	case m == "bicycle":
		return TransportBicycle
	case m == "walking":
		return TransportWalking
	case strings.HasPrefix(m, "airplane_"):
		return TransportAirplane
	case strings.HasPrefix(m, "train_"):
		return TransportTrain
	case m == "motorcycle":
		return TransportMotorcycle
	default:
		return TransportUnrecognized
	}
}
