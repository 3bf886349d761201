package trends

import (
	"sort"
	"time"

	"github.com/rshade/ecoplate/internal/greenops"
)

// EnergyWindow is how far back MonthlyEnergyAverage looks.
const EnergyWindow = 180 * 24 * time.Hour

// Monthly energy recommendation tiers, kg CO2e per month.
const (
	highMonthlyEnergyKg     = 150.0
	moderateMonthlyEnergyKg = 100.0
)

// Energy recommendations.
const (
	EnergyAdviceNoData   = "아직 에너지 사용 데이터가 없습니다. 전기/가스 사용량을 기록해보세요!"
	EnergyAdviceHigh     = "평균보다 높은 에너지 사용량입니다. LED 전구 교체나 절전형 가전제품 사용을 고려해보세요."
	EnergyAdviceModerate = "적정 수준의 에너지 사용량입니다. 조금 더 절약해보면 어떨까요?"
	EnergyAdviceLow      = "훌륭한 에너지 절약 실천입니다! 계속 유지해주세요."
)

// EnergyRecord is one logged household energy reading.
type EnergyRecord struct {
	LoggedAt  time.Time `json:"logged_at"`
	EnergyKWh float64   `json:"energy_usage"`
	Emissions float64   `json:"carbon_footprint"`
}

// MonthTotal is the energy total of one calendar month.
type MonthTotal struct {
	Month     string  `json:"month"`
	EnergyKWh float64 `json:"total_energy"`
	Emissions float64 `json:"total_carbon"`
}

// MonthlyEnergy is the monthly energy average with a recommendation.
type MonthlyEnergy struct {
	AverageEmissions float64      `json:"average_monthly_carbon"`
	AverageEnergyKWh float64      `json:"average_monthly_energy"`
	DataPoints       int          `json:"data_points"`
	Recommendation   string       `json:"recommendation"`
	Months           []MonthTotal `json:"months,omitempty"`
}

// MonthlyEnergyAverage averages per-calendar-month energy totals of the
// readings logged in the 180 days before now. Months without readings do not
// count towards the average.
func MonthlyEnergyAverage(records []EnergyRecord, now time.Time, loc *time.Location) MonthlyEnergy {
	start := now.Add(-EnergyWindow)
	byMonth := make(map[string]*MonthTotal)
	for _, r := range records {
		if !inWindow(r.LoggedAt, start, now) {
			continue
		}
		key := r.LoggedAt.In(location(loc)).Format("2006-01")
		m, ok := byMonth[key]
		if !ok {
			m = &MonthTotal{Month: key}
			byMonth[key] = m
		}
		m.EnergyKWh += r.EnergyKWh
		m.Emissions += r.Emissions
	}

	if len(byMonth) == 0 {
		return MonthlyEnergy{Recommendation: EnergyAdviceNoData}
	}

	months := make([]MonthTotal, 0, len(byMonth))
	var carbon, energy float64
	for _, m := range byMonth {
		carbon += m.Emissions
		energy += m.EnergyKWh
		months = append(months, MonthTotal{
			Month:     m.Month,
			EnergyKWh: greenops.Round(m.EnergyKWh, 2),
			Emissions: greenops.Round(m.Emissions, 2),
		})
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Month < months[j].Month })

	n := float64(len(months))
	avgCarbon := carbon / n
	return MonthlyEnergy{
		AverageEmissions: greenops.Round(avgCarbon, 2),
		AverageEnergyKWh: greenops.Round(energy/n, 2),
		DataPoints:       len(months),
		Recommendation:   energyAdvice(avgCarbon),
		Months:           months,
	}
}

func energyAdvice(avgCarbon float64) string {
	switch {
	case avgCarbon > highMonthlyEnergyKg:
		return EnergyAdviceHigh
	case avgCarbon > moderateMonthlyEnergyKg:
		return EnergyAdviceModerate
	default:
		return EnergyAdviceLow
	}
}
