package store

import (
	"time"

	"github.com/rshade/ecoplate/internal/greenops"
	"github.com/rshade/ecoplate/internal/swap"
	"github.com/rshade/ecoplate/internal/trends"
)

// User is a local user profile.
type User struct {
	ID                string                 `json:"id"`
	Name              string                 `json:"name"`
	DietaryPreference swap.DietaryPreference `json:"dietary_preference"`
	CreatedAt         time.Time              `json:"created_at"`
}

// Activity is a logged activity with its estimated emissions. The fields
// used depend on Kind. Activities are never modified once stored.
type Activity struct {
	ID            string                  `json:"id"`
	UserID        string                  `json:"user_id"`
	Kind          greenops.ActivityKind   `json:"kind"`
	LoggedAt      time.Time               `json:"logged_at"`
	FoodName      string                  `json:"food_name,omitempty"`
	PortionGrams  float64                 `json:"portion_grams,omitempty"`
	MealType      string                  `json:"meal_type,omitempty"`
	EnergyKWh     float64                 `json:"energy_kwh,omitempty"`
	GasM3         float64                 `json:"gas_m3,omitempty"`
	TransportMode greenops.TransportClass `json:"transport_mode,omitempty"`
	DistanceKM    float64                 `json:"distance_km,omitempty"`
	Emissions     float64                 `json:"emissions"`
}

// Swap is a recommended substitution for a logged meal. Reduction is
// relative to the meal's emissions when the swap was created.
type Swap struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"user_id"`
	ActivityID          string    `json:"activity_id"`
	OriginalFood        string    `json:"original_food"`
	RecommendedFood     string    `json:"recommended_food"`
	Reduction           float64   `json:"carbon_reduction"`
	ReductionPercentage float64   `json:"reduction_percentage"`
	Message             string    `json:"message"`
	Category            string    `json:"category,omitempty"`
	Accepted            *bool     `json:"accepted,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// IsAccepted reports whether the swap was accepted.
func (s Swap) IsAccepted() bool {
	return s.Accepted != nil && *s.Accepted
}

// ActivityFilter selects activities. Zero fields match everything; Until is
// exclusive.
type ActivityFilter struct {
	UserID string
	Kind   greenops.ActivityKind
	Since  time.Time
	Until  time.Time
}

func (f ActivityFilter) matches(a *Activity) bool {
	if f.UserID != "" && a.UserID != f.UserID {
		return false
	}
	if f.Kind != greenops.KindUnrecognized && a.Kind != f.Kind {
		return false
	}
	if !f.Since.IsZero() && a.LoggedAt.Before(f.Since) {
		return false
	}
	if !f.Until.IsZero() && !a.LoggedAt.Before(f.Until) {
		return false
	}
	return true
}

// MealRecords converts meal activities to trend records.
func MealRecords(activities []Activity) []trends.Record {
	out := make([]trends.Record, 0, len(activities))
	for _, a := range activities {
		if a.Kind != greenops.KindMeal {
			continue
		}
		out = append(out, trends.Record{LoggedAt: a.LoggedAt, FoodName: a.FoodName, Emissions: a.Emissions})
	}
	return out
}

// EnergyRecords converts energy activities to trend energy records.
func EnergyRecords(activities []Activity) []trends.EnergyRecord {
	var out []trends.EnergyRecord
	for _, a := range activities {
		if a.Kind != greenops.KindEnergy {
			continue
		}
		out = append(out, trends.EnergyRecord{LoggedAt: a.LoggedAt, EnergyKWh: a.EnergyKWh, Emissions: a.Emissions})
	}
	return out
}

// SwapRecords converts swaps to trend swap records.
func SwapRecords(swaps []Swap) []trends.SwapRecord {
	out := make([]trends.SwapRecord, 0, len(swaps))
	for _, s := range swaps {
		out = append(out, trends.SwapRecord{CreatedAt: s.CreatedAt, Reduction: s.Reduction, Accepted: s.IsAccepted()})
	}
	return out
}
