package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rshade/ecoplate/internal/greenops"
	"github.com/rshade/ecoplate/internal/logging"
	"github.com/rshade/ecoplate/internal/store"
)

var (
	// ErrUnsupportedFormat is returned for files that are neither YAML nor JSON.
	ErrUnsupportedFormat = errors.New("unsupported import file format")
	// ErrNoEntries is returned when a file holds no activities.
	ErrNoEntries = errors.New("import file contains no activities")
)

// Entry is one activity in an import file. Which fields apply depends on Kind.
type Entry struct {
	Kind     string    `json:"kind"                yaml:"kind"`
	LoggedAt time.Time `json:"logged_at,omitzero"  yaml:"logged_at,omitempty"`

	Food         string  `json:"food,omitempty"          yaml:"food,omitempty"`
	PortionGrams float64 `json:"portion_grams,omitempty" yaml:"portion_grams,omitempty"`
	MealType     string  `json:"meal_type,omitempty"     yaml:"meal_type,omitempty"`

	greenops.EnergyReading `yaml:",inline"`
	greenops.TripInput     `yaml:",inline"`
}

// File is the import document.
type File struct {
	Activities []Entry `json:"activities" yaml:"activities"`
}

// ParseFile reads path, choosing the decoder by extension.
func ParseFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}

	var doc File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	case ".json":
		err = json.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("parsing import file %s: %w", path, err)
	}
	if len(doc.Activities) == 0 {
		return nil, ErrNoEntries
	}
	return doc.Activities, nil
}

// ActivityWriter stores a batch of activities atomically.
type ActivityWriter interface {
	AddActivities(ctx context.Context, batch []store.Activity) ([]store.Activity, error)
}

// Skipped is an entry that could not be turned into an activity.
type Skipped struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// Result summarises an import.
type Result struct {
	Imported       int       `json:"imported"`
	TotalEmissions float64   `json:"total_emissions"`
	Skipped        []Skipped `json:"skipped,omitempty"`
}

// Importer estimates entries and writes them to a store.
type Importer struct {
	Writer      ActivityWriter
	BatchSize   int
	Concurrency int

	// Now stamps entries without a logged_at.
	Now func() time.Time
}

// Import estimates entries for userID and stores the valid ones in a single
// write. Invalid entries are reported in Result.Skipped, in file order.
func (im *Importer) Import(ctx context.Context, userID string, entries []Entry) (Result, error) {
	log := logging.FromContext(ctx).With().
		Str("component", "importer").
		Str("operation", "import").
		Logger()

	batchSize := im.BatchSize
	if batchSize == 0 {
		batchSize = DefaultBatchSize
	}
	concurrency := im.Concurrency
	if concurrency == 0 {
		concurrency = DefaultConcurrency
	}
	now := time.Now
	if im.Now != nil {
		now = im.Now
	}

	proc, err := NewProcessor[Entry](batchSize, concurrency)
	if err != nil {
		return Result{}, err
	}
	proc.WithProgress(func(p Progress) {
		log.Debug().
			Int("batch", p.ProcessedBatches).
			Int("batches", p.TotalBatches).
			Float64("percent", p.PercentComplete()).
			Msg("batch estimated")
	})

	stamp := now()
	activities := make([]*store.Activity, len(entries))
	reasons := make([]string, len(entries))

	err = proc.Process(ctx, entries, func(_ context.Context, batch []Entry, start, _ int) error {
		for i, e := range batch {
			a, reason := toActivity(userID, e, stamp)
			if reason != "" {
				reasons[start+i] = reason
				continue
			}
			activities[start+i] = &a
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	var res Result
	batch := make([]store.Activity, 0, len(entries))
	for i, a := range activities {
		if a == nil {
			res.Skipped = append(res.Skipped, Skipped{Index: i, Reason: reasons[i]})
			continue
		}
		batch = append(batch, *a)
		res.TotalEmissions += a.Emissions
	}
	res.TotalEmissions = greenops.Round(res.TotalEmissions, greenops.ResultPrecision)

	if len(batch) > 0 {
		if _, err = im.Writer.AddActivities(ctx, batch); err != nil {
			return Result{}, fmt.Errorf("storing imported activities: %w", err)
		}
	}
	res.Imported = len(batch)

	log.Info().
		Int("imported", res.Imported).
		Int("skipped", len(res.Skipped)).
		Float64("kg_co2e", res.TotalEmissions).
		Msg("import complete")
	return res, nil
}

// toActivity estimates one entry. A non-empty reason means the entry is skipped.
func toActivity(userID string, e Entry, now time.Time) (store.Activity, string) {
	a := store.Activity{UserID: userID, LoggedAt: e.LoggedAt}
	if a.LoggedAt.IsZero() {
		a.LoggedAt = now
	}

	switch a.Kind = greenops.ParseActivityKind(e.Kind); a.Kind {
	case greenops.KindMeal:
		if e.Food == "" || e.PortionGrams <= 0 {
			return a, "meal needs food and a positive portion_grams"
		}
		a.FoodName = e.Food
		a.PortionGrams = e.PortionGrams
		a.MealType = e.MealType
		a.Emissions = greenops.EstimateFood(e.Food, e.PortionGrams)
	case greenops.KindEnergy:
		b := greenops.EstimateEnergy(e.EnergyReading)
		if b.ElectricityKWh <= 0 && b.GasM3 <= 0 {
			return a, "energy needs usage or a bill amount"
		}
		a.EnergyKWh = b.ElectricityKWh
		a.GasM3 = b.GasM3
		a.Emissions = b.TotalEmissions
	case greenops.KindTransport:
		if !greenops.IsKnownTransportMode(e.Mode) {
			return a, fmt.Sprintf("unknown transport mode %q", e.Mode)
		}
		trip := greenops.EstimateTrip(e.TripInput)
		if trip.DistanceKM <= 0 && trip.Emissions <= 0 {
			return a, "transport needs distance_km or fuel_liters"
		}
		a.TransportMode = greenops.ClassifyTransportMode(e.Mode)
		a.DistanceKM = trip.DistanceKM
		a.Emissions = trip.Emissions
	default:
		return a, fmt.Sprintf("unsupported kind %q", e.Kind)
	}
	return a, ""
}
