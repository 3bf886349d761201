package importer_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecoplate/internal/greenops"
	"github.com/rshade/ecoplate/internal/importer"
	"github.com/rshade/ecoplate/internal/store"
)

const yamlDoc = `activities:
  - kind: meal
    food: 소고기
    portion_grams: 150
    meal_type: dinner
    logged_at: 2026-10-01T19:00:00+09:00
  - kind: energy
    electricity_kwh: 300
  - kind: transport
    mode: subway
    distance_km: 12
  - kind: transport
    mode: spaceship
    distance_km: 1
  - kind: meal
    food: 두부
`

const jsonDoc = `{"activities": [
  {"kind": "transport", "mode": "car_gasoline", "fuel_liters": 10},
  {"kind": "energy", "gas_bill": 9000}
]}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestParseFile(t *testing.T) {
	entries, err := importer.ParseFile(writeFile(t, "meals.yaml", yamlDoc))
	require.NoError(t, err)
	require.Len(t, entries, 5)
	assert.Equal(t, "소고기", entries[0].Food)
	assert.InDelta(t, 150.0, entries[0].PortionGrams, 1e-9)
	assert.False(t, entries[0].LoggedAt.IsZero())
	assert.InDelta(t, 300.0, entries[1].ElectricityKWh, 1e-9)
	assert.Equal(t, "subway", entries[2].Mode)

	entries, err = importer.ParseFile(writeFile(t, "trips.json", jsonDoc))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.InDelta(t, 10.0, entries[0].FuelLiters, 1e-9)
	assert.InDelta(t, 9000.0, entries[1].GasBill, 1e-9)
}

func TestParseFile_Errors(t *testing.T) {
	_, err := importer.ParseFile(writeFile(t, "data.csv", "a,b"))
	require.ErrorIs(t, err, importer.ErrUnsupportedFormat)

	_, err = importer.ParseFile(writeFile(t, "empty.yaml", "activities: []\n"))
	require.ErrorIs(t, err, importer.ErrNoEntries)

	_, err = importer.ParseFile(writeFile(t, "bad.json", "{"))
	require.Error(t, err)

	_, err = importer.ParseFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestImport(t *testing.T) {
	fs, err := store.Open(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, err)

	entries, err := importer.ParseFile(writeFile(t, "meals.yaml", yamlDoc))
	require.NoError(t, err)

	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	im := &importer.Importer{Writer: fs, BatchSize: 2, Concurrency: 2, Now: func() time.Time { return now }}
	res, err := im.Import(context.Background(), "u1", entries)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Imported)
	require.Len(t, res.Skipped, 2)
	assert.Equal(t, 3, res.Skipped[0].Index)
	assert.Contains(t, res.Skipped[0].Reason, "spaceship")
	assert.Equal(t, 4, res.Skipped[1].Index)

	want := greenops.EstimateFood("소고기", 150) +
		greenops.EstimateEnergy(greenops.EnergyReading{ElectricityKWh: 300}).TotalEmissions +
		greenops.EstimateTransport("subway", 12)
	assert.InDelta(t, want, res.TotalEmissions, 1e-6)

	meals := fs.Activities(store.ActivityFilter{UserID: "u1", Kind: greenops.KindMeal})
	require.Len(t, meals, 1)
	assert.Equal(t, "dinner", meals[0].MealType)

	trips := fs.Activities(store.ActivityFilter{UserID: "u1", Kind: greenops.KindTransport})
	require.Len(t, trips, 1)
	assert.Equal(t, greenops.TransportSubway, trips[0].TransportMode)
	assert.True(t, trips[0].LoggedAt.Equal(now))
}

func TestImport_FuelTrip(t *testing.T) {
	fs, err := store.Open(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, err)

	entries, err := importer.ParseFile(writeFile(t, "trips.json", jsonDoc))
	require.NoError(t, err)

	im := &importer.Importer{Writer: fs}
	res, err := im.Import(context.Background(), "u1", entries)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)

	trips := fs.Activities(store.ActivityFilter{UserID: "u1", Kind: greenops.KindTransport})
	require.Len(t, trips, 1)
	assert.Positive(t, trips[0].DistanceKM)
	assert.InDelta(t, greenops.EstimateFuel("gasoline", 10), trips[0].Emissions, 1e-9)
}

type failingWriter struct{}

func (failingWriter) AddActivities(context.Context, []store.Activity) ([]store.Activity, error) {
	return nil, errors.New("disk full")
}

func TestImport_WriteFailure(t *testing.T) {
	im := &importer.Importer{Writer: failingWriter{}}
	_, err := im.Import(context.Background(), "u1", []importer.Entry{{Kind: "meal", Food: "밥", PortionGrams: 200}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestImport_AllSkippedDoesNotWrite(t *testing.T) {
	im := &importer.Importer{Writer: failingWriter{}}
	res, err := im.Import(context.Background(), "u1", []importer.Entry{{Kind: "yoga"}})
	require.NoError(t, err)
	assert.Zero(t, res.Imported)
	require.Len(t, res.Skipped, 1)
	assert.Contains(t, res.Skipped[0].Reason, "yoga")
}
