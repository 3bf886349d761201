package trends

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//nolint:gochecknoglobals // Test fixture.
var kst = time.FixedZone("KST", 9*60*60)

func at(day, hour int) time.Time {
	return time.Date(2026, time.October, day, hour, 0, 0, 0, kst)
}

func TestCurrentStreak(t *testing.T) {
	t.Parallel()

	now := at(16, 20)
	day := func(offset int) time.Time { return now.AddDate(0, 0, -offset) }

	tests := []struct {
		name  string
		dates []time.Time
		want  int
	}{
		{name: "breaks at gap", dates: []time.Time{day(0), day(1), day(2), day(4)}, want: 3},
		{name: "no log today", dates: []time.Time{day(1), day(2)}, want: 0},
		{name: "duplicates on one day", dates: []time.Time{day(0), day(0), day(1)}, want: 2},
		{name: "unordered input", dates: []time.Time{day(2), day(0), day(1)}, want: 3},
		{name: "empty", dates: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CurrentStreak(tt.dates, now, kst))
		})
	}
}

func TestCurrentStreakUsesLocalCalendarDate(t *testing.T) {
	t.Parallel()

	// 2026-10-15 23:30 UTC is already 2026-10-16 in Seoul.
	late := time.Date(2026, time.October, 15, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, 1, CurrentStreak([]time.Time{late}, at(16, 12), kst))
	assert.Equal(t, 0, CurrentStreak([]time.Time{late}, at(16, 12), time.UTC))
}

func TestBestStreak(t *testing.T) {
	t.Parallel()

	d := at(1, 9)
	plus := func(n int) time.Time { return d.AddDate(0, 0, n) }

	tests := []struct {
		name  string
		dates []time.Time
		want  int
	}{
		{name: "two runs", dates: []time.Time{d, plus(1), plus(2), plus(5), plus(6)}, want: 3},
		{name: "single day", dates: []time.Time{d, d}, want: 1},
		{name: "later run longer", dates: []time.Time{d, plus(3), plus(4), plus(5), plus(6)}, want: 4},
		{name: "across month end", dates: []time.Time{plus(-1), d, plus(1)}, want: 3},
		{name: "empty", dates: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, BestStreak(tt.dates, kst))
		})
	}
}

func TestWeeklyTotal(t *testing.T) {
	t.Parallel()

	now := at(16, 12)
	records := []Record{
		{LoggedAt: at(16, 8), Emissions: 1.25},
		{LoggedAt: at(10, 12), Emissions: 2.5},  // exactly seven days before now
		{LoggedAt: at(9, 12), Emissions: 100},   // outside
		{LoggedAt: at(17, 12), Emissions: 1000}, // future
	}
	assert.InDelta(t, 3.75, WeeklyTotal(records, now), 1e-9)
}

func TestDailySeries(t *testing.T) {
	t.Parallel()

	records := []Record{
		{LoggedAt: at(14, 19), Emissions: 1.111},
		{LoggedAt: at(12, 8), Emissions: 2},
		{LoggedAt: at(14, 8), Emissions: 1.111},
		{LoggedAt: at(1, 8), Emissions: 50},
	}

	got := DailySeries(records, at(10, 0), kst)
	require.Len(t, got, 2)
	assert.Equal(t, DailyPoint{Date: "2026-10-12", Emissions: 2, Count: 1}, got[0])
	assert.Equal(t, "2026-10-14", got[1].Date)
	assert.InDelta(t, 2.22, got[1].Emissions, 1e-9)
	assert.Equal(t, 2, got[1].Count)
}

func series(values ...float64) []DailyPoint {
	out := make([]DailyPoint, len(values))
	for i, v := range values {
		out[i] = DailyPoint{Date: at(i+1, 0).Format(DateLayout), Emissions: v, Count: 1}
	}
	return out
}

func TestCompareTrend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		series []DailyPoint
		want   TrendDirection
	}{
		{name: "too short", series: series(1, 10), want: TrendNeutral},
		{name: "fewer than six points compares with itself", series: series(10, 10, 1, 1, 1), want: TrendNeutral},
		{name: "improving", series: series(5, 5, 5, 1, 1, 1), want: TrendImproving},
		{name: "worsening", series: series(1, 1, 1, 5, 5, 5), want: TrendWorsening},
		{name: "within ten percent", series: series(10, 10, 10, 10.5, 10.5, 10.5), want: TrendNeutral},
		{name: "from zero", series: series(0, 0, 0, 0, 0, 1), want: TrendWorsening},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CompareTrend(tt.series))
		})
	}
}

func TestAnalyze(t *testing.T) {
	t.Parallel()

	t.Run("empty sample", func(t *testing.T) {
		t.Parallel()
		got := Analyze(nil)
		assert.Zero(t, got.VarietyScore)
		assert.Zero(t, got.TotalRecords)
		assert.Equal(t, NoDominantCategory, got.DominantCategory)
	})

	t.Run("mixed sample", func(t *testing.T) {
		t.Parallel()
		sample := []Record{
			{FoodName: "비빔밥", Emissions: 1.5},
			{FoodName: "삼겹살", Emissions: 6.8},
			{FoodName: "비빔밥", Emissions: 1.5},
			{FoodName: "양념치킨", Emissions: 3.3},
		}
		got := Analyze(sample)
		assert.Equal(t, 4, got.TotalRecords)
		assert.InDelta(t, 0.75, got.VarietyScore, 1e-9)
		assert.InDelta(t, 0.25, got.HighCarbonRatio, 1e-9)
		assert.False(t, got.FrequentHighCarbon)
		assert.InDelta(t, 3.275, got.AverageEmissions, 1e-9)
		// 곡물 and 육류 both appear twice; 곡물 came first.
		assert.Equal(t, "곡물", string(got.DominantCategory))
	})
}

func TestLatest(t *testing.T) {
	t.Parallel()

	records := []Record{
		{LoggedAt: at(1, 0), FoodName: "a"},
		{LoggedAt: at(3, 0), FoodName: "c"},
		{LoggedAt: at(2, 0), FoodName: "b"},
	}
	got := Latest(records, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].FoodName)
	assert.Equal(t, "b", got[1].FoodName)
	assert.Equal(t, "a", records[0].FoodName)
}

func TestTopContributors(t *testing.T) {
	t.Parallel()

	since := at(1, 0)
	records := []Record{
		{LoggedAt: at(2, 0), FoodName: "김치찌개", Emissions: 1.2},
		{LoggedAt: at(3, 0), FoodName: "불고기", Emissions: 8.5},
		{LoggedAt: at(4, 0), FoodName: "김치찌개", Emissions: 1.2},
		{LoggedAt: at(5, 0), FoodName: "라면", Emissions: 1.1},
		{LoggedAt: time.Date(2026, time.September, 1, 0, 0, 0, 0, kst), FoodName: "스테이크", Emissions: 18.7},
	}

	got := TopContributors(records, since, 2)
	require.Len(t, got, 2)
	assert.Equal(t, Contributor{FoodName: "불고기", TotalEmissions: 8.5, Frequency: 1}, got[0])
	assert.Equal(t, "김치찌개", got[1].FoodName)
	assert.InDelta(t, 2.4, got[1].TotalEmissions, 1e-9)
	assert.Equal(t, 2, got[1].Frequency)
}

func TestDailySummaries(t *testing.T) {
	t.Parallel()

	records := []Record{
		{LoggedAt: at(14, 8), FoodName: "라면", Emissions: 1.1},
		{LoggedAt: at(14, 12), FoodName: "불고기", Emissions: 8.5},
		{LoggedAt: at(14, 19), FoodName: "등심", Emissions: 8.5},
		{LoggedAt: at(15, 12), FoodName: "", Emissions: 0.4},
	}

	got := DailySummaries(records, at(9, 12), at(16, 12), kst)
	require.Len(t, got, 2)
	assert.Equal(t, DailySummary{Date: "2026-10-15", TotalEmissions: 0.4, Count: 1, TopContributor: UnknownContributor}, got[0])
	assert.Equal(t, "2026-10-14", got[1].Date)
	assert.Equal(t, "불고기", got[1].TopContributor)
	assert.InDelta(t, 18.1, got[1].TotalEmissions, 1e-9)
}
