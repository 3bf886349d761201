package trends

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetProgress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		week      float64
		reduction float64
		want      float64
	}{
		{name: "no emissions", week: 0, reduction: 5, want: 0},
		{name: "quarter of target", week: 10, reduction: 0.625, want: 25},
		{name: "capped", week: 10, reduction: 100, want: 100},
		{name: "no reduction", week: 10, reduction: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, TargetProgress(tt.week, tt.reduction), 1e-9)
		})
	}
}

func TestComputeStats(t *testing.T) {
	t.Parallel()

	now := at(16, 12)
	in := DashboardInput{
		Meals: []Record{
			{LoggedAt: at(15, 12), FoodName: "김치찌개", Emissions: 4},
			{LoggedAt: at(14, 12), FoodName: "불고기", Emissions: 6},
			{LoggedAt: at(1, 12), FoodName: "설렁탕", Emissions: 10},
		},
		Swaps: []SwapRecord{
			{CreatedAt: at(15, 13), Reduction: 1.25, Accepted: true},
			{CreatedAt: at(15, 14), Reduction: 3, Accepted: false},
			{CreatedAt: time.Date(2026, time.August, 1, 0, 0, 0, 0, kst), Reduction: 9, Accepted: true},
		},
		ActiveChallenges:    1,
		CompletedChallenges: 2,
	}

	got := ComputeStats(in, now)
	assert.InDelta(t, 10.0, got.WeekEmissions, 1e-9)
	assert.InDelta(t, 1.25, got.ReductionAchieved, 1e-9)
	// 1.25 / (10*1.25*0.2) = 50%
	assert.InDelta(t, 50.0, got.TargetProgress, 1e-9)
	assert.Equal(t, 2, got.MealsThisWeek)
	assert.Equal(t, 1, got.SwapsAccepted)
	assert.Equal(t, 1, got.ActiveChallenges)
	assert.Equal(t, 2, got.CompletedChallenges)
}

func TestInsights(t *testing.T) {
	t.Parallel()

	t.Run("new user", func(t *testing.T) {
		t.Parallel()
		got := Insights(Stats{}, nil)
		require.Len(t, got, 2)
		assert.Equal(t, InsightTip, got[0].Type)
		assert.Equal(t, "스왑 추천 보기", got[0].ActionText)
		assert.Equal(t, "챌린지 둘러보기", got[1].ActionText)
	})

	t.Run("every rule fires and is capped", func(t *testing.T) {
		t.Parallel()
		stats := Stats{SwapsAccepted: 2, ReductionAchieved: 3.8, TargetProgress: 75}
		got := Insights(stats, series(5, 5, 5, 1, 1, 1))
		require.Len(t, got, MaxInsights)
		assert.Equal(t, "이번 달에 2개의 스마트 스왑을 실천하여 3.8kg의 탄소를 절약했어요!", got[0].Message)
		assert.Equal(t, InsightCelebration, got[1].Type)
		assert.Equal(t, "탄소 감축 목표의 75%를 달성했어요! 계속 화이팅!", got[1].Message)
		assert.Equal(t, "📉", got[2].Icon)
		assert.Equal(t, "챌린지 둘러보기", got[3].ActionText)
	})

	t.Run("middle progress and worsening", func(t *testing.T) {
		t.Parallel()
		got := Insights(Stats{TargetProgress: 30, ActiveChallenges: 1}, series(1, 1, 1, 5, 5, 5))
		require.Len(t, got, 1)
		assert.Equal(t, InsightWarning, got[0].Type)
	})
}

func TestBuildDashboard(t *testing.T) {
	t.Parallel()

	now := at(16, 12)
	in := DashboardInput{Meals: []Record{
		{LoggedAt: at(13, 12), FoodName: "불고기", Emissions: 8.5},
		{LoggedAt: at(14, 12), FoodName: "라면", Emissions: 1.1},
		{LoggedAt: at(15, 12), FoodName: "불고기", Emissions: 8.5},
	}}

	d := BuildDashboard(in, now, kst)
	assert.InDelta(t, 18.1, d.Stats.WeekEmissions, 1e-9)
	require.Len(t, d.Trends, 3)
	assert.Equal(t, "2026-10-13", d.Trends[0].Date)
	require.Len(t, d.TopContributors, 2)
	assert.Equal(t, "불고기", d.TopContributors[0].FoodName)
	assert.NotEmpty(t, d.Insights)
	assert.LessOrEqual(t, len(d.Insights), MaxInsights)
}

func TestMonthlyEnergyAverage(t *testing.T) {
	t.Parallel()

	now := at(16, 12)

	t.Run("no data", func(t *testing.T) {
		t.Parallel()
		got := MonthlyEnergyAverage(nil, now, kst)
		assert.Zero(t, got.DataPoints)
		assert.Equal(t, EnergyAdviceNoData, got.Recommendation)
	})

	tests := []struct {
		name    string
		records []EnergyRecord
		avg     float64
		advice  string
	}{
		{
			name: "high usage",
			records: []EnergyRecord{
				{LoggedAt: at(2, 0), EnergyKWh: 350, Emissions: 160},
				{LoggedAt: time.Date(2026, time.September, 5, 0, 0, 0, 0, kst), EnergyKWh: 370, Emissions: 170},
			},
			avg:    165,
			advice: EnergyAdviceHigh,
		},
		{
			name:    "moderate usage",
			records: []EnergyRecord{{LoggedAt: at(2, 0), EnergyKWh: 250, Emissions: 120}},
			avg:     120,
			advice:  EnergyAdviceModerate,
		},
		{
			name: "low usage ignores old readings",
			records: []EnergyRecord{
				{LoggedAt: at(2, 0), EnergyKWh: 100, Emissions: 45.41},
				{LoggedAt: time.Date(2025, time.January, 5, 0, 0, 0, 0, kst), EnergyKWh: 900, Emissions: 400},
			},
			avg:    45.41,
			advice: EnergyAdviceLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := MonthlyEnergyAverage(tt.records, now, kst)
			assert.InDelta(t, tt.avg, got.AverageEmissions, 1e-9)
			assert.Equal(t, tt.advice, got.Recommendation)
			assert.Len(t, got.Months, got.DataPoints)
		})
	}
}
