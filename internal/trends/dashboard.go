package trends

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rshade/ecoplate/internal/greenops"
)

// SwapRecord is a recommended swap as seen by the dashboard.
type SwapRecord struct {
	CreatedAt time.Time `json:"created_at"`
	Reduction float64   `json:"carbon_reduction"`
	Accepted  bool      `json:"accepted"`
}

// DashboardInput is everything the dashboard is computed from.
type DashboardInput struct {
	Meals               []Record
	Swaps               []SwapRecord
	ActiveChallenges    int
	CompletedChallenges int
}

// Stats are the headline dashboard numbers.
type Stats struct {
	WeekEmissions       float64 `json:"total_carbon_this_week"`
	ReductionAchieved   float64 `json:"carbon_reduction_achieved"`
	TargetProgress      float64 `json:"target_progress_percentage"`
	MealsThisWeek       int     `json:"meals_logged_this_week"`
	SwapsAccepted       int     `json:"swaps_accepted"`
	ActiveChallenges    int     `json:"active_challenges"`
	CompletedChallenges int     `json:"completed_challenges"`
}

// Dashboard bundles stats, the weekly series, top contributors and insights.
type Dashboard struct {
	Stats           Stats         `json:"stats"`
	Trends          []DailyPoint  `json:"carbon_trends"`
	TopContributors []Contributor `json:"top_contributors"`
	Insights        []Insight     `json:"insights"`
}

// Target progress model: the week's emissions are assumed to be 80% of a
// pre-reduction baseline, and the goal is a 20% cut of that baseline.
const (
	baselineMultiplier = 1.25
	targetCutShare     = 0.2
	maxProgressPercent = 100.0
)

// TargetProgress returns min(100, reduction / (week*1.25*0.2) * 100), or 0
// when the week total is not positive.
func TargetProgress(weekEmissions, reduction float64) float64 {
	target := weekEmissions * baselineMultiplier
	if target <= 0 {
		return 0
	}
	return min(maxProgressPercent, reduction/(target*targetCutShare)*100)
}

// ComputeStats computes dashboard stats at now. Meals count over the trailing
// week; accepted swaps count over the trailing 30 days.
func ComputeStats(in DashboardInput, now time.Time) Stats {
	weekStart := now.Add(-WeekWindow)
	monthStart := now.Add(-MonthWindow)

	var (
		week      float64
		meals     int
		reduction float64
		accepted  int
	)
	for _, m := range in.Meals {
		if inWindow(m.LoggedAt, weekStart, now) {
			week += m.Emissions
			meals++
		}
	}
	for _, s := range in.Swaps {
		if s.Accepted && inWindow(s.CreatedAt, monthStart, now) {
			reduction += s.Reduction
			accepted++
		}
	}

	return Stats{
		WeekEmissions:       greenops.Round(week, 2),
		ReductionAchieved:   greenops.Round(reduction, 2),
		TargetProgress:      greenops.Round(TargetProgress(week, reduction), 1),
		MealsThisWeek:       meals,
		SwapsAccepted:       accepted,
		ActiveChallenges:    in.ActiveChallenges,
		CompletedChallenges: in.CompletedChallenges,
	}
}

// BuildDashboard computes the full dashboard at now in loc.
func BuildDashboard(in DashboardInput, now time.Time, loc *time.Location) Dashboard {
	stats := ComputeStats(in, now)
	series := DailySeries(in.Meals, now.Add(-WeekWindow), loc)

	d := Dashboard{
		Stats:           stats,
		Trends:          series,
		TopContributors: TopContributors(in.Meals, now.Add(-MonthWindow), DefaultTopContributors),
		Insights:        Insights(stats, series),
	}

	log.Debug().
		Str("component", "trends").
		Str("operation", "dashboard").
		Float64("week_kg", stats.WeekEmissions).
		Int("points", len(series)).
		Int("insights", len(d.Insights)).
		Msg("dashboard computed")
	return d
}

// InsightType is the kind of an insight card.
type InsightType string

// Insight types.
const (
	InsightAchievement InsightType = "achievement"
	InsightCelebration InsightType = "celebration"
	InsightTip         InsightType = "tip"
	InsightWarning     InsightType = "warning"
)

// Insight is a short dashboard card.
type Insight struct {
	Type       InsightType `json:"type"`
	Title      string      `json:"title"`
	Message    string      `json:"message"`
	Icon       string      `json:"icon"`
	ActionText string      `json:"action_text"`
}

// Insight rule parameters.
const (
	MaxInsights          = 4
	celebrateProgressPct = 50.0
	nudgeProgressPct     = 25.0
)

// Insights derives up to MaxInsights cards from stats and the daily series,
// in rule order: accepted swaps, target progress, trend, challenges.
func Insights(stats Stats, series []DailyPoint) []Insight {
	var out []Insight

	if stats.SwapsAccepted > 0 {
		out = append(out, Insight{
			Type:  InsightAchievement,
			Title: "훌륭해요! 🎉",
			Message: fmt.Sprintf("이번 달에 %d개의 스마트 스왑을 실천하여 %skg의 탄소를 절약했어요!",
				stats.SwapsAccepted, formatPlain(stats.ReductionAchieved)),
			Icon:       "🌱",
			ActionText: "더 많은 스왑 보기",
		})
	}

	switch {
	case stats.TargetProgress >= celebrateProgressPct:
		out = append(out, Insight{
			Type:       InsightCelebration,
			Title:      "목표 달성 중! 💪",
			Message:    fmt.Sprintf("탄소 감축 목표의 %s%%를 달성했어요! 계속 화이팅!", formatPlain(stats.TargetProgress)),
			Icon:       "🎯",
			ActionText: "목표 조정하기",
		})
	case stats.TargetProgress < nudgeProgressPct:
		out = append(out, Insight{
			Type:       InsightTip,
			Title:      "더 노력해봐요! 📈",
			Message:    "아직 목표까지 조금 더 노력이 필요해요. 스마트 스왑을 더 활용해보시는 건 어떨까요?",
			Icon:       "💡",
			ActionText: "스왑 추천 보기",
		})
	}

	switch CompareTrend(series) {
	case TrendImproving:
		out = append(out, Insight{
			Type:       InsightAchievement,
			Title:      "감소 추세 확인! 📉",
			Message:    "최근 3일간 탄소 배출량이 줄어들고 있어요. 이 추세를 계속 유지해보세요!",
			Icon:       "📉",
			ActionText: "트렌드 자세히 보기",
		})
	case TrendWorsening:
		out = append(out, Insight{
			Type:       InsightWarning,
			Title:      "주의가 필요해요 ⚠️",
			Message:    "최근 탄소 배출량이 증가하고 있어요. 식단을 다시 점검해보시는 건 어떨까요?",
			Icon:       "⚠️",
			ActionText: "식단 분석하기",
		})
	case TrendNeutral:
	}

	if stats.ActiveChallenges == 0 {
		out = append(out, Insight{
			Type:       InsightTip,
			Title:      "새로운 도전! 🏆",
			Message:    "새로운 챌린지에 참여해서 더 재미있게 탄소 발자국을 줄여보세요!",
			Icon:       "🏆",
			ActionText: "챌린지 둘러보기",
		})
	}

	if len(out) > MaxInsights {
		out = out[:MaxInsights]
	}
	return out
}

// formatPlain renders a float in its shortest form ("3.8", "100").
func formatPlain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
