package tui

import (
	"fmt"
	"strings"

	"github.com/rshade/ecoplate/internal/gamification"
	"github.com/rshade/ecoplate/internal/greenops"
	"github.com/rshade/ecoplate/internal/trends"
)

// barWidth is the width of the longest bar in a daily chart.
const barWidth = 24

// Bar renders value as a horizontal bar scaled against maxValue.
func Bar(value, maxValue float64, width int) string {
	if maxValue <= 0 || value <= 0 || width <= 0 {
		return ""
	}
	n := int(value / maxValue * float64(width))
	n = max(1, min(width, n))
	return strings.Repeat("█", n)
}

// RenderSeries renders a daily series as labelled bars.
func RenderSeries(series []trends.DailyPoint) string {
	peak := 0.0
	for _, p := range series {
		peak = max(peak, p.Emissions)
	}

	var sb strings.Builder
	for _, p := range series {
		fmt.Fprintf(&sb, "%s %s %s\n",
			LabelStyle.Render(p.Date),
			BarStyle.Render(fmt.Sprintf("%-*s", barWidth, Bar(p.Emissions, peak, barWidth))),
			ValueStyle.Render(greenops.FormatKg(p.Emissions)))
	}
	return sb.String()
}

// RenderStats renders the headline dashboard numbers.
func RenderStats(s trends.Stats) string {
	rows := [][2]string{
		{"이번 주 배출량", greenops.FormatKg(s.WeekEmissions)},
		{"절약한 탄소", greenops.FormatKg(s.ReductionAchieved)},
		{"목표 달성률", fmt.Sprintf("%.1f%%", s.TargetProgress)},
		{"이번 주 식사 기록", fmt.Sprintf("%d", s.MealsThisWeek)},
		{"수락한 스왑", fmt.Sprintf("%d", s.SwapsAccepted)},
		{"진행 중 챌린지", fmt.Sprintf("%d", s.ActiveChallenges)},
		{"완료한 챌린지", fmt.Sprintf("%d", s.CompletedChallenges)},
	}

	var sb strings.Builder
	for _, r := range rows {
		sb.WriteString(LabelStyle.Render(fmt.Sprintf("%-14s", r[0])))
		sb.WriteString(" ")
		sb.WriteString(ValueStyle.Render(r[1]))
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderInsights renders insights one per line.
func RenderInsights(insights []trends.Insight) string {
	var sb strings.Builder
	for _, in := range insights {
		sb.WriteString(InsightStyle(in.Type).Render(in.Icon + " " + in.Title))
		sb.WriteString("\n  ")
		sb.WriteString(in.Message)
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderSnapshot renders a progress snapshot.
func RenderSnapshot(s gamification.Snapshot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", HeadingStyle.Render(fmt.Sprintf("Lv.%d", s.Level)), ValueStyle.Render(s.LevelTitle))
	fmt.Fprintf(&sb, "%s %s", LabelStyle.Render("포인트"), ValueStyle.Render(greenops.FormatNumber(int64(s.TotalPoints))))
	if s.PointsToNext > 0 {
		fmt.Fprintf(&sb, " %s", HelpStyle.Render(fmt.Sprintf("(다음 레벨까지 %d)", s.PointsToNext)))
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%s %d일 (최고 %d일)\n", LabelStyle.Render("연속 기록"), s.CurrentStreak, s.BestStreak)
	return sb.String()
}

// RenderDashboard renders a complete static dashboard.
func RenderDashboard(greeting string, d trends.Dashboard) string {
	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("ecoplate"))
	sb.WriteString("\n")
	if greeting != "" {
		sb.WriteString(greeting)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(RenderStats(d.Stats))

	direction := trends.CompareTrend(d.Trends)
	sb.WriteString("\n")
	sb.WriteString(HeadingStyle.Render("최근 7일"))
	sb.WriteString(" ")
	sb.WriteString(TrendStyle(direction).Render(string(direction)))
	sb.WriteString("\n")
	sb.WriteString(RenderSeries(d.Trends))

	if len(d.Insights) > 0 {
		sb.WriteString("\n")
		sb.WriteString(HeadingStyle.Render("인사이트"))
		sb.WriteString("\n")
		sb.WriteString(RenderInsights(d.Insights))
	}
	return sb.String()
}
