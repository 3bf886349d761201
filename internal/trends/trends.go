// Package trends computes aggregates over a user's activity history.
//
// Every function takes the records it works on plus an explicit clock
// (now) and, where calendar dates matter, a *time.Location. Nothing is
// cached between calls. A nil location means time.Local.
package trends

import (
	"sort"
	"time"

	"github.com/rshade/ecoplate/internal/greenops"
)

// DateLayout is the layout of calendar dates in series and summaries.
const DateLayout = "2006-01-02"

// Window lengths used by the dashboard.
const (
	WeekWindow  = 7 * 24 * time.Hour
	MonthWindow = 30 * 24 * time.Hour
)

// Record is one logged meal as seen by the analyzer.
type Record struct {
	LoggedAt  time.Time `json:"logged_at"`
	FoodName  string    `json:"food_name"`
	Emissions float64   `json:"carbon_footprint"`
}

// DailyPoint is the emissions total of one calendar date.
type DailyPoint struct {
	Date      string  `json:"date"`
	Emissions float64 `json:"carbon_amount"`
	Count     int     `json:"meal_count"`
}

func location(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}

// dayOf returns local midnight of the calendar date containing t.
func dayOf(t time.Time, loc *time.Location) time.Time {
	loc = location(loc)
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func dateKey(t time.Time, loc *time.Location) string {
	return t.In(location(loc)).Format(DateLayout)
}

// inWindow reports whether t lies in [start, end].
func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// WeeklyTotal sums emissions of records logged in the trailing seven days
// ending at now, rounded to 2 decimals.
func WeeklyTotal(records []Record, now time.Time) float64 {
	start := now.Add(-WeekWindow)
	var total float64
	for _, r := range records {
		if inWindow(r.LoggedAt, start, now) {
			total += r.Emissions
		}
	}
	return greenops.Round(total, 2)
}

// DailySeries groups records logged at or after since by calendar date in loc
// and returns per-date totals ascending by date. Totals are rounded to
// 2 decimals.
func DailySeries(records []Record, since time.Time, loc *time.Location) []DailyPoint {
	byDate := make(map[string]*DailyPoint)
	for _, r := range records {
		if r.LoggedAt.Before(since) {
			continue
		}
		key := dateKey(r.LoggedAt, loc)
		p, ok := byDate[key]
		if !ok {
			p = &DailyPoint{Date: key}
			byDate[key] = p
		}
		p.Emissions += r.Emissions
		p.Count++
	}

	out := make([]DailyPoint, 0, len(byDate))
	for _, p := range byDate {
		p.Emissions = greenops.Round(p.Emissions, 2)
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// TrendDirection classifies a daily series.
type TrendDirection string

// Trend directions.
const (
	TrendImproving TrendDirection = "improving"
	TrendWorsening TrendDirection = "worsening"
	TrendNeutral   TrendDirection = "neutral"
)

// Trend comparison parameters.
const (
	trendMinPoints     = 3
	trendWindow        = 3
	trendFullPoints    = 6
	improvingThreshold = 0.9
	worseningThreshold = 1.1
)

// CompareTrend compares the mean of the last three points against the mean of
// the first three. With fewer than six points the earlier mean equals the
// recent mean, so the result is neutral; with fewer than three points the
// series is too short and the result is neutral as well.
func CompareTrend(series []DailyPoint) TrendDirection {
	if len(series) < trendMinPoints {
		return TrendNeutral
	}

	recent := meanEmissions(series[len(series)-trendWindow:])
	earlier := recent
	if len(series) >= trendFullPoints {
		earlier = meanEmissions(series[:trendWindow])
	}

	switch {
	case recent < earlier*improvingThreshold:
		return TrendImproving
	case recent > earlier*worseningThreshold:
		return TrendWorsening
	default:
		return TrendNeutral
	}
}

func meanEmissions(points []DailyPoint) float64 {
	var sum float64
	for _, p := range points {
		sum += p.Emissions
	}
	return sum / float64(len(points))
}
