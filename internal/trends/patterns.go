package trends

import (
	"sort"
	"time"

	"github.com/rshade/ecoplate/internal/greenops"
)

// Pattern analysis parameters.
const (
	// RecentSampleSize is the number of most recent meals pattern analysis
	// looks at.
	RecentSampleSize = 20

	// HighCarbonThresholdKg is the per-meal emissions above which a meal
	// counts as high carbon.
	HighCarbonThresholdKg = 5.0

	// frequentHighCarbonRatio is the high-carbon ratio above which high
	// carbon meals are considered frequent.
	frequentHighCarbonRatio = 0.5
)

// NoDominantCategory is reported when there are no records to analyze.
const NoDominantCategory greenops.Category = "다양한"

// Patterns summarises a sample of meals.
type Patterns struct {
	TotalRecords       int               `json:"total_meals"`
	AverageEmissions   float64           `json:"avg_carbon_per_meal"`
	VarietyScore       float64           `json:"variety_score"`
	DominantCategory   greenops.Category `json:"frequent_category"`
	HighCarbonRatio    float64           `json:"high_carbon_ratio"`
	FrequentHighCarbon bool              `json:"frequent_high_carbon"`
}

// Latest returns up to n records with the most recent LoggedAt, newest first.
// The input slice is not modified.
func Latest(records []Record, n int) []Record {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LoggedAt.After(sorted[j].LoggedAt)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Analyze computes patterns over the given sample. Variety is distinct food
// names over sample size; the dominant category breaks ties by first
// occurrence in sample order. An empty sample yields zero scores and
// NoDominantCategory.
func Analyze(sample []Record) Patterns {
	if len(sample) == 0 {
		return Patterns{DominantCategory: NoDominantCategory}
	}

	var (
		total      float64
		highCarbon int
		foods      = make(map[string]struct{})
		counts     = make(map[greenops.Category]int)
		order      []greenops.Category
	)

	for _, r := range sample {
		total += r.Emissions
		if r.Emissions > HighCarbonThresholdKg {
			highCarbon++
		}
		foods[r.FoodName] = struct{}{}

		cat := greenops.Categorize(r.FoodName)
		if counts[cat] == 0 {
			order = append(order, cat)
		}
		counts[cat]++
	}

	dominant := order[0]
	for _, cat := range order[1:] {
		if counts[cat] > counts[dominant] {
			dominant = cat
		}
	}

	n := float64(len(sample))
	ratio := float64(highCarbon) / n
	return Patterns{
		TotalRecords:       len(sample),
		AverageEmissions:   total / n,
		VarietyScore:       float64(len(foods)) / n,
		DominantCategory:   dominant,
		HighCarbonRatio:    ratio,
		FrequentHighCarbon: ratio > frequentHighCarbonRatio,
	}
}

// Contributor is a food's share of emissions over a window.
type Contributor struct {
	FoodName       string  `json:"food_name"`
	TotalEmissions float64 `json:"total_carbon"`
	Frequency      int     `json:"frequency"`
}

// DefaultTopContributors is the number of contributors the dashboard shows.
const DefaultTopContributors = 5

// TopContributors groups records logged at or after since by food name and
// returns up to limit groups by total emissions descending. Ties keep first
// occurrence order. Totals are rounded to 2 decimals.
func TopContributors(records []Record, since time.Time, limit int) []Contributor {
	idx := make(map[string]int)
	var out []Contributor
	for _, r := range records {
		if r.LoggedAt.Before(since) {
			continue
		}
		i, ok := idx[r.FoodName]
		if !ok {
			i = len(out)
			idx[r.FoodName] = i
			out = append(out, Contributor{FoodName: r.FoodName})
		}
		out[i].TotalEmissions += r.Emissions
		out[i].Frequency++
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalEmissions > out[j].TotalEmissions
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	for i := range out {
		out[i].TotalEmissions = greenops.Round(out[i].TotalEmissions, 2)
	}
	return out
}

// UnknownContributor is the top contributor of a day without named meals.
const UnknownContributor = "알 수 없음"

// DailySummary is a per-day total with the day's highest-emitting meal.
type DailySummary struct {
	Date           string  `json:"date"`
	TotalEmissions float64 `json:"total_carbon"`
	Count          int     `json:"meal_count"`
	TopContributor string  `json:"top_contributor"`
}

// DailySummaries summarises records logged in [start, end] per calendar date,
// newest date first. The top contributor is the first record of the day with
// the highest emissions.
func DailySummaries(records []Record, start, end time.Time, loc *time.Location) []DailySummary {
	type acc struct {
		DailySummary
		max    float64
		hasTop bool
	}
	byDate := make(map[string]*acc)
	for _, r := range records {
		if !inWindow(r.LoggedAt, start, end) {
			continue
		}
		key := dateKey(r.LoggedAt, loc)
		a, ok := byDate[key]
		if !ok {
			a = &acc{DailySummary: DailySummary{Date: key, TopContributor: UnknownContributor}}
			byDate[key] = a
		}
		a.TotalEmissions += r.Emissions
		a.Count++
		if r.FoodName != "" && (!a.hasTop || r.Emissions > a.max) {
			a.max = r.Emissions
			a.TopContributor = r.FoodName
			a.hasTop = true
		}
	}

	out := make([]DailySummary, 0, len(byDate))
	for _, a := range byDate {
		a.TotalEmissions = greenops.Round(a.TotalEmissions, 2)
		out = append(out, a.DailySummary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}
