package trends

import (
	"sort"
	"time"
)

// LoggedDates returns the timestamps of records, for the streak functions.
func LoggedDates(records []Record) []time.Time {
	out := make([]time.Time, 0, len(records))
	for _, r := range records {
		out = append(out, r.LoggedAt)
	}
	return out
}

// CurrentStreak counts consecutive calendar dates with at least one entry,
// walking backwards from the date of now. The walk stops at the first date
// without an entry, so a day without a log today yields 0.
func CurrentStreak(dates []time.Time, now time.Time, loc *time.Location) int {
	seen := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		seen[dateKey(d, loc)] = struct{}{}
	}

	streak := 0
	for day := dayOf(now, loc); ; day = day.AddDate(0, 0, -1) {
		if _, ok := seen[day.Format(DateLayout)]; !ok {
			return streak
		}
		streak++
	}
}

// BestStreak returns the longest run of consecutive calendar dates present in
// dates, or 0 when dates is empty.
func BestStreak(dates []time.Time, loc *time.Location) int {
	if len(dates) == 0 {
		return 0
	}

	seen := make(map[string]time.Time, len(dates))
	for _, d := range dates {
		day := dayOf(d, loc)
		seen[day.Format(DateLayout)] = day
	}

	days := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	best, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i-1].AddDate(0, 0, 1).Equal(days[i]) {
			run++
			best = max(best, run)
		} else {
			run = 1
		}
	}
	return best
}
