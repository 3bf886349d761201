// Package gamification scores user progress: levels from badge points,
// achievement rules and idempotent badge awards, challenge progress, and
// the Korean narrative messages shown alongside them.
//
// The package holds no mutable state. Badge uniqueness is enforced by the
// BadgeStore implementation; Award re-checks it so a concurrent duplicate
// surfaces as ErrAlreadyEarned rather than a second badge.
package gamification

type levelTier struct {
	threshold int
	title     string
	next      int // 0 at the top tier
}

//nolint:gochecknoglobals // Read-only reference data.
var levelTable = []levelTier{
	{0, "새싹 지킴이", 500},
	{500, "친환경 실천가", 1500},
	{1500, "탄소 절약자", 3000},
	{3000, "환경 전문가", 5000},
	{5000, "지구 지킴이", 10000},
	{10000, "환경 마스터", 0},
}

// LevelInfo is the level reached with a point total.
type LevelInfo struct {
	Level int    `json:"level"`
	Title string `json:"title"`

	// NextThreshold is the upper bound of the tier, nil at the top tier.
	NextThreshold *int `json:"next_threshold,omitempty"`

	// PointsToNext is NextThreshold minus the points, 0 at the top tier.
	PointsToNext int `json:"points_to_next_level"`
}

// LevelFor returns the highest tier whose threshold points meet. Negative
// totals are treated as the first tier.
func LevelFor(points int) LevelInfo {
	idx := 0
	for i, t := range levelTable {
		if points >= t.threshold {
			idx = i
		}
	}

	tier := levelTable[idx]
	info := LevelInfo{Level: idx + 1, Title: tier.title}
	if tier.next > 0 {
		next := tier.next
		info.NextThreshold = &next
		info.PointsToNext = next - points
	}
	return info
}
