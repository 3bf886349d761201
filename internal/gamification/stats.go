package gamification

import "github.com/rshade/ecoplate/internal/greenops"

// SnapshotInput is what a progress snapshot is derived from.
type SnapshotInput struct {
	Badges           []UserBadge
	Challenges       []UserChallenge
	CurrentStreak    int
	BestStreak       int
	TotalCarbonSaved float64
}

// Snapshot is a user's derived progress. It is recomputed on demand and never
// stored.
type Snapshot struct {
	Level            int     `json:"level"`
	LevelTitle       string  `json:"level_title"`
	TotalPoints      int     `json:"total_points"`
	PointsToNext     int     `json:"points_to_next_level"`
	CurrentStreak    int     `json:"current_streak"`
	BestStreak       int     `json:"best_streak"`
	TotalCarbonSaved float64 `json:"total_carbon_saved"`
	AchievementCount int     `json:"achievement_count"`
	CompletionRate   float64 `json:"challenge_completion_rate"`
}

// BuildSnapshot derives a Snapshot.
func BuildSnapshot(in SnapshotInput) Snapshot {
	points := TotalPoints(in.Badges)
	level := LevelFor(points)
	return Snapshot{
		Level:            level.Level,
		LevelTitle:       level.Title,
		TotalPoints:      points,
		PointsToNext:     level.PointsToNext,
		CurrentStreak:    in.CurrentStreak,
		BestStreak:       in.BestStreak,
		TotalCarbonSaved: greenops.Round(in.TotalCarbonSaved, 2),
		AchievementCount: len(in.Badges),
		CompletionRate:   CompletionRate(in.Challenges),
	}
}
