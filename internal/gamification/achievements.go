package gamification

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/rshade/ecoplate/internal/logging"
)

// AchievementKind is an achievement that can be triggered.
type AchievementKind string

// Achievement kinds. AchievementUnrecognized is the explicit result of
// ParseAchievementKind for unknown keys.
const (
	AchievementFirstMeal    AchievementKind = "first_meal"
	AchievementWeekStreak   AchievementKind = "week_streak"
	AchievementCarbonSaver  AchievementKind = "carbon_saver"
	AchievementUnrecognized AchievementKind = "unrecognized"
)

// Achievement thresholds.
const (
	WeekStreakDays       = 7
	CarbonSaverThreshold = 10.0
)

// ParseAchievementKind maps a key to an AchievementKind.
func ParseAchievementKind(s string) AchievementKind {
	switch k := AchievementKind(strings.ToLower(strings.TrimSpace(s))); k {
	case AchievementFirstMeal, AchievementWeekStreak, AchievementCarbonSaver:
		return k
	default:
		return AchievementUnrecognized
	}
}

// Aggregates are the per-user values achievement rules are evaluated on.
type Aggregates struct {
	MealCount             int     `json:"meal_count"`
	CurrentStreak         int     `json:"current_streak"`
	AcceptedSwapReduction float64 `json:"accepted_swap_reduction"`
}

type achievementRule struct {
	kind    AchievementKind
	badge   BadgeType
	met     func(Aggregates) bool
	message string
}

//nolint:gochecknoglobals // Read-only rule table.
var achievementRules = []achievementRule{
	{
		kind:    AchievementFirstMeal,
		badge:   BadgeFirstMeal,
		met:     func(a Aggregates) bool { return a.MealCount == 1 },
		message: " 첫 기록을 축하해요! 🎉",
	},
	{
		kind:    AchievementWeekStreak,
		badge:   BadgeWeekStreak,
		met:     func(a Aggregates) bool { return a.CurrentStreak >= WeekStreakDays },
		message: "7일 연속 기록! 꾸준함의 힘을 보여주고 계시네요! 🔥",
	},
	{
		kind:    AchievementCarbonSaver,
		badge:   BadgeCarbonSaver,
		met:     func(a Aggregates) bool { return a.AcceptedSwapReduction >= CarbonSaverThreshold },
		message: "10kg 탄소 절약 달성! 정말 대단한 환경 지킴이에요! 🌱",
	},
}

func ruleFor(kind AchievementKind) (achievementRule, bool) {
	for _, r := range achievementRules {
		if r.kind == kind {
			return r, true
		}
	}
	return achievementRule{}, false
}

// Evaluate reports whether the condition of kind holds for aggs. Unknown kinds
// never hold.
func Evaluate(kind AchievementKind, aggs Aggregates) bool {
	r, ok := ruleFor(kind)
	return ok && r.met(aggs)
}

// BadgeStore persists user badges. AddUserBadge must enforce uniqueness of
// (UserID, BadgeType) atomically and return an error matching
// ErrAlreadyEarned when the badge exists.
type BadgeStore interface {
	HasUserBadge(ctx context.Context, userID string, badge BadgeType) (bool, error)
	AddUserBadge(ctx context.Context, ub UserBadge) (UserBadge, error)
}

// Achievement is the result of a successful award.
type Achievement struct {
	Badge     Badge     `json:"badge"`
	UserBadge UserBadge `json:"user_badge"`
	Message   string    `json:"message"`
}

// AwardRequest asks for an achievement to be awarded.
type AwardRequest struct {
	UserID     string
	Kind       string
	Aggregates Aggregates
	Now        time.Time

	// Rand selects the success message for first_meal; nil picks the first.
	Rand *rand.Rand
}

// Award evaluates and awards an achievement exactly once per user.
//
// Rejections, all wrapped in *Rejection: ErrUnknownAchievement for unknown
// kinds, ErrConditionNotMet when the rule does not hold, ErrAlreadyEarned when
// the badge exists or a concurrent award won the race.
func Award(ctx context.Context, store BadgeStore, req AwardRequest) (Achievement, error) {
	logger := logging.FromContext(ctx).With().
		Str("component", "gamification").
		Str("operation", "award").
		Str("user_id", req.UserID).
		Str("achievement", req.Kind).
		Logger()

	kind := ParseAchievementKind(req.Kind)
	rule, ok := ruleFor(kind)
	if !ok {
		return Achievement{}, reject(ReasonUnknownType, fmt.Errorf("%w: %q", ErrUnknownAchievement, req.Kind))
	}

	if !rule.met(req.Aggregates) {
		return Achievement{}, reject(ReasonConditionNotMet, ErrConditionNotMet)
	}

	earned, err := store.HasUserBadge(ctx, req.UserID, rule.badge)
	if err != nil {
		return Achievement{}, fmt.Errorf("checking badge %s: %w", rule.badge, err)
	}
	if earned {
		return Achievement{}, reject(ReasonAlreadyEarned, ErrAlreadyEarned)
	}

	ub, err := store.AddUserBadge(ctx, UserBadge{
		UserID:    req.UserID,
		BadgeType: rule.badge,
		EarnedAt:  req.Now,
	})
	if errors.Is(err, ErrAlreadyEarned) {
		logger.Debug().Msg("badge added concurrently")
		return Achievement{}, reject(ReasonAlreadyEarned, ErrAlreadyEarned)
	}
	if err != nil {
		return Achievement{}, fmt.Errorf("adding badge %s: %w", rule.badge, err)
	}

	msg := rule.message
	if kind == AchievementFirstMeal {
		msg = PickMessage(CategorySuccess, KeyMealLogged, req.Rand) + rule.message
	}

	logger.Info().Str("badge", string(rule.badge)).Msg("achievement awarded")
	return Achievement{Badge: BadgeFor(rule.badge), UserBadge: ub, Message: msg}, nil
}

// ActivityEvent is the kind of activity that triggers automatic awards.
type ActivityEvent string

// Activity events.
const (
	EventMealLogged   ActivityEvent = "meal_logged"
	EventSwapAccepted ActivityEvent = "swap_accepted"
)

// AutoAwardResult is the outcome of AutoAward.
type AutoAwardResult struct {
	Triggered           []Achievement `json:"triggered_achievements"`
	MotivationalMessage string        `json:"motivational_message"`
}

// AutoAward checks the achievements an activity can unlock. After a meal it
// tries first_meal when exactly one meal exists and week_streak when the
// streak is exactly seven days; after an accepted swap it tries carbon_saver.
// Rejections are not errors here and are dropped; store failures are
// returned.
func AutoAward(ctx context.Context, store BadgeStore, userID string, event ActivityEvent,
	aggs Aggregates, now time.Time, rng *rand.Rand,
) (AutoAwardResult, error) {
	var kinds []AchievementKind
	switch event {
	case EventMealLogged:
		if aggs.MealCount == 1 {
			kinds = append(kinds, AchievementFirstMeal)
		}
		if aggs.CurrentStreak == WeekStreakDays {
			kinds = append(kinds, AchievementWeekStreak)
		}
	case EventSwapAccepted:
		if aggs.AcceptedSwapReduction >= CarbonSaverThreshold {
			kinds = append(kinds, AchievementCarbonSaver)
		}
	}

	result := AutoAwardResult{}
	for _, k := range kinds {
		a, err := Award(ctx, store, AwardRequest{
			UserID: userID, Kind: string(k), Aggregates: aggs, Now: now, Rand: rng,
		})
		if _, rejected := ReasonOf(err); rejected {
			continue
		}
		if err != nil {
			return result, err
		}
		result.Triggered = append(result.Triggered, a)
	}

	result.MotivationalMessage = PickMessage(CategoryTip, "", rng)
	return result, nil
}

// RecentAchievement is an earned badge as shown in the recent list.
type RecentAchievement struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Icon       string    `json:"icon"`
	Points     int       `json:"points"`
	Rarity     Rarity    `json:"rarity"`
	AchievedAt time.Time `json:"achieved_at"`
}

// DefaultRecentLimit is the default number of recent achievements.
const DefaultRecentLimit = 5

// RecentAchievements returns up to limit earned badges, newest first.
func RecentAchievements(badges []UserBadge, limit int, rng *rand.Rand) []RecentAchievement {
	sorted := make([]UserBadge, len(badges))
	copy(sorted, badges)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EarnedAt.After(sorted[j].EarnedAt)
	})
	if limit >= 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	out := make([]RecentAchievement, 0, len(sorted))
	for _, ub := range sorted {
		b := BadgeFor(ub.BadgeType)
		out = append(out, RecentAchievement{
			ID:         "badge_" + string(ub.BadgeType),
			Type:       "badge",
			Title:      b.Name,
			Message:    PickMessage(CategorySuccess, KeyChallengeCompleted, rng),
			Icon:       b.Icon,
			Points:     b.Points,
			Rarity:     b.Rarity,
			AchievedAt: ub.EarnedAt,
		})
	}
	return out
}
