package gamification

import (
	"fmt"
	"time"

	"github.com/rshade/ecoplate/internal/greenops"
)

// ChallengeType classifies what a challenge measures.
type ChallengeType string

// Challenge types.
const (
	ChallengeCarbonReduction ChallengeType = "carbon_reduction"
	ChallengeMealLogging     ChallengeType = "meal_logging"
	ChallengeSwapAcceptance  ChallengeType = "swap_acceptance"
	ChallengeWeeklyGoal      ChallengeType = "weekly_goal"
)

// Challenge is a challenge definition users can join.
type Challenge struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Type         ChallengeType `json:"challenge_type"`
	TargetValue  int           `json:"target_value"`
	BadgeIcon    string        `json:"badge_icon,omitempty"`
	DurationDays int           `json:"duration_days"`
	Active       bool          `json:"is_active"`
}

// UserChallenge tracks one user's progress on one challenge. Progress never
// decreases and never exceeds the target; CompletedAt is set exactly once.
type UserChallenge struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	ChallengeID     string     `json:"challenge_id"`
	CurrentProgress int        `json:"current_progress"`
	Completed       bool       `json:"completed"`
	StartedAt       time.Time  `json:"started_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

// DefaultChallenges returns the built-in challenge catalogue, without IDs.
func DefaultChallenges() []Challenge {
	return []Challenge{
		{
			Name:         "일주일 탄소 감축 도전",
			Description:  "일주일 동안 탄소 배출량을 20% 줄여보세요!",
			Type:         ChallengeCarbonReduction,
			TargetValue:  5,
			BadgeIcon:    "🌱",
			DurationDays: 7,
			Active:       true,
		},
		{
			Name:         "꾸준한 식사 기록",
			Description:  "30일 동안 매일 식사를 기록해보세요!",
			Type:         ChallengeMealLogging,
			TargetValue:  30,
			BadgeIcon:    "📝",
			DurationDays: 30,
			Active:       true,
		},
		{
			Name:         "스마트 스왑 마스터",
			Description:  "이번 달에 스마트 스왑을 10번 실천해보세요!",
			Type:         ChallengeSwapAcceptance,
			TargetValue:  10,
			BadgeIcon:    "🔄",
			DurationDays: 30,
			Active:       true,
		},
		{
			Name:         "주간 그린 라이프",
			Description:  "일주일 동안 매일 친환경 식사를 실천해보세요!",
			Type:         ChallengeWeeklyGoal,
			TargetValue:  7,
			BadgeIcon:    "💚",
			DurationDays: 7,
			Active:       true,
		},
	}
}

// Available returns active challenges the user has not joined, in input order.
func Available(challenges []Challenge, joined []UserChallenge) []Challenge {
	seen := make(map[string]struct{}, len(joined))
	for _, uc := range joined {
		seen[uc.ChallengeID] = struct{}{}
	}

	var out []Challenge
	for _, c := range challenges {
		if _, ok := seen[c.ID]; ok || !c.Active {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Join starts ch for userID. ch is nil when the challenge does not exist.
// existing are the user's current user challenges.
//
// Rejects missing or inactive challenges with ErrChallengeNotFound and
// duplicates with ErrAlreadyJoined. The returned value has no ID; the store
// assigns one.
func Join(userID string, ch *Challenge, existing []UserChallenge, now time.Time) (UserChallenge, error) {
	if ch == nil || !ch.Active {
		return UserChallenge{}, reject(ReasonNotFound, ErrChallengeNotFound)
	}
	for _, uc := range existing {
		if uc.UserID == userID && uc.ChallengeID == ch.ID {
			return UserChallenge{}, reject(ReasonAlreadyJoined, ErrAlreadyJoined)
		}
	}
	return UserChallenge{
		UserID:      userID,
		ChallengeID: ch.ID,
		StartedAt:   now,
	}, nil
}

// ProgressUpdate is the outcome of ApplyProgress.
type ProgressUpdate struct {
	Challenge UserChallenge `json:"user_challenge"`
	Target    int           `json:"target_value"`
	Message   string        `json:"message"`
}

// ApplyProgress adds delta to uc's progress on ch at now. uc is nil when the
// user has not joined ch.
//
// Progress is clamped to the target; reaching it completes the challenge and
// stamps CompletedAt. Missing or completed user challenges are rejected with
// ErrNotInProgress, negative deltas with ErrNegativeProgress.
func ApplyProgress(uc *UserChallenge, ch Challenge, delta int, now time.Time) (ProgressUpdate, error) {
	if uc == nil || uc.Completed {
		return ProgressUpdate{}, reject(ReasonNotFound, ErrNotInProgress)
	}
	if delta < 0 {
		return ProgressUpdate{}, reject(ReasonInvalid, ErrNegativeProgress)
	}

	next := *uc
	next.CurrentProgress = min(ch.TargetValue, uc.CurrentProgress+delta)

	var msg string
	if next.CurrentProgress >= ch.TargetValue {
		next.Completed = true
		completed := now
		next.CompletedAt = &completed
		msg = fmt.Sprintf("축하합니다! '%s' 챌린지를 완료했습니다! 🎉", ch.Name)
	} else {
		msg = fmt.Sprintf("진행률: %.1f%% (%d/%d)",
			percentOf(next.CurrentProgress, ch.TargetValue), next.CurrentProgress, ch.TargetValue)
	}

	return ProgressUpdate{Challenge: next, Target: ch.TargetValue, Message: msg}, nil
}

// ProgressView is a user challenge with derived display values.
type ProgressView struct {
	UserChallenge
	Challenge     Challenge `json:"challenge"`
	Percentage    float64   `json:"progress_percentage"`
	DaysRemaining int       `json:"days_remaining"`
}

// ViewProgress derives the completion percentage (capped at 100, 1 decimal)
// and the whole days left before the challenge window closes.
func ViewProgress(uc UserChallenge, ch Challenge, now time.Time) ProgressView {
	end := uc.StartedAt.AddDate(0, 0, ch.DurationDays)
	days := int(end.Sub(now).Hours() / 24) //nolint:mnd // hours per day
	return ProgressView{
		UserChallenge: uc,
		Challenge:     ch,
		Percentage:    greenops.Round(min(100, percentOf(uc.CurrentProgress, ch.TargetValue)), 1),
		DaysRemaining: max(0, days),
	}
}

// CompletionRate returns the percentage of completed user challenges,
// rounded to 1 decimal, or 0 when there are none.
func CompletionRate(ucs []UserChallenge) float64 {
	if len(ucs) == 0 {
		return 0
	}
	done := 0
	for _, uc := range ucs {
		if uc.Completed {
			done++
		}
	}
	return greenops.Round(float64(done)/float64(len(ucs))*100, 1)
}

func percentOf(progress, target int) float64 {
	if target <= 0 {
		return 0
	}
	return float64(progress) / float64(target) * 100
}
