package gamification

import "fmt"

// ProfileAggregates are the inputs of personalised challenge generation.
type ProfileAggregates struct {
	CurrentStreak int
	// AverageEmissions is the mean per-meal emissions of recent meals.
	AverageEmissions float64
	// VarietyScore is distinct foods over recent meals, in [0, 1].
	VarietyScore float64
	// RecentAcceptedSwaps counts swaps accepted in the last 30 days.
	RecentAcceptedSwaps int
}

// Difficulty is a personalised challenge difficulty.
type Difficulty string

// Difficulties.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
)

// PersonalizedChallenge is a generated challenge proposal.
type PersonalizedChallenge struct {
	ID                 int        `json:"id"`
	Type               string     `json:"type"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	KoreanMessage      string     `json:"korean_message"`
	TargetValue        int        `json:"target_value"`
	CurrentProgress    int        `json:"current_progress"`
	ProgressPercentage float64    `json:"progress_percentage"`
	RewardPoints       int        `json:"reward_points"`
	Difficulty         Difficulty `json:"difficulty"`
	EstimatedDays      int        `json:"estimated_days"`
	Achievable         bool       `json:"is_achievable"`
}

// Personalised challenge rule parameters.
const (
	personalizedIDBase     = 1000
	shortStreakTarget      = 7
	longStreakTarget       = 14
	shortStreakBelow       = 3
	streakPointsPerDay     = 50
	highAverageEmissionsKg = 2.0
	reductionShare         = 0.3
	maxReductionKg         = 2.0
	reductionTenthsPerKg   = 10
	reductionPoints        = 300
	lowVarietyBelow        = 0.6
	varietyTarget          = 5
	varietyPoints          = 200
	fewSwapsBelow          = 5
	swapTarget             = 3
	swapPoints             = 250
	weekDays               = 7
	achievableWithinDays   = 14
)

// PersonalizedChallenges proposes up to four challenges, in rule order:
// a streak challenge while the streak is under a week, a reduction challenge
// when meals average over 2 kg, a variety challenge when variety is under
// 0.6, and a swap challenge with fewer than five recent accepted swaps.
// IDs are 1000 plus the position.
func PersonalizedChallenges(p ProfileAggregates) []PersonalizedChallenge {
	var out []PersonalizedChallenge

	if p.CurrentStreak < shortStreakTarget {
		target := shortStreakTarget
		difficulty := DifficultyEasy
		if p.CurrentStreak >= shortStreakBelow {
			target = longStreakTarget
			difficulty = DifficultyMedium
		}
		out = append(out, PersonalizedChallenge{
			Type:            "streak",
			Title:           fmt.Sprintf("%d일 연속 기록 챌린지", target),
			Description:     fmt.Sprintf("%d일 동안 매일 식사를 기록해보세요!", target),
			KoreanMessage:   fmt.Sprintf("매일 기록하는 습관, %d일 도전! 꾸준함이 가장 큰 힘이에요 💪", target),
			TargetValue:     target,
			CurrentProgress: p.CurrentStreak,
			RewardPoints:    target * streakPointsPerDay,
			Difficulty:      difficulty,
			EstimatedDays:   target - p.CurrentStreak,
		})
	}

	if p.AverageEmissions > highAverageEmissionsKg {
		reduction := min(p.AverageEmissions*reductionShare, maxReductionKg)
		out = append(out, PersonalizedChallenge{
			Type:          "carbon_reduction",
			Title:         "스마트 탄소 절약 챌린지",
			Description:   fmt.Sprintf("이번 주 평균 식사당 %.1fkg 탄소 절약하기", reduction),
			KoreanMessage: fmt.Sprintf("지금보다 조금만 더! 평균 %.1fkg만 줄이면 지구가 더 건강해져요 🌍", reduction),
			TargetValue:   int(reduction * reductionTenthsPerKg),
			RewardPoints:  reductionPoints,
			Difficulty:    DifficultyMedium,
			EstimatedDays: weekDays,
		})
	}

	if p.VarietyScore < lowVarietyBelow {
		out = append(out, PersonalizedChallenge{
			Type:          "variety",
			Title:         "다양한 맛 탐험 챌린지",
			Description:   "이번 주에 5가지 다른 카테고리 음식 시도하기",
			KoreanMessage: "새로운 맛의 발견! 다양한 음식으로 미식 여행을 떠나보세요 🌈",
			TargetValue:   varietyTarget,
			RewardPoints:  varietyPoints,
			Difficulty:    DifficultyEasy,
			EstimatedDays: weekDays,
		})
	}

	if p.RecentAcceptedSwaps < fewSwapsBelow {
		out = append(out, PersonalizedChallenge{
			Type:          "smart_swap",
			Title:         "친환경 선택 마스터 챌린지",
			Description:   "이번 주에 스마트 스왑 추천 3번 수락하기",
			KoreanMessage: "현명한 선택의 연속! 스마트 스왑으로 환경 히어로가 되어보세요 ⚡",
			TargetValue:   swapTarget,
			RewardPoints:  swapPoints,
			Difficulty:    DifficultyMedium,
			EstimatedDays: weekDays,
		})
	}

	for i := range out {
		out[i].ID = personalizedIDBase + i
		out[i].ProgressPercentage = percentOf(out[i].CurrentProgress, out[i].TargetValue)
		out[i].Achievable = out[i].EstimatedDays <= achievableWithinDays
	}
	return out
}
