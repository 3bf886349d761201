package gamification

import "time"

// BadgeType identifies a badge.
type BadgeType string

// Badge types.
const (
	BadgeFirstMeal       BadgeType = "first_meal"
	BadgeWeekStreak      BadgeType = "week_streak"
	BadgeMonthStreak     BadgeType = "month_streak"
	BadgeCarbonSaver     BadgeType = "carbon_saver"
	BadgeEcoWarrior      BadgeType = "eco_warrior"
	BadgeSmartSwapper    BadgeType = "smart_swapper"
	BadgeChallengeMaster BadgeType = "challenge_master"
)

// Rarity is a badge rarity tier.
type Rarity string

// Rarities.
const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Badge is a badge definition.
type Badge struct {
	Type        BadgeType `json:"badge_type"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Points      int       `json:"points"`
	Rarity      Rarity    `json:"rarity"`
}

// UserBadge records that a user earned a badge. At most one exists per
// (UserID, BadgeType).
type UserBadge struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	BadgeType BadgeType `json:"badge_type"`
	EarnedAt  time.Time `json:"earned_at"`
}

//nolint:gochecknoglobals // Read-only reference data.
var badgeCatalogue = []Badge{
	{BadgeFirstMeal, "첫 기록의 주인공", "첫 번째 식사를 기록한 특별한 순간", "🍽️", 100, RarityCommon},
	{BadgeWeekStreak, "일주일 연속 달성자", "7일 연속으로 꾸준히 기록한 의지력의 증거", "🔥", 300, RarityRare},
	{BadgeMonthStreak, "한달 연속 마스터", "30일 연속 기록의 놀라운 끈기", "👑", 1000, RarityEpic},
	{BadgeCarbonSaver, "탄소 절약 영웅", "10kg 이상의 탄소를 절약한 환경 지킴이", "🌱", 500, RarityRare},
	{BadgeEcoWarrior, "환경 전사", "지속적인 친환경 실천의 진정한 용사", "🌍", 1500, RarityLegendary},
	{BadgeSmartSwapper, "스마트 선택 마스터", "현명한 식단 선택으로 변화를 만드는 리더", "⚡", 400, RarityRare},
	{BadgeChallengeMaster, "챌린지 정복자", "다양한 챌린지를 완수한 도전의 달인", "🏆", 800, RarityEpic},
}

// Defaults for badge types outside the catalogue.
const (
	defaultBadgeName        = "특별한 성취"
	defaultBadgeDescription = "특별한 성취를 달성했습니다"
	defaultBadgeIcon        = "🏅"
	defaultBadgePoints      = 100
)

// BadgeFor returns the catalogue definition of t, or a generic common badge
// worth 100 points for unknown types.
func BadgeFor(t BadgeType) Badge {
	for _, b := range badgeCatalogue {
		if b.Type == t {
			return b
		}
	}
	return Badge{
		Type:        t,
		Name:        defaultBadgeName,
		Description: defaultBadgeDescription,
		Icon:        defaultBadgeIcon,
		Points:      defaultBadgePoints,
		Rarity:      RarityCommon,
	}
}

// Catalogue returns every known badge in catalogue order.
func Catalogue() []Badge {
	out := make([]Badge, len(badgeCatalogue))
	copy(out, badgeCatalogue)
	return out
}

// TotalPoints sums the catalogue points of earned badges.
func TotalPoints(badges []UserBadge) int {
	total := 0
	for _, ub := range badges {
		total += BadgeFor(ub.BadgeType).Points
	}
	return total
}
