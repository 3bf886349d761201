package gamification_test

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecoplate/internal/gamification"
)

type memoryBadges struct {
	mu     sync.Mutex
	badges []gamification.UserBadge
	// raceOnAdd makes AddUserBadge report a duplicate as if another writer
	// had inserted the badge after HasUserBadge returned false.
	raceOnAdd bool
}

func (m *memoryBadges) HasUserBadge(_ context.Context, userID string, badge gamification.BadgeType) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.badges {
		if b.UserID == userID && b.BadgeType == badge {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryBadges) AddUserBadge(_ context.Context, ub gamification.UserBadge) (gamification.UserBadge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.raceOnAdd {
		return gamification.UserBadge{}, gamification.ErrAlreadyEarned
	}
	for _, b := range m.badges {
		if b.UserID == ub.UserID && b.BadgeType == ub.BadgeType {
			return gamification.UserBadge{}, gamification.ErrAlreadyEarned
		}
	}
	ub.ID = "ub-" + string(ub.BadgeType)
	m.badges = append(m.badges, ub)
	return ub, nil
}

var now = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		points       int
		level        int
		title        string
		pointsToNext int
		top          bool
	}{
		{0, 1, "새싹 지킴이", 500, false},
		{499, 1, "새싹 지킴이", 1, false},
		{600, 2, "친환경 실천가", 900, false},
		{3000, 4, "환경 전문가", 2000, false},
		{10000, 6, "환경 마스터", 0, true},
		{-10, 1, "새싹 지킴이", 510, false},
	}

	for _, tt := range tests {
		info := gamification.LevelFor(tt.points)
		assert.Equal(t, tt.level, info.Level, "points=%d", tt.points)
		assert.Equal(t, tt.title, info.Title)
		assert.Equal(t, tt.pointsToNext, info.PointsToNext)
		if tt.top {
			assert.Nil(t, info.NextThreshold)
		} else {
			require.NotNil(t, info.NextThreshold)
		}
	}
}

func TestBadgeFor(t *testing.T) {
	b := gamification.BadgeFor(gamification.BadgeCarbonSaver)
	assert.Equal(t, 500, b.Points)
	assert.Equal(t, gamification.RarityRare, b.Rarity)

	unknown := gamification.BadgeFor("mystery")
	assert.Equal(t, "특별한 성취", unknown.Name)
	assert.Equal(t, 100, unknown.Points)
	assert.Equal(t, gamification.RarityCommon, unknown.Rarity)

	total := gamification.TotalPoints([]gamification.UserBadge{
		{BadgeType: gamification.BadgeFirstMeal},
		{BadgeType: gamification.BadgeWeekStreak},
	})
	assert.Equal(t, 400, total)
}

func TestAward_Idempotent(t *testing.T) {
	store := &memoryBadges{}
	req := gamification.AwardRequest{
		UserID:     "u1",
		Kind:       "first_meal",
		Aggregates: gamification.Aggregates{MealCount: 1},
		Now:        now,
	}

	got, err := gamification.Award(context.Background(), store, req)
	require.NoError(t, err)
	assert.Equal(t, gamification.BadgeFirstMeal, got.Badge.Type)
	assert.Equal(t, "훌륭해요! 오늘도 지구를 지키는 선택을 하셨네요 🌍 첫 기록을 축하해요! 🎉", got.Message)
	assert.Equal(t, now, got.UserBadge.EarnedAt)

	_, err = gamification.Award(context.Background(), store, req)
	require.ErrorIs(t, err, gamification.ErrAlreadyEarned)
	reason, ok := gamification.ReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, gamification.ReasonAlreadyEarned, reason)
	assert.Len(t, store.badges, 1)
}

func TestAward_ConcurrentDuplicate(t *testing.T) {
	store := &memoryBadges{raceOnAdd: true}
	_, err := gamification.Award(context.Background(), store, gamification.AwardRequest{
		UserID:     "u1",
		Kind:       "week_streak",
		Aggregates: gamification.Aggregates{CurrentStreak: 7},
		Now:        now,
	})
	require.ErrorIs(t, err, gamification.ErrAlreadyEarned)
	reason, _ := gamification.ReasonOf(err)
	assert.Equal(t, gamification.ReasonAlreadyEarned, reason)
}

func TestAward_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		kind   string
		aggs   gamification.Aggregates
		reason gamification.Reason
		err    error
	}{
		{"unknown kind", "moon_landing", gamification.Aggregates{}, gamification.ReasonUnknownType, gamification.ErrUnknownAchievement},
		{"second meal", "first_meal", gamification.Aggregates{MealCount: 2}, gamification.ReasonConditionNotMet, gamification.ErrConditionNotMet},
		{"short streak", "week_streak", gamification.Aggregates{CurrentStreak: 6}, gamification.ReasonConditionNotMet, gamification.ErrConditionNotMet},
		{"little saved", "carbon_saver", gamification.Aggregates{AcceptedSwapReduction: 9.99}, gamification.ReasonConditionNotMet, gamification.ErrConditionNotMet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memoryBadges{}
			_, err := gamification.Award(context.Background(), store, gamification.AwardRequest{
				UserID: "u1", Kind: tt.kind, Aggregates: tt.aggs, Now: now,
			})
			require.ErrorIs(t, err, tt.err)
			reason, ok := gamification.ReasonOf(err)
			require.True(t, ok)
			assert.Equal(t, tt.reason, reason)
			assert.Empty(t, store.badges)
		})
	}
}

func TestAutoAward(t *testing.T) {
	store := &memoryBadges{}
	ctx := context.Background()

	res, err := gamification.AutoAward(ctx, store, "u1", gamification.EventMealLogged,
		gamification.Aggregates{MealCount: 1, CurrentStreak: 1}, now, nil)
	require.NoError(t, err)
	require.Len(t, res.Triggered, 1)
	assert.Equal(t, gamification.BadgeFirstMeal, res.Triggered[0].Badge.Type)
	assert.Equal(t, gamification.MessageAt(gamification.CategoryTip, "", 0), res.MotivationalMessage)

	// Already earned badges are silently skipped.
	res, err = gamification.AutoAward(ctx, store, "u1", gamification.EventMealLogged,
		gamification.Aggregates{MealCount: 1, CurrentStreak: 7}, now, nil)
	require.NoError(t, err)
	require.Len(t, res.Triggered, 1)
	assert.Equal(t, gamification.BadgeWeekStreak, res.Triggered[0].Badge.Type)

	res, err = gamification.AutoAward(ctx, store, "u1", gamification.EventSwapAccepted,
		gamification.Aggregates{AcceptedSwapReduction: 4}, now, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Triggered)
	assert.NotEmpty(t, res.MotivationalMessage)
}

func TestRecentAchievements(t *testing.T) {
	badges := []gamification.UserBadge{
		{UserID: "u1", BadgeType: gamification.BadgeFirstMeal, EarnedAt: now.Add(-48 * time.Hour)},
		{UserID: "u1", BadgeType: gamification.BadgeCarbonSaver, EarnedAt: now},
		{UserID: "u1", BadgeType: gamification.BadgeWeekStreak, EarnedAt: now.Add(-time.Hour)},
	}

	got := gamification.RecentAchievements(badges, 2, nil)
	require.Len(t, got, 2)
	assert.Equal(t, "탄소 절약 영웅", got[0].Title)
	assert.Equal(t, "badge_carbon_saver", got[0].ID)
	assert.Equal(t, "일주일 연속 달성자", got[1].Title)
	assert.Equal(t, gamification.BadgeFirstMeal, badges[0].BadgeType, "input not reordered")
}

func challenge() gamification.Challenge {
	ch := gamification.DefaultChallenges()[2]
	ch.ID = "c3"
	return ch
}

func TestJoin(t *testing.T) {
	ch := challenge()

	uc, err := gamification.Join("u1", &ch, nil, now)
	require.NoError(t, err)
	assert.Equal(t, "c3", uc.ChallengeID)
	assert.Equal(t, now, uc.StartedAt)
	assert.Zero(t, uc.CurrentProgress)

	_, err = gamification.Join("u1", &ch, []gamification.UserChallenge{uc}, now)
	require.ErrorIs(t, err, gamification.ErrAlreadyJoined)

	_, err = gamification.Join("u1", nil, nil, now)
	reason, _ := gamification.ReasonOf(err)
	assert.Equal(t, gamification.ReasonNotFound, reason)

	inactive := ch
	inactive.Active = false
	_, err = gamification.Join("u1", &inactive, nil, now)
	require.ErrorIs(t, err, gamification.ErrChallengeNotFound)
}

func TestAvailable(t *testing.T) {
	all := gamification.DefaultChallenges()
	for i := range all {
		all[i].ID = string(rune('a' + i))
	}
	all[3].Active = false

	got := gamification.Available(all, []gamification.UserChallenge{{ChallengeID: "b"}})
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
}

func TestApplyProgress(t *testing.T) {
	ch := challenge()
	uc, err := gamification.Join("u1", &ch, nil, now)
	require.NoError(t, err)

	upd, err := gamification.ApplyProgress(&uc, ch, 4, now)
	require.NoError(t, err)
	assert.Equal(t, 4, upd.Challenge.CurrentProgress)
	assert.False(t, upd.Challenge.Completed)
	assert.Equal(t, "진행률: 40.0% (4/10)", upd.Message)
	assert.Zero(t, uc.CurrentProgress, "input not mutated")

	later := now.Add(time.Hour)
	upd, err = gamification.ApplyProgress(&upd.Challenge, ch, 25, later)
	require.NoError(t, err)
	assert.Equal(t, 10, upd.Challenge.CurrentProgress)
	assert.True(t, upd.Challenge.Completed)
	require.NotNil(t, upd.Challenge.CompletedAt)
	assert.Equal(t, later, *upd.Challenge.CompletedAt)
	assert.Equal(t, "축하합니다! '스마트 스왑 마스터' 챌린지를 완료했습니다! 🎉", upd.Message)

	done := upd.Challenge
	_, err = gamification.ApplyProgress(&done, ch, 1, later)
	require.ErrorIs(t, err, gamification.ErrNotInProgress)
	reason, _ := gamification.ReasonOf(err)
	assert.Equal(t, gamification.ReasonNotFound, reason)

	_, err = gamification.ApplyProgress(nil, ch, 1, later)
	require.ErrorIs(t, err, gamification.ErrNotInProgress)

	_, err = gamification.ApplyProgress(&uc, ch, -1, later)
	require.ErrorIs(t, err, gamification.ErrNegativeProgress)
}

func TestViewProgress(t *testing.T) {
	ch := challenge()
	uc := gamification.UserChallenge{ChallengeID: ch.ID, CurrentProgress: 3, StartedAt: now}

	v := gamification.ViewProgress(uc, ch, now.Add(36*time.Hour))
	assert.InDelta(t, 30.0, v.Percentage, 1e-9)
	assert.Equal(t, 28, v.DaysRemaining)

	v = gamification.ViewProgress(uc, ch, now.AddDate(0, 2, 0))
	assert.Zero(t, v.DaysRemaining)
}

func TestPersonalizedChallenges(t *testing.T) {
	got := gamification.PersonalizedChallenges(gamification.ProfileAggregates{
		CurrentStreak:       4,
		AverageEmissions:    5,
		VarietyScore:        0.3,
		RecentAcceptedSwaps: 1,
	})
	require.Len(t, got, 4)

	assert.Equal(t, 1000, got[0].ID)
	assert.Equal(t, "streak", got[0].Type)
	assert.Equal(t, "14일 연속 기록 챌린지", got[0].Title)
	assert.Equal(t, 700, got[0].RewardPoints)
	assert.Equal(t, 10, got[0].EstimatedDays)
	assert.True(t, got[0].Achievable)

	assert.Equal(t, "carbon_reduction", got[1].Type)
	assert.Equal(t, 15, got[1].TargetValue)
	assert.Equal(t, "이번 주 평균 식사당 1.5kg 탄소 절약하기", got[1].Description)

	assert.Equal(t, "variety", got[2].Type)
	assert.Equal(t, 1003, got[3].ID)
	assert.Equal(t, "smart_swap", got[3].Type)

	none := gamification.PersonalizedChallenges(gamification.ProfileAggregates{
		CurrentStreak: 10, AverageEmissions: 1, VarietyScore: 0.9, RecentAcceptedSwaps: 8,
	})
	assert.Empty(t, none)

	fresh := gamification.PersonalizedChallenges(gamification.ProfileAggregates{
		VarietyScore: 1, RecentAcceptedSwaps: 9,
	})
	require.Len(t, fresh, 1)
	assert.Equal(t, 7, fresh[0].TargetValue)
	assert.Equal(t, gamification.DifficultyEasy, fresh[0].Difficulty)
}

func TestBuildSnapshot(t *testing.T) {
	done := now
	snap := gamification.BuildSnapshot(gamification.SnapshotInput{
		Badges: []gamification.UserBadge{
			{BadgeType: gamification.BadgeFirstMeal},
			{BadgeType: gamification.BadgeCarbonSaver},
		},
		Challenges: []gamification.UserChallenge{
			{Completed: true, CompletedAt: &done},
			{}, {},
		},
		CurrentStreak:    3,
		BestStreak:       5,
		TotalCarbonSaved: 12.3456,
	})

	assert.Equal(t, 2, snap.Level)
	assert.Equal(t, 600, snap.TotalPoints)
	assert.Equal(t, 900, snap.PointsToNext)
	assert.InDelta(t, 12.35, snap.TotalCarbonSaved, 1e-9)
	assert.Equal(t, 2, snap.AchievementCount)
	assert.InDelta(t, 33.3, snap.CompletionRate, 1e-9)
}

func TestMessages(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	candidates := gamification.Candidates(gamification.CategorySuccess, gamification.KeySwapAccepted)
	for range 20 {
		assert.Contains(t, candidates, gamification.PickMessage(gamification.CategorySuccess, gamification.KeySwapAccepted, rng))
	}

	assert.Equal(t,
		gamification.MessageAt(gamification.CategoryGreeting, gamification.KeyMorning, 0),
		gamification.MessageAt(gamification.CategoryGreeting, "midnight", 0),
		"unknown key falls back to the first key")
	assert.Equal(t,
		gamification.MessageAt(gamification.CategoryGreeting, gamification.KeyMorning, 1),
		gamification.MessageAt(gamification.CategoryGreeting, gamification.KeyMorning, 4))
	assert.Equal(t,
		gamification.MessageAt(gamification.CategoryGreeting, gamification.KeyMorning, 2),
		gamification.MessageAt(gamification.CategoryGreeting, gamification.KeyMorning, -1))

	assert.Equal(t, "계속해서 환경을 생각해주셔서 감사해요! 🌍", gamification.PickMessage(gamification.CategoryInsight, "nope", nil))
	assert.Equal(t, "함께 지구를 지켜나가요! 🌍✨", gamification.PickMessage("nope", "", nil))
}

func TestGreetingKey(t *testing.T) {
	assert.Equal(t, gamification.KeyEvening, gamification.GreetingKey(4))
	assert.Equal(t, gamification.KeyMorning, gamification.GreetingKey(5))
	assert.Equal(t, gamification.KeyAfternoon, gamification.GreetingKey(12))
	assert.Equal(t, gamification.KeyEvening, gamification.GreetingKey(18))
}

func TestRender(t *testing.T) {
	tmpl := "{meals}번 기록, {carbon}kg 절약"
	assert.Equal(t, "3번 기록, 1.5kg 절약", gamification.Render(tmpl, map[string]string{"meals": "3", "carbon": "1.5"}))
	assert.Equal(t, tmpl, gamification.Render(tmpl, map[string]string{"meals": "3"}))

	msg := gamification.InsightMessage(gamification.KeyCarbonSavings,
		map[string]string{"amount": "2.0", "trees": "0.1", "km": "9.3"}, nil)
	assert.Equal(t, "와! 지금까지 2.0kg의 탄소를 절약하셨어요! 나무 0.1그루를 심은 효과예요 🌳", msg)
}
