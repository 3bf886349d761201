package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecoplate/internal/gamification"
	"github.com/rshade/ecoplate/internal/store"
)

type mealLog struct {
	Activity     store.Activity `json:"activity"`
	Achievements struct {
		Triggered []struct {
			Badge gamification.Badge `json:"badge"`
		} `json:"triggered_achievements"`
	} `json:"achievements"`
	Challenges []gamification.ProgressUpdate `json:"challenges"`
}

func logMeal(t *testing.T, food, grams string) mealLog {
	t.Helper()
	var res mealLog
	executeJSON(t, &res, "meal", "log", food, "--portion", grams, "--type", "lunch")
	return res
}

func TestEstimateFood(t *testing.T) {
	newHome(t)

	var res struct {
		Emissions    float64 `json:"emissions"`
		Category     string  `json:"category"`
		Rating       string  `json:"rating"`
		Alternatives []struct {
			Name string `json:"name"`
		} `json:"alternatives"`
	}
	executeJSON(t, &res, "estimate", "food", "소고기", "--portion", "200")
	assert.InDelta(t, 5.0, res.Emissions, 1e-9)
	assert.Equal(t, "육류", res.Category)
	assert.Equal(t, "LOW", res.Rating)
	assert.NotEmpty(t, res.Alternatives)

	out, err := execute(t, "estimate", "food", "소고기", "--portion", "200")
	require.NoError(t, err)
	assert.Contains(t, out, "소고기 200g")
}

func TestMealLogAwardsFirstMeal(t *testing.T) {
	newHome(t)

	first := logMeal(t, "소고기", "200")
	assert.NotEmpty(t, first.Activity.ID)
	assert.InDelta(t, 5.0, first.Activity.Emissions, 1e-9)
	require.Len(t, first.Achievements.Triggered, 1)
	assert.Equal(t, gamification.BadgeFirstMeal, first.Achievements.Triggered[0].Badge.Type)

	second := logMeal(t, "두부", "100")
	assert.Empty(t, second.Achievements.Triggered)

	var meals []store.Activity
	executeJSON(t, &meals, "meal", "list")
	require.Len(t, meals, 2)

	var shown store.Activity
	executeJSON(t, &shown, "meal", "show", first.Activity.ID)
	assert.Equal(t, "소고기", shown.FoodName)

	_, err := execute(t, "meal", "show", "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestMealLogRejectsBadInput(t *testing.T) {
	newHome(t)

	_, err := execute(t, "meal", "log", "두부", "--type", "brunch")
	require.Error(t, err)

	_, err = execute(t, "meal", "log", "두부", "--at", "yesterday-ish")
	require.Error(t, err)
}

func TestSwapSuggestAndAccept(t *testing.T) {
	newHome(t)
	meal := logMeal(t, "소고기", "200")

	var swaps []store.Swap
	executeJSON(t, &swaps, "swap", "suggest", meal.Activity.ID)
	require.Len(t, swaps, 3)
	assert.Equal(t, "닭고기", swaps[0].RecommendedFood)
	assert.InDelta(t, 3.8, swaps[0].Reduction, 1e-9)
	assert.Nil(t, swaps[0].Accepted)

	var decision struct {
		Swap    store.Swap `json:"swap"`
		Message string     `json:"message"`
	}
	executeJSON(t, &decision, "swap", "accept", swaps[0].ID)
	assert.True(t, decision.Swap.IsAccepted())
	assert.NotEmpty(t, decision.Message)

	executeJSON(t, &decision, "swap", "reject", swaps[1].ID)
	require.NotNil(t, decision.Swap.Accepted)
	assert.False(t, *decision.Swap.Accepted)

	var pending []store.Swap
	executeJSON(t, &pending, "swap", "list", "--status", "pending")
	require.Len(t, pending, 1)
	assert.Equal(t, swaps[2].ID, pending[0].ID)

	_, err := execute(t, "swap", "suggest", "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = execute(t, "swap", "list", "--status", "maybe")
	require.Error(t, err)
}

func TestSwapSuggestTwiceKeepsOneRecordPerFood(t *testing.T) {
	newHome(t)
	meal := logMeal(t, "소고기", "200")

	var first, second []store.Swap
	executeJSON(t, &first, "swap", "suggest", meal.Activity.ID)
	executeJSON(t, &second, "swap", "suggest", meal.Activity.ID)
	require.Len(t, first, 3)
	require.Len(t, second, 3)
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID, first[i].RecommendedFood)
	}

	var all []store.Swap
	executeJSON(t, &all, "swap", "list")
	assert.Len(t, all, 3)
}

func TestSwapAcceptAgainDoesNotAdvanceChallenge(t *testing.T) {
	newHome(t)

	var open []gamification.Challenge
	executeJSON(t, &open, "challenge", "available")
	var swapChallenge gamification.Challenge
	for _, c := range open {
		if c.Type == gamification.ChallengeSwapAcceptance {
			swapChallenge = c
		}
	}
	require.NotEmpty(t, swapChallenge.ID)
	_, err := execute(t, "challenge", "join", swapChallenge.ID)
	require.NoError(t, err)

	meal := logMeal(t, "소고기", "200")
	var swaps []store.Swap
	executeJSON(t, &swaps, "swap", "suggest", meal.Activity.ID)
	require.NotEmpty(t, swaps)

	type decision struct {
		Swap       store.Swap                    `json:"swap"`
		Message    string                        `json:"message"`
		Challenges []gamification.ProgressUpdate `json:"challenge_updates"`
	}
	var accepted decision
	executeJSON(t, &accepted, "swap", "accept", swaps[0].ID)
	require.Len(t, accepted.Challenges, 1)
	assert.Equal(t, 1, accepted.Challenges[0].Challenge.CurrentProgress)

	var again decision
	executeJSON(t, &again, "swap", "accept", swaps[0].ID)
	assert.True(t, again.Swap.IsAccepted())
	assert.Empty(t, again.Challenges)
	assert.Empty(t, again.Message)

	var views []gamification.ProgressView
	executeJSON(t, &views, "challenge", "list")
	require.Len(t, views, 1)
	assert.Equal(t, 1, views[0].CurrentProgress)

	// Reject then accept again is a fresh acceptance.
	_, err = execute(t, "swap", "reject", swaps[0].ID)
	require.NoError(t, err)
	var flipped decision
	executeJSON(t, &flipped, "swap", "accept", swaps[0].ID)
	require.Len(t, flipped.Challenges, 1)

	executeJSON(t, &views, "challenge", "list")
	require.Len(t, views, 1)
	assert.Equal(t, 2, views[0].CurrentProgress)
}

func TestChallengeFlow(t *testing.T) {
	newHome(t)

	var open []gamification.Challenge
	executeJSON(t, &open, "challenge", "available")
	require.Len(t, open, 4)

	var mealChallenge gamification.Challenge
	for _, c := range open {
		if c.Type == gamification.ChallengeMealLogging {
			mealChallenge = c
		}
	}
	require.NotEmpty(t, mealChallenge.ID)

	_, err := execute(t, "challenge", "join", mealChallenge.ID)
	require.NoError(t, err)

	_, err = execute(t, "challenge", "join", mealChallenge.ID)
	reason, ok := gamification.ReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, gamification.ReasonAlreadyJoined, reason)

	executeJSON(t, &open, "challenge", "available")
	assert.Len(t, open, 3)

	logged := logMeal(t, "두부", "100")
	require.Len(t, logged.Challenges, 1)
	assert.Equal(t, 1, logged.Challenges[0].Challenge.CurrentProgress)

	var done gamification.ProgressUpdate
	executeJSON(t, &done, "challenge", "progress", mealChallenge.ID, "100")
	assert.True(t, done.Challenge.Completed)
	assert.Equal(t, mealChallenge.TargetValue, done.Challenge.CurrentProgress)

	_, err = execute(t, "challenge", "progress", mealChallenge.ID, "1")
	require.ErrorIs(t, err, gamification.ErrNotInProgress)

	var views []gamification.ProgressView
	executeJSON(t, &views, "challenge", "list")
	require.Len(t, views, 1)
	assert.InDelta(t, 100.0, views[0].Percentage, 1e-9)
}

func TestChallengePersonalized(t *testing.T) {
	newHome(t)

	var pcs []gamification.PersonalizedChallenge
	executeJSON(t, &pcs, "challenge", "personalized")
	types := make([]string, 0, len(pcs))
	for _, p := range pcs {
		types = append(types, p.Type)
	}
	assert.Equal(t, []string{"streak", "variety", "smart_swap"}, types)
}

func TestAchievementsTrigger(t *testing.T) {
	newHome(t)

	_, err := execute(t, "achievements", "trigger", "carbon_saver")
	reason, ok := gamification.ReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, gamification.ReasonConditionNotMet, reason)

	_, err = execute(t, "achievements", "trigger", "moonwalk")
	reason, _ = gamification.ReasonOf(err)
	assert.Equal(t, gamification.ReasonUnknownType, reason)

	logMeal(t, "두부", "100")
	_, err = execute(t, "achievements", "trigger", "first_meal")
	reason, _ = gamification.ReasonOf(err)
	assert.Equal(t, gamification.ReasonAlreadyEarned, reason)

	var recent []gamification.RecentAchievement
	executeJSON(t, &recent, "achievements", "recent")
	require.Len(t, recent, 1)
	assert.Equal(t, "badge_first_meal", recent[0].ID)

	var catalogue []struct {
		Type   gamification.BadgeType `json:"badge_type"`
		Earned bool                   `json:"earned"`
	}
	executeJSON(t, &catalogue, "achievements", "catalogue")
	require.Len(t, catalogue, len(gamification.Catalogue()))
	for _, b := range catalogue {
		assert.Equal(t, b.Type == gamification.BadgeFirstMeal, b.Earned, b.Type)
	}
}

func TestImport(t *testing.T) {
	newHome(t)
	path := filepath.Join(t.TempDir(), "history.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`activities:
  - kind: meal
    food: 소고기
    portion_grams: 200
  - kind: transport
    mode: subway
    distance_km: 12
  - kind: transport
    mode: teleport
    distance_km: 3
`), 0o600))

	var res struct {
		Imported int `json:"imported"`
		Skipped  []struct {
			Index int `json:"index"`
		} `json:"skipped"`
	}
	executeJSON(t, &res, "import", path)
	assert.Equal(t, 2, res.Imported)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, 2, res.Skipped[0].Index)

	var acts []store.Activity
	executeJSON(t, &acts, "activity", "list")
	assert.Len(t, acts, 2)
}

func TestConfigSetGet(t *testing.T) {
	home := newHome(t)

	_, err := execute(t, "config", "init")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(home, "config.yaml"))

	_, err = execute(t, "config", "init")
	require.Error(t, err)

	_, err = execute(t, "config", "set", "profile.dietary_preference", "vegan")
	require.NoError(t, err)

	out, err := execute(t, "config", "get", "profile.dietary_preference")
	require.NoError(t, err)
	assert.Equal(t, "vegan\n", out)

	_, err = execute(t, "config", "set", "profile.dietary_preference", "carnivore")
	require.Error(t, err)
	_, err = execute(t, "config", "get", "nope")
	require.Error(t, err)

	_, err = execute(t, "config", "validate")
	require.NoError(t, err)
}

func TestDashboardAndStats(t *testing.T) {
	newHome(t)
	logMeal(t, "소고기", "200")

	out, err := execute(t, "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "ecoplate")

	var snap gamification.Snapshot
	executeJSON(t, &snap, "stats")
	assert.Equal(t, 1, snap.AchievementCount)
	assert.Equal(t, 1, snap.CurrentStreak)
}
