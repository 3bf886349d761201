package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/ecoplate/internal/cli/pagination"
	"github.com/rshade/ecoplate/internal/gamification"
	"github.com/rshade/ecoplate/internal/greenops"
	"github.com/rshade/ecoplate/internal/logging"
	"github.com/rshade/ecoplate/internal/store"
)

// Meal types accepted by --type.
var mealTypes = map[string]bool{ //nolint:gochecknoglobals // Read-only lookup.
	"breakfast": true, "lunch": true, "dinner": true, "snack": true,
}

// timeLayouts are tried in order by parseTime.
var timeLayouts = []string{ //nolint:gochecknoglobals // Read-only lookup.
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseTime parses s in loc, or returns now when s is empty.
func parseTime(s string, loc *time.Location, now time.Time) (time.Time, error) {
	if s == "" {
		return now, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q (use RFC3339, 'YYYY-MM-DD HH:MM' or 'YYYY-MM-DD')", s)
}

func newMealCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meal",
		Short: "Log and review meals",
	}
	cmd.AddCommand(newMealLogCmd(a), newMealListCmd(a), newMealShowCmd(a), newMealSearchCmd(a))
	return cmd
}

// mealLogResult is the outcome of logging a meal.
type mealLogResult struct {
	Activity     store.Activity                `json:"activity"`
	Category     greenops.Category             `json:"category"`
	Rating       greenops.Rating               `json:"rating"`
	Equivalency  string                        `json:"equivalency,omitempty"`
	Feedback     string                        `json:"feedback"`
	Achievements gamification.AutoAwardResult  `json:"achievements"`
	Challenges   []gamification.ProgressUpdate `json:"challenges,omitempty"`
}

func newMealLogCmd(a *app) *cobra.Command {
	var (
		portion  float64
		unit     string
		mealType string
		at       string
	)
	cmd := &cobra.Command{
		Use:   "log <food>",
		Short: "Log a meal and check achievements",
		Example: `  ecoplate meal log 김치찌개 --portion 300 --type lunch
  ecoplate meal log 연어 --portion 1 --unit serving --at "2026-10-01 19:30"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if mealType != "" && !mealTypes[mealType] {
				return fmt.Errorf("invalid meal type %q (use breakfast, lunch, dinner or snack)", mealType)
			}
			loggedAt, err := parseTime(at, a.loc, a.now())
			if err != nil {
				return err
			}
			est, err := estimateFood(args[0], portion, unit)
			if err != nil {
				return err
			}

			fs, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			act, err := fs.AddActivity(ctx, store.Activity{
				UserID:       a.userID(),
				Kind:         greenops.KindMeal,
				LoggedAt:     loggedAt,
				FoodName:     args[0],
				PortionGrams: est.Quantity,
				MealType:     mealType,
				Emissions:    est.Emissions,
			})
			if err != nil {
				return err
			}

			awards, err := gamification.AutoAward(ctx, fs, a.userID(), gamification.EventMealLogged,
				a.aggregates(fs), a.now(), a.rng())
			if err != nil {
				return err
			}
			progress, err := a.advanceChallenges(ctx, fs, gamification.ChallengeMealLogging, 1)
			if err != nil {
				return err
			}
			logging.FromContext(ctx).Info().
				Str("component", "cli").
				Str("operation", "meal_log").
				Str("activity_id", act.ID).
				Int("achievements", len(awards.Triggered)).
				Msg("meal logged")

			res := mealLogResult{
				Activity:     act,
				Category:     est.Category,
				Rating:       est.Rating,
				Equivalency:  est.Equivalency,
				Feedback:     mealFeedback(a, est.Rating),
				Achievements: awards,
				Challenges:   progress,
			}
			return writeObject(cmd.OutOrStdout(), a.format, res, func(w io.Writer) error {
				fmt.Fprintf(w, "기록됨 %s: %s %sg, %s (%s, %s)\n", act.ID, act.FoodName,
					greenops.FormatFloat(act.PortionGrams, 0), greenops.FormatKg(act.Emissions), res.Category, res.Rating)
				if res.Equivalency != "" {
					fmt.Fprintln(w, res.Equivalency)
				}
				fmt.Fprintln(w, res.Feedback)
				for _, t := range awards.Triggered {
					fmt.Fprintf(w, "%s %s (+%d) %s\n", t.Badge.Icon, t.Badge.Name, t.Badge.Points, t.Message)
				}
				for _, p := range progress {
					fmt.Fprintln(w, p.Message)
				}
				fmt.Fprintf(w, "\n다른 선택을 보려면: ecoplate swap suggest %s\n", act.ID)
				return nil
			})
		},
	}
	cmd.Flags().Float64Var(&portion, "portion", greenops.ReferenceServingGrams, "portion size")
	cmd.Flags().StringVar(&unit, "unit", "g", "portion unit: g, kg or serving")
	cmd.Flags().StringVar(&mealType, "type", "", "meal type: breakfast, lunch, dinner or snack")
	cmd.Flags().StringVar(&at, "at", "", "when the meal was eaten (default now)")
	return cmd
}

// mealFeedback encourages low-carbon choices and nudges high-carbon ones.
func mealFeedback(a *app, r greenops.Rating) string {
	switch r {
	case greenops.RatingHigh:
		return gamification.PickMessage(gamification.CategoryEncouragement, gamification.KeyLowCarbonChoice, a.rng())
	case greenops.RatingLow:
		return gamification.PickMessage(gamification.CategoryEncouragement, gamification.KeyImprovementNeeded, a.rng())
	default:
		return gamification.PickMessage(gamification.CategorySuccess, gamification.KeyMealLogged, a.rng())
	}
}

//nolint:gochecknoglobals // Read-only sorter.
var activitySorter = pagination.NewSorter(map[string]func(x, y store.Activity) bool{
	"date":      func(x, y store.Activity) bool { return x.LoggedAt.Before(y.LoggedAt) },
	"emissions": func(x, y store.Activity) bool { return x.Emissions < y.Emissions },
	"food":      func(x, y store.Activity) bool { return x.FoodName < y.FoodName },
})

// listActivities lists the user's activities of kind within the last days.
func listActivities(cmd *cobra.Command, a *app, kind greenops.ActivityKind, days int, lf *listFlags,
	cols []column[store.Activity],
) error {
	if days < 0 {
		return fmt.Errorf("days cannot be negative, got %d", days)
	}
	fs, err := a.openStore(cmd.Context())
	if err != nil {
		return err
	}
	filter := store.ActivityFilter{UserID: a.userID(), Kind: kind}
	if days > 0 {
		filter.Since = a.now().AddDate(0, 0, -days)
	}
	all := fs.Activities(filter)
	page, err := applyList(lf, all, activitySorter)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if err = writeList(out, a.format, page, cols); err != nil {
		return err
	}
	writePageFooter(out, a.format, lf, len(all))
	return nil
}

func activityTime(a *app) func(store.Activity) string {
	return func(act store.Activity) string { return act.LoggedAt.In(a.loc).Format("2006-01-02 15:04") }
}

func emissionsCell(act store.Activity) string { return greenops.FormatKg(act.Emissions) }

func newMealListCmd(a *app) *cobra.Command {
	var (
		lf   listFlags
		days int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List logged meals, newest first",
		Example: `  ecoplate meal list --days 7
  ecoplate meal list --sort emissions:desc --limit 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listActivities(cmd, a, greenops.KindMeal, days, &lf, []column[store.Activity]{
				{"ID", func(act store.Activity) string { return act.ID }},
				{"LOGGED", activityTime(a)},
				{"FOOD", func(act store.Activity) string { return act.FoodName }},
				{"PORTION", func(act store.Activity) string { return greenops.FormatFloat(act.PortionGrams, 0) + "g" }},
				{"TYPE", func(act store.Activity) string { return act.MealType }},
				{"EMISSIONS", emissionsCell},
			})
		},
	}
	addListFlags(cmd, &lf)
	cmd.Flags().IntVar(&days, "days", 0, "only meals from the last N days (0 = all)")
	return cmd
}

func newMealShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <meal-id>",
		Short: "Show a logged meal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			act, ok := fs.Activity(args[0])
			if !ok || act.UserID != a.userID() || act.Kind != greenops.KindMeal {
				return fmt.Errorf("%w: meal %s", store.ErrNotFound, args[0])
			}
			res := struct {
				store.Activity
				Category greenops.Category `json:"category"`
				Rating   greenops.Rating   `json:"rating"`
			}{act, greenops.Categorize(act.FoodName), greenops.RateSustainability(act.Emissions)}
			return writeObject(cmd.OutOrStdout(), a.format, res, func(w io.Writer) error {
				fmt.Fprintf(w, "ID:        %s\n", act.ID)
				fmt.Fprintf(w, "Logged:    %s\n", act.LoggedAt.In(a.loc).Format(time.RFC3339))
				fmt.Fprintf(w, "Food:      %s (%s)\n", act.FoodName, res.Category)
				fmt.Fprintf(w, "Portion:   %sg\n", greenops.FormatFloat(act.PortionGrams, 0))
				if act.MealType != "" {
					fmt.Fprintf(w, "Type:      %s\n", act.MealType)
				}
				fmt.Fprintf(w, "Emissions: %s (%s)\n", greenops.FormatKg(act.Emissions), res.Rating)
				return nil
			})
		},
	}
}

func newMealSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search the food table, lowest emissions first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeList(cmd.OutOrStdout(), a.format, greenops.SearchFoods(args[0]), []column[greenops.FoodMatch]{
				{"FOOD", func(m greenops.FoodMatch) string { return m.Name }},
				{"CATEGORY", func(m greenops.FoodMatch) string { return string(m.Category) }},
				{"KG/SERVING", func(m greenops.FoodMatch) string { return greenops.FormatFloat(m.Factor, 2) }},
			})
		},
	}
}
