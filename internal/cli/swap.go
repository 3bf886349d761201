package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/ecoplate/internal/cli/pagination"
	"github.com/rshade/ecoplate/internal/gamification"
	"github.com/rshade/ecoplate/internal/greenops"
	"github.com/rshade/ecoplate/internal/logging"
	"github.com/rshade/ecoplate/internal/store"
	"github.com/rshade/ecoplate/internal/swap"
	"github.com/rshade/ecoplate/internal/trends"
)

// Pattern thresholds for personalised swap messages.
const (
	frequentLoggerMeals  = 10
	healthConsciousAvgKg = 1.0
)

func newSwapCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap",
		Short: "Lower-carbon meal substitutions",
	}
	cmd.AddCommand(
		newSwapSuggestCmd(a),
		newSwapDecisionCmd(a, "accept", true),
		newSwapDecisionCmd(a, "reject", false),
		newSwapListCmd(a),
	)
	return cmd
}

// patternKey selects the personalised message variant for a meal pattern.
func patternKey(p trends.Patterns) string {
	switch {
	case p.DominantCategory == greenops.CategoryMeat:
		return gamification.KeyMeatLover
	case p.TotalRecords > 0 && p.AverageEmissions < healthConsciousAvgKg:
		return gamification.KeyHealthConscious
	case p.TotalRecords >= frequentLoggerMeals:
		return gamification.KeyFrequentLogger
	default:
		return ""
	}
}

func newSwapSuggestCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <meal-id>",
		Short: "Suggest and save substitutions for a logged meal",
		Long: `Suggests up to three lower-carbon substitutes for a logged meal, filtered by
the profile's dietary preference. Suggestions are saved so they can be
accepted or rejected later.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			fs, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			meal, ok := fs.Activity(args[0])
			if !ok || meal.UserID != a.userID() || meal.Kind != greenops.KindMeal {
				return fmt.Errorf("%w: meal %s", store.ErrNotFound, args[0])
			}

			patterns := trends.Analyze(trends.Latest(a.meals(fs), trends.RecentSampleSize))
			key := patternKey(patterns)

			suggestions := swap.Recommend(meal.FoodName, meal.PortionGrams, a.preference())
			records := make([]store.Swap, 0, len(suggestions))
			for _, s := range suggestions {
				records = append(records, store.Swap{
					UserID:              a.userID(),
					ActivityID:          meal.ID,
					OriginalFood:        s.OriginalFood,
					RecommendedFood:     s.RecommendedFood,
					Reduction:           s.Reduction,
					ReductionPercentage: s.ReductionPercentage,
					Message: s.Message + " " +
						gamification.RecommendationMessage(s.RecommendedFood, s.ReductionPercentage, key, a.rng()),
					Category:  string(s.Category),
					CreatedAt: a.now(),
				})
			}
			saved, err := fs.AddSwaps(ctx, records)
			if err != nil {
				return err
			}
			logging.FromContext(ctx).Debug().
				Str("component", "cli").
				Str("operation", "swap_suggest").
				Str("activity_id", meal.ID).
				Str("pattern", key).
				Int("suggestions", len(saved)).
				Msg("swaps suggested")

			return writeList(cmd.OutOrStdout(), a.format, saved, swapColumns(true))
		},
	}
}

func swapColumns(withMessage bool) []column[store.Swap] {
	cols := []column[store.Swap]{
		{"ID", func(s store.Swap) string { return s.ID }},
		{"FROM", func(s store.Swap) string { return s.OriginalFood }},
		{"TO", func(s store.Swap) string { return s.RecommendedFood }},
		{"SAVES", func(s store.Swap) string { return greenops.FormatKg(s.Reduction) }},
		{"%", func(s store.Swap) string { return strconv.FormatFloat(s.ReductionPercentage, 'f', 1, 64) }},
		{"STATUS", swapStatus},
	}
	if withMessage {
		cols = append(cols, column[store.Swap]{"MESSAGE", func(s store.Swap) string { return s.Message }})
	}
	return cols
}

func swapStatus(s store.Swap) string {
	switch {
	case s.Accepted == nil:
		return "pending"
	case *s.Accepted:
		return "accepted"
	default:
		return "rejected"
	}
}

// swapDecisionResult is the outcome of accepting or rejecting a swap.
type swapDecisionResult struct {
	Swap         store.Swap                    `json:"swap"`
	Message      string                        `json:"message,omitempty"`
	Achievements *gamification.AutoAwardResult `json:"achievements,omitempty"`
	Challenges   []gamification.ProgressUpdate `json:"challenge_updates,omitempty"`
}

func newSwapDecisionCmd(a *app, verb string, accept bool) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <swap-id>",
		Short: fmt.Sprintf("Mark a suggested swap as %sed", verb),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			fs, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			sw, prev, err := fs.SetSwapDecision(ctx, a.userID(), args[0], accept)
			if err != nil {
				return err
			}

			res := swapDecisionResult{Swap: sw}
			// Rewards and challenge progress follow the first acceptance only.
			if accept && (prev == nil || !*prev) {
				awards, awardErr := gamification.AutoAward(ctx, fs, a.userID(), gamification.EventSwapAccepted,
					a.aggregates(fs), a.now(), a.rng())
				if awardErr != nil {
					return awardErr
				}
				res.Achievements = &awards
				res.Message = gamification.PickMessage(gamification.CategorySuccess, gamification.KeySwapAccepted, a.rng())
				if res.Challenges, err = a.advanceChallenges(ctx, fs, gamification.ChallengeSwapAcceptance, 1); err != nil {
					return err
				}
			}

			return writeObject(cmd.OutOrStdout(), a.format, res, func(w io.Writer) error {
				fmt.Fprintf(w, "%s → %s: %s\n", sw.OriginalFood, sw.RecommendedFood, swapStatus(sw))
				if res.Message != "" {
					fmt.Fprintln(w, res.Message)
				}
				if res.Achievements != nil {
					for _, t := range res.Achievements.Triggered {
						fmt.Fprintf(w, "%s %s (+%d) %s\n", t.Badge.Icon, t.Badge.Name, t.Badge.Points, t.Message)
					}
				}
				for _, u := range res.Challenges {
					fmt.Fprintln(w, u.Message)
				}
				return nil
			})
		},
	}
}

//nolint:gochecknoglobals // Read-only sorter.
var swapSorter = pagination.NewSorter(map[string]func(x, y store.Swap) bool{
	"date":      func(x, y store.Swap) bool { return x.CreatedAt.Before(y.CreatedAt) },
	"reduction": func(x, y store.Swap) bool { return x.Reduction < y.Reduction },
	"food":      func(x, y store.Swap) bool { return x.RecommendedFood < y.RecommendedFood },
})

func newSwapListCmd(a *app) *cobra.Command {
	var (
		lf     listFlags
		status string
	)
	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List suggested swaps, newest first",
		Example: `  ecoplate swap list --status pending`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch status {
			case "", "pending", "accepted", "rejected":
			default:
				return fmt.Errorf("invalid status %q (use pending, accepted or rejected)", status)
			}
			fs, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			var all []store.Swap
			for _, s := range fs.Swaps(a.userID(), time.Time{}) {
				if status == "" || swapStatus(s) == status {
					all = append(all, s)
				}
			}
			page, err := applyList(&lf, all, swapSorter)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if err = writeList(out, a.format, page, swapColumns(false)); err != nil {
				return err
			}
			writePageFooter(out, a.format, &lf, len(all))
			return nil
		},
	}
	addListFlags(cmd, &lf)
	cmd.Flags().StringVar(&status, "status", "", "pending, accepted or rejected")
	return cmd
}
