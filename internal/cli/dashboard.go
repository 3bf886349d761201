package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/ecoplate/internal/config"
	"github.com/rshade/ecoplate/internal/gamification"
	"github.com/rshade/ecoplate/internal/greenops"
	"github.com/rshade/ecoplate/internal/store"
	"github.com/rshade/ecoplate/internal/trends"
	"github.com/rshade/ecoplate/internal/tui"
)

// defaultFootprintDays is the default window of footprint daily.
const defaultFootprintDays = 7

func newDashboardCmd(a *app) *cobra.Command {
	var interactive bool
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Weekly stats, daily trend, top contributors and insights",
		Example: `  ecoplate dashboard
  ecoplate dashboard --tui
  ecoplate dashboard -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			fs, err := a.openStore(ctx)
			if err != nil {
				return err
			}

			if interactive {
				if !isTerminal(os.Stdout) {
					return errors.New("--tui requires an interactive terminal")
				}
				m := tui.NewDashboardModelWithLoading(ctx, a.greeting(), func(context.Context) (trends.Dashboard, error) {
					return a.dashboard(fs), nil
				})
				return tui.Run(ctx, m)
			}

			d := a.dashboard(fs)
			return writeObject(cmd.OutOrStdout(), a.format, d, func(w io.Writer) error {
				_, writeErr := fmt.Fprint(w, tui.RenderDashboard(a.greeting(), d))
				return writeErr
			})
		},
	}
	cmd.Flags().BoolVar(&interactive, "tui", false, "open the interactive dashboard")
	return cmd
}

func newFootprintCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "footprint",
		Short: "Meal footprint summaries",
	}
	cmd.AddCommand(newFootprintDailyCmd(a))
	return cmd
}

func newFootprintDailyCmd(a *app) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:     "daily",
		Short:   "Per-day meal emissions with each day's top contributor",
		Example: `  ecoplate footprint daily --days 14`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if days <= 0 {
				return fmt.Errorf("days must be positive, got %d", days)
			}
			fs, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			now := a.now()
			summaries := trends.DailySummaries(a.meals(fs), now.AddDate(0, 0, -days), now, a.loc)
			return writeList(cmd.OutOrStdout(), a.format, summaries, []column[trends.DailySummary]{
				{"DATE", func(s trends.DailySummary) string { return s.Date }},
				{"MEALS", func(s trends.DailySummary) string { return fmt.Sprintf("%d", s.Count) }},
				{"EMISSIONS", func(s trends.DailySummary) string { return greenops.FormatKg(s.TotalEmissions) }},
				{"TOP", func(s trends.DailySummary) string { return s.TopContributor }},
			})
		},
	}
	cmd.Flags().IntVar(&days, "days", defaultFootprintDays, "number of days to summarise")
	return cmd
}

func newEnergyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "energy",
		Short: "Household energy reports",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "monthly",
		Short: "Average monthly energy emissions over the last 180 days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fs, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			acts := fs.Activities(store.ActivityFilter{UserID: a.userID(), Kind: greenops.KindEnergy})
			m := trends.MonthlyEnergyAverage(store.EnergyRecords(acts), a.now(), a.loc)
			return writeObject(cmd.OutOrStdout(), a.format, m, func(w io.Writer) error {
				if m.DataPoints > 0 {
					heading(cmd, "월별 에너지")
					if err := writeList(w, config.FormatTable, m.Months, []column[trends.MonthTotal]{
						{"MONTH", func(t trends.MonthTotal) string { return t.Month }},
						{"KWH", func(t trends.MonthTotal) string { return greenops.FormatFloat(t.EnergyKWh, 1) }},
						{"EMISSIONS", func(t trends.MonthTotal) string { return greenops.FormatKg(t.Emissions) }},
					}); err != nil {
						return err
					}
					fmt.Fprintf(w, "\n월 평균: %s kWh, %s\n", greenops.FormatFloat(m.AverageEnergyKWh, 1), greenops.FormatKg(m.AverageEmissions))
				}
				fmt.Fprintln(w, m.Recommendation)
				return nil
			})
		},
	})
	return cmd
}

// progressSnapshot derives the user's progress snapshot.
func (a *app) progressSnapshot(fs *store.FileStore) gamification.Snapshot {
	dates := trends.LoggedDates(a.meals(fs))
	return gamification.BuildSnapshot(gamification.SnapshotInput{
		Badges:           fs.UserBadges(a.userID()),
		Challenges:       fs.UserChallenges(a.userID()),
		CurrentStreak:    trends.CurrentStreak(dates, a.now(), a.loc),
		BestStreak:       trends.BestStreak(dates, a.loc),
		TotalCarbonSaved: fs.AcceptedReduction(a.userID()),
	})
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Level, points, streaks and savings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fs, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			snap := a.progressSnapshot(fs)
			return writeObject(cmd.OutOrStdout(), a.format, snap, func(w io.Writer) error {
				fmt.Fprint(w, tui.RenderSnapshot(snap))
				fmt.Fprintf(w, "절약한 탄소: %s\n", greenops.FormatKg(snap.TotalCarbonSaved))
				if eq, eqErr := greenops.CalculateEquivalency(snap.TotalCarbonSaved); eqErr == nil && !eq.IsEmpty {
					fmt.Fprintln(w, gamification.InsightMessage(gamification.KeyCarbonSavings, map[string]string{
						"amount": greenops.FormatFloat(snap.TotalCarbonSaved, 1),
						"trees":  greenops.FormatFloat(eq.Trees, 1),
						"km":     greenops.FormatFloat(eq.CarKM, 1),
					}, a.rng()))
				}
				fmt.Fprintf(w, "업적 %d개, 챌린지 완료율 %.1f%%\n", snap.AchievementCount, snap.CompletionRate)
				if snap.CurrentStreak > 0 {
					fmt.Fprintln(w, gamification.PickMessage(gamification.CategoryEncouragement,
						gamification.KeyStreakMotivation, a.rng()))
				}
				return nil
			})
		},
	}
}
