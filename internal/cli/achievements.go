package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rshade/ecoplate/internal/gamification"
)

func newAchievementsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "achievements",
		Aliases: []string{"badges"},
		Short:   "Show earned badges and trigger achievements",
	}
	cmd.AddCommand(
		newAchievementsRecentCmd(a),
		newAchievementsTriggerCmd(a),
		newAchievementsCatalogueCmd(a),
	)
	return cmd
}

func newAchievementsRecentCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List your most recent achievements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fs, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			recent := gamification.RecentAchievements(fs.UserBadges(a.userID()), limit, a.rng())
			return writeList(cmd.OutOrStdout(), a.format, recent, []column[gamification.RecentAchievement]{
				{"BADGE", func(r gamification.RecentAchievement) string { return r.Icon + " " + r.Title }},
				{"POINTS", func(r gamification.RecentAchievement) string { return strconv.Itoa(r.Points) }},
				{"RARITY", func(r gamification.RecentAchievement) string { return string(r.Rarity) }},
				{"EARNED", func(r gamification.RecentAchievement) string {
					return r.AchievedAt.In(a.loc).Format("2006-01-02")
				}},
				{"MESSAGE", func(r gamification.RecentAchievement) string { return r.Message }},
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", gamification.DefaultRecentLimit, "maximum achievements to show")
	return cmd
}

func newAchievementsTriggerCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "trigger <first_meal|week_streak|carbon_saver>",
		Short: "Award an achievement if its condition holds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			fs, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			ach, err := gamification.Award(ctx, fs, gamification.AwardRequest{
				UserID:     a.userID(),
				Kind:       args[0],
				Aggregates: a.aggregates(fs),
				Now:        a.now(),
				Rand:       a.rng(),
			})
			if err != nil {
				return err
			}
			return writeObject(cmd.OutOrStdout(), a.format, ach, func(w io.Writer) error {
				_, printErr := fmt.Fprintf(w, "%s %s (+%d)\n%s\n",
					ach.Badge.Icon, ach.Badge.Name, ach.Badge.Points, ach.Message)
				return printErr
			})
		},
	}
}

// badgeStatus is a catalogue badge with the user's earned state.
type badgeStatus struct {
	gamification.Badge
	Earned bool `json:"earned"`
}

func newAchievementsCatalogueCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "catalogue",
		Short: "List every badge and whether you have earned it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fs, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			earned := make(map[gamification.BadgeType]bool)
			for _, ub := range fs.UserBadges(a.userID()) {
				earned[ub.BadgeType] = true
			}
			catalogue := gamification.Catalogue()
			rows := make([]badgeStatus, 0, len(catalogue))
			for _, b := range catalogue {
				rows = append(rows, badgeStatus{Badge: b, Earned: earned[b.Type]})
			}
			return writeList(cmd.OutOrStdout(), a.format, rows, []column[badgeStatus]{
				{"BADGE", func(b badgeStatus) string { return b.Icon + " " + b.Name }},
				{"POINTS", func(b badgeStatus) string { return strconv.Itoa(b.Points) }},
				{"RARITY", func(b badgeStatus) string { return string(b.Rarity) }},
				{"EARNED", func(b badgeStatus) string {
					if b.Earned {
						return "yes"
					}
					return "-"
				}},
				{"DESCRIPTION", func(b badgeStatus) string { return b.Description }},
			})
		},
	}
}
