package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/ecoplate/internal/gamification"
	"github.com/rshade/ecoplate/internal/logging"
	"github.com/rshade/ecoplate/internal/store"
	"github.com/rshade/ecoplate/internal/trends"
)

// recentSwapWindowDays is how far back accepted swaps count for
// personalised challenges.
const recentSwapWindowDays = 30

func newChallengeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "challenge",
		Short: "Join challenges and track progress",
	}
	cmd.AddCommand(
		newChallengeInitCmd(a),
		newChallengeAvailableCmd(a),
		newChallengeJoinCmd(a),
		newChallengeProgressCmd(a),
		newChallengeListCmd(a),
		newChallengePersonalizedCmd(a),
	)
	return cmd
}

// ensureChallenges seeds the default catalogue into an empty store.
func (a *app) ensureChallenges(ctx context.Context, fs *store.FileStore) error {
	if len(fs.Challenges()) > 0 {
		return nil
	}
	_, err := fs.SeedChallenges(ctx, gamification.DefaultChallenges())
	return err
}

// advanceChallenges adds delta to every in-progress challenge of type t.
// Challenges completed concurrently are skipped.
func (a *app) advanceChallenges(ctx context.Context, fs *store.FileStore, t gamification.ChallengeType, delta int,
) ([]gamification.ProgressUpdate, error) {
	var updates []gamification.ProgressUpdate
	for _, uc := range fs.UserChallenges(a.userID()) {
		if uc.Completed {
			continue
		}
		ch, ok := fs.Challenge(uc.ChallengeID)
		if !ok || ch.Type != t {
			continue
		}
		u, err := a.applyProgress(ctx, fs, ch.ID, delta)
		if errors.Is(err, gamification.ErrNotInProgress) {
			continue
		}
		if err != nil {
			return updates, err
		}
		updates = append(updates, u)
	}
	return updates, nil
}

func (a *app) applyProgress(ctx context.Context, fs *store.FileStore, challengeID string, delta int,
) (gamification.ProgressUpdate, error) {
	u, err := fs.AdvanceUserChallenge(ctx, a.userID(), challengeID, delta, a.now())
	if err != nil {
		return u, err
	}
	if u.Challenge.Completed {
		u.Message += " " + gamification.PickMessage(gamification.CategorySuccess, gamification.KeyChallengeCompleted, a.rng())
		logging.FromContext(ctx).Info().
			Str("component", "cli").
			Str("operation", "challenge_progress").
			Str("challenge_id", challengeID).
			Msg("challenge completed")
	}
	return u, nil
}

func challengeColumns() []column[gamification.Challenge] {
	return []column[gamification.Challenge]{
		{"ID", func(c gamification.Challenge) string { return c.ID }},
		{"NAME", func(c gamification.Challenge) string { return c.BadgeIcon + " " + c.Name }},
		{"TYPE", func(c gamification.Challenge) string { return string(c.Type) }},
		{"TARGET", func(c gamification.Challenge) string { return strconv.Itoa(c.TargetValue) }},
		{"DAYS", func(c gamification.Challenge) string { return strconv.Itoa(c.DurationDays) }},
		{"DESCRIPTION", func(c gamification.Challenge) string { return c.Description }},
	}
}

func newChallengeInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Install the default challenge catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fs, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			added, err := fs.SeedChallenges(cmd.Context(), gamification.DefaultChallenges())
			if err != nil {
				return err
			}
			res := struct {
				Added int `json:"added"`
				Total int `json:"total"`
			}{added, len(fs.Challenges())}
			return writeObject(cmd.OutOrStdout(), a.format, res, func(w io.Writer) error {
				_, printErr := fmt.Fprintf(w, "Added %d challenges (%d total).\n", res.Added, res.Total)
				return printErr
			})
		},
	}
}

func newChallengeAvailableCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "available",
		Short: "List active challenges you have not joined",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fs, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			if err = a.ensureChallenges(cmd.Context(), fs); err != nil {
				return err
			}
			open := gamification.Available(fs.Challenges(), fs.UserChallenges(a.userID()))
			return writeList(cmd.OutOrStdout(), a.format, open, challengeColumns())
		},
	}
}

func newChallengeJoinCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "join <challenge-id>",
		Short: "Join a challenge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			fs, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			if err = a.ensureChallenges(ctx, fs); err != nil {
				return err
			}

			var chPtr *gamification.Challenge
			if ch, ok := fs.Challenge(args[0]); ok {
				chPtr = &ch
			}
			uc, err := gamification.Join(a.userID(), chPtr, fs.UserChallenges(a.userID()), a.now())
			if err != nil {
				return err
			}
			uc, err = fs.AddUserChallenge(ctx, uc)
			if err != nil {
				return err
			}
			view := gamification.ViewProgress(uc, *chPtr, a.now())
			return writeObject(cmd.OutOrStdout(), a.format, view, func(w io.Writer) error {
				_, printErr := fmt.Fprintf(w, "'%s' 챌린지에 참여했습니다! 목표 %d, %d일 남음\n",
					chPtr.Name, chPtr.TargetValue, view.DaysRemaining)
				return printErr
			})
		},
	}
}

func newChallengeProgressCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "progress <challenge-id> <amount>",
		Short:   "Record progress on a joined challenge",
		Example: `  ecoplate challenge progress 01JA... 1`,
		Args:    cobra.ExactArgs(2), //nolint:mnd // id and amount
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}
			fs, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			u, err := a.applyProgress(cmd.Context(), fs, args[0], delta)
			if err != nil {
				return err
			}
			return writeObject(cmd.OutOrStdout(), a.format, u, func(w io.Writer) error {
				_, printErr := fmt.Fprintln(w, u.Message)
				return printErr
			})
		},
	}
}

func newChallengeListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your challenges with progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fs, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			now := a.now()
			var views []gamification.ProgressView
			for _, uc := range fs.UserChallenges(a.userID()) {
				if ch, ok := fs.Challenge(uc.ChallengeID); ok {
					views = append(views, gamification.ViewProgress(uc, ch, now))
				}
			}
			return writeList(cmd.OutOrStdout(), a.format, views, []column[gamification.ProgressView]{
				{"ID", func(v gamification.ProgressView) string { return v.Challenge.ID }},
				{"NAME", func(v gamification.ProgressView) string { return v.Challenge.Name }},
				{"PROGRESS", func(v gamification.ProgressView) string {
					return fmt.Sprintf("%d/%d (%.1f%%)", v.CurrentProgress, v.Challenge.TargetValue, v.Percentage)
				}},
				{"STATUS", func(v gamification.ProgressView) string {
					if v.Completed {
						return "completed"
					}
					return fmt.Sprintf("%dd left", v.DaysRemaining)
				}},
			})
		},
	}
}

// profileAggregates derives the inputs of personalised challenges.
func (a *app) profileAggregates(fs *store.FileStore) gamification.ProfileAggregates {
	meals := a.meals(fs)
	patterns := trends.Analyze(trends.Latest(meals, trends.RecentSampleSize))

	accepted := 0
	for _, s := range fs.Swaps(a.userID(), a.now().Add(-recentSwapWindowDays*24*time.Hour)) {
		if s.IsAccepted() {
			accepted++
		}
	}
	return gamification.ProfileAggregates{
		CurrentStreak:       trends.CurrentStreak(trends.LoggedDates(meals), a.now(), a.loc),
		AverageEmissions:    patterns.AverageEmissions,
		VarietyScore:        patterns.VarietyScore,
		RecentAcceptedSwaps: accepted,
	}
}

func newChallengePersonalizedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "personalized",
		Short: "Challenges suggested from your recent habits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fs, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			pcs := gamification.PersonalizedChallenges(a.profileAggregates(fs))
			return writeList(cmd.OutOrStdout(), a.format, pcs, []column[gamification.PersonalizedChallenge]{
				{"TITLE", func(p gamification.PersonalizedChallenge) string { return p.Title }},
				{"TARGET", func(p gamification.PersonalizedChallenge) string { return strconv.Itoa(p.TargetValue) }},
				{"POINTS", func(p gamification.PersonalizedChallenge) string { return strconv.Itoa(p.RewardPoints) }},
				{"DIFFICULTY", func(p gamification.PersonalizedChallenge) string { return string(p.Difficulty) }},
				{"DAYS", func(p gamification.PersonalizedChallenge) string { return strconv.Itoa(p.EstimatedDays) }},
				{"MESSAGE", func(p gamification.PersonalizedChallenge) string { return p.KoreanMessage }},
			})
		},
	}
}
