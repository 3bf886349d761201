package cli

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/ecoplate/internal/config"
	"github.com/rshade/ecoplate/internal/gamification"
	"github.com/rshade/ecoplate/internal/greenops"
	"github.com/rshade/ecoplate/internal/logging"
	"github.com/rshade/ecoplate/internal/store"
	"github.com/rshade/ecoplate/internal/swap"
	"github.com/rshade/ecoplate/internal/trends"
)

// app is the per-invocation state shared by all commands.
type app struct {
	opts Options

	cfg        *config.Config
	configPath string
	projectDir string
	loc        *time.Location
	format     string

	logResult logging.LogPathResult
	logger    zerolog.Logger

	store *store.FileStore
}

func newApp(opts Options) *app {
	return &app{opts: opts, logger: zerolog.Nop()}
}

// setup loads configuration and logging before any command runs.
func (a *app) setup(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		configPath = p
	}

	projectFlag, _ := cmd.Flags().GetString("project-dir")
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	projectDir := config.ResolveProjectDir(ctx, projectFlag, wd)

	cfg, err := config.LoadWithProjectDir(ctx, configPath, projectDir)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if user, _ := cmd.Flags().GetString("user"); user != "" {
		cfg.Profile.UserID = user
	}

	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("loading timezone: %w", err)
	}

	format, _ := cmd.Flags().GetString("output")
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	switch format {
	case config.FormatTable, config.FormatJSON, config.FormatNDJSON:
	default:
		return fmt.Errorf("unsupported output format %q (use table, json or ndjson)", format)
	}

	a.cfg = cfg
	a.configPath = configPath
	a.projectDir = projectDir
	a.loc = loc
	a.format = format
	a.logResult, a.logger = setupLogging(cmd, cfg)
	return nil
}

// cleanup closes the log file handle.
func (a *app) cleanup(_ *cobra.Command) error {
	return a.logResult.Close()
}

func (a *app) now() time.Time {
	if a.opts.Now != nil {
		return a.opts.Now()
	}
	return time.Now()
}

// rng returns the injected random source, or one seeded from the clock.
func (a *app) rng() *rand.Rand {
	if a.opts.Rand == nil {
		seed := uint64(time.Now().UnixNano()) //nolint:gosec // message selection only
		a.opts.Rand = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return a.opts.Rand
}

func (a *app) userID() string {
	return a.cfg.Profile.UserID
}

func (a *app) preference() swap.DietaryPreference {
	return swap.ParseDietaryPreference(a.cfg.Profile.DietaryPreference)
}

// openStore opens the data file once per invocation and makes sure the
// configured user exists.
func (a *app) openStore(ctx context.Context) (*store.FileStore, error) {
	if a.store != nil {
		return a.store, nil
	}
	path, err := a.cfg.StorePath()
	if err != nil {
		return nil, err
	}
	fs, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	if _, ok := fs.User(a.userID()); !ok {
		_, err = fs.PutUser(ctx, store.User{
			ID:                a.userID(),
			Name:              a.cfg.Profile.Name,
			DietaryPreference: a.preference(),
			CreatedAt:         a.now(),
		})
		if err != nil {
			return nil, fmt.Errorf("creating user profile: %w", err)
		}
		logging.FromContext(ctx).Debug().
			Str("component", "cli").
			Str("user_id", a.userID()).
			Msg("created user profile")
	}

	a.store = fs
	return fs, nil
}

// meals returns all of the user's meal records.
func (a *app) meals(fs *store.FileStore) []trends.Record {
	return store.MealRecords(fs.Activities(store.ActivityFilter{UserID: a.userID(), Kind: greenops.KindMeal}))
}

// aggregates derives the achievement inputs for the user.
func (a *app) aggregates(fs *store.FileStore) gamification.Aggregates {
	meals := a.meals(fs)
	return gamification.Aggregates{
		MealCount:             len(meals),
		CurrentStreak:         trends.CurrentStreak(trends.LoggedDates(meals), a.now(), a.loc),
		AcceptedSwapReduction: fs.AcceptedReduction(a.userID()),
	}
}

// dashboard assembles the dashboard for the user.
func (a *app) dashboard(fs *store.FileStore) trends.Dashboard {
	ucs := fs.UserChallenges(a.userID())
	active, completed := 0, 0
	for _, uc := range ucs {
		if uc.Completed {
			completed++
		} else {
			active++
		}
	}
	return trends.BuildDashboard(trends.DashboardInput{
		Meals:               a.meals(fs),
		Swaps:               store.SwapRecords(fs.Swaps(a.userID(), time.Time{})),
		ActiveChallenges:    active,
		CompletedChallenges: completed,
	}, a.now(), a.loc)
}

// greeting returns a time-of-day greeting.
func (a *app) greeting() string {
	return gamification.PickMessage(gamification.CategoryGreeting,
		gamification.GreetingKey(a.now().In(a.loc).Hour()), a.rng())
}

// rejectionMessage is the user-facing text of a gamification rejection.
func rejectionMessage(reason gamification.Reason) string {
	switch reason {
	case gamification.ReasonAlreadyEarned:
		return "이미 획득한 업적입니다."
	case gamification.ReasonAlreadyJoined:
		return "이미 참여 중인 챌린지입니다."
	case gamification.ReasonConditionNotMet:
		return "아직 달성 조건을 만족하지 않았습니다."
	case gamification.ReasonNotFound:
		return "대상을 찾을 수 없습니다."
	case gamification.ReasonUnknownType:
		return "알 수 없는 유형입니다."
	default:
		return "요청을 처리할 수 없습니다."
	}
}

// FormatError renders an error returned by the root command for the
// terminal. Rejections show their reason and a translated message.
func FormatError(err error) string {
	if reason, ok := gamification.ReasonOf(err); ok {
		return fmt.Sprintf("Error (%s): %s", reason, rejectionMessage(reason))
	}
	return "Error: " + err.Error()
}
