// Package cli implements the ecoplate command line.
package cli

import (
	"math/rand/v2"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Options injects the clock and randomness. Zero values use the wall clock
// and an unseeded generator.
type Options struct {
	Now  func() time.Time
	Rand *rand.Rand
}

// NewRootCmd creates the root Cobra command for the ecoplate CLI.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithOptions(ver, Options{})
}

// NewRootCmdWithOptions creates the root command with an injected clock and
// random source for testability.
func NewRootCmdWithOptions(ver string, opts Options) *cobra.Command {
	a := newApp(opts)

	cmd := &cobra.Command{
		Use:           "ecoplate",
		Short:         "Personal carbon footprint tracker",
		Long:          "ecoplate: estimate and track the carbon footprint of meals, household energy and travel",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.cleanup(cmd)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file (default $ECOPLATE_HOME/config.yaml)")
	cmd.PersistentFlags().String("project-dir", "", "project directory holding a .ecoplate/config.yaml overlay")
	cmd.PersistentFlags().String("user", "", "user ID (overrides profile.user_id)")
	cmd.PersistentFlags().StringP("output", "o", "", "output format: table, json or ndjson (default from config)")

	cmd.AddCommand(
		newEstimateCmd(a),
		newMealCmd(a),
		newActivityCmd(a),
		newSwapCmd(a),
		newDashboardCmd(a),
		newFootprintCmd(a),
		newEnergyCmd(a),
		newStatsCmd(a),
		newChallengeCmd(a),
		newAchievementsCmd(a),
		newImportCmd(a),
		newConfigCmd(a),
		newVersionCmd(ver),
	)
	return cmd
}

const rootCmdExample = `  # Estimate a meal without logging it
  ecoplate estimate food 소고기 --portion 150

  # Log a meal and see swap suggestions
  ecoplate meal log 김치찌개 --portion 300 --type lunch
  ecoplate swap suggest <meal-id>

  # Log household energy and a commute
  ecoplate activity energy --kwh 320 --gas-bill 45000
  ecoplate activity transport subway --km 12

  # Weekly dashboard, interactive in a terminal
  ecoplate dashboard --tui

  # Join a challenge and record progress
  ecoplate challenge join <challenge-id>
  ecoplate challenge progress <challenge-id> 1

  # Bulk import
  ecoplate import meals.yaml`
