package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rshade/ecoplate/internal/greenops"
	"github.com/rshade/ecoplate/internal/store"
)

func newActivityCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Log household energy and travel",
	}
	cmd.AddCommand(newActivityEnergyCmd(a), newActivityTransportCmd(a), newActivityListCmd(a))
	return cmd
}

func newActivityEnergyCmd(a *app) *cobra.Command {
	var (
		f  energyFlags
		at string
	)
	cmd := &cobra.Command{
		Use:   "energy",
		Short: "Log a household energy reading",
		Example: `  ecoplate activity energy --kwh 320 --gas-m3 40
  ecoplate activity energy --electricity-bill 52000 --at 2026-09-30`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := f.validate(); err != nil {
				return err
			}
			loggedAt, err := parseTime(at, a.loc, a.now())
			if err != nil {
				return err
			}
			b := greenops.EstimateEnergy(f.reading)

			fs, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			act, err := fs.AddActivity(cmd.Context(), store.Activity{
				UserID:    a.userID(),
				Kind:      greenops.KindEnergy,
				LoggedAt:  loggedAt,
				EnergyKWh: b.ElectricityKWh,
				GasM3:     b.GasM3,
				Emissions: b.TotalEmissions,
			})
			if err != nil {
				return err
			}
			res := struct {
				Activity  store.Activity           `json:"activity"`
				Breakdown greenops.EnergyBreakdown `json:"breakdown"`
			}{act, b}
			return writeObject(cmd.OutOrStdout(), a.format, res, func(w io.Writer) error {
				fmt.Fprintf(w, "기록됨 %s\n", act.ID)
				return writeEnergy(w, b)
			})
		},
	}
	f.add(cmd)
	cmd.Flags().StringVar(&at, "at", "", "reading date (default now)")
	return cmd
}

func newActivityTransportCmd(a *app) *cobra.Command {
	var (
		f  tripFlags
		at string
	)
	cmd := &cobra.Command{
		Use:   "transport <mode>",
		Short: "Log a trip",
		Example: `  ecoplate activity transport subway --km 12
  ecoplate activity transport car_diesel --liters 30`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loggedAt, err := parseTime(at, a.loc, a.now())
			if err != nil {
				return err
			}
			trip, err := f.estimate(cmd, args[0])
			if err != nil {
				return err
			}

			fs, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			act, err := fs.AddActivity(cmd.Context(), store.Activity{
				UserID:        a.userID(),
				Kind:          greenops.KindTransport,
				LoggedAt:      loggedAt,
				TransportMode: greenops.ClassifyTransportMode(args[0]),
				DistanceKM:    trip.DistanceKM,
				Emissions:     trip.Emissions,
			})
			if err != nil {
				return err
			}
			res := struct {
				Activity store.Activity        `json:"activity"`
				Trip     greenops.TripEstimate `json:"trip"`
			}{act, trip}
			return writeObject(cmd.OutOrStdout(), a.format, res, func(w io.Writer) error {
				fmt.Fprintf(w, "기록됨 %s (%s)\n", act.ID, act.TransportMode)
				return writeTrip(w, trip)
			})
		},
	}
	f.add(cmd)
	cmd.Flags().StringVar(&at, "at", "", "trip date (default now)")
	return cmd
}

func newActivityListCmd(a *app) *cobra.Command {
	var (
		lf   listFlags
		days int
		kind string
	)
	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List logged activities of every kind",
		Example: `  ecoplate activity list --kind transport --days 30`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			k := greenops.KindUnrecognized
			if kind != "" {
				if k = greenops.ParseActivityKind(kind); k == greenops.KindUnrecognized {
					return fmt.Errorf("%w: %q", greenops.ErrUnrecognizedKind, kind)
				}
			}
			return listActivities(cmd, a, k, days, &lf, []column[store.Activity]{
				{"ID", func(act store.Activity) string { return act.ID }},
				{"LOGGED", activityTime(a)},
				{"KIND", func(act store.Activity) string { return act.Kind.String() }},
				{"DETAIL", activityDetail},
				{"EMISSIONS", emissionsCell},
			})
		},
	}
	addListFlags(cmd, &lf)
	cmd.Flags().IntVar(&days, "days", 0, "only activities from the last N days (0 = all)")
	cmd.Flags().StringVar(&kind, "kind", "", "meal, energy or transport")
	return cmd
}

func activityDetail(act store.Activity) string {
	switch act.Kind {
	case greenops.KindMeal:
		return fmt.Sprintf("%s %sg", act.FoodName, greenops.FormatFloat(act.PortionGrams, 0))
	case greenops.KindEnergy:
		return fmt.Sprintf("%skWh %sm³", greenops.FormatFloat(act.EnergyKWh, 1), greenops.FormatFloat(act.GasM3, 1))
	case greenops.KindTransport:
		return fmt.Sprintf("%s %skm", act.TransportMode, greenops.FormatFloat(act.DistanceKM, 1))
	default:
		return ""
	}
}
