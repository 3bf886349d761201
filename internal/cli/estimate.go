package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rshade/ecoplate/internal/greenops"
)

// maxAlternatives is the number of lower-carbon dishes shown with a food estimate.
const maxAlternatives = 3

func newEstimateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate emissions without logging anything",
	}
	cmd.AddCommand(newEstimateFoodCmd(a), newEstimateEnergyCmd(a), newEstimateTransportCmd(a), newEstimateModesCmd(a))
	return cmd
}

// foodEstimate is a food estimate with its context.
type foodEstimate struct {
	greenops.Estimate
	Equivalency  string                 `json:"equivalency,omitempty"`
	Alternatives []greenops.Alternative `json:"alternatives,omitempty"`
}

func estimateFood(name string, portion float64, unit string) (foodEstimate, error) {
	est, err := greenops.EstimateActivity(greenops.ActivityInput{
		Kind:       greenops.KindMeal,
		Identifier: name,
		Quantity:   portion,
		Unit:       unit,
	})
	if err != nil {
		return foodEstimate{}, err
	}
	out := foodEstimate{Estimate: est, Alternatives: greenops.LowCarbonAlternatives(name, maxAlternatives)}
	if eq, eqErr := greenops.CalculateEquivalency(est.Emissions); eqErr == nil {
		out.Equivalency = eq.DisplayText()
	}
	return out, nil
}

func newEstimateFoodCmd(a *app) *cobra.Command {
	var (
		portion float64
		unit    string
	)
	cmd := &cobra.Command{
		Use:   "food <name>",
		Short: "Estimate the emissions of a food portion",
		Example: `  ecoplate estimate food 소고기 --portion 150
  ecoplate estimate food 비빔밥 --portion 1 --unit serving`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := estimateFood(args[0], portion, unit)
			if err != nil {
				return err
			}
			return writeObject(cmd.OutOrStdout(), a.format, res, func(w io.Writer) error {
				fmt.Fprintf(w, "%s %s: %s (%s, %s)\n",
					res.Identifier, greenops.FormatFloat(res.Quantity, 0)+"g",
					greenops.FormatKg(res.Emissions), res.Category, res.Rating)
				if res.Equivalency != "" {
					fmt.Fprintln(w, res.Equivalency)
				}
				if len(res.Alternatives) > 0 {
					fmt.Fprintln(w, "\n더 낮은 탄소 선택:")
					for _, alt := range res.Alternatives {
						fmt.Fprintf(w, "  %s  -%s (%.1f%%)\n", alt.Name, greenops.FormatKg(alt.Reduction), alt.ReductionPercentage)
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().Float64Var(&portion, "portion", greenops.ReferenceServingGrams, "portion size")
	cmd.Flags().StringVar(&unit, "unit", "g", "portion unit: g, kg or serving")
	return cmd
}

// energyFlags are the inputs of an energy reading.
type energyFlags struct {
	reading greenops.EnergyReading
}

func (f *energyFlags) add(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.reading.ElectricityKWh, "kwh", 0, "electricity used in kWh")
	cmd.Flags().Float64Var(&f.reading.ElectricityBill, "electricity-bill", 0, "electricity bill in KRW (used when --kwh is not set)")
	cmd.Flags().Float64Var(&f.reading.GasM3, "gas-m3", 0, "city gas used in m³")
	cmd.Flags().Float64Var(&f.reading.GasBill, "gas-bill", 0, "gas bill in KRW (used when --gas-m3 is not set)")
}

func (f *energyFlags) validate() error {
	r := f.reading
	if r.ElectricityKWh < 0 || r.ElectricityBill < 0 || r.GasM3 < 0 || r.GasBill < 0 {
		return greenops.ErrNegativeValue
	}
	if r.ElectricityKWh == 0 && r.ElectricityBill == 0 && r.GasM3 == 0 && r.GasBill == 0 {
		return errors.New("provide at least one of --kwh, --electricity-bill, --gas-m3 or --gas-bill")
	}
	return nil
}

func writeEnergy(w io.Writer, b greenops.EnergyBreakdown) error {
	fmt.Fprintf(w, "전기 %s kWh: %s\n", greenops.FormatFloat(b.ElectricityKWh, 1), greenops.FormatKg(b.ElectricityEmissions))
	fmt.Fprintf(w, "가스 %s m³: %s\n", greenops.FormatFloat(b.GasM3, 1), greenops.FormatKg(b.GasEmissions))
	fmt.Fprintf(w, "합계: %s\n", greenops.FormatKg(b.TotalEmissions))
	return nil
}

func newEstimateEnergyCmd(a *app) *cobra.Command {
	var f energyFlags
	cmd := &cobra.Command{
		Use:     "energy",
		Short:   "Estimate household electricity and gas emissions",
		Example: `  ecoplate estimate energy --kwh 320 --gas-bill 45000`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := f.validate(); err != nil {
				return err
			}
			b := greenops.EstimateEnergy(f.reading)
			return writeObject(cmd.OutOrStdout(), a.format, b, func(w io.Writer) error {
				return writeEnergy(w, b)
			})
		},
	}
	f.add(cmd)
	return cmd
}

// tripFlags are the inputs of a trip.
type tripFlags struct {
	km     float64
	liters float64
}

func (f *tripFlags) add(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.km, "km", 0, "distance in km")
	cmd.Flags().Float64Var(&f.liters, "liters", 0, "fuel burned in liters (car modes, when --km is not set)")
}

func (f *tripFlags) estimate(cmd *cobra.Command, mode string) (greenops.TripEstimate, error) {
	if f.km < 0 || f.liters < 0 {
		return greenops.TripEstimate{}, greenops.ErrNegativeValue
	}
	if f.km == 0 && f.liters == 0 {
		return greenops.TripEstimate{}, errors.New("provide --km or --liters")
	}
	if !greenops.IsKnownTransportMode(mode) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: unknown transport mode %q has no emission factor (see 'ecoplate estimate modes')\n", mode)
	}
	return greenops.EstimateTrip(greenops.TripInput{Mode: mode, DistanceKM: f.km, FuelLiters: f.liters}), nil
}

func writeTrip(w io.Writer, t greenops.TripEstimate) error {
	fmt.Fprintf(w, "%s %skm: %s\n", t.Mode, greenops.FormatFloat(t.DistanceKM, 1), greenops.FormatKg(t.Emissions))
	if t.EfficiencyNote != "" {
		fmt.Fprintln(w, t.EfficiencyNote)
	}
	return nil
}

func newEstimateTransportCmd(a *app) *cobra.Command {
	var f tripFlags
	cmd := &cobra.Command{
		Use:   "transport <mode>",
		Short: "Estimate trip emissions",
		Example: `  ecoplate estimate transport subway --km 12
  ecoplate estimate transport car_gasoline --liters 20`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := f.estimate(cmd, args[0])
			if err != nil {
				return err
			}
			return writeObject(cmd.OutOrStdout(), a.format, t, func(w io.Writer) error {
				return writeTrip(w, t)
			})
		},
	}
	f.add(cmd)
	return cmd
}

// modeRow is a transport mode as listed by estimate modes.
type modeRow struct {
	Group  string  `json:"group"`
	Mode   string  `json:"mode"`
	Label  string  `json:"label"`
	Factor float64 `json:"kg_per_km"`
}

func newEstimateModesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "List transport modes and their per-km factors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var rows []modeRow
			for _, g := range greenops.TransportModes() {
				for _, m := range g.Modes {
					rows = append(rows, modeRow{Group: g.Name, Mode: m.Mode, Label: m.Label, Factor: greenops.TransportFactor(m.Mode)})
				}
			}
			return writeList(cmd.OutOrStdout(), a.format, rows, []column[modeRow]{
				{"GROUP", func(r modeRow) string { return r.Group }},
				{"MODE", func(r modeRow) string { return r.Mode }},
				{"LABEL", func(r modeRow) string { return r.Label }},
				{"KG/KM", func(r modeRow) string { return greenops.FormatFloat(r.Factor, 4) }},
			})
		},
	}
}
