package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rshade/ecoplate/internal/greenops"
	"github.com/rshade/ecoplate/internal/importer"
)

func newImportCmd(a *app) *cobra.Command {
	var (
		batchSize   int
		concurrency int
	)
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import activities from a YAML or JSON file",
		Long: `Estimates and stores every activity in a YAML or JSON file.

Entries that cannot be estimated are skipped and reported; the valid
ones are stored together in one write.`,
		Example: `  ecoplate import history.yaml

  # history.yaml
  activities:
    - kind: meal
      food: 소고기
      portion_grams: 150
      logged_at: 2026-10-01T12:30:00+09:00
    - kind: transport
      mode: subway
      distance_km: 12`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			entries, err := importer.ParseFile(args[0])
			if err != nil {
				return err
			}
			fs, err := a.openStore(ctx)
			if err != nil {
				return err
			}

			im := &importer.Importer{
				Writer:      fs,
				BatchSize:   batchSize,
				Concurrency: concurrency,
				Now:         a.now,
			}
			res, err := im.Import(ctx, a.userID(), entries)
			if err != nil {
				return err
			}
			return writeObject(cmd.OutOrStdout(), a.format, res, func(w io.Writer) error {
				fmt.Fprintf(w, "Imported %d of %d activities (%s)\n",
					res.Imported, len(entries), greenops.FormatKg(res.TotalEmissions))
				for _, s := range res.Skipped {
					fmt.Fprintf(w, "  skipped #%d: %s\n", s.Index+1, s.Reason)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&batchSize, "batch-size", importer.DefaultBatchSize, "entries estimated per batch")
	cmd.Flags().IntVar(&concurrency, "concurrency", importer.DefaultConcurrency, "batches estimated in parallel")
	return cmd
}
