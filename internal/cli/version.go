package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/ecoplate/pkg/version"
)

func newVersionCmd(ver string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the ecoplate version",
		Args:  cobra.NoArgs,
		// The version command needs no configuration.
		PersistentPreRunE:  func(*cobra.Command, []string) error { return nil },
		PersistentPostRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			if commit := version.GetCommit(); commit != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "ecoplate %s (%s)\n", ver, commit)
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ecoplate %s\n", ver)
		},
	}
}
