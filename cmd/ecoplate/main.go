// Command ecoplate tracks the carbon footprint of meals, household energy
// and travel.
package main

import (
	"fmt"
	"os"

	"github.com/rshade/ecoplate/internal/cli"
	"github.com/rshade/ecoplate/pkg/version"
)

func run() error {
	return cli.NewRootCmd(version.GetVersion()).Execute()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}
