package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vspbody",
	Short: "Fuselage geometry preprocessing for panel and vortex lattice solvers",
	Long: `vspbody - lofted body preprocessing

Reads the structured section grid of a fuselage like body from a DegenGeom
CSV export and derives what a panel or vortex lattice solver needs:
  - nose, tail and seam closure classification
  - a flat plate mean surface with outward unit normals and local chords
  - a watertight triangulated surface mesh
  - the trailing edge Kutta nodes and their wake seed positions`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
