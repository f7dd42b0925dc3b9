package cmd

import (
	"fmt"

	"github.com/notargets/VSPBody/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print an example configuration file",
	Long: `Print an example configuration file with every key and its default.

Examples:
  vspbody config > body.cfg
  vspbody mesh -f fuselage.csv -c body.cfg`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), config.ExampleConfigFile)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
