package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// versionCmd prints the installed version
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the installed version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
