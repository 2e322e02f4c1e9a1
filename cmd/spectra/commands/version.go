// ABOUTME: Version command
// ABOUTME: Prints product, version and Go runtime information
package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/harperreed/spectra/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
		fmt.Fprintf(cmd.OutOrStdout(), "  go: %s\n", runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
