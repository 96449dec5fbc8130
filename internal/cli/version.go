package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version information (set at build time)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		if jsonOutput {
			fmt.Fprintf(stdout, `{"version":"%s","commit":"%s","date":"%s"}`+"\n", Version, GitCommit, BuildDate)
			return
		}
		fmt.Fprintf(stdout, "ajar version %s\n", Version)
		if verbose {
			fmt.Fprintf(stdout, "  commit: %s\n", GitCommit)
			fmt.Fprintf(stdout, "  built:  %s\n", BuildDate)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
