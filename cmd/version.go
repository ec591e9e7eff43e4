package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X github.com/northcutted/analyze-code/cmd.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(stdout, "analyze-code %s\n", Version)
		fmt.Fprintf(stdout, "  commit: %s\n", Commit)
		fmt.Fprintf(stdout, "  built:  %s\n", Date)
	},
}
