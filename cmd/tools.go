package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/northcutted/analyze-code/pkg/runner"
)

var checkStatus = runner.CheckAll

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Show which analysis tools are installed",
	Long: `Check every tool the analysis runs. A tool counts as installed when it
is on PATH and answers --help. The report cannot be generated until all of
them are present.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printToolStatus(cmd, stdout)
	},
}

// printToolStatus lists each required tool as [OK] or [MISSING].
func printToolStatus(cmd *cobra.Command, w io.Writer) error {
	statuses := checkStatus(cmd.Context(), runner.RequiredTools)

	fmt.Fprintln(w, "Tool Status:")
	missing := 0
	for _, s := range statuses {
		if s.Available {
			fmt.Fprintf(w, "  [OK] %s (%s)\n", s.Name, s.Path)
			continue
		}
		missing++
		if s.Path != "" {
			fmt.Fprintf(w, "  [MISSING] %s (%s does not run)\n", s.Name, s.Path)
		} else {
			fmt.Fprintf(w, "  [MISSING] %s (not found on PATH)\n", s.Name)
		}
	}

	fmt.Fprintln(w)
	if missing > 0 {
		fmt.Fprintf(w, "%d of %d tools missing.\n", missing, len(statuses))
		return nil
	}
	fmt.Fprintln(w, "All required tools are installed.")
	return nil
}
