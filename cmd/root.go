package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	configFile       string
	outputFile       string
	threshold        int
	topFunctions     int
	projectName      string
	format           string
	dryRun           bool
	noMoji           bool
	verbose          bool
	noProgress       bool
	projectDir       string
	templatePath     string
	exportTemplate   bool
	validateTemplate string
)

// Console writers; tests swap them.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

var rootCmd = &cobra.Command{
	Use:   "analyze-code",
	Short: "Generate a code analysis report for a Go project",
	Long: `Generate a single markdown report from the Go analysis toolchain.

The tool runs gocyclo, gocognit, golangci-lint, go vet, staticcheck, gosec,
govulncheck, goconst, deadcode, go-cleanarch and go test -cover against the
project, then ranks and filters their findings into one document:
- Cyclomatic and cognitive complexity, with the functions that need attention
- Lint, vet, staticcheck and dead code findings
- Security issues and known vulnerabilities
- Code metrics and per-package test coverage

Settings are read from analyze_config.ini (or .yaml/.yml) in the project
directory; flags override them. Run 'analyze-code tools' to check which
analysis tools are installed.`,
	Example: `  # Analyze the current module
  analyze-code

  # Analyze another directory and write the report elsewhere
  analyze-code -C ../service -o reports/analysis.md

  # Print the report instead of writing it
  analyze-code --dry-run --nomoji

  # Machine-readable results
  analyze-code --format json -o analysis.json

  # Start a custom template from the built-in one
  analyze-code --export-template > report.tmpl
  analyze-code --validate-template report.tmpl
  analyze-code --template report.tmpl`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(verbose)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Template developer flags exit early
		if exportTemplate {
			return handleExportTemplate()
		}
		if validateTemplate != "" {
			return handleValidateTemplate(validateTemplate)
		}
		return runAnalyze(cmd.Context())
	},
}

// Execute runs the root cobra command and exits on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging, including every tool invocation")

	rootCmd.Flags().StringVar(&configFile, "config", "", "Path to config file (default: analyze_config.ini in the project directory)")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Path to the report (default from config: docs/code_analysis.md)")
	rootCmd.Flags().IntVar(&threshold, "threshold", 0, "Cyclomatic complexity above which functions need attention (default from config: 15)")
	rootCmd.Flags().IntVar(&topFunctions, "top", 0, "Number of functions in the most-complex tables (default from config: 10)")
	rootCmd.Flags().StringVar(&projectName, "project-name", "", "Project name shown in the console banner")
	rootCmd.Flags().StringVar(&format, "format", formatMarkdown, "Output format: markdown or json")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print to stdout instead of writing to file")
	rootCmd.Flags().BoolVar(&noMoji, "nomoji", false, "Disable emojis in the output")
	rootCmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable the progress bar")
	rootCmd.Flags().StringVarP(&projectDir, "dir", "C", ".", "Project directory to analyze")

	// Template flags
	rootCmd.Flags().StringVar(&templatePath, "template", "", "Custom report template file")
	rootCmd.Flags().BoolVar(&exportTemplate, "export-template", false, "Export the built-in report template to stdout")
	rootCmd.Flags().StringVar(&validateTemplate, "validate-template", "", "Validate a custom template file")

	rootCmd.AddCommand(toolsCmd, initCmd, versionCmd)

	// Execute reports errors itself; a failed analysis is not a usage error
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	// Add version flag as shortcut for "version" command
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("analyze-code {{.Version}}\n")
}
