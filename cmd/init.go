package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/northcutted/analyze-code/pkg/config"
)

const configHeader = `# analyze-code configuration.
#
# analysis.complexity_threshold selects the "functions requiring attention"
# table; analysis.top_functions sizes the most-complex tables.
# deadcode.exclude_files drops findings whose path contains an entry, and
# deadcode.exclude_functions drops findings whose message contains one.
`

var (
	initOutput      string
	initForce       bool
	initInteractive bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate an analyze-code configuration file",
	Long: `Generate a documented configuration file with the default settings.

By default, creates analyze_config.yaml in the current directory. Use
--interactive to set the project name, report path and complexity threshold.`,
	Example: `  # Create analyze_config.yaml in the current directory
  analyze-code init

  # Overwrite an existing file
  analyze-code init --force

  # Guided setup
  analyze-code init -i`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		if initInteractive {
			var err error
			if cfg, err = runInteractiveSetup(cfg); err != nil {
				return err
			}
		}
		if err := writeConfig(initOutput, cfg, initForce); err != nil {
			return err
		}

		displayPath := initOutput
		if absPath, err := filepath.Abs(initOutput); err == nil {
			displayPath = absPath
		}
		fmt.Fprintf(stdout, "Created %s\n", displayPath)
		fmt.Fprintln(stdout, "\nRun 'analyze-code' to analyze your project.")
		return nil
	},
}

func init() {
	initCmd.Flags().StringVarP(&initOutput, "output", "o", "analyze_config.yaml", "Output path for the config file")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing config file")
	initCmd.Flags().BoolVarP(&initInteractive, "interactive", "i", false, "Interactive setup wizard")
}

// writeConfig writes cfg as commented YAML. An existing file is kept
// unless force is set.
func writeConfig(path string, cfg config.Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists. Use --force to overwrite", path)
		}
	}

	var buf bytes.Buffer
	buf.WriteString(configHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func runInteractiveSetup(cfg config.Config) (config.Config, error) {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "analyze-code Configuration Setup")
	fmt.Fprintln(stdout, "================================")
	fmt.Fprintln(stdout)

	namePrompt := promptui.Prompt{
		Label:   "Project name",
		Default: cfg.Analysis.ProjectName,
	}
	name, err := namePrompt.Run()
	if err != nil {
		return cfg, fmt.Errorf("project name input cancelled: %w", err)
	}
	if name != "" {
		cfg.Analysis.ProjectName = name
	}

	outputPrompt := promptui.Prompt{
		Label:   "Report path",
		Default: cfg.Analysis.OutputFile,
	}
	output, err := outputPrompt.Run()
	if err != nil {
		return cfg, fmt.Errorf("report path input cancelled: %w", err)
	}
	if output != "" {
		cfg.Analysis.OutputFile = output
	}

	thresholdPrompt := promptui.Prompt{
		Label:    "Complexity threshold",
		Default:  strconv.Itoa(cfg.Analysis.ComplexityThreshold),
		Validate: validatePositive,
	}
	value, err := thresholdPrompt.Run()
	if err != nil {
		return cfg, fmt.Errorf("threshold input cancelled: %w", err)
	}
	cfg.Analysis.ComplexityThreshold, _ = strconv.Atoi(value)

	fmt.Fprintln(stdout)
	return cfg, cfg.Validate()
}

func validatePositive(input string) error {
	n, err := strconv.Atoi(input)
	if err != nil {
		return fmt.Errorf("enter a whole number")
	}
	if n < 1 {
		return fmt.Errorf("must be at least 1")
	}
	return nil
}
