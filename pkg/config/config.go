package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Default analysis settings.
const (
	DefaultOutputFile          = "docs/code_analysis.md"
	DefaultComplexityThreshold = 15
	DefaultTopFunctions        = 10
	DefaultProjectName         = "Go Project"
	DefaultPackagePattern      = "./..."
)

// DefaultConfigFiles lists the files searched, in order, when no config
// path is given.
var DefaultConfigFiles = []string{
	"analyze_config.ini",
	"analyze_config.yaml",
	"analyze_config.yml",
	".analyze-code.yaml",
}

// Config is the analysis configuration. It is built once per run and passed
// by value to every stage; nothing modifies it after Load returns.
type Config struct {
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis"`
	DeadCode DeadCodeConfig `mapstructure:"deadcode" yaml:"deadcode"`
}

// AnalysisConfig holds the [analysis] section.
type AnalysisConfig struct {
	// OutputFile is where the report is written; parent directories are created.
	OutputFile string `mapstructure:"output_file" yaml:"output_file"`

	// ComplexityThreshold selects the "functions requiring attention" table
	// (complexity strictly greater than this value).
	ComplexityThreshold int `mapstructure:"complexity_threshold" yaml:"complexity_threshold"`

	// TopFunctions is the size of the "most complex functions" tables.
	TopFunctions int `mapstructure:"top_functions" yaml:"top_functions"`

	ExcludeTestFiles bool `mapstructure:"exclude_test_files" yaml:"exclude_test_files"`
	ExcludeVendor    bool `mapstructure:"exclude_vendor" yaml:"exclude_vendor"`
	ExcludeExamples  bool `mapstructure:"exclude_examples" yaml:"exclude_examples"`

	ProjectName string `mapstructure:"project_name" yaml:"project_name"`

	// PackagePattern is handed to `go list` to enumerate packages.
	PackagePattern string `mapstructure:"package_pattern" yaml:"package_pattern"`
}

// DeadCodeConfig holds the [deadcode] section.
type DeadCodeConfig struct {
	// ExcludeFiles drops findings whose path contains or starts with an entry.
	ExcludeFiles []string `mapstructure:"exclude_files" yaml:"exclude_files"`

	// ExcludeFunctions drops findings whose message contains an entry.
	ExcludeFunctions []string `mapstructure:"exclude_functions" yaml:"exclude_functions"`

	// ExcludePublicInterfaces drops exported functions reported in *interfaces.go.
	ExcludePublicInterfaces bool `mapstructure:"exclude_public_interfaces" yaml:"exclude_public_interfaces"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Analysis: AnalysisConfig{
			OutputFile:          DefaultOutputFile,
			ComplexityThreshold: DefaultComplexityThreshold,
			TopFunctions:        DefaultTopFunctions,
			ExcludeTestFiles:    true,
			ExcludeVendor:       true,
			ExcludeExamples:     true,
			ProjectName:         DefaultProjectName,
			PackagePattern:      DefaultPackagePattern,
		},
		DeadCode: DeadCodeConfig{
			ExcludeFiles:            []string{"demo/", "interfaces.go"},
			ExcludeFunctions:        []string{},
			ExcludePublicInterfaces: true,
		},
	}
}

// Find returns the first default config file present in dir, or "".
func Find(dir string) string {
	for _, name := range DefaultConfigFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Load reads the configuration file at path on top of Default. The format
// is chosen from the extension (ini, yaml, yml, toml, json). An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	// A fresh instance per load keeps this free of viper's global state.
	v := viper.New()
	if strings.EqualFold(filepath.Ext(path), ".ini") {
		sections, err := readINI(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := v.MergeConfigMap(sections); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	// An empty list in the file keeps the default, as the INI layout has no
	// way to tell "unset" from "empty".
	defaultFiles := append([]string(nil), cfg.DeadCode.ExcludeFiles...)
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config %s: %w", path, err)
	}

	cfg.DeadCode.ExcludeFiles = cleanList(cfg.DeadCode.ExcludeFiles)
	if len(cfg.DeadCode.ExcludeFiles) == 0 {
		cfg.DeadCode.ExcludeFiles = defaultFiles
	}
	cfg.DeadCode.ExcludeFunctions = cleanList(cfg.DeadCode.ExcludeFunctions)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values that would make the report meaningless.
func (c Config) Validate() error {
	if c.Analysis.OutputFile == "" {
		return fmt.Errorf("output_file must not be empty")
	}
	if c.Analysis.ComplexityThreshold < 1 {
		return fmt.Errorf("complexity_threshold must be at least 1, got %d", c.Analysis.ComplexityThreshold)
	}
	if c.Analysis.TopFunctions < 1 {
		return fmt.Errorf("top_functions must be at least 1, got %d", c.Analysis.TopFunctions)
	}
	return nil
}

// Overrides carries command-line values; zero values leave the config alone.
type Overrides struct {
	OutputFile          string
	ComplexityThreshold int
	TopFunctions        int
	ProjectName         string
}

// WithOverrides returns a copy of c with the non-zero overrides applied.
func (c Config) WithOverrides(o Overrides) Config {
	out := c
	if o.OutputFile != "" {
		out.Analysis.OutputFile = o.OutputFile
	}
	if o.ComplexityThreshold > 0 {
		out.Analysis.ComplexityThreshold = o.ComplexityThreshold
	}
	if o.TopFunctions > 0 {
		out.Analysis.TopFunctions = o.TopFunctions
	}
	if o.ProjectName != "" {
		out.Analysis.ProjectName = o.ProjectName
	}
	out.DeadCode.ExcludeFiles = append([]string(nil), c.DeadCode.ExcludeFiles...)
	out.DeadCode.ExcludeFunctions = append([]string(nil), c.DeadCode.ExcludeFunctions...)
	return out
}

// cleanList trims entries and drops blanks. INI values arrive as a single
// comma-separated string that viper splits without trimming.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
