package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/northcutted/analyze-code/pkg/analysis"
	"github.com/northcutted/analyze-code/pkg/config"
	"github.com/northcutted/analyze-code/pkg/renderer"
	"github.com/northcutted/analyze-code/pkg/runner"
	"github.com/northcutted/analyze-code/pkg/types"
)

// Test seams.
var (
	newInvoker = func(dir string) runner.Invoker { return runner.ExecInvoker{Dir: dir} }
	checkTools = runner.MissingTools
)

func runAnalyze(ctx context.Context) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	dir, err := filepath.Abs(projectDir)
	if err != nil {
		return fmt.Errorf("failed to resolve project directory %s: %w", projectDir, err)
	}

	cfg, err := loadConfig(dir)
	if err != nil {
		return err
	}
	cfg.Analysis.OutputFile = resolveOutputPath(cfg.Analysis.OutputFile, format)

	// The report itself goes to stdout on a dry run
	console := stdout
	if dryRun {
		console = stderr
	}

	printBanner(console, cfg.Analysis.ProjectName)

	fmt.Fprintln(console, decorate("\U0001f4cb", "Checking required tools..."))
	if err := checkTools(ctx, runner.RequiredTools); err != nil {
		var missing *runner.MissingToolsError
		if errors.As(err, &missing) {
			fmt.Fprintln(console, decorate("❌", "Missing tools: "+strings.Join(missing.Tools, ", ")))
			fmt.Fprintln(console, "   Please install them first (see 'analyze-code tools').")
		}
		return err
	}

	fmt.Fprintln(console, decorate("\U0001f4dd", "Generating code analysis report: "+cfg.Analysis.OutputFile))

	progress := analysis.NewProgress(!noProgress && !verbose, analysis.Stages)
	analyzer := analysis.New(newInvoker(dir), cfg, dir, analysis.WithProgress(progress))
	res, err := analyzer.Run(ctx)
	if err != nil {
		return fmt.Errorf("analysis interrupted: %w", err)
	}

	content, err := renderReport(res, cfg)
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Fprint(stdout, content)
		return nil
	}

	outPath := cfg.Analysis.OutputFile
	if !filepath.IsAbs(outPath) {
		outPath = filepath.Join(dir, outPath)
	}
	if err := writeReport(outPath, content); err != nil {
		fmt.Fprintln(console, decorate("❌", "Error writing report: "+err.Error()))
		return err
	}
	slog.Debug("wrote output file", "path", outPath)

	fmt.Fprintln(console, decorate("✅", "Analysis complete! Report generated: "+cfg.Analysis.OutputFile))
	printSummary(console, res.Metrics, cfg.Analysis.OutputFile)
	return nil
}

// loadConfig resolves the configuration: --config, then a default file in
// dir, then the built-in defaults. Flags are applied last.
func loadConfig(dir string) (config.Config, error) {
	path := configFile
	if path == "" {
		path = config.Find(dir)
	}
	if path != "" {
		slog.Debug("using config file", "path", path)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	cfg = cfg.WithOverrides(config.Overrides{
		OutputFile:          outputFile,
		ComplexityThreshold: threshold,
		TopFunctions:        topFunctions,
		ProjectName:         projectName,
	})
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

func renderReport(res types.Results, cfg config.Config) (string, error) {
	if format == formatJSON {
		var buf bytes.Buffer
		if err := renderer.RenderJSON(&buf, res); err != nil {
			return "", err
		}
		return buf.String(), nil
	}

	if templatePath != "" {
		slog.Debug("template resolved", "template", describeTemplate(templatePath))
	}
	content, err := renderer.Render(res, renderer.Options{
		TopN:         cfg.Analysis.TopFunctions,
		Threshold:    cfg.Analysis.ComplexityThreshold,
		OutputFile:   cfg.Analysis.OutputFile,
		NoMoji:       noMoji,
		TemplatePath: templatePath,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return content, nil
}

// decorate prefixes console text with an emoji unless --nomoji is set.
func decorate(emoji, text string) string {
	if noMoji {
		return text
	}
	return emoji + " " + text
}

func printBanner(w io.Writer, project string) {
	fmt.Fprintln(w, decorate("\U0001f50d", project+" Code Analysis"))
	fmt.Fprintln(w, strings.Repeat("=", utf8.RuneCountInString(project)+15))
}

func printSummary(w io.Writer, m types.CodeMetrics, reportPath string) {
	p := message.NewPrinter(language.English)
	fmt.Fprintln(w)
	fmt.Fprintln(w, decorate("\U0001f4cb", "Summary:"))
	p.Fprintf(w, "   - Total Lines: %d\n", m.TotalLines)
	fmt.Fprintf(w, "   - Go Files: %d\n", m.GoFiles)
	fmt.Fprintf(w, "   - Packages: %d\n", m.Packages)
	fmt.Fprintln(w)
	fmt.Fprintln(w, decorate("\U0001f50d", "View the full report:"))
	fmt.Fprintf(w, "   cat %s\n", reportPath)
}
