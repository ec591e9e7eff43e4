// Package analysis runs the analysis tools in a fixed order and turns their
// output into a types.Results ready for rendering.
package analysis

import (
	"context"
	"log/slog"
	"strings"

	"github.com/northcutted/analyze-code/pkg/config"
	"github.com/northcutted/analyze-code/pkg/metrics"
	"github.com/northcutted/analyze-code/pkg/parser"
	"github.com/northcutted/analyze-code/pkg/runner"
	"github.com/northcutted/analyze-code/pkg/types"
)

const (
	// golangci-lint v1 prints this when it meets a v2 configuration file.
	golangciV2ConfigError = "configuration file for golangci-lint v2 with golangci-lint v1"

	// GolangciVersionMismatch replaces the raw v1/v2 configuration error.
	GolangciVersionMismatch = "Version mismatch: Using golangci-lint v1 with v2 config. Consider upgrading golangci-lint or updating .golangci.yml"

	// Cognitive complexity below this is not reported by gocognit.
	cognitiveFloor = "10"
)

// Analyzer runs one analysis over a project. Tools are invoked one at a time
// in the order of Run; a tool that cannot be run leaves its section empty.
type Analyzer struct {
	invoker  runner.Invoker
	cfg      config.Config
	root     string
	progress Progress
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithProgress reports each stage to p.
func WithProgress(p Progress) Option {
	return func(a *Analyzer) {
		if p != nil {
			a.progress = p
		}
	}
}

// New returns an Analyzer that runs tools through inv against the project
// rooted at root. root should be absolute; gosec paths are made relative
// to it.
func New(inv runner.Invoker, cfg config.Config, root string, opts ...Option) *Analyzer {
	a := &Analyzer{
		invoker:  inv,
		cfg:      cfg,
		root:     root,
		progress: NoOpProgress{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Stages is the number of progress steps Run reports.
const Stages = 12

// Run executes every stage and returns the collected results. The only
// error is cancellation of ctx.
func (a *Analyzer) Run(ctx context.Context) (types.Results, error) {
	defer a.progress.Done()

	var res types.Results

	a.step("Listing packages")
	listed := a.listPackages(ctx)
	pkgs := FilterPackages(listed, a.cfg.Analysis.ExcludeExamples)
	args := importPaths(pkgs)

	a.step("Analyzing cyclomatic complexity")
	res.Cyclomatic = a.cyclomatic(ctx)

	a.step("Analyzing cognitive complexity")
	res.Cognitive = a.cognitive(ctx)

	a.step("Running golangci-lint")
	res.StaticAnalysis = a.golangci(ctx)

	a.step("Running go vet")
	res.Vet = make([]types.VetIssue, 0)
	if r, ok := a.runWithPackages(ctx, args, "go", "vet"); ok {
		res.Vet = parser.ParseVet(r.Stderr)
	}

	a.step("Running staticcheck")
	res.Staticcheck = make([]types.StaticcheckIssue, 0)
	if r, ok := a.runWithPackages(ctx, args, "staticcheck"); ok {
		res.Staticcheck = parser.ParseStaticcheck(r.Stdout)
	}

	a.step("Running security analysis")
	res.Security = make([]types.SecurityIssue, 0)
	if r, ok := a.runWithPackages(ctx, args, "gosec", "-fmt=json"); ok && strings.TrimSpace(r.Stdout) != "" {
		res.Security = parser.ParseGosec([]byte(r.Stdout), a.root)
	}

	a.step("Checking for known vulnerabilities")
	res.Vulnerabilities = make([]types.Vulnerability, 0)
	if r, ok := a.runWithPackages(ctx, args, "govulncheck"); ok {
		res.Vulnerabilities = parser.ParseGovulncheck(r.Combined())
	}

	a.step("Detecting code smells")
	res.CodeSmells = make([]types.CodeSmell, 0)
	if r, ok := a.runWithPackages(ctx, args, "goconst"); ok {
		res.CodeSmells = parser.ParseGoconst(r.Stdout)
	}

	a.step("Detecting dead code")
	res.DeadCode = make([]types.DeadCodeItem, 0)
	if r, ok := a.runWithPackages(ctx, args, "deadcode", "-test"); ok {
		res.DeadCode = FilterDeadCode(parser.ParseDeadcode(r.Stdout), a.cfg.DeadCode)
	}

	a.step("Analyzing architecture")
	res.Architecture = make([]types.ArchitectureViolation, 0)
	if r, ok := a.run(ctx, "go-cleanarch"); ok {
		res.Architecture = parser.ParseCleanarch(r.Stdout, r.Stderr)
	}

	a.step("Gathering code metrics")
	res.Metrics = a.codeMetrics(ctx, len(pkgs), listed, args)

	return res, ctx.Err()
}

func (a *Analyzer) step(description string) {
	slog.Debug("analysis step", "step", description)
	a.progress.Step(description)
}

// run invokes a tool and logs a failure to start it. ok is false when the
// tool produced no result to parse.
func (a *Analyzer) run(ctx context.Context, name string, args ...string) (runner.Result, bool) {
	if ctx.Err() != nil {
		return runner.Result{}, false
	}
	r, err := a.invoker.Run(ctx, name, args...)
	if err != nil {
		slog.Warn("tool failed, section left empty", "tool", name, "error", err)
		return runner.Result{}, false
	}
	return r, true
}

// runWithPackages appends the package list to args. With no packages the
// tool is not run.
func (a *Analyzer) runWithPackages(ctx context.Context, pkgs []string, name string, args ...string) (runner.Result, bool) {
	if len(pkgs) == 0 {
		slog.Debug("no packages, skipping tool", "tool", name)
		return runner.Result{}, false
	}
	full := make([]string, 0, len(args)+len(pkgs))
	full = append(full, args...)
	full = append(full, pkgs...)
	return a.run(ctx, name, full...)
}

func (a *Analyzer) listPackages(ctx context.Context) []types.GoPackage {
	r, ok := a.run(ctx, "go", "list", "-f", parser.PackageListFormat, a.cfg.Analysis.PackagePattern)
	if !ok {
		return nil
	}
	if r.ExitCode != 0 {
		slog.Warn("go list failed", "exit_code", r.ExitCode, "stderr", strings.TrimSpace(r.Stderr))
		return nil
	}
	return parser.ParsePackageList(r.Stdout)
}

func (a *Analyzer) cyclomatic(ctx context.Context) []types.ComplexityEntry {
	args := []string{"-over", "1"}
	if a.cfg.Analysis.ExcludeTestFiles {
		args = append(args, "-ignore", "_test")
	}
	args = append(args, ".")

	r, ok := a.run(ctx, "gocyclo", args...)
	if !ok {
		return make([]types.ComplexityEntry, 0)
	}
	if r.ExitCode != 0 && strings.TrimSpace(r.Stderr) != "" {
		slog.Warn("gocyclo warning", "stderr", strings.TrimSpace(r.Stderr))
	}
	return SortByComplexity(parser.ParseCyclomatic(r.Stdout))
}

func (a *Analyzer) cognitive(ctx context.Context) []types.ComplexityEntry {
	r, ok := a.run(ctx, "gocognit", "-over", cognitiveFloor, ".")
	if !ok {
		return make([]types.ComplexityEntry, 0)
	}
	entries := parser.ParseCognitive(r.Stdout)
	if a.cfg.Analysis.ExcludeTestFiles {
		entries = ExcludeTestFunctions(entries)
	}
	return SortByComplexity(entries)
}

// golangci runs golangci-lint without the project's configuration first,
// since a config written for another major version aborts the run. Old
// releases lack --no-config and get a plain retry.
func (a *Analyzer) golangci(ctx context.Context) types.StaticAnalysis {
	r, err := a.invoker.Run(ctx, "golangci-lint", "run", "--no-config")
	if err == nil && r.ExitCode != 0 && strings.Contains(r.Stderr, "unknown flag") {
		r, err = a.invoker.Run(ctx, "golangci-lint", "run")
	}
	if err != nil {
		slog.Warn("tool failed, section left empty", "tool", "golangci-lint", "error", err)
		return types.StaticAnalysis{
			Issues: make([]types.LintIssue, 0),
			Error:  "Error running golangci-lint: " + err.Error(),
		}
	}

	issues := make([]types.LintIssue, 0)
	if strings.TrimSpace(r.Stdout) != "" {
		issues = parser.ParseGolangci(r.Stdout)
	}

	msg := strings.TrimSpace(r.Stderr)
	if strings.Contains(msg, golangciV2ConfigError) {
		msg = GolangciVersionMismatch
	}
	return types.StaticAnalysis{
		Issues:  issues,
		Error:   msg,
		Success: len(issues) == 0 && msg == "",
	}
}

// codeMetrics counts the analyzed packages but builds the per-package table
// from every listed package, examples included.
func (a *Analyzer) codeMetrics(ctx context.Context, analyzed int, listed []types.GoPackage, args []string) types.CodeMetrics {
	m := types.CodeMetrics{
		Packages:       analyzed,
		Coverage:       make([]types.CoverageEntry, 0),
		PackageMetrics: make([]types.PackageMetric, 0),
	}

	collector := metrics.NewCollector(a.root,
		metrics.WithVendor(a.cfg.Analysis.ExcludeVendor),
		metrics.WithExamples(a.cfg.Analysis.ExcludeExamples),
	)
	if overview, err := collector.Overview(ctx); err != nil {
		slog.Warn("failed to count lines of code", "root", a.root, "error", err)
	} else {
		m.TotalLines = overview.TotalLines
		m.GoFiles = overview.GoFiles
	}

	if len(args) > 0 && ctx.Err() == nil {
		r, err := a.invoker.Run(ctx, "go", append([]string{"test", "-cover"}, args...)...)
		if err != nil {
			slog.Warn("tool failed, section left empty", "tool", "go test", "error", err)
			m.Coverage = []types.CoverageEntry{{
				Package:  "Error",
				Status:   types.CoverageError,
				Coverage: types.CoverageNA,
			}}
		} else {
			m.Coverage = parser.ParseCoverage(r.Stdout)
		}
	}

	if pm, err := collector.Packages(ctx, listed); err != nil {
		slog.Warn("failed to collect package metrics", "error", err)
	} else {
		m.PackageMetrics = pm
	}
	return m
}

func importPaths(pkgs []types.GoPackage) []string {
	paths := make([]string, 0, len(pkgs))
	for _, p := range pkgs {
		paths = append(paths, p.ImportPath)
	}
	return paths
}
