// Test file for the root command: configuration resolution, the tool
// pre-flight, and end-to-end report generation with a stub invoker.
//
// Globals mutated: every flag variable, newInvoker, checkTools, stdout
// (via captureOutput). All tests use defer resetFlags()() for cleanup.
package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/northcutted/analyze-code/pkg/parser"
	"github.com/northcutted/analyze-code/pkg/runner"
	"github.com/northcutted/analyze-code/pkg/types"
)

// Helper to capture stdout
func captureOutput(f func()) string {
	old, oldStdout := os.Stdout, stdout
	r, w, _ := os.Pipe()
	os.Stdout, stdout = w, w

	f()

	_ = w.Close()
	os.Stdout, stdout = old, oldStdout

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// resetFlags restores every flag variable to its default and returns a
// func that also restores the test seams.
func resetFlags() func() {
	reset := func() {
		configFile = ""
		outputFile = ""
		threshold = 0
		topFunctions = 0
		projectName = ""
		format = formatMarkdown
		dryRun = false
		noMoji = false
		verbose = false
		noProgress = true
		projectDir = "."
		templatePath = ""
		exportTemplate = false
		validateTemplate = ""
		initOutput = "analyze_config.yaml"
		initForce = false
		initInteractive = false
	}
	reset()

	oldInvoker, oldCheck, oldStatus, oldStderr := newInvoker, checkTools, checkStatus, stderr
	oldVersion, oldCommit, oldDate := Version, Commit, Date
	checkTools = func(context.Context, []string) error { return nil }
	stderr = io.Discard

	return func() {
		reset()
		newInvoker, checkTools, checkStatus, stderr = oldInvoker, oldCheck, oldStatus, oldStderr
		Version, Commit, Date = oldVersion, oldCommit, oldDate
	}
}

// stubInvoker answers commands by their joined command line; anything
// else gets empty output.
type stubInvoker map[string]runner.Result

func (s stubInvoker) Run(_ context.Context, name string, args ...string) (runner.Result, error) {
	return s[strings.Join(append([]string{name}, args...), " ")], nil
}

// demoProject writes a one-package module and returns its directory
// together with an invoker reporting on it.
func demoProject(t *testing.T) (string, stubInvoker) {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n\nfunc main() {}\n"), 0644); err != nil {
		t.Fatalf("failed to write main.go: %v", err)
	}
	inv := stubInvoker{
		"go list -f " + parser.PackageListFormat + " ./...": {Stdout: "example.com/demo\t" + dir + "\n"},
		"gocyclo -over 1 -ignore _test .":                   {Stdout: "7 main main main.go:3:1\n"},
		"go test -cover example.com/demo":                   {Stdout: "ok  \texample.com/demo\t0.01s\tcoverage: 50.0% of statements\n"},
	}
	return dir, inv
}

func useInvoker(inv runner.Invoker) {
	newInvoker = func(string) runner.Invoker { return inv }
}

func TestExecute_WritesReport(t *testing.T) {
	defer resetFlags()()
	dir, inv := demoProject(t)
	useInvoker(inv)

	rootCmd.SetArgs([]string{"--dir", dir, "--output", "out/report.md", "--no-progress"})
	output := captureOutput(func() {
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("Execute failed: %v", err)
		}
	})

	content, err := os.ReadFile(filepath.Join(dir, "out", "report.md"))
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	report := string(content)
	for _, want := range []string{
		"# Code Analysis Report",
		"| ✅ 7 | `main` | `main` | `main.go` | 3 |",
		"| `demo` | 1 | 0 | 3 | 0 | 50.0% |",
		"| `demo` | ✅ ok | 50.0% |",
		"*Report location: `out/report.md`*",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("expected report to contain %q", want)
		}
	}

	for _, want := range []string{
		"\U0001f50d Go Project Code Analysis\n" + strings.Repeat("=", 25) + "\n",
		"✅ Analysis complete! Report generated: out/report.md",
		"   - Total Lines: 3\n   - Go Files: 1\n   - Packages: 1\n",
		"   cat out/report.md\n",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected console output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestExecute_DryRun(t *testing.T) {
	defer resetFlags()()
	dir, inv := demoProject(t)
	useInvoker(inv)

	rootCmd.SetArgs([]string{"-C", dir, "--dry-run", "--nomoji"})
	output := captureOutput(func() {
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("Execute failed: %v", err)
		}
	})

	if !strings.HasPrefix(output, "# Code Analysis Report") {
		t.Errorf("expected dry-run output to be the report, got:\n%s", output)
	}
	if !strings.Contains(output, "| [OK] 7 | `main` |") {
		t.Error("expected ASCII icons with --nomoji")
	}
	if strings.Contains(output, "Summary:") {
		t.Error("expected console messages to stay off stdout on a dry run")
	}
	if _, err := os.Stat(filepath.Join(dir, "docs")); !os.IsNotExist(err) {
		t.Error("expected no report directory on a dry run")
	}
}

func TestExecute_JSON(t *testing.T) {
	defer resetFlags()()
	dir, inv := demoProject(t)
	useInvoker(inv)

	rootCmd.SetArgs([]string{"-C", dir, "--format", "json"})
	captureOutput(func() {
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("Execute failed: %v", err)
		}
	})

	content, err := os.ReadFile(filepath.Join(dir, "docs", "code_analysis.json"))
	if err != nil {
		t.Fatalf("JSON report not written: %v", err)
	}
	var res types.Results
	if err := json.Unmarshal(content, &res); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if len(res.Cyclomatic) != 1 || res.Metrics.Packages != 1 {
		t.Errorf("unexpected results: %+v", res)
	}
}

func TestExecute_InvalidFormat(t *testing.T) {
	defer resetFlags()()

	rootCmd.SetArgs([]string{"--format", "html", "-C", t.TempDir()})
	captureOutput(func() {
		err := rootCmd.Execute()
		if err == nil || !strings.Contains(err.Error(), "unknown format") {
			t.Errorf("Execute() error = %v, want unknown format", err)
		}
	})
}

func TestExecute_MissingTools(t *testing.T) {
	defer resetFlags()()
	dir, inv := demoProject(t)
	useInvoker(inv)
	checkTools = func(context.Context, []string) error {
		return &runner.MissingToolsError{Tools: []string{"gocyclo", "deadcode"}}
	}

	rootCmd.SetArgs([]string{"-C", dir})
	var err error
	output := captureOutput(func() {
		err = rootCmd.Execute()
	})

	var missing *runner.MissingToolsError
	if !errors.As(err, &missing) {
		t.Fatalf("Execute() error = %v, want *runner.MissingToolsError", err)
	}
	if !strings.Contains(output, "❌ Missing tools: gocyclo, deadcode") {
		t.Errorf("expected missing tools in output, got:\n%s", output)
	}
	if _, err := os.Stat(filepath.Join(dir, "docs", "code_analysis.md")); !os.IsNotExist(err) {
		t.Error("expected no report when tools are missing")
	}
}

func TestExecute_WriteFailure(t *testing.T) {
	defer resetFlags()()
	dir, inv := demoProject(t)
	useInvoker(inv)

	// A file where the output directory should be
	if err := os.WriteFile(filepath.Join(dir, "blocked"), nil, 0644); err != nil {
		t.Fatalf("failed to write blocker: %v", err)
	}

	rootCmd.SetArgs([]string{"-C", dir, "-o", "blocked/report.md"})
	captureOutput(func() {
		if err := rootCmd.Execute(); err == nil {
			t.Error("expected an error when the report cannot be written")
		}
	})
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name        string
		files       map[string]string
		setup       func()
		wantProject string
		wantTop     int
		wantErr     bool
	}{
		{
			name:        "defaults",
			wantProject: "Go Project",
			wantTop:     10,
		},
		{
			name:        "discovered ini",
			files:       map[string]string{"analyze_config.ini": "[analysis]\nproject_name = BatchExec\ntop_functions = 4\n"},
			wantProject: "BatchExec",
			wantTop:     4,
		},
		{
			name:        "flags override file",
			files:       map[string]string{"analyze_config.ini": "[analysis]\nproject_name = BatchExec\ntop_functions = 4\n"},
			setup:       func() { projectName = "Other"; topFunctions = 2 },
			wantProject: "Other",
			wantTop:     2,
		},
		{
			name:    "invalid file",
			files:   map[string]string{"analyze_config.ini": "[analysis]\ntop_functions = 0\n"},
			wantErr: true,
		},
		{
			name:    "explicit missing file",
			setup:   func() { configFile = "does-not-exist.yaml" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer resetFlags()()
			dir := t.TempDir()
			for name, content := range tt.files {
				if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
					t.Fatalf("failed to write %s: %v", name, err)
				}
			}
			if tt.setup != nil {
				tt.setup()
			}

			cfg, err := loadConfig(dir)
			if (err != nil) != tt.wantErr {
				t.Fatalf("loadConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if cfg.Analysis.ProjectName != tt.wantProject {
				t.Errorf("ProjectName = %q, want %q", cfg.Analysis.ProjectName, tt.wantProject)
			}
			if cfg.Analysis.TopFunctions != tt.wantTop {
				t.Errorf("TopFunctions = %d, want %d", cfg.Analysis.TopFunctions, tt.wantTop)
			}
		})
	}
}

func TestPrintBanner(t *testing.T) {
	defer resetFlags()()

	var buf bytes.Buffer
	printBanner(&buf, "BatchExec")
	want := "\U0001f50d BatchExec Code Analysis\n" + strings.Repeat("=", 24) + "\n"
	if buf.String() != want {
		t.Errorf("printBanner() = %q, want %q", buf.String(), want)
	}

	noMoji = true
	buf.Reset()
	printBanner(&buf, "BatchExec")
	if !strings.HasPrefix(buf.String(), "BatchExec Code Analysis\n") {
		t.Errorf("printBanner() with --nomoji = %q", buf.String())
	}
}

func TestPrintSummary(t *testing.T) {
	defer resetFlags()()

	var buf bytes.Buffer
	printSummary(&buf, types.CodeMetrics{TotalLines: 12345, GoFiles: 42, Packages: 7}, "docs/code_analysis.md")
	want := "\n\U0001f4cb Summary:\n" +
		"   - Total Lines: 12,345\n" +
		"   - Go Files: 42\n" +
		"   - Packages: 7\n" +
		"\n\U0001f50d View the full report:\n" +
		"   cat docs/code_analysis.md\n"
	if buf.String() != want {
		t.Errorf("printSummary() = %q, want %q", buf.String(), want)
	}
}
