// Package renderer turns analysis results into the markdown report.
package renderer

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"
	"text/template/parse"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/northcutted/analyze-code/pkg/analysis"
	"github.com/northcutted/analyze-code/pkg/types"
)

const (
	reportTemplate  = "report"
	templateFile    = "templates/report.md.tmpl"
	timestampLayout = "2006-01-02 15:04:05"

	// maxSmells caps the code smell table; the rest are counted.
	maxSmells = 20

	// maxDetails is the rune length security details are cut to.
	maxDetails = 100
)

//go:embed templates/report.md.tmpl
var templateFS embed.FS

// The set is named after the file so the "report" define is not shadowed
// by the set's own root when cloned.
var builtin = template.Must(template.New(path.Base(templateFile)).
	Funcs(funcMap(iconSet{})).
	ParseFS(templateFS, templateFile))

// Options controls one render. Zero TopN and Threshold fall back to the
// configuration defaults.
type Options struct {
	TopN       int
	Threshold  int
	OutputFile string
	NoMoji     bool

	// Now stamps the footer. Defaults to time.Now.
	Now func() time.Time

	// TemplatePath is an optional user template. It may redefine any of the
	// built-in sections, or provide a body of its own that calls them.
	TemplatePath string
}

// ReportContext holds all data passed to the template.
type ReportContext struct {
	Top           int
	Threshold     int
	TopCyclomatic []types.ComplexityEntry
	Attention     []types.ComplexityEntry
	TopCognitive  []types.ComplexityEntry
	Results       types.Results
	SecurityRows  []types.SecurityIssue
	Smells        []types.CodeSmell
	MoreSmells    int
	Packages      []analysis.PackageCoverage
	Total         types.PackageMetric
	OutputFile    string
	Generated     string
}

func newReportContext(res types.Results, opts Options) ReportContext {
	ctx := ReportContext{
		Top:           opts.TopN,
		Threshold:     opts.Threshold,
		TopCyclomatic: analysis.TopN(res.Cyclomatic, opts.TopN),
		Attention:     analysis.AboveThreshold(res.Cyclomatic, opts.Threshold),
		TopCognitive:  analysis.TopN(res.Cognitive, opts.TopN),
		Results:       res,
		Smells:        res.CodeSmells,
		Packages:      analysis.MergeCoverage(res.Metrics.PackageMetrics, res.Metrics.Coverage),
		Total:         analysis.SumPackageMetrics(res.Metrics.PackageMetrics),
		OutputFile:    opts.OutputFile,
		Generated:     opts.Now().Format(timestampLayout),
	}
	for _, g := range analysis.GroupBySeverity(res.Security) {
		ctx.SecurityRows = append(ctx.SecurityRows, g.Issues...)
	}
	if len(ctx.Smells) > maxSmells {
		ctx.MoreSmells = len(ctx.Smells) - maxSmells
		ctx.Smells = ctx.Smells[:maxSmells]
	}
	return ctx
}

// Render generates the markdown report. Equal results and options,
// including the clock, produce byte-identical output.
func Render(res types.Results, opts Options) (string, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.TopN <= 0 {
		opts.TopN = 10
	}
	if opts.Threshold <= 0 {
		opts.Threshold = 15
	}

	tmpl, entry, err := load(opts)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, entry, newReportContext(res, opts)); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return buf.String(), nil
}

// load returns the template set for opts and the name of the template to
// execute.
func load(opts Options) (*template.Template, string, error) {
	tmpl, err := builtin.Clone()
	if err != nil {
		return nil, "", fmt.Errorf("failed to clone report template: %w", err)
	}
	tmpl.Funcs(funcMap(iconSet{noMoji: opts.NoMoji}))
	if opts.TemplatePath == "" {
		return tmpl, reportTemplate, nil
	}

	content, err := os.ReadFile(opts.TemplatePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read template %s: %w", opts.TemplatePath, err)
	}
	name := filepath.Base(opts.TemplatePath)
	custom, err := tmpl.New(name).Parse(string(content))
	if err != nil {
		return nil, "", fmt.Errorf("failed to parse template %s: %w", opts.TemplatePath, err)
	}
	// A file made only of define blocks overrides sections of the default
	// report; anything else is the report body.
	if custom.Tree == nil || parse.IsEmptyTree(custom.Tree.Root) {
		return tmpl, reportTemplate, nil
	}
	return tmpl, name, nil
}

// ValidateTemplate parses the template at path and executes it against
// empty results, catching unknown fields as well as syntax errors.
func ValidateTemplate(path string) error {
	tmpl, entry, err := load(Options{TemplatePath: path})
	if err != nil {
		return err
	}
	opts := Options{TopN: 10, Threshold: 15, Now: time.Now}
	if err := tmpl.ExecuteTemplate(io.Discard, entry, newReportContext(types.Results{}, opts)); err != nil {
		return fmt.Errorf("template %s failed to execute: %w", path, err)
	}
	return nil
}

// ExportTemplate returns the built-in report template, a starting point for
// a custom one.
func ExportTemplate() (string, error) {
	content, err := templateFS.ReadFile(templateFile)
	if err != nil {
		return "", fmt.Errorf("failed to read built-in template: %w", err)
	}
	return string(content), nil
}

// RenderJSON writes the results as indented JSON.
func RenderJSON(w io.Writer, res types.Results) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return nil
}

func funcMap(icons iconSet) template.FuncMap {
	printer := message.NewPrinter(language.English)
	caser := cases.Title(language.English)
	return template.FuncMap{
		"icon":           icons.icon,
		"complexityIcon": icons.complexity,
		"priority":       icons.priority,
		"severityIcon":   icons.severity,
		"coverageIcon":   icons.coverage,
		"title": func(v any) string {
			return caser.String(strings.ReplaceAll(fmt.Sprint(v), "_", " "))
		},
		"truncate": truncate,
		"count": func(n int) string {
			return printer.Sprintf("%d", n)
		},
		"short": types.ShortName,
	}
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxDetails {
		return s
	}
	return string(r[:maxDetails]) + "..."
}
