package parser

import (
	"regexp"

	"github.com/northcutted/analyze-code/pkg/types"
)

// DefaultStaticcheckRule fills the rule column when staticcheck printed no
// "(SA1000)" suffix.
const DefaultStaticcheckRule = "staticcheck"

var (
	// "file.go:12:5: message (rule)", the rule group being optional.
	ruleDiagnostic = regexp.MustCompile(`^(.+):(\d+):(\d+):\s+(.+?)\s*(?:\(([^)]+)\))?$`)
	// "file.go:12:5: message"
	plainDiagnostic = regexp.MustCompile(`^(.+):(\d+):(\d+): (.+)$`)
	// goconst: "file.go:12:5: message"; the column is not kept.
	goconstLine = regexp.MustCompile(`^(.+):(\d+):\d+: (.+)$`)
)

// diagnostic is the shared shape behind the vet-style grammars.
type diagnostic struct {
	file    string
	line    int
	column  int
	message string
	rule    string
}

func parseDiagnostics(output string, re *regexp.Regexp) []diagnostic {
	var out []diagnostic
	for _, line := range lines(output) {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		lineNum, ok := atoi(m[2])
		if !ok {
			continue
		}
		col, ok := atoi(m[3])
		if !ok {
			continue
		}
		d := diagnostic{file: m[1], line: lineNum, column: col, message: m[4]}
		if len(m) > 5 {
			d.rule = m[5]
		}
		out = append(out, d)
	}
	return out
}

// ParseGolangci parses golangci-lint's line output. Lines without a
// "(linter)" suffix are kept with an empty linter.
func ParseGolangci(output string) []types.LintIssue {
	issues := make([]types.LintIssue, 0)
	for _, d := range parseDiagnostics(output, ruleDiagnostic) {
		issues = append(issues, types.LintIssue{
			File:    d.file,
			Line:    d.line,
			Column:  d.column,
			Message: d.message,
			Linter:  d.rule,
		})
	}
	return issues
}

// ParseStaticcheck parses staticcheck output.
func ParseStaticcheck(output string) []types.StaticcheckIssue {
	issues := make([]types.StaticcheckIssue, 0)
	for _, d := range parseDiagnostics(output, ruleDiagnostic) {
		rule := d.rule
		if rule == "" {
			rule = DefaultStaticcheckRule
		}
		issues = append(issues, types.StaticcheckIssue{
			File:    stripDotSlash(d.file),
			Line:    d.line,
			Column:  d.column,
			Message: d.message,
			Rule:    rule,
		})
	}
	return issues
}

// ParseVet parses `go vet` diagnostics, which the tool writes to stderr.
// Package banners ("# example.com/pkg") never match and are dropped.
func ParseVet(output string) []types.VetIssue {
	issues := make([]types.VetIssue, 0)
	for _, d := range parseDiagnostics(output, plainDiagnostic) {
		issues = append(issues, types.VetIssue{
			File:    stripDotSlash(d.file),
			Line:    d.line,
			Column:  d.column,
			Message: d.message,
		})
	}
	return issues
}

// ParseDeadcode parses `deadcode -test` output. The result is unfiltered;
// exclusion policy is applied by the analysis package.
func ParseDeadcode(output string) []types.DeadCodeItem {
	items := make([]types.DeadCodeItem, 0)
	for _, d := range parseDiagnostics(output, plainDiagnostic) {
		items = append(items, types.DeadCodeItem{
			File:    stripDotSlash(d.file),
			Line:    d.line,
			Column:  d.column,
			Message: d.message,
		})
	}
	return items
}

// ParseGoconst parses goconst output into string duplication smells.
func ParseGoconst(output string) []types.CodeSmell {
	smells := make([]types.CodeSmell, 0)
	for _, line := range lines(output) {
		m := goconstLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		lineNum, ok := atoi(m[2])
		if !ok {
			continue
		}
		smells = append(smells, types.CodeSmell{
			Type:    types.SmellStringDuplication,
			Message: m[3],
			File:    m[1],
			Line:    lineNum,
		})
	}
	return smells
}
