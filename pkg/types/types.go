package types

import "strings"

// ComplexityEntry is one function reported by gocyclo or gocognit.
type ComplexityEntry struct {
	Complexity int    `json:"complexity"`
	Package    string `json:"package"`
	Function   string `json:"function"`
	File       string `json:"file"`
	Line       int    `json:"line"`
}

// CoverageStatus is the outcome column of a `go test -cover` row.
type CoverageStatus string

const (
	CoverageOK       CoverageStatus = "ok"
	CoverageOKCached CoverageStatus = "ok (cached)"
	CoverageNoTests  CoverageStatus = "-"
	CoverageError    CoverageStatus = "error"
)

// OK reports whether the package's tests ran and passed.
func (s CoverageStatus) OK() bool {
	return strings.HasPrefix(string(s), string(CoverageOK))
}

// CoverageNA is rendered when no percentage is known.
const CoverageNA = "N/A"

// CoverageEntry represents test coverage for a package.
type CoverageEntry struct {
	Package  string         `json:"package"`
	Status   CoverageStatus `json:"status"`
	Coverage string         `json:"coverage"`
	Cached   bool           `json:"cached"`
}

// SecurityIssue is a gosec finding.
type SecurityIssue struct {
	Severity   Severity `json:"severity"`
	Confidence string   `json:"confidence"`
	Rule       string   `json:"rule"`
	Details    string   `json:"details"`
	File       string   `json:"file"` // relative to the project root when it was under it
	Line       int      `json:"line"`
}

// SmellType tags a CodeSmell.
type SmellType string

const SmellStringDuplication SmellType = "string_duplication"

// CodeSmell is a goconst finding.
type CodeSmell struct {
	Type    SmellType `json:"type"`
	Message string    `json:"message"`
	File    string    `json:"file"`
	Line    int       `json:"line"`
}

// ViolationType tags an ArchitectureViolation.
type ViolationType string

const ViolationDependency ViolationType = "dependency_violation"

// ArchitectureViolation is a go-cleanarch finding. File is often empty
// because the tool reports violations as free text.
type ArchitectureViolation struct {
	ViolationType ViolationType `json:"violation_type"`
	Details       string        `json:"details"`
	File          string        `json:"file,omitempty"`
}

// LintIssue is a golangci-lint finding.
type LintIssue struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
	Linter  string `json:"linter,omitempty"`
}

// VetIssue is a `go vet` diagnostic.
type VetIssue struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

// StaticcheckIssue is a staticcheck diagnostic.
type StaticcheckIssue struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
	Rule    string `json:"rule"`
}

// DeadCodeItem is a function reported unreachable by `deadcode -test`.
type DeadCodeItem struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

// Vulnerability is a govulncheck finding found by keyword heuristic.
// Details holds the (up to) two lines that followed the matching line.
type Vulnerability struct {
	Type    string   `json:"type"`
	Message string   `json:"message"`
	Details []string `json:"details"`
}

// StaticAnalysis holds the golangci-lint run outcome.
type StaticAnalysis struct {
	Issues  []LintIssue `json:"issues"`
	Error   string      `json:"error,omitempty"`
	Success bool        `json:"success"`
}

// GoPackage is one row of the package lister.
type GoPackage struct {
	ImportPath string `json:"import_path"`
	Dir        string `json:"dir,omitempty"`
}

// ShortName returns the last path element of an import path.
func ShortName(importPath string) string {
	if i := strings.LastIndex(importPath, "/"); i >= 0 {
		return importPath[i+1:]
	}
	return importPath
}

// PackageMetric holds file and line counts for a single package.
type PackageMetric struct {
	Package     string `json:"package"`
	FullPackage string `json:"full_package"`
	GoFiles     int    `json:"go_files"` // excludes _test.go files
	TestFiles   int    `json:"test_files"`
	Lines       int    `json:"lines"`
	TestLines   int    `json:"test_lines"`
}

// CodeMetrics holds the project overview plus per-package metrics.
type CodeMetrics struct {
	TotalLines     int             `json:"total_lines"`
	GoFiles        int             `json:"go_files"`
	Packages       int             `json:"packages"`
	Coverage       []CoverageEntry `json:"coverage"`
	PackageMetrics []PackageMetric `json:"package_metrics"`
}

// Results is everything one run produced, in report order.
type Results struct {
	Cyclomatic      []ComplexityEntry       `json:"cyclomatic"` // sorted, descending
	Cognitive       []ComplexityEntry       `json:"cognitive"`  // sorted, descending
	StaticAnalysis  StaticAnalysis          `json:"static_analysis"`
	Vet             []VetIssue              `json:"vet"`
	Staticcheck     []StaticcheckIssue      `json:"staticcheck"`
	Security        []SecurityIssue         `json:"security"`
	Vulnerabilities []Vulnerability         `json:"vulnerabilities"`
	CodeSmells      []CodeSmell             `json:"code_smells"`
	DeadCode        []DeadCodeItem          `json:"dead_code"`
	Architecture    []ArchitectureViolation `json:"architecture"`
	Metrics         CodeMetrics             `json:"metrics"`
}
