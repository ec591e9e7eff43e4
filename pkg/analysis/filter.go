package analysis

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/northcutted/analyze-code/pkg/config"
	"github.com/northcutted/analyze-code/pkg/types"
)

// unreachableMarker prefixes every deadcode message about a function.
const unreachableMarker = "unreachable func:"

// examplesSegment marks packages dropped when examples are excluded.
const examplesSegment = "/examples/"

// FilterDeadCode applies the dead-code exclusion policy. Survivors keep
// their order.
func FilterDeadCode(items []types.DeadCodeItem, cfg config.DeadCodeConfig) []types.DeadCodeItem {
	out := make([]types.DeadCodeItem, 0, len(items))
	for _, item := range items {
		if matchesAnyFile(item.File, cfg.ExcludeFiles) {
			continue
		}
		if containsAny(item.Message, cfg.ExcludeFunctions) {
			continue
		}
		if cfg.ExcludePublicInterfaces && isPublicInterfaceFunc(item) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesAnyFile(file string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(file, p) || strings.HasPrefix(file, p) {
			return true
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// isPublicInterfaceFunc reports an exported function in an interfaces.go
// file, e.g. "unreachable func: OSCmd.Run".
func isPublicInterfaceFunc(item types.DeadCodeItem) bool {
	if !strings.HasSuffix(item.File, "interfaces.go") {
		return false
	}
	_, name, found := strings.Cut(item.Message, unreachableMarker)
	if !found {
		return false
	}
	name = strings.TrimSpace(name)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

// SortByComplexity returns a copy of entries ordered by descending
// complexity. Ties keep their input order.
func SortByComplexity(entries []types.ComplexityEntry) []types.ComplexityEntry {
	sorted := make([]types.ComplexityEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Complexity > sorted[j].Complexity
	})
	return sorted
}

// TopN returns at most the first n entries.
func TopN(entries []types.ComplexityEntry, n int) []types.ComplexityEntry {
	if n < 0 {
		n = 0
	}
	if len(entries) <= n {
		return entries
	}
	return entries[:n]
}

// AboveThreshold returns every entry whose complexity is strictly greater
// than threshold, in input order.
func AboveThreshold(entries []types.ComplexityEntry, threshold int) []types.ComplexityEntry {
	out := make([]types.ComplexityEntry, 0)
	for _, e := range entries {
		if e.Complexity > threshold {
			out = append(out, e)
		}
	}
	return out
}

// ExcludeTestFunctions drops entries from _test.go files and Test,
// Benchmark and Example functions.
func ExcludeTestFunctions(entries []types.ComplexityEntry) []types.ComplexityEntry {
	out := make([]types.ComplexityEntry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(e.File, "_test.go") ||
			strings.HasPrefix(e.Function, "Test") ||
			strings.HasPrefix(e.Function, "Benchmark") ||
			strings.HasPrefix(e.Function, "Example") {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterPackages drops packages under an examples directory when
// excludeExamples is set.
func FilterPackages(pkgs []types.GoPackage, excludeExamples bool) []types.GoPackage {
	if !excludeExamples {
		return pkgs
	}
	out := make([]types.GoPackage, 0, len(pkgs))
	for _, p := range pkgs {
		if strings.Contains(p.ImportPath, examplesSegment) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// SeverityGroup is one bucket of the grouped security view.
type SeverityGroup struct {
	Severity types.Severity
	Issues   []types.SecurityIssue
}

// GroupBySeverity buckets issues in types.SeverityOrder. Issues of unknown
// severity belong to no bucket. Empty buckets are kept so callers can rely
// on the order.
func GroupBySeverity(issues []types.SecurityIssue) []SeverityGroup {
	groups := make([]SeverityGroup, len(types.SeverityOrder))
	for i, sev := range types.SeverityOrder {
		groups[i].Severity = sev
		for _, issue := range issues {
			if types.ParseSeverity(string(issue.Severity)) == sev {
				groups[i].Issues = append(groups[i].Issues, issue)
			}
		}
	}
	return groups
}

// PackageCoverage pairs a package's metrics with its coverage figure.
type PackageCoverage struct {
	types.PackageMetric
	Coverage string
}

// MergeCoverage attaches coverage to each package metric. The lookup is by
// short package name first (the last entry sharing a short name wins), then
// by full import path when that finds nothing usable; otherwise the figure
// is types.CoverageNA.
func MergeCoverage(metrics []types.PackageMetric, coverage []types.CoverageEntry) []PackageCoverage {
	byShort := make(map[string]string, len(coverage))
	for _, c := range coverage {
		byShort[types.ShortName(c.Package)] = c.Coverage
	}

	out := make([]PackageCoverage, 0, len(metrics))
	for _, m := range metrics {
		cov, ok := byShort[m.Package]
		if !ok || cov == types.CoverageNA {
			cov = types.CoverageNA
			for _, c := range coverage {
				if c.Package == m.FullPackage {
					cov = c.Coverage
					break
				}
			}
		}
		out = append(out, PackageCoverage{PackageMetric: m, Coverage: cov})
	}
	return out
}

// SumPackageMetrics totals the file and line columns.
func SumPackageMetrics(metrics []types.PackageMetric) types.PackageMetric {
	total := types.PackageMetric{Package: "TOTAL"}
	for _, m := range metrics {
		total.GoFiles += m.GoFiles
		total.TestFiles += m.TestFiles
		total.Lines += m.Lines
		total.TestLines += m.TestLines
	}
	return total
}
