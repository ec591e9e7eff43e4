package parser

import (
	"strings"

	"github.com/northcutted/analyze-code/pkg/types"
)

// PackageListFormat is the `go list -f` template ParsePackageList expects.
const PackageListFormat = "{{.ImportPath}}\t{{.Dir}}"

// ParsePackageList parses `go list -f PackageListFormat` output. A line
// without a tab is taken as a bare import path.
func ParsePackageList(output string) []types.GoPackage {
	pkgs := make([]types.GoPackage, 0)
	for _, line := range lines(output) {
		importPath, dir, _ := strings.Cut(line, "\t")
		importPath = strings.TrimSpace(importPath)
		if importPath == "" || strings.ContainsAny(importPath, " \t") {
			continue
		}
		pkgs = append(pkgs, types.GoPackage{
			ImportPath: importPath,
			Dir:        strings.TrimSpace(dir),
		})
	}
	return pkgs
}
