package parser

import (
	"regexp"
	"strings"

	"github.com/northcutted/analyze-code/pkg/types"
)

var coveragePercent = regexp.MustCompile(`coverage: ([0-9.]+%)`)

// ParseCoverage parses `go test -cover` output.
//
//	ok  	example.com/app/config	(cached)	coverage: 46.9% of statements
//	    	example.com/app/cmd		coverage: 0.0% of statements
//
// "ok" rows take the package from the second field; other rows mentioning
// "coverage:" take it from the first field and get status "-".
func ParseCoverage(output string) []types.CoverageEntry {
	entries := make([]types.CoverageEntry, 0)
	for _, line := range lines(output) {
		switch {
		case strings.HasPrefix(line, "ok"):
			fields := strings.Fields(line)
			if len(fields) < 2 {
				continue
			}
			cached := strings.Contains(line, "(cached)")
			status := types.CoverageOK
			if cached {
				status = types.CoverageOKCached
			}
			entries = append(entries, types.CoverageEntry{
				Package:  fields[1],
				Status:   status,
				Coverage: percentage(line),
				Cached:   cached,
			})

		case strings.Contains(line, "coverage:"):
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			entries = append(entries, types.CoverageEntry{
				Package:  fields[0],
				Status:   types.CoverageNoTests,
				Coverage: percentage(line),
			})
		}
	}
	return entries
}

func percentage(line string) string {
	if m := coveragePercent.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	return types.CoverageNA
}
