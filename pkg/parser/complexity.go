package parser

import (
	"regexp"

	"github.com/northcutted/analyze-code/pkg/types"
)

var (
	// gocyclo: "15 main main main.go:28:1"
	cyclomaticLine = regexp.MustCompile(`^(\d+)\s+(\S+)\s+(\S+)\s+(.+):(\d+):\d+$`)
	// gocognit: "15 main main main.go:28"
	cognitiveLine = regexp.MustCompile(`^(\d+)\s+(\S+)\s+(\S+)\s+(.+):(\d+)$`)
)

// ParseCyclomatic parses gocyclo output. Entries keep the tool's order;
// ranking is left to the caller.
func ParseCyclomatic(output string) []types.ComplexityEntry {
	return parseComplexity(output, cyclomaticLine)
}

// ParseCognitive parses gocognit output, which has no column field.
func ParseCognitive(output string) []types.ComplexityEntry {
	return parseComplexity(output, cognitiveLine)
}

func parseComplexity(output string, re *regexp.Regexp) []types.ComplexityEntry {
	entries := make([]types.ComplexityEntry, 0)
	for _, line := range lines(output) {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		complexity, ok := atoi(m[1])
		if !ok {
			continue
		}
		lineNum, ok := atoi(m[5])
		if !ok {
			continue
		}
		entries = append(entries, types.ComplexityEntry{
			Complexity: complexity,
			Package:    m[2],
			Function:   m[3],
			File:       m[4],
			Line:       lineNum,
		})
	}
	return entries
}
