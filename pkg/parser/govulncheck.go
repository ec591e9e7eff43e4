package parser

import (
	"strings"

	"github.com/northcutted/analyze-code/pkg/types"
)

// vulnerabilityContextLines is how many lines after a match are kept.
const vulnerabilityContextLines = 2

// ParseGovulncheck extracts findings from govulncheck's human-readable
// output (stdout followed by stderr).
//
// This is a keyword heuristic, not a structural parse: any line containing
// "vulnerability" (any case) or "CVE-" starts a finding, and the two lines
// after it are captured as context whatever they contain. It can both miss
// findings and report summary lines as findings.
func ParseGovulncheck(output string) []types.Vulnerability {
	vulns := make([]types.Vulnerability, 0)
	all := strings.Split(strings.TrimSpace(output), "\n")
	for i, line := range all {
		if !strings.Contains(strings.ToLower(line), "vulnerability") && !strings.Contains(line, "CVE-") {
			continue
		}
		end := min(i+1+vulnerabilityContextLines, len(all))
		details := make([]string, 0, vulnerabilityContextLines)
		details = append(details, all[i+1:end]...)
		vulns = append(vulns, types.Vulnerability{
			Type:    "vulnerability",
			Message: strings.TrimSpace(line),
			Details: details,
		})
	}
	return vulns
}
