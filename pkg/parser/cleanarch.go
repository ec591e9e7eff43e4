package parser

import (
	"strings"

	"github.com/northcutted/analyze-code/pkg/types"
)

// cleanarchBanner appears in go-cleanarch's own summary lines.
const cleanarchBanner = "Clean Architecture"

// ParseCleanarch parses go-cleanarch output. The tool reports violations on
// stderr, so stderr is used whenever it has content. Only lines mentioning
// a dependency rule or an import become violations.
func ParseCleanarch(stdout, stderr string) []types.ArchitectureViolation {
	output := stdout
	if strings.TrimSpace(stderr) != "" {
		output = stderr
	}

	violations := make([]types.ArchitectureViolation, 0)
	for _, line := range lines(output) {
		if strings.Contains(line, cleanarchBanner) {
			continue
		}
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "dependency rule") && !strings.Contains(lower, "import") {
			continue
		}
		violations = append(violations, types.ArchitectureViolation{
			ViolationType: types.ViolationDependency,
			Details:       strings.TrimSpace(line),
		})
	}
	return violations
}
