package parser

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/northcutted/analyze-code/pkg/types"
)

// gosecLine accepts gosec's "line" field as either a JSON number or a
// string. gosec emits strings such as "42" or, for multi-line findings,
// "42-45"; the first number is kept.
type gosecLine int

func (l *gosecLine) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*l = gosecLine(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*l = 0
		return nil
	}
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '-'); i > 0 {
		s = s[:i]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		n = 0
	}
	*l = gosecLine(n)
	return nil
}

// ParseGosec parses `gosec -fmt=json` output. Absolute file paths under
// root are rewritten relative to it. Output that is not valid JSON yields
// no issues.
func ParseGosec(output []byte, root string) []types.SecurityIssue {
	var report struct {
		Issues []struct {
			Severity   *string   `json:"severity"`
			Confidence *string   `json:"confidence"`
			RuleID     string    `json:"rule_id"`
			Details    string    `json:"details"`
			File       string    `json:"file"`
			Line       gosecLine `json:"line"`
		} `json:"Issues"`
	}

	issues := make([]types.SecurityIssue, 0)
	// gosec can print log lines ahead of the report on some versions.
	if i := bytes.IndexByte(output, '{'); i > 0 {
		output = output[i:]
	}
	if err := json.Unmarshal(output, &report); err != nil {
		return issues
	}

	for _, issue := range report.Issues {
		severity := types.SeverityUnknown
		if issue.Severity != nil {
			severity = types.ParseSeverity(*issue.Severity)
		}
		confidence := string(types.SeverityUnknown)
		if issue.Confidence != nil {
			confidence = *issue.Confidence
		}
		issues = append(issues, types.SecurityIssue{
			Severity:   severity,
			Confidence: confidence,
			Rule:       issue.RuleID,
			Details:    issue.Details,
			File:       relativeTo(issue.File, root),
			Line:       max(int(issue.Line), 0),
		})
	}
	return issues
}

// relativeTo strips root from an absolute path below it.
func relativeTo(path, root string) string {
	if root == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
