package renderer

import (
	"strings"

	"github.com/northcutted/analyze-code/pkg/types"
)

// Icon names used by the report template.
const (
	iconOK    = "ok"
	iconWarn  = "warn"
	iconHigh  = "high"
	iconCrit  = "crit"
	iconLow   = "low"
	iconFail  = "fail"
	iconVuln  = "vuln"
	iconSmell = "smell"
	iconArch  = "arch"
)

var emojiIcons = map[string]string{
	iconOK:    "\u2705",
	iconWarn:  "\u26a0\ufe0f",
	iconHigh:  "\U0001f536",
	iconCrit:  "\U0001f534",
	iconLow:   "\U0001f7e1",
	iconFail:  "\u274c",
	iconVuln:  "\U0001f6a8",
	iconSmell: "\U0001f443",
	iconArch:  "\U0001f3d7\ufe0f",
}

var textIcons = map[string]string{
	iconOK:    "[OK]",
	iconWarn:  "[WARN]",
	iconHigh:  "[HIGH]",
	iconCrit:  "[CRIT]",
	iconLow:   "[LOW]",
	iconFail:  "[FAIL]",
	iconVuln:  "[VULN]",
	iconSmell: "[SMELL]",
	iconArch:  "[ARCH]",
}

// iconSet resolves icon names to emoji, or to ASCII labels when noMoji is set.
type iconSet struct {
	noMoji bool
}

func (s iconSet) icon(name string) string {
	if s.noMoji {
		return textIcons[name]
	}
	return emojiIcons[name]
}

// complexity maps a cyclomatic or cognitive score to the display scale.
func (s iconSet) complexity(c int) string {
	switch {
	case c <= 10:
		return s.icon(iconOK)
	case c <= 15:
		return s.icon(iconWarn)
	case c <= 25:
		return s.icon(iconHigh)
	default:
		return s.icon(iconCrit)
	}
}

// priority labels a function in the above-threshold table. The boundaries
// differ from the display scale.
func (s iconSet) priority(c int) string {
	switch {
	case c >= 26:
		return s.icon(iconCrit) + " **Critical**"
	case c >= 21:
		return s.icon(iconHigh) + " **High**"
	case c >= 16:
		return s.icon(iconWarn) + " **Medium**"
	default:
		return s.icon(iconOK) + " **Low**"
	}
}

func (s iconSet) severity(sev types.Severity) string {
	switch types.Severity(strings.ToUpper(string(sev))) {
	case types.SeverityHigh:
		return s.icon(iconCrit)
	case types.SeverityMedium:
		return s.icon(iconHigh)
	default:
		return s.icon(iconLow)
	}
}

func (s iconSet) coverage(status types.CoverageStatus) string {
	if status.OK() {
		return s.icon(iconOK)
	}
	return s.icon(iconFail)
}
