package types

import "strings"

// Severity is a gosec severity level.
type Severity string

const (
	SeverityHigh    Severity = "HIGH"
	SeverityMedium  Severity = "MEDIUM"
	SeverityLow     Severity = "LOW"
	SeverityUnknown Severity = "UNKNOWN"
)

// SeverityOrder is the display order of the grouped security view.
// SeverityUnknown is intentionally not part of it.
var SeverityOrder = []Severity{SeverityHigh, SeverityMedium, SeverityLow}

// ParseSeverity maps a tool severity to the closed set, case-insensitively.
// Anything unrecognised becomes SeverityUnknown.
func ParseSeverity(s string) Severity {
	switch Severity(strings.ToUpper(strings.TrimSpace(s))) {
	case SeverityHigh:
		return SeverityHigh
	case SeverityMedium:
		return SeverityMedium
	case SeverityLow:
		return SeverityLow
	default:
		return SeverityUnknown
	}
}
