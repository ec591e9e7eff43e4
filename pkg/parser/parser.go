// Package parser turns the raw output of external analysis tools into typed
// records.
//
// Every parser is total: it accepts any input, including empty or garbled
// text, and returns the entries it could recognise. A line that does not
// match the tool's grammar is skipped without being reported.
package parser

import (
	"strconv"
	"strings"
)

// lines splits trimmed tool output into lines, dropping blank ones.
func lines(output string) []string {
	raw := strings.Split(strings.TrimSpace(output), "\n")
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, strings.TrimRight(line, "\r"))
	}
	return out
}

// atoi converts a regexp digit group. The groups only ever hold digits, so
// a failure can only mean overflow, and such a line is dropped like any
// other mismatch.
func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func stripDotSlash(path string) string {
	return strings.TrimPrefix(path, "./")
}
