package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/northcutted/analyze-code/pkg/config"
)

const (
	formatMarkdown = "markdown"
	formatJSON     = "json"
)

func validateFormat(f string) error {
	switch f {
	case formatMarkdown, formatJSON:
		return nil
	default:
		return fmt.Errorf("unknown format %q (want %s or %s)", f, formatMarkdown, formatJSON)
	}
}

// resolveOutputPath determines the report path for a given format.
// A path the user chose is used as-is; the default path gets the
// format's extension.
func resolveOutputPath(currentOutput string, format string) string {
	if currentOutput != config.DefaultOutputFile || format != formatJSON {
		return currentOutput
	}
	return strings.TrimSuffix(currentOutput, filepath.Ext(currentOutput)) + ".json"
}

// writeReport writes content to path, creating missing parent directories.
func writeReport(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
