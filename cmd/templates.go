package cmd

import (
	"fmt"
	"log/slog"

	"github.com/northcutted/analyze-code/pkg/renderer"
)

// describeTemplate returns a human-readable description of the template being used.
func describeTemplate(path string) string {
	if path != "" {
		return fmt.Sprintf("custom file: %s", path)
	}
	return "built-in: default"
}

// handleExportTemplate exports the built-in template to stdout.
func handleExportTemplate() error {
	content, err := renderer.ExportTemplate()
	if err != nil {
		return fmt.Errorf("failed to export template: %w", err)
	}
	if _, err = fmt.Fprint(stdout, content); err != nil {
		return fmt.Errorf("failed to write template: %w", err)
	}
	return nil
}

// handleValidateTemplate validates a custom template file.
func handleValidateTemplate(path string) error {
	if err := renderer.ValidateTemplate(path); err != nil {
		slog.Error("template validation failed", "path", path, "error", err)
		return err
	}
	fmt.Fprintf(stdout, "Template %s is valid.\n", path)
	return nil
}
