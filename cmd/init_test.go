// Test file for the init command.
//
// Globals mutated: initOutput, initForce, stdout (via captureOutput).
// All tests use defer resetFlags()() for cleanup.
package cmd

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/northcutted/analyze-code/pkg/config"
)

func TestWriteConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analyze_config.yaml")
	cfg := config.Default()
	cfg.Analysis.ProjectName = "BatchExec"
	cfg.DeadCode.ExcludeFunctions = []string{"main"}

	if err := writeConfig(path, cfg, false); err != nil {
		t.Fatalf("writeConfig() error = %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read config: %v", err)
	}
	if !strings.HasPrefix(string(content), "# analyze-code configuration.") {
		t.Error("expected documentation header")
	}

	loaded, err := config.Load(path)
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}
	if !reflect.DeepEqual(loaded, cfg) {
		t.Errorf("loaded config = %+v, want %+v", loaded, cfg)
	}
}

func TestWriteConfig_Exists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analyze_config.yaml")
	if err := os.WriteFile(path, []byte("keep me\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	err := writeConfig(path, config.Default(), false)
	if err == nil || !strings.Contains(err.Error(), "--force") {
		t.Fatalf("writeConfig() error = %v, want a hint about --force", err)
	}
	if content, _ := os.ReadFile(path); string(content) != "keep me\n" {
		t.Error("existing file was modified")
	}

	if err := writeConfig(path, config.Default(), true); err != nil {
		t.Fatalf("writeConfig(force) error = %v", err)
	}
}

func TestInitCommand(t *testing.T) {
	defer resetFlags()()
	path := filepath.Join(t.TempDir(), "custom.yaml")

	rootCmd.SetArgs([]string{"init", "--output", path})
	output := captureOutput(func() {
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("init command failed: %v", err)
		}
	})

	if !strings.Contains(output, "Created "+path) {
		t.Errorf("expected confirmation, got:\n%s", output)
	}
	if _, err := config.Load(path); err != nil {
		t.Errorf("generated config does not load: %v", err)
	}
}

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"15", false},
		{"1", false},
		{"0", true},
		{"-3", true},
		{"ten", true},
	}
	for _, tt := range tests {
		if err := validatePositive(tt.input); (err != nil) != tt.wantErr {
			t.Errorf("validatePositive(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}
