// Test file for the tools command.
//
// Globals mutated: checkStatus, stdout (via captureOutput).
// All tests use defer resetFlags()() for cleanup.
package cmd

import (
	"context"
	"strings"
	"testing"

	"github.com/northcutted/analyze-code/pkg/runner"
)

func TestToolsCommand(t *testing.T) {
	tests := []struct {
		name     string
		statuses []runner.ToolStatus
		want     []string
	}{
		{
			name: "all installed",
			statuses: []runner.ToolStatus{
				{Name: "gocyclo", Path: "/go/bin/gocyclo", Available: true},
				{Name: "go", Path: "/usr/local/go/bin/go", Available: true},
			},
			want: []string{"Tool Status:", "  [OK] gocyclo (/go/bin/gocyclo)", "All required tools are installed."},
		},
		{
			name: "some missing",
			statuses: []runner.ToolStatus{
				{Name: "gocyclo", Path: "/go/bin/gocyclo", Available: true},
				{Name: "deadcode"},
				{Name: "gosec", Path: "/go/bin/gosec"},
			},
			want: []string{
				"  [MISSING] deadcode (not found on PATH)",
				"  [MISSING] gosec (/go/bin/gosec does not run)",
				"2 of 3 tools missing.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer resetFlags()()
			var asked []string
			checkStatus = func(_ context.Context, tools []string) []runner.ToolStatus {
				asked = tools
				return tt.statuses
			}

			rootCmd.SetArgs([]string{"tools"})
			output := captureOutput(func() {
				if err := rootCmd.Execute(); err != nil {
					t.Fatalf("tools command failed: %v", err)
				}
			})

			if len(asked) != len(runner.RequiredTools) {
				t.Errorf("checked %d tools, want %d", len(asked), len(runner.RequiredTools))
			}
			for _, want := range tt.want {
				if !strings.Contains(output, want) {
					t.Errorf("expected %q in output, got:\n%s", want, output)
				}
			}
		})
	}
}
