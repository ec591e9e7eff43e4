package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// RequiredTools lists every binary a full run invokes, in check order.
var RequiredTools = []string{
	"gocyclo",
	"golangci-lint",
	"go",
	"gosec",
	"goconst",
	"gocognit",
	"go-cleanarch",
	"govulncheck",
	"staticcheck",
	"deadcode",
}

// ProbeTimeout bounds the `--help` probe of a single tool.
const ProbeTimeout = 10 * time.Second

// lookPath resolves a tool on PATH. Overridden in tests.
var lookPath = exec.LookPath

// probeTool runs `<path> --help`. Any exit status counts as present; only a
// failure to start or a timeout does not. Overridden in tests.
var probeTool = func(ctx context.Context, path string) error {
	err := exec.CommandContext(ctx, path, "--help").Run()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return err
	}
	return nil
}

// ToolStatus is the presence check outcome for one tool.
type ToolStatus struct {
	Name      string
	Path      string
	Available bool
}

// Check reports whether name is on PATH and answers `--help` within
// ProbeTimeout.
func Check(ctx context.Context, name string) ToolStatus {
	status := ToolStatus{Name: name}
	path, err := lookPath(name)
	if err != nil {
		return status
	}
	status.Path = path

	probeCtx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()
	if err := probeTool(probeCtx, path); err != nil {
		slog.Debug("tool probe failed", "tool", name, "path", path, "error", err)
		return status
	}
	status.Available = true
	return status
}

// IsAvailable is Check(ctx, name).Available.
func IsAvailable(ctx context.Context, name string) bool {
	return Check(ctx, name).Available
}

// CheckAll checks each tool in order.
func CheckAll(ctx context.Context, tools []string) []ToolStatus {
	statuses := make([]ToolStatus, 0, len(tools))
	for _, tool := range tools {
		statuses = append(statuses, Check(ctx, tool))
	}
	return statuses
}

// MissingTools returns *MissingToolsError naming every tool that is not
// available, or nil when all are.
func MissingTools(ctx context.Context, tools []string) error {
	var missing []string
	for _, status := range CheckAll(ctx, tools) {
		if !status.Available {
			missing = append(missing, status.Name)
		}
	}
	if len(missing) > 0 {
		return &MissingToolsError{Tools: missing}
	}
	return nil
}

// MissingToolsError is returned by MissingTools.
type MissingToolsError struct {
	Tools []string
}

func (e *MissingToolsError) Error() string {
	return fmt.Sprintf("missing tools: %s", strings.Join(e.Tools, ", "))
}
