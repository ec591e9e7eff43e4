package metrics

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/northcutted/analyze-code/pkg/types"
)

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", rel, err)
	}
	return path
}

func TestCountLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"empty", "", 0},
		{"single newline", "\n", 1},
		{"trailing newline", "a\nb\n", 2},
		{"no trailing newline", "a\nb", 2},
		{"blank lines", "\n\n\n", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountLines([]byte(tt.input)); got != tt.want {
				t.Errorf("CountLines(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestOverview(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", "package main\n\nfunc main() {}\n")      // 3
	writeFile(t, root, "pkg/a/a.go", "package a\n")                         // 1
	writeFile(t, root, "pkg/a/a_test.go", "package a\n\nimport \"testing\"") // 3
	writeFile(t, root, "vendor/dep/dep.go", "package dep\n\n\n\n")
	writeFile(t, root, "examples/demo/main.go", "package main\n\n")
	writeFile(t, root, "build/gen.go", "package gen\n")
	writeFile(t, root, "README.md", "# readme\n")
	writeFile(t, root, ".gitignore", "build/\n")

	tests := []struct {
		name string
		opts []Option
		want Overview
	}{
		{
			name: "defaults",
			opts: []Option{WithExamples(true)},
			want: Overview{TotalLines: 7, GoFiles: 4},
		},
		{
			name: "examples counted",
			opts: []Option{WithExamples(false)},
			want: Overview{TotalLines: 9, GoFiles: 4},
		},
		{
			name: "vendor included",
			opts: []Option{WithVendor(false), WithExamples(true), WithWorkers(1)},
			want: Overview{TotalLines: 11, GoFiles: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewCollector(root, tt.opts...).Overview(context.Background())
			if err != nil {
				t.Fatalf("Overview() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Overview() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestOverview_MissingRoot(t *testing.T) {
	_, err := NewCollector(filepath.Join(t.TempDir(), "nope")).Overview(context.Background())
	if err == nil {
		t.Error("expected an error for a missing root")
	}
}

func TestOverview_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", "package main\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewCollector(root).Overview(ctx); err == nil {
		t.Error("expected an error for a cancelled context")
	}
}

func TestPackages(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "config/config.go", "package config\n\nvar X = 1\n")
	writeFile(t, root, "config/load.go", "package config\n")
	writeFile(t, root, "config/config_test.go", "package config\n\n")
	writeFile(t, root, "config/sub/sub.go", "package sub\n")

	pkgs := []types.GoPackage{
		{ImportPath: "example.com/app/config", Dir: filepath.Join(root, "config")},
		{ImportPath: "example.com/app/config/sub", Dir: filepath.Join(root, "config", "sub")},
		{ImportPath: "example.com/app/gone"},
	}

	got, err := NewCollector(root, WithWorkers(2)).Packages(context.Background(), pkgs)
	if err != nil {
		t.Fatalf("Packages() error = %v", err)
	}

	want := []types.PackageMetric{
		{Package: "config", FullPackage: "example.com/app/config", GoFiles: 2, TestFiles: 1, Lines: 4, TestLines: 2},
		{Package: "sub", FullPackage: "example.com/app/config/sub", GoFiles: 1, Lines: 1},
		{Package: "gone", FullPackage: "example.com/app/gone"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Packages() =\n%+v\nwant\n%+v", got, want)
	}
}
