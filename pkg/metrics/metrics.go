// Package metrics counts Go files and lines for the project overview and
// the per-package table of the report.
package metrics

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
	"golang.org/x/sync/errgroup"

	"github.com/northcutted/analyze-code/pkg/types"
)

// Collector walks a project tree. The zero value is not usable; use
// NewCollector.
type Collector struct {
	root            string
	excludeVendor   bool
	excludeExamples bool
	workers         int
	gitignore       *ignore.GitIgnore
}

// Option configures a Collector.
type Option func(*Collector)

// WithVendor controls whether vendor/ directories are skipped.
func WithVendor(exclude bool) Option {
	return func(c *Collector) { c.excludeVendor = exclude }
}

// WithExamples controls whether examples/ directories are left out of the
// line total.
func WithExamples(exclude bool) Option {
	return func(c *Collector) { c.excludeExamples = exclude }
}

// WithWorkers bounds the number of files read concurrently.
func WithWorkers(n int) Option {
	return func(c *Collector) {
		if n > 0 {
			c.workers = n
		}
	}
}

// NewCollector returns a Collector rooted at root. The root's .gitignore,
// when present, is honoured by Overview.
func NewCollector(root string, opts ...Option) *Collector {
	c := &Collector{
		root:          root,
		excludeVendor: true,
		workers:       runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(c)
	}

	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	switch {
	case err == nil:
		c.gitignore = gi
	case !errors.Is(err, fs.ErrNotExist):
		slog.Warn("ignoring unreadable .gitignore", "root", root, "error", err)
	}
	return c
}

// Overview is the project-wide count shown at the top of the metrics section.
type Overview struct {
	TotalLines int
	GoFiles    int
}

// Overview counts .go files under the root and the lines they hold. Vendor
// directories are skipped for both counts when excluded; examples
// directories only drop out of the line total.
func (c *Collector) Overview(ctx context.Context) (Overview, error) {
	var (
		goFiles   int
		lineFiles []string
	)

	err := filepath.WalkDir(c.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == c.root {
				return err
			}
			slog.Debug("skipping unreadable path", "path", path, "error", err)
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel, _ := filepath.Rel(c.root, path)
		if d.IsDir() {
			if path == c.root {
				return nil
			}
			if d.Name() == ".git" || (c.excludeVendor && d.Name() == "vendor") || c.ignored(rel, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), ".go") || c.ignored(rel, false) {
			return nil
		}
		goFiles++
		if c.excludeExamples && inExamples(rel) {
			return nil
		}
		lineFiles = append(lineFiles, path)
		return nil
	})
	if err != nil {
		return Overview{}, err
	}

	counts, err := c.countFiles(ctx, lineFiles)
	if err != nil {
		return Overview{}, err
	}
	total := 0
	for _, n := range counts {
		total += n
	}
	return Overview{TotalLines: total, GoFiles: goFiles}, nil
}

// Packages returns file and line counts for each package directory, in the
// order given. Only the package's own directory is read; subdirectories
// belong to other packages. A package without a directory gets zero counts.
func (c *Collector) Packages(ctx context.Context, pkgs []types.GoPackage) ([]types.PackageMetric, error) {
	metrics := make([]types.PackageMetric, len(pkgs))

	// files[j] belongs to metrics[owners[j]].
	var (
		files  []string
		owners []int
		tests  []bool
	)

	for i, pkg := range pkgs {
		metrics[i] = types.PackageMetric{
			Package:     types.ShortName(pkg.ImportPath),
			FullPackage: pkg.ImportPath,
		}
		if pkg.Dir == "" {
			continue
		}
		matches, err := filepath.Glob(filepath.Join(pkg.Dir, "*.go"))
		if err != nil {
			return nil, err
		}
		for _, f := range matches {
			isTest := strings.HasSuffix(f, "_test.go")
			if isTest {
				metrics[i].TestFiles++
			} else {
				metrics[i].GoFiles++
			}
			files = append(files, f)
			owners = append(owners, i)
			tests = append(tests, isTest)
		}
	}

	counts, err := c.countFiles(ctx, files)
	if err != nil {
		return nil, err
	}
	for j, n := range counts {
		if tests[j] {
			metrics[owners[j]].TestLines += n
		} else {
			metrics[owners[j]].Lines += n
		}
	}
	return metrics, nil
}

// countFiles reads files concurrently and returns their line counts in the
// same order. Unreadable files count as zero.
func (c *Collector) countFiles(ctx context.Context, files []string) ([]int, error) {
	counts := make([]int, len(files))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				slog.Debug("skipping unreadable file", "path", path, "error", err)
				return nil
			}
			counts[i] = CountLines(data)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return counts, nil
}

func (c *Collector) ignored(rel string, dir bool) bool {
	if c.gitignore == nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	if dir {
		return c.gitignore.MatchesPath(rel + "/")
	}
	return c.gitignore.MatchesPath(rel)
}

func inExamples(rel string) bool {
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if part == "examples" {
			return true
		}
	}
	return false
}

// CountLines returns the number of lines in data. A final line without a
// trailing newline still counts.
func CountLines(data []byte) int {
	if len(data) == 0 {
		return 0
	}
	n := bytes.Count(data, []byte{'\n'})
	if data[len(data)-1] != '\n' {
		n++
	}
	return n
}
