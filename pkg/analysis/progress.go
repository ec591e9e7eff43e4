package analysis

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// Progress reports how far a run has got. Implementations must tolerate
// Step being called after Done.
type Progress interface {
	// Step marks the start of the named stage.
	Step(description string)
	Done()
}

// NewProgress returns a bar on stderr with total stages when enabled and
// stderr is a terminal, and a no-op otherwise.
func NewProgress(enabled bool, total int) Progress {
	if enabled && isInteractive(os.Stderr) {
		return newBarProgress(os.Stderr, total)
	}
	return NoOpProgress{}
}

func isInteractive(f *os.File) bool {
	if os.Getenv("CI") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

type barProgress struct {
	bar     *progressbar.ProgressBar
	started bool
}

func newBarProgress(w io.Writer, total int) *barProgress {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(18),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	return &barProgress{bar: bar}
}

func (p *barProgress) Step(description string) {
	// The bar counts finished stages, so the first Step only describes.
	if p.started {
		_ = p.bar.Add(1)
	}
	p.started = true
	p.bar.Describe(description)
}

func (p *barProgress) Done() {
	_ = p.bar.Finish()
}

// NoOpProgress discards progress updates.
type NoOpProgress struct{}

func (NoOpProgress) Step(string) {}
func (NoOpProgress) Done()       {}
