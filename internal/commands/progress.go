package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
)

// Progress reports batch conversion progress.
type Progress interface {
	// Done records one finished statement.
	Done(file string) error
	// Close removes the progress display.
	Close()
}

// NoopProgress discards progress updates.
type NoopProgress struct{}

func (*NoopProgress) Done(string) error { return nil }
func (*NoopProgress) Close()            {}

// NewNoopProgress creates a progress tracker that reports nothing.
func NewNoopProgress() *NoopProgress {
	return &NoopProgress{}
}

// BarProgress draws a statement-count progress bar on stderr, naming the
// statement that finished most recently.
type BarProgress struct {
	bar *progressbar.ProgressBar
}

// NewBarProgress creates a progress bar for total statements.
func NewBarProgress(total int) *BarProgress {
	return &BarProgress{
		bar: progressbar.NewOptions(total,
			progressbar.OptionSetDescription("Converting statements"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			})),
	}
}

func (p *BarProgress) Done(file string) error {
	p.bar.Describe("Converted " + filepath.Base(file))
	return p.bar.Add(1)
}

func (p *BarProgress) Close() {
	fmt.Fprint(os.Stderr, "\r\033[K")
}
