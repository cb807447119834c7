package display

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
)

// ProgressIndicator shows progress through a batch of assessment files
type ProgressIndicator struct {
	writer  io.Writer
	palette Palette
	total   int
	current int
	failed  int
	verb    string
}

// NewProgressIndicator creates a new progress indicator. verb describes the
// operation ("Saving", "Loading").
func NewProgressIndicator(w io.Writer, total int, verb string) *ProgressIndicator {
	return &ProgressIndicator{
		writer:  w,
		palette: NewPalette(w),
		total:   total,
		verb:    verb,
	}
}

// Start displays the header message
func (p *ProgressIndicator) Start() {
	fmt.Fprintf(p.writer, "%s %d assessment files:\n", p.verb, p.total)
}

// Step displays progress for current item: [N/Total] filename
func (p *ProgressIndicator) Step(filename string) {
	p.current++
	p.palette.Color(color.FgCyan).Fprintf(p.writer, "  [%d/%d] %s\n", p.current, p.total, filepath.Base(filename))
}

// Fail marks the current item as failed
func (p *ProgressIndicator) Fail(err error) {
	p.failed++
	p.palette.Color(color.FgRed).Fprintf(p.writer, "        failed: %v\n", err)
}

// Complete displays the final tally
func (p *ProgressIndicator) Complete() {
	done := p.current - p.failed
	if p.failed == 0 {
		p.palette.Color(color.FgGreen).Fprint(p.writer, "✓")
		fmt.Fprintf(p.writer, " Processed %d assessment files\n", done)
		return
	}
	p.palette.Color(color.FgYellow).Fprint(p.writer, "!")
	fmt.Fprintf(p.writer, " Processed %d assessment files, %d failed\n", done, p.failed)
}
