package display

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/harrison/rob/internal/models"
)

// ColorEnabled reports whether w is a terminal that should receive ANSI
// colour. NO_COLOR disables colour everywhere.
func ColorEnabled(w io.Writer) bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Palette hands out colours that are switched on or off for one writer,
// independent of the process-wide color.NoColor setting.
type Palette struct {
	enabled bool
}

// NewPalette returns a palette for w.
func NewPalette(w io.Writer) Palette {
	return Palette{enabled: ColorEnabled(w)}
}

// Enabled reports whether the palette emits colour.
func (p Palette) Enabled() bool {
	return p.enabled
}

// Color builds a colour with the given attributes.
func (p Palette) Color(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if p.enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// Verdict returns the traffic-light colour of a verdict.
func (p Palette) Verdict(v models.Verdict) *color.Color {
	switch v {
	case models.VerdictLow:
		return p.Color(color.FgGreen)
	case models.VerdictSomeConcerns:
		return p.Color(color.FgYellow)
	case models.VerdictHigh:
		return p.Color(color.FgRed, color.Bold)
	default:
		return p.Color(color.FgHiBlack)
	}
}

// Heading is the colour used for section headers.
func (p Palette) Heading() *color.Color {
	return p.Color(color.FgCyan, color.Bold)
}
