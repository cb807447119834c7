package logger

import (
	"github.com/fatih/color"

	"github.com/harrison/rob/internal/models"
)

// colorScheme defines consistent colors for verdicts.
// Green: low risk
// Yellow: some concerns
// Red: high risk
// Grey: unknown (incomplete)
type colorScheme struct {
	low      *color.Color
	concerns *color.Color
	high     *color.Color
	unknown  *color.Color
}

// newColorScheme creates the standard traffic-light scheme.
func newColorScheme() *colorScheme {
	return &colorScheme{
		low:      color.New(color.FgGreen),
		concerns: color.New(color.FgYellow),
		high:     color.New(color.FgRed, color.Bold),
		unknown:  color.New(color.FgHiBlack),
	}
}

// formatColorizedVerdict renders v in its scheme colour.
func formatColorizedVerdict(v models.Verdict, scheme *colorScheme) string {
	switch v {
	case models.VerdictLow:
		return scheme.low.Sprint(v)
	case models.VerdictSomeConcerns:
		return scheme.concerns.Sprint(v)
	case models.VerdictHigh:
		return scheme.high.Sprint(v)
	default:
		return scheme.unknown.Sprint(v)
	}
}
