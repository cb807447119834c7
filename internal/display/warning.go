package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning, in yellow when out is a terminal
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		b.WriteString("    ")
		if len(w.Files) == 1 {
			b.WriteString("Affected file:\n")
		} else {
			b.WriteString("Affected files:\n")
		}

		for i, file := range w.Files {
			b.WriteString("      ")
			b.WriteString(fmt.Sprintf("%d. %s", i+1, file))
			b.WriteString("\n")
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	NewPalette(out).Color(color.FgYellow).Fprint(out, b.String())
}

// FileProblem is a file that could not be used, with the reason.
type FileProblem struct {
	Path string
	Err  error
}

// WarnSkippedFiles creates a warning for documents skipped during a
// directory load.
func WarnSkippedFiles(problems []FileProblem) Warning {
	files := make([]string, len(problems))
	for i, p := range problems {
		switch {
		case p.Path == "":
			files[i] = p.Err.Error()
		case p.Err == nil:
			files[i] = p.Path
		default:
			files[i] = fmt.Sprintf("%s (%v)", p.Path, p.Err)
		}
	}
	noun := "files"
	if len(problems) == 1 {
		noun = "file"
	}
	return Warning{
		Title:      fmt.Sprintf("Skipped %d unreadable assessment %s", len(problems), noun),
		Files:      files,
		Suggestion: "Check the files are assessments saved by 'rob template' or 'rob record'",
	}
}
