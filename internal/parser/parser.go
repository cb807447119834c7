package parser

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/harrison/rob/internal/models"
)

// Format represents the format of a framework definition file
type Format int

const (
	// FormatUnknown represents an unknown or unsupported file format
	FormatUnknown Format = iota
	// FormatMarkdown represents a Markdown (.md, .markdown) definition
	FormatMarkdown
	// FormatYAML represents a YAML (.yaml, .yml) definition
	FormatYAML
)

// String returns the string representation of the Format
func (f Format) String() string {
	switch f {
	case FormatMarkdown:
		return "markdown"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Parser is the interface that all definition parsers must implement
type Parser interface {
	// Parse reads a definition and returns an unanswered framework template
	Parse(r io.Reader) (*models.Framework, error)
}

// DetectFormat detects the definition format based on file extension
// Supported extensions:
//   - .md, .markdown -> FormatMarkdown
//   - .yaml, .yml -> FormatYAML
//   - all others -> FormatUnknown
func DetectFormat(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".md", ".markdown":
		return FormatMarkdown
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatUnknown
	}
}

// NewParser creates a new parser instance for the specified format
// Returns an error if the format is unknown or unsupported
func NewParser(format Format) (Parser, error) {
	switch format {
	case FormatMarkdown:
		return NewMarkdownParser(), nil
	case FormatYAML:
		return NewYAMLParser(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %v", format)
	}
}

// ParseFile detects the format of path from its extension, parses it and
// returns the validated framework template.
func ParseFile(path string) (*models.Framework, error) {
	format := DetectFormat(path)
	if format == FormatUnknown {
		return nil, fmt.Errorf("unknown file format: %s (supported: .md, .markdown, .yaml, .yml)", path)
	}

	parser, err := NewParser(format)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	fw, err := parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse definition %s: %w", filepath.Base(path), err)
	}
	return fw, nil
}

// finish fills defaults left open by a definition and validates the result.
func finish(fw *models.Framework) (*models.Framework, error) {
	if fw.Name == "" {
		return nil, fmt.Errorf("framework has no name")
	}
	if len(fw.Domains) == 0 {
		return nil, fmt.Errorf("framework %q defines no domains", fw.Name)
	}

	for _, d := range fw.Domains {
		for i, q := range d.Questions {
			if q.Index == 0 {
				q.Index = defaultIndex(d.Index, i, q.ID)
			}
		}
	}

	if err := fw.Validate(); err != nil {
		return nil, fmt.Errorf("invalid framework %q: %w", fw.Name, err)
	}
	return fw, nil
}

// defaultIndex derives a display index from a numeric question ID, falling
// back to the question's position within its domain.
func defaultIndex(domainIndex, position int, id string) float64 {
	if f, err := strconv.ParseFloat(id, 64); err == nil {
		return f
	}
	return float64(domainIndex) + float64(position+1)/10
}

// parseBool accepts yes/no in addition to the strconv spellings.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y":
		return true, nil
	case "no", "n":
		return false, nil
	}
	return strconv.ParseBool(strings.TrimSpace(s))
}
