package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// Alignment of a table column
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Cell is one table cell. Color is applied after padding so escape codes
// never count towards the column width.
type Cell struct {
	Text  string
	Color *color.Color
}

// Column describes a table column.
type Column struct {
	Header string
	Align  Alignment
	// MaxWidth truncates longer cells with "..." (0 = unlimited)
	MaxWidth int
}

// Table is a plain text table aligned by display width, so wide runes in
// study names or question texts keep their columns straight.
type Table struct {
	Columns []Column
	rows    [][]Cell
	header  *color.Color
}

// NewTable creates a table with the given columns.
func NewTable(columns ...Column) *Table {
	return &Table{Columns: columns}
}

// SetHeaderColor colours the header row.
func (t *Table) SetHeaderColor(c *color.Color) {
	t.header = c
}

// AddRow appends a row. Missing cells are rendered empty; extra cells are
// dropped.
func (t *Table) AddRow(cells ...Cell) {
	row := make([]Cell, len(t.Columns))
	copy(row, cells)
	for i := range row {
		if limit := t.Columns[i].MaxWidth; limit > 0 {
			row[i].Text = runewidth.Truncate(row[i].Text, limit, "...")
		}
	}
	t.rows = append(t.rows, row)
}

// AddTextRow appends a row of uncoloured cells.
func (t *Table) AddTextRow(texts ...string) {
	cells := make([]Cell, len(texts))
	for i, s := range texts {
		cells[i] = Cell{Text: s}
	}
	t.AddRow(cells...)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render writes the table to w.
func (t *Table) Render(w io.Writer) {
	widths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		widths[i] = runewidth.StringWidth(col.Header)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if n := runewidth.StringWidth(cell.Text); n > widths[i] {
				widths[i] = n
			}
		}
	}

	headers := make([]Cell, len(t.Columns))
	for i, col := range t.Columns {
		headers[i] = Cell{Text: col.Header, Color: t.header}
	}
	t.renderRow(w, headers, widths)

	rules := make([]string, len(widths))
	for i, n := range widths {
		rules[i] = strings.Repeat("-", n)
	}
	fmt.Fprintln(w, strings.Join(rules, "  "))

	for _, row := range t.rows {
		t.renderRow(w, row, widths)
	}
}

func (t *Table) renderRow(w io.Writer, row []Cell, widths []int) {
	parts := make([]string, len(row))
	for i, cell := range row {
		parts[i] = pad(cell, widths[i], t.Columns[i].Align)
	}
	fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
}

func pad(cell Cell, width int, align Alignment) string {
	gap := width - runewidth.StringWidth(cell.Text)
	if gap < 0 {
		gap = 0
	}
	text := cell.Text
	if cell.Color != nil {
		text = cell.Color.Sprint(text)
	}

	switch align {
	case AlignRight:
		return strings.Repeat(" ", gap) + text
	case AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + text + strings.Repeat(" ", gap-left)
	default:
		return text + strings.Repeat(" ", gap)
	}
}
