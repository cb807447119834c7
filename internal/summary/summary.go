// Package summary tabulates the judgements of many assessments, one row per
// study, in the layout of a robvis traffic-light table.
package summary

import (
	"fmt"
	"io"
	"sort"

	"github.com/harrison/rob/internal/display"
	"github.com/harrison/rob/internal/models"
)

// Column is a judged domain shown in the summary.
type Column struct {
	Index int
	Short string // "D1"
	Name  string
}

// Row holds the verdicts of one assessment.
type Row struct {
	Manuscript string
	Assessor   string
	Verdicts   []models.Verdict // One per Summary.Columns entry
	Overall    models.Verdict
}

// Summary is the table of verdicts across assessments.
type Summary struct {
	Columns []Column
	Rows    []Row
}

// Summarise computes the domain and overall verdicts of every framework.
// Columns are the aggregating, judged domains of the first framework; a
// framework lacking one of them shows Unknown in that column. Rows are
// sorted by manuscript, then assessor.
func Summarise(frameworks []*models.Framework) *Summary {
	s := &Summary{}
	if len(frameworks) == 0 {
		return s
	}

	for _, d := range frameworks[0].Domains {
		if !d.Aggregate || !models.HasJudgement(d.Kind) {
			continue
		}
		s.Columns = append(s.Columns, Column{Index: d.Index, Short: d.ShortName(), Name: d.Name})
	}

	for _, fw := range frameworks {
		row := Row{
			Manuscript: fw.Manuscript,
			Assessor:   fw.Assessor,
			Verdicts:   make([]models.Verdict, len(s.Columns)),
			Overall:    fw.Judgement(),
		}
		for i, col := range s.Columns {
			if d := fw.Domain(col.Index); d != nil {
				row.Verdicts[i] = d.Judgement()
			}
		}
		s.Rows = append(s.Rows, row)
	}

	sort.SliceStable(s.Rows, func(i, j int) bool {
		if s.Rows[i].Manuscript != s.Rows[j].Manuscript {
			return s.Rows[i].Manuscript < s.Rows[j].Manuscript
		}
		return s.Rows[i].Assessor < s.Rows[j].Assessor
	})
	return s
}

// Counts returns how many rows carry each overall verdict.
func (s *Summary) Counts() map[models.Verdict]int {
	counts := make(map[models.Verdict]int)
	for _, r := range s.Rows {
		counts[r.Overall]++
	}
	return counts
}

// unnamed labels rows whose assessment has no manuscript.
const unnamed = "(unnamed)"

// Print renders the symbol table (+ Low, - Some concerns, x High,
// ? Unknown) followed by a legend.
func Print(w io.Writer, s *Summary) {
	if len(s.Rows) == 0 {
		fmt.Fprintln(w, "No summaries to display.")
		return
	}

	p := display.NewPalette(w)
	columns := []display.Column{{Header: "Study"}}
	for _, c := range s.Columns {
		columns = append(columns, display.Column{Header: c.Short, Align: display.AlignCenter})
	}
	columns = append(columns, display.Column{Header: "Overall", Align: display.AlignCenter})

	table := display.NewTable(columns...)
	table.SetHeaderColor(p.Heading())
	for _, r := range s.Rows {
		study := r.Manuscript
		if study == "" {
			study = unnamed
		}
		if r.Assessor != "" {
			study = fmt.Sprintf("%s (%s)", study, r.Assessor)
		}
		cells := []display.Cell{{Text: study}}
		for _, v := range r.Verdicts {
			cells = append(cells, display.Cell{Text: v.Symbol(), Color: p.Verdict(v)})
		}
		cells = append(cells, display.Cell{Text: r.Overall.Symbol(), Color: p.Verdict(r.Overall)})
		table.AddRow(cells...)
	}
	table.Render(w)

	fmt.Fprintln(w)
	for _, c := range s.Columns {
		fmt.Fprintf(w, "%s: %s\n", c.Short, c.Name)
	}
	for i, v := range []models.Verdict{models.VerdictLow, models.VerdictSomeConcerns, models.VerdictHigh, models.VerdictUnknown} {
		if i > 0 {
			fmt.Fprint(w, "  ")
		}
		p.Verdict(v).Fprint(w, v.Symbol())
		fmt.Fprintf(w, " %s", v)
	}
	fmt.Fprintln(w)
}
