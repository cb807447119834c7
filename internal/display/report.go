package display

import (
	"fmt"
	"io"
	"strconv"

	"github.com/harrison/rob/internal/models"
)

// PrintJudgement writes the per-domain judgements of fw followed by the
// aggregated verdict. Domains without a decision tree show "n/a".
func PrintJudgement(w io.Writer, fw *models.Framework) {
	p := NewPalette(w)

	p.Heading().Fprintf(w, "%s\n", fw.Name)
	if fw.Manuscript != "" {
		fmt.Fprintf(w, "Manuscript: %s\n", fw.Manuscript)
	}
	if fw.Assessor != "" {
		fmt.Fprintf(w, "Assessor: %s\n", fw.Assessor)
	}
	fmt.Fprintln(w)

	table := NewTable(
		Column{Header: "Domain"},
		Column{Header: "Name", MaxWidth: 48},
		Column{Header: "Judgement"},
		Column{Header: "Pending", Align: AlignRight},
	)
	table.SetHeaderColor(p.Heading())

	for _, d := range fw.Domains {
		verdict := Cell{Text: "n/a"}
		if models.HasJudgement(d.Kind) {
			v := d.Judgement()
			verdict = Cell{Text: v.String(), Color: p.Verdict(v)}
		}
		name := d.Name
		if !d.Aggregate {
			name += " *"
		}
		table.AddRow(
			Cell{Text: d.ShortName()},
			Cell{Text: name},
			verdict,
			Cell{Text: strconv.Itoa(len(d.Pending()))},
		)
	}
	table.Render(w)

	overall := fw.Judgement()
	fmt.Fprint(w, "\nOverall risk of bias: ")
	p.Verdict(overall).Fprintln(w, overall.String())
	fmt.Fprintln(w, "(* not part of the overall risk of bias)")

	if pending := fw.Pending(); len(pending) > 0 {
		fmt.Fprintf(w, "%d required questions unanswered\n", len(pending))
	}
}
