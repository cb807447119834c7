package compare

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/harrison/rob/internal/display"
)

const notAnswered = "-"

// Print renders the question table, the domain verdicts and the agreement
// rates. Disagreeing rows are highlighted.
func Print(w io.Writer, r *Result, ag Agreement) {
	p := display.NewPalette(w)
	mismatch := p.Color(color.FgRed)

	questions := display.NewTable(
		display.Column{Header: "Domain"},
		display.Column{Header: "Question"},
		display.Column{Header: "Text", MaxWidth: 60},
		display.Column{Header: r.AssessorA},
		display.Column{Header: r.AssessorB},
	)
	questions.SetHeaderColor(p.Heading())
	for _, row := range r.Rows {
		a, b := answerText(row.AnswerA, row.AnsweredA), answerText(row.AnswerB, row.AnsweredB)
		var c *color.Color
		if row.Comparable() && !row.Agree() {
			c = mismatch
		}
		questions.AddRow(
			display.Cell{Text: row.DomainShort},
			display.Cell{Text: row.QuestionShort},
			display.Cell{Text: row.Question},
			display.Cell{Text: a, Color: c},
			display.Cell{Text: b, Color: c},
		)
	}
	questions.Render(w)
	fmt.Fprintln(w)

	verdicts := display.NewTable(
		display.Column{Header: "Domain"},
		display.Column{Header: "Name", MaxWidth: 48},
		display.Column{Header: r.AssessorA},
		display.Column{Header: r.AssessorB},
	)
	verdicts.SetHeaderColor(p.Heading())
	for _, pair := range r.Judgements {
		verdicts.AddRow(
			display.Cell{Text: pair.DomainShort},
			display.Cell{Text: pair.Domain},
			display.Cell{Text: pair.A.String(), Color: p.Verdict(pair.A)},
			display.Cell{Text: pair.B.String(), Color: p.Verdict(pair.B)},
		)
	}
	verdicts.AddRow(
		display.Cell{Text: ""},
		display.Cell{Text: "Overall"},
		display.Cell{Text: r.OverallA.String(), Color: p.Verdict(r.OverallA)},
		display.Cell{Text: r.OverallB.String(), Color: p.Verdict(r.OverallB)},
	)
	verdicts.Render(w)
	fmt.Fprintln(w)

	p.Heading().Fprintln(w, "Agreement:")
	fmt.Fprintf(w, "  Questions: %s\n", formatRate(ag.Questions))
	for _, d := range ag.Domains {
		fmt.Fprintf(w, "    %s: %s\n", d.DomainShort, formatRate(d.Rate))
	}
	fmt.Fprintf(w, "  Domain judgements: %s\n", formatRate(ag.Judgements))
}

func answerText(answer string, answered bool) string {
	if !answered {
		return notAnswered
	}
	return answer
}

func formatRate(r Rate) string {
	if r.Compared == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%% (%d/%d)", r.Percent, r.Agreed, r.Compared)
}
