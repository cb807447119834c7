package cmd

import (
	"fmt"

	"github.com/harrison/rob/internal/display"
	"github.com/harrison/rob/internal/filestore"
	"github.com/harrison/rob/internal/models"
	"github.com/spf13/cobra"
)

// NewRecordCommand creates the 'rob record' command
func NewRecordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record <assessment.json> <question-id> <answer>",
		Short: "Record an answer to a signaling question",
		Long: `Record an answer to one question of an assessment and show the resulting
domain judgement.

The answer must be one of the question's allowed answers, for example
"Yes", "Probably Yes", "Probably No", "No", "No Information" or
"Not Applicable". A previous answer to the same question is replaced.`,
		Example: `  rob record smith-2020.json 1.1 "Probably Yes" --reasoning "central allocation"
  rob record smith-2020.json 2.1 No --evidence "p.4: double-blind" --evidence "p.7"`,
		Args: cobra.ExactArgs(3),
		RunE: runRecord,
	}

	cmd.Flags().String("reasoning", "", "Why this answer was chosen")
	cmd.Flags().StringArray("evidence", nil, "Supporting quotation (repeatable)")

	return cmd
}

func runRecord(cmd *cobra.Command, args []string) error {
	path, questionID, answer := args[0], args[1], args[2]

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	reasoning, _ := cmd.Flags().GetString("reasoning")
	evidence, _ := cmd.Flags().GetStringArray("evidence")

	fw, err := filestore.Update(path, func(fw *models.Framework) error {
		return fw.RecordResponse(questionID, answer, reasoning, evidence, nil)
	})
	if err != nil {
		return err
	}
	s.log.LogRecorded(questionID, answer)

	out := cmd.OutOrStdout()
	p := display.NewPalette(out)
	fmt.Fprintf(out, "Recorded %s = %q\n", questionID, answer)

	if d := domainOf(fw, questionID); d != nil {
		s.log.LogDomainJudgement(d)
		if models.HasJudgement(d.Kind) {
			v := d.Judgement()
			fmt.Fprintf(out, "%s %s: ", d.ShortName(), d.Name)
			p.Verdict(v).Fprintln(out, v.String())
		}
	}

	s.log.LogFrameworkJudgement(fw)
	overall := fw.Judgement()
	fmt.Fprint(out, "Overall: ")
	p.Verdict(overall).Fprintln(out, overall.String())
	return nil
}

// domainOf returns the domain holding the question with the given ID.
func domainOf(fw *models.Framework, questionID string) *models.Domain {
	for _, d := range fw.Domains {
		if d.Question(questionID) != nil {
			return d
		}
	}
	return nil
}
