package cmd

import (
	"fmt"

	"github.com/harrison/rob/internal/display"
	"github.com/harrison/rob/internal/filestore"
	"github.com/spf13/cobra"
)

// NewJudgeCommand creates the 'rob judge' command
func NewJudgeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "judge <assessment.json>",
		Short: "Show the domain and overall judgements of an assessment",
		Long: `Evaluate the decision tree of every domain of an assessment and print the
per-domain judgements with the overall risk of bias.

Domains with unanswered questions on the decision path are judged Unknown,
and any Unknown domain makes the overall judgement Unknown.`,
		Args: cobra.ExactArgs(1),
		RunE: runJudge,
	}

	cmd.Flags().Bool("answers", false, "Also print every question with its recorded answer")

	return cmd
}

func runJudge(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	fw, err := filestore.Load(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	display.PrintJudgement(out, fw)

	if answers, _ := cmd.Flags().GetBool("answers"); answers {
		fmt.Fprintln(out)
		fmt.Fprint(out, fw.String())
	}

	for _, d := range fw.Domains {
		s.log.LogDomainJudgement(d)
	}
	s.log.LogFrameworkJudgement(fw)
	return nil
}
