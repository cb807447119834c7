package cmd

import (
	"fmt"

	"github.com/harrison/rob/internal/compare"
	"github.com/harrison/rob/internal/filestore"
	"github.com/spf13/cobra"
)

// NewCompareCommand creates the 'rob compare' command
func NewCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <a.json> <b.json>",
		Short: "Compare two assessments of the same manuscript",
		Long: `Compare the answers and judgements of two assessors side by side and report
their percentage agreement, per domain and overall.

Both assessments must use the same framework: the same domains, in the same
order, with the same questions.`,
		Args: cobra.ExactArgs(2),
		RunE: runCompare,
	}

	cmd.Flags().Bool("disagreements", false, "Only list questions the assessors answered differently")

	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	a, err := filestore.Load(args[0])
	if err != nil {
		return err
	}
	b, err := filestore.Load(args[1])
	if err != nil {
		return err
	}

	result, err := compare.Frameworks(a, b)
	if err != nil {
		return fmt.Errorf("cannot compare %s and %s: %w", args[0], args[1], err)
	}
	agreement := compare.ComputeAgreement(result)

	if only, _ := cmd.Flags().GetBool("disagreements"); only {
		result.Rows = result.Disagreements()
	}

	compare.Print(cmd.OutOrStdout(), result, agreement)
	s.log.LogDebug(fmt.Sprintf("compared %s with %s: %d of %d answers agree",
		result.AssessorA, result.AssessorB, agreement.Questions.Agreed, agreement.Questions.Compared))
	return nil
}
