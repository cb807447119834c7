package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for rob
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rob",
		Short: "Risk-of-bias assessment with RoB2 judgement algorithms",
		Long: `rob records answers to the RoB2 signaling questions for randomized trials,
derives domain and overall risk-of-bias judgements from the published decision
trees, and compares and summarises assessments across reviewers.

Assessments are JSON documents created with 'rob template' and filled in with
'rob record'. Configuration is loaded from $ROB_HOME/config.yaml if present.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error (overrides config)")
	cmd.PersistentFlags().String("assessor", "", "Assessor name (overrides config)")

	cmd.AddCommand(NewTemplateCommand())
	cmd.AddCommand(NewRecordCommand())
	cmd.AddCommand(NewJudgeCommand())
	cmd.AddCommand(NewSummaryCommand())
	cmd.AddCommand(NewCompareCommand())
	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewStoreCommand())

	return cmd
}
