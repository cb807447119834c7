package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/harrison/rob/internal/display"
	"github.com/harrison/rob/internal/parser"
	"github.com/spf13/cobra"
)

// NewValidateCommand creates and returns the validate subcommand
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <definition-file>...",
		Short: "Validate one or more framework definition files",
		Long: `Parse and validate framework definitions, checking for:
  - A framework name and at least one domain
  - Unique domain indices and question IDs
  - Known domain kinds
  - Questions with text and well-formed allowed answers

Supports Markdown (.md, .markdown) and YAML (.yaml, .yml) definitions.

Exit code: 0 if valid, 1 if errors found`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateDefinitions(args, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	return cmd
}

// validateDefinitions validates every file, reporting each result to output.
func validateDefinitions(paths []string, output io.Writer) error {
	failed := 0
	for _, path := range paths {
		if err := validateDefinition(path, output); err != nil {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("validation failed for %d of %d definitions", failed, len(paths))
	}
	return nil
}

// validateDefinition parses and validates a single definition file
func validateDefinition(path string, output io.Writer) error {
	p := display.NewPalette(output)

	fw, err := parser.ParseFile(path)
	if err != nil {
		p.Color(color.FgRed).Fprint(output, "✗")
		fmt.Fprintf(output, " %s: Validation failed\n", path)
		fmt.Fprintf(output, "    %v\n", err)
		return err
	}

	questions := 0
	for _, d := range fw.Domains {
		questions += len(d.Questions)
	}

	p.Color(color.FgGreen).Fprint(output, "✓")
	fmt.Fprintf(output, " %s: Definition is valid\n", path)
	fmt.Fprintf(output, "    %s: %d domains, %d questions\n", fw.Name, len(fw.Domains), questions)
	return nil
}
