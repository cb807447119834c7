package cmd

import (
	"fmt"
	"os"

	"github.com/harrison/rob/internal/filestore"
	"github.com/harrison/rob/internal/models"
	"github.com/harrison/rob/internal/parser"
	"github.com/harrison/rob/internal/rob2"
	"github.com/spf13/cobra"
)

// NewTemplateCommand creates the 'rob template' command
func NewTemplateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Create a blank assessment",
		Long: `Create a blank assessment for one manuscript.

By default the assessment uses the RoB2 tool for randomized trials. A custom
framework definition (Markdown or YAML) can be used instead with --definition.

The assessment is written to --output, or printed to stdout when no output
file is given. Existing files are not overwritten unless --force is set.`,
		Args: cobra.NoArgs,
		RunE: runTemplate,
	}

	cmd.Flags().String("definition", "", "Framework definition file (.md, .yaml)")
	cmd.Flags().StringP("output", "o", "", "Write the assessment to this file")
	cmd.Flags().String("manuscript", "", "Manuscript identifier")
	cmd.Flags().Bool("force", false, "Overwrite an existing output file")

	return cmd
}

func runTemplate(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	definition, _ := cmd.Flags().GetString("definition")
	output, _ := cmd.Flags().GetString("output")
	manuscript, _ := cmd.Flags().GetString("manuscript")
	force, _ := cmd.Flags().GetBool("force")

	var fw *models.Framework
	if definition == "" {
		fw = rob2.NewFramework()
	} else {
		fw, err = parser.ParseFile(definition)
		if err != nil {
			return err
		}
		s.log.LogDebug(fmt.Sprintf("loaded definition %s", definition))
	}
	fw.Manuscript = manuscript
	fw.Assessor = s.cfg.Assessor

	if output == "" {
		data, err := fw.MarshalIndent()
		if err != nil {
			return fmt.Errorf("encode assessment: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	if _, err := os.Stat(output); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", output)
	}
	if err := filestore.Save(output, fw); err != nil {
		return err
	}

	questions := 0
	for _, d := range fw.Domains {
		questions += len(d.Questions)
	}
	s.log.LogInfo(fmt.Sprintf("created assessment %s", output))
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s: %s (%d domains, %d questions)\n",
		output, fw.Name, len(fw.Domains), questions)
	return nil
}
