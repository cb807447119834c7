package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harrison/rob/internal/display"
	"github.com/harrison/rob/internal/filestore"
	"github.com/harrison/rob/internal/summary"
	"github.com/harrison/rob/internal/watch"
	"github.com/spf13/cobra"
)

// NewSummaryCommand creates the 'rob summary' command
func NewSummaryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary [directory]",
		Short: "Summarise the judgements of every assessment in a directory",
		Long: `Load every assessment (*.json) in a directory and print a traffic-light
table of domain and overall judgements, one row per manuscript and assessor:

  +  Low      -  Some concerns      x  High      ?  Unknown

The directory defaults to assessments_dir from the configuration. Files that
cannot be read are skipped with a warning.

With --watch the table is printed again whenever an assessment changes, until
interrupted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSummary,
	}

	cmd.Flags().BoolP("recursive", "r", false, "Include assessments in subdirectories")
	cmd.Flags().BoolP("watch", "w", false, "Re-print the summary when assessments change")

	return cmd
}

func runSummary(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	dir := s.cfg.AssessmentsDir
	if len(args) == 1 {
		dir = args[0]
	}
	recursive, _ := cmd.Flags().GetBool("recursive")
	watching, _ := cmd.Flags().GetBool("watch")

	opts := filestore.ScanOptions{Recursive: recursive}
	if err := printSummary(cmd.OutOrStdout(), cmd.ErrOrStderr(), dir, opts); err != nil {
		return err
	}
	if !watching {
		return nil
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watchSummary(ctx, s, cmd.OutOrStdout(), cmd.ErrOrStderr(), dir, opts)
}

// printSummary loads dir and prints its summary table. Unreadable files are
// reported on errOut.
func printSummary(out, errOut io.Writer, dir string, opts filestore.ScanOptions) error {
	result, err := filestore.LoadDirectory(dir, opts)
	if err != nil {
		return err
	}

	if len(result.Failures) > 0 {
		problems := make([]display.FileProblem, len(result.Failures))
		for i, f := range result.Failures {
			problems[i] = display.FileProblem{Path: f.Path, Err: f.Err}
		}
		display.WarnSkippedFiles(problems).Display(errOut)
	}

	summary.Print(out, summary.Summarise(result.Frameworks()))
	return nil
}

// watchSummary re-prints the summary of dir after every debounced change
// until ctx is cancelled.
func watchSummary(ctx context.Context, s *session, out, errOut io.Writer, dir string, opts filestore.ScanOptions) error {
	w, err := watch.New(dir, watch.Options{Recursive: opts.Recursive, Debounce: s.cfg.WatchDebounce})
	if err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	defer w.Close()

	s.log.LogInfo(fmt.Sprintf("watching %s for changes (Ctrl+C to stop)", dir))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-w.Events():
			s.log.LogDebug(fmt.Sprintf("%s %s", ev.Path, ev.Op))
			fmt.Fprintf(out, "\n[%s] %s %s\n\n", ev.Timestamp.Format(time.TimeOnly), ev.Path, ev.Op)
			if err := printSummary(out, errOut, dir, opts); err != nil {
				s.log.LogError(err.Error())
			}
		case err := <-w.Errors():
			s.log.LogWarn(fmt.Sprintf("watch: %v", err))
		}
	}
}
