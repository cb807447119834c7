package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/harrison/rob/internal/display"
	"github.com/harrison/rob/internal/filestore"
	"github.com/harrison/rob/internal/models"
	"github.com/harrison/rob/internal/store"
	"github.com/spf13/cobra"
)

// NewStoreCommand creates the 'rob store' command group
func NewStoreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Keep completed assessments in the local database",
		Long: `Save completed assessments to the SQLite database in the rob home, then list,
show or delete them.

The database location is store.db_path in the configuration (default
$ROB_HOME/rob.db) or ROB_DB_PATH.`,
	}

	cmd.AddCommand(newStoreSaveCommand())
	cmd.AddCommand(newStoreListCommand())
	cmd.AddCommand(newStoreShowCommand())
	cmd.AddCommand(newStoreDeleteCommand())

	return cmd
}

// openStore opens the configured assessment store.
func openStore(s *session) (*store.Store, error) {
	if !s.cfg.Store.Enabled {
		return nil, fmt.Errorf("assessment store is disabled (store.enabled: false)")
	}
	st, err := store.NewStore(s.cfg.Store.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open assessment store: %w", err)
	}
	s.log.LogDebug(fmt.Sprintf("opened assessment store %s", s.cfg.Store.DBPath))
	return st, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func newStoreSaveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "save <assessment.json>...",
		Short: "Save assessments to the store",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			st, err := openStore(s)
			if err != nil {
				return err
			}
			defer st.Close()

			ctx := commandContext(cmd)
			out := cmd.OutOrStdout()

			progress := display.NewProgressIndicator(out, len(args), "Saving")
			progress.Start()

			failed := 0
			for _, path := range args {
				progress.Step(path)
				id, err := saveAssessment(ctx, st, path)
				if err != nil {
					progress.Fail(err)
					s.log.LogError(fmt.Sprintf("save %s: %v", path, err))
					failed++
					continue
				}
				fmt.Fprintf(out, "        id: %s\n", id)
				s.log.LogInfo(fmt.Sprintf("stored %s as %s", path, id))
			}
			progress.Complete()

			if failed > 0 {
				return fmt.Errorf("%d of %d assessments could not be saved", failed, len(args))
			}
			return nil
		},
	}
}

func saveAssessment(ctx context.Context, st *store.Store, path string) (string, error) {
	fw, err := filestore.Load(path)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return st.Save(ctx, fw, abs)
}

func newStoreListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored assessments, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			st, err := openStore(s)
			if err != nil {
				return err
			}
			defer st.Close()

			ctx := commandContext(cmd)
			out := cmd.OutOrStdout()

			records, err := st.List(ctx)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(out, "No stored assessments.")
				return nil
			}

			p := display.NewPalette(out)
			table := display.NewTable(
				display.Column{Header: "ID"},
				display.Column{Header: "Manuscript", MaxWidth: 32},
				display.Column{Header: "Assessor", MaxWidth: 20},
				display.Column{Header: "Overall"},
				display.Column{Header: "Saved"},
			)
			table.SetHeaderColor(p.Heading())
			for _, rec := range records {
				table.AddRow(
					display.Cell{Text: shortID(rec.ID)},
					display.Cell{Text: rec.Manuscript},
					display.Cell{Text: rec.Assessor},
					display.Cell{Text: rec.Judgement.String(), Color: p.Verdict(rec.Judgement)},
					display.Cell{Text: rec.CreatedAt.Local().Format("2006-01-02 15:04")},
				)
			}
			table.Render(out)

			counts, err := st.VerdictCounts(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\n%d assessments:", len(records))
			for _, v := range []models.Verdict{models.VerdictLow, models.VerdictSomeConcerns, models.VerdictHigh, models.VerdictUnknown} {
				fmt.Fprintf(out, "  %s %d", v, counts[v])
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}

func newStoreShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a stored assessment (full ID or unique prefix)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			st, err := openStore(s)
			if err != nil {
				return err
			}
			defer st.Close()

			rec, err := st.Get(commandContext(cmd), args[0])
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no stored assessment matches %q", args[0])
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID: %s\n", rec.ID)
			if rec.SourcePath != "" {
				fmt.Fprintf(out, "Source: %s\n", rec.SourcePath)
			}
			fmt.Fprintf(out, "Saved: %s\n", rec.CreatedAt.Local().Format("2006-01-02 15:04:05"))
			fmt.Fprintf(out, "Stored judgement: %s\n\n", rec.Judgement)
			display.PrintJudgement(out, rec.Document)
			return nil
		},
	}
}

func newStoreDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored assessment (full ID or unique prefix)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			st, err := openStore(s)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Delete(commandContext(cmd), args[0]); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("no stored assessment matches %q", args[0])
				}
				return err
			}
			s.log.LogInfo(fmt.Sprintf("deleted stored assessment %s", args[0]))
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

// shortID returns the first eight characters of a UUID, enough for a unique
// prefix in practice.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
