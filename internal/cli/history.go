package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/csheth/landing/internal/journal"
)

func newHistoryCmd(opts *options) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List prompts submitted from the hero page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if cfg.HistoryFile == "" {
				return errors.New("history: no history file configured (use --history or history_file)")
			}
			entries, err := journal.Load(cfg.HistoryFile)
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No prompts submitted yet.")
				return nil
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[len(entries)-limit:]
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Submitted", "Source", "Prompt")
			for _, entry := range entries {
				source := "typed"
				if entry.FromSuggestion {
					source = "suggestion"
				}
				table.Append(entry.SubmittedAt.Local().Format(time.DateTime), source, entry.Prompt)
			}
			if err := table.Render(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d prompts in %s\n", len(entries), cfg.HistoryFile)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "show only the most recent entries")
	return cmd
}
