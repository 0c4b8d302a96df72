package main

import (
	"fmt"
	"platodropbox/internal/config"
	"platodropbox/internal/core/domain/models"
	"platodropbox/internal/core/service"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:          "history",
		Short:        "Show the most recent entries of the sync journal",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := showHistory(cmd, opts, limit); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				return err
			}
			return nil
		},
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		fmt.Fprintf(c.ErrOrStderr(), "Error: %v\n", err)
		return err
	})

	cmd.Flags().IntVar(&limit, "limit", 20, "number of records to show")
	return cmd
}

func showHistory(cmd *cobra.Command, opts *rootOptions, limit int) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	opts.apply(cfg)

	if cfg.JournalType == config.JournalNone {
		fmt.Fprintln(cmd.OutOrStdout(), "journal is disabled (PLATO_DROPBOX_JOURNAL=none)")
		return nil
	}

	journal, err := service.CreateJournal(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer journal.Close()

	last, err := journal.LastRun(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read last run: %w", err)
	}
	if last != nil {
		fmt.Fprintln(cmd.OutOrStdout(), lastRunLine(last))
	}

	recs, err := journal.Recent(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to read journal: %w", err)
	}
	if len(recs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no sync history")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tOUTCOME\tNAME\tSIZE\tDETAIL")
	for _, r := range recs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			r.RecordedAt.Local().Format(time.DateTime), r.Outcome, r.Name, r.Size, r.Detail)
	}
	return tw.Flush()
}

func lastRunLine(run *models.SyncSummary) string {
	line := fmt.Sprintf("Last run %s: %d listed, %d downloaded, %d skipped, %d failed, %d ignored",
		run.FinishedAt.Local().Format(time.DateTime), run.Listed, run.Downloaded, run.Skipped, run.Failed, run.Ignored)
	if run.Cancelled {
		line += " (stopped early)"
	}
	return line
}
