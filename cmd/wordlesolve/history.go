package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordlesolve/internal/bench"
	"github.com/verte-zerg/wordlesolve/internal/config"
	"github.com/verte-zerg/wordlesolve/internal/stats"
	"github.com/verte-zerg/wordlesolve/internal/store"
)

const defaultHistoryLast = 20

var (
	historyGames bool
	historyRun   int64
	historyLast  int
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded benchmark runs and games",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().BoolVar(&historyGames, "games", false, "list interactive games instead of runs")
	cmd.Flags().Int64Var(&historyRun, "run", 0, "print the histogram of one run")
	cmd.Flags().IntVar(&historyLast, "last", defaultHistoryLast, "limit to the last N entries (0: all)")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	switch {
	case cmd.Flags().Changed("run"):
		run, err := st.GetRun(ctx, historyRun)
		if err != nil {
			return err
		}
		buckets, err := st.GetRunHistogram(ctx, run.ID)
		if err != nil {
			return fmt.Errorf("failed to load histogram: %w", err)
		}
		mode := "direct"
		if run.Wire {
			mode = "wire"
		}
		if _, err := fmt.Fprintf(out, "Run %d: %d words, %d workers, %s, tie-break %s, %d failures\n",
			run.ID, run.Words, run.Workers, mode, run.TieBreak, run.Failures); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return stats.RenderHistogram(out, bench.HistogramFromBuckets(buckets), 0, stats.ShouldUseColor(out, false))
	case historyGames:
		games, err := st.ListGames(ctx, historyLast)
		if err != nil {
			return fmt.Errorf("failed to list games: %w", err)
		}
		return stats.RenderGames(out, games)
	default:
		reports, err := stats.BuildRunReports(ctx, st, historyLast)
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}
		return stats.RenderRuns(out, reports)
	}
}
