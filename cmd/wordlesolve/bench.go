package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordlesolve/internal/bench"
	"github.com/verte-zerg/wordlesolve/internal/config"
	"github.com/verte-zerg/wordlesolve/internal/generator"
	"github.com/verte-zerg/wordlesolve/internal/model"
	"github.com/verte-zerg/wordlesolve/internal/solver"
	"github.com/verte-zerg/wordlesolve/internal/stats"
	"github.com/verte-zerg/wordlesolve/internal/store"
	"github.com/verte-zerg/wordlesolve/internal/wordlist"
)

var (
	benchDict       string
	benchTieBreak   string
	benchWorkers    int
	benchWire       bool
	benchSample     int
	benchSeed       int64
	benchNoProgress bool
	benchNoSave     bool
)

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Solve every dictionary word and report the rounds histogram",
		Args:  cobra.NoArgs,
		RunE:  runBenchCmd,
	}
	cmd.Flags().StringVar(&benchDict, "dict", "", "dictionary path (default: "+config.DefaultDictPath()+")")
	cmd.Flags().StringVar(&benchTieBreak, "tie-break", defaultTieBreak, "guess tie-break: first or lexical")
	cmd.Flags().IntVar(&benchWorkers, "workers", bench.DefaultWorkers, "concurrent sessions")
	cmd.Flags().BoolVar(&benchWire, "wire", false, "drive every session through the line protocol")
	cmd.Flags().IntVar(&benchSample, "sample", 0, "evaluate a random subset of N words (0: all)")
	cmd.Flags().Int64Var(&benchSeed, "seed", 0, "sample seed (0: random)")
	cmd.Flags().BoolVar(&benchNoProgress, "no-progress", false, "hide the progress bar")
	cmd.Flags().BoolVar(&benchNoSave, "no-save", false, "do not record the run")
	return cmd
}

func runBenchCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "dict", &benchDict, fileCfg.Solver.Dict)
	applyStringConfig(cmd, "tie-break", &benchTieBreak, fileCfg.Solver.TieBreak)
	applyIntConfig(cmd, "workers", &benchWorkers, fileCfg.Bench.Workers)
	applyBoolConfig(cmd, "wire", &benchWire, fileCfg.Bench.Wire)
	applyNegatedBoolConfig(cmd, "no-progress", &benchNoProgress, fileCfg.Bench.Progress)
	applyNegatedBoolConfig(cmd, "no-save", &benchNoSave, fileCfg.Bench.Save)

	cfg := model.BenchConfig{
		DictPath: resolveDictPath(benchDict),
		TieBreak: benchTieBreak,
		Workers:  benchWorkers,
		Wire:     benchWire,
		Sample:   benchSample,
		Seed:     benchSeed,
		Progress: !benchNoProgress,
		Save:     !benchNoSave,
	}
	if err := validateBenchConfig(cfg); err != nil {
		return err
	}
	tie, err := solver.ParseTieBreak(cfg.TieBreak)
	if err != nil {
		return fmt.Errorf("invalid --tie-break: %w", err)
	}
	dict, err := wordlist.LoadDictionary(cfg.DictPath, solver.WordLength)
	if err != nil {
		return dictLoadError(cfg.DictPath, err)
	}
	dict = generator.New(cfg.Seed).Sample(dict, cfg.Sample)

	runCfg := bench.Config{
		Workers:  cfg.Workers,
		TieBreak: tie,
		Wire:     cfg.Wire,
	}
	if cfg.Progress {
		runCfg.Progress = os.Stderr
	}
	startedAt := time.Now()
	res, err := bench.Run(cmd.Context(), dict, runCfg)
	if err != nil {
		return err
	}
	endedAt := time.Now()

	out := cmd.OutOrStdout()
	if err := stats.RenderHistogram(out, res.Histogram, 0, stats.ShouldUseColor(out, false)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if _, err := fmt.Fprintf(out, "Solved %d of %d words with %d workers in %s\n",
		res.Histogram.Total(), res.Words, res.Workers, res.Elapsed.Round(time.Millisecond)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if cfg.Save {
		run := model.RunRecord{
			StartedAt: startedAt,
			EndedAt:   endedAt,
			DictPath:  cfg.DictPath,
			Words:     res.Words,
			Workers:   res.Workers,
			Wire:      cfg.Wire,
			TieBreak:  tie.String(),
			Score:     res.Histogram.Score(),
			Failures:  len(res.Failures),
		}
		if err := saveRun(cmd.Context(), run, res.Histogram); err != nil {
			logErrf("failed to save run: %v\n", err)
		}
	}

	if len(res.Failures) > 0 {
		for _, f := range res.Failures {
			logErrf("failed: %s: %v\n", f.Word, f.Err)
		}
		return fmt.Errorf("%d of %d words failed", len(res.Failures), res.Words)
	}
	return nil
}

func saveRun(ctx context.Context, run model.RunRecord, hist *bench.Histogram) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	id, err := st.InsertRun(context.WithoutCancel(ctx), run, hist.Buckets())
	if err != nil {
		return err
	}
	logErrf("Saved run %d\n", id)
	return nil
}

func validateBenchConfig(cfg model.BenchConfig) error {
	if cfg.Workers <= 0 {
		return fmt.Errorf("--workers must be > 0")
	}
	if cfg.Sample < 0 {
		return fmt.Errorf("--sample must be >= 0")
	}
	return nil
}
