// Package bench runs the solver once per dictionary word across a worker
// pool and tallies how many rounds each word took.
package bench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/wordlesolve/internal/protocol"
	"github.com/verte-zerg/wordlesolve/internal/solver"
)

// DefaultWorkers is the pool size used when Config.Workers is not set.
const DefaultWorkers = 8

// ErrUnsolved reports a session that ended without an answer.
var ErrUnsolved = errors.New("session ended unsolved")

// Config controls a benchmark run.
type Config struct {
	Workers  int
	TieBreak solver.TieBreak
	// Wire sends every session through the line protocol over pipes instead
	// of calling the comparator directly.
	Wire bool
	// Progress receives a progress bar when non-nil.
	Progress io.Writer
}

// Failure is a word whose session violated the protocol.
type Failure struct {
	Word string
	Err  error
}

// Result is the aggregate of a run.
type Result struct {
	Histogram *Histogram
	Failures  []Failure
	Words     int
	Workers   int
	Elapsed   time.Duration
}

// Err joins every failure into one error, nil when the run was clean.
func (r Result) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, fmt.Errorf("%s: %w", f.Word, f.Err))
	}
	return errors.Join(errs...)
}

// Run evaluates every word of dict as the secret exactly once. Workers pull
// from one shared queue and keep private histograms that are merged after
// all of them finish. A failing word is recorded and never counted.
func Run(ctx context.Context, dict []string, cfg Config) (Result, error) {
	if len(dict) == 0 {
		return Result{}, fmt.Errorf("dictionary is empty")
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	queue := make(chan string, len(dict))
	for _, word := range dict {
		queue <- word
	}
	close(queue)

	bar := newProgress(cfg.Progress, len(dict))
	started := time.Now()

	var (
		mu       sync.Mutex
		failures []Failure
	)
	locals := make([]*Histogram, workers)
	g, gctx := errgroup.WithContext(ctx)
	for i := range locals {
		local := NewHistogram()
		locals[i] = local
		g.Go(func() error {
			for word := range queue {
				if err := gctx.Err(); err != nil {
					return err
				}
				rounds, err := evaluate(gctx, dict, word, cfg)
				if err != nil {
					mu.Lock()
					failures = append(failures, Failure{Word: word, Err: err})
					mu.Unlock()
				} else {
					local.Add(rounds)
				}
				if bar != nil {
					_ = bar.Add(1)
				}
			}
			return nil
		})
	}
	err := g.Wait()
	if bar != nil {
		_ = bar.Finish()
	}

	hist := NewHistogram()
	for _, local := range locals {
		hist.Merge(local)
	}
	sort.Slice(failures, func(i, j int) bool {
		return failures[i].Word < failures[j].Word
	})
	res := Result{
		Histogram: hist,
		Failures:  failures,
		Words:     len(dict),
		Workers:   workers,
		Elapsed:   time.Since(started),
	}
	if err != nil {
		return res, fmt.Errorf("benchmark interrupted: %w", err)
	}
	return res, nil
}

func newProgress(w io.Writer, total int) *progressbar.ProgressBar {
	if w == nil {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("solving"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

func evaluate(ctx context.Context, dict []string, secret string, cfg Config) (int, error) {
	s, err := solver.NewSession(dict, solver.WithStrict(), solver.WithTieBreak(cfg.TieBreak))
	if err != nil {
		return 0, err
	}
	if cfg.Wire {
		return evaluateWire(ctx, s, secret)
	}
	out, err := s.Run(ctx, solver.SecretOracle{Secret: secret})
	if err != nil {
		return 0, err
	}
	if err := checkOutcome(out, secret); err != nil {
		return 0, err
	}
	return out.Rounds, nil
}

func checkOutcome(out solver.Outcome, secret string) error {
	if out.Aborted || out.Answer == "" {
		return ErrUnsolved
	}
	if out.Answer != secret {
		return fmt.Errorf("%w: got %q, want %q", protocol.ErrMismatch, out.Answer, secret)
	}
	return nil
}

type served struct {
	transcript protocol.Transcript
	err        error
}

// evaluateWire connects the session to protocol.Serve through two pipes.
// The round count is taken from the oracle side, one per prompt answered.
func evaluateWire(ctx context.Context, s *solver.Session, secret string) (int, error) {
	toOracle, solverOut := io.Pipe()
	fromOracle, oracleOut := io.Pipe()

	done := make(chan served, 1)
	go func() {
		t, err := protocol.Serve(ctx, toOracle, oracleOut, secret)
		oracleOut.CloseWithError(closeReason(err))
		toOracle.CloseWithError(closeReason(err))
		done <- served{transcript: t, err: err}
	}()

	out, runErr := s.Run(ctx, protocol.NewConsole(fromOracle, solverOut))
	solverOut.CloseWithError(closeReason(runErr))
	res := <-done

	if runErr != nil {
		if res.err != nil && !errors.Is(res.err, io.ErrUnexpectedEOF) {
			return 0, fmt.Errorf("%w (oracle: %v)", runErr, res.err)
		}
		return 0, runErr
	}
	if res.err != nil {
		return 0, res.err
	}
	if err := checkOutcome(out, secret); err != nil {
		return 0, err
	}
	return res.transcript.Prompts, nil
}

func closeReason(err error) error {
	if err == nil {
		return io.EOF
	}
	return err
}
