package bench

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/verte-zerg/wordlesolve/internal/model"
	"github.com/verte-zerg/wordlesolve/internal/protocol"
	"github.com/verte-zerg/wordlesolve/internal/solver"
)

var testDict = []string{
	"apple", "angel", "knoll", "crane", "slate", "trace", "brink", "plumb",
	"ghost", "fjord", "vivid", "eerie", "llama", "mamma", "queen", "sassy",
	"shine", "spine", "swine", "whine", "badge", "cadge", "madge", "wedge",
	"baker", "maker", "taker", "waker", "fight", "light", "might", "night",
}

func TestScore(t *testing.T) {
	h := HistogramFrom(map[int]int{1: 0, 2: 0, 3: 2, 4: 1, 5: 0, 6: 0})
	if got := h.Score(); got != 25 {
		t.Fatalf("expected score 25, got %d", got)
	}
	h = HistogramFrom(map[int]int{0: 1, 1: 1, 6: 2, 7: 4})
	if got := h.Score(); got != 20 {
		t.Fatalf("expected score 20, got %d", got)
	}
}

func TestHistogramGetAndKeys(t *testing.T) {
	h := NewHistogram()
	h.Add(4)
	h.Add(2)
	h.Add(4)
	if h.Get(4) != 2 || h.Get(3) != 0 {
		t.Fatalf("unexpected counts %v", h.Counts())
	}
	if diff := cmp.Diff([]int{2, 4}, h.Keys()); diff != "" {
		t.Fatalf("unexpected keys (-want +got):\n%s", diff)
	}
	other := HistogramFrom(map[int]int{2: 1, 5: 1})
	h.Merge(other)
	if h.Total() != 5 || h.Get(2) != 2 {
		t.Fatalf("unexpected merge result %v", h.Counts())
	}
}

func TestHistogramBuckets(t *testing.T) {
	h := HistogramFrom(map[int]int{4: 1, 2: 3})
	want := []model.Bucket{{Guesses: 2, Count: 3}, {Guesses: 4, Count: 1}}
	if diff := cmp.Diff(want, h.Buckets()); diff != "" {
		t.Fatalf("unexpected buckets (-want +got):\n%s", diff)
	}
	back := HistogramFromBuckets(want)
	if diff := cmp.Diff(h.Counts(), back.Counts()); diff != "" {
		t.Fatalf("rebuilt histogram differs:\n%s", diff)
	}
	if got := h.Mean(); got != 2.5 {
		t.Fatalf("expected mean 2.5, got %v", got)
	}
	if got := NewHistogram().Mean(); got != 0 {
		t.Fatalf("expected zero mean for empty histogram, got %v", got)
	}
}

func TestRunTotalsIndependentOfWorkers(t *testing.T) {
	var want map[int]int
	for _, workers := range []int{1, 2, 3, 8, 64} {
		res, err := Run(context.Background(), testDict, Config{Workers: workers})
		if err != nil {
			t.Fatalf("workers=%d: run: %v", workers, err)
		}
		if len(res.Failures) != 0 {
			t.Fatalf("workers=%d: unexpected failures: %v", workers, res.Err())
		}
		if res.Histogram.Total() != len(testDict) {
			t.Fatalf("workers=%d: total %d, want %d", workers, res.Histogram.Total(), len(testDict))
		}
		if want == nil {
			want = res.Histogram.Counts()
			continue
		}
		if diff := cmp.Diff(want, res.Histogram.Counts()); diff != "" {
			t.Fatalf("workers=%d: histogram differs (-want +got):\n%s", workers, diff)
		}
	}
}

func TestRunDefaultsWorkers(t *testing.T) {
	res, err := Run(context.Background(), testDict[:4], Config{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Workers != DefaultWorkers {
		t.Fatalf("expected %d workers, got %d", DefaultWorkers, res.Workers)
	}
}

func TestRunWireMatchesInProcess(t *testing.T) {
	direct, err := Run(context.Background(), testDict, Config{Workers: 4})
	if err != nil {
		t.Fatalf("direct run: %v", err)
	}
	wire, err := Run(context.Background(), testDict, Config{Workers: 4, Wire: true})
	if err != nil {
		t.Fatalf("wire run: %v", err)
	}
	if len(wire.Failures) != 0 {
		t.Fatalf("unexpected wire failures: %v", wire.Err())
	}
	if diff := cmp.Diff(direct.Histogram.Counts(), wire.Histogram.Counts()); diff != "" {
		t.Fatalf("wire histogram differs (-direct +wire):\n%s", diff)
	}
}

func TestRunWritesProgress(t *testing.T) {
	var buf bytes.Buffer
	if _, err := Run(context.Background(), testDict[:8], Config{Workers: 1, Progress: &buf}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected progress output")
	}
}

func TestRunEmptyDictionary(t *testing.T) {
	if _, err := Run(context.Background(), nil, Config{}); err == nil {
		t.Fatalf("expected error for empty dictionary")
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := Run(ctx, testDict, Config{Workers: 2})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if res.Histogram.Total() > len(testDict) {
		t.Fatalf("cancelled run over-counted: %d", res.Histogram.Total())
	}
}

func TestCheckOutcome(t *testing.T) {
	if err := checkOutcome(solver.Outcome{Answer: "apple", Rounds: 2}, "apple"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := checkOutcome(solver.Outcome{Answer: "knoll"}, "apple"); !errors.Is(err, protocol.ErrMismatch) {
		t.Fatalf("expected ErrMismatch, got %v", err)
	}
	if err := checkOutcome(solver.Outcome{Aborted: true}, "apple"); !errors.Is(err, ErrUnsolved) {
		t.Fatalf("expected ErrUnsolved, got %v", err)
	}
}

func TestResultErrJoinsFailures(t *testing.T) {
	res := Result{Failures: []Failure{
		{Word: "apple", Err: protocol.ErrMismatch},
		{Word: "knoll", Err: solver.ErrEmptyCandidates},
	}}
	err := res.Err()
	if !errors.Is(err, protocol.ErrMismatch) || !errors.Is(err, solver.ErrEmptyCandidates) {
		t.Fatalf("joined error lost a cause: %v", err)
	}
	if (Result{}).Err() != nil {
		t.Fatalf("clean result should have no error")
	}
}
