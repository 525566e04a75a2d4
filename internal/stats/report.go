package stats

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/verte-zerg/wordlesolve/internal/bench"
	"github.com/verte-zerg/wordlesolve/internal/model"
	"github.com/verte-zerg/wordlesolve/internal/store"
)

const trendWindow = 3

// RunReport pairs a stored run with its histogram.
type RunReport struct {
	Run       model.RunRecord
	Histogram *bench.Histogram
}

// BuildRunReports loads the most recent runs with their histograms.
func BuildRunReports(ctx context.Context, st *store.Store, limit int) ([]RunReport, error) {
	runs, err := st.ListRuns(ctx, limit)
	if err != nil {
		return nil, err
	}
	reports := make([]RunReport, 0, len(runs))
	for _, run := range runs {
		buckets, err := st.GetRunHistogram(ctx, run.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load histogram for run %d: %w", run.ID, err)
		}
		reports = append(reports, RunReport{Run: run, Histogram: bench.HistogramFromBuckets(buckets)})
	}
	return reports, nil
}

// RenderRuns prints one row per run and a score-per-word trend.
func RenderRuns(w io.Writer, reports []RunReport) error {
	if len(reports) == 0 {
		_, err := fmt.Fprintln(w, "No runs found.")
		return err
	}
	headers := []string{"ID", "Ended", "Words", "Workers", "Mode", "Tie", "Score", "Mean", "Fail", "Rounds"}
	rows := make([][]string, 0, len(reports))
	perWord := make([]float64, 0, len(reports))
	for _, r := range reports {
		mode := "direct"
		if r.Run.Wire {
			mode = "wire"
		}
		rows = append(rows, []string{
			strconv.FormatInt(r.Run.ID, 10),
			r.Run.EndedAt.Local().Format(timeLayout),
			strconv.Itoa(r.Run.Words),
			strconv.Itoa(r.Run.Workers),
			mode,
			r.Run.TieBreak,
			strconv.Itoa(r.Run.Score),
			fmt.Sprintf("%.2f", r.Histogram.Mean()),
			strconv.Itoa(r.Run.Failures),
			"[" + HistogramSparkline(r.Histogram) + "]",
		})
		if r.Run.Words > 0 {
			perWord = append(perWord, float64(r.Run.Score)/float64(r.Run.Words))
		}
	}
	rightAlign := map[int]bool{0: true, 2: true, 3: true, 6: true, 7: true, 8: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if len(perWord) > 1 {
		if _, err := fmt.Fprintf(w, "Score/word trend: [%s]\n", Sparkline(MovingAverage(perWord, trendWindow))); err != nil {
			return err
		}
	}
	return nil
}

// RenderGames prints stored interactive sessions and a short summary.
func RenderGames(w io.Writer, games []model.GameRecord) error {
	if len(games) == 0 {
		_, err := fmt.Fprintln(w, "No games found.")
		return err
	}
	headers := []string{"ID", "Ended", "Answer", "Rounds", "Status"}
	rows := make([][]string, 0, len(games))
	solved := bench.NewHistogram()
	for _, g := range games {
		answer, status := g.Answer, "solved"
		if g.Aborted {
			status = "aborted"
		} else {
			solved.Add(g.Rounds)
		}
		if answer == "" {
			answer = "-"
		}
		rows = append(rows, []string{
			strconv.FormatInt(g.ID, 10),
			g.EndedAt.Local().Format(timeLayout),
			answer,
			strconv.Itoa(g.Rounds),
			status,
		})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{0: true, 3: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Solved %d of %d, mean rounds %.2f\n", solved.Total(), len(games), solved.Mean())
	return err
}
