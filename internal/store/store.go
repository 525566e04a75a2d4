// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/wordlesolve/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for benchmark runs and games.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			dict_path TEXT NOT NULL,
			words INTEGER NOT NULL,
			workers INTEGER NOT NULL,
			wire INTEGER NOT NULL,
			tie_break TEXT NOT NULL,
			score INTEGER NOT NULL,
			failures INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS run_histogram (
			run_id INTEGER NOT NULL,
			guesses INTEGER NOT NULL,
			count INTEGER NOT NULL,
			PRIMARY KEY (run_id, guesses)
		);`,
		`CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			answer TEXT NOT NULL,
			rounds INTEGER NOT NULL,
			aborted INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ended_at ON runs(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_games_ended_at ON games(ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores a completed run and its histogram.
func (s *Store) InsertRun(ctx context.Context, run model.RunRecord, buckets []model.Bucket) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, ended_at, dict_path, words, workers, wire, tie_break, score, failures)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.Format(time.RFC3339Nano),
		run.EndedAt.Format(time.RFC3339Nano),
		run.DictPath,
		run.Words,
		run.Workers,
		boolToInt(run.Wire),
		run.TieBreak,
		run.Score,
		run.Failures,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(buckets) > 0 {
		var stmt *sql.Stmt
		stmt, err = tx.PrepareContext(ctx,
			`INSERT INTO run_histogram (run_id, guesses, count) VALUES (?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, b := range buckets {
			if _, err = stmt.ExecContext(ctx, id, b.Guesses, b.Count); err != nil {
				return 0, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListRuns returns the most recent runs, oldest first. A non-positive limit
// returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]model.RunRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, ended_at, dict_path, words, workers, wire, tie_break, score, failures
		FROM (SELECT * FROM runs ORDER BY ended_at DESC, id DESC LIMIT ?)
		ORDER BY ended_at ASC, id ASC`, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.RunRecord
	for rows.Next() {
		var run model.RunRecord
		var startedAt, endedAt string
		var wire int
		if err := rows.Scan(&run.ID, &startedAt, &endedAt, &run.DictPath, &run.Words, &run.Workers, &wire, &run.TieBreak, &run.Score, &run.Failures); err != nil {
			return nil, err
		}
		if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if run.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		run.Wire = wire != 0
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// GetRunHistogram returns a run's buckets in ascending guess order.
func (s *Store) GetRunHistogram(ctx context.Context, runID int64) ([]model.Bucket, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT guesses, count FROM run_histogram WHERE run_id = ? ORDER BY guesses ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var buckets []model.Bucket
	for rows.Next() {
		var b model.Bucket
		if err := rows.Scan(&b.Guesses, &b.Count); err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return buckets, nil
}

// GetRun loads a single run.
func (s *Store) GetRun(ctx context.Context, runID int64) (model.RunRecord, error) {
	var run model.RunRecord
	var startedAt, endedAt string
	var wire int
	err := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, ended_at, dict_path, words, workers, wire, tie_break, score, failures
		FROM runs WHERE id = ?`, runID).
		Scan(&run.ID, &startedAt, &endedAt, &run.DictPath, &run.Words, &run.Workers, &wire, &run.TieBreak, &run.Score, &run.Failures)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.RunRecord{}, fmt.Errorf("run %d not found", runID)
		}
		return model.RunRecord{}, err
	}
	if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return model.RunRecord{}, err
	}
	if run.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
		return model.RunRecord{}, err
	}
	run.Wire = wire != 0
	return run, nil
}

// InsertGame stores a finished interactive session.
func (s *Store) InsertGame(ctx context.Context, game model.GameRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO games (started_at, ended_at, answer, rounds, aborted) VALUES (?, ?, ?, ?, ?)`,
		game.StartedAt.Format(time.RFC3339Nano),
		game.EndedAt.Format(time.RFC3339Nano),
		game.Answer,
		game.Rounds,
		boolToInt(game.Aborted),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListGames returns the most recent games, oldest first.
func (s *Store) ListGames(ctx context.Context, limit int) ([]model.GameRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, ended_at, answer, rounds, aborted
		FROM (SELECT * FROM games ORDER BY ended_at DESC, id DESC LIMIT ?)
		ORDER BY ended_at ASC, id ASC`, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var games []model.GameRecord
	for rows.Next() {
		var game model.GameRecord
		var startedAt, endedAt string
		var aborted int
		if err := rows.Scan(&game.ID, &startedAt, &endedAt, &game.Answer, &game.Rounds, &aborted); err != nil {
			return nil, err
		}
		if game.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if game.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		game.Aborted = aborted != 0
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return games, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
