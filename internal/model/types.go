// Package model defines shared data structures.
package model

import "time"

// PlayConfig defines interactive session settings.
type PlayConfig struct {
	DictPath string
	TieBreak string
	TUI      bool
	Save     bool
}

// BenchConfig defines batch harness settings.
type BenchConfig struct {
	DictPath string
	TieBreak string
	Workers  int
	Wire     bool
	Sample   int
	Seed     int64
	Progress bool
	Save     bool
}

// RunRecord captures a completed benchmark run.
type RunRecord struct {
	ID        int64
	StartedAt time.Time
	EndedAt   time.Time
	DictPath  string
	Words     int
	Workers   int
	Wire      bool
	TieBreak  string
	Score     int
	Failures  int
}

// Bucket is one histogram row: words that took Guesses rounds.
type Bucket struct {
	Guesses int
	Count   int
}

// GameRecord captures an interactive session.
type GameRecord struct {
	ID        int64
	StartedAt time.Time
	EndedAt   time.Time
	Answer    string
	Rounds    int
	Aborted   bool
}
