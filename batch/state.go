package batch

import (
	"log/slog"
	"time"

	"github.com/shoptext/descgen/catalog"
)

// State describes where a runner is in its lifecycle.
type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateCancelled State = "cancelled"
	StateFailed    State = "failed"
)

// Outcome classifies what happened to a single row.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// RowResult reports the handling of one spreadsheet row. Index is zero
// based. SkipReason is set for skipped rows, Err for failed ones, Text for
// successes.
type RowResult struct {
	Index      int
	Code       string
	Name       string
	Outcome    Outcome
	SkipReason catalog.SkipReason
	Text       string
	Err        error
}

// PreviewItem shows one generated description next to its source text.
type PreviewItem struct {
	Code      string
	Name      string
	Original  string
	Generated string
}

// LogEntry is one line of the bounded run log.
type LogEntry struct {
	Time    time.Time
	Level   slog.Level
	Message string
}

// Buffer bounds keep long runs at constant memory. The preview holds the
// first successes, the log holds the most recent entries.
const (
	previewLimit = 10
	logLimit     = 50
)

// Snapshot is a point-in-time copy of run progress, safe to retain.
type Snapshot struct {
	RunID     string
	State     State
	Total     int
	Processed int
	Succeeded int
	Skipped   int
	Failed    int

	// SkippedByReason tallies skipped rows per reason.
	SkippedByReason map[catalog.SkipReason]int

	// WithImages counts successful rows whose product carries an image.
	WithImages int
	// AvgLength is the mean plain-text length of generated descriptions.
	AvgLength int

	Elapsed time.Duration
	// ETA estimates the remaining duration from the average pace so far.
	// Zero until the first row finishes.
	ETA time.Duration

	Preview []PreviewItem
	Log     []LogEntry
}
