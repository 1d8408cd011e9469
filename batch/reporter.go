package batch

import (
	"log/slog"

	"github.com/shoptext/descgen/catalog"
)

// Reporter receives run events as they happen. Implementations must be fast;
// calls are made inline from the processing loop.
type Reporter interface {
	RunStarted(runID string, total int)
	RowStarted(index, total int, p *catalog.Product)
	RowFinished(result RowResult)
	// RateLimitWait fires before the runner sleeps out an API backoff.
	RateLimitWait(waitSeconds, attempt, maxAttempts int)
	RunFinished(snap Snapshot)
}

// NopReporter discards all events.
type NopReporter struct{}

func (NopReporter) RunStarted(string, int)                {}
func (NopReporter) RowStarted(int, int, *catalog.Product) {}
func (NopReporter) RowFinished(RowResult)                 {}
func (NopReporter) RateLimitWait(int, int, int)           {}
func (NopReporter) RunFinished(Snapshot)                  {}

// SlogReporter logs run events through a structured logger.
type SlogReporter struct {
	logger *slog.Logger
}

func NewSlogReporter(logger *slog.Logger) *SlogReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogReporter{logger: logger}
}

func (r *SlogReporter) RunStarted(runID string, total int) {
	r.logger.Info("run started", "run_id", runID, "total", total)
}

func (r *SlogReporter) RowStarted(index, total int, p *catalog.Product) {
	r.logger.Debug("processing row",
		"row", index+1,
		"total", total,
		"code", p.Code,
		"name", p.Name)
}

func (r *SlogReporter) RowFinished(result RowResult) {
	switch result.Outcome {
	case OutcomeSuccess:
		r.logger.Info("row done", "row", result.Index+1, "code", result.Code)
	case OutcomeSkipped:
		r.logger.Info("row skipped",
			"row", result.Index+1,
			"code", result.Code,
			"reason", result.SkipReason.String())
	case OutcomeFailed:
		r.logger.Warn("row failed",
			"row", result.Index+1,
			"code", result.Code,
			"error", result.Err)
	}
}

func (r *SlogReporter) RateLimitWait(waitSeconds, attempt, maxAttempts int) {
	r.logger.Warn("rate limited, waiting",
		"wait_seconds", waitSeconds,
		"attempt", attempt,
		"max_attempts", maxAttempts)
}

func (r *SlogReporter) RunFinished(snap Snapshot) {
	r.logger.Info("run finished",
		"run_id", snap.RunID,
		"state", string(snap.State),
		"succeeded", snap.Succeeded,
		"skipped", snap.Skipped,
		"failed", snap.Failed,
		"elapsed", snap.Elapsed)
}
