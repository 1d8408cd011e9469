// Package batch drives the row-by-row rewriting of a product catalog. One
// runner owns one run at a time: it filters ineligible rows, paces API
// calls, retries transparently through the client, and aborts on errors
// that no retry can fix while keeping the progress made so far.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shoptext/descgen/catalog"
	"github.com/shoptext/descgen/llm"
	"github.com/shoptext/descgen/prompt"
	"github.com/shoptext/descgen/sanitize"
	"github.com/shoptext/descgen/sitemap"
)

var (
	ErrNoProducts         = errors.New("no products loaded")
	ErrNothingProcessable = errors.New("no processable products for the selected mode")
	ErrInvalidAPIKey      = errors.New("API key is missing or too short")
	ErrAlreadyRunning     = errors.New("a run is already in progress")
)

// Runner executes runs sequentially. Snapshot may be called from other
// goroutines while a run is in flight.
type Runner struct {
	client   *llm.Client
	opts     Options
	reporter Reporter
	logger   *slog.Logger

	mu         sync.Mutex
	state      State
	runID      string
	total      int
	processed  int
	succeeded  int
	skipped    int
	skippedBy  map[catalog.SkipReason]int
	failed     int
	withImages int
	sumLength  int
	startedAt  time.Time
	elapsed    time.Duration
	eta        time.Duration
	preview    []PreviewItem
	log        []LogEntry
}

// NewRunner creates an idle runner. A nil reporter discards events.
func NewRunner(client *llm.Client, opts Options, reporter Reporter) *Runner {
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Runner{
		client:   client,
		opts:     opts,
		reporter: reporter,
		logger:   slog.Default().With("component", "batch"),
		state:    StateIdle,
	}
}

// Run processes all products and returns the rewritten copies. The input
// slice is never mutated. On cancellation or a fatal API error the copies
// still carry every row finished up to that point, alongside the error.
func (r *Runner) Run(ctx context.Context, apiKey string, products []*catalog.Product) ([]*catalog.Product, error) {
	if len(products) == 0 {
		return nil, ErrNoProducts
	}
	if stats := catalog.CollectStats(products, r.opts.Mode); stats.Processable == 0 {
		return nil, ErrNothingProcessable
	}
	if !llm.ValidateKey(apiKey) {
		return nil, ErrInvalidAPIKey
	}
	if err := r.begin(len(products)); err != nil {
		return nil, err
	}

	results := catalog.CloneAll(products)
	total := len(results)

	for i, p := range results {
		if ctx.Err() != nil {
			return results, r.finish(StateCancelled, context.Cause(ctx))
		}

		r.reporter.RowStarted(i, total, p)

		if elig := catalog.Evaluate(p, r.opts.Mode); !elig.OK {
			r.recordRow(RowResult{
				Index:      i,
				Code:       p.Code,
				Name:       p.Name,
				Outcome:    OutcomeSkipped,
				SkipReason: elig.Reason,
			})
			continue
		}

		resp, err := r.client.Complete(ctx, apiKey, r.buildRequest(p), r.reporter.RateLimitWait)
		switch {
		case err != nil && llm.IsFatal(err):
			r.recordRow(RowResult{Index: i, Code: p.Code, Name: p.Name, Outcome: OutcomeFailed, Err: err})
			return results, r.finish(StateFailed, fmt.Errorf("run aborted at row %d: %w", i+1, err))
		case err != nil && ctx.Err() != nil:
			r.recordRow(RowResult{Index: i, Code: p.Code, Name: p.Name, Outcome: OutcomeFailed, Err: err})
			return results, r.finish(StateCancelled, context.Cause(ctx))
		case err != nil:
			r.recordRow(RowResult{Index: i, Code: p.Code, Name: p.Name, Outcome: OutcomeFailed, Err: err})
		default:
			original := p.TargetField(r.opts.Mode)
			text := sanitize.Normalize(resp.Text, r.opts.JustifyText)
			p.SetTargetField(r.opts.Mode, text)
			r.recordSuccess(i, p, original, text)
		}

		// Pace the API between calls. No pause after the final row.
		if i < total-1 {
			if err := r.pause(ctx); err != nil {
				return results, r.finish(StateCancelled, err)
			}
		}
	}

	return results, r.finish(StateCompleted, nil)
}

// buildRequest assembles the prompt for one row, folding in sitemap links
// when auto-linking is on.
func (r *Runner) buildRequest(p *catalog.Product) llm.Request {
	opts := r.opts.Prompt
	if r.opts.AutoLink.Enabled {
		links := sitemap.LinksForProduct(*p, r.opts.AutoLink.Brands, r.opts.AutoLink.Categories, r.opts.AutoLink.Links)
		opts.AutoLinkPhrases = sitemap.Phrases(links)
	}
	return prompt.Build(*p, r.opts.Mode, opts)
}

func (r *Runner) begin(total int) error {
	r.mu.Lock()
	if r.state == StateRunning {
		r.mu.Unlock()
		return ErrAlreadyRunning
	}
	r.state = StateRunning
	r.runID = uuid.NewString()
	r.total = total
	r.processed = 0
	r.succeeded = 0
	r.skipped = 0
	r.skippedBy = make(map[catalog.SkipReason]int)
	r.failed = 0
	r.withImages = 0
	r.sumLength = 0
	r.startedAt = time.Now()
	r.elapsed = 0
	r.eta = 0
	r.preview = nil
	r.log = nil
	runID := r.runID
	r.mu.Unlock()

	r.logger.Info("starting run", "run_id", runID, "total", total, "mode", string(r.opts.Mode))
	r.reporter.RunStarted(runID, total)
	return nil
}

// finish moves the runner to a terminal state and returns err unchanged so
// callers can hand both back in one statement.
func (r *Runner) finish(state State, err error) error {
	r.mu.Lock()
	r.state = state
	r.elapsed = time.Since(r.startedAt)
	r.mu.Unlock()

	if err != nil {
		r.appendLog(slog.LevelError, err.Error())
	}
	r.reporter.RunFinished(r.Snapshot())
	return err
}

func (r *Runner) recordSuccess(index int, p *catalog.Product, original, generated string) {
	r.mu.Lock()
	if p.Image != "" {
		r.withImages++
	}
	r.sumLength += catalog.TextLength(generated)
	if len(r.preview) < previewLimit {
		r.preview = append(r.preview, PreviewItem{
			Code:      p.Code,
			Name:      p.Name,
			Original:  original,
			Generated: generated,
		})
	}
	r.mu.Unlock()

	r.recordRow(RowResult{
		Index:   index,
		Code:    p.Code,
		Name:    p.Name,
		Outcome: OutcomeSuccess,
		Text:    generated,
	})
}

// recordRow updates counters, recomputes pace estimates and forwards the
// result to the reporter.
func (r *Runner) recordRow(result RowResult) {
	r.mu.Lock()
	r.processed++
	switch result.Outcome {
	case OutcomeSuccess:
		r.succeeded++
	case OutcomeSkipped:
		r.skipped++
		r.skippedBy[result.SkipReason]++
	case OutcomeFailed:
		r.failed++
	}
	r.elapsed = time.Since(r.startedAt)
	if r.processed > 0 {
		perRow := r.elapsed / time.Duration(r.processed)
		r.eta = perRow * time.Duration(r.total-r.processed)
	}
	r.mu.Unlock()

	switch result.Outcome {
	case OutcomeSuccess:
		r.appendLog(slog.LevelInfo, fmt.Sprintf("row %d (%s): generated", result.Index+1, result.Code))
	case OutcomeSkipped:
		r.appendLog(slog.LevelInfo, fmt.Sprintf("row %d (%s): skipped, %s", result.Index+1, result.Code, result.SkipReason))
	case OutcomeFailed:
		r.appendLog(slog.LevelWarn, fmt.Sprintf("row %d (%s): %v", result.Index+1, result.Code, result.Err))
	}
	r.reporter.RowFinished(result)
}

// appendLog keeps the most recent entries, dropping from the front.
func (r *Runner) appendLog(level slog.Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.log = append(r.log, LogEntry{Time: time.Now(), Level: level, Message: message})
	if len(r.log) > logLimit {
		r.log = r.log[len(r.log)-logLimit:]
	}
}

// pause sleeps out the inter-request delay unless the context ends first.
func (r *Runner) pause(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return context.Cause(ctx)
	case <-time.After(r.opts.requestDelay()):
		return nil
	}
}

// Snapshot returns a copy of the current progress.
func (r *Runner) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	elapsed := r.elapsed
	if r.state == StateRunning {
		elapsed = time.Since(r.startedAt)
	}
	avgLength := 0
	if r.succeeded > 0 {
		avgLength = r.sumLength / r.succeeded
	}
	skippedBy := make(map[catalog.SkipReason]int, len(r.skippedBy))
	for reason, n := range r.skippedBy {
		skippedBy[reason] = n
	}
	return Snapshot{
		RunID:           r.runID,
		State:           r.state,
		Total:           r.total,
		Processed:       r.processed,
		Succeeded:       r.succeeded,
		Skipped:         r.skipped,
		SkippedByReason: skippedBy,
		Failed:          r.failed,
		WithImages:      r.withImages,
		AvgLength:       avgLength,
		Elapsed:         elapsed,
		ETA:             r.eta,
		Preview:         append([]PreviewItem(nil), r.preview...),
		Log:             append([]LogEntry(nil), r.log...),
	}
}

// State returns the current lifecycle state.
func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Reset returns a finished runner to idle so it can be reused.
func (r *Runner) Reset() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StateRunning {
		return ErrAlreadyRunning
	}
	r.state = StateIdle
	r.runID = ""
	r.total = 0
	r.processed = 0
	r.succeeded = 0
	r.skipped = 0
	r.skippedBy = nil
	r.failed = 0
	r.withImages = 0
	r.sumLength = 0
	r.elapsed = 0
	r.eta = 0
	r.preview = nil
	r.log = nil
	return nil
}
