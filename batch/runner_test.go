package batch_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoptext/descgen/batch"
	"github.com/shoptext/descgen/catalog"
	"github.com/shoptext/descgen/llm"
	_ "github.com/shoptext/descgen/llm/providers"
	"github.com/shoptext/descgen/prompt"
)

const testAPIKey = "sk-ant-test-key-0123456789"

// scriptedServer answers each request with the next scripted step.
type scriptedServer struct {
	*httptest.Server

	mu    sync.Mutex
	steps []step
	calls int
}

type step struct {
	status int
	text   string
}

func newScriptedServer(t *testing.T, steps ...step) *scriptedServer {
	t.Helper()
	s := &scriptedServer{steps: steps}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		idx := s.calls
		s.calls++
		s.mu.Unlock()

		st := step{status: http.StatusOK, text: "<p>Generated.</p>"}
		if idx < len(s.steps) {
			st = s.steps[idx]
		}

		w.WriteHeader(st.status)
		if st.status == http.StatusOK {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"content": []map[string]any{{"type": "text", "text": st.text}},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": http.StatusText(st.status)},
		})
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *scriptedServer) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func ok(text string) step {
	return step{status: http.StatusOK, text: text}
}

func newTestRunner(t *testing.T, srv *scriptedServer, reporter batch.Reporter) *batch.Runner {
	t.Helper()
	client, err := llm.New("anthropic",
		llm.WithBaseURL(srv.URL),
		llm.WithHTTPClient(srv.Client()),
		llm.WithRetryConfig(llm.RetryConfig{
			MaxRetries:        3,
			BackoffBase:       time.Millisecond,
			BackoffMultiplier: 2,
		}),
	)
	require.NoError(t, err)

	return batch.NewRunner(client, batch.Options{
		Mode:         catalog.ModeShort,
		Prompt:       prompt.Options{Tone: prompt.ToneNeutral},
		RequestDelay: time.Millisecond,
	}, reporter)
}

// eligibleProduct builds a short-mode processable product.
func eligibleProduct(code string) *catalog.Product {
	return &catalog.Product{
		Code:        code,
		Name:        "Produkt " + code,
		Description: strings.Repeat("Dlouhý popis produktu s detaily. ", 5),
	}
}

// recordingReporter captures events for assertions.
type recordingReporter struct {
	batch.NopReporter

	mu       sync.Mutex
	started  []int
	finished []batch.RowResult
	final    *batch.Snapshot
	onRow    func(result batch.RowResult)
}

func (r *recordingReporter) RowStarted(index, total int, p *catalog.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = append(r.started, index)
}

func (r *recordingReporter) RowFinished(result batch.RowResult) {
	r.mu.Lock()
	r.finished = append(r.finished, result)
	hook := r.onRow
	r.mu.Unlock()
	if hook != nil {
		hook(result)
	}
}

func (r *recordingReporter) RunFinished(snap batch.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.final = &snap
}

func TestRunner_Run_MixedRows(t *testing.T) {
	srv := newScriptedServer(t,
		ok("<p>První nový popis.</p>"),
		ok("<p>Druhý nový popis.</p>"),
	)
	reporter := &recordingReporter{}
	runner := newTestRunner(t, srv, reporter)

	products := []*catalog.Product{
		eligibleProduct("A"),
		{Code: "B", Name: "Bez popisu"},
		eligibleProduct("C"),
		{Code: "D", Name: "Krátký popis", Description: "málo textu"},
	}

	results, err := runner.Run(context.Background(), testAPIKey, products)
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, 2, srv.callCount(), "ineligible rows must not hit the API")
	assert.Equal(t, "<p>První nový popis.</p>", results[0].ShortDescription)
	assert.Empty(t, results[1].ShortDescription)
	assert.Equal(t, "<p>Druhý nový popis.</p>", results[2].ShortDescription)
	assert.Empty(t, results[3].ShortDescription)

	// Inputs stay untouched.
	assert.Empty(t, products[0].ShortDescription)

	snap := runner.Snapshot()
	assert.Equal(t, batch.StateCompleted, snap.State)
	assert.Equal(t, 4, snap.Total)
	assert.Equal(t, 4, snap.Processed)
	assert.Equal(t, 2, snap.Succeeded)
	assert.Equal(t, 2, snap.Skipped)
	assert.Equal(t, map[catalog.SkipReason]int{
		catalog.SkipEmptyDescription: 1,
		catalog.SkipShortDescription: 1,
	}, snap.SkippedByReason)
	assert.Equal(t, 0, snap.Failed)
	assert.NotEmpty(t, snap.RunID)
	// Both generated texts are 17 characters without tags.
	assert.Equal(t, 17, snap.AvgLength)
	assert.Equal(t, 0, snap.WithImages)

	assert.Equal(t, []int{0, 1, 2, 3}, reporter.started)
	require.Len(t, reporter.finished, 4)
	assert.Equal(t, batch.OutcomeSuccess, reporter.finished[0].Outcome)
	assert.Equal(t, batch.OutcomeSkipped, reporter.finished[1].Outcome)
	assert.Equal(t, catalog.SkipEmptyDescription, reporter.finished[1].SkipReason)
	assert.Equal(t, batch.OutcomeSuccess, reporter.finished[2].Outcome)
	assert.Equal(t, batch.OutcomeSkipped, reporter.finished[3].Outcome)
	assert.Equal(t, catalog.SkipShortDescription, reporter.finished[3].SkipReason)
	require.NotNil(t, reporter.final)
	assert.Equal(t, batch.StateCompleted, reporter.final.State)
}

func TestRunner_Run_FatalErrorAborts(t *testing.T) {
	srv := newScriptedServer(t,
		ok("<p>První.</p>"),
		ok("<p>Druhá.</p>"),
		step{status: http.StatusUnauthorized},
	)
	reporter := &recordingReporter{}
	runner := newTestRunner(t, srv, reporter)

	products := []*catalog.Product{
		eligibleProduct("A"),
		eligibleProduct("B"),
		eligibleProduct("C"),
		eligibleProduct("D"),
		eligibleProduct("E"),
	}

	results, err := runner.Run(context.Background(), testAPIKey, products)
	require.Error(t, err)
	assert.True(t, llm.IsFatal(err))
	assert.Contains(t, err.Error(), "row 3")

	// Finished rows keep their text, later rows are untouched.
	require.Len(t, results, 5)
	assert.Equal(t, "<p>První.</p>", results[0].ShortDescription)
	assert.Equal(t, "<p>Druhá.</p>", results[1].ShortDescription)
	assert.Empty(t, results[2].ShortDescription)
	assert.Empty(t, results[3].ShortDescription)
	assert.Empty(t, results[4].ShortDescription)

	assert.Equal(t, 3, srv.callCount(), "rows after the fatal error must not hit the API")

	snap := runner.Snapshot()
	assert.Equal(t, batch.StateFailed, snap.State)
	assert.Equal(t, 3, snap.Processed)
	assert.Equal(t, 2, snap.Succeeded)
	assert.Equal(t, 1, snap.Failed)
}

func TestRunner_Run_NonFatalErrorContinues(t *testing.T) {
	srv := newScriptedServer(t,
		ok("[NELZE_ZPRACOVAT]"),
		ok("<p>Druhá.</p>"),
	)
	runner := newTestRunner(t, srv, nil)

	products := []*catalog.Product{
		eligibleProduct("A"),
		eligibleProduct("B"),
	}

	results, err := runner.Run(context.Background(), testAPIKey, products)
	require.NoError(t, err)

	assert.Empty(t, results[0].ShortDescription)
	assert.Equal(t, "<p>Druhá.</p>", results[1].ShortDescription)

	snap := runner.Snapshot()
	assert.Equal(t, batch.StateCompleted, snap.State)
	assert.Equal(t, 1, snap.Succeeded)
	assert.Equal(t, 1, snap.Failed)
}

func TestRunner_Run_BoundedBuffers(t *testing.T) {
	srv := newScriptedServer(t)
	runner := newTestRunner(t, srv, nil)

	products := make([]*catalog.Product, 60)
	for i := range products {
		products[i] = eligibleProduct(fmt.Sprintf("P%02d", i))
	}

	_, err := runner.Run(context.Background(), testAPIKey, products)
	require.NoError(t, err)

	snap := runner.Snapshot()
	assert.Equal(t, 60, snap.Succeeded)

	// Preview keeps the first successes, the log keeps the latest entries.
	require.Len(t, snap.Preview, 10)
	assert.Equal(t, "P00", snap.Preview[0].Code)
	assert.Equal(t, "P09", snap.Preview[9].Code)

	require.Len(t, snap.Log, 50)
	assert.Contains(t, snap.Log[0].Message, "row 11")
	assert.Contains(t, snap.Log[49].Message, "row 60")
}

func TestRunner_Run_CancellationPreservesProgress(t *testing.T) {
	srv := newScriptedServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	reporter := &recordingReporter{}
	reporter.onRow = func(result batch.RowResult) {
		if result.Index == 1 {
			cancel()
		}
	}
	runner := newTestRunner(t, srv, reporter)

	products := []*catalog.Product{
		eligibleProduct("A"),
		eligibleProduct("B"),
		eligibleProduct("C"),
		eligibleProduct("D"),
	}

	results, err := runner.Run(ctx, testAPIKey, products)
	require.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, "<p>Generated.</p>", results[0].ShortDescription)
	assert.Equal(t, "<p>Generated.</p>", results[1].ShortDescription)
	assert.Empty(t, results[2].ShortDescription)
	assert.Empty(t, results[3].ShortDescription)

	snap := runner.Snapshot()
	assert.Equal(t, batch.StateCancelled, snap.State)
	assert.Equal(t, 2, snap.Succeeded)
}

func TestRunner_Run_Validation(t *testing.T) {
	srv := newScriptedServer(t)
	runner := newTestRunner(t, srv, nil)

	t.Run("no products", func(t *testing.T) {
		_, err := runner.Run(context.Background(), testAPIKey, nil)
		assert.ErrorIs(t, err, batch.ErrNoProducts)
	})

	t.Run("nothing processable", func(t *testing.T) {
		_, err := runner.Run(context.Background(), testAPIKey, []*catalog.Product{
			{Code: "A", Name: "Bez popisu"},
		})
		assert.ErrorIs(t, err, batch.ErrNothingProcessable)
	})

	t.Run("invalid api key", func(t *testing.T) {
		_, err := runner.Run(context.Background(), "short", []*catalog.Product{
			eligibleProduct("A"),
		})
		assert.ErrorIs(t, err, batch.ErrInvalidAPIKey)
	})

	assert.Equal(t, 0, srv.callCount())
	assert.Equal(t, batch.StateIdle, runner.State())
}

func TestRunner_Run_JustifyAndSanitize(t *testing.T) {
	srv := newScriptedServer(t, ok("```html\nBez obalu.\n```"))
	client, err := llm.New("anthropic",
		llm.WithBaseURL(srv.URL),
		llm.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)

	runner := batch.NewRunner(client, batch.Options{
		Mode:         catalog.ModeShort,
		Prompt:       prompt.Options{Tone: prompt.ToneNeutral},
		JustifyText:  true,
		RequestDelay: time.Millisecond,
	}, nil)

	results, err := runner.Run(context.Background(), testAPIKey, []*catalog.Product{
		eligibleProduct("A"),
	})
	require.NoError(t, err)
	assert.Equal(t, `<p style="text-align: justify;">Bez obalu.</p>`, results[0].ShortDescription)
}

func TestRunner_Reset(t *testing.T) {
	srv := newScriptedServer(t)
	runner := newTestRunner(t, srv, nil)

	_, err := runner.Run(context.Background(), testAPIKey, []*catalog.Product{
		eligibleProduct("A"),
	})
	require.NoError(t, err)
	assert.Equal(t, batch.StateCompleted, runner.State())

	require.NoError(t, runner.Reset())
	assert.Equal(t, batch.StateIdle, runner.State())
	snap := runner.Snapshot()
	assert.Zero(t, snap.Total)
	assert.Empty(t, snap.Preview)
	assert.Empty(t, snap.Log)
}

func TestRunner_Run_RejectsConcurrentRun(t *testing.T) {
	srv := newScriptedServer(t)

	release := make(chan struct{})
	blocking := &recordingReporter{}
	blocking.onRow = func(batch.RowResult) {
		<-release
	}
	runner := newTestRunner(t, srv, blocking)

	done := make(chan error, 1)
	go func() {
		_, err := runner.Run(context.Background(), testAPIKey, []*catalog.Product{
			eligibleProduct("A"),
			eligibleProduct("B"),
		})
		done <- err
	}()

	// Wait until the first row is in flight, then try a second run.
	require.Eventually(t, func() bool {
		return runner.State() == batch.StateRunning
	}, 5*time.Second, time.Millisecond)

	_, err := runner.Run(context.Background(), testAPIKey, []*catalog.Product{
		eligibleProduct("C"),
	})
	assert.ErrorIs(t, err, batch.ErrAlreadyRunning)

	close(release)
	require.NoError(t, <-done)
}
