package polling

import (
	"context"
	"regexp"
	"time"

	"github.com/benvansteenbergen/console-sub000/internal/dto"
)

// StatusFunc fetches the current snapshot of one execution.
type StatusFunc func(ctx context.Context) (*dto.ExecutionResponse, error)

// Outcome is the terminal result of a watch.
type Outcome struct {
	Status    string
	Execution *dto.ExecutionResponse
	// DocumentID is scraped from the trace on success. Best effort: an empty
	// value means the caller falls back to its default navigation target.
	DocumentID string
}

// Watcher polls an execution until it reaches a terminal status. A failed
// tick counts as "not yet terminal" and polling continues at the fixed
// interval; cancellation comes only from the context.
type Watcher struct {
	interval time.Duration
	fetch    StatusFunc
	onUpdate func(*dto.ExecutionResponse)
}

type Option func(*Watcher)

// WithUpdateFunc registers a callback invoked after every successful tick,
// terminal ones included.
func WithUpdateFunc(fn func(*dto.ExecutionResponse)) Option {
	return func(w *Watcher) {
		w.onUpdate = fn
	}
}

func NewWatcher(interval time.Duration, fetch StatusFunc, opts ...Option) *Watcher {
	w := &Watcher{
		interval: interval,
		fetch:    fetch,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run blocks until the execution is terminal or ctx is cancelled. It returns
// exactly once, so completion side effects (navigation, notification) run
// exactly once.
func (w *Watcher) Run(ctx context.Context) (*Outcome, error) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		execution, err := w.fetch(ctx)
		if err == nil && execution != nil {
			if w.onUpdate != nil {
				w.onUpdate(execution)
			}
			switch execution.Status {
			case dto.ExecutionSuccess:
				return &Outcome{
					Status:     dto.ExecutionSuccess,
					Execution:  execution,
					DocumentID: ExtractDocumentID(execution.Trace),
				}, nil
			case dto.ExecutionError:
				return &Outcome{
					Status:    dto.ExecutionError,
					Execution: execution,
				}, nil
			}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Trace summaries embed the produced document as a drive URL. The id is not a
// structured field on the execution record, so it has to be scraped.
var documentURLPattern = regexp.MustCompile(`document/d/([a-zA-Z0-9_-]+)`)

// ExtractDocumentID scans the trace for an embedded document URL, newest step
// first. Returns "" when no step carries one.
func ExtractDocumentID(trace []dto.TraceStep) string {
	for i := len(trace) - 1; i >= 0; i-- {
		if m := documentURLPattern.FindStringSubmatch(trace[i].Summary); m != nil {
			return m[1]
		}
	}
	return ""
}
