package polling

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benvansteenbergen/console-sub000/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequenceFetch replays a fixed list of snapshots, one per tick.
func sequenceFetch(snapshots []*dto.ExecutionResponse, errs []error) StatusFunc {
	var n int64
	return func(ctx context.Context) (*dto.ExecutionResponse, error) {
		i := int(atomic.AddInt64(&n, 1)) - 1
		if i >= len(snapshots) {
			i = len(snapshots) - 1
		}
		if errs != nil && errs[i] != nil {
			return nil, errs[i]
		}
		return snapshots[i], nil
	}
}

func TestWatcherTerminatesOnSuccess(t *testing.T) {
	snapshots := []*dto.ExecutionResponse{
		{Status: dto.ExecutionRunning},
		{Status: dto.ExecutionRunning},
		{Status: dto.ExecutionSuccess, Trace: []dto.TraceStep{
			{Label: "Publish", Summary: "Saved to https://docs.google.com/document/d/1AbC_d-42/edit"},
		}},
	}

	var updates int64
	w := NewWatcher(time.Millisecond, sequenceFetch(snapshots, nil),
		WithUpdateFunc(func(*dto.ExecutionResponse) { atomic.AddInt64(&updates, 1) }))

	outcome, err := w.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dto.ExecutionSuccess, outcome.Status)
	assert.Equal(t, "1AbC_d-42", outcome.DocumentID)
	assert.Equal(t, int64(3), atomic.LoadInt64(&updates), "every successful tick reports an update, the terminal one included")
}

func TestWatcherTerminatesOnError(t *testing.T) {
	snapshots := []*dto.ExecutionResponse{
		{Status: dto.ExecutionRunning},
		{Status: dto.ExecutionError},
	}

	w := NewWatcher(time.Millisecond, sequenceFetch(snapshots, nil))
	outcome, err := w.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dto.ExecutionError, outcome.Status)
	assert.Empty(t, outcome.DocumentID)
}

func TestWatcherKeepsPollingThroughFailedTicks(t *testing.T) {
	snapshots := []*dto.ExecutionResponse{
		nil,
		nil,
		{Status: dto.ExecutionSuccess},
	}
	errs := []error{errors.New("upstream hiccup"), errors.New("timeout"), nil}

	w := NewWatcher(time.Millisecond, sequenceFetch(snapshots, errs))
	outcome, err := w.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dto.ExecutionSuccess, outcome.Status)
}

func TestWatcherStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := NewWatcher(time.Millisecond, func(ctx context.Context) (*dto.ExecutionResponse, error) {
		return &dto.ExecutionResponse{Status: dto.ExecutionRunning}, nil
	})

	outcome, err := w.Run(ctx)
	assert.Nil(t, outcome)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractDocumentID(t *testing.T) {
	tests := []struct {
		name  string
		trace []dto.TraceStep
		want  string
	}{
		{
			name: "newest step wins",
			trace: []dto.TraceStep{
				{Summary: "Draft at https://docs.google.com/document/d/old-111/edit"},
				{Summary: "Final at https://docs.google.com/document/d/new-222/edit"},
			},
			want: "new-222",
		},
		{
			name: "earlier step when newest has no url",
			trace: []dto.TraceStep{
				{Summary: "https://docs.google.com/document/d/abc123"},
				{Summary: "Done"},
			},
			want: "abc123",
		},
		{
			name:  "no url anywhere",
			trace: []dto.TraceStep{{Summary: "Working"}, {Summary: "Still working"}},
			want:  "",
		},
		{
			name:  "empty trace",
			trace: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractDocumentID(tt.trace))
		})
	}
}
