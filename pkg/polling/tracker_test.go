package polling

import (
	"testing"

	"github.com/benvansteenbergen/console-sub000/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerMarksReplayedStepsStale(t *testing.T) {
	tracker := NewTracker()

	first := tracker.Observe([]dto.TraceStep{
		{Label: "Research", Timestamp: "2026-01-01T10:00:00Z"},
		{Label: "Outline", Timestamp: "2026-01-01T10:00:05Z"},
	})
	require.Len(t, first, 2)
	assert.True(t, first[0].Fresh)
	assert.True(t, first[1].Fresh)

	second := tracker.Observe([]dto.TraceStep{
		{Label: "Research", Timestamp: "2026-01-01T10:00:00Z"},
		{Label: "Outline", Timestamp: "2026-01-01T10:00:05Z"},
		{Label: "Draft", Timestamp: "2026-01-01T10:00:12Z"},
	})
	require.Len(t, second, 3)
	assert.False(t, second[0].Fresh)
	assert.False(t, second[1].Fresh)
	assert.True(t, second[2].Fresh, "only the newly appended step is fresh")
}

func TestTrackerFallsBackToPositionWithoutTimestamps(t *testing.T) {
	tracker := NewTracker()

	tracker.Observe([]dto.TraceStep{{Label: "Step one"}})

	out := tracker.Observe([]dto.TraceStep{{Label: "Step one"}, {Label: "Step two"}})
	require.Len(t, out, 2)
	assert.False(t, out[0].Fresh, "same position counts as the same step")
	assert.True(t, out[1].Fresh)
}

func TestTrackerPreservesOrder(t *testing.T) {
	tracker := NewTracker()
	trace := []dto.TraceStep{
		{Label: "b", Timestamp: "2"},
		{Label: "a", Timestamp: "1"},
	}

	out := tracker.Observe(trace)
	require.Len(t, out, 2)
	assert.Equal(t, "b", out[0].Label)
	assert.Equal(t, "a", out[1].Label)
}
