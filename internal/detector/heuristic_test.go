package detector

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opdetect/opqa/internal/config"
)

var t0 = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func at(offset time.Duration) time.Time {
	return t0.Add(offset)
}

func typeCounts(ops []Operation) map[OperationType]int {
	counts := make(map[OperationType]int)
	for _, op := range ops {
		counts[op.Type]++
	}
	return counts
}

func TestHeuristicDetect(t *testing.T) {
	tests := []struct {
		name     string
		events   []Event
		expected map[OperationType]int
	}{
		{
			name: "remove then create in same dir is a rename",
			events: []Event{
				{Op: EventRemove, Path: "/docs/draft.txt", Timestamp: at(0)},
				{Op: EventCreate, Path: "/docs/final.txt", Timestamp: at(100 * time.Millisecond)},
			},
			expected: map[OperationType]int{OpRename: 1},
		},
		{
			name: "remove then create across dirs with same name is a move",
			events: []Event{
				{Op: EventRemove, Path: "/inbox/report.pdf", Timestamp: at(0)},
				{Op: EventCreate, Path: "/archive/report.pdf", Timestamp: at(50 * time.Millisecond)},
			},
			expected: map[OperationType]int{OpMove: 1},
		},
		{
			name: "explicit rename event across dirs is a move",
			events: []Event{
				{Op: EventRename, Path: "/b/x.txt", OldPath: "/a/x.txt", Timestamp: at(0)},
			},
			expected: map[OperationType]int{OpMove: 1},
		},
		{
			name: "explicit rename event in place is a rename",
			events: []Event{
				{Op: EventRename, Path: "/a/y.txt", OldPath: "/a/x.txt", Timestamp: at(0)},
			},
			expected: map[OperationType]int{OpRename: 1},
		},
		{
			name: "unpaired remove is a delete",
			events: []Event{
				{Op: EventRemove, Path: "/tmp/scratch.log", Timestamp: at(0)},
			},
			expected: map[OperationType]int{OpDelete: 1},
		},
		{
			name: "unpaired create is a create",
			events: []Event{
				{Op: EventCreate, Path: "/docs/new.md", Timestamp: at(0)},
			},
			expected: map[OperationType]int{OpCreate: 1},
		},
		{
			name: "repeated writes to an existing file fold into one edit",
			events: []Event{
				{Op: EventWrite, Path: "/docs/notes.md", Size: 100, Timestamp: at(0)},
				{Op: EventWrite, Path: "/docs/notes.md", Size: 140, Timestamp: at(300 * time.Millisecond)},
			},
			expected: map[OperationType]int{OpEdit: 1},
		},
		{
			name: "writes that flesh out a new file are part of the create",
			events: []Event{
				{Op: EventCreate, Path: "/docs/new.md", Timestamp: at(0)},
				{Op: EventWrite, Path: "/docs/new.md", Size: 50, Timestamp: at(10 * time.Millisecond)},
			},
			expected: map[OperationType]int{OpCreate: 1},
		},
		{
			name: "size-mirroring create of a surviving file is a copy",
			events: []Event{
				{Op: EventCreate, Path: "/docs/orig.txt", Size: 2048, Timestamp: at(0)},
				{Op: EventCreate, Path: "/docs/orig (copy).txt", Size: 2048, Timestamp: at(200 * time.Millisecond)},
			},
			expected: map[OperationType]int{OpCreate: 1, OpCopy: 1},
		},
		{
			name: "pairing window expiry splits into delete and create",
			events: []Event{
				{Op: EventRemove, Path: "/docs/a.txt", Timestamp: at(0)},
				{Op: EventCreate, Path: "/docs/b.txt", Timestamp: at(3 * time.Second)},
			},
			expected: map[OperationType]int{OpDelete: 1, OpCreate: 1},
		},
		{
			name: "chmod is ignored",
			events: []Event{
				{Op: EventChmod, Path: "/docs/a.txt", Timestamp: at(0)},
			},
			expected: map[OperationType]int{},
		},
		{
			name:     "no events means no operations",
			events:   nil,
			expected: map[OperationType]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHeuristic(config.DetectorConfig{PairWindow: 2 * time.Second})
			ops, err := h.Detect(context.Background(), tt.events)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, typeCounts(ops))
		})
	}
}

func TestHeuristicConfidenceBounds(t *testing.T) {
	h := NewHeuristic(config.DetectorConfig{PairWindow: 2 * time.Second})
	events := []Event{
		{Op: EventRemove, Path: "/d/a.txt", Timestamp: at(0)},
		{Op: EventCreate, Path: "/d/b.txt", Timestamp: at(time.Second)},
		{Op: EventWrite, Path: "/d/c.txt", Size: 10, Timestamp: at(0)},
	}

	ops, err := h.Detect(context.Background(), events)
	require.NoError(t, err)
	require.NotEmpty(t, ops)
	for _, op := range ops {
		assert.GreaterOrEqual(t, op.Confidence, 0.0)
		assert.LessOrEqual(t, op.Confidence, 1.0)
	}
}

func TestHeuristicMinConfidenceSuppression(t *testing.T) {
	h := NewHeuristic(config.DetectorConfig{
		PairWindow:    2 * time.Second,
		MinConfidence: 0.75,
	})

	// Edits carry 0.7 confidence and fall below the threshold.
	events := []Event{
		{Op: EventWrite, Path: "/docs/notes.md", Size: 100, Timestamp: at(0)},
	}

	ops, err := h.Detect(context.Background(), events)
	require.NoError(t, err)
	assert.Empty(t, ops)
}

func TestHeuristicCancelledContext(t *testing.T) {
	h := NewHeuristic(config.DetectorConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.Detect(ctx, []Event{{Op: EventCreate, Path: "/x", Timestamp: at(0)}})
	assert.ErrorIs(t, err, context.Canceled)
}
