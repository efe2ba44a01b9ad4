package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playtracker/internal/models"
)

func event(playedAt, trackID string) models.PlayEvent {
	return models.PlayEvent{
		PlayedAt: playedAt,
		Track:    &models.Track{ID: trackID, Name: "Track " + trackID},
	}
}

func timestamps(events []models.PlayEvent) []string {
	out := make([]string, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.PlayedAt)
	}
	return out
}

func TestMergeIntoEmptyHistory(t *testing.T) {
	incoming := []models.PlayEvent{
		event("2024-01-01T10:00:00Z", "a"),
		event("2024-01-01T10:03:00Z", "b"),
	}

	merged, added := Merge(nil, incoming)

	assert.Equal(t, 2, added)
	assert.Equal(t, []string{"2024-01-01T10:00:00Z", "2024-01-01T10:03:00Z"}, timestamps(merged))
}

func TestMergeIsIdempotent(t *testing.T) {
	batch := []models.PlayEvent{
		event("2024-01-01T10:00:00Z", "a"),
		event("2024-01-01T10:03:00Z", "b"),
		event("2024-01-01T10:07:00Z", "c"),
	}

	merged, added := Merge(nil, batch)
	require.Equal(t, 3, added)

	again, added := Merge(merged, batch)
	assert.Equal(t, 0, added)
	assert.Equal(t, timestamps(merged), timestamps(again))
}

func TestMergePreservesExistingOrder(t *testing.T) {
	existing := []models.PlayEvent{
		event("2024-01-01T10:00:00Z", "a"),
		event("2024-01-02T09:00:00Z", "b"),
	}
	incoming := []models.PlayEvent{
		event("2024-01-02T09:00:00Z", "b"), // already present
		event("2024-01-03T08:00:00Z", "c"),
		event("2024-01-03T08:04:00Z", "d"),
	}

	merged, added := Merge(existing, incoming)

	assert.Equal(t, 2, added)
	assert.Equal(t, []string{
		"2024-01-01T10:00:00Z",
		"2024-01-02T09:00:00Z",
		"2024-01-03T08:00:00Z",
		"2024-01-03T08:04:00Z",
	}, timestamps(merged))
}

func TestMergeRejectsExistingTimestamp(t *testing.T) {
	existing := []models.PlayEvent{event("2024-01-01T10:00:00Z", "a")}
	incoming := []models.PlayEvent{event("2024-01-01T10:00:00Z", "z")}

	merged, added := Merge(existing, incoming)

	assert.Equal(t, 0, added)
	require.Len(t, merged, 1)
	assert.Equal(t, "a", merged[0].Track.ID)
}

func TestMergeWithinBatchDuplicateFirstWins(t *testing.T) {
	incoming := []models.PlayEvent{
		event("2024-01-01T10:00:00Z", "first"),
		event("2024-01-01T10:00:00Z", "second"),
	}

	merged, added := Merge(nil, incoming)

	assert.Equal(t, 1, added)
	require.Len(t, merged, 1)
	assert.Equal(t, "first", merged[0].Track.ID)
}

func TestMergeNeverDuplicatesTimestamps(t *testing.T) {
	var merged []models.PlayEvent

	// Overlapping batches simulating successive runs.
	for run := 0; run < 5; run++ {
		var batch []models.PlayEvent
		for i := 0; i < 10; i++ {
			ts := fmt.Sprintf("2024-01-01T%02d:%02d:00Z", run+i/5, i%10)
			batch = append(batch, event(ts, fmt.Sprintf("t%d", i)))
		}
		merged, _ = Merge(merged, batch)
	}

	seen := make(map[string]struct{})
	for _, ev := range merged {
		_, dup := seen[ev.PlayedAt]
		require.False(t, dup, "duplicate timestamp %s", ev.PlayedAt)
		seen[ev.PlayedAt] = struct{}{}
	}
}
