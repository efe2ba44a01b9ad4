// Package history maintains the accumulated play history across runs.
// Events are identified by their play timestamp, which the streaming
// service guarantees to be unique per play.
package history

import "playtracker/internal/models"

// Merge appends the events from incoming that are not already present in
// existing, keyed by play timestamp. The result preserves existing's order
// followed by the accepted new events in their incoming order. Membership
// is tracked in a hash set so cost stays linear as history grows.
//
// Duplicate timestamps within incoming are resolved first-wins: an accepted
// event's timestamp joins the set immediately, so later occurrences in the
// same batch are skipped.
func Merge(existing, incoming []models.PlayEvent) ([]models.PlayEvent, int) {
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	for _, ev := range existing {
		seen[ev.PlayedAt] = struct{}{}
	}

	merged := existing
	added := 0
	for _, ev := range incoming {
		if _, ok := seen[ev.PlayedAt]; ok {
			continue
		}
		seen[ev.PlayedAt] = struct{}{}
		merged = append(merged, ev)
		added++
	}

	return merged, added
}
