// Package stats computes the aggregate listening report over the full
// accumulated play history. Aggregation is a pure single pass: given the
// same history in the same order it always produces the same report.
package stats

import (
	"sort"
	"strings"
	"time"

	"playtracker/internal/models"
)

const unknownArtist = "Unknown Artist"

// accumulator collects all five aggregates during the single pass.
// Insertion order of each key space is recorded so that ties in the final
// descending sort break on first encounter.
type accumulator struct {
	trackCounts map[string]int
	trackOrder  []string

	artistCounts map[string]int
	artistOrder  []string

	dailyCounts map[string]int

	dailyTracks map[string]map[string]struct{}

	albumCounts map[string]*albumEntry
	albumOrder  []string
}

type albumEntry struct {
	name   string
	artist string
	count  int
}

// Aggregate builds a StatsReport from the given history. An event missing a
// field only drops out of the aggregates that need that field: no track id
// means no daily-unique contribution, no album id means no album entry, and
// so on. The play itself is always counted.
func Aggregate(history []models.PlayEvent) models.StatsReport {
	acc := &accumulator{
		trackCounts:  make(map[string]int),
		artistCounts: make(map[string]int),
		dailyCounts:  make(map[string]int),
		dailyTracks:  make(map[string]map[string]struct{}),
		albumCounts:  make(map[string]*albumEntry),
	}

	for _, ev := range history {
		acc.addPlay(ev)
	}

	return acc.report()
}

// addPlay folds a single event into every aggregate it can resolve.
func (a *accumulator) addPlay(ev models.PlayEvent) {
	day := dayOf(ev.PlayedAt)
	a.dailyCounts[day]++

	track := ev.Track
	if track == nil {
		return
	}

	if len(track.Artists) > 0 {
		key := track.Name + " - " + track.Artists[0].Name
		if _, ok := a.trackCounts[key]; !ok {
			a.trackOrder = append(a.trackOrder, key)
		}
		a.trackCounts[key]++
	}

	// Every credited artist counts, not just the primary one.
	for _, artist := range track.Artists {
		if _, ok := a.artistCounts[artist.Name]; !ok {
			a.artistOrder = append(a.artistOrder, artist.Name)
		}
		a.artistCounts[artist.Name]++
	}

	if track.ID != "" {
		set, ok := a.dailyTracks[day]
		if !ok {
			set = make(map[string]struct{})
			a.dailyTracks[day] = set
		}
		set[track.ID] = struct{}{}
	}

	if track.Album != nil && track.Album.ID != "" {
		entry, ok := a.albumCounts[track.Album.ID]
		if !ok {
			// Display names are captured from the first occurrence of the
			// album id and never overwritten.
			entry = &albumEntry{
				name:   track.Album.Name,
				artist: unknownArtist,
			}
			if len(track.Album.Artists) > 0 {
				entry.artist = track.Album.Artists[0].Name
			}
			a.albumCounts[track.Album.ID] = entry
			a.albumOrder = append(a.albumOrder, track.Album.ID)
		}
		entry.count++
	}
}

// report converts the accumulated maps into the sorted report shape.
func (a *accumulator) report() models.StatsReport {
	report := models.StatsReport{
		GeneratedAt:       time.Now().UTC(),
		Tracks:            sortedCounts(a.trackCounts, a.trackOrder),
		Artists:           sortedCounts(a.artistCounts, a.artistOrder),
		DailyCounts:       a.dailyCounts,
		DailyUniqueTracks: make(map[string]int, len(a.dailyTracks)),
	}

	for _, count := range a.dailyCounts {
		report.TotalPlays += count
	}

	for day, set := range a.dailyTracks {
		report.DailyUniqueTracks[day] = len(set)
	}

	albums := make([]models.AlbumCount, 0, len(a.albumOrder))
	for _, id := range a.albumOrder {
		entry := a.albumCounts[id]
		albums = append(albums, models.AlbumCount{
			Name:   entry.name,
			Artist: entry.artist,
			Count:  entry.count,
		})
	}
	sort.SliceStable(albums, func(i, j int) bool {
		return albums[i].Count > albums[j].Count
	})
	report.TopAlbums = albums

	return report
}

// sortedCounts renders a count map as a list sorted by count descending,
// ties broken by first-encountered order.
func sortedCounts(counts map[string]int, order []string) []models.NamedCount {
	out := make([]models.NamedCount, 0, len(order))
	for _, name := range order {
		out = append(out, models.NamedCount{Name: name, Count: counts[name]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// dayOf extracts the calendar date portion of an ISO-8601 timestamp.
func dayOf(playedAt string) string {
	if idx := strings.IndexByte(playedAt, 'T'); idx != -1 {
		return playedAt[:idx]
	}
	return playedAt
}
