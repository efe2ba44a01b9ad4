package models

import "time"

// Artist identifies a credited artist by display name.
type Artist struct {
	Name string `json:"name"`
}

// Album holds the album metadata attached to a played track.
type Album struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Artists []Artist `json:"artists,omitempty"`
}

// Track represents a playable track with its credited artists.
type Track struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Artists []Artist `json:"artists"`
	Album   *Album   `json:"album,omitempty"`
}

// PlayEvent is one play of a track at a specific time. The timestamp is the
// ISO-8601 string exactly as delivered by the API and uniquely identifies
// the play across all runs.
type PlayEvent struct {
	PlayedAt string `json:"played_at"`
	Track    *Track `json:"track"`
}

// NamedCount is a ranked entry in the track or artist lists.
type NamedCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// AlbumCount is a ranked album entry with its captured display names.
type AlbumCount struct {
	Name   string `json:"name"`
	Artist string `json:"artist"`
	Count  int    `json:"count"`
}

// RankedItem is one entry of an externally pre-ranked top list.
type RankedItem struct {
	Name   string `json:"name"`
	Artist string `json:"artist,omitempty"`
}

// Time windows used by the external top-lists source.
const (
	WindowShort  = "short_term"
	WindowMedium = "medium_term"
	WindowLong   = "long_term"
)

// Windows lists the enrichment time windows in display order.
var Windows = []string{WindowShort, WindowMedium, WindowLong}

// TopListsReport holds the externally ranked lists per time window.
// Slots that failed to fetch are present with empty lists.
type TopListsReport struct {
	Tracks  map[string][]RankedItem `json:"tracks"`
	Artists map[string][]RankedItem `json:"artists"`
}

// StatsReport is the aggregate view over the full play history, recomputed
// from scratch every run.
type StatsReport struct {
	GeneratedAt       time.Time       `json:"generated_at"`
	TotalPlays        int             `json:"total_plays"`
	Tracks            []NamedCount    `json:"tracks"`
	Artists           []NamedCount    `json:"artists"`
	DailyCounts       map[string]int  `json:"daily_counts"`
	DailyUniqueTracks map[string]int  `json:"daily_unique_tracks"`
	TopAlbums         []AlbumCount    `json:"top_albums"`
	TopLists          *TopListsReport `json:"top_lists,omitempty"`
}

// RunSummary is the result of one tracker invocation.
type RunSummary struct {
	Added      int    `json:"added"`
	TotalPlays int    `json:"total_plays"`
	Message    string `json:"message"`
}
