// Package toplists fetches the externally pre-ranked top-track and
// top-artist lists. The six window/category slots are independent reads:
// each is fetched concurrently and a failed slot degrades to an empty list
// without affecting the others.
package toplists

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"playtracker/internal/models"
)

// Source provides the ranked lists, one call per window and category.
type Source interface {
	TopTracks(ctx context.Context, window string, limit int) ([]models.RankedItem, error)
	TopArtists(ctx context.Context, window string, limit int) ([]models.RankedItem, error)
}

// Fetch collects all six lists and returns once every slot has settled.
// It never fails: errors are logged and mapped to empty lists.
func Fetch(ctx context.Context, src Source, limit int, logger zerolog.Logger) *models.TopListsReport {
	type slot struct {
		category string
		window   string
		items    []models.RankedItem
	}

	slots := make([]slot, 0, 2*len(models.Windows))
	for _, window := range models.Windows {
		slots = append(slots,
			slot{category: "tracks", window: window},
			slot{category: "artists", window: window},
		)
	}

	var wg sync.WaitGroup
	for i := range slots {
		wg.Add(1)
		go func(s *slot) {
			defer wg.Done()

			var err error
			if s.category == "tracks" {
				s.items, err = src.TopTracks(ctx, s.window, limit)
			} else {
				s.items, err = src.TopArtists(ctx, s.window, limit)
			}
			if err != nil {
				logger.Warn().Err(err).
					Str("category", s.category).
					Str("window", s.window).
					Msg("top list fetch failed, slot left empty")
				s.items = []models.RankedItem{}
			}
			if s.items == nil {
				s.items = []models.RankedItem{}
			}
		}(&slots[i])
	}
	wg.Wait()

	report := &models.TopListsReport{
		Tracks:  make(map[string][]models.RankedItem, len(models.Windows)),
		Artists: make(map[string][]models.RankedItem, len(models.Windows)),
	}
	for _, s := range slots {
		if s.category == "tracks" {
			report.Tracks[s.window] = s.items
		} else {
			report.Artists[s.window] = s.items
		}
	}

	return report
}
