package orchestrator

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"playtracker/internal/config"
	"playtracker/internal/history"
	"playtracker/internal/models"
	"playtracker/internal/stats"
	"playtracker/internal/toplists"
)

// Client is the streaming-service surface one run needs.
type Client interface {
	Authenticate(ctx context.Context) error
	RecentlyPlayed(ctx context.Context, limit int) ([]models.PlayEvent, error)
	TopTracks(ctx context.Context, window string, limit int) ([]models.RankedItem, error)
	TopArtists(ctx context.Context, window string, limit int) ([]models.RankedItem, error)
}

// Store is the blob persistence surface one run needs.
type Store interface {
	Get(key string, out interface{}) (bool, error)
	Put(key string, v interface{}) error
}

// Orchestrator coordinates a single tracker run: fetch, merge, persist,
// aggregate, enrich, report. The caller must guarantee at most one run at a
// time against a given store; the read-merge-write sequence over the
// history document is not transactional.
type Orchestrator struct {
	cfg    *config.Config
	client Client
	store  Store
	logger zerolog.Logger
	enrich bool
}

// New creates an Orchestrator wired to the given collaborators. Enrichment
// can be disabled, in which case the persisted report carries no top lists.
func New(cfg *config.Config, client Client, store Store, logger zerolog.Logger, enrich bool) *Orchestrator {
	return &Orchestrator{
		cfg:    cfg,
		client: client,
		store:  store,
		logger: logger,
		enrich: enrich,
	}
}

// Run executes the full pipeline. Authentication, the recent-plays fetch,
// and every store access are fatal; enrichment failures only degrade the
// report. On a fatal error nothing has been persisted beyond the steps that
// already completed, and the next scheduled run reconciles.
func (o *Orchestrator) Run(ctx context.Context) (models.RunSummary, error) {
	// Step 1: authenticate before touching anything else.
	if err := o.client.Authenticate(ctx); err != nil {
		return models.RunSummary{}, fmt.Errorf("authenticating: %w", err)
	}
	o.logger.Debug().Msg("authenticated")

	// Step 2: fetch the recent window of plays.
	recent, err := o.client.RecentlyPlayed(ctx, o.cfg.Fetch.RecentLimit)
	if err != nil {
		return models.RunSummary{}, fmt.Errorf("fetching recent plays: %w", err)
	}
	o.logger.Info().Int("count", len(recent)).Msg("fetched recent plays")

	// Step 3: load stored history. Absent means first run, not an error.
	var stored []models.PlayEvent
	found, err := o.store.Get(o.cfg.Store.HistoryKey, &stored)
	if err != nil {
		return models.RunSummary{}, fmt.Errorf("loading history: %w", err)
	}
	if !found {
		o.logger.Info().Msg("no stored history, starting fresh")
	}

	// Step 4: merge the new batch into history.
	merged, added := history.Merge(stored, recent)
	o.logger.Info().
		Int("added", added).
		Int("total", len(merged)).
		Msg("merged recent plays into history")

	// Step 5: persist history only if it grew.
	if added > 0 {
		if err := o.store.Put(o.cfg.Store.HistoryKey, merged); err != nil {
			return models.RunSummary{}, fmt.Errorf("saving history: %w", err)
		}
	}

	// Step 6: recompute the aggregate report over the full history.
	report := stats.Aggregate(merged)

	// Step 7: best-effort enrichment, never fatal.
	if o.enrich {
		report.TopLists = toplists.Fetch(ctx, o.client, o.cfg.Fetch.TopListLimit, o.logger)
	}

	// Step 8: persist the combined report.
	if err := o.store.Put(o.cfg.Store.ReportKey, report); err != nil {
		return models.RunSummary{}, fmt.Errorf("saving report: %w", err)
	}

	summary := models.RunSummary{
		Added:      added,
		TotalPlays: len(merged),
		Message:    fmt.Sprintf("added %d plays, %d total", added, len(merged)),
	}
	o.logger.Info().
		Int("added", summary.Added).
		Int("total_plays", summary.TotalPlays).
		Msg("run complete")

	return summary, nil
}
