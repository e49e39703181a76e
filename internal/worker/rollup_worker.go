package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/techtornix/techtornix-api/internal/cache"
	"github.com/techtornix/techtornix-api/internal/repository"
)

// RollupWorker periodically drains the Redis view counters into the
// daily_page_views rollup table.
type RollupWorker struct {
	counter   *cache.ViewCounter
	analytics *repository.AnalyticsRepository
	interval  time.Duration
}

// NewRollupWorker constructs a RollupWorker.
func NewRollupWorker(counter *cache.ViewCounter, analytics *repository.AnalyticsRepository, interval time.Duration) *RollupWorker {
	return &RollupWorker{
		counter:   counter,
		analytics: analytics,
		interval:  interval,
	}
}

// Start begins the periodic rollup loop and listens for context cancellation.
func (w *RollupWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting rollup worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			// Final drain so counters accumulated since the last tick
			// survive a shutdown.
			w.run(context.Background())
			log.Info().Msg("Rollup worker stopped")
			return
		}
	}
}

func (w *RollupWorker) run(ctx context.Context) {
	buckets, err := w.counter.Drain(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to drain view counters")
		return
	}
	if len(buckets) == 0 {
		return
	}

	var rolled, failed int
	for _, b := range buckets {
		if err := w.analytics.UpsertDaily(b.Day, b.Path, b.Views); err != nil {
			log.Error().Err(err).Str("path", b.Path).Msg("Failed to roll up view bucket")
			failed++
			continue
		}
		rolled++
	}

	log.Info().Int("buckets", rolled).Int("failed", failed).Msg("View rollup completed")
}
