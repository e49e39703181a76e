package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/techtornix/techtornix-api/internal/repository"
)

// CleanupWorker prunes raw page_views rows older than the retention window.
// The daily rollup table keeps the aggregates, so old raw rows only cost disk.
type CleanupWorker struct {
	analytics *repository.AnalyticsRepository
	interval  time.Duration
	retention time.Duration
}

// NewCleanupWorker constructs a CleanupWorker.
func NewCleanupWorker(analytics *repository.AnalyticsRepository, interval, retention time.Duration) *CleanupWorker {
	return &CleanupWorker{
		analytics: analytics,
		interval:  interval,
		retention: retention,
	}
}

// Start begins the periodic cleanup loop and listens for context cancellation.
func (w *CleanupWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Dur("retention", w.retention).Msg("Starting cleanup worker")

	// Run immediately on start
	w.run()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run()
		case <-ctx.Done():
			log.Info().Msg("Cleanup worker stopped")
			return
		}
	}
}

func (w *CleanupWorker) run() {
	cutoff := time.Now().UTC().Add(-w.retention)

	deleted, err := w.analytics.DeleteViewsBefore(cutoff)
	if err != nil {
		log.Error().Err(err).Msg("Failed to prune page views")
		return
	}
	if deleted > 0 {
		log.Info().Int64("deleted", deleted).Time("cutoff", cutoff).Msg("Pruned raw page views")
	}
}
