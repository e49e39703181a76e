package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/techtornix/techtornix-api/internal/cache"
	"github.com/techtornix/techtornix-api/internal/models"
	"github.com/techtornix/techtornix-api/internal/repository"
	"github.com/techtornix/techtornix-api/internal/sse"
)

// AnalyticsService records page views and serves traffic reports.
// Raw events land in Postgres; live counters in Redis are rolled up into
// daily_page_views by the rollup worker.
type AnalyticsService struct {
	analytics *repository.AnalyticsRepository
	counter   *cache.ViewCounter
	notifier  sse.ActivityNotifier
}

// NewAnalyticsService constructs an AnalyticsService.
func NewAnalyticsService(analytics *repository.AnalyticsRepository, counter *cache.ViewCounter, notifier sse.ActivityNotifier) *AnalyticsService {
	return &AnalyticsService{analytics: analytics, counter: counter, notifier: notifier}
}

// RecordView stores one page view. A Redis counter failure does not fail
// the ingest; the raw row in Postgres is the source of truth.
func (s *AnalyticsService) RecordView(ctx context.Context, path, referrer, visitorID, userAgent string) error {
	path = normalizePath(path)

	view := &models.PageView{
		Path:      path,
		Referrer:  referrer,
		VisitorID: visitorID,
		UserAgent: userAgent,
	}
	if err := s.analytics.InsertView(view); err != nil {
		return fmt.Errorf("insert page view: %w", err)
	}

	if err := s.counter.Record(ctx, path, view.CreatedAt); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Failed to bump live view counter")
	}

	s.notifier.NotifyPageView(view)
	return nil
}

// Summary aggregates the last `days` days of traffic.
type Summary struct {
	Days           int               `json:"days"`
	TotalViews     int64             `json:"totalViews"`
	UniqueVisitors int64             `json:"uniqueVisitors"`
	TopPages       []models.PageStat `json:"topPages"`
	Daily          []models.DayStat  `json:"daily"`
}

// GetSummary builds the traffic report from the rollup table.
func (s *AnalyticsService) GetSummary(days int) (*Summary, error) {
	if days <= 0 || days > 365 {
		days = 30
	}
	since := time.Now().UTC().AddDate(0, 0, -days).Truncate(24 * time.Hour)

	total, err := s.analytics.TotalViews(since)
	if err != nil {
		return nil, fmt.Errorf("total views: %w", err)
	}
	visitors, err := s.analytics.UniqueVisitors(since)
	if err != nil {
		return nil, fmt.Errorf("unique visitors: %w", err)
	}
	top, err := s.analytics.TopPages(since, 10)
	if err != nil {
		return nil, fmt.Errorf("top pages: %w", err)
	}
	daily, err := s.analytics.DailySeries(since)
	if err != nil {
		return nil, fmt.Errorf("daily series: %w", err)
	}

	return &Summary{
		Days:           days,
		TotalViews:     total,
		UniqueVisitors: visitors,
		TopPages:       top,
		Daily:          daily,
	}, nil
}

// normalizePath strips query strings and trailing slashes so counters do
// not fragment across URL variants.
func normalizePath(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "/"
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}
