package repository

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/techtornix/techtornix-api/internal/models"
)

// AnalyticsRepository provides data access for page_views and the
// daily_page_views rollup table.
type AnalyticsRepository struct {
	db *sqlx.DB
}

// NewAnalyticsRepository creates a new AnalyticsRepository.
func NewAnalyticsRepository(db *sqlx.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// InsertView stores one raw page-view event.
func (r *AnalyticsRepository) InsertView(view *models.PageView) error {
	return r.db.QueryRow(`
		INSERT INTO page_views (path, referrer, visitor_id, user_agent)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, view.Path, view.Referrer, view.VisitorID, view.UserAgent).
		Scan(&view.ID, &view.CreatedAt)
}

// UpsertDaily folds a drained counter bucket into daily_page_views.
// Re-running a rollup for the same (day, path) adds, never overwrites,
// so partial drains are safe.
func (r *AnalyticsRepository) UpsertDaily(day time.Time, path string, views int64) error {
	_, err := r.db.Exec(`
		INSERT INTO daily_page_views (day, path, views)
		VALUES ($1, $2, $3)
		ON CONFLICT (day, path) DO UPDATE SET views = daily_page_views.views + EXCLUDED.views
	`, day, path, views)
	return err
}

// DeleteViewsBefore prunes raw page views older than the cutoff and
// returns how many rows were removed.
func (r *AnalyticsRepository) DeleteViewsBefore(cutoff time.Time) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM page_views WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// TotalViews sums rolled-up views since the given day (inclusive).
func (r *AnalyticsRepository) TotalViews(since time.Time) (int64, error) {
	var total int64
	err := r.db.Get(&total, `
		SELECT COALESCE(SUM(views), 0) FROM daily_page_views WHERE day >= $1
	`, since)
	return total, err
}

// UniqueVisitors counts distinct visitor IDs in the raw views since the cutoff.
func (r *AnalyticsRepository) UniqueVisitors(since time.Time) (int64, error) {
	var n int64
	err := r.db.Get(&n, `
		SELECT COUNT(DISTINCT visitor_id) FROM page_views WHERE created_at >= $1
	`, since)
	return n, err
}

// TopPages returns the most viewed paths since the given day.
func (r *AnalyticsRepository) TopPages(since time.Time, limit int) ([]models.PageStat, error) {
	stats := []models.PageStat{}
	err := r.db.Select(&stats, `
		SELECT path, SUM(views) AS views
		FROM daily_page_views
		WHERE day >= $1
		GROUP BY path
		ORDER BY views DESC
		LIMIT $2
	`, since, limit)
	return stats, err
}

// DailySeries returns per-day totals since the given day, oldest first.
func (r *AnalyticsRepository) DailySeries(since time.Time) ([]models.DayStat, error) {
	series := []models.DayStat{}
	err := r.db.Select(&series, `
		SELECT day, SUM(views) AS views
		FROM daily_page_views
		WHERE day >= $1
		GROUP BY day
		ORDER BY day ASC
	`, since)
	return series, err
}
