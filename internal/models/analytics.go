package models

import "time"

// PageView is one raw page-view event from the public site.
type PageView struct {
	ID        int64     `db:"id" json:"id"`
	Path      string    `db:"path" json:"path"`
	Referrer  string    `db:"referrer" json:"referrer"`
	VisitorID string    `db:"visitor_id" json:"visitorId"`
	UserAgent string    `db:"user_agent" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// DailyPageView is an aggregated per-day, per-path view count.
type DailyPageView struct {
	Day   time.Time `db:"day" json:"day"`
	Path  string    `db:"path" json:"path"`
	Views int64     `db:"views" json:"views"`
}

// DayStat is a per-day total used by the daily series report.
type DayStat struct {
	Day   time.Time `db:"day" json:"day"`
	Views int64     `db:"views" json:"views"`
}

// PageStat is a per-path total used by the top-pages report.
type PageStat struct {
	Path  string `db:"path" json:"path"`
	Views int64  `db:"views" json:"views"`
}
