package models

import "time"

// Offering is a service line advertised on the site (web, mobile, SEO, ...).
type Offering struct {
	ID          int       `db:"id" json:"id"`
	Slug        string    `db:"slug" json:"slug"`
	Name        string    `db:"name" json:"name"`
	Summary     string    `db:"summary" json:"summary"`
	Description string    `db:"description" json:"description"`
	Icon        string    `db:"icon" json:"icon"`
	SortOrder   int       `db:"sort_order" json:"sortOrder"`
	IsActive    bool      `db:"is_active" json:"isActive"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}
