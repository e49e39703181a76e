package models

import "time"

// Project is a portfolio entry.
type Project struct {
	ID          int       `db:"id" json:"id"`
	Slug        string    `db:"slug" json:"slug"`
	Title       string    `db:"title" json:"title"`
	Summary     string    `db:"summary" json:"summary"`
	Description string    `db:"description" json:"description"`
	Category    string    `db:"category" json:"category"`
	TechStack   []string  `db:"tech_stack" json:"techStack"`
	LiveURL     *string   `db:"live_url" json:"liveUrl,omitempty"`
	IsFeatured  bool      `db:"is_featured" json:"isFeatured"`
	SortOrder   int       `db:"sort_order" json:"sortOrder"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}
