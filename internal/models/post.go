package models

import "time"

// Post is a blog article shown on the marketing site.
type Post struct {
	ID          int        `db:"id" json:"id"`
	Slug        string     `db:"slug" json:"slug"`
	Title       string     `db:"title" json:"title"`
	Excerpt     string     `db:"excerpt" json:"excerpt"`
	Content     string     `db:"content" json:"content"`
	Author      string     `db:"author" json:"author"`
	Tags        []string   `db:"tags" json:"tags"`
	IsPublished bool       `db:"is_published" json:"isPublished"`
	PublishedAt *time.Time `db:"published_at" json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
}
