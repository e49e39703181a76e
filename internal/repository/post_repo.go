package repository

import (
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/techtornix/techtornix-api/internal/models"
	"github.com/techtornix/techtornix-api/internal/utils"
)

// PostRepository provides data access methods for the posts table.
type PostRepository struct {
	db *sqlx.DB
}

// NewPostRepository creates a new PostRepository.
func NewPostRepository(db *sqlx.DB) *PostRepository {
	return &PostRepository{db: db}
}

const postColumns = `id, slug, title, excerpt, content, author, tags,
	is_published, published_at, created_at, updated_at`

// scanPost scans one row into a Post. Explicit scan so the TEXT[] tags
// column goes through pq.Array.
func scanPost(row interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	if err := row.Scan(
		&p.ID,
		&p.Slug,
		&p.Title,
		&p.Excerpt,
		&p.Content,
		&p.Author,
		pq.Array(&p.Tags),
		&p.IsPublished,
		&p.PublishedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetBySlug finds a post by slug.
func (r *PostRepository) GetBySlug(slug string) (*models.Post, error) {
	row := r.db.QueryRowx(`SELECT `+postColumns+` FROM posts WHERE slug = $1`, slug)
	return scanPost(row)
}

// GetByID finds a post by id.
func (r *PostRepository) GetByID(id int) (*models.Post, error) {
	row := r.db.QueryRowx(`SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	return scanPost(row)
}

// List returns a page of posts, newest first. When publishedOnly is set,
// drafts are excluded and ordering follows published_at. An optional tag
// filters by tag membership.
func (r *PostRepository) List(publishedOnly bool, tag string, limit, offset int) ([]models.Post, int, error) {
	where := "TRUE"
	args := []any{}
	if publishedOnly {
		where = "is_published = TRUE"
	}
	if tag != "" {
		args = append(args, tag)
		where += " AND $1 = ANY(tags)"
	}

	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM posts WHERE `+where, args...); err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	if publishedOnly {
		order = "published_at DESC"
	}
	query := `SELECT ` + postColumns + ` FROM posts WHERE ` + where +
		` ORDER BY ` + order + ` LIMIT ` + placeholder(len(args)+1) + ` OFFSET ` + placeholder(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Queryx(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, *p)
	}
	return posts, total, rows.Err()
}

// Create inserts a new post.
func (r *PostRepository) Create(post *models.Post) error {
	err := r.db.QueryRow(`
		INSERT INTO posts (slug, title, excerpt, content, author, tags, is_published, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, post.Slug, post.Title, post.Excerpt, post.Content, post.Author,
		pq.Array(post.Tags), post.IsPublished, post.PublishedAt).
		Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	return mapSlugConstraint(err)
}

// Update rewrites all mutable columns of a post.
func (r *PostRepository) Update(post *models.Post) error {
	res, err := r.db.Exec(`
		UPDATE posts
		SET slug = $2, title = $3, excerpt = $4, content = $5, author = $6,
		    tags = $7, is_published = $8, published_at = $9, updated_at = NOW()
		WHERE id = $1
	`, post.ID, post.Slug, post.Title, post.Excerpt, post.Content, post.Author,
		pq.Array(post.Tags), post.IsPublished, post.PublishedAt)
	if err != nil {
		return mapSlugConstraint(err)
	}
	return requireRow(res)
}

// Delete removes a post.
func (r *PostRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// placeholder renders a positional Postgres placeholder ($1, $2, ...).
func placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

// mapSlugConstraint translates unique-violation errors on slug columns.
func mapSlugConstraint(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return utils.ErrSlugExists
	}
	return err
}
