package service

import (
	"database/sql"
	"errors"
	"time"

	"github.com/techtornix/techtornix-api/internal/models"
	"github.com/techtornix/techtornix-api/internal/repository"
	"github.com/techtornix/techtornix-api/internal/utils"
)

// PostService manages blog posts.
type PostService struct {
	posts *repository.PostRepository
}

// NewPostService constructs a PostService.
func NewPostService(posts *repository.PostRepository) *PostService {
	return &PostService{posts: posts}
}

// PostInput carries the mutable fields of a post.
type PostInput struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title" binding:"required"`
	Excerpt     string   `json:"excerpt"`
	Content     string   `json:"content" binding:"required"`
	Author      string   `json:"author" binding:"required"`
	Tags        []string `json:"tags"`
	IsPublished bool     `json:"isPublished"`
}

// Create inserts a new post. An empty slug is derived from the title;
// publishing stamps published_at.
func (s *PostService) Create(in *PostInput) (*models.Post, error) {
	post := &models.Post{
		Slug:        in.Slug,
		Title:       in.Title,
		Excerpt:     in.Excerpt,
		Content:     in.Content,
		Author:      in.Author,
		Tags:        in.Tags,
		IsPublished: in.IsPublished,
	}
	if post.Slug == "" {
		post.Slug = utils.Slugify(post.Title)
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	if post.IsPublished {
		now := time.Now()
		post.PublishedAt = &now
	}
	if err := s.posts.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// Update rewrites a post. The original published_at survives as long as
// the post stays published; unpublishing clears it.
func (s *PostService) Update(id int, in *PostInput) (*models.Post, error) {
	post, err := s.posts.GetByID(id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	post.Title = in.Title
	post.Excerpt = in.Excerpt
	post.Content = in.Content
	post.Author = in.Author
	post.Tags = in.Tags
	if post.Tags == nil {
		post.Tags = []string{}
	}
	if in.Slug != "" {
		post.Slug = in.Slug
	}

	switch {
	case in.IsPublished && !post.IsPublished:
		now := time.Now()
		post.PublishedAt = &now
	case !in.IsPublished:
		post.PublishedAt = nil
	}
	post.IsPublished = in.IsPublished

	if err := s.posts.Update(post); err != nil {
		return nil, mapNotFound(err)
	}
	return post, nil
}

// List returns a page of posts for the admin panel (drafts included).
func (s *PostService) List(tag string, page, limit int) ([]models.Post, int, error) {
	limit, offset := pageBounds(page, limit)
	return s.posts.List(false, tag, limit, offset)
}

// ListPublished returns a page of published posts for the public site.
func (s *PostService) ListPublished(tag string, page, limit int) ([]models.Post, int, error) {
	limit, offset := pageBounds(page, limit)
	return s.posts.List(true, tag, limit, offset)
}

// GetPublishedBySlug returns a published post for the public site.
// Drafts are indistinguishable from missing posts.
func (s *PostService) GetPublishedBySlug(slug string) (*models.Post, error) {
	post, err := s.posts.GetBySlug(slug)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if !post.IsPublished {
		return nil, utils.ErrNotFound
	}
	return post, nil
}

// Get returns any post by id (admin view).
func (s *PostService) Get(id int) (*models.Post, error) {
	post, err := s.posts.GetByID(id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return post, nil
}

// Delete removes a post.
func (s *PostService) Delete(id int) error {
	if err := s.posts.Delete(id); err != nil {
		return mapNotFound(err)
	}
	return nil
}

// mapNotFound converts sql.ErrNoRows into the shared not-found error.
func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return utils.ErrNotFound
	}
	return err
}

// pageBounds normalizes pagination input and derives the offset.
func pageBounds(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return limit, (page - 1) * limit
}
