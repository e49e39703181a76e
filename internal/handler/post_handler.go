package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/techtornix/techtornix-api/internal/service"
	"github.com/techtornix/techtornix-api/internal/utils"
)

// PostHandler handles blog endpoints.
type PostHandler struct {
	postService *service.PostService
}

// NewPostHandler constructs a PostHandler.
func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// ListPublished handles GET /v1/posts
func (h *PostHandler) ListPublished(c *gin.Context) {
	page, limit := pageQuery(c)
	posts, total, err := h.postService.ListPublished(c.Query("tag"), page, limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list posts")
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve posts")
		return
	}
	utils.SuccessWithPagination(c, 200, "Posts retrieved", gin.H{"posts": posts}, page, limit, total)
}

// GetBySlug handles GET /v1/posts/:slug
func (h *PostHandler) GetBySlug(c *gin.Context) {
	post, err := h.postService.GetPublishedBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.Error(c, 404, "POST_NOT_FOUND", "Post not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve post")
		return
	}
	utils.Success(c, 200, "Post retrieved", post)
}

// List handles GET /v1/admin/posts (drafts included)
func (h *PostHandler) List(c *gin.Context) {
	page, limit := pageQuery(c)
	posts, total, err := h.postService.List(c.Query("tag"), page, limit)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve posts")
		return
	}
	utils.SuccessWithPagination(c, 200, "Posts retrieved", gin.H{"posts": posts}, page, limit, total)
}

// Get handles GET /v1/admin/posts/:id
func (h *PostHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid post ID")
		return
	}
	post, err := h.postService.Get(id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.Error(c, 404, "POST_NOT_FOUND", "Post not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve post")
		return
	}
	utils.Success(c, 200, "Post retrieved", post)
}

// Create handles POST /v1/admin/posts
func (h *PostHandler) Create(c *gin.Context) {
	var req service.PostInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	post, err := h.postService.Create(&req)
	if err != nil {
		if errors.Is(err, utils.ErrSlugExists) {
			utils.Error(c, 400, "SLUG_EXISTS", "A post with this slug already exists")
			return
		}
		log.Error().Err(err).Msg("Failed to create post")
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create post")
		return
	}
	utils.Success(c, 201, "Post created successfully", post)
}

// Update handles PUT /v1/admin/posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid post ID")
		return
	}

	var req service.PostInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	post, err := h.postService.Update(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrNotFound):
			utils.Error(c, 404, "POST_NOT_FOUND", "Post not found")
		case errors.Is(err, utils.ErrSlugExists):
			utils.Error(c, 400, "SLUG_EXISTS", "A post with this slug already exists")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update post")
		}
		return
	}
	utils.Success(c, 200, "Post updated successfully", post)
}

// Delete handles DELETE /v1/admin/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid post ID")
		return
	}
	if err := h.postService.Delete(id); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.Error(c, 404, "POST_NOT_FOUND", "Post not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete post")
		return
	}
	utils.Success(c, 200, "Post deleted successfully", gin.H{"id": id})
}

// pageQuery reads page/limit query parameters with defaults.
func pageQuery(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return page, limit
}
