package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/techtornix/techtornix-api/internal/service"
	"github.com/techtornix/techtornix-api/internal/utils"
)

// CareerHandler handles job-opening endpoints.
type CareerHandler struct {
	careerService *service.CareerService
}

// NewCareerHandler constructs a CareerHandler.
func NewCareerHandler(careerService *service.CareerService) *CareerHandler {
	return &CareerHandler{careerService: careerService}
}

// ListPublic handles GET /v1/careers (open roles only)
func (h *CareerHandler) ListPublic(c *gin.Context) {
	h.list(c, true)
}

// List handles GET /v1/admin/careers
func (h *CareerHandler) List(c *gin.Context) {
	h.list(c, false)
}

func (h *CareerHandler) list(c *gin.Context, openOnly bool) {
	careers, err := h.careerService.List(openOnly)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve careers")
		return
	}
	utils.Success(c, 200, "Careers retrieved", gin.H{
		"careers": careers,
		"total":   len(careers),
	})
}

// GetBySlug handles GET /v1/careers/:slug
func (h *CareerHandler) GetBySlug(c *gin.Context) {
	career, err := h.careerService.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.Error(c, 404, "CAREER_NOT_FOUND", "Career not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve career")
		return
	}
	utils.Success(c, 200, "Career retrieved", career)
}

// Create handles POST /v1/admin/careers
func (h *CareerHandler) Create(c *gin.Context) {
	var req service.CareerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	career, err := h.careerService.Create(&req)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrInvalidStatus):
			utils.Error(c, 400, "INVALID_TYPE", "Unknown employment type")
		case errors.Is(err, utils.ErrSlugExists):
			utils.Error(c, 400, "SLUG_EXISTS", "A career with this slug already exists")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create career")
		}
		return
	}
	utils.Success(c, 201, "Career created successfully", career)
}

// Update handles PUT /v1/admin/careers/:id
func (h *CareerHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid career ID")
		return
	}

	var req service.CareerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	career, err := h.careerService.Update(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrNotFound):
			utils.Error(c, 404, "CAREER_NOT_FOUND", "Career not found")
		case errors.Is(err, utils.ErrInvalidStatus):
			utils.Error(c, 400, "INVALID_TYPE", "Unknown employment type")
		case errors.Is(err, utils.ErrSlugExists):
			utils.Error(c, 400, "SLUG_EXISTS", "A career with this slug already exists")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update career")
		}
		return
	}
	utils.Success(c, 200, "Career updated successfully", career)
}

// Delete handles DELETE /v1/admin/careers/:id
func (h *CareerHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid career ID")
		return
	}
	if err := h.careerService.Delete(id); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.Error(c, 404, "CAREER_NOT_FOUND", "Career not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete career")
		return
	}
	utils.Success(c, 200, "Career deleted successfully", gin.H{"id": id})
}
