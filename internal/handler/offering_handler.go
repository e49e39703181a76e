package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/techtornix/techtornix-api/internal/service"
	"github.com/techtornix/techtornix-api/internal/utils"
)

// OfferingHandler handles service-line endpoints.
type OfferingHandler struct {
	offeringService *service.OfferingService
}

// NewOfferingHandler constructs an OfferingHandler.
func NewOfferingHandler(offeringService *service.OfferingService) *OfferingHandler {
	return &OfferingHandler{offeringService: offeringService}
}

// ListPublic handles GET /v1/services (active offerings only)
func (h *OfferingHandler) ListPublic(c *gin.Context) {
	h.list(c, true)
}

// List handles GET /v1/admin/services
func (h *OfferingHandler) List(c *gin.Context) {
	h.list(c, false)
}

func (h *OfferingHandler) list(c *gin.Context, activeOnly bool) {
	offerings, err := h.offeringService.List(activeOnly)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve services")
		return
	}
	utils.Success(c, 200, "Services retrieved", gin.H{
		"services": offerings,
		"total":    len(offerings),
	})
}

// GetBySlug handles GET /v1/services/:slug
func (h *OfferingHandler) GetBySlug(c *gin.Context) {
	offering, err := h.offeringService.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.Error(c, 404, "SERVICE_NOT_FOUND", "Service not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve service")
		return
	}
	utils.Success(c, 200, "Service retrieved", offering)
}

// Create handles POST /v1/admin/services
func (h *OfferingHandler) Create(c *gin.Context) {
	var req service.OfferingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	offering, err := h.offeringService.Create(&req)
	if err != nil {
		if errors.Is(err, utils.ErrSlugExists) {
			utils.Error(c, 400, "SLUG_EXISTS", "A service with this slug already exists")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create service")
		return
	}
	utils.Success(c, 201, "Service created successfully", offering)
}

// Update handles PUT /v1/admin/services/:id
func (h *OfferingHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid service ID")
		return
	}

	var req service.OfferingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	offering, err := h.offeringService.Update(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrNotFound):
			utils.Error(c, 404, "SERVICE_NOT_FOUND", "Service not found")
		case errors.Is(err, utils.ErrSlugExists):
			utils.Error(c, 400, "SLUG_EXISTS", "A service with this slug already exists")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update service")
		}
		return
	}
	utils.Success(c, 200, "Service updated successfully", offering)
}

// Delete handles DELETE /v1/admin/services/:id
func (h *OfferingHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid service ID")
		return
	}
	if err := h.offeringService.Delete(id); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.Error(c, 404, "SERVICE_NOT_FOUND", "Service not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete service")
		return
	}
	utils.Success(c, 200, "Service deleted successfully", gin.H{"id": id})
}
