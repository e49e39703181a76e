package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/techtornix/techtornix-api/internal/service"
	"github.com/techtornix/techtornix-api/internal/utils"
)

// ContactHandler handles contact-form submission and admin triage endpoints.
type ContactHandler struct {
	contactService *service.ContactService
}

// NewContactHandler constructs a ContactHandler.
func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Submit handles POST /v1/contact (public)
func (h *ContactHandler) Submit(c *gin.Context) {
	var req service.ContactInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Name, email, subject and message are required")
		return
	}

	sub, err := h.contactService.Submit(&req)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to submit message")
		return
	}
	utils.Success(c, 201, "Message received", gin.H{"id": sub.ID})
}

// List handles GET /v1/admin/contacts
func (h *ContactHandler) List(c *gin.Context) {
	page, limit := pageQuery(c)
	status := c.Query("status")

	subs, total, err := h.contactService.List(status, page, limit)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidStatus) {
			utils.Error(c, 400, "INVALID_STATUS", "Unknown submission status")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve submissions")
		return
	}
	utils.SuccessWithPagination(c, 200, "Submissions retrieved", gin.H{"submissions": subs}, page, limit, total)
}

// Get handles GET /v1/admin/contacts/:id
func (h *ContactHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid submission ID")
		return
	}

	sub, err := h.contactService.Get(id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.Error(c, 404, "SUBMISSION_NOT_FOUND", "Submission not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve submission")
		return
	}
	utils.Success(c, 200, "Submission retrieved", sub)
}

// UpdateStatus handles PATCH /v1/admin/contacts/:id/status
func (h *ContactHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid submission ID")
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Status is required")
		return
	}

	if err := h.contactService.UpdateStatus(id, req.Status); err != nil {
		switch {
		case errors.Is(err, utils.ErrInvalidStatus):
			utils.Error(c, 400, "INVALID_STATUS", "Unknown submission status")
		case errors.Is(err, utils.ErrNotFound):
			utils.Error(c, 404, "SUBMISSION_NOT_FOUND", "Submission not found")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update submission")
		}
		return
	}
	utils.Success(c, 200, "Submission updated", gin.H{"id": id, "status": req.Status})
}

// Delete handles DELETE /v1/admin/contacts/:id
func (h *ContactHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid submission ID")
		return
	}
	if err := h.contactService.Delete(id); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.Error(c, 404, "SUBMISSION_NOT_FOUND", "Submission not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete submission")
		return
	}
	utils.Success(c, 200, "Submission deleted", gin.H{"id": id})
}
