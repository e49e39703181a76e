package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/techtornix/techtornix-api/internal/service"
	"github.com/techtornix/techtornix-api/internal/utils"
)

// ProjectHandler handles portfolio endpoints.
type ProjectHandler struct {
	projectService *service.ProjectService
}

// NewProjectHandler constructs a ProjectHandler.
func NewProjectHandler(projectService *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// List handles GET /v1/projects and GET /v1/admin/projects
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projectService.List(c.Query("category"))
	if err != nil {
		log.Error().Err(err).Msg("Failed to list projects")
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve projects")
		return
	}
	utils.Success(c, 200, "Projects retrieved", gin.H{
		"projects": projects,
		"total":    len(projects),
	})
}

// GetBySlug handles GET /v1/projects/:slug
func (h *ProjectHandler) GetBySlug(c *gin.Context) {
	project, err := h.projectService.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.Error(c, 404, "PROJECT_NOT_FOUND", "Project not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve project")
		return
	}
	utils.Success(c, 200, "Project retrieved", project)
}

// Create handles POST /v1/admin/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req service.ProjectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	project, err := h.projectService.Create(&req)
	if err != nil {
		if errors.Is(err, utils.ErrSlugExists) {
			utils.Error(c, 400, "SLUG_EXISTS", "A project with this slug already exists")
			return
		}
		log.Error().Err(err).Msg("Failed to create project")
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create project")
		return
	}
	utils.Success(c, 201, "Project created successfully", project)
}

// Update handles PUT /v1/admin/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid project ID")
		return
	}

	var req service.ProjectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	project, err := h.projectService.Update(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrNotFound):
			utils.Error(c, 404, "PROJECT_NOT_FOUND", "Project not found")
		case errors.Is(err, utils.ErrSlugExists):
			utils.Error(c, 400, "SLUG_EXISTS", "A project with this slug already exists")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update project")
		}
		return
	}
	utils.Success(c, 200, "Project updated successfully", project)
}

// Delete handles DELETE /v1/admin/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid project ID")
		return
	}
	if err := h.projectService.Delete(id); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.Error(c, 404, "PROJECT_NOT_FOUND", "Project not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete project")
		return
	}
	utils.Success(c, 200, "Project deleted successfully", gin.H{"id": id})
}
