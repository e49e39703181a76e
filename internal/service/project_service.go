package service

import (
	"github.com/techtornix/techtornix-api/internal/models"
	"github.com/techtornix/techtornix-api/internal/repository"
	"github.com/techtornix/techtornix-api/internal/utils"
)

// ProjectService manages portfolio projects.
type ProjectService struct {
	projects *repository.ProjectRepository
}

// NewProjectService constructs a ProjectService.
func NewProjectService(projects *repository.ProjectRepository) *ProjectService {
	return &ProjectService{projects: projects}
}

// ProjectInput carries the mutable fields of a project.
type ProjectInput struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title" binding:"required"`
	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	Category    string   `json:"category" binding:"required"`
	TechStack   []string `json:"techStack"`
	LiveURL     *string  `json:"liveUrl"`
	IsFeatured  bool     `json:"isFeatured"`
	SortOrder   int      `json:"sortOrder"`
}

func (in *ProjectInput) apply(p *models.Project) {
	p.Title = in.Title
	p.Summary = in.Summary
	p.Description = in.Description
	p.Category = in.Category
	p.TechStack = in.TechStack
	if p.TechStack == nil {
		p.TechStack = []string{}
	}
	p.LiveURL = in.LiveURL
	p.IsFeatured = in.IsFeatured
	p.SortOrder = in.SortOrder
	if in.Slug != "" {
		p.Slug = in.Slug
	} else if p.Slug == "" {
		p.Slug = utils.Slugify(in.Title)
	}
}

// Create inserts a new project.
func (s *ProjectService) Create(in *ProjectInput) (*models.Project, error) {
	project := &models.Project{}
	in.apply(project)
	if err := s.projects.Create(project); err != nil {
		return nil, err
	}
	return project, nil
}

// Update rewrites a project.
func (s *ProjectService) Update(id int, in *ProjectInput) (*models.Project, error) {
	project, err := s.projects.GetByID(id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	in.apply(project)
	if err := s.projects.Update(project); err != nil {
		return nil, mapNotFound(err)
	}
	return project, nil
}

// List returns projects in display order, optionally filtered by category.
func (s *ProjectService) List(category string) ([]models.Project, error) {
	return s.projects.List(category)
}

// GetBySlug returns one project.
func (s *ProjectService) GetBySlug(slug string) (*models.Project, error) {
	project, err := s.projects.GetBySlug(slug)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return project, nil
}

// Delete removes a project.
func (s *ProjectService) Delete(id int) error {
	if err := s.projects.Delete(id); err != nil {
		return mapNotFound(err)
	}
	return nil
}
