package service

import (
	"github.com/techtornix/techtornix-api/internal/models"
	"github.com/techtornix/techtornix-api/internal/repository"
	"github.com/techtornix/techtornix-api/internal/utils"
)

// CareerService manages job openings.
type CareerService struct {
	careers *repository.CareerRepository
}

// NewCareerService constructs a CareerService.
func NewCareerService(careers *repository.CareerRepository) *CareerService {
	return &CareerService{careers: careers}
}

// CareerInput carries the mutable fields of a job opening.
type CareerInput struct {
	Slug        string `json:"slug"`
	Title       string `json:"title" binding:"required"`
	Department  string `json:"department" binding:"required"`
	Location    string `json:"location" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Description string `json:"description"`
	IsOpen      *bool  `json:"isOpen"`
}

func (in *CareerInput) apply(c *models.Career) {
	c.Title = in.Title
	c.Department = in.Department
	c.Location = in.Location
	c.Type = in.Type
	c.Description = in.Description
	if in.IsOpen != nil {
		c.IsOpen = *in.IsOpen
	}
	if in.Slug != "" {
		c.Slug = in.Slug
	} else if c.Slug == "" {
		c.Slug = utils.Slugify(in.Title)
	}
}

// Create inserts a new opening. New openings default to open.
func (s *CareerService) Create(in *CareerInput) (*models.Career, error) {
	if !models.ValidEmploymentType(in.Type) {
		return nil, utils.ErrInvalidStatus
	}
	career := &models.Career{IsOpen: true}
	in.apply(career)
	if err := s.careers.Create(career); err != nil {
		return nil, err
	}
	return career, nil
}

// Update rewrites an opening.
func (s *CareerService) Update(id int, in *CareerInput) (*models.Career, error) {
	if !models.ValidEmploymentType(in.Type) {
		return nil, utils.ErrInvalidStatus
	}
	career, err := s.careers.GetByID(id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	in.apply(career)
	if err := s.careers.Update(career); err != nil {
		return nil, mapNotFound(err)
	}
	return career, nil
}

// List returns openings; openOnly is used by the public careers page.
func (s *CareerService) List(openOnly bool) ([]models.Career, error) {
	return s.careers.List(openOnly)
}

// GetBySlug returns one opening.
func (s *CareerService) GetBySlug(slug string) (*models.Career, error) {
	career, err := s.careers.GetBySlug(slug)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return career, nil
}

// Delete removes an opening.
func (s *CareerService) Delete(id int) error {
	if err := s.careers.Delete(id); err != nil {
		return mapNotFound(err)
	}
	return nil
}
