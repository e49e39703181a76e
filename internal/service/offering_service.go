package service

import (
	"github.com/techtornix/techtornix-api/internal/models"
	"github.com/techtornix/techtornix-api/internal/repository"
	"github.com/techtornix/techtornix-api/internal/utils"
)

// OfferingService manages the advertised service lines.
type OfferingService struct {
	offerings *repository.OfferingRepository
}

// NewOfferingService constructs an OfferingService.
func NewOfferingService(offerings *repository.OfferingRepository) *OfferingService {
	return &OfferingService{offerings: offerings}
}

// OfferingInput carries the mutable fields of an offering.
type OfferingInput struct {
	Slug        string `json:"slug"`
	Name        string `json:"name" binding:"required"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	SortOrder   int    `json:"sortOrder"`
	IsActive    *bool  `json:"isActive"`
}

func (in *OfferingInput) apply(o *models.Offering) {
	o.Name = in.Name
	o.Summary = in.Summary
	o.Description = in.Description
	o.Icon = in.Icon
	o.SortOrder = in.SortOrder
	if in.IsActive != nil {
		o.IsActive = *in.IsActive
	}
	if in.Slug != "" {
		o.Slug = in.Slug
	} else if o.Slug == "" {
		o.Slug = utils.Slugify(in.Name)
	}
}

// Create inserts a new offering. New offerings default to active.
func (s *OfferingService) Create(in *OfferingInput) (*models.Offering, error) {
	offering := &models.Offering{IsActive: true}
	in.apply(offering)
	if err := s.offerings.Create(offering); err != nil {
		return nil, err
	}
	return offering, nil
}

// Update rewrites an offering.
func (s *OfferingService) Update(id int, in *OfferingInput) (*models.Offering, error) {
	offering, err := s.offerings.GetByID(id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	in.apply(offering)
	if err := s.offerings.Update(offering); err != nil {
		return nil, mapNotFound(err)
	}
	return offering, nil
}

// List returns offerings in display order. activeOnly is used by the
// public site.
func (s *OfferingService) List(activeOnly bool) ([]models.Offering, error) {
	return s.offerings.List(activeOnly)
}

// GetBySlug returns one offering.
func (s *OfferingService) GetBySlug(slug string) (*models.Offering, error) {
	offering, err := s.offerings.GetBySlug(slug)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return offering, nil
}

// Delete removes an offering.
func (s *OfferingService) Delete(id int) error {
	if err := s.offerings.Delete(id); err != nil {
		return mapNotFound(err)
	}
	return nil
}
