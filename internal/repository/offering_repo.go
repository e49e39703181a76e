package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/techtornix/techtornix-api/internal/models"
)

// OfferingRepository provides data access methods for the offerings table.
type OfferingRepository struct {
	db *sqlx.DB
}

// NewOfferingRepository creates a new OfferingRepository.
func NewOfferingRepository(db *sqlx.DB) *OfferingRepository {
	return &OfferingRepository{db: db}
}

const offeringColumns = `id, slug, name, summary, description, icon,
	sort_order, is_active, created_at, updated_at`

// GetBySlug finds an offering by slug.
func (r *OfferingRepository) GetBySlug(slug string) (*models.Offering, error) {
	var o models.Offering
	err := r.db.Get(&o, `SELECT `+offeringColumns+` FROM offerings WHERE slug = $1`, slug)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// GetByID finds an offering by id.
func (r *OfferingRepository) GetByID(id int) (*models.Offering, error) {
	var o models.Offering
	err := r.db.Get(&o, `SELECT `+offeringColumns+` FROM offerings WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// List returns offerings in display order. activeOnly hides retired lines.
func (r *OfferingRepository) List(activeOnly bool) ([]models.Offering, error) {
	query := `SELECT ` + offeringColumns + ` FROM offerings`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY sort_order ASC, name ASC`

	offerings := []models.Offering{}
	err := r.db.Select(&offerings, query)
	return offerings, err
}

// Create inserts a new offering.
func (r *OfferingRepository) Create(o *models.Offering) error {
	err := r.db.QueryRow(`
		INSERT INTO offerings (slug, name, summary, description, icon, sort_order, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, o.Slug, o.Name, o.Summary, o.Description, o.Icon, o.SortOrder, o.IsActive).
		Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	return mapSlugConstraint(err)
}

// Update rewrites all mutable columns of an offering.
func (r *OfferingRepository) Update(o *models.Offering) error {
	res, err := r.db.Exec(`
		UPDATE offerings
		SET slug = $2, name = $3, summary = $4, description = $5, icon = $6,
		    sort_order = $7, is_active = $8, updated_at = NOW()
		WHERE id = $1
	`, o.ID, o.Slug, o.Name, o.Summary, o.Description, o.Icon, o.SortOrder, o.IsActive)
	if err != nil {
		return mapSlugConstraint(err)
	}
	return requireRow(res)
}

// Delete removes an offering.
func (r *OfferingRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM offerings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
