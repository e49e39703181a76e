package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/techtornix/techtornix-api/internal/models"
)

// CareerRepository provides data access methods for the careers table.
type CareerRepository struct {
	db *sqlx.DB
}

// NewCareerRepository creates a new CareerRepository.
func NewCareerRepository(db *sqlx.DB) *CareerRepository {
	return &CareerRepository{db: db}
}

const careerColumns = `id, slug, title, department, location, type,
	description, is_open, created_at, updated_at`

// GetBySlug finds a career opening by slug.
func (r *CareerRepository) GetBySlug(slug string) (*models.Career, error) {
	var career models.Career
	err := r.db.Get(&career, `SELECT `+careerColumns+` FROM careers WHERE slug = $1`, slug)
	if err != nil {
		return nil, err
	}
	return &career, nil
}

// GetByID finds a career opening by id.
func (r *CareerRepository) GetByID(id int) (*models.Career, error) {
	var career models.Career
	err := r.db.Get(&career, `SELECT `+careerColumns+` FROM careers WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &career, nil
}

// List returns career openings, newest first. openOnly hides closed roles.
func (r *CareerRepository) List(openOnly bool) ([]models.Career, error) {
	query := `SELECT ` + careerColumns + ` FROM careers`
	if openOnly {
		query += ` WHERE is_open = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	careers := []models.Career{}
	err := r.db.Select(&careers, query)
	return careers, err
}

// Create inserts a new career opening.
func (r *CareerRepository) Create(career *models.Career) error {
	err := r.db.QueryRow(`
		INSERT INTO careers (slug, title, department, location, type, description, is_open)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, career.Slug, career.Title, career.Department, career.Location, career.Type,
		career.Description, career.IsOpen).
		Scan(&career.ID, &career.CreatedAt, &career.UpdatedAt)
	return mapSlugConstraint(err)
}

// Update rewrites all mutable columns of a career opening.
func (r *CareerRepository) Update(career *models.Career) error {
	res, err := r.db.Exec(`
		UPDATE careers
		SET slug = $2, title = $3, department = $4, location = $5, type = $6,
		    description = $7, is_open = $8, updated_at = NOW()
		WHERE id = $1
	`, career.ID, career.Slug, career.Title, career.Department, career.Location,
		career.Type, career.Description, career.IsOpen)
	if err != nil {
		return mapSlugConstraint(err)
	}
	return requireRow(res)
}

// Delete removes a career opening.
func (r *CareerRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM careers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
