package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/techtornix/techtornix-api/internal/models"
)

// ProjectRepository provides data access methods for the projects table.
type ProjectRepository struct {
	db *sqlx.DB
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, slug, title, summary, description, category,
	tech_stack, live_url, is_featured, sort_order, created_at, updated_at`

func scanProject(row interface{ Scan(...any) error }) (*models.Project, error) {
	var p models.Project
	if err := row.Scan(
		&p.ID,
		&p.Slug,
		&p.Title,
		&p.Summary,
		&p.Description,
		&p.Category,
		pq.Array(&p.TechStack),
		&p.LiveURL,
		&p.IsFeatured,
		&p.SortOrder,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetBySlug finds a project by slug.
func (r *ProjectRepository) GetBySlug(slug string) (*models.Project, error) {
	row := r.db.QueryRowx(`SELECT `+projectColumns+` FROM projects WHERE slug = $1`, slug)
	return scanProject(row)
}

// GetByID finds a project by id.
func (r *ProjectRepository) GetByID(id int) (*models.Project, error) {
	row := r.db.QueryRowx(`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	return scanProject(row)
}

// List returns all projects ordered for display: featured first, then by
// sort_order. An optional category narrows the result.
func (r *ProjectRepository) List(category string) ([]models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	args := []any{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY is_featured DESC, sort_order ASC, created_at DESC`

	rows, err := r.db.Queryx(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

// Create inserts a new project.
func (r *ProjectRepository) Create(project *models.Project) error {
	err := r.db.QueryRow(`
		INSERT INTO projects (slug, title, summary, description, category, tech_stack, live_url, is_featured, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, project.Slug, project.Title, project.Summary, project.Description, project.Category,
		pq.Array(project.TechStack), project.LiveURL, project.IsFeatured, project.SortOrder).
		Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
	return mapSlugConstraint(err)
}

// Update rewrites all mutable columns of a project.
func (r *ProjectRepository) Update(project *models.Project) error {
	res, err := r.db.Exec(`
		UPDATE projects
		SET slug = $2, title = $3, summary = $4, description = $5, category = $6,
		    tech_stack = $7, live_url = $8, is_featured = $9, sort_order = $10, updated_at = NOW()
		WHERE id = $1
	`, project.ID, project.Slug, project.Title, project.Summary, project.Description,
		project.Category, pq.Array(project.TechStack), project.LiveURL, project.IsFeatured, project.SortOrder)
	if err != nil {
		return mapSlugConstraint(err)
	}
	return requireRow(res)
}

// Delete removes a project.
func (r *ProjectRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
