package repository

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/techtornix/techtornix-api/internal/models"
)

// ContactRepository provides data access methods for contact_submissions.
type ContactRepository struct {
	db *sqlx.DB
}

// NewContactRepository creates a new ContactRepository.
func NewContactRepository(db *sqlx.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

const contactColumns = `id, name, email, subject, message, status, created_at, updated_at`

// GetByID finds a submission by id.
func (r *ContactRepository) GetByID(id int) (*models.ContactSubmission, error) {
	var sub models.ContactSubmission
	err := r.db.Get(&sub, `SELECT `+contactColumns+` FROM contact_submissions WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// List returns a page of submissions, newest first, optionally filtered by status.
func (r *ContactRepository) List(status string, limit, offset int) ([]models.ContactSubmission, int, error) {
	where := "TRUE"
	args := []any{}
	if status != "" {
		where = "status = $1"
		args = append(args, status)
	}

	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM contact_submissions WHERE `+where, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM contact_submissions WHERE %s ORDER BY created_at DESC LIMIT %s OFFSET %s`,
		contactColumns, where, placeholder(len(args)+1), placeholder(len(args)+2))
	args = append(args, limit, offset)

	subs := []models.ContactSubmission{}
	if err := r.db.Select(&subs, query, args...); err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

// Create inserts a new submission with status "new".
func (r *ContactRepository) Create(sub *models.ContactSubmission) error {
	sub.Status = models.ContactStatusNew
	return r.db.QueryRow(`
		INSERT INTO contact_submissions (name, email, subject, message, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, sub.Name, sub.Email, sub.Subject, sub.Message, sub.Status).
		Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)
}

// UpdateStatus moves a submission between new/read/archived.
func (r *ContactRepository) UpdateStatus(id int, status string) error {
	res, err := r.db.Exec(`
		UPDATE contact_submissions SET status = $2, updated_at = NOW() WHERE id = $1
	`, id, status)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes a submission.
func (r *ContactRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM contact_submissions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
