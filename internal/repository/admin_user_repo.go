package repository

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/techtornix/techtornix-api/internal/models"
	"github.com/techtornix/techtornix-api/internal/utils"
)

// AdminUserRepository provides data access methods for the admin_users table.
// It is the credential store behind the login and session-gate paths.
type AdminUserRepository struct {
	db *sqlx.DB
}

// NewAdminUserRepository creates a new AdminUserRepository.
func NewAdminUserRepository(db *sqlx.DB) *AdminUserRepository {
	return &AdminUserRepository{db: db}
}

const adminColumns = `id, username, email, password_hash, role, is_active,
	login_attempts, lock_until, last_login, created_at, updated_at`

// GetByIdentifier finds an admin by exact username or case-insensitive email.
func (r *AdminUserRepository) GetByIdentifier(identifier string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.Get(&admin, `
		SELECT `+adminColumns+`
		FROM admin_users
		WHERE username = $1 OR email = $2
	`, identifier, normalizeEmail(identifier))
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// GetByID finds an admin by numeric id.
func (r *AdminUserRepository) GetByID(id int) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.Get(&admin, `
		SELECT `+adminColumns+`
		FROM admin_users
		WHERE id = $1
	`, id)
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// List returns all admins, newest first.
func (r *AdminUserRepository) List() ([]models.Admin, error) {
	admins := []models.Admin{}
	err := r.db.Select(&admins, `
		SELECT `+adminColumns+`
		FROM admin_users
		ORDER BY created_at DESC
	`)
	return admins, err
}

// Count returns the number of admin accounts.
func (r *AdminUserRepository) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM admin_users`)
	return n, err
}

// Create creates a new admin. Email is lowercased before insert.
func (r *AdminUserRepository) Create(admin *models.Admin) error {
	admin.Email = normalizeEmail(admin.Email)
	err := r.db.QueryRow(`
		INSERT INTO admin_users (username, email, password_hash, role, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, admin.Username, admin.Email, admin.PasswordHash, admin.Role, admin.IsActive).
		Scan(&admin.ID, &admin.CreatedAt, &admin.UpdatedAt)
	return mapAdminConstraint(err)
}

// RecordFailedAttempt increments login_attempts and, when the new value
// reaches threshold, sets lock_until in the same statement. The single
// conditional UPDATE keeps the increment-and-lock decision atomic under
// concurrent login attempts. Returns the updated counter and lock.
func (r *AdminUserRepository) RecordFailedAttempt(id, threshold int, lockUntil time.Time) (int, *time.Time, error) {
	var attempts int
	var lock *time.Time
	err := r.db.QueryRow(`
		UPDATE admin_users
		SET login_attempts = login_attempts + 1,
		    lock_until = CASE WHEN login_attempts + 1 >= $2 THEN $3 ELSE lock_until END,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING login_attempts, lock_until
	`, id, threshold, lockUntil).Scan(&attempts, &lock)
	if err != nil {
		return 0, nil, err
	}
	return attempts, lock, nil
}

// RecordLogin resets the lockout state and stamps last_login after a
// successful authentication. This is the only path that clears lock_until.
func (r *AdminUserRepository) RecordLogin(id int, at time.Time) error {
	res, err := r.db.Exec(`
		UPDATE admin_users
		SET login_attempts = 0, lock_until = NULL, last_login = $2, updated_at = NOW()
		WHERE id = $1
	`, id, at)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// SetActive toggles the is_active flag.
func (r *AdminUserRepository) SetActive(id int, active bool) error {
	res, err := r.db.Exec(`
		UPDATE admin_users SET is_active = $2, updated_at = NOW() WHERE id = $1
	`, id, active)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// mapAdminConstraint translates unique-violation errors into app errors.
func mapAdminConstraint(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		if strings.Contains(pqErr.Constraint, "email") {
			return utils.ErrDuplicateEmail
		}
		return utils.ErrDuplicateUsername
	}
	return err
}

// requireRow converts a zero-row update into sql.ErrNoRows.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
