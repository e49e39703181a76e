package models

import "time"

// Admin roles. Super-admins can manage other admin accounts.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super-admin"
)

// Admin represents an administrator account for the dashboard.
// PasswordHash and the lockout bookkeeping fields are never serialized.
type Admin struct {
	ID            int        `db:"id" json:"id"`
	Username      string     `db:"username" json:"username"`
	Email         string     `db:"email" json:"email"`
	PasswordHash  string     `db:"password_hash" json:"-"`
	Role          string     `db:"role" json:"role"`
	IsActive      bool       `db:"is_active" json:"isActive"`
	LoginAttempts int        `db:"login_attempts" json:"-"`
	LockUntil     *time.Time `db:"lock_until" json:"-"`
	LastLogin     *time.Time `db:"last_login" json:"lastLogin,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updatedAt"`
}

// ValidRole reports whether role is one of the known admin roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}
