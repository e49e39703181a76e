package models

import "time"

// Contact submission statuses.
const (
	ContactStatusNew      = "new"
	ContactStatusRead     = "read"
	ContactStatusArchived = "archived"
)

// ContactSubmission is a message sent through the public contact form.
type ContactSubmission struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Subject   string    `db:"subject" json:"subject"`
	Message   string    `db:"message" json:"message"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// ValidContactStatus reports whether s is a known submission status.
func ValidContactStatus(s string) bool {
	switch s {
	case ContactStatusNew, ContactStatusRead, ContactStatusArchived:
		return true
	}
	return false
}
