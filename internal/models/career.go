package models

import "time"

// Employment types for career openings.
const (
	EmploymentFullTime   = "full-time"
	EmploymentPartTime   = "part-time"
	EmploymentContract   = "contract"
	EmploymentInternship = "internship"
)

// Career is a job opening listed on the careers page.
type Career struct {
	ID          int       `db:"id" json:"id"`
	Slug        string    `db:"slug" json:"slug"`
	Title       string    `db:"title" json:"title"`
	Department  string    `db:"department" json:"department"`
	Location    string    `db:"location" json:"location"`
	Type        string    `db:"type" json:"type"`
	Description string    `db:"description" json:"description"`
	IsOpen      bool      `db:"is_open" json:"isOpen"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// ValidEmploymentType reports whether t is a known employment type.
func ValidEmploymentType(t string) bool {
	switch t {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentInternship:
		return true
	}
	return false
}
