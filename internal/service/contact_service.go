package service

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/techtornix/techtornix-api/internal/models"
	"github.com/techtornix/techtornix-api/internal/repository"
	"github.com/techtornix/techtornix-api/internal/sse"
	"github.com/techtornix/techtornix-api/internal/utils"
)

// ContactService manages contact-form submissions.
type ContactService struct {
	contacts *repository.ContactRepository
	notifier sse.ActivityNotifier
}

// NewContactService constructs a ContactService.
func NewContactService(contacts *repository.ContactRepository, notifier sse.ActivityNotifier) *ContactService {
	return &ContactService{contacts: contacts, notifier: notifier}
}

// ContactInput is the public contact-form payload.
type ContactInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// Submit stores a new submission and notifies connected dashboards.
func (s *ContactService) Submit(in *ContactInput) (*models.ContactSubmission, error) {
	sub := &models.ContactSubmission{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.ToLower(strings.TrimSpace(in.Email)),
		Subject: strings.TrimSpace(in.Subject),
		Message: in.Message,
	}
	if err := s.contacts.Create(sub); err != nil {
		return nil, err
	}

	log.Info().Int("submission_id", sub.ID).Str("subject", sub.Subject).Msg("Contact submission received")
	s.notifier.NotifyContact(sub)
	return sub, nil
}

// List returns a page of submissions, optionally filtered by status.
func (s *ContactService) List(status string, page, limit int) ([]models.ContactSubmission, int, error) {
	if status != "" && !models.ValidContactStatus(status) {
		return nil, 0, utils.ErrInvalidStatus
	}
	limit, offset := pageBounds(page, limit)
	return s.contacts.List(status, limit, offset)
}

// Get returns one submission.
func (s *ContactService) Get(id int) (*models.ContactSubmission, error) {
	sub, err := s.contacts.GetByID(id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return sub, nil
}

// UpdateStatus moves a submission between new/read/archived.
func (s *ContactService) UpdateStatus(id int, status string) error {
	if !models.ValidContactStatus(status) {
		return utils.ErrInvalidStatus
	}
	if err := s.contacts.UpdateStatus(id, status); err != nil {
		return mapNotFound(err)
	}
	return nil
}

// Delete removes a submission.
func (s *ContactService) Delete(id int) error {
	if err := s.contacts.Delete(id); err != nil {
		return mapNotFound(err)
	}
	return nil
}
