package sse

import (
	"time"

	"github.com/techtornix/techtornix-api/internal/models"
)

// ActivityNotifier is the interface services use to emit dashboard events.
type ActivityNotifier interface {
	NotifyPageView(view *models.PageView)
	NotifyContact(sub *models.ContactSubmission)
}

// HubNotifier implements ActivityNotifier using the SSE Hub.
type HubNotifier struct {
	hub *Hub
}

// NewHubNotifier creates a notifier backed by the given Hub.
func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifyPageView(view *models.PageView) {
	if n.hub.ClientCount() == 0 {
		return
	}
	n.hub.Broadcast(&ActivityEvent{
		Event:     EventPageView,
		Path:      view.Path,
		Referrer:  view.Referrer,
		VisitorID: view.VisitorID,
		Timestamp: time.Now(),
	})
}

func (n *HubNotifier) NotifyContact(sub *models.ContactSubmission) {
	if n.hub.ClientCount() == 0 {
		return
	}
	n.hub.Broadcast(&ActivityEvent{
		Event:     EventContact,
		Name:      sub.Name,
		Subject:   sub.Subject,
		Timestamp: time.Now(),
	})
}

// NopNotifier is a no-op implementation for when SSE is not needed.
type NopNotifier struct{}

func (n *NopNotifier) NotifyPageView(view *models.PageView)        {}
func (n *NopNotifier) NotifyContact(sub *models.ContactSubmission) {}
