package notification

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an admin-facing inbox entry.
type Notification struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	Kind       string
	Message    string
	Read       bool
	CreatedAt  time.Time
}

// New returns an unread notification.
func New(customerID uuid.UUID, kind, message string) *Notification {
	return &Notification{
		ID:         uuid.New(),
		CustomerID: customerID,
		Kind:       kind,
		Message:    message,
		CreatedAt:  time.Now().UTC(),
	}
}
