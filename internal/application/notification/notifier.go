package notification

import (
	"context"

	"github.com/google/uuid"
)

// Notification is one message addressed to a single party. Delivery is best
// effort: a lost notification never fails or rolls back the operation that
// produced it.
type Notification struct {
	RecipientID uuid.UUID `json:"recipient_id"`
	EventType   string    `json:"event_type"`
	Subject     string    `json:"subject"`
	Body        string    `json:"body"`
	BookingID   uuid.UUID `json:"booking_id"`
}

// Notifier delivers notifications to a sink (message channel, mail gateway).
type Notifier interface {
	Send(ctx context.Context, n Notification) error
}
