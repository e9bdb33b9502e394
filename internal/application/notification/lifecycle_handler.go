package notification

import (
	"context"
	"fmt"

	"github.com/rentflow/backend/internal/domain/rental"
	"github.com/rentflow/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// LifecycleNotificationHandler turns booking and agreement events into
// notifications for the counterparty. Every stage change notifies the party
// who did not cause it.
type LifecycleNotificationHandler struct {
	notifier Notifier
	logger   *zap.Logger
}

// NewLifecycleNotificationHandler creates a new handler for lifecycle events
func NewLifecycleNotificationHandler(notifier Notifier, logger *zap.Logger) *LifecycleNotificationHandler {
	return &LifecycleNotificationHandler{
		notifier: notifier,
		logger:   logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *LifecycleNotificationHandler) EventTypes() []string {
	return []string{
		rental.EventTypeBookingRequested,
		rental.EventTypeBookingAccepted,
		rental.EventTypeBookingRejected,
		rental.EventTypeDurationProposed,
		rental.EventTypeDurationApproved,
		rental.EventTypeBookingActivated,
		rental.EventTypeAgreementCreated,
		rental.EventTypeAgreementApproved,
		rental.EventTypeAgreementDeclined,
		rental.EventTypeAgreementTerminated,
	}
}

// Handle converts a lifecycle event into a notification. Unknown events are
// ignored; delivery failures are logged and swallowed.
func (h *LifecycleNotificationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	n, ok := h.build(event)
	if !ok {
		return nil
	}

	if err := h.notifier.Send(ctx, n); err != nil {
		h.logger.Warn("notification delivery failed",
			zap.String("event_type", event.EventType()),
			zap.String("recipient_id", n.RecipientID.String()),
			zap.Error(err),
		)
	}
	return nil
}

func (h *LifecycleNotificationHandler) build(event shared.DomainEvent) (Notification, bool) {
	switch e := event.(type) {
	case *rental.BookingRequestedEvent:
		return Notification{
			RecipientID: e.OwnerID,
			EventType:   e.EventType(),
			Subject:     "New booking request",
			Body:        fmt.Sprintf("A tenant has requested to book your property (booking %s).", e.BookingID),
			BookingID:   e.BookingID,
		}, true
	case *rental.BookingAcceptedEvent:
		return Notification{
			RecipientID: e.TenantID,
			EventType:   e.EventType(),
			Subject:     "Booking accepted",
			Body:        "The owner accepted your booking request. Please propose a rental duration.",
			BookingID:   e.BookingID,
		}, true
	case *rental.BookingRejectedEvent:
		return Notification{
			RecipientID: e.TenantID,
			EventType:   e.EventType(),
			Subject:     "Booking rejected",
			Body:        fmt.Sprintf("Your booking was rejected: %s", e.Reason),
			BookingID:   e.BookingID,
		}, true
	case *rental.DurationProposedEvent:
		return Notification{
			RecipientID: e.OwnerID,
			EventType:   e.EventType(),
			Subject:     "Rental duration proposed",
			Body:        fmt.Sprintf("The tenant proposed a duration of %d year(s) and %d month(s).", e.RentalYears, e.RentalMonths),
			BookingID:   e.BookingID,
		}, true
	case *rental.DurationApprovedEvent:
		return Notification{
			RecipientID: e.TenantID,
			EventType:   e.EventType(),
			Subject:     "Rental duration approved",
			Body:        "The owner approved your proposed duration. The agreement will follow.",
			BookingID:   e.BookingID,
		}, true
	case *rental.BookingActivatedEvent:
		return Notification{
			RecipientID: e.OwnerID,
			EventType:   e.EventType(),
			Subject:     "Tenancy activated",
			Body:        "The deposit settled and the tenancy is now active.",
			BookingID:   e.BookingID,
		}, true
	case *rental.AgreementCreatedEvent:
		return Notification{
			RecipientID: e.TenantID,
			EventType:   e.EventType(),
			Subject:     "Rental agreement received",
			Body:        "The owner sent you a rental agreement. Please review and respond.",
			BookingID:   e.BookingID,
		}, true
	case *rental.AgreementApprovedEvent:
		return Notification{
			RecipientID: e.OwnerID,
			EventType:   e.EventType(),
			Subject:     "Agreement approved",
			Body:        "The tenant approved the agreement and will now pay the deposit.",
			BookingID:   e.BookingID,
		}, true
	case *rental.AgreementDeclinedEvent:
		return Notification{
			RecipientID: e.OwnerID,
			EventType:   e.EventType(),
			Subject:     "Agreement declined",
			Body:        "The tenant declined the agreement. The booking has been closed.",
			BookingID:   e.BookingID,
		}, true
	case *rental.AgreementTerminatedEvent:
		return Notification{
			RecipientID: e.TenantID,
			EventType:   e.EventType(),
			Subject:     "Tenancy terminated",
			Body:        fmt.Sprintf("The owner terminated the tenancy: %s", e.Reason),
			BookingID:   e.BookingID,
		}, true
	}
	return Notification{}, false
}

var _ shared.EventHandler = (*LifecycleNotificationHandler)(nil)
