package notification

import (
	"context"
	"fmt"

	"github.com/rentflow/backend/internal/domain/billing"
	"github.com/rentflow/backend/internal/domain/shared"
	"github.com/rentflow/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BillingNotificationHandler turns invoice events into notifications:
// a new bill goes to the tenant, a settlement confirmation to the owner,
// an overdue reminder to the tenant.
type BillingNotificationHandler struct {
	notifier Notifier
	logger   *zap.Logger
}

// NewBillingNotificationHandler creates a new handler for billing events
func NewBillingNotificationHandler(notifier Notifier, logger *zap.Logger) *BillingNotificationHandler {
	return &BillingNotificationHandler{
		notifier: notifier,
		logger:   logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *BillingNotificationHandler) EventTypes() []string {
	return []string{
		billing.EventTypeDepositRecorded,
		billing.EventTypeInvoiceIssued,
		billing.EventTypePaymentSettled,
		billing.EventTypeInvoiceOverdue,
	}
}

// Handle converts a billing event into a notification. Delivery failures are
// logged and swallowed.
func (h *BillingNotificationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
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

func (h *BillingNotificationHandler) build(event shared.DomainEvent) (Notification, bool) {
	switch e := event.(type) {
	case *billing.DepositRecordedEvent:
		return Notification{
			RecipientID: e.OwnerID,
			EventType:   e.EventType(),
			Subject:     "Deposit payment recorded",
			Body:        fmt.Sprintf("The tenant recorded a deposit payment of %s. Please confirm settlement.", money(e.Amount)),
			BookingID:   e.BookingID,
		}, true
	case *billing.InvoiceIssuedEvent:
		return Notification{
			RecipientID: e.TenantID,
			EventType:   e.EventType(),
			Subject:     fmt.Sprintf("Rent invoice for %s", e.BillingPeriod),
			Body:        fmt.Sprintf("Your rent invoice of %s is due on %s.", money(e.Amount), e.DueDate.Format("2006-01-02")),
			BookingID:   e.BookingID,
		}, true
	case *billing.PaymentSettledEvent:
		return Notification{
			RecipientID: e.OwnerID,
			EventType:   e.EventType(),
			Subject:     "Payment settled",
			Body:        fmt.Sprintf("A %s payment of %s has settled.", e.PaymentType, money(e.Amount)),
			BookingID:   e.BookingID,
		}, true
	case *billing.InvoiceOverdueEvent:
		return Notification{
			RecipientID: e.TenantID,
			EventType:   e.EventType(),
			Subject:     "Invoice overdue",
			Body:        fmt.Sprintf("Your invoice of %s was due on %s and is still unpaid.", money(e.Amount), e.DueDate.Format("2006-01-02")),
			BookingID:   e.BookingID,
		}, true
	}
	return Notification{}, false
}

var _ shared.EventHandler = (*BillingNotificationHandler)(nil)

// money renders an amount in the house currency for message bodies
func money(amount decimal.Decimal) string {
	return valueobject.NewMoneyNPR(amount).String()
}
