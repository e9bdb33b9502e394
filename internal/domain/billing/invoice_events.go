package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeInvoice = "Invoice"

// Event type constants
const (
	EventTypeDepositRecorded = "DepositRecorded"
	EventTypeInvoiceIssued   = "InvoiceIssued"
	EventTypePaymentSettled  = "PaymentSettled"
	EventTypeInvoiceOverdue  = "InvoiceOverdue"
)

// DepositRecordedEvent is raised when the tenant records a deposit payment
type DepositRecordedEvent struct {
	shared.BaseDomainEvent
	InvoiceID uuid.UUID       `json:"invoice_id"`
	BookingID uuid.UUID       `json:"booking_id"`
	TenantID  uuid.UUID       `json:"tenant_id"`
	OwnerID   uuid.UUID       `json:"owner_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// NewDepositRecordedEvent creates a new DepositRecordedEvent
func NewDepositRecordedEvent(inv *Invoice) *DepositRecordedEvent {
	return &DepositRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDepositRecorded, AggregateTypeInvoice, inv.ID),
		InvoiceID:       inv.ID,
		BookingID:       inv.BookingID,
		TenantID:        inv.TenantID,
		OwnerID:         inv.OwnerID,
		Amount:          inv.Amount,
	}
}

// EventType returns the event type name
func (e *DepositRecordedEvent) EventType() string {
	return EventTypeDepositRecorded
}

// InvoiceIssuedEvent is raised when a rent invoice is produced from a reading
type InvoiceIssuedEvent struct {
	shared.BaseDomainEvent
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	BookingID     uuid.UUID       `json:"booking_id"`
	TenantID      uuid.UUID       `json:"tenant_id"`
	OwnerID       uuid.UUID       `json:"owner_id"`
	BillingPeriod BillingPeriod   `json:"billing_period"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       time.Time       `json:"due_date"`
}

// NewInvoiceIssuedEvent creates a new InvoiceIssuedEvent
func NewInvoiceIssuedEvent(inv *Invoice) *InvoiceIssuedEvent {
	return &InvoiceIssuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceIssued, AggregateTypeInvoice, inv.ID),
		InvoiceID:       inv.ID,
		BookingID:       inv.BookingID,
		TenantID:        inv.TenantID,
		OwnerID:         inv.OwnerID,
		BillingPeriod:   inv.BillingPeriod,
		Amount:          inv.Amount,
		DueDate:         inv.DueDate,
	}
}

// EventType returns the event type name
func (e *InvoiceIssuedEvent) EventType() string {
	return EventTypeInvoiceIssued
}

// PaymentSettledEvent is raised when a pending invoice flips to paid
type PaymentSettledEvent struct {
	shared.BaseDomainEvent
	InvoiceID   uuid.UUID       `json:"invoice_id"`
	BookingID   uuid.UUID       `json:"booking_id"`
	TenantID    uuid.UUID       `json:"tenant_id"`
	OwnerID     uuid.UUID       `json:"owner_id"`
	PaymentType PaymentType     `json:"payment_type"`
	Amount      decimal.Decimal `json:"amount"`
}

// NewPaymentSettledEvent creates a new PaymentSettledEvent
func NewPaymentSettledEvent(inv *Invoice) *PaymentSettledEvent {
	return &PaymentSettledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentSettled, AggregateTypeInvoice, inv.ID),
		InvoiceID:       inv.ID,
		BookingID:       inv.BookingID,
		TenantID:        inv.TenantID,
		OwnerID:         inv.OwnerID,
		PaymentType:     inv.PaymentType,
		Amount:          inv.Amount,
	}
}

// EventType returns the event type name
func (e *PaymentSettledEvent) EventType() string {
	return EventTypePaymentSettled
}

// InvoiceOverdueEvent is raised by the reminder scheduler for pending
// invoices past their due date
type InvoiceOverdueEvent struct {
	shared.BaseDomainEvent
	InvoiceID uuid.UUID       `json:"invoice_id"`
	BookingID uuid.UUID       `json:"booking_id"`
	TenantID  uuid.UUID       `json:"tenant_id"`
	OwnerID   uuid.UUID       `json:"owner_id"`
	Amount    decimal.Decimal `json:"amount"`
	DueDate   time.Time       `json:"due_date"`
}

// NewInvoiceOverdueEvent creates a new InvoiceOverdueEvent
func NewInvoiceOverdueEvent(inv *Invoice) *InvoiceOverdueEvent {
	return &InvoiceOverdueEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceOverdue, AggregateTypeInvoice, inv.ID),
		InvoiceID:       inv.ID,
		BookingID:       inv.BookingID,
		TenantID:        inv.TenantID,
		OwnerID:         inv.OwnerID,
		Amount:          inv.Amount,
		DueDate:         inv.DueDate,
	}
}

// EventType returns the event type name
func (e *InvoiceOverdueEvent) EventType() string {
	return EventTypeInvoiceOverdue
}
