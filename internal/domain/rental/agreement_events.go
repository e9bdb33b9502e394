package rental

import (
	"github.com/google/uuid"
	"github.com/rentflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeAgreement = "RentalAgreement"

// Event type constants
const (
	EventTypeAgreementCreated    = "AgreementCreated"
	EventTypeAgreementApproved   = "AgreementApproved"
	EventTypeAgreementDeclined   = "AgreementDeclined"
	EventTypeAgreementActivated  = "AgreementActivated"
	EventTypeAgreementTerminated = "AgreementTerminated"
)

// AgreementCreatedEvent is raised when the owner sends an agreement to the tenant
type AgreementCreatedEvent struct {
	shared.BaseDomainEvent
	AgreementID   uuid.UUID       `json:"agreement_id"`
	BookingID     uuid.UUID       `json:"booking_id"`
	TenantID      uuid.UUID       `json:"tenant_id"`
	OwnerID       uuid.UUID       `json:"owner_id"`
	BaseRent      decimal.Decimal `json:"base_rent"`
	DepositAmount decimal.Decimal `json:"deposit_amount"`
}

// NewAgreementCreatedEvent creates a new AgreementCreatedEvent
func NewAgreementCreatedEvent(a *RentalAgreement) *AgreementCreatedEvent {
	return &AgreementCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAgreementCreated, AggregateTypeAgreement, a.ID),
		AgreementID:     a.ID,
		BookingID:       a.BookingID,
		TenantID:        a.TenantID,
		OwnerID:         a.OwnerID,
		BaseRent:        a.BaseRent,
		DepositAmount:   a.DepositAmount,
	}
}

// EventType returns the event type name
func (e *AgreementCreatedEvent) EventType() string {
	return EventTypeAgreementCreated
}

// AgreementApprovedEvent is raised when the tenant approves the terms
type AgreementApprovedEvent struct {
	shared.BaseDomainEvent
	AgreementID uuid.UUID `json:"agreement_id"`
	BookingID   uuid.UUID `json:"booking_id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	OwnerID     uuid.UUID `json:"owner_id"`
}

// NewAgreementApprovedEvent creates a new AgreementApprovedEvent
func NewAgreementApprovedEvent(a *RentalAgreement) *AgreementApprovedEvent {
	return &AgreementApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAgreementApproved, AggregateTypeAgreement, a.ID),
		AgreementID:     a.ID,
		BookingID:       a.BookingID,
		TenantID:        a.TenantID,
		OwnerID:         a.OwnerID,
	}
}

// EventType returns the event type name
func (e *AgreementApprovedEvent) EventType() string {
	return EventTypeAgreementApproved
}

// AgreementDeclinedEvent is raised when the tenant declines the terms
type AgreementDeclinedEvent struct {
	shared.BaseDomainEvent
	AgreementID uuid.UUID `json:"agreement_id"`
	BookingID   uuid.UUID `json:"booking_id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	OwnerID     uuid.UUID `json:"owner_id"`
}

// NewAgreementDeclinedEvent creates a new AgreementDeclinedEvent
func NewAgreementDeclinedEvent(a *RentalAgreement) *AgreementDeclinedEvent {
	return &AgreementDeclinedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAgreementDeclined, AggregateTypeAgreement, a.ID),
		AgreementID:     a.ID,
		BookingID:       a.BookingID,
		TenantID:        a.TenantID,
		OwnerID:         a.OwnerID,
	}
}

// EventType returns the event type name
func (e *AgreementDeclinedEvent) EventType() string {
	return EventTypeAgreementDeclined
}

// AgreementActivatedEvent is raised when the deposit settles and the contract
// comes into force
type AgreementActivatedEvent struct {
	shared.BaseDomainEvent
	AgreementID uuid.UUID `json:"agreement_id"`
	BookingID   uuid.UUID `json:"booking_id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	OwnerID     uuid.UUID `json:"owner_id"`
}

// NewAgreementActivatedEvent creates a new AgreementActivatedEvent
func NewAgreementActivatedEvent(a *RentalAgreement) *AgreementActivatedEvent {
	return &AgreementActivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAgreementActivated, AggregateTypeAgreement, a.ID),
		AgreementID:     a.ID,
		BookingID:       a.BookingID,
		TenantID:        a.TenantID,
		OwnerID:         a.OwnerID,
	}
}

// EventType returns the event type name
func (e *AgreementActivatedEvent) EventType() string {
	return EventTypeAgreementActivated
}

// AgreementTerminatedEvent is raised when the owner ends an active agreement
type AgreementTerminatedEvent struct {
	shared.BaseDomainEvent
	AgreementID uuid.UUID `json:"agreement_id"`
	BookingID   uuid.UUID `json:"booking_id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Reason      string    `json:"reason"`
}

// NewAgreementTerminatedEvent creates a new AgreementTerminatedEvent
func NewAgreementTerminatedEvent(a *RentalAgreement) *AgreementTerminatedEvent {
	return &AgreementTerminatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAgreementTerminated, AggregateTypeAgreement, a.ID),
		AgreementID:     a.ID,
		BookingID:       a.BookingID,
		TenantID:        a.TenantID,
		OwnerID:         a.OwnerID,
		Reason:          a.TerminateReason,
	}
}

// EventType returns the event type name
func (e *AgreementTerminatedEvent) EventType() string {
	return EventTypeAgreementTerminated
}
