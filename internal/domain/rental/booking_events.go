package rental

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentflow/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeBooking = "Booking"

// Event type constants
const (
	EventTypeBookingRequested = "BookingRequested"
	EventTypeBookingAccepted  = "BookingAccepted"
	EventTypeBookingRejected  = "BookingRejected"
	EventTypeDurationProposed = "DurationProposed"
	EventTypeDurationApproved = "DurationApproved"
	EventTypeBookingActivated = "BookingActivated"
)

// BookingRequestedEvent is raised when a tenant requests a property
type BookingRequestedEvent struct {
	shared.BaseDomainEvent
	BookingID       uuid.UUID `json:"booking_id"`
	PropertyID      uuid.UUID `json:"property_id"`
	TenantID        uuid.UUID `json:"tenant_id"`
	OwnerID         uuid.UUID `json:"owner_id"`
	RequestedMoveIn time.Time `json:"requested_move_in"`
}

// NewBookingRequestedEvent creates a new BookingRequestedEvent
func NewBookingRequestedEvent(b *Booking) *BookingRequestedEvent {
	return &BookingRequestedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookingRequested, AggregateTypeBooking, b.ID),
		BookingID:       b.ID,
		PropertyID:      b.PropertyID,
		TenantID:        b.TenantID,
		OwnerID:         b.OwnerID,
		RequestedMoveIn: b.RequestedMoveIn,
	}
}

// EventType returns the event type name
func (e *BookingRequestedEvent) EventType() string {
	return EventTypeBookingRequested
}

// BookingAcceptedEvent is raised when the owner accepts a booking
type BookingAcceptedEvent struct {
	shared.BaseDomainEvent
	BookingID  uuid.UUID `json:"booking_id"`
	PropertyID uuid.UUID `json:"property_id"`
	TenantID   uuid.UUID `json:"tenant_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
}

// NewBookingAcceptedEvent creates a new BookingAcceptedEvent
func NewBookingAcceptedEvent(b *Booking) *BookingAcceptedEvent {
	return &BookingAcceptedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookingAccepted, AggregateTypeBooking, b.ID),
		BookingID:       b.ID,
		PropertyID:      b.PropertyID,
		TenantID:        b.TenantID,
		OwnerID:         b.OwnerID,
	}
}

// EventType returns the event type name
func (e *BookingAcceptedEvent) EventType() string {
	return EventTypeBookingAccepted
}

// BookingRejectedEvent is raised when a booking reaches the REJECTED stage,
// whether by direct rejection, a declined duration, or a declined agreement
type BookingRejectedEvent struct {
	shared.BaseDomainEvent
	BookingID  uuid.UUID `json:"booking_id"`
	PropertyID uuid.UUID `json:"property_id"`
	TenantID   uuid.UUID `json:"tenant_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Reason     string    `json:"reason"`
}

// NewBookingRejectedEvent creates a new BookingRejectedEvent
func NewBookingRejectedEvent(b *Booking) *BookingRejectedEvent {
	return &BookingRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookingRejected, AggregateTypeBooking, b.ID),
		BookingID:       b.ID,
		PropertyID:      b.PropertyID,
		TenantID:        b.TenantID,
		OwnerID:         b.OwnerID,
		Reason:          b.RejectReason,
	}
}

// EventType returns the event type name
func (e *BookingRejectedEvent) EventType() string {
	return EventTypeBookingRejected
}

// DurationProposedEvent is raised when the tenant proposes a rental duration
type DurationProposedEvent struct {
	shared.BaseDomainEvent
	BookingID    uuid.UUID `json:"booking_id"`
	TenantID     uuid.UUID `json:"tenant_id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	RentalYears  int       `json:"rental_years"`
	RentalMonths int       `json:"rental_months"`
}

// NewDurationProposedEvent creates a new DurationProposedEvent
func NewDurationProposedEvent(b *Booking) *DurationProposedEvent {
	return &DurationProposedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDurationProposed, AggregateTypeBooking, b.ID),
		BookingID:       b.ID,
		TenantID:        b.TenantID,
		OwnerID:         b.OwnerID,
		RentalYears:     b.RentalYears,
		RentalMonths:    b.RentalMonths,
	}
}

// EventType returns the event type name
func (e *DurationProposedEvent) EventType() string {
	return EventTypeDurationProposed
}

// DurationApprovedEvent is raised when the owner approves a proposed duration
type DurationApprovedEvent struct {
	shared.BaseDomainEvent
	BookingID    uuid.UUID `json:"booking_id"`
	TenantID     uuid.UUID `json:"tenant_id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	RentalYears  int       `json:"rental_years"`
	RentalMonths int       `json:"rental_months"`
}

// NewDurationApprovedEvent creates a new DurationApprovedEvent
func NewDurationApprovedEvent(b *Booking) *DurationApprovedEvent {
	return &DurationApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDurationApproved, AggregateTypeBooking, b.ID),
		BookingID:       b.ID,
		TenantID:        b.TenantID,
		OwnerID:         b.OwnerID,
		RentalYears:     b.RentalYears,
		RentalMonths:    b.RentalMonths,
	}
}

// EventType returns the event type name
func (e *DurationApprovedEvent) EventType() string {
	return EventTypeDurationApproved
}

// BookingActivatedEvent is raised when the deposit settles and the tenancy begins
type BookingActivatedEvent struct {
	shared.BaseDomainEvent
	BookingID  uuid.UUID `json:"booking_id"`
	PropertyID uuid.UUID `json:"property_id"`
	TenantID   uuid.UUID `json:"tenant_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
}

// NewBookingActivatedEvent creates a new BookingActivatedEvent
func NewBookingActivatedEvent(b *Booking) *BookingActivatedEvent {
	return &BookingActivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookingActivated, AggregateTypeBooking, b.ID),
		BookingID:       b.ID,
		PropertyID:      b.PropertyID,
		TenantID:        b.TenantID,
		OwnerID:         b.OwnerID,
	}
}

// EventType returns the event type name
func (e *BookingActivatedEvent) EventType() string {
	return EventTypeBookingActivated
}
