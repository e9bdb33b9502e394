package rental

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rentflow/backend/internal/domain/shared"
)

// BookingStatus represents the stage of a booking in the rental lifecycle
type BookingStatus string

const (
	BookingStatusPending          BookingStatus = "PENDING"
	BookingStatusAccepted         BookingStatus = "ACCEPTED"
	BookingStatusDurationPending  BookingStatus = "DURATION_PENDING"
	BookingStatusDurationApproved BookingStatus = "DURATION_APPROVED"
	BookingStatusAgreementPending BookingStatus = "AGREEMENT_PENDING"
	BookingStatusPaymentPending   BookingStatus = "PAYMENT_PENDING"
	BookingStatusActive           BookingStatus = "ACTIVE"
	BookingStatusRejected         BookingStatus = "REJECTED"
)

// IsValid checks if the status is a valid BookingStatus
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusAccepted, BookingStatusDurationPending,
		BookingStatusDurationApproved, BookingStatusAgreementPending,
		BookingStatusPaymentPending, BookingStatusActive, BookingStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of BookingStatus
func (s BookingStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// The graph is a straight line with rejection exits; rejections are terminal
// and there is no path back to an earlier stage.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return target == BookingStatusAccepted || target == BookingStatusRejected
	case BookingStatusAccepted:
		return target == BookingStatusDurationPending
	case BookingStatusDurationPending:
		return target == BookingStatusDurationApproved || target == BookingStatusRejected
	case BookingStatusDurationApproved:
		return target == BookingStatusAgreementPending
	case BookingStatusAgreementPending:
		return target == BookingStatusPaymentPending || target == BookingStatusRejected
	case BookingStatusPaymentPending:
		return target == BookingStatusActive
	case BookingStatusActive, BookingStatusRejected:
		return false // Terminal stages
	}
	return false
}

// Booking is the aggregate root for a tenant's request to rent a property.
// It owns the stage machine of the rental lifecycle up to activation.
//
// OwnerID is denormalized from the property at booking time so the record
// stays audit-stable even if property ownership later changes.
type Booking struct {
	shared.BaseAggregateRoot
	PropertyID      uuid.UUID
	TenantID        uuid.UUID
	OwnerID         uuid.UUID
	RequestedMoveIn time.Time
	RentalYears     int
	RentalMonths    int
	Notes           string
	Status          BookingStatus
	AcceptedAt      *time.Time
	RejectedAt      *time.Time
	RejectReason    string
	DurationSetAt   *time.Time
	ActivatedAt     *time.Time
}

// NewBooking creates a new booking in PENDING status
func NewBooking(propertyID, tenantID, ownerID uuid.UUID, requestedMoveIn time.Time, notes string) (*Booking, error) {
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Property ID cannot be empty")
	}
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Tenant ID cannot be empty")
	}
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Owner ID cannot be empty")
	}
	if tenantID == ownerID {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Tenant cannot book their own property")
	}

	booking := &Booking{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PropertyID:        propertyID,
		TenantID:          tenantID,
		OwnerID:           ownerID,
		RequestedMoveIn:   requestedMoveIn,
		Notes:             strings.TrimSpace(notes),
		Status:            BookingStatusPending,
	}

	booking.AddDomainEvent(NewBookingRequestedEvent(booking))

	return booking, nil
}

// AuthorizeOwner verifies the actor is the owner of the property behind this
// booking. Authorization runs before the state machine so an unentitled actor
// always sees Unauthorized, never the current stage.
func (b *Booking) AuthorizeOwner(actor shared.Actor) error {
	if !actor.IsOwner() || actor.ID != b.OwnerID {
		return shared.ErrUnauthorized
	}
	return nil
}

// AuthorizeTenant verifies the actor is the tenant who placed this booking
func (b *Booking) AuthorizeTenant(actor shared.Actor) error {
	if !actor.IsTenant() || actor.ID != b.TenantID {
		return shared.ErrUnauthorized
	}
	return nil
}

// AuthorizeParty verifies the actor is either party of this booking.
// Agreement and invoice actions inherit booking authorization through here.
func (b *Booking) AuthorizeParty(actor shared.Actor) error {
	if actor.ID == b.OwnerID && actor.IsOwner() {
		return nil
	}
	if actor.ID == b.TenantID && actor.IsTenant() {
		return nil
	}
	return shared.ErrUnauthorized
}

// Accept transitions PENDING -> ACCEPTED (owner action)
func (b *Booking) Accept(actor shared.Actor) error {
	if err := b.AuthorizeOwner(actor); err != nil {
		return err
	}
	if !b.Status.CanTransitionTo(BookingStatusAccepted) {
		return shared.NewIllegalTransition(fmt.Sprintf("Cannot accept booking in %s status", b.Status))
	}

	now := time.Now()
	b.Status = BookingStatusAccepted
	b.AcceptedAt = &now
	b.UpdatedAt = now

	b.AddDomainEvent(NewBookingAcceptedEvent(b))

	return nil
}

// Reject transitions PENDING -> REJECTED (owner action). Rejection is
// terminal. A proposed duration is declined through DecideDuration, not here.
func (b *Booking) Reject(actor shared.Actor, reason string) error {
	if err := b.AuthorizeOwner(actor); err != nil {
		return err
	}
	if b.Status != BookingStatusPending {
		return shared.NewIllegalTransition(fmt.Sprintf("Cannot reject booking in %s status", b.Status))
	}
	if reason == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Reject reason is required")
	}

	b.markRejected(reason)
	b.AddDomainEvent(NewBookingRejectedEvent(b))

	return nil
}

// ProposeDuration transitions ACCEPTED -> DURATION_PENDING (tenant action)
func (b *Booking) ProposeDuration(actor shared.Actor, years, months int) error {
	if err := b.AuthorizeTenant(actor); err != nil {
		return err
	}
	if !b.Status.CanTransitionTo(BookingStatusDurationPending) {
		return shared.NewIllegalTransition(fmt.Sprintf("Cannot propose duration for booking in %s status", b.Status))
	}
	if years < 0 || months < 0 || months > 11 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Duration months must be 0-11 and years non-negative")
	}
	if years == 0 && months == 0 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Duration must be at least one month")
	}

	now := time.Now()
	b.RentalYears = years
	b.RentalMonths = months
	b.Status = BookingStatusDurationPending
	b.DurationSetAt = &now
	b.UpdatedAt = now

	b.AddDomainEvent(NewDurationProposedEvent(b))

	return nil
}

// DecideDuration transitions DURATION_PENDING -> DURATION_APPROVED or REJECTED
// (owner action). A declined duration terminates the booking.
func (b *Booking) DecideDuration(actor shared.Actor, approved bool) error {
	if err := b.AuthorizeOwner(actor); err != nil {
		return err
	}
	if b.Status != BookingStatusDurationPending {
		return shared.NewIllegalTransition(fmt.Sprintf("Cannot decide duration for booking in %s status", b.Status))
	}

	now := time.Now()
	if approved {
		b.Status = BookingStatusDurationApproved
		b.UpdatedAt = now
		b.AddDomainEvent(NewDurationApprovedEvent(b))
		return nil
	}

	b.markRejected("Proposed duration declined by owner")
	b.AddDomainEvent(NewBookingRejectedEvent(b))

	return nil
}

// MarkAgreementPending transitions DURATION_APPROVED -> AGREEMENT_PENDING.
// Invoked when the owner sends the agreement; authorization is performed by
// the agreement creation flow.
func (b *Booking) MarkAgreementPending() error {
	if !b.Status.CanTransitionTo(BookingStatusAgreementPending) {
		return shared.NewIllegalTransition(fmt.Sprintf("Cannot create agreement: booking is in %s status, duration not yet approved", b.Status))
	}
	b.Status = BookingStatusAgreementPending
	b.UpdatedAt = time.Now()
	return nil
}

// MarkPaymentPending transitions AGREEMENT_PENDING -> PAYMENT_PENDING.
// Invoked when the tenant approves the agreement.
func (b *Booking) MarkPaymentPending() error {
	if !b.Status.CanTransitionTo(BookingStatusPaymentPending) {
		return shared.NewIllegalTransition(fmt.Sprintf("Cannot await payment: booking is in %s status", b.Status))
	}
	b.Status = BookingStatusPaymentPending
	b.UpdatedAt = time.Now()
	return nil
}

// MarkRejectedByAgreement transitions AGREEMENT_PENDING -> REJECTED.
// Invoked when the tenant declines the agreement.
func (b *Booking) MarkRejectedByAgreement() error {
	if b.Status != BookingStatusAgreementPending {
		return shared.NewIllegalTransition(fmt.Sprintf("Cannot reject booking in %s status", b.Status))
	}
	b.markRejected("Agreement declined by tenant")
	b.AddDomainEvent(NewBookingRejectedEvent(b))
	return nil
}

// Activate transitions PAYMENT_PENDING -> ACTIVE. Invoked when the deposit
// invoice settles; this is the only path to an active tenancy.
func (b *Booking) Activate() error {
	if !b.Status.CanTransitionTo(BookingStatusActive) {
		return shared.NewIllegalTransition(fmt.Sprintf("Cannot activate booking in %s status", b.Status))
	}

	now := time.Now()
	b.Status = BookingStatusActive
	b.ActivatedAt = &now
	b.UpdatedAt = now

	b.AddDomainEvent(NewBookingActivatedEvent(b))

	return nil
}

func (b *Booking) markRejected(reason string) {
	now := time.Now()
	b.Status = BookingStatusRejected
	b.RejectedAt = &now
	b.RejectReason = reason
	b.UpdatedAt = now
}

// DurationMonths returns the total proposed duration in months
func (b *Booking) DurationMonths() int {
	return b.RentalYears*12 + b.RentalMonths
}

// IsActive returns true if the booking reached the active stage
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusActive
}

// IsRejected returns true if the booking was rejected
func (b *Booking) IsRejected() bool {
	return b.Status == BookingStatusRejected
}

// IsTerminal returns true if no further stage transition is possible
func (b *Booking) IsTerminal() bool {
	return b.IsActive() || b.IsRejected()
}
