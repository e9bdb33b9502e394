package rental

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rentflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AgreementStatus represents the status of a rental agreement
type AgreementStatus string

const (
	AgreementStatusDraft         AgreementStatus = "DRAFT"
	AgreementStatusPendingTenant AgreementStatus = "PENDING_TENANT"
	AgreementStatusActive        AgreementStatus = "ACTIVE"
	AgreementStatusTerminated    AgreementStatus = "TERMINATED"
)

// IsValid checks if the status is a valid AgreementStatus
func (s AgreementStatus) IsValid() bool {
	switch s {
	case AgreementStatusDraft, AgreementStatusPendingTenant, AgreementStatusActive, AgreementStatusTerminated:
		return true
	}
	return false
}

// String returns the string representation of AgreementStatus
func (s AgreementStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Termination is one-way; there is no reactivation path.
func (s AgreementStatus) CanTransitionTo(target AgreementStatus) bool {
	switch s {
	case AgreementStatusDraft:
		return target == AgreementStatusPendingTenant
	case AgreementStatusPendingTenant:
		return target == AgreementStatusActive || target == AgreementStatusTerminated
	case AgreementStatusActive:
		return target == AgreementStatusTerminated
	case AgreementStatusTerminated:
		return false // Terminal
	}
	return false
}

// AgreementTerms carries the owner-set financial and contractual terms
type AgreementTerms struct {
	BaseRent        decimal.Decimal
	DepositAmount   decimal.Decimal
	ElectricityRate decimal.Decimal // per consumed unit; zero means use the configured fallback
	WaterBill       decimal.Decimal // fixed per month
	GarbageBill     decimal.Decimal // fixed per month
	RulesText       string
	StartDate       time.Time
	EndDate         time.Time
}

// RentalAgreement is the binding contract derived from exactly one Booking.
// At most one agreement exists per booking; the uniqueness is enforced both
// here (application flow) and by a unique index on booking_id.
//
// An agreement is sent to the tenant the moment it is created, so it starts
// in PENDING_TENANT rather than DRAFT. Tenant approval is recorded on
// TenantApprovedAt; the PENDING_TENANT -> ACTIVE transition fires only when
// the deposit settles.
type RentalAgreement struct {
	shared.BaseAggregateRoot
	BookingID        uuid.UUID `gorm:"uniqueIndex"`
	PropertyID       uuid.UUID
	TenantID         uuid.UUID
	OwnerID          uuid.UUID
	BaseRent         decimal.Decimal
	DepositAmount    decimal.Decimal
	ElectricityRate  decimal.Decimal
	WaterBill        decimal.Decimal
	GarbageBill      decimal.Decimal
	RulesText        string
	StartDate        time.Time
	EndDate          time.Time
	Status           AgreementStatus
	TenantApprovedAt *time.Time
	ActivatedAt      *time.Time
	TerminatedAt     *time.Time
	TerminateReason  string
}

// NewRentalAgreement creates an agreement for a booking whose duration has
// been approved. The booking stage check belongs to the application flow;
// this constructor validates the terms.
func NewRentalAgreement(booking *Booking, terms AgreementTerms) (*RentalAgreement, error) {
	if booking == nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Booking is required")
	}
	if terms.BaseRent.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Base rent must be positive")
	}
	if terms.DepositAmount.LessThanOrEqual(decimal.Zero) {
		// PAYMENT_PENDING exits only through a deposit payment matching
		// the agreed amount, so the deposit stage is mandatory.
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Deposit amount must be positive")
	}
	if terms.ElectricityRate.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Electricity rate cannot be negative")
	}
	if terms.WaterBill.IsNegative() || terms.GarbageBill.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Fixed monthly charges cannot be negative")
	}
	if !terms.EndDate.IsZero() && terms.EndDate.Before(terms.StartDate) {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "End date cannot be before start date")
	}

	agreement := &RentalAgreement{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BookingID:         booking.ID,
		PropertyID:        booking.PropertyID,
		TenantID:          booking.TenantID,
		OwnerID:           booking.OwnerID,
		BaseRent:          terms.BaseRent,
		DepositAmount:     terms.DepositAmount,
		ElectricityRate:   terms.ElectricityRate,
		WaterBill:         terms.WaterBill,
		GarbageBill:       terms.GarbageBill,
		RulesText:         strings.TrimSpace(terms.RulesText),
		StartDate:         terms.StartDate,
		EndDate:           terms.EndDate,
		Status:            AgreementStatusPendingTenant,
	}

	agreement.AddDomainEvent(NewAgreementCreatedEvent(agreement))

	return agreement, nil
}

// AuthorizeOwner verifies the actor owns the property behind this agreement
func (a *RentalAgreement) AuthorizeOwner(actor shared.Actor) error {
	if !actor.IsOwner() || actor.ID != a.OwnerID {
		return shared.ErrUnauthorized
	}
	return nil
}

// AuthorizeTenant verifies the actor is the tenant party of this agreement
func (a *RentalAgreement) AuthorizeTenant(actor shared.Actor) error {
	if !actor.IsTenant() || actor.ID != a.TenantID {
		return shared.ErrUnauthorized
	}
	return nil
}

// Approve records the tenant's approval (tenant action). The agreement stays
// PENDING_TENANT until the deposit settles; the booking moves to
// PAYMENT_PENDING in the same transaction.
func (a *RentalAgreement) Approve(actor shared.Actor) error {
	if err := a.AuthorizeTenant(actor); err != nil {
		return err
	}
	if a.Status != AgreementStatusPendingTenant {
		return shared.NewIllegalTransition(fmt.Sprintf("Cannot respond to agreement in %s status", a.Status))
	}
	if a.TenantApprovedAt != nil {
		return shared.NewIllegalTransition("Agreement has already been approved")
	}

	now := time.Now()
	a.TenantApprovedAt = &now
	a.UpdatedAt = now

	a.AddDomainEvent(NewAgreementApprovedEvent(a))

	return nil
}

// Decline transitions PENDING_TENANT -> TERMINATED (tenant action).
// Declining terminates the agreement and rejects the booking.
func (a *RentalAgreement) Decline(actor shared.Actor) error {
	if err := a.AuthorizeTenant(actor); err != nil {
		return err
	}
	if a.Status != AgreementStatusPendingTenant {
		return shared.NewIllegalTransition(fmt.Sprintf("Cannot respond to agreement in %s status", a.Status))
	}

	a.markTerminated("Declined by tenant")
	a.AddDomainEvent(NewAgreementDeclinedEvent(a))

	return nil
}

// Activate transitions PENDING_TENANT -> ACTIVE once the deposit settles.
// Requires prior tenant approval.
func (a *RentalAgreement) Activate() error {
	if !a.Status.CanTransitionTo(AgreementStatusActive) {
		return shared.NewIllegalTransition(fmt.Sprintf("Cannot activate agreement in %s status", a.Status))
	}
	if a.TenantApprovedAt == nil {
		return shared.NewIllegalTransition("Cannot activate agreement before tenant approval")
	}

	now := time.Now()
	a.Status = AgreementStatusActive
	a.ActivatedAt = &now
	a.UpdatedAt = now

	a.AddDomainEvent(NewAgreementActivatedEvent(a))

	return nil
}

// Terminate ends an active agreement (owner action). One-way.
func (a *RentalAgreement) Terminate(actor shared.Actor, reason string) error {
	if err := a.AuthorizeOwner(actor); err != nil {
		return err
	}
	if a.Status != AgreementStatusActive {
		return shared.NewIllegalTransition(fmt.Sprintf("Cannot terminate agreement in %s status", a.Status))
	}
	if reason == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Termination reason is required")
	}

	a.markTerminated(reason)
	a.AddDomainEvent(NewAgreementTerminatedEvent(a))

	return nil
}

func (a *RentalAgreement) markTerminated(reason string) {
	now := time.Now()
	a.Status = AgreementStatusTerminated
	a.TerminatedAt = &now
	a.TerminateReason = reason
	a.UpdatedAt = now
}

// IsActive returns true if the agreement is in force
func (a *RentalAgreement) IsActive() bool {
	return a.Status == AgreementStatusActive
}

// IsTerminated returns true if the agreement has ended
func (a *RentalAgreement) IsTerminated() bool {
	return a.Status == AgreementStatusTerminated
}

// IsApprovedByTenant returns true once the tenant has approved the terms
func (a *RentalAgreement) IsApprovedByTenant() bool {
	return a.TenantApprovedAt != nil
}
