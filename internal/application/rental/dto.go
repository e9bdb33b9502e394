package rental

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentflow/backend/internal/domain/rental"
	"github.com/shopspring/decimal"
)

// ==================== Booking DTOs ====================

// CreateBookingRequest represents a tenant's request to book a property
type CreateBookingRequest struct {
	PropertyID      uuid.UUID `json:"property_id" binding:"required"`
	OwnerID         uuid.UUID `json:"owner_id" binding:"required"`
	RequestedMoveIn time.Time `json:"requested_move_in" binding:"required"`
	Notes           string    `json:"notes" binding:"max=2000"`
}

// RejectBookingRequest represents the owner's rejection of a booking
type RejectBookingRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// ProposeDurationRequest represents the tenant's proposed rental duration
type ProposeDurationRequest struct {
	Years  int `json:"years" binding:"min=0,max=99"`
	Months int `json:"months" binding:"min=0,max=11"`
}

// DecideDurationRequest represents the owner's verdict on a proposed duration
type DecideDurationRequest struct {
	Approved bool `json:"approved"`
}

// BookingListFilter represents filtering options for booking lists
type BookingListFilter struct {
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}

// BookingResponse represents a booking in API responses
type BookingResponse struct {
	ID              uuid.UUID  `json:"id"`
	PropertyID      uuid.UUID  `json:"property_id"`
	TenantID        uuid.UUID  `json:"tenant_id"`
	OwnerID         uuid.UUID  `json:"owner_id"`
	RequestedMoveIn time.Time  `json:"requested_move_in"`
	RentalYears     int        `json:"rental_years"`
	RentalMonths    int        `json:"rental_months"`
	Notes           string     `json:"notes,omitempty"`
	Status          string     `json:"status"`
	AcceptedAt      *time.Time `json:"accepted_at,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	RejectReason    string     `json:"reject_reason,omitempty"`
	ActivatedAt     *time.Time `json:"activated_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ToBookingResponse converts a Booking aggregate to a response DTO
func ToBookingResponse(b *rental.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		PropertyID:      b.PropertyID,
		TenantID:        b.TenantID,
		OwnerID:         b.OwnerID,
		RequestedMoveIn: b.RequestedMoveIn,
		RentalYears:     b.RentalYears,
		RentalMonths:    b.RentalMonths,
		Notes:           b.Notes,
		Status:          b.Status.String(),
		AcceptedAt:      b.AcceptedAt,
		RejectedAt:      b.RejectedAt,
		RejectReason:    b.RejectReason,
		ActivatedAt:     b.ActivatedAt,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// ==================== Agreement DTOs ====================

// CreateAgreementRequest represents the owner's terms for a booking
type CreateAgreementRequest struct {
	BaseRent        decimal.Decimal `json:"base_rent" binding:"required"`
	DepositAmount   decimal.Decimal `json:"deposit_amount" binding:"required"`
	ElectricityRate decimal.Decimal `json:"electricity_rate"`
	WaterBill       decimal.Decimal `json:"water_bill"`
	GarbageBill     decimal.Decimal `json:"garbage_bill"`
	RulesText       string          `json:"rules_text" binding:"max=10000"`
	StartDate       time.Time       `json:"start_date" binding:"required"`
	EndDate         time.Time       `json:"end_date"`
}

// RespondToAgreementRequest represents the tenant's verdict on the terms
type RespondToAgreementRequest struct {
	Approved bool `json:"approved"`
}

// TerminateAgreementRequest represents the owner's termination of a tenancy
type TerminateAgreementRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// AgreementResponse represents a rental agreement in API responses
type AgreementResponse struct {
	ID               uuid.UUID       `json:"id"`
	BookingID        uuid.UUID       `json:"booking_id"`
	PropertyID       uuid.UUID       `json:"property_id"`
	TenantID         uuid.UUID       `json:"tenant_id"`
	OwnerID          uuid.UUID       `json:"owner_id"`
	BaseRent         decimal.Decimal `json:"base_rent"`
	DepositAmount    decimal.Decimal `json:"deposit_amount"`
	ElectricityRate  decimal.Decimal `json:"electricity_rate"`
	WaterBill        decimal.Decimal `json:"water_bill"`
	GarbageBill      decimal.Decimal `json:"garbage_bill"`
	RulesText        string          `json:"rules_text,omitempty"`
	StartDate        time.Time       `json:"start_date"`
	EndDate          time.Time       `json:"end_date"`
	Status           string          `json:"status"`
	TenantApprovedAt *time.Time      `json:"tenant_approved_at,omitempty"`
	ActivatedAt      *time.Time      `json:"activated_at,omitempty"`
	TerminatedAt     *time.Time      `json:"terminated_at,omitempty"`
	TerminateReason  string          `json:"terminate_reason,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ToAgreementResponse converts a RentalAgreement aggregate to a response DTO
func ToAgreementResponse(a *rental.RentalAgreement) AgreementResponse {
	return AgreementResponse{
		ID:               a.ID,
		BookingID:        a.BookingID,
		PropertyID:       a.PropertyID,
		TenantID:         a.TenantID,
		OwnerID:          a.OwnerID,
		BaseRent:         a.BaseRent,
		DepositAmount:    a.DepositAmount,
		ElectricityRate:  a.ElectricityRate,
		WaterBill:        a.WaterBill,
		GarbageBill:      a.GarbageBill,
		RulesText:        a.RulesText,
		StartDate:        a.StartDate,
		EndDate:          a.EndDate,
		Status:           a.Status.String(),
		TenantApprovedAt: a.TenantApprovedAt,
		ActivatedAt:      a.ActivatedAt,
		TerminatedAt:     a.TerminatedAt,
		TerminateReason:  a.TerminateReason,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}
