package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentflow/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// PayDepositRequest represents the tenant's deposit payment attestation
type PayDepositRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// RecordReadingRequest represents the owner's monthly meter reading
type RecordReadingRequest struct {
	BillingPeriod  string          `json:"billing_period" binding:"required,billing_period"`
	CurrentReading decimal.Decimal `json:"current_reading" binding:"required"`
}

// InvoiceListFilter represents filtering options for invoice lists
type InvoiceListFilter struct {
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// InvoiceResponse represents an invoice in API responses. Every computed
// component is exposed so clients can render an itemized bill.
type InvoiceResponse struct {
	ID                 uuid.UUID       `json:"id"`
	BookingID          uuid.UUID       `json:"booking_id"`
	AgreementID        uuid.UUID       `json:"agreement_id"`
	TenantID           uuid.UUID       `json:"tenant_id"`
	OwnerID            uuid.UUID       `json:"owner_id"`
	PaymentType        string          `json:"payment_type"`
	Amount             decimal.Decimal `json:"amount"`
	Status             string          `json:"status"`
	DueDate            time.Time       `json:"due_date"`
	BillingPeriod      string          `json:"billing_period,omitempty"`
	ElectricityReading decimal.Decimal `json:"electricity_reading"`
	ElectricityUnits   decimal.Decimal `json:"electricity_units"`
	ElectricityAmount  decimal.Decimal `json:"electricity_amount"`
	WaterAmount        decimal.Decimal `json:"water_amount"`
	GarbageAmount      decimal.Decimal `json:"garbage_amount"`
	DepositAdjustment  decimal.Decimal `json:"deposit_adjustment"`
	BaseRent           decimal.Decimal `json:"base_rent"`
	PaidAt             *time.Time      `json:"paid_at,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
}

// ToInvoiceResponse converts an Invoice entity to a response DTO
func ToInvoiceResponse(inv *billing.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:                 inv.ID,
		BookingID:          inv.BookingID,
		AgreementID:        inv.AgreementID,
		TenantID:           inv.TenantID,
		OwnerID:            inv.OwnerID,
		PaymentType:        inv.PaymentType.String(),
		Amount:             inv.Amount,
		Status:             inv.Status.String(),
		DueDate:            inv.DueDate,
		BillingPeriod:      inv.BillingPeriod.String(),
		ElectricityReading: inv.ElectricityReading,
		ElectricityUnits:   inv.ElectricityUnits,
		ElectricityAmount:  inv.ElectricityAmount,
		WaterAmount:        inv.WaterAmount,
		GarbageAmount:      inv.GarbageAmount,
		DepositAdjustment:  inv.DepositAdjustment,
		BaseRent:           inv.BaseRentSnapshot,
		PaidAt:             inv.PaidAt,
		CreatedAt:          inv.CreatedAt,
	}
}
