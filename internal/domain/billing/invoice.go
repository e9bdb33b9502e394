package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rentflow/backend/internal/domain/rental"
	"github.com/rentflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentType distinguishes deposit invoices from recurring rent invoices
type PaymentType string

const (
	PaymentTypeDeposit PaymentType = "DEPOSIT"
	PaymentTypeRent    PaymentType = "RENT"
)

// IsValid checks if the payment type is known
func (t PaymentType) IsValid() bool {
	return t == PaymentTypeDeposit || t == PaymentTypeRent
}

// String returns the string representation of PaymentType
func (t PaymentType) String() string {
	return string(t)
}

// InvoiceStatus represents the settlement state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "PENDING"
	InvoiceStatusPaid    InvoiceStatus = "PAID"
)

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// Invoice is one billed amount (a deposit or a rent cycle) tied to a booking.
// Invoices are financial records: they are never deleted, and the only
// permitted mutation is the PENDING -> PAID status flip.
//
// Every computed component is stored so the bill is reconstructable from this
// row alone, independent of later changes to the agreement.
type Invoice struct {
	shared.BaseEntity
	BookingID          uuid.UUID
	AgreementID        uuid.UUID
	TenantID           uuid.UUID
	OwnerID            uuid.UUID
	PaymentType        PaymentType
	Amount             decimal.Decimal
	Status             InvoiceStatus
	DueDate            time.Time
	BillingPeriod      BillingPeriod
	ElectricityReading decimal.Decimal
	ElectricityUnits   decimal.Decimal
	ElectricityAmount  decimal.Decimal
	WaterAmount        decimal.Decimal
	GarbageAmount      decimal.Decimal
	DepositAdjustment  decimal.Decimal
	BaseRentSnapshot   decimal.Decimal
	PaidAt             *time.Time
}

// NewDepositInvoice records the tenant's deposit payment (pending until
// settlement is attested)
func NewDepositInvoice(agreement *rental.RentalAgreement, amount decimal.Decimal, dueDays int) (*Invoice, error) {
	if agreement == nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Agreement is required")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Deposit amount must be positive")
	}
	if !amount.Equal(agreement.DepositAmount) {
		return nil, shared.NewDomainError(shared.CodeInvalidInput,
			fmt.Sprintf("Deposit amount must match the agreed %s", agreement.DepositAmount.String()))
	}

	inv := &Invoice{
		BaseEntity:  shared.NewBaseEntity(),
		BookingID:   agreement.BookingID,
		AgreementID: agreement.ID,
		TenantID:    agreement.TenantID,
		OwnerID:     agreement.OwnerID,
		PaymentType: PaymentTypeDeposit,
		Amount:      amount,
		Status:      InvoiceStatusPending,
		DueDate:     time.Now().AddDate(0, 0, dueDays),
	}

	return inv, nil
}

// RentInvoiceInput carries everything the calculator derived for one cycle
type RentInvoiceInput struct {
	Agreement      *rental.RentalAgreement
	Period         BillingPeriod
	CurrentReading decimal.Decimal
	LastReading    decimal.Decimal
	Tariff         Tariff
	// ApplyDepositCredit is true only for the first rent cycle of a booking
	// with a settled deposit; the caller establishes both facts inside the
	// billing transaction.
	ApplyDepositCredit bool
}

// NewRentInvoice computes one metered rent cycle. The reading must not
// regress; a regression fails InvalidReading and nothing is produced.
func NewRentInvoice(in RentInvoiceInput) (*Invoice, error) {
	if in.Agreement == nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Agreement is required")
	}
	if in.Period.IsZero() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Billing period is required")
	}
	if in.CurrentReading.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeInvalidReading, "Meter reading cannot be negative")
	}

	units := in.CurrentReading.Sub(in.LastReading)
	if units.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeInvalidReading,
			fmt.Sprintf("Meter cannot regress: current reading %s is below the last billed reading %s",
				in.CurrentReading.String(), in.LastReading.String()))
	}

	rate := in.Agreement.ElectricityRate
	if rate.IsZero() {
		rate = in.Tariff.ElectricityRate
	}
	water := in.Agreement.WaterBill
	if water.IsZero() {
		water = in.Tariff.WaterBill
	}
	garbage := in.Agreement.GarbageBill
	if garbage.IsZero() {
		garbage = in.Tariff.GarbageBill
	}

	electricityAmount := units.Mul(rate)

	depositAdjustment := decimal.Zero
	if in.ApplyDepositCredit {
		depositAdjustment = in.Tariff.DepositCredit
	}

	total := in.Agreement.BaseRent.
		Add(electricityAmount).
		Add(water).
		Add(garbage).
		Sub(depositAdjustment)

	inv := &Invoice{
		BaseEntity:         shared.NewBaseEntity(),
		BookingID:          in.Agreement.BookingID,
		AgreementID:        in.Agreement.ID,
		TenantID:           in.Agreement.TenantID,
		OwnerID:            in.Agreement.OwnerID,
		PaymentType:        PaymentTypeRent,
		Amount:             total,
		Status:             InvoiceStatusPending,
		DueDate:            time.Now().AddDate(0, 0, in.Tariff.DueDays),
		BillingPeriod:      in.Period,
		ElectricityReading: in.CurrentReading,
		ElectricityUnits:   units,
		ElectricityAmount:  electricityAmount,
		WaterAmount:        water,
		GarbageAmount:      garbage,
		DepositAdjustment:  depositAdjustment,
		BaseRentSnapshot:   in.Agreement.BaseRent,
	}

	return inv, nil
}

// MarkPaid flips PENDING -> PAID. Settling an already-paid invoice is a
// no-op success, so callers can retry settlement safely.
func (i *Invoice) MarkPaid() (changed bool) {
	if i.Status == InvoiceStatusPaid {
		return false
	}
	now := time.Now()
	i.Status = InvoiceStatusPaid
	i.PaidAt = &now
	i.UpdatedAt = now
	return true
}

// IsPaid returns true once the invoice settled
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}

// IsDeposit returns true for deposit invoices
func (i *Invoice) IsDeposit() bool {
	return i.PaymentType == PaymentTypeDeposit
}

// IsOverdue returns true for pending invoices past their due date
func (i *Invoice) IsOverdue(now time.Time) bool {
	return i.Status == InvoiceStatusPending && now.After(i.DueDate)
}

// Recompute rebuilds the total from the stored components. It must always
// equal Amount; the audit check in tests relies on this.
func (i *Invoice) Recompute() decimal.Decimal {
	if i.PaymentType == PaymentTypeDeposit {
		return i.Amount
	}
	return i.BaseRentSnapshot.
		Add(i.ElectricityAmount).
		Add(i.WaterAmount).
		Add(i.GarbageAmount).
		Sub(i.DepositAdjustment)
}

// AuthorizeParty verifies the actor is one of the invoice's booking parties
func (i *Invoice) AuthorizeParty(actor shared.Actor) error {
	if actor.ID == i.OwnerID && actor.IsOwner() {
		return nil
	}
	if actor.ID == i.TenantID && actor.IsTenant() {
		return nil
	}
	return shared.ErrUnauthorized
}
