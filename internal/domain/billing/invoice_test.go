package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rentflow/backend/internal/domain/rental"
	"github.com/rentflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestAgreement(t *testing.T) *rental.RentalAgreement {
	t.Helper()
	booking, err := rental.NewBooking(uuid.New(), uuid.New(), uuid.New(), time.Now().AddDate(0, 1, 0), "")
	require.NoError(t, err)
	agreement, err := rental.NewRentalAgreement(booking, rental.AgreementTerms{
		BaseRent:        decimal.NewFromInt(15000),
		DepositAmount:   decimal.NewFromInt(30000),
		ElectricityRate: decimal.NewFromInt(12),
		WaterBill:       decimal.NewFromInt(600),
		GarbageBill:     decimal.NewFromInt(250),
		StartDate:       time.Now().AddDate(0, 1, 0),
	})
	require.NoError(t, err)
	return agreement
}

// buildBareAgreement leaves every utility charge unset so the tariff
// fallbacks apply
func buildBareAgreement(t *testing.T) *rental.RentalAgreement {
	t.Helper()
	booking, err := rental.NewBooking(uuid.New(), uuid.New(), uuid.New(), time.Now().AddDate(0, 1, 0), "")
	require.NoError(t, err)
	agreement, err := rental.NewRentalAgreement(booking, rental.AgreementTerms{
		BaseRent:      decimal.NewFromInt(10000),
		DepositAmount: decimal.NewFromInt(20000),
		StartDate:     time.Now(),
	})
	require.NoError(t, err)
	return agreement
}

func TestNewDepositInvoice(t *testing.T) {
	t.Run("pending deposit with due date", func(t *testing.T) {
		agreement := buildTestAgreement(t)
		invoice, err := NewDepositInvoice(agreement, decimal.NewFromInt(30000), 7)

		require.NoError(t, err)
		assert.Equal(t, PaymentTypeDeposit, invoice.PaymentType)
		assert.Equal(t, InvoiceStatusPending, invoice.Status)
		assert.True(t, invoice.Amount.Equal(decimal.NewFromInt(30000)))
		assert.Equal(t, agreement.BookingID, invoice.BookingID)
		assert.WithinDuration(t, time.Now().AddDate(0, 0, 7), invoice.DueDate, time.Minute)
	})

	t.Run("amount must match the agreed deposit", func(t *testing.T) {
		agreement := buildTestAgreement(t)
		_, err := NewDepositInvoice(agreement, decimal.NewFromInt(25000), 7)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("amount must be positive", func(t *testing.T) {
		agreement := buildTestAgreement(t)
		_, err := NewDepositInvoice(agreement, decimal.Zero, 7)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestNewRentInvoice(t *testing.T) {
	t.Run("computes and stores every component", func(t *testing.T) {
		agreement := buildTestAgreement(t)
		invoice, err := NewRentInvoice(RentInvoiceInput{
			Agreement:      agreement,
			Period:         BillingPeriod("2026-08"),
			CurrentReading: decimal.NewFromInt(150),
			LastReading:    decimal.NewFromInt(100),
			Tariff:         DefaultTariff(),
		})

		require.NoError(t, err)
		assert.True(t, invoice.ElectricityUnits.Equal(decimal.NewFromInt(50)))
		assert.True(t, invoice.ElectricityAmount.Equal(decimal.NewFromInt(600)), "50 units at 12")
		assert.True(t, invoice.WaterAmount.Equal(decimal.NewFromInt(600)))
		assert.True(t, invoice.GarbageAmount.Equal(decimal.NewFromInt(250)))
		assert.True(t, invoice.BaseRentSnapshot.Equal(decimal.NewFromInt(15000)))
		// 15000 + 600 + 600 + 250
		assert.True(t, invoice.Amount.Equal(decimal.NewFromInt(16450)), "got %s", invoice.Amount)
		assert.True(t, invoice.Amount.Equal(invoice.Recompute()))
	})

	t.Run("zero agreement charges fall back to the tariff", func(t *testing.T) {
		agreement := buildBareAgreement(t)
		invoice, err := NewRentInvoice(RentInvoiceInput{
			Agreement:      agreement,
			Period:         BillingPeriod("2026-08"),
			CurrentReading: decimal.NewFromInt(30),
			Tariff:         DefaultTariff(),
		})

		require.NoError(t, err)
		assert.True(t, invoice.ElectricityAmount.Equal(decimal.NewFromInt(300)), "30 units at fallback 10")
		assert.True(t, invoice.WaterAmount.Equal(decimal.NewFromInt(500)))
		assert.True(t, invoice.GarbageAmount.Equal(decimal.NewFromInt(200)))
		// 10000 + 300 + 500 + 200
		assert.True(t, invoice.Amount.Equal(decimal.NewFromInt(11000)), "got %s", invoice.Amount)
	})

	t.Run("deposit credit subtracts once", func(t *testing.T) {
		agreement := buildTestAgreement(t)
		invoice, err := NewRentInvoice(RentInvoiceInput{
			Agreement:          agreement,
			Period:             BillingPeriod("2026-08"),
			CurrentReading:     decimal.NewFromInt(100),
			Tariff:             DefaultTariff(),
			ApplyDepositCredit: true,
		})

		require.NoError(t, err)
		assert.True(t, invoice.DepositAdjustment.Equal(decimal.NewFromInt(5000)))
		// 15000 + 1200 + 600 + 250 - 5000
		assert.True(t, invoice.Amount.Equal(decimal.NewFromInt(12050)), "got %s", invoice.Amount)
		assert.True(t, invoice.Amount.Equal(invoice.Recompute()))
	})

	t.Run("meter regression is rejected", func(t *testing.T) {
		agreement := buildTestAgreement(t)
		_, err := NewRentInvoice(RentInvoiceInput{
			Agreement:      agreement,
			Period:         BillingPeriod("2026-08"),
			CurrentReading: decimal.NewFromInt(90),
			LastReading:    decimal.NewFromInt(100),
			Tariff:         DefaultTariff(),
		})
		assert.ErrorIs(t, err, shared.ErrInvalidReading)
	})

	t.Run("zero consumption is a valid cycle", func(t *testing.T) {
		agreement := buildTestAgreement(t)
		invoice, err := NewRentInvoice(RentInvoiceInput{
			Agreement:      agreement,
			Period:         BillingPeriod("2026-08"),
			CurrentReading: decimal.NewFromInt(100),
			LastReading:    decimal.NewFromInt(100),
			Tariff:         DefaultTariff(),
		})
		require.NoError(t, err)
		assert.True(t, invoice.ElectricityUnits.IsZero())
		assert.True(t, invoice.ElectricityAmount.IsZero())
	})

	t.Run("negative reading rejected", func(t *testing.T) {
		agreement := buildTestAgreement(t)
		_, err := NewRentInvoice(RentInvoiceInput{
			Agreement:      agreement,
			Period:         BillingPeriod("2026-08"),
			CurrentReading: decimal.NewFromInt(-5),
			Tariff:         DefaultTariff(),
		})
		assert.ErrorIs(t, err, shared.ErrInvalidReading)
	})
}

func TestInvoice_MarkPaid(t *testing.T) {
	agreement := buildTestAgreement(t)
	invoice, err := NewDepositInvoice(agreement, decimal.NewFromInt(30000), 7)
	require.NoError(t, err)

	assert.True(t, invoice.MarkPaid())
	assert.True(t, invoice.IsPaid())
	assert.NotNil(t, invoice.PaidAt)

	firstPaidAt := *invoice.PaidAt
	assert.False(t, invoice.MarkPaid(), "second settle is a no-op")
	assert.Equal(t, firstPaidAt, *invoice.PaidAt)
}

func TestInvoice_IsOverdue(t *testing.T) {
	agreement := buildTestAgreement(t)
	invoice, err := NewDepositInvoice(agreement, decimal.NewFromInt(30000), 7)
	require.NoError(t, err)

	assert.False(t, invoice.IsOverdue(time.Now()))
	assert.True(t, invoice.IsOverdue(time.Now().AddDate(0, 0, 8)))

	invoice.MarkPaid()
	assert.False(t, invoice.IsOverdue(time.Now().AddDate(0, 0, 8)), "paid invoices are never overdue")
}

func TestInvoice_AuthorizeParty(t *testing.T) {
	agreement := buildTestAgreement(t)
	invoice, err := NewDepositInvoice(agreement, decimal.NewFromInt(30000), 7)
	require.NoError(t, err)

	assert.NoError(t, invoice.AuthorizeParty(shared.NewActor(invoice.TenantID, shared.RoleTenant)))
	assert.NoError(t, invoice.AuthorizeParty(shared.NewActor(invoice.OwnerID, shared.RoleOwner)))
	assert.ErrorIs(t, invoice.AuthorizeParty(shared.NewActor(uuid.New(), shared.RoleTenant)), shared.ErrUnauthorized)
	// Right ID in the wrong role is still unauthorized.
	assert.ErrorIs(t, invoice.AuthorizeParty(shared.NewActor(invoice.TenantID, shared.RoleOwner)), shared.ErrUnauthorized)
}
