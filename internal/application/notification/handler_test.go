package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rentflow/backend/internal/domain/billing"
	"github.com/rentflow/backend/internal/domain/rental"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeNotifier struct {
	sent []Notification
	err  error
}

func (f *fakeNotifier) Send(_ context.Context, n Notification) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, n)
	return nil
}

func lifecycleFixture(t *testing.T) (*rental.Booking, *rental.RentalAgreement) {
	t.Helper()
	tenant := uuid.New()
	owner := uuid.New()
	booking, err := rental.NewBooking(uuid.New(), tenant, owner, time.Now().AddDate(0, 1, 0), "")
	require.NoError(t, err)
	agreement, err := rental.NewRentalAgreement(booking, rental.AgreementTerms{
		BaseRent:      decimal.NewFromInt(12000),
		DepositAmount: decimal.NewFromInt(24000),
		StartDate:     time.Now(),
	})
	require.NoError(t, err)
	return booking, agreement
}

func TestLifecycleNotificationHandler(t *testing.T) {
	t.Run("booking request notifies the owner", func(t *testing.T) {
		booking, _ := lifecycleFixture(t)
		notifier := &fakeNotifier{}
		handler := NewLifecycleNotificationHandler(notifier, zap.NewNop())

		err := handler.Handle(context.Background(), rental.NewBookingRequestedEvent(booking))

		require.NoError(t, err)
		require.Len(t, notifier.sent, 1)
		assert.Equal(t, booking.OwnerID, notifier.sent[0].RecipientID)
		assert.Equal(t, booking.ID, notifier.sent[0].BookingID)
	})

	t.Run("acceptance notifies the tenant", func(t *testing.T) {
		booking, _ := lifecycleFixture(t)
		notifier := &fakeNotifier{}
		handler := NewLifecycleNotificationHandler(notifier, zap.NewNop())

		err := handler.Handle(context.Background(), rental.NewBookingAcceptedEvent(booking))

		require.NoError(t, err)
		require.Len(t, notifier.sent, 1)
		assert.Equal(t, booking.TenantID, notifier.sent[0].RecipientID)
	})

	t.Run("agreement creation notifies the tenant", func(t *testing.T) {
		_, agreement := lifecycleFixture(t)
		notifier := &fakeNotifier{}
		handler := NewLifecycleNotificationHandler(notifier, zap.NewNop())

		err := handler.Handle(context.Background(), rental.NewAgreementCreatedEvent(agreement))

		require.NoError(t, err)
		require.Len(t, notifier.sent, 1)
		assert.Equal(t, agreement.TenantID, notifier.sent[0].RecipientID)
	})

	t.Run("delivery failure is swallowed", func(t *testing.T) {
		booking, _ := lifecycleFixture(t)
		notifier := &fakeNotifier{err: errors.New("sink unreachable")}
		handler := NewLifecycleNotificationHandler(notifier, zap.NewNop())

		err := handler.Handle(context.Background(), rental.NewBookingAcceptedEvent(booking))

		assert.NoError(t, err)
	})
}

func TestBillingNotificationHandler(t *testing.T) {
	billingFixture := func(t *testing.T) *billing.Invoice {
		t.Helper()
		_, agreement := lifecycleFixture(t)
		invoice, err := billing.NewDepositInvoice(agreement, decimal.NewFromInt(24000), 7)
		require.NoError(t, err)
		return invoice
	}

	t.Run("deposit recording notifies the owner", func(t *testing.T) {
		invoice := billingFixture(t)
		notifier := &fakeNotifier{}
		handler := NewBillingNotificationHandler(notifier, zap.NewNop())

		err := handler.Handle(context.Background(), billing.NewDepositRecordedEvent(invoice))

		require.NoError(t, err)
		require.Len(t, notifier.sent, 1)
		assert.Equal(t, invoice.OwnerID, notifier.sent[0].RecipientID)
	})

	t.Run("overdue reminder goes to the tenant", func(t *testing.T) {
		invoice := billingFixture(t)
		notifier := &fakeNotifier{}
		handler := NewBillingNotificationHandler(notifier, zap.NewNop())

		err := handler.Handle(context.Background(), billing.NewInvoiceOverdueEvent(invoice))

		require.NoError(t, err)
		require.Len(t, notifier.sent, 1)
		assert.Equal(t, invoice.TenantID, notifier.sent[0].RecipientID)
	})
}
