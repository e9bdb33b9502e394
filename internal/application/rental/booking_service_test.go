package rental

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rentflow/backend/internal/domain/rental"
	"github.com/rentflow/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockBookingRepository is a mock implementation of BookingRepository
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*rental.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rental.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindByParty(ctx context.Context, actor shared.Actor, filter shared.Filter) ([]rental.Booking, error) {
	args := m.Called(ctx, actor, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rental.Booking), args.Error(1)
}

func (m *MockBookingRepository) Save(ctx context.Context, booking *rental.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) SaveWithLock(ctx context.Context, booking *rental.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) CountByParty(ctx context.Context, actor shared.Actor, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, actor, filter)
	return args.Get(0).(int64), args.Error(1)
}

func newTestBooking(t *testing.T) (*rental.Booking, shared.Actor, shared.Actor) {
	t.Helper()
	tenant := shared.NewActor(uuid.New(), shared.RoleTenant)
	owner := shared.NewActor(uuid.New(), shared.RoleOwner)
	booking, err := rental.NewBooking(uuid.New(), tenant.ID, owner.ID, time.Now().AddDate(0, 1, 0), "")
	require.NoError(t, err)
	booking.ClearDomainEvents()
	return booking, tenant, owner
}

func TestBookingService_Create(t *testing.T) {
	t.Run("tenant creates pending booking", func(t *testing.T) {
		repo := new(MockBookingRepository)
		service := NewBookingService(repo)
		tenant := shared.NewActor(uuid.New(), shared.RoleTenant)

		repo.On("Save", mock.Anything, mock.AnythingOfType("*rental.Booking")).Return(nil)

		resp, err := service.Create(context.Background(), tenant, CreateBookingRequest{
			PropertyID:      uuid.New(),
			OwnerID:         uuid.New(),
			RequestedMoveIn: time.Now().AddDate(0, 1, 0),
			Notes:           "family of three",
		})

		require.NoError(t, err)
		assert.Equal(t, rental.BookingStatusPending.String(), resp.Status)
		assert.Equal(t, tenant.ID, resp.TenantID)
		repo.AssertExpectations(t)
	})

	t.Run("owner cannot place a booking", func(t *testing.T) {
		repo := new(MockBookingRepository)
		service := NewBookingService(repo)
		owner := shared.NewActor(uuid.New(), shared.RoleOwner)

		_, err := service.Create(context.Background(), owner, CreateBookingRequest{
			PropertyID:      uuid.New(),
			OwnerID:         owner.ID,
			RequestedMoveIn: time.Now(),
		})

		assert.ErrorIs(t, err, shared.ErrUnauthorized)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestBookingService_Accept(t *testing.T) {
	t.Run("owner accepts pending booking", func(t *testing.T) {
		booking, _, owner := newTestBooking(t)
		repo := new(MockBookingRepository)
		service := NewBookingService(repo)

		repo.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
		repo.On("SaveWithLock", mock.Anything, booking).Return(nil)

		resp, err := service.Accept(context.Background(), owner, booking.ID)

		require.NoError(t, err)
		assert.Equal(t, rental.BookingStatusAccepted.String(), resp.Status)
		assert.NotNil(t, resp.AcceptedAt)
		repo.AssertExpectations(t)
	})

	t.Run("tenant calling an owner action gets unauthorized, not a stage error", func(t *testing.T) {
		booking, tenant, _ := newTestBooking(t)
		repo := new(MockBookingRepository)
		service := NewBookingService(repo)

		repo.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)

		_, err := service.Accept(context.Background(), tenant, booking.ID)

		assert.ErrorIs(t, err, shared.ErrUnauthorized)
		assert.NotErrorIs(t, err, shared.ErrIllegalTransition)
		repo.AssertNotCalled(t, "SaveWithLock")
	})

	t.Run("unrelated owner gets unauthorized", func(t *testing.T) {
		booking, _, _ := newTestBooking(t)
		repo := new(MockBookingRepository)
		service := NewBookingService(repo)
		stranger := shared.NewActor(uuid.New(), shared.RoleOwner)

		repo.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)

		_, err := service.Accept(context.Background(), stranger, booking.ID)

		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})

	t.Run("accepting a non-pending booking is an illegal transition", func(t *testing.T) {
		booking, _, owner := newTestBooking(t)
		require.NoError(t, booking.Accept(owner))
		booking.ClearDomainEvents()

		repo := new(MockBookingRepository)
		service := NewBookingService(repo)
		repo.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)

		_, err := service.Accept(context.Background(), owner, booking.ID)

		assert.ErrorIs(t, err, shared.ErrIllegalTransition)
	})

	t.Run("loser of a concurrent transition sees conflict", func(t *testing.T) {
		booking, _, owner := newTestBooking(t)
		repo := new(MockBookingRepository)
		service := NewBookingService(repo)

		repo.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
		repo.On("SaveWithLock", mock.Anything, booking).Return(shared.ErrConflict)

		_, err := service.Accept(context.Background(), owner, booking.ID)

		assert.ErrorIs(t, err, shared.ErrConflict)
	})

	t.Run("missing booking", func(t *testing.T) {
		repo := new(MockBookingRepository)
		service := NewBookingService(repo)
		owner := shared.NewActor(uuid.New(), shared.RoleOwner)

		repo.On("FindByID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

		_, err := service.Accept(context.Background(), owner, uuid.New())

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestBookingService_Reject(t *testing.T) {
	t.Run("owner rejects with reason", func(t *testing.T) {
		booking, _, owner := newTestBooking(t)
		repo := new(MockBookingRepository)
		service := NewBookingService(repo)

		repo.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
		repo.On("SaveWithLock", mock.Anything, booking).Return(nil)

		resp, err := service.Reject(context.Background(), owner, booking.ID, RejectBookingRequest{Reason: "property no longer available"})

		require.NoError(t, err)
		assert.Equal(t, rental.BookingStatusRejected.String(), resp.Status)
		assert.Equal(t, "property no longer available", resp.RejectReason)
	})

	t.Run("reason is required", func(t *testing.T) {
		booking, _, owner := newTestBooking(t)
		repo := new(MockBookingRepository)
		service := NewBookingService(repo)

		repo.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)

		_, err := service.Reject(context.Background(), owner, booking.ID, RejectBookingRequest{})

		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		repo.AssertNotCalled(t, "SaveWithLock")
	})
}

func TestBookingService_ProposeDuration(t *testing.T) {
	t.Run("tenant proposes duration on accepted booking", func(t *testing.T) {
		booking, tenant, owner := newTestBooking(t)
		require.NoError(t, booking.Accept(owner))
		booking.ClearDomainEvents()

		repo := new(MockBookingRepository)
		service := NewBookingService(repo)
		repo.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
		repo.On("SaveWithLock", mock.Anything, booking).Return(nil)

		resp, err := service.ProposeDuration(context.Background(), tenant, booking.ID, ProposeDurationRequest{Years: 1, Months: 6})

		require.NoError(t, err)
		assert.Equal(t, rental.BookingStatusDurationPending.String(), resp.Status)
		assert.Equal(t, 1, resp.RentalYears)
		assert.Equal(t, 6, resp.RentalMonths)
	})

	t.Run("zero duration rejected", func(t *testing.T) {
		booking, tenant, owner := newTestBooking(t)
		require.NoError(t, booking.Accept(owner))
		booking.ClearDomainEvents()

		repo := new(MockBookingRepository)
		service := NewBookingService(repo)
		repo.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)

		_, err := service.ProposeDuration(context.Background(), tenant, booking.ID, ProposeDurationRequest{})

		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestBookingService_DecideDuration(t *testing.T) {
	setup := func(t *testing.T) (*rental.Booking, shared.Actor, shared.Actor) {
		booking, tenant, owner := newTestBooking(t)
		require.NoError(t, booking.Accept(owner))
		require.NoError(t, booking.ProposeDuration(tenant, 1, 0))
		booking.ClearDomainEvents()
		return booking, tenant, owner
	}

	t.Run("approval advances the booking", func(t *testing.T) {
		booking, _, owner := setup(t)
		repo := new(MockBookingRepository)
		service := NewBookingService(repo)
		repo.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
		repo.On("SaveWithLock", mock.Anything, booking).Return(nil)

		resp, err := service.DecideDuration(context.Background(), owner, booking.ID, DecideDurationRequest{Approved: true})

		require.NoError(t, err)
		assert.Equal(t, rental.BookingStatusDurationApproved.String(), resp.Status)
	})

	t.Run("decline terminates the booking", func(t *testing.T) {
		booking, _, owner := setup(t)
		repo := new(MockBookingRepository)
		service := NewBookingService(repo)
		repo.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
		repo.On("SaveWithLock", mock.Anything, booking).Return(nil)

		resp, err := service.DecideDuration(context.Background(), owner, booking.ID, DecideDurationRequest{Approved: false})

		require.NoError(t, err)
		assert.Equal(t, rental.BookingStatusRejected.String(), resp.Status)
		assert.NotEmpty(t, resp.RejectReason)
	})
}

func TestBookingService_GetByID(t *testing.T) {
	t.Run("party can read the booking", func(t *testing.T) {
		booking, tenant, _ := newTestBooking(t)
		repo := new(MockBookingRepository)
		service := NewBookingService(repo)
		repo.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)

		resp, err := service.GetByID(context.Background(), tenant, booking.ID)

		require.NoError(t, err)
		assert.Equal(t, booking.ID, resp.ID)
	})

	t.Run("outsider cannot read the booking", func(t *testing.T) {
		booking, _, _ := newTestBooking(t)
		repo := new(MockBookingRepository)
		service := NewBookingService(repo)
		outsider := shared.NewActor(uuid.New(), shared.RoleTenant)
		repo.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)

		_, err := service.GetByID(context.Background(), outsider, booking.ID)

		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})
}

func TestBookingService_List(t *testing.T) {
	t.Run("invalid status filter rejected", func(t *testing.T) {
		repo := new(MockBookingRepository)
		service := NewBookingService(repo)
		tenant := shared.NewActor(uuid.New(), shared.RoleTenant)

		_, _, err := service.List(context.Background(), tenant, BookingListFilter{Status: "LIMBO"})

		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("lists bookings for party", func(t *testing.T) {
		booking, tenant, _ := newTestBooking(t)
		repo := new(MockBookingRepository)
		service := NewBookingService(repo)

		repo.On("FindByParty", mock.Anything, tenant, mock.Anything).Return([]rental.Booking{*booking}, nil)
		repo.On("CountByParty", mock.Anything, tenant, mock.Anything).Return(int64(1), nil)

		responses, total, err := service.List(context.Background(), tenant, BookingListFilter{})

		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, responses, 1)
		assert.Equal(t, booking.ID, responses[0].ID)
	})
}
