package rental

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentflow/backend/internal/domain/shared"
)

// BookingRepository defines the interface for booking persistence
type BookingRepository interface {
	// FindByID finds a booking by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByParty finds bookings where the actor is the owner or the tenant
	FindByParty(ctx context.Context, actor shared.Actor, filter shared.Filter) ([]Booking, error)

	// Save creates or updates a booking
	Save(ctx context.Context, booking *Booking) error

	// SaveWithLock saves with optimistic locking (version check); the loser
	// of a concurrent transition receives Conflict
	SaveWithLock(ctx context.Context, booking *Booking) error

	// CountByParty counts bookings for a party
	CountByParty(ctx context.Context, actor shared.Actor, filter shared.Filter) (int64, error)
}

// AgreementRepository defines the interface for rental agreement persistence
type AgreementRepository interface {
	// FindByID finds an agreement by ID
	FindByID(ctx context.Context, id uuid.UUID) (*RentalAgreement, error)

	// FindByBookingID finds the agreement derived from a booking, if any
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*RentalAgreement, error)

	// FindByBookingIDForUpdate locks the agreement row for the duration of
	// the surrounding transaction. Outside a transaction it behaves like
	// FindByBookingID.
	FindByBookingIDForUpdate(ctx context.Context, bookingID uuid.UUID) (*RentalAgreement, error)

	// ExistsByBookingID checks whether a booking already has an agreement
	ExistsByBookingID(ctx context.Context, bookingID uuid.UUID) (bool, error)

	// Save creates or updates an agreement. Creation maps a unique-index
	// violation on booking_id to Conflict so concurrent creators race safely.
	Save(ctx context.Context, agreement *RentalAgreement) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, agreement *RentalAgreement) error
}
