package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rentflow/backend/internal/domain/rental"
	"github.com/rentflow/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormBookingRepository implements BookingRepository using GORM
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID finds a booking by its ID
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*rental.Booking, error) {
	var booking rental.Booking
	if err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// FindByParty finds bookings where the actor is the owner or the tenant
func (r *GormBookingRepository) FindByParty(ctx context.Context, actor shared.Actor, filter shared.Filter) ([]rental.Booking, error) {
	var bookings []rental.Booking
	query := r.applyFilter(r.partyScope(r.db.WithContext(ctx), actor), filter)

	if err := query.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// Save creates or updates a booking
func (r *GormBookingRepository) Save(ctx context.Context, booking *rental.Booking) error {
	if err := r.db.WithContext(ctx).Save(booking).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// SaveWithLock saves with optimistic locking (version check). The loser of a
// concurrent transition receives Conflict.
func (r *GormBookingRepository) SaveWithLock(ctx context.Context, booking *rental.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var currentVersion int
		result := tx.Model(&rental.Booking{}).
			Where("id = ?", booking.ID).
			Select("version").
			Scan(&currentVersion)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		if currentVersion != booking.Version {
			return shared.NewConflict("The booking was modified by another process")
		}

		booking.Version++
		booking.UpdatedAt = time.Now()

		update := tx.Model(&rental.Booking{}).
			Where("id = ? AND version = ?", booking.ID, currentVersion).
			Updates(map[string]interface{}{
				"status":          booking.Status,
				"rental_years":    booking.RentalYears,
				"rental_months":   booking.RentalMonths,
				"accepted_at":     booking.AcceptedAt,
				"rejected_at":     booking.RejectedAt,
				"reject_reason":   booking.RejectReason,
				"duration_set_at": booking.DurationSetAt,
				"activated_at":    booking.ActivatedAt,
				"version":         booking.Version,
				"updated_at":      booking.UpdatedAt,
			})
		if update.Error != nil {
			return update.Error
		}
		if update.RowsAffected == 0 {
			return shared.NewConflict("The booking was modified by another process")
		}
		return nil
	})
}

// CountByParty counts bookings for a party
func (r *GormBookingRepository) CountByParty(ctx context.Context, actor shared.Actor, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.partyScope(r.db.WithContext(ctx), actor), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// partyScope restricts a query to bookings visible to the actor. Owners see
// bookings against their properties, tenants see their own requests.
func (r *GormBookingRepository) partyScope(db *gorm.DB, actor shared.Actor) *gorm.DB {
	query := db.Model(&rental.Booking{})
	if actor.IsOwner() {
		return query.Where("owner_id = ?", actor.ID)
	}
	return query.Where("tenant_id = ?", actor.ID)
}

// applyFilter applies filter options to the query
func (r *GormBookingRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	orderBy := ValidateSortField(filter.OrderBy, BookingSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}

func (r *GormBookingRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "property_id":
			query = query.Where("property_id = ?", value)
		}
	}
	return query
}

// Ensure GormBookingRepository implements BookingRepository
var _ rental.BookingRepository = (*GormBookingRepository)(nil)
