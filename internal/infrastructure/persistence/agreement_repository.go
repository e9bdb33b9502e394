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
	"gorm.io/gorm/clause"
)

// GormAgreementRepository implements AgreementRepository using GORM
type GormAgreementRepository struct {
	db *gorm.DB
}

// NewGormAgreementRepository creates a new GormAgreementRepository
func NewGormAgreementRepository(db *gorm.DB) *GormAgreementRepository {
	return &GormAgreementRepository{db: db}
}

// FindByID finds an agreement by its ID
func (r *GormAgreementRepository) FindByID(ctx context.Context, id uuid.UUID) (*rental.RentalAgreement, error) {
	var agreement rental.RentalAgreement
	if err := r.db.WithContext(ctx).First(&agreement, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &agreement, nil
}

// FindByBookingID finds the agreement derived from a booking
func (r *GormAgreementRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*rental.RentalAgreement, error) {
	var agreement rental.RentalAgreement
	if err := r.db.WithContext(ctx).
		First(&agreement, "booking_id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &agreement, nil
}

// FindByBookingIDForUpdate locks the agreement row until the surrounding
// transaction completes. Concurrent meter readings and settlements for the
// same booking serialize on this lock.
func (r *GormAgreementRepository) FindByBookingIDForUpdate(ctx context.Context, bookingID uuid.UUID) (*rental.RentalAgreement, error) {
	var agreement rental.RentalAgreement
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&agreement, "booking_id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &agreement, nil
}

// ExistsByBookingID checks whether a booking already has an agreement
func (r *GormAgreementRepository) ExistsByBookingID(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&rental.RentalAgreement{}).
		Where("booking_id = ?", bookingID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an agreement. The unique index on booking_id makes
// concurrent creators race safely: the loser sees Conflict.
func (r *GormAgreementRepository) Save(ctx context.Context, agreement *rental.RentalAgreement) error {
	if err := r.db.WithContext(ctx).Save(agreement).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewConflict("An agreement already exists for this booking")
		}
		return fmt.Errorf("failed to save agreement: %w", err)
	}
	return nil
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormAgreementRepository) SaveWithLock(ctx context.Context, agreement *rental.RentalAgreement) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var currentVersion int
		result := tx.Model(&rental.RentalAgreement{}).
			Where("id = ?", agreement.ID).
			Select("version").
			Scan(&currentVersion)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		if currentVersion != agreement.Version {
			return shared.NewConflict("The agreement was modified by another process")
		}

		agreement.Version++
		agreement.UpdatedAt = time.Now()

		update := tx.Model(&rental.RentalAgreement{}).
			Where("id = ? AND version = ?", agreement.ID, currentVersion).
			Updates(map[string]interface{}{
				"status":             agreement.Status,
				"tenant_approved_at": agreement.TenantApprovedAt,
				"activated_at":       agreement.ActivatedAt,
				"terminated_at":      agreement.TerminatedAt,
				"terminate_reason":   agreement.TerminateReason,
				"version":            agreement.Version,
				"updated_at":         agreement.UpdatedAt,
			})
		if update.Error != nil {
			return update.Error
		}
		if update.RowsAffected == 0 {
			return shared.NewConflict("The agreement was modified by another process")
		}
		return nil
	})
}

// Ensure GormAgreementRepository implements AgreementRepository
var _ rental.AgreementRepository = (*GormAgreementRepository)(nil)
