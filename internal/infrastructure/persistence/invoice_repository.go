package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rentflow/backend/internal/domain/billing"
	"github.com/rentflow/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID retrieves an invoice by its ID
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	var invoice billing.Invoice
	if err := r.db.WithContext(ctx).First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindByBooking retrieves invoices for a booking, newest first
func (r *GormInvoiceRepository) FindByBooking(ctx context.Context, bookingID uuid.UUID, filter shared.Filter) (*shared.Paginated[billing.Invoice], error) {
	scope := r.db.WithContext(ctx).Model(&billing.Invoice{}).Where("booking_id = ?", bookingID)
	return r.paginate(scope, filter)
}

// FindByParty retrieves invoices where the actor is tenant or owner
func (r *GormInvoiceRepository) FindByParty(ctx context.Context, actor shared.Actor, filter shared.Filter) (*shared.Paginated[billing.Invoice], error) {
	scope := r.db.WithContext(ctx).Model(&billing.Invoice{})
	if actor.IsOwner() {
		scope = scope.Where("owner_id = ?", actor.ID)
	} else {
		scope = scope.Where("tenant_id = ?", actor.ID)
	}
	return r.paginate(scope, filter)
}

// FindLatestRentInvoice returns the rent invoice with the highest billing
// period for a booking. Periods sort lexicographically in the YYYY-MM layout,
// so MAX(billing_period) is the latest cycle.
func (r *GormInvoiceRepository) FindLatestRentInvoice(ctx context.Context, bookingID uuid.UUID) (*billing.Invoice, error) {
	var invoice billing.Invoice
	if err := r.db.WithContext(ctx).
		Where("booking_id = ? AND payment_type = ?", bookingID, billing.PaymentTypeRent).
		Order("billing_period DESC").
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// CountRentInvoices counts rent invoices issued for a booking
func (r *GormInvoiceRepository) CountRentInvoices(ctx context.Context, bookingID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&billing.Invoice{}).
		Where("booking_id = ? AND payment_type = ?", bookingID, billing.PaymentTypeRent).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsPaidDeposit reports whether a settled deposit invoice exists for a booking
func (r *GormInvoiceRepository) ExistsPaidDeposit(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&billing.Invoice{}).
		Where("booking_id = ? AND payment_type = ? AND status = ?",
			bookingID, billing.PaymentTypeDeposit, billing.InvoiceStatusPaid).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindOverdue returns pending invoices whose due date has passed, oldest first
func (r *GormInvoiceRepository) FindOverdue(ctx context.Context, limit int) ([]*billing.Invoice, error) {
	var invoices []*billing.Invoice
	query := r.db.WithContext(ctx).
		Where("status = ? AND due_date < ?", billing.InvoiceStatusPending, time.Now()).
		Order("due_date ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// Save persists a new invoice. The unique index on (booking_id, payment_type,
// billing_period) backs the one-invoice-per-cycle rule; violations surface
// as Conflict.
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	if err := r.db.WithContext(ctx).Create(invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewConflict("An invoice already exists for this billing period")
		}
		return fmt.Errorf("failed to save invoice: %w", err)
	}
	return nil
}

// Update persists status changes to an existing invoice
func (r *GormInvoiceRepository) Update(ctx context.Context, invoice *billing.Invoice) error {
	result := r.db.WithContext(ctx).
		Model(&billing.Invoice{}).
		Where("id = ?", invoice.ID).
		Updates(map[string]interface{}{
			"status":     invoice.Status,
			"paid_at":    invoice.PaidAt,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update invoice: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormInvoiceRepository) paginate(scope *gorm.DB, filter shared.Filter) (*shared.Paginated[billing.Invoice], error) {
	scope = r.applyFilters(scope, filter)

	var total int64
	if err := scope.Count(&total).Error; err != nil {
		return nil, err
	}

	orderBy := ValidateSortField(filter.OrderBy, InvoiceSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query := scope.Order(fmt.Sprintf("%s %s", orderBy, orderDir))

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	query = query.Offset((page - 1) * pageSize).Limit(pageSize)

	var invoices []billing.Invoice
	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}

	result := shared.NewPaginated(invoices, total, page, pageSize)
	return &result, nil
}

func (r *GormInvoiceRepository) applyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "payment_type":
			query = query.Where("payment_type = ?", value)
		case "billing_period":
			query = query.Where("billing_period = ?", value)
		}
	}
	return query
}

// Ensure GormInvoiceRepository implements InvoiceRepository
var _ billing.InvoiceRepository = (*GormInvoiceRepository)(nil)
