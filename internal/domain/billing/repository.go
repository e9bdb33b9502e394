package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentflow/backend/internal/domain/shared"
)

// InvoiceRepository defines the persistence contract for invoices.
// Implementations must enforce the (booking, payment type, billing period)
// uniqueness and surface violations as shared.ErrConflict.
type InvoiceRepository interface {
	// FindByID retrieves an invoice by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindByBooking retrieves all invoices for a booking, newest first
	FindByBooking(ctx context.Context, bookingID uuid.UUID, filter shared.Filter) (*shared.Paginated[Invoice], error)

	// FindByParty retrieves invoices where the actor is tenant or owner
	FindByParty(ctx context.Context, actor shared.Actor, filter shared.Filter) (*shared.Paginated[Invoice], error)

	// FindLatestRentInvoice returns the rent invoice with the highest
	// billing period for a booking, or shared.ErrNotFound when none exists
	FindLatestRentInvoice(ctx context.Context, bookingID uuid.UUID) (*Invoice, error)

	// CountRentInvoices counts rent invoices issued for a booking
	CountRentInvoices(ctx context.Context, bookingID uuid.UUID) (int64, error)

	// ExistsPaidDeposit reports whether a settled deposit invoice exists
	// for a booking
	ExistsPaidDeposit(ctx context.Context, bookingID uuid.UUID) (bool, error)

	// FindOverdue returns pending invoices whose due date has passed
	FindOverdue(ctx context.Context, limit int) ([]*Invoice, error)

	// Save persists a new invoice
	Save(ctx context.Context, invoice *Invoice) error

	// Update persists status changes to an existing invoice
	Update(ctx context.Context, invoice *Invoice) error
}
