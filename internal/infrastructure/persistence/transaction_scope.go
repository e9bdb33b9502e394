package persistence

import (
	"context"

	appbilling "github.com/rentflow/backend/internal/application/billing"
	apprental "github.com/rentflow/backend/internal/application/rental"
	"github.com/rentflow/backend/internal/domain/billing"
	"github.com/rentflow/backend/internal/domain/rental"
	"gorm.io/gorm"
)

// GormRentalTransactionScope implements the rental TransactionScope using
// GORM transactions. Agreement creation writes the agreement and advances
// the booking atomically.
type GormRentalTransactionScope struct {
	db *gorm.DB
}

// NewGormRentalTransactionScope creates a new GormRentalTransactionScope
func NewGormRentalTransactionScope(db *gorm.DB) *GormRentalTransactionScope {
	return &GormRentalTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormRentalTransactionScope) Execute(ctx context.Context, fn func(repos apprental.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRentalRepositories{tx: tx})
	})
}

// gormRentalRepositories provides rental repositories bound to one transaction
type gormRentalRepositories struct {
	tx *gorm.DB
}

func (r *gormRentalRepositories) BookingRepo() rental.BookingRepository {
	return NewGormBookingRepository(r.tx)
}

func (r *gormRentalRepositories) AgreementRepo() rental.AgreementRepository {
	return NewGormAgreementRepository(r.tx)
}

// GormBillingTransactionScope implements the billing TransactionScope using
// GORM transactions. Reading ingestion and deposit settlement run their
// read-compute-write cycles inside one transaction, serialized by the row
// lock taken on the agreement.
type GormBillingTransactionScope struct {
	db *gorm.DB
}

// NewGormBillingTransactionScope creates a new GormBillingTransactionScope
func NewGormBillingTransactionScope(db *gorm.DB) *GormBillingTransactionScope {
	return &GormBillingTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormBillingTransactionScope) Execute(ctx context.Context, fn func(repos appbilling.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormBillingRepositories{tx: tx})
	})
}

// gormBillingRepositories provides billing repositories bound to one transaction
type gormBillingRepositories struct {
	tx *gorm.DB
}

func (r *gormBillingRepositories) BookingRepo() rental.BookingRepository {
	return NewGormBookingRepository(r.tx)
}

func (r *gormBillingRepositories) AgreementRepo() rental.AgreementRepository {
	return NewGormAgreementRepository(r.tx)
}

func (r *gormBillingRepositories) InvoiceRepo() billing.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx)
}

var _ apprental.TransactionScope = (*GormRentalTransactionScope)(nil)
var _ apprental.TransactionalRepositories = (*gormRentalRepositories)(nil)
var _ appbilling.TransactionScope = (*GormBillingTransactionScope)(nil)
var _ appbilling.TransactionalRepositories = (*gormBillingRepositories)(nil)
