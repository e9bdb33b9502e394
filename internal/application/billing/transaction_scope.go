package billing

import (
	"context"

	"github.com/rentflow/backend/internal/domain/billing"
	"github.com/rentflow/backend/internal/domain/rental"
)

// TransactionScope provides transactional access to the billing repositories.
// Reading ingestion holds a row lock on the agreement for the whole
// read-compute-write cycle so two readings for the same booking serialize;
// deposit settlement flips the invoice, the booking, and the agreement
// atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories billing
// operations touch, scoped to one transaction.
type TransactionalRepositories interface {
	// BookingRepo returns the booking repository scoped to the current transaction
	BookingRepo() rental.BookingRepository
	// AgreementRepo returns the agreement repository scoped to the current transaction
	AgreementRepo() rental.AgreementRepository
	// InvoiceRepo returns the invoice repository scoped to the current transaction
	InvoiceRepo() billing.InvoiceRepository
}

// NoOpTransactionScope runs the function against plain repositories without
// a real transaction. Useful for tests.
type NoOpTransactionScope struct {
	bookingRepo   rental.BookingRepository
	agreementRepo rental.AgreementRepository
	invoiceRepo   billing.InvoiceRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	bookingRepo rental.BookingRepository,
	agreementRepo rental.AgreementRepository,
	invoiceRepo billing.InvoiceRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		bookingRepo:   bookingRepo,
		agreementRepo: agreementRepo,
		invoiceRepo:   invoiceRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// BookingRepo returns the booking repository.
func (s *NoOpTransactionScope) BookingRepo() rental.BookingRepository {
	return s.bookingRepo
}

// AgreementRepo returns the agreement repository.
func (s *NoOpTransactionScope) AgreementRepo() rental.AgreementRepository {
	return s.agreementRepo
}

// InvoiceRepo returns the invoice repository.
func (s *NoOpTransactionScope) InvoiceRepo() billing.InvoiceRepository {
	return s.invoiceRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
