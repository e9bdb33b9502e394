package rental

import (
	"context"

	"github.com/rentflow/backend/internal/domain/rental"
)

// TransactionScope provides transactional access to the rental repositories.
// Agreement creation mutates the Booking and inserts the RentalAgreement in
// one transaction; if either write fails, both roll back.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the rental repositories
// scoped to one transaction.
type TransactionalRepositories interface {
	// BookingRepo returns the booking repository scoped to the current transaction
	BookingRepo() rental.BookingRepository
	// AgreementRepo returns the agreement repository scoped to the current transaction
	AgreementRepo() rental.AgreementRepository
}

// NoOpTransactionScope runs the function against plain repositories without
// a real transaction. Useful for tests.
type NoOpTransactionScope struct {
	bookingRepo   rental.BookingRepository
	agreementRepo rental.AgreementRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(bookingRepo rental.BookingRepository, agreementRepo rental.AgreementRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		bookingRepo:   bookingRepo,
		agreementRepo: agreementRepo,
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

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
