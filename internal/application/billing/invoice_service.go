package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rentflow/backend/internal/domain/billing"
	"github.com/rentflow/backend/internal/domain/rental"
	"github.com/rentflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceService handles the metered billing lifecycle: the deposit payment
// that activates a tenancy, monthly reading ingestion, and settlement.
type InvoiceService struct {
	bookingRepo    rental.BookingRepository
	agreementRepo  rental.AgreementRepository
	invoiceRepo    billing.InvoiceRepository
	txScope        TransactionScope
	tariff         billing.Tariff
	eventPublisher shared.EventPublisher
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	bookingRepo rental.BookingRepository,
	agreementRepo rental.AgreementRepository,
	invoiceRepo billing.InvoiceRepository,
	txScope TransactionScope,
	tariff billing.Tariff,
) *InvoiceService {
	return &InvoiceService{
		bookingRepo:   bookingRepo,
		agreementRepo: agreementRepo,
		invoiceRepo:   invoiceRepo,
		txScope:       txScope,
		tariff:        tariff,
	}
}

// SetEventPublisher sets the event publisher for notification fan-out
func (s *InvoiceService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// PayDeposit records the tenant's deposit payment for a booking awaiting
// payment. The invoice starts PENDING; settlement is a separate attestation.
// A second deposit for the same booking loses on the storage uniqueness and
// surfaces as Conflict.
func (s *InvoiceService) PayDeposit(ctx context.Context, actor shared.Actor, bookingID uuid.UUID, req PayDepositRequest) (*InvoiceResponse, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := booking.AuthorizeTenant(actor); err != nil {
		return nil, err
	}
	if booking.Status != rental.BookingStatusPaymentPending {
		return nil, shared.NewIllegalTransition(fmt.Sprintf("Cannot pay deposit for booking in %s status", booking.Status))
	}

	agreement, err := s.agreementRepo.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	invoice, err := billing.NewDepositInvoice(agreement, req.Amount, s.tariff.DueDays)
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	s.publish(ctx, billing.NewDepositRecordedEvent(invoice))

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// RecordReading ingests the owner's meter reading for one billing period and
// issues the rent invoice it implies. The agreement row stays locked for the
// whole read-compute-write cycle, so two readings for the same tenancy
// serialize and the reading monotonicity check is race-free.
func (s *InvoiceService) RecordReading(ctx context.Context, actor shared.Actor, agreementID uuid.UUID, req RecordReadingRequest) (*InvoiceResponse, error) {
	period, err := billing.ParseBillingPeriod(req.BillingPeriod)
	if err != nil {
		return nil, err
	}

	// Authorization first, outside the transaction, so an unentitled caller
	// never takes the row lock.
	agreement, err := s.agreementRepo.FindByID(ctx, agreementID)
	if err != nil {
		return nil, err
	}
	if err := agreement.AuthorizeOwner(actor); err != nil {
		return nil, err
	}

	var invoice *billing.Invoice
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		locked, err := repos.AgreementRepo().FindByBookingIDForUpdate(ctx, agreement.BookingID)
		if err != nil {
			return err
		}
		if !locked.IsActive() {
			return shared.NewIllegalTransition(fmt.Sprintf("Cannot bill an agreement in %s status", locked.Status))
		}

		lastReading := decimal.Zero
		latest, err := repos.InvoiceRepo().FindLatestRentInvoice(ctx, locked.BookingID)
		switch {
		case err == nil:
			if !period.After(latest.BillingPeriod) {
				return shared.NewConflict(fmt.Sprintf("Billing period %s is not after the last billed period %s", period, latest.BillingPeriod))
			}
			lastReading = latest.ElectricityReading
		case errors.Is(err, shared.ErrNotFound):
			// First rent cycle; the meter baseline is zero.
		default:
			return err
		}

		applyCredit, err := s.depositCreditEligible(ctx, repos, locked.BookingID)
		if err != nil {
			return err
		}

		invoice, err = billing.NewRentInvoice(billing.RentInvoiceInput{
			Agreement:          locked,
			Period:             period,
			CurrentReading:     req.CurrentReading,
			LastReading:        lastReading,
			Tariff:             s.tariff,
			ApplyDepositCredit: applyCredit,
		})
		if err != nil {
			return err
		}

		return repos.InvoiceRepo().Save(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, billing.NewInvoiceIssuedEvent(invoice))

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// SettlePayment marks a pending invoice as paid. Either booking party may
// attest settlement; settling an already-paid invoice is a no-op success.
// Settling the deposit activates the booking and the agreement in the same
// transaction.
func (s *InvoiceService) SettlePayment(ctx context.Context, actor shared.Actor, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := invoice.AuthorizeParty(actor); err != nil {
		return nil, err
	}

	var events []shared.DomainEvent
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		current, err := repos.InvoiceRepo().FindByID(ctx, invoiceID)
		if err != nil {
			return err
		}
		invoice = current

		if !invoice.MarkPaid() {
			return nil // Already settled; idempotent.
		}
		if err := repos.InvoiceRepo().Update(ctx, invoice); err != nil {
			return err
		}
		events = append(events, billing.NewPaymentSettledEvent(invoice))

		if !invoice.IsDeposit() {
			return nil
		}

		// Deposit settlement is the activation gate of the whole lifecycle.
		booking, err := repos.BookingRepo().FindByID(ctx, invoice.BookingID)
		if err != nil {
			return err
		}
		agreement, err := repos.AgreementRepo().FindByBookingIDForUpdate(ctx, invoice.BookingID)
		if err != nil {
			return err
		}
		if err := booking.Activate(); err != nil {
			return err
		}
		if err := agreement.Activate(); err != nil {
			return err
		}
		if err := repos.BookingRepo().SaveWithLock(ctx, booking); err != nil {
			return err
		}
		if err := repos.AgreementRepo().SaveWithLock(ctx, agreement); err != nil {
			return err
		}
		events = append(events, booking.GetDomainEvents()...)
		events = append(events, agreement.GetDomainEvents()...)
		booking.ClearDomainEvents()
		agreement.ClearDomainEvents()
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, event := range events {
		s.publish(ctx, event)
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// GetByID retrieves an invoice visible to the requesting party
func (s *InvoiceService) GetByID(ctx context.Context, actor shared.Actor, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := invoice.AuthorizeParty(actor); err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// ListByParty retrieves the invoices where the actor is the tenant or the
// owner, newest first. Scoping happens in the query; there is no booking
// lookup to authorize against.
func (s *InvoiceService) ListByParty(ctx context.Context, actor shared.Actor, filter InvoiceListFilter) ([]InvoiceResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	page, err := s.invoiceRepo.FindByParty(ctx, actor, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]InvoiceResponse, 0, len(page.Items))
	for i := range page.Items {
		responses = append(responses, ToInvoiceResponse(&page.Items[i]))
	}
	return responses, page.Total, nil
}

// ListByBooking retrieves the invoices of one booking, newest first
func (s *InvoiceService) ListByBooking(ctx context.Context, actor shared.Actor, bookingID uuid.UUID, filter InvoiceListFilter) ([]InvoiceResponse, int64, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, 0, err
	}
	if err := booking.AuthorizeParty(actor); err != nil {
		return nil, 0, err
	}

	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	page, err := s.invoiceRepo.FindByBooking(ctx, bookingID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]InvoiceResponse, 0, len(page.Items))
	for i := range page.Items {
		responses = append(responses, ToInvoiceResponse(&page.Items[i]))
	}
	return responses, page.Total, nil
}

// ScanOverdue publishes a reminder event for every pending invoice past its
// due date. Invoked by the reminder scheduler; invoices are not mutated.
func (s *InvoiceService) ScanOverdue(ctx context.Context, limit int) (int, error) {
	overdue, err := s.invoiceRepo.FindOverdue(ctx, limit)
	if err != nil {
		return 0, err
	}
	for _, inv := range overdue {
		s.publish(ctx, billing.NewInvoiceOverdueEvent(inv))
	}
	return len(overdue), nil
}

// depositCreditEligible reports whether the one-time deposit credit applies:
// the booking's deposit must have settled and no rent invoice may exist yet.
// Both facts are read inside the billing transaction, so the credit can be
// granted at most once per booking.
func (s *InvoiceService) depositCreditEligible(ctx context.Context, repos TransactionalRepositories, bookingID uuid.UUID) (bool, error) {
	paid, err := repos.InvoiceRepo().ExistsPaidDeposit(ctx, bookingID)
	if err != nil {
		return false, err
	}
	if !paid {
		return false, nil
	}
	count, err := repos.InvoiceRepo().CountRentInvoices(ctx, bookingID)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func (s *InvoiceService) publish(ctx context.Context, event shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	_ = s.eventPublisher.Publish(ctx, event)
}
