package rental

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentflow/backend/internal/domain/rental"
	"github.com/rentflow/backend/internal/domain/shared"
)

// AgreementService handles the contract half of the lifecycle: the owner
// drafting and sending terms, the tenant's response, and termination.
type AgreementService struct {
	bookingRepo    rental.BookingRepository
	agreementRepo  rental.AgreementRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
}

// NewAgreementService creates a new AgreementService
func NewAgreementService(bookingRepo rental.BookingRepository, agreementRepo rental.AgreementRepository, txScope TransactionScope) *AgreementService {
	return &AgreementService{
		bookingRepo:   bookingRepo,
		agreementRepo: agreementRepo,
		txScope:       txScope,
	}
}

// SetEventPublisher sets the event publisher for notification fan-out
func (s *AgreementService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create drafts and sends the agreement for a duration-approved booking
// (owner action). The booking moves to AGREEMENT_PENDING in the same
// transaction as the agreement insert; a unique index on booking_id makes
// concurrent duplicate creation lose with Conflict.
func (s *AgreementService) Create(ctx context.Context, actor shared.Actor, bookingID uuid.UUID, req CreateAgreementRequest) (*AgreementResponse, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := booking.AuthorizeOwner(actor); err != nil {
		return nil, err
	}

	exists, err := s.agreementRepo.ExistsByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewConflict("An agreement already exists for this booking")
	}

	if err := booking.MarkAgreementPending(); err != nil {
		return nil, err
	}

	agreement, err := rental.NewRentalAgreement(booking, rental.AgreementTerms{
		BaseRent:        req.BaseRent,
		DepositAmount:   req.DepositAmount,
		ElectricityRate: req.ElectricityRate,
		WaterBill:       req.WaterBill,
		GarbageBill:     req.GarbageBill,
		RulesText:       req.RulesText,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
	})
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.AgreementRepo().Save(ctx, agreement); err != nil {
			return err
		}
		return repos.BookingRepo().SaveWithLock(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, agreement.GetDomainEvents())
	agreement.ClearDomainEvents()
	booking.ClearDomainEvents()

	response := ToAgreementResponse(agreement)
	return &response, nil
}

// Respond records the tenant's verdict on the agreement. Approval moves the
// booking to PAYMENT_PENDING while the agreement stays PENDING_TENANT until
// the deposit settles; declining terminates the agreement and rejects the
// booking.
func (s *AgreementService) Respond(ctx context.Context, actor shared.Actor, agreementID uuid.UUID, req RespondToAgreementRequest) (*AgreementResponse, error) {
	agreement, err := s.agreementRepo.FindByID(ctx, agreementID)
	if err != nil {
		return nil, err
	}
	booking, err := s.bookingRepo.FindByID(ctx, agreement.BookingID)
	if err != nil {
		return nil, err
	}

	if req.Approved {
		if err := agreement.Approve(actor); err != nil {
			return nil, err
		}
		if err := booking.MarkPaymentPending(); err != nil {
			return nil, err
		}
	} else {
		if err := agreement.Decline(actor); err != nil {
			return nil, err
		}
		if err := booking.MarkRejectedByAgreement(); err != nil {
			return nil, err
		}
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.AgreementRepo().SaveWithLock(ctx, agreement); err != nil {
			return err
		}
		return repos.BookingRepo().SaveWithLock(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, agreement.GetDomainEvents())
	s.publishEvents(ctx, booking.GetDomainEvents())
	agreement.ClearDomainEvents()
	booking.ClearDomainEvents()

	response := ToAgreementResponse(agreement)
	return &response, nil
}

// Terminate ends an active agreement (owner action). The booking record
// keeps its ACTIVE stage as history; the tenancy's end lives on the
// agreement.
func (s *AgreementService) Terminate(ctx context.Context, actor shared.Actor, agreementID uuid.UUID, req TerminateAgreementRequest) (*AgreementResponse, error) {
	agreement, err := s.agreementRepo.FindByID(ctx, agreementID)
	if err != nil {
		return nil, err
	}

	if err := agreement.Terminate(actor, req.Reason); err != nil {
		return nil, err
	}

	if err := s.agreementRepo.SaveWithLock(ctx, agreement); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, agreement.GetDomainEvents())
	agreement.ClearDomainEvents()

	response := ToAgreementResponse(agreement)
	return &response, nil
}

// GetByID retrieves an agreement visible to the requesting party
func (s *AgreementService) GetByID(ctx context.Context, actor shared.Actor, agreementID uuid.UUID) (*AgreementResponse, error) {
	agreement, err := s.agreementRepo.FindByID(ctx, agreementID)
	if err != nil {
		return nil, err
	}
	if err := authorizeAgreementParty(agreement, actor); err != nil {
		return nil, err
	}
	response := ToAgreementResponse(agreement)
	return &response, nil
}

// GetByBookingID retrieves the agreement derived from a booking
func (s *AgreementService) GetByBookingID(ctx context.Context, actor shared.Actor, bookingID uuid.UUID) (*AgreementResponse, error) {
	agreement, err := s.agreementRepo.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := authorizeAgreementParty(agreement, actor); err != nil {
		return nil, err
	}
	response := ToAgreementResponse(agreement)
	return &response, nil
}

func authorizeAgreementParty(agreement *rental.RentalAgreement, actor shared.Actor) error {
	if actor.ID == agreement.OwnerID && actor.IsOwner() {
		return nil
	}
	if actor.ID == agreement.TenantID && actor.IsTenant() {
		return nil
	}
	return shared.ErrUnauthorized
}

func (s *AgreementService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range events {
		_ = s.eventPublisher.Publish(ctx, event)
	}
}
