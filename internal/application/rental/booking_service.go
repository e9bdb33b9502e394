package rental

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentflow/backend/internal/domain/rental"
	"github.com/rentflow/backend/internal/domain/shared"
)

// BookingService handles the booking half of the rental lifecycle: the
// tenant's request, the owner's verdicts, and the duration negotiation.
type BookingService struct {
	bookingRepo    rental.BookingRepository
	eventPublisher shared.EventPublisher
}

// NewBookingService creates a new BookingService
func NewBookingService(bookingRepo rental.BookingRepository) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
	}
}

// SetEventPublisher sets the event publisher for notification fan-out
func (s *BookingService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create places a new booking request (tenant action)
func (s *BookingService) Create(ctx context.Context, actor shared.Actor, req CreateBookingRequest) (*BookingResponse, error) {
	if !actor.IsTenant() {
		return nil, shared.NewUnauthorized("Only tenants can place booking requests")
	}

	booking, err := rental.NewBooking(req.PropertyID, actor.ID, req.OwnerID, req.RequestedMoveIn, req.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Save(ctx, booking); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, booking)

	response := ToBookingResponse(booking)
	return &response, nil
}

// Accept accepts a pending booking (owner action)
func (s *BookingService) Accept(ctx context.Context, actor shared.Actor, bookingID uuid.UUID) (*BookingResponse, error) {
	return s.transition(ctx, bookingID, func(b *rental.Booking) error {
		return b.Accept(actor)
	})
}

// Reject rejects a booking with a reason (owner action)
func (s *BookingService) Reject(ctx context.Context, actor shared.Actor, bookingID uuid.UUID, req RejectBookingRequest) (*BookingResponse, error) {
	return s.transition(ctx, bookingID, func(b *rental.Booking) error {
		return b.Reject(actor, req.Reason)
	})
}

// ProposeDuration records the tenant's proposed rental duration
func (s *BookingService) ProposeDuration(ctx context.Context, actor shared.Actor, bookingID uuid.UUID, req ProposeDurationRequest) (*BookingResponse, error) {
	return s.transition(ctx, bookingID, func(b *rental.Booking) error {
		return b.ProposeDuration(actor, req.Years, req.Months)
	})
}

// DecideDuration records the owner's verdict on the proposed duration.
// Declining terminates the booking.
func (s *BookingService) DecideDuration(ctx context.Context, actor shared.Actor, bookingID uuid.UUID, req DecideDurationRequest) (*BookingResponse, error) {
	return s.transition(ctx, bookingID, func(b *rental.Booking) error {
		return b.DecideDuration(actor, req.Approved)
	})
}

// GetByID retrieves a booking visible to the requesting party
func (s *BookingService) GetByID(ctx context.Context, actor shared.Actor, bookingID uuid.UUID) (*BookingResponse, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := booking.AuthorizeParty(actor); err != nil {
		return nil, err
	}
	response := ToBookingResponse(booking)
	return &response, nil
}

// List retrieves the bookings where the actor is a party
func (s *BookingService) List(ctx context.Context, actor shared.Actor, filter BookingListFilter) ([]BookingResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	if filter.Status != "" {
		status := rental.BookingStatus(filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError(shared.CodeInvalidInput, "Unknown booking status filter")
		}
		domainFilter.Filters["status"] = status.String()
	}

	bookings, err := s.bookingRepo.FindByParty(ctx, actor, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.bookingRepo.CountByParty(ctx, actor, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, ToBookingResponse(&bookings[i]))
	}
	return responses, total, nil
}

// transition loads the booking, applies the mutation, and saves under the
// optimistic lock. Of two concurrent conflicting transitions, the loser of
// the version check receives Conflict.
func (s *BookingService) transition(ctx context.Context, bookingID uuid.UUID, mutate func(*rental.Booking) error) (*BookingResponse, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := mutate(booking); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.SaveWithLock(ctx, booking); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, booking)

	response := ToBookingResponse(booking)
	return &response, nil
}

func (s *BookingService) publishEvents(ctx context.Context, booking *rental.Booking) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range booking.GetDomainEvents() {
		// Notification fan-out is best effort; a failed publish never fails
		// the booking operation.
		_ = s.eventPublisher.Publish(ctx, event)
	}
	booking.ClearDomainEvents()
}
