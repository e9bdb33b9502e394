package handler

import (
	"github.com/gin-gonic/gin"
	rentalapp "github.com/rentflow/backend/internal/application/rental"
)

// BookingHandler exposes the booking lifecycle over HTTP
type BookingHandler struct {
	BaseHandler
	bookingService *rentalapp.BookingService
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookingService *rentalapp.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// RegisterRoutes registers booking routes on the given group
func (h *BookingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/rental/bookings")
	{
		bookings.POST("", h.Create)
		bookings.GET("", h.List)
		bookings.GET("/:id", h.Get)
		bookings.POST("/:id/accept", h.Accept)
		bookings.POST("/:id/reject", h.Reject)
		bookings.POST("/:id/duration", h.ProposeDuration)
		bookings.POST("/:id/duration/decision", h.DecideDuration)
	}
}

// Create handles POST /rental/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req rentalapp.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	booking, err := h.bookingService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, booking)
}

// List handles GET /rental/bookings
func (h *BookingHandler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var filter rentalapp.BookingListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.bindError(c, err)
		return
	}

	bookings, total, err := h.bookingService.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, bookings, total, page, pageSize)
}

// Get handles GET /rental/bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	bookingID, ok := h.pathID(c)
	if !ok {
		return
	}

	booking, err := h.bookingService.GetByID(c.Request.Context(), actor, bookingID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, booking)
}

// Accept handles POST /rental/bookings/:id/accept
func (h *BookingHandler) Accept(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	bookingID, ok := h.pathID(c)
	if !ok {
		return
	}

	booking, err := h.bookingService.Accept(c.Request.Context(), actor, bookingID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, booking)
}

// Reject handles POST /rental/bookings/:id/reject
func (h *BookingHandler) Reject(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	bookingID, ok := h.pathID(c)
	if !ok {
		return
	}

	var req rentalapp.RejectBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	booking, err := h.bookingService.Reject(c.Request.Context(), actor, bookingID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, booking)
}

// ProposeDuration handles POST /rental/bookings/:id/duration
func (h *BookingHandler) ProposeDuration(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	bookingID, ok := h.pathID(c)
	if !ok {
		return
	}

	var req rentalapp.ProposeDurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	booking, err := h.bookingService.ProposeDuration(c.Request.Context(), actor, bookingID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, booking)
}

// DecideDuration handles POST /rental/bookings/:id/duration/decision
func (h *BookingHandler) DecideDuration(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	bookingID, ok := h.pathID(c)
	if !ok {
		return
	}

	var req rentalapp.DecideDurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	booking, err := h.bookingService.DecideDuration(c.Request.Context(), actor, bookingID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, booking)
}
