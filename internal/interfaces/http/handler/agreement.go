package handler

import (
	"github.com/gin-gonic/gin"
	rentalapp "github.com/rentflow/backend/internal/application/rental"
)

// AgreementHandler exposes rental agreements over HTTP
type AgreementHandler struct {
	BaseHandler
	agreementService *rentalapp.AgreementService
}

// NewAgreementHandler creates a new AgreementHandler
func NewAgreementHandler(agreementService *rentalapp.AgreementService) *AgreementHandler {
	return &AgreementHandler{agreementService: agreementService}
}

// RegisterRoutes registers agreement routes on the given group.
// Creation hangs off the booking because an agreement is derived from one.
func (h *AgreementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rental := rg.Group("/rental")
	rental.POST("/bookings/:id/agreement", h.Create)
	rental.GET("/bookings/:id/agreement", h.GetByBooking)

	agreements := rental.Group("/agreements")
	{
		agreements.GET("/:id", h.Get)
		agreements.POST("/:id/response", h.Respond)
		agreements.POST("/:id/terminate", h.Terminate)
	}
}

// Create handles POST /rental/bookings/:id/agreement
func (h *AgreementHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	bookingID, ok := h.pathID(c)
	if !ok {
		return
	}

	var req rentalapp.CreateAgreementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	agreement, err := h.agreementService.Create(c.Request.Context(), actor, bookingID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, agreement)
}

// GetByBooking handles GET /rental/bookings/:id/agreement
func (h *AgreementHandler) GetByBooking(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	bookingID, ok := h.pathID(c)
	if !ok {
		return
	}

	agreement, err := h.agreementService.GetByBookingID(c.Request.Context(), actor, bookingID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, agreement)
}

// Get handles GET /rental/agreements/:id
func (h *AgreementHandler) Get(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	agreementID, ok := h.pathID(c)
	if !ok {
		return
	}

	agreement, err := h.agreementService.GetByID(c.Request.Context(), actor, agreementID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, agreement)
}

// Respond handles POST /rental/agreements/:id/response
func (h *AgreementHandler) Respond(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	agreementID, ok := h.pathID(c)
	if !ok {
		return
	}

	var req rentalapp.RespondToAgreementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	agreement, err := h.agreementService.Respond(c.Request.Context(), actor, agreementID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, agreement)
}

// Terminate handles POST /rental/agreements/:id/terminate
func (h *AgreementHandler) Terminate(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	agreementID, ok := h.pathID(c)
	if !ok {
		return
	}

	var req rentalapp.TerminateAgreementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	agreement, err := h.agreementService.Terminate(c.Request.Context(), actor, agreementID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, agreement)
}
