package handler

import (
	"github.com/gin-gonic/gin"
	billingapp "github.com/rentflow/backend/internal/application/billing"
)

// InvoiceHandler exposes deposit payment, meter readings and settlement
// over HTTP
type InvoiceHandler struct {
	BaseHandler
	invoiceService *billingapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *billingapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// RegisterRoutes registers billing routes on the given group
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	billing := rg.Group("/billing")
	billing.POST("/bookings/:id/deposit", h.PayDeposit)
	billing.GET("/bookings/:id/invoices", h.ListByBooking)
	billing.POST("/agreements/:id/readings", h.RecordReading)

	invoices := billing.Group("/invoices")
	{
		invoices.GET("", h.List)
		invoices.GET("/:id", h.Get)
		invoices.POST("/:id/settle", h.Settle)
	}
}

// PayDeposit handles POST /billing/bookings/:id/deposit
func (h *InvoiceHandler) PayDeposit(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	bookingID, ok := h.pathID(c)
	if !ok {
		return
	}

	var req billingapp.PayDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	invoice, err := h.invoiceService.PayDeposit(c.Request.Context(), actor, bookingID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, invoice)
}

// RecordReading handles POST /billing/agreements/:id/readings
func (h *InvoiceHandler) RecordReading(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	agreementID, ok := h.pathID(c)
	if !ok {
		return
	}

	var req billingapp.RecordReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	invoice, err := h.invoiceService.RecordReading(c.Request.Context(), actor, agreementID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, invoice)
}

// Settle handles POST /billing/invoices/:id/settle
func (h *InvoiceHandler) Settle(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	invoiceID, ok := h.pathID(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.SettlePayment(c.Request.Context(), actor, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// Get handles GET /billing/invoices/:id
func (h *InvoiceHandler) Get(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	invoiceID, ok := h.pathID(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetByID(c.Request.Context(), actor, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// List handles GET /billing/invoices. It lists the invoices where the
// caller is a party, across all of their bookings.
func (h *InvoiceHandler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var filter billingapp.InvoiceListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.bindError(c, err)
		return
	}

	invoices, total, err := h.invoiceService.ListByParty(c.Request.Context(), actor, filter)
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
	h.SuccessWithMeta(c, invoices, total, page, pageSize)
}

// ListByBooking handles GET /billing/bookings/:id/invoices
func (h *InvoiceHandler) ListByBooking(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	bookingID, ok := h.pathID(c)
	if !ok {
		return
	}

	var filter billingapp.InvoiceListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.bindError(c, err)
		return
	}

	invoices, total, err := h.invoiceService.ListByBooking(c.Request.Context(), actor, bookingID, filter)
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
	h.SuccessWithMeta(c, invoices, total, page, pageSize)
}
