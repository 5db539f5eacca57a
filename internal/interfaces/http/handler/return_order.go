package handler

import (
	"github.com/gin-gonic/gin"

	tradeapp "github.com/stocktrack/backend/internal/application/trade"
)

// ReturnOrderHandler handles return order API endpoints
type ReturnOrderHandler struct {
	BaseHandler
	orderService *tradeapp.ReturnOrderService
}

// NewReturnOrderHandler creates a new ReturnOrderHandler
func NewReturnOrderHandler(orderService *tradeapp.ReturnOrderService) *ReturnOrderHandler {
	return &ReturnOrderHandler{orderService: orderService}
}

// Create creates a return order in pending state. The returned quantities
// are validated against the remaining returnable quantity of the original
// order, and validated again on confirm.
func (h *ReturnOrderHandler) Create(c *gin.Context) {
	var req tradeapp.CreateReturnOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, order)
}

// Confirm confirms a pending return order and moves the stock
func (h *ReturnOrderHandler) Confirm(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.Confirm(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// Get returns a return order with its items
func (h *ReturnOrderHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// List returns a paginated list of return orders
func (h *ReturnOrderHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Delete removes a pending return order
func (h *ReturnOrderHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
