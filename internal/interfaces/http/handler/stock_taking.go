package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	inventoryapp "github.com/stocktrack/backend/internal/application/inventory"
)

// StockTakingHandler handles stock taking API endpoints
type StockTakingHandler struct {
	BaseHandler
	takingService *inventoryapp.StockTakingService
}

// NewStockTakingHandler creates a new StockTakingHandler
func NewStockTakingHandler(takingService *inventoryapp.StockTakingService) *StockTakingHandler {
	return &StockTakingHandler{takingService: takingService}
}

// createStockTakingRequest starts a stock taking, optionally backdated
type createStockTakingRequest struct {
	TakingDate *time.Time `json:"taking_date"`
}

// Create starts a new stock taking snapshotting the whole catalog
func (h *StockTakingHandler) Create(c *gin.Context) {
	// The body is optional, an empty request starts a taking dated now
	var req createStockTakingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindingError(c, err)
			return
		}
	}

	takingDate := time.Now()
	if req.TakingDate != nil {
		takingDate = *req.TakingDate
	}

	taking, err := h.takingService.Create(c.Request.Context(), takingDate)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, taking)
}

// RecordCount records the counted quantity for one product
func (h *StockTakingHandler) RecordCount(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid stock taking ID")
		return
	}

	var req inventoryapp.RecordCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	taking, err := h.takingService.RecordCount(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, taking)
}

// Get returns a stock taking with its items
func (h *StockTakingHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid stock taking ID")
		return
	}

	taking, err := h.takingService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, taking)
}

// GetSummary returns the difference summary of a stock taking
func (h *StockTakingHandler) GetSummary(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid stock taking ID")
		return
	}

	summary, err := h.takingService.GetSummary(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}

// List returns a paginated list of stock takings
func (h *StockTakingHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.takingService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Complete finishes a stock taking and applies every counted difference
func (h *StockTakingHandler) Complete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid stock taking ID")
		return
	}

	taking, err := h.takingService.Complete(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, taking)
}

// Delete removes a pending stock taking
func (h *StockTakingHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid stock taking ID")
		return
	}

	if err := h.takingService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
