package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	inventoryapp "github.com/stocktrack/backend/internal/application/inventory"
	"github.com/stocktrack/backend/internal/domain/inventory"
)

// InventoryHandler handles stock ledger API endpoints
type InventoryHandler struct {
	BaseHandler
	ledger *inventoryapp.LedgerService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(ledger *inventoryapp.LedgerService) *InventoryHandler {
	return &InventoryHandler{ledger: ledger}
}

// Adjust applies a signed stock movement
func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req inventoryapp.AdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.ledger.Adjust(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// SetQuantity corrects a product's balance to an absolute value
func (h *InventoryHandler) SetQuantity(c *gin.Context) {
	var req inventoryapp.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.ledger.SetQuantity(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// GetBalance returns a product's current balance
func (h *InventoryHandler) GetBalance(c *gin.Context) {
	productID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	balance, err := h.ledger.GetBalance(c.Request.Context(), productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, balance)
}

// ListBalances returns a paginated list of product balances
func (h *InventoryHandler) ListBalances(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.ledger.ListBalances(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListLowStock returns all products at or below their minimum stock threshold
func (h *InventoryHandler) ListLowStock(c *gin.Context) {
	rows, err := h.ledger.ListLowStock(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, rows)
}

// CheckAvailability reports whether the requested quantity is in stock
func (h *InventoryHandler) CheckAvailability(c *gin.Context) {
	var query inventoryapp.AvailabilityQuery
	if err := c.ShouldBindJSON(&query); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.ledger.CheckAvailability(c.Request.Context(), query)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// BatchCheckAvailability checks multiple products in one call
func (h *InventoryHandler) BatchCheckAvailability(c *gin.Context) {
	var req struct {
		Queries []inventoryapp.AvailabilityQuery `json:"queries" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	results, err := h.ledger.BatchCheckAvailability(c.Request.Context(), req.Queries)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, results)
}

// listTransactionsRequest binds transaction history query parameters
type listTransactionsRequest struct {
	ProductID string     `form:"product_id" binding:"omitempty,uuid"`
	Types     []string   `form:"type"`
	From      *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To        *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ListTransactions returns the movement history, newest first
func (h *InventoryHandler) ListTransactions(c *gin.Context) {
	var req listTransactionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	filter := inventory.TransactionFilter{
		From:     req.From,
		To:       req.To,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if req.ProductID != "" {
		productID, err := uuid.Parse(req.ProductID)
		if err != nil {
			h.BadRequest(c, "Invalid product ID")
			return
		}
		filter.ProductID = &productID
	}
	for _, t := range req.Types {
		txType := inventory.TransactionType(t)
		if !txType.IsValid() {
			h.BadRequest(c, "Invalid transaction type: "+t)
			return
		}
		filter.Types = append(filter.Types, txType)
	}

	result, err := h.ledger.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// VerifyBalance compares a product's balance record against its transaction sum
func (h *InventoryHandler) VerifyBalance(c *gin.Context) {
	productID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	verification, err := h.ledger.VerifyBalance(c.Request.Context(), productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, verification)
}
