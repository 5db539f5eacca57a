package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stocktrack/backend/internal/domain/inventory"
)

// AdjustmentRequest represents a single stock movement. QuantityChange is
// expressed in Unit (empty means the product's base unit) and is signed:
// positive adds stock, negative removes it.
type AdjustmentRequest struct {
	ProductID       uuid.UUID                 `json:"product_id" binding:"required"`
	QuantityChange  decimal.Decimal           `json:"quantity_change" binding:"required"`
	TransactionType inventory.TransactionType `json:"transaction_type" binding:"required"`
	Unit            string                    `json:"unit"`
	ReferenceID     *uuid.UUID                `json:"reference_id"`
	Note            string                    `json:"note" binding:"max=500"`
}

// SetQuantityRequest represents an absolute stock correction
type SetQuantityRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
	Note      string          `json:"note" binding:"max=500"`
}

// MovementResult describes the outcome of an applied stock movement.
// QuantityChange and BalanceAfter are in base units. TransactionID is nil
// when the movement was a no-op (e.g. setting the quantity it already has).
type MovementResult struct {
	TransactionID  *uuid.UUID      `json:"transaction_id,omitempty"`
	ProductID      uuid.UUID       `json:"product_id"`
	QuantityChange decimal.Decimal `json:"quantity_change"`
	BalanceAfter   decimal.Decimal `json:"balance_after"`
}

// AvailabilityQuery asks whether a quantity in a given unit is in stock
type AvailabilityQuery struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	Unit      string          `json:"unit"`
}

// AvailabilityResult reports stock coverage for one query.
// RequestedBase, Balance and Shortage are in base units.
type AvailabilityResult struct {
	ProductID     uuid.UUID       `json:"product_id"`
	Available     bool            `json:"available"`
	RequestedBase decimal.Decimal `json:"requested_base"`
	Balance       decimal.Decimal `json:"balance"`
	Shortage      decimal.Decimal `json:"shortage"`
}

// BalanceResponse is the current balance of one product in base units
type BalanceResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name"`
	BaseUnit    string          `json:"base_unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	IsLowStock  bool            `json:"is_low_stock"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TransactionResponse represents a ledger entry in API responses
type TransactionResponse struct {
	ID              uuid.UUID       `json:"id"`
	ProductID       uuid.UUID       `json:"product_id"`
	TransactionType string          `json:"transaction_type"`
	QuantityChange  decimal.Decimal `json:"quantity_change"`
	Unit            string          `json:"unit"`
	BalanceAfter    decimal.Decimal `json:"balance_after"`
	ReferenceID     *uuid.UUID      `json:"reference_id,omitempty"`
	Note            string          `json:"note"`
	TransactionDate time.Time       `json:"transaction_date"`
}

// BalanceVerification compares the cached balance against the transaction sum
type BalanceVerification struct {
	ProductID      uuid.UUID       `json:"product_id"`
	RecordBalance  decimal.Decimal `json:"record_balance"`
	TransactionSum decimal.Decimal `json:"transaction_sum"`
	Consistent     bool            `json:"consistent"`
}

// RecordCountRequest records the counted quantity for one product of a stock taking
type RecordCountRequest struct {
	ProductID      uuid.UUID       `json:"product_id" binding:"required"`
	ActualQuantity decimal.Decimal `json:"actual_quantity"`
}

// StockTakingItemResponse represents a stock taking line in API responses
type StockTakingItemResponse struct {
	ID             uuid.UUID       `json:"id"`
	ProductID      uuid.UUID       `json:"product_id"`
	ProductName    string          `json:"product_name"`
	ProductCode    string          `json:"product_code"`
	Unit           string          `json:"unit"`
	SystemQuantity decimal.Decimal `json:"system_quantity"`
	ActualQuantity decimal.Decimal `json:"actual_quantity"`
	Difference     decimal.Decimal `json:"difference"`
}

// StockTakingResponse represents a stock taking document in API responses
type StockTakingResponse struct {
	ID           uuid.UUID                    `json:"id"`
	TakingNumber string                       `json:"taking_number"`
	TakingDate   time.Time                    `json:"taking_date"`
	Status       string                       `json:"status"`
	CompletedAt  *time.Time                   `json:"completed_at,omitempty"`
	Items        []StockTakingItemResponse    `json:"items,omitempty"`
	Summary      *inventory.DifferenceSummary `json:"summary,omitempty"`
	CreatedAt    time.Time                    `json:"created_at"`
	UpdatedAt    time.Time                    `json:"updated_at"`
}

// ToTransactionResponse converts a domain transaction to a response DTO
func ToTransactionResponse(tx *inventory.InventoryTransaction) *TransactionResponse {
	return &TransactionResponse{
		ID:              tx.ID,
		ProductID:       tx.ProductID,
		TransactionType: tx.TransactionType.String(),
		QuantityChange:  tx.QuantityChange,
		Unit:            tx.Unit,
		BalanceAfter:    tx.BalanceAfter,
		ReferenceID:     tx.ReferenceID,
		Note:            tx.Note,
		TransactionDate: tx.TransactionDate,
	}
}

// ToStockTakingResponse converts a domain stock taking to a response DTO.
// Items and summary are included only when withItems is true.
func ToStockTakingResponse(st *inventory.StockTaking, withItems bool) *StockTakingResponse {
	resp := &StockTakingResponse{
		ID:           st.ID,
		TakingNumber: st.TakingNumber,
		TakingDate:   st.TakingDate,
		Status:       st.Status.String(),
		CompletedAt:  st.CompletedAt,
		CreatedAt:    st.CreatedAt,
		UpdatedAt:    st.UpdatedAt,
	}
	if withItems {
		for i := range st.Items {
			item := &st.Items[i]
			resp.Items = append(resp.Items, StockTakingItemResponse{
				ID:             item.ID,
				ProductID:      item.ProductID,
				ProductName:    item.ProductName,
				ProductCode:    item.ProductCode,
				Unit:           item.Unit,
				SystemQuantity: item.SystemQuantity,
				ActualQuantity: item.ActualQuantity,
				Difference:     item.Difference,
			})
		}
		summary := st.Summary()
		resp.Summary = &summary
	}
	return resp
}
