package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stocktrack/backend/internal/domain/shared"
)

// InventoryRecordRepository defines persistence operations for balance records
type InventoryRecordRepository interface {
	FindByProduct(ctx context.Context, productID uuid.UUID) (*InventoryRecord, error)

	// FindByProductForUpdate loads the record with a row-level write lock so
	// concurrent movements on the same product serialize. Must be called
	// inside a store transaction.
	FindByProductForUpdate(ctx context.Context, productID uuid.UUID) (*InventoryRecord, error)

	FindAll(ctx context.Context, filter shared.Filter) ([]InventoryRecord, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Create(ctx context.Context, record *InventoryRecord) error

	// SaveWithVersion persists the record only if the stored version matches
	// the version the record was loaded with (optimistic locking).
	SaveWithVersion(ctx context.Context, record *InventoryRecord) error

	// FindLowStock returns records at or below their product's minimum stock
	// threshold. Products with a zero threshold only match when the balance
	// is exactly zero.
	FindLowStock(ctx context.Context) ([]LowStockRow, error)
}

// LowStockRow is a read model joining a balance record with its product
type LowStockRow struct {
	ProductID         uuid.UUID       `json:"product_id"`
	ProductCode       string          `json:"product_code"`
	ProductName       string          `json:"product_name"`
	BaseUnit          string          `json:"base_unit"`
	MinStockThreshold decimal.Decimal `json:"min_stock_threshold"`
	Quantity          decimal.Decimal `json:"quantity"`
}

// TransactionFilter narrows a transaction history query
type TransactionFilter struct {
	ProductID *uuid.UUID
	Types     []TransactionType
	From      *time.Time
	To        *time.Time
	Page      int
	PageSize  int
}

// InventoryTransactionRepository is the append-only store for stock movements
type InventoryTransactionRepository interface {
	Append(ctx context.Context, tx *InventoryTransaction) error
	FindByFilter(ctx context.Context, filter TransactionFilter) ([]InventoryTransaction, int64, error)

	// SumQuantityByProduct returns the sum of all quantity changes for a
	// product. Used to verify the balance invariant.
	SumQuantityByProduct(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error)
}

// StockTakingRepository defines persistence operations for stock takings
type StockTakingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StockTaking, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]StockTaking, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, taking *StockTaking) error
	SaveItem(ctx context.Context, item *StockTakingItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	GenerateTakingNumber(ctx context.Context) (string, error)
}
