package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stocktrack/backend/internal/domain/shared"
)

// TransactionType represents the type of inventory transaction
type TransactionType string

const (
	// TransactionTypePurchase is stock received from a confirmed purchase order
	TransactionTypePurchase TransactionType = "PURCHASE"
	// TransactionTypeSale is stock shipped for a confirmed sales order
	TransactionTypeSale TransactionType = "SALE"
	// TransactionTypeAdjustment is a manual or stock-taking correction
	TransactionTypeAdjustment TransactionType = "ADJUSTMENT"
	// TransactionTypeReturn is a confirmed return movement, either direction
	TransactionTypeReturn TransactionType = "RETURN"
)

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// IsValid returns true if the transaction type is valid
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypePurchase, TransactionTypeSale, TransactionTypeAdjustment, TransactionTypeReturn:
		return true
	}
	return false
}

// InventoryTransaction is an immutable record of a single stock movement.
// Transactions are append-only: corrections are made with new transactions,
// never by mutating or deleting existing rows.
type InventoryTransaction struct {
	shared.BaseEntity
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_inv_tx_product"`
	TransactionType TransactionType `gorm:"type:varchar(20);not null;index:idx_inv_tx_type"`
	QuantityChange  decimal.Decimal `gorm:"type:decimal(18,3);not null"` // signed, base units
	Unit            string          `gorm:"type:varchar(20);not null"`   // unit the operator used, for display
	BalanceAfter    decimal.Decimal `gorm:"type:decimal(18,3);not null"` // record balance after this movement
	ReferenceID     *uuid.UUID      `gorm:"type:uuid;index"`             // originating document, nil for manual adjustments
	Note            string          `gorm:"type:varchar(500)"`
	TransactionDate time.Time       `gorm:"not null;index:idx_inv_tx_date"`
}

// TableName returns the table name for GORM
func (InventoryTransaction) TableName() string {
	return "inventory_transactions"
}

// NewInventoryTransaction creates a new inventory transaction
func NewInventoryTransaction(
	productID uuid.UUID,
	txType TransactionType,
	quantityChange decimal.Decimal,
	unit string,
	balanceAfter decimal.Decimal,
	referenceID *uuid.UUID,
	note string,
) (*InventoryTransaction, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Product ID cannot be empty")
	}
	if !txType.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid transaction type")
	}
	if quantityChange.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity change cannot be zero")
	}
	if unit == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Unit cannot be empty")
	}
	if balanceAfter.IsNegative() {
		return nil, shared.NewDomainError("INSUFFICIENT_STOCK", "Balance after transaction cannot be negative")
	}

	// Purchases always add stock, sales always remove it. Adjustments and
	// returns carry their direction in the sign of the change.
	if txType == TransactionTypePurchase && quantityChange.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Purchase transactions must increase stock")
	}
	if txType == TransactionTypeSale && quantityChange.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Sale transactions must decrease stock")
	}

	return &InventoryTransaction{
		BaseEntity:      shared.NewBaseEntity(),
		ProductID:       productID,
		TransactionType: txType,
		QuantityChange:  quantityChange,
		Unit:            unit,
		BalanceAfter:    balanceAfter,
		ReferenceID:     referenceID,
		Note:            note,
		TransactionDate: time.Now(),
	}, nil
}

// IsIncrease returns true if this transaction added stock
func (t *InventoryTransaction) IsIncrease() bool {
	return t.QuantityChange.IsPositive()
}
