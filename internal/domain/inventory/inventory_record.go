package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stocktrack/backend/internal/domain/shared"
	"github.com/stocktrack/backend/internal/domain/shared/valueobject"
)

// InventoryRecord is the current-balance cache for a single product.
// Exactly one record exists per product; it must always equal the sum of all
// transaction quantity changes for that product. The record row is the
// serialization point for concurrent stock movements.
type InventoryRecord struct {
	shared.BaseAggregateRoot
	ProductID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_record_product"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0"` // base units, never negative
}

// TableName returns the table name for GORM
func (InventoryRecord) TableName() string {
	return "inventory_records"
}

// NewInventoryRecord creates a zero-balance record for a product
func NewInventoryRecord(productID uuid.UUID) (*InventoryRecord, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Product ID cannot be empty")
	}

	return &InventoryRecord{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		Quantity:          decimal.Zero,
	}, nil
}

// Apply applies a signed base-unit change to the balance.
// A change that would drive the balance negative is rejected.
func (r *InventoryRecord) Apply(change decimal.Decimal) error {
	if change.IsZero() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity change cannot be zero")
	}

	next := valueobject.RoundQuantity(r.Quantity.Add(change))
	if next.IsNegative() {
		return shared.NewDomainError("INSUFFICIENT_STOCK",
			"Stock change would drive balance below zero")
	}

	r.Quantity = next
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// CanSatisfy reports whether the balance covers the requested base-unit quantity
func (r *InventoryRecord) CanSatisfy(quantity decimal.Decimal) bool {
	return r.Quantity.GreaterThanOrEqual(quantity)
}

// Shortage returns how many base units are missing to satisfy the request,
// zero when the balance is sufficient.
func (r *InventoryRecord) Shortage(quantity decimal.Decimal) decimal.Decimal {
	if r.CanSatisfy(quantity) {
		return decimal.Zero
	}
	return valueobject.RoundQuantity(quantity.Sub(r.Quantity))
}

// LastUpdated returns the time of the last balance mutation
func (r *InventoryRecord) LastUpdated() time.Time {
	return r.UpdatedAt
}
