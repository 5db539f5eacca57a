package inventory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stocktrack/backend/internal/domain/shared"
	"github.com/stocktrack/backend/internal/domain/shared/valueobject"
)

// StockTakingStatus represents the status of a stock taking document
type StockTakingStatus string

const (
	StockTakingStatusInProgress StockTakingStatus = "IN_PROGRESS"
	StockTakingStatusCompleted  StockTakingStatus = "COMPLETED"
)

// IsValid checks if the status is a valid StockTakingStatus
func (s StockTakingStatus) IsValid() bool {
	return s == StockTakingStatusInProgress || s == StockTakingStatusCompleted
}

// String returns the string representation of StockTakingStatus
func (s StockTakingStatus) String() string {
	return string(s)
}

// StockTakingItem is one counted product within a stock taking document.
// SystemQuantity is a frozen snapshot of the ledger balance at creation time;
// ActualQuantity stays editable until the document completes.
type StockTakingItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	StockTakingID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName    string          `gorm:"type:varchar(200);not null"`
	ProductCode    string          `gorm:"type:varchar(8);not null"`
	Unit           string          `gorm:"type:varchar(20);not null"` // the product's base unit
	SystemQuantity decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	ActualQuantity decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	Difference     decimal.Decimal `gorm:"type:decimal(18,3);not null"` // actual - system
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StockTakingItem) TableName() string {
	return "stock_taking_items"
}

// NewStockTakingItem creates a stock taking item with actual = system
func NewStockTakingItem(stockTakingID, productID uuid.UUID, productName, productCode, unit string, systemQty decimal.Decimal) *StockTakingItem {
	now := time.Now()
	return &StockTakingItem{
		ID:             uuid.New(),
		StockTakingID:  stockTakingID,
		ProductID:      productID,
		ProductName:    productName,
		ProductCode:    productCode,
		Unit:           unit,
		SystemQuantity: systemQty,
		ActualQuantity: systemQty,
		Difference:     decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// RecordCount sets the counted quantity and recomputes the difference
func (i *StockTakingItem) RecordCount(actualQty decimal.Decimal) error {
	if actualQty.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Actual quantity cannot be negative")
	}

	i.ActualQuantity = valueobject.RoundQuantity(actualQty)
	i.Difference = i.ActualQuantity.Sub(i.SystemQuantity)
	i.UpdatedAt = time.Now()

	return nil
}

// HasDifference returns true if actual and system quantities differ
func (i *StockTakingItem) HasDifference() bool {
	return !i.Difference.IsZero()
}

// DifferenceSummary aggregates the running state of a stock taking
type DifferenceSummary struct {
	TotalItems         int             `json:"total_items"`
	DifferenceItems    int             `json:"difference_items"`
	PositiveDifference decimal.Decimal `json:"positive_difference"` // sum of surpluses
	NegativeDifference decimal.Decimal `json:"negative_difference"` // sum of absolute shortfalls
}

// StockTaking is a point-in-time reconciliation of recorded vs. counted stock.
// It is the aggregate root for stock taking operations.
type StockTaking struct {
	shared.BaseAggregateRoot
	TakingNumber string            `gorm:"type:varchar(20);not null;uniqueIndex:idx_stock_taking_number"`
	TakingDate   time.Time         `gorm:"not null"`
	Status       StockTakingStatus `gorm:"type:varchar(20);not null"`
	CompletedAt  *time.Time
	Items        []StockTakingItem `gorm:"foreignKey:StockTakingID;references:ID"`
}

// TableName returns the table name for GORM
func (StockTaking) TableName() string {
	return "stock_takings"
}

// NewStockTaking creates a new stock taking document in progress
func NewStockTaking(takingNumber string, takingDate time.Time) (*StockTaking, error) {
	if takingNumber == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Taking number cannot be empty")
	}

	return &StockTaking{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TakingNumber:      takingNumber,
		TakingDate:        takingDate,
		Status:            StockTakingStatusInProgress,
		Items:             make([]StockTakingItem, 0),
	}, nil
}

// AddItem snapshots one product's balance into the document
func (st *StockTaking) AddItem(productID uuid.UUID, productName, productCode, unit string, systemQty decimal.Decimal) error {
	if st.Status != StockTakingStatusInProgress {
		return shared.NewDomainError("INVALID_STATE", "Can only add items while in progress")
	}
	if productID == uuid.Nil {
		return shared.NewDomainError("VALIDATION_ERROR", "Product ID cannot be empty")
	}

	for _, item := range st.Items {
		if item.ProductID == productID {
			return shared.NewDomainError("ALREADY_EXISTS", "Product already exists in stock taking")
		}
	}

	item := NewStockTakingItem(st.ID, productID, productName, productCode, unit, systemQty)
	st.Items = append(st.Items, *item)
	st.UpdatedAt = time.Now()
	st.IncrementVersion()

	return nil
}

// RecordActualQuantity records the counted quantity for one product
func (st *StockTaking) RecordActualQuantity(productID uuid.UUID, actualQty decimal.Decimal) error {
	if st.Status != StockTakingStatusInProgress {
		return shared.NewDomainError("INVALID_STATE", "Stock taking is already completed")
	}

	for i := range st.Items {
		if st.Items[i].ProductID == productID {
			if err := st.Items[i].RecordCount(actualQty); err != nil {
				return err
			}
			st.UpdatedAt = time.Now()
			st.IncrementVersion()
			return nil
		}
	}

	return shared.NewDomainError("NOT_FOUND", "Product not found in stock taking")
}

// Summary computes the running difference summary
func (st *StockTaking) Summary() DifferenceSummary {
	summary := DifferenceSummary{
		TotalItems:         len(st.Items),
		PositiveDifference: decimal.Zero,
		NegativeDifference: decimal.Zero,
	}

	for _, item := range st.Items {
		if !item.HasDifference() {
			continue
		}
		summary.DifferenceItems++
		if item.Difference.IsPositive() {
			summary.PositiveDifference = summary.PositiveDifference.Add(item.Difference)
		} else {
			summary.NegativeDifference = summary.NegativeDifference.Add(item.Difference.Abs())
		}
	}

	return summary
}

// ItemsWithDifference returns the items whose counted quantity differs
func (st *StockTaking) ItemsWithDifference() []StockTakingItem {
	items := make([]StockTakingItem, 0)
	for _, item := range st.Items {
		if item.HasDifference() {
			items = append(items, item)
		}
	}
	return items
}

// Complete transitions the document to COMPLETED. One-way; after completion
// no further edits are accepted.
func (st *StockTaking) Complete() error {
	if st.Status != StockTakingStatusInProgress {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot complete stock taking in status %s", st.Status))
	}

	now := time.Now()
	st.Status = StockTakingStatusCompleted
	st.CompletedAt = &now
	st.UpdatedAt = now
	st.IncrementVersion()

	return nil
}

// CanDelete returns true while the document has not moved stock
func (st *StockTaking) CanDelete() bool {
	return st.Status == StockTakingStatusInProgress
}
