package trade

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stocktrack/backend/internal/domain/shared"
	"github.com/stocktrack/backend/internal/domain/shared/valueobject"
)

// PurchaseOrderItem represents a line item in a purchase order.
// Product name, unit, price and the unit's conversion rate are denormalized
// snapshots taken at creation time; they stay stable even if the catalog
// changes later. BaseQuantity is the stock movement a confirmation books.
type PurchaseOrderItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName    string          `gorm:"type:varchar(200);not null"`
	Quantity       decimal.Decimal `gorm:"type:decimal(18,3);not null"` // in Unit
	Unit           string          `gorm:"type:varchar(20);not null"`
	ConversionRate decimal.Decimal `gorm:"type:decimal(18,6);not null;default:1"`
	BaseQuantity   decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}

func newOrderItemFields(productID uuid.UUID, productName, unit string, quantity, conversionRate decimal.Decimal, unitPrice valueobject.Money) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("VALIDATION_ERROR", "Product ID cannot be empty")
	}
	if strings.TrimSpace(productName) == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Product name cannot be empty")
	}
	if strings.TrimSpace(unit) == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Unit cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if conversionRate.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("VALIDATION_ERROR", "Conversion rate must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("VALIDATION_ERROR", "Unit price cannot be negative")
	}
	return nil
}

// PurchaseOrder is an inbound trade document. Confirming it increases stock
// for every line item.
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	OrderNumber string              `gorm:"type:varchar(20);not null;uniqueIndex:idx_purchase_order_number"`
	Supplier    string              `gorm:"type:varchar(200);not null"`
	OrderDate   time.Time           `gorm:"not null"`
	TotalAmount decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	Status      OrderStatus         `gorm:"type:varchar(20);not null"`
	ConfirmedAt *time.Time
	Items       []PurchaseOrderItem `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrder creates a new pending purchase order
func NewPurchaseOrder(orderNumber, supplier string, orderDate time.Time) (*PurchaseOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Order number cannot be empty")
	}
	if strings.TrimSpace(supplier) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Supplier cannot be empty")
	}

	return &PurchaseOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		Supplier:          supplier,
		OrderDate:         orderDate,
		TotalAmount:       decimal.Zero,
		Status:            OrderStatusPending,
		Items:             make([]PurchaseOrderItem, 0),
	}, nil
}

// AddItem adds a line item while the order is still pending. conversionRate
// is the number of base units one order unit stands for; pass 1 when buying
// in the base unit.
func (o *PurchaseOrder) AddItem(productID uuid.UUID, productName, unit string, quantity, conversionRate decimal.Decimal, unitPrice valueobject.Money) (*PurchaseOrderItem, error) {
	if o.Status != OrderStatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot modify items of a confirmed order")
	}
	if err := newOrderItemFields(productID, productName, unit, quantity, conversionRate, unitPrice); err != nil {
		return nil, err
	}

	now := time.Now()
	item := PurchaseOrderItem{
		ID:             uuid.New(),
		OrderID:        o.ID,
		ProductID:      productID,
		ProductName:    productName,
		Quantity:       valueobject.RoundQuantity(quantity),
		Unit:           unit,
		ConversionRate: conversionRate,
		BaseQuantity:   valueobject.ToBaseUnits(quantity, conversionRate),
		UnitPrice:      unitPrice.Round().Amount(),
		Subtotal:       unitPrice.Mul(quantity).Amount(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	o.Items = append(o.Items, item)
	o.recalculateTotal()
	o.UpdatedAt = now
	o.IncrementVersion()

	return &o.Items[len(o.Items)-1], nil
}

func (o *PurchaseOrder) recalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal)
	}
	o.TotalAmount = total.Round(valueobject.MoneyPrecision)
}

// Confirm transitions the order to CONFIRMED. Irreversible.
func (o *PurchaseOrder) Confirm() error {
	if !o.Status.CanTransitionTo(OrderStatusConfirmed) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot confirm order in status %s", o.Status))
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Cannot confirm an order with no items")
	}

	now := time.Now()
	o.Status = OrderStatusConfirmed
	o.ConfirmedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	return nil
}

// CanDelete returns true while no stock has moved for this order
func (o *PurchaseOrder) CanDelete() bool {
	return o.Status == OrderStatusPending
}

// GetItem returns the line item with the given ID, or nil
func (o *PurchaseOrder) GetItem(itemID uuid.UUID) *PurchaseOrderItem {
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			return &o.Items[i]
		}
	}
	return nil
}

// BaseQuantityByProduct sums ordered quantities per product in base units,
// using the conversion-rate snapshots taken when each line was added.
// Used by return-cap validation.
func (o *PurchaseOrder) BaseQuantityByProduct() map[uuid.UUID]decimal.Decimal {
	result := make(map[uuid.UUID]decimal.Decimal, len(o.Items))
	for _, item := range o.Items {
		result[item.ProductID] = result[item.ProductID].Add(item.BaseQuantity)
	}
	return result
}
