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

// SalesOrderItem represents a line item in a sales order.
// OriginalPrice preserves the pre-discount unit price so discounts stay
// auditable after the fact. ConversionRate and BaseQuantity are snapshots
// taken when the line is added; later catalog changes to the package unit
// never alter how much stock a confirmed order moved.
type SalesOrderItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName    string          `gorm:"type:varchar(200);not null"`
	Quantity       decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	Unit           string          `gorm:"type:varchar(20);not null"`
	ConversionRate decimal.Decimal `gorm:"type:decimal(18,6);not null;default:1"`
	BaseQuantity   decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(18,4);not null"` // price actually charged
	OriginalPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null"` // pre-discount price
	Subtotal       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SalesOrderItem) TableName() string {
	return "sales_order_items"
}

// SalesOrder is an outbound trade document. Confirming it decreases stock for
// every line item, after an availability check across the whole order.
type SalesOrder struct {
	shared.BaseAggregateRoot
	OrderNumber  string           `gorm:"type:varchar(20);not null;uniqueIndex:idx_sales_order_number"`
	CustomerName string           `gorm:"type:varchar(200);not null"`
	OrderDate    time.Time        `gorm:"not null"`
	TotalAmount  decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	Status       OrderStatus      `gorm:"type:varchar(20);not null"`
	ConfirmedAt  *time.Time
	Items        []SalesOrderItem `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (SalesOrder) TableName() string {
	return "sales_orders"
}

// NewSalesOrder creates a new pending sales order
func NewSalesOrder(orderNumber, customerName string, orderDate time.Time) (*SalesOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Order number cannot be empty")
	}
	if strings.TrimSpace(customerName) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Customer name cannot be empty")
	}

	return &SalesOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		CustomerName:      customerName,
		OrderDate:         orderDate,
		TotalAmount:       decimal.Zero,
		Status:            OrderStatusPending,
		Items:             make([]SalesOrderItem, 0),
	}, nil
}

// AddItem adds a line item while the order is still pending.
// conversionRate is the number of base units one order unit stands for;
// pass 1 when selling in the base unit. originalPrice is the pre-discount
// unit price; pass the same value as unitPrice when no discount applies.
func (o *SalesOrder) AddItem(productID uuid.UUID, productName, unit string, quantity, conversionRate decimal.Decimal, unitPrice, originalPrice valueobject.Money) (*SalesOrderItem, error) {
	if o.Status != OrderStatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot modify items of a confirmed order")
	}
	if err := newOrderItemFields(productID, productName, unit, quantity, conversionRate, unitPrice); err != nil {
		return nil, err
	}
	if originalPrice.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Original price cannot be negative")
	}
	if originalPrice.IsZero() {
		originalPrice = unitPrice
	}

	now := time.Now()
	item := SalesOrderItem{
		ID:             uuid.New(),
		OrderID:        o.ID,
		ProductID:      productID,
		ProductName:    productName,
		Quantity:       valueobject.RoundQuantity(quantity),
		Unit:           unit,
		ConversionRate: conversionRate,
		BaseQuantity:   valueobject.ToBaseUnits(quantity, conversionRate),
		UnitPrice:      unitPrice.Round().Amount(),
		OriginalPrice:  originalPrice.Round().Amount(),
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

func (o *SalesOrder) recalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal)
	}
	o.TotalAmount = total.Round(valueobject.MoneyPrecision)
}

// Confirm transitions the order to CONFIRMED. Irreversible.
func (o *SalesOrder) Confirm() error {
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
func (o *SalesOrder) CanDelete() bool {
	return o.Status == OrderStatusPending
}

// GetItem returns the line item with the given ID, or nil
func (o *SalesOrder) GetItem(itemID uuid.UUID) *SalesOrderItem {
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
func (o *SalesOrder) BaseQuantityByProduct() map[uuid.UUID]decimal.Decimal {
	result := make(map[uuid.UUID]decimal.Decimal, len(o.Items))
	for _, item := range o.Items {
		result[item.ProductID] = result[item.ProductID].Add(item.BaseQuantity)
	}
	return result
}
