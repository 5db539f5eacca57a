package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stocktrack/backend/internal/domain/shared"
	"github.com/stocktrack/backend/internal/domain/shared/valueobject"
)

// ReturnOrderType identifies the kind of document a return reverses
type ReturnOrderType string

const (
	// ReturnOrderTypePurchase reverses a purchase: stock goes back out
	ReturnOrderTypePurchase ReturnOrderType = "PURCHASE"
	// ReturnOrderTypeSales reverses a sale: stock comes back in
	ReturnOrderTypeSales ReturnOrderType = "SALES"
)

// IsValid checks if the type is a valid ReturnOrderType
func (t ReturnOrderType) IsValid() bool {
	return t == ReturnOrderTypePurchase || t == ReturnOrderTypeSales
}

// String returns the string representation of ReturnOrderType
func (t ReturnOrderType) String() string {
	return string(t)
}

// StockDirection returns the sign a confirmed return of this type applies to
// stock: -1 for purchase returns, +1 for sales returns.
func (t ReturnOrderType) StockDirection() decimal.Decimal {
	if t == ReturnOrderTypePurchase {
		return decimal.NewFromInt(-1)
	}
	return decimal.NewFromInt(1)
}

// ReturnOrderItem mirrors the originating order's item shape. ConversionRate
// and BaseQuantity are snapshots taken when the line is added; cap checks and
// the confirmation stock movement read them instead of the live catalog.
type ReturnOrderItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ReturnOrderID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName    string          `gorm:"type:varchar(200);not null"`
	Quantity       decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	Unit           string          `gorm:"type:varchar(20);not null"`
	ConversionRate decimal.Decimal `gorm:"type:decimal(18,6);not null;default:1"`
	BaseQuantity   decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ReturnOrderItem) TableName() string {
	return "return_order_items"
}

// ReturnOrder reverses part or all of exactly one confirmed original order.
// Across all CONFIRMED returns for that order, the returned quantity per
// product never exceeds the originally ordered quantity.
type ReturnOrder struct {
	shared.BaseAggregateRoot
	OrderNumber     string            `gorm:"type:varchar(20);not null;uniqueIndex:idx_return_order_number"`
	OriginalOrderID uuid.UUID         `gorm:"type:uuid;not null;index"`
	OrderType       ReturnOrderType   `gorm:"type:varchar(20);not null"`
	ReturnDate      time.Time         `gorm:"not null"`
	TotalAmount     decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	Status          OrderStatus       `gorm:"type:varchar(20);not null"`
	ConfirmedAt     *time.Time
	Items           []ReturnOrderItem `gorm:"foreignKey:ReturnOrderID;references:ID"`
}

// TableName returns the table name for GORM
func (ReturnOrder) TableName() string {
	return "return_orders"
}

// NewReturnOrder creates a new pending return order against an original order
func NewReturnOrder(orderNumber string, originalOrderID uuid.UUID, orderType ReturnOrderType, returnDate time.Time) (*ReturnOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Order number cannot be empty")
	}
	if originalOrderID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Original order ID cannot be empty")
	}
	if !orderType.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid return order type")
	}

	return &ReturnOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		OriginalOrderID:   originalOrderID,
		OrderType:         orderType,
		ReturnDate:        returnDate,
		TotalAmount:       decimal.Zero,
		Status:            OrderStatusPending,
		Items:             make([]ReturnOrderItem, 0),
	}, nil
}

// AddItem adds a returned line while the return is still pending.
// conversionRate is the number of base units one returned unit stands for;
// pass 1 when returning in the base unit.
func (o *ReturnOrder) AddItem(productID uuid.UUID, productName, unit string, quantity, conversionRate decimal.Decimal, unitPrice valueobject.Money) (*ReturnOrderItem, error) {
	if o.Status != OrderStatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot modify items of a confirmed return")
	}
	if err := newOrderItemFields(productID, productName, unit, quantity, conversionRate, unitPrice); err != nil {
		return nil, err
	}

	now := time.Now()
	item := ReturnOrderItem{
		ID:             uuid.New(),
		ReturnOrderID:  o.ID,
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

func (o *ReturnOrder) recalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal)
	}
	o.TotalAmount = total.Round(valueobject.MoneyPrecision)
}

// Confirm transitions the return to CONFIRMED. Irreversible.
func (o *ReturnOrder) Confirm() error {
	if !o.Status.CanTransitionTo(OrderStatusConfirmed) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot confirm return order in status %s", o.Status))
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Cannot confirm a return with no items")
	}

	now := time.Now()
	o.Status = OrderStatusConfirmed
	o.ConfirmedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	return nil
}

// CanDelete returns true while no stock has moved for this return
func (o *ReturnOrder) CanDelete() bool {
	return o.Status == OrderStatusPending
}

// BaseQuantityByProduct sums returned quantities per product in base units,
// using the conversion-rate snapshots taken when each line was added
func (o *ReturnOrder) BaseQuantityByProduct() map[uuid.UUID]decimal.Decimal {
	result := make(map[uuid.UUID]decimal.Decimal, len(o.Items))
	for _, item := range o.Items {
		result[item.ProductID] = result[item.ProductID].Add(item.BaseQuantity)
	}
	return result
}
