package trade

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocktrack/backend/internal/domain/shared"
	"github.com/stocktrack/backend/internal/domain/shared/valueobject"
)

func createTestPurchaseOrder(t *testing.T) *PurchaseOrder {
	order, err := NewPurchaseOrder("PO-2026-00001", "Acme Beverages", time.Now())
	require.NoError(t, err)
	return order
}

func addTestPurchaseItem(t *testing.T, order *PurchaseOrder, qty, price string) *PurchaseOrderItem {
	unitPrice, err := valueobject.NewMoneyFromString(price)
	require.NoError(t, err)
	item, err := order.AddItem(uuid.New(), "Water", "bottle", decimal.RequireFromString(qty), decimal.NewFromInt(1), unitPrice)
	require.NoError(t, err)
	return item
}

func TestNewPurchaseOrder(t *testing.T) {
	order := createTestPurchaseOrder(t)
	assert.Equal(t, "PO-2026-00001", order.OrderNumber)
	assert.Equal(t, "Acme Beverages", order.Supplier)
	assert.Equal(t, OrderStatusPending, order.Status)
	assert.True(t, order.TotalAmount.IsZero())
	assert.Nil(t, order.ConfirmedAt)
}

func TestNewPurchaseOrder_Validation(t *testing.T) {
	_, err := NewPurchaseOrder("", "Acme", time.Now())
	assert.True(t, errors.Is(err, shared.ErrValidation))

	_, err = NewPurchaseOrder("PO-2026-00001", "  ", time.Now())
	assert.True(t, errors.Is(err, shared.ErrValidation))
}

func TestPurchaseOrder_AddItem(t *testing.T) {
	order := createTestPurchaseOrder(t)
	item := addTestPurchaseItem(t, order, "10", "1.50")

	assert.Equal(t, order.ID, item.OrderID)
	assert.True(t, decimal.RequireFromString("15").Equal(item.Subtotal))
	assert.True(t, decimal.RequireFromString("15").Equal(order.TotalAmount))

	addTestPurchaseItem(t, order, "5", "2.00")
	assert.True(t, decimal.RequireFromString("25").Equal(order.TotalAmount))
	assert.Len(t, order.Items, 2)
}

func TestPurchaseOrder_AddItem_Validation(t *testing.T) {
	order := createTestPurchaseOrder(t)
	price := valueobject.ZeroMoney()

	_, err := order.AddItem(uuid.Nil, "Water", "bottle", decimal.NewFromInt(1), decimal.NewFromInt(1), price)
	assert.True(t, errors.Is(err, shared.ErrValidation))

	_, err = order.AddItem(uuid.New(), "", "bottle", decimal.NewFromInt(1), decimal.NewFromInt(1), price)
	assert.True(t, errors.Is(err, shared.ErrValidation))

	_, err = order.AddItem(uuid.New(), "Water", "", decimal.NewFromInt(1), decimal.NewFromInt(1), price)
	assert.True(t, errors.Is(err, shared.ErrValidation))

	_, err = order.AddItem(uuid.New(), "Water", "bottle", decimal.Zero, decimal.NewFromInt(1), price)
	assert.True(t, errors.Is(err, shared.ErrInvalidQuantity))

	_, err = order.AddItem(uuid.New(), "Water", "bottle", decimal.NewFromInt(-1), decimal.NewFromInt(1), price)
	assert.True(t, errors.Is(err, shared.ErrInvalidQuantity))

	negative := valueobject.NewMoney(decimal.NewFromInt(-1))
	_, err = order.AddItem(uuid.New(), "Water", "bottle", decimal.NewFromInt(1), decimal.NewFromInt(1), negative)
	assert.True(t, errors.Is(err, shared.ErrValidation))
}

func TestPurchaseOrder_Confirm(t *testing.T) {
	order := createTestPurchaseOrder(t)
	addTestPurchaseItem(t, order, "10", "1.50")

	require.NoError(t, order.Confirm())
	assert.Equal(t, OrderStatusConfirmed, order.Status)
	require.NotNil(t, order.ConfirmedAt)

	// confirming twice is rejected
	err := order.Confirm()
	assert.True(t, errors.Is(err, shared.ErrInvalidState))
}

func TestPurchaseOrder_Confirm_EmptyOrder(t *testing.T) {
	order := createTestPurchaseOrder(t)
	err := order.Confirm()
	assert.True(t, errors.Is(err, shared.ErrValidation))
}

func TestPurchaseOrder_NoItemChangesAfterConfirm(t *testing.T) {
	order := createTestPurchaseOrder(t)
	addTestPurchaseItem(t, order, "10", "1.50")
	require.NoError(t, order.Confirm())

	price := valueobject.ZeroMoney()
	_, err := order.AddItem(uuid.New(), "Water", "bottle", decimal.NewFromInt(1), decimal.NewFromInt(1), price)
	assert.True(t, errors.Is(err, shared.ErrInvalidState))
}

func TestPurchaseOrder_CanDelete(t *testing.T) {
	order := createTestPurchaseOrder(t)
	assert.True(t, order.CanDelete())

	addTestPurchaseItem(t, order, "1", "1")
	require.NoError(t, order.Confirm())
	assert.False(t, order.CanDelete())
}

func TestPurchaseOrder_AddItem_InvalidConversionRate(t *testing.T) {
	order := createTestPurchaseOrder(t)
	price := valueobject.ZeroMoney()

	_, err := order.AddItem(uuid.New(), "Water", "case", decimal.NewFromInt(1), decimal.Zero, price)
	assert.True(t, errors.Is(err, shared.ErrValidation))

	_, err = order.AddItem(uuid.New(), "Water", "case", decimal.NewFromInt(1), decimal.NewFromInt(-12), price)
	assert.True(t, errors.Is(err, shared.ErrValidation))
}

func TestPurchaseOrder_BaseQuantityByProduct(t *testing.T) {
	order := createTestPurchaseOrder(t)
	productID := uuid.New()
	price := valueobject.ZeroMoney()

	// same product on two lines sums up in base units
	_, err := order.AddItem(productID, "Water", "case", decimal.NewFromInt(2), decimal.NewFromInt(12), price)
	require.NoError(t, err)
	_, err = order.AddItem(productID, "Water", "bottle", decimal.NewFromInt(5), decimal.NewFromInt(1), price)
	require.NoError(t, err)
	_, err = order.AddItem(uuid.New(), "Juice", "bottle", decimal.NewFromInt(3), decimal.NewFromInt(1), price)
	require.NoError(t, err)

	byProduct := order.BaseQuantityByProduct()
	assert.Len(t, byProduct, 2)
	assert.True(t, decimal.NewFromInt(29).Equal(byProduct[productID]))
}
