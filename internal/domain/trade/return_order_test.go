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

func TestReturnOrderType_IsValid(t *testing.T) {
	assert.True(t, ReturnOrderTypePurchase.IsValid())
	assert.True(t, ReturnOrderTypeSales.IsValid())
	assert.False(t, ReturnOrderType("EXCHANGE").IsValid())
}

func TestReturnOrderType_StockDirection(t *testing.T) {
	// returning to a supplier sends stock out
	assert.True(t, decimal.NewFromInt(-1).Equal(ReturnOrderTypePurchase.StockDirection()))
	// a customer return brings stock back in
	assert.True(t, decimal.NewFromInt(1).Equal(ReturnOrderTypeSales.StockDirection()))
}

func createTestReturnOrder(t *testing.T, orderType ReturnOrderType) *ReturnOrder {
	order, err := NewReturnOrder("RO-2026-00001", uuid.New(), orderType, time.Now())
	require.NoError(t, err)
	return order
}

func TestNewReturnOrder(t *testing.T) {
	order := createTestReturnOrder(t, ReturnOrderTypeSales)
	assert.Equal(t, ReturnOrderTypeSales, order.OrderType)
	assert.Equal(t, OrderStatusPending, order.Status)
	assert.NotEqual(t, uuid.Nil, order.OriginalOrderID)
}

func TestNewReturnOrder_Validation(t *testing.T) {
	_, err := NewReturnOrder("", uuid.New(), ReturnOrderTypeSales, time.Now())
	assert.True(t, errors.Is(err, shared.ErrValidation))

	_, err = NewReturnOrder("RO-2026-00001", uuid.Nil, ReturnOrderTypeSales, time.Now())
	assert.True(t, errors.Is(err, shared.ErrValidation))

	_, err = NewReturnOrder("RO-2026-00001", uuid.New(), ReturnOrderType("X"), time.Now())
	assert.True(t, errors.Is(err, shared.ErrValidation))
}

func TestReturnOrder_AddItemAndTotal(t *testing.T) {
	order := createTestReturnOrder(t, ReturnOrderTypePurchase)
	price, _ := valueobject.NewMoneyFromString("1.50")

	item, err := order.AddItem(uuid.New(), "Water", "bottle", decimal.NewFromInt(4), decimal.NewFromInt(1), price)
	require.NoError(t, err)
	assert.Equal(t, order.ID, item.ReturnOrderID)
	assert.True(t, decimal.RequireFromString("6").Equal(order.TotalAmount))
}

func TestReturnOrder_Confirm(t *testing.T) {
	order := createTestReturnOrder(t, ReturnOrderTypeSales)

	err := order.Confirm()
	assert.True(t, errors.Is(err, shared.ErrValidation), "empty return cannot confirm")

	price, _ := valueobject.NewMoneyFromString("1.50")
	_, err = order.AddItem(uuid.New(), "Water", "bottle", decimal.NewFromInt(1), decimal.NewFromInt(1), price)
	require.NoError(t, err)

	require.NoError(t, order.Confirm())
	assert.Equal(t, OrderStatusConfirmed, order.Status)
	assert.False(t, order.CanDelete())

	err = order.Confirm()
	assert.True(t, errors.Is(err, shared.ErrInvalidState))

	_, err = order.AddItem(uuid.New(), "Juice", "bottle", decimal.NewFromInt(1), decimal.NewFromInt(1), price)
	assert.True(t, errors.Is(err, shared.ErrInvalidState))
}

func TestReturnOrder_BaseQuantityByProduct(t *testing.T) {
	order := createTestReturnOrder(t, ReturnOrderTypeSales)
	productID := uuid.New()
	price, _ := valueobject.NewMoneyFromString("1.50")

	_, err := order.AddItem(productID, "Water", "box", decimal.NewFromInt(1), decimal.NewFromInt(12), price)
	require.NoError(t, err)
	_, err = order.AddItem(productID, "Water", "bottle", decimal.NewFromInt(2), decimal.NewFromInt(1), price)
	require.NoError(t, err)

	byProduct := order.BaseQuantityByProduct()
	assert.True(t, decimal.NewFromInt(14).Equal(byProduct[productID]))
}
