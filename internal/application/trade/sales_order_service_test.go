package trade_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apptrade "github.com/stocktrack/backend/internal/application/trade"
	"github.com/stocktrack/backend/internal/domain/inventory"
	"github.com/stocktrack/backend/internal/domain/shared"
	"github.com/stocktrack/backend/tests/testutil"
)

func TestSalesOrderService_Create(t *testing.T) {
	f := newTradeFixture(t)

	discounted := decimal.RequireFromString("30.00")
	original := decimal.RequireFromString("36.00")
	resp, err := f.sales.Create(context.Background(), apptrade.CreateSalesOrderRequest{
		CustomerName: "Corner Store",
		Items: []apptrade.OrderItemRequest{
			{ProductID: f.product.ID, Quantity: decimal.NewFromInt(3), Unit: "case", UnitPrice: &discounted, OriginalPrice: &original},
			{ProductID: f.product.ID, Quantity: decimal.NewFromInt(5)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("SO-%d-00001", time.Now().Year()), resp.OrderNumber)
	assert.Equal(t, "PENDING", resp.Status)
	require.Len(t, resp.Items, 2)

	// The discounted case line keeps its original price for audit
	assert.True(t, resp.Items[0].UnitPrice.Equal(discounted))
	assert.True(t, resp.Items[0].OriginalPrice.Equal(original))
	assert.True(t, resp.Items[0].Subtotal.Equal(decimal.NewFromInt(90)))

	// The bottle line falls back to the catalog retail price
	assert.True(t, resp.Items[1].UnitPrice.Equal(decimal.NewFromInt(3)))
	assert.True(t, resp.Items[1].OriginalPrice.Equal(decimal.NewFromInt(3)))
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(105)))

	// Creation does not reserve or move stock
	assert.True(t, f.balance(t).IsZero())
	assert.Empty(t, f.repos.Transactions.All())
}

func TestSalesOrderService_Create_UnknownProduct(t *testing.T) {
	f := newTradeFixture(t)

	_, err := f.sales.Create(context.Background(), apptrade.CreateSalesOrderRequest{
		CustomerName: "Corner Store",
		Items: []apptrade.OrderItemRequest{
			{ProductID: testutil.NewTestUUID("missing"), Quantity: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, shared.ErrProductNotFound)
}

func TestSalesOrderService_Confirm(t *testing.T) {
	f := newTradeFixture(t)
	f.stock(t, 100)

	created, err := f.sales.Create(context.Background(), apptrade.CreateSalesOrderRequest{
		CustomerName: "Corner Store",
		Items: []apptrade.OrderItemRequest{
			{ProductID: f.product.ID, Quantity: decimal.NewFromInt(3), Unit: "case"},
		},
	})
	require.NoError(t, err)

	resp, err := f.sales.Confirm(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, "CONFIRMED", resp.Status)
	require.NotNil(t, resp.ConfirmedAt)

	// 3 cases of 12 shipped out of the 100 in stock
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(64)))

	entries := f.repos.Transactions.All()
	require.Len(t, entries, 2) // stocking purchase + the sale
	sale := entries[1]
	assert.Equal(t, inventory.TransactionTypeSale, sale.TransactionType)
	assert.True(t, sale.QuantityChange.Equal(decimal.NewFromInt(-36)))
	assert.True(t, sale.BalanceAfter.Equal(decimal.NewFromInt(64)))
	require.NotNil(t, sale.ReferenceID)
	assert.Equal(t, created.ID, *sale.ReferenceID)
}

func TestSalesOrderService_Confirm_RateChangedAfterCreate(t *testing.T) {
	f := newTradeFixture(t)
	f.stock(t, 100)

	created, err := f.sales.Create(context.Background(), apptrade.CreateSalesOrderRequest{
		CustomerName: "Corner Store",
		Items: []apptrade.OrderItemRequest{
			{ProductID: f.product.ID, Quantity: decimal.NewFromInt(3), Unit: "case"},
		},
	})
	require.NoError(t, err)
	require.True(t, created.Items[0].BaseQuantity.Equal(decimal.NewFromInt(36)))

	// The case is repacked to 20 bottles before confirmation; the order
	// still ships the 36 base units frozen on its lines
	unit, err := f.repos.Units.FindByProductAndName(context.Background(), f.product.ID, "case")
	require.NoError(t, err)
	require.NoError(t, unit.Update("case", decimal.NewFromInt(20)))
	require.NoError(t, f.repos.Units.Save(context.Background(), unit))

	_, err = f.sales.Confirm(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(64)))
}

func TestSalesOrderService_Confirm_InsufficientStock(t *testing.T) {
	f := newTradeFixture(t)
	f.stock(t, 10)

	created, err := f.sales.Create(context.Background(), apptrade.CreateSalesOrderRequest{
		CustomerName: "Corner Store",
		Items: []apptrade.OrderItemRequest{
			{ProductID: f.product.ID, Quantity: decimal.NewFromInt(1), Unit: "case"},
		},
	})
	require.NoError(t, err)

	_, err = f.sales.Confirm(context.Background(), created.ID)
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)

	// Nothing shipped and the order is still pending
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(10)))
	stored, err := f.sales.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "PENDING", stored.Status)
}

func TestSalesOrderService_Confirm_AggregatesLines(t *testing.T) {
	f := newTradeFixture(t)
	f.stock(t, 20)

	// Each line fits on its own, together they need 24 base units
	created, err := f.sales.Create(context.Background(), apptrade.CreateSalesOrderRequest{
		CustomerName: "Corner Store",
		Items: []apptrade.OrderItemRequest{
			{ProductID: f.product.ID, Quantity: decimal.NewFromInt(1), Unit: "case"},
			{ProductID: f.product.ID, Quantity: decimal.NewFromInt(1), Unit: "case"},
		},
	})
	require.NoError(t, err)

	_, err = f.sales.Confirm(context.Background(), created.ID)
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(20)))
}

func TestSalesOrderService_Confirm_Twice(t *testing.T) {
	f := newTradeFixture(t)
	f.stock(t, 100)

	created, err := f.sales.Create(context.Background(), apptrade.CreateSalesOrderRequest{
		CustomerName: "Corner Store",
		Items: []apptrade.OrderItemRequest{
			{ProductID: f.product.ID, Quantity: decimal.NewFromInt(1), Unit: "case"},
		},
	})
	require.NoError(t, err)

	_, err = f.sales.Confirm(context.Background(), created.ID)
	require.NoError(t, err)

	_, err = f.sales.Confirm(context.Background(), created.ID)
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	// The second confirmation did not ship again
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(88)))
}

func TestSalesOrderService_Delete(t *testing.T) {
	f := newTradeFixture(t)
	f.stock(t, 100)

	created, err := f.sales.Create(context.Background(), apptrade.CreateSalesOrderRequest{
		CustomerName: "Corner Store",
		Items: []apptrade.OrderItemRequest{
			{ProductID: f.product.ID, Quantity: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)

	require.NoError(t, f.sales.Delete(context.Background(), created.ID))

	_, err = f.sales.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestSalesOrderService_Delete_Confirmed(t *testing.T) {
	f := newTradeFixture(t)
	f.stock(t, 100)

	created, err := f.sales.Create(context.Background(), apptrade.CreateSalesOrderRequest{
		CustomerName: "Corner Store",
		Items: []apptrade.OrderItemRequest{
			{ProductID: f.product.ID, Quantity: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)
	_, err = f.sales.Confirm(context.Background(), created.ID)
	require.NoError(t, err)

	err = f.sales.Delete(context.Background(), created.ID)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestSalesOrderService_List(t *testing.T) {
	f := newTradeFixture(t)

	for i := 0; i < 2; i++ {
		_, err := f.sales.Create(context.Background(), apptrade.CreateSalesOrderRequest{
			CustomerName: "Corner Store",
			Items: []apptrade.OrderItemRequest{
				{ProductID: f.product.ID, Quantity: decimal.NewFromInt(1)},
			},
		})
		require.NoError(t, err)
	}

	page, err := f.sales.List(context.Background(), shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Len(t, page.Items, 2)
}
