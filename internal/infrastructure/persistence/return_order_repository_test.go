package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/stocktrack/backend/internal/domain/shared"
	"github.com/stocktrack/backend/internal/domain/trade"
)

func setupReturnOrderRepo(t *testing.T) (*GormReturnOrderRepository, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t, &trade.ReturnOrder{}, &trade.ReturnOrderItem{})
	return NewGormReturnOrderRepository(db), db
}

func newTestReturnOrder(t *testing.T, number string, originalOrderID uuid.UUID) *trade.ReturnOrder {
	t.Helper()
	order, err := trade.NewReturnOrder(number, originalOrderID, trade.ReturnOrderTypeSales, time.Now())
	require.NoError(t, err)
	return order
}

func TestGormReturnOrderRepository_SaveAndFind(t *testing.T) {
	repo, _ := setupReturnOrderRepo(t)
	ctx := context.Background()

	originalOrderID := uuid.New()
	order := newTestReturnOrder(t, "RO-2026-00001", originalOrderID)
	_, err := order.AddItem(uuid.New(), "Spring Water 500ml", "case", decimal.NewFromInt(1), decimal.NewFromInt(12), testMoney(t, "36.00"))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, order))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "RO-2026-00001", found.OrderNumber)
	assert.Equal(t, originalOrderID, found.OriginalOrderID)
	assert.Equal(t, trade.ReturnOrderTypeSales, found.OrderType)
	assert.Equal(t, trade.OrderStatusPending, found.Status)
	assert.True(t, decimal.RequireFromString("36.00").Equal(found.TotalAmount))
	require.Len(t, found.Items, 1)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormReturnOrderRepository_FindByOriginalOrder(t *testing.T) {
	repo, _ := setupReturnOrderRepo(t)
	ctx := context.Background()

	originalOrderID := uuid.New()

	pending := newTestReturnOrder(t, "RO-2026-00001", originalOrderID)
	_, err := pending.AddItem(uuid.New(), "Spring Water 500ml", "case", decimal.NewFromInt(1), decimal.NewFromInt(12), testMoney(t, "36.00"))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, pending))

	confirmed := newTestReturnOrder(t, "RO-2026-00002", originalOrderID)
	_, err = confirmed.AddItem(uuid.New(), "Spring Water 500ml", "bottle", decimal.NewFromInt(6), decimal.NewFromInt(1), testMoney(t, "3.00"))
	require.NoError(t, err)
	require.NoError(t, confirmed.Confirm())
	require.NoError(t, repo.Save(ctx, confirmed))

	other := newTestReturnOrder(t, "RO-2026-00003", uuid.New())
	require.NoError(t, repo.Save(ctx, other))

	all, err := repo.FindByOriginalOrder(ctx, originalOrderID, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.NotEmpty(t, all[0].Items)
	assert.NotEmpty(t, all[1].Items)

	status := trade.OrderStatusConfirmed
	confirmedOnly, err := repo.FindByOriginalOrder(ctx, originalOrderID, &status)
	require.NoError(t, err)
	require.Len(t, confirmedOnly, 1)
	assert.Equal(t, "RO-2026-00002", confirmedOnly[0].OrderNumber)
}

func TestGormReturnOrderRepository_FindAllAndCount(t *testing.T) {
	repo, _ := setupReturnOrderRepo(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		order := newTestReturnOrder(t, fmt.Sprintf("RO-2026-%05d", i), uuid.New())
		require.NoError(t, repo.Save(ctx, order))
	}

	orders, err := repo.FindAll(ctx, shared.Filter{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	count, err := repo.Count(ctx, shared.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestGormReturnOrderRepository_Delete(t *testing.T) {
	repo, db := setupReturnOrderRepo(t)
	ctx := context.Background()

	order := newTestReturnOrder(t, "RO-2026-00001", uuid.New())
	_, err := order.AddItem(uuid.New(), "Spring Water 500ml", "case", decimal.NewFromInt(1), decimal.NewFromInt(12), testMoney(t, "36.00"))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, order))

	require.NoError(t, repo.Delete(ctx, order.ID))

	_, err = repo.FindByID(ctx, order.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	var itemCount int64
	require.NoError(t, db.Model(&trade.ReturnOrderItem{}).Count(&itemCount).Error)
	assert.Zero(t, itemCount)

	err = repo.Delete(ctx, order.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormReturnOrderRepository_GenerateOrderNumber(t *testing.T) {
	repo, _ := setupReturnOrderRepo(t)
	ctx := context.Background()

	year := time.Now().Year()
	number, err := repo.GenerateOrderNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("RO-%d-00001", year), number)

	order := newTestReturnOrder(t, fmt.Sprintf("RO-%d-00003", year), uuid.New())
	require.NoError(t, repo.Save(ctx, order))

	number, err = repo.GenerateOrderNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("RO-%d-00004", year), number)
}
