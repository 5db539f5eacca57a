package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/stocktrack/backend/internal/domain/catalog"
	"github.com/stocktrack/backend/tests/testutil"
)

func TestDatabase_Ping(t *testing.T) {
	mock := testutil.NewMockDB(t)
	defer mock.Close()

	database := &Database{DB: mock.DB}
	assert.NoError(t, database.Ping())
}

func TestDatabase_Stats(t *testing.T) {
	mock := testutil.NewMockDB(t)
	defer mock.Close()

	database := &Database{DB: mock.DB}
	stats, err := database.Stats()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, stats.OpenConnections, 0)
	assert.GreaterOrEqual(t, stats.Idle, 0)
}

func TestDatabase_Close(t *testing.T) {
	mock := testutil.NewMockDB(t)
	mock.Mock.ExpectClose()

	database := &Database{DB: mock.DB}
	assert.NoError(t, database.Close())
	mock.ExpectationsWereMet(t)
}

func TestDatabase_Transaction_Commit(t *testing.T) {
	db := setupTestDB(t, &catalog.Product{})
	database := &Database{DB: db}

	product := newTestProduct(t, "PD000001", "Spring Water 500ml")
	err := database.Transaction(func(tx *gorm.DB) error {
		return tx.Create(product).Error
	})
	require.NoError(t, err)

	found, err := NewGormProductRepository(db).FindByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, "PD000001", found.Code)
}

func TestDatabase_Transaction_RollsBackOnError(t *testing.T) {
	db := setupTestDB(t, &catalog.Product{})
	database := &Database{DB: db}

	product := newTestProduct(t, "PD000001", "Spring Water 500ml")
	err := database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return err
		}
		return errors.New("boom")
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&catalog.Product{}).Count(&count).Error)
	assert.Zero(t, count)
}
