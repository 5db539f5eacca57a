package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/stocktrack/backend/internal/domain/catalog"
	"github.com/stocktrack/backend/internal/domain/shared"
)

func setupProductRepo(t *testing.T) (*GormProductRepository, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t, &catalog.Product{})
	return NewGormProductRepository(db), db
}

func newTestProduct(t *testing.T, code, name string) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(code, name, "bottle")
	require.NoError(t, err)
	return product
}

func TestGormProductRepository_SaveAndFind(t *testing.T) {
	repo, _ := setupProductRepo(t)
	ctx := context.Background()

	product := newTestProduct(t, "PD000001", "Spring Water 500ml")
	require.NoError(t, repo.Save(ctx, product))

	byID, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "PD000001", byID.Code)
	assert.Equal(t, "Spring Water 500ml", byID.Name)
	assert.Equal(t, "bottle", byID.BaseUnit)

	byCode, err := repo.FindByCode(ctx, "PD000001")
	require.NoError(t, err)
	assert.Equal(t, product.ID, byCode.ID)

	exists, err := repo.ExistsByCode(ctx, "PD000001")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByCode(ctx, "PD999999")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormProductRepository_FindByID_NotFound(t *testing.T) {
	repo, _ := setupProductRepo(t)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = repo.FindByCode(context.Background(), "PD000042")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormProductRepository_Save_UpdatesExisting(t *testing.T) {
	repo, _ := setupProductRepo(t)
	ctx := context.Background()

	product := newTestProduct(t, "PD000001", "Spring Water 500ml")
	require.NoError(t, repo.Save(ctx, product))

	require.NoError(t, product.Update("Spring Water 1L", "1L PET", "Aqua Co"))
	require.NoError(t, repo.Save(ctx, product))

	found, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Spring Water 1L", found.Name)
	assert.Equal(t, "1L PET", found.Specification)
	assert.Equal(t, "Aqua Co", found.Supplier)

	count, err := repo.Count(ctx, shared.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGormProductRepository_FindAll_Pagination(t *testing.T) {
	repo, _ := setupProductRepo(t)
	ctx := context.Background()

	for _, code := range []string{"PD000003", "PD000001", "PD000002"} {
		require.NoError(t, repo.Save(ctx, newTestProduct(t, code, "Product "+code)))
	}

	filter := shared.Filter{Page: 1, PageSize: 2, OrderBy: "code", OrderDir: "asc"}
	products, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "PD000001", products[0].Code)
	assert.Equal(t, "PD000002", products[1].Code)

	filter.Page = 2
	products, err = repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "PD000003", products[0].Code)

	count, err := repo.Count(ctx, shared.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestGormProductRepository_ListAll_OrderedByCode(t *testing.T) {
	repo, _ := setupProductRepo(t)
	ctx := context.Background()

	for _, code := range []string{"PD000002", "PD000001"} {
		require.NoError(t, repo.Save(ctx, newTestProduct(t, code, "Product "+code)))
	}

	products, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "PD000001", products[0].Code)
	assert.Equal(t, "PD000002", products[1].Code)
}

func TestGormProductRepository_Delete(t *testing.T) {
	repo, _ := setupProductRepo(t)
	ctx := context.Background()

	product := newTestProduct(t, "PD000001", "Spring Water 500ml")
	require.NoError(t, repo.Save(ctx, product))

	require.NoError(t, repo.Delete(ctx, product.ID))

	_, err := repo.FindByID(ctx, product.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = repo.Delete(ctx, product.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormProductRepository_GenerateCode(t *testing.T) {
	repo, _ := setupProductRepo(t)
	ctx := context.Background()

	code, err := repo.GenerateCode(ctx)
	require.NoError(t, err)
	assert.Equal(t, "PD000001", code)

	require.NoError(t, repo.Save(ctx, newTestProduct(t, "PD000007", "Cola 330ml")))

	code, err = repo.GenerateCode(ctx)
	require.NoError(t, err)
	assert.Equal(t, "PD000008", code)
}
