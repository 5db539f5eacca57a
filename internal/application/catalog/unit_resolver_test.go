package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcatalog "github.com/stocktrack/backend/internal/application/catalog"
	"github.com/stocktrack/backend/internal/domain/shared"
	"github.com/stocktrack/backend/tests/testutil"
)

func newResolverFixture(t *testing.T) (*appcatalog.UnitResolver, *appcatalog.ProductResponse) {
	t.Helper()
	repos := testutil.NewMemoryRepos()
	productSvc := newProductService(repos)
	unitSvc := appcatalog.NewPackageUnitService(repos.Products, repos.Units)

	purchase := decimal.RequireFromString("2.00")
	retail := decimal.RequireFromString("3.00")
	product, err := productSvc.Create(context.Background(), appcatalog.CreateProductRequest{
		Code:          "PD000001",
		Name:          "Spring Water 500ml",
		BaseUnit:      "bottle",
		PurchasePrice: &purchase,
		RetailPrice:   &retail,
	})
	require.NoError(t, err)

	// "case" derives prices from the base unit, "six-pack" overrides retail
	_, err = unitSvc.Create(context.Background(), product.ID, appcatalog.CreatePackageUnitRequest{
		Name:           "case",
		ConversionRate: decimal.NewFromInt(12),
	})
	require.NoError(t, err)
	override := decimal.RequireFromString("16.50")
	_, err = unitSvc.Create(context.Background(), product.ID, appcatalog.CreatePackageUnitRequest{
		Name:           "six-pack",
		ConversionRate: decimal.NewFromInt(6),
		RetailPrice:    &override,
	})
	require.NoError(t, err)

	return appcatalog.NewUnitResolver(repos.Products, repos.Units), product
}

func TestUnitResolver_BaseUnit(t *testing.T) {
	resolver, product := newResolverFixture(t)

	for _, unit := range []string{"", "bottle"} {
		resolved, err := resolver.Resolve(context.Background(), product.ID, unit)
		require.NoError(t, err)
		assert.Equal(t, "bottle", resolved.Unit)
		assert.True(t, resolved.ConversionRate.Equal(decimal.NewFromInt(1)))
		assert.True(t, resolved.PurchasePrice.Equal(decimal.RequireFromString("2")))
		assert.True(t, resolved.RetailPrice.Equal(decimal.RequireFromString("3")))
	}
}

func TestUnitResolver_PackageUnit_DerivedPrice(t *testing.T) {
	resolver, product := newResolverFixture(t)

	resolved, err := resolver.Resolve(context.Background(), product.ID, "case")
	require.NoError(t, err)

	assert.Equal(t, "case", resolved.Unit)
	assert.True(t, resolved.ConversionRate.Equal(decimal.NewFromInt(12)))
	assert.True(t, resolved.PurchasePrice.Equal(decimal.RequireFromString("24")), "purchase price scales with the rate")
	assert.True(t, resolved.RetailPrice.Equal(decimal.RequireFromString("36")), "retail price scales with the rate")
}

func TestUnitResolver_PackageUnit_OverridePrice(t *testing.T) {
	resolver, product := newResolverFixture(t)

	resolved, err := resolver.Resolve(context.Background(), product.ID, "six-pack")
	require.NoError(t, err)

	assert.True(t, resolved.RetailPrice.Equal(decimal.RequireFromString("16.5")), "override wins over the derived price")
	assert.True(t, resolved.PurchasePrice.Equal(decimal.RequireFromString("12")), "purchase price still derives")
}

func TestUnitResolver_NotFound(t *testing.T) {
	resolver, product := newResolverFixture(t)

	_, err := resolver.Resolve(context.Background(), product.ID, "pallet")
	assert.ErrorIs(t, err, shared.ErrUnitNotFound)

	_, err = resolver.Resolve(context.Background(), testutil.NewTestUUID("missing"), "")
	assert.ErrorIs(t, err, shared.ErrProductNotFound)
}

func TestResolvedUnit_Conversions(t *testing.T) {
	resolver, product := newResolverFixture(t)

	resolved, err := resolver.Resolve(context.Background(), product.ID, "case")
	require.NoError(t, err)

	assert.True(t, resolved.ToBase(decimal.NewFromInt(3)).Equal(decimal.NewFromInt(36)))
	assert.True(t, resolved.FromBase(decimal.NewFromInt(36)).Equal(decimal.NewFromInt(3)))
	assert.True(t, resolved.FromBase(decimal.NewFromInt(4)).Equal(decimal.RequireFromString("0.333")))
}
