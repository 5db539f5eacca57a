package catalog

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocktrack/backend/internal/domain/shared"
	"github.com/stocktrack/backend/internal/domain/shared/valueobject"
)

func createTestProduct(t *testing.T) *Product {
	product, err := NewProduct("PD000001", "Spring Water 500ml", "bottle")
	require.NoError(t, err)
	return product
}

func TestNewProduct(t *testing.T) {
	product := createTestProduct(t)

	assert.Equal(t, "PD000001", product.Code)
	assert.Equal(t, "Spring Water 500ml", product.Name)
	assert.Equal(t, "bottle", product.BaseUnit)
	assert.True(t, product.PurchasePrice.IsZero())
	assert.True(t, product.RetailPrice.IsZero())
	assert.True(t, product.MinStockThreshold.IsZero())
	assert.Equal(t, 1, product.Version)
	assert.NotEqual(t, product.ID.String(), "00000000-0000-0000-0000-000000000000")
}

func TestNewProduct_NormalizesCode(t *testing.T) {
	product, err := NewProduct("  pd000042 ", "Test", "pcs")
	require.NoError(t, err)
	assert.Equal(t, "PD000042", product.Code)
}

func TestNewProduct_Validation(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		prodName string
		baseUnit string
	}{
		{"empty code", "", "Test", "pcs"},
		{"short code", "PD123", "Test", "pcs"},
		{"wrong prefix length", "P0000001", "Test", "pcs"},
		{"non-digit suffix", "PDABCDEF", "Test", "pcs"},
		{"empty name", "PD000001", "", "pcs"},
		{"blank name", "PD000001", "   ", "pcs"},
		{"empty base unit", "PD000001", "Test", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProduct(tt.code, tt.prodName, tt.baseUnit)
			assert.True(t, errors.Is(err, shared.ErrValidation))
		})
	}
}

func TestValidateProductCode(t *testing.T) {
	assert.NoError(t, ValidateProductCode("PD000001"))
	assert.NoError(t, ValidateProductCode("AB123456"))
	assert.Error(t, ValidateProductCode("pd000001"))
	assert.Error(t, ValidateProductCode("PD00001"))
	assert.Error(t, ValidateProductCode("PD0000012"))
}

func TestProduct_Update(t *testing.T) {
	product := createTestProduct(t)

	err := product.Update("Sparkling Water 500ml", "24 per case", "Acme Beverages")
	require.NoError(t, err)

	assert.Equal(t, "Sparkling Water 500ml", product.Name)
	assert.Equal(t, "24 per case", product.Specification)
	assert.Equal(t, "Acme Beverages", product.Supplier)
	assert.Equal(t, 2, product.Version)
}

func TestProduct_Update_EmptyName(t *testing.T) {
	product := createTestProduct(t)
	err := product.Update("", "", "")
	assert.True(t, errors.Is(err, shared.ErrValidation))
	assert.Equal(t, 1, product.Version)
}

func TestProduct_SetPrices(t *testing.T) {
	product := createTestProduct(t)

	purchase, _ := valueobject.NewMoneyFromString("1.20")
	retail, _ := valueobject.NewMoneyFromString("2.50")
	err := product.SetPrices(purchase, retail)
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("1.2").Equal(product.PurchasePrice))
	assert.True(t, decimal.RequireFromString("2.5").Equal(product.RetailPrice))
}

func TestProduct_SetPrices_Negative(t *testing.T) {
	product := createTestProduct(t)

	negative := valueobject.NewMoney(decimal.NewFromInt(-1))
	err := product.SetPrices(negative, valueobject.ZeroMoney())
	assert.True(t, errors.Is(err, shared.ErrValidation))

	err = product.SetPrices(valueobject.ZeroMoney(), negative)
	assert.True(t, errors.Is(err, shared.ErrValidation))
}

func TestProduct_SetMinStockThreshold(t *testing.T) {
	product := createTestProduct(t)

	err := product.SetMinStockThreshold(decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10).Equal(product.MinStockThreshold))

	err = product.SetMinStockThreshold(decimal.NewFromInt(-1))
	assert.True(t, errors.Is(err, shared.ErrInvalidQuantity))
}

func TestProduct_IsLowStock(t *testing.T) {
	product := createTestProduct(t)

	// threshold zero: alert only at exactly zero
	assert.True(t, product.IsLowStock(decimal.Zero))
	assert.False(t, product.IsLowStock(decimal.NewFromInt(1)))

	require.NoError(t, product.SetMinStockThreshold(decimal.NewFromInt(10)))
	assert.True(t, product.IsLowStock(decimal.NewFromInt(10)))
	assert.True(t, product.IsLowStock(decimal.NewFromInt(3)))
	assert.False(t, product.IsLowStock(decimal.NewFromInt(11)))
}

func TestProduct_FindUnit(t *testing.T) {
	product := createTestProduct(t)
	unit, err := NewPackageUnit(product.ID, "case", decimal.NewFromInt(24))
	require.NoError(t, err)
	product.Units = []PackageUnit{*unit}

	found := product.FindUnit("case")
	require.NotNil(t, found)
	assert.True(t, decimal.NewFromInt(24).Equal(found.ConversionRate))

	assert.Nil(t, product.FindUnit("pallet"))
}
