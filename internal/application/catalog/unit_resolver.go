package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stocktrack/backend/internal/domain/catalog"
	"github.com/stocktrack/backend/internal/domain/shared"
	"github.com/stocktrack/backend/internal/domain/shared/valueobject"
)

// ResolvedUnit carries the conversion rate and effective prices for a
// product's unit. The base unit always resolves with rate 1 and the
// product's own prices. Package units without a price override fall back
// to the base price multiplied by the conversion rate.
type ResolvedUnit struct {
	ProductID      uuid.UUID
	Unit           string
	ConversionRate decimal.Decimal
	PurchasePrice  decimal.Decimal
	RetailPrice    decimal.Decimal
}

// ToBase converts a quantity expressed in the resolved unit to base units
func (r *ResolvedUnit) ToBase(quantity decimal.Decimal) decimal.Decimal {
	return valueobject.ToBaseUnits(quantity, r.ConversionRate)
}

// FromBase converts a base-unit quantity to the resolved unit
func (r *ResolvedUnit) FromBase(quantity decimal.Decimal) decimal.Decimal {
	return valueobject.FromBaseUnits(quantity, r.ConversionRate)
}

// UnitResolver resolves unit names against a product's base unit and its
// package units. It is stateless and cheap to construct, so transactional
// code can build one from transaction-scoped repositories.
type UnitResolver struct {
	productRepo catalog.ProductRepository
	unitRepo    catalog.PackageUnitRepository
}

// NewUnitResolver creates a new UnitResolver
func NewUnitResolver(productRepo catalog.ProductRepository, unitRepo catalog.PackageUnitRepository) *UnitResolver {
	return &UnitResolver{
		productRepo: productRepo,
		unitRepo:    unitRepo,
	}
}

// Resolve resolves a unit name for a product. An empty unit name resolves
// to the product's base unit.
func (r *UnitResolver) Resolve(ctx context.Context, productID uuid.UUID, unit string) (*ResolvedUnit, error) {
	product, err := r.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrProductNotFound
		}
		return nil, err
	}
	return r.ResolveForProduct(ctx, product, unit)
}

// ResolveForProduct resolves a unit name against an already loaded product
func (r *UnitResolver) ResolveForProduct(ctx context.Context, product *catalog.Product, unit string) (*ResolvedUnit, error) {
	if unit == "" || unit == product.BaseUnit {
		return &ResolvedUnit{
			ProductID:      product.ID,
			Unit:           product.BaseUnit,
			ConversionRate: decimal.NewFromInt(1),
			PurchasePrice:  product.PurchasePrice,
			RetailPrice:    product.RetailPrice,
		}, nil
	}

	pkg, err := r.unitRepo.FindByProductAndName(ctx, product.ID, unit)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUnitNotFound
		}
		return nil, err
	}

	resolved := &ResolvedUnit{
		ProductID:      product.ID,
		Unit:           pkg.Name,
		ConversionRate: pkg.ConversionRate,
		PurchasePrice:  derivedPrice(pkg.PurchasePrice, product.PurchasePrice, pkg.ConversionRate),
		RetailPrice:    derivedPrice(pkg.RetailPrice, product.RetailPrice, pkg.ConversionRate),
	}
	return resolved, nil
}

// derivedPrice returns the override when set, otherwise the base-unit price
// scaled by the conversion rate.
func derivedPrice(override *decimal.Decimal, basePrice, rate decimal.Decimal) decimal.Decimal {
	if override != nil {
		return override.Round(valueobject.MoneyPrecision)
	}
	return basePrice.Mul(rate).Round(valueobject.MoneyPrecision)
}
