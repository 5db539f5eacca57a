package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stocktrack/backend/internal/domain/shared"
	"github.com/stocktrack/backend/internal/domain/shared/valueobject"
)

// PackageUnit represents an alternate packaging unit for a product.
// One unit of this package equals ConversionRate base units (e.g. 1 box = 12 pcs).
// The name is unique within its product.
type PackageUnit struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_package_unit_name,priority:1"`
	Name           string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_package_unit_name,priority:2"`
	ConversionRate decimal.Decimal `gorm:"type:decimal(18,6);not null"`
	// Optional per-unit price overrides. When nil the product's base-unit
	// price multiplied by the conversion rate applies.
	PurchasePrice *decimal.Decimal `gorm:"type:decimal(18,4)"`
	RetailPrice   *decimal.Decimal `gorm:"type:decimal(18,4)"`
	CreatedAt     time.Time        `gorm:"not null"`
	UpdatedAt     time.Time        `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PackageUnit) TableName() string {
	return "package_units"
}

// NewPackageUnit creates a new package unit for a product
func NewPackageUnit(productID uuid.UUID, name string, conversionRate decimal.Decimal) (*PackageUnit, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Product ID cannot be empty")
	}
	if err := validateUnitName(name); err != nil {
		return nil, err
	}
	if err := validateConversionRate(conversionRate); err != nil {
		return nil, err
	}

	now := time.Now()
	return &PackageUnit{
		ID:             uuid.New(),
		ProductID:      productID,
		Name:           name,
		ConversionRate: conversionRate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// Update updates the unit name and conversion rate
func (u *PackageUnit) Update(name string, conversionRate decimal.Decimal) error {
	if err := validateUnitName(name); err != nil {
		return err
	}
	if err := validateConversionRate(conversionRate); err != nil {
		return err
	}

	u.Name = name
	u.ConversionRate = conversionRate
	u.UpdatedAt = time.Now()

	return nil
}

// SetPrices sets the optional per-unit price overrides.
// Passing nil clears an override and falls back to the product price.
func (u *PackageUnit) SetPrices(purchasePrice, retailPrice *decimal.Decimal) error {
	if purchasePrice != nil && purchasePrice.IsNegative() {
		return shared.NewDomainError("VALIDATION_ERROR", "Purchase price cannot be negative")
	}
	if retailPrice != nil && retailPrice.IsNegative() {
		return shared.NewDomainError("VALIDATION_ERROR", "Retail price cannot be negative")
	}

	u.PurchasePrice = purchasePrice
	u.RetailPrice = retailPrice
	u.UpdatedAt = time.Now()

	return nil
}

// ToBase converts a quantity in this package unit to base units
func (u *PackageUnit) ToBase(quantity decimal.Decimal) decimal.Decimal {
	return valueobject.ToBaseUnits(quantity, u.ConversionRate)
}

// FromBase converts a base-unit quantity to this package unit
func (u *PackageUnit) FromBase(quantity decimal.Decimal) decimal.Decimal {
	return valueobject.FromBaseUnits(quantity, u.ConversionRate)
}

func validateConversionRate(rate decimal.Decimal) error {
	if rate.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("VALIDATION_ERROR", "Conversion rate must be positive")
	}
	return nil
}
