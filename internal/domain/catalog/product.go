package catalog

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stocktrack/backend/internal/domain/shared"
	"github.com/stocktrack/backend/internal/domain/shared/valueobject"
)

// productCodePattern is the fixed pattern for product codes:
// two uppercase letters followed by six digits (e.g. "PD000042").
var productCodePattern = regexp.MustCompile(`^[A-Z]{2}[0-9]{6}$`)

// CodePrefix is the letter prefix used for generated product codes.
const CodePrefix = "PD"

// Product represents a product/SKU in the catalog.
// It is the aggregate root for product-related operations.
// All internal stock quantities for a product are kept in its BaseUnit.
type Product struct {
	shared.BaseAggregateRoot
	Code              string          `gorm:"type:varchar(8);not null;uniqueIndex:idx_product_code"`
	Name              string          `gorm:"type:varchar(200);not null"`
	Specification     string          `gorm:"type:varchar(500)"`
	BaseUnit          string          `gorm:"type:varchar(20);not null"`
	PurchasePrice     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // per base unit
	RetailPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // per base unit
	Supplier          string          `gorm:"type:varchar(200)"`
	MinStockThreshold decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0"`

	// Package units are loaded on demand, not as a gorm association,
	// so catalog writes never cascade into units accidentally.
	Units []PackageUnit `gorm:"-"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(code, name, baseUnit string) (*Product, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if err := ValidateProductCode(code); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validateUnitName(baseUnit); err != nil {
		return nil, err
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		BaseUnit:          baseUnit,
		PurchasePrice:     decimal.Zero,
		RetailPrice:       decimal.Zero,
		MinStockThreshold: decimal.Zero,
	}, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, specification, supplier string) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if len(specification) > 500 {
		return shared.NewDomainError("VALIDATION_ERROR", "Specification cannot exceed 500 characters")
	}

	p.Name = name
	p.Specification = specification
	p.Supplier = supplier
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetPrices sets the per-base-unit purchase and retail prices
func (p *Product) SetPrices(purchasePrice, retailPrice valueobject.Money) error {
	if purchasePrice.IsNegative() {
		return shared.NewDomainError("VALIDATION_ERROR", "Purchase price cannot be negative")
	}
	if retailPrice.IsNegative() {
		return shared.NewDomainError("VALIDATION_ERROR", "Retail price cannot be negative")
	}

	p.PurchasePrice = purchasePrice.Round().Amount()
	p.RetailPrice = retailPrice.Round().Amount()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetMinStockThreshold sets the low-stock alert threshold in base units
func (p *Product) SetMinStockThreshold(threshold decimal.Decimal) error {
	if threshold.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Minimum stock threshold cannot be negative")
	}

	p.MinStockThreshold = valueobject.RoundQuantity(threshold)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// IsLowStock reports whether the given balance should raise a low-stock alert.
// A threshold of zero means "alert only when the balance is exactly zero".
func (p *Product) IsLowStock(balance decimal.Decimal) bool {
	if p.MinStockThreshold.IsZero() {
		return balance.IsZero()
	}
	return balance.LessThanOrEqual(p.MinStockThreshold)
}

// FindUnit returns the package unit with the given name, or nil
func (p *Product) FindUnit(name string) *PackageUnit {
	for i := range p.Units {
		if p.Units[i].Name == name {
			return &p.Units[i]
		}
	}
	return nil
}

// ValidateProductCode validates the fixed product code pattern
func ValidateProductCode(code string) error {
	if code == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Product code cannot be empty")
	}
	if !productCodePattern.MatchString(code) {
		return shared.NewDomainError("VALIDATION_ERROR", "Product code must be 2 uppercase letters followed by 6 digits")
	}
	return nil
}

func validateProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("VALIDATION_ERROR", "Product name cannot exceed 200 characters")
	}
	return nil
}

func validateUnitName(unit string) error {
	if strings.TrimSpace(unit) == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Unit name cannot be empty")
	}
	if len(unit) > 20 {
		return shared.NewDomainError("VALIDATION_ERROR", "Unit name cannot exceed 20 characters")
	}
	return nil
}
