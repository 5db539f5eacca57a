package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stocktrack/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product.
// When Code is empty a sequential code is generated.
type CreateProductRequest struct {
	Code              string           `json:"code" binding:"omitempty,len=8"`
	Name              string           `json:"name" binding:"required,min=1,max=200"`
	Specification     string           `json:"specification" binding:"max=500"`
	BaseUnit          string           `json:"base_unit" binding:"required,min=1,max=20"`
	Supplier          string           `json:"supplier" binding:"max=200"`
	PurchasePrice     *decimal.Decimal `json:"purchase_price"`
	RetailPrice       *decimal.Decimal `json:"retail_price"`
	MinStockThreshold *decimal.Decimal `json:"min_stock_threshold"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name              *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Specification     *string          `json:"specification" binding:"omitempty,max=500"`
	Supplier          *string          `json:"supplier" binding:"omitempty,max=200"`
	PurchasePrice     *decimal.Decimal `json:"purchase_price"`
	RetailPrice       *decimal.Decimal `json:"retail_price"`
	MinStockThreshold *decimal.Decimal `json:"min_stock_threshold"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID                uuid.UUID             `json:"id"`
	Code              string                `json:"code"`
	Name              string                `json:"name"`
	Specification     string                `json:"specification"`
	BaseUnit          string                `json:"base_unit"`
	PurchasePrice     decimal.Decimal       `json:"purchase_price"`
	RetailPrice       decimal.Decimal       `json:"retail_price"`
	Supplier          string                `json:"supplier"`
	MinStockThreshold decimal.Decimal       `json:"min_stock_threshold"`
	Units             []PackageUnitResponse `json:"units,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
	Version           int                   `json:"version"`
}

// CreatePackageUnitRequest represents a request to add a package unit to a product
type CreatePackageUnitRequest struct {
	Name           string           `json:"name" binding:"required,min=1,max=20"`
	ConversionRate decimal.Decimal  `json:"conversion_rate" binding:"required"`
	PurchasePrice  *decimal.Decimal `json:"purchase_price"`
	RetailPrice    *decimal.Decimal `json:"retail_price"`
}

// UpdatePackageUnitRequest represents a request to update a package unit
type UpdatePackageUnitRequest struct {
	Name           *string          `json:"name" binding:"omitempty,min=1,max=20"`
	ConversionRate *decimal.Decimal `json:"conversion_rate"`
	PurchasePrice  *decimal.Decimal `json:"purchase_price"`
	RetailPrice    *decimal.Decimal `json:"retail_price"`
}

// PackageUnitResponse represents a package unit in API responses
type PackageUnitResponse struct {
	ID             uuid.UUID        `json:"id"`
	ProductID      uuid.UUID        `json:"product_id"`
	Name           string           `json:"name"`
	ConversionRate decimal.Decimal  `json:"conversion_rate"`
	PurchasePrice  *decimal.Decimal `json:"purchase_price,omitempty"`
	RetailPrice    *decimal.Decimal `json:"retail_price,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ResolvedUnitResponse is the result of resolving a unit name for a product
type ResolvedUnitResponse struct {
	ProductID      uuid.UUID       `json:"product_id"`
	Unit           string          `json:"unit"`
	ConversionRate decimal.Decimal `json:"conversion_rate"`
	PurchasePrice  decimal.Decimal `json:"purchase_price"`
	RetailPrice    decimal.Decimal `json:"retail_price"`
}

// ToProductResponse converts a domain product to a response DTO
func ToProductResponse(p *catalog.Product) *ProductResponse {
	resp := &ProductResponse{
		ID:                p.ID,
		Code:              p.Code,
		Name:              p.Name,
		Specification:     p.Specification,
		BaseUnit:          p.BaseUnit,
		PurchasePrice:     p.PurchasePrice,
		RetailPrice:       p.RetailPrice,
		Supplier:          p.Supplier,
		MinStockThreshold: p.MinStockThreshold,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
		Version:           p.Version,
	}
	for i := range p.Units {
		resp.Units = append(resp.Units, *ToPackageUnitResponse(&p.Units[i]))
	}
	return resp
}

// ToPackageUnitResponse converts a domain package unit to a response DTO
func ToPackageUnitResponse(u *catalog.PackageUnit) *PackageUnitResponse {
	return &PackageUnitResponse{
		ID:             u.ID,
		ProductID:      u.ProductID,
		Name:           u.Name,
		ConversionRate: u.ConversionRate,
		PurchasePrice:  u.PurchasePrice,
		RetailPrice:    u.RetailPrice,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
