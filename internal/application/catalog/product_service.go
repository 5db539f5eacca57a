package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/stocktrack/backend/internal/domain/catalog"
	"github.com/stocktrack/backend/internal/domain/inventory"
	"github.com/stocktrack/backend/internal/domain/shared"
	"github.com/stocktrack/backend/internal/domain/shared/valueobject"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo catalog.ProductRepository
	unitRepo    catalog.PackageUnitRepository
	recordRepo  inventory.InventoryRecordRepository
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	unitRepo catalog.PackageUnitRepository,
	recordRepo inventory.InventoryRecordRepository,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		unitRepo:    unitRepo,
		recordRepo:  recordRepo,
	}
}

// Create creates a new product. An empty code gets a generated sequential
// code. A zero-balance inventory record is created alongside the product.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	code := req.Code
	if code == "" {
		generated, err := s.productRepo.GenerateCode(ctx)
		if err != nil {
			return nil, err
		}
		code = generated
	} else {
		exists, err := s.productRepo.ExistsByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this code already exists")
		}
	}

	product, err := catalog.NewProduct(code, req.Name, req.BaseUnit)
	if err != nil {
		return nil, err
	}

	if req.Specification != "" || req.Supplier != "" {
		if err := product.Update(req.Name, req.Specification, req.Supplier); err != nil {
			return nil, err
		}
	}

	if req.PurchasePrice != nil || req.RetailPrice != nil {
		purchase := valueobject.ZeroMoney()
		retail := valueobject.ZeroMoney()
		if req.PurchasePrice != nil {
			purchase = valueobject.NewMoney(*req.PurchasePrice)
		}
		if req.RetailPrice != nil {
			retail = valueobject.NewMoney(*req.RetailPrice)
		}
		if err := product.SetPrices(purchase, retail); err != nil {
			return nil, err
		}
	}

	if req.MinStockThreshold != nil {
		if err := product.SetMinStockThreshold(*req.MinStockThreshold); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	// Seed the balance record at zero. The ledger also creates records
	// lazily, so a failure here is recoverable on first movement.
	record, err := inventory.NewInventoryRecord(product.ID)
	if err != nil {
		return nil, err
	}
	if err := s.recordRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	return ToProductResponse(product), nil
}

// Update updates an existing product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	name := product.Name
	specification := product.Specification
	supplier := product.Supplier
	if req.Name != nil {
		name = *req.Name
	}
	if req.Specification != nil {
		specification = *req.Specification
	}
	if req.Supplier != nil {
		supplier = *req.Supplier
	}
	if err := product.Update(name, specification, supplier); err != nil {
		return nil, err
	}

	if req.PurchasePrice != nil || req.RetailPrice != nil {
		purchase := valueobject.NewMoney(product.PurchasePrice)
		retail := valueobject.NewMoney(product.RetailPrice)
		if req.PurchasePrice != nil {
			purchase = valueobject.NewMoney(*req.PurchasePrice)
		}
		if req.RetailPrice != nil {
			retail = valueobject.NewMoney(*req.RetailPrice)
		}
		if err := product.SetPrices(purchase, retail); err != nil {
			return nil, err
		}
	}

	if req.MinStockThreshold != nil {
		if err := product.SetMinStockThreshold(*req.MinStockThreshold); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	return ToProductResponse(product), nil
}

// Get returns a product with its package units
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	units, err := s.unitRepo.FindByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Units = units

	return ToProductResponse(product), nil
}

// GetByCode returns a product looked up by its code
func (s *ProductService) GetByCode(ctx context.Context, code string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrProductNotFound
		}
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List returns a paginated list of products
func (s *ProductService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ProductResponse], error) {
	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, *ToProductResponse(&products[i]))
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// Delete deletes a product. Products with remaining stock cannot be deleted.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return err
	}

	record, err := s.recordRepo.FindByProduct(ctx, id)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	if record != nil && !record.Quantity.IsZero() {
		return shared.NewDomainError("INVALID_STATE", "Cannot delete a product with remaining stock")
	}

	return s.productRepo.Delete(ctx, product.ID)
}

// ResolveUnit resolves a unit name for a product
func (s *ProductService) ResolveUnit(ctx context.Context, id uuid.UUID, unit string) (*ResolvedUnitResponse, error) {
	resolver := NewUnitResolver(s.productRepo, s.unitRepo)
	resolved, err := resolver.Resolve(ctx, id, unit)
	if err != nil {
		return nil, err
	}
	return &ResolvedUnitResponse{
		ProductID:      resolved.ProductID,
		Unit:           resolved.Unit,
		ConversionRate: resolved.ConversionRate,
		PurchasePrice:  resolved.PurchasePrice,
		RetailPrice:    resolved.RetailPrice,
	}, nil
}

func (s *ProductService) findProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}
