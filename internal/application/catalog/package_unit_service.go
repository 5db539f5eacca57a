package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/stocktrack/backend/internal/domain/catalog"
	"github.com/stocktrack/backend/internal/domain/shared"
)

// PackageUnitService handles package unit operations
type PackageUnitService struct {
	productRepo catalog.ProductRepository
	unitRepo    catalog.PackageUnitRepository
}

// NewPackageUnitService creates a new PackageUnitService
func NewPackageUnitService(
	productRepo catalog.ProductRepository,
	unitRepo catalog.PackageUnitRepository,
) *PackageUnitService {
	return &PackageUnitService{
		productRepo: productRepo,
		unitRepo:    unitRepo,
	}
}

// Create adds a package unit to a product
func (s *PackageUnitService) Create(ctx context.Context, productID uuid.UUID, req CreatePackageUnitRequest) (*PackageUnitResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrProductNotFound
		}
		return nil, err
	}

	// The base unit name is reserved for the product itself
	if req.Name == product.BaseUnit {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Unit name cannot be the same as the base unit")
	}

	exists, err := s.unitRepo.ExistsByProductAndName(ctx, productID, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Unit name already exists for this product")
	}

	unit, err := catalog.NewPackageUnit(productID, req.Name, req.ConversionRate)
	if err != nil {
		return nil, err
	}
	if err := unit.SetPrices(req.PurchasePrice, req.RetailPrice); err != nil {
		return nil, err
	}

	if err := s.unitRepo.Save(ctx, unit); err != nil {
		return nil, err
	}
	return ToPackageUnitResponse(unit), nil
}

// Update updates a package unit
func (s *PackageUnitService) Update(ctx context.Context, id uuid.UUID, req UpdatePackageUnitRequest) (*PackageUnitResponse, error) {
	unit, err := s.findUnit(ctx, id)
	if err != nil {
		return nil, err
	}

	name := unit.Name
	rate := unit.ConversionRate
	if req.Name != nil {
		name = *req.Name
	}
	if req.ConversionRate != nil {
		rate = *req.ConversionRate
	}

	if name != unit.Name {
		product, err := s.productRepo.FindByID(ctx, unit.ProductID)
		if err != nil {
			return nil, err
		}
		if name == product.BaseUnit {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Unit name cannot be the same as the base unit")
		}
		exists, err := s.unitRepo.ExistsByProductAndName(ctx, unit.ProductID, name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Unit name already exists for this product")
		}
	}

	if err := unit.Update(name, rate); err != nil {
		return nil, err
	}
	if req.PurchasePrice != nil || req.RetailPrice != nil {
		purchase := unit.PurchasePrice
		retail := unit.RetailPrice
		if req.PurchasePrice != nil {
			purchase = req.PurchasePrice
		}
		if req.RetailPrice != nil {
			retail = req.RetailPrice
		}
		if err := unit.SetPrices(purchase, retail); err != nil {
			return nil, err
		}
	}

	if err := s.unitRepo.Save(ctx, unit); err != nil {
		return nil, err
	}
	return ToPackageUnitResponse(unit), nil
}

// List returns all package units of a product
func (s *PackageUnitService) List(ctx context.Context, productID uuid.UUID) ([]PackageUnitResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrProductNotFound
		}
		return nil, err
	}

	units, err := s.unitRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	items := make([]PackageUnitResponse, 0, len(units))
	for i := range units {
		items = append(items, *ToPackageUnitResponse(&units[i]))
	}
	return items, nil
}

// Delete deletes a package unit
func (s *PackageUnitService) Delete(ctx context.Context, id uuid.UUID) error {
	unit, err := s.findUnit(ctx, id)
	if err != nil {
		return err
	}
	return s.unitRepo.Delete(ctx, unit.ID)
}

func (s *PackageUnitService) findUnit(ctx context.Context, id uuid.UUID) (*catalog.PackageUnit, error) {
	unit, err := s.unitRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUnitNotFound
		}
		return nil, err
	}
	return unit, nil
}
