package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/stocktrack/backend/internal/domain/shared"
)

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByCode(ctx context.Context, code string) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// ListAll returns every product without pagination. Stock taking uses it
	// to snapshot the whole catalog.
	ListAll(ctx context.Context) ([]Product, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error

	// GenerateCode returns the next free product code in the fixed
	// two-letter six-digit pattern.
	GenerateCode(ctx context.Context) (string, error)
}

// PackageUnitRepository defines persistence operations for package units
type PackageUnitRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PackageUnit, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]PackageUnit, error)
	FindByProductAndName(ctx context.Context, productID uuid.UUID, name string) (*PackageUnit, error)
	ExistsByProductAndName(ctx context.Context, productID uuid.UUID, name string) (bool, error)
	Save(ctx context.Context, unit *PackageUnit) error
	Delete(ctx context.Context, id uuid.UUID) error
}
