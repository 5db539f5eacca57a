package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stocktrack/backend/internal/domain/catalog"
	"github.com/stocktrack/backend/internal/domain/shared"
)

// GormPackageUnitRepository implements catalog.PackageUnitRepository using GORM
type GormPackageUnitRepository struct {
	db *gorm.DB
}

// NewGormPackageUnitRepository creates a new package unit repository
func NewGormPackageUnitRepository(db *gorm.DB) *GormPackageUnitRepository {
	return &GormPackageUnitRepository{db: db}
}

// FindByID finds a package unit by its ID
func (r *GormPackageUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.PackageUnit, error) {
	var unit catalog.PackageUnit
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&unit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find package unit: %w", err)
	}
	return &unit, nil
}

// FindByProduct returns all package units of a product
func (r *GormPackageUnitRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.PackageUnit, error) {
	var units []catalog.PackageUnit
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("conversion_rate ASC").
		Find(&units).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list package units: %w", err)
	}
	return units, nil
}

// FindByProductAndName finds a package unit by product and unit name
func (r *GormPackageUnitRepository) FindByProductAndName(ctx context.Context, productID uuid.UUID, name string) (*catalog.PackageUnit, error) {
	var unit catalog.PackageUnit
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND name = ?", productID, name).
		First(&unit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find package unit by name: %w", err)
	}
	return &unit, nil
}

// ExistsByProductAndName checks whether a product already has a unit with the name
func (r *GormPackageUnitRepository) ExistsByProductAndName(ctx context.Context, productID uuid.UUID, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&catalog.PackageUnit{}).
		Where("product_id = ? AND name = ?", productID, name).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check package unit name: %w", err)
	}
	return count > 0, nil
}

// Save creates or updates a package unit
func (r *GormPackageUnitRepository) Save(ctx context.Context, unit *catalog.PackageUnit) error {
	if err := r.db.WithContext(ctx).Save(unit).Error; err != nil {
		return fmt.Errorf("failed to save package unit: %w", err)
	}
	return nil
}

// Delete removes a package unit by its ID
func (r *GormPackageUnitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&catalog.PackageUnit{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete package unit: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ catalog.PackageUnitRepository = (*GormPackageUnitRepository)(nil)
