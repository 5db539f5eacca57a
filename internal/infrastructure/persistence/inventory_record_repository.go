package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stocktrack/backend/internal/domain/inventory"
	"github.com/stocktrack/backend/internal/domain/shared"
)

// GormInventoryRecordRepository implements inventory.InventoryRecordRepository using GORM
type GormInventoryRecordRepository struct {
	db *gorm.DB
}

// NewGormInventoryRecordRepository creates a new inventory record repository
func NewGormInventoryRecordRepository(db *gorm.DB) *GormInventoryRecordRepository {
	return &GormInventoryRecordRepository{db: db}
}

// FindByProduct finds the balance record for a product
func (r *GormInventoryRecordRepository) FindByProduct(ctx context.Context, productID uuid.UUID) (*inventory.InventoryRecord, error) {
	var record inventory.InventoryRecord
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find inventory record: %w", err)
	}
	return &record, nil
}

// FindByProductForUpdate finds the balance record with SELECT FOR UPDATE
func (r *GormInventoryRecordRepository) FindByProductForUpdate(ctx context.Context, productID uuid.UUID) (*inventory.InventoryRecord, error) {
	var record inventory.InventoryRecord
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ?", productID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock inventory record: %w", err)
	}
	return &record, nil
}

// FindAll returns balance records matching the filter
func (r *GormInventoryRecordRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.InventoryRecord, error) {
	var records []inventory.InventoryRecord
	err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory records: %w", err)
	}
	return records, nil
}

// Count returns the number of balance records
func (r *GormInventoryRecordRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&inventory.InventoryRecord{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count inventory records: %w", err)
	}
	return count, nil
}

// Create inserts a new balance record
func (r *GormInventoryRecordRepository) Create(ctx context.Context, record *inventory.InventoryRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create inventory record: %w", err)
	}
	return nil
}

// SaveWithVersion persists the record with an optimistic lock on the version
// column. The record's version was already incremented by the domain, so the
// stored row must still carry the previous version.
func (r *GormInventoryRecordRepository) SaveWithVersion(ctx context.Context, record *inventory.InventoryRecord) error {
	result := r.db.WithContext(ctx).
		Model(&inventory.InventoryRecord{}).
		Where("id = ? AND version = ?", record.ID, record.Version-1).
		Updates(map[string]interface{}{
			"quantity":   record.Quantity,
			"version":    record.Version,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to save inventory record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// FindLowStock returns records at or below their product's minimum stock
// threshold. Zero-threshold products only show up once fully depleted.
func (r *GormInventoryRecordRepository) FindLowStock(ctx context.Context) ([]inventory.LowStockRow, error) {
	var rows []inventory.LowStockRow
	err := r.db.WithContext(ctx).
		Table("inventory_records").
		Select("products.id AS product_id, products.code AS product_code, products.name AS product_name, "+
			"products.base_unit AS base_unit, products.min_stock_threshold AS min_stock_threshold, "+
			"inventory_records.quantity AS quantity").
		Joins("JOIN products ON products.id = inventory_records.product_id").
		Where("(products.min_stock_threshold > 0 AND inventory_records.quantity <= products.min_stock_threshold) "+
			"OR (products.min_stock_threshold = 0 AND inventory_records.quantity = 0)").
		Order("products.code ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query low stock records: %w", err)
	}
	return rows, nil
}

var _ inventory.InventoryRecordRepository = (*GormInventoryRecordRepository)(nil)
