package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stocktrack/backend/internal/domain/inventory"
)

// GormInventoryTransactionRepository implements the append-only movement log
type GormInventoryTransactionRepository struct {
	db *gorm.DB
}

// NewGormInventoryTransactionRepository creates a new inventory transaction repository
func NewGormInventoryTransactionRepository(db *gorm.DB) *GormInventoryTransactionRepository {
	return &GormInventoryTransactionRepository{db: db}
}

// Append inserts a movement. Movements are never updated or deleted.
func (r *GormInventoryTransactionRepository) Append(ctx context.Context, tx *inventory.InventoryTransaction) error {
	if err := r.db.WithContext(ctx).Create(tx).Error; err != nil {
		return fmt.Errorf("failed to append inventory transaction: %w", err)
	}
	return nil
}

// FindByFilter returns movements matching the filter, newest first, plus the
// total count before pagination
func (r *GormInventoryTransactionRepository) FindByFilter(ctx context.Context, filter inventory.TransactionFilter) ([]inventory.InventoryTransaction, int64, error) {
	query := r.db.WithContext(ctx).Model(&inventory.InventoryTransaction{})

	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if len(filter.Types) > 0 {
		query = query.Where("transaction_type IN ?", filter.Types)
	}
	if filter.From != nil {
		query = query.Where("transaction_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("transaction_date <= ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count inventory transactions: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size < 1 {
		size = 20
	}

	var transactions []inventory.InventoryTransaction
	err := query.
		Order("transaction_date DESC, created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&transactions).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list inventory transactions: %w", err)
	}
	return transactions, total, nil
}

// SumQuantityByProduct sums all signed quantity changes for a product
func (r *GormInventoryTransactionRepository) SumQuantityByProduct(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&inventory.InventoryTransaction{}).
		Where("product_id = ?", productID).
		Select("COALESCE(SUM(quantity_change), 0)").
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum inventory transactions: %w", err)
	}
	return sum, nil
}

var _ inventory.InventoryTransactionRepository = (*GormInventoryTransactionRepository)(nil)
