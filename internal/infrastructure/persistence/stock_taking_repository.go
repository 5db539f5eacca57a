package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stocktrack/backend/internal/domain/inventory"
	"github.com/stocktrack/backend/internal/domain/shared"
)

// GormStockTakingRepository implements inventory.StockTakingRepository using GORM
type GormStockTakingRepository struct {
	db *gorm.DB
}

// NewGormStockTakingRepository creates a new stock taking repository
func NewGormStockTakingRepository(db *gorm.DB) *GormStockTakingRepository {
	return &GormStockTakingRepository{db: db}
}

// FindByID finds a stock taking with its items
func (r *GormStockTakingRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockTaking, error) {
	var taking inventory.StockTaking
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&taking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find stock taking: %w", err)
	}
	return &taking, nil
}

// FindAll returns stock takings matching the filter, without items
func (r *GormStockTakingRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockTaking, error) {
	var takings []inventory.StockTaking
	err := r.db.WithContext(ctx).
		Order("taking_date DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&takings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list stock takings: %w", err)
	}
	return takings, nil
}

// Count returns the number of stock takings
func (r *GormStockTakingRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&inventory.StockTaking{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count stock takings: %w", err)
	}
	return count, nil
}

// Save persists the stock taking and reconciles its items
func (r *GormStockTakingRepository) Save(ctx context.Context, taking *inventory.StockTaking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(taking).Error; err != nil {
			return fmt.Errorf("failed to save stock taking: %w", err)
		}

		if len(taking.Items) > 0 {
			itemIDs := make([]uuid.UUID, 0, len(taking.Items))
			for _, item := range taking.Items {
				itemIDs = append(itemIDs, item.ID)
			}
			if err := tx.Where("stock_taking_id = ? AND id NOT IN ?", taking.ID, itemIDs).
				Delete(&inventory.StockTakingItem{}).Error; err != nil {
				return fmt.Errorf("failed to remove stale stock taking items: %w", err)
			}
		} else {
			if err := tx.Where("stock_taking_id = ?", taking.ID).
				Delete(&inventory.StockTakingItem{}).Error; err != nil {
				return fmt.Errorf("failed to remove stock taking items: %w", err)
			}
		}

		for i := range taking.Items {
			taking.Items[i].StockTakingID = taking.ID
			if err := tx.Save(&taking.Items[i]).Error; err != nil {
				return fmt.Errorf("failed to save stock taking item: %w", err)
			}
		}
		return nil
	})
}

// SaveItem persists a single counted item
func (r *GormStockTakingRepository) SaveItem(ctx context.Context, item *inventory.StockTakingItem) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return fmt.Errorf("failed to save stock taking item: %w", err)
	}
	return nil
}

// Delete removes a stock taking and its items
func (r *GormStockTakingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("stock_taking_id = ?", id).
			Delete(&inventory.StockTakingItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete stock taking items: %w", err)
		}
		result := tx.Where("id = ?", id).Delete(&inventory.StockTaking{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete stock taking: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// GenerateTakingNumber returns the next taking number for the current year
func (r *GormStockTakingRepository) GenerateTakingNumber(ctx context.Context) (string, error) {
	prefix := fmt.Sprintf("ST-%d-", time.Now().Year())
	return nextDocumentNumber(ctx, r.db, "stock_takings", "taking_number", prefix)
}

var _ inventory.StockTakingRepository = (*GormStockTakingRepository)(nil)
