package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stocktrack/backend/internal/domain/shared"
	"github.com/stocktrack/backend/internal/domain/trade"
)

// GormReturnOrderRepository implements trade.ReturnOrderRepository using GORM
type GormReturnOrderRepository struct {
	db *gorm.DB
}

// NewGormReturnOrderRepository creates a new return order repository
func NewGormReturnOrderRepository(db *gorm.DB) *GormReturnOrderRepository {
	return &GormReturnOrderRepository{db: db}
}

// FindByID finds a return order with its items
func (r *GormReturnOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.ReturnOrder, error) {
	var order trade.ReturnOrder
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find return order: %w", err)
	}
	return &order, nil
}

// FindAll returns return orders matching the filter, without items
func (r *GormReturnOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.ReturnOrder, error) {
	var orders []trade.ReturnOrder
	query := r.db.WithContext(ctx).Model(&trade.ReturnOrder{})
	if filter.Search != "" {
		query = query.Where("order_number ILIKE ?", "%"+filter.Search+"%")
	}
	err := query.
		Order("return_date DESC, order_number DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list return orders: %w", err)
	}
	return orders, nil
}

// Count returns the number of return orders matching the filter
func (r *GormReturnOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&trade.ReturnOrder{})
	if filter.Search != "" {
		query = query.Where("order_number ILIKE ?", "%"+filter.Search+"%")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count return orders: %w", err)
	}
	return count, nil
}

// FindByOriginalOrder returns all returns referencing the original order,
// items included, optionally narrowed to one status
func (r *GormReturnOrderRepository) FindByOriginalOrder(ctx context.Context, originalOrderID uuid.UUID, status *trade.OrderStatus) ([]trade.ReturnOrder, error) {
	query := r.db.WithContext(ctx).
		Preload("Items").
		Where("original_order_id = ?", originalOrderID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var orders []trade.ReturnOrder
	if err := query.Order("created_at ASC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list returns for original order: %w", err)
	}
	return orders, nil
}

// Save persists the return order and reconciles its items
func (r *GormReturnOrderRepository) Save(ctx context.Context, order *trade.ReturnOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(order).Error; err != nil {
			return fmt.Errorf("failed to save return order: %w", err)
		}

		if len(order.Items) > 0 {
			itemIDs := make([]uuid.UUID, 0, len(order.Items))
			for _, item := range order.Items {
				itemIDs = append(itemIDs, item.ID)
			}
			if err := tx.Where("return_order_id = ? AND id NOT IN ?", order.ID, itemIDs).
				Delete(&trade.ReturnOrderItem{}).Error; err != nil {
				return fmt.Errorf("failed to remove stale return order items: %w", err)
			}
		} else {
			if err := tx.Where("return_order_id = ?", order.ID).
				Delete(&trade.ReturnOrderItem{}).Error; err != nil {
				return fmt.Errorf("failed to remove return order items: %w", err)
			}
		}

		for i := range order.Items {
			order.Items[i].ReturnOrderID = order.ID
			if err := tx.Save(&order.Items[i]).Error; err != nil {
				return fmt.Errorf("failed to save return order item: %w", err)
			}
		}
		return nil
	})
}

// Delete removes a return order and its items
func (r *GormReturnOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("return_order_id = ?", id).
			Delete(&trade.ReturnOrderItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete return order items: %w", err)
		}
		result := tx.Where("id = ?", id).Delete(&trade.ReturnOrder{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete return order: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// GenerateOrderNumber returns the next order number for the current year
func (r *GormReturnOrderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	prefix := fmt.Sprintf("RO-%d-", time.Now().Year())
	return nextDocumentNumber(ctx, r.db, "return_orders", "order_number", prefix)
}

var _ trade.ReturnOrderRepository = (*GormReturnOrderRepository)(nil)
