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

// GormSalesOrderRepository implements trade.SalesOrderRepository using GORM
type GormSalesOrderRepository struct {
	db *gorm.DB
}

// NewGormSalesOrderRepository creates a new sales order repository
func NewGormSalesOrderRepository(db *gorm.DB) *GormSalesOrderRepository {
	return &GormSalesOrderRepository{db: db}
}

// FindByID finds a sales order with its items
func (r *GormSalesOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SalesOrder, error) {
	var order trade.SalesOrder
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find sales order: %w", err)
	}
	return &order, nil
}

// FindAll returns sales orders matching the filter, without items
func (r *GormSalesOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.SalesOrder, error) {
	var orders []trade.SalesOrder
	query := r.db.WithContext(ctx).Model(&trade.SalesOrder{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("order_number ILIKE ? OR customer_name ILIKE ?", pattern, pattern)
	}
	err := query.
		Order("order_date DESC, order_number DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sales orders: %w", err)
	}
	return orders, nil
}

// Count returns the number of sales orders matching the filter
func (r *GormSalesOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&trade.SalesOrder{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("order_number ILIKE ? OR customer_name ILIKE ?", pattern, pattern)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count sales orders: %w", err)
	}
	return count, nil
}

// Save persists the sales order and reconciles its items
func (r *GormSalesOrderRepository) Save(ctx context.Context, order *trade.SalesOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(order).Error; err != nil {
			return fmt.Errorf("failed to save sales order: %w", err)
		}

		if len(order.Items) > 0 {
			itemIDs := make([]uuid.UUID, 0, len(order.Items))
			for _, item := range order.Items {
				itemIDs = append(itemIDs, item.ID)
			}
			if err := tx.Where("order_id = ? AND id NOT IN ?", order.ID, itemIDs).
				Delete(&trade.SalesOrderItem{}).Error; err != nil {
				return fmt.Errorf("failed to remove stale sales order items: %w", err)
			}
		} else {
			if err := tx.Where("order_id = ?", order.ID).
				Delete(&trade.SalesOrderItem{}).Error; err != nil {
				return fmt.Errorf("failed to remove sales order items: %w", err)
			}
		}

		for i := range order.Items {
			order.Items[i].OrderID = order.ID
			if err := tx.Save(&order.Items[i]).Error; err != nil {
				return fmt.Errorf("failed to save sales order item: %w", err)
			}
		}
		return nil
	})
}

// Delete removes a sales order and its items
func (r *GormSalesOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).
			Delete(&trade.SalesOrderItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete sales order items: %w", err)
		}
		result := tx.Where("id = ?", id).Delete(&trade.SalesOrder{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete sales order: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// GenerateOrderNumber returns the next order number for the current year
func (r *GormSalesOrderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	prefix := fmt.Sprintf("SO-%d-", time.Now().Year())
	return nextDocumentNumber(ctx, r.db, "sales_orders", "order_number", prefix)
}

var _ trade.SalesOrderRepository = (*GormSalesOrderRepository)(nil)
