package trade

import (
	"context"

	"github.com/google/uuid"

	"github.com/stocktrack/backend/internal/domain/shared"
)

// PurchaseOrderRepository defines persistence operations for purchase orders
type PurchaseOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]PurchaseOrder, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, order *PurchaseOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
	GenerateOrderNumber(ctx context.Context) (string, error)
}

// SalesOrderRepository defines persistence operations for sales orders
type SalesOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SalesOrder, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]SalesOrder, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, order *SalesOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
	GenerateOrderNumber(ctx context.Context) (string, error)
}

// ReturnOrderRepository defines persistence operations for return orders
type ReturnOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReturnOrder, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]ReturnOrder, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// FindByOriginalOrder returns all returns (with items) that reference the
	// given original order, optionally narrowed to one status. The return-cap
	// check must call this inside the same store transaction that inserts the
	// new return.
	FindByOriginalOrder(ctx context.Context, originalOrderID uuid.UUID, status *OrderStatus) ([]ReturnOrder, error)

	Save(ctx context.Context, order *ReturnOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
	GenerateOrderNumber(ctx context.Context) (string, error)
}
