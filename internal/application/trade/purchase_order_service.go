package trade

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	appcatalog "github.com/stocktrack/backend/internal/application/catalog"
	appinventory "github.com/stocktrack/backend/internal/application/inventory"
	"github.com/stocktrack/backend/internal/domain/inventory"
	"github.com/stocktrack/backend/internal/domain/shared"
	"github.com/stocktrack/backend/internal/domain/shared/valueobject"
	"github.com/stocktrack/backend/internal/domain/trade"
)

// PurchaseOrderService handles purchase order operations
type PurchaseOrderService struct {
	txScope    appinventory.TransactionScope
	orderRepo  trade.PurchaseOrderRepository
	returnRepo trade.ReturnOrderRepository
	ledger     *appinventory.LedgerService
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(
	txScope appinventory.TransactionScope,
	orderRepo trade.PurchaseOrderRepository,
	returnRepo trade.ReturnOrderRepository,
	ledger *appinventory.LedgerService,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		txScope:    txScope,
		orderRepo:  orderRepo,
		returnRepo: returnRepo,
		ledger:     ledger,
	}
}

// Create creates a pending purchase order. Every line is validated against
// the catalog; no stock moves until the order is confirmed.
func (s *PurchaseOrderService) Create(ctx context.Context, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	var order *trade.PurchaseOrder
	err := s.txScope.Execute(ctx, func(repos appinventory.TransactionalRepositories) error {
		number, err := repos.PurchaseOrderRepo().GenerateOrderNumber(ctx)
		if err != nil {
			return err
		}

		orderDate := time.Now()
		if req.OrderDate != nil {
			orderDate = *req.OrderDate
		}
		order, err = trade.NewPurchaseOrder(number, req.Supplier, orderDate)
		if err != nil {
			return err
		}

		resolver := appcatalog.NewUnitResolver(repos.ProductRepo(), repos.PackageUnitRepo())
		for _, line := range req.Items {
			product, err := repos.ProductRepo().FindByID(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return shared.ErrProductNotFound
				}
				return err
			}
			resolved, err := resolver.ResolveForProduct(ctx, product, line.Unit)
			if err != nil {
				return err
			}

			price := resolved.PurchasePrice
			if line.UnitPrice != nil {
				price = *line.UnitPrice
			}
			if _, err := order.AddItem(line.ProductID, product.Name, resolved.Unit, line.Quantity, resolved.ConversionRate, valueobject.NewMoney(price)); err != nil {
				return err
			}
		}

		return repos.PurchaseOrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return ToPurchaseOrderResponse(order), nil
}

// Confirm confirms a pending purchase order and books the received stock.
// The status change and all ledger entries commit in one transaction.
func (s *PurchaseOrderService) Confirm(ctx context.Context, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	var order *trade.PurchaseOrder
	err := s.txScope.Execute(ctx, func(repos appinventory.TransactionalRepositories) error {
		var err error
		order, err = repos.PurchaseOrderRepo().FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("NOT_FOUND", "Purchase order not found")
			}
			return err
		}

		if err := order.Confirm(); err != nil {
			return err
		}

		// BaseQuantity was fixed when the line was added, so the booked
		// movement matches the order even if the package unit changed since.
		refID := order.ID
		for _, item := range order.Items {
			_, err := s.ledger.ApplyAdjustment(ctx, repos, appinventory.AdjustmentRequest{
				ProductID:       item.ProductID,
				QuantityChange:  item.BaseQuantity,
				TransactionType: inventory.TransactionTypePurchase,
				ReferenceID:     &refID,
				Note:            fmt.Sprintf("Purchase order %s", order.OrderNumber),
			})
			if err != nil {
				return err
			}
		}

		return repos.PurchaseOrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return ToPurchaseOrderResponse(order), nil
}

// Get returns a purchase order with its items and associated returns
func (s *PurchaseOrderService) Get(ctx context.Context, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	resp := ToPurchaseOrderResponse(order)
	returns, err := s.returnRepo.FindByOriginalOrder(ctx, orderID, nil)
	if err != nil {
		return nil, err
	}
	for i := range returns {
		resp.Returns = append(resp.Returns, *ToReturnOrderResponse(&returns[i]))
	}
	return resp, nil
}

// List returns a paginated list of purchase orders
func (s *PurchaseOrderService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[PurchaseOrderResponse], error) {
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]PurchaseOrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, *ToPurchaseOrderResponse(&orders[i]))
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// Delete deletes a pending purchase order
func (s *PurchaseOrderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if !order.CanDelete() {
		return shared.NewDomainError("INVALID_STATE", "Confirmed orders cannot be deleted")
	}
	return s.orderRepo.Delete(ctx, order.ID)
}

func (s *PurchaseOrderService) findOrder(ctx context.Context, id uuid.UUID) (*trade.PurchaseOrder, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Purchase order not found")
		}
		return nil, err
	}
	return order, nil
}
