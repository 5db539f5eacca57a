package trade

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appcatalog "github.com/stocktrack/backend/internal/application/catalog"
	appinventory "github.com/stocktrack/backend/internal/application/inventory"
	"github.com/stocktrack/backend/internal/domain/inventory"
	"github.com/stocktrack/backend/internal/domain/shared"
	"github.com/stocktrack/backend/internal/domain/shared/valueobject"
	"github.com/stocktrack/backend/internal/domain/trade"
)

// SalesOrderService handles sales order operations
type SalesOrderService struct {
	txScope    appinventory.TransactionScope
	orderRepo  trade.SalesOrderRepository
	returnRepo trade.ReturnOrderRepository
	ledger     *appinventory.LedgerService
}

// NewSalesOrderService creates a new SalesOrderService
func NewSalesOrderService(
	txScope appinventory.TransactionScope,
	orderRepo trade.SalesOrderRepository,
	returnRepo trade.ReturnOrderRepository,
	ledger *appinventory.LedgerService,
) *SalesOrderService {
	return &SalesOrderService{
		txScope:    txScope,
		orderRepo:  orderRepo,
		returnRepo: returnRepo,
		ledger:     ledger,
	}
}

// Create creates a pending sales order. Creation does not reserve stock;
// availability is enforced at confirmation.
func (s *SalesOrderService) Create(ctx context.Context, req CreateSalesOrderRequest) (*SalesOrderResponse, error) {
	var order *trade.SalesOrder
	err := s.txScope.Execute(ctx, func(repos appinventory.TransactionalRepositories) error {
		number, err := repos.SalesOrderRepo().GenerateOrderNumber(ctx)
		if err != nil {
			return err
		}

		orderDate := time.Now()
		if req.OrderDate != nil {
			orderDate = *req.OrderDate
		}
		order, err = trade.NewSalesOrder(number, req.CustomerName, orderDate)
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

			price := resolved.RetailPrice
			if line.UnitPrice != nil {
				price = *line.UnitPrice
			}
			original := valueobject.ZeroMoney()
			if line.OriginalPrice != nil {
				original = valueobject.NewMoney(*line.OriginalPrice)
			}
			if _, err := order.AddItem(line.ProductID, product.Name, resolved.Unit, line.Quantity, resolved.ConversionRate, valueobject.NewMoney(price), original); err != nil {
				return err
			}
		}

		return repos.SalesOrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return ToSalesOrderResponse(order), nil
}

// Confirm confirms a pending sales order and ships the stock. Availability
// is checked for every line with row locks before any stock moves, so the
// order either ships completely or not at all.
func (s *SalesOrderService) Confirm(ctx context.Context, orderID uuid.UUID) (*SalesOrderResponse, error) {
	var order *trade.SalesOrder
	err := s.txScope.Execute(ctx, func(repos appinventory.TransactionalRepositories) error {
		var err error
		order, err = repos.SalesOrderRepo().FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("NOT_FOUND", "Sales order not found")
			}
			return err
		}

		if err := order.Confirm(); err != nil {
			return err
		}

		if err := s.checkAvailability(ctx, repos, order); err != nil {
			return err
		}

		// BaseQuantity was fixed when the line was added, so the shipped
		// movement matches the order even if the package unit changed since.
		refID := order.ID
		for _, item := range order.Items {
			_, err := s.ledger.ApplyAdjustment(ctx, repos, appinventory.AdjustmentRequest{
				ProductID:       item.ProductID,
				QuantityChange:  item.BaseQuantity.Neg(),
				TransactionType: inventory.TransactionTypeSale,
				ReferenceID:     &refID,
				Note:            fmt.Sprintf("Sales order %s", order.OrderNumber),
			})
			if err != nil {
				return err
			}
		}

		return repos.SalesOrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return ToSalesOrderResponse(order), nil
}

// checkAvailability verifies every line of the order against locked balance
// records, aggregating lines of the same product first. Base quantities come
// from the line snapshots, not the live catalog.
func (s *SalesOrderService) checkAvailability(ctx context.Context, repos appinventory.TransactionalRepositories, order *trade.SalesOrder) error {
	type requested struct {
		name     string
		quantity decimal.Decimal
	}
	byProduct := make(map[uuid.UUID]*requested, len(order.Items))
	productOrder := make([]uuid.UUID, 0, len(order.Items))

	for _, item := range order.Items {
		if r, ok := byProduct[item.ProductID]; ok {
			r.quantity = r.quantity.Add(item.BaseQuantity)
			continue
		}
		byProduct[item.ProductID] = &requested{name: item.ProductName, quantity: item.BaseQuantity}
		productOrder = append(productOrder, item.ProductID)
	}

	for _, productID := range productOrder {
		r := byProduct[productID]
		result, err := s.ledger.ApplyAvailabilityCheck(ctx, repos, appinventory.AvailabilityQuery{
			ProductID: productID,
			Quantity:  r.quantity,
		})
		if err != nil {
			return err
		}
		if !result.Available {
			return shared.NewDomainError("INSUFFICIENT_STOCK",
				fmt.Sprintf("Insufficient stock for %s: short %s base units", r.name, result.Shortage))
		}
	}
	return nil
}

// Get returns a sales order with its items and associated returns
func (s *SalesOrderService) Get(ctx context.Context, orderID uuid.UUID) (*SalesOrderResponse, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	resp := ToSalesOrderResponse(order)
	returns, err := s.returnRepo.FindByOriginalOrder(ctx, orderID, nil)
	if err != nil {
		return nil, err
	}
	for i := range returns {
		resp.Returns = append(resp.Returns, *ToReturnOrderResponse(&returns[i]))
	}
	return resp, nil
}

// List returns a paginated list of sales orders
func (s *SalesOrderService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[SalesOrderResponse], error) {
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]SalesOrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, *ToSalesOrderResponse(&orders[i]))
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// Delete deletes a pending sales order
func (s *SalesOrderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if !order.CanDelete() {
		return shared.NewDomainError("INVALID_STATE", "Confirmed orders cannot be deleted")
	}
	return s.orderRepo.Delete(ctx, order.ID)
}

func (s *SalesOrderService) findOrder(ctx context.Context, id uuid.UUID) (*trade.SalesOrder, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Sales order not found")
		}
		return nil, err
	}
	return order, nil
}
