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

// ReturnOrderService handles return order operations. The return cap (per
// product, Σ confirmed returns never exceeds the originally ordered
// quantity) is compared in base units, so returns in a different package
// unit than the original order count correctly.
type ReturnOrderService struct {
	txScope      appinventory.TransactionScope
	returnRepo   trade.ReturnOrderRepository
	purchaseRepo trade.PurchaseOrderRepository
	salesRepo    trade.SalesOrderRepository
	ledger       *appinventory.LedgerService
}

// NewReturnOrderService creates a new ReturnOrderService
func NewReturnOrderService(
	txScope appinventory.TransactionScope,
	returnRepo trade.ReturnOrderRepository,
	purchaseRepo trade.PurchaseOrderRepository,
	salesRepo trade.SalesOrderRepository,
	ledger *appinventory.LedgerService,
) *ReturnOrderService {
	return &ReturnOrderService{
		txScope:      txScope,
		returnRepo:   returnRepo,
		purchaseRepo: purchaseRepo,
		salesRepo:    salesRepo,
		ledger:       ledger,
	}
}

// originalLine is the per-product view of an original order used for cap
// checks and price derivation. Quantities are base units; perBasePrice is
// the original line price scaled down to one base unit.
type originalLine struct {
	productName  string
	baseQuantity decimal.Decimal
	perBasePrice decimal.Decimal
}

// Create creates a pending return order against a confirmed original order.
// The cap check runs in the same transaction that stores the return, so two
// concurrent returns cannot both slip under the cap.
func (s *ReturnOrderService) Create(ctx context.Context, req CreateReturnOrderRequest) (*ReturnOrderResponse, error) {
	if !req.OrderType.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid return order type")
	}

	var order *trade.ReturnOrder
	err := s.txScope.Execute(ctx, func(repos appinventory.TransactionalRepositories) error {
		original, err := s.loadOriginal(ctx, repos, req.OrderType, req.OriginalOrderID)
		if err != nil {
			return err
		}
		returned, err := s.confirmedReturnsByProduct(ctx, repos, req.OriginalOrderID, uuid.Nil)
		if err != nil {
			return err
		}

		number, err := repos.ReturnOrderRepo().GenerateOrderNumber(ctx)
		if err != nil {
			return err
		}
		returnDate := time.Now()
		if req.ReturnDate != nil {
			returnDate = *req.ReturnDate
		}
		order, err = trade.NewReturnOrder(number, req.OriginalOrderID, req.OrderType, returnDate)
		if err != nil {
			return err
		}

		resolver := appcatalog.NewUnitResolver(repos.ProductRepo(), repos.PackageUnitRepo())
		for _, line := range req.Items {
			info, ok := original[line.ProductID]
			if !ok {
				return shared.NewDomainError("VALIDATION_ERROR", "Product is not part of the original order")
			}

			// The requested unit resolves against the catalog as of now;
			// the resulting rate is then frozen on the return line.
			resolved, err := resolver.Resolve(ctx, line.ProductID, line.Unit)
			if err != nil {
				return err
			}
			baseQty := resolved.ToBase(line.Quantity)
			if !baseQty.IsPositive() {
				return shared.NewDomainError("INVALID_QUANTITY", "Return quantity must be positive")
			}

			already := returned[line.ProductID]
			if already.Add(baseQty).GreaterThan(info.baseQuantity) {
				return shared.NewDomainError("CAP_EXCEEDED",
					fmt.Sprintf("Return of %s exceeds remaining returnable quantity for %s", line.Quantity, info.productName))
			}
			returned[line.ProductID] = already.Add(baseQty)

			price := valueobject.NewMoney(info.perBasePrice.Mul(resolved.ConversionRate)).Round()
			if _, err := order.AddItem(line.ProductID, info.productName, resolved.Unit, line.Quantity, resolved.ConversionRate, price); err != nil {
				return err
			}
		}

		return repos.ReturnOrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return ToReturnOrderResponse(order), nil
}

// Confirm confirms a pending return and applies the inverse stock movement:
// purchase returns ship stock back out, sales returns take it back in. The
// cap is re-validated because other returns may have confirmed since this
// one was created.
func (s *ReturnOrderService) Confirm(ctx context.Context, orderID uuid.UUID) (*ReturnOrderResponse, error) {
	var order *trade.ReturnOrder
	err := s.txScope.Execute(ctx, func(repos appinventory.TransactionalRepositories) error {
		var err error
		order, err = repos.ReturnOrderRepo().FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("NOT_FOUND", "Return order not found")
			}
			return err
		}

		if err := order.Confirm(); err != nil {
			return err
		}

		// Cap re-validation and the stock movement both read the base-unit
		// snapshots taken when the documents were created, never the live
		// catalog: a package unit edited, renamed or removed since then
		// cannot change what a confirmed order shipped or received.
		original, err := s.loadOriginal(ctx, repos, order.OrderType, order.OriginalOrderID)
		if err != nil {
			return err
		}
		returned, err := s.confirmedReturnsByProduct(ctx, repos, order.OriginalOrderID, order.ID)
		if err != nil {
			return err
		}
		for _, item := range order.Items {
			info := original[item.ProductID]
			if info == nil || returned[item.ProductID].Add(item.BaseQuantity).GreaterThan(info.baseQuantity) {
				return shared.NewDomainError("CAP_EXCEEDED",
					fmt.Sprintf("Return %s no longer fits the remaining returnable quantity", order.OrderNumber))
			}
			returned[item.ProductID] = returned[item.ProductID].Add(item.BaseQuantity)
		}

		direction := order.OrderType.StockDirection()
		refID := order.ID
		for _, item := range order.Items {
			_, err := s.ledger.ApplyAdjustment(ctx, repos, appinventory.AdjustmentRequest{
				ProductID:       item.ProductID,
				QuantityChange:  item.BaseQuantity.Mul(direction),
				TransactionType: inventory.TransactionTypeReturn,
				ReferenceID:     &refID,
				Note:            fmt.Sprintf("Return order %s", order.OrderNumber),
			})
			if err != nil {
				return err
			}
		}

		return repos.ReturnOrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return ToReturnOrderResponse(order), nil
}

// Get returns a return order with its items
func (s *ReturnOrderService) Get(ctx context.Context, orderID uuid.UUID) (*ReturnOrderResponse, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return ToReturnOrderResponse(order), nil
}

// List returns a paginated list of return orders
func (s *ReturnOrderService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ReturnOrderResponse], error) {
	orders, err := s.returnRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.returnRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ReturnOrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, *ToReturnOrderResponse(&orders[i]))
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// Delete deletes a pending return order
func (s *ReturnOrderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if !order.CanDelete() {
		return shared.NewDomainError("INVALID_STATE", "Confirmed returns cannot be deleted")
	}
	return s.returnRepo.Delete(ctx, order.ID)
}

// loadOriginal loads the original order of a return and folds its lines
// into per-product base quantities and per-base-unit prices, read from the
// conversion-rate snapshots taken when the order was created. The original
// must be confirmed; nothing was shipped or received for a pending order,
// so there is nothing to return.
func (s *ReturnOrderService) loadOriginal(ctx context.Context, repos appinventory.TransactionalRepositories, orderType trade.ReturnOrderType, originalOrderID uuid.UUID) (map[uuid.UUID]*originalLine, error) {
	lines := make(map[uuid.UUID]*originalLine)

	add := func(productID uuid.UUID, productName string, baseQuantity, conversionRate, unitPrice decimal.Decimal) {
		if line, ok := lines[productID]; ok {
			line.baseQuantity = line.baseQuantity.Add(baseQuantity)
			return
		}
		lines[productID] = &originalLine{
			productName:  productName,
			baseQuantity: baseQuantity,
			perBasePrice: unitPrice.DivRound(conversionRate, valueobject.MoneyPrecision),
		}
	}

	switch orderType {
	case trade.ReturnOrderTypePurchase:
		order, err := repos.PurchaseOrderRepo().FindByID(ctx, originalOrderID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("NOT_FOUND", "Original purchase order not found")
			}
			return nil, err
		}
		if order.Status != trade.OrderStatusConfirmed {
			return nil, shared.NewDomainError("INVALID_STATE", "Only confirmed orders can be returned")
		}
		for _, item := range order.Items {
			add(item.ProductID, item.ProductName, item.BaseQuantity, item.ConversionRate, item.UnitPrice)
		}
	case trade.ReturnOrderTypeSales:
		order, err := repos.SalesOrderRepo().FindByID(ctx, originalOrderID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("NOT_FOUND", "Original sales order not found")
			}
			return nil, err
		}
		if order.Status != trade.OrderStatusConfirmed {
			return nil, shared.NewDomainError("INVALID_STATE", "Only confirmed orders can be returned")
		}
		for _, item := range order.Items {
			add(item.ProductID, item.ProductName, item.BaseQuantity, item.ConversionRate, item.UnitPrice)
		}
	}

	return lines, nil
}

// confirmedReturnsByProduct sums already confirmed returned quantities per
// product in base units, skipping excludeID (the return being confirmed).
func (s *ReturnOrderService) confirmedReturnsByProduct(ctx context.Context, repos appinventory.TransactionalRepositories, originalOrderID, excludeID uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	confirmed := trade.OrderStatusConfirmed
	returns, err := repos.ReturnOrderRepo().FindByOriginalOrder(ctx, originalOrderID, &confirmed)
	if err != nil {
		return nil, err
	}

	totals := make(map[uuid.UUID]decimal.Decimal)
	for i := range returns {
		if returns[i].ID == excludeID {
			continue
		}
		for productID, base := range returns[i].BaseQuantityByProduct() {
			totals[productID] = totals[productID].Add(base)
		}
	}
	return totals, nil
}

func (s *ReturnOrderService) findOrder(ctx context.Context, id uuid.UUID) (*trade.ReturnOrder, error) {
	order, err := s.returnRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Return order not found")
		}
		return nil, err
	}
	return order, nil
}
