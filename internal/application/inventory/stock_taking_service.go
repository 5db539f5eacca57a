package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stocktrack/backend/internal/domain/inventory"
	"github.com/stocktrack/backend/internal/domain/shared"
)

// StockTakingService handles stock taking operations
type StockTakingService struct {
	txScope         TransactionScope
	stockTakingRepo inventory.StockTakingRepository
	ledger          *LedgerService
}

// NewStockTakingService creates a new StockTakingService
func NewStockTakingService(
	txScope TransactionScope,
	stockTakingRepo inventory.StockTakingRepository,
	ledger *LedgerService,
) *StockTakingService {
	return &StockTakingService{
		txScope:         txScope,
		stockTakingRepo: stockTakingRepo,
		ledger:          ledger,
	}
}

// Create opens a new stock taking document snapshotting the current balance
// of every product. The snapshot and the document are written in one
// transaction so the system quantities are mutually consistent.
func (s *StockTakingService) Create(ctx context.Context, takingDate time.Time) (*StockTakingResponse, error) {
	var taking *inventory.StockTaking
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		number, err := repos.StockTakingRepo().GenerateTakingNumber(ctx)
		if err != nil {
			return err
		}

		taking, err = inventory.NewStockTaking(number, takingDate)
		if err != nil {
			return err
		}

		products, err := repos.ProductRepo().ListAll(ctx)
		if err != nil {
			return err
		}
		if len(products) == 0 {
			return shared.NewDomainError("INVALID_STATE", "No products to count")
		}

		for i := range products {
			product := &products[i]
			balance := decimal.Zero
			record, err := repos.RecordRepo().FindByProduct(ctx, product.ID)
			if err != nil && !errors.Is(err, shared.ErrNotFound) {
				return err
			}
			if record != nil {
				balance = record.Quantity
			}
			if err := taking.AddItem(product.ID, product.Name, product.Code, product.BaseUnit, balance); err != nil {
				return err
			}
		}

		return repos.StockTakingRepo().Save(ctx, taking)
	})
	if err != nil {
		return nil, err
	}
	return ToStockTakingResponse(taking, true), nil
}

// RecordCount records the counted quantity for one product
func (s *StockTakingService) RecordCount(ctx context.Context, takingID uuid.UUID, req RecordCountRequest) (*StockTakingResponse, error) {
	taking, err := s.findTaking(ctx, takingID)
	if err != nil {
		return nil, err
	}

	if err := taking.RecordActualQuantity(req.ProductID, req.ActualQuantity); err != nil {
		return nil, err
	}
	if err := s.stockTakingRepo.Save(ctx, taking); err != nil {
		return nil, err
	}
	return ToStockTakingResponse(taking, true), nil
}

// Get returns a stock taking document with items and a difference summary
func (s *StockTakingService) Get(ctx context.Context, takingID uuid.UUID) (*StockTakingResponse, error) {
	taking, err := s.findTaking(ctx, takingID)
	if err != nil {
		return nil, err
	}
	return ToStockTakingResponse(taking, true), nil
}

// GetSummary returns the running difference summary of a document
func (s *StockTakingService) GetSummary(ctx context.Context, takingID uuid.UUID) (*inventory.DifferenceSummary, error) {
	taking, err := s.findTaking(ctx, takingID)
	if err != nil {
		return nil, err
	}
	summary := taking.Summary()
	return &summary, nil
}

// List returns a paginated list of stock taking documents without items
func (s *StockTakingService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[StockTakingResponse], error) {
	takings, err := s.stockTakingRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.stockTakingRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]StockTakingResponse, 0, len(takings))
	for i := range takings {
		items = append(items, *ToStockTakingResponse(&takings[i], false))
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// Complete finishes a stock taking. Every counted difference is turned into
// an adjustment in the same transaction, so either all corrections apply or
// none do. Re-completing a completed document fails without moving stock.
func (s *StockTakingService) Complete(ctx context.Context, takingID uuid.UUID) (*StockTakingResponse, error) {
	var taking *inventory.StockTaking
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		taking, err = repos.StockTakingRepo().FindByID(ctx, takingID)
		if err != nil {
			return err
		}

		if err := taking.Complete(); err != nil {
			return err
		}

		refID := taking.ID
		for _, item := range taking.ItemsWithDifference() {
			note := fmt.Sprintf("Stock taking %s", taking.TakingNumber)
			if _, err := s.ledger.ApplySetQuantity(ctx, repos, item.ProductID, item.ActualQuantity, &refID, note); err != nil {
				return err
			}
		}

		return repos.StockTakingRepo().Save(ctx, taking)
	})
	if err != nil {
		return nil, err
	}
	return ToStockTakingResponse(taking, true), nil
}

// Delete deletes a stock taking document that has not been completed
func (s *StockTakingService) Delete(ctx context.Context, takingID uuid.UUID) error {
	taking, err := s.findTaking(ctx, takingID)
	if err != nil {
		return err
	}
	if !taking.CanDelete() {
		return shared.NewDomainError("INVALID_STATE", "Completed stock takings cannot be deleted")
	}
	return s.stockTakingRepo.Delete(ctx, taking.ID)
}

func (s *StockTakingService) findTaking(ctx context.Context, id uuid.UUID) (*inventory.StockTaking, error) {
	taking, err := s.stockTakingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Stock taking not found")
		}
		return nil, err
	}
	return taking, nil
}
