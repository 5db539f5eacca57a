package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appcatalog "github.com/stocktrack/backend/internal/application/catalog"
	"github.com/stocktrack/backend/internal/domain/catalog"
	"github.com/stocktrack/backend/internal/domain/inventory"
	"github.com/stocktrack/backend/internal/domain/shared"
)

// LedgerService is the single entry point for stock movements. Every change
// to a product's balance goes through ApplyAdjustment so the append-only
// transaction log and the balance record can never drift apart.
type LedgerService struct {
	txScope     TransactionScope
	productRepo catalog.ProductRepository
	unitRepo    catalog.PackageUnitRepository
	recordRepo  inventory.InventoryRecordRepository
	txRepo      inventory.InventoryTransactionRepository
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	txScope TransactionScope,
	productRepo catalog.ProductRepository,
	unitRepo catalog.PackageUnitRepository,
	recordRepo inventory.InventoryRecordRepository,
	txRepo inventory.InventoryTransactionRepository,
) *LedgerService {
	return &LedgerService{
		txScope:     txScope,
		productRepo: productRepo,
		unitRepo:    unitRepo,
		recordRepo:  recordRepo,
		txRepo:      txRepo,
	}
}

// Adjust applies a single stock movement in its own transaction
func (s *LedgerService) Adjust(ctx context.Context, req AdjustmentRequest) (*MovementResult, error) {
	var result *MovementResult
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		result, err = s.ApplyAdjustment(ctx, repos, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ApplyAdjustment applies a stock movement using transaction-scoped
// repositories. Callers that move stock as part of a larger operation
// (order confirmation, stock taking completion) call this inside their own
// scope so the movement commits or rolls back with the rest of the work.
func (s *LedgerService) ApplyAdjustment(ctx context.Context, repos TransactionalRepositories, req AdjustmentRequest) (*MovementResult, error) {
	if !req.TransactionType.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid transaction type")
	}
	if req.QuantityChange.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity change cannot be zero")
	}

	resolver := appcatalog.NewUnitResolver(repos.ProductRepo(), repos.PackageUnitRepo())
	resolved, err := resolver.Resolve(ctx, req.ProductID, req.Unit)
	if err != nil {
		return nil, err
	}
	baseChange := resolved.ToBase(req.QuantityChange)
	if baseChange.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity change rounds to zero in base units")
	}

	record, err := s.lockRecord(ctx, repos, req.ProductID)
	if err != nil {
		return nil, err
	}
	if err := record.Apply(baseChange); err != nil {
		return nil, err
	}
	if err := repos.RecordRepo().SaveWithVersion(ctx, record); err != nil {
		return nil, err
	}

	tx, err := inventory.NewInventoryTransaction(
		req.ProductID,
		req.TransactionType,
		baseChange,
		resolved.Unit,
		record.Quantity,
		req.ReferenceID,
		req.Note,
	)
	if err != nil {
		return nil, err
	}
	if err := repos.TransactionRepo().Append(ctx, tx); err != nil {
		return nil, err
	}

	return &MovementResult{
		TransactionID:  &tx.ID,
		ProductID:      req.ProductID,
		QuantityChange: baseChange,
		BalanceAfter:   record.Quantity,
	}, nil
}

// SetQuantity corrects a product's balance to an absolute base-unit quantity
func (s *LedgerService) SetQuantity(ctx context.Context, req SetQuantityRequest) (*MovementResult, error) {
	var result *MovementResult
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		result, err = s.ApplySetQuantity(ctx, repos, req.ProductID, req.Quantity, nil, req.Note)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ApplySetQuantity sets the balance to an absolute base-unit quantity by
// recording the delta as an adjustment. Setting the quantity the product
// already has is a no-op and appends nothing.
func (s *LedgerService) ApplySetQuantity(ctx context.Context, repos TransactionalRepositories, productID uuid.UUID, quantity decimal.Decimal, referenceID *uuid.UUID, note string) (*MovementResult, error) {
	if quantity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}

	record, err := s.lockRecord(ctx, repos, productID)
	if err != nil {
		return nil, err
	}

	delta := quantity.Sub(record.Quantity)
	if delta.IsZero() {
		return &MovementResult{
			ProductID:      productID,
			QuantityChange: decimal.Zero,
			BalanceAfter:   record.Quantity,
		}, nil
	}

	// The record row is already locked; ApplyAdjustment re-locks it in the
	// same transaction, which is a harmless no-op.
	return s.ApplyAdjustment(ctx, repos, AdjustmentRequest{
		ProductID:       productID,
		QuantityChange:  delta,
		TransactionType: inventory.TransactionTypeAdjustment,
		ReferenceID:     referenceID,
		Note:            note,
	})
}

// CheckAvailability reports whether the requested quantity is in stock.
// This is a point-in-time read; only a movement inside a transaction can
// guarantee the stock is still there.
func (s *LedgerService) CheckAvailability(ctx context.Context, query AvailabilityQuery) (*AvailabilityResult, error) {
	resolver := appcatalog.NewUnitResolver(s.productRepo, s.unitRepo)
	return s.checkAvailability(ctx, resolver, s.recordRepo, query, false)
}

// BatchCheckAvailability checks several products in one call
func (s *LedgerService) BatchCheckAvailability(ctx context.Context, queries []AvailabilityQuery) ([]AvailabilityResult, error) {
	resolver := appcatalog.NewUnitResolver(s.productRepo, s.unitRepo)
	results := make([]AvailabilityResult, 0, len(queries))
	for _, query := range queries {
		result, err := s.checkAvailability(ctx, resolver, s.recordRepo, query, false)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}
	return results, nil
}

// ApplyAvailabilityCheck checks availability with a row lock so the answer
// holds for the remainder of the transaction. Sales confirmation uses this
// to lock every line's record before moving any stock.
func (s *LedgerService) ApplyAvailabilityCheck(ctx context.Context, repos TransactionalRepositories, query AvailabilityQuery) (*AvailabilityResult, error) {
	resolver := appcatalog.NewUnitResolver(repos.ProductRepo(), repos.PackageUnitRepo())
	return s.checkAvailability(ctx, resolver, repos.RecordRepo(), query, true)
}

func (s *LedgerService) checkAvailability(ctx context.Context, resolver *appcatalog.UnitResolver, records inventory.InventoryRecordRepository, query AvailabilityQuery, forUpdate bool) (*AvailabilityResult, error) {
	if !query.Quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Requested quantity must be positive")
	}

	resolved, err := resolver.Resolve(ctx, query.ProductID, query.Unit)
	if err != nil {
		return nil, err
	}
	requested := resolved.ToBase(query.Quantity)

	var record *inventory.InventoryRecord
	if forUpdate {
		record, err = records.FindByProductForUpdate(ctx, query.ProductID)
	} else {
		record, err = records.FindByProduct(ctx, query.ProductID)
	}
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return &AvailabilityResult{
				ProductID:     query.ProductID,
				Available:     false,
				RequestedBase: requested,
				Balance:       decimal.Zero,
				Shortage:      requested,
			}, nil
		}
		return nil, err
	}

	return &AvailabilityResult{
		ProductID:     query.ProductID,
		Available:     record.CanSatisfy(requested),
		RequestedBase: requested,
		Balance:       record.Quantity,
		Shortage:      record.Shortage(requested),
	}, nil
}

// GetBalance returns the current balance of a product with its catalog info
func (s *LedgerService) GetBalance(ctx context.Context, productID uuid.UUID) (*BalanceResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrProductNotFound
		}
		return nil, err
	}

	record, err := s.recordRepo.FindByProduct(ctx, productID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		// No record yet means no movements yet
		return &BalanceResponse{
			ProductID:   productID,
			ProductCode: product.Code,
			ProductName: product.Name,
			BaseUnit:    product.BaseUnit,
			Quantity:    decimal.Zero,
			IsLowStock:  product.IsLowStock(decimal.Zero),
			UpdatedAt:   product.CreatedAt,
		}, nil
	}

	return &BalanceResponse{
		ProductID:   productID,
		ProductCode: product.Code,
		ProductName: product.Name,
		BaseUnit:    product.BaseUnit,
		Quantity:    record.Quantity,
		IsLowStock:  product.IsLowStock(record.Quantity),
		UpdatedAt:   record.LastUpdated(),
	}, nil
}

// ListBalances returns a paginated list of balances with catalog info
func (s *LedgerService) ListBalances(ctx context.Context, filter shared.Filter) (*shared.Paginated[BalanceResponse], error) {
	records, err := s.recordRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.recordRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]BalanceResponse, 0, len(records))
	for i := range records {
		record := &records[i]
		product, err := s.productRepo.FindByID(ctx, record.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				continue
			}
			return nil, err
		}
		items = append(items, BalanceResponse{
			ProductID:   record.ProductID,
			ProductCode: product.Code,
			ProductName: product.Name,
			BaseUnit:    product.BaseUnit,
			Quantity:    record.Quantity,
			IsLowStock:  product.IsLowStock(record.Quantity),
			UpdatedAt:   record.LastUpdated(),
		})
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// ListLowStock returns products at or below their low-stock threshold
func (s *LedgerService) ListLowStock(ctx context.Context) ([]inventory.LowStockRow, error) {
	return s.recordRepo.FindLowStock(ctx)
}

// ListTransactions returns a filtered page of ledger entries
func (s *LedgerService) ListTransactions(ctx context.Context, filter inventory.TransactionFilter) (*shared.Paginated[TransactionResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	txs, total, err := s.txRepo.FindByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]TransactionResponse, 0, len(txs))
	for i := range txs {
		items = append(items, *ToTransactionResponse(&txs[i]))
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// VerifyBalance compares a product's cached balance against the sum of its
// ledger entries
func (s *LedgerService) VerifyBalance(ctx context.Context, productID uuid.UUID) (*BalanceVerification, error) {
	record, err := s.recordRepo.FindByProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrProductNotFound
		}
		return nil, err
	}

	sum, err := s.txRepo.SumQuantityByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	return &BalanceVerification{
		ProductID:      productID,
		RecordBalance:  record.Quantity,
		TransactionSum: sum,
		Consistent:     record.Quantity.Equal(sum),
	}, nil
}

// lockRecord loads a product's balance record with a row lock, creating a
// zero record on first movement.
func (s *LedgerService) lockRecord(ctx context.Context, repos TransactionalRepositories, productID uuid.UUID) (*inventory.InventoryRecord, error) {
	record, err := repos.RecordRepo().FindByProductForUpdate(ctx, productID)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	// Verify the product exists before creating a record for it
	if _, err := repos.ProductRepo().FindByID(ctx, productID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrProductNotFound
		}
		return nil, err
	}

	record, err = inventory.NewInventoryRecord(productID)
	if err != nil {
		return nil, err
	}
	if err := repos.RecordRepo().Create(ctx, record); err != nil {
		return nil, fmt.Errorf("create inventory record: %w", err)
	}
	return record, nil
}
