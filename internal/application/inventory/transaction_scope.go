package inventory

import (
	"context"

	"github.com/stocktrack/backend/internal/domain/catalog"
	"github.com/stocktrack/backend/internal/domain/inventory"
	"github.com/stocktrack/backend/internal/domain/trade"
)

// TransactionScope allows application services to run multiple repository
// operations atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all store repositories within
// a transaction. All repositories returned share the same underlying database
// transaction, so a row locked through RecordRepo stays locked for the whole
// scope.
type TransactionalRepositories interface {
	ProductRepo() catalog.ProductRepository
	PackageUnitRepo() catalog.PackageUnitRepository
	RecordRepo() inventory.InventoryRecordRepository
	TransactionRepo() inventory.InventoryTransactionRepository
	StockTakingRepo() inventory.StockTakingRepository
	PurchaseOrderRepo() trade.PurchaseOrderRepository
	SalesOrderRepo() trade.SalesOrderRepository
	ReturnOrderRepo() trade.ReturnOrderRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing or when transaction support is
// not required.
type NoOpTransactionScope struct {
	productRepo       catalog.ProductRepository
	packageUnitRepo   catalog.PackageUnitRepository
	recordRepo        inventory.InventoryRecordRepository
	transactionRepo   inventory.InventoryTransactionRepository
	stockTakingRepo   inventory.StockTakingRepository
	purchaseOrderRepo trade.PurchaseOrderRepository
	salesOrderRepo    trade.SalesOrderRepository
	returnOrderRepo   trade.ReturnOrderRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	productRepo catalog.ProductRepository,
	packageUnitRepo catalog.PackageUnitRepository,
	recordRepo inventory.InventoryRecordRepository,
	transactionRepo inventory.InventoryTransactionRepository,
	stockTakingRepo inventory.StockTakingRepository,
	purchaseOrderRepo trade.PurchaseOrderRepository,
	salesOrderRepo trade.SalesOrderRepository,
	returnOrderRepo trade.ReturnOrderRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		productRepo:       productRepo,
		packageUnitRepo:   packageUnitRepo,
		recordRepo:        recordRepo,
		transactionRepo:   transactionRepo,
		stockTakingRepo:   stockTakingRepo,
		purchaseOrderRepo: purchaseOrderRepo,
		salesOrderRepo:    salesOrderRepo,
		returnOrderRepo:   returnOrderRepo,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

func (s *NoOpTransactionScope) PackageUnitRepo() catalog.PackageUnitRepository {
	return s.packageUnitRepo
}

func (s *NoOpTransactionScope) RecordRepo() inventory.InventoryRecordRepository {
	return s.recordRepo
}

func (s *NoOpTransactionScope) TransactionRepo() inventory.InventoryTransactionRepository {
	return s.transactionRepo
}

func (s *NoOpTransactionScope) StockTakingRepo() inventory.StockTakingRepository {
	return s.stockTakingRepo
}

func (s *NoOpTransactionScope) PurchaseOrderRepo() trade.PurchaseOrderRepository {
	return s.purchaseOrderRepo
}

func (s *NoOpTransactionScope) SalesOrderRepo() trade.SalesOrderRepository {
	return s.salesOrderRepo
}

func (s *NoOpTransactionScope) ReturnOrderRepo() trade.ReturnOrderRepository {
	return s.returnOrderRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
