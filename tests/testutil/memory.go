package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appinventory "github.com/stocktrack/backend/internal/application/inventory"
	"github.com/stocktrack/backend/internal/domain/catalog"
	"github.com/stocktrack/backend/internal/domain/inventory"
	"github.com/stocktrack/backend/internal/domain/shared"
	"github.com/stocktrack/backend/internal/domain/trade"
)

// MemoryRepos bundles in-memory fakes for every repository interface.
// Reads hand out copies so callers see repository state as it was at
// load time, the same way a row read from the database would behave.
type MemoryRepos struct {
	Products       *MemoryProductRepository
	Units          *MemoryPackageUnitRepository
	Records        *MemoryInventoryRecordRepository
	Transactions   *MemoryInventoryTransactionRepository
	StockTakings   *MemoryStockTakingRepository
	PurchaseOrders *MemoryPurchaseOrderRepository
	SalesOrders    *MemorySalesOrderRepository
	ReturnOrders   *MemoryReturnOrderRepository
}

// NewMemoryRepos creates an empty set of in-memory repositories.
func NewMemoryRepos() *MemoryRepos {
	products := &MemoryProductRepository{items: make(map[uuid.UUID]catalog.Product)}
	return &MemoryRepos{
		Products:       products,
		Units:          &MemoryPackageUnitRepository{items: make(map[uuid.UUID]catalog.PackageUnit)},
		Records:        &MemoryInventoryRecordRepository{items: make(map[uuid.UUID]inventory.InventoryRecord), products: products},
		Transactions:   &MemoryInventoryTransactionRepository{},
		StockTakings:   &MemoryStockTakingRepository{items: make(map[uuid.UUID]inventory.StockTaking)},
		PurchaseOrders: &MemoryPurchaseOrderRepository{items: make(map[uuid.UUID]trade.PurchaseOrder)},
		SalesOrders:    &MemorySalesOrderRepository{items: make(map[uuid.UUID]trade.SalesOrder)},
		ReturnOrders:   &MemoryReturnOrderRepository{items: make(map[uuid.UUID]trade.ReturnOrder)},
	}
}

// Scope returns a transaction scope over the in-memory repositories.
func (r *MemoryRepos) Scope() *appinventory.NoOpTransactionScope {
	return appinventory.NewNoOpTransactionScope(
		r.Products,
		r.Units,
		r.Records,
		r.Transactions,
		r.StockTakings,
		r.PurchaseOrders,
		r.SalesOrders,
		r.ReturnOrders,
	)
}

// nextNumber yields the next document number for a prefix, matching the
// "<prefix>00001" sequence the real repositories generate.
func nextNumber(numbers []string, prefix string) string {
	next := 1
	for _, number := range numbers {
		if !strings.HasPrefix(number, prefix) {
			continue
		}
		var n int
		if _, err := fmt.Sscanf(strings.TrimPrefix(number, prefix), "%d", &n); err == nil && n >= next {
			next = n + 1
		}
	}
	return fmt.Sprintf("%s%05d", prefix, next)
}

// MemoryProductRepository is an in-memory catalog.ProductRepository.
type MemoryProductRepository struct {
	mu    sync.Mutex
	items map[uuid.UUID]catalog.Product
	order []uuid.UUID
}

func cloneProduct(p catalog.Product) catalog.Product {
	p.Units = append([]catalog.PackageUnit(nil), p.Units...)
	return p
}

func (r *MemoryProductRepository) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	p = cloneProduct(p)
	return &p, nil
}

func (r *MemoryProductRepository) FindByCode(_ context.Context, code string) (*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.order {
		if p := r.items[id]; p.Code == code {
			p = cloneProduct(p)
			return &p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *MemoryProductRepository) matches(p catalog.Product, filter shared.Filter) bool {
	if filter.Search == "" {
		return true
	}
	search := strings.ToLower(filter.Search)
	return strings.Contains(strings.ToLower(p.Code), search) ||
		strings.Contains(strings.ToLower(p.Name), search)
}

func (r *MemoryProductRepository) FindAll(_ context.Context, filter shared.Filter) ([]catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []catalog.Product
	for _, id := range r.order {
		if p := r.items[id]; r.matches(p, filter) {
			all = append(all, cloneProduct(p))
		}
	}
	return page(all, filter), nil
}

func (r *MemoryProductRepository) ListAll(_ context.Context) ([]catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]catalog.Product, 0, len(r.order))
	for _, id := range r.order {
		all = append(all, cloneProduct(r.items[id]))
	}
	return all, nil
}

func (r *MemoryProductRepository) Count(_ context.Context, filter shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, p := range r.items {
		if r.matches(p, filter) {
			count++
		}
	}
	return count, nil
}

func (r *MemoryProductRepository) ExistsByCode(_ context.Context, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.items {
		if p.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryProductRepository) Save(_ context.Context, product *catalog.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[product.ID]; !ok {
		r.order = append(r.order, product.ID)
	}
	r.items[product.ID] = cloneProduct(*product)
	return nil
}

func (r *MemoryProductRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.items, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryProductRepository) GenerateCode(_ context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := 1
	for _, p := range r.items {
		var n int
		if _, err := fmt.Sscanf(strings.TrimPrefix(p.Code, catalog.CodePrefix), "%d", &n); err == nil && n >= next {
			next = n + 1
		}
	}
	return fmt.Sprintf("%s%06d", catalog.CodePrefix, next), nil
}

// MemoryPackageUnitRepository is an in-memory catalog.PackageUnitRepository.
type MemoryPackageUnitRepository struct {
	mu    sync.Mutex
	items map[uuid.UUID]catalog.PackageUnit
	order []uuid.UUID
}

func (r *MemoryPackageUnitRepository) FindByID(_ context.Context, id uuid.UUID) (*catalog.PackageUnit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.items[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &u, nil
}

func (r *MemoryPackageUnitRepository) FindByProduct(_ context.Context, productID uuid.UUID) ([]catalog.PackageUnit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var units []catalog.PackageUnit
	for _, id := range r.order {
		if u := r.items[id]; u.ProductID == productID {
			units = append(units, u)
		}
	}
	return units, nil
}

func (r *MemoryPackageUnitRepository) FindByProductAndName(_ context.Context, productID uuid.UUID, name string) (*catalog.PackageUnit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.order {
		if u := r.items[id]; u.ProductID == productID && u.Name == name {
			return &u, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *MemoryPackageUnitRepository) ExistsByProductAndName(_ context.Context, productID uuid.UUID, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.items {
		if u.ProductID == productID && u.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryPackageUnitRepository) Save(_ context.Context, unit *catalog.PackageUnit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[unit.ID]; !ok {
		r.order = append(r.order, unit.ID)
	}
	r.items[unit.ID] = *unit
	return nil
}

func (r *MemoryPackageUnitRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.items, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// MemoryInventoryRecordRepository is an in-memory
// inventory.InventoryRecordRepository keyed by product. SaveWithVersion
// enforces the same optimistic lock as the real repository.
type MemoryInventoryRecordRepository struct {
	mu       sync.Mutex
	items    map[uuid.UUID]inventory.InventoryRecord // by product ID
	products *MemoryProductRepository
}

func (r *MemoryInventoryRecordRepository) FindByProduct(_ context.Context, productID uuid.UUID) (*inventory.InventoryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.items[productID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &rec, nil
}

func (r *MemoryInventoryRecordRepository) FindByProductForUpdate(ctx context.Context, productID uuid.UUID) (*inventory.InventoryRecord, error) {
	return r.FindByProduct(ctx, productID)
}

func (r *MemoryInventoryRecordRepository) FindAll(_ context.Context, filter shared.Filter) ([]inventory.InventoryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []inventory.InventoryRecord
	for _, rec := range r.items {
		all = append(all, rec)
	}
	return page(all, filter), nil
}

func (r *MemoryInventoryRecordRepository) Count(_ context.Context, _ shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.items)), nil
}

func (r *MemoryInventoryRecordRepository) Create(_ context.Context, record *inventory.InventoryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[record.ProductID]; ok {
		return shared.ErrAlreadyExists
	}
	r.items[record.ProductID] = *record
	return nil
}

func (r *MemoryInventoryRecordRepository) SaveWithVersion(_ context.Context, record *inventory.InventoryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[record.ProductID]
	if !ok || stored.Version != record.Version-1 {
		return shared.ErrConcurrencyConflict
	}
	r.items[record.ProductID] = *record
	return nil
}

func (r *MemoryInventoryRecordRepository) FindLowStock(ctx context.Context) ([]inventory.LowStockRow, error) {
	products, err := r.products.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	var rows []inventory.LowStockRow
	for _, p := range products {
		rec, ok := r.items[p.ID]
		if !ok {
			continue
		}
		low := (p.MinStockThreshold.IsPositive() && rec.Quantity.LessThanOrEqual(p.MinStockThreshold)) ||
			(p.MinStockThreshold.IsZero() && rec.Quantity.IsZero())
		if low {
			rows = append(rows, inventory.LowStockRow{
				ProductID:         p.ID,
				ProductCode:       p.Code,
				ProductName:       p.Name,
				BaseUnit:          p.BaseUnit,
				MinStockThreshold: p.MinStockThreshold,
				Quantity:          rec.Quantity,
			})
		}
	}
	return rows, nil
}

// MemoryInventoryTransactionRepository is an append-only in-memory
// inventory.InventoryTransactionRepository. FindByFilter returns the
// newest transactions first, like the real repository.
type MemoryInventoryTransactionRepository struct {
	mu      sync.Mutex
	entries []inventory.InventoryTransaction
}

// All returns every appended transaction in append order.
func (r *MemoryInventoryTransactionRepository) All() []inventory.InventoryTransaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]inventory.InventoryTransaction(nil), r.entries...)
}

func (r *MemoryInventoryTransactionRepository) Append(_ context.Context, tx *inventory.InventoryTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *tx)
	return nil
}

func (r *MemoryInventoryTransactionRepository) FindByFilter(_ context.Context, filter inventory.TransactionFilter) ([]inventory.InventoryTransaction, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []inventory.InventoryTransaction
	for i := len(r.entries) - 1; i >= 0; i-- {
		tx := r.entries[i]
		if filter.ProductID != nil && tx.ProductID != *filter.ProductID {
			continue
		}
		if len(filter.Types) > 0 && !containsType(filter.Types, tx.TransactionType) {
			continue
		}
		if filter.From != nil && tx.TransactionDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && tx.TransactionDate.After(*filter.To) {
			continue
		}
		matched = append(matched, tx)
	}

	total := int64(len(matched))
	offset := (filter.Page - 1) * filter.PageSize
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + filter.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *MemoryInventoryTransactionRepository) SumQuantityByProduct(_ context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sum := decimal.Zero
	for _, tx := range r.entries {
		if tx.ProductID == productID {
			sum = sum.Add(tx.QuantityChange)
		}
	}
	return sum, nil
}

func containsType(types []inventory.TransactionType, t inventory.TransactionType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

// MemoryStockTakingRepository is an in-memory inventory.StockTakingRepository.
type MemoryStockTakingRepository struct {
	mu    sync.Mutex
	items map[uuid.UUID]inventory.StockTaking
	order []uuid.UUID
}

func cloneTaking(t inventory.StockTaking) inventory.StockTaking {
	t.Items = append([]inventory.StockTakingItem(nil), t.Items...)
	return t
}

func (r *MemoryStockTakingRepository) FindByID(_ context.Context, id uuid.UUID) (*inventory.StockTaking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.items[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	t = cloneTaking(t)
	return &t, nil
}

func (r *MemoryStockTakingRepository) FindAll(_ context.Context, filter shared.Filter) ([]inventory.StockTaking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]inventory.StockTaking, 0, len(r.order))
	for _, id := range r.order {
		all = append(all, cloneTaking(r.items[id]))
	}
	return page(all, filter), nil
}

func (r *MemoryStockTakingRepository) Count(_ context.Context, _ shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.items)), nil
}

func (r *MemoryStockTakingRepository) Save(_ context.Context, taking *inventory.StockTaking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[taking.ID]; !ok {
		r.order = append(r.order, taking.ID)
	}
	r.items[taking.ID] = cloneTaking(*taking)
	return nil
}

func (r *MemoryStockTakingRepository) SaveItem(_ context.Context, item *inventory.StockTakingItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	taking, ok := r.items[item.StockTakingID]
	if !ok {
		return shared.ErrNotFound
	}
	for i := range taking.Items {
		if taking.Items[i].ID == item.ID {
			taking.Items[i] = *item
			r.items[taking.ID] = taking
			return nil
		}
	}
	return shared.ErrNotFound
}

func (r *MemoryStockTakingRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.items, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryStockTakingRepository) GenerateTakingNumber(_ context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	numbers := make([]string, 0, len(r.items))
	for _, t := range r.items {
		numbers = append(numbers, t.TakingNumber)
	}
	return nextNumber(numbers, fmt.Sprintf("ST-%d-", time.Now().Year())), nil
}

// MemoryPurchaseOrderRepository is an in-memory trade.PurchaseOrderRepository.
type MemoryPurchaseOrderRepository struct {
	mu    sync.Mutex
	items map[uuid.UUID]trade.PurchaseOrder
	order []uuid.UUID
}

func clonePurchaseOrder(o trade.PurchaseOrder) trade.PurchaseOrder {
	o.Items = append([]trade.PurchaseOrderItem(nil), o.Items...)
	return o
}

func (r *MemoryPurchaseOrderRepository) FindByID(_ context.Context, id uuid.UUID) (*trade.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.items[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	o = clonePurchaseOrder(o)
	return &o, nil
}

func (r *MemoryPurchaseOrderRepository) FindAll(_ context.Context, filter shared.Filter) ([]trade.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]trade.PurchaseOrder, 0, len(r.order))
	for _, id := range r.order {
		all = append(all, clonePurchaseOrder(r.items[id]))
	}
	return page(all, filter), nil
}

func (r *MemoryPurchaseOrderRepository) Count(_ context.Context, _ shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.items)), nil
}

func (r *MemoryPurchaseOrderRepository) Save(_ context.Context, order *trade.PurchaseOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[order.ID]; !ok {
		r.order = append(r.order, order.ID)
	}
	r.items[order.ID] = clonePurchaseOrder(*order)
	return nil
}

func (r *MemoryPurchaseOrderRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.items, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryPurchaseOrderRepository) GenerateOrderNumber(_ context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	numbers := make([]string, 0, len(r.items))
	for _, o := range r.items {
		numbers = append(numbers, o.OrderNumber)
	}
	return nextNumber(numbers, fmt.Sprintf("PO-%d-", time.Now().Year())), nil
}

// MemorySalesOrderRepository is an in-memory trade.SalesOrderRepository.
type MemorySalesOrderRepository struct {
	mu    sync.Mutex
	items map[uuid.UUID]trade.SalesOrder
	order []uuid.UUID
}

func cloneSalesOrder(o trade.SalesOrder) trade.SalesOrder {
	o.Items = append([]trade.SalesOrderItem(nil), o.Items...)
	return o
}

func (r *MemorySalesOrderRepository) FindByID(_ context.Context, id uuid.UUID) (*trade.SalesOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.items[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	o = cloneSalesOrder(o)
	return &o, nil
}

func (r *MemorySalesOrderRepository) FindAll(_ context.Context, filter shared.Filter) ([]trade.SalesOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]trade.SalesOrder, 0, len(r.order))
	for _, id := range r.order {
		all = append(all, cloneSalesOrder(r.items[id]))
	}
	return page(all, filter), nil
}

func (r *MemorySalesOrderRepository) Count(_ context.Context, _ shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.items)), nil
}

func (r *MemorySalesOrderRepository) Save(_ context.Context, order *trade.SalesOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[order.ID]; !ok {
		r.order = append(r.order, order.ID)
	}
	r.items[order.ID] = cloneSalesOrder(*order)
	return nil
}

func (r *MemorySalesOrderRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.items, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemorySalesOrderRepository) GenerateOrderNumber(_ context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	numbers := make([]string, 0, len(r.items))
	for _, o := range r.items {
		numbers = append(numbers, o.OrderNumber)
	}
	return nextNumber(numbers, fmt.Sprintf("SO-%d-", time.Now().Year())), nil
}

// MemoryReturnOrderRepository is an in-memory trade.ReturnOrderRepository.
type MemoryReturnOrderRepository struct {
	mu    sync.Mutex
	items map[uuid.UUID]trade.ReturnOrder
	order []uuid.UUID
}

func cloneReturnOrder(o trade.ReturnOrder) trade.ReturnOrder {
	o.Items = append([]trade.ReturnOrderItem(nil), o.Items...)
	return o
}

func (r *MemoryReturnOrderRepository) FindByID(_ context.Context, id uuid.UUID) (*trade.ReturnOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.items[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	o = cloneReturnOrder(o)
	return &o, nil
}

func (r *MemoryReturnOrderRepository) FindAll(_ context.Context, filter shared.Filter) ([]trade.ReturnOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]trade.ReturnOrder, 0, len(r.order))
	for _, id := range r.order {
		all = append(all, cloneReturnOrder(r.items[id]))
	}
	return page(all, filter), nil
}

func (r *MemoryReturnOrderRepository) Count(_ context.Context, _ shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.items)), nil
}

func (r *MemoryReturnOrderRepository) FindByOriginalOrder(_ context.Context, originalOrderID uuid.UUID, status *trade.OrderStatus) ([]trade.ReturnOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var returns []trade.ReturnOrder
	for _, id := range r.order {
		o := r.items[id]
		if o.OriginalOrderID != originalOrderID {
			continue
		}
		if status != nil && o.Status != *status {
			continue
		}
		returns = append(returns, cloneReturnOrder(o))
	}
	return returns, nil
}

func (r *MemoryReturnOrderRepository) Save(_ context.Context, order *trade.ReturnOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[order.ID]; !ok {
		r.order = append(r.order, order.ID)
	}
	r.items[order.ID] = cloneReturnOrder(*order)
	return nil
}

func (r *MemoryReturnOrderRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.items, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryReturnOrderRepository) GenerateOrderNumber(_ context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	numbers := make([]string, 0, len(r.items))
	for _, o := range r.items {
		numbers = append(numbers, o.OrderNumber)
	}
	return nextNumber(numbers, fmt.Sprintf("RO-%d-", time.Now().Year())), nil
}

// page applies the filter's offset and limit to a slice.
func page[T any](items []T, filter shared.Filter) []T {
	offset := filter.Offset()
	if offset >= len(items) {
		return nil
	}
	end := offset + filter.Limit()
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

var (
	_ catalog.ProductRepository                = (*MemoryProductRepository)(nil)
	_ catalog.PackageUnitRepository            = (*MemoryPackageUnitRepository)(nil)
	_ inventory.InventoryRecordRepository      = (*MemoryInventoryRecordRepository)(nil)
	_ inventory.InventoryTransactionRepository = (*MemoryInventoryTransactionRepository)(nil)
	_ inventory.StockTakingRepository          = (*MemoryStockTakingRepository)(nil)
	_ trade.PurchaseOrderRepository            = (*MemoryPurchaseOrderRepository)(nil)
	_ trade.SalesOrderRepository               = (*MemorySalesOrderRepository)(nil)
	_ trade.ReturnOrderRepository              = (*MemoryReturnOrderRepository)(nil)
)
