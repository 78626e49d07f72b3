package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/kaynetech/RetailRx/internal/domain"
	"github.com/kaynetech/RetailRx/internal/domain/entity"
	"github.com/kaynetech/RetailRx/internal/domain/repository"
)

var errBoom = errors.New("boom")

// In-memory repositories for use case tests. Only the methods the use cases
// touch have real behavior; the rest satisfy the interfaces.

type memInventoryRepo struct {
	repository.InventoryRepository
	items     map[string]*entity.InventoryItem
	updateErr map[string]error // per-item failures for batch tests
}

func newMemInventoryRepo(items ...*entity.InventoryItem) *memInventoryRepo {
	r := &memInventoryRepo{items: map[string]*entity.InventoryItem{}}
	for _, it := range items {
		r.items[it.ID] = it
	}
	return r
}

func (r *memInventoryRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (r *memInventoryRepo) GetBySKU(_ context.Context, sku string) (*entity.InventoryItem, error) {
	for _, it := range r.items {
		if it.SKU == sku {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memInventoryRepo) Create(_ context.Context, item *entity.InventoryItem) error {
	r.items[item.ID] = item
	return nil
}

func (r *memInventoryRepo) List(_ context.Context, filter repository.InventoryFilter) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, it := range r.items {
		if filter.Category != "" && it.Category != filter.Category {
			continue
		}
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memInventoryRepo) Update(_ context.Context, item *entity.InventoryItem) error {
	if err := r.updateErr[item.ID]; err != nil {
		return err
	}
	r.items[item.ID] = item
	return nil
}

func (r *memInventoryRepo) AdjustQuantity(_ context.Context, id string, delta int) error {
	item, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	if err := r.updateErr[id]; err != nil {
		return err
	}
	if item.Quantity+delta < 0 {
		return domain.ErrInsufficientStock
	}
	item.Quantity += delta
	return nil
}

type memSaleRepo struct {
	repository.SaleRepository
	sales []*entity.SaleTransaction
}

func (r *memSaleRepo) Create(_ context.Context, sale *entity.SaleTransaction) error {
	r.sales = append(r.sales, sale)
	return nil
}

func (r *memSaleRepo) GetByID(_ context.Context, id string) (*entity.SaleTransaction, error) {
	for _, s := range r.sales {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (r *memSaleRepo) List(_ context.Context, _, _ int) ([]*entity.SaleTransaction, error) {
	return r.sales, nil
}

type memCustomerRepo struct {
	repository.CustomerRepository
	customers map[string]*entity.Customer
	points    map[string]int
}

func newMemCustomerRepo(customers ...*entity.Customer) *memCustomerRepo {
	r := &memCustomerRepo{customers: map[string]*entity.Customer{}, points: map[string]int{}}
	for _, c := range customers {
		r.customers[c.ID] = c
	}
	return r
}

func (r *memCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memCustomerRepo) AddLoyaltyPoints(_ context.Context, id string, points int) error {
	r.points[id] += points
	return nil
}

type memPrescriptionRepo struct {
	repository.PrescriptionRepository
	prescriptions map[string]*entity.Prescription
}

func newMemPrescriptionRepo(ps ...*entity.Prescription) *memPrescriptionRepo {
	r := &memPrescriptionRepo{prescriptions: map[string]*entity.Prescription{}}
	for _, p := range ps {
		r.prescriptions[p.ID] = p
	}
	return r
}

func (r *memPrescriptionRepo) Create(_ context.Context, p *entity.Prescription) error {
	r.prescriptions[p.ID] = p
	return nil
}

func (r *memPrescriptionRepo) GetByID(_ context.Context, id string) (*entity.Prescription, error) {
	p, ok := r.prescriptions[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memPrescriptionRepo) List(_ context.Context, filter repository.PrescriptionFilter) ([]*entity.Prescription, error) {
	var out []*entity.Prescription
	for _, p := range r.prescriptions {
		if filter.CustomerID != "" && p.CustomerID != filter.CustomerID {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memPrescriptionRepo) Update(_ context.Context, p *entity.Prescription) error {
	r.prescriptions[p.ID] = p
	return nil
}

type memRefillRepo struct {
	repository.RefillRepository
	refills map[string]*entity.RefillRequest
}

func newMemRefillRepo() *memRefillRepo {
	return &memRefillRepo{refills: map[string]*entity.RefillRequest{}}
}

func (r *memRefillRepo) Create(_ context.Context, req *entity.RefillRequest) error {
	r.refills[req.ID] = req
	return nil
}

func (r *memRefillRepo) GetByID(_ context.Context, id string) (*entity.RefillRequest, error) {
	req, ok := r.refills[id]
	if !ok {
		return nil, nil
	}
	cp := *req
	return &cp, nil
}

func (r *memRefillRepo) List(_ context.Context, filter repository.RefillFilter) ([]*entity.RefillRequest, error) {
	var out []*entity.RefillRequest
	for _, req := range r.refills {
		if filter.PrescriptionID != "" && req.PrescriptionID != filter.PrescriptionID {
			continue
		}
		if filter.CustomerID != "" && req.CustomerID != filter.CustomerID {
			continue
		}
		if filter.Status != "" && req.Status != filter.Status {
			continue
		}
		out = append(out, req)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RefillNumber < out[j].RefillNumber })
	return out, nil
}

func (r *memRefillRepo) Update(_ context.Context, req *entity.RefillRequest) error {
	r.refills[req.ID] = req
	return nil
}

type memPORepo struct {
	repository.PurchaseOrderRepository
	orders map[string]*entity.PurchaseOrder
}

func newMemPORepo(orders ...*entity.PurchaseOrder) *memPORepo {
	r := &memPORepo{orders: map[string]*entity.PurchaseOrder{}}
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return r
}

func (r *memPORepo) Create(_ context.Context, order *entity.PurchaseOrder) error {
	r.orders[order.ID] = order
	return nil
}

func (r *memPORepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *order
	return &cp, nil
}

func (r *memPORepo) List(_ context.Context, status string, _, _ int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, o := range r.orders {
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *memPORepo) UpdateStatus(_ context.Context, id, status string) error {
	order, ok := r.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	return nil
}

type memSupplierRepo struct {
	repository.SupplierRepository
	suppliers map[string]*entity.Supplier
}

func newMemSupplierRepo(suppliers ...*entity.Supplier) *memSupplierRepo {
	r := &memSupplierRepo{suppliers: map[string]*entity.Supplier{}}
	for _, s := range suppliers {
		r.suppliers[s.ID] = s
	}
	return r
}

func (r *memSupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, nil
	}
	return s, nil
}

type memBatchRepo struct {
	repository.BatchRepository
	ops      map[string]*entity.BatchOperation
	rows     []*entity.BatchOperationItem
	itemsErr error
}

func newMemBatchRepo() *memBatchRepo {
	return &memBatchRepo{ops: map[string]*entity.BatchOperation{}}
}

func (r *memBatchRepo) CreateOperation(_ context.Context, op *entity.BatchOperation) error {
	cp := *op
	r.ops[op.ID] = &cp
	return nil
}

func (r *memBatchRepo) GetOperation(_ context.Context, id string) (*entity.BatchOperation, error) {
	op, ok := r.ops[id]
	if !ok {
		return nil, nil
	}
	return op, nil
}

func (r *memBatchRepo) UpdateOperation(_ context.Context, op *entity.BatchOperation) error {
	cp := *op
	r.ops[op.ID] = &cp
	return nil
}

func (r *memBatchRepo) CreateItem(_ context.Context, item *entity.BatchOperationItem) error {
	if r.itemsErr != nil {
		return r.itemsErr
	}
	r.rows = append(r.rows, item)
	return nil
}

func (r *memBatchRepo) ListItems(_ context.Context, batchID string) ([]*entity.BatchOperationItem, error) {
	var out []*entity.BatchOperationItem
	for _, row := range r.rows {
		if row.BatchID == batchID {
			out = append(out, row)
		}
	}
	return out, nil
}

// memTxRunner passes the in-memory repos straight through. failWith, when set,
// makes Run return that error before calling fn, simulating a broken begin.
type memTxRunner struct {
	invRepo      *memInventoryRepo
	saleRepo     *memSaleRepo
	customerRepo *memCustomerRepo
	orderRepo    *memPORepo
	failWith     error
}

func (r *memTxRunner) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	orderRepo repository.PurchaseOrderRepository,
) error) error {
	if r.failWith != nil {
		return r.failWith
	}
	return fn(r.invRepo, r.saleRepo, r.customerRepo, r.orderRepo)
}
