package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kaynetech/RetailRx/internal/application/dto"
	"github.com/kaynetech/RetailRx/internal/domain"
	"github.com/kaynetech/RetailRx/internal/domain/entity"
	"github.com/kaynetech/RetailRx/internal/domain/repository"
	"github.com/kaynetech/RetailRx/pkg/logger"
)

// poStatusTransitions allowed state changes for a purchase order.
var poStatusTransitions = map[string][]string{
	entity.POStatusDraft:     {entity.POStatusSubmitted, entity.POStatusCancelled},
	entity.POStatusSubmitted: {entity.POStatusReceived, entity.POStatusCancelled},
}

// PurchaseOrderUseCase handles supplier purchase orders. Receiving an order
// restocks every line's inventory item in the same transaction as the status
// change.
type PurchaseOrderUseCase struct {
	orderRepo    repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	invRepo      repository.InventoryRepository
	txRunner     TxRunner
	pdf          PurchaseOrderPDFGenerator
	log          *logger.Logger
	now          func() time.Time
}

// NewPurchaseOrderUseCase builds the use case.
func NewPurchaseOrderUseCase(
	orderRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	invRepo repository.InventoryRepository,
	txRunner TxRunner,
	pdf PurchaseOrderPDFGenerator,
	log *logger.Logger,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		invRepo:      invRepo,
		txRunner:     txRunner,
		pdf:          pdf,
		log:          log,
		now:          time.Now,
	}
}

// Create registers a draft order with the given lines.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if in.SupplierID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.now()
	order := &entity.PurchaseOrder{
		ID:           uuid.New().String(),
		PONumber:     newOrderNumber(now),
		SupplierID:   in.SupplierID,
		Status:       entity.POStatusDraft,
		ExpectedDate: in.ExpectedDate,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	total := decimal.Zero
	for _, line := range in.Items {
		if line.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		item, err := uc.invRepo.GetByID(ctx, line.InventoryID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrNotFound
		}
		unitCost := line.UnitCost
		if unitCost.IsZero() {
			unitCost = item.CostPrice
		}
		lineTotal := unitCost.Mul(decimal.NewFromInt(int64(line.Quantity)))
		order.Items = append(order.Items, entity.PurchaseOrderItem{
			ID:          uuid.New().String(),
			OrderID:     order.ID,
			InventoryID: item.ID,
			Name:        item.Name,
			Quantity:    line.Quantity,
			UnitCost:    unitCost,
			LineTotal:   lineTotal,
		})
		total = total.Add(lineTotal)
	}
	order.Total = total

	if err := uc.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("po_number", order.PONumber).
		Str("supplier_id", order.SupplierID).
		Int("lines", len(order.Items)).
		Msg("purchase order created")
	return toPurchaseOrderResponse(order), nil
}

// GetByID returns one order with its lines, nil when missing.
func (uc *PurchaseOrderUseCase) GetByID(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	return toPurchaseOrderResponse(order), nil
}

// List returns orders, optionally filtered by status.
func (uc *PurchaseOrderUseCase) List(ctx context.Context, status string, limit, offset int) (*dto.PurchaseOrderListResponse, error) {
	orders, err := uc.orderRepo.List(ctx, status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseOrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, *toPurchaseOrderResponse(o))
	}
	return &dto.PurchaseOrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// UpdateStatus transitions an order. Moving to received restocks inventory:
// every line's quantity is added back atomically with the status change.
func (uc *PurchaseOrderUseCase) UpdateStatus(ctx context.Context, id, status string) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	if !poTransitionAllowed(order.Status, status) {
		return nil, domain.ErrConflict
	}

	if status == entity.POStatusReceived {
		err = uc.txRunner.Run(ctx, func(
			invRepo repository.InventoryRepository,
			_ repository.SaleRepository,
			_ repository.CustomerRepository,
			orderRepo repository.PurchaseOrderRepository,
		) error {
			for _, line := range order.Items {
				if err := invRepo.AdjustQuantity(ctx, line.InventoryID, line.Quantity); err != nil {
					return err
				}
			}
			return orderRepo.UpdateStatus(ctx, id, status)
		})
	} else {
		err = uc.orderRepo.UpdateStatus(ctx, id, status)
	}
	if err != nil {
		return nil, err
	}

	order.Status = status
	order.UpdatedAt = uc.now()
	uc.log.Info().
		Str("po_number", order.PONumber).
		Str("status", status).
		Msg("purchase order status updated")
	return toPurchaseOrderResponse(order), nil
}

// RenderPDF returns the printable document for an order.
func (uc *PurchaseOrderUseCase) RenderPDF(ctx context.Context, id string) ([]byte, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	supplier, err := uc.supplierRepo.GetByID(ctx, order.SupplierID)
	if err != nil {
		return nil, err
	}
	return uc.pdf.Generate(order, supplier)
}

func poTransitionAllowed(from, to string) bool {
	for _, allowed := range poStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// newOrderNumber builds a PO-<epoch millis>-<9 char suffix> reference.
func newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:9]
	return fmt.Sprintf("PO-%d-%s", now.UnixMilli(), suffix)
}

func toPurchaseOrderResponse(o *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	if o == nil {
		return nil
	}
	items := make([]dto.PurchaseOrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.PurchaseOrderItemResponse{
			InventoryID: it.InventoryID,
			Name:        it.Name,
			Quantity:    it.Quantity,
			UnitCost:    it.UnitCost,
			LineTotal:   it.LineTotal,
		})
	}
	return &dto.PurchaseOrderResponse{
		ID:           o.ID,
		PONumber:     o.PONumber,
		SupplierID:   o.SupplierID,
		Status:       o.Status,
		ExpectedDate: o.ExpectedDate,
		Notes:        o.Notes,
		Total:        o.Total,
		Items:        items,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}
