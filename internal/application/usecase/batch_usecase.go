package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kaynetech/RetailRx/internal/application/dto"
	"github.com/kaynetech/RetailRx/internal/domain"
	"github.com/kaynetech/RetailRx/internal/domain/entity"
	"github.com/kaynetech/RetailRx/internal/domain/repository"
	"github.com/kaynetech/RetailRx/pkg/logger"
)

var oneHundred = decimal.NewFromInt(100)

// BatchUseCase applies one change across every matching inventory item.
// A failing item is recorded and skipped; the remaining items still run.
type BatchUseCase struct {
	batchRepo repository.BatchRepository
	invRepo   repository.InventoryRepository
	log       *logger.Logger
	now       func() time.Time
}

// NewBatchUseCase builds the use case.
func NewBatchUseCase(batchRepo repository.BatchRepository, invRepo repository.InventoryRepository, log *logger.Logger) *BatchUseCase {
	return &BatchUseCase{
		batchRepo: batchRepo,
		invRepo:   invRepo,
		log:       log,
		now:       time.Now,
	}
}

// Run executes a batch operation synchronously and returns the final counts.
func (uc *BatchUseCase) Run(ctx context.Context, in dto.CreateBatchOperationRequest) (*dto.BatchOperationResponse, error) {
	switch in.OperationType {
	case entity.BatchOpPriceUpdate:
		if in.PriceAdjustment.IsZero() {
			return nil, domain.ErrInvalidInput
		}
	case entity.BatchOpRestock:
		if in.RestockAmount <= 0 {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	items, err := uc.invRepo.List(ctx, repository.InventoryFilter{Category: in.Category})
	if err != nil {
		return nil, err
	}

	now := uc.now()
	op := &entity.BatchOperation{
		ID:              uuid.New().String(),
		OperationType:   in.OperationType,
		Category:        in.Category,
		PriceAdjustment: in.PriceAdjustment,
		RestockAmount:   in.RestockAmount,
		Status:          entity.BatchStatusProcessing,
		TotalItems:      len(items),
		CreatedAt:       now,
	}
	if err := uc.batchRepo.CreateOperation(ctx, op); err != nil {
		return nil, err
	}

	for _, item := range items {
		row := &entity.BatchOperationItem{
			ID:          uuid.New().String(),
			BatchID:     op.ID,
			InventoryID: item.ID,
			Status:      entity.BatchItemSuccess,
		}
		if err := uc.applyToItem(ctx, op, item); err != nil {
			row.Status = entity.BatchItemFailed
			row.ErrorMessage = err.Error()
			op.FailedItems++
			uc.log.Warn().Err(err).
				Str("batch_id", op.ID).
				Str("inventory_id", item.ID).
				Msg("batch item failed")
		} else {
			op.ProcessedItems++
		}
		if err := uc.batchRepo.CreateItem(ctx, row); err != nil {
			uc.log.Error().Err(err).Str("batch_id", op.ID).Msg("batch item record")
		}
	}

	completed := uc.now()
	op.Status = entity.BatchStatusCompleted
	op.CompletedAt = &completed
	if err := uc.batchRepo.UpdateOperation(ctx, op); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("batch_id", op.ID).
		Str("operation", op.OperationType).
		Int("processed", op.ProcessedItems).
		Int("failed", op.FailedItems).
		Msg("batch operation completed")
	return toBatchOperationResponse(op), nil
}

func (uc *BatchUseCase) applyToItem(ctx context.Context, op *entity.BatchOperation, item *entity.InventoryItem) error {
	switch op.OperationType {
	case entity.BatchOpPriceUpdate:
		factor := decimal.NewFromInt(1).Add(op.PriceAdjustment.Div(oneHundred))
		item.SellingPrice = item.SellingPrice.Mul(factor).Round(2)
		if item.SellingPrice.IsNegative() {
			return domain.ErrInvalidInput
		}
		item.UpdatedAt = uc.now()
		return uc.invRepo.Update(ctx, item)
	case entity.BatchOpRestock:
		return uc.invRepo.AdjustQuantity(ctx, item.ID, op.RestockAmount)
	}
	return domain.ErrInvalidInput
}

// GetOperation returns one operation, nil when missing.
func (uc *BatchUseCase) GetOperation(ctx context.Context, id string) (*dto.BatchOperationResponse, error) {
	op, err := uc.batchRepo.GetOperation(ctx, id)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, nil
	}
	return toBatchOperationResponse(op), nil
}

// ListOperations returns recent operations, newest first.
func (uc *BatchUseCase) ListOperations(ctx context.Context, limit, offset int) (*dto.BatchOperationListResponse, error) {
	ops, err := uc.batchRepo.ListOperations(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BatchOperationResponse, 0, len(ops))
	for _, op := range ops {
		items = append(items, *toBatchOperationResponse(op))
	}
	return &dto.BatchOperationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListItems returns the per-item outcomes of one operation.
func (uc *BatchUseCase) ListItems(ctx context.Context, batchID string) ([]dto.BatchOperationItemResponse, error) {
	rows, err := uc.batchRepo.ListItems(ctx, batchID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BatchOperationItemResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.BatchOperationItemResponse{
			InventoryID:  r.InventoryID,
			Status:       r.Status,
			ErrorMessage: r.ErrorMessage,
		})
	}
	return out, nil
}

func toBatchOperationResponse(op *entity.BatchOperation) *dto.BatchOperationResponse {
	if op == nil {
		return nil
	}
	return &dto.BatchOperationResponse{
		ID:              op.ID,
		OperationType:   op.OperationType,
		Category:        op.Category,
		PriceAdjustment: op.PriceAdjustment,
		RestockAmount:   op.RestockAmount,
		Status:          op.Status,
		TotalItems:      op.TotalItems,
		ProcessedItems:  op.ProcessedItems,
		FailedItems:     op.FailedItems,
		CreatedAt:       op.CreatedAt,
		CompletedAt:     op.CompletedAt,
	}
}
