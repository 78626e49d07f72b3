package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kaynetech/RetailRx/internal/application/dto"
	"github.com/kaynetech/RetailRx/internal/domain"
	"github.com/kaynetech/RetailRx/internal/domain/entity"
	"github.com/kaynetech/RetailRx/internal/domain/repository"
)

// ReorderUseCase manages reorder rules and the operator side of reorder
// history. Triggering lives in the monitor pipeline.
type ReorderUseCase struct {
	ruleRepo    repository.ReorderRuleRepository
	historyRepo repository.ReorderHistoryRepository
	invRepo     repository.InventoryRepository
}

// NewReorderUseCase builds the use case.
func NewReorderUseCase(
	ruleRepo repository.ReorderRuleRepository,
	historyRepo repository.ReorderHistoryRepository,
	invRepo repository.InventoryRepository,
) *ReorderUseCase {
	return &ReorderUseCase{ruleRepo: ruleRepo, historyRepo: historyRepo, invRepo: invRepo}
}

// CreateRule registers a per-item rule. One rule per item.
func (uc *ReorderUseCase) CreateRule(ctx context.Context, in dto.CreateReorderRuleRequest) (*dto.ReorderRuleResponse, error) {
	if in.ReorderPoint < 0 || in.ReorderQuantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.invRepo.GetByID(ctx, in.InventoryID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	existing, _ := uc.ruleRepo.GetByInventoryID(ctx, in.InventoryID)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	rule := &entity.ReorderRule{
		ID:              uuid.New().String(),
		InventoryID:     in.InventoryID,
		ReorderPoint:    in.ReorderPoint,
		ReorderQuantity: in.ReorderQuantity,
		AutoReorder:     in.AutoReorder,
		SupplierID:      in.SupplierID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.ruleRepo.Create(ctx, rule); err != nil {
		return nil, err
	}
	return toReorderRuleResponse(rule), nil
}

// ListRules returns rules, paginated.
func (uc *ReorderUseCase) ListRules(ctx context.Context, limit, offset int) (*dto.ReorderRuleListResponse, error) {
	list, err := uc.ruleRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReorderRuleResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toReorderRuleResponse(r))
	}
	return &dto.ReorderRuleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// UpdateRule applies partial changes to a rule.
func (uc *ReorderUseCase) UpdateRule(ctx context.Context, id string, in dto.UpdateReorderRuleRequest) (*dto.ReorderRuleResponse, error) {
	rule, err := uc.ruleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, nil
	}
	if in.ReorderPoint != nil {
		if *in.ReorderPoint < 0 {
			return nil, domain.ErrInvalidInput
		}
		rule.ReorderPoint = *in.ReorderPoint
	}
	if in.ReorderQuantity != nil {
		if *in.ReorderQuantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		rule.ReorderQuantity = *in.ReorderQuantity
	}
	if in.AutoReorder != nil {
		rule.AutoReorder = *in.AutoReorder
	}
	if in.SupplierID != nil {
		rule.SupplierID = *in.SupplierID
	}
	rule.UpdatedAt = time.Now()
	if err := uc.ruleRepo.Update(ctx, rule); err != nil {
		return nil, err
	}
	return toReorderRuleResponse(rule), nil
}

// ToggleAutoReorder flips the operator switch on a rule.
func (uc *ReorderUseCase) ToggleAutoReorder(ctx context.Context, id string) (*dto.ReorderRuleResponse, error) {
	rule, err := uc.ruleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, nil
	}
	rule.AutoReorder = !rule.AutoReorder
	rule.UpdatedAt = time.Now()
	if err := uc.ruleRepo.SetAutoReorder(ctx, id, rule.AutoReorder); err != nil {
		return nil, err
	}
	return toReorderRuleResponse(rule), nil
}

// DeleteRule removes a rule.
func (uc *ReorderUseCase) DeleteRule(ctx context.Context, id string) error {
	return uc.ruleRepo.Delete(ctx, id)
}

// ListHistory returns triggered reorder events, newest first.
func (uc *ReorderUseCase) ListHistory(ctx context.Context, limit, offset int) (*dto.ReorderHistoryListResponse, error) {
	list, err := uc.historyRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReorderHistoryResponse, 0, len(list))
	for _, h := range list {
		items = append(items, dto.ReorderHistoryResponse{
			ID:          h.ID,
			InventoryID: h.InventoryID,
			Quantity:    h.Quantity,
			Status:      h.Status,
			PONumber:    h.PONumber,
			CreatedAt:   h.CreatedAt,
			CompletedAt: h.CompletedAt,
		})
	}
	return &dto.ReorderHistoryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

var validReorderTransitions = map[string]bool{
	entity.ReorderStatusPending:   true,
	entity.ReorderStatusOrdered:   true,
	entity.ReorderStatusCompleted: true,
	entity.ReorderStatusCancelled: true,
}

// UpdateHistoryStatus advances an event (pending -> ordered -> completed or
// cancelled). Operator-driven; never reconciled automatically.
func (uc *ReorderUseCase) UpdateHistoryStatus(ctx context.Context, id string, in dto.UpdateReorderStatusRequest) error {
	if !validReorderTransitions[in.Status] {
		return domain.ErrInvalidInput
	}
	event, err := uc.historyRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if event == nil {
		return domain.ErrNotFound
	}
	return uc.historyRepo.UpdateStatus(ctx, id, in.Status)
}

func toReorderRuleResponse(r *entity.ReorderRule) *dto.ReorderRuleResponse {
	if r == nil {
		return nil
	}
	return &dto.ReorderRuleResponse{
		ID:              r.ID,
		InventoryID:     r.InventoryID,
		ReorderPoint:    r.ReorderPoint,
		ReorderQuantity: r.ReorderQuantity,
		AutoReorder:     r.AutoReorder,
		SupplierID:      r.SupplierID,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
