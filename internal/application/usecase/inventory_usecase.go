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

// InventoryUseCase CRUD use cases for inventory items. Quantity changes go
// through AdjustQuantity (or the POS/batch flows), never through Update.
type InventoryUseCase struct {
	repo repository.InventoryRepository
}

// NewInventoryUseCase builds the use case.
func NewInventoryUseCase(repo repository.InventoryRepository) *InventoryUseCase {
	return &InventoryUseCase{repo: repo}
}

var validCategories = map[string]bool{
	entity.CategoryPrescription: true,
	entity.CategoryOTC:          true,
	entity.CategorySupplement:   true,
	entity.CategoryRetail:       true,
}

// Create registers a new inventory item. SKU must be unique.
func (uc *InventoryUseCase) Create(ctx context.Context, in dto.CreateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	if !validCategories[in.Category] {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetBySKU(ctx, in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.Unit == "" {
		in.Unit = "unit"
	}
	if in.ReorderLevel <= 0 {
		in.ReorderLevel = entity.DefaultReorderLevel
	}
	now := time.Now()
	item := &entity.InventoryItem{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Category:     in.Category,
		SKU:          in.SKU,
		Barcode:      in.Barcode,
		BatchNumber:  in.BatchNumber,
		Quantity:     in.Quantity,
		Unit:         in.Unit,
		CostPrice:    in.CostPrice,
		SellingPrice: in.SellingPrice,
		SupplierID:   in.SupplierID,
		LocationID:   in.LocationID,
		ExpiryDate:   in.ExpiryDate,
		ReorderLevel: in.ReorderLevel,
		Description:  in.Description,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return toInventoryItemResponse(item), nil
}

// GetByID returns one item, nil when missing.
func (uc *InventoryUseCase) GetByID(ctx context.Context, id string) (*dto.InventoryItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return toInventoryItemResponse(item), nil
}

// List returns items matching the filter, paginated.
func (uc *InventoryUseCase) List(ctx context.Context, filter repository.InventoryFilter) (*dto.InventoryListResponse, error) {
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toInventoryItemResponse(it))
	}
	return &dto.InventoryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// Update applies partial changes. Quantity is excluded on purpose.
func (uc *InventoryUseCase) Update(ctx context.Context, id string, in dto.UpdateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Category != nil {
		if !validCategories[*in.Category] {
			return nil, domain.ErrInvalidInput
		}
		item.Category = *in.Category
	}
	if in.Barcode != nil {
		item.Barcode = *in.Barcode
	}
	if in.BatchNumber != nil {
		item.BatchNumber = *in.BatchNumber
	}
	if in.Unit != nil {
		item.Unit = *in.Unit
	}
	if in.CostPrice != nil {
		item.CostPrice = *in.CostPrice
	}
	if in.SellingPrice != nil {
		item.SellingPrice = *in.SellingPrice
	}
	if in.SupplierID != nil {
		item.SupplierID = *in.SupplierID
	}
	if in.LocationID != nil {
		item.LocationID = *in.LocationID
	}
	if in.ExpiryDate != nil {
		item.ExpiryDate = in.ExpiryDate
	}
	if in.ReorderLevel != nil {
		item.ReorderLevel = *in.ReorderLevel
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return toInventoryItemResponse(item), nil
}

// AdjustQuantity applies a signed stock delta (restock or shrinkage).
func (uc *InventoryUseCase) AdjustQuantity(ctx context.Context, id string, in dto.AdjustQuantityRequest) (*dto.InventoryItemResponse, error) {
	if in.Delta == 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.AdjustQuantity(ctx, id, in.Delta); err != nil {
		return nil, err
	}
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toInventoryItemResponse(item), nil
}

// Delete removes an item.
func (uc *InventoryUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toInventoryItemResponse(i *entity.InventoryItem) *dto.InventoryItemResponse {
	if i == nil {
		return nil
	}
	return &dto.InventoryItemResponse{
		ID:           i.ID,
		Name:         i.Name,
		Category:     i.Category,
		SKU:          i.SKU,
		Barcode:      i.Barcode,
		BatchNumber:  i.BatchNumber,
		Quantity:     i.Quantity,
		Unit:         i.Unit,
		CostPrice:    i.CostPrice,
		SellingPrice: i.SellingPrice,
		SupplierID:   i.SupplierID,
		LocationID:   i.LocationID,
		ExpiryDate:   i.ExpiryDate,
		ReorderLevel: i.ReorderLevel,
		Description:  i.Description,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}
