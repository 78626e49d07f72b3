package repository

import (
	"context"

	"github.com/kaynetech/RetailRx/internal/domain/entity"
)

// InventoryFilter narrows inventory listings. Zero values mean "no filter".
type InventoryFilter struct {
	Category   string
	LocationID string
	Search     string // matches name, sku or barcode
	Limit      int
	Offset     int
}

// InventoryRepository is the persistence port for inventory items.
// The monitor depends only on Snapshot; the write methods serve the CRUD,
// POS and batch flows.
type InventoryRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	GetBySKU(ctx context.Context, sku string) (*entity.InventoryItem, error)
	List(ctx context.Context, filter InventoryFilter) ([]*entity.InventoryItem, error)
	// Snapshot returns every row; the evaluation tick reads this once per pass.
	Snapshot(ctx context.Context) ([]*entity.InventoryItem, error)
	Update(ctx context.Context, item *entity.InventoryItem) error
	// AdjustQuantity applies a signed delta, failing with ErrInsufficientStock
	// when a decrement would drive the quantity negative.
	AdjustQuantity(ctx context.Context, id string, delta int) error
	Delete(ctx context.Context, id string) error
}
