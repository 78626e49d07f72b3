package repository

import (
	"context"

	"github.com/kaynetech/RetailRx/internal/domain/entity"
)

// ReorderRuleRepository is the persistence port for per-item reorder rules.
type ReorderRuleRepository interface {
	Create(ctx context.Context, rule *entity.ReorderRule) error
	GetByID(ctx context.Context, id string) (*entity.ReorderRule, error)
	GetByInventoryID(ctx context.Context, inventoryID string) (*entity.ReorderRule, error)
	List(ctx context.Context, limit, offset int) ([]*entity.ReorderRule, error)
	// ListActive returns only rules with auto_reorder enabled; the engine
	// evaluates exactly this set.
	ListActive(ctx context.Context) ([]*entity.ReorderRule, error)
	Update(ctx context.Context, rule *entity.ReorderRule) error
	SetAutoReorder(ctx context.Context, id string, enabled bool) error
	Delete(ctx context.Context, id string) error
}

// ReorderHistoryRepository is the persistence port for triggered reorder events.
type ReorderHistoryRepository interface {
	Create(ctx context.Context, event *entity.ReorderHistory) error
	GetByID(ctx context.Context, id string) (*entity.ReorderHistory, error)
	List(ctx context.Context, limit, offset int) ([]*entity.ReorderHistory, error)
	// HasInFlight reports whether a pending or ordered event exists for the
	// item. The engine checks this before creating a new event so overlapping
	// ticks cannot stack reorders.
	HasInFlight(ctx context.Context, inventoryID string) (bool, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
