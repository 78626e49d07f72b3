package repository

import (
	"context"

	"github.com/kaynetech/RetailRx/internal/domain/entity"
)

// BatchRepository is the persistence port for batch operations and their
// per-item outcome rows.
type BatchRepository interface {
	CreateOperation(ctx context.Context, op *entity.BatchOperation) error
	GetOperation(ctx context.Context, id string) (*entity.BatchOperation, error)
	ListOperations(ctx context.Context, limit, offset int) ([]*entity.BatchOperation, error)
	UpdateOperation(ctx context.Context, op *entity.BatchOperation) error
	CreateItem(ctx context.Context, item *entity.BatchOperationItem) error
	ListItems(ctx context.Context, batchID string) ([]*entity.BatchOperationItem, error)
}
