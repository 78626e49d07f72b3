package repository

import (
	"context"

	"github.com/kaynetech/RetailRx/internal/domain/entity"
)

// PurchaseOrderRepository is the persistence port for supplier purchase orders.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	// GetByID loads the order with its line items.
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	List(ctx context.Context, status string, limit, offset int) ([]*entity.PurchaseOrder, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
