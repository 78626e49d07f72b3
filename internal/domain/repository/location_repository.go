package repository

import (
	"context"

	"github.com/kaynetech/RetailRx/internal/domain/entity"
)

// LocationRepository is the persistence port for stocking locations.
type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	List(ctx context.Context) ([]*entity.Location, error)
}
