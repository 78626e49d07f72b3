package repository

import (
	"context"

	"github.com/kaynetech/RetailRx/internal/domain/entity"
)

// CustomerRepository is the persistence port for customers.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	List(ctx context.Context, search string, limit, offset int) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	AddLoyaltyPoints(ctx context.Context, id string, points int) error
	Delete(ctx context.Context, id string) error
}
