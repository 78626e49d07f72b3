package repository

import (
	"context"

	"github.com/kaynetech/RetailRx/internal/domain/entity"
)

// PrescriptionFilter narrows prescription listings.
type PrescriptionFilter struct {
	CustomerID string
	Status     string
	Limit      int
	Offset     int
}

// RefillFilter narrows refill-request listings.
type RefillFilter struct {
	PrescriptionID string
	CustomerID     string
	Status         string
	Limit          int
	Offset         int
}

// PrescriptionRepository is the persistence port for prescriptions on file.
type PrescriptionRepository interface {
	Create(ctx context.Context, p *entity.Prescription) error
	GetByID(ctx context.Context, id string) (*entity.Prescription, error)
	List(ctx context.Context, filter PrescriptionFilter) ([]*entity.Prescription, error)
	Update(ctx context.Context, p *entity.Prescription) error
}

// RefillRepository is the persistence port for refill requests.
type RefillRepository interface {
	Create(ctx context.Context, r *entity.RefillRequest) error
	GetByID(ctx context.Context, id string) (*entity.RefillRequest, error)
	List(ctx context.Context, filter RefillFilter) ([]*entity.RefillRequest, error)
	Update(ctx context.Context, r *entity.RefillRequest) error
}
