package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kaynetech/RetailRx/internal/domain/entity"
)

// SalesTotals aggregates checkout revenue over a window.
type SalesTotals struct {
	Transactions int
	Revenue      decimal.Decimal
}

// SaleRepository is the persistence port for point-of-sale transactions.
type SaleRepository interface {
	// Create persists the transaction header and its line items.
	Create(ctx context.Context, sale *entity.SaleTransaction) error
	GetByID(ctx context.Context, id string) (*entity.SaleTransaction, error)
	List(ctx context.Context, limit, offset int) ([]*entity.SaleTransaction, error)
	Totals(ctx context.Context, from, to time.Time) (SalesTotals, error)
}
