package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kaynetech/RetailRx/internal/application/dto"
	"github.com/kaynetech/RetailRx/internal/domain"
	"github.com/kaynetech/RetailRx/internal/domain/entity"
	"github.com/kaynetech/RetailRx/internal/domain/repository"
	"github.com/kaynetech/RetailRx/pkg/logger"
)

// taxRate applied to every checkout subtotal.
var taxRate = decimal.NewFromFloat(0.08)

// SaleUseCase handles point-of-sale checkouts. Stock decrements and the sale
// record commit in the same transaction, so a failed line leaves no partial
// movement behind.
type SaleUseCase struct {
	saleRepo repository.SaleRepository
	txRunner TxRunner
	log      *logger.Logger
	now      func() time.Time
}

// NewSaleUseCase builds the use case.
func NewSaleUseCase(saleRepo repository.SaleRepository, txRunner TxRunner, log *logger.Logger) *SaleUseCase {
	return &SaleUseCase{
		saleRepo: saleRepo,
		txRunner: txRunner,
		log:      log,
		now:      time.Now,
	}
}

// Checkout registers a sale: validates the cart, decrements stock per line and
// persists the transaction atomically. Loyalty points accrue when a customer
// is attached, one point per whole currency unit of the total.
func (uc *SaleUseCase) Checkout(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 || in.PaymentMethod == "" {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Items {
		if line.InventoryID == "" || line.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}
	if in.Discount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	now := uc.now()
	sale := &entity.SaleTransaction{
		ID:                uuid.New().String(),
		TransactionNumber: fmt.Sprintf("TXN-%d", now.UnixMilli()),
		PaymentMethod:     in.PaymentMethod,
		CashierName:       in.CashierName,
		CustomerName:      in.CustomerName,
		CustomerPhone:     in.CustomerPhone,
		Notes:             in.Notes,
		Status:            entity.SaleCompleted,
		CreatedAt:         now,
	}

	err := uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		saleRepo repository.SaleRepository,
		customerRepo repository.CustomerRepository,
		_ repository.PurchaseOrderRepository,
	) error {
		subtotal := decimal.Zero
		for _, line := range in.Items {
			item, err := invRepo.GetByID(ctx, line.InventoryID)
			if err != nil {
				return err
			}
			if item == nil {
				return domain.ErrNotFound
			}
			if err := invRepo.AdjustQuantity(ctx, item.ID, -line.Quantity); err != nil {
				return err
			}
			lineTotal := item.SellingPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
			sale.Items = append(sale.Items, entity.SaleItem{
				ID:          uuid.New().String(),
				SaleID:      sale.ID,
				InventoryID: item.ID,
				Name:        item.Name,
				Quantity:    line.Quantity,
				UnitPrice:   item.SellingPrice,
				LineTotal:   lineTotal,
			})
			subtotal = subtotal.Add(lineTotal)
		}

		sale.Subtotal = subtotal
		sale.Tax = subtotal.Mul(taxRate).Round(2)
		sale.Discount = in.Discount
		sale.Total = subtotal.Add(sale.Tax).Sub(in.Discount)
		if sale.Total.IsNegative() {
			return domain.ErrInvalidInput
		}

		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		if in.CustomerID != "" {
			points := int(sale.Total.IntPart())
			if points > 0 {
				if err := customerRepo.AddLoyaltyPoints(ctx, in.CustomerID, points); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("transaction_number", sale.TransactionNumber).
		Int("lines", len(sale.Items)).
		Str("total", sale.Total.String()).
		Msg("sale completed")
	return toSaleResponse(sale), nil
}

// GetByID returns one transaction, nil when missing.
func (uc *SaleUseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, nil
	}
	return toSaleResponse(sale), nil
}

// List returns recent transactions, newest first.
func (uc *SaleUseCase) List(ctx context.Context, limit, offset int) (*dto.SaleListResponse, error) {
	sales, err := uc.saleRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		items = append(items, *toSaleResponse(s))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toSaleResponse(s *entity.SaleTransaction) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.SaleItemResponse{
			InventoryID: it.InventoryID,
			Name:        it.Name,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal,
		})
	}
	return &dto.SaleResponse{
		ID:                s.ID,
		TransactionNumber: s.TransactionNumber,
		Items:             items,
		Subtotal:          s.Subtotal,
		Tax:               s.Tax,
		Discount:          s.Discount,
		Total:             s.Total,
		PaymentMethod:     s.PaymentMethod,
		CashierName:       s.CashierName,
		CustomerName:      s.CustomerName,
		Status:            s.Status,
		CreatedAt:         s.CreatedAt,
	}
}
