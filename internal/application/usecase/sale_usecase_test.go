package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaynetech/RetailRx/internal/application/dto"
	"github.com/kaynetech/RetailRx/internal/domain"
	"github.com/kaynetech/RetailRx/internal/domain/entity"
	"github.com/kaynetech/RetailRx/pkg/logger"
)

func saleFixture() (*SaleUseCase, *memInventoryRepo, *memSaleRepo, *memCustomerRepo) {
	invRepo := newMemInventoryRepo(
		&entity.InventoryItem{ID: "item-1", Name: "Amoxicillin 500mg", SKU: "AMX-500", Quantity: 50, SellingPrice: decimal.NewFromFloat(12.50)},
		&entity.InventoryItem{ID: "item-2", Name: "Ibuprofen 200mg", SKU: "IBU-200", Quantity: 3, SellingPrice: decimal.NewFromFloat(5.00)},
	)
	saleRepo := &memSaleRepo{}
	customerRepo := newMemCustomerRepo()
	runner := &memTxRunner{invRepo: invRepo, saleRepo: saleRepo, customerRepo: customerRepo, orderRepo: newMemPORepo()}
	uc := NewSaleUseCase(saleRepo, runner, logger.Nop())
	return uc, invRepo, saleRepo, customerRepo
}

func TestCheckout_DecrementsStockAndTotals(t *testing.T) {
	uc, invRepo, saleRepo, _ := saleFixture()

	resp, err := uc.Checkout(context.Background(), dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{InventoryID: "item-1", Quantity: 4}},
		PaymentMethod: "cash",
		CashierName:   "Dana",
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Regexp(t, `^TXN-\d+$`, resp.TransactionNumber)
	assert.Equal(t, entity.SaleCompleted, resp.Status)
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromFloat(50.00)), "subtotal %s", resp.Subtotal)
	assert.True(t, resp.Tax.Equal(decimal.NewFromFloat(4.00)), "tax %s", resp.Tax)
	assert.True(t, resp.Total.Equal(decimal.NewFromFloat(54.00)), "total %s", resp.Total)

	assert.Equal(t, 46, invRepo.items["item-1"].Quantity)
	require.Len(t, saleRepo.sales, 1)
	assert.Len(t, saleRepo.sales[0].Items, 1)
}

func TestCheckout_InsufficientStockFailsSale(t *testing.T) {
	uc, _, saleRepo, _ := saleFixture()

	_, err := uc.Checkout(context.Background(), dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{InventoryID: "item-2", Quantity: 10}},
		PaymentMethod: "cash",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, saleRepo.sales, "no transaction may be recorded")
}

func TestCheckout_UnknownItem(t *testing.T) {
	uc, _, _, _ := saleFixture()

	_, err := uc.Checkout(context.Background(), dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{InventoryID: "missing", Quantity: 1}},
		PaymentMethod: "card",
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCheckout_EmptyCartRejected(t *testing.T) {
	uc, _, _, _ := saleFixture()

	_, err := uc.Checkout(context.Background(), dto.CreateSaleRequest{PaymentMethod: "cash"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCheckout_AccruesLoyaltyPoints(t *testing.T) {
	uc, _, _, customerRepo := saleFixture()

	resp, err := uc.Checkout(context.Background(), dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{InventoryID: "item-1", Quantity: 2}},
		PaymentMethod: "card",
		CustomerID:    "cust-9",
	})
	require.NoError(t, err)

	// 25.00 + 2.00 tax = 27.00 -> 27 points
	assert.Equal(t, int(resp.Total.IntPart()), customerRepo.points["cust-9"])
}

func TestCheckout_DiscountAppliedToTotal(t *testing.T) {
	uc, _, _, _ := saleFixture()

	resp, err := uc.Checkout(context.Background(), dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{InventoryID: "item-1", Quantity: 4}},
		Discount:      decimal.NewFromFloat(10.00),
		PaymentMethod: "cash",
	})
	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(decimal.NewFromFloat(44.00)), "total %s", resp.Total)
}
