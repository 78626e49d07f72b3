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

type stubPDF struct {
	calls int
}

func (g *stubPDF) Generate(_ *entity.PurchaseOrder, _ *entity.Supplier) ([]byte, error) {
	g.calls++
	return []byte("%PDF-1.4"), nil
}

func poFixture() (*PurchaseOrderUseCase, *memInventoryRepo, *memPORepo, *stubPDF) {
	invRepo := newMemInventoryRepo(
		&entity.InventoryItem{ID: "item-1", Name: "Metformin 850mg", Quantity: 5, CostPrice: decimal.NewFromFloat(3.20)},
		&entity.InventoryItem{ID: "item-2", Name: "Vitamin D3", Quantity: 0, CostPrice: decimal.NewFromFloat(1.10)},
	)
	supplierRepo := newMemSupplierRepo(&entity.Supplier{ID: "sup-1", Name: "MedSource Labs", Status: entity.SupplierActive})
	orderRepo := newMemPORepo()
	runner := &memTxRunner{invRepo: invRepo, saleRepo: &memSaleRepo{}, customerRepo: newMemCustomerRepo(), orderRepo: orderRepo}
	pdf := &stubPDF{}
	uc := NewPurchaseOrderUseCase(orderRepo, supplierRepo, invRepo, runner, pdf, logger.Nop())
	return uc, invRepo, orderRepo, pdf
}

func TestPurchaseOrderCreate_DraftWithTotals(t *testing.T) {
	uc, _, _, _ := poFixture()

	resp, err := uc.Create(context.Background(), dto.CreatePurchaseOrderRequest{
		SupplierID: "sup-1",
		Items: []dto.PurchaseOrderItemRequest{
			{InventoryID: "item-1", Quantity: 10, UnitCost: decimal.NewFromFloat(3.00)},
			{InventoryID: "item-2", Quantity: 20},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Regexp(t, `^PO-\d+-[0-9A-F]{9}$`, resp.PONumber)
	assert.Equal(t, entity.POStatusDraft, resp.Status)
	require.Len(t, resp.Items, 2)
	// second line falls back to the item's cost price
	assert.True(t, resp.Items[1].UnitCost.Equal(decimal.NewFromFloat(1.10)))
	assert.True(t, resp.Total.Equal(decimal.NewFromFloat(52.00)), "total %s", resp.Total)
}

func TestPurchaseOrderCreate_UnknownSupplier(t *testing.T) {
	uc, _, _, _ := poFixture()

	_, err := uc.Create(context.Background(), dto.CreatePurchaseOrderRequest{
		SupplierID: "nope",
		Items:      []dto.PurchaseOrderItemRequest{{InventoryID: "item-1", Quantity: 1}},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPurchaseOrderStatus_ReceiveRestocksInventory(t *testing.T) {
	uc, invRepo, orderRepo, _ := poFixture()

	created, err := uc.Create(context.Background(), dto.CreatePurchaseOrderRequest{
		SupplierID: "sup-1",
		Items:      []dto.PurchaseOrderItemRequest{{InventoryID: "item-2", Quantity: 30}},
	})
	require.NoError(t, err)

	_, err = uc.UpdateStatus(context.Background(), created.ID, entity.POStatusSubmitted)
	require.NoError(t, err)

	resp, err := uc.UpdateStatus(context.Background(), created.ID, entity.POStatusReceived)
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusReceived, resp.Status)
	assert.Equal(t, 30, invRepo.items["item-2"].Quantity)
	assert.Equal(t, entity.POStatusReceived, orderRepo.orders[created.ID].Status)
}

func TestPurchaseOrderStatus_DraftCannotBeReceived(t *testing.T) {
	uc, invRepo, _, _ := poFixture()

	created, err := uc.Create(context.Background(), dto.CreatePurchaseOrderRequest{
		SupplierID: "sup-1",
		Items:      []dto.PurchaseOrderItemRequest{{InventoryID: "item-1", Quantity: 5}},
	})
	require.NoError(t, err)

	_, err = uc.UpdateStatus(context.Background(), created.ID, entity.POStatusReceived)
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 5, invRepo.items["item-1"].Quantity, "stock untouched")
}

func TestPurchaseOrderStatus_ReceivedIsTerminal(t *testing.T) {
	uc, _, _, _ := poFixture()

	created, err := uc.Create(context.Background(), dto.CreatePurchaseOrderRequest{
		SupplierID: "sup-1",
		Items:      []dto.PurchaseOrderItemRequest{{InventoryID: "item-1", Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = uc.UpdateStatus(context.Background(), created.ID, entity.POStatusSubmitted)
	require.NoError(t, err)
	_, err = uc.UpdateStatus(context.Background(), created.ID, entity.POStatusReceived)
	require.NoError(t, err)

	_, err = uc.UpdateStatus(context.Background(), created.ID, entity.POStatusCancelled)
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestPurchaseOrderRenderPDF(t *testing.T) {
	uc, _, _, pdf := poFixture()

	created, err := uc.Create(context.Background(), dto.CreatePurchaseOrderRequest{
		SupplierID: "sup-1",
		Items:      []dto.PurchaseOrderItemRequest{{InventoryID: "item-1", Quantity: 2}},
	})
	require.NoError(t, err)

	doc, err := uc.RenderPDF(context.Background(), created.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, doc)
	assert.Equal(t, 1, pdf.calls)

	_, err = uc.RenderPDF(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
