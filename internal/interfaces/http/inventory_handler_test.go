package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaynetech/RetailRx/internal/application/dto"
	"github.com/kaynetech/RetailRx/internal/application/usecase"
	"github.com/kaynetech/RetailRx/internal/domain"
	"github.com/kaynetech/RetailRx/internal/domain/entity"
	"github.com/kaynetech/RetailRx/internal/domain/repository"
	apphttp "github.com/kaynetech/RetailRx/internal/interfaces/http"
)

// fakeInventoryRepo in-memory stand-in for the postgres adapter.
type fakeInventoryRepo struct {
	items map[string]*entity.InventoryItem
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{items: map[string]*entity.InventoryItem{}}
}

func (f *fakeInventoryRepo) Create(_ context.Context, item *entity.InventoryItem) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeInventoryRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	return f.items[id], nil
}

func (f *fakeInventoryRepo) GetBySKU(_ context.Context, sku string) (*entity.InventoryItem, error) {
	for _, it := range f.items {
		if it.SKU == sku {
			return it, nil
		}
	}
	return nil, nil
}

func (f *fakeInventoryRepo) List(_ context.Context, filter repository.InventoryFilter) ([]*entity.InventoryItem, error) {
	out := make([]*entity.InventoryItem, 0, len(f.items))
	for _, it := range f.items {
		if filter.Category != "" && it.Category != filter.Category {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (f *fakeInventoryRepo) Snapshot(_ context.Context) ([]*entity.InventoryItem, error) {
	return f.List(context.Background(), repository.InventoryFilter{})
}

func (f *fakeInventoryRepo) Update(_ context.Context, item *entity.InventoryItem) error {
	if _, ok := f.items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	f.items[item.ID] = item
	return nil
}

func (f *fakeInventoryRepo) AdjustQuantity(_ context.Context, id string, delta int) error {
	it, ok := f.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	if it.Quantity+delta < 0 {
		return domain.ErrInsufficientStock
	}
	it.Quantity += delta
	return nil
}

func (f *fakeInventoryRepo) Delete(_ context.Context, id string) error {
	delete(f.items, id)
	return nil
}

func buildInventoryApp(repo repository.InventoryRepository) *fiber.App {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		InventoryUC: usecase.NewInventoryUseCase(repo),
	})
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(fiber.MethodPost, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestInventoryCreateAndGet(t *testing.T) {
	repo := newFakeInventoryRepo()
	app := buildInventoryApp(repo)

	resp := postJSON(t, app, "/api/inventory", dto.CreateInventoryItemRequest{
		Name:         "Amoxicillin 500mg",
		Category:     entity.CategoryPrescription,
		SKU:          "RX-AMOX-500",
		Quantity:     120,
		CostPrice:    decimal.NewFromFloat(4.50),
		SellingPrice: decimal.NewFromFloat(12.99),
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created dto.InventoryItemResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, entity.DefaultReorderLevel, created.ReorderLevel)
	assert.Equal(t, "unit", created.Unit)

	req := httptest.NewRequest(fiber.MethodGet, "/api/inventory/"+created.ID, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got dto.InventoryItemResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "Amoxicillin 500mg", got.Name)
	assert.Equal(t, 120, got.Quantity)
}

func TestInventoryCreateRejectsBadCategory(t *testing.T) {
	app := buildInventoryApp(newFakeInventoryRepo())

	resp := postJSON(t, app, "/api/inventory", dto.CreateInventoryItemRequest{
		Name:     "Mystery Box",
		Category: "toys",
		SKU:      "TOY-1",
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "VALIDATION", body.Code)
}

func TestInventoryCreateRejectsDuplicateSKU(t *testing.T) {
	repo := newFakeInventoryRepo()
	app := buildInventoryApp(repo)

	in := dto.CreateInventoryItemRequest{
		Name:     "Ibuprofen 200mg",
		Category: entity.CategoryOTC,
		SKU:      "OTC-IBU-200",
	}
	resp := postJSON(t, app, "/api/inventory", in)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/api/inventory", in)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestInventoryAdjustQuantity(t *testing.T) {
	repo := newFakeInventoryRepo()
	now := time.Now()
	repo.items["item-1"] = &entity.InventoryItem{
		ID:        "item-1",
		Name:      "Vitamin C 1000mg",
		Category:  entity.CategorySupplement,
		SKU:       "SUP-VITC",
		Quantity:  5,
		Unit:      "bottle",
		CreatedAt: now,
		UpdatedAt: now,
	}
	app := buildInventoryApp(repo)

	resp := postJSON(t, app, "/api/inventory/item-1/adjust", dto.AdjustQuantityRequest{Delta: 20, Reason: "restock"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got dto.InventoryItemResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, 25, got.Quantity)

	// draining below zero is rejected and leaves stock untouched
	resp = postJSON(t, app, "/api/inventory/item-1/adjust", dto.AdjustQuantityRequest{Delta: -100})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, 25, repo.items["item-1"].Quantity)
}

func TestInventoryGetUnknownReturns404(t *testing.T) {
	app := buildInventoryApp(newFakeInventoryRepo())

	req := httptest.NewRequest(fiber.MethodGet, "/api/inventory/nope", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
