package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderItemRequest one ordered line.
type PurchaseOrderItemRequest struct {
	InventoryID string          `json:"inventory_id" validate:"required"`
	Quantity    int             `json:"quantity" validate:"min=1"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

// CreatePurchaseOrderRequest input to create a purchase order.
type CreatePurchaseOrderRequest struct {
	SupplierID   string                     `json:"supplier_id" validate:"required"`
	ExpectedDate *time.Time                 `json:"expected_date"`
	Notes        string                     `json:"notes"`
	Items        []PurchaseOrderItemRequest `json:"items" validate:"required,min=1"`
}

// PurchaseOrderItemResponse one ordered line.
type PurchaseOrderItemResponse struct {
	InventoryID string          `json:"inventory_id"`
	Name        string          `json:"name"`
	Quantity    int             `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// PurchaseOrderResponse output for one order.
type PurchaseOrderResponse struct {
	ID           string                      `json:"id"`
	PONumber     string                      `json:"po_number"`
	SupplierID   string                      `json:"supplier_id"`
	Status       string                      `json:"status"`
	ExpectedDate *time.Time                  `json:"expected_date,omitempty"`
	Notes        string                      `json:"notes,omitempty"`
	Total        decimal.Decimal             `json:"total"`
	Items        []PurchaseOrderItemResponse `json:"items,omitempty"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}

// PurchaseOrderListResponse paginated order list.
type PurchaseOrderListResponse struct {
	Items []PurchaseOrderResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// UpdatePOStatusRequest operator transition for an order.
type UpdatePOStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft submitted received cancelled"`
}
