package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInventoryItemRequest input to create an inventory item.
type CreateInventoryItemRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Category     string          `json:"category" validate:"required"`
	SKU          string          `json:"sku" validate:"required,min=1,max=100"`
	Barcode      string          `json:"barcode"`
	BatchNumber  string          `json:"batch_number"`
	Quantity     int             `json:"quantity" validate:"min=0"`
	Unit         string          `json:"unit"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	SupplierID   string          `json:"supplier_id"`
	LocationID   string          `json:"location_id"`
	ExpiryDate   *time.Time      `json:"expiry_date"`
	ReorderLevel int             `json:"reorder_level"`
	Description  string          `json:"description"`
}

// UpdateInventoryItemRequest input to update an item. Quantity is excluded;
// it changes through sales, restocks and adjustments only.
type UpdateInventoryItemRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category     *string          `json:"category"`
	Barcode      *string          `json:"barcode"`
	BatchNumber  *string          `json:"batch_number"`
	Unit         *string          `json:"unit"`
	CostPrice    *decimal.Decimal `json:"cost_price"`
	SellingPrice *decimal.Decimal `json:"selling_price"`
	SupplierID   *string          `json:"supplier_id"`
	LocationID   *string          `json:"location_id"`
	ExpiryDate   *time.Time       `json:"expiry_date"`
	ReorderLevel *int             `json:"reorder_level"`
	Description  *string          `json:"description"`
}

// AdjustQuantityRequest signed stock adjustment (restock or shrinkage).
type AdjustQuantityRequest struct {
	Delta  int    `json:"delta" validate:"required"`
	Reason string `json:"reason"`
}

// InventoryItemResponse output for one item.
type InventoryItemResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	SKU          string          `json:"sku"`
	Barcode      string          `json:"barcode,omitempty"`
	BatchNumber  string          `json:"batch_number,omitempty"`
	Quantity     int             `json:"quantity"`
	Unit         string          `json:"unit"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	SupplierID   string          `json:"supplier_id,omitempty"`
	LocationID   string          `json:"location_id,omitempty"`
	ExpiryDate   *time.Time      `json:"expiry_date,omitempty"`
	ReorderLevel int             `json:"reorder_level"`
	Description  string          `json:"description,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// InventoryListResponse paginated item list.
type InventoryListResponse struct {
	Items []InventoryItemResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
