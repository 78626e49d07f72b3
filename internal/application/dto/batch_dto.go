package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBatchOperationRequest input to launch a batch operation.
type CreateBatchOperationRequest struct {
	OperationType   string          `json:"operation_type" validate:"required,oneof=price_update restock"`
	Category        string          `json:"category"` // empty = all categories
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
	RestockAmount   int             `json:"restock_amount"`
}

// BatchOperationResponse output for one batch operation.
type BatchOperationResponse struct {
	ID              string          `json:"id"`
	OperationType   string          `json:"operation_type"`
	Category        string          `json:"category,omitempty"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
	RestockAmount   int             `json:"restock_amount"`
	Status          string          `json:"status"`
	TotalItems      int             `json:"total_items"`
	ProcessedItems  int             `json:"processed_items"`
	FailedItems     int             `json:"failed_items"`
	CreatedAt       time.Time       `json:"created_at"`
	CompletedAt     *time.Time      `json:"completed_at,omitempty"`
}

// BatchOperationItemResponse per-item outcome.
type BatchOperationItemResponse struct {
	InventoryID  string `json:"inventory_id"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// BatchOperationListResponse paginated operation list.
type BatchOperationListResponse struct {
	Items []BatchOperationResponse `json:"items"`
	Page  PageResponse             `json:"page"`
}
