package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Batch operation types.
const (
	BatchOpPriceUpdate = "price_update"
	BatchOpRestock     = "restock"
)

// Batch operation and per-item states.
const (
	BatchStatusPending    = "pending"
	BatchStatusProcessing = "processing"
	BatchStatusCompleted  = "completed"

	BatchItemSuccess = "success"
	BatchItemFailed  = "failed"
)

// BatchOperation applies one change across many inventory items. Individual
// item failures are recorded per row and never abort the remaining items.
type BatchOperation struct {
	ID              string
	OperationType   string
	Category        string          // empty = all categories
	PriceAdjustment decimal.Decimal // percent, for price_update
	RestockAmount   int             // units, for restock
	Status          string
	TotalItems      int
	ProcessedItems  int
	FailedItems     int
	CreatedAt       time.Time
	CompletedAt     *time.Time
}

// BatchOperationItem is the outcome of a batch operation for one item.
type BatchOperationItem struct {
	ID           string
	BatchID      string
	InventoryID  string
	Status       string
	ErrorMessage string
}
