package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase order states.
const (
	POStatusDraft     = "draft"
	POStatusSubmitted = "submitted"
	POStatusReceived  = "received"
	POStatusCancelled = "cancelled"
)

// PurchaseOrder is an order placed with a supplier. Receiving one restocks the
// referenced inventory items.
type PurchaseOrder struct {
	ID           string
	PONumber     string
	SupplierID   string
	Status       string
	ExpectedDate *time.Time
	Notes        string
	Total        decimal.Decimal
	Items        []PurchaseOrderItem
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PurchaseOrderItem is one line of a purchase order.
type PurchaseOrderItem struct {
	ID          string
	OrderID     string
	InventoryID string
	Name        string
	Quantity    int
	UnitCost    decimal.Decimal
	LineTotal   decimal.Decimal
}
