package entity

import "time"

// Reorder history states. A row is created as pending by the reorder engine and
// advanced manually by an operator; the engine never reconciles with deliveries.
const (
	ReorderStatusPending   = "pending"
	ReorderStatusOrdered   = "ordered"
	ReorderStatusCompleted = "completed"
	ReorderStatusCancelled = "cancelled"
)

// ReorderRule is the per-item reorder configuration. When AutoReorder is on and
// the item's quantity falls to ReorderPoint or below, the engine records intent
// to reorder ReorderQuantity units.
type ReorderRule struct {
	ID              string
	InventoryID     string
	ReorderPoint    int
	ReorderQuantity int
	AutoReorder     bool
	SupplierID      string // optional
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ReorderHistory is one triggered reorder event. It records intent only; no
// supplier is contacted and no stock is mutated.
type ReorderHistory struct {
	ID          string
	InventoryID string
	Quantity    int
	Status      string
	PONumber    string
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// InFlight reports whether the event still blocks a new reorder for its item.
func (h *ReorderHistory) InFlight() bool {
	return h.Status == ReorderStatusPending || h.Status == ReorderStatusOrdered
}
