package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item categories carried by the pharmacy catalog.
const (
	CategoryPrescription = "prescription"
	CategoryOTC          = "otc"
	CategorySupplement   = "supplement"
	CategoryRetail       = "retail"
)

// DefaultReorderLevel applies when an item is created without an explicit level.
const DefaultReorderLevel = 10

// InventoryItem is a stocked pharmacy product. Quantity is mutated by sales
// (decrement), restocking (increment) and batch operations; the monitor only
// reads it.
type InventoryItem struct {
	ID           string
	Name         string
	Category     string
	SKU          string
	Barcode      string
	BatchNumber  string
	Quantity     int
	Unit         string
	CostPrice    decimal.Decimal
	SellingPrice decimal.Decimal
	SupplierID   string // optional
	LocationID   string // optional
	ExpiryDate   *time.Time
	ReorderLevel int
	Description  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DaysUntilExpiry returns the whole days between now and the expiry date,
// negative when already expired. ok is false when the item has no expiry date.
func (i *InventoryItem) DaysUntilExpiry(now time.Time) (days int, ok bool) {
	if i.ExpiryDate == nil {
		return 0, false
	}
	diff := i.ExpiryDate.Sub(now)
	days = int(diff.Hours() / 24)
	// time.Duration truncates toward zero; floor for dates in the past
	if diff < 0 && diff%(24*time.Hour) != 0 {
		days--
	}
	return days, true
}
