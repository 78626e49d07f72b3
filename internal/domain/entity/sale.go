package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale statuses.
const (
	SaleCompleted = "completed"
	SaleVoided    = "voided"
)

// SaleTransaction is one point-of-sale checkout. Line items decrement inventory
// within the same transaction.
type SaleTransaction struct {
	ID                string
	TransactionNumber string
	Items             []SaleItem
	Subtotal          decimal.Decimal
	Tax               decimal.Decimal
	Discount          decimal.Decimal
	Total             decimal.Decimal
	PaymentMethod     string
	CashierName       string
	CustomerName      string
	CustomerPhone     string
	Notes             string
	Status            string
	CreatedAt         time.Time
}

// SaleItem is one line of a sale.
type SaleItem struct {
	ID          string
	SaleID      string
	InventoryID string
	Name        string
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}
