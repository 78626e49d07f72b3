package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest one cart line at checkout.
type SaleItemRequest struct {
	InventoryID string `json:"inventory_id" validate:"required"`
	Quantity    int    `json:"quantity" validate:"min=1"`
}

// CreateSaleRequest input for a point-of-sale checkout.
type CreateSaleRequest struct {
	Items         []SaleItemRequest `json:"items" validate:"required,min=1"`
	Discount      decimal.Decimal   `json:"discount"`
	PaymentMethod string            `json:"payment_method" validate:"required"`
	CashierName   string            `json:"cashier_name"`
	CustomerName  string            `json:"customer_name"`
	CustomerPhone string            `json:"customer_phone"`
	CustomerID    string            `json:"customer_id"` // optional, accrues loyalty points
	Notes         string            `json:"notes"`
}

// SaleItemResponse one sold line.
type SaleItemResponse struct {
	InventoryID string          `json:"inventory_id"`
	Name        string          `json:"name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// SaleResponse output for one transaction.
type SaleResponse struct {
	ID                string             `json:"id"`
	TransactionNumber string             `json:"transaction_number"`
	Items             []SaleItemResponse `json:"items"`
	Subtotal          decimal.Decimal    `json:"subtotal"`
	Tax               decimal.Decimal    `json:"tax"`
	Discount          decimal.Decimal    `json:"discount"`
	Total             decimal.Decimal    `json:"total"`
	PaymentMethod     string             `json:"payment_method"`
	CashierName       string             `json:"cashier_name,omitempty"`
	CustomerName      string             `json:"customer_name,omitempty"`
	Status            string             `json:"status"`
	CreatedAt         time.Time          `json:"created_at"`
}

// SaleListResponse paginated transaction list.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
