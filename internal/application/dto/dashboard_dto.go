package dto

import "github.com/shopspring/decimal"

// DashboardSummaryResponse the storefront's at-a-glance numbers.
type DashboardSummaryResponse struct {
	TotalItems        int             `json:"total_items"`
	LowStockItems     int             `json:"low_stock_items"`
	ExpiringSoonItems int             `json:"expiring_soon_items"`
	InventoryValue    decimal.Decimal `json:"inventory_value"`
	TodayTransactions int             `json:"today_transactions"`
	TodayRevenue      decimal.Decimal `json:"today_revenue"`
	ActiveAlerts      int             `json:"active_alerts"`
	CriticalAlerts    int             `json:"critical_alerts"`
}

// LocationResponse output for one stocking location.
type LocationResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type,omitempty"`
	Address string `json:"address,omitempty"`
}

// CreateLocationRequest input to create a location.
type CreateLocationRequest struct {
	Name    string `json:"name" validate:"required"`
	Type    string `json:"type"`
	Address string `json:"address"`
}
