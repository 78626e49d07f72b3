package dto

import "time"

// AlertResponse output for one alert.
type AlertResponse struct {
	ID              string     `json:"id"`
	InventoryID     string     `json:"inventory_id"`
	SKU             string     `json:"sku"`
	BatchNumber     string     `json:"batch_number,omitempty"`
	AlertType       string     `json:"alert_type"`
	Severity        string     `json:"severity"`
	Message         string     `json:"message"`
	Quantity        int        `json:"quantity"`
	DaysUntilExpiry *int       `json:"days_until_expiration,omitempty"`
	Status          string     `json:"status"`
	IsRead          bool       `json:"is_read"`
	EmailSent       bool       `json:"email_sent"`
	ActionTaken     string     `json:"action_taken,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`
}

// AlertListResponse paginated alert list.
type AlertListResponse struct {
	Items []AlertResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// AlertStatsResponse dashboard counters over the alert table.
type AlertStatsResponse struct {
	Total    int `json:"total"`
	Unread   int `json:"unread"`
	Critical int `json:"critical"`
	High     int `json:"high"`
	Resolved int `json:"resolved"`
}

// ResolveAlertRequest operator input when closing an alert.
type ResolveAlertRequest struct {
	ActionTaken string `json:"action_taken" validate:"required"`
}
