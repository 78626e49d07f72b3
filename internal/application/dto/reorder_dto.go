package dto

import "time"

// CreateReorderRuleRequest input to create a per-item reorder rule.
type CreateReorderRuleRequest struct {
	InventoryID     string `json:"inventory_id" validate:"required"`
	ReorderPoint    int    `json:"reorder_point" validate:"min=0"`
	ReorderQuantity int    `json:"reorder_quantity" validate:"min=1"`
	AutoReorder     bool   `json:"auto_reorder"`
	SupplierID      string `json:"supplier_id"`
}

// UpdateReorderRuleRequest input to update a rule.
type UpdateReorderRuleRequest struct {
	ReorderPoint    *int    `json:"reorder_point"`
	ReorderQuantity *int    `json:"reorder_quantity"`
	AutoReorder     *bool   `json:"auto_reorder"`
	SupplierID      *string `json:"supplier_id"`
}

// ReorderRuleResponse output for one rule.
type ReorderRuleResponse struct {
	ID              string    `json:"id"`
	InventoryID     string    `json:"inventory_id"`
	ReorderPoint    int       `json:"reorder_point"`
	ReorderQuantity int       `json:"reorder_quantity"`
	AutoReorder     bool      `json:"auto_reorder"`
	SupplierID      string    `json:"supplier_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ReorderRuleListResponse paginated rule list.
type ReorderRuleListResponse struct {
	Items []ReorderRuleResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// ReorderHistoryResponse output for one triggered reorder event.
type ReorderHistoryResponse struct {
	ID          string     `json:"id"`
	InventoryID string     `json:"inventory_id"`
	Quantity    int        `json:"quantity"`
	Status      string     `json:"status"`
	PONumber    string     `json:"po_number"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// ReorderHistoryListResponse paginated history list.
type ReorderHistoryListResponse struct {
	Items []ReorderHistoryResponse `json:"items"`
	Page  PageResponse             `json:"page"`
}

// UpdateReorderStatusRequest operator transition for a history row.
type UpdateReorderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending ordered completed cancelled"`
}

// ReorderCheckResponse outcome of a manual "check & reorder" pass.
type ReorderCheckResponse struct {
	RulesEvaluated  int `json:"rules_evaluated"`
	ReordersCreated int `json:"reorders_created"`
}
