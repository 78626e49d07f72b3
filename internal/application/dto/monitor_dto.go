package dto

import "time"

// MonitorStatusResponse scheduler state for the operator toggle.
type MonitorStatusResponse struct {
	Running         bool       `json:"running"`
	IntervalSeconds int        `json:"interval_seconds"`
	LastScanAt      *time.Time `json:"last_scan_at,omitempty"`
}

// ScanRequest optional overrides for an on-demand scan.
type ScanRequest struct {
	HorizonDays int `json:"horizon_days"` // 0 = default alerting horizon
}

// ScanResultResponse outcome of one evaluation pass.
type ScanResultResponse struct {
	ItemsEvaluated  int       `json:"items_evaluated"`
	AlertsUpserted  int       `json:"alerts_upserted"`
	ReordersCreated int       `json:"reorders_created"`
	ScannedAt       time.Time `json:"scanned_at"`
}
