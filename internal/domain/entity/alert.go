package entity

import "time"

// AlertType classifies the condition that produced an alert.
type AlertType string

const (
	AlertLowStock     AlertType = "low_stock"
	AlertOutOfStock   AlertType = "out_of_stock"
	AlertExpiringSoon AlertType = "expiring_soon"
	AlertExpired      AlertType = "expired"
)

// Severity is the ordinal urgency classification of an alert.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Alert lifecycle states.
const (
	AlertStatusActive   = "active"
	AlertStatusResolved = "resolved"
)

// Alert is a persisted record flagging a stock or expiration condition that
// requires attention. At most one active alert exists per (item, alert type);
// the monitor upserts onto that key instead of inserting duplicates.
type Alert struct {
	ID              string
	InventoryID     string
	SKU             string
	BatchNumber     string
	AlertType       AlertType
	Severity        Severity
	Message         string
	Quantity        int
	DaysUntilExpiry *int // nil for stock alerts
	Status          string
	IsRead          bool
	EmailSent       bool
	ActionTaken     string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ResolvedAt      *time.Time
}

// Resolved reports whether the alert has been closed by an operator.
func (a *Alert) Resolved() bool {
	return a.Status == AlertStatusResolved
}
