// Package monitor holds the pure threshold policy that classifies an inventory
// snapshot into stock and expiration findings. It is a domain service: no
// persistence, no clock of its own, callable on every tick.
package monitor

import (
	"fmt"
	"time"

	"github.com/kaynetech/RetailRx/internal/domain/entity"
)

// Policy centralizes the thresholds that used to drift between the alerting and
// expiration-scan paths. Horizons and cutoffs are configuration, not constants.
type Policy struct {
	LowStockThreshold  int // quantity below this flags low stock (fallback when the item has no reorder level)
	CriticalStockBelow int // quantity under this (but above zero) is high severity
	ExpiryHorizonDays  int // findings are only emitted inside this window
	ExpiryCriticalDays int // days remaining at or under this is critical
	ExpiryWarningDays  int // days remaining at or under this is high
}

// DefaultPolicy mirrors the thresholds the retail floor runs with.
func DefaultPolicy() Policy {
	return Policy{
		LowStockThreshold:  10,
		CriticalStockBelow: 5,
		ExpiryHorizonDays:  30,
		ExpiryCriticalDays: 7,
		ExpiryWarningDays:  14,
	}
}

// Finding is one classified condition for one item. The representation is
// sparse: items matching no rule produce nothing.
type Finding struct {
	Item            *entity.InventoryItem
	AlertType       entity.AlertType
	Severity        entity.Severity
	Message         string
	DaysUntilExpiry *int // nil for stock findings
}

// Evaluate classifies a snapshot of inventory rows against the policy.
// Pure and restartable: same snapshot and clock always yield the same findings.
func (p Policy) Evaluate(items []*entity.InventoryItem, now time.Time) []Finding {
	var findings []Finding
	for _, item := range items {
		if f, ok := p.evaluateStock(item); ok {
			findings = append(findings, f)
		}
		if f, ok := p.evaluateExpiry(item, now, p.ExpiryHorizonDays); ok {
			findings = append(findings, f)
		}
	}
	return findings
}

// EvaluateStock classifies only stock conditions.
func (p Policy) EvaluateStock(items []*entity.InventoryItem) []Finding {
	var findings []Finding
	for _, item := range items {
		if f, ok := p.evaluateStock(item); ok {
			findings = append(findings, f)
		}
	}
	return findings
}

// EvaluateExpiry classifies only expiration conditions, with an explicit
// horizon override. Used by the long-range scan endpoint (90 days vs the
// 30-day alerting default).
func (p Policy) EvaluateExpiry(items []*entity.InventoryItem, now time.Time, horizonDays int) []Finding {
	if horizonDays <= 0 {
		horizonDays = p.ExpiryHorizonDays
	}
	var findings []Finding
	for _, item := range items {
		if f, ok := p.evaluateExpiry(item, now, horizonDays); ok {
			findings = append(findings, f)
		}
	}
	return findings
}

func (p Policy) evaluateStock(item *entity.InventoryItem) (Finding, bool) {
	threshold := item.ReorderLevel
	if threshold <= 0 {
		threshold = p.LowStockThreshold
	}

	switch {
	case item.Quantity == 0:
		return Finding{
			Item:      item,
			AlertType: entity.AlertOutOfStock,
			Severity:  entity.SeverityCritical,
			Message:   fmt.Sprintf("%s is out of stock (0 units)", item.Name),
		}, true
	case item.Quantity < p.CriticalStockBelow:
		return Finding{
			Item:      item,
			AlertType: entity.AlertLowStock,
			Severity:  entity.SeverityHigh,
			Message:   fmt.Sprintf("%s is low on stock (%d units)", item.Name, item.Quantity),
		}, true
	case item.Quantity < threshold:
		return Finding{
			Item:      item,
			AlertType: entity.AlertLowStock,
			Severity:  entity.SeverityMedium,
			Message:   fmt.Sprintf("%s is low on stock (%d units)", item.Name, item.Quantity),
		}, true
	}
	return Finding{}, false
}

func (p Policy) evaluateExpiry(item *entity.InventoryItem, now time.Time, horizonDays int) (Finding, bool) {
	days, ok := item.DaysUntilExpiry(now)
	if !ok || days > horizonDays {
		return Finding{}, false
	}

	d := days
	f := Finding{Item: item, DaysUntilExpiry: &d}
	switch {
	case days < 0:
		// Already expired is its own condition, not a short expiring_soon.
		f.AlertType = entity.AlertExpired
		f.Severity = entity.SeverityCritical
		f.Message = fmt.Sprintf("%s has expired", item.Name)
	case days <= p.ExpiryCriticalDays:
		f.AlertType = entity.AlertExpiringSoon
		f.Severity = entity.SeverityCritical
		f.Message = fmt.Sprintf("%s expires in %d days", item.Name, days)
	case days <= p.ExpiryWarningDays:
		f.AlertType = entity.AlertExpiringSoon
		f.Severity = entity.SeverityHigh
		f.Message = fmt.Sprintf("%s expires in %d days", item.Name, days)
	case days <= p.ExpiryHorizonDays:
		f.AlertType = entity.AlertExpiringSoon
		f.Severity = entity.SeverityMedium
		f.Message = fmt.Sprintf("%s expires in %d days", item.Name, days)
	default:
		// Only reachable on long-range scans past the alerting horizon.
		f.AlertType = entity.AlertExpiringSoon
		f.Severity = entity.SeverityInfo
		f.Message = fmt.Sprintf("%s expires in %d days", item.Name, days)
	}
	return f, true
}
