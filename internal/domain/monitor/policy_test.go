package monitor_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaynetech/RetailRx/internal/domain/entity"
	"github.com/kaynetech/RetailRx/internal/domain/monitor"
)

var testNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func itemWithQuantity(qty int) *entity.InventoryItem {
	return &entity.InventoryItem{
		ID:           "itm-1",
		Name:         "Amoxicillin 500mg",
		SKU:          "AMX-500",
		Quantity:     qty,
		ReorderLevel: 10,
	}
}

func itemExpiringIn(days int) *entity.InventoryItem {
	// Noon on the target day so truncation never lands on a boundary.
	exp := testNow.AddDate(0, 0, days).Add(2 * time.Hour)
	return &entity.InventoryItem{
		ID:           "itm-2",
		Name:         "Insulin Glargine",
		SKU:          "INS-GLA",
		Quantity:     50,
		ReorderLevel: 10,
		ExpiryDate:   &exp,
	}
}

func singleFinding(t *testing.T, findings []monitor.Finding) monitor.Finding {
	t.Helper()
	require.Len(t, findings, 1)
	return findings[0]
}

func TestEvaluate_ZeroQuantityIsOutOfStockCritical(t *testing.T) {
	p := monitor.DefaultPolicy()
	f := singleFinding(t, p.Evaluate([]*entity.InventoryItem{itemWithQuantity(0)}, testNow))

	assert.Equal(t, entity.AlertOutOfStock, f.AlertType)
	assert.Equal(t, entity.SeverityCritical, f.Severity)
	assert.Contains(t, f.Message, "out of stock")
}

func TestEvaluate_QuantityUnderFiveIsHigh(t *testing.T) {
	p := monitor.DefaultPolicy()
	for qty := 1; qty < 5; qty++ {
		f := singleFinding(t, p.Evaluate([]*entity.InventoryItem{itemWithQuantity(qty)}, testNow))
		assert.Equal(t, entity.AlertLowStock, f.AlertType, "qty=%d", qty)
		assert.Equal(t, entity.SeverityHigh, f.Severity, "qty=%d", qty)
	}
}

func TestEvaluate_QuantityUnderReorderLevelIsMedium(t *testing.T) {
	p := monitor.DefaultPolicy()
	f := singleFinding(t, p.Evaluate([]*entity.InventoryItem{itemWithQuantity(7)}, testNow))

	assert.Equal(t, entity.AlertLowStock, f.AlertType)
	assert.Equal(t, entity.SeverityMedium, f.Severity)
}

func TestEvaluate_HealthyStockProducesNothing(t *testing.T) {
	p := monitor.DefaultPolicy()
	findings := p.Evaluate([]*entity.InventoryItem{itemWithQuantity(50)}, testNow)
	assert.Empty(t, findings, "sparse output: no OK records")
}

func TestEvaluate_ItemWithoutReorderLevelUsesPolicyThreshold(t *testing.T) {
	p := monitor.DefaultPolicy()
	item := itemWithQuantity(8)
	item.ReorderLevel = 0

	f := singleFinding(t, p.Evaluate([]*entity.InventoryItem{item}, testNow))
	assert.Equal(t, entity.SeverityMedium, f.Severity)
}

func TestEvaluate_SevenDayBoundaryIsCritical(t *testing.T) {
	p := monitor.DefaultPolicy()

	f := singleFinding(t, p.Evaluate([]*entity.InventoryItem{itemExpiringIn(7)}, testNow))
	assert.Equal(t, entity.AlertExpiringSoon, f.AlertType)
	assert.Equal(t, entity.SeverityCritical, f.Severity, "exactly 7 days must be critical")

	f = singleFinding(t, p.Evaluate([]*entity.InventoryItem{itemExpiringIn(8)}, testNow))
	assert.Equal(t, entity.SeverityHigh, f.Severity, "8 days must not be critical")
}

func TestEvaluate_PastExpiryIsExpiredNotExpiringSoon(t *testing.T) {
	p := monitor.DefaultPolicy()
	f := singleFinding(t, p.Evaluate([]*entity.InventoryItem{itemExpiringIn(-3)}, testNow))

	assert.Equal(t, entity.AlertExpired, f.AlertType)
	assert.Equal(t, entity.SeverityCritical, f.Severity)
	assert.Contains(t, f.Message, "has expired")
	require.NotNil(t, f.DaysUntilExpiry)
	assert.Negative(t, *f.DaysUntilExpiry)
}

func TestEvaluate_BeyondHorizonProducesNothing(t *testing.T) {
	p := monitor.DefaultPolicy()
	findings := p.Evaluate([]*entity.InventoryItem{itemExpiringIn(45)}, testNow)
	assert.Empty(t, findings, "items past the 30-day horizon are not alerted")
}

func TestEvaluate_NoExpiryDateProducesNoExpiryFinding(t *testing.T) {
	p := monitor.DefaultPolicy()
	findings := p.Evaluate([]*entity.InventoryItem{itemWithQuantity(50)}, testNow)
	assert.Empty(t, findings)
}

func TestEvaluate_LowStockAndExpiringEmitTwoFindings(t *testing.T) {
	p := monitor.DefaultPolicy()
	item := itemExpiringIn(5)
	item.Quantity = 3

	findings := p.Evaluate([]*entity.InventoryItem{item}, testNow)
	require.Len(t, findings, 2)

	types := []entity.AlertType{findings[0].AlertType, findings[1].AlertType}
	assert.Contains(t, types, entity.AlertLowStock)
	assert.Contains(t, types, entity.AlertExpiringSoon)
}

func TestEvaluateExpiry_LongRangeHorizonReachesInfoBucket(t *testing.T) {
	p := monitor.DefaultPolicy()

	findings := p.EvaluateExpiry([]*entity.InventoryItem{itemExpiringIn(60)}, testNow, 90)
	f := singleFinding(t, findings)
	assert.Equal(t, entity.SeverityInfo, f.Severity, "31-90 days on a long-range scan is informational")

	// Same item is invisible to the default 30-day alerting horizon.
	assert.Empty(t, p.Evaluate([]*entity.InventoryItem{itemExpiringIn(60)}, testNow))
}

func TestEvaluate_IsRestartable(t *testing.T) {
	p := monitor.DefaultPolicy()
	snapshot := []*entity.InventoryItem{itemWithQuantity(0), itemExpiringIn(10), itemWithQuantity(100)}

	first := p.Evaluate(snapshot, testNow)
	second := p.Evaluate(snapshot, testNow)
	assert.Equal(t, first, second, "pure evaluation must be repeatable over an unchanged snapshot")
}
