package monitor_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appmonitor "github.com/kaynetech/RetailRx/internal/application/monitor"
	"github.com/kaynetech/RetailRx/internal/domain/entity"
	domainmonitor "github.com/kaynetech/RetailRx/internal/domain/monitor"
	"github.com/kaynetech/RetailRx/internal/domain/repository"
	"github.com/kaynetech/RetailRx/pkg/logger"
)

var scanNow = time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

// ──────────────────────────────────────────────────────────────────────────────
// In-memory fakes mirroring the repository contracts
// ──────────────────────────────────────────────────────────────────────────────

type fakeInventoryRepo struct {
	repository.InventoryRepository
	items   []*entity.InventoryItem
	readErr error
}

func (f *fakeInventoryRepo) Snapshot(context.Context) ([]*entity.InventoryItem, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.items, nil
}

func (f *fakeInventoryRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	for _, it := range f.items {
		if it.ID == id {
			return it, nil
		}
	}
	return nil, nil
}

// fakeAlertRepo enforces the same key the partial unique index enforces:
// at most one active alert per (inventory, alert type).
type fakeAlertRepo struct {
	repository.AlertRepository
	alerts []*entity.Alert
}

func (f *fakeAlertRepo) Upsert(_ context.Context, alert *entity.Alert) (bool, error) {
	for _, existing := range f.alerts {
		if existing.Status == entity.AlertStatusActive &&
			existing.InventoryID == alert.InventoryID &&
			existing.AlertType == alert.AlertType {
			existing.Quantity = alert.Quantity
			existing.DaysUntilExpiry = alert.DaysUntilExpiry
			existing.Severity = alert.Severity
			existing.Message = alert.Message
			existing.UpdatedAt = alert.UpdatedAt
			return false, nil
		}
	}
	cp := *alert
	f.alerts = append(f.alerts, &cp)
	return true, nil
}

func (f *fakeAlertRepo) active() []*entity.Alert {
	var out []*entity.Alert
	for _, a := range f.alerts {
		if a.Status == entity.AlertStatusActive {
			out = append(out, a)
		}
	}
	return out
}

func (f *fakeAlertRepo) resolve(inventoryID string, at time.Time) {
	for _, a := range f.alerts {
		if a.InventoryID == inventoryID && a.Status == entity.AlertStatusActive {
			a.Status = entity.AlertStatusResolved
			a.ResolvedAt = &at
		}
	}
}

type fakeRuleRepo struct {
	repository.ReorderRuleRepository
	rules []*entity.ReorderRule
}

func (f *fakeRuleRepo) ListActive(context.Context) ([]*entity.ReorderRule, error) {
	var out []*entity.ReorderRule
	for _, r := range f.rules {
		if r.AutoReorder {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeHistoryRepo struct {
	repository.ReorderHistoryRepository
	events []*entity.ReorderHistory
}

func (f *fakeHistoryRepo) Create(_ context.Context, e *entity.ReorderHistory) error {
	cp := *e
	f.events = append(f.events, &cp)
	return nil
}

func (f *fakeHistoryRepo) HasInFlight(_ context.Context, inventoryID string) (bool, error) {
	for _, e := range f.events {
		if e.InventoryID == inventoryID && e.InFlight() {
			return true, nil
		}
	}
	return false, nil
}

type fakeNotifier struct {
	sent chan appmonitor.Notification
	err  error
}

func (f *fakeNotifier) Send(_ context.Context, n appmonitor.Notification) error {
	if f.sent != nil {
		f.sent <- n
	}
	return f.err
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type pipeline struct {
	uc      *appmonitor.EvaluateUseCase
	inv     *fakeInventoryRepo
	alerts  *fakeAlertRepo
	rules   *fakeRuleRepo
	history *fakeHistoryRepo
}

func newPipeline(t *testing.T, notifier appmonitor.Notifier, items ...*entity.InventoryItem) *pipeline {
	t.Helper()
	p := &pipeline{
		inv:     &fakeInventoryRepo{items: items},
		alerts:  &fakeAlertRepo{},
		rules:   &fakeRuleRepo{},
		history: &fakeHistoryRepo{},
	}
	p.uc = appmonitor.NewEvaluateUseCase(
		p.inv, p.alerts, p.rules, p.history,
		domainmonitor.DefaultPolicy(), notifier, "admin@retailrx.com", logger.Nop(),
	).WithClock(func() time.Time { return scanNow })
	return p
}

func stocked(id string, qty int) *entity.InventoryItem {
	return &entity.InventoryItem{
		ID: id, Name: "Ibuprofen 200mg", SKU: "IBU-200", Quantity: qty, ReorderLevel: 10,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Alert scan
// ──────────────────────────────────────────────────────────────────────────────

func TestRunScan_UpsertsOneAlertPerFinding(t *testing.T) {
	p := newPipeline(t, nil, stocked("a", 0), stocked("b", 3), stocked("c", 50))

	result, err := p.uc.RunScan(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, 3, result.ItemsEvaluated)
	assert.Equal(t, 2, result.AlertsUpserted)
	require.Len(t, p.alerts.active(), 2)
}

func TestRunScan_SecondPassDoesNotDuplicateActiveAlerts(t *testing.T) {
	p := newPipeline(t, nil, stocked("a", 0))

	_, err := p.uc.RunScan(context.Background(), 0)
	require.NoError(t, err)
	_, err = p.uc.RunScan(context.Background(), 0)
	require.NoError(t, err)

	assert.Len(t, p.alerts.active(), 1,
		"unchanged snapshot must update the existing active alert, not insert a second one")
}

func TestRunScan_ResolutionDoesNotSuppressRecurrence(t *testing.T) {
	p := newPipeline(t, nil, stocked("a", 2))

	_, err := p.uc.RunScan(context.Background(), 0)
	require.NoError(t, err)
	p.alerts.resolve("a", scanNow)

	_, err = p.uc.RunScan(context.Background(), 0)
	require.NoError(t, err)

	assert.Len(t, p.alerts.active(), 1, "a still-low item re-alerts after resolution")
	assert.Len(t, p.alerts.alerts, 2, "the resolved alert remains as history")
}

func TestRunScan_SnapshotFailureSkipsWrites(t *testing.T) {
	p := newPipeline(t, nil, stocked("a", 0))
	p.inv.readErr = errors.New("store unreachable")

	_, err := p.uc.RunScan(context.Background(), 0)
	require.Error(t, err)
	assert.Empty(t, p.alerts.alerts, "no writes when the snapshot read fails")
}

func TestRunScan_CriticalFindingDispatchesNotification(t *testing.T) {
	notifier := &fakeNotifier{sent: make(chan appmonitor.Notification, 1)}
	p := newPipeline(t, notifier, stocked("a", 0))

	_, err := p.uc.RunScan(context.Background(), 0)
	require.NoError(t, err)

	select {
	case n := <-notifier.sent:
		assert.Equal(t, "admin@retailrx.com", n.Recipient)
		assert.Equal(t, entity.SeverityCritical, n.Severity)
		assert.Contains(t, n.Subject, "out_of_stock")
	case <-time.After(2 * time.Second):
		t.Fatal("expected a notification for the critical alert")
	}
}

func TestRunScan_UnchangedCriticalDoesNotRenotify(t *testing.T) {
	notifier := &fakeNotifier{sent: make(chan appmonitor.Notification, 2)}
	p := newPipeline(t, notifier, stocked("a", 0))

	_, err := p.uc.RunScan(context.Background(), 0)
	require.NoError(t, err)
	_, err = p.uc.RunScan(context.Background(), 0)
	require.NoError(t, err)

	select {
	case <-notifier.sent:
	case <-time.After(2 * time.Second):
		t.Fatal("expected one notification for the new critical alert")
	}
	select {
	case n := <-notifier.sent:
		t.Fatalf("refreshing an active alert must not notify again, got %q", n.Subject)
	case <-time.After(200 * time.Millisecond):
	}
	assert.Len(t, p.alerts.active(), 1)
}

func TestRunScan_NotifierFailureDoesNotBlockPersistence(t *testing.T) {
	notifier := &fakeNotifier{sent: make(chan appmonitor.Notification, 1), err: errors.New("smtp down")}
	p := newPipeline(t, notifier, stocked("a", 0))

	result, err := p.uc.RunScan(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, result.AlertsUpserted)
	<-notifier.sent // dispatch attempted, failure only logged
	assert.Len(t, p.alerts.active(), 1)
}

func TestRunScan_HorizonOverrideWidensExpiryWindow(t *testing.T) {
	exp := scanNow.AddDate(0, 0, 60).Add(2 * time.Hour)
	item := &entity.InventoryItem{
		ID: "a", Name: "Insulin", SKU: "INS", Quantity: 50, ReorderLevel: 10, ExpiryDate: &exp,
	}
	p := newPipeline(t, nil, item)

	result, err := p.uc.RunScan(context.Background(), 0)
	require.NoError(t, err)
	assert.Zero(t, result.AlertsUpserted, "60 days out is invisible at the default horizon")

	result, err = p.uc.RunScan(context.Background(), 90)
	require.NoError(t, err)
	assert.Equal(t, 1, result.AlertsUpserted, "the long-range scan picks it up")
}

// ──────────────────────────────────────────────────────────────────────────────
// Reorder engine
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckReorders_TriggersOnePendingEvent(t *testing.T) {
	p := newPipeline(t, nil, stocked("a", 0))
	p.rules.rules = []*entity.ReorderRule{{
		ID: "r1", InventoryID: "a", ReorderPoint: 10, ReorderQuantity: 100, AutoReorder: true,
	}}

	result, err := p.uc.CheckReorders(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.ReordersCreated)
	require.Len(t, p.history.events, 1)
	event := p.history.events[0]
	assert.Equal(t, entity.ReorderStatusPending, event.Status)
	assert.Equal(t, 100, event.Quantity)
	assert.Regexp(t, `^PO-\d+-[0-9A-F]{9}$`, event.PONumber)
}

func TestCheckReorders_DisabledRuleNeverFires(t *testing.T) {
	p := newPipeline(t, nil, stocked("a", 0))
	p.rules.rules = []*entity.ReorderRule{{
		ID: "r1", InventoryID: "a", ReorderPoint: 10, ReorderQuantity: 100, AutoReorder: false,
	}}

	result, err := p.uc.CheckReorders(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.ReordersCreated, "auto_reorder=false must never produce history")
	assert.Empty(t, p.history.events)
}

func TestCheckReorders_HealthyStockDoesNotTrigger(t *testing.T) {
	p := newPipeline(t, nil, stocked("a", 50))
	p.rules.rules = []*entity.ReorderRule{{
		ID: "r1", InventoryID: "a", ReorderPoint: 10, ReorderQuantity: 100, AutoReorder: true,
	}}

	result, err := p.uc.CheckReorders(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.ReordersCreated)
}

func TestCheckReorders_InFlightEventBlocksRetrigger(t *testing.T) {
	p := newPipeline(t, nil, stocked("a", 0))
	p.rules.rules = []*entity.ReorderRule{{
		ID: "r1", InventoryID: "a", ReorderPoint: 10, ReorderQuantity: 100, AutoReorder: true,
	}}

	_, err := p.uc.CheckReorders(context.Background())
	require.NoError(t, err)
	result, err := p.uc.CheckReorders(context.Background())
	require.NoError(t, err)

	assert.Zero(t, result.ReordersCreated, "pending event must block a second reorder")
	assert.Len(t, p.history.events, 1)
}

func TestCheckReorders_CompletedEventAllowsRetrigger(t *testing.T) {
	p := newPipeline(t, nil, stocked("a", 0))
	p.rules.rules = []*entity.ReorderRule{{
		ID: "r1", InventoryID: "a", ReorderPoint: 10, ReorderQuantity: 100, AutoReorder: true,
	}}

	_, err := p.uc.CheckReorders(context.Background())
	require.NoError(t, err)
	p.history.events[0].Status = entity.ReorderStatusCompleted

	result, err := p.uc.CheckReorders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.ReordersCreated, "a completed order no longer blocks")
}

// ──────────────────────────────────────────────────────────────────────────────
// Full tick
// ──────────────────────────────────────────────────────────────────────────────

func TestTick_CombinesScanAndReorder(t *testing.T) {
	p := newPipeline(t, nil, stocked("a", 0))
	p.rules.rules = []*entity.ReorderRule{{
		ID: "r1", InventoryID: "a", ReorderPoint: 10, ReorderQuantity: 25, AutoReorder: true,
	}}

	result, err := p.uc.Tick(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.AlertsUpserted)
	assert.Equal(t, 1, result.ReordersCreated)
	assert.Equal(t, scanNow, result.ScannedAt)
}
