// Package monitor implements the inventory health pipeline: the evaluation
// tick (snapshot -> classify -> upsert alerts), the reorder engine and the
// scheduler that drives both on a fixed interval.
package monitor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kaynetech/RetailRx/internal/application/dto"
	"github.com/kaynetech/RetailRx/internal/domain/entity"
	domainmonitor "github.com/kaynetech/RetailRx/internal/domain/monitor"
	"github.com/kaynetech/RetailRx/internal/domain/repository"
	"github.com/kaynetech/RetailRx/pkg/logger"
)

// EvaluateUseCase runs one evaluation pass: read the inventory snapshot,
// classify it with the threshold policy, upsert alerts and record reorder
// intent. Both the scheduler and the manual endpoints call into it.
type EvaluateUseCase struct {
	invRepo     repository.InventoryRepository
	alertRepo   repository.AlertRepository
	ruleRepo    repository.ReorderRuleRepository
	historyRepo repository.ReorderHistoryRepository
	policy      domainmonitor.Policy
	notifier    Notifier // nil disables dispatch
	recipient   string
	log         *logger.Logger
	now         func() time.Time
}

// NewEvaluateUseCase wires the pipeline. notifier may be nil.
func NewEvaluateUseCase(
	invRepo repository.InventoryRepository,
	alertRepo repository.AlertRepository,
	ruleRepo repository.ReorderRuleRepository,
	historyRepo repository.ReorderHistoryRepository,
	policy domainmonitor.Policy,
	notifier Notifier,
	recipient string,
	log *logger.Logger,
) *EvaluateUseCase {
	return &EvaluateUseCase{
		invRepo:     invRepo,
		alertRepo:   alertRepo,
		ruleRepo:    ruleRepo,
		historyRepo: historyRepo,
		policy:      policy,
		notifier:    notifier,
		recipient:   recipient,
		log:         log,
		now:         time.Now,
	}
}

// WithClock overrides the time source. Tests only.
func (uc *EvaluateUseCase) WithClock(now func() time.Time) *EvaluateUseCase {
	uc.now = now
	return uc
}

// Tick executes one full scheduled pass: alert scan at the default horizon
// plus the reorder check. Item-level failures are logged and never abort the
// pass; a snapshot read failure skips the tick's writes entirely.
func (uc *EvaluateUseCase) Tick(ctx context.Context) (*dto.ScanResultResponse, error) {
	result, err := uc.RunScan(ctx, 0)
	if err != nil {
		return nil, err
	}
	reorders, err := uc.CheckReorders(ctx)
	if err != nil {
		// Alerts already landed; report the partial result with the error.
		return result, err
	}
	result.ReordersCreated = reorders.ReordersCreated
	return result, nil
}

// RunScan reads the snapshot and upserts one alert per classified finding.
// horizonDays overrides the expiry lookahead (0 = policy default); stock
// classification is unaffected by the override.
func (uc *EvaluateUseCase) RunScan(ctx context.Context, horizonDays int) (*dto.ScanResultResponse, error) {
	now := uc.now()
	items, err := uc.invRepo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("inventory snapshot: %w", err)
	}

	var findings []domainmonitor.Finding
	if horizonDays > 0 {
		findings = append(uc.policy.EvaluateStock(items), uc.policy.EvaluateExpiry(items, now, horizonDays)...)
	} else {
		findings = uc.policy.Evaluate(items, now)
	}

	upserted := 0
	for _, f := range findings {
		alert := alertFromFinding(f, now)
		created, err := uc.alertRepo.Upsert(ctx, alert)
		if err != nil {
			// One bad row must not starve the rest of the snapshot.
			uc.log.Error().Err(err).
				Str("inventory_id", f.Item.ID).
				Str("alert_type", string(f.AlertType)).
				Msg("alert upsert failed")
			continue
		}
		upserted++
		// Notify on the first sighting only; a refresh of an already-active
		// alert stays silent.
		if created && f.Severity == entity.SeverityCritical {
			uc.dispatch(alert)
		}
	}

	uc.log.Info().
		Int("items", len(items)).
		Int("findings", len(findings)).
		Int("upserted", upserted).
		Msg("inventory scan completed")

	return &dto.ScanResultResponse{
		ItemsEvaluated: len(items),
		AlertsUpserted: upserted,
		ScannedAt:      now,
	}, nil
}

// CheckReorders compares current quantities against the active reorder rules
// and records one pending reorder event per newly triggered rule. An item with
// a pending or ordered event is skipped so repeated ticks cannot stack
// in-flight reorders. Shared verbatim by the scheduled and manual paths.
func (uc *EvaluateUseCase) CheckReorders(ctx context.Context) (*dto.ReorderCheckResponse, error) {
	rules, err := uc.ruleRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active reorder rules: %w", err)
	}

	created := 0
	for _, rule := range rules {
		item, err := uc.invRepo.GetByID(ctx, rule.InventoryID)
		if err != nil {
			uc.log.Error().Err(err).Str("inventory_id", rule.InventoryID).Msg("reorder check: load item")
			continue
		}
		if item == nil || item.Quantity > rule.ReorderPoint {
			continue
		}

		inFlight, err := uc.historyRepo.HasInFlight(ctx, rule.InventoryID)
		if err != nil {
			uc.log.Error().Err(err).Str("inventory_id", rule.InventoryID).Msg("reorder check: in-flight lookup")
			continue
		}
		if inFlight {
			continue
		}

		event := &entity.ReorderHistory{
			ID:          uuid.New().String(),
			InventoryID: rule.InventoryID,
			Quantity:    rule.ReorderQuantity,
			Status:      entity.ReorderStatusPending,
			PONumber:    uc.newPONumber(),
			CreatedAt:   uc.now(),
		}
		if err := uc.historyRepo.Create(ctx, event); err != nil {
			uc.log.Error().Err(err).Str("inventory_id", rule.InventoryID).Msg("reorder check: create event")
			continue
		}
		created++
		uc.log.Info().
			Str("inventory_id", rule.InventoryID).
			Str("po_number", event.PONumber).
			Int("quantity", event.Quantity).
			Msg("reorder triggered")
	}

	return &dto.ReorderCheckResponse{RulesEvaluated: len(rules), ReordersCreated: created}, nil
}

// dispatch sends a notification for a critical alert without blocking the
// scan. Failures are logged only.
func (uc *EvaluateUseCase) dispatch(alert *entity.Alert) {
	if uc.notifier == nil {
		return
	}
	n := Notification{
		Recipient: uc.recipient,
		Subject:   fmt.Sprintf("Alert: %s", alert.AlertType),
		Message:   alert.Message,
		Severity:  alert.Severity,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := uc.notifier.Send(ctx, n); err != nil {
			uc.log.Warn().Err(err).Str("alert_type", string(alert.AlertType)).Msg("alert notification failed")
		}
	}()
}

func (uc *EvaluateUseCase) newPONumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:9])
	return fmt.Sprintf("PO-%d-%s", uc.now().UnixMilli(), suffix)
}

func alertFromFinding(f domainmonitor.Finding, now time.Time) *entity.Alert {
	return &entity.Alert{
		ID:              uuid.New().String(),
		InventoryID:     f.Item.ID,
		SKU:             f.Item.SKU,
		BatchNumber:     f.Item.BatchNumber,
		AlertType:       f.AlertType,
		Severity:        f.Severity,
		Message:         f.Message,
		Quantity:        f.Item.Quantity,
		DaysUntilExpiry: f.DaysUntilExpiry,
		Status:          entity.AlertStatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
