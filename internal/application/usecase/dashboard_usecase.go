package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kaynetech/RetailRx/internal/application/dto"
	"github.com/kaynetech/RetailRx/internal/domain/entity"
	"github.com/kaynetech/RetailRx/internal/domain/monitor"
	"github.com/kaynetech/RetailRx/internal/domain/repository"
)

// DashboardUseCase builds the storefront summary: stock health, today's
// revenue and the active alert counters.
//
// Read-only; all numbers come from the repositories.
type DashboardUseCase struct {
	invRepo     repository.InventoryRepository
	saleRepo    repository.SaleRepository
	alertRepo   repository.AlertRepository
	policy      monitor.Policy
	scanHorizon int // days ahead counted as "expiring soon"
}

// NewDashboardUseCase builds the use case.
func NewDashboardUseCase(
	invRepo repository.InventoryRepository,
	saleRepo repository.SaleRepository,
	alertRepo repository.AlertRepository,
	policy monitor.Policy,
	scanHorizonDays int,
) *DashboardUseCase {
	return &DashboardUseCase{
		invRepo:     invRepo,
		saleRepo:    saleRepo,
		alertRepo:   alertRepo,
		policy:      policy,
		scanHorizon: scanHorizonDays,
	}
}

// GetSummary runs the three source queries in parallel and aggregates them.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryResponse, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)

	type snapshotResult struct {
		items []*entity.InventoryItem
		err   error
	}
	type totalsResult struct {
		totals repository.SalesTotals
		err    error
	}
	type statsResult struct {
		stats repository.AlertStats
		err   error
	}

	snapCh := make(chan snapshotResult, 1)
	salesCh := make(chan totalsResult, 1)
	alertsCh := make(chan statsResult, 1)

	go func() {
		items, err := uc.invRepo.Snapshot(ctx)
		snapCh <- snapshotResult{items, err}
	}()
	go func() {
		totals, err := uc.saleRepo.Totals(ctx, todayStart, todayEnd)
		salesCh <- totalsResult{totals, err}
	}()
	go func() {
		stats, err := uc.alertRepo.Stats(ctx)
		alertsCh <- statsResult{stats, err}
	}()

	snap := <-snapCh
	sales := <-salesCh
	alerts := <-alertsCh

	if snap.err != nil {
		return nil, fmt.Errorf("dashboard: inventory snapshot: %w", snap.err)
	}
	if sales.err != nil {
		return nil, fmt.Errorf("dashboard: sales totals: %w", sales.err)
	}
	if alerts.err != nil {
		return nil, fmt.Errorf("dashboard: alert stats: %w", alerts.err)
	}

	lowStock := 0
	expiringSoon := 0
	value := decimal.Zero
	for _, item := range snap.items {
		threshold := item.ReorderLevel
		if threshold <= 0 {
			threshold = uc.policy.LowStockThreshold
		}
		if item.Quantity < threshold {
			lowStock++
		}
		if days, ok := item.DaysUntilExpiry(now); ok && days >= 0 && days <= uc.scanHorizon {
			expiringSoon++
		}
		value = value.Add(item.SellingPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return &dto.DashboardSummaryResponse{
		TotalItems:        len(snap.items),
		LowStockItems:     lowStock,
		ExpiringSoonItems: expiringSoon,
		InventoryValue:    value.Round(2),
		TodayTransactions: sales.totals.Transactions,
		TodayRevenue:      sales.totals.Revenue.Round(2),
		ActiveAlerts:      alerts.stats.Total - alerts.stats.Resolved,
		CriticalAlerts:    alerts.stats.Critical,
	}, nil
}
