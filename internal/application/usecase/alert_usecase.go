package usecase

import (
	"context"
	"fmt"

	"github.com/kaynetech/RetailRx/internal/application/dto"
	appmonitor "github.com/kaynetech/RetailRx/internal/application/monitor"
	"github.com/kaynetech/RetailRx/internal/domain"
	"github.com/kaynetech/RetailRx/internal/domain/entity"
	"github.com/kaynetech/RetailRx/internal/domain/repository"
)

// AlertUseCase read and transition operations over persisted alerts. Alert
// creation belongs to the monitor pipeline; operators only read, acknowledge,
// resolve and forward.
type AlertUseCase struct {
	repo      repository.AlertRepository
	notifier  appmonitor.Notifier // nil disables the notify endpoint
	recipient string
}

// NewAlertUseCase builds the use case. notifier may be nil.
func NewAlertUseCase(repo repository.AlertRepository, notifier appmonitor.Notifier, recipient string) *AlertUseCase {
	return &AlertUseCase{repo: repo, notifier: notifier, recipient: recipient}
}

// List returns alerts matching the filter.
func (uc *AlertUseCase) List(ctx context.Context, filter repository.AlertFilter) (*dto.AlertListResponse, error) {
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AlertResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAlertResponse(a))
	}
	return &dto.AlertListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// Stats returns the dashboard counters.
func (uc *AlertUseCase) Stats(ctx context.Context) (*dto.AlertStatsResponse, error) {
	s, err := uc.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.AlertStatsResponse{
		Total:    s.Total,
		Unread:   s.Unread,
		Critical: s.Critical,
		High:     s.High,
		Resolved: s.Resolved,
	}, nil
}

// MarkRead acknowledges an alert.
func (uc *AlertUseCase) MarkRead(ctx context.Context, id string) error {
	return uc.repo.MarkRead(ctx, id)
}

// Resolve transitions active -> resolved with the operator-supplied action
// (e.g. "returned to supplier", "disposed"). The monitor never auto-resolves;
// this is the only path out of active.
func (uc *AlertUseCase) Resolve(ctx context.Context, id string, in dto.ResolveAlertRequest) error {
	if in.ActionTaken == "" {
		return domain.ErrInvalidInput
	}
	return uc.repo.Resolve(ctx, id, in.ActionTaken)
}

// SendNotification forwards one alert through the notification collaborator
// and marks it email_sent on success.
func (uc *AlertUseCase) SendNotification(ctx context.Context, id string) error {
	if uc.notifier == nil {
		return domain.ErrConflict
	}
	alert, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if alert == nil {
		return domain.ErrNotFound
	}
	n := appmonitor.Notification{
		Recipient: uc.recipient,
		Subject:   fmt.Sprintf("Alert: %s", alert.AlertType),
		Message:   alert.Message,
		Severity:  alert.Severity,
	}
	if err := uc.notifier.Send(ctx, n); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return uc.repo.MarkEmailSent(ctx, id)
}

func toAlertResponse(a *entity.Alert) *dto.AlertResponse {
	if a == nil {
		return nil
	}
	return &dto.AlertResponse{
		ID:              a.ID,
		InventoryID:     a.InventoryID,
		SKU:             a.SKU,
		BatchNumber:     a.BatchNumber,
		AlertType:       string(a.AlertType),
		Severity:        string(a.Severity),
		Message:         a.Message,
		Quantity:        a.Quantity,
		DaysUntilExpiry: a.DaysUntilExpiry,
		Status:          a.Status,
		IsRead:          a.IsRead,
		EmailSent:       a.EmailSent,
		ActionTaken:     a.ActionTaken,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
		ResolvedAt:      a.ResolvedAt,
	}
}
