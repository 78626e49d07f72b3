package repository

import (
	"context"

	"github.com/kaynetech/RetailRx/internal/domain/entity"
)

// AlertFilter narrows alert listings.
type AlertFilter struct {
	Status    string // active | resolved
	Severity  entity.Severity
	AlertType entity.AlertType
	Unread    bool
	Limit     int
	Offset    int
}

// AlertStats are the dashboard counters over the alert table.
type AlertStats struct {
	Total    int
	Unread   int
	Critical int // active critical
	High     int // active high
	Resolved int
}

// AlertRepository is the persistence port for inventory alerts.
type AlertRepository interface {
	// Upsert inserts the alert or, when an active alert already exists for the
	// same (inventory, alert type), refreshes its quantity, days remaining,
	// severity and message instead. Duplicate-key conflicts are expected and
	// are not errors. created reports whether a new row was inserted, so
	// callers can tell a fresh condition from a refresh of a known one.
	Upsert(ctx context.Context, alert *entity.Alert) (created bool, err error)
	GetByID(ctx context.Context, id string) (*entity.Alert, error)
	List(ctx context.Context, filter AlertFilter) ([]*entity.Alert, error)
	Stats(ctx context.Context) (AlertStats, error)
	MarkRead(ctx context.Context, id string) error
	MarkEmailSent(ctx context.Context, id string) error
	// Resolve transitions active -> resolved, stamping resolved_at and the
	// operator-supplied action. Resolving an already-resolved alert is a
	// conflict.
	Resolve(ctx context.Context, id, actionTaken string) error
}
