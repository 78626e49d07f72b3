package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kaynetech/RetailRx/internal/domain"
	"github.com/kaynetech/RetailRx/internal/domain/entity"
	"github.com/kaynetech/RetailRx/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

const alertColumns = `id, inventory_id, sku, batch_number, alert_type, severity, message,
	quantity, days_until_expiry, status, is_read, email_sent, action_taken,
	created_at, updated_at, resolved_at`

// AlertRepo implements the AlertRepository port over PostgreSQL.
type AlertRepo struct {
	q Querier
}

// NewAlertRepository builds the persistence adapter. Pass pool or tx (Querier).
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

// Upsert inserts the alert or refreshes the existing active one for the same
// (inventory, alert type). The partial unique index ux_alerts_active backs the
// conflict target, so resolved rows never collide with new inserts. xmax = 0
// distinguishes a fresh insert from a conflict-update on the returned row.
func (r *AlertRepo) Upsert(ctx context.Context, alert *entity.Alert) (bool, error) {
	query := `
		INSERT INTO alerts (id, inventory_id, sku, batch_number, alert_type, severity, message,
			quantity, days_until_expiry, status, is_read, email_sent, action_taken, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'active', false, false, '', $10, $10)
		ON CONFLICT (inventory_id, alert_type) WHERE status = 'active'
		DO UPDATE SET severity = EXCLUDED.severity,
			message = EXCLUDED.message,
			quantity = EXCLUDED.quantity,
			days_until_expiry = EXCLUDED.days_until_expiry,
			batch_number = EXCLUDED.batch_number,
			updated_at = EXCLUDED.updated_at
		RETURNING (xmax = 0)`
	var created bool
	err := r.q.QueryRow(ctx, query,
		alert.ID, alert.InventoryID, alert.SKU, nullable(alert.BatchNumber),
		alert.AlertType, alert.Severity, alert.Message,
		alert.Quantity, alert.DaysUntilExpiry, alert.CreatedAt,
	).Scan(&created)
	if err != nil {
		return false, fmt.Errorf("upsert alert: %w", err)
	}
	return created, nil
}

// GetByID returns one alert, nil when missing.
func (r *AlertRepo) GetByID(ctx context.Context, id string) (*entity.Alert, error) {
	row := r.q.QueryRow(ctx, `SELECT `+alertColumns+` FROM alerts WHERE id = $1`, id)
	return scanAlert(row)
}

// List returns alerts matching the filter, newest first.
func (r *AlertRepo) List(ctx context.Context, filter repository.AlertFilter) ([]*entity.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE 1=1`
	args := []any{}
	n := 0
	if filter.Status != "" {
		n++
		query += fmt.Sprintf(" AND status = $%d", n)
		args = append(args, filter.Status)
	}
	if filter.Severity != "" {
		n++
		query += fmt.Sprintf(" AND severity = $%d", n)
		args = append(args, filter.Severity)
	}
	if filter.AlertType != "" {
		n++
		query += fmt.Sprintf(" AND alert_type = $%d", n)
		args = append(args, filter.AlertType)
	}
	if filter.Unread {
		query += " AND is_read = false"
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		n++
		query += fmt.Sprintf(" LIMIT $%d", n)
		args = append(args, filter.Limit)
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()

	var alerts []*entity.Alert
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate alert rows: %w", err)
	}
	return alerts, nil
}

// Stats returns the dashboard counters in one query.
func (r *AlertRepo) Stats(ctx context.Context) (repository.AlertStats, error) {
	var s repository.AlertStats
	err := r.q.QueryRow(ctx, `
		SELECT count(*),
			count(*) FILTER (WHERE NOT is_read),
			count(*) FILTER (WHERE status = 'active' AND severity = 'critical'),
			count(*) FILTER (WHERE status = 'active' AND severity = 'high'),
			count(*) FILTER (WHERE status = 'resolved')
		FROM alerts`).Scan(&s.Total, &s.Unread, &s.Critical, &s.High, &s.Resolved)
	if err != nil {
		return repository.AlertStats{}, fmt.Errorf("alert stats: %w", err)
	}
	return s, nil
}

// MarkRead flags the alert as read.
func (r *AlertRepo) MarkRead(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE alerts SET is_read = true, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark alert read: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkEmailSent flags the alert as notified.
func (r *AlertRepo) MarkEmailSent(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE alerts SET email_sent = true, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark alert email sent: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Resolve transitions active -> resolved with the operator's action. The
// status guard makes resolving twice a conflict, not a silent overwrite.
func (r *AlertRepo) Resolve(ctx context.Context, id, actionTaken string) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE alerts SET status = 'resolved', action_taken = $2, resolved_at = now(), updated_at = now()
		WHERE id = $1 AND status = 'active'`, id, actionTaken)
	if err != nil {
		return fmt.Errorf("resolve alert: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		var status string
		err := r.q.QueryRow(ctx, `SELECT status FROM alerts WHERE id = $1`, id).Scan(&status)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("resolve alert lookup: %w", err)
		}
		return domain.ErrAlreadyResolved
	}
	return nil
}

func scanAlert(row pgx.Row) (*entity.Alert, error) {
	var a entity.Alert
	var batch *string
	err := row.Scan(
		&a.ID, &a.InventoryID, &a.SKU, &batch, &a.AlertType, &a.Severity, &a.Message,
		&a.Quantity, &a.DaysUntilExpiry, &a.Status, &a.IsRead, &a.EmailSent, &a.ActionTaken,
		&a.CreatedAt, &a.UpdatedAt, &a.ResolvedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan alert: %w", err)
	}
	a.BatchNumber = deref(batch)
	return &a, nil
}
