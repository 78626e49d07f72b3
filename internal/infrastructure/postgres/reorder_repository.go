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

var (
	_ repository.ReorderRuleRepository    = (*ReorderRuleRepo)(nil)
	_ repository.ReorderHistoryRepository = (*ReorderHistoryRepo)(nil)
)

// ReorderRuleRepo implements the ReorderRuleRepository port over PostgreSQL.
type ReorderRuleRepo struct {
	q Querier
}

// NewReorderRuleRepository builds the persistence adapter. Pass pool or tx (Querier).
func NewReorderRuleRepository(q Querier) *ReorderRuleRepo {
	return &ReorderRuleRepo{q: q}
}

// Create persists a rule. One rule per inventory item.
func (r *ReorderRuleRepo) Create(ctx context.Context, rule *entity.ReorderRule) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO reorder_rules (id, inventory_id, reorder_point, reorder_quantity, auto_reorder, supplier_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rule.ID, rule.InventoryID, rule.ReorderPoint, rule.ReorderQuantity,
		rule.AutoReorder, nullable(rule.SupplierID), rule.CreatedAt, rule.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert reorder rule: %w", err)
	}
	return nil
}

// GetByID returns one rule, nil when missing.
func (r *ReorderRuleRepo) GetByID(ctx context.Context, id string) (*entity.ReorderRule, error) {
	row := r.q.QueryRow(ctx, `
		SELECT id, inventory_id, reorder_point, reorder_quantity, auto_reorder, supplier_id, created_at, updated_at
		FROM reorder_rules WHERE id = $1`, id)
	return scanReorderRule(row)
}

// GetByInventoryID returns the rule for an item, nil when absent.
func (r *ReorderRuleRepo) GetByInventoryID(ctx context.Context, inventoryID string) (*entity.ReorderRule, error) {
	row := r.q.QueryRow(ctx, `
		SELECT id, inventory_id, reorder_point, reorder_quantity, auto_reorder, supplier_id, created_at, updated_at
		FROM reorder_rules WHERE inventory_id = $1`, inventoryID)
	return scanReorderRule(row)
}

// List returns rules, newest first.
func (r *ReorderRuleRepo) List(ctx context.Context, limit, offset int) ([]*entity.ReorderRule, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, inventory_id, reorder_point, reorder_quantity, auto_reorder, supplier_id, created_at, updated_at
		FROM reorder_rules ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reorder rules: %w", err)
	}
	defer rows.Close()
	return collectReorderRules(rows)
}

// ListActive returns the rules with auto reorder enabled. The engine evaluates
// exactly this set on every tick.
func (r *ReorderRuleRepo) ListActive(ctx context.Context) ([]*entity.ReorderRule, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, inventory_id, reorder_point, reorder_quantity, auto_reorder, supplier_id, created_at, updated_at
		FROM reorder_rules WHERE auto_reorder ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list active reorder rules: %w", err)
	}
	defer rows.Close()
	return collectReorderRules(rows)
}

// Update rewrites the rule's thresholds and supplier.
func (r *ReorderRuleRepo) Update(ctx context.Context, rule *entity.ReorderRule) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE reorder_rules SET reorder_point = $2, reorder_quantity = $3, auto_reorder = $4, supplier_id = $5, updated_at = $6
		WHERE id = $1`,
		rule.ID, rule.ReorderPoint, rule.ReorderQuantity, rule.AutoReorder, nullable(rule.SupplierID), rule.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update reorder rule: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetAutoReorder toggles the rule.
func (r *ReorderRuleRepo) SetAutoReorder(ctx context.Context, id string, enabled bool) error {
	cmd, err := r.q.Exec(ctx, `UPDATE reorder_rules SET auto_reorder = $2, updated_at = now() WHERE id = $1`, id, enabled)
	if err != nil {
		return fmt.Errorf("toggle reorder rule: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a rule.
func (r *ReorderRuleRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM reorder_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete reorder rule: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanReorderRule(row pgx.Row) (*entity.ReorderRule, error) {
	var rule entity.ReorderRule
	var supplierID *string
	err := row.Scan(&rule.ID, &rule.InventoryID, &rule.ReorderPoint, &rule.ReorderQuantity,
		&rule.AutoReorder, &supplierID, &rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan reorder rule: %w", err)
	}
	rule.SupplierID = deref(supplierID)
	return &rule, nil
}

func collectReorderRules(rows pgx.Rows) ([]*entity.ReorderRule, error) {
	var rules []*entity.ReorderRule
	for rows.Next() {
		rule, err := scanReorderRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reorder rule rows: %w", err)
	}
	return rules, nil
}

// ReorderHistoryRepo implements the ReorderHistoryRepository port over PostgreSQL.
type ReorderHistoryRepo struct {
	q Querier
}

// NewReorderHistoryRepository builds the persistence adapter. Pass pool or tx (Querier).
func NewReorderHistoryRepository(q Querier) *ReorderHistoryRepo {
	return &ReorderHistoryRepo{q: q}
}

// Create records a triggered reorder event.
func (r *ReorderHistoryRepo) Create(ctx context.Context, event *entity.ReorderHistory) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO reorder_history (id, inventory_id, quantity, status, po_number, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		event.ID, event.InventoryID, event.Quantity, event.Status, event.PONumber, event.CreatedAt, event.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert reorder event: %w", err)
	}
	return nil
}

// GetByID returns one event, nil when missing.
func (r *ReorderHistoryRepo) GetByID(ctx context.Context, id string) (*entity.ReorderHistory, error) {
	var h entity.ReorderHistory
	err := r.q.QueryRow(ctx, `
		SELECT id, inventory_id, quantity, status, po_number, created_at, completed_at
		FROM reorder_history WHERE id = $1`, id).
		Scan(&h.ID, &h.InventoryID, &h.Quantity, &h.Status, &h.PONumber, &h.CreatedAt, &h.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reorder event: %w", err)
	}
	return &h, nil
}

// List returns events, newest first.
func (r *ReorderHistoryRepo) List(ctx context.Context, limit, offset int) ([]*entity.ReorderHistory, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, inventory_id, quantity, status, po_number, created_at, completed_at
		FROM reorder_history ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reorder history: %w", err)
	}
	defer rows.Close()

	var events []*entity.ReorderHistory
	for rows.Next() {
		var h entity.ReorderHistory
		if err := rows.Scan(&h.ID, &h.InventoryID, &h.Quantity, &h.Status, &h.PONumber, &h.CreatedAt, &h.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan reorder event: %w", err)
		}
		events = append(events, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reorder history rows: %w", err)
	}
	return events, nil
}

// HasInFlight reports whether a pending or ordered event exists for the item.
func (r *ReorderHistoryRepo) HasInFlight(ctx context.Context, inventoryID string) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM reorder_history
			WHERE inventory_id = $1 AND status IN ('pending', 'ordered')
		)`, inventoryID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("in-flight lookup: %w", err)
	}
	return ok, nil
}

// UpdateStatus advances an event, stamping completed_at on terminal states.
func (r *ReorderHistoryRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE reorder_history
		SET status = $2,
			completed_at = CASE WHEN $2 IN ('completed', 'cancelled') THEN now() ELSE completed_at END
		WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update reorder event: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
