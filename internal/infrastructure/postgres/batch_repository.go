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

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implements the BatchRepository port over PostgreSQL.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository builds the persistence adapter. Pass pool or tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

// CreateOperation persists a new batch operation header.
func (r *BatchRepo) CreateOperation(ctx context.Context, op *entity.BatchOperation) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO batch_operations (id, operation_type, category, price_adjustment, restock_amount,
			status, total_items, processed_items, failed_items, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		op.ID, op.OperationType, nullable(op.Category), op.PriceAdjustment, op.RestockAmount,
		op.Status, op.TotalItems, op.ProcessedItems, op.FailedItems, op.CreatedAt, op.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert batch operation: %w", err)
	}
	return nil
}

// GetOperation returns one operation, nil when missing.
func (r *BatchRepo) GetOperation(ctx context.Context, id string) (*entity.BatchOperation, error) {
	var op entity.BatchOperation
	var category *string
	err := r.q.QueryRow(ctx, `
		SELECT id, operation_type, category, price_adjustment, restock_amount,
			status, total_items, processed_items, failed_items, created_at, completed_at
		FROM batch_operations WHERE id = $1`, id).
		Scan(&op.ID, &op.OperationType, &category, &op.PriceAdjustment, &op.RestockAmount,
			&op.Status, &op.TotalItems, &op.ProcessedItems, &op.FailedItems, &op.CreatedAt, &op.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch operation: %w", err)
	}
	op.Category = deref(category)
	return &op, nil
}

// ListOperations returns operations, newest first.
func (r *BatchRepo) ListOperations(ctx context.Context, limit, offset int) ([]*entity.BatchOperation, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, operation_type, category, price_adjustment, restock_amount,
			status, total_items, processed_items, failed_items, created_at, completed_at
		FROM batch_operations ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list batch operations: %w", err)
	}
	defer rows.Close()

	var ops []*entity.BatchOperation
	for rows.Next() {
		var op entity.BatchOperation
		var category *string
		if err := rows.Scan(&op.ID, &op.OperationType, &category, &op.PriceAdjustment, &op.RestockAmount,
			&op.Status, &op.TotalItems, &op.ProcessedItems, &op.FailedItems, &op.CreatedAt, &op.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan batch operation: %w", err)
		}
		op.Category = deref(category)
		ops = append(ops, &op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batch operation rows: %w", err)
	}
	return ops, nil
}

// UpdateOperation rewrites the counters and status.
func (r *BatchRepo) UpdateOperation(ctx context.Context, op *entity.BatchOperation) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE batch_operations
		SET status = $2, total_items = $3, processed_items = $4, failed_items = $5, completed_at = $6
		WHERE id = $1`,
		op.ID, op.Status, op.TotalItems, op.ProcessedItems, op.FailedItems, op.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("update batch operation: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreateItem records one per-item outcome row.
func (r *BatchRepo) CreateItem(ctx context.Context, item *entity.BatchOperationItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO batch_operation_items (id, batch_id, inventory_id, status, error_message)
		VALUES ($1, $2, $3, $4, $5)`,
		item.ID, item.BatchID, item.InventoryID, item.Status, item.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("insert batch operation item: %w", err)
	}
	return nil
}

// ListItems returns the per-item outcomes of one operation.
func (r *BatchRepo) ListItems(ctx context.Context, batchID string) ([]*entity.BatchOperationItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, batch_id, inventory_id, status, error_message
		FROM batch_operation_items WHERE batch_id = $1`, batchID)
	if err != nil {
		return nil, fmt.Errorf("list batch operation items: %w", err)
	}
	defer rows.Close()

	var items []*entity.BatchOperationItem
	for rows.Next() {
		var it entity.BatchOperationItem
		if err := rows.Scan(&it.ID, &it.BatchID, &it.InventoryID, &it.Status, &it.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan batch operation item: %w", err)
		}
		items = append(items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batch operation item rows: %w", err)
	}
	return items, nil
}
