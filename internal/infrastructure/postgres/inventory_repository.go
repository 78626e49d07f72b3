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

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const inventoryColumns = `id, name, category, sku, barcode, batch_number, quantity, unit,
	cost_price, selling_price, supplier_id, location_id, expiry_date, reorder_level,
	description, created_at, updated_at`

// InventoryRepo implements the InventoryRepository port over PostgreSQL
// (usable with pool or tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository builds the persistence adapter. Pass pool or tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Create persists a new inventory item.
func (r *InventoryRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory (id, name, category, sku, barcode, batch_number, quantity, unit,
			cost_price, selling_price, supplier_id, location_id, expiry_date, reorder_level,
			description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Category, item.SKU, nullable(item.Barcode), nullable(item.BatchNumber),
		item.Quantity, item.Unit, item.CostPrice, item.SellingPrice,
		nullable(item.SupplierID), nullable(item.LocationID), item.ExpiryDate, item.ReorderLevel,
		item.Description, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// GetByID returns one item, nil when missing.
func (r *InventoryRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	row := r.q.QueryRow(ctx, `SELECT `+inventoryColumns+` FROM inventory WHERE id = $1`, id)
	return scanInventoryItem(row)
}

// GetBySKU returns one item by SKU, nil when missing.
func (r *InventoryRepo) GetBySKU(ctx context.Context, sku string) (*entity.InventoryItem, error) {
	row := r.q.QueryRow(ctx, `SELECT `+inventoryColumns+` FROM inventory WHERE sku = $1`, sku)
	return scanInventoryItem(row)
}

// List returns items matching the filter, newest first.
func (r *InventoryRepo) List(ctx context.Context, filter repository.InventoryFilter) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE 1=1`
	args := []any{}
	n := 0
	if filter.Category != "" {
		n++
		query += fmt.Sprintf(" AND category = $%d", n)
		args = append(args, filter.Category)
	}
	if filter.LocationID != "" {
		n++
		query += fmt.Sprintf(" AND location_id = $%d", n)
		args = append(args, filter.LocationID)
	}
	if filter.Search != "" {
		n++
		query += fmt.Sprintf(" AND (name ILIKE $%d OR sku ILIKE $%d OR barcode ILIKE $%d)", n, n, n)
		args = append(args, "%"+filter.Search+"%")
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
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	return collectInventoryItems(rows)
}

// Snapshot returns every row. The monitor reads this once per tick.
func (r *InventoryRepo) Snapshot(ctx context.Context) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx, `SELECT `+inventoryColumns+` FROM inventory ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("inventory snapshot: %w", err)
	}
	defer rows.Close()
	return collectInventoryItems(rows)
}

// Update rewrites the mutable fields. Quantity changes go through AdjustQuantity.
func (r *InventoryRepo) Update(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		UPDATE inventory SET name = $2, category = $3, barcode = $4, batch_number = $5,
			unit = $6, cost_price = $7, selling_price = $8, supplier_id = $9, location_id = $10,
			expiry_date = $11, reorder_level = $12, description = $13, updated_at = $14
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Category, nullable(item.Barcode), nullable(item.BatchNumber),
		item.Unit, item.CostPrice, item.SellingPrice, nullable(item.SupplierID), nullable(item.LocationID),
		item.ExpiryDate, item.ReorderLevel, item.Description, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustQuantity applies a signed delta. The WHERE guard keeps a concurrent
// decrement from driving the quantity negative.
func (r *InventoryRepo) AdjustQuantity(ctx context.Context, id string, delta int) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE inventory SET quantity = quantity + $2, updated_at = now()
		WHERE id = $1 AND quantity + $2 >= 0`, id, delta)
	if err != nil {
		return fmt.Errorf("adjust quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		exists, err := r.exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrInsufficientStock
	}
	return nil
}

// Delete removes an item.
func (r *InventoryRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM inventory WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InventoryRepo) exists(ctx context.Context, id string) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM inventory WHERE id = $1)`, id).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("inventory exists: %w", err)
	}
	return ok, nil
}

func scanInventoryItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	var barcode, batch, supplierID, locationID *string
	err := row.Scan(
		&it.ID, &it.Name, &it.Category, &it.SKU, &barcode, &batch, &it.Quantity, &it.Unit,
		&it.CostPrice, &it.SellingPrice, &supplierID, &locationID, &it.ExpiryDate, &it.ReorderLevel,
		&it.Description, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan inventory item: %w", err)
	}
	it.Barcode = deref(barcode)
	it.BatchNumber = deref(batch)
	it.SupplierID = deref(supplierID)
	it.LocationID = deref(locationID)
	return &it, nil
}

func collectInventoryItems(rows pgx.Rows) ([]*entity.InventoryItem, error) {
	var items []*entity.InventoryItem
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inventory rows: %w", err)
	}
	return items, nil
}

// nullable maps "" to NULL so optional text columns stay NULL instead of empty.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
