package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/kaynetech/RetailRx/internal/domain/entity"
	"github.com/kaynetech/RetailRx/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implements the SaleRepository port over PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository builds the persistence adapter. Pass pool or tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persists the transaction header and its lines. Callers run this
// inside TxRunner together with the stock decrements.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.SaleTransaction) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (id, transaction_number, subtotal, tax, discount, total,
			payment_method, cashier_name, customer_name, customer_phone, notes, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		sale.ID, sale.TransactionNumber, sale.Subtotal, sale.Tax, sale.Discount, sale.Total,
		sale.PaymentMethod, sale.CashierName, sale.CustomerName, sale.CustomerPhone,
		sale.Notes, sale.Status, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	for _, item := range sale.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO sale_items (id, sale_id, inventory_id, name, quantity, unit_price, line_total)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			item.ID, sale.ID, item.InventoryID, item.Name, item.Quantity, item.UnitPrice, item.LineTotal,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// GetByID returns one transaction with its lines, nil when missing.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.SaleTransaction, error) {
	var s entity.SaleTransaction
	err := r.q.QueryRow(ctx, `
		SELECT id, transaction_number, subtotal, tax, discount, total,
			payment_method, cashier_name, customer_name, customer_phone, notes, status, created_at
		FROM sales WHERE id = $1`, id).
		Scan(&s.ID, &s.TransactionNumber, &s.Subtotal, &s.Tax, &s.Discount, &s.Total,
			&s.PaymentMethod, &s.CashierName, &s.CustomerName, &s.CustomerPhone, &s.Notes, &s.Status, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	items, err := r.loadItems(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Items = items
	return &s, nil
}

// List returns transaction headers, newest first. Lines are loaded on GetByID.
func (r *SaleRepo) List(ctx context.Context, limit, offset int) ([]*entity.SaleTransaction, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, transaction_number, subtotal, tax, discount, total,
			payment_method, cashier_name, customer_name, customer_phone, notes, status, created_at
		FROM sales ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var sales []*entity.SaleTransaction
	for rows.Next() {
		var s entity.SaleTransaction
		if err := rows.Scan(&s.ID, &s.TransactionNumber, &s.Subtotal, &s.Tax, &s.Discount, &s.Total,
			&s.PaymentMethod, &s.CashierName, &s.CustomerName, &s.CustomerPhone, &s.Notes, &s.Status, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sale rows: %w", err)
	}
	return sales, nil
}

// Totals aggregates completed transactions in the window.
func (r *SaleRepo) Totals(ctx context.Context, from, to time.Time) (repository.SalesTotals, error) {
	var t repository.SalesTotals
	var revenue *decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT count(*), sum(total)
		FROM sales WHERE status = 'completed' AND created_at BETWEEN $1 AND $2`, from, to).
		Scan(&t.Transactions, &revenue)
	if err != nil {
		return repository.SalesTotals{}, fmt.Errorf("sales totals: %w", err)
	}
	if revenue != nil {
		t.Revenue = *revenue
	}
	return t, nil
}

func (r *SaleRepo) loadItems(ctx context.Context, saleID string) ([]entity.SaleItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, sale_id, inventory_id, name, quantity, unit_price, line_total
		FROM sale_items WHERE sale_id = $1 ORDER BY name`, saleID)
	if err != nil {
		return nil, fmt.Errorf("load sale items: %w", err)
	}
	defer rows.Close()

	var items []entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.InventoryID, &it.Name, &it.Quantity, &it.UnitPrice, &it.LineTotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sale item rows: %w", err)
	}
	return items, nil
}
