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

var _ repository.PrescriptionRepository = (*PrescriptionRepo)(nil)
var _ repository.RefillRepository = (*RefillRepo)(nil)

// PrescriptionRepo implements the PrescriptionRepository port over PostgreSQL.
type PrescriptionRepo struct {
	q Querier
}

// NewPrescriptionRepository builds the persistence adapter.
func NewPrescriptionRepository(q Querier) *PrescriptionRepo {
	return &PrescriptionRepo{q: q}
}

const prescriptionColumns = `id, customer_id, medication_name, dosage, quantity, refills_remaining,
	prescriber_name, status, notes, verified_at, dispensed_at, created_at, updated_at`

func scanPrescription(row pgx.Row) (*entity.Prescription, error) {
	var p entity.Prescription
	err := row.Scan(&p.ID, &p.CustomerID, &p.MedicationName, &p.Dosage, &p.Quantity, &p.RefillsRemaining,
		&p.PrescriberName, &p.Status, &p.Notes, &p.VerifiedAt, &p.DispensedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persists a prescription.
func (r *PrescriptionRepo) Create(ctx context.Context, p *entity.Prescription) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO prescriptions (`+prescriptionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		p.ID, p.CustomerID, p.MedicationName, p.Dosage, p.Quantity, p.RefillsRemaining,
		p.PrescriberName, p.Status, p.Notes, p.VerifiedAt, p.DispensedAt, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert prescription: %w", err)
	}
	return nil
}

// GetByID returns one prescription, nil when missing.
func (r *PrescriptionRepo) GetByID(ctx context.Context, id string) (*entity.Prescription, error) {
	p, err := scanPrescription(r.q.QueryRow(ctx, `
		SELECT `+prescriptionColumns+` FROM prescriptions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get prescription: %w", err)
	}
	return p, nil
}

// List returns prescriptions matching the filter, newest first.
func (r *PrescriptionRepo) List(ctx context.Context, filter repository.PrescriptionFilter) ([]*entity.Prescription, error) {
	query := `SELECT ` + prescriptionColumns + ` FROM prescriptions WHERE 1=1`
	args := []any{}
	if filter.CustomerID != "" {
		args = append(args, filter.CustomerID)
		query += fmt.Sprintf(" AND customer_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list prescriptions: %w", err)
	}
	defer rows.Close()

	var out []*entity.Prescription
	for rows.Next() {
		p, err := scanPrescription(rows)
		if err != nil {
			return nil, fmt.Errorf("scan prescription: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate prescription rows: %w", err)
	}
	return out, nil
}

// Update rewrites the mutable prescription fields.
func (r *PrescriptionRepo) Update(ctx context.Context, p *entity.Prescription) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE prescriptions
		SET refills_remaining = $2, status = $3, notes = $4, verified_at = $5, dispensed_at = $6, updated_at = $7
		WHERE id = $1`,
		p.ID, p.RefillsRemaining, p.Status, p.Notes, p.VerifiedAt, p.DispensedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update prescription: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RefillRepo implements the RefillRepository port over PostgreSQL.
type RefillRepo struct {
	q Querier
}

// NewRefillRepository builds the persistence adapter.
func NewRefillRepository(q Querier) *RefillRepo {
	return &RefillRepo{q: q}
}

const refillColumns = `id, prescription_id, customer_id, refill_number, status, notes, requested_at, filled_at, updated_at`

func scanRefill(row pgx.Row) (*entity.RefillRequest, error) {
	var req entity.RefillRequest
	err := row.Scan(&req.ID, &req.PrescriptionID, &req.CustomerID, &req.RefillNumber,
		&req.Status, &req.Notes, &req.RequestedAt, &req.FilledAt, &req.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Create persists a refill request.
func (r *RefillRepo) Create(ctx context.Context, req *entity.RefillRequest) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO prescription_refills (`+refillColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		req.ID, req.PrescriptionID, req.CustomerID, req.RefillNumber,
		req.Status, req.Notes, req.RequestedAt, req.FilledAt, req.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert refill request: %w", err)
	}
	return nil
}

// GetByID returns one refill request, nil when missing.
func (r *RefillRepo) GetByID(ctx context.Context, id string) (*entity.RefillRequest, error) {
	req, err := scanRefill(r.q.QueryRow(ctx, `
		SELECT `+refillColumns+` FROM prescription_refills WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get refill request: %w", err)
	}
	return req, nil
}

// List returns refill requests matching the filter, in refill order.
func (r *RefillRepo) List(ctx context.Context, filter repository.RefillFilter) ([]*entity.RefillRequest, error) {
	query := `SELECT ` + refillColumns + ` FROM prescription_refills WHERE 1=1`
	args := []any{}
	if filter.PrescriptionID != "" {
		args = append(args, filter.PrescriptionID)
		query += fmt.Sprintf(" AND prescription_id = $%d", len(args))
	}
	if filter.CustomerID != "" {
		args = append(args, filter.CustomerID)
		query += fmt.Sprintf(" AND customer_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY requested_at, refill_number"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list refill requests: %w", err)
	}
	defer rows.Close()

	var out []*entity.RefillRequest
	for rows.Next() {
		req, err := scanRefill(rows)
		if err != nil {
			return nil, fmt.Errorf("scan refill request: %w", err)
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate refill rows: %w", err)
	}
	return out, nil
}

// Update rewrites the mutable refill fields.
func (r *RefillRepo) Update(ctx context.Context, req *entity.RefillRequest) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE prescription_refills
		SET status = $2, notes = $3, filled_at = $4, updated_at = $5
		WHERE id = $1`,
		req.ID, req.Status, req.Notes, req.FilledAt, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update refill request: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
