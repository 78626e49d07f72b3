package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kaynetech/RetailRx/internal/application/dto"
	"github.com/kaynetech/RetailRx/internal/domain"
	"github.com/kaynetech/RetailRx/internal/domain/entity"
	"github.com/kaynetech/RetailRx/internal/domain/repository"
	"github.com/kaynetech/RetailRx/pkg/logger"
)

// PrescriptionUseCase covers the prescription lifecycle: filing, the
// verification gate (pending -> verified | rejected, verified -> dispensed)
// and refill requests against dispensed prescriptions.
type PrescriptionUseCase struct {
	rxRepo       repository.PrescriptionRepository
	refillRepo   repository.RefillRepository
	customerRepo repository.CustomerRepository
	log          *logger.Logger
	now          func() time.Time
}

// NewPrescriptionUseCase builds the use case.
func NewPrescriptionUseCase(
	rxRepo repository.PrescriptionRepository,
	refillRepo repository.RefillRepository,
	customerRepo repository.CustomerRepository,
	log *logger.Logger,
) *PrescriptionUseCase {
	return &PrescriptionUseCase{
		rxRepo:       rxRepo,
		refillRepo:   refillRepo,
		customerRepo: customerRepo,
		log:          log,
		now:          time.Now,
	}
}

// WithClock overrides the time source. Tests only.
func (uc *PrescriptionUseCase) WithClock(now func() time.Time) *PrescriptionUseCase {
	uc.now = now
	return uc
}

// Create files a prescription in pending state.
func (uc *PrescriptionUseCase) Create(ctx context.Context, in dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error) {
	if in.MedicationName == "" || in.PrescriberName == "" || in.Quantity < 1 || in.Refills < 0 {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	now := uc.now()
	p := &entity.Prescription{
		ID:               uuid.New().String(),
		CustomerID:       in.CustomerID,
		MedicationName:   in.MedicationName,
		Dosage:           in.Dosage,
		Quantity:         in.Quantity,
		RefillsRemaining: in.Refills,
		PrescriberName:   in.PrescriberName,
		Status:           entity.PrescriptionPending,
		Notes:            in.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.rxRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("prescription_id", p.ID).
		Str("customer_id", p.CustomerID).
		Str("medication", p.MedicationName).
		Msg("prescription filed")
	return toPrescriptionResponse(p), nil
}

// GetByID returns one prescription, nil when missing.
func (uc *PrescriptionUseCase) GetByID(ctx context.Context, id string) (*dto.PrescriptionResponse, error) {
	p, err := uc.rxRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return toPrescriptionResponse(p), nil
}

// List returns prescriptions matching the filter.
func (uc *PrescriptionUseCase) List(ctx context.Context, filter repository.PrescriptionFilter) (*dto.PrescriptionListResponse, error) {
	list, err := uc.rxRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PrescriptionResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPrescriptionResponse(p))
	}
	return &dto.PrescriptionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// Verify closes the verification check on a pending prescription: approval
// moves it to verified, otherwise it is rejected. Any other starting state is
// a conflict.
func (uc *PrescriptionUseCase) Verify(ctx context.Context, id string, in dto.VerifyPrescriptionRequest) (*dto.PrescriptionResponse, error) {
	p, err := uc.rxRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	if p.Status != entity.PrescriptionPending {
		return nil, domain.ErrConflict
	}
	now := uc.now()
	if in.Approve {
		p.Status = entity.PrescriptionVerified
		p.VerifiedAt = &now
	} else {
		p.Status = entity.PrescriptionRejected
	}
	if in.Notes != "" {
		p.Notes = in.Notes
	}
	p.UpdatedAt = now
	if err := uc.rxRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("prescription_id", p.ID).
		Str("status", p.Status).
		Msg("prescription verification closed")
	return toPrescriptionResponse(p), nil
}

// Dispense hands out a verified prescription. Only verified prescriptions can
// be dispensed.
func (uc *PrescriptionUseCase) Dispense(ctx context.Context, id string) (*dto.PrescriptionResponse, error) {
	p, err := uc.rxRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	if p.Status != entity.PrescriptionVerified {
		return nil, domain.ErrConflict
	}
	now := uc.now()
	p.Status = entity.PrescriptionDispensed
	p.DispensedAt = &now
	p.UpdatedAt = now
	if err := uc.rxRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toPrescriptionResponse(p), nil
}

// RequestRefill opens a refill request for a dispensed prescription with
// refills remaining. At most one open (pending or approved) request per
// prescription — the same dedup the reorder engine applies to in-flight
// reorders.
func (uc *PrescriptionUseCase) RequestRefill(ctx context.Context, in dto.CreateRefillRequest) (*dto.RefillResponse, error) {
	p, err := uc.rxRepo.GetByID(ctx, in.PrescriptionID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.Status != entity.PrescriptionDispensed {
		return nil, domain.ErrConflict
	}
	if p.RefillsRemaining <= 0 {
		return nil, domain.ErrConflict
	}
	existing, err := uc.refillRepo.List(ctx, repository.RefillFilter{PrescriptionID: p.ID})
	if err != nil {
		return nil, err
	}
	for _, r := range existing {
		if r.Open() {
			return nil, domain.ErrDuplicate
		}
	}
	now := uc.now()
	req := &entity.RefillRequest{
		ID:             uuid.New().String(),
		PrescriptionID: p.ID,
		CustomerID:     p.CustomerID,
		RefillNumber:   len(existing) + 1,
		Status:         entity.RefillPending,
		Notes:          in.Notes,
		RequestedAt:    now,
		UpdatedAt:      now,
	}
	if err := uc.refillRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("refill_id", req.ID).
		Str("prescription_id", p.ID).
		Int("refill_number", req.RefillNumber).
		Msg("refill requested")
	return toRefillResponse(req), nil
}

var refillTransitions = map[string][]string{
	entity.RefillPending:  {entity.RefillApproved, entity.RefillCancelled},
	entity.RefillApproved: {entity.RefillFilled, entity.RefillCancelled},
}

func refillTransitionAllowed(from, to string) bool {
	for _, s := range refillTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// UpdateRefillStatus advances a refill request. Filling stamps filled_at and
// consumes one remaining refill on the prescription.
func (uc *PrescriptionUseCase) UpdateRefillStatus(ctx context.Context, id string, in dto.UpdateRefillStatusRequest) (*dto.RefillResponse, error) {
	req, err := uc.refillRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, nil
	}
	if !refillTransitionAllowed(req.Status, in.Status) {
		return nil, domain.ErrConflict
	}
	now := uc.now()
	req.Status = in.Status
	req.UpdatedAt = now
	if in.Status == entity.RefillFilled {
		p, err := uc.rxRepo.GetByID(ctx, req.PrescriptionID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		if p.RefillsRemaining <= 0 {
			return nil, domain.ErrConflict
		}
		p.RefillsRemaining--
		p.UpdatedAt = now
		if err := uc.rxRepo.Update(ctx, p); err != nil {
			return nil, err
		}
		req.FilledAt = &now
	}
	if err := uc.refillRepo.Update(ctx, req); err != nil {
		return nil, err
	}
	return toRefillResponse(req), nil
}

// ListRefills returns refill requests matching the filter.
func (uc *PrescriptionUseCase) ListRefills(ctx context.Context, filter repository.RefillFilter) (*dto.RefillListResponse, error) {
	list, err := uc.refillRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RefillResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toRefillResponse(r))
	}
	return &dto.RefillListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

func toPrescriptionResponse(p *entity.Prescription) *dto.PrescriptionResponse {
	return &dto.PrescriptionResponse{
		ID:               p.ID,
		CustomerID:       p.CustomerID,
		MedicationName:   p.MedicationName,
		Dosage:           p.Dosage,
		Quantity:         p.Quantity,
		RefillsRemaining: p.RefillsRemaining,
		PrescriberName:   p.PrescriberName,
		Status:           p.Status,
		Notes:            p.Notes,
		VerifiedAt:       p.VerifiedAt,
		DispensedAt:      p.DispensedAt,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func toRefillResponse(r *entity.RefillRequest) *dto.RefillResponse {
	return &dto.RefillResponse{
		ID:             r.ID,
		PrescriptionID: r.PrescriptionID,
		CustomerID:     r.CustomerID,
		RefillNumber:   r.RefillNumber,
		Status:         r.Status,
		Notes:          r.Notes,
		RequestedAt:    r.RequestedAt,
		FilledAt:       r.FilledAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
