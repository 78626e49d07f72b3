package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaynetech/RetailRx/internal/application/dto"
	"github.com/kaynetech/RetailRx/internal/domain"
	"github.com/kaynetech/RetailRx/internal/domain/entity"
	"github.com/kaynetech/RetailRx/internal/domain/repository"
	"github.com/kaynetech/RetailRx/pkg/logger"
)

func prescriptionFixture() (*PrescriptionUseCase, *memPrescriptionRepo, *memRefillRepo) {
	rxRepo := newMemPrescriptionRepo()
	refillRepo := newMemRefillRepo()
	customerRepo := newMemCustomerRepo(&entity.Customer{ID: "cust-1", Name: "Ana Ruiz"})
	uc := NewPrescriptionUseCase(rxRepo, refillRepo, customerRepo, logger.Nop())
	return uc, rxRepo, refillRepo
}

func filePrescription(t *testing.T, uc *PrescriptionUseCase) *dto.PrescriptionResponse {
	t.Helper()
	resp, err := uc.Create(context.Background(), dto.CreatePrescriptionRequest{
		CustomerID:     "cust-1",
		MedicationName: "Lisinopril 10mg",
		Dosage:         "1 tablet daily",
		Quantity:       30,
		Refills:        2,
		PrescriberName: "Dr. Okafor",
	})
	require.NoError(t, err)
	require.NotNil(t, resp)
	return resp
}

func TestPrescriptionCreate_StartsPending(t *testing.T) {
	uc, _, _ := prescriptionFixture()

	resp := filePrescription(t, uc)

	assert.Equal(t, entity.PrescriptionPending, resp.Status)
	assert.Equal(t, 2, resp.RefillsRemaining)
	assert.Nil(t, resp.VerifiedAt)
}

func TestPrescriptionCreate_UnknownCustomer(t *testing.T) {
	uc, _, _ := prescriptionFixture()

	_, err := uc.Create(context.Background(), dto.CreatePrescriptionRequest{
		CustomerID:     "cust-missing",
		MedicationName: "Lisinopril 10mg",
		Quantity:       30,
		PrescriberName: "Dr. Okafor",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPrescriptionVerify_ApproveStampsVerifiedAt(t *testing.T) {
	uc, _, _ := prescriptionFixture()
	rx := filePrescription(t, uc)

	resp, err := uc.Verify(context.Background(), rx.ID, dto.VerifyPrescriptionRequest{Approve: true})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, entity.PrescriptionVerified, resp.Status)
	require.NotNil(t, resp.VerifiedAt)
}

func TestPrescriptionVerify_RejectKeepsNotes(t *testing.T) {
	uc, _, _ := prescriptionFixture()
	rx := filePrescription(t, uc)

	resp, err := uc.Verify(context.Background(), rx.ID, dto.VerifyPrescriptionRequest{
		Approve: false,
		Notes:   "illegible prescriber signature",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PrescriptionRejected, resp.Status)
	assert.Equal(t, "illegible prescriber signature", resp.Notes)
	assert.Nil(t, resp.VerifiedAt)
}

func TestPrescriptionVerify_TwiceConflicts(t *testing.T) {
	uc, _, _ := prescriptionFixture()
	rx := filePrescription(t, uc)

	_, err := uc.Verify(context.Background(), rx.ID, dto.VerifyPrescriptionRequest{Approve: true})
	require.NoError(t, err)

	_, err = uc.Verify(context.Background(), rx.ID, dto.VerifyPrescriptionRequest{Approve: true})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestPrescriptionDispense_RequiresVerified(t *testing.T) {
	uc, _, _ := prescriptionFixture()
	rx := filePrescription(t, uc)

	_, err := uc.Dispense(context.Background(), rx.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Verify(context.Background(), rx.ID, dto.VerifyPrescriptionRequest{Approve: true})
	require.NoError(t, err)

	resp, err := uc.Dispense(context.Background(), rx.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PrescriptionDispensed, resp.Status)
	require.NotNil(t, resp.DispensedAt)
}

func dispensedPrescription(t *testing.T, uc *PrescriptionUseCase) *dto.PrescriptionResponse {
	t.Helper()
	rx := filePrescription(t, uc)
	_, err := uc.Verify(context.Background(), rx.ID, dto.VerifyPrescriptionRequest{Approve: true})
	require.NoError(t, err)
	resp, err := uc.Dispense(context.Background(), rx.ID)
	require.NoError(t, err)
	return resp
}

func TestRequestRefill_NumbersSequentially(t *testing.T) {
	uc, _, _ := prescriptionFixture()
	rx := dispensedPrescription(t, uc)

	first, err := uc.RequestRefill(context.Background(), dto.CreateRefillRequest{PrescriptionID: rx.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, first.RefillNumber)
	assert.Equal(t, entity.RefillPending, first.Status)

	_, err = uc.UpdateRefillStatus(context.Background(), first.ID, dto.UpdateRefillStatusRequest{Status: entity.RefillApproved})
	require.NoError(t, err)
	_, err = uc.UpdateRefillStatus(context.Background(), first.ID, dto.UpdateRefillStatusRequest{Status: entity.RefillFilled})
	require.NoError(t, err)

	second, err := uc.RequestRefill(context.Background(), dto.CreateRefillRequest{PrescriptionID: rx.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, second.RefillNumber)
}

func TestRequestRefill_OpenRequestBlocksAnother(t *testing.T) {
	uc, _, _ := prescriptionFixture()
	rx := dispensedPrescription(t, uc)

	_, err := uc.RequestRefill(context.Background(), dto.CreateRefillRequest{PrescriptionID: rx.ID})
	require.NoError(t, err)

	_, err = uc.RequestRefill(context.Background(), dto.CreateRefillRequest{PrescriptionID: rx.ID})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRequestRefill_UndispensedConflicts(t *testing.T) {
	uc, _, _ := prescriptionFixture()
	rx := filePrescription(t, uc)

	_, err := uc.RequestRefill(context.Background(), dto.CreateRefillRequest{PrescriptionID: rx.ID})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRequestRefill_ExhaustedRefillsConflict(t *testing.T) {
	uc, rxRepo, _ := prescriptionFixture()
	rx := dispensedPrescription(t, uc)

	stored := rxRepo.prescriptions[rx.ID]
	stored.RefillsRemaining = 0

	_, err := uc.RequestRefill(context.Background(), dto.CreateRefillRequest{PrescriptionID: rx.ID})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdateRefillStatus_FillConsumesRefill(t *testing.T) {
	uc, rxRepo, _ := prescriptionFixture()
	rx := dispensedPrescription(t, uc)
	fixed := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	uc.WithClock(func() time.Time { return fixed })

	req, err := uc.RequestRefill(context.Background(), dto.CreateRefillRequest{PrescriptionID: rx.ID})
	require.NoError(t, err)

	_, err = uc.UpdateRefillStatus(context.Background(), req.ID, dto.UpdateRefillStatusRequest{Status: entity.RefillApproved})
	require.NoError(t, err)

	filled, err := uc.UpdateRefillStatus(context.Background(), req.ID, dto.UpdateRefillStatusRequest{Status: entity.RefillFilled})
	require.NoError(t, err)

	assert.Equal(t, entity.RefillFilled, filled.Status)
	require.NotNil(t, filled.FilledAt)
	assert.Equal(t, fixed, *filled.FilledAt)
	assert.Equal(t, 1, rxRepo.prescriptions[rx.ID].RefillsRemaining)
}

func TestUpdateRefillStatus_PendingCannotBeFilled(t *testing.T) {
	uc, _, _ := prescriptionFixture()
	rx := dispensedPrescription(t, uc)

	req, err := uc.RequestRefill(context.Background(), dto.CreateRefillRequest{PrescriptionID: rx.ID})
	require.NoError(t, err)

	_, err = uc.UpdateRefillStatus(context.Background(), req.ID, dto.UpdateRefillStatusRequest{Status: entity.RefillFilled})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestListRefills_FiltersByPrescription(t *testing.T) {
	uc, _, refillRepo := prescriptionFixture()
	rx := dispensedPrescription(t, uc)

	_, err := uc.RequestRefill(context.Background(), dto.CreateRefillRequest{PrescriptionID: rx.ID})
	require.NoError(t, err)
	refillRepo.refills["other"] = &entity.RefillRequest{ID: "other", PrescriptionID: "rx-other", Status: entity.RefillPending}

	resp, err := uc.ListRefills(context.Background(), repository.RefillFilter{PrescriptionID: rx.ID})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, rx.ID, resp.Items[0].PrescriptionID)
}
