package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaynetech/RetailRx/internal/application/dto"
	"github.com/kaynetech/RetailRx/internal/application/usecase"
	"github.com/kaynetech/RetailRx/internal/domain/entity"
	"github.com/kaynetech/RetailRx/internal/domain/repository"
	apphttp "github.com/kaynetech/RetailRx/internal/interfaces/http"
	"github.com/kaynetech/RetailRx/pkg/logger"
)

type fakePrescriptionRepo struct {
	prescriptions map[string]*entity.Prescription
}

func (f *fakePrescriptionRepo) Create(_ context.Context, p *entity.Prescription) error {
	f.prescriptions[p.ID] = p
	return nil
}

func (f *fakePrescriptionRepo) GetByID(_ context.Context, id string) (*entity.Prescription, error) {
	p, ok := f.prescriptions[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakePrescriptionRepo) List(_ context.Context, filter repository.PrescriptionFilter) ([]*entity.Prescription, error) {
	var out []*entity.Prescription
	for _, p := range f.prescriptions {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePrescriptionRepo) Update(_ context.Context, p *entity.Prescription) error {
	f.prescriptions[p.ID] = p
	return nil
}

type fakeRefillRepo struct {
	refills map[string]*entity.RefillRequest
}

func (f *fakeRefillRepo) Create(_ context.Context, r *entity.RefillRequest) error {
	f.refills[r.ID] = r
	return nil
}

func (f *fakeRefillRepo) GetByID(_ context.Context, id string) (*entity.RefillRequest, error) {
	r, ok := f.refills[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRefillRepo) List(_ context.Context, filter repository.RefillFilter) ([]*entity.RefillRequest, error) {
	var out []*entity.RefillRequest
	for _, r := range f.refills {
		if filter.PrescriptionID != "" && r.PrescriptionID != filter.PrescriptionID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRefillRepo) Update(_ context.Context, r *entity.RefillRequest) error {
	f.refills[r.ID] = r
	return nil
}

type fakeCustomerRepo struct {
	repository.CustomerRepository
	customers map[string]*entity.Customer
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	return f.customers[id], nil
}

func buildPrescriptionApp() *fiber.App {
	rxRepo := &fakePrescriptionRepo{prescriptions: map[string]*entity.Prescription{}}
	refillRepo := &fakeRefillRepo{refills: map[string]*entity.RefillRequest{}}
	customerRepo := &fakeCustomerRepo{customers: map[string]*entity.Customer{
		"cust-1": {ID: "cust-1", Name: "Ana Ruiz"},
	}}
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		PrescriptionUC: usecase.NewPrescriptionUseCase(rxRepo, refillRepo, customerRepo, logger.Nop()),
	})
	return app
}

func decodePrescription(t *testing.T, resp *http.Response) dto.PrescriptionResponse {
	t.Helper()
	var out dto.PrescriptionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestPrescriptionLifecycleOverHTTP(t *testing.T) {
	app := buildPrescriptionApp()

	resp := postJSON(t, app, "/api/prescriptions", dto.CreatePrescriptionRequest{
		CustomerID:     "cust-1",
		MedicationName: "Metformin 850mg",
		Quantity:       60,
		Refills:        1,
		PrescriberName: "Dr. Vance",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	rx := decodePrescription(t, resp)
	assert.Equal(t, entity.PrescriptionPending, rx.Status)

	resp = postJSON(t, app, "/api/prescriptions/"+rx.ID+"/verify", dto.VerifyPrescriptionRequest{Approve: true})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.PrescriptionVerified, decodePrescription(t, resp).Status)

	resp = postJSON(t, app, "/api/prescriptions/"+rx.ID+"/dispense", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	dispensed := decodePrescription(t, resp)
	assert.Equal(t, entity.PrescriptionDispensed, dispensed.Status)
	assert.NotNil(t, dispensed.DispensedAt)
}

func TestPrescriptionVerifyTwiceConflictsOverHTTP(t *testing.T) {
	app := buildPrescriptionApp()

	resp := postJSON(t, app, "/api/prescriptions", dto.CreatePrescriptionRequest{
		CustomerID:     "cust-1",
		MedicationName: "Metformin 850mg",
		Quantity:       60,
		PrescriberName: "Dr. Vance",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	rx := decodePrescription(t, resp)

	resp = postJSON(t, app, "/api/prescriptions/"+rx.ID+"/verify", dto.VerifyPrescriptionRequest{Approve: false, Notes: "missing DEA number"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = postJSON(t, app, "/api/prescriptions/"+rx.ID+"/verify", dto.VerifyPrescriptionRequest{Approve: true})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestRefillRequestOverHTTP(t *testing.T) {
	app := buildPrescriptionApp()

	resp := postJSON(t, app, "/api/prescriptions", dto.CreatePrescriptionRequest{
		CustomerID:     "cust-1",
		MedicationName: "Metformin 850mg",
		Quantity:       60,
		Refills:        1,
		PrescriberName: "Dr. Vance",
	})
	rx := decodePrescription(t, resp)
	postJSON(t, app, "/api/prescriptions/"+rx.ID+"/verify", dto.VerifyPrescriptionRequest{Approve: true})
	postJSON(t, app, "/api/prescriptions/"+rx.ID+"/dispense", nil)

	resp = postJSON(t, app, "/api/refills", dto.CreateRefillRequest{PrescriptionID: rx.ID})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var refill dto.RefillResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&refill))
	assert.Equal(t, 1, refill.RefillNumber)

	// a second request while the first is still open
	resp = postJSON(t, app, "/api/refills", dto.CreateRefillRequest{PrescriptionID: rx.ID})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = postJSON(t, app, "/api/refills", dto.CreateRefillRequest{PrescriptionID: "rx-missing"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
