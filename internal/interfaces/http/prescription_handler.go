package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/kaynetech/RetailRx/internal/application/dto"
	"github.com/kaynetech/RetailRx/internal/application/usecase"
	"github.com/kaynetech/RetailRx/internal/domain"
	"github.com/kaynetech/RetailRx/internal/domain/repository"
)

// PrescriptionHandler handles HTTP requests for prescriptions and refills.
type PrescriptionHandler struct {
	uc *usecase.PrescriptionUseCase
}

// NewPrescriptionHandler builds the handler.
func NewPrescriptionHandler(uc *usecase.PrescriptionUseCase) *PrescriptionHandler {
	return &PrescriptionHandler{uc: uc}
}

// Create godoc
// @Summary      File a prescription
// @Tags         prescriptions
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePrescriptionRequest  true  "Prescription data"
// @Success      201   {object}  dto.PrescriptionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/prescriptions [post]
func (h *PrescriptionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePrescriptionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "medication, prescriber and a positive quantity are required"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "customer not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Get prescription by ID
// @Tags         prescriptions
// @Produce      json
// @Param        id   path  string  true  "Prescription ID"
// @Success      200  {object}  dto.PrescriptionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/prescriptions/{id} [get]
func (h *PrescriptionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "prescription not found"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      List prescriptions
// @Tags         prescriptions
// @Produce      json
// @Param        customer_id  query  string  false  "Filter by customer"
// @Param        status       query  string  false  "Filter by status"
// @Param        limit        query  int     false  "Limit"   default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.PrescriptionListResponse
// @Router       /api/prescriptions [get]
func (h *PrescriptionHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.Context(), repository.PrescriptionFilter{
		CustomerID: c.Query("customer_id"),
		Status:     c.Query("status"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Verify godoc
// @Summary      Close the verification check on a pending prescription
// @Tags         prescriptions
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Prescription ID"
// @Param        body  body  dto.VerifyPrescriptionRequest  true  "Verification outcome"
// @Success      200   {object}  dto.PrescriptionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/prescriptions/{id}/verify [post]
func (h *PrescriptionHandler) Verify(c *fiber.Ctx) error {
	var in dto.VerifyPrescriptionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.uc.Verify(c.Context(), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "prescription is not pending verification"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "prescription not found"})
	}
	return c.JSON(out)
}

// Dispense godoc
// @Summary      Dispense a verified prescription
// @Tags         prescriptions
// @Produce      json
// @Param        id   path  string  true  "Prescription ID"
// @Success      200  {object}  dto.PrescriptionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/prescriptions/{id}/dispense [post]
func (h *PrescriptionHandler) Dispense(c *fiber.Ctx) error {
	out, err := h.uc.Dispense(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "prescription is not verified"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "prescription not found"})
	}
	return c.JSON(out)
}

// RequestRefill godoc
// @Summary      Request a refill on a dispensed prescription
// @Tags         prescriptions
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRefillRequest  true  "Refill request"
// @Success      201   {object}  dto.RefillResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/refills [post]
func (h *PrescriptionHandler) RequestRefill(c *fiber.Ctx) error {
	var in dto.CreateRefillRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.uc.RequestRefill(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "prescription not found"})
		case errors.Is(err, domain.ErrDuplicate):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "REFILL_OPEN", Message: "an open refill request already exists"})
		case errors.Is(err, domain.ErrConflict):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_REFILLABLE", Message: "prescription is not dispensed or has no refills remaining"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListRefills godoc
// @Summary      List refill requests
// @Tags         prescriptions
// @Produce      json
// @Param        prescription_id  query  string  false  "Filter by prescription"
// @Param        customer_id      query  string  false  "Filter by customer"
// @Param        status           query  string  false  "Filter by status"
// @Param        limit            query  int     false  "Limit"   default(20)
// @Param        offset           query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.RefillListResponse
// @Router       /api/refills [get]
func (h *PrescriptionHandler) ListRefills(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListRefills(c.Context(), repository.RefillFilter{
		PrescriptionID: c.Query("prescription_id"),
		CustomerID:     c.Query("customer_id"),
		Status:         c.Query("status"),
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// UpdateRefillStatus godoc
// @Summary      Advance a refill request
// @Tags         prescriptions
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Refill ID"
// @Param        body  body  dto.UpdateRefillStatusRequest  true  "Target status"
// @Success      200   {object}  dto.RefillResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/refills/{id}/status [put]
func (h *PrescriptionHandler) UpdateRefillStatus(c *fiber.Ctx) error {
	var in dto.UpdateRefillStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.uc.UpdateRefillStatus(c.Context(), c.Params("id"), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "prescription not found"})
		case errors.Is(err, domain.ErrConflict):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "refill cannot move to that status"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "refill request not found"})
	}
	return c.JSON(out)
}
