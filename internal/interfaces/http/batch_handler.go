package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/kaynetech/RetailRx/internal/application/dto"
	"github.com/kaynetech/RetailRx/internal/application/usecase"
	"github.com/kaynetech/RetailRx/internal/domain"
)

// BatchHandler handles HTTP requests for batch inventory operations.
type BatchHandler struct {
	uc *usecase.BatchUseCase
}

// NewBatchHandler builds the handler.
func NewBatchHandler(uc *usecase.BatchUseCase) *BatchHandler {
	return &BatchHandler{uc: uc}
}

// Run godoc
// @Summary      Run a batch operation
// @Tags         batches
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBatchOperationRequest  true  "Operation parameters"
// @Success      201   {object}  dto.BatchOperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/batches [post]
func (h *BatchHandler) Run(c *fiber.Ctx) error {
	var in dto.CreateBatchOperationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.uc.Run(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetOperation godoc
// @Summary      Get batch operation by ID
// @Tags         batches
// @Produce      json
// @Param        id   path  string  true  "Operation ID"
// @Success      200  {object}  dto.BatchOperationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/{id} [get]
func (h *BatchHandler) GetOperation(c *fiber.Ctx) error {
	out, err := h.uc.GetOperation(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "operation not found"})
	}
	return c.JSON(out)
}

// ListOperations godoc
// @Summary      List batch operations
// @Tags         batches
// @Produce      json
// @Param        limit   query  int  false  "Limit"   default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.BatchOperationListResponse
// @Router       /api/batches [get]
func (h *BatchHandler) ListOperations(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListOperations(c.Context(), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListItems godoc
// @Summary      List per-item outcomes of a batch operation
// @Tags         batches
// @Produce      json
// @Param        id   path  string  true  "Operation ID"
// @Success      200  {array}  dto.BatchOperationItemResponse
// @Router       /api/batches/{id}/items [get]
func (h *BatchHandler) ListItems(c *fiber.Ctx) error {
	out, err := h.uc.ListItems(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
