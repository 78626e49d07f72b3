package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/kaynetech/RetailRx/internal/application/dto"
	"github.com/kaynetech/RetailRx/internal/application/usecase"
	"github.com/kaynetech/RetailRx/internal/domain"
)

// ReorderHandler handles HTTP requests for reorder rules and history.
type ReorderHandler struct {
	uc *usecase.ReorderUseCase
}

// NewReorderHandler builds the handler.
func NewReorderHandler(uc *usecase.ReorderUseCase) *ReorderHandler {
	return &ReorderHandler{uc: uc}
}

// CreateRule godoc
// @Summary      Create reorder rule
// @Tags         reorders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReorderRuleRequest  true  "Rule data"
// @Success      201   {object}  dto.ReorderRuleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/reorders/rules [post]
func (h *ReorderHandler) CreateRule(c *fiber.Ctx) error {
	var in dto.CreateReorderRuleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.uc.CreateRule(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "inventory_id, reorder_point and reorder_quantity are required"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "inventory item not found"})
		case errors.Is(err, domain.ErrDuplicate):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "a rule already exists for this item"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListRules godoc
// @Summary      List reorder rules
// @Tags         reorders
// @Produce      json
// @Param        limit   query  int  false  "Limit"   default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.ReorderRuleListResponse
// @Router       /api/reorders/rules [get]
func (h *ReorderHandler) ListRules(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListRules(c.Context(), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// UpdateRule godoc
// @Summary      Update reorder rule
// @Tags         reorders
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Rule ID"
// @Param        body  body  dto.UpdateReorderRuleRequest  true  "Fields to update"
// @Success      200   {object}  dto.ReorderRuleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/reorders/rules/{id} [put]
func (h *ReorderHandler) UpdateRule(c *fiber.Ctx) error {
	var in dto.UpdateReorderRuleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.uc.UpdateRule(c.Context(), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "rule not found"})
	}
	return c.JSON(out)
}

// ToggleRule godoc
// @Summary      Toggle auto reorder on a rule
// @Tags         reorders
// @Produce      json
// @Param        id  path  string  true  "Rule ID"
// @Success      200  {object}  dto.ReorderRuleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reorders/rules/{id}/toggle [post]
func (h *ReorderHandler) ToggleRule(c *fiber.Ctx) error {
	out, err := h.uc.ToggleAutoReorder(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "rule not found"})
	}
	return c.JSON(out)
}

// DeleteRule godoc
// @Summary      Delete reorder rule
// @Tags         reorders
// @Param        id  path  string  true  "Rule ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reorders/rules/{id} [delete]
func (h *ReorderHandler) DeleteRule(c *fiber.Ctx) error {
	if err := h.uc.DeleteRule(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "rule not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListHistory godoc
// @Summary      List reorder history
// @Tags         reorders
// @Produce      json
// @Param        limit   query  int  false  "Limit"   default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.ReorderHistoryListResponse
// @Router       /api/reorders/history [get]
func (h *ReorderHandler) ListHistory(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListHistory(c.Context(), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// UpdateHistoryStatus godoc
// @Summary      Advance a reorder event
// @Tags         reorders
// @Accept       json
// @Param        id    path  string  true  "Event ID"
// @Param        body  body  dto.UpdateReorderStatusRequest  true  "New status"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/reorders/history/{id}/status [put]
func (h *ReorderHandler) UpdateHistoryStatus(c *fiber.Ctx) error {
	var in dto.UpdateReorderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	if err := h.uc.UpdateHistoryStatus(c.Context(), c.Params("id"), in); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid status"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "event not found"})
		case errors.Is(err, domain.ErrConflict):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "transition not allowed"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
