package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/kaynetech/RetailRx/internal/application/dto"
	"github.com/kaynetech/RetailRx/internal/application/monitor"
	"github.com/kaynetech/RetailRx/internal/domain"
)

// MonitorHandler exposes the scheduler toggle and on-demand scans.
type MonitorHandler struct {
	scheduler *monitor.Scheduler
	evaluator *monitor.EvaluateUseCase
	interval  int // seconds, reported in status
}

// NewMonitorHandler builds the handler.
func NewMonitorHandler(scheduler *monitor.Scheduler, evaluator *monitor.EvaluateUseCase, intervalSeconds int) *MonitorHandler {
	return &MonitorHandler{scheduler: scheduler, evaluator: evaluator, interval: intervalSeconds}
}

// Status godoc
// @Summary      Monitor status
// @Tags         monitor
// @Produce      json
// @Success      200  {object}  dto.MonitorStatusResponse
// @Router       /api/monitor/status [get]
func (h *MonitorHandler) Status(c *fiber.Ctx) error {
	return c.JSON(dto.MonitorStatusResponse{
		Running:         h.scheduler.Running(),
		IntervalSeconds: h.interval,
		LastScanAt:      h.scheduler.LastScan(),
	})
}

// Start godoc
// @Summary      Start the monitor
// @Tags         monitor
// @Produce      json
// @Success      200  {object}  dto.MonitorStatusResponse
// @Router       /api/monitor/start [post]
func (h *MonitorHandler) Start(c *fiber.Ctx) error {
	h.scheduler.Start()
	return h.Status(c)
}

// Stop godoc
// @Summary      Stop the monitor
// @Tags         monitor
// @Produce      json
// @Success      200  {object}  dto.MonitorStatusResponse
// @Router       /api/monitor/stop [post]
func (h *MonitorHandler) Stop(c *fiber.Ctx) error {
	h.scheduler.Stop()
	return h.Status(c)
}

// TickNow godoc
// @Summary      Run one full evaluation pass now
// @Tags         monitor
// @Produce      json
// @Success      200  {object}  dto.ScanResultResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/monitor/tick [post]
func (h *MonitorHandler) TickNow(c *fiber.Ctx) error {
	out, err := h.scheduler.TickNow(c.Context())
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "TICK_IN_PROGRESS", Message: "an evaluation pass is already running"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Scan godoc
// @Summary      Run a full scan with an optional expiry horizon override
// @Tags         monitor
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScanRequest  false  "Horizon override in days"
// @Success      200   {object}  dto.ScanResultResponse
// @Router       /api/monitor/scan [post]
func (h *MonitorHandler) Scan(c *fiber.Ctx) error {
	var in dto.ScanRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
		}
	}
	if in.HorizonDays < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "horizon_days must be >= 0"})
	}
	out, err := h.evaluator.RunScan(c.Context(), in.HorizonDays)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// CheckReorders godoc
// @Summary      Evaluate reorder rules now
// @Tags         monitor
// @Produce      json
// @Success      200  {object}  dto.ReorderCheckResponse
// @Router       /api/monitor/reorders [post]
func (h *MonitorHandler) CheckReorders(c *fiber.Ctx) error {
	out, err := h.evaluator.CheckReorders(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
