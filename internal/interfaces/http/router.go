package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kaynetech/RetailRx/internal/application/monitor"
	"github.com/kaynetech/RetailRx/internal/application/usecase"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	InventoryUC     *usecase.InventoryUseCase
	AlertUC         *usecase.AlertUseCase
	ReorderUC       *usecase.ReorderUseCase
	SupplierUC      *usecase.SupplierUseCase
	CustomerUC      *usecase.CustomerUseCase
	SaleUC          *usecase.SaleUseCase
	PrescriptionUC  *usecase.PrescriptionUseCase
	PurchaseOrderUC *usecase.PurchaseOrderUseCase
	BatchUC         *usecase.BatchUseCase
	DashboardUC     *usecase.DashboardUseCase
	LocationUC      *usecase.LocationUseCase
	Scheduler       *monitor.Scheduler
	Evaluator       *monitor.EvaluateUseCase
	ScanIntervalSec int
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	inv := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inv.Post("/", inventoryHandler.Create)
	inv.Get("/", inventoryHandler.List)
	inv.Get("/:id", inventoryHandler.GetByID)
	inv.Put("/:id", inventoryHandler.Update)
	inv.Post("/:id/adjust", inventoryHandler.AdjustQuantity)
	inv.Delete("/:id", inventoryHandler.Delete)

	alerts := api.Group("/alerts")
	alertHandler := NewAlertHandler(deps.AlertUC)
	alerts.Get("/", alertHandler.List)
	alerts.Get("/stats", alertHandler.Stats)
	alerts.Post("/:id/read", alertHandler.MarkRead)
	alerts.Post("/:id/resolve", alertHandler.Resolve)
	alerts.Post("/:id/notify", alertHandler.Notify)

	mon := api.Group("/monitor")
	monitorHandler := NewMonitorHandler(deps.Scheduler, deps.Evaluator, deps.ScanIntervalSec)
	mon.Get("/status", monitorHandler.Status)
	mon.Post("/start", monitorHandler.Start)
	mon.Post("/stop", monitorHandler.Stop)
	mon.Post("/tick", monitorHandler.TickNow)
	mon.Post("/scan", monitorHandler.Scan)
	mon.Post("/reorders", monitorHandler.CheckReorders)

	reorders := api.Group("/reorders")
	reorderHandler := NewReorderHandler(deps.ReorderUC)
	reorders.Post("/rules", reorderHandler.CreateRule)
	reorders.Get("/rules", reorderHandler.ListRules)
	reorders.Put("/rules/:id", reorderHandler.UpdateRule)
	reorders.Post("/rules/:id/toggle", reorderHandler.ToggleRule)
	reorders.Delete("/rules/:id", reorderHandler.DeleteRule)
	reorders.Get("/history", reorderHandler.ListHistory)
	reorders.Put("/history/:id/status", reorderHandler.UpdateHistoryStatus)

	suppliers := api.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	sales := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	sales.Post("/", saleHandler.Checkout)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)

	prescriptions := api.Group("/prescriptions")
	prescriptionHandler := NewPrescriptionHandler(deps.PrescriptionUC)
	prescriptions.Post("/", prescriptionHandler.Create)
	prescriptions.Get("/", prescriptionHandler.List)
	prescriptions.Get("/:id", prescriptionHandler.GetByID)
	prescriptions.Post("/:id/verify", prescriptionHandler.Verify)
	prescriptions.Post("/:id/dispense", prescriptionHandler.Dispense)

	refills := api.Group("/refills")
	refills.Post("/", prescriptionHandler.RequestRefill)
	refills.Get("/", prescriptionHandler.ListRefills)
	refills.Put("/:id/status", prescriptionHandler.UpdateRefillStatus)

	orders := api.Group("/purchase-orders")
	orderHandler := NewPurchaseOrderHandler(deps.PurchaseOrderUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id/status", orderHandler.UpdateStatus)
	orders.Get("/:id/pdf", orderHandler.RenderPDF)

	batches := api.Group("/batches")
	batchHandler := NewBatchHandler(deps.BatchUC)
	batches.Post("/", batchHandler.Run)
	batches.Get("/", batchHandler.ListOperations)
	batches.Get("/:id", batchHandler.GetOperation)
	batches.Get("/:id/items", batchHandler.ListItems)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.LocationUC)
	api.Get("/dashboard", dashboardHandler.GetSummary)

	locations := api.Group("/locations")
	locations.Post("/", dashboardHandler.CreateLocation)
	locations.Get("/", dashboardHandler.ListLocations)
}
