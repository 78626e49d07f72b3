package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appmonitor "github.com/kaynetech/RetailRx/internal/application/monitor"
	"github.com/kaynetech/RetailRx/internal/application/usecase"
	domainmonitor "github.com/kaynetech/RetailRx/internal/domain/monitor"
	"github.com/kaynetech/RetailRx/internal/infrastructure/notify"
	infrapdf "github.com/kaynetech/RetailRx/internal/infrastructure/pdf"
	"github.com/kaynetech/RetailRx/internal/infrastructure/postgres"
	httpRouter "github.com/kaynetech/RetailRx/internal/interfaces/http"
	"github.com/kaynetech/RetailRx/pkg/config"
	"github.com/kaynetech/RetailRx/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	invRepo := postgres.NewInventoryRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)
	ruleRepo := postgres.NewReorderRuleRepository(pool)
	historyRepo := postgres.NewReorderHistoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	orderRepo := postgres.NewPurchaseOrderRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	rxRepo := postgres.NewPrescriptionRepository(pool)
	refillRepo := postgres.NewRefillRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	policy := domainmonitor.Policy{
		LowStockThreshold:  cfg.Monitor.LowStockThreshold,
		CriticalStockBelow: cfg.Monitor.CriticalStockBelow,
		ExpiryHorizonDays:  cfg.Monitor.ExpiryHorizonDays,
		ExpiryCriticalDays: cfg.Monitor.ExpiryCriticalDays,
		ExpiryWarningDays:  cfg.Monitor.ExpiryWarningDays,
	}

	notifier := notify.NewWebhookNotifier(cfg.Notify.WebhookURL, log)
	evaluator := appmonitor.NewEvaluateUseCase(
		invRepo, alertRepo, ruleRepo, historyRepo,
		policy, notifier, cfg.Notify.Recipient, log,
	)
	scanInterval := time.Duration(cfg.Monitor.IntervalSeconds) * time.Second
	scheduler := appmonitor.NewScheduler(evaluator, scanInterval, log)
	if cfg.Monitor.AutoStart {
		scheduler.Start()
	}

	pdfGenerator := infrapdf.NewPurchaseOrderGenerator(cfg.App.Name)

	inventoryUC := usecase.NewInventoryUseCase(invRepo)
	alertUC := usecase.NewAlertUseCase(alertRepo, notifier, cfg.Notify.Recipient)
	reorderUC := usecase.NewReorderUseCase(ruleRepo, historyRepo, invRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	saleUC := usecase.NewSaleUseCase(saleRepo, txRunner, log)
	prescriptionUC := usecase.NewPrescriptionUseCase(rxRepo, refillRepo, customerRepo, log)
	orderUC := usecase.NewPurchaseOrderUseCase(orderRepo, supplierRepo, invRepo, txRunner, pdfGenerator, log)
	batchUC := usecase.NewBatchUseCase(batchRepo, invRepo, log)
	dashboardUC := usecase.NewDashboardUseCase(invRepo, saleRepo, alertRepo, policy, cfg.Monitor.ScanHorizonDays)
	locationUC := usecase.NewLocationUseCase(locationRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "RetailRx API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		InventoryUC:     inventoryUC,
		AlertUC:         alertUC,
		ReorderUC:       reorderUC,
		SupplierUC:      supplierUC,
		CustomerUC:      customerUC,
		SaleUC:          saleUC,
		PrescriptionUC:  prescriptionUC,
		PurchaseOrderUC: orderUC,
		BatchUC:         batchUC,
		DashboardUC:     dashboardUC,
		LocationUC:      locationUC,
		Scheduler:       scheduler,
		Evaluator:       evaluator,
		ScanIntervalSec: cfg.Monitor.IntervalSeconds,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
