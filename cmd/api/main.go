package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/fieldworks/maintenance-hub/internal/api/http"
	"github.com/fieldworks/maintenance-hub/internal/api/http/handlers"
	"github.com/fieldworks/maintenance-hub/internal/config"
	"github.com/fieldworks/maintenance-hub/internal/events"
	"github.com/fieldworks/maintenance-hub/internal/lifecycle"
	"github.com/fieldworks/maintenance-hub/internal/observability"
	"github.com/fieldworks/maintenance-hub/internal/persistence"
	"github.com/fieldworks/maintenance-hub/internal/realtime"
	"github.com/fieldworks/maintenance-hub/internal/service"
	"github.com/fieldworks/maintenance-hub/internal/store"
	"github.com/fieldworks/maintenance-hub/internal/worker"
	"github.com/fieldworks/maintenance-hub/pkg/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dispatcher := events.NewInMemoryDispatcher(logger)
	engine := lifecycle.NewEngine(cfg.Store.Strict)

	seed := store.Seed{}
	if cfg.Store.Seed {
		seed = store.DefaultSeed(time.Now())
	}
	st := store.New(store.Options{
		Engine:     engine,
		Dispatcher: dispatcher,
		Logger:     logger.Named("store"),
	}, seed)
	logger.Info("store ready",
		zap.Bool("strict", cfg.Store.Strict),
		zap.Int("equipment", len(seed.Equipment)),
		zap.Int("requests", len(seed.Requests)))

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var relay service.EventRelay
	if redis != nil {
		relay = redis
	}
	notificationService := service.NewNotificationService(dispatcher, logger.Named("notifications"), relay, cfg.Notification)

	metrics := observability.NewMetrics()
	var hub *realtime.Hub
	if cfg.Realtime.Enabled {
		hub = realtime.NewHub(cfg.Realtime.ClientBuffer, logger.Named("realtime"))
	}
	worker.StartNotificationWorker(ctx, dispatcher, notificationService, hub, metrics)

	maintenanceService := service.NewMaintenanceService(st)
	reportService := service.NewReportService(maintenanceService, logger)
	validator := validation.New()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	routes := httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, cfg.Store.Strict, redis),
		Metrics:   handlers.NewMetricsHandler(metrics, hub),
		Teams:     handlers.NewTeamsHandler(maintenanceService),
		Equipment: handlers.NewEquipmentHandler(maintenanceService, validator),
		Requests:  handlers.NewRequestsHandler(maintenanceService, validator),
		Views:     handlers.NewViewsHandler(maintenanceService, reportService),
	}
	if hub != nil {
		routes.Changes = handlers.NewChangesHandler(hub, logger)
	}
	httptransport.RegisterRoutes(app, routes)

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
