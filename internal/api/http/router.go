package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fieldworks/maintenance-hub/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Metrics   *handlers.MetricsHandler
	Teams     *handlers.TeamsHandler
	Equipment *handlers.EquipmentHandler
	Requests  *handlers.RequestsHandler
	Views     *handlers.ViewsHandler
	// Changes is nil when the websocket feed is disabled.
	Changes *handlers.ChangesHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", cfg.Metrics.Get)
	}

	api := app.Group("/api")
	api.Get("/teams", cfg.Teams.List)

	equipment := api.Group("/equipment")
	equipment.Get("/", cfg.Equipment.List)
	equipment.Post("/", cfg.Equipment.Create)
	equipment.Get("/:id/requests", cfg.Equipment.Requests)
	equipment.Patch("/:id/status", cfg.Equipment.UpdateStatus)

	requests := api.Group("/requests")
	requests.Get("/", cfg.Requests.List)
	requests.Post("/", cfg.Requests.Create)
	requests.Patch("/:id/status", cfg.Requests.UpdateStatus)

	viewGroup := api.Group("/views")
	viewGroup.Get("/dashboard", cfg.Views.Dashboard)
	viewGroup.Get("/kanban", cfg.Views.Kanban)
	viewGroup.Get("/calendar", cfg.Views.Calendar)
	viewGroup.Get("/reports", cfg.Views.Reports)
	viewGroup.Get("/reports/export", cfg.Views.Export)

	if cfg.Changes != nil {
		app.Get("/ws/changes", cfg.Changes.Upgrade, cfg.Changes.Stream())
	}
}
