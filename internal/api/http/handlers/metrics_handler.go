package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fieldworks/maintenance-hub/internal/observability"
	"github.com/fieldworks/maintenance-hub/internal/realtime"
)

// MetricsHandler exposes the in-memory counters.
type MetricsHandler struct {
	metrics *observability.Metrics
	hub     *realtime.Hub
}

// NewMetricsHandler constructs handler. hub may be nil.
func NewMetricsHandler(metrics *observability.Metrics, hub *realtime.Hub) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, hub: hub}
}

// Get GET /metrics.
func (h *MetricsHandler) Get(c *fiber.Ctx) error {
	clients := 0
	if h.hub != nil {
		clients = h.hub.Clients()
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"counters":         h.metrics.Snapshot(),
		"realtime_clients": clients,
	}})
}
