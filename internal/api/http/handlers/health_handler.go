package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fieldworks/maintenance-hub/internal/persistence"
)

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	strict      bool
	redis       *persistence.Redis
}

// NewHealthHandler returns a new handler instance. redis may be nil when
// the change relay is disabled.
func NewHealthHandler(serviceName, version string, strict bool, redis *persistence.Redis) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, strict: strict, redis: redis}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports readiness. The store is in-process, so only the optional
// relay can make the service unready.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	mode := "permissive"
	if h.strict {
		mode = "strict"
	}
	depStatus := fiber.Map{"store": "ok"}

	if h.redis == nil {
		depStatus["redis"] = "disabled"
		return c.JSON(fiber.Map{"status": "ready", "lifecycle": mode, "dependencies": depStatus})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()
	if err := h.redis.Ping(ctx); err != nil {
		depStatus["redis"] = err.Error()
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "DEPENDENCY_UNAVAILABLE",
				"message": "one or more dependencies unavailable",
				"details": depStatus,
			},
		})
	}
	depStatus["redis"] = "ok"
	return c.JSON(fiber.Map{"status": "ready", "lifecycle": mode, "dependencies": depStatus})
}
