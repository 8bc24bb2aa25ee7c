package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fieldworks/maintenance-hub/internal/api/dto"
	"github.com/fieldworks/maintenance-hub/internal/service"
)

// TeamsHandler lists maintenance teams.
type TeamsHandler struct {
	service *service.MaintenanceService
}

// NewTeamsHandler constructs handler.
func NewTeamsHandler(maintenance *service.MaintenanceService) *TeamsHandler {
	return &TeamsHandler{service: maintenance}
}

// List GET /api/teams.
func (h *TeamsHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": dto.NewTeamList(h.service.Teams())})
}
