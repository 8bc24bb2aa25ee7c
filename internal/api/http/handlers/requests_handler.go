package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fieldworks/maintenance-hub/internal/api/dto"
	"github.com/fieldworks/maintenance-hub/internal/domain"
	"github.com/fieldworks/maintenance-hub/internal/service"
	apperrors "github.com/fieldworks/maintenance-hub/pkg/util"
	"github.com/fieldworks/maintenance-hub/pkg/validation"
)

// RequestsHandler manages maintenance request endpoints.
type RequestsHandler struct {
	service   *service.MaintenanceService
	validator *validation.Validator
}

// NewRequestsHandler constructs handler.
func NewRequestsHandler(maintenance *service.MaintenanceService, v *validation.Validator) *RequestsHandler {
	return &RequestsHandler{service: maintenance, validator: v}
}

// List GET /api/requests.
func (h *RequestsHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": dto.NewRequestList(h.service.Requests())})
}

// Create POST /api/requests. The created request always starts as New.
func (h *RequestsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateMaintenanceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.validator.Struct(req); err != nil {
		return err
	}
	created, err := h.service.CreateRequest(c.UserContext(), req.Input())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewRequestResponse(created)})
}

// UpdateStatus PATCH /api/requests/:id/status.
func (h *RequestsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.StatusChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.validator.Struct(req); err != nil {
		return err
	}
	updated, err := h.service.ChangeRequestStatus(c.UserContext(), c.Params("id"), domain.RequestStatus(req.Status))
	if err != nil {
		return err
	}
	// permissive mode ignores unknown ids
	if updated.ID == "" {
		return c.JSON(fiber.Map{"data": nil})
	}
	return c.JSON(fiber.Map{"data": dto.NewRequestResponse(updated)})
}
