package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fieldworks/maintenance-hub/internal/api/dto"
	"github.com/fieldworks/maintenance-hub/internal/domain"
	"github.com/fieldworks/maintenance-hub/internal/service"
	apperrors "github.com/fieldworks/maintenance-hub/pkg/util"
	"github.com/fieldworks/maintenance-hub/pkg/validation"
)

// EquipmentHandler manages asset endpoints.
type EquipmentHandler struct {
	service   *service.MaintenanceService
	validator *validation.Validator
}

// NewEquipmentHandler constructs handler.
func NewEquipmentHandler(maintenance *service.MaintenanceService, v *validation.Validator) *EquipmentHandler {
	return &EquipmentHandler{service: maintenance, validator: v}
}

// List GET /api/equipment.
func (h *EquipmentHandler) List(c *fiber.Ctx) error {
	list := h.service.Assets(service.AssetFilter{
		Search:     c.Query("search"),
		Department: c.Query("department"),
	})
	items := make([]dto.AssetResponse, 0, len(list.Items))
	for _, row := range list.Items {
		items = append(items, dto.AssetResponse{
			EquipmentResponse: dto.NewEquipmentResponse(row.Equipment),
			OpenJobs:          row.OpenJobs,
		})
	}
	return c.JSON(fiber.Map{"data": dto.AssetListResponse{Items: items, Departments: list.Departments}})
}

// Create POST /api/equipment.
func (h *EquipmentHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateEquipmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.validator.Struct(req); err != nil {
		return err
	}
	item, err := h.service.CreateEquipment(c.UserContext(), req.Input())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewEquipmentResponse(item)})
}

// Requests GET /api/equipment/:id/requests.
func (h *EquipmentHandler) Requests(c *fiber.Ctx) error {
	reqs, err := h.service.EquipmentRequests(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRequestList(reqs)})
}

// UpdateStatus PATCH /api/equipment/:id/status.
func (h *EquipmentHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.EquipmentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.validator.Struct(req); err != nil {
		return err
	}
	item, err := h.service.SetEquipmentStatus(c.UserContext(), c.Params("id"), domain.EquipmentStatus(req.Status))
	if err != nil {
		return err
	}
	if item.ID == "" {
		return c.JSON(fiber.Map{"data": nil})
	}
	return c.JSON(fiber.Map{"data": dto.NewEquipmentResponse(item)})
}
