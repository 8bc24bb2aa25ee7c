package handlers

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fieldworks/maintenance-hub/internal/api/dto"
	"github.com/fieldworks/maintenance-hub/internal/service"
	"github.com/fieldworks/maintenance-hub/internal/views"
	apperrors "github.com/fieldworks/maintenance-hub/pkg/util"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ViewsHandler serves the derived dashboard, board, calendar and reports.
type ViewsHandler struct {
	service *service.MaintenanceService
	reports *service.ReportService
}

// NewViewsHandler constructs handler.
func NewViewsHandler(maintenance *service.MaintenanceService, reports *service.ReportService) *ViewsHandler {
	return &ViewsHandler{service: maintenance, reports: reports}
}

// Dashboard GET /api/views/dashboard.
func (h *ViewsHandler) Dashboard(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": dto.NewDashboardResponse(h.service.Dashboard())})
}

// Kanban GET /api/views/kanban.
func (h *ViewsHandler) Kanban(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": dto.NewKanbanResponse(h.service.Kanban())})
}

// Calendar GET /api/views/calendar?date=YYYY-MM-DD or ?month=YYYY-MM.
// Without either parameter the current month is returned.
func (h *ViewsHandler) Calendar(c *fiber.Ctx) error {
	if date := c.Query("date"); date != "" {
		if _, err := time.Parse(views.DateLayout, date); err != nil {
			return apperrors.NewValidationError("date must be YYYY-MM-DD", map[string]any{"date": date})
		}
		return c.JSON(fiber.Map{"data": fiber.Map{
			"date":     date,
			"requests": dto.NewRequestList(h.service.CalendarDay(date)),
		}})
	}

	year, month := 0, time.Month(0)
	if value := c.Query("month"); value != "" {
		var ok bool
		year, month, ok = views.ParseMonth(value)
		if !ok {
			return apperrors.NewValidationError("month must be YYYY-MM", map[string]any{"month": value})
		}
	}
	if year == 0 {
		now := h.service.Now()
		year, month = now.Year(), now.Month()
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"month": fmt.Sprintf("%04d-%02d", year, int(month)),
		"days":  dto.NewCalendarMonthResponse(h.service.CalendarMonth(year, month)),
	}})
}

// Reports GET /api/views/reports.
func (h *ViewsHandler) Reports(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": dto.NewReportResponse(h.service.Reports())})
}

// Export GET /api/views/reports/export.
func (h *ViewsHandler) Export(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.reports.ExportXLSX(&buf); err != nil {
		return apperrors.NewInternalError(err)
	}
	name := fmt.Sprintf("maintenance-report-%s.xlsx", h.service.Now().Format(views.DateLayout))
	c.Attachment(name)
	c.Set(fiber.HeaderContentType, xlsxContentType)
	return c.Send(buf.Bytes())
}
