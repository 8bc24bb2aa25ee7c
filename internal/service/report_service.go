package service

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/fieldworks/maintenance-hub/internal/domain"
	"github.com/fieldworks/maintenance-hub/internal/views"
)

const (
	requestsSheet = "Requests"
	summarySheet  = "Summary"
)

var requestHeaders = []interface{}{
	"ID", "Subject", "Equipment", "Team", "Technician", "Type",
	"Scheduled", "Duration (h)", "Status", "Priority", "Overdue", "Notes",
}

var requestColumnWidths = []struct {
	from, to string
	width    float64
}{
	{"B", "B", 36},
	{"C", "E", 22},
	{"L", "L", 40},
}

// ReportService renders report data as spreadsheets.
type ReportService struct {
	maintenance *MaintenanceService
	logger      *zap.Logger
}

// NewReportService constructs the service.
func NewReportService(maintenance *MaintenanceService, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{maintenance: maintenance, logger: logger}
}

// ExportXLSX writes a workbook with one row per request and a summary
// sheet holding the report distributions.
func (s *ReportService) ExportXLSX(w io.Writer) error {
	snap := s.maintenance.Snapshot()
	now := s.maintenance.Now()

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("close workbook", zap.Error(err))
		}
	}()

	if err := f.SetSheetName("Sheet1", requestsSheet); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(requestsSheet, "A1", &requestHeaders); err != nil {
		return err
	}
	if err := f.SetCellStyle(requestsSheet, "A1", "L1", bold); err != nil {
		return err
	}
	for i, req := range snap.Requests {
		row := requestRow(snap, req, views.IsOverdue(req, now))
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(requestsSheet, cell, &row); err != nil {
			return err
		}
	}
	for _, col := range requestColumnWidths {
		if err := f.SetColWidth(requestsSheet, col.from, col.to, col.width); err != nil {
			return fmt.Errorf("requests width: %w", err)
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	if err := writeSummary(f, views.Reports(snap), bold); err != nil {
		return err
	}

	s.logger.Debug("report exported", zap.Int("requests", len(snap.Requests)))
	return f.Write(w)
}

func requestRow(snap views.Collections, req domain.Request, overdue bool) []interface{} {
	equipmentName := views.UnknownAsset
	if item, ok := domain.FindEquipment(snap.Equipment, req.EquipmentID); ok {
		equipmentName = item.Name
	}
	teamName := ""
	if team, ok := domain.FindTeam(snap.Teams, req.TeamID); ok {
		teamName = team.Name
	}
	techName := ""
	if tech, ok := domain.FindTechnician(snap.Teams, req.TeamID, req.TechnicianID); ok {
		techName = tech.Name
	}
	notes := ""
	if req.Notes != nil {
		notes = *req.Notes
	}
	return []interface{}{
		req.ID, req.Subject, equipmentName, teamName, techName, string(req.Type),
		req.ScheduledDate, req.DurationHours, string(req.Status), string(req.Priority), overdue, notes,
	}
}

func writeSummary(f *excelize.File, report views.Report, bold int) error {
	row := 1
	section := func(title string, buckets []views.Bucket) error {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(summarySheet, cell, &[]interface{}{title, "Count"}); err != nil {
			return err
		}
		end, _ := excelize.CoordinatesToCellName(2, row)
		if err := f.SetCellStyle(summarySheet, cell, end, bold); err != nil {
			return err
		}
		row++
		for _, bucket := range buckets {
			cell, _ := excelize.CoordinatesToCellName(1, row)
			if err := f.SetSheetRow(summarySheet, cell, &[]interface{}{bucket.Name, bucket.Value}); err != nil {
				return err
			}
			row++
		}
		row++
		return nil
	}

	if err := section("Request status", report.ByStatus); err != nil {
		return err
	}
	if err := section("Request type", report.ByType); err != nil {
		return err
	}
	if err := section("Equipment status", report.EquipmentByStatus); err != nil {
		return err
	}

	cell, _ := excelize.CoordinatesToCellName(1, row)
	if err := f.SetSheetRow(summarySheet, cell, &[]interface{}{"Team", "Completed", "Total"}); err != nil {
		return err
	}
	end, _ := excelize.CoordinatesToCellName(3, row)
	if err := f.SetCellStyle(summarySheet, cell, end, bold); err != nil {
		return err
	}
	row++
	for _, team := range report.Teams {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(summarySheet, cell, &[]interface{}{team.TeamName, team.Completed, team.Total}); err != nil {
			return err
		}
		row++
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 24); err != nil {
		return fmt.Errorf("summary width: %w", err)
	}
	return nil
}
