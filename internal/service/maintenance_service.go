package service

import (
	"context"
	"time"

	"github.com/fieldworks/maintenance-hub/internal/domain"
	"github.com/fieldworks/maintenance-hub/internal/store"
	"github.com/fieldworks/maintenance-hub/internal/views"
	apperrors "github.com/fieldworks/maintenance-hub/pkg/util"
)

// MaintenanceService is the query and mutation boundary used by the
// presentation layer.
type MaintenanceService struct {
	store *store.Store
}

// AssetFilter narrows the equipment list.
type AssetFilter struct {
	Search     string
	Department string
}

// AssetRow is one equipment entry of the asset list.
type AssetRow struct {
	Equipment domain.Equipment
	OpenJobs  int
}

// AssetList is the filtered asset list plus the department choices.
type AssetList struct {
	Items       []AssetRow
	Departments []string
}

// NewMaintenanceService constructs the service.
func NewMaintenanceService(st *store.Store) *MaintenanceService {
	return &MaintenanceService{store: st}
}

// Teams returns every team with its technicians.
func (s *MaintenanceService) Teams() []domain.Team {
	return s.store.Teams()
}

// Requests returns every request in creation order.
func (s *MaintenanceService) Requests() []domain.Request {
	return s.store.Requests()
}

// Assets returns the filtered equipment list with open-job counts.
func (s *MaintenanceService) Assets(filter AssetFilter) AssetList {
	snap := s.store.Snapshot()
	open := views.OpenJobsByEquipment(snap.Requests)
	matches := views.FilterEquipment(snap.Equipment, filter.Search, filter.Department)

	rows := make([]AssetRow, 0, len(matches))
	for _, item := range matches {
		rows = append(rows, AssetRow{Equipment: item, OpenJobs: open[item.ID]})
	}
	return AssetList{Items: rows, Departments: views.Departments(snap.Equipment)}
}

// EquipmentRequests lists the requests filed against one asset.
func (s *MaintenanceService) EquipmentRequests(equipmentID string) ([]domain.Request, error) {
	snap := s.store.Snapshot()
	if _, ok := domain.FindEquipment(snap.Equipment, equipmentID); !ok && s.store.Strict() {
		return nil, apperrors.NewNotFound("equipment", map[string]any{"equipment_id": equipmentID})
	}
	return views.RequestsForEquipment(snap.Requests, equipmentID), nil
}

// CreateEquipment adds an asset.
func (s *MaintenanceService) CreateEquipment(ctx context.Context, input domain.EquipmentInput) (domain.Equipment, error) {
	return s.store.AddEquipment(ctx, input)
}

// CreateRequest files a new request. Its status is always New.
func (s *MaintenanceService) CreateRequest(ctx context.Context, input domain.RequestInput) (domain.Request, error) {
	return s.store.AddRequest(ctx, input)
}

// ChangeRequestStatus moves a request through the lifecycle.
func (s *MaintenanceService) ChangeRequestStatus(ctx context.Context, requestID string, status domain.RequestStatus) (domain.Request, error) {
	return s.store.ChangeRequestStatus(ctx, requestID, status)
}

// SetEquipmentStatus changes an asset's status directly.
func (s *MaintenanceService) SetEquipmentStatus(ctx context.Context, equipmentID string, status domain.EquipmentStatus) (domain.Equipment, error) {
	return s.store.SetEquipmentStatus(ctx, equipmentID, status)
}

// Dashboard returns the landing page summary.
func (s *MaintenanceService) Dashboard() views.DashboardSummary {
	return views.Dashboard(s.store.Snapshot())
}

// Kanban returns the board columns with overdue flags computed for now.
func (s *MaintenanceService) Kanban() []views.Column {
	return views.Kanban(s.store.Snapshot(), s.store.Now())
}

// CalendarDay returns preventive requests scheduled on date.
func (s *MaintenanceService) CalendarDay(date string) []domain.Request {
	return views.PreventiveOn(s.store.Requests(), date)
}

// CalendarMonth returns preventive requests of one month keyed by date.
// A zero year selects the current month.
func (s *MaintenanceService) CalendarMonth(year int, month time.Month) map[string][]domain.Request {
	if year == 0 {
		now := s.store.Now()
		year, month = now.Year(), now.Month()
	}
	return views.CalendarMonth(s.store.Requests(), year, month)
}

// Reports returns every report distribution.
func (s *MaintenanceService) Reports() views.Report {
	return views.Reports(s.store.Snapshot())
}

// Snapshot returns a consistent copy of all collections.
func (s *MaintenanceService) Snapshot() views.Collections {
	return s.store.Snapshot()
}

// Now returns the service clock reading.
func (s *MaintenanceService) Now() time.Time {
	return s.store.Now()
}
