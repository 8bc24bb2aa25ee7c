package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/fieldworks/maintenance-hub/internal/domain"
	"github.com/fieldworks/maintenance-hub/internal/events"
	"github.com/fieldworks/maintenance-hub/internal/lifecycle"
	"github.com/fieldworks/maintenance-hub/internal/store"
	apperrors "github.com/fieldworks/maintenance-hub/pkg/util"
)

var fixedNow = time.Date(2026, 10, 18, 14, 30, 0, 0, time.UTC)

func newService(t *testing.T, strict bool, dispatcher events.Dispatcher) *MaintenanceService {
	t.Helper()
	st := store.New(store.Options{
		Engine:     lifecycle.NewEngine(strict),
		Dispatcher: dispatcher,
		Logger:     zap.NewNop(),
		Clock:      func() time.Time { return fixedNow },
	}, store.DefaultSeed(fixedNow))
	return NewMaintenanceService(st)
}

func TestAssetsFiltersAndCountsOpenJobs(t *testing.T) {
	svc := newService(t, true, nil)

	list := svc.Assets(AssetFilter{})
	require.Len(t, list.Items, 3)
	assert.Equal(t, "e1", list.Items[0].Equipment.ID)
	assert.Equal(t, 1, list.Items[0].OpenJobs)
	assert.Equal(t, 0, list.Items[1].OpenJobs)
	assert.Equal(t, []string{"All", "Production", "IT", "Admin"}, list.Departments)

	list = svc.Assets(AssetFilter{Search: "ovn", Department: "All"})
	require.Len(t, list.Items, 1)
	assert.Equal(t, "e3", list.Items[0].Equipment.ID)

	list = svc.Assets(AssetFilter{Search: "ovn", Department: "IT"})
	assert.Empty(t, list.Items)
}

func TestEquipmentRequests(t *testing.T) {
	svc := newService(t, true, nil)

	reqs, err := svc.EquipmentRequests("e1")
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, "r1", reqs[0].ID)

	_, err = svc.EquipmentRequests("missing")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))

	permissive := newService(t, false, nil)
	reqs, err = permissive.EquipmentRequests("missing")
	require.NoError(t, err)
	assert.Empty(t, reqs)
}

func TestScrapThroughServiceUpdatesViews(t *testing.T) {
	svc := newService(t, true, nil)
	ctx := context.Background()

	_, err := svc.ChangeRequestStatus(ctx, "r1", domain.RequestStatusScrap)
	require.NoError(t, err)

	report := svc.Reports()
	assert.Equal(t, "Scrapped", report.EquipmentByStatus[1].Name)
	assert.Equal(t, 1, report.EquipmentByStatus[1].Value)

	dash := svc.Dashboard()
	assert.Equal(t, 1, dash.ActiveRequests)
	assert.Equal(t, 1, dash.CriticalRequests)

	columns := svc.Kanban()
	require.Len(t, columns, 4)
	require.Len(t, columns[3].Cards, 1)
	assert.Equal(t, "r1", columns[3].Cards[0].Request.ID)
}

func TestCalendarMonthDefaultsToCurrentMonth(t *testing.T) {
	svc := newService(t, true, nil)
	ctx := context.Background()

	_, err := svc.CreateRequest(ctx, domain.RequestInput{
		Subject:       "Lubrication",
		EquipmentID:   "e1",
		Type:          domain.RequestTypePreventive,
		ScheduledDate: "2026-10-21",
		DurationHours: 1,
	})
	require.NoError(t, err)

	days := svc.CalendarMonth(0, 0)
	require.Contains(t, days, "2026-10-21")
	assert.Len(t, days, 1)

	assert.Len(t, svc.CalendarDay("2025-10-15"), 1)
	assert.Empty(t, svc.CalendarDay("2026-10-22"))
}

func TestExportXLSX(t *testing.T) {
	svc := newService(t, true, nil)
	reports := NewReportService(svc, nil)

	var buf bytes.Buffer
	require.NoError(t, reports.ExportXLSX(&buf))

	book, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer book.Close()

	assert.Equal(t, []string{"Requests", "Summary"}, book.GetSheetList())

	rows, err := book.GetRows("Requests")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "r1", rows[1][0])
	assert.Equal(t, "CNC Machine 5000", rows[1][2])
	assert.Equal(t, "Mechanics", rows[1][3])
	assert.Equal(t, "Rahul Sharma", rows[1][4])

	width, err := book.GetColWidth("Requests", "B")
	require.NoError(t, err)
	assert.Equal(t, 36.0, width)
	width, err = book.GetColWidth("Requests", "D")
	require.NoError(t, err)
	assert.Equal(t, 22.0, width)

	summary, err := book.GetRows("Summary")
	require.NoError(t, err)
	require.NotEmpty(t, summary)
	assert.Equal(t, []string{"Request status", "Count"}, summary[0])
	assert.Equal(t, []string{"New", "1"}, summary[1])
}
