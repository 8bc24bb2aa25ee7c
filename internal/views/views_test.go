package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldworks/maintenance-hub/internal/domain"
)

var now = time.Date(2026, time.October, 18, 15, 30, 0, 0, time.UTC)

func fixture() Collections {
	return Collections{
		Teams: []domain.Team{
			{ID: "t1", Name: "Mechanics", Technicians: []domain.Technician{
				{ID: "tech1", Name: "Rahul Sharma", TeamID: "t1"},
				{ID: "tech2", Name: "John Doe", TeamID: "t1"},
			}},
			{ID: "t2", Name: "Electricians", Technicians: []domain.Technician{
				{ID: "tech3", Name: "Sarah Connor", TeamID: "t2"},
			}},
		},
		Equipment: []domain.Equipment{
			{ID: "e1", Name: "CNC Machine 5000", SerialNumber: "CNC-9087", Department: "Production", Status: domain.EquipmentStatusActive},
			{ID: "e2", Name: "Main Server Rack", SerialNumber: "SRV-X11", Department: "IT", Status: domain.EquipmentStatusActive},
			{ID: "e3", Name: "Industrial Oven", SerialNumber: "OVN-442", Department: "Admin", Status: domain.EquipmentStatusScrapped},
			{ID: "e4", Name: "Lathe", SerialNumber: "LTH-1", Department: "Production", Status: domain.EquipmentStatusActive},
		},
		Requests: []domain.Request{
			{ID: "r1", EquipmentID: "e1", TeamID: "t1", TechnicianID: "tech1", Type: domain.RequestTypeCorrective, ScheduledDate: "2026-10-18", Status: domain.RequestStatusInProgress, Priority: domain.PriorityHigh},
			{ID: "r2", EquipmentID: "e3", TeamID: "t2", TechnicianID: "tech3", Type: domain.RequestTypePreventive, ScheduledDate: "2026-10-15", Status: domain.RequestStatusNew, Priority: domain.PriorityMedium},
			{ID: "r3", EquipmentID: "e1", TeamID: "t1", TechnicianID: "tech2", Type: domain.RequestTypePreventive, ScheduledDate: "2026-10-15", Status: domain.RequestStatusRepaired, Priority: domain.PriorityHigh},
			{ID: "r4", EquipmentID: "e3", TeamID: "t2", TechnicianID: "tech3", Type: domain.RequestTypeCorrective, ScheduledDate: "2026-09-01", Status: domain.RequestStatusScrap, Priority: domain.PriorityHigh},
			{ID: "r5", EquipmentID: "gone", TeamID: "t9", TechnicianID: "tech9", Type: domain.RequestTypePreventive, ScheduledDate: "2026-10-30", Status: domain.RequestStatusNew, Priority: domain.PriorityLow},
		},
	}
}

func TestCounts(t *testing.T) {
	c := fixture()
	assert.Equal(t, 3, ActiveRequestCount(c.Requests))
	// Scrap still counts as critical; only Repaired is excluded.
	assert.Equal(t, 2, CriticalCount(c.Requests))
	assert.Equal(t, 3, TotalTechnicians(c.Teams))
	assert.Equal(t, map[string]int{"t1": 2, "t2": 2, "t9": 1}, WorkloadByTeam(c.Requests))
}

func TestGroupByStatusPartitions(t *testing.T) {
	c := fixture()
	groups := GroupByStatus(c.Requests)

	total := 0
	seen := map[string]int{}
	for _, status := range domain.RequestStatuses {
		require.Contains(t, groups, status)
		for _, req := range groups[status] {
			assert.Equal(t, status, req.Status)
			seen[req.ID]++
		}
		total += len(groups[status])
	}
	assert.Equal(t, len(c.Requests), total)
	for _, req := range c.Requests {
		assert.Equal(t, 1, seen[req.ID], req.ID)
	}

	newIDs := []string{}
	for _, req := range groups[domain.RequestStatusNew] {
		newIDs = append(newIDs, req.ID)
	}
	assert.Equal(t, []string{"r2", "r5"}, newIDs)
}

func TestGroupByStatusEmpty(t *testing.T) {
	groups := GroupByStatus(nil)
	assert.Len(t, groups, 4)
	for _, status := range domain.RequestStatuses {
		assert.Empty(t, groups[status])
	}
}

func TestIsOverdue(t *testing.T) {
	yesterday := now.AddDate(0, 0, -1).Format(DateLayout)
	tomorrow := now.AddDate(0, 0, 1).Format(DateLayout)
	today := now.Format(DateLayout)

	req := domain.Request{ScheduledDate: yesterday, Status: domain.RequestStatusNew}
	assert.True(t, IsOverdue(req, now))

	req.Status = domain.RequestStatusInProgress
	assert.True(t, IsOverdue(req, now))

	req.Status = domain.RequestStatusRepaired
	assert.False(t, IsOverdue(req, now))

	req.Status = domain.RequestStatusScrap
	assert.False(t, IsOverdue(req, now))

	assert.False(t, IsOverdue(domain.Request{ScheduledDate: tomorrow, Status: domain.RequestStatusNew}, now))
	assert.False(t, IsOverdue(domain.Request{ScheduledDate: today, Status: domain.RequestStatusNew}, now))
	assert.False(t, IsOverdue(domain.Request{ScheduledDate: "not-a-date", Status: domain.RequestStatusNew}, now))
	assert.False(t, IsOverdue(domain.Request{ScheduledDate: "", Status: domain.RequestStatusNew}, now))
}

func TestOpenJobs(t *testing.T) {
	c := fixture()
	assert.Equal(t, 1, OpenJobs(c.Requests, "e1"))
	assert.Equal(t, 1, OpenJobs(c.Requests, "e3"))
	assert.Equal(t, 0, OpenJobs(c.Requests, "e2"))
	assert.Equal(t, map[string]int{"e1": 1, "e3": 1, "gone": 1}, OpenJobsByEquipment(c.Requests))
}

func TestFilterEquipment(t *testing.T) {
	c := fixture()

	for _, term := range []string{"cnc", "CNC", "Cnc", "9087"} {
		got := FilterEquipment(c.Equipment, term, AllDepartments)
		require.Len(t, got, 1, term)
		assert.Equal(t, "e1", got[0].ID)
	}
	assert.Empty(t, FilterEquipment(c.Equipment, "zzz", AllDepartments))
	assert.Len(t, FilterEquipment(c.Equipment, "", ""), 4)

	production := FilterEquipment(c.Equipment, "", "Production")
	require.Len(t, production, 2)
	assert.Equal(t, "e4", production[1].ID)

	assert.Empty(t, FilterEquipment(c.Equipment, "cnc", "IT"))
}

func TestDepartments(t *testing.T) {
	assert.Equal(t, []string{"All", "Production", "IT", "Admin"}, Departments(fixture().Equipment))
	assert.Equal(t, []string{"All"}, Departments(nil))
}

func TestPreventiveOn(t *testing.T) {
	c := fixture()
	got := PreventiveOn(c.Requests, "2026-10-15")
	require.Len(t, got, 2)
	assert.Equal(t, "r2", got[0].ID)
	assert.Equal(t, "r3", got[1].ID)

	assert.Empty(t, PreventiveOn(c.Requests, "2026-10-18"), "corrective requests are excluded")
	assert.Empty(t, PreventiveOn(c.Requests, "15/10/2026"))
	assert.Empty(t, PreventiveOn(c.Requests, ""))
}

func TestCalendarMonth(t *testing.T) {
	c := fixture()
	month := CalendarMonth(c.Requests, 2026, time.October)
	assert.Len(t, month, 2)
	assert.Len(t, month["2026-10-15"], 2)
	assert.Len(t, month["2026-10-30"], 1)

	assert.Empty(t, CalendarMonth(c.Requests, 2026, time.Month(13)))
	assert.Empty(t, CalendarMonth(c.Requests, 2026, time.September))
}

func TestParseMonth(t *testing.T) {
	year, month, ok := ParseMonth("2026-02")
	require.True(t, ok)
	assert.Equal(t, 2026, year)
	assert.Equal(t, time.February, month)

	_, _, ok = ParseMonth("February")
	assert.False(t, ok)
}

func TestKanban(t *testing.T) {
	columns := Kanban(fixture(), now)
	require.Len(t, columns, 4)
	assert.Equal(t, "Unassigned / New", columns[0].Label)
	assert.Equal(t, "Completed", columns[2].Label)

	newCards := columns[0].Cards
	require.Len(t, newCards, 2)
	assert.Equal(t, "Industrial Oven", newCards[0].EquipmentName)
	require.NotNil(t, newCards[0].Technician)
	assert.Equal(t, "Sarah Connor", newCards[0].Technician.Name)
	assert.True(t, newCards[0].Overdue)

	assert.Equal(t, UnknownAsset, newCards[1].EquipmentName)
	assert.Nil(t, newCards[1].Technician)
	assert.False(t, newCards[1].Overdue)

	assert.Equal(t, []domain.RequestStatus{domain.RequestStatusInProgress, domain.RequestStatusScrap}, newCards[0].Actions)
	require.Len(t, columns[2].Cards, 1)
	assert.NotNil(t, columns[2].Cards[0].Actions)
	assert.Empty(t, columns[2].Cards[0].Actions)
}

func TestDashboard(t *testing.T) {
	summary := Dashboard(fixture())
	assert.Equal(t, 4, summary.TotalAssets)
	assert.Equal(t, 3, summary.ActiveRequests)
	assert.Equal(t, 2, summary.CriticalRequests)
	assert.Equal(t, 1, summary.RepairedRequests)
	assert.Equal(t, 3, summary.TotalTechnicians)
	assert.Equal(t, []TeamLoad{
		{TeamID: "t1", TeamName: "Mechanics", Requests: 2},
		{TeamID: "t2", TeamName: "Electricians", Requests: 2},
	}, summary.Workload)

	require.Len(t, summary.Recent, 5)
	assert.Equal(t, "r5", summary.Recent[0].Request.ID)
	assert.Empty(t, summary.Recent[0].EquipmentName)
	assert.Equal(t, "r1", summary.Recent[4].Request.ID)
	assert.Equal(t, "CNC Machine 5000", summary.Recent[4].EquipmentName)
}

func TestRecentRequestsLimit(t *testing.T) {
	reqs := make([]domain.Request, 10)
	for i := range reqs {
		reqs[i].ID = string(rune('a' + i))
	}
	got := RecentRequests(reqs, RecentLimit)
	require.Len(t, got, 6)
	assert.Equal(t, "j", got[0].ID)
	assert.Equal(t, "e", got[5].ID)
	assert.Empty(t, RecentRequests(reqs, 0))
}

func TestReports(t *testing.T) {
	report := Reports(fixture())
	assert.Equal(t, []Bucket{
		{Name: "New", Value: 2},
		{Name: "In Progress", Value: 1},
		{Name: "Repaired", Value: 1},
		{Name: "Scrap", Value: 1},
	}, report.ByStatus)
	assert.Equal(t, []Bucket{{Name: "Corrective", Value: 2}, {Name: "Preventive", Value: 3}}, report.ByType)
	assert.Equal(t, []Bucket{{Name: "Active", Value: 3}, {Name: "Scrapped", Value: 1}}, report.EquipmentByStatus)
	assert.Equal(t, []TeamEfficiency{
		{TeamID: "t1", TeamName: "Mechanics", Completed: 1, Total: 2},
		{TeamID: "t2", TeamName: "Electricians", Completed: 0, Total: 2},
	}, report.Teams)
}

func TestViewsDoNotMutateInput(t *testing.T) {
	c := fixture()
	before := fixture()

	_ = Kanban(c, now)
	_ = Dashboard(c)
	_ = Reports(c)
	_ = FilterEquipment(c.Equipment, "cnc", "Production")
	_ = RecentRequests(c.Requests, 3)

	assert.Equal(t, before, c)
}
