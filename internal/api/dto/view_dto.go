package dto

import (
	"github.com/fieldworks/maintenance-hub/internal/domain"
	"github.com/fieldworks/maintenance-hub/internal/views"
)

// TechnicianResponse represents a team member.
type TechnicianResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	TeamID string `json:"team_id"`
}

// TeamResponse represents a team with its members.
type TeamResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Technicians []TechnicianResponse `json:"technicians"`
}

// BucketResponse is one labelled count.
type BucketResponse struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// TeamLoadResponse is a dashboard workload row.
type TeamLoadResponse struct {
	TeamID   string `json:"team_id"`
	TeamName string `json:"team_name"`
	Requests int    `json:"requests"`
}

// RecentRequestResponse is a dashboard recent-activity row.
type RecentRequestResponse struct {
	RequestResponse
	EquipmentName string `json:"equipment_name"`
}

// DashboardResponse feeds the landing page.
type DashboardResponse struct {
	TotalAssets      int                     `json:"total_assets"`
	ActiveRequests   int                     `json:"active_requests"`
	CriticalRequests int                     `json:"critical_requests"`
	RepairedRequests int                     `json:"repaired_requests"`
	TotalTechnicians int                     `json:"total_technicians"`
	Workload         []TeamLoadResponse      `json:"workload"`
	Recent           []RecentRequestResponse `json:"recent"`
}

// CardResponse is a kanban card.
type CardResponse struct {
	RequestResponse
	EquipmentName string              `json:"equipment_name"`
	Technician    *TechnicianResponse `json:"technician"`
	Overdue       bool                `json:"overdue"`
	Actions       []string            `json:"actions"`
}

// ColumnResponse is a kanban column.
type ColumnResponse struct {
	Status string         `json:"status"`
	Label  string         `json:"label"`
	Cards  []CardResponse `json:"cards"`
}

// TeamEfficiencyResponse compares completed and total work of a team.
type TeamEfficiencyResponse struct {
	TeamID    string `json:"team_id"`
	TeamName  string `json:"team_name"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

// ReportResponse holds every report distribution.
type ReportResponse struct {
	ByStatus          []BucketResponse         `json:"by_status"`
	ByType            []BucketResponse         `json:"by_type"`
	EquipmentByStatus []BucketResponse         `json:"equipment_by_status"`
	Teams             []TeamEfficiencyResponse `json:"teams"`
}

// NewTechnicianResponse maps a technician.
func NewTechnicianResponse(tech domain.Technician) TechnicianResponse {
	return TechnicianResponse{ID: tech.ID, Name: tech.Name, Avatar: tech.Avatar, TeamID: tech.TeamID}
}

// NewTeamList maps teams.
func NewTeamList(teams []domain.Team) []TeamResponse {
	out := make([]TeamResponse, 0, len(teams))
	for _, team := range teams {
		techs := make([]TechnicianResponse, 0, len(team.Technicians))
		for _, tech := range team.Technicians {
			techs = append(techs, NewTechnicianResponse(tech))
		}
		out = append(out, TeamResponse{ID: team.ID, Name: team.Name, Technicians: techs})
	}
	return out
}

// NewDashboardResponse maps the dashboard summary.
func NewDashboardResponse(summary views.DashboardSummary) DashboardResponse {
	resp := DashboardResponse{
		TotalAssets:      summary.TotalAssets,
		ActiveRequests:   summary.ActiveRequests,
		CriticalRequests: summary.CriticalRequests,
		RepairedRequests: summary.RepairedRequests,
		TotalTechnicians: summary.TotalTechnicians,
		Workload:         make([]TeamLoadResponse, 0, len(summary.Workload)),
		Recent:           make([]RecentRequestResponse, 0, len(summary.Recent)),
	}
	for _, load := range summary.Workload {
		resp.Workload = append(resp.Workload, TeamLoadResponse(load))
	}
	for _, row := range summary.Recent {
		resp.Recent = append(resp.Recent, RecentRequestResponse{
			RequestResponse: NewRequestResponse(row.Request),
			EquipmentName:   row.EquipmentName,
		})
	}
	return resp
}

// NewKanbanResponse maps the board columns.
func NewKanbanResponse(columns []views.Column) []ColumnResponse {
	out := make([]ColumnResponse, 0, len(columns))
	for _, col := range columns {
		cards := make([]CardResponse, 0, len(col.Cards))
		for _, card := range col.Cards {
			item := CardResponse{
				RequestResponse: NewRequestResponse(card.Request),
				EquipmentName:   card.EquipmentName,
				Overdue:         card.Overdue,
				Actions:         make([]string, 0, len(card.Actions)),
			}
			for _, action := range card.Actions {
				item.Actions = append(item.Actions, string(action))
			}
			if card.Technician != nil {
				tech := NewTechnicianResponse(*card.Technician)
				item.Technician = &tech
			}
			cards = append(cards, item)
		}
		out = append(out, ColumnResponse{Status: string(col.Status), Label: col.Label, Cards: cards})
	}
	return out
}

// NewReportResponse maps the report distributions.
func NewReportResponse(report views.Report) ReportResponse {
	resp := ReportResponse{
		ByStatus:          buckets(report.ByStatus),
		ByType:            buckets(report.ByType),
		EquipmentByStatus: buckets(report.EquipmentByStatus),
		Teams:             make([]TeamEfficiencyResponse, 0, len(report.Teams)),
	}
	for _, team := range report.Teams {
		resp.Teams = append(resp.Teams, TeamEfficiencyResponse(team))
	}
	return resp
}

// NewCalendarMonthResponse maps a month of preventive requests keyed by date.
func NewCalendarMonthResponse(days map[string][]domain.Request) map[string][]RequestResponse {
	out := make(map[string][]RequestResponse, len(days))
	for date, reqs := range days {
		out[date] = NewRequestList(reqs)
	}
	return out
}

func buckets(in []views.Bucket) []BucketResponse {
	out := make([]BucketResponse, 0, len(in))
	for _, b := range in {
		out = append(out, BucketResponse(b))
	}
	return out
}
