package views

import (
	"time"

	"github.com/fieldworks/maintenance-hub/internal/domain"
)

// RecentLimit is how many requests the dashboard lists.
const RecentLimit = 6

// Bucket is one labelled count.
type Bucket struct {
	Name  string
	Value int
}

// TeamLoad is the request count for one team.
type TeamLoad struct {
	TeamID   string
	TeamName string
	Requests int
}

// TeamEfficiency compares repaired requests with all requests of a team.
type TeamEfficiency struct {
	TeamID    string
	TeamName  string
	Completed int
	Total     int
}

// RecentRequest is a dashboard row with the equipment name resolved.
type RecentRequest struct {
	Request       domain.Request
	EquipmentName string
}

// DashboardSummary feeds the landing page.
type DashboardSummary struct {
	TotalAssets      int
	ActiveRequests   int
	CriticalRequests int
	RepairedRequests int
	TotalTechnicians int
	Workload         []TeamLoad
	Recent           []RecentRequest
}

// Report holds the report page distributions.
type Report struct {
	ByStatus          []Bucket
	ByType            []Bucket
	EquipmentByStatus []Bucket
	Teams             []TeamEfficiency
}

// TeamWorkload lists the request count of every team in team order.
func TeamWorkload(teams []domain.Team, reqs []domain.Request) []TeamLoad {
	counts := WorkloadByTeam(reqs)
	out := make([]TeamLoad, 0, len(teams))
	for _, team := range teams {
		out = append(out, TeamLoad{TeamID: team.ID, TeamName: team.Name, Requests: counts[team.ID]})
	}
	return out
}

// Dashboard builds the landing page summary.
func Dashboard(c Collections) DashboardSummary {
	recent := RecentRequests(c.Requests, RecentLimit)
	rows := make([]RecentRequest, 0, len(recent))
	for _, req := range recent {
		row := RecentRequest{Request: req}
		if item, ok := domain.FindEquipment(c.Equipment, req.EquipmentID); ok {
			row.EquipmentName = item.Name
		}
		rows = append(rows, row)
	}
	return DashboardSummary{
		TotalAssets:      len(c.Equipment),
		ActiveRequests:   ActiveRequestCount(c.Requests),
		CriticalRequests: CriticalCount(c.Requests),
		RepairedRequests: CountByStatus(c.Requests, domain.RequestStatusRepaired),
		TotalTechnicians: TotalTechnicians(c.Teams),
		Workload:         TeamWorkload(c.Teams, c.Requests),
		Recent:           rows,
	}
}

// StatusDistribution counts requests per status in board order.
func StatusDistribution(reqs []domain.Request) []Bucket {
	out := make([]Bucket, 0, len(domain.RequestStatuses))
	for _, status := range domain.RequestStatuses {
		out = append(out, Bucket{Name: string(status), Value: CountByStatus(reqs, status)})
	}
	return out
}

// TypeDistribution counts requests per type.
func TypeDistribution(reqs []domain.Request) []Bucket {
	out := make([]Bucket, 0, len(domain.RequestTypes))
	for _, kind := range domain.RequestTypes {
		count := 0
		for _, req := range reqs {
			if req.Type == kind {
				count++
			}
		}
		out = append(out, Bucket{Name: string(kind), Value: count})
	}
	return out
}

// EquipmentStatusDistribution counts equipment per status.
func EquipmentStatusDistribution(items []domain.Equipment) []Bucket {
	statuses := []domain.EquipmentStatus{domain.EquipmentStatusActive, domain.EquipmentStatusScrapped}
	out := make([]Bucket, 0, len(statuses))
	for _, status := range statuses {
		count := 0
		for _, item := range items {
			if item.Status == status {
				count++
			}
		}
		out = append(out, Bucket{Name: string(status), Value: count})
	}
	return out
}

// TeamCompletion lists repaired vs total requests for every team.
func TeamCompletion(teams []domain.Team, reqs []domain.Request) []TeamEfficiency {
	out := make([]TeamEfficiency, 0, len(teams))
	for _, team := range teams {
		row := TeamEfficiency{TeamID: team.ID, TeamName: team.Name}
		for _, req := range reqs {
			if req.TeamID != team.ID {
				continue
			}
			row.Total++
			if req.Status == domain.RequestStatusRepaired {
				row.Completed++
			}
		}
		out = append(out, row)
	}
	return out
}

// Reports builds every report distribution.
func Reports(c Collections) Report {
	return Report{
		ByStatus:          StatusDistribution(c.Requests),
		ByType:            TypeDistribution(c.Requests),
		EquipmentByStatus: EquipmentStatusDistribution(c.Equipment),
		Teams:             TeamCompletion(c.Teams, c.Requests),
	}
}

// ParseMonth reads a YYYY-MM string. ok is false for malformed input.
func ParseMonth(value string) (year int, month time.Month, ok bool) {
	t, err := time.Parse("2006-01", value)
	if err != nil {
		return 0, 0, false
	}
	return t.Year(), t.Month(), true
}
