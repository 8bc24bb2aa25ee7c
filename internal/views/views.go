// Package views computes read-only projections of the maintenance
// collections. Every function is pure: inputs are never modified and the
// results are recomputed on each call.
package views

import (
	"strings"
	"time"

	"github.com/fieldworks/maintenance-hub/internal/domain"
)

// DateLayout is the calendar-date format of scheduled dates.
const DateLayout = "2006-01-02"

// AllDepartments disables the department filter.
const AllDepartments = "All"

// Collections bundles the three entity collections.
type Collections struct {
	Teams     []domain.Team
	Equipment []domain.Equipment
	Requests  []domain.Request
}

// ActiveRequestCount counts requests that are neither Repaired nor Scrap.
func ActiveRequestCount(reqs []domain.Request) int {
	count := 0
	for _, req := range reqs {
		if req.Status != domain.RequestStatusRepaired && req.Status != domain.RequestStatusScrap {
			count++
		}
	}
	return count
}

// CriticalCount counts high priority requests that are not Repaired.
func CriticalCount(reqs []domain.Request) int {
	count := 0
	for _, req := range reqs {
		if req.Priority == domain.PriorityHigh && req.Status != domain.RequestStatusRepaired {
			count++
		}
	}
	return count
}

// CountByStatus counts requests in one status.
func CountByStatus(reqs []domain.Request, status domain.RequestStatus) int {
	count := 0
	for _, req := range reqs {
		if req.Status == status {
			count++
		}
	}
	return count
}

// TotalTechnicians counts technicians across all teams.
func TotalTechnicians(teams []domain.Team) int {
	total := 0
	for _, team := range teams {
		total += len(team.Technicians)
	}
	return total
}

// WorkloadByTeam counts requests per team id.
func WorkloadByTeam(reqs []domain.Request) map[string]int {
	out := make(map[string]int)
	for _, req := range reqs {
		out[req.TeamID]++
	}
	return out
}

// OpenJobsByEquipment counts New or In Progress requests per equipment id.
func OpenJobsByEquipment(reqs []domain.Request) map[string]int {
	out := make(map[string]int)
	for _, req := range reqs {
		if req.Status.Open() {
			out[req.EquipmentID]++
		}
	}
	return out
}

// OpenJobs counts New or In Progress requests for one equipment id.
func OpenJobs(reqs []domain.Request, equipmentID string) int {
	count := 0
	for _, req := range reqs {
		if req.EquipmentID == equipmentID && req.Status.Open() {
			count++
		}
	}
	return count
}

// RequestsForEquipment returns the requests filed against one asset in
// collection order.
func RequestsForEquipment(reqs []domain.Request, equipmentID string) []domain.Request {
	out := []domain.Request{}
	for _, req := range reqs {
		if req.EquipmentID == equipmentID {
			out = append(out, req)
		}
	}
	return out
}

// IsOverdue reports whether req is still open and scheduled on a calendar
// day before now. Unparseable dates are never overdue.
func IsOverdue(req domain.Request, now time.Time) bool {
	if !req.Status.Open() {
		return false
	}
	scheduled, err := time.ParseInLocation(DateLayout, req.ScheduledDate, now.Location())
	if err != nil {
		return false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return scheduled.Before(today)
}

// FilterEquipment matches term case-insensitively against name or serial
// number and, unless department is empty or "All", requires an exact
// department match.
func FilterEquipment(items []domain.Equipment, term, department string) []domain.Equipment {
	needle := strings.ToLower(term)
	out := []domain.Equipment{}
	for _, item := range items {
		matchesSearch := strings.Contains(strings.ToLower(item.Name), needle) ||
			strings.Contains(strings.ToLower(item.SerialNumber), needle)
		matchesDept := department == "" || department == AllDepartments || item.Department == department
		if matchesSearch && matchesDept {
			out = append(out, item)
		}
	}
	return out
}

// Departments returns "All" followed by each distinct department in
// first-seen order.
func Departments(items []domain.Equipment) []string {
	out := []string{AllDepartments}
	seen := map[string]struct{}{}
	for _, item := range items {
		if _, ok := seen[item.Department]; ok {
			continue
		}
		seen[item.Department] = struct{}{}
		out = append(out, item.Department)
	}
	return out
}

// RecentRequests returns the last n requests, newest first.
func RecentRequests(reqs []domain.Request, n int) []domain.Request {
	if n <= 0 {
		return []domain.Request{}
	}
	start := len(reqs) - n
	if start < 0 {
		start = 0
	}
	out := make([]domain.Request, 0, len(reqs)-start)
	for i := len(reqs) - 1; i >= start; i-- {
		out = append(out, reqs[i])
	}
	return out
}
