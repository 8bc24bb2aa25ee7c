package views

import (
	"fmt"
	"time"

	"github.com/fieldworks/maintenance-hub/internal/domain"
	"github.com/fieldworks/maintenance-hub/internal/lifecycle"
)

// UnknownAsset labels a card whose equipment id no longer resolves.
const UnknownAsset = "Unknown Asset"

var columnLabels = map[domain.RequestStatus]string{
	domain.RequestStatusNew:        "Unassigned / New",
	domain.RequestStatusInProgress: "In Progress",
	domain.RequestStatusRepaired:   "Completed",
	domain.RequestStatusScrap:      "Scrapped",
}

// StatusGroups partitions requests by status, keeping collection order
// inside each group.
type StatusGroups map[domain.RequestStatus][]domain.Request

// GroupByStatus partitions reqs into the four status groups. Every group is
// present, possibly empty.
func GroupByStatus(reqs []domain.Request) StatusGroups {
	groups := make(StatusGroups, len(domain.RequestStatuses))
	for _, status := range domain.RequestStatuses {
		groups[status] = []domain.Request{}
	}
	for _, req := range reqs {
		groups[req.Status] = append(groups[req.Status], req)
	}
	return groups
}

// Card is a request decorated for the board.
type Card struct {
	Request       domain.Request
	EquipmentName string
	Technician    *domain.Technician
	Overdue       bool
	// Actions are the statuses the card can be moved to next.
	Actions []domain.RequestStatus
}

// Column is one kanban column.
type Column struct {
	Status domain.RequestStatus
	Label  string
	Cards  []Card
}

// Kanban builds the board columns in status order.
func Kanban(c Collections, now time.Time) []Column {
	groups := GroupByStatus(c.Requests)
	columns := make([]Column, 0, len(domain.RequestStatuses))
	for _, status := range domain.RequestStatuses {
		col := Column{Status: status, Label: columnLabels[status], Cards: []Card{}}
		for _, req := range groups[status] {
			col.Cards = append(col.Cards, decorate(c, req, now))
		}
		columns = append(columns, col)
	}
	return columns
}

func decorate(c Collections, req domain.Request, now time.Time) Card {
	card := Card{
		Request:       req,
		EquipmentName: UnknownAsset,
		Overdue:       IsOverdue(req, now),
		Actions:       lifecycle.Actions(req.Status),
	}
	if item, ok := domain.FindEquipment(c.Equipment, req.EquipmentID); ok {
		card.EquipmentName = item.Name
	}
	if tech, ok := domain.FindTechnician(c.Teams, req.TeamID, req.TechnicianID); ok {
		card.Technician = &tech
	}
	return card
}

// PreventiveOn returns preventive requests scheduled exactly on date. The
// date is compared as an opaque string.
func PreventiveOn(reqs []domain.Request, date string) []domain.Request {
	out := []domain.Request{}
	if date == "" {
		return out
	}
	for _, req := range reqs {
		if req.Type == domain.RequestTypePreventive && req.ScheduledDate == date {
			out = append(out, req)
		}
	}
	return out
}

// CalendarMonth groups preventive requests by day for one month. Only days
// with at least one request appear. An invalid month yields an empty map.
func CalendarMonth(reqs []domain.Request, year int, month time.Month) map[string][]domain.Request {
	out := map[string][]domain.Request{}
	if month < time.January || month > time.December {
		return out
	}
	days := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	for day := 1; day <= days; day++ {
		date := fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
		if matches := PreventiveOn(reqs, date); len(matches) > 0 {
			out[date] = matches
		}
	}
	return out
}
