package dto

import (
	"github.com/fieldworks/maintenance-hub/internal/domain"
)

// CreateMaintenanceRequest payload. Team and technician may be left empty
// to inherit the equipment defaults.
type CreateMaintenanceRequest struct {
	Subject       string  `json:"subject" validate:"required,max=200"`
	EquipmentID   string  `json:"equipment_id" validate:"required"`
	TeamID        string  `json:"team_id"`
	TechnicianID  string  `json:"technician_id"`
	Type          string  `json:"type" validate:"omitempty,oneof=Corrective Preventive"`
	ScheduledDate string  `json:"scheduled_date" validate:"isodate"`
	DurationHours float64 `json:"duration_hours" validate:"gte=0"`
	Priority      string  `json:"priority" validate:"omitempty,oneof=Low Medium High"`
	Notes         *string `json:"notes"`
}

// Input converts the payload into a store input.
func (r CreateMaintenanceRequest) Input() domain.RequestInput {
	return domain.RequestInput{
		Subject:       r.Subject,
		EquipmentID:   r.EquipmentID,
		TeamID:        r.TeamID,
		TechnicianID:  r.TechnicianID,
		Type:          domain.RequestType(r.Type),
		ScheduledDate: r.ScheduledDate,
		DurationHours: r.DurationHours,
		Priority:      domain.Priority(r.Priority),
		Notes:         r.Notes,
	}
}

// StatusChangeRequest payload for PATCH /requests/:id/status.
type StatusChangeRequest struct {
	Status string `json:"status" validate:"required"`
}

// RequestResponse represents one maintenance request.
type RequestResponse struct {
	ID            string  `json:"id"`
	Subject       string  `json:"subject"`
	EquipmentID   string  `json:"equipment_id"`
	TeamID        string  `json:"team_id"`
	TechnicianID  string  `json:"technician_id"`
	Type          string  `json:"type"`
	ScheduledDate string  `json:"scheduled_date"`
	DurationHours float64 `json:"duration_hours"`
	Status        string  `json:"status"`
	Priority      string  `json:"priority"`
	Notes         *string `json:"notes"`
}

// NewRequestResponse maps a domain request.
func NewRequestResponse(req domain.Request) RequestResponse {
	return RequestResponse{
		ID:            req.ID,
		Subject:       req.Subject,
		EquipmentID:   req.EquipmentID,
		TeamID:        req.TeamID,
		TechnicianID:  req.TechnicianID,
		Type:          string(req.Type),
		ScheduledDate: req.ScheduledDate,
		DurationHours: req.DurationHours,
		Status:        string(req.Status),
		Priority:      string(req.Priority),
		Notes:         req.Notes,
	}
}

// NewRequestList maps a slice of requests, never returning nil.
func NewRequestList(reqs []domain.Request) []RequestResponse {
	out := make([]RequestResponse, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, NewRequestResponse(req))
	}
	return out
}
