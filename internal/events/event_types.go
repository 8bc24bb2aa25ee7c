package events

import (
	"time"

	"github.com/fieldworks/maintenance-hub/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventEquipmentAdded         EventType = "equipment_added"
	EventEquipmentStatusChanged EventType = "equipment_status_changed"
	EventRequestCreated         EventType = "request_created"
	EventRequestStatusChanged   EventType = "request_status_changed"
)

// AllTypes lists every event the store emits.
var AllTypes = []EventType{
	EventEquipmentAdded,
	EventEquipmentStatusChanged,
	EventRequestCreated,
	EventRequestStatusChanged,
}

// Event represents a change applied to the store.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	EntityID  string      `json:"entity_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// EquipmentAddedPayload payload.
type EquipmentAddedPayload struct {
	Name              string `json:"name"`
	SerialNumber      string `json:"serial_number"`
	Department        string `json:"department"`
	MaintenanceTeamID string `json:"maintenance_team_id"`
}

// EquipmentStatusChangedPayload payload. Cause is the request id when the
// change came from a cascade.
type EquipmentStatusChangedPayload struct {
	OldStatus domain.EquipmentStatus `json:"old_status"`
	NewStatus domain.EquipmentStatus `json:"new_status"`
	Cause     string                 `json:"cause,omitempty"`
}

// RequestCreatedPayload payload.
type RequestCreatedPayload struct {
	EquipmentID   string             `json:"equipment_id"`
	TeamID        string             `json:"team_id"`
	TechnicianID  string             `json:"technician_id"`
	Type          domain.RequestType `json:"type"`
	Priority      domain.Priority    `json:"priority"`
	ScheduledDate string             `json:"scheduled_date"`
	Subject       string             `json:"subject"`
}

// RequestStatusChangedPayload payload.
type RequestStatusChangedPayload struct {
	OldStatus domain.RequestStatus `json:"old_status"`
	NewStatus domain.RequestStatus `json:"new_status"`
	Cascaded  []string             `json:"cascaded,omitempty"`
}
