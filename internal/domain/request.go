package domain

// RequestStatus enumerates lifecycle states for maintenance requests.
type RequestStatus string

const (
	RequestStatusNew        RequestStatus = "New"
	RequestStatusInProgress RequestStatus = "In Progress"
	RequestStatusRepaired   RequestStatus = "Repaired"
	RequestStatusScrap      RequestStatus = "Scrap"
)

// RequestStatuses lists every status in board order.
var RequestStatuses = []RequestStatus{
	RequestStatusNew,
	RequestStatusInProgress,
	RequestStatusRepaired,
	RequestStatusScrap,
}

// Valid reports whether s is a known request status.
func (s RequestStatus) Valid() bool {
	for _, candidate := range RequestStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// Open reports whether work is still pending on a request in this status.
func (s RequestStatus) Open() bool {
	return s == RequestStatusNew || s == RequestStatusInProgress
}

// RequestType distinguishes breakdown work from planned work.
type RequestType string

const (
	RequestTypeCorrective RequestType = "Corrective"
	RequestTypePreventive RequestType = "Preventive"
)

// RequestTypes lists every request type.
var RequestTypes = []RequestType{RequestTypeCorrective, RequestTypePreventive}

// Valid reports whether t is a known request type.
func (t RequestType) Valid() bool {
	return t == RequestTypeCorrective || t == RequestTypePreventive
}

// Priority enumerates request urgency.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Request is a maintenance work order.
type Request struct {
	ID            string
	Subject       string
	EquipmentID   string
	TeamID        string
	TechnicianID  string
	Type          RequestType
	ScheduledDate string
	DurationHours float64
	Status        RequestStatus
	Priority      Priority
	Notes         *string
}

// RequestInput is the caller-supplied payload for adding a request. Status
// is accepted only so callers can send whole records; it is always ignored.
type RequestInput struct {
	Subject       string
	EquipmentID   string
	TeamID        string
	TechnicianID  string
	Type          RequestType
	ScheduledDate string
	DurationHours float64
	Status        RequestStatus
	Priority      Priority
	Notes         *string
}
