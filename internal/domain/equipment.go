package domain

// EquipmentStatus enumerates asset states.
type EquipmentStatus string

const (
	EquipmentStatusActive   EquipmentStatus = "Active"
	EquipmentStatusScrapped EquipmentStatus = "Scrapped"
)

// Valid reports whether s is a known equipment status.
func (s EquipmentStatus) Valid() bool {
	return s == EquipmentStatusActive || s == EquipmentStatusScrapped
}

// Equipment is a tracked asset. Dates are ISO YYYY-MM-DD strings.
type Equipment struct {
	ID                  string
	Name                string
	SerialNumber        string
	PurchaseDate        string
	WarrantyUntil       string
	Location            string
	Department          string
	AssignedEmployee    *string
	MaintenanceTeamID   string
	DefaultTechnicianID string
	Status              EquipmentStatus
	Category            string
}

// EquipmentInput is the caller-supplied payload for adding equipment.
type EquipmentInput struct {
	Name                string
	SerialNumber        string
	PurchaseDate        string
	WarrantyUntil       string
	Location            string
	Department          string
	AssignedEmployee    *string
	MaintenanceTeamID   string
	DefaultTechnicianID string
	Status              EquipmentStatus
	Category            string
}
