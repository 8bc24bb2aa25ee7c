package dto

import (
	"github.com/fieldworks/maintenance-hub/internal/domain"
)

// CreateEquipmentRequest payload.
type CreateEquipmentRequest struct {
	Name                string  `json:"name" validate:"required,max=120"`
	SerialNumber        string  `json:"serial_number" validate:"max=64"`
	PurchaseDate        string  `json:"purchase_date" validate:"isodate"`
	WarrantyUntil       string  `json:"warranty_until" validate:"isodate"`
	Location            string  `json:"location"`
	Department          string  `json:"department"`
	AssignedEmployee    *string `json:"assigned_employee"`
	MaintenanceTeamID   string  `json:"maintenance_team_id"`
	DefaultTechnicianID string  `json:"default_technician_id"`
	Status              string  `json:"status" validate:"omitempty,oneof=Active Scrapped"`
	Category            string  `json:"category"`
}

// Input converts the payload into a store input.
func (r CreateEquipmentRequest) Input() domain.EquipmentInput {
	return domain.EquipmentInput{
		Name:                r.Name,
		SerialNumber:        r.SerialNumber,
		PurchaseDate:        r.PurchaseDate,
		WarrantyUntil:       r.WarrantyUntil,
		Location:            r.Location,
		Department:          r.Department,
		AssignedEmployee:    r.AssignedEmployee,
		MaintenanceTeamID:   r.MaintenanceTeamID,
		DefaultTechnicianID: r.DefaultTechnicianID,
		Status:              domain.EquipmentStatus(r.Status),
		Category:            r.Category,
	}
}

// EquipmentStatusRequest payload for PATCH /equipment/:id/status.
type EquipmentStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// EquipmentResponse represents one asset.
type EquipmentResponse struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	SerialNumber        string  `json:"serial_number"`
	PurchaseDate        string  `json:"purchase_date"`
	WarrantyUntil       string  `json:"warranty_until"`
	Location            string  `json:"location"`
	Department          string  `json:"department"`
	AssignedEmployee    *string `json:"assigned_employee"`
	MaintenanceTeamID   string  `json:"maintenance_team_id"`
	DefaultTechnicianID string  `json:"default_technician_id"`
	Status              string  `json:"status"`
	Category            string  `json:"category"`
}

// AssetResponse is an asset list row.
type AssetResponse struct {
	EquipmentResponse
	OpenJobs int `json:"open_jobs"`
}

// AssetListResponse is the filtered asset list.
type AssetListResponse struct {
	Items       []AssetResponse `json:"items"`
	Departments []string        `json:"departments"`
}

// NewEquipmentResponse maps a domain asset.
func NewEquipmentResponse(item domain.Equipment) EquipmentResponse {
	return EquipmentResponse{
		ID:                  item.ID,
		Name:                item.Name,
		SerialNumber:        item.SerialNumber,
		PurchaseDate:        item.PurchaseDate,
		WarrantyUntil:       item.WarrantyUntil,
		Location:            item.Location,
		Department:          item.Department,
		AssignedEmployee:    item.AssignedEmployee,
		MaintenanceTeamID:   item.MaintenanceTeamID,
		DefaultTechnicianID: item.DefaultTechnicianID,
		Status:              string(item.Status),
		Category:            item.Category,
	}
}
