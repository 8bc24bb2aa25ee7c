package store

import (
	"time"

	"github.com/fieldworks/maintenance-hub/internal/domain"
	"github.com/fieldworks/maintenance-hub/internal/views"
)

// Seed is the initial dataset a store starts from.
type Seed struct {
	Teams     []domain.Team
	Equipment []domain.Equipment
	Requests  []domain.Request
}

// DefaultSeed returns the built-in dataset. The first request is scheduled
// for today.
func DefaultSeed(today time.Time) Seed {
	mike := "Mike Brewer"
	alice := "Alice Wang"

	return Seed{
		Teams: []domain.Team{
			{
				ID:   "t1",
				Name: "Mechanics",
				Technicians: []domain.Technician{
					{ID: "tech1", Name: "Rahul Sharma", Avatar: "https://i.pravatar.cc/150?u=rahul", TeamID: "t1"},
					{ID: "tech2", Name: "John Doe", Avatar: "https://i.pravatar.cc/150?u=john", TeamID: "t1"},
				},
			},
			{
				ID:   "t2",
				Name: "Electricians",
				Technicians: []domain.Technician{
					{ID: "tech3", Name: "Sarah Connor", Avatar: "https://i.pravatar.cc/150?u=sarah", TeamID: "t2"},
				},
			},
			{
				ID:   "t3",
				Name: "IT Support",
				Technicians: []domain.Technician{
					{ID: "tech4", Name: "Kevin Mitnick", Avatar: "https://i.pravatar.cc/150?u=kevin", TeamID: "t3"},
				},
			},
		},
		Equipment: []domain.Equipment{
			{
				ID:                  "e1",
				Name:                "CNC Machine 5000",
				SerialNumber:        "CNC-9087",
				PurchaseDate:        "2023-01-15",
				WarrantyUntil:       "2025-01-15",
				Location:            "Factory Floor 2",
				Department:          "Production",
				AssignedEmployee:    &mike,
				MaintenanceTeamID:   "t1",
				DefaultTechnicianID: "tech1",
				Status:              domain.EquipmentStatusActive,
				Category:            "Production",
			},
			{
				ID:                  "e2",
				Name:                "Main Server Rack",
				SerialNumber:        "SRV-X11",
				PurchaseDate:        "2024-05-10",
				WarrantyUntil:       "2027-05-10",
				Location:            "Server Room A",
				Department:          "IT",
				AssignedEmployee:    &alice,
				MaintenanceTeamID:   "t3",
				DefaultTechnicianID: "tech4",
				Status:              domain.EquipmentStatusActive,
				Category:            "Infrastructure",
			},
			{
				ID:                  "e3",
				Name:                "Industrial Oven",
				SerialNumber:        "OVN-442",
				PurchaseDate:        "2022-11-20",
				WarrantyUntil:       "2023-11-20",
				Location:            "Canteen",
				Department:          "Admin",
				MaintenanceTeamID:   "t2",
				DefaultTechnicianID: "tech3",
				Status:              domain.EquipmentStatusActive,
				Category:            "Kitchen",
			},
		},
		Requests: []domain.Request{
			{
				ID:            "r1",
				Subject:       "Overheating during operation",
				EquipmentID:   "e1",
				TeamID:        "t1",
				TechnicianID:  "tech1",
				Type:          domain.RequestTypeCorrective,
				ScheduledDate: today.Format(views.DateLayout),
				DurationHours: 2.5,
				Status:        domain.RequestStatusInProgress,
				Priority:      domain.PriorityHigh,
			},
			{
				ID:            "r2",
				Subject:       "Quarterly Safety Inspection",
				EquipmentID:   "e3",
				TeamID:        "t2",
				TechnicianID:  "tech3",
				Type:          domain.RequestTypePreventive,
				ScheduledDate: "2025-10-15",
				DurationHours: 1.0,
				Status:        domain.RequestStatusNew,
				Priority:      domain.PriorityMedium,
			},
		},
	}
}
