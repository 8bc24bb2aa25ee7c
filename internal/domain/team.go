package domain

// Technician is a maintenance worker owned by exactly one team.
type Technician struct {
	ID     string
	Name   string
	Avatar string
	TeamID string
}

// Team groups technicians. Technicians keep insertion order for display.
type Team struct {
	ID          string
	Name        string
	Technicians []Technician
}

// Technician returns the member with the given id.
func (t Team) Technician(id string) (Technician, bool) {
	for _, tech := range t.Technicians {
		if tech.ID == id {
			return tech, true
		}
	}
	return Technician{}, false
}

// Clone returns a copy that does not share the technicians slice.
func (t Team) Clone() Team {
	t.Technicians = append([]Technician(nil), t.Technicians...)
	return t
}
