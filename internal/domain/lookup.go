package domain

// FindEquipment returns the equipment with the given id, or false when the id is stale.
func FindEquipment(items []Equipment, id string) (Equipment, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return Equipment{}, false
}

// FindRequest returns the request with the given id, or false when the id is stale.
func FindRequest(items []Request, id string) (Request, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return Request{}, false
}

// FindTeam returns the team with the given id, or false when the id is stale.
func FindTeam(teams []Team, id string) (Team, bool) {
	for _, team := range teams {
		if team.ID == id {
			return team, true
		}
	}
	return Team{}, false
}

// FindTechnician resolves a technician through its owning team.
func FindTechnician(teams []Team, teamID, technicianID string) (Technician, bool) {
	team, ok := FindTeam(teams, teamID)
	if !ok {
		return Technician{}, false
	}
	return team.Technician(technicianID)
}
