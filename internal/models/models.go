package models

// All lists every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Organization{},
		&OrganizationMember{},
		&Team{},
		&TeamMember{},
		&Project{},
		&ProjectTeam{},
		&Task{},
		&TaskComment{},
		&Event{},
		&UtilityItem{},
		&Message{},
	}
}
