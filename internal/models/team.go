package models

import (
	"time"
)

type Team struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	Description    string    `gorm:"type:text" json:"description"`
	OrganizationID uint64    `gorm:"not null;index" json:"organization_id"`
	TeamLeadID     *uint64   `json:"team_lead_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations. team_members is shared with User.Teams.
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	TeamLead     *User        `gorm:"foreignKey:TeamLeadID" json:"team_lead,omitempty"`
	Members      []User       `gorm:"many2many:team_members;" json:"members,omitempty"`
}

// TeamMember is one row of the team_members join table behind Team.Members and User.Teams.
type TeamMember struct {
	TeamID uint64 `gorm:"primarykey"`
	UserID uint64 `gorm:"primarykey;index"`
}

// ProjectTeam is one row of the project_teams join table behind Project.Teams.
type ProjectTeam struct {
	ProjectID uint64 `gorm:"primarykey"`
	TeamID    uint64 `gorm:"primarykey"`
}
