package models

import (
	"time"
)

type ProjectStatus string

const (
	ProjectStatusNotStarted ProjectStatus = "not_started"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusOnHold     ProjectStatus = "on_hold"
	ProjectStatusCompleted  ProjectStatus = "completed"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusNotStarted, ProjectStatusInProgress, ProjectStatusOnHold, ProjectStatusCompleted:
		return true
	}
	return false
}

type Project struct {
	ID                      uint64        `gorm:"primarykey" json:"id"`
	Name                    string        `gorm:"type:varchar(255);not null" json:"name"`
	Description             string        `gorm:"type:text" json:"description"`
	ProblemStatement        string        `gorm:"type:text;not null" json:"problem_statement"`
	ProblemStatementSummary string        `gorm:"type:text" json:"problem_statement_summary"`
	Status                  ProjectStatus `gorm:"type:varchar(20);not null;default:'not_started'" json:"status"`
	StartDate               time.Time     `json:"start_date"`
	EndDate                 *time.Time    `json:"end_date"`
	OrganizationID          uint64        `gorm:"not null;index" json:"organization_id"`
	CreatedByID             uint64        `gorm:"not null" json:"created_by_id"`
	CreatedAt               time.Time     `json:"created_at"`
	UpdatedAt               time.Time     `json:"updated_at"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	CreatedBy    User         `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	Teams        []Team       `gorm:"many2many:project_teams;" json:"teams,omitempty"`
}
