package dto

import (
	"time"

	"github.com/yukikurage/project-management-api/internal/models"
)

// TeamRefDTO is a team referenced from another resource
type TeamRefDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID                      uint64               `json:"id"`
	Name                    string               `json:"name"`
	Description             string               `json:"description"`
	ProblemStatement        string               `json:"problem_statement"`
	ProblemStatementSummary string               `json:"problem_statement_summary"`
	Status                  models.ProjectStatus `json:"status"`
	StartDate               time.Time            `json:"start_date"`
	EndDate                 *time.Time           `json:"end_date"`
	OrganizationID          uint64               `json:"organization_id"`
	CreatedBy               *UserDTO             `json:"created_by,omitempty"`
	Teams                   []TeamRefDTO         `json:"teams"`
	CreatedAt               time.Time            `json:"created_at"`
	UpdatedAt               time.Time            `json:"updated_at"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	teams := make([]TeamRefDTO, len(project.Teams))
	for i, team := range project.Teams {
		teams[i] = TeamRefDTO{ID: team.ID, Name: team.Name}
	}

	return ProjectDTO{
		ID:                      project.ID,
		Name:                    project.Name,
		Description:             project.Description,
		ProblemStatement:        project.ProblemStatement,
		ProblemStatementSummary: project.ProblemStatementSummary,
		Status:                  project.Status,
		StartDate:               project.StartDate,
		EndDate:                 project.EndDate,
		OrganizationID:          project.OrganizationID,
		CreatedBy:               toUserRef(&project.CreatedBy),
		Teams:                   teams,
		CreatedAt:               project.CreatedAt,
		UpdatedAt:               project.UpdatedAt,
	}
}

// ToProjectDTOs converts a slice of projects
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	result := make([]ProjectDTO, len(projects))
	for i, project := range projects {
		result[i] = ToProjectDTO(project)
	}
	return result
}
