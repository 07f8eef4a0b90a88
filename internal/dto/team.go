package dto

import (
	"time"

	"github.com/yukikurage/project-management-api/internal/models"
)

// TeamDTO represents a team in API responses
type TeamDTO struct {
	ID             uint64    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	OrganizationID uint64    `json:"organization_id"`
	TeamLead       *UserDTO  `json:"team_lead,omitempty"`
	Members        []UserDTO `json:"members"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToTeamDTO converts a Team model to TeamDTO
func ToTeamDTO(team models.Team) TeamDTO {
	return TeamDTO{
		ID:             team.ID,
		Name:           team.Name,
		Description:    team.Description,
		OrganizationID: team.OrganizationID,
		TeamLead:       toUserRef(team.TeamLead),
		Members:        ToUserDTOs(team.Members),
		CreatedAt:      team.CreatedAt,
	}
}

// ToTeamDTOs converts a slice of teams
func ToTeamDTOs(teams []models.Team) []TeamDTO {
	result := make([]TeamDTO, len(teams))
	for i, team := range teams {
		result[i] = ToTeamDTO(team)
	}
	return result
}
