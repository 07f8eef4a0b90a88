package dto

import (
	"time"

	"github.com/yukikurage/project-management-api/internal/models"
)

// TaskCommentDTO represents a task comment in API responses
type TaskCommentDTO struct {
	ID        uint64    `json:"id"`
	User      *UserDTO  `json:"user,omitempty"`
	UserID    uint64    `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID             uint64              `json:"id"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Status         models.TaskStatus   `json:"status"`
	Priority       models.TaskPriority `json:"priority"`
	DueDate        *time.Time          `json:"due_date"`
	ProjectID      uint64              `json:"project_id"`
	ProjectName    string              `json:"project_name,omitempty"`
	OrganizationID uint64              `json:"organization_id"`
	AssignedToID   *uint64             `json:"assigned_to_id"`
	AssignedTo     *UserDTO            `json:"assigned_to,omitempty"`
	AssignedTeamID *uint64             `json:"assigned_team_id"`
	AssignedTeam   *TeamRefDTO         `json:"assigned_team,omitempty"`
	CreatedBy      *UserDTO            `json:"created_by,omitempty"`
	Comments       []TaskCommentDTO    `json:"comments,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:             task.ID,
		Title:          task.Title,
		Description:    task.Description,
		Status:         task.Status,
		Priority:       task.Priority,
		DueDate:        task.DueDate,
		ProjectID:      task.ProjectID,
		ProjectName:    task.Project.Name,
		OrganizationID: task.OrganizationID,
		AssignedToID:   task.AssignedToID,
		AssignedTo:     toUserRef(task.AssignedTo),
		AssignedTeamID: task.AssignedTeamID,
		CreatedBy:      toUserRef(&task.CreatedBy),
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}

	// Include team if preloaded
	if task.AssignedTeam != nil && task.AssignedTeam.ID != 0 {
		dto.AssignedTeam = &TeamRefDTO{ID: task.AssignedTeam.ID, Name: task.AssignedTeam.Name}
	}

	if len(task.Comments) > 0 {
		dto.Comments = ToTaskCommentDTOs(task.Comments)
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	result := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		result[i] = ToTaskDTO(task)
	}
	return result
}

// ToTaskCommentDTOs converts a slice of comments
func ToTaskCommentDTOs(comments []models.TaskComment) []TaskCommentDTO {
	result := make([]TaskCommentDTO, len(comments))
	for i, comment := range comments {
		result[i] = TaskCommentDTO{
			ID:        comment.ID,
			User:      toUserRef(&comment.User),
			UserID:    comment.UserID,
			Text:      comment.Text,
			CreatedAt: comment.CreatedAt,
		}
	}
	return result
}
