package models

import (
	"time"
)

type TaskStatus string

const (
	TaskStatusToDo        TaskStatus = "to_do"
	TaskStatusInProgress  TaskStatus = "in_progress"
	TaskStatusUnderReview TaskStatus = "under_review"
	TaskStatusCompleted   TaskStatus = "completed"
	TaskStatusBlocked     TaskStatus = "blocked"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusToDo, TaskStatusInProgress, TaskStatusUnderReview, TaskStatusCompleted, TaskStatusBlocked:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow      TaskPriority = "low"
	TaskPriorityMedium   TaskPriority = "medium"
	TaskPriorityHigh     TaskPriority = "high"
	TaskPriorityCritical TaskPriority = "critical"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityCritical:
		return true
	}
	return false
}

type Task struct {
	ID             uint64       `gorm:"primarykey" json:"id"`
	Title          string       `gorm:"type:varchar(255);not null" json:"title"`
	Description    string       `gorm:"type:text;not null" json:"description"`
	Status         TaskStatus   `gorm:"type:varchar(20);not null;default:'to_do'" json:"status"`
	Priority       TaskPriority `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	DueDate        *time.Time   `json:"due_date"`
	ProjectID      uint64       `gorm:"not null;index" json:"project_id"`
	OrganizationID uint64       `gorm:"not null;index" json:"organization_id"`
	AssignedToID   *uint64      `gorm:"index" json:"assigned_to_id"`
	AssignedTeamID *uint64      `gorm:"index" json:"assigned_team_id"`
	CreatedByID    uint64       `gorm:"not null" json:"created_by_id"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`

	// Relations
	Project      Project       `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	AssignedTo   *User         `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`
	AssignedTeam *Team         `gorm:"foreignKey:AssignedTeamID" json:"assigned_team,omitempty"`
	CreatedBy    User          `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	Comments     []TaskComment `gorm:"foreignKey:TaskID" json:"comments,omitempty"`
}

// TaskComment is append-only.
type TaskComment struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	TaskID    uint64    `gorm:"not null;index" json:"task_id"`
	UserID    uint64    `gorm:"not null" json:"user_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
