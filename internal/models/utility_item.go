package models

import (
	"time"
)

// UtilityItem is a name/value pair attached to a project, such as a link or credential.
type UtilityItem struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Value       string    `gorm:"type:text;not null" json:"value"`
	ProjectID   uint64    `gorm:"not null;index" json:"project_id"`
	CreatedByID uint64    `gorm:"not null" json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	CreatedBy User `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
}
