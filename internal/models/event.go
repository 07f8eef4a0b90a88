package models

import (
	"time"
)

type Event struct {
	ID             uint64     `gorm:"primarykey" json:"id"`
	Title          string     `gorm:"type:varchar(100);not null" json:"title"`
	Description    string     `gorm:"type:varchar(500)" json:"description"`
	Start          time.Time  `gorm:"column:starts_at;not null" json:"start"`
	End            *time.Time `gorm:"column:ends_at" json:"end"`
	AllDay         bool       `gorm:"not null;default:false" json:"all_day"`
	MeetingLink    string     `gorm:"column:google_meet_link;type:varchar(500)" json:"google_meet_link"`
	OrganizationID uint64     `gorm:"not null;index" json:"organization_id"`
	ProjectID      *uint64    `gorm:"index" json:"project_id"`
	CreatedByID    uint64     `gorm:"not null" json:"created_by_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	CreatedBy User `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
}
