package models

import (
	"time"
)

type ChatType string

const (
	ChatTypeOrganization ChatType = "organization"
	ChatTypeProject      ChatType = "project"
	ChatTypeTeam         ChatType = "team"
	ChatTypeTask         ChatType = "task"
)

func (t ChatType) Valid() bool {
	switch t {
	case ChatTypeOrganization, ChatTypeProject, ChatTypeTeam, ChatTypeTask:
		return true
	}
	return false
}

// Message is append-only. A thread is identified by (OrganizationID, ChatType, ChatID).
type Message struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	SenderID       uint64    `gorm:"not null" json:"sender_id"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	ChatType       ChatType  `gorm:"type:varchar(20);not null;index:idx_messages_thread,priority:2" json:"chat_type"`
	ChatID         uint64    `gorm:"not null;index:idx_messages_thread,priority:3" json:"chat_id"`
	OrganizationID uint64    `gorm:"not null;index:idx_messages_thread,priority:1" json:"organization_id"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`

	Sender User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}
