package dto

import (
	"time"

	"github.com/yukikurage/project-management-api/internal/models"
)

// MessageDTO represents a chat message in API responses
type MessageDTO struct {
	ID             uint64          `json:"id"`
	Content        string          `json:"content"`
	ChatType       models.ChatType `json:"chat_type"`
	ChatID         uint64          `json:"chat_id"`
	OrganizationID uint64          `json:"organization_id"`
	SenderID       uint64          `json:"sender_id"`
	Sender         *UserDTO        `json:"sender,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ToMessageDTO converts a Message model to MessageDTO
func ToMessageDTO(message models.Message) MessageDTO {
	return MessageDTO{
		ID:             message.ID,
		Content:        message.Content,
		ChatType:       message.ChatType,
		ChatID:         message.ChatID,
		OrganizationID: message.OrganizationID,
		SenderID:       message.SenderID,
		Sender:         toUserRef(&message.Sender),
		CreatedAt:      message.CreatedAt,
	}
}

// ToMessageDTOs converts a slice of messages
func ToMessageDTOs(messages []models.Message) []MessageDTO {
	result := make([]MessageDTO, len(messages))
	for i, message := range messages {
		result[i] = ToMessageDTO(message)
	}
	return result
}
