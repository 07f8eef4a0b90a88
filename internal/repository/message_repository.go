package repository

import (
	"github.com/yukikurage/project-management-api/internal/database"
	"github.com/yukikurage/project-management-api/internal/models"
	"gorm.io/gorm"
)

// GormMessageRepository is a GORM implementation of MessageRepository
type GormMessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &GormMessageRepository{db: db}
}

// Create appends a message
func (r *GormMessageRepository) Create(message *models.Message) error {
	return r.db.Omit("Sender").Create(message).Error
}

// List returns the messages matching the filter oldest first, senders loaded
func (r *GormMessageRepository) List(filter MessageFilter) ([]models.Message, error) {
	query := r.db.Preload("Sender").Where("organization_id = ?", filter.OrganizationID)
	if filter.ChatType != nil {
		query = query.Where("chat_type = ?", *filter.ChatType)
	}
	if filter.ChatID != nil {
		query = query.Where("chat_id = ?", *filter.ChatID)
	}

	var messages []models.Message
	if err := query.Order("created_at ASC, id ASC").
		Scopes(database.Paginate(filter.Pagination)).
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
