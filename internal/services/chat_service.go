package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/project-management-api/internal/authz"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/repository"
	"github.com/yukikurage/project-management-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrEmptyMessage    = errors.New("message content cannot be empty")
	ErrInvalidChatType = errors.New("invalid chat type")
)

// ChatService stores and lists chat messages. Threads are identified by
// organization, chat type and chat id; there is no separate chat entity.
type ChatService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
}

// NewChatService creates a new ChatService.
func NewChatService(messageRepo repository.MessageRepository, userRepo repository.UserRepository) *ChatService {
	return &ChatService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
	}
}

// SendMessageInput represents parameters to post a message.
type SendMessageInput struct {
	OrganizationID uint64
	SenderID       uint64
	Content        string
	ChatType       models.ChatType
	ChatID         uint64
}

// SendMessage appends a message to a thread and returns it with the sender resolved.
func (s *ChatService) SendMessage(input SendMessageInput) (*models.Message, error) {
	err := authz.Check(authz.ResourceMessage, authz.ActionCreate, authz.Subject{UserID: input.SenderID}, authz.Target{})
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, ErrEmptyMessage
	}
	if !input.ChatType.Valid() {
		return nil, ErrInvalidChatType
	}

	message := &models.Message{
		SenderID:       input.SenderID,
		Content:        content,
		ChatType:       input.ChatType,
		ChatID:         input.ChatID,
		OrganizationID: input.OrganizationID,
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	sender, err := s.userRepo.FindByID(input.SenderID)
	if err == nil {
		message.Sender = *sender
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load sender: %w", err)
	}

	return message, nil
}

// ListMessagesInput scopes a listing to an organization and optionally one thread.
type ListMessagesInput struct {
	OrganizationID uint64
	CallerID       uint64
	ChatType       *models.ChatType
	ChatID         *uint64
	Pagination     utils.PaginationParams
}

// ListMessages returns messages oldest first.
func (s *ChatService) ListMessages(input ListMessagesInput) ([]models.Message, error) {
	err := authz.Check(authz.ResourceMessage, authz.ActionRead, authz.Subject{UserID: input.CallerID}, authz.Target{})
	if err != nil {
		return nil, err
	}

	if input.ChatType != nil && !input.ChatType.Valid() {
		return nil, ErrInvalidChatType
	}

	messages, err := s.messageRepo.List(repository.MessageFilter{
		OrganizationID: input.OrganizationID,
		ChatType:       input.ChatType,
		ChatID:         input.ChatID,
		Pagination:     input.Pagination,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}
