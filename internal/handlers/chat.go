package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-management-api/internal/dto"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/services"
	"github.com/yukikurage/project-management-api/internal/utils"
)

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// SendMessage posts a message to a thread of the organization
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	orgID, ok := parseIDParam(c, "orgId", "organization")
	if !ok {
		return
	}

	type SendMessageRequest struct {
		Content  string          `json:"content" binding:"required"`
		ChatType models.ChatType `json:"chat_type" binding:"required,oneof=organization project team task"`
		ChatID   uint64          `json:"chat_id"`
	}

	var req SendMessageRequest
	if !bindJSON(c, &req) {
		return
	}

	message, err := h.chatService.SendMessage(services.SendMessageInput{
		OrganizationID: orgID,
		SenderID:       userID,
		Content:        req.Content,
		ChatType:       req.ChatType,
		ChatID:         req.ChatID,
	})
	if err != nil {
		respondChatError(c, err)
		return
	}

	respondData(c, http.StatusCreated, dto.ToMessageDTO(*message))
}

// ListMessages returns messages oldest first, optionally filtered to one
// thread with ?chat_type=&chat_id= and paged with ?page=&limit=
func (h *ChatHandler) ListMessages(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	orgID, ok := parseIDParam(c, "orgId", "organization")
	if !ok {
		return
	}

	input := services.ListMessagesInput{
		OrganizationID: orgID,
		CallerID:       userID,
		Pagination:     utils.GetPaginationParams(c),
	}

	if raw := c.Query("chat_type"); raw != "" {
		chatType := models.ChatType(raw)
		input.ChatType = &chatType
	}
	if raw := c.Query("chat_id"); raw != "" {
		chatID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid chat ID")
			return
		}
		input.ChatID = &chatID
	}

	messages, err := h.chatService.ListMessages(input)
	if err != nil {
		respondChatError(c, err)
		return
	}

	respondList(c, dto.ToMessageDTOs(messages), len(messages))
}

func respondChatError(c *gin.Context, err error) {
	if respondForbidden(c, err) {
		return
	}

	switch {
	case errors.Is(err, services.ErrEmptyMessage),
		errors.Is(err, services.ErrInvalidChatType):
		apierrors.BadRequest(c, err.Error())
	default:
		respondUnexpected(c, err)
	}
}
