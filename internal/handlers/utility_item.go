package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-management-api/internal/dto"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/services"
)

type UtilityItemHandler struct {
	itemService *services.UtilityItemService
}

func NewUtilityItemHandler(itemService *services.UtilityItemService) *UtilityItemHandler {
	return &UtilityItemHandler{
		itemService: itemService,
	}
}

func (h *UtilityItemHandler) CreateUtilityItem(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	type CreateItemRequest struct {
		Name    string `json:"name" binding:"required,max=100"`
		Value   string `json:"value" binding:"required"`
		Project uint64 `json:"project" binding:"required"`
	}

	var req CreateItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.itemService.CreateUtilityItem(services.CreateUtilityItemInput{
		ProjectID: req.Project,
		CallerID:  userID,
		Name:      req.Name,
		Value:     req.Value,
	})
	if err != nil {
		respondUtilityItemError(c, err)
		return
	}

	respondData(c, http.StatusCreated, dto.ToUtilityItemDTO(*item))
}

func (h *UtilityItemHandler) ListUtilityItems(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(c, "projectId", "project")
	if !ok {
		return
	}

	items, err := h.itemService.ListUtilityItems(projectID, userID)
	if err != nil {
		respondUtilityItemError(c, err)
		return
	}

	respondList(c, dto.ToUtilityItemDTOs(items), len(items))
}

func (h *UtilityItemHandler) UpdateUtilityItem(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "id", "utility item")
	if !ok {
		return
	}

	type UpdateItemRequest struct {
		Name  *string `json:"name" binding:"omitempty,max=100"`
		Value *string `json:"value"`
	}

	var req UpdateItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.itemService.UpdateUtilityItem(itemID, userID, req.Name, req.Value)
	if err != nil {
		respondUtilityItemError(c, err)
		return
	}

	respondData(c, http.StatusOK, dto.ToUtilityItemDTO(*item))
}

func (h *UtilityItemHandler) DeleteUtilityItem(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "id", "utility item")
	if !ok {
		return
	}

	if err := h.itemService.DeleteUtilityItem(itemID, userID); err != nil {
		respondUtilityItemError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Utility item removed", nil)
}

func respondUtilityItemError(c *gin.Context, err error) {
	if respondForbidden(c, err) {
		return
	}

	switch {
	case errors.Is(err, services.ErrUtilityItemNotFound):
		apierrors.NotFound(c, "Utility item not found")
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	case errors.Is(err, services.ErrInvalidUtilityItemName),
		errors.Is(err, services.ErrUtilityItemValueEmpty):
		apierrors.BadRequest(c, err.Error())
	default:
		respondUnexpected(c, err)
	}
}
