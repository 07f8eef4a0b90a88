package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-management-api/internal/authz"
	"github.com/yukikurage/project-management-api/internal/dto"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/services"
)

type OrganizationHandler struct {
	orgService        *services.OrganizationService
	invitationService *services.InvitationService
}

func NewOrganizationHandler(orgService *services.OrganizationService, invitationService *services.InvitationService) *OrganizationHandler {
	return &OrganizationHandler{
		orgService:        orgService,
		invitationService: invitationService,
	}
}

// CreateOrganization creates a new organization with the caller as admin
func (h *OrganizationHandler) CreateOrganization(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	type CreateOrgRequest struct {
		Name        string `json:"name" binding:"required,max=255"`
		Description string `json:"description"`
	}

	var req CreateOrgRequest
	if !bindJSON(c, &req) {
		return
	}

	org, err := h.orgService.CreateOrganization(services.CreateOrganizationInput{
		Name:        req.Name,
		Description: req.Description,
		CreatorID:   userID,
	})
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	respondMessage(c, http.StatusCreated, "Organization created successfully", dto.ToOrganizationDTO(*org))
}

// ListOrganizations returns all organizations the user is a member of
func (h *OrganizationHandler) ListOrganizations(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	memberships, err := h.orgService.ListOrganizationsForUser(userID)
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	orgs := make([]dto.OrganizationWithRoleDTO, len(memberships))
	for i, m := range memberships {
		orgs[i] = dto.ToOrganizationWithRoleDTO(m)
	}

	respondList(c, orgs, len(orgs))
}

// GetOrganization returns organization details with members
func (h *OrganizationHandler) GetOrganization(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	orgID, ok := parseIDParam(c, "id", "organization")
	if !ok {
		return
	}

	org, err := h.orgService.GetOrganization(orgID, userID)
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	role, _ := authz.RoleOf(org.Members, userID)
	respondData(c, http.StatusOK, dto.ToOrganizationDetailDTO(*org, role))
}

// JoinOrganization allows a user to join via join code
func (h *OrganizationHandler) JoinOrganization(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	type JoinRequest struct {
		JoinCode string `json:"join_code" binding:"required"`
	}

	var req JoinRequest
	if !bindJSON(c, &req) {
		return
	}

	org, err := h.orgService.JoinOrganization(userID, req.JoinCode)
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Successfully joined organization", dto.ToOrganizationDTO(*org))
}

// InviteUsers emails the organization's join code to existing users
func (h *OrganizationHandler) InviteUsers(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	orgID, ok := parseIDParam(c, "id", "organization")
	if !ok {
		return
	}

	type InviteRequest struct {
		Emails []string `json:"emails"`
	}

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Emails) == 0 {
		apierrors.BadRequest(c, "No emails provided or the format is invalid. Please send an array of emails.")
		return
	}

	result, err := h.invitationService.InviteUsers(c.Request.Context(), orgID, userID, req.Emails)
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	data := dto.ToInvitationResultDTO(*result)
	if len(result.Successful) == 0 {
		apierrors.RespondWithErrorData(c, http.StatusBadRequest,
			apierrors.NewAPIError(apierrors.ErrCodeOperationFailed,
				fmt.Sprintf("No invitations could be sent. All %d invitations failed.", len(result.Failed))),
			data,
		)
		return
	}

	message := fmt.Sprintf("%d invitation(s) sent successfully. %d invitation(s) failed.", len(result.Successful), len(result.Failed))
	respondMessage(c, http.StatusOK, message, data)
}

func respondOrganizationError(c *gin.Context, err error) {
	if respondForbidden(c, err) {
		return
	}

	switch {
	case errors.Is(err, services.ErrOrganizationNotFound):
		apierrors.NotFound(c, "Organization not found")
	case errors.Is(err, services.ErrInvalidJoinCode):
		apierrors.NotFound(c, "Organization not found with this code")
	case errors.Is(err, services.ErrInvalidOrganizationName):
		apierrors.BadRequest(c, "Organization name is required")
	case errors.Is(err, services.ErrNoInviteEmails):
		apierrors.BadRequest(c, "No emails provided or the format is invalid. Please send an array of emails.")
	case errors.Is(err, services.ErrOrganizationNameTaken):
		apierrors.Conflict(c, "An organization with this name already exists")
	case errors.Is(err, services.ErrAlreadyOrganizationMember):
		apierrors.Conflict(c, "You are already a member of this organization")
	default:
		respondUnexpected(c, err)
	}
}
