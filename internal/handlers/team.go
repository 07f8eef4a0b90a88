package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-management-api/internal/dto"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/services"
)

type TeamHandler struct {
	teamService *services.TeamService
}

func NewTeamHandler(teamService *services.TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// CreateTeam creates a team in the organization given by :id
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	orgID, ok := parseIDParam(c, "id", "organization")
	if !ok {
		return
	}

	type CreateTeamRequest struct {
		Name        string   `json:"name" binding:"required,max=255"`
		Description string   `json:"description"`
		Members     []uint64 `json:"members" binding:"required,min=1"`
		TeamLead    *uint64  `json:"team_lead"`
	}

	var req CreateTeamRequest
	if !bindJSON(c, &req) {
		return
	}

	team, err := h.teamService.CreateTeam(services.CreateTeamInput{
		OrganizationID: orgID,
		CallerID:       userID,
		Name:           req.Name,
		Description:    req.Description,
		MemberIDs:      req.Members,
		TeamLeadID:     req.TeamLead,
	})
	if err != nil {
		respondTeamError(c, err)
		return
	}

	respondData(c, http.StatusCreated, dto.ToTeamDTO(*team))
}

// ListTeams returns the teams of the organization given by :id
func (h *TeamHandler) ListTeams(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	orgID, ok := parseIDParam(c, "id", "organization")
	if !ok {
		return
	}

	teams, err := h.teamService.ListTeams(orgID, userID)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	respondList(c, dto.ToTeamDTOs(teams), len(teams))
}

// AddTeamMember adds a user to the team given by :id
func (h *TeamHandler) AddTeamMember(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	teamID, ok := parseIDParam(c, "id", "team")
	if !ok {
		return
	}

	type AddMemberRequest struct {
		UserID uint64 `json:"user_id" binding:"required"`
	}

	var req AddMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	team, err := h.teamService.AddTeamMember(teamID, userID, req.UserID)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	respondData(c, http.StatusOK, dto.ToTeamDTO(*team))
}

func respondTeamError(c *gin.Context, err error) {
	if respondForbidden(c, err) {
		return
	}

	switch {
	case errors.Is(err, services.ErrTeamNotFound):
		apierrors.NotFound(c, "Team not found")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrTeamLeadNotFound):
		apierrors.NotFound(c, "Team lead not found")
	case errors.Is(err, services.ErrAlreadyTeamMember):
		apierrors.BadRequest(c, "User is already in this team")
	case errors.Is(err, services.ErrInvalidTeamName),
		errors.Is(err, services.ErrTeamMembersRequired),
		errors.Is(err, services.ErrTeamMembersNotFound):
		apierrors.BadRequest(c, err.Error())
	default:
		respondUnexpected(c, err)
	}
}
