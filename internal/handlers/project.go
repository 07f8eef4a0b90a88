package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-management-api/internal/dto"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/services"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// CreateProject creates a project in the path organization
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	orgID, ok := parseIDParam(c, "orgId", "organization")
	if !ok {
		return
	}

	type CreateProjectRequest struct {
		Name             string               `json:"name" binding:"required,max=255"`
		Description      string               `json:"description"`
		ProblemStatement string               `json:"problem_statement" binding:"required"`
		Status           models.ProjectStatus `json:"status" binding:"omitempty,oneof=not_started in_progress on_hold completed"`
		StartDate        *time.Time           `json:"start_date"`
		EndDate          *time.Time           `json:"end_date"`
		Teams            []uint64             `json:"teams"`
	}

	var req CreateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), services.CreateProjectInput{
		OrganizationID:   orgID,
		CallerID:         userID,
		Name:             req.Name,
		Description:      req.Description,
		ProblemStatement: req.ProblemStatement,
		Status:           req.Status,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		TeamIDs:          req.Teams,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	respondData(c, http.StatusCreated, dto.ToProjectDTO(*project))
}

// ListProjects returns the projects of an organization
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	orgID, ok := parseIDParam(c, "orgId", "organization")
	if !ok {
		return
	}

	projects, err := h.projectService.ListProjects(orgID, userID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	respondList(c, dto.ToProjectDTOs(projects), len(projects))
}

// GetProject returns one project of an organization
func (h *ProjectHandler) GetProject(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	orgID, ok := parseIDParam(c, "orgId", "organization")
	if !ok {
		return
	}
	projectID, ok := parseIDParam(c, "id", "project")
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(orgID, projectID, userID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	respondData(c, http.StatusOK, dto.ToProjectDTO(*project))
}

// UpdateProject updates only the fields present in the body
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	orgID, ok := parseIDParam(c, "orgId", "organization")
	if !ok {
		return
	}
	projectID, ok := parseIDParam(c, "id", "project")
	if !ok {
		return
	}

	type UpdateProjectRequest struct {
		Name             *string               `json:"name" binding:"omitempty,max=255"`
		Description      *string               `json:"description"`
		ProblemStatement *string               `json:"problem_statement"`
		Status           *models.ProjectStatus `json:"status" binding:"omitempty,oneof=not_started in_progress on_hold completed"`
		StartDate        *time.Time            `json:"start_date"`
		EndDate          *time.Time            `json:"end_date"`
		Teams            *[]uint64             `json:"teams"`
	}

	var req UpdateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	input := services.UpdateProjectInput{
		OrganizationID:   orgID,
		ProjectID:        projectID,
		CallerID:         userID,
		Name:             req.Name,
		Description:      req.Description,
		ProblemStatement: req.ProblemStatement,
		Status:           req.Status,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
	}
	if req.Teams != nil {
		input.TeamIDs = *req.Teams
		input.ReplaceTeams = true
	}

	project, err := h.projectService.UpdateProject(c.Request.Context(), input)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	respondData(c, http.StatusOK, dto.ToProjectDTO(*project))
}

func respondProjectError(c *gin.Context, err error) {
	if respondForbidden(c, err) {
		return
	}

	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	case errors.Is(err, services.ErrOrganizationNotFound):
		apierrors.NotFound(c, "Organization not found")
	case errors.Is(err, services.ErrInvalidProjectName),
		errors.Is(err, services.ErrProblemStatementMissing),
		errors.Is(err, services.ErrInvalidProjectStatus),
		errors.Is(err, services.ErrInvalidProjectDates),
		errors.Is(err, services.ErrTeamNotInOrganization):
		apierrors.BadRequest(c, err.Error())
	default:
		respondUnexpected(c, err)
	}
}
