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

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask creates a task in a project. The project comes from the
// :projectId path parameter when the route has one, otherwise from the body.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var projectID uint64
	if c.Param("projectId") != "" {
		if projectID, ok = parseIDParam(c, "projectId", "project"); !ok {
			return
		}
	}

	type CreateTaskRequest struct {
		Project      *uint64             `json:"project"`
		Title        string              `json:"title" binding:"required,max=255"`
		Description  string              `json:"description" binding:"required"`
		Status       models.TaskStatus   `json:"status" binding:"omitempty,oneof=to_do in_progress under_review completed blocked"`
		Priority     models.TaskPriority `json:"priority" binding:"omitempty,oneof=low medium high critical"`
		DueDate      *time.Time          `json:"due_date"`
		AssignedTo   *uint64             `json:"assigned_to"`
		AssignedTeam *uint64             `json:"assigned_team"`
	}

	var req CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}
	if projectID == 0 {
		if req.Project == nil || *req.Project == 0 {
			apierrors.ValidationFailed(c, map[string]string{"project": "project is required"})
			return
		}
		projectID = *req.Project
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		ProjectID:      projectID,
		CallerID:       userID,
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		Priority:       req.Priority,
		DueDate:        req.DueDate,
		AssignedToID:   req.AssignedTo,
		AssignedTeamID: req.AssignedTeam,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	respondData(c, http.StatusCreated, dto.ToTaskDTO(*task))
}

// ListProjectTasks returns the tasks of a project
func (h *TaskHandler) ListProjectTasks(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(c, "projectId", "project")
	if !ok {
		return
	}

	tasks, err := h.taskService.ListProjectTasks(projectID, userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	respondList(c, dto.ToTaskDTOs(tasks), len(tasks))
}

// ListMyTasks returns tasks assigned to the caller or to the caller's teams
func (h *TaskHandler) ListMyTasks(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListMyTasks(userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	respondList(c, dto.ToTaskDTOs(tasks), len(tasks))
}

// UpdateTaskStatus changes a task's status
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "id", "task")
	if !ok {
		return
	}

	type UpdateStatusRequest struct {
		Status models.TaskStatus `json:"status" binding:"required,oneof=to_do in_progress under_review completed blocked"`
	}

	var req UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.UpdateTaskStatus(taskID, userID, req.Status)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	respondData(c, http.StatusOK, dto.ToTaskDTO(*task))
}

// AddComment adds a comment and returns the task's comments
func (h *TaskHandler) AddComment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "id", "task")
	if !ok {
		return
	}

	type AddCommentRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req AddCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comments, err := h.taskService.AddComment(taskID, userID, req.Text)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	respondData(c, http.StatusCreated, dto.ToTaskCommentDTOs(comments))
}

func respondTaskError(c *gin.Context, err error) {
	if respondForbidden(c, err) {
		return
	}

	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	case errors.Is(err, services.ErrAssigneeNotFound):
		apierrors.NotFound(c, "Assigned user not found")
	case errors.Is(err, services.ErrTeamNotFound):
		apierrors.NotFound(c, "Team not found")
	case errors.Is(err, services.ErrInvalidTaskTitle),
		errors.Is(err, services.ErrInvalidTaskBody),
		errors.Is(err, services.ErrInvalidTaskStatus),
		errors.Is(err, services.ErrInvalidTaskPriority),
		errors.Is(err, services.ErrEmptyComment),
		errors.Is(err, services.ErrTeamNotInOrganization):
		apierrors.BadRequest(c, err.Error())
	default:
		respondUnexpected(c, err)
	}
}
