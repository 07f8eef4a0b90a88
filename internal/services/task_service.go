package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/project-management-api/internal/authz"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrInvalidTaskTitle    = errors.New("task title cannot be empty")
	ErrInvalidTaskBody     = errors.New("task description cannot be empty")
	ErrInvalidTaskStatus   = errors.New("invalid task status")
	ErrInvalidTaskPriority = errors.New("invalid task priority")
	ErrAssigneeNotFound    = errors.New("assigned user not found")
	ErrEmptyComment        = errors.New("comment text cannot be empty")
)

// TaskService provides business logic for task operations.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	teamRepo    repository.TeamRepository
	userRepo    repository.UserRepository
	authorizer
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, teamRepo repository.TeamRepository, userRepo repository.UserRepository, orgRepo repository.OrganizationRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		teamRepo:    teamRepo,
		userRepo:    userRepo,
		authorizer:  authorizer{orgRepo: orgRepo},
	}
}

// CreateTaskInput represents parameters to create a new task.
type CreateTaskInput struct {
	ProjectID      uint64
	CallerID       uint64
	Title          string
	Description    string
	Status         models.TaskStatus
	Priority       models.TaskPriority
	DueDate        *time.Time
	AssignedToID   *uint64
	AssignedTeamID *uint64
}

// CreateTask creates a task in a project. Only admins of the project's
// organization may create tasks.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	project, err := s.projectRepo.FindByID(input.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	err = s.authorize(project.OrganizationID, authz.ResourceTask, authz.ActionCreate,
		authz.Subject{UserID: input.CallerID}, authz.Target{})
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrInvalidTaskTitle
	}
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, ErrInvalidTaskBody
	}

	status := input.Status
	if status == "" {
		status = models.TaskStatusToDo
	}
	if !status.Valid() {
		return nil, ErrInvalidTaskStatus
	}

	priority := input.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}
	if !priority.Valid() {
		return nil, ErrInvalidTaskPriority
	}

	if input.AssignedToID != nil {
		count, err := s.userRepo.CountByIDs([]uint64{*input.AssignedToID})
		if err != nil {
			return nil, fmt.Errorf("failed to verify assignee: %w", err)
		}
		if count == 0 {
			return nil, ErrAssigneeNotFound
		}
	}
	if input.AssignedTeamID != nil {
		count, err := s.teamRepo.CountInOrganization(project.OrganizationID, []uint64{*input.AssignedTeamID})
		if err != nil {
			return nil, fmt.Errorf("failed to verify team: %w", err)
		}
		if count == 0 {
			return nil, ErrTeamNotInOrganization
		}
	}

	task := &models.Task{
		Title:          title,
		Description:    description,
		Status:         status,
		Priority:       priority,
		DueDate:        input.DueDate,
		ProjectID:      project.ID,
		OrganizationID: project.OrganizationID,
		AssignedToID:   input.AssignedToID,
		AssignedTeamID: input.AssignedTeamID,
		CreatedByID:    input.CallerID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.findTask(task.ID, "AssignedTo", "AssignedTeam", "CreatedBy")
}

// ListProjectTasks lists the tasks of a project.
func (s *TaskService) ListProjectTasks(projectID, callerID uint64) ([]models.Task, error) {
	err := authz.Check(authz.ResourceTask, authz.ActionRead, authz.Subject{UserID: callerID}, authz.Target{})
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListMyTasks lists tasks assigned to the caller directly or through a team.
func (s *TaskService) ListMyTasks(callerID uint64) ([]models.Task, error) {
	teamIDs, err := s.teamRepo.ListTeamIDsByUser(callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	tasks, err := s.taskRepo.ListAssigned(callerID, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTaskStatus changes a task's status. Only the assigned user or a member
// of the assigned team may do so; organization admins have no override.
func (s *TaskService) UpdateTaskStatus(taskID, callerID uint64, status models.TaskStatus) (*models.Task, error) {
	if !status.Valid() {
		return nil, ErrInvalidTaskStatus
	}

	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	teamIDs, err := s.teamRepo.ListTeamIDsByUser(callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	err = authz.Check(authz.ResourceTask, authz.ActionUpdateStatus,
		authz.Subject{UserID: callerID, TeamIDs: teamIDs},
		authz.Target{AssignedToID: task.AssignedToID, AssignedTeamID: task.AssignedTeamID},
	)
	if err != nil {
		return nil, err
	}

	if err := s.taskRepo.UpdateStatus(task.ID, status); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	return s.findTask(task.ID, "AssignedTo", "AssignedTeam", "CreatedBy")
}

// AddComment appends a comment and returns every comment of the task.
// Any member of the task's organization may comment.
func (s *TaskService) AddComment(taskID, callerID uint64, text string) ([]models.TaskComment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}

	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	err = s.authorize(task.OrganizationID, authz.ResourceTask, authz.ActionComment,
		authz.Subject{UserID: callerID}, authz.Target{})
	if err != nil {
		return nil, err
	}

	comment := &models.TaskComment{
		TaskID: task.ID,
		UserID: callerID,
		Text:   text,
	}
	if err := s.taskRepo.AddComment(comment); err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	comments, err := s.taskRepo.ListComments(task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

func (s *TaskService) findTask(id uint64, preload ...string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id, preload...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}
