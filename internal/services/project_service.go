package services

import (
	"context"
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
	ErrProjectNotFound         = errors.New("project not found")
	ErrInvalidProjectName      = errors.New("project name cannot be empty")
	ErrProblemStatementMissing = errors.New("problem statement is required")
	ErrInvalidProjectStatus    = errors.New("invalid project status")
	ErrInvalidProjectDates     = errors.New("end date must not be before start date")
	ErrTeamNotInOrganization   = errors.New("one or more teams do not belong to this organization")
	ErrSummaryFailed           = errors.New("failed to summarize problem statement")
)

// ProjectService provides business logic for project operations.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	teamRepo    repository.TeamRepository
	orgRepo     repository.OrganizationRepository
	summarizer  Summarizer
	authorizer
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, teamRepo repository.TeamRepository, orgRepo repository.OrganizationRepository, summarizer Summarizer) *ProjectService {
	if summarizer == nil {
		summarizer = StubSummarizer{}
	}
	return &ProjectService{
		projectRepo: projectRepo,
		teamRepo:    teamRepo,
		orgRepo:     orgRepo,
		summarizer:  summarizer,
		authorizer:  authorizer{orgRepo: orgRepo},
	}
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	OrganizationID   uint64
	CallerID         uint64
	Name             string
	Description      string
	ProblemStatement string
	Status           models.ProjectStatus
	StartDate        *time.Time
	EndDate          *time.Time
	TeamIDs          []uint64
}

// CreateProject creates a project in the organization. Only admins may create projects.
func (s *ProjectService) CreateProject(ctx context.Context, input CreateProjectInput) (*models.Project, error) {
	if err := s.ensureOrganization(input.OrganizationID); err != nil {
		return nil, err
	}

	err := s.authorize(input.OrganizationID, authz.ResourceProject, authz.ActionCreate,
		authz.Subject{UserID: input.CallerID}, authz.Target{})
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidProjectName
	}
	statement := strings.TrimSpace(input.ProblemStatement)
	if statement == "" {
		return nil, ErrProblemStatementMissing
	}

	status := input.Status
	if status == "" {
		status = models.ProjectStatusNotStarted
	}
	if !status.Valid() {
		return nil, ErrInvalidProjectStatus
	}

	startDate := time.Now()
	if input.StartDate != nil {
		startDate = *input.StartDate
	}
	if input.EndDate != nil && input.EndDate.Before(startDate) {
		return nil, ErrInvalidProjectDates
	}

	teamIDs := uniqueUint64(input.TeamIDs)
	if err := s.ensureTeamsInOrganization(input.OrganizationID, teamIDs); err != nil {
		return nil, err
	}

	summary, err := s.summarizer.Summarize(ctx, statement)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSummaryFailed, err)
	}

	project := &models.Project{
		Name:                    name,
		Description:             strings.TrimSpace(input.Description),
		ProblemStatement:        statement,
		ProblemStatementSummary: summary,
		Status:                  status,
		StartDate:               startDate,
		EndDate:                 input.EndDate,
		OrganizationID:          input.OrganizationID,
		CreatedByID:             input.CallerID,
	}

	if err := s.projectRepo.Create(project, teamIDs); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return s.GetProject(input.OrganizationID, project.ID, input.CallerID)
}

// ListProjects lists the projects of an organization.
func (s *ProjectService) ListProjects(orgID, callerID uint64) ([]models.Project, error) {
	err := s.authorize(orgID, authz.ResourceProject, authz.ActionRead,
		authz.Subject{UserID: callerID}, authz.Target{})
	if err != nil {
		return nil, err
	}

	projects, err := s.projectRepo.ListByOrganization(orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProject returns one project of an organization.
func (s *ProjectService) GetProject(orgID, projectID, callerID uint64) (*models.Project, error) {
	err := s.authorize(orgID, authz.ResourceProject, authz.ActionRead,
		authz.Subject{UserID: callerID}, authz.Target{})
	if err != nil {
		return nil, err
	}

	project, err := s.projectRepo.FindInOrganization(orgID, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// UpdateProjectInput holds the fields to change. Nil fields are left as they are.
type UpdateProjectInput struct {
	OrganizationID   uint64
	ProjectID        uint64
	CallerID         uint64
	Name             *string
	Description      *string
	ProblemStatement *string
	Status           *models.ProjectStatus
	StartDate        *time.Time
	EndDate          *time.Time
	TeamIDs          []uint64
	ReplaceTeams     bool
}

// UpdateProject changes a project. Only admins may update projects. The
// summary is regenerated when the problem statement changes.
func (s *ProjectService) UpdateProject(ctx context.Context, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.projectRepo.FindInOrganization(input.OrganizationID, input.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	err = s.authorize(project.OrganizationID, authz.ResourceProject, authz.ActionUpdate,
		authz.Subject{UserID: input.CallerID}, authz.Target{})
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrInvalidProjectName
		}
		project.Name = name
	}
	if input.Description != nil {
		project.Description = strings.TrimSpace(*input.Description)
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidProjectStatus
		}
		project.Status = *input.Status
	}
	if input.StartDate != nil {
		project.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		project.EndDate = input.EndDate
	}
	if project.EndDate != nil && project.EndDate.Before(project.StartDate) {
		return nil, ErrInvalidProjectDates
	}

	if input.ProblemStatement != nil {
		statement := strings.TrimSpace(*input.ProblemStatement)
		if statement == "" {
			return nil, ErrProblemStatementMissing
		}
		if statement != project.ProblemStatement {
			summary, err := s.summarizer.Summarize(ctx, statement)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrSummaryFailed, err)
			}
			project.ProblemStatement = statement
			project.ProblemStatementSummary = summary
		}
	}

	var teamIDs []uint64
	if input.ReplaceTeams {
		teamIDs = uniqueUint64(input.TeamIDs)
		if err := s.ensureTeamsInOrganization(project.OrganizationID, teamIDs); err != nil {
			return nil, err
		}
		if teamIDs == nil {
			teamIDs = []uint64{}
		}
	}

	if err := s.projectRepo.Update(project, teamIDs); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return s.GetProject(project.OrganizationID, project.ID, input.CallerID)
}

func (s *ProjectService) ensureOrganization(orgID uint64) error {
	if _, err := s.orgRepo.FindByID(orgID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrganizationNotFound
		}
		return fmt.Errorf("failed to find organization: %w", err)
	}
	return nil
}

func (s *ProjectService) ensureTeamsInOrganization(orgID uint64, teamIDs []uint64) error {
	if len(teamIDs) == 0 {
		return nil
	}
	count, err := s.teamRepo.CountInOrganization(orgID, teamIDs)
	if err != nil {
		return fmt.Errorf("failed to verify teams: %w", err)
	}
	if count != int64(len(teamIDs)) {
		return ErrTeamNotInOrganization
	}
	return nil
}

func uniqueUint64(values []uint64) []uint64 {
	if len(values) == 0 {
		return nil
	}

	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
