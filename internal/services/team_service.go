package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/project-management-api/internal/authz"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTeamNotFound        = errors.New("team not found")
	ErrInvalidTeamName     = errors.New("team name cannot be empty")
	ErrTeamMembersRequired = errors.New("a team needs at least one member")
	ErrTeamMembersNotFound = errors.New("one or more members do not exist")
	ErrTeamLeadNotFound    = errors.New("team lead not found")
	ErrAlreadyTeamMember   = errors.New("user is already in this team")
)

// TeamService provides business logic for team operations.
type TeamService struct {
	teamRepo repository.TeamRepository
	userRepo repository.UserRepository
	orgRepo  repository.OrganizationRepository
	authorizer
}

// NewTeamService creates a new TeamService.
func NewTeamService(teamRepo repository.TeamRepository, userRepo repository.UserRepository, orgRepo repository.OrganizationRepository) *TeamService {
	return &TeamService{
		teamRepo:   teamRepo,
		userRepo:   userRepo,
		orgRepo:    orgRepo,
		authorizer: authorizer{orgRepo: orgRepo},
	}
}

// CreateTeamInput represents parameters to create a new team.
type CreateTeamInput struct {
	OrganizationID uint64
	CallerID       uint64
	Name           string
	Description    string
	MemberIDs      []uint64
	TeamLeadID     *uint64
}

// CreateTeam creates a team with its initial members. Only admins may create teams.
func (s *TeamService) CreateTeam(input CreateTeamInput) (*models.Team, error) {
	if _, err := s.orgRepo.FindByID(input.OrganizationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	err := s.authorize(input.OrganizationID, authz.ResourceTeam, authz.ActionCreate,
		authz.Subject{UserID: input.CallerID}, authz.Target{})
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidTeamName
	}

	memberIDs := uniqueUint64(input.MemberIDs)
	if len(memberIDs) == 0 {
		return nil, ErrTeamMembersRequired
	}
	if err := s.ensureUsersExist(memberIDs, ErrTeamMembersNotFound); err != nil {
		return nil, err
	}
	if input.TeamLeadID != nil {
		if err := s.ensureUsersExist([]uint64{*input.TeamLeadID}, ErrTeamLeadNotFound); err != nil {
			return nil, err
		}
	}

	team := &models.Team{
		Name:           name,
		Description:    strings.TrimSpace(input.Description),
		OrganizationID: input.OrganizationID,
		TeamLeadID:     input.TeamLeadID,
	}
	if err := s.teamRepo.Create(team, memberIDs); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	return s.findTeamWithMembers(team.ID)
}

// ListTeams lists the teams of an organization with members and leads.
func (s *TeamService) ListTeams(orgID, callerID uint64) ([]models.Team, error) {
	err := s.authorize(orgID, authz.ResourceTeam, authz.ActionRead,
		authz.Subject{UserID: callerID}, authz.Target{})
	if err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.ListByOrganization(orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

// AddTeamMember adds a user to a team. Only admins of the team's organization may add members.
func (s *TeamService) AddTeamMember(teamID, callerID, userID uint64) (*models.Team, error) {
	team, err := s.teamRepo.FindByID(teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}

	err = s.authorize(team.OrganizationID, authz.ResourceTeam, authz.ActionAddMember,
		authz.Subject{UserID: callerID}, authz.Target{})
	if err != nil {
		return nil, err
	}

	if err := s.ensureUsersExist([]uint64{userID}, ErrUserNotFound); err != nil {
		return nil, err
	}

	exists, err := s.teamRepo.HasMember(teamID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check team membership: %w", err)
	}
	if exists {
		return nil, ErrAlreadyTeamMember
	}

	if err := s.teamRepo.AddMember(teamID, userID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyTeamMember
		}
		return nil, fmt.Errorf("failed to add team member: %w", err)
	}

	return s.findTeamWithMembers(teamID)
}

func (s *TeamService) ensureUsersExist(ids []uint64, notFound error) error {
	count, err := s.userRepo.CountByIDs(ids)
	if err != nil {
		return fmt.Errorf("failed to verify users: %w", err)
	}
	if count != int64(len(ids)) {
		return notFound
	}
	return nil
}

func (s *TeamService) findTeamWithMembers(id uint64) (*models.Team, error) {
	team, err := s.teamRepo.FindByIDWithMembers(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}
	return team, nil
}
