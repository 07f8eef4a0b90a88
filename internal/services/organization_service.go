package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/project-management-api/internal/authz"
	"github.com/yukikurage/project-management-api/internal/constants"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/repository"
	"github.com/yukikurage/project-management-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrOrganizationNotFound      = errors.New("organization not found")
	ErrInvalidOrganizationName   = errors.New("organization name cannot be empty")
	ErrOrganizationNameTaken     = errors.New("an organization with this name already exists")
	ErrJoinCodeGenerationFailed  = errors.New("failed to generate join code")
	ErrInvalidJoinCode           = errors.New("organization not found with this code")
	ErrAlreadyOrganizationMember = errors.New("you are already a member of this organization")
)

// OrganizationService provides business logic for organization operations.
type OrganizationService struct {
	orgRepo     repository.OrganizationRepository
	newJoinCode func() (string, error)
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(orgRepo repository.OrganizationRepository) *OrganizationService {
	return &OrganizationService{
		orgRepo:     orgRepo,
		newJoinCode: utils.GenerateJoinCode,
	}
}

// CreateOrganizationInput represents parameters to create a new organization.
type CreateOrganizationInput struct {
	Name        string
	Description string
	CreatorID   uint64
}

// CreateOrganization creates a new organization with the creator as its first admin.
//
// Name and join code uniqueness are backed by unique indexes, so a concurrent
// insert that slips past the existence checks fails with gorm.ErrDuplicatedKey
// and is resolved here instead of producing a duplicate.
func (s *OrganizationService) CreateOrganization(input CreateOrganizationInput) (*models.Organization, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidOrganizationName
	}

	if taken, err := s.orgRepo.ExistsByName(name); err != nil {
		return nil, fmt.Errorf("failed to check organization name: %w", err)
	} else if taken {
		return nil, ErrOrganizationNameTaken
	}

	for attempt := 0; attempt < constants.MaxJoinCodeAttempts; attempt++ {
		code, err := s.newJoinCode()
		if err != nil {
			return nil, ErrJoinCodeGenerationFailed
		}

		taken, err := s.orgRepo.ExistsByJoinCode(code)
		if err != nil {
			return nil, fmt.Errorf("failed to check join code: %w", err)
		}
		if taken {
			continue
		}

		org := &models.Organization{
			Name:        name,
			Description: strings.TrimSpace(input.Description),
			JoinCode:    code,
			CreatedByID: input.CreatorID,
		}
		creator := &models.OrganizationMember{
			UserID:   input.CreatorID,
			Role:     models.RoleAdmin,
			JoinedAt: time.Now(),
		}

		err = s.orgRepo.Create(org, creator)
		if err == nil {
			org.Members = []models.OrganizationMember{*creator}
			return org, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("failed to create organization: %w", err)
		}
		if taken, checkErr := s.orgRepo.ExistsByName(name); checkErr == nil && taken {
			return nil, ErrOrganizationNameTaken
		}
	}

	return nil, ErrJoinCodeGenerationFailed
}

// JoinOrganization adds the user as a member of the organization owning the join code.
func (s *OrganizationService) JoinOrganization(userID uint64, joinCode string) (*models.Organization, error) {
	org, err := s.orgRepo.FindByJoinCode(strings.ToUpper(strings.TrimSpace(joinCode)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidJoinCode
		}
		return nil, fmt.Errorf("failed to find organization by join code: %w", err)
	}

	if _, err := s.orgRepo.FindMember(org.ID, userID); err == nil {
		return nil, ErrAlreadyOrganizationMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}

	member := &models.OrganizationMember{
		OrganizationID: org.ID,
		UserID:         userID,
		Role:           models.RoleMember,
		JoinedAt:       time.Now(),
	}

	if err := s.orgRepo.AddMember(member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyOrganizationMember
		}
		return nil, fmt.Errorf("failed to add member to organization: %w", err)
	}

	return org, nil
}

// ListOrganizationsForUser returns the caller's memberships with organizations and their creators.
func (s *OrganizationService) ListOrganizationsForUser(userID uint64) ([]models.OrganizationMember, error) {
	memberships, err := s.orgRepo.ListMembershipsByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return memberships, nil
}

// GetOrganization returns an organization with members resolved. Only members may read it.
func (s *OrganizationService) GetOrganization(orgID, callerID uint64) (*models.Organization, error) {
	org, err := s.orgRepo.FindByIDWithMembers(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	err = authz.Check(authz.ResourceOrganization, authz.ActionRead,
		authz.Subject{UserID: callerID},
		authz.Target{Members: org.Members},
	)
	if err != nil {
		return nil, err
	}

	return org, nil
}
