package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yukikurage/project-management-api/internal/authz"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/repository"
	"gorm.io/gorm"
)

const MaxUtilityItemNameLength = 100

var (
	ErrUtilityItemNotFound    = errors.New("utility item not found")
	ErrInvalidUtilityItemName = errors.New("name is required and must be at most 100 characters")
	ErrUtilityItemValueEmpty  = errors.New("value is required")
)

// UtilityItemService provides business logic for project utility items.
// Any authenticated user may manage items of an existing project.
type UtilityItemService struct {
	itemRepo    repository.UtilityItemRepository
	projectRepo repository.ProjectRepository
}

// NewUtilityItemService creates a new UtilityItemService.
func NewUtilityItemService(itemRepo repository.UtilityItemRepository, projectRepo repository.ProjectRepository) *UtilityItemService {
	return &UtilityItemService{
		itemRepo:    itemRepo,
		projectRepo: projectRepo,
	}
}

// CreateUtilityItemInput represents parameters to create a utility item.
type CreateUtilityItemInput struct {
	ProjectID uint64
	CallerID  uint64
	Name      string
	Value     string
}

func (s *UtilityItemService) CreateUtilityItem(input CreateUtilityItemInput) (*models.UtilityItem, error) {
	if err := s.check(authz.ActionCreate, input.CallerID); err != nil {
		return nil, err
	}
	if err := s.ensureProject(input.ProjectID); err != nil {
		return nil, err
	}

	item := &models.UtilityItem{
		Name:        strings.TrimSpace(input.Name),
		Value:       input.Value,
		ProjectID:   input.ProjectID,
		CreatedByID: input.CallerID,
	}
	if err := validateUtilityItem(item); err != nil {
		return nil, err
	}

	if err := s.itemRepo.Create(item); err != nil {
		return nil, fmt.Errorf("failed to create utility item: %w", err)
	}
	return item, nil
}

// ListUtilityItems lists a project's items sorted by name.
func (s *UtilityItemService) ListUtilityItems(projectID, callerID uint64) ([]models.UtilityItem, error) {
	if err := s.check(authz.ActionRead, callerID); err != nil {
		return nil, err
	}
	if err := s.ensureProject(projectID); err != nil {
		return nil, err
	}

	items, err := s.itemRepo.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list utility items: %w", err)
	}
	return items, nil
}

// UpdateUtilityItem changes the name and/or value of an item.
func (s *UtilityItemService) UpdateUtilityItem(id, callerID uint64, name, value *string) (*models.UtilityItem, error) {
	if err := s.check(authz.ActionUpdate, callerID); err != nil {
		return nil, err
	}

	item, err := s.findItem(id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		item.Name = strings.TrimSpace(*name)
	}
	if value != nil {
		item.Value = *value
	}
	if err := validateUtilityItem(item); err != nil {
		return nil, err
	}

	if err := s.itemRepo.Update(item); err != nil {
		return nil, fmt.Errorf("failed to update utility item: %w", err)
	}
	return item, nil
}

func (s *UtilityItemService) DeleteUtilityItem(id, callerID uint64) error {
	if err := s.check(authz.ActionDelete, callerID); err != nil {
		return err
	}

	item, err := s.findItem(id)
	if err != nil {
		return err
	}

	if err := s.itemRepo.Delete(item.ID); err != nil {
		return fmt.Errorf("failed to delete utility item: %w", err)
	}
	return nil
}

func (s *UtilityItemService) check(action authz.Action, callerID uint64) error {
	return authz.Check(authz.ResourceUtilityItem, action, authz.Subject{UserID: callerID}, authz.Target{})
}

func (s *UtilityItemService) ensureProject(projectID uint64) error {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}
	return nil
}

func (s *UtilityItemService) findItem(id uint64) (*models.UtilityItem, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUtilityItemNotFound
		}
		return nil, fmt.Errorf("failed to find utility item: %w", err)
	}
	return item, nil
}

func validateUtilityItem(item *models.UtilityItem) error {
	if item.Name == "" || utf8.RuneCountInString(item.Name) > MaxUtilityItemNameLength {
		return ErrInvalidUtilityItemName
	}
	if strings.TrimSpace(item.Value) == "" {
		return ErrUtilityItemValueEmpty
	}
	return nil
}
