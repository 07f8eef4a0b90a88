package repository

import (
	"github.com/yukikurage/project-management-api/internal/models"
	"gorm.io/gorm"
)

// GormOrganizationRepository is a GORM implementation of OrganizationRepository
type GormOrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new OrganizationRepository
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &GormOrganizationRepository{db: db}
}

// Create inserts the organization and the creator's membership in one transaction
func (r *GormOrganizationRepository) Create(org *models.Organization, creator *models.OrganizationMember) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("CreatedBy", "Members").Create(org).Error; err != nil {
			return err
		}

		creator.OrganizationID = org.ID
		return tx.Omit("Organization", "User").Create(creator).Error
	})
}

// FindByID finds an organization by ID
func (r *GormOrganizationRepository) FindByID(id uint64) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.First(&org, id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// FindByIDWithMembers finds an organization with creator and members resolved
func (r *GormOrganizationRepository) FindByIDWithMembers(id uint64) (*models.Organization, error) {
	var org models.Organization
	err := r.db.Preload("CreatedBy").
		Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("joined_at ASC")
		}).
		Preload("Members.User").
		First(&org, id).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// FindByJoinCode finds an organization by join code
func (r *GormOrganizationRepository) FindByJoinCode(code string) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.Where("join_code = ?", code).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// ExistsByName reports whether an organization already uses the name
func (r *GormOrganizationRepository) ExistsByName(name string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Organization{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

// ExistsByJoinCode reports whether an organization already uses the join code
func (r *GormOrganizationRepository) ExistsByJoinCode(code string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Organization{}).Where("join_code = ?", code).Count(&count).Error
	return count > 0, err
}

// AddMember adds a member to an organization
func (r *GormOrganizationRepository) AddMember(member *models.OrganizationMember) error {
	return r.db.Omit("Organization", "User").Create(member).Error
}

// FindMember finds a specific organization member
func (r *GormOrganizationRepository) FindMember(organizationID, userID uint64) (*models.OrganizationMember, error) {
	var member models.OrganizationMember
	if err := r.db.Where("organization_id = ? AND user_id = ?", organizationID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembers lists all members of an organization in join order
func (r *GormOrganizationRepository) ListMembers(organizationID uint64) ([]models.OrganizationMember, error) {
	var members []models.OrganizationMember
	if err := r.db.Preload("User").
		Where("organization_id = ?", organizationID).
		Order("joined_at ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// ListMembershipsByUserID lists the memberships of a user with organizations and their creators loaded
func (r *GormOrganizationRepository) ListMembershipsByUserID(userID uint64) ([]models.OrganizationMember, error) {
	var memberships []models.OrganizationMember
	if err := r.db.Preload("Organization").
		Preload("Organization.CreatedBy").
		Where("user_id = ?", userID).
		Order("joined_at ASC").
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}
