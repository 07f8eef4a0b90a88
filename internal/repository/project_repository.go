package repository

import (
	"github.com/yukikurage/project-management-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a project and links the given teams
func (r *GormProjectRepository) Create(project *models.Project, teamIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Organization", "CreatedBy", "Teams").Create(project).Error; err != nil {
			return err
		}
		return linkProjectTeams(tx, project.ID, teamIDs)
	})
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindInOrganization finds a project by ID within an organization, with relations loaded
func (r *GormProjectRepository) FindInOrganization(organizationID, id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.Preload("Teams").
		Preload("CreatedBy").
		Where("organization_id = ?", organizationID).
		First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// ListByOrganization lists the projects of an organization, newest first
func (r *GormProjectRepository) ListByOrganization(organizationID uint64) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.Preload("Teams").
		Preload("CreatedBy").
		Where("organization_id = ?", organizationID).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Update saves the project and, when teamIDs is non-nil, replaces its teams
func (r *GormProjectRepository) Update(project *models.Project, teamIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Organization", "CreatedBy", "Teams").Save(project).Error; err != nil {
			return err
		}
		if teamIDs == nil {
			return nil
		}
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.ProjectTeam{}).Error; err != nil {
			return err
		}
		return linkProjectTeams(tx, project.ID, teamIDs)
	})
}

func linkProjectTeams(tx *gorm.DB, projectID uint64, teamIDs []uint64) error {
	if len(teamIDs) == 0 {
		return nil
	}
	rows := make([]models.ProjectTeam, len(teamIDs))
	for i, teamID := range teamIDs {
		rows[i] = models.ProjectTeam{ProjectID: projectID, TeamID: teamID}
	}
	return tx.Create(&rows).Error
}
