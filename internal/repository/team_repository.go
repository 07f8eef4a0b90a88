package repository

import (
	"github.com/yukikurage/project-management-api/internal/models"
	"gorm.io/gorm"
)

// GormTeamRepository is a GORM implementation of TeamRepository
type GormTeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &GormTeamRepository{db: db}
}

// Create creates a team together with its initial member rows. The rows are
// the single source for both Team.Members and User.Teams.
func (r *GormTeamRepository) Create(team *models.Team, memberIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Organization", "TeamLead", "Members").Create(team).Error; err != nil {
			return err
		}
		if len(memberIDs) == 0 {
			return nil
		}

		rows := make([]models.TeamMember, len(memberIDs))
		for i, userID := range memberIDs {
			rows[i] = models.TeamMember{TeamID: team.ID, UserID: userID}
		}
		return tx.Create(&rows).Error
	})
}

// FindByID finds a team by ID
func (r *GormTeamRepository) FindByID(id uint64) (*models.Team, error) {
	var team models.Team
	if err := r.db.First(&team, id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// FindByIDWithMembers finds a team with members and lead loaded
func (r *GormTeamRepository) FindByIDWithMembers(id uint64) (*models.Team, error) {
	var team models.Team
	if err := r.db.Preload("Members").Preload("TeamLead").First(&team, id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// ListByOrganization lists the teams of an organization with members and lead loaded
func (r *GormTeamRepository) ListByOrganization(organizationID uint64) ([]models.Team, error) {
	var teams []models.Team
	if err := r.db.Preload("Members").
		Preload("TeamLead").
		Where("organization_id = ?", organizationID).
		Order("created_at ASC").
		Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

// AddMember inserts one membership row
func (r *GormTeamRepository) AddMember(teamID, userID uint64) error {
	return r.db.Create(&models.TeamMember{TeamID: teamID, UserID: userID}).Error
}

// HasMember reports whether the user is in the team
func (r *GormTeamRepository) HasMember(teamID, userID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.TeamMember{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&count).Error
	return count > 0, err
}

// ListTeamIDsByUser lists the IDs of every team the user belongs to
func (r *GormTeamRepository) ListTeamIDsByUser(userID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.Model(&models.TeamMember{}).
		Where("user_id = ?", userID).
		Order("team_id ASC").
		Pluck("team_id", &ids).Error
	return ids, err
}

// CountInOrganization counts how many of the given team IDs belong to the organization
func (r *GormTeamRepository) CountInOrganization(organizationID uint64, ids []uint64) (int64, error) {
	var count int64
	if len(ids) == 0 {
		return 0, nil
	}
	err := r.db.Model(&models.Team{}).
		Where("organization_id = ? AND id IN ?", organizationID, ids).
		Count(&count).Error
	return count, err
}
