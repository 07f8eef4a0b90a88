package repository

import (
	"github.com/yukikurage/project-management-api/internal/models"
	"gorm.io/gorm"
)

// GormUtilityItemRepository is a GORM implementation of UtilityItemRepository
type GormUtilityItemRepository struct {
	db *gorm.DB
}

// NewUtilityItemRepository creates a new UtilityItemRepository
func NewUtilityItemRepository(db *gorm.DB) UtilityItemRepository {
	return &GormUtilityItemRepository{db: db}
}

func (r *GormUtilityItemRepository) Create(item *models.UtilityItem) error {
	return r.db.Omit("CreatedBy").Create(item).Error
}

func (r *GormUtilityItemRepository) FindByID(id uint64) (*models.UtilityItem, error) {
	var item models.UtilityItem
	if err := r.db.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormUtilityItemRepository) ListByProject(projectID uint64) ([]models.UtilityItem, error) {
	var items []models.UtilityItem
	if err := r.db.Where("project_id = ?", projectID).
		Order("name ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormUtilityItemRepository) Update(item *models.UtilityItem) error {
	return r.db.Omit("CreatedBy").Save(item).Error
}

func (r *GormUtilityItemRepository) Delete(id uint64) error {
	return r.db.Delete(&models.UtilityItem{}, id).Error
}
