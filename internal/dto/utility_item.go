package dto

import (
	"time"

	"github.com/yukikurage/project-management-api/internal/models"
)

// UtilityItemDTO represents a utility item in API responses
type UtilityItemDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Value       string    `json:"value"`
	ProjectID   uint64    `json:"project_id"`
	CreatedByID uint64    `json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToUtilityItemDTO converts a UtilityItem model to UtilityItemDTO
func ToUtilityItemDTO(item models.UtilityItem) UtilityItemDTO {
	return UtilityItemDTO{
		ID:          item.ID,
		Name:        item.Name,
		Value:       item.Value,
		ProjectID:   item.ProjectID,
		CreatedByID: item.CreatedByID,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

// ToUtilityItemDTOs converts a slice of utility items
func ToUtilityItemDTOs(items []models.UtilityItem) []UtilityItemDTO {
	result := make([]UtilityItemDTO, len(items))
	for i, item := range items {
		result[i] = ToUtilityItemDTO(item)
	}
	return result
}
