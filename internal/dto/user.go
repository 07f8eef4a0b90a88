package dto

import (
	"github.com/yukikurage/project-management-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID     uint64 `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// CurrentUserDTO is the authenticated user with the identifiers of their organizations and teams
type CurrentUserDTO struct {
	UserDTO
	Organizations []uint64 `json:"organizations"`
	Teams         []uint64 `json:"teams"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Avatar: user.Avatar,
	}
}

// toUserRef returns nil when the relation was not loaded
func toUserRef(user *models.User) *UserDTO {
	if user == nil || user.ID == 0 {
		return nil
	}
	dto := ToUserDTO(*user)
	return &dto
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	result := make([]UserDTO, len(users))
	for i, user := range users {
		result[i] = ToUserDTO(user)
	}
	return result
}

// ToCurrentUserDTO converts a user with memberships and teams loaded
func ToCurrentUserDTO(user models.User) CurrentUserDTO {
	orgIDs := make([]uint64, len(user.Memberships))
	for i, m := range user.Memberships {
		orgIDs[i] = m.OrganizationID
	}
	teamIDs := make([]uint64, len(user.Teams))
	for i, t := range user.Teams {
		teamIDs[i] = t.ID
	}

	return CurrentUserDTO{
		UserDTO:       ToUserDTO(user),
		Organizations: orgIDs,
		Teams:         teamIDs,
	}
}
