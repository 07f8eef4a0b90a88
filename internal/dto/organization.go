package dto

import (
	"time"

	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/services"
)

// OrganizationDTO represents an organization in API responses
type OrganizationDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	JoinCode    string    `json:"join_code"`
	CreatedBy   *UserDTO  `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// OrganizationWithRoleDTO represents an organization with the user's role
type OrganizationWithRoleDTO struct {
	OrganizationDTO
	Role models.OrganizationRole `json:"role"`
}

// OrganizationMemberDTO represents a member in an organization
type OrganizationMemberDTO struct {
	User     UserDTO                 `json:"user"`
	Role     models.OrganizationRole `json:"role"`
	JoinedAt time.Time               `json:"joined_at"`
}

// OrganizationDetailDTO represents detailed organization information
type OrganizationDetailDTO struct {
	OrganizationDTO
	Members  []OrganizationMemberDTO `json:"members"`
	YourRole models.OrganizationRole `json:"your_role"`
}

// InviteSuccessDTO is one delivered invitation
type InviteSuccessDTO struct {
	Email  string `json:"email"`
	Status string `json:"status"`
}

// InviteFailureDTO is one recipient that could not be invited
type InviteFailureDTO struct {
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

// InvitationResultDTO is the per-recipient outcome of an invite request
type InvitationResultDTO struct {
	SuccessfulInvites []InviteSuccessDTO `json:"successful_invites"`
	FailedInvites     []InviteFailureDTO `json:"failed_invites"`
	JoinCode          string             `json:"join_code"`
}

// ToOrganizationDTO converts an Organization model to OrganizationDTO
func ToOrganizationDTO(org models.Organization) OrganizationDTO {
	return OrganizationDTO{
		ID:          org.ID,
		Name:        org.Name,
		Description: org.Description,
		JoinCode:    org.JoinCode,
		CreatedBy:   toUserRef(&org.CreatedBy),
		CreatedAt:   org.CreatedAt,
	}
}

// ToOrganizationWithRoleDTO converts an organization member to DTO with role
func ToOrganizationWithRoleDTO(member models.OrganizationMember) OrganizationWithRoleDTO {
	return OrganizationWithRoleDTO{
		OrganizationDTO: ToOrganizationDTO(member.Organization),
		Role:            member.Role,
	}
}

// ToOrganizationMemberDTO converts a member to DTO
func ToOrganizationMemberDTO(member models.OrganizationMember) OrganizationMemberDTO {
	return OrganizationMemberDTO{
		User:     ToUserDTO(member.User),
		Role:     member.Role,
		JoinedAt: member.JoinedAt,
	}
}

// ToOrganizationDetailDTO converts organization with members to detailed DTO
func ToOrganizationDetailDTO(org models.Organization, yourRole models.OrganizationRole) OrganizationDetailDTO {
	memberDTOs := make([]OrganizationMemberDTO, len(org.Members))
	for i, member := range org.Members {
		memberDTOs[i] = ToOrganizationMemberDTO(member)
	}

	return OrganizationDetailDTO{
		OrganizationDTO: ToOrganizationDTO(org),
		Members:         memberDTOs,
		YourRole:        yourRole,
	}
}

// ToInvitationResultDTO converts the dispatcher outcome
func ToInvitationResultDTO(result services.InviteResult) InvitationResultDTO {
	dto := InvitationResultDTO{
		SuccessfulInvites: make([]InviteSuccessDTO, len(result.Successful)),
		FailedInvites:     make([]InviteFailureDTO, len(result.Failed)),
		JoinCode:          result.JoinCode,
	}
	for i, s := range result.Successful {
		dto.SuccessfulInvites[i] = InviteSuccessDTO{Email: s.Email, Status: s.Status}
	}
	for i, f := range result.Failed {
		dto.FailedInvites[i] = InviteFailureDTO{Email: f.Email, Reason: f.Reason}
	}
	return dto
}
