package services

import (
	"fmt"

	"github.com/yukikurage/project-management-api/internal/authz"
	"github.com/yukikurage/project-management-api/internal/repository"
)

// authorizer runs authz.Check, loading the organization's membership rows
// only when the rule needs them.
type authorizer struct {
	orgRepo repository.OrganizationRepository
}

func (a authorizer) authorize(organizationID uint64, resource authz.Resource, action authz.Action, subject authz.Subject, target authz.Target) error {
	if authz.RuleFor(resource, action).NeedsMembers() && target.Members == nil {
		members, err := a.orgRepo.ListMembers(organizationID)
		if err != nil {
			return fmt.Errorf("failed to load organization members: %w", err)
		}
		target.Members = members
	}
	return authz.Check(resource, action, subject, target)
}
