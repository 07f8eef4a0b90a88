// Package authz derives membership and role facts for a caller and decides,
// from a single policy table, whether an action on a resource is allowed.
package authz

import (
	"errors"
	"fmt"

	"github.com/yukikurage/project-management-api/internal/models"
)

// ErrForbidden is matched by every denial returned from Check.
var ErrForbidden = errors.New("forbidden")

type Resource string

const (
	ResourceOrganization Resource = "organization"
	ResourceProject      Resource = "project"
	ResourceTask         Resource = "task"
	ResourceTeam         Resource = "team"
	ResourceEvent        Resource = "event"
	ResourceUtilityItem  Resource = "utility_item"
	ResourceMessage      Resource = "message"
)

type Action string

const (
	ActionCreate       Action = "create"
	ActionRead         Action = "read"
	ActionUpdate       Action = "update"
	ActionDelete       Action = "delete"
	ActionInvite       Action = "invite"
	ActionUpdateStatus Action = "update_status"
	ActionComment      Action = "comment"
	ActionAddMember    Action = "add_member"
)

// Rule is the condition a caller must satisfy.
type Rule int

const (
	// Deny is the zero value so unknown (resource, action) pairs fail closed.
	Deny Rule = iota
	Anyone
	Member
	Admin
	OwnerOrAdmin
	Assignee
)

func (r Rule) String() string {
	switch r {
	case Anyone:
		return "anyone"
	case Member:
		return "member"
	case Admin:
		return "admin"
	case OwnerOrAdmin:
		return "owner_or_admin"
	case Assignee:
		return "assignee"
	default:
		return "deny"
	}
}

// NeedsMembers reports whether evaluating r requires the organization's membership rows.
func (r Rule) NeedsMembers() bool {
	return r == Member || r == Admin || r == OwnerOrAdmin
}

type policyEntry struct {
	rule    Rule
	message string
}

// Reads and updates on projects, tasks and utility items are open to any
// authenticated caller. Task status excludes an admin override.
var policy = map[Resource]map[Action]policyEntry{
	ResourceOrganization: {
		ActionCreate: {Anyone, ""},
		ActionRead:   {Member, "Not authorized to access this organization"},
		ActionInvite: {Admin, "Only admins can invite users to this organization."},
	},
	ResourceProject: {
		ActionCreate: {Admin, "Only admins can create projects"},
		ActionRead:   {Anyone, ""},
		ActionUpdate: {Admin, "Only admins can update projects"},
	},
	ResourceTask: {
		ActionCreate:       {Admin, "Only admins can create tasks"},
		ActionRead:         {Anyone, ""},
		ActionUpdateStatus: {Assignee, "Not authorized to update this task"},
		ActionComment:      {Member, "Not authorized to comment on this task"},
	},
	ResourceTeam: {
		ActionCreate:    {Admin, "Only admins can create teams"},
		ActionRead:      {Anyone, ""},
		ActionAddMember: {Admin, "Only admins can add team members"},
	},
	ResourceEvent: {
		ActionCreate: {Admin, "Only admins can create events"},
		ActionRead:   {Member, "Not authorized to view events for this project"},
		ActionUpdate: {OwnerOrAdmin, "Not authorized to update this event"},
		ActionDelete: {OwnerOrAdmin, "Not authorized to delete this event"},
	},
	ResourceUtilityItem: {
		ActionCreate: {Anyone, ""},
		ActionRead:   {Anyone, ""},
		ActionUpdate: {Anyone, ""},
		ActionDelete: {Anyone, ""},
	},
	ResourceMessage: {
		ActionCreate: {Anyone, ""},
		ActionRead:   {Anyone, ""},
	},
}

// RuleFor returns the rule enforced for an action on a resource.
func RuleFor(resource Resource, action Action) Rule {
	return policy[resource][action].rule
}

// Subject is the caller.
type Subject struct {
	UserID  uint64
	TeamIDs []uint64
}

// Target is what the caller acts on. Only the fields the rule reads need to be set.
type Target struct {
	Members        []models.OrganizationMember
	CreatedByID    uint64
	AssignedToID   *uint64
	AssignedTeamID *uint64
}

// DeniedError is returned by Check. It matches ErrForbidden.
type DeniedError struct {
	Resource Resource
	Action   Action
	Message  string
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("%s %s denied: %s", e.Resource, e.Action, e.Message)
}

func (e *DeniedError) Unwrap() error {
	return ErrForbidden
}

// Check returns nil when subject may perform action on target, and a
// *DeniedError otherwise.
func Check(resource Resource, action Action, subject Subject, target Target) error {
	entry, ok := policy[resource][action]
	if !ok {
		return &DeniedError{Resource: resource, Action: action, Message: "Access denied"}
	}

	if allowed(entry.rule, subject, target) {
		return nil
	}

	message := entry.message
	if message == "" {
		message = "Access denied"
	}
	return &DeniedError{Resource: resource, Action: action, Message: message}
}

// Message extracts the client-facing text of a denial.
func Message(err error) string {
	var denied *DeniedError
	if errors.As(err, &denied) {
		return denied.Message
	}
	return ""
}

func allowed(rule Rule, subject Subject, target Target) bool {
	switch rule {
	case Anyone:
		return true
	case Member:
		return IsMember(target.Members, subject.UserID)
	case Admin:
		return IsAdmin(target.Members, subject.UserID)
	case OwnerOrAdmin:
		return IsOwnerOrAdmin(target.CreatedByID, target.Members, subject.UserID)
	case Assignee:
		return IsAssignee(subject, target.AssignedToID, target.AssignedTeamID)
	default:
		return false
	}
}

// RoleOf returns the caller's role and whether a membership row exists.
func RoleOf(members []models.OrganizationMember, userID uint64) (models.OrganizationRole, bool) {
	for _, m := range members {
		if m.UserID == userID {
			return m.Role, true
		}
	}
	return "", false
}

func IsMember(members []models.OrganizationMember, userID uint64) bool {
	_, ok := RoleOf(members, userID)
	return ok
}

func IsAdmin(members []models.OrganizationMember, userID uint64) bool {
	role, ok := RoleOf(members, userID)
	return ok && role == models.RoleAdmin
}

func IsOwnerOrAdmin(createdByID uint64, members []models.OrganizationMember, userID uint64) bool {
	return createdByID == userID || IsAdmin(members, userID)
}

// IsAssignee is true when the subject is the assigned user or belongs to the
// assigned team.
func IsAssignee(subject Subject, assignedToID, assignedTeamID *uint64) bool {
	if assignedToID != nil && *assignedToID == subject.UserID {
		return true
	}
	if assignedTeamID == nil {
		return false
	}
	for _, teamID := range subject.TeamIDs {
		if teamID == *assignedTeamID {
			return true
		}
	}
	return false
}
