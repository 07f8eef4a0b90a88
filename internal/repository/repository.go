package repository

import (
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByIDWithRelations finds a user with memberships and teams loaded
	FindByIDWithRelations(id uint64) (*models.User, error)

	// FindByEmail finds a user by email address
	FindByEmail(email string) (*models.User, error)

	// List returns every user ordered by name
	List() ([]models.User, error)

	// CountByIDs counts how many of the given user IDs exist
	CountByIDs(ids []uint64) (int64, error)
}

// OrganizationRepository defines the interface for organization data access
type OrganizationRepository interface {
	// Create inserts the organization and its creator's admin membership together
	Create(org *models.Organization, creator *models.OrganizationMember) error

	// FindByID finds an organization by ID
	FindByID(id uint64) (*models.Organization, error)

	// FindByIDWithMembers finds an organization with creator and members resolved
	FindByIDWithMembers(id uint64) (*models.Organization, error)

	// FindByJoinCode finds an organization by join code
	FindByJoinCode(code string) (*models.Organization, error)

	// ExistsByName reports whether an organization already uses the name
	ExistsByName(name string) (bool, error)

	// ExistsByJoinCode reports whether an organization already uses the join code
	ExistsByJoinCode(code string) (bool, error)

	// AddMember adds a member to an organization
	AddMember(member *models.OrganizationMember) error

	// FindMember finds a specific organization member
	FindMember(organizationID, userID uint64) (*models.OrganizationMember, error)

	// ListMembers lists all members of an organization in join order
	ListMembers(organizationID uint64) ([]models.OrganizationMember, error)

	// ListMembershipsByUserID lists the memberships of a user with organizations loaded
	ListMembershipsByUserID(userID uint64) ([]models.OrganizationMember, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a project and links the given teams
	Create(project *models.Project, teamIDs []uint64) error

	// FindByID finds a project by ID
	FindByID(id uint64) (*models.Project, error)

	// FindInOrganization finds a project by ID within an organization, with relations loaded
	FindInOrganization(organizationID, id uint64) (*models.Project, error)

	// ListByOrganization lists the projects of an organization, newest first
	ListByOrganization(organizationID uint64) ([]models.Project, error)

	// Update saves the project and, when teamIDs is non-nil, replaces its teams
	Update(project *models.Project, teamIDs []uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// ListByProject lists the tasks of a project with assignees loaded
	ListByProject(projectID uint64) ([]models.Task, error)

	// ListAssigned lists tasks assigned to the user or to any of the teams
	ListAssigned(userID uint64, teamIDs []uint64) ([]models.Task, error)

	// ListDueByProject lists the tasks of a project that have a due date
	ListDueByProject(projectID uint64) ([]models.Task, error)

	// UpdateStatus sets a task's status
	UpdateStatus(id uint64, status models.TaskStatus) error

	// AddComment appends a comment to a task
	AddComment(comment *models.TaskComment) error

	// ListComments lists a task's comments oldest first
	ListComments(taskID uint64) ([]models.TaskComment, error)
}

// TeamRepository defines the interface for team data access
type TeamRepository interface {
	// Create creates a team together with its initial member rows
	Create(team *models.Team, memberIDs []uint64) error

	// FindByID finds a team by ID
	FindByID(id uint64) (*models.Team, error)

	// FindByIDWithMembers finds a team with members and lead loaded
	FindByIDWithMembers(id uint64) (*models.Team, error)

	// ListByOrganization lists the teams of an organization with members and lead loaded
	ListByOrganization(organizationID uint64) ([]models.Team, error)

	// AddMember inserts one membership row
	AddMember(teamID, userID uint64) error

	// HasMember reports whether the user is in the team
	HasMember(teamID, userID uint64) (bool, error)

	// ListTeamIDsByUser lists the IDs of every team the user belongs to
	ListTeamIDsByUser(userID uint64) ([]uint64, error)

	// CountInOrganization counts how many of the given team IDs belong to the organization
	CountInOrganization(organizationID uint64, ids []uint64) (int64, error)
}

// EventRepository defines the interface for event data access
type EventRepository interface {
	Create(event *models.Event) error
	FindByID(id uint64) (*models.Event, error)
	// ListByProject lists a project's custom events with creators loaded
	ListByProject(projectID uint64) ([]models.Event, error)
	Update(event *models.Event) error
	Delete(id uint64) error
}

// UtilityItemRepository defines the interface for utility item data access
type UtilityItemRepository interface {
	Create(item *models.UtilityItem) error
	FindByID(id uint64) (*models.UtilityItem, error)
	// ListByProject lists a project's items sorted by name
	ListByProject(projectID uint64) ([]models.UtilityItem, error)
	Update(item *models.UtilityItem) error
	Delete(id uint64) error
}

// MessageRepository defines the interface for chat message data access
type MessageRepository interface {
	// Create appends a message
	Create(message *models.Message) error

	// List returns the messages matching the filter oldest first, senders loaded
	List(filter MessageFilter) ([]models.Message, error)
}

// MessageFilter scopes a message listing to one thread.
type MessageFilter struct {
	OrganizationID uint64
	ChatType       *models.ChatType
	ChatID         *uint64
	Pagination     utils.PaginationParams
}
