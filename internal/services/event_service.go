package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yukikurage/project-management-api/internal/authz"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/repository"
	"gorm.io/gorm"
)

const (
	MaxEventTitleLength       = 100
	MaxEventDescriptionLength = 500
)

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrInvalidEventTitle  = errors.New("event title is required and must be at most 100 characters")
	ErrInvalidEventBody   = errors.New("event description must be at most 500 characters")
	ErrInvalidMeetingLink = errors.New("please provide a valid Google Meet, Zoom, or Microsoft Teams link")
	ErrInvalidEventRange  = errors.New("event end must not be before its start")
)

var meetingLinkPattern = regexp.MustCompile(`^(https?://(?:meet\.google\.com|zoom\.us|teams\.microsoft\.com)/[a-zA-Z0-9-?=&.]+)?$`)

// IsAllowedMeetingLink reports whether link is empty or points at an allowed meeting host.
func IsAllowedMeetingLink(link string) bool {
	return meetingLinkPattern.MatchString(link)
}

// EventService provides business logic for calendar events.
type EventService struct {
	eventRepo   repository.EventRepository
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	orgRepo     repository.OrganizationRepository
	authorizer
}

// NewEventService creates a new EventService.
func NewEventService(eventRepo repository.EventRepository, projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository, orgRepo repository.OrganizationRepository) *EventService {
	return &EventService{
		eventRepo:   eventRepo,
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		orgRepo:     orgRepo,
		authorizer:  authorizer{orgRepo: orgRepo},
	}
}

// CalendarEvent is a custom event annotated with whether the caller may edit it.
type CalendarEvent struct {
	Event    models.Event
	Editable bool
}

// ProjectCalendar is everything shown on a project's calendar.
type ProjectCalendar struct {
	Project models.Project
	Tasks   []models.Task
	Events  []CalendarEvent
}

// ListProjectEvents returns the calendar of a project. Only members of the
// project's organization may read it.
func (s *EventService) ListProjectEvents(projectID, callerID uint64) (*ProjectCalendar, error) {
	project, err := s.findProject(projectID)
	if err != nil {
		return nil, err
	}

	members, err := s.orgRepo.ListMembers(project.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load organization members: %w", err)
	}

	err = authz.Check(authz.ResourceEvent, authz.ActionRead,
		authz.Subject{UserID: callerID}, authz.Target{Members: members})
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListDueByProject(project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list task due dates: %w", err)
	}

	events, err := s.eventRepo.ListByProject(project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	calendar := &ProjectCalendar{
		Project: *project,
		Tasks:   tasks,
		Events:  make([]CalendarEvent, len(events)),
	}
	for i, event := range events {
		editable := authz.Check(authz.ResourceEvent, authz.ActionUpdate,
			authz.Subject{UserID: callerID},
			authz.Target{Members: members, CreatedByID: event.CreatedByID},
		) == nil
		calendar.Events[i] = CalendarEvent{Event: event, Editable: editable}
	}

	return calendar, nil
}

// CreateEventInput represents parameters to create a new event.
type CreateEventInput struct {
	ProjectID   uint64
	CallerID    uint64
	Title       string
	Description string
	Start       time.Time
	End         *time.Time
	AllDay      bool
	MeetingLink string
}

// CreateEvent adds a custom event to a project. Only admins of the project's organization may create events.
func (s *EventService) CreateEvent(input CreateEventInput) (*models.Event, error) {
	project, err := s.findProject(input.ProjectID)
	if err != nil {
		return nil, err
	}

	err = s.authorize(project.OrganizationID, authz.ResourceEvent, authz.ActionCreate,
		authz.Subject{UserID: input.CallerID}, authz.Target{})
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		Title:          strings.TrimSpace(input.Title),
		Description:    strings.TrimSpace(input.Description),
		Start:          input.Start,
		End:            input.End,
		AllDay:         input.AllDay,
		MeetingLink:    strings.TrimSpace(input.MeetingLink),
		OrganizationID: project.OrganizationID,
		ProjectID:      &project.ID,
		CreatedByID:    input.CallerID,
	}
	if err := validateEvent(event); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Create(event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

// UpdateEventInput holds the fields to change. Nil fields are left as they
// are. ClearEnd removes the end time and takes precedence over End.
type UpdateEventInput struct {
	EventID     uint64
	CallerID    uint64
	Title       *string
	Description *string
	Start       *time.Time
	End         *time.Time
	ClearEnd    bool
	AllDay      *bool
	MeetingLink *string
}

// UpdateEvent changes an event. Only its creator or an organization admin may update it.
func (s *EventService) UpdateEvent(input UpdateEventInput) (*models.Event, error) {
	event, err := s.findEvent(input.EventID)
	if err != nil {
		return nil, err
	}

	err = s.authorize(event.OrganizationID, authz.ResourceEvent, authz.ActionUpdate,
		authz.Subject{UserID: input.CallerID}, authz.Target{CreatedByID: event.CreatedByID})
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		event.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		event.Description = strings.TrimSpace(*input.Description)
	}
	if input.Start != nil {
		event.Start = *input.Start
	}
	if input.ClearEnd {
		event.End = nil
	} else if input.End != nil {
		event.End = input.End
	}
	if input.AllDay != nil {
		event.AllDay = *input.AllDay
	}
	if input.MeetingLink != nil {
		event.MeetingLink = strings.TrimSpace(*input.MeetingLink)
	}
	if err := validateEvent(event); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Update(event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return event, nil
}

// DeleteEvent removes an event. Only its creator or an organization admin may delete it.
func (s *EventService) DeleteEvent(eventID, callerID uint64) error {
	event, err := s.findEvent(eventID)
	if err != nil {
		return err
	}

	err = s.authorize(event.OrganizationID, authz.ResourceEvent, authz.ActionDelete,
		authz.Subject{UserID: callerID}, authz.Target{CreatedByID: event.CreatedByID})
	if err != nil {
		return err
	}

	if err := s.eventRepo.Delete(event.ID); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

func validateEvent(event *models.Event) error {
	if event.Title == "" || utf8.RuneCountInString(event.Title) > MaxEventTitleLength {
		return ErrInvalidEventTitle
	}
	if utf8.RuneCountInString(event.Description) > MaxEventDescriptionLength {
		return ErrInvalidEventBody
	}
	if !IsAllowedMeetingLink(event.MeetingLink) {
		return ErrInvalidMeetingLink
	}
	if event.End != nil && event.End.Before(event.Start) {
		return ErrInvalidEventRange
	}
	return nil
}

func (s *EventService) findProject(id uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

func (s *EventService) findEvent(id uint64) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}
	return event, nil
}
