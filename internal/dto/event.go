package dto

import (
	"fmt"
	"strconv"
	"time"

	"github.com/yukikurage/project-management-api/internal/constants"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/services"
)

// EventDTO represents a custom event in API responses
type EventDTO struct {
	ID             uint64     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Start          time.Time  `json:"start"`
	End            *time.Time `json:"end"`
	AllDay         bool       `json:"all_day"`
	GoogleMeetLink string     `json:"google_meet_link"`
	OrganizationID uint64     `json:"organization_id"`
	ProjectID      *uint64    `json:"project_id"`
	CreatedByID    uint64     `json:"created_by_id"`
	CreatedAt      time.Time  `json:"created_at"`
}

// CalendarEntryDTO is one entry of a project calendar feed
type CalendarEntryDTO struct {
	ID            string                 `json:"id"`
	Title         string                 `json:"title"`
	Start         time.Time              `json:"start"`
	End           *time.Time             `json:"end,omitempty"`
	AllDay        bool                   `json:"allDay"`
	Color         string                 `json:"color"`
	ExtendedProps map[string]interface{} `json:"extendedProps,omitempty"`
}

// ToEventDTO converts an Event model to EventDTO
func ToEventDTO(event models.Event) EventDTO {
	return EventDTO{
		ID:             event.ID,
		Title:          event.Title,
		Description:    event.Description,
		Start:          event.Start,
		End:            event.End,
		AllDay:         event.AllDay,
		GoogleMeetLink: event.MeetingLink,
		OrganizationID: event.OrganizationID,
		ProjectID:      event.ProjectID,
		CreatedByID:    event.CreatedByID,
		CreatedAt:      event.CreatedAt,
	}
}

// ToCalendarEntries flattens a project calendar into feed entries: project
// start and end, task due dates, then custom events.
func ToCalendarEntries(calendar services.ProjectCalendar) []CalendarEntryDTO {
	project := calendar.Project
	entries := make([]CalendarEntryDTO, 0, 2+len(calendar.Tasks)+len(calendar.Events))

	entries = append(entries, CalendarEntryDTO{
		ID:     fmt.Sprintf("project-start-%d", project.ID),
		Title:  fmt.Sprintf("%s (Start)", project.Name),
		Start:  project.StartDate,
		AllDay: true,
		Color:  constants.ColorProjectStart,
		ExtendedProps: map[string]interface{}{
			"type": "project",
		},
	})

	if project.EndDate != nil {
		entries = append(entries, CalendarEntryDTO{
			ID:     fmt.Sprintf("project-end-%d", project.ID),
			Title:  fmt.Sprintf("%s (End)", project.Name),
			Start:  *project.EndDate,
			AllDay: true,
			Color:  constants.ColorProjectEnd,
			ExtendedProps: map[string]interface{}{
				"type": "project",
			},
		})
	}

	for _, task := range calendar.Tasks {
		if task.DueDate == nil {
			continue
		}
		entries = append(entries, CalendarEntryDTO{
			ID:     fmt.Sprintf("task-%d", task.ID),
			Title:  fmt.Sprintf("Task: %s", task.Title),
			Start:  *task.DueDate,
			AllDay: true,
			Color:  constants.ColorTaskDue,
			ExtendedProps: map[string]interface{}{
				"type":     "task",
				"status":   task.Status,
				"priority": task.Priority,
			},
		})
	}

	for _, ce := range calendar.Events {
		event := ce.Event
		entries = append(entries, CalendarEntryDTO{
			ID:     strconv.FormatUint(event.ID, 10),
			Title:  event.Title,
			Start:  event.Start,
			End:    event.End,
			AllDay: event.AllDay,
			Color:  constants.ColorCustomEvent,
			ExtendedProps: map[string]interface{}{
				"type":           "custom",
				"description":    event.Description,
				"googleMeetLink": event.MeetingLink,
				"createdBy":      event.CreatedBy.Name,
				"editable":       ce.Editable,
			},
		})
	}

	return entries
}
