package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-management-api/internal/dto"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/services"
)

type EventHandler struct {
	eventService *services.EventService
}

func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

// ListProjectEvents returns the calendar feed of a project
func (h *EventHandler) ListProjectEvents(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(c, "projectId", "project")
	if !ok {
		return
	}

	calendar, err := h.eventService.ListProjectEvents(projectID, userID)
	if err != nil {
		respondEventError(c, err)
		return
	}

	entries := dto.ToCalendarEntries(*calendar)
	respondList(c, entries, len(entries))
}

// CreateEvent adds a custom event to a project
func (h *EventHandler) CreateEvent(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(c, "projectId", "project")
	if !ok {
		return
	}

	type CreateEventRequest struct {
		Title          string     `json:"title" binding:"required,max=100"`
		Description    string     `json:"description" binding:"max=500"`
		Start          *time.Time `json:"start" binding:"required"`
		End            *time.Time `json:"end"`
		AllDay         bool       `json:"all_day"`
		GoogleMeetLink string     `json:"google_meet_link" binding:"meetinglink"`
	}

	var req CreateEventRequest
	if !bindJSON(c, &req) {
		return
	}

	event, err := h.eventService.CreateEvent(services.CreateEventInput{
		ProjectID:   projectID,
		CallerID:    userID,
		Title:       req.Title,
		Description: req.Description,
		Start:       *req.Start,
		End:         req.End,
		AllDay:      req.AllDay,
		MeetingLink: req.GoogleMeetLink,
	})
	if err != nil {
		respondEventError(c, err)
		return
	}

	respondMessage(c, http.StatusCreated, "Event created successfully!", dto.ToEventDTO(*event))
}

// UpdateEvent changes only the fields present in the body
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(c, "eventId", "event")
	if !ok {
		return
	}

	type UpdateEventRequest struct {
		Title          *string      `json:"title" binding:"omitempty,max=100"`
		Description    *string      `json:"description" binding:"omitempty,max=500"`
		Start          *time.Time   `json:"start"`
		End            nullableTime `json:"end"`
		AllDay         *bool        `json:"all_day"`
		GoogleMeetLink *string      `json:"google_meet_link" binding:"omitempty,meetinglink"`
	}

	var req UpdateEventRequest
	if !bindJSON(c, &req) {
		return
	}

	event, err := h.eventService.UpdateEvent(services.UpdateEventInput{
		EventID:     eventID,
		CallerID:    userID,
		Title:       req.Title,
		Description: req.Description,
		Start:       req.Start,
		End:         req.End.Value,
		ClearEnd:    req.End.Set && req.End.Value == nil,
		AllDay:      req.AllDay,
		MeetingLink: req.GoogleMeetLink,
	})
	if err != nil {
		respondEventError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Event updated successfully!", dto.ToEventDTO(*event))
}

// DeleteEvent removes an event
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(c, "eventId", "event")
	if !ok {
		return
	}

	if err := h.eventService.DeleteEvent(eventID, userID); err != nil {
		respondEventError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Event deleted successfully", nil)
}

func respondEventError(c *gin.Context, err error) {
	if respondForbidden(c, err) {
		return
	}

	switch {
	case errors.Is(err, services.ErrEventNotFound):
		apierrors.NotFound(c, "Event not found")
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	case errors.Is(err, services.ErrInvalidMeetingLink):
		apierrors.BadRequest(c, "Please provide a valid Google Meet, Zoom, or Microsoft Teams link")
	case errors.Is(err, services.ErrInvalidEventTitle),
		errors.Is(err, services.ErrInvalidEventBody),
		errors.Is(err, services.ErrInvalidEventRange):
		apierrors.BadRequest(c, err.Error())
	default:
		respondUnexpected(c, err)
	}
}

// nullableTime tells an absent JSON field apart from an explicit null.
type nullableTime struct {
	Set   bool
	Value *time.Time
}

func (n *nullableTime) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	n.Value = &t
	return nil
}
