package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-management-api/internal/dto"
	"github.com/yukikurage/project-management-api/internal/models"
)

func TestEventHandlers(t *testing.T) {
	env := setupHandlerTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	org := env.createOrganization(t, "Acme", alice)
	env.addMember(t, org, bob, models.RoleMember)
	project := env.createProject(t, org, alice)

	start := time.Now().Add(time.Hour).UTC().Truncate(time.Second)

	c, w := testContext(http.MethodPost, "/api/projects/1/events", map[string]interface{}{
		"title":            "Kickoff",
		"start":            start,
		"google_meet_link": "https://meet.google.com/abc-defg-hij",
	}, alice.ID, idParam("projectId", project.ID))
	env.events.CreateEvent(c)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var event dto.EventDTO
	resp := decodeEnvelope(t, w, &event)
	assert.Equal(t, "Event created successfully!", resp.Message)
	assert.True(t, start.Equal(event.Start))

	c, w = testContext(http.MethodGet, "/api/projects/1/events", nil, bob.ID, idParam("projectId", project.ID))
	env.events.ListProjectEvents(c)
	require.Equal(t, http.StatusOK, w.Code)

	var entries []dto.CalendarEntryDTO
	resp = decodeEnvelope(t, w, &entries)
	require.Equal(t, 2, *resp.Count)
	assert.Equal(t, "project-start-1", entries[0].ID)
	assert.Equal(t, "Kickoff", entries[1].Title)
	assert.Equal(t, false, entries[1].ExtendedProps["editable"])

	c, w = testContext(http.MethodPut, "/api/events/1", map[string]string{"title": "Retro"},
		bob.ID, idParam("eventId", event.ID))
	env.events.UpdateEvent(c)
	require.Equal(t, http.StatusForbidden, w.Code)
	resp = decodeEnvelope(t, w, nil)
	assert.Equal(t, "Not authorized to update this event", resp.Error.Message)

	c, w = testContext(http.MethodPut, "/api/events/1", map[string]string{"title": "Retro"},
		alice.ID, idParam("eventId", event.ID))
	env.events.UpdateEvent(c)
	require.Equal(t, http.StatusOK, w.Code)

	c, w = testContext(http.MethodDelete, "/api/events/1", nil, alice.ID, idParam("eventId", event.ID))
	env.events.DeleteEvent(c)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decodeEnvelope(t, w, nil)
	assert.Equal(t, "Event deleted successfully", resp.Message)

	c, w = testContext(http.MethodDelete, "/api/events/1", nil, alice.ID, idParam("eventId", event.ID))
	env.events.DeleteEvent(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateEvent_ClearEnd(t *testing.T) {
	env := setupHandlerTestEnv(t)
	alice := env.createUser(t, "alice")
	org := env.createOrganization(t, "Acme", alice)
	project := env.createProject(t, org, alice)

	start := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	c, w := testContext(http.MethodPost, "/api/projects/1/events", map[string]interface{}{
		"title": "Kickoff",
		"start": start,
		"end":   start.Add(time.Hour),
	}, alice.ID, idParam("projectId", project.ID))
	env.events.CreateEvent(c)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var event dto.EventDTO
	decodeEnvelope(t, w, &event)
	require.NotNil(t, event.End)

	c, w = testContext(http.MethodPut, "/api/events/1", `{"title": "Retro"}`, alice.ID, idParam("eventId", event.ID))
	env.events.UpdateEvent(c)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decodeEnvelope(t, w, &event)
	assert.NotNil(t, event.End)

	c, w = testContext(http.MethodPut, "/api/events/1", `{"end": null}`, alice.ID, idParam("eventId", event.ID))
	env.events.UpdateEvent(c)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var cleared dto.EventDTO
	decodeEnvelope(t, w, &cleared)
	assert.Nil(t, cleared.End)
	assert.Equal(t, "Retro", cleared.Title)
}

func TestCreateEvent_MeetingLinkRejected(t *testing.T) {
	env := setupHandlerTestEnv(t)
	alice := env.createUser(t, "alice")
	org := env.createOrganization(t, "Acme", alice)
	project := env.createProject(t, org, alice)

	c, w := testContext(http.MethodPost, "/api/projects/1/events", map[string]interface{}{
		"title":            "Kickoff",
		"start":            time.Now(),
		"google_meet_link": "https://example.com/room",
	}, alice.ID, idParam("projectId", project.ID))
	env.events.CreateEvent(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeEnvelope(t, w, nil)
	assert.Equal(t, "Please provide a valid Google Meet, Zoom, or Microsoft Teams link", resp.Error.Details["google_meet_link"])
}

func TestListProjectEvents_Outsider(t *testing.T) {
	env := setupHandlerTestEnv(t)
	alice := env.createUser(t, "alice")
	outsider := env.createUser(t, "mallory")
	org := env.createOrganization(t, "Acme", alice)
	project := env.createProject(t, org, alice)

	c, w := testContext(http.MethodGet, "/api/projects/1/events", nil, outsider.ID, idParam("projectId", project.ID))
	env.events.ListProjectEvents(c)

	require.Equal(t, http.StatusForbidden, w.Code)
	resp := decodeEnvelope(t, w, nil)
	assert.Equal(t, "Not authorized to view events for this project", resp.Error.Message)
}
