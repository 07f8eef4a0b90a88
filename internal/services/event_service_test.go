package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-management-api/internal/authz"
	"github.com/yukikurage/project-management-api/internal/models"
)

type eventFixture struct {
	env     testEnv
	service *EventService
	alice   *models.User // admin
	dana    *models.User // second admin
	bob     *models.User // member
	org     *models.Organization
	project *models.Project
}

func setupEventFixture(t *testing.T) eventFixture {
	t.Helper()
	env := setupTestEnv(t)

	f := eventFixture{
		env:     env,
		service: NewEventService(env.eventRepo, env.projectRepo, env.taskRepo, env.orgRepo),
		alice:   env.createUser(t, "alice"),
		dana:    env.createUser(t, "dana"),
		bob:     env.createUser(t, "bob"),
	}
	f.org = env.createOrganization(t, "Acme", f.alice)
	env.addMember(t, f.org, f.dana, models.RoleAdmin)
	env.addMember(t, f.org, f.bob, models.RoleMember)
	f.project = env.createProject(t, f.org, f.alice)
	return f
}

func (f eventFixture) createEvent(t *testing.T, creator *models.User) *models.Event {
	t.Helper()
	event, err := f.service.CreateEvent(CreateEventInput{
		ProjectID:   f.project.ID,
		CallerID:    creator.ID,
		Title:       "Kickoff",
		Start:       time.Now().Add(time.Hour),
		MeetingLink: "https://meet.google.com/abc-defg-hij",
	})
	require.NoError(t, err)
	return event
}

func TestIsAllowedMeetingLink(t *testing.T) {
	tests := []struct {
		link string
		want bool
	}{
		{"", true},
		{"https://meet.google.com/abc-defg-hij", true},
		{"https://zoom.us/123456789?pwd=abc", true},
		{"https://zoom.us/j/123456", false},
		{"http://teams.microsoft.com/l/meetup", false},
		{"https://teams.microsoft.com/meeting-123", true},
		{"https://example.com/meeting", false},
		{"meet.google.com/abc", false},
	}

	for _, tt := range tests {
		t.Run(tt.link, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAllowedMeetingLink(tt.link))
		})
	}
}

func TestEventService_CreateEvent(t *testing.T) {
	f := setupEventFixture(t)

	event := f.createEvent(t, f.alice)
	assert.Equal(t, f.org.ID, event.OrganizationID)
	require.NotNil(t, event.ProjectID)
	assert.Equal(t, f.project.ID, *event.ProjectID)

	_, err := f.service.CreateEvent(CreateEventInput{ProjectID: f.project.ID, CallerID: f.bob.ID, Title: "x", Start: time.Now()})
	assert.ErrorIs(t, err, authz.ErrForbidden)

	_, err = f.service.CreateEvent(CreateEventInput{ProjectID: f.project.ID, CallerID: f.alice.ID, Title: "x", Start: time.Now(), MeetingLink: "https://example.com"})
	assert.ErrorIs(t, err, ErrInvalidMeetingLink)

	start := time.Now()
	end := start.Add(-time.Hour)
	_, err = f.service.CreateEvent(CreateEventInput{ProjectID: f.project.ID, CallerID: f.alice.ID, Title: "x", Start: start, End: &end})
	assert.ErrorIs(t, err, ErrInvalidEventRange)

	_, err = f.service.CreateEvent(CreateEventInput{ProjectID: 999, CallerID: f.alice.ID, Title: "x", Start: start})
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestEventService_DeleteEvent(t *testing.T) {
	t.Run("creator", func(t *testing.T) {
		f := setupEventFixture(t)
		event := f.createEvent(t, f.alice)
		require.NoError(t, f.service.DeleteEvent(event.ID, f.alice.ID))

		_, err := f.env.eventRepo.FindByID(event.ID)
		assert.Error(t, err)
	})

	t.Run("other admin", func(t *testing.T) {
		f := setupEventFixture(t)
		event := f.createEvent(t, f.alice)
		require.NoError(t, f.service.DeleteEvent(event.ID, f.dana.ID))
	})

	t.Run("member who did not create it", func(t *testing.T) {
		f := setupEventFixture(t)
		event := f.createEvent(t, f.alice)

		err := f.service.DeleteEvent(event.ID, f.bob.ID)
		require.ErrorIs(t, err, authz.ErrForbidden)
		assert.Equal(t, "Not authorized to delete this event", authz.Message(err))

		_, err = f.env.eventRepo.FindByID(event.ID)
		assert.NoError(t, err)
	})

	t.Run("missing", func(t *testing.T) {
		f := setupEventFixture(t)
		assert.ErrorIs(t, f.service.DeleteEvent(999, f.alice.ID), ErrEventNotFound)
	})
}

func TestEventService_UpdateEvent(t *testing.T) {
	f := setupEventFixture(t)
	event := f.createEvent(t, f.alice)

	title := "Retro"
	updated, err := f.service.UpdateEvent(UpdateEventInput{EventID: event.ID, CallerID: f.dana.ID, Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Retro", updated.Title)

	_, err = f.service.UpdateEvent(UpdateEventInput{EventID: event.ID, CallerID: f.bob.ID, Title: &title})
	assert.ErrorIs(t, err, authz.ErrForbidden)

	empty := ""
	_, err = f.service.UpdateEvent(UpdateEventInput{EventID: event.ID, CallerID: f.alice.ID, Title: &empty})
	assert.ErrorIs(t, err, ErrInvalidEventTitle)
}

func TestEventService_UpdateEvent_ClearEnd(t *testing.T) {
	f := setupEventFixture(t)
	event := f.createEvent(t, f.alice)

	end := event.Start.Add(time.Hour)
	updated, err := f.service.UpdateEvent(UpdateEventInput{EventID: event.ID, CallerID: f.alice.ID, End: &end})
	require.NoError(t, err)
	require.NotNil(t, updated.End)

	updated, err = f.service.UpdateEvent(UpdateEventInput{EventID: event.ID, CallerID: f.alice.ID, ClearEnd: true})
	require.NoError(t, err)
	assert.Nil(t, updated.End)

	stored, err := f.env.eventRepo.FindByID(event.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.End)
}

func TestEventService_ListProjectEvents(t *testing.T) {
	f := setupEventFixture(t)
	outsider := f.env.createUser(t, "mallory")
	f.createEvent(t, f.alice)

	due := time.Now().Add(72 * time.Hour)
	require.NoError(t, f.env.taskRepo.Create(&models.Task{
		Title: "Due", Description: "d", Status: models.TaskStatusToDo, Priority: models.TaskPriorityLow,
		DueDate: &due, ProjectID: f.project.ID, OrganizationID: f.org.ID, CreatedByID: f.alice.ID,
	}))
	require.NoError(t, f.env.taskRepo.Create(&models.Task{
		Title: "Undated", Description: "d", Status: models.TaskStatusToDo, Priority: models.TaskPriorityLow,
		ProjectID: f.project.ID, OrganizationID: f.org.ID, CreatedByID: f.alice.ID,
	}))

	calendar, err := f.service.ListProjectEvents(f.project.ID, f.bob.ID)
	require.NoError(t, err)
	assert.Equal(t, f.project.ID, calendar.Project.ID)
	require.Len(t, calendar.Tasks, 1)
	assert.Equal(t, "Due", calendar.Tasks[0].Title)
	require.Len(t, calendar.Events, 1)
	assert.False(t, calendar.Events[0].Editable)
	assert.Equal(t, "alice", calendar.Events[0].Event.CreatedBy.Name)

	calendar, err = f.service.ListProjectEvents(f.project.ID, f.dana.ID)
	require.NoError(t, err)
	assert.True(t, calendar.Events[0].Editable)

	_, err = f.service.ListProjectEvents(f.project.ID, outsider.ID)
	assert.ErrorIs(t, err, authz.ErrForbidden)
}
