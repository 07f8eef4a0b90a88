package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-management-api/internal/mail"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db          *gorm.DB
	userRepo    repository.UserRepository
	orgRepo     repository.OrganizationRepository
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	teamRepo    repository.TeamRepository
	eventRepo   repository.EventRepository
	itemRepo    repository.UtilityItemRepository
	messageRepo repository.MessageRepository
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(models.All()...))

	return testEnv{
		db:          db,
		userRepo:    repository.NewUserRepository(db),
		orgRepo:     repository.NewOrganizationRepository(db),
		projectRepo: repository.NewProjectRepository(db),
		taskRepo:    repository.NewTaskRepository(db),
		teamRepo:    repository.NewTeamRepository(db),
		eventRepo:   repository.NewEventRepository(db),
		itemRepo:    repository.NewUtilityItemRepository(db),
		messageRepo: repository.NewMessageRepository(db),
	}
}

func (e testEnv) createUser(t *testing.T, name string) *models.User {
	t.Helper()
	user := &models.User{
		Name:         name,
		Email:        fmt.Sprintf("%s@example.com", name),
		PasswordHash: "hashedpassword",
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

// createOrganization creates an organization with admin as its only admin.
func (e testEnv) createOrganization(t *testing.T, name string, admin *models.User) *models.Organization {
	t.Helper()
	org := &models.Organization{
		Name:        name,
		JoinCode:    strings.ToUpper(fmt.Sprintf("%.6s", name+"XXXXXX")),
		CreatedByID: admin.ID,
	}
	require.NoError(t, e.orgRepo.Create(org, &models.OrganizationMember{
		UserID:   admin.ID,
		Role:     models.RoleAdmin,
		JoinedAt: time.Now(),
	}))
	return org
}

func (e testEnv) addMember(t *testing.T, org *models.Organization, user *models.User, role models.OrganizationRole) {
	t.Helper()
	require.NoError(t, e.orgRepo.AddMember(&models.OrganizationMember{
		OrganizationID: org.ID,
		UserID:         user.ID,
		Role:           role,
		JoinedAt:       time.Now(),
	}))
}

func (e testEnv) createProject(t *testing.T, org *models.Organization, creator *models.User) *models.Project {
	t.Helper()
	project := &models.Project{
		Name:             "Apollo",
		ProblemStatement: "Reach the moon",
		Status:           models.ProjectStatusNotStarted,
		StartDate:        time.Now(),
		OrganizationID:   org.ID,
		CreatedByID:      creator.ID,
	}
	require.NoError(t, e.projectRepo.Create(project, nil))
	return project
}

func (e testEnv) createTeam(t *testing.T, org *models.Organization, members ...*models.User) *models.Team {
	t.Helper()
	ids := make([]uint64, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	team := &models.Team{Name: "Core", OrganizationID: org.ID}
	require.NoError(t, e.teamRepo.Create(team, ids))
	return team
}

// fakeTokens issues predictable tokens.
type fakeTokens struct{}

func (fakeTokens) Issue(userID uint64) (string, error) {
	return fmt.Sprintf("token-%d", userID), nil
}

// fakeSummarizer records every text it was asked to summarize.
type fakeSummarizer struct {
	calls []string
	err   error
}

func (f *fakeSummarizer) Summarize(_ context.Context, text string) (string, error) {
	f.calls = append(f.calls, text)
	if f.err != nil {
		return "", f.err
	}
	return "summary: " + text, nil
}

// fakeMailer counts transport opens and records sent messages.
type fakeMailer struct {
	opens   int
	closes  int
	openErr error
	failFor map[string]error
	sent    []mail.Message
}

func (m *fakeMailer) Open(_ context.Context) (mail.Transport, error) {
	m.opens++
	if m.openErr != nil {
		return nil, m.openErr
	}
	return &fakeTransport{mailer: m}, nil
}

type fakeTransport struct {
	mailer *fakeMailer
}

func (t *fakeTransport) Send(_ context.Context, msg mail.Message) error {
	if err, ok := t.mailer.failFor[msg.To]; ok {
		return err
	}
	t.mailer.sent = append(t.mailer.sent, msg)
	return nil
}

func (t *fakeTransport) Close() error {
	t.mailer.closes++
	return nil
}

var errSMTPDown = errors.New("connection refused")

func newTestInvitationService(e testEnv, mailer mail.Mailer) *InvitationService {
	return NewInvitationService(e.orgRepo, e.userRepo, mailer, zap.NewNop())
}
