package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-management-api/internal/constants"
	"github.com/yukikurage/project-management-api/internal/mail"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/repository"
	"github.com/yukikurage/project-management-api/internal/services"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type handlerTestEnv struct {
	db       *gorm.DB
	orgRepo  repository.OrganizationRepository
	teamRepo repository.TeamRepository
	mailer   *recordingMailer

	auth    *AuthHandler
	orgs    *OrganizationHandler
	project *ProjectHandler
	tasks   *TaskHandler
	teams   *TeamHandler
	events  *EventHandler
	items   *UtilityItemHandler
	chat    *ChatHandler
}

func setupHandlerTestEnv(t *testing.T) handlerTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(models.All()...))

	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	eventRepo := repository.NewEventRepository(db)
	itemRepo := repository.NewUtilityItemRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	mailer := &recordingMailer{}

	return handlerTestEnv{
		db:       db,
		orgRepo:  orgRepo,
		teamRepo: teamRepo,
		mailer:   mailer,
		auth:     NewAuthHandler(services.NewAuthService(userRepo, staticTokens{})),
		orgs: NewOrganizationHandler(
			services.NewOrganizationService(orgRepo),
			services.NewInvitationService(orgRepo, userRepo, mailer, zap.NewNop()),
		),
		project: NewProjectHandler(services.NewProjectService(projectRepo, teamRepo, orgRepo, services.StubSummarizer{})),
		tasks:   NewTaskHandler(services.NewTaskService(taskRepo, projectRepo, teamRepo, userRepo, orgRepo)),
		teams:   NewTeamHandler(services.NewTeamService(teamRepo, userRepo, orgRepo)),
		events:  NewEventHandler(services.NewEventService(eventRepo, projectRepo, taskRepo, orgRepo)),
		items:   NewUtilityItemHandler(services.NewUtilityItemService(itemRepo, projectRepo)),
		chat:    NewChatHandler(services.NewChatService(messageRepo, userRepo)),
	}
}

func (e handlerTestEnv) createUser(t *testing.T, name string) *models.User {
	t.Helper()
	user := &models.User{
		Name:         name,
		Email:        fmt.Sprintf("%s@example.com", name),
		PasswordHash: "hashedpassword",
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e handlerTestEnv) createOrganization(t *testing.T, name string, admin *models.User) *models.Organization {
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

func (e handlerTestEnv) addMember(t *testing.T, org *models.Organization, user *models.User, role models.OrganizationRole) {
	t.Helper()
	require.NoError(t, e.orgRepo.AddMember(&models.OrganizationMember{
		OrganizationID: org.ID,
		UserID:         user.ID,
		Role:           role,
		JoinedAt:       time.Now(),
	}))
}

func (e handlerTestEnv) createProject(t *testing.T, org *models.Organization, creator *models.User) *models.Project {
	t.Helper()
	project := &models.Project{
		Name:             "Apollo",
		ProblemStatement: "Reach the moon",
		Status:           models.ProjectStatusNotStarted,
		StartDate:        time.Now(),
		OrganizationID:   org.ID,
		CreatedByID:      creator.ID,
	}
	require.NoError(t, e.db.Create(project).Error)
	return project
}

// testContext builds a context as RequireAuth would leave it. A zero userID
// leaves the caller unset.
func testContext(method, url string, body interface{}, userID uint64, params ...gin.Param) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()

	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		payload, _ = json.Marshal(b)
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(payload))
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = params
	if userID != 0 {
		c.Set(constants.ContextKeyUserID, userID)
	}

	return c, w
}

func idParam(name string, id uint64) gin.Param {
	return gin.Param{Key: name, Value: fmt.Sprintf("%d", id)}
}

// envelope mirrors both response shapes.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Count   *int            `json:"count"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

type staticTokens struct{}

func (staticTokens) Issue(userID uint64) (string, error) {
	return fmt.Sprintf("token-%d", userID), nil
}

// recordingMailer delivers every message into sent.
type recordingMailer struct {
	sent []mail.Message
}

func (m *recordingMailer) Open(_ context.Context) (mail.Transport, error) {
	return m, nil
}

func (m *recordingMailer) Send(_ context.Context, msg mail.Message) error {
	m.sent = append(m.sent, msg)
	return nil
}

func (m *recordingMailer) Close() error {
	return nil
}
