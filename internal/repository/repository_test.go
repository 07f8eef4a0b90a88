package repository

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/utils"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestOrganizationRepository_FindByJoinCode(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrganizationRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "join_code", "created_by_id"}).
		AddRow(3, "Acme", "ABC123", 1)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "organizations" WHERE join_code = $1`)).
		WillReturnRows(rows)

	org, err := repo.FindByJoinCode("ABC123")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), org.ID)
	assert.Equal(t, "Acme", org.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrganizationRepository_FindByJoinCode_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrganizationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "organizations" WHERE join_code = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByJoinCode("NOPE00")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrganizationRepository_ExistsByName(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrganizationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "organizations" WHERE name = $1`)).
		WithArgs("Acme").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsByName("Acme")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrganizationRepository_Create_RollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrganizationRepository(db)
	errInsert := errors.New("insert failed")

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "organizations"`)).WillReturnError(errInsert)
	mock.ExpectRollback()

	err := repo.Create(&models.Organization{Name: "Acme", JoinCode: "ABC123", CreatedByID: 1}, &models.OrganizationMember{
		UserID:   1,
		Role:     models.RoleAdmin,
		JoinedAt: time.Now(),
	})
	assert.ErrorIs(t, err, errInsert)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CountByIDs_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	count, err := repo.CountByIDs(nil)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail_Error(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	errConn := errors.New("connection reset")

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1`)).WillReturnError(errConn)

	_, err := repo.FindByEmail("alice@example.com")
	assert.ErrorIs(t, err, errConn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_List_FiltersAndPages(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMessageRepository(db)

	chatType := models.ChatTypeProject
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT * FROM "messages" WHERE organization_id = $1 AND chat_type = $2 ORDER BY created_at ASC, id ASC LIMIT`,
	)).WillReturnRows(sqlmock.NewRows([]string{"id", "content"}))

	messages, err := repo.List(MessageFilter{
		OrganizationID: 1,
		ChatType:       &chatType,
		Pagination:     utils.PaginationParams{Page: 2, Limit: 10, Offset: 10},
	})
	require.NoError(t, err)
	assert.Empty(t, messages)
	assert.NoError(t, mock.ExpectationsWereMet())
}
