package repository_test

import (
	"context"
	"testing"
	"time"

	"familysync/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return gormDB, mock
}

var memberColumns = []string{"id", "created_at", "updated_at", "name", "email", "family_id", "is_verified"}

func TestMemberRepository_FindByEmail_Found(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewMemberRepository(gormDB)

	memberID := uuid.New()
	familyID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT .* FROM "member" WHERE LOWER\(email\) = `).
		WillReturnRows(sqlmock.NewRows(memberColumns).
			AddRow(memberID.String(), now, now, "John Smith", "john.smith@example.com", familyID.String(), true))

	// Act
	member, err := repo.FindByEmail(context.Background(), "John.Smith@Example.com")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, member)
	assert.Equal(t, memberID, member.ID)
	assert.Equal(t, "John Smith", member.Name)
	require.NotNil(t, member.FamilyID)
	assert.Equal(t, familyID, *member.FamilyID)
	assert.True(t, member.IsVerified)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemberRepository_FindByEmail_NotFound(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewMemberRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "member" WHERE LOWER\(email\) = `).
		WillReturnError(gorm.ErrRecordNotFound)

	// Act
	member, err := repo.FindByEmail(context.Background(), "nobody@example.com")

	// Assert
	assert.NoError(t, err)
	assert.Nil(t, member)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemberRepository_GetByID_Error(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewMemberRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "member" WHERE id = `).
		WillReturnError(assert.AnError)

	// Act
	member, err := repo.GetByID(context.Background(), uuid.New())

	// Assert
	assert.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, member)
	assert.NoError(t, mock.ExpectationsWereMet())
}
