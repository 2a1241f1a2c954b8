package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"account_service/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserID = "4f9c7a52-3b1e-4c1d-9a0e-2f7d1c6b8e10"

var userRowColumns = []string{"id", "name", "email", "mobile_number", "password_hash", "created_at", "updated_at"}

func newMockRepo(t *testing.T) (UserRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewUserRepository(mock), mock
}

func strPtr(s string) *string { return &s }

func TestUserRepository_Create(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("Alice", "alice@x.com", "9998887771", "hash").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(testUserID, now, now))

	user := &model.User{Name: "Alice", Email: "alice@x.com", MobileNumber: "9998887771", PasswordHash: "hash"}
	err := repo.Create(context.Background(), user)

	require.NoError(t, err)
	assert.Equal(t, testUserID, user.ID)
	assert.Equal(t, now, user.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_UniqueViolation(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("Alice", "alice@x.com", "9998887771", "hash").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_mobile_number_key"})

	user := &model.User{Name: "Alice", Email: "alice@x.com", MobileNumber: "9998887771", PasswordHash: "hash"}
	err := repo.Create(context.Background(), user)

	assert.ErrorIs(t, err, ErrDuplicateMobileNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_DBError(t *testing.T) {
	repo, mock := newMockRepo(t)
	dbErr := errors.New("connection reset")

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(dbErr)

	err := repo.Create(context.Background(), &model.User{})

	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrDuplicateMobileNumber)
}

func TestUserRepository_FindByMobileNumber(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE mobile_number = $1")).
		WithArgs("9998887771").
		WillReturnRows(pgxmock.NewRows(userRowColumns).
			AddRow(testUserID, "Alice", "alice@x.com", "9998887771", "hash", now, now))

	user, err := repo.FindByMobileNumber(context.Background(), "9998887771")

	require.NoError(t, err)
	assert.Equal(t, testUserID, user.ID)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "hash", user.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByMobileNumber_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE mobile_number = $1")).
		WithArgs("0000000000").
		WillReturnRows(pgxmock.NewRows(userRowColumns))

	user, err := repo.FindByMobileNumber(context.Background(), "0000000000")

	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_FindByID(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs(testUserID).
		WillReturnRows(pgxmock.NewRows(userRowColumns).
			AddRow(testUserID, "Alice", "alice@x.com", "9998887771", "hash", now, now))

	user, err := repo.FindByID(context.Background(), testUserID)

	require.NoError(t, err)
	assert.Equal(t, "9998887771", user.MobileNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByID_MalformedID(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs("not-a-uuid").
		WillReturnError(&pgconn.PgError{Code: "22P02"})

	_, err := repo.FindByID(context.Background(), "not-a-uuid")

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_FindByID_DBError(t *testing.T) {
	repo, mock := newMockRepo(t)
	dbErr := errors.New("timeout")

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs(testUserID).
		WillReturnError(dbErr)

	_, err := repo.FindByID(context.Background(), testUserID)

	assert.ErrorIs(t, err, dbErr)
	assert.Contains(t, err.Error(), "failed to find user by ID")
}

func TestUserRepository_Update(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()
	changes := model.UserChanges{Name: strPtr("Alice B")}

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET")).
		WithArgs(testUserID, changes.Name, changes.Email, changes.MobileNumber, changes.PasswordHash).
		WillReturnRows(pgxmock.NewRows(userRowColumns).
			AddRow(testUserID, "Alice B", "alice@x.com", "9998887771", "hash", now, now))

	user, err := repo.Update(context.Background(), testUserID, changes)

	require.NoError(t, err)
	assert.Equal(t, "Alice B", user.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Update_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	changes := model.UserChanges{Email: strPtr("b@x.com")}

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET")).
		WithArgs(testUserID, changes.Name, changes.Email, changes.MobileNumber, changes.PasswordHash).
		WillReturnRows(pgxmock.NewRows(userRowColumns))

	_, err := repo.Update(context.Background(), testUserID, changes)

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_Update_DuplicateMobileNumber(t *testing.T) {
	repo, mock := newMockRepo(t)
	changes := model.UserChanges{MobileNumber: strPtr("1112223334")}

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET")).
		WithArgs(testUserID, changes.Name, changes.Email, changes.MobileNumber, changes.PasswordHash).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Update(context.Background(), testUserID, changes)

	assert.ErrorIs(t, err, ErrDuplicateMobileNumber)
}
