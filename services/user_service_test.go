package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CopperGroup/JoyFer/models"
)

var userColumns = []string{
	"id", "username", "name", "surname", "email", "phone_number",
	"password_hash", "self_created", "is_admin", "created_at", "updated_at",
}

func newTestUserService(t *testing.T) (*UserService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newMockDB(t)
	require.NoError(t, InitJWTService("test-secret", time.Hour))
	return NewUserService(db, GetJWTService()), mock
}

func TestUserService_SignupCreatesUser(t *testing.T) {
	svc, mock := newTestUserService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(userColumns))
	mock.ExpectExec(`INSERT INTO "users"`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	user, err := svc.Signup(context.Background(), models.SignupRequest{
		Username: "olena",
		Email:    " Olena@Example.com ",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "olena@example.com", user.Email)
	assert.False(t, user.SelfCreated)
	assert.True(t, VerifyPassword(user.PasswordHash, "s3cret-pass"))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_SignupLosesInsertRace(t *testing.T) {
	svc, mock := newTestUserService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(userColumns))
	mock.ExpectExec(`INSERT INTO "users"`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: `duplicate key value violates unique constraint "idx_users_email"`})
	mock.ExpectRollback()

	_, err := svc.Signup(context.Background(), models.SignupRequest{
		Username: "olena",
		Email:    "olena@example.com",
		Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, ErrUserExists)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_SignupClaimsAdminCreatedClient(t *testing.T) {
	svc, mock := newTestUserService(t)
	now := time.Now()
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(id, "", "Олена", "Коваль", "olena@example.com", "+380500000000", "x", true, false, now, now))
	mock.ExpectExec(`UPDATE "users" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	user, err := svc.Signup(context.Background(), models.SignupRequest{
		Username: "olena",
		Email:    "olena@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "olena", user.Username)
	assert.Equal(t, "Олена", user.Name)
	assert.False(t, user.SelfCreated)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_SignupRejectsExistingUser(t *testing.T) {
	svc, mock := newTestUserService(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(uuid.New(), "olena", "", "", "olena@example.com", "", "x", false, false, now, now))
	mock.ExpectRollback()

	_, err := svc.Signup(context.Background(), models.SignupRequest{
		Username: "olena",
		Email:    "olena@example.com",
		Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, ErrUserExists)
	assert.Equal(t, "User already exists", err.Error())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Login(t *testing.T) {
	svc, mock := newTestUserService(t)
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	now := time.Now()
	id := uuid.New()

	rows := func() *sqlmock.Rows {
		return sqlmock.NewRows(userColumns).
			AddRow(id, "admin", "Admin", "", "admin@joyfer.com.ua", "", hash, false, true, now, now)
	}
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).WillReturnRows(rows())
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).WillReturnRows(rows())

	auth, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@joyfer.com.ua", Password: "s3cret-pass"})
	require.NoError(t, err)
	claims, err := GetJWTService().Verify(auth.Token)
	require.NoError(t, err)
	assert.Equal(t, id.String(), claims.UserID)
	assert.True(t, claims.IsAdmin)

	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "admin@joyfer.com.ua", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateRandomPassword(t *testing.T) {
	a, err := GenerateRandomPassword()
	require.NoError(t, err)
	b, err := GenerateRandomPassword()
	require.NoError(t, err)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
