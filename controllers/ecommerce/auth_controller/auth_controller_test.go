package auth_controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/CopperGroup/JoyFer/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var userColumns = []string{
	"id", "username", "name", "surname", "email", "phone_number",
	"password_hash", "self_created", "is_admin", "created_at", "updated_at",
}

func setupAuth(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, services.InitJWTService("auth-secret", time.Hour))
	services.Init(&services.Registry{Users: services.NewUserService(db, services.GetJWTService())})

	r := gin.New()
	r.POST("/api/users/signup", Signup)
	r.POST("/api/v1/auth/login", Login)
	r.POST("/api/v1/auth/logout", Logout)
	return r, mock
}

func post(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSignup(t *testing.T) {
	r, mock := setupAuth(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(userColumns))
	mock.ExpectExec(`INSERT INTO "users"`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	w := post(r, "/api/users/signup", `{"username":"olena","email":"olena@example.com","password":"s3cret-pass"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Message   string         `json:"message"`
		Success   bool           `json:"success"`
		SavedUser map[string]any `json:"savedUser"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "User created successfully", body.Message)
	assert.True(t, body.Success)
	assert.Equal(t, "olena@example.com", body.SavedUser["email"])
	assert.NotContains(t, w.Body.String(), "password")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSignup_UserExists(t *testing.T) {
	r, mock := setupAuth(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(uuid.New(), "olena", "", "", "olena@example.com", "", "x", false, false, now, now))
	mock.ExpectRollback()

	w := post(r, "/api/users/signup", `{"username":"olena","email":"olena@example.com","password":"s3cret-pass"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"User already exists"}`, w.Body.String())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSignup_InvalidBody(t *testing.T) {
	r, _ := setupAuth(t)

	w := post(r, "/api/users/signup", `{"email":"not-an-email","password":"short"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_SetsCookie(t *testing.T) {
	r, mock := setupAuth(t)
	hash, err := services.HashPassword("s3cret-pass")
	require.NoError(t, err)
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(uuid.New(), "admin", "Admin", "", "admin@joyfer.com.ua", "", hash, false, true, now, now))

	w := post(r, "/api/v1/auth/login", `{"email":"admin@joyfer.com.ua","password":"s3cret-pass"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == authCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	claims, err := services.GetJWTService().Verify(cookie.Value)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
}

func TestLogin_WrongPassword(t *testing.T) {
	r, mock := setupAuth(t)
	hash, err := services.HashPassword("s3cret-pass")
	require.NoError(t, err)
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(uuid.New(), "admin", "Admin", "", "admin@joyfer.com.ua", "", hash, false, true, now, now))

	w := post(r, "/api/v1/auth/login", `{"email":"admin@joyfer.com.ua","password":"wrong-pass"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
