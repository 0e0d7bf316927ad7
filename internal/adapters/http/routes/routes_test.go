package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/darickquinto0629/ulevha/internal/adapters/http/middleware"
	"github.com/darickquinto0629/ulevha/internal/adapters/persistence/models"
	"github.com/darickquinto0629/ulevha/internal/config"
	"github.com/darickquinto0629/ulevha/internal/pkg/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type envelope struct {
	Success    bool             `json:"success"`
	Message    string           `json:"message"`
	Data       json.RawMessage  `json:"data"`
	Error      string           `json:"error"`
	Pagination *pagination.Meta `json:"pagination"`
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.AutoMigrate(db))
	require.NoError(t, config.SeedRoles(db))

	cfg := &config.Config{
		AppMode: "dev",
		Port:    "3000",
		JWT: config.JWTConfig{
			Secret:      "test-secret",
			ExpiryHours: 1,
		},
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.CustomErrorHandler,
	})
	Setup(app, db, cfg)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env))
	}
	return resp.StatusCode, env
}

func registerAndLogin(t *testing.T, app *fiber.App, email, role string) string {
	t.Helper()

	status, _ := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name":     "Test Operator",
		"email":    email,
		"password": "pass123",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, status)

	status, env := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    email,
		"password": "pass123",
	})
	require.Equal(t, http.StatusOK, status)

	var result struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.NotEmpty(t, result.Token)
	return result.Token
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestResidentsRequireAuth(t *testing.T) {
	app := newTestApp(t)

	status, env := doJSON(t, app, http.MethodGet, "/api/residents", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, env.Success)

	status, _ = doJSON(t, app, http.MethodGet, "/api/residents", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestResidentLifecycle(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app, "admin@example.com", "admin")

	// Create
	status, env := doJSON(t, app, http.MethodPost, "/api/residents", token, fiber.Map{
		"household_number": "HH-001",
		"first_name":       "Ana",
		"last_name":        "Santos",
		"gender":           "Female",
		"date_of_birth":    "1990-03-20",
		"address":          "Mabini Street",
	})
	require.Equal(t, http.StatusCreated, status)
	require.True(t, env.Success)

	var created struct {
		ID         uint   `json:"id"`
		ResidentID string `json:"resident_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "RES-001", created.ResidentID)

	// Read back
	status, env = doJSON(t, app, http.MethodGet, "/api/residents/1", token, nil)
	require.Equal(t, http.StatusOK, status)

	var fetched models.Resident
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, "Santos", fetched.LastName)

	// Paginated list
	status, env = doJSON(t, app, http.MethodGet, "/api/residents?page=1&limit=10", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, env.Pagination)
	assert.EqualValues(t, 1, env.Pagination.Total)

	// Stats
	status, _ = doJSON(t, app, http.MethodGet, "/api/residents/stats", token, nil)
	assert.Equal(t, http.StatusOK, status)

	// Search without criteria is rejected
	status, env = doJSON(t, app, http.MethodGet, "/api/residents/search", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Success)

	// Soft delete, then the resident is gone from reads
	status, _ = doJSON(t, app, http.MethodDelete, "/api/residents/1", token, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, app, http.MethodGet, "/api/residents/1", token, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, env = doJSON(t, app, http.MethodGet, "/api/residents", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 0, env.Pagination.Total)
}

func TestResidentDeleteIsAdminOnly(t *testing.T) {
	app := newTestApp(t)
	adminToken := registerAndLogin(t, app, "admin@example.com", "admin")
	staffToken := registerAndLogin(t, app, "staff@example.com", "staff")

	status, _ := doJSON(t, app, http.MethodPost, "/api/residents", staffToken, fiber.Map{
		"household_number": "HH-001",
		"first_name":       "Ana",
		"last_name":        "Santos",
		"gender":           "Female",
		"date_of_birth":    "1990-03-20",
		"address":          "Mabini Street",
	})
	require.Equal(t, http.StatusCreated, status)

	status, env := doJSON(t, app, http.MethodDelete, "/api/residents/1", staffToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.False(t, env.Success)

	status, _ = doJSON(t, app, http.MethodDelete, "/api/residents/1", adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestUserManagementAccess(t *testing.T) {
	app := newTestApp(t)
	adminToken := registerAndLogin(t, app, "admin@example.com", "admin")
	staffToken := registerAndLogin(t, app, "staff@example.com", "staff")

	// Staff cannot list users
	status, _ := doJSON(t, app, http.MethodGet, "/api/users", staffToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// Admin can
	status, env := doJSON(t, app, http.MethodGet, "/api/users", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 2, env.Pagination.Total)

	// Staff cannot read another user's record (admin registered first, id 1)
	status, _ = doJSON(t, app, http.MethodGet, "/api/users/1", staffToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// But can read their own
	status, _ = doJSON(t, app, http.MethodGet, "/api/users/2", staffToken, nil)
	assert.Equal(t, http.StatusOK, status)

	// Staff cannot promote themselves; the role field is silently dropped
	status, env = doJSON(t, app, http.MethodPut, "/api/users/2", staffToken, fiber.Map{
		"name": "Still Staff",
		"role": "admin",
	})
	require.Equal(t, http.StatusOK, status)

	var updated struct {
		Name string `json:"name"`
		Role string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Still Staff", updated.Name)
	assert.Equal(t, "staff", updated.Role)
}

func TestVerifyEndpoint(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app, "admin@example.com", "admin")

	status, env := doJSON(t, app, http.MethodGet, "/api/auth/verify", token, nil)
	require.Equal(t, http.StatusOK, status)

	var user struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, "admin@example.com", user.Email)
	assert.Equal(t, "admin", user.Role)
}
