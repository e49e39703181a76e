package handler

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techtornix/techtornix-api/internal/middleware"
	"github.com/techtornix/techtornix-api/internal/models"
	"github.com/techtornix/techtornix-api/internal/service"
	"github.com/techtornix/techtornix-api/internal/utils"
)

const testPassword = "correct-horse-battery"

var (
	testHashOnce sync.Once
	testHash     string
)

func passwordHash(t *testing.T) string {
	t.Helper()
	testHashOnce.Do(func() {
		h, err := service.HashPassword(testPassword)
		if err != nil {
			t.Fatalf("hash password: %v", err)
		}
		testHash = h
	})
	return testHash
}

// memAdminStore is a minimal service.AdminStore for handler tests.
type memAdminStore struct {
	admins map[int]*models.Admin
}

func (s *memAdminStore) GetByIdentifier(identifier string) (*models.Admin, error) {
	for _, a := range s.admins {
		if a.Username == identifier || a.Email == identifier {
			cp := *a
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *memAdminStore) GetByID(id int) (*models.Admin, error) {
	a, ok := s.admins[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *a
	return &cp, nil
}

func (s *memAdminStore) List() ([]models.Admin, error) {
	out := make([]models.Admin, 0, len(s.admins))
	for _, a := range s.admins {
		out = append(out, *a)
	}
	return out, nil
}

func (s *memAdminStore) Count() (int, error) { return len(s.admins), nil }

func (s *memAdminStore) Create(admin *models.Admin) error {
	admin.ID = len(s.admins) + 1
	cp := *admin
	s.admins[admin.ID] = &cp
	return nil
}

func (s *memAdminStore) RecordFailedAttempt(id, threshold int, lockUntil time.Time) (int, *time.Time, error) {
	a := s.admins[id]
	a.LoginAttempts++
	if a.LoginAttempts >= threshold {
		until := lockUntil
		a.LockUntil = &until
	}
	return a.LoginAttempts, a.LockUntil, nil
}

func (s *memAdminStore) RecordLogin(id int, at time.Time) error {
	a := s.admins[id]
	a.LoginAttempts = 0
	a.LockUntil = nil
	t := at
	a.LastLogin = &t
	return nil
}

func (s *memAdminStore) SetActive(id int, active bool) error {
	a, ok := s.admins[id]
	if !ok {
		return sql.ErrNoRows
	}
	a.IsActive = active
	return nil
}

func newLoginRouter(t *testing.T, store *memAdminStore) (*gin.Engine, *service.AdminAuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authSvc := service.NewAdminAuthService(store, "handler-test-secret")
	h := NewAuthHandler(authSvc, middleware.NewLoginRateLimiter())

	router := gin.New()
	router.POST("/v1/admin/auth/login", h.Login)
	return router, authSvc
}

func seedAdmin(t *testing.T, store *memAdminStore) *models.Admin {
	t.Helper()
	admin := &models.Admin{
		Username:     "sana",
		Email:        "sana@techtornix.com",
		PasswordHash: passwordHash(t),
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	require.NoError(t, store.Create(admin))
	return admin
}

func postLogin(router *gin.Engine, body map[string]any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/auth/login", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "192.0.2.10:4000"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) utils.Response {
	t.Helper()
	var resp utils.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestLoginEndpointSuccess(t *testing.T) {
	store := &memAdminStore{admins: map[int]*models.Admin{}}
	seedAdmin(t, store)
	router, _ := newLoginRouter(t, store)

	w := postLogin(router, map[string]any{"username": "sana", "password": testPassword})
	require.Equal(t, 200, w.Code)

	resp := decodeEnvelope(t, w)
	assert.True(t, resp.Success)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, data["token"])

	admin, ok := data["admin"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "sana", admin["username"])
	// Sensitive fields never serialize.
	assert.NotContains(t, admin, "password_hash")
	assert.NotContains(t, admin, "passwordHash")
	assert.NotContains(t, admin, "loginAttempts")
	assert.NotContains(t, admin, "lockUntil")
}

func TestLoginEndpointMissingIdentifier(t *testing.T) {
	store := &memAdminStore{admins: map[int]*models.Admin{}}
	router, _ := newLoginRouter(t, store)

	w := postLogin(router, map[string]any{"password": "whatever"})
	require.Equal(t, 400, w.Code)

	resp := decodeEnvelope(t, w)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_REQUEST", resp.Error.Code)
}

func TestLoginEndpointMissingPassword(t *testing.T) {
	store := &memAdminStore{admins: map[int]*models.Admin{}}
	router, _ := newLoginRouter(t, store)

	w := postLogin(router, map[string]any{"username": "sana"})
	assert.Equal(t, 400, w.Code)
}

func TestLoginEndpointWrongPassword(t *testing.T) {
	store := &memAdminStore{admins: map[int]*models.Admin{}}
	seedAdmin(t, store)
	router, _ := newLoginRouter(t, store)

	w := postLogin(router, map[string]any{"username": "sana", "password": "wrong"})
	require.Equal(t, 401, w.Code)

	resp := decodeEnvelope(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_CREDENTIALS", resp.Error.Code)
}

func TestLoginEndpointUnknownUserLooksTheSame(t *testing.T) {
	store := &memAdminStore{admins: map[int]*models.Admin{}}
	seedAdmin(t, store)
	router, _ := newLoginRouter(t, store)

	unknown := postLogin(router, map[string]any{"username": "ghost", "password": "wrong"})
	wrong := postLogin(router, map[string]any{"username": "sana", "password": "wrong"})

	assert.Equal(t, 401, unknown.Code)
	assert.Equal(t, 401, wrong.Code)
	assert.Equal(t,
		decodeEnvelope(t, unknown).Error.Code,
		decodeEnvelope(t, wrong).Error.Code,
	)
}

func TestLoginEndpointLockedAccount(t *testing.T) {
	store := &memAdminStore{admins: map[int]*models.Admin{}}
	admin := seedAdmin(t, store)
	until := time.Now().Add(10 * time.Minute)
	store.admins[admin.ID].LoginAttempts = 5
	store.admins[admin.ID].LockUntil = &until
	router, _ := newLoginRouter(t, store)

	w := postLogin(router, map[string]any{"username": "sana", "password": testPassword})
	require.Equal(t, 423, w.Code)

	resp := decodeEnvelope(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ACCOUNT_LOCKED", resp.Error.Code)

	retryAfter, err := strconv.Atoi(w.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.Greater(t, retryAfter, 0)
	assert.LessOrEqual(t, retryAfter, 600)
}

func TestLoginEndpointRateLimited(t *testing.T) {
	store := &memAdminStore{admins: map[int]*models.Admin{}}
	seedAdmin(t, store)
	router, _ := newLoginRouter(t, store)

	for i := 0; i < 5; i++ {
		w := postLogin(router, map[string]any{"username": "sana", "password": "wrong"})
		require.Equal(t, 401, w.Code)
	}

	w := postLogin(router, map[string]any{"username": "sana", "password": "wrong"})
	require.Equal(t, 429, w.Code)
	assert.Equal(t, "TOO_MANY_REQUESTS", decodeEnvelope(t, w).Error.Code)
}
