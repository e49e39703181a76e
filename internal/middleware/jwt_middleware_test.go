package middleware

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techtornix/techtornix-api/internal/models"
	"github.com/techtornix/techtornix-api/internal/service"
)

type stubAdminStore struct {
	admins map[int]*models.Admin
}

func (s *stubAdminStore) GetByIdentifier(identifier string) (*models.Admin, error) {
	for _, a := range s.admins {
		if a.Username == identifier {
			cp := *a
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *stubAdminStore) GetByID(id int) (*models.Admin, error) {
	a, ok := s.admins[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *a
	return &cp, nil
}

func (s *stubAdminStore) List() ([]models.Admin, error) { return nil, nil }
func (s *stubAdminStore) Count() (int, error)           { return len(s.admins), nil }

func (s *stubAdminStore) Create(admin *models.Admin) error {
	admin.ID = len(s.admins) + 1
	cp := *admin
	s.admins[admin.ID] = &cp
	return nil
}

func (s *stubAdminStore) RecordFailedAttempt(id, threshold int, lockUntil time.Time) (int, *time.Time, error) {
	return 0, nil, nil
}

func (s *stubAdminStore) RecordLogin(id int, at time.Time) error { return nil }

func (s *stubAdminStore) SetActive(id int, active bool) error {
	a, ok := s.admins[id]
	if !ok {
		return sql.ErrNoRows
	}
	a.IsActive = active
	return nil
}

func newGateTestServer(t *testing.T, role string) (*gin.Engine, *service.AdminAuthService, *models.Admin, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := &stubAdminStore{admins: map[int]*models.Admin{}}
	authSvc := service.NewAdminAuthService(store, "gate-test-secret")

	admin, err := authSvc.CreateAdmin("sana", "sana@techtornix.com", "valid-test-password", role)
	require.NoError(t, err)

	token, _, err := authSvc.Login("sana", "valid-test-password")
	require.NoError(t, err)

	router := gin.New()
	gate := NewJWTMiddleware(authSvc)
	router.GET("/protected", gate.Handle(), func(c *gin.Context) {
		c.JSON(200, gin.H{"adminId": GetAdmin(c).ID})
	})
	router.GET("/super", gate.Handle(), RequireRole(models.RoleSuperAdmin), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	return router, authSvc, admin, token
}

func doGet(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGateAllowsValidToken(t *testing.T) {
	router, _, _, token := newGateTestServer(t, models.RoleAdmin)

	w := doGet(router, "/protected", "Bearer "+token)
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "adminId")
}

func TestGateRejectsMissingHeader(t *testing.T) {
	router, _, _, _ := newGateTestServer(t, models.RoleAdmin)

	w := doGet(router, "/protected", "")
	assert.Equal(t, 401, w.Code)
}

func TestGateRejectsMalformedHeader(t *testing.T) {
	router, _, _, token := newGateTestServer(t, models.RoleAdmin)

	for _, header := range []string{"Basic " + token, token, "Bearer"} {
		w := doGet(router, "/protected", header)
		assert.Equal(t, 401, w.Code, "header %q", header)
	}
}

func TestGateRejectsGarbageToken(t *testing.T) {
	router, _, _, _ := newGateTestServer(t, models.RoleAdmin)

	w := doGet(router, "/protected", "Bearer not-a-token")
	assert.Equal(t, 401, w.Code)
}

func TestGateRejectsDeactivatedAccount(t *testing.T) {
	router, authSvc, admin, token := newGateTestServer(t, models.RoleAdmin)

	// Token is still within its lifetime; deactivation wins anyway.
	require.NoError(t, authSvc.SetAdminStatus(admin.ID, false))

	w := doGet(router, "/protected", "Bearer "+token)
	assert.Equal(t, 401, w.Code)
}

func TestRequireRoleForbidsLowerRole(t *testing.T) {
	router, _, _, token := newGateTestServer(t, models.RoleAdmin)

	w := doGet(router, "/super", "Bearer "+token)
	assert.Equal(t, 403, w.Code)
}

func TestRequireRoleAllowsSuperAdmin(t *testing.T) {
	router, _, _, token := newGateTestServer(t, models.RoleSuperAdmin)

	w := doGet(router, "/super", "Bearer "+token)
	assert.Equal(t, 200, w.Code)
}
