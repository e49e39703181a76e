package service

import (
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techtornix/techtornix-api/internal/models"
)

// fakeAdminStore is an in-memory AdminStore mirroring the repository's
// counter semantics.
type fakeAdminStore struct {
	admins     map[int]*models.Admin
	nextID     int
	attemptErr error
}

func newFakeAdminStore() *fakeAdminStore {
	return &fakeAdminStore{admins: map[int]*models.Admin{}, nextID: 1}
}

func (s *fakeAdminStore) add(a models.Admin) *models.Admin {
	a.ID = s.nextID
	s.nextID++
	cp := a
	s.admins[cp.ID] = &cp
	return &cp
}

func (s *fakeAdminStore) GetByIdentifier(identifier string) (*models.Admin, error) {
	for _, a := range s.admins {
		if a.Username == identifier || a.Email == strings.ToLower(identifier) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *fakeAdminStore) GetByID(id int) (*models.Admin, error) {
	a, ok := s.admins[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *a
	return &cp, nil
}

func (s *fakeAdminStore) List() ([]models.Admin, error) {
	out := make([]models.Admin, 0, len(s.admins))
	for _, a := range s.admins {
		out = append(out, *a)
	}
	return out, nil
}

func (s *fakeAdminStore) Count() (int, error) {
	return len(s.admins), nil
}

func (s *fakeAdminStore) Create(admin *models.Admin) error {
	created := s.add(*admin)
	*admin = *created
	return nil
}

func (s *fakeAdminStore) RecordFailedAttempt(id, threshold int, lockUntil time.Time) (int, *time.Time, error) {
	if s.attemptErr != nil {
		return 0, nil, s.attemptErr
	}
	a, ok := s.admins[id]
	if !ok {
		return 0, nil, sql.ErrNoRows
	}
	a.LoginAttempts++
	if a.LoginAttempts >= threshold {
		until := lockUntil
		a.LockUntil = &until
	}
	return a.LoginAttempts, a.LockUntil, nil
}

func (s *fakeAdminStore) RecordLogin(id int, at time.Time) error {
	a, ok := s.admins[id]
	if !ok {
		return sql.ErrNoRows
	}
	a.LoginAttempts = 0
	a.LockUntil = nil
	t := at
	a.LastLogin = &t
	return nil
}

func (s *fakeAdminStore) SetActive(id int, active bool) error {
	a, ok := s.admins[id]
	if !ok {
		return sql.ErrNoRows
	}
	a.IsActive = active
	return nil
}

// newTestAuthService wires a service with a fixed clock and a plaintext
// password comparison so tests skip bcrypt.
func newTestAuthService(store *fakeAdminStore) (*AdminAuthService, *int, *time.Time) {
	svc := NewAdminAuthService(store, "test-secret")

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	nowRef := new(time.Time)
	*nowRef = now
	svc.now = func() time.Time { return *nowRef }

	verifyCalls := new(int)
	svc.verifyPassword = func(hash, plain string) error {
		*verifyCalls++
		if hash != "hash:"+plain {
			return errors.New("mismatch")
		}
		return nil
	}
	return svc, verifyCalls, nowRef
}

func activeAdmin(username string) models.Admin {
	return models.Admin{
		Username:     username,
		Email:        username + "@techtornix.com",
		PasswordHash: "hash:correct-password",
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
}

func TestLoginSuccess(t *testing.T) {
	store := newFakeAdminStore()
	admin := store.add(activeAdmin("sana"))
	svc, _, nowRef := newTestAuthService(store)

	token, got, err := svc.Login("sana", "correct-password")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, admin.ID, got.ID)
	assert.Equal(t, 0, got.LoginAttempts)
	require.NotNil(t, got.LastLogin)
	assert.Equal(t, *nowRef, *got.LastLogin)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, claims.AdminID)
	assert.Equal(t, "sana", claims.Username)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "techtornix-api", claims.Issuer)
}

func TestLoginByEmail(t *testing.T) {
	store := newFakeAdminStore()
	store.add(activeAdmin("sana"))
	svc, _, _ := newTestAuthService(store)

	_, got, err := svc.Login("Sana@techtornix.com", "correct-password")
	require.NoError(t, err)
	assert.Equal(t, "sana", got.Username)
}

func TestLoginUnknownIdentifier(t *testing.T) {
	store := newFakeAdminStore()
	svc, verifyCalls, _ := newTestAuthService(store)

	_, _, err := svc.Login("ghost", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 0, *verifyCalls)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	store := newFakeAdminStore()
	a := activeAdmin("sana")
	a.IsActive = false
	store.add(a)
	svc, verifyCalls, _ := newTestAuthService(store)

	// Same error as an unknown identifier, and the password is never checked.
	_, _, err := svc.Login("sana", "correct-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 0, *verifyCalls)
}

func TestLoginWrongPasswordIncrementsAttempts(t *testing.T) {
	store := newFakeAdminStore()
	admin := store.add(activeAdmin("sana"))
	svc, _, _ := newTestAuthService(store)

	for i := 1; i <= 4; i++ {
		_, _, err := svc.Login("sana", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Equal(t, i, store.admins[admin.ID].LoginAttempts)
		assert.Nil(t, store.admins[admin.ID].LockUntil)
	}
}

func TestLoginFifthFailureLocks(t *testing.T) {
	store := newFakeAdminStore()
	admin := store.add(activeAdmin("sana"))
	svc, _, nowRef := newTestAuthService(store)

	for i := 0; i < 5; i++ {
		_, _, err := svc.Login("sana", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	lock := store.admins[admin.ID].LockUntil
	require.NotNil(t, lock)
	assert.Equal(t, nowRef.Add(15*time.Minute), *lock)
}

func TestLoginWhileLockedSkipsPasswordCheck(t *testing.T) {
	store := newFakeAdminStore()
	a := activeAdmin("sana")
	until := time.Date(2025, 6, 1, 12, 10, 0, 0, time.UTC)
	a.LoginAttempts = 5
	a.LockUntil = &until
	admin := store.add(a)
	svc, verifyCalls, _ := newTestAuthService(store)

	// Even the correct password is rejected while the lock holds.
	_, _, err := svc.Login("sana", "correct-password")

	var locked *LockedError
	require.ErrorAs(t, err, &locked)
	assert.Equal(t, until, locked.Until)
	assert.Equal(t, 0, *verifyCalls)
	assert.Equal(t, 5, store.admins[admin.ID].LoginAttempts)
}

func TestLoginAfterLockExpiry(t *testing.T) {
	store := newFakeAdminStore()
	a := activeAdmin("sana")
	until := time.Date(2025, 6, 1, 12, 10, 0, 0, time.UTC)
	a.LoginAttempts = 5
	a.LockUntil = &until
	admin := store.add(a)
	svc, _, nowRef := newTestAuthService(store)

	*nowRef = until.Add(time.Second)

	token, got, err := svc.Login("sana", "correct-password")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, 0, got.LoginAttempts)
	assert.Nil(t, got.LockUntil)
	assert.Nil(t, store.admins[admin.ID].LockUntil)
}

func TestLoginSuccessResetsPartialCount(t *testing.T) {
	store := newFakeAdminStore()
	a := activeAdmin("sana")
	a.LoginAttempts = 4
	admin := store.add(a)
	svc, _, _ := newTestAuthService(store)

	_, _, err := svc.Login("sana", "correct-password")
	require.NoError(t, err)
	assert.Equal(t, 0, store.admins[admin.ID].LoginAttempts)
}

func TestLoginStorageErrorIsNotCredentialError(t *testing.T) {
	store := newFakeAdminStore()
	store.add(activeAdmin("sana"))
	store.attemptErr = errors.New("connection reset")
	svc, _, _ := newTestAuthService(store)

	_, _, err := svc.Login("sana", "wrong")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestParseTokenExpired(t *testing.T) {
	store := newFakeAdminStore()
	store.add(activeAdmin("sana"))
	svc, _, nowRef := newTestAuthService(store)

	token, _, err := svc.Login("sana", "correct-password")
	require.NoError(t, err)

	*nowRef = nowRef.Add(24*time.Hour + time.Minute)

	_, err = svc.ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseTokenTampered(t *testing.T) {
	store := newFakeAdminStore()
	store.add(activeAdmin("sana"))
	svc, _, _ := newTestAuthService(store)

	token, _, err := svc.Login("sana", "correct-password")
	require.NoError(t, err)

	_, err = svc.ParseToken(token + "x")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = svc.ParseToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseTokenWrongSecret(t *testing.T) {
	store := newFakeAdminStore()
	store.add(activeAdmin("sana"))
	svc, _, _ := newTestAuthService(store)

	other := NewAdminAuthService(store, "other-secret")
	other.now = svc.now

	token, _, err := svc.Login("sana", "correct-password")
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyTokenDeactivatedAccount(t *testing.T) {
	store := newFakeAdminStore()
	admin := store.add(activeAdmin("sana"))
	svc, _, _ := newTestAuthService(store)

	token, _, err := svc.Login("sana", "correct-password")
	require.NoError(t, err)

	// A live token stops working the moment the account is deactivated.
	require.NoError(t, svc.SetAdminStatus(admin.ID, false))
	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, ErrAccountInvalid)
}

func TestVerifyTokenDeletedAccount(t *testing.T) {
	store := newFakeAdminStore()
	admin := store.add(activeAdmin("sana"))
	svc, _, _ := newTestAuthService(store)

	token, _, err := svc.Login("sana", "correct-password")
	require.NoError(t, err)

	delete(store.admins, admin.ID)
	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, ErrAccountInvalid)
}

func TestCreateAdminRejectsUnknownRole(t *testing.T) {
	store := newFakeAdminStore()
	svc, _, _ := newTestAuthService(store)

	_, err := svc.CreateAdmin("sana", "sana@techtornix.com", "long-enough-password", "owner")
	require.Error(t, err)
}

func TestBootstrapCreatesFirstSuperAdmin(t *testing.T) {
	store := newFakeAdminStore()
	svc, _, _ := newTestAuthService(store)

	password, created, err := svc.Bootstrap("root", "root@techtornix.com")
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, password)

	admins, err := svc.ListAdmins()
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, models.RoleSuperAdmin, admins[0].Role)
	assert.True(t, admins[0].IsActive)
}

func TestBootstrapSkipsWhenAdminsExist(t *testing.T) {
	store := newFakeAdminStore()
	store.add(activeAdmin("sana"))
	svc, _, _ := newTestAuthService(store)

	password, created, err := svc.Bootstrap("root", "root@techtornix.com")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Empty(t, password)
	assert.Equal(t, 1, len(store.admins))
}
