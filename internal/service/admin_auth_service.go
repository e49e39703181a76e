package service

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/techtornix/techtornix-api/internal/models"
	"github.com/techtornix/techtornix-api/internal/utils"
)

// Lockout and token policy. Fixed by design, not per-account configuration.
const (
	lockThreshold = 5
	lockDuration  = 15 * time.Minute
	tokenTTL      = 24 * time.Hour
	bcryptCost    = 12
)

// Authentication outcomes. Handlers map these to HTTP statuses; the
// client-facing message never distinguishes unknown identifier, wrong
// password, or deactivated account.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAccountInvalid     = errors.New("account missing or deactivated")
)

// LockedError is returned while an account lock is still in effect.
type LockedError struct {
	Until time.Time
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("account locked until %s", e.Until.Format(time.RFC3339))
}

// AdminStore is the credential store contract the auth service depends on.
// Implemented by repository.AdminUserRepository.
type AdminStore interface {
	GetByIdentifier(identifier string) (*models.Admin, error)
	GetByID(id int) (*models.Admin, error)
	List() ([]models.Admin, error)
	Count() (int, error)
	Create(admin *models.Admin) error
	RecordFailedAttempt(id, threshold int, lockUntil time.Time) (int, *time.Time, error)
	RecordLogin(id int, at time.Time) error
	SetActive(id int, active bool) error
}

// AdminAuthService implements admin login with account lockout, JWT
// issuance/verification, and the per-request account re-check used by the
// session gate.
type AdminAuthService struct {
	store     AdminStore
	jwtSecret []byte

	// Swappable in tests: clock and password comparison.
	now            func() time.Time
	verifyPassword func(hash, plain string) error
}

// NewAdminAuthService constructs an AdminAuthService.
func NewAdminAuthService(store AdminStore, jwtSecret string) *AdminAuthService {
	return &AdminAuthService{
		store:          store,
		jwtSecret:      []byte(jwtSecret),
		now:            time.Now,
		verifyPassword: comparePassword,
	}
}

func comparePassword(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}

// HashPassword derives a bcrypt hash at the fixed work factor.
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Login authenticates an admin by username or email. The lock check runs
// before password verification: a locked account never reaches bcrypt, so a
// correct password cannot reset the counters while the lock holds, and the
// locked path does not pay the hash-comparison cost.
//
// On success it returns a signed token and the sanitized admin record.
// Failures return ErrInvalidCredentials or *LockedError; storage problems
// propagate as wrapped errors, never disguised as bad credentials.
func (s *AdminAuthService) Login(identifier, password string) (string, *models.Admin, error) {
	admin, err := s.store.GetByIdentifier(identifier)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn().Str("identifier", identifier).Msg("Login attempt for unknown identifier")
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("load admin: %w", err)
	}

	if !admin.IsActive {
		log.Warn().Str("username", admin.Username).Msg("Login attempt on deactivated account")
		return "", nil, ErrInvalidCredentials
	}

	now := s.now()
	if admin.LockUntil != nil && admin.LockUntil.After(now) {
		log.Warn().
			Str("username", admin.Username).
			Time("lock_until", *admin.LockUntil).
			Msg("Login attempt on locked account")
		return "", nil, &LockedError{Until: *admin.LockUntil}
	}

	if err := s.verifyPassword(admin.PasswordHash, password); err != nil {
		attempts, lockUntil, uerr := s.store.RecordFailedAttempt(admin.ID, lockThreshold, now.Add(lockDuration))
		if uerr != nil {
			return "", nil, fmt.Errorf("record failed attempt: %w", uerr)
		}
		evt := log.Warn().Str("username", admin.Username).Int("attempts", attempts)
		if lockUntil != nil {
			evt = evt.Time("lock_until", *lockUntil)
		}
		evt.Msg("Password verification failed")
		return "", nil, ErrInvalidCredentials
	}

	if err := s.store.RecordLogin(admin.ID, now); err != nil {
		return "", nil, fmt.Errorf("record login: %w", err)
	}
	admin.LoginAttempts = 0
	admin.LockUntil = nil
	admin.LastLogin = &now

	token, err := s.issueToken(admin, now)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	log.Info().Str("username", admin.Username).Str("role", admin.Role).Msg("Login successful")
	return token, admin, nil
}

// AdminClaims is the identity payload embedded in a session token. The
// token is signed but not encrypted, so nothing sensitive goes here.
type AdminClaims struct {
	AdminID  int    `json:"adminId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func (s *AdminAuthService) issueToken(admin *models.Admin, now time.Time) (string, error) {
	claims := AdminClaims{
		AdminID:  admin.ID,
		Username: admin.Username,
		Email:    admin.Email,
		Role:     admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			Issuer:    "techtornix-api",
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

// ParseToken verifies the signature and expiry of a session token.
// Expiry is reported as ErrTokenExpired, every other defect as
// ErrTokenInvalid; callers surface both as the same rejection.
func (s *AdminAuthService) ParseToken(tokenStr string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// VerifyToken validates a session token and re-fetches the admin record so
// deactivation or deletion takes effect before the token expires. There is
// no revocation list: this re-check is the only thing cutting short a live
// token. No lockout counters are touched on this path.
func (s *AdminAuthService) VerifyToken(tokenStr string) (*models.Admin, error) {
	claims, err := s.ParseToken(tokenStr)
	if err != nil {
		return nil, err
	}

	admin, err := s.store.GetByID(claims.AdminID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountInvalid
		}
		return nil, fmt.Errorf("load admin: %w", err)
	}
	if !admin.IsActive {
		return nil, ErrAccountInvalid
	}
	return admin, nil
}

// CreateAdmin provisions a new admin account.
func (s *AdminAuthService) CreateAdmin(username, email, password, role string) (*models.Admin, error) {
	if !models.ValidRole(role) {
		return nil, utils.ErrInvalidRole
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	admin := &models.Admin{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := s.store.Create(admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// ListAdmins returns all admin accounts.
func (s *AdminAuthService) ListAdmins() ([]models.Admin, error) {
	return s.store.List()
}

// SetAdminStatus toggles an account. Deactivation is enforced on the next
// protected request via the VerifyToken re-fetch.
func (s *AdminAuthService) SetAdminStatus(id int, active bool) error {
	if err := s.store.SetActive(id, active); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrNotFound
		}
		return err
	}
	return nil
}

// Bootstrap creates the first super-admin with a generated password when
// the credential store is empty. Returns the plaintext password exactly
// once so the operator can log in and rotate it.
func (s *AdminAuthService) Bootstrap(username, email string) (string, bool, error) {
	n, err := s.store.Count()
	if err != nil {
		return "", false, fmt.Errorf("count admins: %w", err)
	}
	if n > 0 {
		return "", false, nil
	}

	password, err := utils.GeneratePassword()
	if err != nil {
		return "", false, err
	}
	if _, err := s.CreateAdmin(username, email, password, models.RoleSuperAdmin); err != nil {
		return "", false, err
	}
	return password, true, nil
}
