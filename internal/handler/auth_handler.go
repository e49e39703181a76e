package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/techtornix/techtornix-api/internal/middleware"
	"github.com/techtornix/techtornix-api/internal/service"
	"github.com/techtornix/techtornix-api/internal/utils"
)

// AuthHandler handles admin authentication and account management.
type AuthHandler struct {
	authService *service.AdminAuthService
	rateLimiter *middleware.LoginRateLimiter
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authService *service.AdminAuthService, rateLimiter *middleware.LoginRateLimiter) *AuthHandler {
	return &AuthHandler{authService: authService, rateLimiter: rateLimiter}
}

// Login handles POST /v1/admin/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email" binding:"omitempty,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	identifier := req.Username
	if identifier == "" {
		identifier = req.Email
	}
	if identifier == "" {
		utils.Error(c, 400, "INVALID_REQUEST", "username or email is required")
		return
	}

	token, admin, err := h.authService.Login(identifier, req.Password)
	if err != nil {
		h.handleLoginError(c, err)
		return
	}

	utils.Success(c, 200, "Login successful", gin.H{
		"token": token,
		"admin": admin,
	})
}

// handleLoginError maps login failures to responses. Failed attempts also
// feed the per-IP rate limiter.
func (h *AuthHandler) handleLoginError(c *gin.Context, err error) {
	var lockedErr *service.LockedError
	switch {
	case errors.As(err, &lockedErr):
		if !h.rateLimiter.Allow(c.ClientIP()) {
			utils.Error(c, 429, "TOO_MANY_REQUESTS", "Too many failed login attempts")
			return
		}
		retryAfter := int(time.Until(lockedErr.Until).Seconds())
		if retryAfter < 0 {
			retryAfter = 0
		}
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		utils.Error(c, 423, "ACCOUNT_LOCKED", "Account temporarily locked, try again later")
	case errors.Is(err, service.ErrInvalidCredentials):
		if !h.rateLimiter.Allow(c.ClientIP()) {
			utils.Error(c, 429, "TOO_MANY_REQUESTS", "Too many failed login attempts")
			return
		}
		utils.Error(c, 401, "INVALID_CREDENTIALS", "Invalid credentials")
	default:
		log.Error().Err(err).Msg("Login failed on storage")
		utils.Error(c, 500, "INTERNAL_ERROR", "Internal server error")
	}
}

// Me handles GET /v1/admin/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	admin := middleware.GetAdmin(c)
	if admin == nil {
		utils.Error(c, 401, "UNAUTHORIZED", "Not authenticated")
		return
	}
	utils.Success(c, 200, "Profile retrieved", admin)
}

// CreateAdmin handles POST /v1/admin/admins (super-admin only)
func (h *AuthHandler) CreateAdmin(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required,min=3"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=12"`
		Role     string `json:"role" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	admin, err := h.authService.CreateAdmin(req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrInvalidRole):
			utils.Error(c, 400, "INVALID_ROLE", "Role must be admin or super-admin")
		case errors.Is(err, utils.ErrDuplicateUsername):
			utils.Error(c, 400, "DUPLICATE_USERNAME", "Username already exists")
		case errors.Is(err, utils.ErrDuplicateEmail):
			utils.Error(c, 400, "DUPLICATE_EMAIL", "Email already exists")
		default:
			log.Error().Err(err).Msg("Failed to create admin")
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create admin")
		}
		return
	}

	utils.Success(c, 201, "Admin created successfully", admin)
}

// ListAdmins handles GET /v1/admin/admins (super-admin only)
func (h *AuthHandler) ListAdmins(c *gin.Context) {
	admins, err := h.authService.ListAdmins()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve admins")
		return
	}
	utils.Success(c, 200, "Admins retrieved", gin.H{
		"admins": admins,
		"total":  len(admins),
	})
}

// SetAdminStatus handles PATCH /v1/admin/admins/:id/status (super-admin only)
func (h *AuthHandler) SetAdminStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid admin ID")
		return
	}

	var req struct {
		IsActive *bool `json:"isActive" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	// A super-admin cannot lock themselves out mid-session.
	if admin := middleware.GetAdmin(c); admin != nil && admin.ID == id && !*req.IsActive {
		utils.Error(c, 400, "INVALID_REQUEST", "Cannot deactivate your own account")
		return
	}

	if err := h.authService.SetAdminStatus(id, *req.IsActive); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.Error(c, 404, "ADMIN_NOT_FOUND", "Admin not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update admin")
		return
	}

	utils.Success(c, 200, "Admin status updated", gin.H{"id": id, "isActive": *req.IsActive})
}
