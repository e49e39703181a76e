package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/techtornix/techtornix-api/internal/models"
	"github.com/techtornix/techtornix-api/internal/service"
	"github.com/techtornix/techtornix-api/internal/utils"
)

// JWTMiddleware is the session gate for the admin surface. It verifies the
// bearer token and re-fetches the admin record so deactivated accounts are
// rejected before their tokens expire.
type JWTMiddleware struct {
	authService *service.AdminAuthService
}

// NewJWTMiddleware constructs a JWTMiddleware.
func NewJWTMiddleware(authService *service.AdminAuthService) *JWTMiddleware {
	return &JWTMiddleware{authService: authService}
}

// Handle returns a Gin middleware that authenticates the request and
// attaches the admin identity to the context.
func (m *JWTMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Error(c, 401, "UNAUTHORIZED", "Missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.Error(c, 401, "UNAUTHORIZED", "Invalid authorization header")
			c.Abort()
			return
		}

		admin, err := m.authService.VerifyToken(parts[1])
		if err != nil {
			m.rejectToken(c, err)
			return
		}

		c.Set("admin", admin)
		c.Set("admin_id", admin.ID)
		c.Set("role", admin.Role)
		c.Next()
	}
}

// rejectToken maps verification failures to responses. Expired, forged and
// deactivated all look the same to the caller; the log keeps them apart.
func (m *JWTMiddleware) rejectToken(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTokenExpired):
		log.Debug().Str("path", c.Request.URL.Path).Msg("Rejected expired token")
	case errors.Is(err, service.ErrTokenInvalid):
		log.Debug().Str("path", c.Request.URL.Path).Msg("Rejected invalid token")
	case errors.Is(err, service.ErrAccountInvalid):
		log.Warn().Str("path", c.Request.URL.Path).Msg("Rejected token for missing or deactivated account")
	default:
		// Credential store unreachable: this is a server fault, not an
		// authentication failure.
		log.Error().Err(err).Msg("Session gate storage failure")
		utils.Error(c, 500, "INTERNAL_ERROR", "Internal server error")
		c.Abort()
		return
	}
	utils.Error(c, 401, "INVALID_TOKEN", "Invalid or expired token")
	c.Abort()
}

// RequireRole returns a guard allowing only the listed roles. It must run
// after Handle.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		utils.Error(c, 403, "FORBIDDEN", "Insufficient permissions")
		c.Abort()
	}
}

// GetAdmin returns the authenticated admin from context.
func GetAdmin(c *gin.Context) *models.Admin {
	admin, _ := c.Get("admin")
	if admin == nil {
		return nil
	}
	return admin.(*models.Admin)
}
