package middleware

import (
	"net/http"
	"strings"

	"hospital-management-backend/internal/models"
	"hospital-management-backend/internal/service"
	"hospital-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by Authenticate
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
	ContextRole     = "role"
)

// SessionCookie is the name of the HttpOnly session cookie
const SessionCookie = "session_token"

// Authenticate resolves the caller's identity from either a Bearer access
// token or the session cookie and injects it into the request context.
func Authenticate(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := resolveIdentity(c, authService)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}

		c.Set(ContextUserID, identity.UserID)
		c.Set(ContextUsername, identity.Username)
		c.Set(ContextRole, identity.Role)

		c.Next()
	}
}

func resolveIdentity(c *gin.Context, authService *service.AuthService) (*service.Identity, bool) {
	// Bearer token first, for API clients
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return nil, false
		}
		claims, err := utils.ValidateAccessToken(parts[1])
		if err != nil {
			return nil, false
		}
		return &service.Identity{UserID: claims.UserID, Username: claims.Username, Role: claims.Role}, true
	}

	// Session cookie for browser clients
	token, err := c.Cookie(SessionCookie)
	if err != nil {
		return nil, false
	}
	identity, err := authService.Authenticate(token)
	if err != nil {
		return nil, false
	}
	return identity, true
}

// RequireRole gates a route on an exact role match. There is no hierarchy:
// an admin is not implicitly authorized for doctor-only routes.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ContextRole)
		if !exists {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}

		if value.(models.Role) != role {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}

		c.Next()
	}
}

// CallerIdentity reads the identity injected by Authenticate
func CallerIdentity(c *gin.Context) (service.Identity, bool) {
	userID, ok := c.Get(ContextUserID)
	if !ok {
		return service.Identity{}, false
	}
	username, _ := c.Get(ContextUsername)
	role, _ := c.Get(ContextRole)
	return service.Identity{
		UserID:   userID.(uint),
		Username: username.(string),
		Role:     role.(models.Role),
	}, true
}
