package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/careline/social-api/internal/handler"
	authservice "github.com/careline/social-api/internal/service/auth"
	"github.com/careline/social-api/pkg/auth"
)

// Context keys set by the auth middleware.
const (
	ContextProfileID = "profileID"
	ContextUserID    = "userID"
	ContextUsername  = "username"
)

type AuthMiddleware struct {
	authService authservice.Service
}

func NewAuthMiddleware(authService authservice.Service) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Authenticate verifies the bearer token and sets the caller's identity in
// context. Protected routes respond 401 instead of redirecting; the JSON
// client owns the login flow.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := m.resolveClaims(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
			c.Abort()
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuthenticate sets the caller's identity when a valid token is
// presented and lets the request through either way. The home page uses it
// to decide between the landing document and a redirect.
func (m *AuthMiddleware) OptionalAuthenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims := m.resolveClaims(c); claims != nil {
			setIdentity(c, claims)
		}
		c.Next()
	}
}

func (m *AuthMiddleware) resolveClaims(c *gin.Context) *auth.TokenClaims {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil
	}

	claims, err := m.authService.ValidateToken(c.Request.Context(), parts[1])
	if err != nil {
		return nil
	}
	return claims
}

func setIdentity(c *gin.Context, claims *auth.TokenClaims) {
	c.Set(ContextProfileID, claims.ProfileID.String())
	c.Set(ContextUserID, claims.UserID.String())
	c.Set(ContextUsername, claims.Username)
}
