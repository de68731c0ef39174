package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/infrastructure/auth"
	"github.com/marketplace/backend/internal/infrastructure/logger"
	"github.com/marketplace/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// SessionKey holds the identity.Session on the gin context
const SessionKey = "session"

const bearerPrefix = "Bearer "

// SessionParser turns a raw token into a session; *auth.JWTService implements it
type SessionParser interface {
	ParseSession(token string) (identity.Session, error)
}

// AuthConfig holds configuration for Authenticate
type AuthConfig struct {
	Parser     SessionParser
	CookieName string
	Logger     *zap.Logger
}

// Authenticate reads the token from the session cookie or an
// Authorization: Bearer header and stores the verified session on both the
// gin context and the request context. Requests without a valid token get 401.
func Authenticate(cfg AuthConfig) gin.HandlerFunc {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		token := extractToken(c, cfg.CookieName)
		if token == "" {
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Please login")
			return
		}

		session, err := cfg.Parser.ParseSession(token)
		if err != nil {
			cfg.Logger.Debug("authentication failed",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			code, message := dto.ErrCodeUnauthorized, "Invalid session token"
			if errors.Is(err, auth.ErrExpiredToken) {
				code, message = dto.ErrCodeTokenExpired, "Session has expired, please login again"
			}
			abortWithError(c, http.StatusUnauthorized, code, message)
			return
		}

		c.Set(SessionKey, session)
		ctx := identity.WithSession(c.Request.Context(), session)
		ctx = logger.WithFields(ctx,
			zap.String("tenant_id", session.TenantID.String()),
			zap.String("user_id", session.UserID.String()),
			zap.String("role", session.Role.String()),
		)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// extractToken prefers the Authorization header; browsers send the cookie
func extractToken(c *gin.Context, cookieName string) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, bearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	}
	if cookieName == "" {
		return ""
	}
	token, err := c.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return token
}

// RequireRoles rejects sessions whose role is not listed. Admin always
// passes. With no roles any authenticated session passes.
func RequireRoles(roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := GetSession(c)
		if !ok {
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Please login")
			return
		}
		if len(roles) > 0 && session.RequireRole(roles...) != nil {
			logger.GetGinLogger(c).Debug("role denied",
				zap.String("role", session.Role.String()),
				zap.String("route", c.FullPath()),
			)
			abortWithError(c, http.StatusForbidden, dto.ErrCodeForbidden, "You do not have access to this resource")
			return
		}
		c.Next()
	}
}

// GetSession returns the session stored by Authenticate
func GetSession(c *gin.Context) (identity.Session, bool) {
	v, ok := c.Get(SessionKey)
	if !ok {
		return identity.Session{}, false
	}
	s, ok := v.(identity.Session)
	return s, ok
}
