package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/pontobip/internal/domain/errors"
	"github.com/polkiloo/pontobip/internal/domain/model"
	pkgAuth "github.com/polkiloo/pontobip/internal/pkg/auth"
	"github.com/polkiloo/pontobip/internal/server/http/dto"
)

const (
	// SessionContextKey is a gin context key for the resolved session.
	SessionContextKey = "session"
	// SessionCookieName names the http-only cookie carrying the signed session token.
	SessionCookieName = "pontobip_session"
)

const (
	msgUnauthorized = "Sessão inválida ou expirada."
	msgForbidden    = "Acesso restrito."
	msgInternal     = "Erro interno do servidor."
)

// SessionResolver turns a signed token into a live session.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*model.Session, error)
}

// ResolveSession attaches the caller's session when a valid token is present.
// Requests without a usable token pass through anonymously.
func ResolveSession(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := Token(c)
		if token == "" {
			c.Next()
			return
		}

		sess, err := resolver.ResolveSession(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, domainErrors.ErrUnauthorized) {
				c.Next()
				return
			}
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Failure(msgInternal))
			return
		}

		c.Set(SessionContextKey, sess)
		c.Next()
	}
}

// SessionRequired rejects anonymous requests.
func SessionRequired() gin.HandlerFunc {
	return RequireRole(model.RoleCollaborator)
}

// RequireRole lets through sessions whose role grants at least required.
func RequireRole(required model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := pkgAuth.Authorize(CurrentSession(c), required)
		switch {
		case err == nil:
			c.Next()
		case errors.Is(err, domainErrors.ErrForbidden):
			c.AbortWithStatusJSON(http.StatusForbidden, dto.Failure(msgForbidden))
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Failure(msgUnauthorized))
		}
	}
}

// CurrentSession returns the session attached by ResolveSession or nil.
func CurrentSession(c *gin.Context) *model.Session {
	val, ok := c.Get(SessionContextKey)
	if !ok {
		return nil
	}
	sess, _ := val.(*model.Session)
	return sess
}

// Token extracts the session token from the Authorization header or the cookie.
func Token(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetSessionCookie writes the session cookie and echoes the token in the Authorization header.
func SetSessionCookie(c *gin.Context, token string, ttl time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, int(ttl.Seconds()), "/", "", secure, true)
	c.Header("Authorization", "Bearer "+token)
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", secure, true)
}
