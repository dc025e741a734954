package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hotel-booking/domain"
	"hotel-booking/services"
	"hotel-booking/utils"
)

// SessionCookie is the httpOnly cookie carrying the session token.
const SessionCookie = "access_token"

const identityKey = "identity"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*services.Session, error)
}

// TokenFrom returns the session token from the cookie, falling back to a
// Bearer Authorization header.
func TokenFrom(c *gin.Context) string {
	if v, err := c.Cookie(SessionCookie); err == nil && v != "" {
		return v
	}
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// Session resolves the caller's identity once per request. Requests with a
// missing, expired or revoked token continue as anonymous.
func Session(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFrom(c)
		if token == "" {
			c.Next()
			return
		}
		s, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if domain.IsUnauthenticated(err) {
				c.Next()
				return
			}
			log.Printf("[auth] rid=%s session lookup failed: %v", c.GetString(utils.RequestIDKey), err)
			utils.JSONError(c, http.StatusInternalServerError, "could not verify session")
			return
		}
		c.Set(identityKey, s.Identity)
		c.Next()
	}
}

// RequireSession rejects anonymous callers with 401.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IdentityFrom(c).Anonymous() {
			utils.JSONError(c, http.StatusUnauthorized, "you are not authenticated")
			return
		}
		c.Next()
	}
}

func IdentityFrom(c *gin.Context) services.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(services.Identity); ok {
			return id
		}
	}
	return services.Identity{}
}
