package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie carrying the session ID.
const SessionCookieName = "session_id"

const contextKeyUser = "current_user"

// LoginPath is where unauthenticated requests to protected routes are sent.
const LoginPath = "/auth/login"

// CurrentUser returns the session user resolved by LoadCurrentUser.
// The second result is false when the request is anonymous.
func CurrentUser(c *gin.Context) (SessionUser, bool) {
	v, ok := c.Get(contextKeyUser)
	if !ok {
		return SessionUser{}, false
	}
	u, ok := v.(SessionUser)
	return u, ok
}

// LoadCurrentUser resolves the session cookie on every request and, when
// valid, stores the session user in the request context. It never aborts:
// public pages still render and templates branch on login state.
func LoadCurrentUser(sessions *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookieName)
		if err == nil && sessionID != "" {
			if u, ok, err := sessions.Get(c.Request.Context(), sessionID); err == nil && ok {
				c.Set(contextKeyUser, u)
			}
		}
		c.Next()
	}
}

// RequireLogin redirects anonymous requests to the login page.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}
