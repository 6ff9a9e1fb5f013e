package handlers

import (
	"log/slog"
	"net/http"

	"github.com/hjoseph777/MoviesLand/internal/auth"
	"github.com/hjoseph777/MoviesLand/internal/forms"
	"github.com/hjoseph777/MoviesLand/internal/service"

	"github.com/gin-gonic/gin"
)

// sessionMaxAge is the cookie lifetime in seconds.
const sessionMaxAge = 24 * 60 * 60

// AuthHandler handles the registration, login and logout pages.
type AuthHandler struct {
	sessions *auth.Store
	users    *service.UserService
	log      *slog.Logger
}

// NewAuthHandler returns a new AuthHandler.
func NewAuthHandler(sessions *auth.Store, users *service.UserService, log *slog.Logger) *AuthHandler {
	return &AuthHandler{sessions: sessions, users: users, log: log}
}

// ShowRegister renders a blank registration form.
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	render(c, http.StatusOK, "register.tmpl", gin.H{
		"errors":   forms.FieldErrors{},
		"formData": forms.RegisterForm{},
	})
}

// Register validates the submitted form, creates the account and starts a
// session. On validation failure the form re-renders with the field errors
// and the user's original input.
func (h *AuthHandler) Register(c *gin.Context) {
	var f forms.RegisterForm
	if err := c.ShouldBind(&f); err != nil {
		c.String(http.StatusBadRequest, "Bad request")
		return
	}

	user, fe, err := h.users.Register(c.Request.Context(), f)
	if err != nil {
		h.log.Error("register failed", "error", err)
		c.String(http.StatusInternalServerError, "Server error")
		return
	}
	if len(fe) > 0 {
		render(c, http.StatusOK, "register.tmpl", gin.H{"errors": fe, "formData": f})
		return
	}

	h.startSession(c, auth.SessionUser{ID: user.ID, Username: user.Username, Email: user.Email})
}

// ShowLogin renders a blank login form.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	render(c, http.StatusOK, "login.tmpl", gin.H{
		"errors":   forms.FieldErrors{},
		"formData": forms.LoginForm{},
	})
}

// Login authenticates the submitted credentials and starts a session.
func (h *AuthHandler) Login(c *gin.Context) {
	var f forms.LoginForm
	if err := c.ShouldBind(&f); err != nil {
		c.String(http.StatusBadRequest, "Bad request")
		return
	}

	user, fe, err := h.users.Authenticate(c.Request.Context(), f)
	if err != nil {
		h.log.Error("login failed", "error", err)
		c.String(http.StatusInternalServerError, "Server error")
		return
	}
	if len(fe) > 0 {
		render(c, http.StatusOK, "login.tmpl", gin.H{"errors": fe, "formData": f})
		return
	}

	h.startSession(c, auth.SessionUser{ID: user.ID, Username: user.Username, Email: user.Email})
}

// Logout destroys the current session and redirects to the login page.
func (h *AuthHandler) Logout(c *gin.Context) {
	if sessionID, err := c.Cookie(auth.SessionCookieName); err == nil && sessionID != "" {
		if err := h.sessions.Delete(c.Request.Context(), sessionID); err != nil {
			h.log.Error("session destroy failed", "error", err)
			c.String(http.StatusInternalServerError, "Could not log out")
			return
		}
	}
	c.SetCookie(auth.SessionCookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, auth.LoginPath)
}

// startSession creates the server-side session, sets the cookie and sends
// the user to the new-movie form.
func (h *AuthHandler) startSession(c *gin.Context, u auth.SessionUser) {
	sessionID, err := h.sessions.Create(c.Request.Context(), u)
	if err != nil {
		h.log.Error("session create failed", "error", err)
		c.String(http.StatusInternalServerError, "Server error")
		return
	}
	c.SetCookie(auth.SessionCookieName, sessionID, sessionMaxAge, "/", "", false, true) // 24h, httpOnly
	c.Redirect(http.StatusFound, "/movies/new")
}
