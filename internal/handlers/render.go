package handlers

import (
	"github.com/hjoseph777/MoviesLand/internal/auth"

	"github.com/gin-gonic/gin"
)

// render executes the named template with the given data, always exposing
// the current session user as "user" so every page can branch on login
// state.
func render(c *gin.Context, status int, name string, data gin.H) {
	if u, ok := auth.CurrentUser(c); ok {
		data["user"] = u
	} else {
		data["user"] = nil
	}
	c.HTML(status, name, data)
}
