package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/hjoseph777/MoviesLand/internal/auth"
	dom "github.com/hjoseph777/MoviesLand/internal/domain"
	"github.com/hjoseph777/MoviesLand/internal/forms"
	"github.com/hjoseph777/MoviesLand/internal/service"

	"github.com/gin-gonic/gin"
)

const contextKeyMovie = "movie"

// MovieHandler handles the movie pages.
type MovieHandler struct {
	svc *service.MovieService
	log *slog.Logger
}

// NewMovieHandler returns a new MovieHandler.
func NewMovieHandler(svc *service.MovieService, log *slog.Logger) *MovieHandler {
	return &MovieHandler{svc: svc, log: log}
}

// movieFormView is the edit form's view of a movie: every field a string,
// exactly as it appears in the inputs.
type movieFormView struct {
	ID          int64
	Name        string
	Description string
	Year        string
	Genres      string
	Rating      string
	Director    string
}

func formViewOf(m dom.Movie) movieFormView {
	v := movieFormView{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Year:        strconv.Itoa(m.Year),
		Genres:      forms.JoinGenres(m.Genres),
		Director:    m.Director,
	}
	if m.Rating != nil {
		v.Rating = strconv.FormatFloat(*m.Rating, 'f', -1, 64)
	}
	return v
}

// New renders a blank movie form.
func (h *MovieHandler) New(c *gin.Context) {
	render(c, http.StatusOK, "movie_new.tmpl", gin.H{
		"errors":   forms.FieldErrors{},
		"formData": forms.MovieForm{},
	})
}

// Create persists a new movie owned by the session user and redirects to
// its detail page. On validation failure the blank form re-renders with
// the field errors and the original input.
func (h *MovieHandler) Create(c *gin.Context) {
	var f forms.MovieForm
	if err := c.ShouldBind(&f); err != nil {
		c.String(http.StatusBadRequest, "Bad request")
		return
	}
	user, _ := auth.CurrentUser(c)

	m, fe, err := h.svc.Create(c.Request.Context(), user.ID, f)
	if err != nil {
		h.log.Error("movie create failed", "error", err)
		c.String(http.StatusInternalServerError, "Server error")
		return
	}
	if len(fe) > 0 {
		render(c, http.StatusOK, "movie_new.tmpl", gin.H{"errors": fe, "formData": f})
		return
	}

	c.Redirect(http.StatusFound, "/movies/"+strconv.FormatInt(m.ID, 10))
}

// Show renders the movie detail page. No auth gate: anyone may view.
func (h *MovieHandler) Show(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusNotFound, "Movie not found")
		return
	}

	m, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if err == service.ErrNotFound {
			c.String(http.StatusNotFound, "Movie not found")
			return
		}
		h.log.Error("movie fetch failed", "error", err, "id", id)
		c.String(http.StatusInternalServerError, "Server error")
		return
	}

	render(c, http.StatusOK, "movie_detail.tmpl", gin.H{"movie": m})
}

// RequireOwner gates edit and delete: it fetches the target movie, 404s if
// absent and 403s unless the session user owns it. The fetched record is
// stored in the request context so the gated handler need not refetch.
func (h *MovieHandler) RequireOwner(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusNotFound, "Movie not found")
		c.Abort()
		return
	}

	m, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if err == service.ErrNotFound {
			c.String(http.StatusNotFound, "Movie not found")
		} else {
			h.log.Error("movie fetch failed", "error", err, "id", id)
			c.String(http.StatusInternalServerError, "Server error")
		}
		c.Abort()
		return
	}

	user, ok := auth.CurrentUser(c)
	if !ok || m.OwnerID != user.ID {
		c.String(http.StatusForbidden, "You are not allowed to modify this movie")
		c.Abort()
		return
	}

	c.Set(contextKeyMovie, m)
	c.Next()
}

// EditForm renders the edit form pre-filled with the gated movie.
func (h *MovieHandler) EditForm(c *gin.Context) {
	m := gatedMovie(c)
	render(c, http.StatusOK, "movie_edit.tmpl", gin.H{
		"errors": forms.FieldErrors{},
		"movie":  formViewOf(m),
	})
}

// Edit overwrites the mutable fields of the gated movie. On validation
// failure the edit form re-renders showing exactly what the user typed.
func (h *MovieHandler) Edit(c *gin.Context) {
	m := gatedMovie(c)

	var f forms.MovieForm
	if err := c.ShouldBind(&f); err != nil {
		c.String(http.StatusBadRequest, "Bad request")
		return
	}

	updated, fe, err := h.svc.Update(c.Request.Context(), m.ID, f)
	if err != nil {
		if err == service.ErrNotFound {
			c.String(http.StatusNotFound, "Movie not found")
			return
		}
		h.log.Error("movie update failed", "error", err, "id", m.ID)
		c.String(http.StatusInternalServerError, "Server error")
		return
	}
	if len(fe) > 0 {
		render(c, http.StatusOK, "movie_edit.tmpl", gin.H{
			"errors": fe,
			"movie": movieFormView{
				ID:          m.ID,
				Name:        f.Name,
				Description: f.Description,
				Year:        f.Year,
				Genres:      forms.JoinGenres(forms.SplitGenres(f.Genres)),
				Rating:      f.Rating,
				Director:    f.Director,
			},
		})
		return
	}

	c.Redirect(http.StatusFound, "/movies/"+strconv.FormatInt(updated.ID, 10))
}

// Delete removes the gated movie and returns to the new-movie form.
func (h *MovieHandler) Delete(c *gin.Context) {
	m := gatedMovie(c)

	if err := h.svc.Delete(c.Request.Context(), m.ID); err != nil {
		if err == service.ErrNotFound {
			c.String(http.StatusNotFound, "Movie not found")
			return
		}
		h.log.Error("movie delete failed", "error", err, "id", m.ID)
		c.String(http.StatusInternalServerError, "Server error")
		return
	}

	c.Redirect(http.StatusFound, "/movies/new")
}

// gatedMovie returns the movie stored by RequireOwner.
func gatedMovie(c *gin.Context) dom.Movie {
	m, _ := c.MustGet(contextKeyMovie).(dom.Movie)
	return m
}
