package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootRedirectsToNewMovie(t *testing.T) {
	env := newTestEnv(t)
	w := env.get("/")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/movies/new", w.Header().Get("Location"))
}

func TestNewMovieRequiresLogin(t *testing.T) {
	env := newTestEnv(t)

	w := env.get("/movies/new")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login", w.Header().Get("Location"))

	w = env.postForm("/movies", url.Values{
		"name": {"Heat"}, "year": {"1995"}, "genres": {"Action"}, "director": {"Michael Mann"},
	})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login", w.Header().Get("Location"))
	assert.Empty(t, env.movies.movies, "no record may be created without a session")
}

func TestCreateAndShowMovie(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.signup(t, "alice", "alice@example.com", "secret1")

	location := env.createMovie(t, cookie, "Heat", "Action, Drama")
	require.Equal(t, "/movies/1", location)

	// detail page is public: no cookie needed
	w := env.get(location)
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Heat")
	assert.Contains(t, body, "Michael Mann")
	// "Action, Drama" round-trips as trimmed entries
	assert.Contains(t, body, "Action, Drama")

	m := env.movies.movies[1]
	assert.Equal(t, []string{"Action", "Drama"}, m.Genres)
	assert.Equal(t, int64(1), m.OwnerID)
}

func TestCreateMovieValidation(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.signup(t, "alice", "alice@example.com", "secret1")

	w := env.postForm("/movies", url.Values{
		"name":     {"Heat"},
		"year":     {"1500"},
		"genres":   {"Action"},
		"director": {"Michael Mann"},
	}, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Year must be valid")
	// the typed value is preserved for re-display
	assert.Contains(t, body, `value="1500"`)
	assert.Empty(t, env.movies.movies)
}

func TestShowMovieNotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.get("/movies/999")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Movie not found")

	w = env.get("/movies/not-a-number")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOwnershipGate(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signup(t, "alice", "alice@example.com", "secret1")
	other := env.signup(t, "bob", "bob@example.com", "secret1")

	env.createMovie(t, owner, "Heat", "Action")

	edit := url.Values{
		"name": {"Heat 2"}, "year": {"1996"}, "genres": {"Action"}, "director": {"Michael Mann"},
	}

	t.Run("non-owner is forbidden", func(t *testing.T) {
		for _, w := range []*httptest.ResponseRecorder{
			env.get("/movies/1/edit", other),
			env.postForm("/movies/1/edit", edit, other),
			env.postForm("/movies/1/delete", nil, other),
		} {
			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.Contains(t, w.Body.String(), "You are not allowed to modify this movie")
		}
		assert.Equal(t, "Heat", env.movies.movies[1].Name)
	})

	t.Run("anonymous is redirected to login", func(t *testing.T) {
		w := env.get("/movies/1/edit")
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/auth/login", w.Header().Get("Location"))
	})

	t.Run("owner may edit", func(t *testing.T) {
		w := env.get("/movies/1/edit", owner)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `value="Heat"`)

		w = env.postForm("/movies/1/edit", edit, owner)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/movies/1", w.Header().Get("Location"))
		assert.Equal(t, "Heat 2", env.movies.movies[1].Name)
		assert.Equal(t, int64(1), env.movies.movies[1].OwnerID)
	})

	t.Run("gate 404s on missing movie", func(t *testing.T) {
		w := env.postForm("/movies/999/delete", nil, owner)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEditValidationReRendersInput(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signup(t, "alice", "alice@example.com", "secret1")
	env.createMovie(t, owner, "Heat", "Action")

	w := env.postForm("/movies/1/edit", url.Values{
		"name":     {""},
		"year":     {"1996"},
		"genres":   {" Action ,  Thriller "},
		"director": {"Michael Mann"},
	}, owner)
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Movie name is required")
	// the submitted genre string is re-split and re-joined for re-display
	assert.Contains(t, body, `value="Action, Thriller"`)
	// the stored record is untouched
	assert.Equal(t, "Heat", env.movies.movies[1].Name)
}

func TestDeleteMovie(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signup(t, "alice", "alice@example.com", "secret1")
	env.createMovie(t, owner, "Heat", "Action")

	w := env.postForm("/movies/1/delete", nil, owner)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/movies/new", w.Header().Get("Location"))
	assert.Empty(t, env.movies.movies)

	// double delete: the gate reports not-found, no crash
	w = env.postForm("/movies/1/delete", nil, owner)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Movie not found")

	// the detail page is gone too
	w = env.get("/movies/1")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
