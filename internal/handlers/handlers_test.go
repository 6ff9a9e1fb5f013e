package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/hjoseph777/MoviesLand/internal/auth"
	dom "github.com/hjoseph777/MoviesLand/internal/domain"
	"github.com/hjoseph777/MoviesLand/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// In-memory repos standing in for Postgres. Missing rows are reported the
// same way the pgx implementations do.

type memUserRepo struct {
	nextID int64
	users  map[int64]dom.User
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (dom.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return dom.User{}, pgx.ErrNoRows
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (dom.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return dom.User{}, pgx.ErrNoRows
}

func (r *memUserRepo) Create(_ context.Context, username, email, passwordHash string) (dom.User, error) {
	u := dom.User{ID: r.nextID, Username: username, Email: email, PasswordHash: passwordHash}
	r.users[u.ID] = u
	r.nextID++
	return u, nil
}

type memMovieRepo struct {
	nextID int64
	movies map[int64]dom.Movie
}

func (r *memMovieRepo) Create(_ context.Context, m dom.Movie) (dom.Movie, error) {
	m.ID = r.nextID
	r.movies[m.ID] = m
	r.nextID++
	return m, nil
}

func (r *memMovieRepo) GetByID(_ context.Context, id int64) (dom.Movie, error) {
	m, ok := r.movies[id]
	if !ok {
		return dom.Movie{}, pgx.ErrNoRows
	}
	return m, nil
}

func (r *memMovieRepo) Update(_ context.Context, m dom.Movie) (dom.Movie, error) {
	existing, ok := r.movies[m.ID]
	if !ok {
		return dom.Movie{}, pgx.ErrNoRows
	}
	m.OwnerID = existing.OwnerID
	r.movies[m.ID] = m
	return m, nil
}

func (r *memMovieRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.movies[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.movies, id)
	return nil
}

// testEnv wires the real handlers, middleware and templates over the
// in-memory repos and a miniredis-backed session store.
type testEnv struct {
	router *gin.Engine
	users  *memUserRepo
	movies *memMovieRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	env := &testEnv{
		users:  &memUserRepo{nextID: 1, users: map[int64]dom.User{}},
		movies: &memMovieRepo{nextID: 1, movies: map[int64]dom.Movie{}},
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := auth.NewStore(rdb, time.Hour)

	r := gin.New()
	r.LoadHTMLGlob("../../web/templates/*.tmpl")
	r.Use(auth.LoadCurrentUser(sessions))

	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/movies/new") })

	authHandler := NewAuthHandler(sessions, service.NewUserService(env.users), log)
	ag := r.Group("/auth")
	ag.GET("/register", authHandler.ShowRegister)
	ag.POST("/register", authHandler.Register)
	ag.GET("/login", authHandler.ShowLogin)
	ag.POST("/login", authHandler.Login)
	ag.GET("/logout", authHandler.Logout)

	movieHandler := NewMovieHandler(service.NewMovieService(env.movies, nil), log)
	mg := r.Group("/movies")
	mg.GET("/new", auth.RequireLogin(), movieHandler.New)
	mg.POST("", auth.RequireLogin(), movieHandler.Create)
	mg.GET("/:id", movieHandler.Show)
	owned := mg.Group("/:id", auth.RequireLogin(), movieHandler.RequireOwner)
	owned.GET("/edit", movieHandler.EditForm)
	owned.POST("/edit", movieHandler.Edit)
	owned.POST("/delete", movieHandler.Delete)

	env.router = r
	return env
}

// get performs a GET request with the given session cookies.
func (e *testEnv) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// postForm performs a form POST with the given session cookies.
func (e *testEnv) postForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// signup registers a fresh account and returns its session cookie.
func (e *testEnv) signup(t *testing.T, username, email, password string) *http.Cookie {
	t.Helper()
	w := e.postForm("/auth/register", url.Values{
		"username": {username},
		"email":    {email},
		"password": {password},
	})
	require.Equal(t, http.StatusFound, w.Code, "signup should redirect: %s", w.Body.String())
	return sessionCookie(t, w)
}

// createMovie posts a valid movie as the given session and returns its id path.
func (e *testEnv) createMovie(t *testing.T, cookie *http.Cookie, name, genres string) string {
	t.Helper()
	w := e.postForm("/movies", url.Values{
		"name":     {name},
		"year":     {"1995"},
		"genres":   {genres},
		"rating":   {"8.3"},
		"director": {"Michael Mann"},
	}, cookie)
	require.Equal(t, http.StatusFound, w.Code, "create should redirect: %s", w.Body.String())
	return w.Header().Get("Location")
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.SessionCookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}
