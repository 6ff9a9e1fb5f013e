package app

import (
	"log/slog"
	"net/http"

	"github.com/hjoseph777/MoviesLand/internal/auth"
	"github.com/hjoseph777/MoviesLand/internal/cache"
	"github.com/hjoseph777/MoviesLand/internal/config"
	"github.com/hjoseph777/MoviesLand/internal/handlers"
	"github.com/hjoseph777/MoviesLand/internal/repo"
	"github.com/hjoseph777/MoviesLand/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, log *slog.Logger, db *pgxpool.Pool, rdb *redis.Client) {
	sessionStore := auth.NewStore(rdb, cfg.Session.TTL.Duration())
	r.Use(auth.LoadCurrentUser(sessionStore))

	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/movies/new") })
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))

	userRepo := repo.NewPGUserRepo(db)
	userSvc := service.NewUserService(userRepo)
	authHandler := handlers.NewAuthHandler(sessionStore, userSvc, log)
	registerAuthRoutes(r, authHandler)

	movieRepo := repo.NewPGMovieRepo(db)
	movieCache := cache.NewMovieCache(rdb, cfg.Redis.CacheTTL.Duration())
	movieSvc := service.NewMovieService(movieRepo, movieCache)
	movieHandler := handlers.NewMovieHandler(movieSvc, log)
	registerMovieRoutes(r, movieHandler)
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": cfg.App.Version})
	}
}

func registerAuthRoutes(r *gin.Engine, h *handlers.AuthHandler) {
	g := r.Group("/auth")
	g.GET("/register", h.ShowRegister)
	g.POST("/register", h.Register)
	g.GET("/login", h.ShowLogin)
	g.POST("/login", h.Login)
	g.GET("/logout", h.Logout)
}

func registerMovieRoutes(r *gin.Engine, h *handlers.MovieHandler) {
	g := r.Group("/movies")
	g.GET("/new", auth.RequireLogin(), h.New)
	g.POST("", auth.RequireLogin(), h.Create)
	g.GET("/:id", h.Show)

	owned := g.Group("/:id", auth.RequireLogin(), h.RequireOwner)
	owned.GET("/edit", h.EditForm)
	owned.POST("/edit", h.Edit)
	owned.POST("/delete", h.Delete)
}
