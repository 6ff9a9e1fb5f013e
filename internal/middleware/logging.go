package middleware

import (
	"log/slog"
	"time"

	"github.com/hjoseph777/MoviesLand/internal/auth"

	"github.com/gin-gonic/gin"
)

// RequestLogger returns a gin middleware that logs every request with slog.
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := []any{
			slog.Int("status", c.Writer.Status()),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("ip", c.ClientIP()),
			slog.Duration("latency", time.Since(start)),
		}
		if u, ok := auth.CurrentUser(c); ok {
			fields = append(fields, slog.Int64("user_id", u.ID))
		}

		if len(c.Errors) > 0 {
			fields = append(fields, slog.String("error", c.Errors.String()))
			log.Error("request failed", fields...)
		} else {
			log.Info("request processed", fields...)
		}
	}
}
