package server

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// requestLogger 记录每个请求的方法、路径、状态与耗时
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		switch {
		case c.Writer.Status() >= 500:
			slog.Error("HTTP error", append(attrs, "error", c.Errors.String())...)
		case c.Writer.Status() >= 400:
			slog.Warn("HTTP rejected", attrs...)
		default:
			slog.Debug("HTTP ok", attrs...)
		}
	}
}
