package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"resuralph/internal/shared/telemetry"
)

// Logging emits one structured line per request after it completes.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if id := c.GetString(ContextKeyRequestID); id != "" {
			fields["request_id"] = id
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		if c.Writer.Status() >= 500 {
			telemetry.Error("http.request", fields)
		} else {
			telemetry.Info("http.request", fields)
		}
	}
}
