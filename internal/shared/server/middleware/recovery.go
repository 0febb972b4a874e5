package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"resuralph/internal/shared/telemetry"
)

// Recovery converts handler panics into a controlled response. onPanic,
// when set, writes the response; otherwise a plain 500 goes out. The
// interactions route uses onPanic to answer Discord with a user-facing
// message instead of a bare error status.
func Recovery(onPanic func(c *gin.Context)) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				telemetry.Error("http.panic", map[string]any{
					"path":  c.Request.URL.Path,
					"panic": fmt.Sprint(r),
				})
				if onPanic != nil {
					onPanic(c)
					c.Abort()
					return
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			}
		}()
		c.Next()
	}
}
