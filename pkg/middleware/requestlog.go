package middleware

import (
	"strings"
	"time"

	"github.com/contosparadormir/contos/pkg/logger"
	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per /api request with method, path, status
// and duration.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()
		if !strings.HasPrefix(path, "/api") {
			return
		}
		fields := map[string]interface{}{
			"method":   c.Request.Method,
			"path":     path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}
		logger.WithFields(fields).Info("request")
	}
}
