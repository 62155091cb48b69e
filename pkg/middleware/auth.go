package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/contosparadormir/contos/internal/admin"
	"github.com/contosparadormir/contos/pkg/logger"
	"github.com/contosparadormir/contos/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// Authorizer is the minimal interface the middleware depends on
type Authorizer interface {
	Authorize(ctx context.Context, cookie string) error
}

// RequireAdmin returns a Gin middleware that lets the request through only
// when the session cookie resolves to an admin session. Rejected requests
// never reach the handler.
func RequireAdmin(a Authorizer, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, _ := c.Cookie(cookieName)
		err := a.Authorize(c.Request.Context(), cookie)
		switch {
		case err == nil:
			c.Next()
		case errors.Is(err, admin.ErrForbidden):
			metrics.GateRejected.Inc()
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		default:
			logger.Errorf("session lookup failed: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Session check failed"})
		}
	}
}
