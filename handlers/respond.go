package handlers

import (
	"errors"
	"net/http"

	"github.com/contosparadormir/contos/internal/store"
	"github.com/contosparadormir/contos/internal/validation"
	"github.com/contosparadormir/contos/pkg/logger"
	"github.com/contosparadormir/contos/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// failure maps service errors of one operation onto HTTP responses. Store
// and other unexpected errors are logged and answered with a generic
// message so that store details never reach the client.
type failure struct {
	collection string
	op         string
	notFound   string
	internal   string
}

func (f failure) respond(c *gin.Context, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation error", "details": verr.Fields})
	case errors.Is(err, store.ErrNotFound) && f.notFound != "":
		c.JSON(http.StatusNotFound, gin.H{"error": f.notFound})
	default:
		metrics.StoreErrors.WithLabelValues(f.collection, f.op).Inc()
		logger.Errorf("%s %s: %v", f.op, f.collection, err)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": f.internal})
	}
}

// badBody answers a request whose body could not be decoded. Decoder
// details are logged, not returned.
func badBody(c *gin.Context, err error) {
	_ = c.Error(err)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		logger.Warnf("%s %s: body over %d bytes", c.Request.Method, c.Request.URL.Path, tooLarge.Limit)
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
		return
	}
	logger.Debugf("%s %s: invalid body: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
}
