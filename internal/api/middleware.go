package api

import (
	"time"

	"github.com/ericogr/agent-arena/internal/constants"
	"github.com/ericogr/agent-arena/internal/logging"
	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request through the structured logger.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logging.Info("request", logging.Fields{
			constants.LogFieldMethod:     c.Request.Method,
			constants.LogFieldPath:       c.Request.URL.Path,
			constants.LogFieldStatus:     c.Writer.Status(),
			constants.LogFieldDurationMS: time.Since(start).Milliseconds(),
		})
	}
}
