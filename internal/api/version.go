package api

import (
	"net/http"
	"runtime"

	"github.com/ericogr/agent-arena/internal/version"
	"github.com/gin-gonic/gin"
)

const serviceName = "agent-arena"

// Version reports the build metadata stamped into the binary.
func Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": serviceName,
		"summary": version.Summary(),
		"version": version.Version,
		"commit":  version.Commit,
		"date":    version.Date,
		"dirty":   version.Dirty,
		"go":      runtime.Version(),
	})
}
