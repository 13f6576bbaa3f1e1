package api

import (
	"net/http"

	"github.com/ericogr/agent-arena/internal/constants"
	"github.com/gin-gonic/gin"
)

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyStatus: "online"})
}

// Root returns a short banner listing the main endpoints.
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		constants.JSONKeyMessage: "Agent Arena API",
		constants.JSONKeyStatus:  "running",
		"endpoints": gin.H{
			"health":  constants.RouteAPIPrefix + constants.RouteHealth,
			"agents":  constants.RouteAgents,
			"battle":  constants.RouteAPIPrefix + constants.RouteBattle,
			"breed":   constants.RouteAPIPrefix + constants.RouteBreed,
			"chat":    constants.RouteAPIPrefix + constants.RouteChat,
			"payment": constants.RouteAPIPrefix + "/payment",
		},
	})
}
