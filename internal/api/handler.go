package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ericogr/agent-arena/internal/constants"
	"github.com/ericogr/agent-arena/internal/logging"
	"github.com/ericogr/agent-arena/internal/service"
	"github.com/gin-gonic/gin"
)

// Handler groups all HTTP handlers of the arena.
type Handler struct {
	svc *service.Service
	// events serves the live event feed; nil disables the route.
	events http.Handler
}

// NewHandler creates a Handler backed by svc. events may be nil.
func NewHandler(svc *service.Service, events http.Handler) *Handler {
	return &Handler{svc: svc, events: events}
}

// writeServiceError maps service errors onto HTTP status codes. Unknown
// errors are logged and reported as a generic 500.
func writeServiceError(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: notFoundMsg})
	case errors.Is(err, service.ErrInsufficientEnergy):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInsufficientEnergy})
	case errors.Is(err, service.ErrInsufficientFunds):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInsufficientFunds})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
	case errors.Is(err, service.ErrNotForSale):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrNotForSale})
	case errors.Is(err, service.ErrOwnAgent):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrOwnAgent})
	case errors.Is(err, service.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrNotOwner})
	case errors.Is(err, service.ErrPaymentNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrPaymentNotFound})
	case errors.Is(err, service.ErrPaymentCompleted):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrPaymentCompleted})
	default:
		logging.Error("request failed", err, logging.Fields{
			constants.LogFieldMethod: c.Request.Method,
			constants.LogFieldPath:   c.FullPath(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInternal})
	}
}

// agentID parses the :id path parameter, answering 400 on failure.
func agentID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidAgentID})
		return 0, false
	}
	return uint(id), true
}
