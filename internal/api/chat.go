package api

import (
	"net/http"

	"github.com/ericogr/agent-arena/internal/constants"
	"github.com/ericogr/agent-arena/internal/logging"
	"github.com/gin-gonic/gin"
)

type chatRequest struct {
	AgentID uint   `json:"agentId"`
	Message string `json:"message"`
}

// SendChat answers a message in the agent's voice.
func (h *Handler) SendChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	reply, err := h.svc.SendChat(c.Request.Context(), req.AgentID, req.Message)
	if err != nil {
		writeServiceError(c, err, constants.ErrAgentNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"role": reply.Role, "content": reply.Content})
}

// ChatHistory returns an agent's transcript in ascending order.
func (h *Handler) ChatHistory(c *gin.Context) {
	id, ok := agentID(c, "agentId")
	if !ok {
		return
	}
	msgs, err := h.svc.ChatHistory(id)
	if err != nil {
		logging.Error("failed to fetch chat history", err, logging.Fields{constants.LogFieldAgentID: id})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchMessages})
		return
	}
	c.JSON(http.StatusOK, msgs)
}
