package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ericogr/agent-arena/internal/constants"
	"github.com/ericogr/agent-arena/internal/engine"
	"github.com/ericogr/agent-arena/internal/game"
	"github.com/ericogr/agent-arena/internal/logging"
	"github.com/ericogr/agent-arena/internal/service"
	"github.com/gin-gonic/gin"
)

// agentResponse adds the freshly computed power next to the stored one.
type agentResponse struct {
	game.Agent
	ComputedPower int `json:"computedPower"`
}

func toResponse(a game.Agent) agentResponse {
	a.RefreshDerived()
	return agentResponse{Agent: a, ComputedPower: engine.Power(a)}
}

func toResponses(agents []game.Agent) []agentResponse {
	out := make([]agentResponse, len(agents))
	for i, a := range agents {
		out[i] = toResponse(a)
	}
	return out
}

// agentRequest is the body of create and update. A supplied power is ignored
// and a rare trait is resolved by name against the catalogue.
type agentRequest struct {
	Name      *string         `json:"name"`
	Owner     *string         `json:"owner"`
	Traits    *game.Traits    `json:"traits"`
	Rarity    *game.Rarity    `json:"rarity"`
	Energy    *int            `json:"energy"`
	XP        *int            `json:"xp"`
	Gene      *int            `json:"gene"`
	RareTrait json.RawMessage `json:"rareTrait"`
	ForSale   *bool           `json:"forSale"`
	Price     *int            `json:"price"`
}

var jsonNull = []byte("null")

func (r agentRequest) fields() (service.AgentFields, error) {
	f := service.AgentFields{
		Name:    r.Name,
		Owner:   r.Owner,
		Traits:  r.Traits,
		Rarity:  r.Rarity,
		Energy:  r.Energy,
		XP:      r.XP,
		Gene:    r.Gene,
		ForSale: r.ForSale,
		Price:   r.Price,
	}
	raw := bytes.TrimSpace(r.RareTrait)
	switch {
	case len(raw) == 0:
	case bytes.Equal(raw, jsonNull):
		f.ClearRareTrait = true
	default:
		var rt game.RareTrait
		if err := json.Unmarshal(raw, &rt); err != nil {
			return f, err
		}
		f.RareTrait = &rt
	}
	return f, nil
}

func (h *Handler) bindAgent(c *gin.Context) (service.AgentFields, bool) {
	var req agentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return service.AgentFields{}, false
	}
	f, err := req.fields()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return service.AgentFields{}, false
	}
	return f, true
}

// ListAgents returns all agents ordered by id.
func (h *Handler) ListAgents(c *gin.Context) {
	agents, err := h.svc.ListAgents()
	if err != nil {
		logging.Error("failed to list agents", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchAgents})
		return
	}
	c.JSON(http.StatusOK, toResponses(agents))
}

// GetAgent returns one agent by id.
func (h *Handler) GetAgent(c *gin.Context) {
	id, ok := agentID(c, "id")
	if !ok {
		return
	}
	a, err := h.svc.GetAgent(id)
	if err != nil {
		writeServiceError(c, err, constants.ErrAgentNotFound)
		return
	}
	c.JSON(http.StatusOK, toResponse(*a))
}

// CreateAgent stores a new agent and answers 201.
func (h *Handler) CreateAgent(c *gin.Context) {
	f, ok := h.bindAgent(c)
	if !ok {
		return
	}
	a, err := h.svc.CreateAgent(f)
	if err != nil {
		writeServiceError(c, err, constants.ErrAgentNotFound)
		return
	}
	c.JSON(http.StatusCreated, toResponse(*a))
}

// UpdateAgent applies a partial update to an agent.
func (h *Handler) UpdateAgent(c *gin.Context) {
	id, ok := agentID(c, "id")
	if !ok {
		return
	}
	f, ok := h.bindAgent(c)
	if !ok {
		return
	}
	a, err := h.svc.UpdateAgent(id, f)
	if err != nil {
		writeServiceError(c, err, constants.ErrAgentNotFound)
		return
	}
	c.JSON(http.StatusOK, toResponse(*a))
}

// DeleteAgent removes an agent and its chat transcript.
func (h *Handler) DeleteAgent(c *gin.Context) {
	id, ok := agentID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteAgent(id); err != nil {
		writeServiceError(c, err, constants.ErrAgentNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Agent deleted"})
}

// Leaderboard returns the strongest agents, limited to 10 by default.
func (h *Handler) Leaderboard(c *gin.Context) {
	limit := 0
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}
	agents, err := h.svc.Leaderboard(limit)
	if err != nil {
		logging.Error("failed to fetch leaderboard", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchAgents})
		return
	}
	c.JSON(http.StatusOK, toResponses(agents))
}

// ExportAgentsCSV streams every agent as a CSV attachment.
func (h *Handler) ExportAgentsCSV(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.svc.ExportCSV(&buf); err != nil {
		logging.Error("failed to export agents", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedExportAgents})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="agents.csv"`)
	c.Data(http.StatusOK, constants.ContentTypeCSV, buf.Bytes())
}
