package api

import (
	"net/http"

	"github.com/ericogr/agent-arena/internal/constants"
	"github.com/ericogr/agent-arena/internal/service"
	"github.com/gin-gonic/gin"
)

type breedRequest struct {
	Parent1ID uint   `json:"parent1Id"`
	Parent2ID uint   `json:"parent2Id"`
	UserID    string `json:"userId"`
}

type parentSummary struct {
	ID     uint `json:"id"`
	Gene   int  `json:"gene"`
	Energy int  `json:"energy"`
	Reward bool `json:"rewardReady"`
}

type breedResponse struct {
	agentResponse
	Parents []parentSummary `json:"parents"`
	Cost    int             `json:"cost"`
}

// Breed creates an offspring from two parents.
func (h *Handler) Breed(c *gin.Context) {
	var req breedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if req.Parent1ID == 0 || req.Parent2ID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrParentsRequired})
		return
	}
	res, err := h.svc.Breed(service.BreedRequest{ParentAID: req.Parent1ID, ParentBID: req.Parent2ID, UserID: req.UserID})
	if err != nil {
		writeServiceError(c, err, constants.ErrAgentsNotFound)
		return
	}
	c.JSON(http.StatusOK, breedResponse{
		agentResponse: toResponse(res.Child),
		Parents: []parentSummary{
			{ID: res.ParentA.ID, Gene: res.ParentA.Gene, Energy: res.ParentA.Energy, Reward: res.ParentA.RewardReady},
			{ID: res.ParentB.ID, Gene: res.ParentB.Gene, Energy: res.ParentB.Energy, Reward: res.ParentB.RewardReady},
		},
		Cost: res.Cost,
	})
}

type battleRequest struct {
	AgentA uint `json:"agentA"`
	AgentB uint `json:"agentB"`
	Luck   bool `json:"luck"`
}

// Battle resolves a deterministic fight unless the body asks for luck.
func (h *Handler) Battle(c *gin.Context) {
	h.battle(c, false)
}

// BattleArena always adds the luck term.
func (h *Handler) BattleArena(c *gin.Context) {
	h.battle(c, true)
}

func (h *Handler) battle(c *gin.Context, forceLuck bool) {
	var req battleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if req.AgentA == 0 || req.AgentB == 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrBothAgentsRequired})
		return
	}
	luck := req.Luck || forceLuck
	res, err := h.svc.Battle(service.BattleRequest{AgentAID: req.AgentA, AgentBID: req.AgentB, Luck: luck})
	if err != nil {
		writeServiceError(c, err, constants.ErrAgentsNotFound)
		return
	}
	body := gin.H{
		"winner":       toResponse(res.Winner),
		"loser":        toResponse(res.Loser),
		"agentA":       toResponse(res.A()),
		"agentB":       toResponse(res.B()),
		"powerWinner":  res.PowerWinner,
		"powerLoser":   res.PowerLoser,
		"xpGainWinner": res.XPGainWinner,
		"xpGainLoser":  res.XPGainLoser,
		"tie":          res.Tie,
		"coinRewards":  gin.H{"winner": res.CoinsWinner, "loser": res.CoinsLoser},
	}
	if luck {
		luckA, luckB := res.LuckWinner, res.LuckLoser
		if !res.WinnerIsA {
			luckA, luckB = res.LuckLoser, res.LuckWinner
		}
		body["luck"] = gin.H{"a": luckA, "b": luckB}
	}
	c.JSON(http.StatusOK, body)
}
