package api

import (
	"net/http"

	"github.com/ericogr/agent-arena/internal/constants"
	"github.com/ericogr/agent-arena/internal/logging"
	"github.com/ericogr/agent-arena/internal/service"
	"github.com/gin-gonic/gin"
)

type userRequest struct {
	UserID string `json:"userId"`
}

type listRequest struct {
	UserID string `json:"userId"`
	Price  int    `json:"price"`
}

type purchaseRequest struct {
	BuyerID string `json:"buyerId"`
}

// ListForSale puts an owned agent on the marketplace.
func (h *Handler) ListForSale(c *gin.Context) {
	id, ok := agentID(c, "id")
	if !ok {
		return
	}
	var req listRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUserIDRequired})
		return
	}
	a, err := h.svc.ListForSale(id, req.UserID, req.Price)
	if err != nil {
		writeServiceError(c, err, constants.ErrAgentNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "agent": toResponse(*a), constants.JSONKeyMessage: "Agent listed for sale!"})
}

// RemoveFromSale withdraws an owned agent from the marketplace.
func (h *Handler) RemoveFromSale(c *gin.Context) {
	id, ok := agentID(c, "id")
	if !ok {
		return
	}
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUserIDRequired})
		return
	}
	a, err := h.svc.RemoveFromSale(id, req.UserID)
	if err != nil {
		writeServiceError(c, err, constants.ErrAgentNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "agent": toResponse(*a), constants.JSONKeyMessage: "Agent removed from sale"})
}

// Purchase transfers a listed agent to the buyer and pays the seller.
func (h *Handler) Purchase(c *gin.Context) {
	id, ok := agentID(c, "id")
	if !ok {
		return
	}
	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.BuyerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrBuyerIDRequired})
		return
	}
	res, err := h.svc.Purchase(id, req.BuyerID)
	if err != nil {
		writeServiceError(c, err, constants.ErrAgentNotFound)
		return
	}
	buyerCoins, err := h.svc.Balance(req.BuyerID)
	if err != nil {
		logging.Warn("failed to read buyer balance", logging.Fields{constants.LogFieldUserID: req.BuyerID, "error": err.Error()})
	}
	c.JSON(http.StatusOK, gin.H{
		"success":                true,
		"agent":                  toResponse(res.Agent),
		"seller":                 res.Seller,
		"price":                  res.Price,
		"coins":                  buyerCoins,
		constants.JSONKeyMessage: "Agent purchased!",
	})
}

// Marketplace lists agents for sale.
func (h *Handler) Marketplace(c *gin.Context) {
	agents, err := h.svc.Marketplace()
	if err != nil {
		logging.Error("failed to fetch marketplace", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchAgents})
		return
	}
	c.JSON(http.StatusOK, toResponses(agents))
}

// RefillEnergy sells a full energy bar.
func (h *Handler) RefillEnergy(c *gin.Context) {
	h.buy(c, service.ItemRefillEnergy, "Energy refilled to 100!")
}

// XPBoost sells a boost for the next battle.
func (h *Handler) XPBoost(c *gin.Context) {
	h.buy(c, service.ItemXPBoost, "XP boost active for your next battle!")
}

// RareTraitRoll sells a reroll of one trait into the 8 to 10 range.
func (h *Handler) RareTraitRoll(c *gin.Context) {
	h.buy(c, service.ItemRareTraitRoll, "Rare trait rolled!")
}

func (h *Handler) buy(c *gin.Context, item service.ShopItem, message string) {
	id, ok := agentID(c, "id")
	if !ok {
		return
	}
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUserIDRequired})
		return
	}
	res, err := h.svc.Buy(id, req.UserID, item)
	if err != nil {
		writeServiceError(c, err, constants.ErrAgentNotFound)
		return
	}
	body := gin.H{
		"success":                true,
		"agent":                  toResponse(res.Agent),
		"coins":                  res.Balance,
		"cost":                   res.Cost,
		constants.JSONKeyMessage: message,
	}
	if res.Trait != "" {
		body["trait"] = res.Trait
		body["value"] = res.Value
	}
	c.JSON(http.StatusOK, body)
}
