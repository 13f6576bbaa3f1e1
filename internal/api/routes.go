package api

import (
	"net/http"

	"github.com/ericogr/agent-arena/internal/constants"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with every route registered. In release
// mode requests are logged through the structured logger.
func NewRouter(h *Handler) *gin.Engine {
	var router *gin.Engine
	if gin.Mode() == gin.DebugMode {
		router = gin.Default()
	} else {
		router = gin.New()
		router.Use(gin.Recovery(), RequestLogger())
	}
	h.Register(router)
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrRouteNotFound})
	})
	return router
}

// Register attaches every handler to router.
func (h *Handler) Register(router gin.IRouter) {
	router.GET(constants.RouteRoot, h.Root)

	agents := router.Group("")
	{
		agents.GET(constants.RouteAgents, h.ListAgents)
		agents.POST(constants.RouteAgents, h.CreateAgent)
		agents.GET(constants.RouteAgentID, h.GetAgent)
		agents.PUT(constants.RouteAgentID, h.UpdateAgent)
		agents.DELETE(constants.RouteAgentID, h.DeleteAgent)

		agents.POST(constants.RouteAgentRefillEnergy, h.RefillEnergy)
		agents.POST(constants.RouteAgentXPBoost, h.XPBoost)
		agents.POST(constants.RouteAgentRareTraitRoll, h.RareTraitRoll)
		agents.POST(constants.RouteAgentListForSale, h.ListForSale)
		agents.POST(constants.RouteAgentRemoveFromSale, h.RemoveFromSale)
		agents.POST(constants.RouteAgentPurchase, h.Purchase)
	}

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteHealth, h.Health)
		apiRoutes.GET(constants.RouteVersion, Version)

		apiRoutes.POST(constants.RouteBreed, h.Breed)
		apiRoutes.POST(constants.RouteBattle, h.Battle)
		apiRoutes.POST(constants.RouteBattleArena, h.BattleArena)

		apiRoutes.GET(constants.RouteLeaderboard, h.Leaderboard)
		apiRoutes.GET(constants.RouteAgentsExportCSV, h.ExportAgentsCSV)
		apiRoutes.GET(constants.RouteMarketplace, h.Marketplace)

		apiRoutes.POST(constants.RouteChat, h.SendChat)
		apiRoutes.GET(constants.RouteChatHistory, h.ChatHistory)

		apiRoutes.GET(constants.RoutePaymentPackages, h.CoinPackages)
		apiRoutes.POST(constants.RoutePaymentCreate, h.CreatePayment)
		apiRoutes.POST(constants.RoutePaymentConfirm, h.ConfirmPayment)
		apiRoutes.GET(constants.RoutePaymentBalance, h.Balance)
		apiRoutes.GET(constants.RoutePaymentHistory, h.PaymentHistory)

		if h.events != nil {
			apiRoutes.GET(constants.RouteEventsWS, gin.WrapH(h.events))
		}
	}
}
