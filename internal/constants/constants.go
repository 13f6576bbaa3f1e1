package constants

// Centralized constants for env keys, routes, JSON keys and log fields.
const (
	// Environment variable keys
	EnvConfigPath   = "AGENT_ARENA_CONFIG"
	EnvDBPath       = "AGENT_ARENA_DB"
	EnvServerAddr   = "AGENT_ARENA_ADDR"
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
	EnvNATSURL      = "NATS_URL"
	EnvLogLevel     = "LOG_LEVEL"

	DefaultConfigPath = "./agent_arena.yaml"

	ContentTypeCSV = "text/csv; charset=utf-8"
)

// Routes used by the backend router
const (
	RouteRoot    = "/"
	RouteAgents  = "/agents"
	RouteAgentID = "/agents/:id"

	RouteAgentRefillEnergy   = "/agents/:id/refill-energy"
	RouteAgentXPBoost        = "/agents/:id/xp-boost"
	RouteAgentRareTraitRoll  = "/agents/:id/rare-trait-roll"
	RouteAgentListForSale    = "/agents/:id/list-for-sale"
	RouteAgentRemoveFromSale = "/agents/:id/remove-from-sale"
	RouteAgentPurchase       = "/agents/:id/purchase"

	RouteAPIPrefix       = "/api"
	RouteHealth          = "/health"
	RouteVersion         = "/version"
	RouteBreed           = "/breed"
	RouteBattle          = "/battle"
	RouteBattleArena     = "/battle/arena"
	RouteLeaderboard     = "/agents/leaderboard"
	RouteAgentsExportCSV = "/agents/export.csv"
	RouteMarketplace     = "/marketplace"
	RouteChat            = "/chat"
	RouteChatHistory     = "/chat/:agentId"
	RouteEventsWS        = "/events/ws"

	RoutePaymentPackages = "/payment/packages"
	RoutePaymentCreate   = "/payment/create"
	RoutePaymentConfirm  = "/payment/confirm"
	RoutePaymentBalance  = "/payment/balance/:userId"
	RoutePaymentHistory  = "/payment/history/:userId"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest      = "Invalid request"
	ErrInvalidAgentID      = "Invalid agent ID"
	ErrAgentNotFound       = "Agent not found"
	ErrAgentsNotFound      = "One or both agents not found"
	ErrBothAgentsRequired  = "Both agentA and agentB are required"
	ErrParentsRequired     = "parent1Id and parent2Id are required"
	ErrUserIDRequired      = "userId is required"
	ErrBuyerIDRequired     = "buyerId is required"
	ErrInsufficientEnergy  = "Insufficient energy"
	ErrInsufficientFunds   = "Insufficient coins"
	ErrNotOwner            = "You can only manage your own agents"
	ErrNotForSale          = "Agent is not for sale"
	ErrOwnAgent            = "You cannot purchase your own agent"
	ErrPaymentNotFound     = "Payment not found"
	ErrPaymentCompleted    = "Payment already confirmed"
	ErrInternal            = "Internal server error"
	ErrFailedFetchAgents   = "Failed to fetch agents"
	ErrFailedExportAgents  = "Failed to export agents"
	ErrFailedFetchBalance  = "Failed to fetch balance"
	ErrFailedFetchHistory  = "Failed to fetch history"
	ErrFailedFetchMessages = "Failed to fetch chat history"
	ErrRouteNotFound       = "Route not found"
)

// Logging field names
const (
	LogFieldAgentID    = "agent_id"
	LogFieldParentAID  = "parent_a_id"
	LogFieldParentBID  = "parent_b_id"
	LogFieldChildID    = "child_id"
	LogFieldWinnerID   = "winner_id"
	LogFieldLoserID    = "loser_id"
	LogFieldUserID     = "user_id"
	LogFieldPaymentID  = "payment_id"
	LogFieldRarity     = "rarity"
	LogFieldCost       = "cost"
	LogFieldDurationMS = "duration_ms"
	LogFieldAddr       = "addr"
	LogFieldMethod     = "method"
	LogFieldPath       = "path"
	LogFieldStatus     = "status"
	LogFieldEventType  = "event_type"
)
