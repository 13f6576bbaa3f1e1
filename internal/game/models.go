package game

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GeneRewardThreshold is the gene count at which an agent is flagged as
// reward ready. No payout is attached to the flag.
const GeneRewardThreshold = 10

// Traits are the three numeric attributes of an agent, each nominally in [1,10].
type Traits struct {
	Strength     int `json:"strength"`
	Speed        int `json:"speed"`
	Intelligence int `json:"intelligence"`
}

// RareTrait is an optional bonus attached to an agent at breeding time.
type RareTrait struct {
	Name       string `json:"name"`
	PowerBonus int    `json:"powerBonus"`
}

type Rarity string

const (
	RarityCommon   Rarity = "common"
	RarityUncommon Rarity = "uncommon"
	RarityRare     Rarity = "rare"
)

// Agent is the player-controlled game entity. Traits and RareTrait are
// stored as JSON text columns.
type Agent struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"not null"`
	Owner string `json:"owner" gorm:"index"`
	// Traits are serialized into a single column; RareTrait is NULL when absent.
	Traits    Traits     `json:"traits" gorm:"serializer:json;not null"`
	Energy    int        `json:"energy"`
	XP        int        `json:"xp"`
	Gene      int        `json:"gene"`
	Rarity    Rarity     `json:"rarity"`
	RareTrait *RareTrait `json:"rareTrait" gorm:"column:rare_trait;serializer:json"`
	// Power is output only: it is refreshed whenever traits or xp change and
	// never read back as an input to a decision.
	Power   int  `json:"power"`
	ForSale bool `json:"forSale"`
	Price   int  `json:"price"`
	// XPBoostUntil marks a purchased xp boost; it is consumed by the next battle.
	XPBoostUntil *time.Time `json:"xpBoostUntil"`
	RewardReady  bool       `json:"rewardReady" gorm:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (Agent) TableName() string { return "agents" }

// AfterFind populates derived, non-persistent fields.
func (a *Agent) AfterFind(tx *gorm.DB) error {
	a.RefreshDerived()
	return nil
}

// RefreshDerived recomputes fields that are never stored.
func (a *Agent) RefreshDerived() {
	a.RewardReady = a.Gene >= GeneRewardThreshold
}

// HasOwner reports whether a player controls the agent.
func (a *Agent) HasOwner() bool { return a.Owner != "" }

// Balance is a player's coin wallet.
type Balance struct {
	UserID    string    `json:"userId" gorm:"primaryKey"`
	Coins     int       `json:"coins"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Balance) TableName() string { return "user_balances" }

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
)

// Payment records a simulated coin purchase.
type Payment struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	UserID        string          `json:"userId" gorm:"index;not null"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Currency      string          `json:"currency"`
	Status        PaymentStatus   `json:"status"`
	PaymentMethod string          `json:"paymentMethod"`
	TransactionID string          `json:"transactionId"`
	Coins         int             `json:"coins"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one line of an agent's chat transcript.
type ChatMessage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	AgentID   uint      `json:"agentId" gorm:"index;not null"`
	Role      ChatRole  `json:"role" gorm:"not null"`
	Content   string    `json:"content" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (ChatMessage) TableName() string { return "chat_messages" }
