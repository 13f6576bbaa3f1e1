package storage

import (
	"errors"

	"github.com/ericogr/agent-arena/internal/game"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("record not found")

type Repository interface {
	ListAgents() ([]game.Agent, error)
	// ListAgentsForSale returns agents flagged for sale in id order; callers sort.
	ListAgentsForSale() ([]game.Agent, error)
	// TopAgents returns up to limit agents ordered by power desc, then xp desc.
	TopAgents(limit int) ([]game.Agent, error)
	GetAgent(id uint) (*game.Agent, error)
	CreateAgent(a *game.Agent) error
	SaveAgent(a *game.Agent) error
	DeleteAgent(id uint) error

	// GetBalance returns a zero balance for unknown users.
	GetBalance(userID string) (*game.Balance, error)
	// AddCoins adds delta (which may be negative) and creates the row when missing.
	AddCoins(userID string, delta int) error

	CreatePayment(p *game.Payment) error
	GetPayment(id uint) (*game.Payment, error)
	SavePayment(p *game.Payment) error
	ListPayments(userID string) ([]game.Payment, error)

	AppendChatMessage(m *game.ChatMessage) error
	// ChatHistory returns the latest limit messages in ascending order. limit <= 0 means all.
	ChatHistory(agentID uint, limit int) ([]game.ChatMessage, error)

	// Transaction runs fn against a repository bound to a single database
	// transaction. Any error returned by fn rolls everything back.
	Transaction(fn func(Repository) error) error
}
