package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ericogr/agent-arena/internal/config"
	"github.com/ericogr/agent-arena/internal/constants"
	"github.com/ericogr/agent-arena/internal/engine"
	"github.com/ericogr/agent-arena/internal/events"
	"github.com/ericogr/agent-arena/internal/game"
	"github.com/ericogr/agent-arena/internal/logging"
	"github.com/ericogr/agent-arena/internal/storage"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInsufficientEnergy = errors.New("insufficient energy")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotOwner           = errors.New("not the agent owner")
	ErrNotForSale         = errors.New("agent is not for sale")
	ErrOwnAgent           = errors.New("cannot purchase own agent")
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrPaymentCompleted   = errors.New("payment already completed")
)

// Responder produces the assistant side of an agent chat. The bool reports
// whether a language model produced the answer.
type Responder interface {
	Reply(ctx context.Context, a game.Agent, history []game.ChatMessage) (string, bool)
}

type ShopPrices struct {
	RefillEnergy  int
	XPBoost       int
	RareTraitRoll int
	XPBoostFor    time.Duration
}

type Settings struct {
	Shop             ShopPrices
	Currency         string
	CoinPackages     []config.CoinPackage
	ChatHistoryLimit int
}

// SettingsFromConfig extracts the service knobs from the loaded config.
func SettingsFromConfig(c *config.Config) Settings {
	return Settings{
		Shop: ShopPrices{
			RefillEnergy:  c.Shop.RefillEnergyCost,
			XPBoost:       c.Shop.XPBoostCost,
			RareTraitRoll: c.Shop.RareRollCost,
			XPBoostFor:    time.Duration(c.Shop.XPBoostHours) * time.Hour,
		},
		Currency:         c.Payments.Currency,
		CoinPackages:     c.Payments.CoinPackages,
		ChatHistoryLimit: c.Chat.HistoryLimit,
	}
}

// Deps are the collaborators of a Service. Repo, Engine and Chat are
// required; the rest have defaults.
type Deps struct {
	Repo     storage.Repository
	Engine   engine.Engine
	RNG      engine.RandomSource
	Events   events.Publisher
	Chat     Responder
	Settings Settings
	Now      func() time.Time
}

// Service orchestrates storage and the pure engines. Every mutating
// operation runs inside a single storage transaction.
type Service struct {
	repo     storage.Repository
	engine   engine.Engine
	rng      engine.RandomSource
	events   events.Publisher
	chat     Responder
	settings Settings
	now      func() time.Time
}

func New(d Deps) *Service {
	s := &Service{
		repo:     d.Repo,
		engine:   d.Engine,
		rng:      d.RNG,
		events:   d.Events,
		chat:     d.Chat,
		settings: d.Settings,
		now:      d.Now,
	}
	if s.rng == nil {
		s.rng = engine.NewSource()
	}
	if s.events == nil {
		s.events = events.Nop{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Settings returns the service settings.
func (s *Service) Settings() Settings { return s.settings }

func agentErr(id uint, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("agent %d: %w", id, ErrNotFound)
	}
	return err
}

// applyAndPersist loads the agents ids inside one transaction, hands them to
// fn and saves every one of them when fn succeeds. Any error rolls the whole
// operation back, so callers never observe partial state.
func (s *Service) applyAndPersist(ids []uint, fn func(tx storage.Repository, agents []*game.Agent) error) error {
	return s.repo.Transaction(func(tx storage.Repository) error {
		agents := make([]*game.Agent, len(ids))
		for i, id := range ids {
			a, err := tx.GetAgent(id)
			if err != nil {
				return agentErr(id, err)
			}
			agents[i] = a
		}
		if err := fn(tx, agents); err != nil {
			return err
		}
		for _, a := range agents {
			if err := tx.SaveAgent(a); err != nil {
				return err
			}
		}
		return nil
	})
}

// charge debits cost coins from userID, failing when the balance is short.
func charge(tx storage.Repository, userID string, cost int) error {
	if cost <= 0 {
		return nil
	}
	bal, err := tx.GetBalance(userID)
	if err != nil {
		return err
	}
	if bal.Coins < cost {
		return ErrInsufficientFunds
	}
	return tx.AddCoins(userID, -cost)
}

func (s *Service) publish(t events.Type, payload interface{}) {
	if err := s.events.Publish(events.Event{Type: t, Payload: payload, At: s.now().UTC()}); err != nil {
		logging.Warn("failed to publish event", logging.Fields{constants.LogFieldEventType: string(t), "error": err.Error()})
	}
}

func sinceMS(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}
