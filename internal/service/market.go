package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ericogr/agent-arena/internal/constants"
	"github.com/ericogr/agent-arena/internal/dedupe"
	"github.com/ericogr/agent-arena/internal/engine"
	"github.com/ericogr/agent-arena/internal/events"
	"github.com/ericogr/agent-arena/internal/game"
	"github.com/ericogr/agent-arena/internal/logging"
	"github.com/ericogr/agent-arena/internal/storage"
)

type PurchaseResult struct {
	Agent  game.Agent `json:"agent"`
	Seller string     `json:"seller"`
	Price  int        `json:"price"`
}

// ListForSale puts an owned agent on the marketplace.
func (s *Service) ListForSale(id uint, userID string, price int) (*game.Agent, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" || price <= 0 {
		return nil, ErrInvalidInput
	}
	var out game.Agent
	err := s.applyAndPersist([]uint{id}, func(_ storage.Repository, agents []*game.Agent) error {
		a := agents[0]
		if a.Owner != userID {
			return ErrNotOwner
		}
		a.ForSale = true
		a.Price = price
		out = *a
		return nil
	})
	if err != nil {
		return nil, err
	}
	logging.Info("agent listed for sale", logging.Fields{constants.LogFieldAgentID: id, constants.LogFieldUserID: userID, "price": price})
	return &out, nil
}

// RemoveFromSale withdraws an owned agent from the marketplace.
func (s *Service) RemoveFromSale(id uint, userID string) (*game.Agent, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	var out game.Agent
	err := s.applyAndPersist([]uint{id}, func(_ storage.Repository, agents []*game.Agent) error {
		a := agents[0]
		if a.Owner != userID {
			return ErrNotOwner
		}
		a.ForSale = false
		a.Price = 0
		out = *a
		return nil
	})
	if err != nil {
		return nil, err
	}
	logging.Info("agent removed from sale", logging.Fields{constants.LogFieldAgentID: id, constants.LogFieldUserID: userID})
	return &out, nil
}

// Purchase transfers a listed agent to buyerID and moves the coins from the
// buyer to the seller.
func (s *Service) Purchase(id uint, buyerID string) (*PurchaseResult, error) {
	buyerID = strings.TrimSpace(buyerID)
	if buyerID == "" {
		return nil, ErrInvalidInput
	}
	var res PurchaseResult
	err := s.applyAndPersist([]uint{id}, func(tx storage.Repository, agents []*game.Agent) error {
		a := agents[0]
		if !a.ForSale {
			return ErrNotForSale
		}
		if a.Owner == buyerID {
			return ErrOwnAgent
		}
		if err := charge(tx, buyerID, a.Price); err != nil {
			return err
		}
		if a.HasOwner() && a.Price > 0 {
			if err := tx.AddCoins(a.Owner, a.Price); err != nil {
				return err
			}
		}
		res.Seller, res.Price = a.Owner, a.Price
		a.Owner = buyerID
		a.ForSale = false
		a.Price = 0
		res.Agent = *a
		return nil
	})
	if err != nil {
		return nil, err
	}
	logging.Info("agent purchased", logging.Fields{
		constants.LogFieldAgentID: id,
		constants.LogFieldUserID:  buyerID,
		"seller":                  res.Seller,
		"price":                   res.Price,
	})
	s.publish(events.AgentPurchased, res)
	return &res, nil
}

// Marketplace lists agents for sale, rarest first, then cheapest.
func (s *Service) Marketplace() ([]game.Agent, error) {
	v, err, _ := dedupe.MarketplaceGroup.Do("all", func() (interface{}, error) {
		return s.repo.ListAgentsForSale()
	})
	if err != nil {
		return nil, fmt.Errorf("list marketplace: %w", err)
	}
	listed := v.([]game.Agent)
	out := make([]game.Agent, len(listed))
	copy(out, listed)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := engine.RarityRank(out[i].Rarity), engine.RarityRank(out[j].Rarity)
		if ri != rj {
			return ri < rj
		}
		if out[i].Price != out[j].Price {
			return out[i].Price < out[j].Price
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
