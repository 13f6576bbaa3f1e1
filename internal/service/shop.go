package service

import (
	"strings"

	"github.com/ericogr/agent-arena/internal/constants"
	"github.com/ericogr/agent-arena/internal/game"
	"github.com/ericogr/agent-arena/internal/logging"
	"github.com/ericogr/agent-arena/internal/storage"
)

type ShopItem string

const (
	ItemRefillEnergy  ShopItem = "refill-energy"
	ItemXPBoost       ShopItem = "xp-boost"
	ItemRareTraitRoll ShopItem = "rare-trait-roll"
)

type ShopResult struct {
	Agent   game.Agent `json:"agent"`
	Item    ShopItem   `json:"item"`
	Cost    int        `json:"cost"`
	Balance int        `json:"balance"`
	// Trait and Value are set by a rare trait roll.
	Trait string `json:"trait,omitempty"`
	Value int    `json:"value,omitempty"`
}

func (s *Service) price(item ShopItem) (int, bool) {
	switch item {
	case ItemRefillEnergy:
		return s.settings.Shop.RefillEnergy, true
	case ItemXPBoost:
		return s.settings.Shop.XPBoost, true
	case ItemRareTraitRoll:
		return s.settings.Shop.RareTraitRoll, true
	}
	return 0, false
}

// Buy charges userID for item and applies it to the agent. Any agent can be
// targeted; only the buyer's balance is checked.
func (s *Service) Buy(id uint, userID string, item ShopItem) (*ShopResult, error) {
	userID = strings.TrimSpace(userID)
	cost, ok := s.price(item)
	if userID == "" || !ok {
		return nil, ErrInvalidInput
	}
	res := ShopResult{Item: item, Cost: cost}
	err := s.applyAndPersist([]uint{id}, func(tx storage.Repository, agents []*game.Agent) error {
		if err := charge(tx, userID, cost); err != nil {
			return err
		}
		a := agents[0]
		switch item {
		case ItemRefillEnergy:
			a.Energy = defaultAgentEnergy
		case ItemXPBoost:
			until := s.now().Add(s.settings.Shop.XPBoostFor)
			a.XPBoostUntil = &until
		case ItemRareTraitRoll:
			res.Trait, res.Value = s.engine.RerollTrait(a, s.rng)
		}
		bal, err := tx.GetBalance(userID)
		if err != nil {
			return err
		}
		res.Balance = bal.Coins
		res.Agent = *a
		return nil
	})
	if err != nil {
		return nil, err
	}
	logging.Info("shop item purchased", logging.Fields{
		constants.LogFieldAgentID: id,
		constants.LogFieldUserID:  userID,
		constants.LogFieldCost:    cost,
		"item":                    string(item),
	})
	return &res, nil
}
