package service

import (
	"time"

	"github.com/ericogr/agent-arena/internal/constants"
	"github.com/ericogr/agent-arena/internal/engine"
	"github.com/ericogr/agent-arena/internal/events"
	"github.com/ericogr/agent-arena/internal/game"
	"github.com/ericogr/agent-arena/internal/logging"
	"github.com/ericogr/agent-arena/internal/storage"
)

type BattleRequest struct {
	AgentAID uint
	AgentBID uint
	// Luck enables the arena variant.
	Luck bool
}

// Battle resolves a fight, persists both participants and pays coin rewards
// to their owners.
func (s *Service) Battle(req BattleRequest) (*engine.BattleResult, error) {
	start := time.Now()
	if req.AgentAID == 0 || req.AgentBID == 0 || req.AgentAID == req.AgentBID {
		return nil, ErrInvalidInput
	}
	var res engine.BattleResult
	err := s.applyAndPersist([]uint{req.AgentAID, req.AgentBID}, func(tx storage.Repository, agents []*game.Agent) error {
		res = s.engine.Battle(*agents[0], *agents[1], s.rng, engine.BattleOptions{Luck: req.Luck, Now: s.now()})
		*agents[0], *agents[1] = res.A(), res.B()
		if res.CoinsWinner > 0 {
			if err := tx.AddCoins(res.Winner.Owner, res.CoinsWinner); err != nil {
				return err
			}
		}
		if res.CoinsLoser > 0 {
			if err := tx.AddCoins(res.Loser.Owner, res.CoinsLoser); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logging.Info("battle resolved", logging.Fields{
		constants.LogFieldWinnerID:   res.Winner.ID,
		constants.LogFieldLoserID:    res.Loser.ID,
		"luck":                       req.Luck,
		"tie":                        res.Tie,
		constants.LogFieldDurationMS: sinceMS(start),
	})
	s.publish(events.BattleResolved, res)
	return &res, nil
}
