package service

import (
	"time"

	"github.com/ericogr/agent-arena/internal/constants"
	"github.com/ericogr/agent-arena/internal/events"
	"github.com/ericogr/agent-arena/internal/game"
	"github.com/ericogr/agent-arena/internal/logging"
	"github.com/ericogr/agent-arena/internal/storage"
)

type BreedRequest struct {
	ParentAID uint
	ParentBID uint
	// UserID pays the breeding cost. Empty means free breeding.
	UserID string
}

type BreedResult struct {
	Child   game.Agent
	ParentA game.Agent
	ParentB game.Agent
	Cost    int
}

// Breed checks the preconditions, creates the offspring and settles both
// parents in one transaction.
func (s *Service) Breed(req BreedRequest) (*BreedResult, error) {
	start := time.Now()
	if req.ParentAID == 0 || req.ParentBID == 0 || req.ParentAID == req.ParentBID {
		return nil, ErrInvalidInput
	}
	var res BreedResult
	err := s.applyAndPersist([]uint{req.ParentAID, req.ParentBID}, func(tx storage.Repository, agents []*game.Agent) error {
		a, b := agents[0], agents[1]
		if !s.engine.CanBreed(*a, *b) {
			return ErrInsufficientEnergy
		}
		if req.UserID != "" {
			res.Cost = s.engine.BreedingCost(s.rng)
			if err := charge(tx, req.UserID, res.Cost); err != nil {
				return err
			}
		}
		child := s.engine.Breed(*a, *b, s.rng)
		if err := tx.CreateAgent(&child); err != nil {
			return err
		}
		s.engine.SettleParents(a, b)
		res.Child, res.ParentA, res.ParentB = child, *a, *b
		return nil
	})
	if err != nil {
		return nil, err
	}
	logging.Info("agents bred", logging.Fields{
		constants.LogFieldParentAID:  req.ParentAID,
		constants.LogFieldParentBID:  req.ParentBID,
		constants.LogFieldChildID:    res.Child.ID,
		constants.LogFieldRarity:     string(res.Child.Rarity),
		constants.LogFieldCost:       res.Cost,
		constants.LogFieldDurationMS: sinceMS(start),
	})
	s.publish(events.AgentBred, res.Child)
	return &res, nil
}
