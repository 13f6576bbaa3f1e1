package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/ericogr/agent-arena/internal/constants"
	"github.com/ericogr/agent-arena/internal/dedupe"
	"github.com/ericogr/agent-arena/internal/engine"
	"github.com/ericogr/agent-arena/internal/game"
	"github.com/ericogr/agent-arena/internal/logging"
	"github.com/ericogr/agent-arena/internal/storage"
	"github.com/gocarina/gocsv"
)

const (
	defaultAgentEnergy = 100
	maxAgentEnergy     = 100
	defaultTrait       = 1
	maxLeaderboard     = 100
	defaultLeaderboard = 10
)

// AgentFields carries the client-settable fields of an agent. Nil means
// "not provided". Power is always derived; rarity is only derived when
// breeding and otherwise taken as given.
type AgentFields struct {
	Name      *string
	Owner     *string
	Traits    *game.Traits
	Rarity    *game.Rarity
	Energy    *int
	XP        *int
	Gene      *int
	RareTrait *game.RareTrait
	// ClearRareTrait removes the rare trait on update.
	ClearRareTrait bool
	ForSale        *bool
	Price          *int
}

func (s *Service) validTraits(t game.Traits) bool {
	in := func(v int) bool { return v >= 1 && v <= s.engine.Rules.TraitCap }
	return in(t.Strength) && in(t.Speed) && in(t.Intelligence)
}

func validRarity(r game.Rarity) bool {
	switch r {
	case game.RarityCommon, game.RarityUncommon, game.RarityRare:
		return true
	}
	return false
}

func (s *Service) apply(a *game.Agent, f AgentFields) error {
	if f.Name != nil {
		name := strings.TrimSpace(*f.Name)
		if name == "" {
			return fmt.Errorf("%w: name is required", ErrInvalidInput)
		}
		a.Name = name
	}
	if f.Owner != nil {
		a.Owner = strings.TrimSpace(*f.Owner)
	}
	if f.Traits != nil {
		if !s.validTraits(*f.Traits) {
			return fmt.Errorf("%w: traits must be between 1 and %d", ErrInvalidInput, s.engine.Rules.TraitCap)
		}
		a.Traits = *f.Traits
	}
	if f.Rarity != nil {
		if !validRarity(*f.Rarity) {
			return fmt.Errorf("%w: rarity must be common, uncommon or rare", ErrInvalidInput)
		}
		a.Rarity = *f.Rarity
	}
	for _, v := range []*int{f.Energy, f.XP, f.Gene, f.Price} {
		if v != nil && *v < 0 {
			return fmt.Errorf("%w: numeric fields must not be negative", ErrInvalidInput)
		}
	}
	if f.Energy != nil && *f.Energy > maxAgentEnergy {
		return fmt.Errorf("%w: energy must be between 0 and %d", ErrInvalidInput, maxAgentEnergy)
	}
	if f.Energy != nil {
		a.Energy = *f.Energy
	}
	if f.XP != nil {
		a.XP = *f.XP
	}
	if f.Gene != nil {
		a.Gene = *f.Gene
	}
	if f.ClearRareTrait {
		a.RareTrait = nil
	} else if f.RareTrait != nil {
		rt, ok := engine.LookupRareTrait(f.RareTrait.Name)
		if !ok {
			return fmt.Errorf("%w: unknown rare trait %q", ErrInvalidInput, f.RareTrait.Name)
		}
		a.RareTrait = &rt
	}
	if f.ForSale != nil {
		a.ForSale = *f.ForSale
	}
	if f.Price != nil {
		a.Price = *f.Price
	}
	if !a.ForSale {
		a.Price = 0
	}
	engine.RefreshPower(a)
	a.RefreshDerived()
	return nil
}

func (s *Service) ListAgents() ([]game.Agent, error) {
	return s.repo.ListAgents()
}

func (s *Service) GetAgent(id uint) (*game.Agent, error) {
	a, err := s.repo.GetAgent(id)
	if err != nil {
		return nil, agentErr(id, err)
	}
	return a, nil
}

// CreateAgent stores a new agent. Missing traits default to 1, missing
// energy to 100 and missing rarity to common.
func (s *Service) CreateAgent(f AgentFields) (*game.Agent, error) {
	if f.Name == nil {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	a := &game.Agent{
		Traits: game.Traits{Strength: defaultTrait, Speed: defaultTrait, Intelligence: defaultTrait},
		Energy: defaultAgentEnergy,
		Rarity: game.RarityCommon,
	}
	if err := s.apply(a, f); err != nil {
		return nil, err
	}
	if err := s.repo.CreateAgent(a); err != nil {
		return nil, err
	}
	logging.Info("agent created", logging.Fields{constants.LogFieldAgentID: a.ID, constants.LogFieldRarity: string(a.Rarity)})
	return a, nil
}

// UpdateAgent applies a partial update.
func (s *Service) UpdateAgent(id uint, f AgentFields) (*game.Agent, error) {
	var out game.Agent
	err := s.applyAndPersist([]uint{id}, func(_ storage.Repository, agents []*game.Agent) error {
		if err := s.apply(agents[0], f); err != nil {
			return err
		}
		out = *agents[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	logging.Info("agent updated", logging.Fields{constants.LogFieldAgentID: id})
	return &out, nil
}

func (s *Service) DeleteAgent(id uint) error {
	if err := s.repo.DeleteAgent(id); err != nil {
		return agentErr(id, err)
	}
	logging.Info("agent deleted", logging.Fields{constants.LogFieldAgentID: id})
	return nil
}

// Leaderboard returns the strongest agents. Concurrent identical requests
// share one query.
func (s *Service) Leaderboard(limit int) ([]game.Agent, error) {
	if limit <= 0 {
		limit = defaultLeaderboard
	}
	if limit > maxLeaderboard {
		limit = maxLeaderboard
	}
	v, err, _ := dedupe.LeaderboardGroup.Do(fmt.Sprintf("top:%d", limit), func() (interface{}, error) {
		return s.repo.TopAgents(limit)
	})
	if err != nil {
		return nil, err
	}
	agents := v.([]game.Agent)
	out := make([]game.Agent, len(agents))
	copy(out, agents)
	return out, nil
}

type agentCSVRow struct {
	ID           uint   `csv:"id"`
	Name         string `csv:"name"`
	Owner        string `csv:"owner"`
	Strength     int    `csv:"strength"`
	Speed        int    `csv:"speed"`
	Intelligence int    `csv:"intelligence"`
	Energy       int    `csv:"energy"`
	XP           int    `csv:"xp"`
	Gene         int    `csv:"gene"`
	Rarity       string `csv:"rarity"`
	RareTrait    string `csv:"rare_trait"`
	Power        int    `csv:"power"`
	ForSale      bool   `csv:"for_sale"`
	Price        int    `csv:"price"`
	RewardReady  bool   `csv:"reward_ready"`
}

// ExportCSV writes every agent as CSV with a header row.
func (s *Service) ExportCSV(w io.Writer) error {
	agents, err := s.repo.ListAgents()
	if err != nil {
		return err
	}
	rows := make([]agentCSVRow, 0, len(agents))
	for _, a := range agents {
		row := agentCSVRow{
			ID:           a.ID,
			Name:         a.Name,
			Owner:        a.Owner,
			Strength:     a.Traits.Strength,
			Speed:        a.Traits.Speed,
			Intelligence: a.Traits.Intelligence,
			Energy:       a.Energy,
			XP:           a.XP,
			Gene:         a.Gene,
			Rarity:       string(a.Rarity),
			Power:        engine.Power(a),
			ForSale:      a.ForSale,
			Price:        a.Price,
			RewardReady:  a.RewardReady,
		}
		if a.RareTrait != nil {
			row.RareTrait = a.RareTrait.Name
		}
		rows = append(rows, row)
	}
	return gocsv.Marshal(rows, w)
}
