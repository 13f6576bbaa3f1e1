package engine

import (
	"time"

	"github.com/ericogr/agent-arena/internal/game"
)

// BattleOptions selects the battle variant.
type BattleOptions struct {
	// Luck adds an independent draw from [0,LuckMax) to each side (arena variant).
	Luck bool
	// Now is compared against XPBoostUntil. The zero value disables boosts.
	Now time.Time
}

// BattleResult is the outcome of one battle. Winner and Loser are the
// updated copies the caller persists.
type BattleResult struct {
	Winner game.Agent `json:"winner"`
	Loser  game.Agent `json:"loser"`
	// PowerWinner and PowerLoser are the pre-battle powers that were compared.
	PowerWinner  int     `json:"powerWinner"`
	PowerLoser   int     `json:"powerLoser"`
	LuckWinner   float64 `json:"luckWinner"`
	LuckLoser    float64 `json:"luckLoser"`
	XPGainWinner int     `json:"xpGainWinner"`
	XPGainLoser  int     `json:"xpGainLoser"`
	CoinsWinner  int     `json:"coinsWinner"`
	CoinsLoser   int     `json:"coinsLoser"`
	WinnerIsA    bool    `json:"winnerIsA"`
	Tie          bool    `json:"tie"`
}

// A returns the updated first participant.
func (r BattleResult) A() game.Agent {
	if r.WinnerIsA {
		return r.Winner
	}
	return r.Loser
}

// B returns the updated second participant.
func (r BattleResult) B() game.Agent {
	if r.WinnerIsA {
		return r.Loser
	}
	return r.Winner
}

func (e Engine) xpGain(a *game.Agent, base int, now time.Time) int {
	if a.XPBoostUntil == nil || now.IsZero() || !now.Before(*a.XPBoostUntil) {
		return base
	}
	a.XPBoostUntil = nil
	return base + base*e.Rules.XPBoostPercent/100
}

func (e Engine) coinsFor(a game.Agent, amount int) int {
	if !a.HasOwner() {
		return 0
	}
	return amount
}

// Battle resolves a fight between two agents. Power is recomputed from
// traits and xp; energy is never a precondition.
//
// Random draws: luck for a then b (only with Luck), then one tie-break draw
// when the scores are equal.
func (e Engine) Battle(agentA, agentB game.Agent, rng RandomSource, opts BattleOptions) BattleResult {
	powerA, powerB := Power(agentA), Power(agentB)
	var luckA, luckB float64
	if opts.Luck && e.Rules.LuckMax > 0 {
		luckA = rng.Float64() * e.Rules.LuckMax
		luckB = rng.Float64() * e.Rules.LuckMax
	}
	scoreA, scoreB := float64(powerA)+luckA, float64(powerB)+luckB

	res := BattleResult{}
	switch {
	case scoreA > scoreB:
		res.WinnerIsA = true
	case scoreB > scoreA:
		res.WinnerIsA = false
	default:
		res.Tie = true
		res.WinnerIsA = rng.Intn(2) == 0
	}

	winner, loser := agentA, agentB
	res.PowerWinner, res.PowerLoser = powerA, powerB
	res.LuckWinner, res.LuckLoser = luckA, luckB
	if !res.WinnerIsA {
		winner, loser = agentB, agentA
		res.PowerWinner, res.PowerLoser = powerB, powerA
		res.LuckWinner, res.LuckLoser = luckB, luckA
	}

	res.XPGainWinner = e.xpGain(&winner, e.Rules.WinnerXP, opts.Now)
	res.XPGainLoser = e.xpGain(&loser, e.Rules.LoserXP, opts.Now)
	winner.XP += res.XPGainWinner
	loser.XP += res.XPGainLoser
	winner.Energy = max(0, winner.Energy-e.Rules.BattleEnergyCost)
	loser.Energy = max(0, loser.Energy-e.Rules.BattleEnergyCost)
	RefreshPower(&winner)
	RefreshPower(&loser)
	winner.RefreshDerived()
	loser.RefreshDerived()

	res.CoinsWinner = e.coinsFor(winner, e.Rules.WinnerCoins)
	res.CoinsLoser = e.coinsFor(loser, e.Rules.LoserCoins)
	res.Winner, res.Loser = winner, loser
	return res
}
