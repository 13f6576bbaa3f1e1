package engine

import (
	"strings"

	"github.com/ericogr/agent-arena/internal/game"
)

// RareTraitCatalogue lists every rare trait that breeding can roll.
var RareTraitCatalogue = []game.RareTrait{
	{Name: "winged", PowerBonus: 5},
	{Name: "telepathic", PowerBonus: 7},
	{Name: "invisible", PowerBonus: 10},
}

// LookupRareTrait returns the catalogue entry named name, case-insensitively.
func LookupRareTrait(name string) (game.RareTrait, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, rt := range RareTraitCatalogue {
		if rt.Name == name {
			return rt, true
		}
	}
	return game.RareTrait{}, false
}

const maxRarityWeight = 12

// BasePower is the trait-only part of the power formula.
func BasePower(t game.Traits) int {
	return 2*t.Strength + 2*t.Speed + 3*t.Intelligence
}

// Power always recomputes from traits, xp and rare trait. The stored
// Agent.Power is ignored because it goes stale after xp or trait changes.
func Power(a game.Agent) int {
	p := BasePower(a.Traits) + a.XP/5
	if a.RareTrait != nil {
		p += a.RareTrait.PowerBonus
	}
	return p
}

// TraitWeight buckets a single trait value for rarity scoring.
func TraitWeight(v int) int {
	switch {
	case v <= 3:
		return 1
	case v <= 6:
		return 2
	default:
		return 4
	}
}

// RarityPercent is the summed trait weight as a percentage of the maximum.
func RarityPercent(t game.Traits) float64 {
	total := TraitWeight(t.Strength) + TraitWeight(t.Speed) + TraitWeight(t.Intelligence)
	return float64(total) / maxRarityWeight * 100
}

// ClassifyRarity maps traits onto a rarity tier.
func ClassifyRarity(t game.Traits) game.Rarity {
	pct := RarityPercent(t)
	switch {
	case pct >= 75:
		return game.RarityRare
	case pct >= 50:
		return game.RarityUncommon
	default:
		return game.RarityCommon
	}
}

// RarityRank orders tiers for sorting, rare first.
func RarityRank(r game.Rarity) int {
	switch r {
	case game.RarityRare:
		return 0
	case game.RarityUncommon:
		return 1
	default:
		return 2
	}
}

// RefreshPower stores the freshly computed power on the agent.
func RefreshPower(a *game.Agent) {
	a.Power = Power(*a)
}
