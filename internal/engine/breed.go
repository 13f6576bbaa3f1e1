package engine

import (
	"github.com/ericogr/agent-arena/internal/agentname"
	"github.com/ericogr/agent-arena/internal/game"
)

const (
	newbornEnergy = 100
)

// inheritTrait averages two parent values, adds an optional +1 mutation and
// caps the result.
func (e Engine) inheritTrait(a, b int, rng RandomSource) int {
	v := (a + b) / 2
	if chance(rng, e.Rules.MutationChance) {
		v++
	}
	return min(v, e.Rules.TraitCap)
}

// rollRareTrait returns a catalogue entry with probability RareTraitChance.
func (e Engine) rollRareTrait(rng RandomSource) *game.RareTrait {
	if !chance(rng, e.Rules.RareTraitChance) {
		return nil
	}
	rt := RareTraitCatalogue[rng.Intn(len(RareTraitCatalogue))]
	return &rt
}

// Breed combines two parents into a new, unsaved offspring. Preconditions
// (energy, cost) are checked by the caller and the parents are not modified.
//
// Random draws happen in a fixed order: one mutation draw per trait
// (strength, speed, intelligence), then the rare trait draw.
func (e Engine) Breed(parentA, parentB game.Agent, rng RandomSource) game.Agent {
	traits := game.Traits{
		Strength:     e.inheritTrait(parentA.Traits.Strength, parentB.Traits.Strength, rng),
		Speed:        e.inheritTrait(parentA.Traits.Speed, parentB.Traits.Speed, rng),
		Intelligence: e.inheritTrait(parentA.Traits.Intelligence, parentB.Traits.Intelligence, rng),
	}
	child := game.Agent{
		Name:      agentname.Offspring(parentA.Name, parentB.Name),
		Owner:     parentA.Owner,
		Traits:    traits,
		Energy:    newbornEnergy,
		Rarity:    ClassifyRarity(traits),
		RareTrait: e.rollRareTrait(rng),
	}
	RefreshPower(&child)
	child.RefreshDerived()
	return child
}

// CanBreed reports whether both parents have the energy breeding requires.
func (e Engine) CanBreed(parentA, parentB game.Agent) bool {
	return parentA.Energy >= e.Rules.BreedingMinEnergy && parentB.Energy >= e.Rules.BreedingMinEnergy
}

// SettleParents applies the parent side effects of a successful breeding:
// one gene each and the breeding energy cost, floored at zero.
func (e Engine) SettleParents(parentA, parentB *game.Agent) {
	for _, p := range []*game.Agent{parentA, parentB} {
		p.Gene++
		p.Energy = max(0, p.Energy-e.Rules.BreedingEnergyCost)
		p.RefreshDerived()
	}
}
