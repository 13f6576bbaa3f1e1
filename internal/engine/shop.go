package engine

import "github.com/ericogr/agent-arena/internal/game"

const (
	rerollFloor = 8
	rerollSpan  = 3
)

// RerollTrait sets one uniformly chosen trait to a value in [8,10] and
// refreshes rarity and power. It returns the trait name and its new value.
func (e Engine) RerollTrait(a *game.Agent, rng RandomSource) (string, int) {
	value := min(rerollFloor+rng.Intn(rerollSpan), e.Rules.TraitCap)
	var name string
	switch rng.Intn(3) {
	case 0:
		name = "strength"
		a.Traits.Strength = value
	case 1:
		name = "speed"
		a.Traits.Speed = value
	default:
		name = "intelligence"
		a.Traits.Intelligence = value
	}
	a.Rarity = ClassifyRarity(a.Traits)
	RefreshPower(a)
	return name, value
}
