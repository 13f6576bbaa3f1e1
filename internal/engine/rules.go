package engine

// Rules holds the tunable numbers of breeding and battle.
type Rules struct {
	MutationChance  float64
	RareTraitChance float64
	TraitCap        int

	BreedingMinEnergy  int
	BreedingCostMin    int
	BreedingCostMax    int
	BreedingEnergyCost int

	BattleEnergyCost int
	WinnerXP         int
	LoserXP          int
	WinnerCoins      int
	LoserCoins       int
	// LuckMax bounds the arena luck term, drawn from [0,LuckMax).
	LuckMax float64
	// XPBoostPercent is added to the xp gain of an agent with an active boost.
	XPBoostPercent int
}

// DefaultRules returns the stock game balance.
func DefaultRules() Rules {
	return Rules{
		MutationChance:     0.10,
		RareTraitChance:    0.05,
		TraitCap:           10,
		BreedingMinEnergy:  20,
		BreedingCostMin:    1,
		BreedingCostMax:    10,
		BreedingEnergyCost: 10,
		BattleEnergyCost:   10,
		WinnerXP:           10,
		LoserXP:            2,
		WinnerCoins:        5,
		LoserCoins:         1,
		LuckMax:            20,
		XPBoostPercent:     20,
	}
}

// Engine bundles the pure breeding and battle procedures with their rules.
type Engine struct {
	Rules Rules
}

func New(rules Rules) Engine {
	return Engine{Rules: rules}
}

// BreedingCost draws the coin price of one breeding, uniform in
// [BreedingCostMin, BreedingCostMax].
func (e Engine) BreedingCost(rng RandomSource) int {
	lo, hi := e.Rules.BreedingCostMin, e.Rules.BreedingCostMax
	if hi < lo {
		hi = lo
	}
	return lo + rng.Intn(hi-lo+1)
}
