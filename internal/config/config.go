// Package config loads the server configuration from YAML layered over
// embedded defaults, then applies environment overrides.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ericogr/agent-arena/internal/constants"
	"github.com/ericogr/agent-arena/internal/engine"
	"github.com/ericogr/agent-arena/internal/game"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type Config struct {
	Server     ServerConfig   `yaml:"server"`
	Database   DatabaseConfig `yaml:"database"`
	Log        LogConfig      `yaml:"log"`
	Rules      RulesConfig    `yaml:"rules"`
	Shop       ShopConfig     `yaml:"shop"`
	Payments   PaymentsConfig `yaml:"payments"`
	Chat       ChatConfig     `yaml:"chat"`
	Events     EventsConfig   `yaml:"events"`
	SeedAgents []SeedAgent    `yaml:"seed_agents"`

	// OpenAIAPIKey only comes from the environment.
	OpenAIAPIKey string `yaml:"-"`
}

type ServerConfig struct {
	Address     string   `yaml:"address"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type RulesConfig struct {
	BreedingMinEnergy  int     `yaml:"breeding_min_energy"`
	BreedingCostMin    int     `yaml:"breeding_cost_min"`
	BreedingCostMax    int     `yaml:"breeding_cost_max"`
	BreedingEnergyCost int     `yaml:"breeding_energy_cost"`
	MutationChance     float64 `yaml:"mutation_chance"`
	RareTraitChance    float64 `yaml:"rare_trait_chance"`
	TraitCap           int     `yaml:"trait_cap"`
	BattleEnergyCost   int     `yaml:"battle_energy_cost"`
	WinnerXP           int     `yaml:"winner_xp"`
	LoserXP            int     `yaml:"loser_xp"`
	WinnerCoins        int     `yaml:"winner_coins"`
	LoserCoins         int     `yaml:"loser_coins"`
	LuckMax            float64 `yaml:"luck_max"`
	XPBoostPercent     int     `yaml:"xp_boost_percent"`
}

type ShopConfig struct {
	RefillEnergyCost int `yaml:"refill_energy_cost"`
	XPBoostCost      int `yaml:"xp_boost_cost"`
	RareRollCost     int `yaml:"rare_roll_cost"`
	XPBoostHours     int `yaml:"xp_boost_hours"`
}

type CoinPackage struct {
	ID       string          `yaml:"id" json:"id"`
	Coins    int             `yaml:"coins" json:"coins"`
	PriceUSD decimal.Decimal `yaml:"price_usd" json:"priceUsd"`
}

type PaymentsConfig struct {
	Currency     string        `yaml:"currency"`
	CoinPackages []CoinPackage `yaml:"coin_packages"`
}

type ChatConfig struct {
	Model        string  `yaml:"model"`
	MaxTokens    int     `yaml:"max_tokens"`
	Temperature  float32 `yaml:"temperature"`
	HistoryLimit int     `yaml:"history_limit"`
}

type EventsConfig struct {
	NATSURL       string `yaml:"nats_url"`
	SubjectPrefix string `yaml:"subject_prefix"`
}

type SeedAgent struct {
	Name   string      `yaml:"name"`
	Owner  string      `yaml:"owner"`
	Traits game.Traits `yaml:"traits"`
	Energy int         `yaml:"energy"`
}

// Load reads .env (if any), the embedded defaults, the YAML file at path
// (when it exists) and finally the environment overrides.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the config file location from the environment or the default.
func Path() string {
	if p := strings.TrimSpace(os.Getenv(constants.EnvConfigPath)); p != "" {
		return p
	}
	return constants.DefaultConfigPath
}

func (c *Config) applyEnv() {
	if v := os.Getenv(constants.EnvDBPath); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv(constants.EnvServerAddr); v != "" {
		c.Server.Address = v
	}
	if v := os.Getenv(constants.EnvNATSURL); v != "" {
		c.Events.NATSURL = v
	}
	if v := os.Getenv(constants.EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	c.OpenAIAPIKey = os.Getenv(constants.EnvOpenAIAPIKey)
}

// Validate rejects rule sets the engines cannot run with.
func (c *Config) Validate() error {
	r := c.Rules
	if r.BreedingCostMin < 1 || r.BreedingCostMax < r.BreedingCostMin {
		return fmt.Errorf("rules: breeding cost range must satisfy 1 <= min <= max (got %d..%d)", r.BreedingCostMin, r.BreedingCostMax)
	}
	for name, p := range map[string]float64{"mutation_chance": r.MutationChance, "rare_trait_chance": r.RareTraitChance} {
		if p < 0 || p > 1 {
			return fmt.Errorf("rules: %s must be in [0,1] (got %v)", name, p)
		}
	}
	if r.LuckMax < 0 {
		return fmt.Errorf("rules: luck_max must be >= 0 (got %v)", r.LuckMax)
	}
	if r.TraitCap < 1 {
		return fmt.Errorf("rules: trait_cap must be >= 1 (got %d)", r.TraitCap)
	}
	seen := make(map[string]struct{}, len(c.Payments.CoinPackages))
	for _, p := range c.Payments.CoinPackages {
		if p.ID == "" || p.Coins <= 0 || !p.PriceUSD.IsPositive() {
			return fmt.Errorf("payments: invalid coin package %q", p.ID)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("payments: duplicate coin package %q", p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	for _, s := range c.SeedAgents {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("seed_agents: entry missing 'name'")
		}
	}
	return nil
}

// EngineRules converts the rules section for the engines.
func (c *Config) EngineRules() engine.Rules {
	r := c.Rules
	return engine.Rules{
		MutationChance:     r.MutationChance,
		RareTraitChance:    r.RareTraitChance,
		TraitCap:           r.TraitCap,
		BreedingMinEnergy:  r.BreedingMinEnergy,
		BreedingCostMin:    r.BreedingCostMin,
		BreedingCostMax:    r.BreedingCostMax,
		BreedingEnergyCost: r.BreedingEnergyCost,
		BattleEnergyCost:   r.BattleEnergyCost,
		WinnerXP:           r.WinnerXP,
		LoserXP:            r.LoserXP,
		WinnerCoins:        r.WinnerCoins,
		LoserCoins:         r.LoserCoins,
		LuckMax:            r.LuckMax,
		XPBoostPercent:     r.XPBoostPercent,
	}
}

// Seeds converts the starter agents into unsaved game agents.
func (c *Config) Seeds() []game.Agent {
	out := make([]game.Agent, 0, len(c.SeedAgents))
	for _, s := range c.SeedAgents {
		out = append(out, game.Agent{Name: s.Name, Owner: s.Owner, Traits: s.Traits, Energy: s.Energy})
	}
	return out
}
