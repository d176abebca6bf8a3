// Package config loads the simulator's HCL configuration.
package config

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/holdem-sim/internal/evaluator"
	"github.com/lox/holdem-sim/internal/game"
)

// Config represents the complete simulator configuration
type Config struct {
	LogLevel string         `hcl:"log_level,optional"`
	Game     *GameSettings  `hcl:"game,block"`
	Rules    *RulesSettings `hcl:"rules,block"`
	Players  []PlayerConfig `hcl:"player,block"`
}

// GameSettings controls dealing, blinds and the betting loop bounds
type GameSettings struct {
	Decks            int   `hcl:"decks,optional"`
	WithBlinds       *bool `hcl:"with_blinds,optional"`
	SmallBlind       int   `hcl:"small_blind,optional"`
	MinimumBet       int   `hcl:"minimum_bet,optional"`
	Seed             int64 `hcl:"seed,optional"`
	MaxRoundSteps    int   `hcl:"max_round_steps,optional"`
	MaxPhaseAttempts int   `hcl:"max_phase_attempts,optional"`
}

// RulesSettings selects the evaluator and table rule variants
type RulesSettings struct {
	Flush        string `hcl:"flush,optional"`
	Multiplicity string `hcl:"multiplicity,optional"`
	TieBreak     string `hcl:"tie_break,optional"`
	AllInMatches bool   `hcl:"all_in_matches,optional"`
}

// PlayerConfig seats one player
type PlayerConfig struct {
	Name   string `hcl:"name,label"`
	Stack  int    `hcl:"stack,optional"`
	Policy string `hcl:"policy,optional"`
}

const (
	PolicyRandom      = "random"
	PolicyPassive     = "passive"
	PolicyChart       = "chart"
	PolicyInteractive = "interactive"
)

const (
	defaultStack      = 100
	defaultSmallBlind = 5
)

var defaultPlayers = []string{"Alice", "Bob", "Charlie", "Dave", "Eve"}

// Default returns the standard five-player, one-deck game with blinds of
// 5/10.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads filename. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file)
}

// Parse decodes HCL source; filename is only used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file)
}

func decode(file *hcl.File) (*Config, error) {
	var c Config
	if diags := gohcl.DecodeBody(file.Body, nil, &c); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Game == nil {
		c.Game = &GameSettings{}
	}
	if c.Game.Decks == 0 {
		c.Game.Decks = 1
	}
	if c.Game.WithBlinds == nil {
		enabled := true
		c.Game.WithBlinds = &enabled
	}
	if c.Game.SmallBlind == 0 && *c.Game.WithBlinds {
		c.Game.SmallBlind = defaultSmallBlind
	}
	if c.Game.MaxPhaseAttempts == 0 {
		c.Game.MaxPhaseAttempts = game.DefaultMaxPhaseAttempts
	}
	if c.Rules == nil {
		c.Rules = &RulesSettings{}
	}

	if len(c.Players) == 0 {
		for _, name := range defaultPlayers {
			c.Players = append(c.Players, PlayerConfig{Name: name})
		}
	}
	for i := range c.Players {
		if c.Players[i].Stack == 0 {
			c.Players[i].Stack = defaultStack
		}
		if c.Players[i].Policy == "" {
			c.Players[i].Policy = PolicyRandom
		}
	}
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	if c.Game.Decks < 1 {
		return fmt.Errorf("decks must be at least 1, got %d", c.Game.Decks)
	}
	if c.Game.SmallBlind < 0 || c.Game.MinimumBet < 0 {
		return fmt.Errorf("blinds and minimum bet must not be negative")
	}
	if c.Game.MaxRoundSteps < 0 || c.Game.MaxPhaseAttempts < 1 {
		return fmt.Errorf("max_round_steps must be >= 0 and max_phase_attempts >= 1")
	}
	if _, err := c.GameRules(); err != nil {
		return err
	}

	if len(c.Players) < 2 {
		return fmt.Errorf("need at least 2 players, got %d", len(c.Players))
	}
	seen := make(map[string]bool)
	for _, p := range c.Players {
		if seen[p.Name] {
			return fmt.Errorf("duplicate player %q", p.Name)
		}
		seen[p.Name] = true
		if p.Stack < 0 {
			return fmt.Errorf("player %q has a negative stack", p.Name)
		}
		switch p.Policy {
		case PolicyRandom, PolicyPassive, PolicyChart, PolicyInteractive:
		default:
			return fmt.Errorf("player %q has unknown policy %q", p.Name, p.Policy)
		}
	}

	if c.BlindsEnabled() {
		big := 2 * c.Game.SmallBlind
		for _, p := range c.Players {
			if p.Stack < big {
				return fmt.Errorf("player %q cannot cover the big blind of %d", p.Name, big)
			}
		}
	}
	return nil
}

// BlindsEnabled reports whether the hand posts blinds.
func (c *Config) BlindsEnabled() bool {
	return c.Game.WithBlinds == nil || *c.Game.WithBlinds
}

// GameRules converts the rules block into game rules.
func (c *Config) GameRules() (game.Rules, error) {
	flush, err := evaluator.ParseFlushMode(c.Rules.Flush)
	if err != nil {
		return game.Rules{}, err
	}
	multiplicity, err := evaluator.ParseMultiplicityMode(c.Rules.Multiplicity)
	if err != nil {
		return game.Rules{}, err
	}
	tieBreak, err := game.ParseTieBreakMode(c.Rules.TieBreak)
	if err != nil {
		return game.Rules{}, err
	}
	return game.Rules{
		Evaluator:    evaluator.Rules{Flush: flush, Multiplicity: multiplicity},
		TieBreak:     tieBreak,
		AllInMatches: c.Rules.AllInMatches,
	}, nil
}

// GameOptions returns the game options implied by the settings.
func (c *Config) GameOptions() ([]game.Option, error) {
	rules, err := c.GameRules()
	if err != nil {
		return nil, err
	}
	return []game.Option{
		game.WithRules(rules),
		game.WithMinimumBet(uint(c.Game.MinimumBet)),
		game.WithMaxRoundSteps(c.Game.MaxRoundSteps),
		game.WithMaxPhaseAttempts(c.Game.MaxPhaseAttempts),
	}, nil
}
