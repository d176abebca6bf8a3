package main

import (
	"context"
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-sim/internal/config"
	"github.com/lox/holdem-sim/internal/display"
	"github.com/lox/holdem-sim/internal/fileutil"
	"github.com/lox/holdem-sim/internal/game"
	"github.com/lox/holdem-sim/internal/phh"
	"github.com/lox/holdem-sim/internal/randutil"
	"github.com/lox/holdem-sim/internal/tui"
)

// PlayCmd plays a single hand
type PlayCmd struct {
	Decks      *int   `help:"Number of decks (overrides config)"`
	SmallBlind *int   `help:"Small blind; the big blind is twice this (overrides config)"`
	NoBlinds   bool   `help:"Play without blinds"`
	Status     bool   `help:"Print the table status after dealing and after the hand"`
	History    string `type:"path" help:"Write the hand history in PHH format to this file"`
}

func (c *PlayCmd) Run(globals *Globals, out io.Writer) error {
	cfg, err := globals.load()
	if err != nil {
		return err
	}
	if err := c.apply(cfg); err != nil {
		return err
	}

	logger := setupLogger(cfg.LogLevel)
	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	s := seed(cfg)
	logger.Info("Starting hand", "seed", s, "players", len(cfg.Players), "decks", cfg.Game.Decks)

	h := &handRun{cfg: cfg, seed: s, logger: logger, out: out, quit: cancel, status: c.Status, history: c.History}
	result, err := h.play(ctx)
	if err != nil {
		return err
	}
	logger.Info("Hand finished", "game", result.GameID, "duration", result.Duration, "attempts", result.Attempts)
	fmt.Fprintf(out, "\nHand took %s\n", result.Duration)
	return nil
}

// apply folds the command's flags into cfg.
func (c *PlayCmd) apply(cfg *config.Config) error {
	if c.Decks != nil {
		cfg.Game.Decks = *c.Decks
	}
	if c.SmallBlind != nil {
		cfg.Game.SmallBlind = *c.SmallBlind
	}
	if c.NoBlinds {
		disabled := false
		cfg.Game.WithBlinds = &disabled
	}
	return cfg.Validate()
}

// handRun plays one configured hand.
type handRun struct {
	cfg     *config.Config
	seed    int64
	logger  *log.Logger
	out     io.Writer
	quit    func()
	status  bool
	history string
}

// play seats the configured players and plays one hand to showdown,
// rendering every event to out.
func (h *handRun) play(ctx context.Context) (*game.Result, error) {
	rng := randutil.New(h.seed)
	players, interactive, err := buildPlayers(h.cfg, rng, h.logger, h.quit)
	if err != nil {
		return nil, err
	}

	opts, err := h.cfg.GameOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, game.WithRNG(rng), game.WithLogger(h.logger))
	g, err := game.NewGame(players, opts...)
	if err != nil {
		return nil, err
	}

	var renderOpts []display.Option
	if interactive {
		renderOpts = append(renderOpts, display.WithHiddenHoleCards())
	}
	renderer := display.NewRenderer(h.out, renderOpts...)
	g.EventBus().Subscribe(renderer)

	var recorder *phh.Recorder
	if h.history != "" {
		recorder = phh.NewRecorder("holdem-sim", players, g.MinimumBet())
		g.EventBus().Subscribe(recorder)
	}

	if err := g.Setup(h.cfg.Game.Decks, h.cfg.BlindsEnabled(), uint(h.cfg.Game.SmallBlind)); err != nil {
		return nil, fmt.Errorf("setup: %w", err)
	}
	if h.status {
		fmt.Fprintln(h.out, renderer.Status(g.Status()))
	}

	result, err := g.Play(ctx)
	if err != nil {
		h.logger.Error("Hand did not finish", "game", g.ID(), "err", err)
		fmt.Fprintln(h.out, renderer.Status(g.Status()))
		return nil, err
	}
	if h.status {
		fmt.Fprintln(h.out, renderer.Status(g.Status()))
	}
	if recorder != nil {
		data, err := phh.Marshal(recorder.History())
		if err != nil {
			return nil, err
		}
		if err := fileutil.WriteFile(h.history, data, 0o644); err != nil {
			return nil, err
		}
		h.logger.Info("Wrote hand history", "path", h.history)
	}
	return result, nil
}

// buildPlayers creates one player per config entry. It reports whether any
// seat is interactive.
func buildPlayers(cfg *config.Config, rng *rand.Rand, logger *log.Logger, quit func()) ([]*game.Player, bool, error) {
	players := make([]*game.Player, len(cfg.Players))
	interactive := false
	for i, pc := range cfg.Players {
		var policy game.Policy
		if pc.Policy == config.PolicyInteractive {
			policy = tui.NewPolicy(tui.WithQuitHandler(quit), tui.WithLogger(logger))
			interactive = true
		} else {
			newPolicy, err := automatedPolicy(pc)
			if err != nil {
				return nil, false, err
			}
			policy = newPolicy(rng)
		}
		players[i] = game.NewPlayer(i+1, pc.Name, uint(pc.Stack), policy)
	}
	return players, interactive, nil
}

// automatedPolicy maps a configured policy name to a constructor. Interactive
// seats are not automated.
func automatedPolicy(pc config.PlayerConfig) (func(*rand.Rand) game.Policy, error) {
	switch pc.Policy {
	case config.PolicyRandom:
		return func(rng *rand.Rand) game.Policy { return game.NewRandomPolicy(rng) }, nil
	case config.PolicyPassive:
		return func(*rand.Rand) game.Policy { return game.PassivePolicy{} }, nil
	case config.PolicyChart:
		return func(*rand.Rand) game.Policy { return game.NewChartPolicy() }, nil
	case config.PolicyInteractive:
		return nil, fmt.Errorf("player %q is interactive and cannot be automated", pc.Name)
	default:
		return nil, fmt.Errorf("player %q has unknown policy %q", pc.Name, pc.Policy)
	}
}
