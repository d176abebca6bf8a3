package main

import (
	"io"
	"time"

	"github.com/lox/holdem-sim/internal/config"
	"github.com/lox/holdem-sim/internal/simulator"
)

// SimulateCmd plays a batch of hands without interaction
type SimulateCmd struct {
	Hands   int           `short:"n" default:"1000" help:"Number of hands to simulate"`
	Workers int           `short:"w" help:"Concurrent hands (0 = GOMAXPROCS)"`
	Timeout time.Duration `default:"5s" help:"Per-hand timeout"`
	Output  string        `short:"o" type:"path" help:"Also write a JSON summary to this file"`
}

func (c *SimulateCmd) Run(globals *Globals, out io.Writer) error {
	cfg, err := globals.load()
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.LogLevel)
	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	simCfg, err := c.simulatorConfig(cfg)
	if err != nil {
		return err
	}
	simCfg.Logger = logger
	logger.Info("Starting simulation", "hands", simCfg.Hands, "seed", simCfg.Seed, "workers", simCfg.Workers)

	report, err := simulator.New(simCfg).Run(ctx)
	if err != nil {
		return err
	}
	simulator.PrintSummary(out, report)
	if c.Output != "" {
		if err := simulator.WriteSummary(c.Output, report); err != nil {
			return err
		}
		logger.Info("Wrote summary", "path", c.Output)
	}
	return nil
}

// simulatorConfig maps the file config onto a batch. Interactive seats
// cannot be simulated.
func (c *SimulateCmd) simulatorConfig(cfg *config.Config) (simulator.Config, error) {
	seats := make([]simulator.Seat, len(cfg.Players))
	for i, p := range cfg.Players {
		policy, err := automatedPolicy(p)
		if err != nil {
			return simulator.Config{}, err
		}
		seats[i] = simulator.Seat{Name: p.Name, Stack: uint(p.Stack), Policy: policy}
	}

	opts, err := cfg.GameOptions()
	if err != nil {
		return simulator.Config{}, err
	}

	var smallBlind uint
	if cfg.BlindsEnabled() {
		smallBlind = uint(cfg.Game.SmallBlind)
	}
	return simulator.Config{
		Hands:      c.Hands,
		Workers:    c.Workers,
		Seed:       seed(cfg),
		Seats:      seats,
		Decks:      cfg.Game.Decks,
		SmallBlind: smallBlind,
		Timeout:    c.Timeout,
		Options:    opts,
	}, nil
}
