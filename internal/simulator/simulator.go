// Package simulator plays batches of independent hands concurrently and
// aggregates their outcomes.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-sim/internal/evaluator"
	"github.com/lox/holdem-sim/internal/game"
	"github.com/lox/holdem-sim/internal/randutil"
	"github.com/lox/holdem-sim/internal/statistics"
)

// Seat describes one player at every simulated table.
type Seat struct {
	Name   string
	Stack  uint
	Policy func(rng *rand.Rand) game.Policy // nil plays a RandomPolicy
}

// Config holds configuration for running simulations
type Config struct {
	Hands      int
	Workers    int // defaults to GOMAXPROCS
	Seed       int64
	Seats      []Seat
	Decks      int
	SmallBlind uint // zero plays without blinds
	Timeout    time.Duration
	Options    []game.Option
	Logger     *log.Logger
	Clock      quartz.Clock
}

// Report is the outcome of a batch.
type Report struct {
	Stats   *statistics.Statistics
	Hands   []statistics.HandResult
	Elapsed time.Duration
}

// Simulator runs batches of hands
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.Decks <= 0 {
		config.Decks = 1
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	return &Simulator{config: config}
}

// Run plays every hand and returns the aggregated report. A hand that
// gives up counts as aborted; a hand that cannot be set up fails the
// batch.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	if s.config.Hands <= 0 {
		return nil, fmt.Errorf("hands must be positive, got %d", s.config.Hands)
	}
	if len(s.config.Seats) < 2 {
		return nil, fmt.Errorf("need at least 2 seats, got %d", len(s.config.Seats))
	}

	start := s.config.Clock.Now()
	results := make([]statistics.HandResult, s.config.Hands)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)
	for i := range s.config.Hands {
		seed := randutil.Derive(s.config.Seed, i)
		g.Go(func() error {
			res, err := s.playHand(gctx, seed)
			if err != nil {
				return fmt.Errorf("hand %d (seed %d): %w", i+1, seed, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Add(r)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	report := &Report{Stats: stats, Hands: results, Elapsed: s.config.Clock.Since(start)}
	s.config.Logger.Info("Simulation complete", "hands", stats.Hands, "aborted", stats.Aborted, "ties", stats.Ties, "elapsed", report.Elapsed)
	return report, nil
}

// playHand sets up and plays one hand from seed
func (s *Simulator) playHand(ctx context.Context, seed int64) (statistics.HandResult, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	rng := randutil.New(seed)
	players := make([]*game.Player, len(s.config.Seats))
	for i, seat := range s.config.Seats {
		var policy game.Policy
		if seat.Policy != nil {
			policy = seat.Policy(rng)
		} else {
			policy = game.NewRandomPolicy(rng)
		}
		players[i] = game.NewPlayer(i+1, seat.Name, seat.Stack, policy)
	}

	opts := append([]game.Option{
		game.WithRNG(rng),
		game.WithLogger(s.config.Logger),
		game.WithClock(s.config.Clock),
	}, s.config.Options...)
	g, err := game.NewGame(players, opts...)
	if err != nil {
		return statistics.HandResult{}, err
	}
	if err := g.Setup(s.config.Decks, s.config.SmallBlind > 0, s.config.SmallBlind); err != nil {
		return statistics.HandResult{}, err
	}

	result, err := g.Play(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(ctxErr, context.DeadlineExceeded) {
			return statistics.HandResult{}, ctxErr
		}
		s.config.Logger.Debug("Hand aborted", "game", g.ID(), "seed", seed, "err", err)
		hand := statistics.HandResult{Seed: seed, Pot: g.Pot(), Aborted: true}
		var giveUp *game.GiveUpError
		if errors.As(err, &giveUp) {
			hand.Retries = giveUp.Attempts
		}
		return hand, nil
	}

	hand := statistics.HandResult{
		Seed:    seed,
		Pot:     result.Pot,
		Tied:    result.Winner == nil,
		Retries: result.Attempts,
	}
	if result.Winner != nil {
		hand.Winner = result.Winner.Name
		hand.Category = winningCategory(result)
	}
	return hand, nil
}

func winningCategory(result *game.Result) evaluator.Category {
	for _, s := range result.Standings {
		if s.Player == result.Winner {
			return s.Rank.Category
		}
	}
	return evaluator.HighCard
}
