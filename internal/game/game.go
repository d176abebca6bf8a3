package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-sim/internal/deck"
	"github.com/lox/holdem-sim/internal/evaluator"
	"github.com/lox/holdem-sim/internal/gameid"
)

// Game drives one hand from blinds to showdown.
type Game struct {
	id      string
	dealer  *Dealer
	players []*Player

	phase      Phase
	community  []deck.Card
	pot        uint
	highestBet uint
	minimumBet uint

	blinds blinds

	// revealed is set once the current phase's community cards are open,
	// so a retried round does not reveal again.
	revealed   bool
	resumeSeat int

	rules            Rules
	maxRoundSteps    int
	maxPhaseAttempts int

	rng    *rand.Rand
	logger *log.Logger
	clock  quartz.Clock
	bus    EventBus

	result *Result
}

type blinds struct {
	specified bool
	enabled   bool
	posted    bool
	small     uint
	smallSeat int
	bigSeat   int
}

// Rules are the table rules layered over the evaluator's.
type Rules struct {
	Evaluator evaluator.Rules
	TieBreak  TieBreakMode
	// AllInMatches lets a player with an empty stack satisfy the
	// all-bets-matched condition.
	AllInMatches bool
}

// Option configures a Game during creation.
type Option func(*gameConfig)

type gameConfig struct {
	rng              *rand.Rand
	logger           *log.Logger
	clock            quartz.Clock
	bus              EventBus
	ids              *gameid.Generator
	rules            Rules
	minimumBet       uint
	maxRoundSteps    int
	maxPhaseAttempts int
}

// DefaultMaxPhaseAttempts bounds Play's retries of a failed phase.
const DefaultMaxPhaseAttempts = 64

// NewGame seats players with a fresh dealer. The small blind seat is drawn
// from the game's RNG here, once per game.
func NewGame(players []*Player, opts ...Option) (*Game, error) {
	if len(players) < 2 {
		return nil, fmt.Errorf("need at least 2 players, got %d", len(players))
	}

	cfg := &gameConfig{maxPhaseAttempts: DefaultMaxPhaseAttempts}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	if cfg.clock == nil {
		cfg.clock = quartz.NewReal()
	}
	if cfg.bus == nil {
		cfg.bus = NewEventBus()
	}
	if cfg.ids == nil {
		cfg.ids = gameid.NewGenerator(nil)
	}
	if cfg.maxRoundSteps <= 0 {
		cfg.maxRoundSteps = 8 * len(players)
	}

	for i, p := range players {
		if p == nil {
			return nil, fmt.Errorf("player %d is nil", i)
		}
		if p.Policy == nil {
			return nil, fmt.Errorf("player %s has no policy", p.Name)
		}
	}

	g := &Game{
		id:               cfg.ids.New(gameid.Game),
		dealer:           NewDealer(cfg.rng, cfg.ids, cfg.logger),
		players:          slices.Clone(players),
		phase:            PhaseInitial,
		minimumBet:       cfg.minimumBet,
		rules:            cfg.rules,
		maxRoundSteps:    cfg.maxRoundSteps,
		maxPhaseAttempts: cfg.maxPhaseAttempts,
		rng:              cfg.rng,
		logger:           cfg.logger,
		clock:            cfg.clock,
		bus:              cfg.bus,
	}
	g.blinds.smallSeat = g.rng.IntN(len(players))
	g.blinds.bigSeat = (g.blinds.smallSeat + 1) % len(players)

	for _, p := range g.players {
		g.dealer.Seat(p)
	}
	return g, nil
}

// WithRNG sets the source for shuffles, seat draws and ids' randomness.
func WithRNG(rng *rand.Rand) Option {
	return func(c *gameConfig) { c.rng = rng }
}

func WithLogger(logger *log.Logger) Option {
	return func(c *gameConfig) { c.logger = logger }
}

// WithClock sets the clock used for event timestamps and hand duration.
func WithClock(clock quartz.Clock) Option {
	return func(c *gameConfig) { c.clock = clock }
}

func WithEventBus(bus EventBus) Option {
	return func(c *gameConfig) { c.bus = bus }
}

func WithIDGenerator(ids *gameid.Generator) Option {
	return func(c *gameConfig) { c.ids = ids }
}

func WithRules(rules Rules) Option {
	return func(c *gameConfig) { c.rules = rules }
}

// WithMinimumBet sets the minimum bet used when blinds are disabled. With
// blinds it is replaced by the big blind.
func WithMinimumBet(amount uint) Option {
	return func(c *gameConfig) { c.minimumBet = amount }
}

// WithMaxRoundSteps caps the turns taken by one betting round attempt.
func WithMaxRoundSteps(n int) Option {
	return func(c *gameConfig) { c.maxRoundSteps = n }
}

// WithMaxPhaseAttempts caps how often Play retries a failed phase.
func WithMaxPhaseAttempts(n int) Option {
	return func(c *gameConfig) { c.maxPhaseAttempts = n }
}

func (g *Game) ID() string         { return g.id }
func (g *Game) Dealer() *Dealer    { return g.dealer }
func (g *Game) Phase() Phase       { return g.phase }
func (g *Game) Pot() uint          { return g.pot }
func (g *Game) HighestBet() uint   { return g.highestBet }
func (g *Game) MinimumBet() uint   { return g.minimumBet }
func (g *Game) EventBus() EventBus { return g.bus }
func (g *Game) Players() []*Player { return slices.Clone(g.players) }
func (g *Game) Result() *Result    { return g.result }
func (g *Game) Community() []deck.Card {
	return slices.Clone(g.community)
}

// BlindSeats returns the small and big blind seat indices.
func (g *Game) BlindSeats() (small, big int) {
	return g.blinds.smallSeat, g.blinds.bigSeat
}

// PlayWithBlinds records whether the hand uses blinds. With blinds the
// small blind is smallBlind and the minimum bet becomes the big blind.
func (g *Game) PlayWithBlinds(enabled bool, smallBlind uint) error {
	if g.blinds.posted {
		return stateError("play with blinds", "blinds already posted")
	}
	if enabled && smallBlind == 0 {
		return validationError("play with blinds", "small blind must be positive")
	}
	g.blinds.specified = true
	g.blinds.enabled = enabled
	if enabled {
		g.blinds.small = smallBlind
		g.minimumBet = 2 * smallBlind
	}
	return nil
}

// PostBlinds takes the small and big blinds through the dealer. It runs
// once per game.
func (g *Game) PostBlinds() error {
	switch {
	case !g.blinds.specified:
		return stateError("post blinds", "blinds mode not specified")
	case !g.blinds.enabled:
		return stateError("post blinds", "blinds not enabled for this game")
	case g.blinds.posted:
		return stateError("post blinds", "blinds already posted for this game")
	}

	sb, bb := g.players[g.blinds.smallSeat], g.players[g.blinds.bigSeat]
	small, big := g.blinds.small, 2*g.blinds.small
	if sb.Stack() < small || bb.Stack() < big {
		return validationError("post blinds", "%s or %s cannot cover the blinds %d/%d", sb.Name, bb.Name, small, big)
	}

	smallPaid, err := g.dealer.RequestFunds(sb, small, PurposeBlinds)
	if err != nil {
		return err
	}
	g.pot += smallPaid

	bigPaid, err := g.dealer.RequestFunds(bb, big, PurposeBlinds)
	if err != nil {
		return err
	}
	g.pot += bigPaid
	g.highestBet = bigPaid
	g.blinds.posted = true

	g.logger.Debug("Blinds posted", "small", sb.Name, "smallAmount", smallPaid, "big", bb.Name, "bigAmount", bigPaid)
	g.bus.Publish(BlindsPostedEvent{
		SmallBlind: sb,
		BigBlind:   bb,
		SmallPaid:  smallPaid,
		BigPaid:    bigPaid,
		Pot:        g.pot,
		timestamp:  g.clock.Now(),
	})
	return nil
}

// GenerateDeck asks the dealer for numDecks packs; false means a deck
// already existed.
func (g *Game) GenerateDeck(numDecks int) bool {
	return g.dealer.GenerateDeck(numDecks)
}

func (g *Game) Shuffle() error {
	return g.dealer.Shuffle()
}

// Ready reports whether the dealer may deal and play: a deck exists, the
// blinds mode is known and, with blinds, they are posted.
func (g *Game) Ready() error {
	switch {
	case !g.dealer.HasDeck():
		return stateError("ready", "dealer has no deck yet, generate a deck first")
	case !g.blinds.specified:
		return stateError("ready", "specify whether the game is played with blinds")
	case g.blinds.enabled && !g.blinds.posted:
		return stateError("ready", "post the blinds before playing")
	}
	return nil
}

// Deal gives every player two hole cards.
func (g *Game) Deal() error {
	if err := g.Ready(); err != nil {
		g.logger.Warn("Unable to deal cards, dealer is not ready", "err", err)
		return err
	}
	if g.phase != PhaseInitial {
		return stateError("deal", "cards are dealt before the pre-flop, game is at %s", g.phase)
	}
	for _, p := range g.players {
		if err := g.dealer.DealTwo(p); err != nil {
			return err
		}
	}
	g.bus.Publish(CardsDealtEvent{
		Players:   g.Players(),
		DeckLeft:  g.dealer.DeckSize(),
		timestamp: g.clock.Now(),
	})
	return nil
}

// Setup runs the standard opening sequence: generate and shuffle the deck,
// configure and post blinds, deal.
func (g *Game) Setup(numDecks int, withBlinds bool, smallBlind uint) error {
	g.GenerateDeck(numDecks)
	if err := g.Shuffle(); err != nil {
		return err
	}
	if err := g.PlayWithBlinds(withBlinds, smallBlind); err != nil {
		return err
	}
	if withBlinds {
		if err := g.PostBlinds(); err != nil {
			return err
		}
	}
	return g.Deal()
}

// Step makes one attempt at the current phase. A failed betting round
// leaves the phase unchanged and returns a *RoundError; the next Step
// resumes at the seat that failed.
func (g *Game) Step(ctx context.Context) error {
	if g.result != nil {
		return stateError("step", "hand is over")
	}
	if err := g.Ready(); err != nil {
		g.logger.Warn("Dealer is not ready", "err", err)
		return err
	}

	switch {
	case g.phase == PhaseInitial:
		for _, p := range g.players {
			if len(p.hole) != 2 {
				return stateError("step", "deal players their cards first, %s holds %d", p.Name, len(p.hole))
			}
		}
		g.advance()
		return nil

	case g.phase.IsBetting():
		if err := g.enterPhase(); err != nil {
			return err
		}
		state, err := g.runRound(ctx)
		if state == RoundOver {
			g.advance()
			return nil
		}
		return &RoundError{Phase: g.phase, State: state, Seat: g.resumeSeat, Err: err}

	case g.phase == PhaseShowdown:
		result, err := g.showdown()
		if err != nil {
			return err
		}
		g.result = result
		g.bus.Publish(ShowdownEvent{Result: result, timestamp: g.clock.Now()})
		return nil
	}
	return stateError("step", "unknown phase %v", g.phase)
}

// enterPhase opens the phase's community cards and clears the round bets,
// once per phase.
func (g *Game) enterPhase() error {
	if g.revealed {
		return nil
	}
	if n := g.phase.Reveals(); n > 0 {
		cards, err := g.dealer.OpenCards(n)
		if err != nil {
			return err
		}
		g.community = append(g.community, cards...)
		for _, p := range g.players {
			p.resetRoundBet()
		}
		g.highestBet = 0
		g.bus.Publish(BoardDealtEvent{
			Phase:     g.phase,
			Cards:     cards,
			Board:     g.Community(),
			timestamp: g.clock.Now(),
		})
	}
	g.revealed = true
	g.resumeSeat = 0
	return nil
}

func (g *Game) advance() {
	from := g.phase
	g.phase = g.phase.Next()
	g.revealed = false
	g.resumeSeat = 0
	g.logger.Debug("Phase changed", "from", from, "to", g.phase, "pot", g.pot)
	g.bus.Publish(PhaseChangeEvent{
		From:           from,
		To:             g.phase,
		CommunityCards: g.Community(),
		Pot:            g.pot,
		timestamp:      g.clock.Now(),
	})
}

// Play steps the hand to showdown, resubmitting failed betting rounds up to
// the configured attempt limit. Errors other than a failed round stop play
// immediately.
func (g *Game) Play(ctx context.Context) (*Result, error) {
	start := g.clock.Now()
	attempts := 0
	for g.result == nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		err := g.Step(ctx)
		if err == nil {
			continue
		}
		var re *RoundError
		if !errors.As(err, &re) {
			return nil, err
		}
		attempts++
		g.logger.Debug("Round did not finish, retrying", "phase", re.Phase, "seat", re.Seat, "attempt", attempts, "err", re.Err)
		if attempts >= g.maxPhaseAttempts {
			return nil, &GiveUpError{Attempts: attempts, Err: err}
		}
	}
	g.result.Duration = g.clock.Since(start)
	g.result.Attempts = attempts
	return g.result, nil
}

// GiveUpError is returned by Play once a phase has failed too often.
type GiveUpError struct {
	Attempts int
	Err      error
}

func (e *GiveUpError) Error() string {
	return fmt.Sprintf("giving up after %d attempts: %v", e.Attempts, e.Err)
}

func (e *GiveUpError) Unwrap() error { return e.Err }

// Status is a snapshot of the game for display.
type Status struct {
	GameID     string
	DealerID   string
	DeckID     string
	DeckSize   int
	Phase      Phase
	Pot        uint
	HighestBet uint
	MinimumBet uint
	Community  []deck.Card
	Players    []PlayerView
	SmallBlind int
	BigBlind   int
}

func (g *Game) Status() Status {
	views := make([]PlayerView, len(g.players))
	for i, p := range g.players {
		views[i] = p.View()
	}
	return Status{
		GameID:     g.id,
		DealerID:   g.dealer.ID(),
		DeckID:     g.dealer.DeckID(),
		DeckSize:   g.dealer.DeckSize(),
		Phase:      g.phase,
		Pot:        g.pot,
		HighestBet: g.highestBet,
		MinimumBet: g.minimumBet,
		Community:  g.Community(),
		Players:    views,
		SmallBlind: g.blinds.smallSeat,
		BigBlind:   g.blinds.bigSeat,
	}
}
