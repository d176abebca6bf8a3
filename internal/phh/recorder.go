package phh

import (
	"fmt"
	"slices"
	"sync"

	"github.com/lox/holdem-sim/internal/game"
)

// Recorder builds a HandHistory from a game's events. Create it before
// Setup so it sees the starting stacks and the blinds.
type Recorder struct {
	mu      sync.Mutex
	seats   map[*game.Player]int
	players []*game.Player
	hand    HandHistory
}

// NewRecorder prepares a history for players seated in table order.
func NewRecorder(table string, players []*game.Player, minBet uint) *Recorder {
	r := &Recorder{
		seats:   make(map[*game.Player]int, len(players)),
		players: players,
		hand: HandHistory{
			Variant:           Variant,
			Table:             table,
			SeatCount:         len(players),
			Antes:             make([]int, len(players)),
			BlindsOrStraddles: make([]int, len(players)),
			MinBet:            int(minBet),
			StartingStacks:    make([]int, len(players)),
			Players:           make([]string, len(players)),
			Actions:           []string{},
		},
	}
	for i, p := range players {
		r.seats[p] = i
		r.hand.StartingStacks[i] = int(p.Stack())
		r.hand.Players[i] = p.Name
	}
	return r
}

// OnEvent implements game.EventSubscriber
func (r *Recorder) OnEvent(event game.GameEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch e := event.(type) {
	case game.BlindsPostedEvent:
		if i, ok := r.seats[e.SmallBlind]; ok {
			r.hand.BlindsOrStraddles[i] = int(e.SmallPaid)
		}
		if i, ok := r.seats[e.BigBlind]; ok {
			r.hand.BlindsOrStraddles[i] = int(e.BigPaid)
		}
	case game.CardsDealtEvent:
		for _, p := range e.Players {
			r.add("d dh p%d %s", r.seats[p]+1, Cards(p.HoleCards()))
		}
	case game.BoardDealtEvent:
		r.add("d db %s", Cards(e.Cards))
	case game.PlayerActionEvent:
		r.hand.Actions = append(r.hand.Actions, FormatAction(r.seats[e.Player], e.Decision.Action, e.Player.RoundBet()))
	case game.ShowdownEvent:
		r.showdown(e)
	}
}

func (r *Recorder) add(format string, args ...any) {
	r.hand.Actions = append(r.hand.Actions, fmt.Sprintf(format, args...))
}

func (r *Recorder) showdown(e game.ShowdownEvent) {
	res := e.Result
	for _, s := range res.Standings {
		r.add("p%d sm %s", r.seats[s.Player]+1, Cards(s.Player.HoleCards()))
	}

	r.hand.HandID = res.GameID
	r.hand.FinishingStacks = make([]int, len(r.players))
	r.hand.Winnings = make([]int, len(r.players))
	for i, p := range r.players {
		r.hand.FinishingStacks[i] = int(p.Stack())
	}
	if res.Awarded && res.Winner != nil {
		r.hand.Winnings[r.seats[res.Winner]] = int(res.Pot)
	}

	ts := e.Timestamp()
	r.hand.Time = ts.Format("15:04:05")
	r.hand.Day, r.hand.Month, r.hand.Year = ts.Day(), int(ts.Month()), ts.Year()
}

// History returns a copy of the hand recorded so far.
func (r *Recorder) History() *HandHistory {
	r.mu.Lock()
	defer r.mu.Unlock()
	h := r.hand
	h.Antes = slices.Clone(h.Antes)
	h.BlindsOrStraddles = slices.Clone(h.BlindsOrStraddles)
	h.StartingStacks = slices.Clone(h.StartingStacks)
	h.FinishingStacks = slices.Clone(h.FinishingStacks)
	h.Winnings = slices.Clone(h.Winnings)
	h.Actions = slices.Clone(h.Actions)
	h.Players = slices.Clone(h.Players)
	return &h
}
