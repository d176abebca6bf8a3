package game

import (
	"slices"
	"sync"
	"time"

	"github.com/lox/holdem-sim/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

const (
	EventTypeBlindsPosted EventType = "blinds_posted"
	EventTypeCardsDealt   EventType = "cards_dealt"
	EventTypePhaseChange  EventType = "phase_change"
	EventTypeBoardDealt   EventType = "board_dealt"
	EventTypePlayerAction EventType = "player_action"
	EventTypeRoundEnd     EventType = "round_end"
	EventTypeShowdown     EventType = "showdown"
)

func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a hand
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// BlindsPostedEvent is published once the blinds are in the pot
type BlindsPostedEvent struct {
	SmallBlind *Player
	BigBlind   *Player
	SmallPaid  uint
	BigPaid    uint
	Pot        uint
	timestamp  time.Time
}

func (e BlindsPostedEvent) EventType() EventType { return EventTypeBlindsPosted }
func (e BlindsPostedEvent) Timestamp() time.Time { return e.timestamp }

// CardsDealtEvent is published after every player received hole cards
type CardsDealtEvent struct {
	Players   []*Player
	DeckLeft  int
	timestamp time.Time
}

func (e CardsDealtEvent) EventType() EventType { return EventTypeCardsDealt }
func (e CardsDealtEvent) Timestamp() time.Time { return e.timestamp }

// PhaseChangeEvent is published when the hand moves to a new phase
type PhaseChangeEvent struct {
	From           Phase
	To             Phase
	CommunityCards []deck.Card
	Pot            uint
	timestamp      time.Time
}

func (e PhaseChangeEvent) EventType() EventType { return EventTypePhaseChange }
func (e PhaseChangeEvent) Timestamp() time.Time { return e.timestamp }

// PlayerActionEvent is published for every applied action
type PlayerActionEvent struct {
	Player     *Player
	Phase      Phase
	Decision   Decision
	Moved      uint
	HighestBet uint
	PotAfter   uint
	timestamp  time.Time
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }
func (e PlayerActionEvent) Timestamp() time.Time { return e.timestamp }

// RoundEndEvent is published when a betting round stops for any reason
type RoundEndEvent struct {
	Phase     Phase
	State     RoundState
	Steps     int
	Err       error
	timestamp time.Time
}

func (e RoundEndEvent) EventType() EventType { return EventTypeRoundEnd }
func (e RoundEndEvent) Timestamp() time.Time { return e.timestamp }

// ShowdownEvent carries the hand's result
type ShowdownEvent struct {
	Result    *Result
	timestamp time.Time
}

func (e ShowdownEvent) EventType() EventType { return EventTypeShowdown }
func (e ShowdownEvent) Timestamp() time.Time { return e.timestamp }

// BoardDealtEvent is published when a street's community cards are turned.
type BoardDealtEvent struct {
	Phase     Phase
	Cards     []deck.Card // cards turned for this street
	Board     []deck.Card // whole board so far
	timestamp time.Time
}

func (e BoardDealtEvent) EventType() EventType { return EventTypeBoardDealt }
func (e BoardDealtEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// SubscriberFunc adapts a function to EventSubscriber.
type SubscriberFunc func(event GameEvent)

func (f SubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus. Delivery is synchronous,
// in subscription order.
type SimpleEventBus struct {
	mu          sync.RWMutex
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes the first registration of subscriber. Subscribers
// must be comparable.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = slices.Delete(bus.subscribers, i, i+1)
			return
		}
	}
}

func (bus *SimpleEventBus) Publish(event GameEvent) {
	bus.mu.RLock()
	subs := slices.Clone(bus.subscribers)
	bus.mu.RUnlock()
	for _, subscriber := range subs {
		subscriber.OnEvent(event)
	}
}

// EventRecorder collects every event it receives.
type EventRecorder struct {
	mu     sync.Mutex
	events []GameEvent
}

func (r *EventRecorder) OnEvent(event GameEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns the recorded events in delivery order.
func (r *EventRecorder) Events() []GameEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.events)
}

// OfType returns the recorded events of type t.
func (r *EventRecorder) OfType(t EventType) []GameEvent {
	var out []GameEvent
	for _, e := range r.Events() {
		if e.EventType() == t {
			out = append(out, e)
		}
	}
	return out
}
