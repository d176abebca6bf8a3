package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingSubscriber struct {
	count int
}

func (c *countingSubscriber) OnEvent(GameEvent) { c.count++ }

func TestEventBusSubscribeUnsubscribe(t *testing.T) {
	t.Parallel()

	bus := NewEventBus()
	a, b := &countingSubscriber{}, &countingSubscriber{}
	bus.Subscribe(a)
	bus.Subscribe(b)

	bus.Publish(RoundEndEvent{Phase: PhaseFlop, State: RoundOver})
	assert.Equal(t, 1, a.count)
	assert.Equal(t, 1, b.count)

	bus.Unsubscribe(a)
	bus.Publish(RoundEndEvent{Phase: PhaseTurn, State: RoundOver})
	assert.Equal(t, 1, a.count)
	assert.Equal(t, 2, b.count)
}

func TestEventRecorderOfType(t *testing.T) {
	t.Parallel()

	rec := &EventRecorder{}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rec.OnEvent(PhaseChangeEvent{From: PhaseInitial, To: PhasePreFlop, timestamp: now})
	rec.OnEvent(RoundEndEvent{Phase: PhasePreFlop})
	rec.OnEvent(PhaseChangeEvent{From: PhasePreFlop, To: PhaseFlop})

	assert.Len(t, rec.Events(), 3)
	changes := rec.OfType(EventTypePhaseChange)
	assert.Len(t, changes, 2)
	assert.Equal(t, now, changes[0].Timestamp())
}

func TestPhaseSequence(t *testing.T) {
	t.Parallel()

	want := []Phase{PhasePreFlop, PhaseFlop, PhaseTurn, PhaseRiver, PhaseShowdown, PhaseShowdown}
	p := PhaseInitial
	for _, next := range want {
		p = p.Next()
		assert.Equal(t, next, p)
	}

	assert.Equal(t, 3, PhaseFlop.Reveals())
	assert.Equal(t, 1, PhaseTurn.Reveals())
	assert.Equal(t, 1, PhaseRiver.Reveals())
	assert.Equal(t, 0, PhasePreFlop.Reveals())
	assert.False(t, PhaseShowdown.IsBetting())
	assert.Equal(t, "Pre-flop", PhasePreFlop.String())
}
