package tui

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-sim/internal/deck"
	"github.com/lox/holdem-sim/internal/game"
)

func request() game.DecisionRequest {
	return game.DecisionRequest{
		Phase:      game.PhaseFlop,
		MinimumBet: 10,
		HighestBet: 20,
		Pot:        45,
		Community:  deck.MustParseCards("2c7d9h"),
		Player: game.PlayerView{
			Name:      "Alice",
			Stack:     80,
			RoundBet:  10,
			HoleCards: deck.MustParseCards("AsKh"),
		},
	}
}

func TestParseDecision(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  game.Decision
	}{
		{"check", game.Decision{Action: game.Check}},
		{"  CALL ", game.Decision{Action: game.Call}},
		{"f", game.Decision{Action: game.Fold}},
		{"bet 20", game.Decision{Action: game.Bet, Amount: 20}},
		{"r 35", game.Decision{Action: game.Raise, Amount: 35}},
		{"raise all", game.Decision{Action: game.Raise, Amount: 80}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDecision(tt.input, request())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDecisionErrors(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "shove", "bet", "bet ten", "raise 0", "raise -5", "check 10", "bet 10 20"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseDecision(input, request())
			assert.Error(t, err)
		})
	}
}

func typeInto(m *PromptModel, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestPromptModelSubmit(t *testing.T) {
	t.Parallel()

	m := NewPromptModel(request())
	typeInto(m, "bet 30")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	d, ok := m.Decision()
	require.True(t, ok)
	assert.Equal(t, game.Decision{Action: game.Bet, Amount: 30}, d)
	assert.Empty(t, m.View())
}

func TestPromptModelRejectsBadInput(t *testing.T) {
	t.Parallel()

	m := NewPromptModel(request())
	typeInto(m, "shove")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)

	_, ok := m.Decision()
	assert.False(t, ok)
	assert.Contains(t, m.View(), `unknown action "shove"`)
}

func TestPromptModelQuit(t *testing.T) {
	t.Parallel()

	m := NewPromptModel(request())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.True(t, m.Quit())
	_, ok := m.Decision()
	assert.False(t, ok)
}

func TestPromptModelView(t *testing.T) {
	t.Parallel()

	view := NewPromptModel(request()).View()
	assert.Contains(t, view, "Alice to act (Flop)")
	assert.Contains(t, view, "To call: 10")
	assert.Contains(t, view, "Pot: 45")
	assert.NotContains(t, view, "AKo")

	req := request()
	req.Phase = game.PhasePreFlop
	req.Community = nil
	assert.Contains(t, NewPromptModel(req).View(), "AKo")
}

func TestPolicyFoldedPlayer(t *testing.T) {
	t.Parallel()

	req := request()
	req.Player.Folded = true
	_, err := NewPolicy().Decide(context.Background(), req)
	require.ErrorIs(t, err, game.ErrNoDecision)
}

func TestPolicyReadsInput(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	p := NewPolicy(WithIO(strings.NewReader("call\r"), &bytes.Buffer{}))
	d, err := p.Decide(ctx, request())
	require.NoError(t, err)
	assert.Equal(t, game.Decision{Action: game.Call}, d)
}
