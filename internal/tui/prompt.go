// Package tui asks a human for betting decisions through a bubbletea prompt.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/holdem-sim/internal/deck"
	"github.com/lox/holdem-sim/internal/game"
)

// PromptModel is the bubbletea model for a single decision
type PromptModel struct {
	req      game.DecisionRequest
	input    textinput.Model
	decision *game.Decision
	err      error
	quitting bool
}

// NewPromptModel creates a prompt for req
func NewPromptModel(req game.DecisionRequest) *PromptModel {
	ti := textinput.New()
	ti.Placeholder = "check, call, fold, bet 20, raise 30"
	ti.Focus()
	ti.CharLimit = 32
	ti.Width = 40
	ti.PromptStyle = PromptStyle
	ti.Prompt = "> "

	return &PromptModel{req: req, input: ti}
}

// Init initializes the prompt
func (m *PromptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses. Enter submits; an unparsable entry keeps the
// prompt open with the error shown.
func (m *PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			d, err := ParseDecision(m.input.Value(), m.req)
			if err != nil {
				m.err = err
				m.input.SetValue("")
				return m, nil
			}
			m.decision = &d
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the prompt
func (m *PromptModel) View() string {
	if m.decision != nil || m.quitting {
		return ""
	}

	var b strings.Builder
	p := m.req.Player
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("%s to act (%s)", p.Name, m.req.Phase)))
	b.WriteString("\n")
	hand := formatCards(p.HoleCards)
	if name, ok := deck.StartingHand(p.HoleCards); ok && len(m.req.Community) == 0 {
		hand += " " + name
	}
	b.WriteString(HandInfoStyle.Render(fmt.Sprintf("Hand: %s  Board: %s", hand, formatCards(m.req.Community))))
	b.WriteString("\n")
	b.WriteString(HandInfoStyle.Render(fmt.Sprintf("Stack: %d  Pot: %d  To call: %d  Minimum bet: %d",
		p.Stack, m.req.Pot, m.req.ToCall(), m.req.MinimumBet)))
	b.WriteString("\n")
	b.WriteString(ActionsStyle.Render("Actions: [check] [call] [fold] [bet <amt>] [raise <amt>]"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(m.err.Error()))
	}
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("Enter to submit • Esc to quit"))
	b.WriteString("\n")
	return b.String()
}

// Decision returns the submitted decision, if any.
func (m *PromptModel) Decision() (game.Decision, bool) {
	if m.decision == nil {
		return game.Decision{}, false
	}
	return *m.decision, true
}

// Quit reports whether the user abandoned the prompt.
func (m *PromptModel) Quit() bool {
	return m.quitting
}

// ParseDecision turns input like "raise 30" into a Decision. Bet and raise
// need a positive amount; "all" stands for the whole stack. Amounts beyond
// the stack are left for the game to reject.
func ParseDecision(input string, req game.DecisionRequest) (game.Decision, error) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return game.Decision{}, fmt.Errorf("enter an action")
	}

	action, err := game.ParseActionKind(fields[0])
	if err != nil {
		return game.Decision{}, err
	}

	switch action {
	case game.Bet, game.Raise:
		if len(fields) != 2 {
			return game.Decision{}, fmt.Errorf("%s needs an amount, e.g. '%s 20'", action, action)
		}
		if fields[1] == "all" {
			return game.Decision{Action: action, Amount: req.Player.Stack}, nil
		}
		amount, err := strconv.ParseUint(fields[1], 10, 0)
		if err != nil || amount == 0 {
			return game.Decision{}, fmt.Errorf("invalid amount %q", fields[1])
		}
		return game.Decision{Action: action, Amount: uint(amount)}, nil
	default:
		if len(fields) != 1 {
			return game.Decision{}, fmt.Errorf("%s takes no amount", action)
		}
		return game.Decision{Action: action}, nil
	}
}
