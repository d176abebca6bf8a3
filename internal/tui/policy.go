package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-sim/internal/game"
)

// ErrQuit is returned when the user leaves the prompt without deciding.
var ErrQuit = errors.New("user quit")

// Policy is a game.Policy that asks a human through a terminal prompt.
type Policy struct {
	in     io.Reader
	out    io.Writer
	onQuit func()
	logger *log.Logger
}

// PolicyOption configures a Policy.
type PolicyOption func(*Policy)

// WithIO sets the prompt's input and output; the defaults are the
// process's terminal.
func WithIO(in io.Reader, out io.Writer) PolicyOption {
	return func(p *Policy) {
		p.in = in
		p.out = out
	}
}

// WithQuitHandler registers fn to run when the user quits, typically the
// cancel func of the hand's context.
func WithQuitHandler(fn func()) PolicyOption {
	return func(p *Policy) { p.onQuit = fn }
}

func WithLogger(logger *log.Logger) PolicyOption {
	return func(p *Policy) { p.logger = logger }
}

// NewPolicy creates an interactive policy
func NewPolicy(opts ...PolicyOption) *Policy {
	p := &Policy{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Decide runs one prompt and blocks until the user submits a decision,
// quits, or ctx is done.
func (p *Policy) Decide(ctx context.Context, req game.DecisionRequest) (game.Decision, error) {
	if req.Player.Folded {
		return game.Decision{}, fmt.Errorf("%s has folded: %w", req.Player.Name, game.ErrNoDecision)
	}

	model := NewPromptModel(req)
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if p.in != nil {
		opts = append(opts, tea.WithInput(p.in))
	}
	if p.out != nil {
		opts = append(opts, tea.WithOutput(p.out))
	}

	p.logger.Debug("Waiting for user action", "player", req.Player.Name, "phase", req.Phase)
	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		return game.Decision{}, fmt.Errorf("prompt: %w", err)
	}

	if d, ok := model.Decision(); ok {
		p.logger.Debug("Received user action", "player", req.Player.Name, "decision", d)
		return d, nil
	}
	if p.onQuit != nil {
		p.onQuit()
	}
	return game.Decision{}, ErrQuit
}
