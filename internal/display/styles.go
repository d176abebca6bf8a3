package display

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/holdem-sim/internal/deck"
)

// Styles holds the lipgloss styles bound to one output renderer.
type Styles struct {
	Header    lipgloss.Style
	Phase     lipgloss.Style
	HandInfo  lipgloss.Style
	Action    lipgloss.Style
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Info      lipgloss.Style
	Table     lipgloss.Style
}

// NewStyles builds the palette for r. Colours degrade to plain text when r
// writes to something that is not a terminal.
func NewStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true),
		Phase: r.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true),
		HandInfo: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Action: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")),
		RedCard: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		BlackCard: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true),
		Success: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Error: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Warning: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		Info: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Table: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#626262")).
			Padding(0, 1),
	}
}

// Card renders one card in its suit colour.
func (s *Styles) Card(c deck.Card) string {
	if c.Suit.IsRed() {
		return s.RedCard.Render(c.String())
	}
	return s.BlackCard.Render(c.String())
}

// Cards renders a bracketed card list, e.g. "[A♠ K♥]". An empty list
// renders as "[]".
func (s *Styles) Cards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = s.Card(c)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
