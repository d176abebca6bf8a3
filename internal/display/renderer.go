package display

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/holdem-sim/internal/deck"
	"github.com/lox/holdem-sim/internal/evaluator"
	"github.com/lox/holdem-sim/internal/game"
)

// Renderer prints a hand history from the game's event stream.
type Renderer struct {
	mu        sync.Mutex
	w         io.Writer
	styles    *Styles
	showHoles bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithHiddenHoleCards suppresses hole cards until showdown.
func WithHiddenHoleCards() Option {
	return func(r *Renderer) { r.showHoles = false }
}

// NewRenderer creates a renderer writing to w
func NewRenderer(w io.Writer, opts ...Option) *Renderer {
	r := &Renderer{
		w:         w,
		styles:    NewStyles(lipgloss.NewRenderer(w)),
		showHoles: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Styles returns the renderer's palette.
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// OnEvent implements game.EventSubscriber
func (r *Renderer) OnEvent(event game.GameEvent) {
	var out string
	switch e := event.(type) {
	case game.BlindsPostedEvent:
		out = r.blinds(e)
	case game.CardsDealtEvent:
		out = r.dealt(e)
	case game.PhaseChangeEvent:
		out = r.phase(e)
	case game.BoardDealtEvent:
		out = "Board: " + r.styles.Cards(e.Board)
	case game.PlayerActionEvent:
		out = r.action(e)
	case game.RoundEndEvent:
		out = r.roundEnd(e)
	case game.ShowdownEvent:
		out = r.Result(e.Result)
	default:
		return
	}
	r.write(out)
}

func (r *Renderer) write(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.w, s)
}

func (r *Renderer) blinds(e game.BlindsPostedEvent) string {
	return fmt.Sprintf("%s: posts small blind %d\n%s: posts big blind %d",
		e.SmallBlind.Name, e.SmallPaid, e.BigBlind.Name, e.BigPaid)
}

func (r *Renderer) dealt(e game.CardsDealtEvent) string {
	var b strings.Builder
	b.WriteString(r.styles.Phase.Render("*** HOLE CARDS ***"))
	if r.showHoles {
		for _, p := range e.Players {
			hole := p.HoleCards()
			fmt.Fprintf(&b, "\nDealt to %s: %s%s", p.Name, r.styles.Cards(hole), startingHand(hole))
		}
	}
	fmt.Fprintf(&b, "\n%s", r.styles.Info.Render(fmt.Sprintf("%d cards left in the deck", e.DeckLeft)))
	return b.String()
}

// startingHand annotates two hole cards with their preflop strength.
func startingHand(hole []deck.Card) string {
	name, ok := deck.StartingHand(hole)
	if !ok {
		return ""
	}
	pct, _ := deck.StartingHandPercentile(hole)
	return fmt.Sprintf(" (%s, %.0f%%)", name, pct*100)
}

func (r *Renderer) phase(e game.PhaseChangeEvent) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(r.styles.Phase.Render(fmt.Sprintf("*** %s ***", strings.ToUpper(e.To.String()))))
	fmt.Fprintf(&b, "\nPot: %s", r.styles.Warning.Render(fmt.Sprint(e.Pot)))
	return b.String()
}

func (r *Renderer) action(e game.PlayerActionEvent) string {
	var verb string
	switch e.Decision.Action {
	case game.Check:
		verb = "checks"
	case game.Fold:
		verb = "folds"
	case game.Call:
		verb = fmt.Sprintf("calls %d", e.Moved)
	case game.Bet:
		verb = fmt.Sprintf("bets %d", e.Moved)
	case game.Raise:
		verb = fmt.Sprintf("raises %d to %d", e.Moved, e.HighestBet)
	}
	return r.styles.Action.Render(fmt.Sprintf("%s: %s (pot %d)", e.Player.Name, verb, e.PotAfter))
}

func (r *Renderer) roundEnd(e game.RoundEndEvent) string {
	switch e.State {
	case game.RoundAborted:
		return r.styles.Error.Render(fmt.Sprintf("--- %s round aborted after %d steps: %v ---", e.Phase, e.Steps, e.Err))
	case game.RoundOngoing:
		return r.styles.Warning.Render(fmt.Sprintf("--- %s round stopped after %d steps ---", e.Phase, e.Steps))
	default:
		return r.styles.Info.Render(fmt.Sprintf("--- %s betting complete ---", e.Phase))
	}
}

// Result renders the showdown table and the winner line.
func (r *Renderer) Result(res *game.Result) string {
	if res == nil {
		return ""
	}

	rows := []string{fmt.Sprintf("%-10s %-9s %-16s %-6s %-6s %s", "Player", "Hole", "Hand", "High", "Kicker", "Standard")}
	for _, s := range res.Standings {
		hole := s.Player.HoleCards()
		standard := "-"
		if ref, err := evaluator.StandardReading(append(hole, res.Community...)); err == nil {
			standard = ref.Description
		}
		marker := " "
		if s.Player == res.Winner {
			marker = "*"
		}
		rows = append(rows, fmt.Sprintf("%-10s %-9s %-16s %-6s %-6s %s",
			marker+s.Player.Name, plainCards(hole), s.Rank.Name, s.Rank.HighCard, s.Rank.Kicker, standard))
	}

	var b strings.Builder
	b.WriteString(r.styles.Phase.Render("*** SHOWDOWN ***"))
	fmt.Fprintf(&b, "\nFinal Board: %s\n", r.styles.Cards(res.Community))
	b.WriteString(r.styles.Table.Render(strings.Join(rows, "\n")))
	b.WriteString("\n")

	switch {
	case res.Winner != nil:
		b.WriteString(r.styles.Success.Render(fmt.Sprintf("%s wins %d", res.Winner.Name, res.Pot)))
	case len(res.Ties) > 0:
		names := make([]string, len(res.Ties))
		for i, p := range res.Ties {
			names[i] = p.Name
		}
		b.WriteString(r.styles.Warning.Render(fmt.Sprintf("Tie between %s, pot of %d unawarded", strings.Join(names, ", "), res.Pot)))
	default:
		b.WriteString(r.styles.Warning.Render("No winner"))
	}
	if res.Duration > 0 {
		fmt.Fprintf(&b, "\n%s", r.styles.Info.Render(fmt.Sprintf("%d phase attempts in %s", res.Attempts, res.Duration)))
	}
	return b.String()
}

// Status renders a game snapshot.
func (r *Renderer) Status(st game.Status) string {
	var b strings.Builder
	b.WriteString(r.styles.Header.Render(fmt.Sprintf("Game %s", st.GameID)))
	fmt.Fprintf(&b, "\nDealer %s", st.DealerID)
	if st.DeckID != "" {
		fmt.Fprintf(&b, " with deck %s (%d cards)", st.DeckID, st.DeckSize)
	} else {
		b.WriteString(" has no deck yet")
	}
	fmt.Fprintf(&b, "\nPhase: %s  Pot: %d  Highest bet: %d  Minimum bet: %d",
		st.Phase, st.Pot, st.HighestBet, st.MinimumBet)
	fmt.Fprintf(&b, "\nBoard: %s", r.styles.Cards(st.Community))

	rows := make([]string, 0, len(st.Players))
	for i, p := range st.Players {
		seat := "  "
		switch i {
		case st.SmallBlind:
			seat = "SB"
		case st.BigBlind:
			seat = "BB"
		}
		state := ""
		if p.Folded {
			state = " (folded)"
		}
		rows = append(rows, fmt.Sprintf("%s %-10s stack %4d  bet %4d  paid %4d  %s%s",
			seat, p.Name, p.Stack, p.RoundBet, p.PaidIn, plainCards(p.HoleCards), state))
	}
	b.WriteString("\n")
	b.WriteString(r.styles.Table.Render(strings.Join(rows, "\n")))
	return b.String()
}

// Evaluation renders the house-rules reading of a card set next to the
// standard one. ref may be nil when the set is outside 5 to 7 cards.
func (r *Renderer) Evaluation(cards []deck.Card, rank evaluator.HandRank, ref *evaluator.Reference) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Cards:    %s\n", r.styles.Cards(cards))
	fmt.Fprintf(&b, "Hand:     %s\n", r.styles.HandInfo.Render(rank.Name))
	fmt.Fprintf(&b, "Winning:  %s\n", r.styles.Cards(rank.WinningCards))
	fmt.Fprintf(&b, "High:     %s\n", r.styles.Card(rank.HighCard))
	fmt.Fprintf(&b, "Kicker:   %s", r.styles.Card(rank.Kicker))
	if ref != nil {
		fmt.Fprintf(&b, "\nStandard: %s", r.styles.Info.Render(ref.Description))
	}
	return b.String()
}

// plainCards formats cards without styling so column widths stay stable.
func plainCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
