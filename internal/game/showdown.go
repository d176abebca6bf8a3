package game

import (
	"fmt"
	"strconv"
	"time"

	"github.com/lox/holdem-sim/internal/deck"
	"github.com/lox/holdem-sim/internal/evaluator"
)

// TieBreakMode selects how two hands of the same category are separated.
type TieBreakMode int

const (
	// TieBreakLabel parses the high card's rank label as an integer. Face
	// card labels do not parse and the earlier player keeps the lead.
	TieBreakLabel TieBreakMode = iota
	// TieBreakValue compares the high cards' numeric rank values.
	TieBreakValue
)

// ParseTieBreakMode maps a config string to a TieBreakMode.
func ParseTieBreakMode(s string) (TieBreakMode, error) {
	switch s {
	case "", "label":
		return TieBreakLabel, nil
	case "value":
		return TieBreakValue, nil
	}
	return 0, fmt.Errorf("unknown tie break %q (want label or value)", s)
}

// Standing is one evaluated hand at showdown.
type Standing struct {
	Player *Player
	Rank   evaluator.HandRank
}

// Result is the outcome of a hand.
type Result struct {
	GameID    string
	Winner    *Player // nil when the hand is tied
	Ties      []*Player
	Standings []Standing
	Community []deck.Card
	Pot       uint
	Awarded   bool
	Attempts  int
	Duration  time.Duration
}

// Tied reports whether the pot was left undecided.
func (r *Result) Tied() bool {
	return r.Winner == nil && len(r.Ties) > 1
}

// showdown ranks every active player holding cards and credits a sole
// winner with the pot.
func (g *Game) showdown() (*Result, error) {
	var standings []Standing
	for _, p := range g.players {
		if p.folded || len(p.hole) == 0 {
			continue
		}
		rank, err := g.dealer.Rank(p, g.community, g.rules.Evaluator)
		if err != nil {
			return nil, err
		}
		standings = append(standings, Standing{Player: p, Rank: rank})
	}
	if len(standings) == 0 {
		return nil, stateError("showdown", "no player holds cards")
	}

	winner, ties := DetermineWinner(standings, g.rules.TieBreak)
	result := &Result{
		GameID:    g.id,
		Ties:      ties,
		Standings: standings,
		Community: g.Community(),
		Pot:       g.pot,
	}

	if winner != nil {
		if err := g.dealer.Award(winner.Player, g.pot); err != nil {
			return nil, err
		}
		result.Winner = winner.Player
		result.Awarded = true
		g.logger.Info("Winner", "player", winner.Player.Name, "hand", winner.Rank.Name, "pot", g.pot)
	} else {
		g.logger.Info("Tied hand, pot not awarded", "players", len(ties), "pot", g.pot)
	}
	return result, nil
}

// DetermineWinner scans standings in seat order, keeping the best category.
// Equal categories are split by the tie-break mode; exactly equal high cards
// put both players on the tie list, which a stronger hand later clears. It
// returns the sole winner, or nil and the tied players.
func DetermineWinner(standings []Standing, mode TieBreakMode) (*Standing, []*Player) {
	if len(standings) == 0 {
		return nil, nil
	}

	best := &standings[0]
	var ties []*Player
	for i := 1; i < len(standings); i++ {
		s := &standings[i]
		switch {
		case s.Rank.Category > best.Rank.Category:
			best, ties = s, nil
		case s.Rank.Category == best.Rank.Category:
			cur, ok := tieValue(s.Rank.HighCard, mode)
			lead, ok2 := tieValue(best.Rank.HighCard, mode)
			if !ok || !ok2 {
				continue
			}
			switch {
			case cur > lead:
				best, ties = s, nil
			case cur == lead:
				if len(ties) == 0 {
					ties = append(ties, best.Player)
				}
				ties = append(ties, s.Player)
			}
		}
	}

	if len(ties) > 1 {
		return nil, ties
	}
	return best, nil
}

func tieValue(c deck.Card, mode TieBreakMode) (int, bool) {
	if mode == TieBreakValue {
		return c.Value(), true
	}
	v, err := strconv.Atoi(c.Label())
	if err != nil {
		return 0, false
	}
	return v, true
}
