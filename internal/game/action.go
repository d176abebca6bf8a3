package game

import (
	"fmt"
	"strings"
)

// Phase is a stage of the hand. Phases only move forward.
type Phase int

const (
	PhaseInitial Phase = iota
	PhasePreFlop
	PhaseFlop
	PhaseTurn
	PhaseRiver
	PhaseShowdown
)

func (p Phase) String() string {
	switch p {
	case PhaseInitial:
		return "Initial"
	case PhasePreFlop:
		return "Pre-flop"
	case PhaseFlop:
		return "Flop"
	case PhaseTurn:
		return "Turn"
	case PhaseRiver:
		return "River"
	case PhaseShowdown:
		return "Showdown"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Next returns the phase that follows p. Showdown is terminal.
func (p Phase) Next() Phase {
	if p >= PhaseShowdown {
		return PhaseShowdown
	}
	return p + 1
}

// Reveals is the number of community cards opened on entering p.
func (p Phase) Reveals() int {
	switch p {
	case PhaseFlop:
		return 3
	case PhaseTurn, PhaseRiver:
		return 1
	}
	return 0
}

// IsBetting reports whether p runs a betting round.
func (p Phase) IsBetting() bool {
	return p >= PhasePreFlop && p <= PhaseRiver
}

// ActionKind is a wagering action.
type ActionKind int

const (
	Check ActionKind = iota
	Bet
	Raise
	Call
	Fold
)

// AllActions lists every action in declaration order.
var AllActions = [...]ActionKind{Check, Bet, Raise, Call, Fold}

func (a ActionKind) String() string {
	switch a {
	case Check:
		return "check"
	case Bet:
		return "bet"
	case Raise:
		return "raise"
	case Call:
		return "call"
	case Fold:
		return "fold"
	default:
		return "unknown"
	}
}

// ParseActionKind accepts full names and single-letter shortcuts.
func ParseActionKind(s string) (ActionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "check", "k":
		return Check, nil
	case "bet", "b":
		return Bet, nil
	case "raise", "r":
		return Raise, nil
	case "call", "c":
		return Call, nil
	case "fold", "f":
		return Fold, nil
	}
	return 0, fmt.Errorf("unknown action %q", s)
}

// FundsPurpose says why funds are moving through the dealer.
type FundsPurpose int

const (
	PurposeBlinds FundsPurpose = iota
	PurposeBet
	PurposeRaise
	PurposeCall
)

func (p FundsPurpose) String() string {
	switch p {
	case PurposeBlinds:
		return "blinds"
	case PurposeBet:
		return "bet"
	case PurposeRaise:
		return "raise"
	case PurposeCall:
		return "call"
	default:
		return "unknown"
	}
}

// Decision is what a policy wants to do on its turn. Amount is only read
// for Bet and Raise.
type Decision struct {
	Action ActionKind
	Amount uint
}

func (d Decision) String() string {
	if d.Action == Bet || d.Action == Raise {
		return fmt.Sprintf("%s %d", d.Action, d.Amount)
	}
	return d.Action.String()
}
