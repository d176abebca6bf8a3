package evaluator

import "fmt"

// FlushMode selects how flushes (and the straight/royal flush checks built
// on them) are detected.
type FlushMode int

const (
	// FlushAllCards requires every card of the candidate set to share one
	// suit. This is the default: with seven cards it rarely
	// fires.
	FlushAllCards FlushMode = iota
	// FlushBestFive requires any five cards of one suit.
	FlushBestFive
)

// MultiplicityMode selects which rank wins when several ranks share the
// multiplicity a category needs (e.g. two different pairs for One Pair).
type MultiplicityMode int

const (
	// MultiplicityLowest picks the first rank scanning upwards from 2.
	MultiplicityLowest MultiplicityMode = iota
	// MultiplicityHighest picks the highest qualifying rank.
	MultiplicityHighest
)

// Rules bundles the evaluator's configurable behaviour. The zero value is
// the house rule set.
type Rules struct {
	Flush        FlushMode
	Multiplicity MultiplicityMode
}

// DefaultRules is the house rule set.
var DefaultRules = Rules{}

// ParseFlushMode maps a config string to a FlushMode.
func ParseFlushMode(s string) (FlushMode, error) {
	switch s {
	case "", "all_cards":
		return FlushAllCards, nil
	case "best_five":
		return FlushBestFive, nil
	}
	return 0, fmt.Errorf("unknown flush mode %q (want all_cards or best_five)", s)
}

// ParseMultiplicityMode maps a config string to a MultiplicityMode.
func ParseMultiplicityMode(s string) (MultiplicityMode, error) {
	switch s {
	case "", "lowest":
		return MultiplicityLowest, nil
	case "highest":
		return MultiplicityHighest, nil
	}
	return 0, fmt.Errorf("unknown multiplicity mode %q (want lowest or highest)", s)
}
