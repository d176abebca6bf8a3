package phh

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	"github.com/lox/holdem-sim/internal/game"
)

// Encode writes hand to w as PHH TOML.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return errors.New("phh: hand history is nil")
	}
	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// Marshal returns hand encoded as PHH TOML.
func Marshal(hand *HandHistory) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, hand); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FormatAction converts a betting decision to a PHH action line. raisedTo
// is the player's total bet for the street after a bet or raise.
func FormatAction(seat int, action game.ActionKind, raisedTo uint) string {
	player := fmt.Sprintf("p%d", seat+1)
	switch action {
	case game.Fold:
		return player + " f"
	case game.Check, game.Call:
		return player + " cc"
	case game.Bet, game.Raise:
		return fmt.Sprintf("%s cbr %d", player, raisedTo)
	default:
		return fmt.Sprintf("# %s %s", player, action)
	}
}
