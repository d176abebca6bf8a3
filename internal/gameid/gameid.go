// Package gameid generates the prefixed identifiers carried by games,
// dealers and decks, e.g. "pkrgme-06bx2…". The suffix is a UUIDv7 encoded as
// 26 characters of Crockford base32, so ids of one kind sort by creation time.
package gameid

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"
)

// Prefix names the kind of object an id belongs to.
type Prefix string

const (
	Game   Prefix = "pkrgme"
	Dealer Prefix = "dlr"
	Deck   Prefix = "deck"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

const suffixLen = 26

// RandSource interface for dependency injection of randomness
type RandSource interface {
	IntN(n int) int
}

// Generator handles id generation with configurable randomness
type Generator struct {
	randSource RandSource
	now        func() time.Time
}

// NewGenerator creates a new generator. A nil RandSource uses crypto/rand.
func NewGenerator(randSource RandSource) *Generator {
	return &Generator{randSource: randSource, now: time.Now}
}

// New returns a fresh id with the given prefix using crypto/rand.
func New(prefix Prefix) string {
	return NewGenerator(nil).New(prefix)
}

// New creates an id with the given prefix
func (g *Generator) New(prefix Prefix) string {
	uuid := g.uuidV7()
	return string(prefix) + "-" + encodeBase32(uuid)
}

// uuidV7 lays out a 48-bit millisecond timestamp followed by random bits,
// with the version and variant fields set.
func (g *Generator) uuidV7() [16]byte {
	var uuid [16]byte

	ms := g.now().UnixMilli()
	for i := 0; i < 6; i++ {
		uuid[i] = byte(ms >> (40 - 8*i))
	}

	if g.randSource != nil {
		for i := 6; i < 16; i++ {
			uuid[i] = byte(g.randSource.IntN(256))
		}
	} else if _, err := rand.Read(uuid[6:]); err != nil {
		panic("failed to generate random bytes: " + err.Error())
	}

	uuid[6] = (uuid[6] & 0x0f) | 0x70
	uuid[8] = (uuid[8] & 0x3f) | 0x80
	return uuid
}

// encodeBase32 encodes 128 bits as 26 base32 characters. The value is
// treated as a 130-bit number with two leading zero bits, so the first
// character is always 0-7.
func encodeBase32(data [16]byte) string {
	out := make([]byte, suffixLen)
	var acc uint32
	bits := 2 // the two implicit leading zero bits
	pos := 0
	for _, b := range data {
		acc = acc<<8 | uint32(b)
		bits += 8
		for bits >= 5 {
			bits -= 5
			out[pos] = alphabet[(acc>>uint(bits))&0x1f]
			pos++
		}
	}
	return string(out)
}

// Validate checks that id carries the expected prefix followed by a valid
// 26-character base32 suffix.
func Validate(id string, prefix Prefix) error {
	head := string(prefix) + "-"
	if !strings.HasPrefix(id, head) {
		return fmt.Errorf("id %q does not start with %q", id, head)
	}
	suffix := id[len(head):]
	if len(suffix) != suffixLen {
		return fmt.Errorf("id suffix must be exactly %d characters, got %d", suffixLen, len(suffix))
	}
	if suffix[0] > '7' {
		return fmt.Errorf("id suffix first character must be 0-7, got %c", suffix[0])
	}
	for i, char := range suffix {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}
	return nil
}
