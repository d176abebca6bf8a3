package gameid

import (
	"strings"
	"testing"
	"time"
)

func TestNewHasPrefix(t *testing.T) {
	for _, prefix := range []Prefix{Game, Dealer, Deck} {
		id := New(prefix)
		if !strings.HasPrefix(id, string(prefix)+"-") {
			t.Errorf("id %q missing prefix %q", id, prefix)
		}
		if err := Validate(id, prefix); err != nil {
			t.Errorf("generated id failed validation: %v", err)
		}
	}
}

func TestNewUnique(t *testing.T) {
	ids := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := New(Game)
		if ids[id] {
			t.Errorf("duplicate ID generated: %s", id)
		}
		ids[id] = true
	}
}

func TestNewTimeSorted(t *testing.T) {
	var ids []string
	for i := 0; i < 10; i++ {
		ids = append(ids, New(Deck))
		time.Sleep(time.Millisecond)
	}
	for i := 1; i < len(ids); i++ {
		if strings.Compare(ids[i-1], ids[i]) >= 0 {
			t.Errorf("IDs not sorted: %s >= %s", ids[i-1], ids[i])
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		prefix  Prefix
		wantErr bool
	}{
		{name: "valid", id: "dlr-01h5n0et5q6mt3v7ms1234abcd", prefix: Dealer},
		{name: "wrong prefix", id: "deck-01h5n0et5q6mt3v7ms1234abcd", prefix: Dealer, wantErr: true},
		{name: "too short", id: "dlr-01h5n0et5q6mt3v7ms123", prefix: Dealer, wantErr: true},
		{name: "first char too high", id: "dlr-81h5n0et5q6mt3v7ms1234abcd", prefix: Dealer, wantErr: true},
		{name: "invalid character", id: "dlr-01h5n0et5q6mt3v7ms1234abci", prefix: Dealer, wantErr: true},
		{name: "uppercase", id: "dlr-01H5N0ET5Q6MT3V7MS1234ABCD", prefix: Dealer, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id, tt.prefix)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

type fixedSource struct {
	values []int
	index  int
}

func (f *fixedSource) IntN(n int) int {
	if f.index >= len(f.values) {
		return 0
	}
	v := f.values[f.index] % n
	f.index++
	return v
}

func TestGeneratorDeterministic(t *testing.T) {
	at := time.UnixMilli(1_700_000_000_000)
	values := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	g1 := NewGenerator(&fixedSource{values: values})
	g1.now = func() time.Time { return at }
	g2 := NewGenerator(&fixedSource{values: values})
	g2.now = func() time.Time { return at }

	id1, id2 := g1.New(Game), g2.New(Game)
	if id1 != id2 {
		t.Errorf("same time and randomness should give same id: %s != %s", id1, id2)
	}
	if err := Validate(id1, Game); err != nil {
		t.Errorf("deterministic id invalid: %v", err)
	}
}

func TestEncodeBase32Zero(t *testing.T) {
	if got := encodeBase32([16]byte{}); got != strings.Repeat("0", 26) {
		t.Errorf("encodeBase32(zero) = %q", got)
	}
	var ones [16]byte
	for i := range ones {
		ones[i] = 0xff
	}
	if got := encodeBase32(ones); got != "7"+strings.Repeat("z", 25) {
		t.Errorf("encodeBase32(max) = %q", got)
	}
}
