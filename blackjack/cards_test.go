package blackjack

import (
	"errors"
	"testing"

	"github.com/lox/blackjack/internal/randutil"
)

func TestCardValues(t *testing.T) {
	t.Parallel()
	tests := []struct {
		rank Rank
		want int
	}{
		{Two, 2}, {Five, 5}, {Nine, 9}, {Ten, 10},
		{Jack, 10}, {Queen, 10}, {King, 10}, {Ace, 11},
	}
	for _, tc := range tests {
		if got := NewCard(tc.rank, Spades).Value(); got != tc.want {
			t.Errorf("%s value = %d, want %d", tc.rank, got, tc.want)
		}
	}
}

func TestParseCard(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		want    Card
		wantErr bool
	}{
		{"ace of spades", "As", NewCard(Ace, Spades), false},
		{"ten with T", "Tc", NewCard(Ten, Clubs), false},
		{"ten with 10", "10d", NewCard(Ten, Diamonds), false},
		{"upper case suit", "KH", NewCard(King, Hearts), false},
		{"number card", "7s", NewCard(Seven, Spades), false},
		{"invalid rank", "1s", Card{}, true},
		{"invalid suit", "Ax", Card{}, true},
		{"too short", "A", Card{}, true},
		{"too long", "Asd", Card{}, true},
		{"empty", "", Card{}, true},
	}

	for _, testCase := range tests {
		tc := testCase
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			card, err := ParseCard(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseCard(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
			if !tc.wantErr && card != tc.want {
				t.Errorf("ParseCard(%q) = %v, want %v", tc.input, card, tc.want)
			}
		})
	}
}

func TestCardString(t *testing.T) {
	t.Parallel()
	if s := NewCard(Ten, Clubs).String(); s != "10♣" {
		t.Errorf("expected 10♣, got %s", s)
	}
	if s := NewCard(Ace, Spades).String(); s != "A♠" {
		t.Errorf("expected A♠, got %s", s)
	}
}

func TestNewDeckHasAllCards(t *testing.T) {
	t.Parallel()
	d := NewDeck()
	if d.Remaining() != DeckSize {
		t.Fatalf("expected %d cards, got %d", DeckSize, d.Remaining())
	}

	seen := make(map[Card]bool)
	for _, c := range d.Cards() {
		if seen[c] {
			t.Errorf("duplicate card %s", c)
		}
		seen[c] = true
	}
	if len(seen) != DeckSize {
		t.Errorf("expected %d distinct cards, got %d", DeckSize, len(seen))
	}
}

func TestShuffleIsDeterministic(t *testing.T) {
	t.Parallel()
	a := NewShuffledDeck(randutil.New(42))
	b := NewShuffledDeck(randutil.New(42))
	c := NewShuffledDeck(randutil.New(43))

	if a.String() != b.String() {
		t.Error("same seed produced different decks")
	}
	if a.String() == c.String() {
		t.Error("different seeds produced identical decks")
	}
	if a.Remaining() != DeckSize {
		t.Errorf("shuffle changed deck size to %d", a.Remaining())
	}
}

func TestDrawUntilExhausted(t *testing.T) {
	t.Parallel()
	d := NewShuffledDeck(randutil.New(7))
	seen := make(map[Card]bool)
	for i := 0; i < DeckSize; i++ {
		c, err := d.Draw()
		if err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
		if seen[c] {
			t.Fatalf("card %s drawn twice", c)
		}
		seen[c] = true
	}

	if _, err := d.Draw(); !errors.Is(err, ErrDeckExhausted) {
		t.Errorf("expected ErrDeckExhausted, got %v", err)
	}
}

func TestDrawNDoesNotConsumeOnFailure(t *testing.T) {
	t.Parallel()
	d := NewDeckFromCards(MustParseCards("As Kd")...)
	if _, err := d.DrawN(3); !errors.Is(err, ErrDeckExhausted) {
		t.Fatalf("expected ErrDeckExhausted, got %v", err)
	}
	if d.Remaining() != 2 {
		t.Errorf("failed DrawN consumed cards, %d left", d.Remaining())
	}
}

func TestCloneAndRemove(t *testing.T) {
	t.Parallel()
	d := NewDeckFromCards(MustParseCards("As Kd 5c 9h")...)
	clone := d.Clone()
	if _, err := clone.Draw(); err != nil {
		t.Fatal(err)
	}
	if d.Remaining() != 4 {
		t.Errorf("drawing from clone changed original: %d left", d.Remaining())
	}

	d.Remove(MustParseCards("Kd 9h")...)
	if got := Hand(d.Cards()).String(); got != "A♠ 5♣" {
		t.Errorf("after remove got %q", got)
	}

	d.Remove(NewCard(Two, Hearts))
	if d.Remaining() != 2 {
		t.Errorf("removing an absent card changed the deck")
	}
}

func (d *Deck) String() string {
	return Hand(d.cards).String()
}

func BenchmarkShuffle(b *testing.B) {
	rng := randutil.New(1)
	d := NewDeck()
	for i := 0; i < b.N; i++ {
		d.Shuffle(rng)
	}
}
