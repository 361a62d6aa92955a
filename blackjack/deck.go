package blackjack

import (
	"errors"
	rand "math/rand/v2"
)

// DeckSize is the number of cards in a standard deck
const DeckSize = 52

// ErrDeckExhausted is returned when drawing from an empty deck. A round that
// hits it must be abandoned; the deck never reshuffles on its own.
var ErrDeckExhausted = errors.New("deck exhausted")

// Deck is an ordered stack of cards drawn from the top
type Deck struct {
	cards []Card
}

// NewDeck builds all 52 rank and suit combinations in canonical order
func NewDeck() *Deck {
	d := &Deck{cards: make([]Card, 0, DeckSize)}
	for _, suit := range Suits {
		for _, rank := range Ranks {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
	return d
}

// NewShuffledDeck builds a full deck and shuffles it with rng
func NewShuffledDeck(rng *rand.Rand) *Deck {
	d := NewDeck()
	d.Shuffle(rng)
	return d
}

// NewDeckFromCards creates a deck that deals cards in the given order.
// Used for replays and stacked test decks.
func NewDeckFromCards(cards ...Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards))}
	copy(d.cards, cards)
	return d
}

// Shuffle applies a Fisher-Yates permutation driven by rng
func (d *Deck) Shuffle(rng *rand.Rand) {
	if rng == nil {
		panic("blackjack: shuffle requires an rng")
	}
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the top card
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrDeckExhausted
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, nil
}

// DrawN draws n cards, failing without consuming anything if fewer remain
func (d *Deck) DrawN(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, ErrDeckExhausted
	}
	out := make([]Card, n)
	copy(out, d.cards[:n])
	d.cards = d.cards[n:]
	return out, nil
}

// Remove takes the given cards out of the deck wherever they sit. Cards that
// are not in the deck are ignored.
func (d *Deck) Remove(cards ...Card) {
	for _, c := range cards {
		for i, dc := range d.cards {
			if dc == c {
				d.cards = append(d.cards[:i], d.cards[i+1:]...)
				break
			}
		}
	}
}

// Clone returns an independent copy of the remaining cards
func (d *Deck) Clone() *Deck {
	return NewDeckFromCards(d.cards...)
}

// Remaining returns the number of cards left
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Cards returns a copy of the remaining cards, top first
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}
