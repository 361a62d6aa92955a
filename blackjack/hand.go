package blackjack

import "strings"

// Hand is the ordered set of cards held by the player or the dealer.
// Its value is always recomputed from the cards.
type Hand []Card

// BlackjackValue is the best possible hand total
const BlackjackValue = 21

// Value returns the blackjack total. Every Ace starts at 11 and is dropped to
// 1 while the total exceeds 21. The result may be above 21.
func (h Hand) Value() int {
	total, _ := h.resolve()
	return total
}

// IsSoft reports whether an Ace is still being counted as 11
func (h Hand) IsSoft() bool {
	_, soft := h.resolve()
	return soft > 0
}

func (h Hand) resolve() (total, soft int) {
	for _, c := range h {
		total += c.Value()
		if c.IsAce() {
			soft++
		}
	}
	for total > BlackjackValue && soft > 0 {
		total -= 10
		soft--
	}
	return total, soft
}

// IsBlackjack is true only for a two-card 21
func (h Hand) IsBlackjack() bool {
	return len(h) == 2 && h.Value() == BlackjackValue
}

// IsBust reports a total above 21
func (h Hand) IsBust() bool {
	return h.Value() > BlackjackValue
}

// Clone returns a copy that shares no storage with h
func (h Hand) Clone() Hand {
	if h == nil {
		return nil
	}
	out := make(Hand, len(h))
	copy(out, h)
	return out
}

func (h Hand) String() string {
	parts := make([]string, len(h))
	for i, c := range h {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
