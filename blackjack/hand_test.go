package blackjack

import "testing"

func TestHandValue(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		cards string
		want  int
		soft  bool
	}{
		{"empty", "", 0, false},
		{"pair of tens", "Tc Kd", 20, false},
		{"natural", "As Kd", 21, true},
		{"two aces", "As Ah", 12, true},
		{"two aces and nine", "As Ah 9d", 21, true},
		{"three aces and eight", "As Ah Ac 8d", 21, true},
		{"four aces", "As Ah Ac Ad", 14, true},
		{"hard after downgrade", "As 9h 5d", 15, false},
		{"bust stays above 21", "Kc Qd 5h", 25, false},
		{"bust with downgraded ace", "As Kc Qd 5h", 26, false},
		{"soft seventeen", "As 6d", 17, true},
	}

	for _, testCase := range tests {
		tc := testCase
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			h := Hand(MustParseCards(tc.cards))
			if got := h.Value(); got != tc.want {
				t.Errorf("Value(%s) = %d, want %d", h, got, tc.want)
			}
			if got := h.IsSoft(); got != tc.soft {
				t.Errorf("IsSoft(%s) = %v, want %v", h, got, tc.soft)
			}
		})
	}
}

func TestHandValueIsIdempotent(t *testing.T) {
	t.Parallel()
	h := Hand(MustParseCards("As Ah Ac 8d"))
	first := h.Value()
	for i := 0; i < 5; i++ {
		if v := h.Value(); v != first {
			t.Fatalf("value changed between calls: %d then %d", first, v)
		}
	}
	if h.String() != "A♠ A♥ A♣ 8♦" {
		t.Errorf("valuation mutated the hand: %s", h)
	}
}

func TestIsBlackjack(t *testing.T) {
	t.Parallel()
	tests := []struct {
		cards string
		want  bool
	}{
		{"As Kd", true},
		{"Th Ac", true},
		{"As Kd 2c", false},
		{"7s 7d 7c", false},
		{"Kd Qh", false},
		{"As", false},
	}
	for _, tc := range tests {
		if got := Hand(MustParseCards(tc.cards)).IsBlackjack(); got != tc.want {
			t.Errorf("IsBlackjack(%s) = %v, want %v", tc.cards, got, tc.want)
		}
	}
}

func TestIsBust(t *testing.T) {
	t.Parallel()
	if !Hand(MustParseCards("7s Kh 6d")).IsBust() {
		t.Error("23 should be bust")
	}
	if Hand(MustParseCards("As Kh 9d")).IsBust() {
		t.Error("A K 9 is 20, not bust")
	}
}

func TestHandCloneIsIndependent(t *testing.T) {
	t.Parallel()
	h := Hand(MustParseCards("As Kd"))
	c := h.Clone()
	c[0] = NewCard(Two, Clubs)
	if h[0] != NewCard(Ace, Spades) {
		t.Error("clone shares storage with original")
	}
	if Hand(nil).Clone() != nil {
		t.Error("clone of nil hand should be nil")
	}
}
