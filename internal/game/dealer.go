package game

import (
	rand "math/rand/v2"

	"github.com/lox/blackjack/blackjack"
	"github.com/lox/blackjack/internal/randutil"
)

// DealerResult is the dealer hand after it has been played out
type DealerResult struct {
	Hand      blackjack.Hand
	Threshold int
	Burned    *blackjack.Card
}

// StandThreshold combines the difficulty base with the DealerNerves level
func StandThreshold(difficulty Difficulty, nerves int) int {
	return difficulty.StandThreshold() + nerves
}

// PlayDealer plays the dealer hand to completion. The nerves burn is rolled
// at most once and before any drawing; it only ever removes a non-hole card
// (index >= 1). The input hand is not modified.
//
// On ErrDeckExhausted the partially drawn hand is returned with the error.
func PlayDealer(hand blackjack.Hand, difficulty Difficulty, nerves int, deck *blackjack.Deck, rng *rand.Rand) (DealerResult, error) {
	res := DealerResult{
		Hand:      hand.Clone(),
		Threshold: StandThreshold(difficulty, nerves),
	}

	if nerves > 0 && len(res.Hand) > 1 && randutil.Chance(rng, burnChance(nerves)) {
		idx := 1 + rng.IntN(len(res.Hand)-1)
		burned := res.Hand[idx]
		res.Burned = &burned
		res.Hand = append(res.Hand[:idx:idx], res.Hand[idx+1:]...)
	}

	for res.Hand.Value() < res.Threshold {
		card, err := deck.Draw()
		if err != nil {
			return res, err
		}
		res.Hand = append(res.Hand, card)
	}

	return res, nil
}
