package game

import "github.com/lox/blackjack/blackjack"

// RoundRecord summarises a settled round for history and statistics
type RoundRecord struct {
	Round       int
	Roulette    bool
	Difficulty  Difficulty
	Bet         int
	PlayerHand  blackjack.Hand
	DealerHand  blackjack.Hand
	Burned      *blackjack.Card
	Outcome     Outcome
	Delta       int
	MoneyAfter  int
	Streak      int
	PointsAfter int
}

func (e *Engine) record() RoundRecord {
	r := e.round.clone()
	rec := RoundRecord{
		Round:       r.Round,
		Roulette:    r.Roulette,
		Difficulty:  e.player.Difficulty,
		PlayerHand:  r.PlayerHand,
		DealerHand:  r.DealerHand,
		Burned:      r.Burned,
		Outcome:     r.Outcome,
		Delta:       r.Delta,
		MoneyAfter:  e.player.Money,
		Streak:      e.player.RouletteRun.Streak,
		PointsAfter: e.player.Upgrades.Points(),
	}
	if !r.Roulette {
		rec.Bet = e.player.Bet
	}
	return rec
}
