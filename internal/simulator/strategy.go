package simulator

import (
	"errors"

	"github.com/lox/blackjack/internal/game"
)

// Strategy is the fixed policy a simulated player follows
type Strategy struct {
	// StandOn is the lowest hand value the player stands on
	StandOn int
	// Bet is the wager per round, reduced to the bankroll when short
	Bet int
	// Roulette plays every round in roulette mode
	Roulette bool
	// BuyUpgrades spends points round-robin across the upgrades
	BuyUpgrades bool
	Difficulty  game.Difficulty
}

// DefaultStrategy mimics the dealer: hit below 17, flat $100 bets, buy
// every upgrade it can afford.
func DefaultStrategy() Strategy {
	return Strategy{
		StandOn:     17,
		Bet:         100,
		BuyUpgrades: true,
		Difficulty:  game.Normal,
	}
}

type player struct {
	strategy Strategy
	next     int
	bought   int
}

func newPlayer(s Strategy) *player {
	return &player{strategy: s}
}

// canPlay reports whether the engine will accept another round from us
func (p *player) canPlay(e *game.Engine) bool {
	state := e.Player()
	if state.Money <= 0 {
		return false
	}
	return p.strategy.Roulette || state.Money >= e.Rules().MinBet
}

func (p *player) playRound(e *game.Engine) error {
	if err := p.prepare(e); err != nil {
		return err
	}

	bet := min(p.strategy.Bet, e.Player().Money)
	if err := e.StartRound(bet); err != nil {
		return ignoreExhausted(err)
	}

	for e.Observe().Phase == game.PlayerTurn {
		var err error
		if e.Observe().PlayerHand.Value() < p.strategy.StandOn {
			err = e.Hit()
		} else {
			err = e.Stand()
		}
		if err != nil {
			return ignoreExhausted(err)
		}
	}
	return e.ResetRound()
}

// prepare applies mode, difficulty and upgrade purchases before betting
func (p *player) prepare(e *game.Engine) error {
	state := e.Player()
	if state.Roulette != p.strategy.Roulette {
		if _, err := e.ToggleRouletteMode(); err != nil {
			return err
		}
	}
	if state.Difficulty != p.strategy.Difficulty {
		if err := e.SetDifficulty(p.strategy.Difficulty); err != nil {
			return err
		}
	}
	if p.strategy.BuyUpgrades {
		p.buyUpgrades(e)
	}
	return nil
}

// buyUpgrades spends all points, rotating through the upgrades and skipping
// those already at their cap.
func (p *player) buyUpgrades(e *game.Engine) {
	for e.Player().Upgrades.Points() > 0 {
		bought := false
		for i := 0; i < game.NumUpgrades; i++ {
			kind := game.AllUpgrades[(p.next+i)%game.NumUpgrades]
			if e.PurchaseUpgrade(kind) {
				p.next = (p.next + i + 1) % game.NumUpgrades
				p.bought++
				bought = true
				break
			}
		}
		if !bought {
			return
		}
	}
}

// ignoreExhausted treats an abandoned round as played
func ignoreExhausted(err error) error {
	if errors.Is(err, game.ErrDeckExhausted) {
		return nil
	}
	return err
}
