package game

import (
	"fmt"
	"math"
	rand "math/rand/v2"
)

const (
	// DefaultRoulettePayout is the base reward for surviving a pull
	DefaultRoulettePayout = 250

	// RouletteChambers holds one bullet
	RouletteChambers = 6

	maxRouletteDoublings = 32

	// MaxRoulettePayout is the largest base reward whose fully doubled
	// survival still fits in an int
	MaxRoulettePayout = math.MaxInt >> maxRouletteDoublings
)

// RouletteState is the run of consecutive survived roulette rounds
type RouletteState struct {
	Streak int
}

// Multiplier is 2^Streak, the factor the next survival pays. The exponent
// stops growing after 32 doublings.
func (r RouletteState) Multiplier() int {
	s := r.Streak
	if s > maxRouletteDoublings {
		s = maxRouletteDoublings
	}
	if s < 0 {
		s = 0
	}
	return 1 << s
}

// NextReward is what surviving the next pull pays on top of the bankroll
func (r RouletteState) NextReward(base int) int {
	return base * r.Multiplier()
}

// pullTrigger reports true when the chamber holds the bullet
func pullTrigger(rng *rand.Rand) bool {
	return rng.IntN(RouletteChambers) == 0
}

// playRoulette replaces dealing for a roulette round. It never touches the
// deck and ignores the bet.
func (e *Engine) playRoulette() error {
	e.player.RoundsPlayed++
	e.transition(RoundState{
		Round:    e.round.Round + 1,
		Phase:    Dealt,
		Roulette: true,
	})

	if pullTrigger(e.rng) {
		e.logger.Info().
			Int("round", e.round.Round).
			Int("streak", e.player.RouletteRun.Streak).
			Int("lost", e.player.Money).
			Msg("Roulette death")
		e.player.RouletteRun = RouletteState{}
		e.settle(OutcomeRouletteDeath, -e.player.Money, "BANG! You lost everything.")
		return nil
	}

	reward := e.player.RouletteRun.NextReward(e.rules.RoulettePayout)
	e.player.RouletteRun.Streak++
	e.settle(OutcomeRouletteSurvived, reward,
		fmt.Sprintf("Click. You survived! +$%d (streak %d)", reward, e.player.RouletteRun.Streak))
	return nil
}
