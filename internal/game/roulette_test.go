package game

import (
	"math"
	"testing"

	"github.com/lox/blackjack/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouletteMultiplier(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 1, RouletteState{}.Multiplier())
	assert.Equal(t, 4, RouletteState{Streak: 2}.Multiplier())
	assert.Equal(t, 1<<32, RouletteState{Streak: 40}.Multiplier())
	assert.Equal(t, 250*8, RouletteState{Streak: 3}.NextReward(250))
}

func TestScenarioRouletteSurvival(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, withSeed(seedWhere(t, true)))
	on, err := e.ToggleRouletteMode()
	require.NoError(t, err)
	require.True(t, on)
	e.player.RouletteRun.Streak = 2

	require.NoError(t, e.StartRound(0))
	r := e.Observe()
	assert.Equal(t, Settled, r.Phase)
	assert.True(t, r.Roulette)
	assert.Equal(t, OutcomeRouletteSurvived, r.Outcome)
	assert.Equal(t, DefaultRoulettePayout*4, r.Delta)
	assert.Equal(t, 1500+DefaultRoulettePayout*4, e.Player().Money)
	assert.Equal(t, 3, e.Player().RouletteRun.Streak)
	assert.Empty(t, r.PlayerHand, "roulette rounds deal no cards")
}

func TestRouletteDeath(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, withSeed(seedWhere(t, false)))
	_, err := e.ToggleRouletteMode()
	require.NoError(t, err)
	e.player.RouletteRun.Streak = 5

	require.NoError(t, e.StartRound(100))
	r := e.Observe()
	assert.Equal(t, OutcomeRouletteDeath, r.Outcome)
	assert.Equal(t, -1500, r.Delta)
	assert.Equal(t, 0, e.Player().Money)
	assert.Equal(t, 0, e.Player().RouletteRun.Streak)

	require.NoError(t, e.ResetRound())
	assert.True(t, e.Broke())
	require.ErrorIs(t, e.StartRound(10), ErrInvalidBet)
}

func TestRouletteRewardsCompound(t *testing.T) {
	t.Parallel()
	for seed := int64(0); seed < 50; seed++ {
		e := newTestEngine(t, withSeed(seed))
		_, err := e.ToggleRouletteMode()
		require.NoError(t, err)

		for i := 0; i < 30 && !e.Broke(); i++ {
			streak := e.Player().RouletteRun.Streak
			money := e.Player().Money
			require.NoError(t, e.StartRound(0))

			r := e.Observe()
			switch r.Outcome {
			case OutcomeRouletteSurvived:
				assert.Equal(t, DefaultRoulettePayout<<streak, r.Delta)
				assert.Equal(t, streak+1, e.Player().RouletteRun.Streak)
				assert.Equal(t, money+r.Delta, e.Player().Money)
			case OutcomeRouletteDeath:
				assert.Equal(t, 0, e.Player().RouletteRun.Streak)
				assert.Equal(t, 0, e.Player().Money)
			default:
				t.Fatalf("unexpected outcome %s", r.Outcome)
			}
			require.NoError(t, e.ResetRound())
		}
	}
}

func TestRouletteDeathRate(t *testing.T) {
	t.Parallel()
	rng := randutil.New(11)
	deaths := 0
	const pulls = 6000
	for i := 0; i < pulls; i++ {
		if pullTrigger(rng) {
			deaths++
		}
	}
	assert.InDelta(t, pulls/6, deaths, 150)
}

func TestLeavingRouletteResetsStreak(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)
	_, err := e.ToggleRouletteMode()
	require.NoError(t, err)
	e.player.RouletteRun.Streak = 4

	on, err := e.ToggleRouletteMode()
	require.NoError(t, err)
	assert.False(t, on)
	assert.Equal(t, 0, e.Player().RouletteRun.Streak)
	assert.False(t, e.Observe().Roulette)
}

func TestRouletteSurvivalDoesNotEarnPoints(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, withSeed(seedWhere(t, true)))
	_, err := e.ToggleRouletteMode()
	require.NoError(t, err)
	require.NoError(t, e.StartRound(0))
	assert.Equal(t, 0, e.Player().Wins)
	assert.Equal(t, 1, e.Player().RoundsPlayed)
}

func TestRoulettePayoutNeverWraps(t *testing.T) {
	t.Parallel()
	rules := DefaultRules()
	rules.RoulettePayout = MaxRoulettePayout

	e := newTestEngine(t, withSeed(seedWhere(t, true)), withOptions(WithRules(rules)))
	_, err := e.ToggleRouletteMode()
	require.NoError(t, err)
	e.player.RouletteRun.Streak = 40

	require.NoError(t, e.StartRound(0))
	r := e.Observe()
	assert.Equal(t, OutcomeRouletteSurvived, r.Outcome)
	assert.Equal(t, MaxRoulettePayout<<32, r.Delta)
	assert.Positive(t, e.Player().Money)
	assert.Greater(t, e.Player().Money, 1500)
}

func TestSettleSaturatesBankroll(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, withSeed(seedWhere(t, true)))
	_, err := e.ToggleRouletteMode()
	require.NoError(t, err)
	e.player.Money = math.MaxInt - 10

	require.NoError(t, e.StartRound(0))
	r := e.Observe()
	assert.Equal(t, OutcomeRouletteSurvived, r.Outcome)
	assert.Equal(t, math.MaxInt, e.Player().Money)
	assert.Equal(t, 10, r.Delta)
}

func TestNewRejectsOversizedRoulettePayout(t *testing.T) {
	t.Parallel()
	rules := DefaultRules()
	rules.RoulettePayout = MaxRoulettePayout + 1
	assert.Panics(t, func() { New(randutil.New(1), WithRules(rules)) })
}

func TestAddMoney(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		money, delta int
		want         int
	}{
		{"gain", 100, 50, 150},
		{"loss", 100, -50, 50},
		{"floored", 100, -500, 0},
		{"saturated", math.MaxInt - 1, 5, math.MaxInt},
		{"exact max", math.MaxInt - 5, 5, math.MaxInt},
	}
	for _, testCase := range tests {
		tc := testCase
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, addMoney(tc.money, tc.delta))
		})
	}
}
