package game

import (
	"testing"

	"github.com/lox/blackjack/blackjack"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandThreshold(t *testing.T) {
	t.Parallel()
	tests := []struct {
		difficulty Difficulty
		nerves     int
		want       int
	}{
		{Easy, 0, 15},
		{Normal, 0, 17},
		{Hard, 0, 19},
		{Easy, 2, 17},
		{Hard, 3, 22},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, StandThreshold(tc.difficulty, tc.nerves), "%s nerves=%d", tc.difficulty, tc.nerves)
	}
}

func TestHardDealerReachesNineteen(t *testing.T) {
	t.Parallel()
	for seed := int64(0); seed < 500; seed++ {
		rng := randutil.New(seed)
		deck := blackjack.NewShuffledDeck(rng)
		cards, err := deck.DrawN(2)
		require.NoError(t, err)

		res, err := PlayDealer(blackjack.Hand(cards), Hard, 0, deck, rng)
		require.NoError(t, err)
		assert.Nil(t, res.Burned, "no burn without nerves")
		assert.GreaterOrEqual(t, res.Hand.Value(), 19, "seed %d: %s", seed, res.Hand)
	}
}

func TestDealerStopsAtThreshold(t *testing.T) {
	t.Parallel()
	deck := blackjack.NewDeckFromCards(blackjack.MustParseCards("2c 3d 9h")...)
	res, err := PlayDealer(hand("Tc 4s"), Easy, 0, deck, randutil.New(1))
	require.NoError(t, err)
	assert.Equal(t, "10♣ 4♠ 2♣", res.Hand.String(), "14 draws once, 16 stops on Easy")
	assert.Equal(t, 15, res.Threshold)
	assert.Equal(t, 2, deck.Remaining())
}

func TestDealerSoftHandCounting(t *testing.T) {
	t.Parallel()
	deck := blackjack.NewDeckFromCards(blackjack.MustParseCards("5c Kd")...)
	res, err := PlayDealer(hand("As 6d"), Normal, 0, deck, randutil.New(1))
	require.NoError(t, err)
	assert.Equal(t, "A♠ 6♦", res.Hand.String(), "soft 17 stands on Normal")

	res, err = PlayDealer(hand("As 6d"), Hard, 0, deck, randutil.New(1))
	require.NoError(t, err)
	assert.Equal(t, "A♠ 6♦ 5♣ K♦", res.Hand.String())
	assert.Equal(t, 22, res.Hand.Value())
}

func TestDealerDoesNotMutateInput(t *testing.T) {
	t.Parallel()
	in := hand("Tc 4s")
	deck := blackjack.NewDeckFromCards(blackjack.MustParseCards("2c 3d 9h")...)
	_, err := PlayDealer(in, Hard, 3, deck, randutil.New(3))
	require.NoError(t, err)
	assert.Equal(t, "10♣ 4♠", in.String())
}

func TestDealerExhaustion(t *testing.T) {
	t.Parallel()
	deck := blackjack.NewDeckFromCards(blackjack.MustParseCards("2c")...)
	res, err := PlayDealer(hand("Tc 4s"), Normal, 0, deck, randutil.New(1))
	require.ErrorIs(t, err, blackjack.ErrDeckExhausted)
	assert.Equal(t, "10♣ 4♠ 2♣", res.Hand.String())
}

func TestNervesBurn(t *testing.T) {
	t.Parallel()
	for level := 1; level <= MaxUpgradeLevel; level++ {
		burns := 0
		const trials = 2000
		for seed := int64(0); seed < trials; seed++ {
			rng := randutil.New(seed)
			deck := blackjack.NewShuffledDeck(rng)
			deck.Remove(blackjack.MustParseCards("Kc 9d")...)
			res, err := PlayDealer(hand("Kc 9d"), Normal, level, deck, rng)
			require.NoError(t, err)

			assert.Equal(t, blackjack.NewCard(blackjack.King, blackjack.Clubs), res.Hand[0], "hole card is never burned")
			assert.GreaterOrEqual(t, res.Hand.Value(), res.Threshold)
			if res.Burned != nil {
				burns++
				assert.Equal(t, "9♦", res.Burned.String())
			}
		}
		want := burnChance(level) * trials
		assert.InDelta(t, want, float64(burns), trials*0.05, "level %d", level)
	}
}

func TestBurnHappensBeforeThresholdPlay(t *testing.T) {
	t.Parallel()
	for seed := int64(0); seed < 200; seed++ {
		rng := randutil.New(seed)
		deck := blackjack.NewDeckFromCards(blackjack.MustParseCards("2c 2d 2h 2s 3c 3d 3h 3s")...)
		res, err := PlayDealer(hand("Tc 9d"), Normal, 3, deck, rng)
		require.NoError(t, err)
		if res.Burned == nil {
			continue
		}
		// 19 would stand on 17+3=20 only after drawing; a burn drops the
		// dealer to 10 and the draw loop rebuilds from there.
		assert.Equal(t, blackjack.NewCard(blackjack.Ten, blackjack.Clubs), res.Hand[0])
		assert.NotContains(t, res.Hand, blackjack.NewCard(blackjack.Nine, blackjack.Diamonds))
		assert.GreaterOrEqual(t, res.Hand.Value(), 20)
		return
	}
	t.Fatal("no burn observed at level 3")
}
