package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurchaseWithoutPointsIsNoop(t *testing.T) {
	t.Parallel()
	u := NewUpgradeSystem()
	before := u
	assert.False(t, u.Purchase(ExtraStart))
	assert.Equal(t, before, u)
}

func TestPurchaseSpendsOnePoint(t *testing.T) {
	t.Parallel()
	u := NewUpgradeSystem()
	u.AddPoint()
	u.AddPoint()

	require.True(t, u.Purchase(DealerNerves))
	assert.Equal(t, 1, u.Level(DealerNerves))
	assert.Equal(t, 1, u.Points())
	assert.Equal(t, 0, u.Level(ExtraStart))
	assert.Equal(t, 0, u.Level(BonusPayout))
}

func TestPurchaseStopsAtMax(t *testing.T) {
	t.Parallel()
	u := NewUpgradeSystem()
	for i := 0; i < 10; i++ {
		u.AddPoint()
	}
	for i := 0; i < MaxUpgradeLevel; i++ {
		require.True(t, u.Purchase(BonusPayout))
	}

	before := u
	assert.False(t, u.CanPurchase(BonusPayout))
	assert.False(t, u.Purchase(BonusPayout))
	assert.Equal(t, before, u)
	assert.Equal(t, 7, u.Points())
	assert.Equal(t, UpgradeLevel{Level: 3, Max: 3}, u.Slot(BonusPayout))
}

func TestPurchaseUnknownUpgrade(t *testing.T) {
	t.Parallel()
	u := NewUpgradeSystem()
	u.AddPoint()
	assert.False(t, u.Purchase(Upgrade(7)))
	assert.Equal(t, 1, u.Points())
}

func TestUpgradeEffects(t *testing.T) {
	t.Parallel()
	tests := []struct {
		level  int
		trials int
		burn   float64
		payout int
	}{
		{0, 1, 0, 100},
		{1, 2, 0.3, 125},
		{2, 3, 0.6, 150},
		{3, 4, 0.9, 175},
	}
	for _, tc := range tests {
		u := NewUpgradeSystem()
		for _, kind := range AllUpgrades {
			u.levels[kind].Level = tc.level
		}
		assert.Equal(t, tc.trials, u.StartTrials(), "level %d", tc.level)
		assert.InDelta(t, tc.burn, u.BurnChance(), 1e-9, "level %d", tc.level)
		assert.Equal(t, tc.payout, u.WinPayout(100), "level %d", tc.level)
	}
}

func TestWinPayoutRoundsDown(t *testing.T) {
	t.Parallel()
	u := NewUpgradeSystem()
	u.levels[BonusPayout].Level = 1
	assert.Equal(t, 18, u.WinPayout(15))
}

func TestResetUpgrades(t *testing.T) {
	t.Parallel()
	u := NewUpgradeSystem()
	u.AddPoint()
	require.True(t, u.Purchase(ExtraStart))
	u.AddPoint()
	u.Reset()
	assert.Equal(t, NewUpgradeSystem(), u)
}

func TestParseUpgrade(t *testing.T) {
	t.Parallel()
	tests := map[string]Upgrade{
		"extra-start":   ExtraStart,
		"Extra Start":   ExtraStart,
		"dealer_nerves": DealerNerves,
		"nerves":        DealerNerves,
		"BONUS":         BonusPayout,
	}
	for in, want := range tests {
		got, err := ParseUpgrade(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseUpgrade("luck")
	assert.Error(t, err)
}

func TestParseDifficulty(t *testing.T) {
	t.Parallel()
	d, err := ParseDifficulty("HARD")
	require.NoError(t, err)
	assert.Equal(t, Hard, d)
	d, err = ParseDifficulty("")
	require.NoError(t, err)
	assert.Equal(t, Normal, d)
	_, err = ParseDifficulty("nightmare")
	assert.Error(t, err)
}
