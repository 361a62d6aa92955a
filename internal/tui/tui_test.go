package tui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/blackjack"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// stackedFactory deals cards in order every round
func stackedFactory(cards string, opts ...game.Option) EngineFactory {
	deck := blackjack.NewDeckFromCards(blackjack.MustParseCards(cards)...)
	return func() *game.Engine {
		all := append([]game.Option{game.WithDeckSource(game.FixedDeck(deck))}, opts...)
		return game.New(randutil.New(7), all...)
	}
}

func press(t *testing.T, m *Model, keys string) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, r := range keys {
		_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return cmd
}

func enter(m *Model) {
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func TestDealStandAndNextRound(t *testing.T) {
	t.Parallel()
	m := New(stackedFactory("Tc 6d 7s Kh 4c"), testLogger(), 10)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	press(t, m, "d")
	r := m.Engine().Observe()
	require.Equal(t, game.PlayerTurn, r.Phase)
	assert.Contains(t, m.View(), "??")

	press(t, m, "s")
	r = m.Engine().Observe()
	require.Equal(t, game.Settled, r.Phase)
	assert.Equal(t, game.OutcomeLoss, r.Outcome)
	assert.Equal(t, 1400, m.Engine().Player().Money)
	assert.NotContains(t, m.View(), "??")

	lines := m.Log()
	assert.Contains(t, lines[len(lines)-1], "Dealer wins!")

	enter(m)
	assert.Equal(t, game.Betting, m.Engine().Observe().Phase)
}

func TestDisabledKeysAreIgnored(t *testing.T) {
	t.Parallel()
	m := New(stackedFactory("Tc 6d 7s Kh 4c"), testLogger(), 10)

	press(t, m, "hs")
	assert.Equal(t, game.Betting, m.Engine().Observe().Phase)
	assert.Empty(t, m.Status())

	press(t, m, "d")
	press(t, m, "+a")
	assert.Equal(t, 100, m.Engine().Player().Bet, "bet keys are disabled mid-round")
}

func TestBetKeys(t *testing.T) {
	t.Parallel()
	m := New(stackedFactory("Tc 6d 7s Kh 4c"), testLogger(), 10)

	press(t, m, "+")
	assert.Equal(t, 110, m.Engine().Player().Bet)
	press(t, m, "--")
	assert.Equal(t, 90, m.Engine().Player().Bet)
	press(t, m, "a")
	assert.Equal(t, 1500, m.Engine().Player().Bet)
}

func TestDifficultyKeys(t *testing.T) {
	t.Parallel()
	m := New(stackedFactory("Tc 6d 7s Kh 4c"), testLogger(), 10)

	press(t, m, "x")
	assert.Equal(t, game.Hard, m.Engine().Player().Difficulty)
	press(t, m, "e")
	assert.Equal(t, game.Easy, m.Engine().Player().Difficulty)
	press(t, m, "n")
	assert.Equal(t, game.Normal, m.Engine().Player().Difficulty)
}

func TestUpgradeWithoutPoints(t *testing.T) {
	t.Parallel()
	m := New(stackedFactory("Tc 6d 7s Kh 4c"), testLogger(), 10)

	press(t, m, "1")
	assert.Equal(t, "Cannot buy Extra Start", m.Status())
	assert.Equal(t, 0, m.Engine().Player().Upgrades.Level(game.ExtraStart))
}

func TestBrokePlayerStartsNewSession(t *testing.T) {
	t.Parallel()
	m := New(stackedFactory("Tc 6d 7s Kh 4c", game.WithStartingMoney(100)), testLogger(), 10)
	first := m.Engine()

	press(t, m, "ds")
	require.True(t, first.Broke())
	assert.Contains(t, strings.Join(m.Log(), "\n"), "You are broke")

	press(t, m, "d")
	assert.Same(t, first, m.Engine(), "deal is disabled when broke")

	enter(m)
	assert.NotSame(t, first, m.Engine())
	assert.Equal(t, 100, m.Engine().Player().Money)
	assert.Equal(t, game.Betting, m.Engine().Observe().Phase)
}

func TestRouletteToggle(t *testing.T) {
	t.Parallel()
	m := New(stackedFactory("Tc 6d 7s Kh 4c"), testLogger(), 10)

	press(t, m, "r")
	assert.True(t, m.Engine().Player().Roulette)
	assert.Contains(t, m.View(), "RUSSIAN ROULETTE")

	press(t, m, "d")
	r := m.Engine().Observe()
	assert.Equal(t, game.Settled, r.Phase)
	assert.True(t, r.Roulette)
	assert.Contains(t, strings.Join(m.Log(), "\n"), "#1 roulette:")
}

func TestQuit(t *testing.T) {
	t.Parallel()
	m := New(stackedFactory("Tc 6d 7s Kh 4c"), testLogger(), 10)

	cmd := press(t, m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}
