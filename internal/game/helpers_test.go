package game

import (
	"testing"

	"github.com/lox/blackjack/blackjack"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/rs/zerolog"
)

// testEngineOption configures test engine creation
type testEngineOption func(*testEngineBuilder)

type testEngineBuilder struct {
	seed  int64
	cards string
	opts  []Option
}

func withSeed(seed int64) testEngineOption {
	return func(b *testEngineBuilder) { b.seed = seed }
}

// withCards stacks every round's deck, top card first
func withCards(cards string) testEngineOption {
	return func(b *testEngineBuilder) { b.cards = cards }
}

func withOptions(opts ...Option) testEngineOption {
	return func(b *testEngineBuilder) { b.opts = append(b.opts, opts...) }
}

// newTestEngine creates an engine with a test logger and a fixed seed
func newTestEngine(t *testing.T, opts ...testEngineOption) *Engine {
	t.Helper()
	b := &testEngineBuilder{seed: 42}
	for _, opt := range opts {
		opt(b)
	}

	engineOpts := []Option{WithLogger(zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel))}
	if b.cards != "" {
		deck := blackjack.NewDeckFromCards(blackjack.MustParseCards(b.cards)...)
		engineOpts = append(engineOpts, WithDeckSource(FixedDeck(deck)))
	}
	engineOpts = append(engineOpts, b.opts...)
	return New(randutil.New(b.seed), engineOpts...)
}

// seedWhere finds a seed whose first roulette pull matches survive
func seedWhere(t *testing.T, survive bool) int64 {
	t.Helper()
	for s := int64(1); s < 10000; s++ {
		if pullTrigger(randutil.New(s)) != survive {
			return s
		}
	}
	t.Fatal("no seed found")
	return 0
}

func hand(cards string) blackjack.Hand {
	return blackjack.Hand(blackjack.MustParseCards(cards))
}
