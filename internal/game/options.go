package game

import (
	rand "math/rand/v2"

	"github.com/lox/blackjack/blackjack"
	"github.com/rs/zerolog"
)

// Rules holds the table constants for a session
type Rules struct {
	StartingMoney  int
	MinBet         int
	DefaultBet     int
	RoulettePayout int
	Difficulty     Difficulty
}

// DefaultRules returns the house defaults: $1500 bankroll, $100 opening bet,
// $10 minimum and a $250 roulette base payout on Normal.
func DefaultRules() Rules {
	return Rules{
		StartingMoney:  1500,
		MinBet:         10,
		DefaultBet:     100,
		RoulettePayout: DefaultRoulettePayout,
		Difficulty:     Normal,
	}
}

// DeckSource builds the deck for a new round
type DeckSource func(rng *rand.Rand) *blackjack.Deck

// ShuffledDecks is the default DeckSource: a fresh shuffled deck per round
func ShuffledDecks(rng *rand.Rand) *blackjack.Deck {
	return blackjack.NewShuffledDeck(rng)
}

// FixedDeck returns a DeckSource that deals a copy of deck every round
func FixedDeck(deck *blackjack.Deck) DeckSource {
	return func(*rand.Rand) *blackjack.Deck {
		return deck.Clone()
	}
}

// SettleHook receives a record of every settled round
type SettleHook func(RoundRecord)

// Option configures an Engine during creation.
type Option func(*engineConfig)

type engineConfig struct {
	rules    Rules
	decks    DeckSource
	logger   zerolog.Logger
	onSettle SettleHook
}

// WithRules replaces the table rules
func WithRules(r Rules) Option {
	return func(c *engineConfig) {
		c.rules = r
	}
}

// WithStartingMoney sets the opening bankroll
func WithStartingMoney(money int) Option {
	return func(c *engineConfig) {
		c.rules.StartingMoney = money
	}
}

// WithDifficulty sets the opening dealer difficulty
func WithDifficulty(d Difficulty) Option {
	return func(c *engineConfig) {
		c.rules.Difficulty = d
	}
}

// WithDeckSource overrides how each round's deck is built. Tests use it with
// FixedDeck to stack the cards.
func WithDeckSource(src DeckSource) Option {
	return func(c *engineConfig) {
		c.decks = src
	}
}

// WithLogger sets the logger used for phase transitions and settlements
func WithLogger(l zerolog.Logger) Option {
	return func(c *engineConfig) {
		c.logger = l
	}
}

// WithSettleHook registers a callback invoked after every settlement
func WithSettleHook(h SettleHook) Option {
	return func(c *engineConfig) {
		c.onSettle = h
	}
}
