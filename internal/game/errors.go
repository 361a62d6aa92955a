package game

import (
	"errors"

	"github.com/lox/blackjack/blackjack"
)

var (
	// ErrInvalidBet is returned when a bet is outside [MinBet, money] or the
	// player has no money left. The engine state is unchanged.
	ErrInvalidBet = errors.New("invalid bet")

	// ErrWrongPhase is returned when an operation is issued in a phase that
	// does not accept it, such as Hit during Betting.
	ErrWrongPhase = errors.New("operation not allowed in current phase")

	// ErrDeckExhausted aborts the current round. The engine returns to Betting
	// without moving any money.
	ErrDeckExhausted = blackjack.ErrDeckExhausted
)
