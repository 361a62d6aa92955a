package server

import (
	"errors"

	"github.com/lox/blackjack/blackjack"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/protocol"
)

// handle applies one validated command to the session engine and returns
// the reply: a snapshot on success or an error message.
func (s *Session) handle(cmd protocol.Command) any {
	s.logger.Debug().Str("type", cmd.Type).Msg("Command")

	e := s.engine
	var err error
	var purchased *bool

	switch cmd.Type {
	case protocol.TypeStartRound:
		err = e.StartRound(cmd.Bet)
	case protocol.TypeAdjustBet:
		err = e.AdjustBet(cmd.Delta)
	case protocol.TypeAllIn:
		err = e.SetAllIn()
	case protocol.TypeToggleRoulette:
		_, err = e.ToggleRouletteMode()
	case protocol.TypeSetDifficulty:
		d, perr := game.ParseDifficulty(cmd.Difficulty)
		if perr != nil {
			return protocol.NewError(protocol.CodeBadRequest, perr.Error())
		}
		err = e.SetDifficulty(d)
	case protocol.TypePurchaseUpgrade:
		u, perr := game.ParseUpgrade(cmd.Upgrade)
		if perr != nil {
			return protocol.NewError(protocol.CodeBadRequest, perr.Error())
		}
		ok := e.PurchaseUpgrade(u)
		purchased = &ok
	case protocol.TypeHit:
		err = e.Hit()
	case protocol.TypeStand:
		err = e.Stand()
	case protocol.TypeResetRound:
		err = e.ResetRound()
	case protocol.TypeNewSession:
		s.resetEngine()
	case protocol.TypeObserve:
	default:
		return protocol.NewError(protocol.CodeBadRequest, "unknown command "+cmd.Type)
	}

	if err != nil {
		return protocol.NewError(errorCode(err), err.Error())
	}

	snap := s.snapshot()
	snap.Purchased = purchased
	return snap
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, game.ErrInvalidBet):
		return protocol.CodeInvalidBet
	case errors.Is(err, game.ErrWrongPhase):
		return protocol.CodeWrongPhase
	case errors.Is(err, blackjack.ErrDeckExhausted):
		return protocol.CodeDeckExhausted
	default:
		return protocol.CodeInternal
	}
}
