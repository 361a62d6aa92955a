// Package protocol defines the JSON messages exchanged with WebSocket clients.
package protocol

import (
	"github.com/lox/blackjack/internal/game"
)

// Client -> Server command types
const (
	TypeStartRound      = "start_round"
	TypeAdjustBet       = "adjust_bet"
	TypeAllIn           = "all_in"
	TypeToggleRoulette  = "toggle_roulette"
	TypeSetDifficulty   = "set_difficulty"
	TypePurchaseUpgrade = "purchase_upgrade"
	TypeHit             = "hit"
	TypeStand           = "stand"
	TypeResetRound      = "reset_round"
	TypeObserve         = "observe"
	TypeNewSession      = "new_session"
)

// Server -> Client message types
const (
	TypeSnapshot = "snapshot"
	TypeError    = "error"
)

// Error codes carried by ErrorMessage
const (
	CodeInvalidBet    = "invalid_bet"
	CodeWrongPhase    = "wrong_phase"
	CodeDeckExhausted = "deck_exhausted"
	CodeBadRequest    = "bad_request"
	CodeInternal      = "internal"
)

// ConcealedCard is sent in place of the dealer's hole card
const ConcealedCard = "??"

// Command is sent by a client to drive its session
type Command struct {
	Type       string `json:"type"`
	Bet        int    `json:"bet,omitempty"`
	Delta      int    `json:"delta,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Upgrade    string `json:"upgrade,omitempty"`
}

// Snapshot is the reply to every successful command
type Snapshot struct {
	Type      string     `json:"type"`
	SessionID string     `json:"session_id"`
	Round     RoundView  `json:"round"`
	Player    PlayerView `json:"player"`
	// Purchased is set only in reply to purchase_upgrade
	Purchased *bool `json:"purchased,omitempty"`
}

// RoundView is the client-facing round state. The dealer hole card is
// replaced with ConcealedCard while the player is acting.
type RoundView struct {
	Number          int      `json:"number"`
	Phase           string   `json:"phase"`
	Roulette        bool     `json:"roulette"`
	PlayerHand      []string `json:"player_hand"`
	PlayerValue     int      `json:"player_value"`
	DealerHand      []string `json:"dealer_hand"`
	DealerValue     int      `json:"dealer_value"`
	DealerConcealed bool     `json:"dealer_concealed"`
	Message         string   `json:"message,omitempty"`
	Notes           []string `json:"notes,omitempty"`
	Outcome         string   `json:"outcome,omitempty"`
	Delta           int      `json:"delta"`
	Burned          string   `json:"burned,omitempty"`
}

// UpgradeView is one upgrade slot
type UpgradeView struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
	Max   int    `json:"max"`
}

// PlayerView is the client-facing player state
type PlayerView struct {
	Money        int           `json:"money"`
	Bet          int           `json:"bet"`
	Wins         int           `json:"wins"`
	RoundsPlayed int           `json:"rounds_played"`
	Points       int           `json:"points"`
	Upgrades     []UpgradeView `json:"upgrades"`
	Difficulty   string        `json:"difficulty"`
	Roulette     bool          `json:"roulette"`
	Streak       int           `json:"streak"`
	Multiplier   int           `json:"multiplier"`
	Broke        bool          `json:"broke"`
}

// ErrorMessage reports a rejected command. The session state is unchanged
// unless Code is CodeDeckExhausted, in which case the round was abandoned.
type ErrorMessage struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewSnapshot renders engine state for a client
func NewSnapshot(sessionID string, round game.RoundState, player game.PlayerState) *Snapshot {
	return &Snapshot{
		Type:      TypeSnapshot,
		SessionID: sessionID,
		Round:     NewRoundView(round),
		Player:    NewPlayerView(player),
	}
}

// NewRoundView converts a round snapshot
func NewRoundView(r game.RoundState) RoundView {
	v := RoundView{
		Number:          r.Round,
		Phase:           r.Phase.String(),
		Roulette:        r.Roulette,
		PlayerHand:      make([]string, 0, len(r.PlayerHand)),
		PlayerValue:     r.PlayerHand.Value(),
		DealerHand:      make([]string, 0, len(r.DealerHand)),
		DealerValue:     r.VisibleDealerValue(),
		DealerConcealed: r.DealerConcealed,
		Message:         r.Message,
		Notes:           r.Notes,
		Delta:           r.Delta,
	}
	if r.Outcome != game.OutcomeNone {
		v.Outcome = r.Outcome.String()
	}
	for _, c := range r.PlayerHand {
		v.PlayerHand = append(v.PlayerHand, c.String())
	}
	for i, c := range r.DealerHand {
		if i == 0 && r.DealerConcealed {
			v.DealerHand = append(v.DealerHand, ConcealedCard)
			continue
		}
		v.DealerHand = append(v.DealerHand, c.String())
	}
	if r.Burned != nil {
		v.Burned = r.Burned.String()
	}
	return v
}

// NewPlayerView converts player state
func NewPlayerView(p game.PlayerState) PlayerView {
	v := PlayerView{
		Money:        p.Money,
		Bet:          p.Bet,
		Wins:         p.Wins,
		RoundsPlayed: p.RoundsPlayed,
		Points:       p.Upgrades.Points(),
		Difficulty:   p.Difficulty.String(),
		Roulette:     p.Roulette,
		Streak:       p.RouletteRun.Streak,
		Multiplier:   p.RouletteRun.Multiplier(),
		Broke:        p.Money == 0,
	}
	for _, u := range game.AllUpgrades {
		slot := p.Upgrades.Slot(u)
		v.Upgrades = append(v.Upgrades, UpgradeView{Name: u.String(), Level: slot.Level, Max: slot.Max})
	}
	return v
}

// NewError builds an error reply
func NewError(code, message string) *ErrorMessage {
	return &ErrorMessage{Type: TypeError, Code: code, Message: message}
}
