package game

import (
	"fmt"
	"strings"

	"github.com/lox/blackjack/blackjack"
)

// Phase is a step in the round lifecycle
type Phase uint8

const (
	Betting Phase = iota
	Dealt
	PlayerTurn
	DealerResolving
	Settled
)

func (p Phase) String() string {
	switch p {
	case Betting:
		return "betting"
	case Dealt:
		return "dealt"
	case PlayerTurn:
		return "player_turn"
	case DealerResolving:
		return "dealer_resolving"
	case Settled:
		return "settled"
	default:
		return "unknown"
	}
}

// Difficulty selects the dealer's base stand threshold
type Difficulty uint8

const (
	Easy Difficulty = iota
	Normal
	Hard
)

// StandThreshold returns the base threshold before upgrades apply
func (d Difficulty) StandThreshold() int {
	switch d {
	case Easy:
		return 15
	case Hard:
		return 19
	default:
		return 17
	}
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "Easy"
	case Normal:
		return "Normal"
	case Hard:
		return "Hard"
	default:
		return "Unknown"
	}
}

// Valid reports whether d is one of the known difficulties
func (d Difficulty) Valid() bool {
	return d <= Hard
}

// ParseDifficulty accepts "easy", "normal" or "hard" in any case
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "normal", "":
		return Normal, nil
	case "hard":
		return Hard, nil
	default:
		return Normal, fmt.Errorf("unknown difficulty %q", s)
	}
}

// Outcome is how a settled round ended
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeBlackjack
	OutcomeLoss
	OutcomeBust
	OutcomeDealerBlackjack
	OutcomePush
	OutcomeRouletteSurvived
	OutcomeRouletteDeath
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeBlackjack:
		return "blackjack"
	case OutcomeLoss:
		return "loss"
	case OutcomeBust:
		return "bust"
	case OutcomeDealerBlackjack:
		return "dealer_blackjack"
	case OutcomePush:
		return "push"
	case OutcomeRouletteSurvived:
		return "roulette_survived"
	case OutcomeRouletteDeath:
		return "roulette_death"
	default:
		return "none"
	}
}

// IsWin reports outcomes that count toward the win counter
func (o Outcome) IsWin() bool {
	return o == OutcomeWin || o == OutcomeBlackjack
}

// PlayerState is the session-lifetime state owned by the engine
type PlayerState struct {
	Money        int
	Bet          int
	Wins         int
	RoundsPlayed int
	Upgrades     UpgradeSystem
	Difficulty   Difficulty
	Roulette     bool
	RouletteRun  RouletteState
}

// RoundState is an immutable snapshot of the current round. The engine
// replaces it on every phase transition.
type RoundState struct {
	Round      int
	Phase      Phase
	Roulette   bool
	PlayerHand blackjack.Hand
	DealerHand blackjack.Hand
	Message    string
	Notes      []string
	Outcome    Outcome
	// Delta is the money change applied at settlement
	Delta int
	// DealerConcealed is true only while the player is acting
	DealerConcealed bool
	// Burned is the dealer card discarded by the nerves upgrade, if any
	Burned *blackjack.Card
}

func (r RoundState) clone() RoundState {
	out := r
	out.PlayerHand = r.PlayerHand.Clone()
	out.DealerHand = r.DealerHand.Clone()
	if r.Notes != nil {
		out.Notes = append([]string(nil), r.Notes...)
	}
	if r.Burned != nil {
		c := *r.Burned
		out.Burned = &c
	}
	return out
}

// VisibleDealerValue is the dealer total the player is allowed to see
func (r RoundState) VisibleDealerValue() int {
	if r.DealerConcealed && len(r.DealerHand) > 0 {
		return r.DealerHand[1:].Value()
	}
	return r.DealerHand.Value()
}
