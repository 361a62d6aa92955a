// Package history writes settled rounds of a session as TOML.
package history

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lox/blackjack/internal/fileutil"
	"github.com/lox/blackjack/internal/game"
)

// Session is the encoded form of one player session
type Session struct {
	Seed          int64     `toml:"seed"`
	StartedAt     time.Time `toml:"started_at"`
	StartingMoney int       `toml:"starting_money"`
	FinalMoney    int       `toml:"final_money"`
	Rounds        []Round   `toml:"round"`
}

// Round is the encoded form of a game.RoundRecord
type Round struct {
	Number     int      `toml:"number"`
	Mode       string   `toml:"mode"`
	Difficulty string   `toml:"difficulty,omitempty"`
	Bet        int      `toml:"bet,omitempty"`
	Player     []string `toml:"player,omitempty"`
	Dealer     []string `toml:"dealer,omitempty"`
	Burned     string   `toml:"burned,omitempty"`
	Outcome    string   `toml:"outcome"`
	Delta      int      `toml:"delta"`
	Money      int      `toml:"money"`
	Streak     int      `toml:"streak,omitempty"`
}

// Recorder collects records from an engine settle hook
type Recorder struct {
	session Session
}

// NewRecorder starts a history for a session
func NewRecorder(seed int64, startingMoney int, startedAt time.Time) *Recorder {
	return &Recorder{session: Session{
		Seed:          seed,
		StartedAt:     startedAt.UTC(),
		StartingMoney: startingMoney,
		FinalMoney:    startingMoney,
	}}
}

// Hook returns a game.SettleHook that appends to the recorder
func (r *Recorder) Hook() game.SettleHook {
	return r.Add
}

// Add appends one settled round
func (r *Recorder) Add(rec game.RoundRecord) {
	r.session.Rounds = append(r.session.Rounds, FromRecord(rec))
	r.session.FinalMoney = rec.MoneyAfter
}

// Session returns the collected history
func (r *Recorder) Session() *Session {
	s := r.session
	s.Rounds = append([]Round(nil), r.session.Rounds...)
	return &s
}

// FromRecord converts an engine record into its encoded form
func FromRecord(rec game.RoundRecord) Round {
	out := Round{
		Number:  rec.Round,
		Mode:    "standard",
		Outcome: rec.Outcome.String(),
		Delta:   rec.Delta,
		Money:   rec.MoneyAfter,
	}
	if rec.Roulette {
		out.Mode = "roulette"
		out.Streak = rec.Streak
		return out
	}

	out.Difficulty = rec.Difficulty.String()
	out.Bet = rec.Bet
	for _, c := range rec.PlayerHand {
		out.Player = append(out.Player, c.String())
	}
	for _, c := range rec.DealerHand {
		out.Dealer = append(out.Dealer, c.String())
	}
	if rec.Burned != nil {
		out.Burned = rec.Burned.String()
	}
	return out
}

// Encode writes sessions to w in TOML
func Encode(w io.Writer, sessions ...*Session) error {
	for _, s := range sessions {
		if s == nil {
			return fmt.Errorf("history: session is nil")
		}
	}

	doc := struct {
		Session []*Session `toml:"session"`
	}{Session: sessions}

	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(doc)
}

// Decode reads sessions previously written by Encode
func Decode(r io.Reader) ([]*Session, error) {
	var doc struct {
		Session []*Session `toml:"session"`
	}
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return doc.Session, nil
}

// EncodeToString is Encode into a string
func EncodeToString(sessions ...*Session) (string, error) {
	var buf strings.Builder
	if err := Encode(&buf, sessions...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteFile encodes sessions to path, replacing any previous file atomically
func WriteFile(path string, sessions ...*Session) error {
	return fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return Encode(w, sessions...)
	})
}

// ReadFile decodes a history file written by WriteFile
func ReadFile(path string) ([]*Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}
