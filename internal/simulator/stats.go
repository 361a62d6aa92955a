package simulator

import (
	"fmt"
	"strings"

	"github.com/lox/blackjack/internal/game"
)

// Stats aggregates settled rounds across sessions
type Stats struct {
	Sessions int
	Rounds   int

	Wins             int
	Blackjacks       int
	Losses           int
	Busts            int
	DealerBlackjacks int
	Pushes           int
	RouletteSurvived int
	RouletteDeaths   int
	Burns            int

	Wagered    int64
	Net        int64
	FinalMoney int64
	MaxMoney   int
	MaxStreak  int

	Broke    int
	Upgrades int
}

// Observe counts one settled round. It has the shape of a game.SettleHook.
func (s *Stats) Observe(r game.RoundRecord) {
	s.Rounds++
	s.Wagered += int64(r.Bet)
	s.Net += int64(r.Delta)
	s.MaxMoney = max(s.MaxMoney, r.MoneyAfter)
	s.MaxStreak = max(s.MaxStreak, r.Streak)
	if r.Burned != nil {
		s.Burns++
	}

	switch r.Outcome {
	case game.OutcomeWin:
		s.Wins++
	case game.OutcomeBlackjack:
		s.Blackjacks++
	case game.OutcomeLoss:
		s.Losses++
	case game.OutcomeBust:
		s.Busts++
	case game.OutcomeDealerBlackjack:
		s.DealerBlackjacks++
	case game.OutcomePush:
		s.Pushes++
	case game.OutcomeRouletteSurvived:
		s.RouletteSurvived++
	case game.OutcomeRouletteDeath:
		s.RouletteDeaths++
	}
}

// Merge adds o into s
func (s *Stats) Merge(o Stats) {
	s.Sessions += o.Sessions
	s.Rounds += o.Rounds
	s.Wins += o.Wins
	s.Blackjacks += o.Blackjacks
	s.Losses += o.Losses
	s.Busts += o.Busts
	s.DealerBlackjacks += o.DealerBlackjacks
	s.Pushes += o.Pushes
	s.RouletteSurvived += o.RouletteSurvived
	s.RouletteDeaths += o.RouletteDeaths
	s.Burns += o.Burns
	s.Wagered += o.Wagered
	s.Net += o.Net
	s.FinalMoney += o.FinalMoney
	s.MaxMoney = max(s.MaxMoney, o.MaxMoney)
	s.MaxStreak = max(s.MaxStreak, o.MaxStreak)
	s.Broke += o.Broke
	s.Upgrades += o.Upgrades
}

// WinRate is the share of rounds that counted as wins
func (s Stats) WinRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Wins+s.Blackjacks) / float64(s.Rounds)
}

// AverageFinalMoney is the mean bankroll at the end of a session
func (s Stats) AverageFinalMoney() float64 {
	if s.Sessions == 0 {
		return 0
	}
	return float64(s.FinalMoney) / float64(s.Sessions)
}

// Summary renders the stats for terminal output
func (s Stats) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sessions: %d  Rounds: %d  Broke: %d\n", s.Sessions, s.Rounds, s.Broke)
	fmt.Fprintf(&b, "Wins: %d  Blackjacks: %d  Pushes: %d\n", s.Wins, s.Blackjacks, s.Pushes)
	fmt.Fprintf(&b, "Losses: %d  Busts: %d  Dealer blackjacks: %d\n", s.Losses, s.Busts, s.DealerBlackjacks)
	if s.RouletteSurvived+s.RouletteDeaths > 0 {
		fmt.Fprintf(&b, "Roulette: %d survived, %d deaths, best streak %d\n", s.RouletteSurvived, s.RouletteDeaths, s.MaxStreak)
	}
	fmt.Fprintf(&b, "Win rate: %.1f%%  Burns: %d  Upgrades bought: %d\n", s.WinRate()*100, s.Burns, s.Upgrades)
	fmt.Fprintf(&b, "Wagered: $%d  Net: $%+d  Avg final bankroll: $%.0f  Peak: $%d\n",
		s.Wagered, s.Net, s.AverageFinalMoney(), s.MaxMoney)
	return b.String()
}
