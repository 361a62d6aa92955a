// Package simulator plays many seeded blackjack sessions with a fixed
// strategy and aggregates the results.
package simulator

import (
	"context"
	"fmt"
	"time"

	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/history"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for running simulations
type Config struct {
	Sessions int
	// Rounds caps each session; a session also ends once the player cannot
	// cover the minimum bet
	Rounds   int
	Workers  int
	Seed     int64
	Rules    game.Rules
	Strategy Strategy
	Logger   zerolog.Logger
	// Record keeps a history of every session in the result
	Record    bool
	StartedAt time.Time
}

// Result is the outcome of a simulation run
type Result struct {
	Stats    Stats
	Sessions []*history.Session
	Duration time.Duration
}

// Simulator runs blackjack session simulations
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = 1
	}
	if config.Rules.MinBet == 0 {
		config.Rules = game.DefaultRules()
	}
	if config.Strategy.StandOn == 0 {
		config.Strategy = DefaultStrategy()
	}
	return &Simulator{config: config}
}

// Run plays every session and returns the merged statistics. Session i always
// uses the i-th derived seed, so results do not depend on the worker count.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	cfg := s.config
	if cfg.Sessions <= 0 || cfg.Rounds <= 0 {
		return nil, fmt.Errorf("sessions and rounds must be positive")
	}

	start := time.Now()
	stats := make([]Stats, cfg.Sessions)
	sessions := make([]*history.Session, cfg.Sessions)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := 0; i < cfg.Sessions; i++ {
		seed := randutil.Derive(cfg.Seed, i)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			st, hist, err := s.playSession(seed)
			if err != nil {
				return fmt.Errorf("session %d: %w", i, err)
			}
			stats[i] = st
			sessions[i] = hist
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{Duration: time.Since(start)}
	for i := range stats {
		result.Stats.Merge(stats[i])
	}
	if cfg.Record {
		result.Sessions = sessions
	}

	cfg.Logger.Info().
		Int("sessions", result.Stats.Sessions).
		Int("rounds", result.Stats.Rounds).
		Int("workers", cfg.Workers).
		Dur("duration", result.Duration).
		Msg("Simulation complete")
	return result, nil
}

func (s *Simulator) playSession(seed int64) (Stats, *history.Session, error) {
	cfg := s.config
	st := Stats{Sessions: 1}

	hook := game.SettleHook(st.Observe)
	var rec *history.Recorder
	if cfg.Record {
		rec = history.NewRecorder(seed, cfg.Rules.StartingMoney, cfg.StartedAt)
		hook = chainHooks(st.Observe, rec.Add)
	}
	e := game.New(randutil.New(seed), game.WithRules(cfg.Rules), game.WithSettleHook(hook))
	player := newPlayer(cfg.Strategy)

	for round := 0; round < cfg.Rounds && player.canPlay(e); round++ {
		if err := player.playRound(e); err != nil {
			return st, nil, err
		}
	}

	p := e.Player()
	st.FinalMoney = int64(p.Money)
	st.Upgrades = player.bought
	if !player.canPlay(e) {
		st.Broke = 1
	}

	var hist *history.Session
	if rec != nil {
		hist = rec.Session()
	}
	return st, hist, nil
}

func chainHooks(hooks ...game.SettleHook) game.SettleHook {
	return func(r game.RoundRecord) {
		for _, h := range hooks {
			h(r)
		}
	}
}
