package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/history"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/simulator"
)

// SimulateCmd plays many sessions with a fixed strategy
type SimulateCmd struct {
	Sessions   int    `kong:"default='1000',help='Number of sessions to simulate'"`
	Rounds     int    `kong:"default='100',help='Maximum rounds per session'"`
	Workers    int    `kong:"default='0',help='Parallel workers (0 = number of CPUs)'"`
	Seed       *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Bet        int    `kong:"default='100',help='Flat bet per round'"`
	StandOn    int    `kong:"default='17',help='Stand on this value or higher'"`
	Roulette   bool   `kong:"help='Play every round as Russian roulette'"`
	NoUpgrades bool   `kong:"help='Never buy upgrades'"`
	Difficulty string `kong:"help='Dealer difficulty: easy, normal or hard (overrides config)'"`
	History    string `kong:"type='path',help='Write every session history to this TOML file'"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := shared.LoadConfig(g.Config, c.Difficulty)
	if err != nil {
		return err
	}
	logger := shared.SetupLogger(g.Debug)
	ctx := shared.SetupSignalHandlerWithLogger(logger)

	workers := c.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	seed := randutil.Seed(c.Seed)
	rules := cfg.Rules()
	difficulty, _ := game.ParseDifficulty(cfg.Table.Difficulty)

	logger.Info().
		Int("sessions", c.Sessions).
		Int("rounds", c.Rounds).
		Int("workers", workers).
		Int64("seed", seed).
		Str("difficulty", difficulty.String()).
		Msg("Starting simulation")

	sim := simulator.New(simulator.Config{
		Sessions: c.Sessions,
		Rounds:   c.Rounds,
		Workers:  workers,
		Seed:     seed,
		Rules:    rules,
		Strategy: simulator.Strategy{
			StandOn:     c.StandOn,
			Bet:         c.Bet,
			Roulette:    c.Roulette,
			BuyUpgrades: !c.NoUpgrades,
			Difficulty:  difficulty,
		},
		Logger:    logger,
		Record:    c.History != "",
		StartedAt: time.Now(),
	})

	result, err := sim.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	fmt.Print(result.Stats.Summary())

	if c.History != "" {
		if err := history.WriteFile(c.History, result.Sessions...); err != nil {
			return fmt.Errorf("failed to write history: %w", err)
		}
		logger.Info().Str("path", c.History).Int("sessions", len(result.Sessions)).Msg("History written")
	}
	return nil
}
