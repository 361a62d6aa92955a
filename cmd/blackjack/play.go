package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/tui"
)

// PlayCmd runs the interactive terminal UI
type PlayCmd struct {
	Seed       *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Difficulty string `kong:"help='Dealer difficulty: easy, normal or hard (overrides config)'"`
	NoColor    bool   `kong:"help='Disable colour output'"`
	LogFile    string `kong:"default='blackjack.log',type='path',help='Log file for the terminal UI'"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := shared.LoadConfig(g.Config, c.Difficulty)
	if err != nil {
		return err
	}

	logger, closer, err := shared.SetupFileLogger(c.LogFile, g.Debug)
	if err != nil {
		return err
	}
	defer closer.Close()

	seed := randutil.Seed(c.Seed)
	logger.Info("Starting terminal UI", "seed", seed, "difficulty", cfg.Table.Difficulty)

	rules := cfg.Rules()
	sessions := 0
	factory := func() *game.Engine {
		s := randutil.Derive(seed, sessions)
		sessions++
		logger.Debug("Session seed", "seed", s)
		return game.New(randutil.New(s), game.WithRules(rules))
	}

	tui.ConfigureColor(c.NoColor)
	model := tui.New(factory, logger, cfg.Table.BetStep)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}
