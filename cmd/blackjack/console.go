package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chzyer/readline"
	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/console"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/history"
	"github.com/lox/blackjack/internal/randutil"
)

// ConsoleCmd plays with plain line prompts
type ConsoleCmd struct {
	Seed       *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Difficulty string `kong:"help='Dealer difficulty: easy, normal or hard (overrides config)'"`
	History    string `kong:"type='path',help='Write the session history to this TOML file'"`
}

func (c *ConsoleCmd) Run(g *Globals) error {
	cfg, err := shared.LoadConfig(g.Config, c.Difficulty)
	if err != nil {
		return err
	}
	logger, err := shared.SetupLevelLogger("warn", g.Debug)
	if err != nil {
		return err
	}

	seed := randutil.Seed(c.Seed)
	rules := cfg.Rules()
	opts := []game.Option{game.WithRules(rules), game.WithLogger(logger)}

	var rec *history.Recorder
	if c.History != "" {
		rec = history.NewRecorder(seed, rules.StartingMoney, time.Now())
		opts = append(opts, game.WithSettleHook(rec.Hook()))
	}
	engine := game.New(randutil.New(seed), opts...)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     filepath.Join(os.TempDir(), "blackjack_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to start readline: %w", err)
	}
	defer rl.Close()

	if err := console.New(rl, rl.Stdout(), engine, logger).Run(); err != nil {
		return err
	}

	if rec != nil {
		if err := history.WriteFile(c.History, rec.Session()); err != nil {
			return fmt.Errorf("failed to write history: %w", err)
		}
		logger.Info().Str("path", c.History).Int64("seed", seed).Msg("History written")
	}
	return nil
}
