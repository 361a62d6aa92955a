// Package config loads table and server settings from an HCL file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/blackjack/internal/game"
)

// Config represents the complete configuration file
type Config struct {
	Table  TableSettings  `hcl:"table,block"`
	Server ServerSettings `hcl:"server,block"`
}

// TableSettings are the rules every session starts with
type TableSettings struct {
	StartingMoney  int    `hcl:"starting_money,optional"`
	MinBet         int    `hcl:"min_bet,optional"`
	DefaultBet     int    `hcl:"default_bet,optional"`
	BetStep        int    `hcl:"bet_step,optional"`
	RoulettePayout int    `hcl:"roulette_payout,optional"`
	Difficulty     string `hcl:"difficulty,optional"`
}

// ServerSettings configures the WebSocket front end
type ServerSettings struct {
	Address            string `hcl:"address,optional"`
	IdleTimeoutSeconds int    `hcl:"idle_timeout_seconds,optional"`
	LogLevel           string `hcl:"log_level,optional"`
}

// Default returns the built-in configuration
func Default() *Config {
	rules := game.DefaultRules()
	return &Config{
		Table: TableSettings{
			StartingMoney:  rules.StartingMoney,
			MinBet:         rules.MinBet,
			DefaultBet:     rules.DefaultBet,
			BetStep:        10,
			RoulettePayout: rules.RoulettePayout,
			Difficulty:     rules.Difficulty.String(),
		},
		Server: ServerSettings{
			Address:            ":8080",
			IdleTimeoutSeconds: 300,
			LogLevel:           "info",
		},
	}
}

// Load reads filename. A missing file yields the defaults; an empty filename
// does too.
func Load(filename string) (*Config, error) {
	if filename == "" {
		return Default(), nil
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source and fills in defaults for anything left unset
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw struct {
		Table  *TableSettings  `hcl:"table,block"`
		Server *ServerSettings `hcl:"server,block"`
	}
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := Default()
	if raw.Table != nil {
		mergeTable(&cfg.Table, *raw.Table)
	}
	if raw.Server != nil {
		mergeServer(&cfg.Server, *raw.Server)
	}
	return cfg, nil
}

func mergeTable(dst *TableSettings, src TableSettings) {
	if src.StartingMoney != 0 {
		dst.StartingMoney = src.StartingMoney
	}
	if src.MinBet != 0 {
		dst.MinBet = src.MinBet
	}
	if src.DefaultBet != 0 {
		dst.DefaultBet = src.DefaultBet
	}
	if src.BetStep != 0 {
		dst.BetStep = src.BetStep
	}
	if src.RoulettePayout != 0 {
		dst.RoulettePayout = src.RoulettePayout
	}
	if src.Difficulty != "" {
		dst.Difficulty = src.Difficulty
	}
}

func mergeServer(dst *ServerSettings, src ServerSettings) {
	if src.Address != "" {
		dst.Address = src.Address
	}
	if src.IdleTimeoutSeconds != 0 {
		dst.IdleTimeoutSeconds = src.IdleTimeoutSeconds
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
}

// Validate checks the configuration for values the engine cannot run with
func (c *Config) Validate() error {
	t := c.Table
	if t.MinBet <= 0 {
		return fmt.Errorf("table: min_bet must be positive")
	}
	if t.StartingMoney < t.MinBet {
		return fmt.Errorf("table: starting_money %d is below min_bet %d", t.StartingMoney, t.MinBet)
	}
	if t.DefaultBet < t.MinBet || t.DefaultBet > t.StartingMoney {
		return fmt.Errorf("table: default_bet %d must be within [%d, %d]", t.DefaultBet, t.MinBet, t.StartingMoney)
	}
	if t.BetStep <= 0 {
		return fmt.Errorf("table: bet_step must be positive")
	}
	if t.RoulettePayout <= 0 || t.RoulettePayout > game.MaxRoulettePayout {
		return fmt.Errorf("table: roulette_payout must be within [1, %d]", game.MaxRoulettePayout)
	}
	if _, err := game.ParseDifficulty(t.Difficulty); err != nil {
		return fmt.Errorf("table: %w", err)
	}

	if c.Server.IdleTimeoutSeconds <= 0 {
		return fmt.Errorf("server: idle_timeout_seconds must be positive")
	}
	switch c.Server.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("server: invalid log_level %q", c.Server.LogLevel)
	}
	return nil
}

// Rules converts the table settings into engine rules. Call Validate first.
func (c *Config) Rules() game.Rules {
	difficulty, _ := game.ParseDifficulty(c.Table.Difficulty)
	return game.Rules{
		StartingMoney:  c.Table.StartingMoney,
		MinBet:         c.Table.MinBet,
		DefaultBet:     c.Table.DefaultBet,
		RoulettePayout: c.Table.RoulettePayout,
		Difficulty:     difficulty,
	}
}

// IdleTimeout returns the server idle timeout as a duration
func (c *Config) IdleTimeout() time.Duration {
	return time.Duration(c.Server.IdleTimeoutSeconds) * time.Second
}
