package shared

import (
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/game"
)

// LoadConfig reads and validates the config file, then applies a difficulty
// override from the command line when one is given.
func LoadConfig(path, difficulty string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if difficulty != "" {
		d, err := game.ParseDifficulty(difficulty)
		if err != nil {
			return nil, err
		}
		cfg.Table.Difficulty = d.String()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
