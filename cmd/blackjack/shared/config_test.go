package shared

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lox/blackjack/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDifficultyOverride(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "blackjack.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
table {
  difficulty = "easy"
  min_bet    = 25
}
`), 0o644))

	cfg, err := LoadConfig(path, "")
	require.NoError(t, err)
	assert.Equal(t, game.Easy, cfg.Rules().Difficulty)
	assert.Equal(t, 25, cfg.Rules().MinBet)

	cfg, err = LoadConfig(path, "HARD")
	require.NoError(t, err)
	assert.Equal(t, game.Hard, cfg.Rules().Difficulty)

	_, err = LoadConfig(path, "brutal")
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Parallel()
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "none.hcl"), "")
	require.NoError(t, err)
	assert.Equal(t, game.DefaultRules(), cfg.Rules())
}

func TestSetupLevelLogger(t *testing.T) {
	t.Parallel()
	_, err := SetupLevelLogger("warn", false)
	assert.NoError(t, err)
	_, err = SetupLevelLogger("loud", false)
	assert.Error(t, err)
	_, err = SetupLevelLogger("loud", true)
	assert.NoError(t, err)
}
