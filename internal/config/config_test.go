package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/deckbuilder/internal/game"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, []string{"BigMoney", "BigMoney"}, cfg.Match.Players)
	assert.Equal(t, game.DefaultSets, cfg.Match.Sets)
	assert.Equal(t, game.DefaultMaxTurns, cfg.Match.MaxTurns)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, ":9000", cfg.Server.Addr())
	assert.Equal(t, "localhost:9000", cfg.Web.GameAddr)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, "config.yaml", `
match:
  players: [BigMoney, Attacker, Gardener]
  names: [alice, bob, carol]
  kingdom: [Witch, Gardens]
  seed: 99
  first_player: 2
log:
  level: debug
  format: json
server:
  port: 9100
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"BigMoney", "Attacker", "Gardener"}, cfg.Match.Players)
	assert.Equal(t, []string{"alice", "bob", "carol"}, cfg.Match.Names)
	assert.Equal(t, []string{"Witch", "Gardens"}, cfg.Match.Kingdom)
	assert.EqualValues(t, 99, cfg.Match.Seed)
	assert.Equal(t, 2, cfg.Match.FirstPlayer)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, 8080, cfg.Web.Port, "unset keys keep their defaults")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DECKBUILDER_SERVER_PORT", "9200")
	t.Setenv("DECKBUILDER_LOG_LEVEL", "warn")
	t.Setenv("DECKBUILDER_MATCH_SEED", "5")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9200, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.EqualValues(t, 5, cfg.Match.Seed)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	tests := map[string]string{
		"one player":     "match:\n  players: [BigMoney]\n",
		"seven players":  "match:\n  players: [a, b, c, d, e, f, g]\n",
		"names mismatch": "match:\n  players: [a, b]\n  names: [x]\n",
		"first player":   "match:\n  first_player: 3\n",
		"bad port":       "server:\n  port: 70000\n",
		"bad level":      "log:\n  level: loud\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, "config.yaml", body))
			assert.Error(t, err)
		})
	}
}

func TestKingdomCardsFromPreset(t *testing.T) {
	presets := writeFile(t, "kingdoms.yaml", `kingdoms:
  - name: Big Money
    cards: [Adventurer, Bureaucrat, Chancellor, Chapel, Feast, Laboratory, Market, Mine, Moneylender, Throne Room]
    sets: [Base]
`)
	m := Default().Match
	cards, sets, err := m.KingdomCards()
	require.NoError(t, err)
	assert.Empty(t, cards)
	assert.Equal(t, game.DefaultSets, sets)

	m.Presets, m.Preset = presets, "big money"
	cards, sets, err = m.KingdomCards()
	require.NoError(t, err)
	assert.Len(t, cards, game.KingdomSize)
	assert.Equal(t, []string{"Base"}, sets)

	m.Preset = "Nope"
	_, _, err = m.KingdomCards()
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		l, err := NewLogger(LoggingConfig{Level: "debug", Format: format})
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(-1), "debug enabled")
	}
	l, err := NewLogger(LoggingConfig{Level: "error"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(0), "info disabled at error level")

	_, err = NewLogger(LoggingConfig{Level: "verbose"})
	assert.Error(t, err)
}
