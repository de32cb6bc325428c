// Package config loads process configuration from a YAML file, environment
// variables prefixed with DECKBUILDER_ and built-in defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/peterkuimelis/deckbuilder/internal/game"
)

const EnvPrefix = "DECKBUILDER"

type Config struct {
	Match   MatchConfig   `mapstructure:"match"`
	Logging LoggingConfig `mapstructure:"log"`
	Server  ServerConfig  `mapstructure:"server"`
	Web     WebConfig     `mapstructure:"web"`
	MCP     MCPConfig     `mapstructure:"mcp"`
}

// MatchConfig describes a match. Players holds one strategy name per seat.
type MatchConfig struct {
	Players     []string `mapstructure:"players"`
	Names       []string `mapstructure:"names"`
	Kingdom     []string `mapstructure:"kingdom"`
	Sets        []string `mapstructure:"sets"`
	Seed        int64    `mapstructure:"seed"`
	FirstPlayer int      `mapstructure:"first_player"`
	MaxTurns    int      `mapstructure:"max_turns"`
	Presets     string   `mapstructure:"presets"`
	Preset      string   `mapstructure:"preset"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "console"
	Events bool   `mapstructure:"events"` // print the game event log
}

type ServerConfig struct {
	Host string   `mapstructure:"host"`
	Port int      `mapstructure:"port"`
	Bots []string `mapstructure:"bots"`
}

// Addr is the host:port the game server listens on.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type WebConfig struct {
	Port     int    `mapstructure:"port"`
	GameAddr string `mapstructure:"game_addr"`
}

type MCPConfig struct {
	Opponents []string `mapstructure:"opponents"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("match.players", []string{"BigMoney", "BigMoney"})
	v.SetDefault("match.names", []string{})
	v.SetDefault("match.kingdom", []string{})
	v.SetDefault("match.sets", game.DefaultSets)
	v.SetDefault("match.seed", 0)
	v.SetDefault("match.first_player", 0)
	v.SetDefault("match.max_turns", game.DefaultMaxTurns)
	v.SetDefault("match.presets", "kingdoms.yaml")
	v.SetDefault("match.preset", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.events", true)

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 9000)
	v.SetDefault("server.bots", []string{})

	v.SetDefault("web.port", 8080)
	v.SetDefault("web.game_addr", "localhost:9000")

	v.SetDefault("mcp.opponents", []string{"BigMoney"})
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	cfg, err := load(viper.New(), "")
	if err != nil {
		panic(err) // defaults always decode
	}
	return cfg
}

// Load reads path (skipped when empty), applies DECKBUILDER_* environment
// overrides and validates the result. Nested keys map to env names with
// underscores, e.g. DECKBUILDER_SERVER_PORT.
func Load(path string) (*Config, error) {
	cfg, err := load(viper.New(), path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func load(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the values the engine would otherwise reject late.
func (c *Config) Validate() error {
	m := c.Match
	if n := len(m.Players); n < game.MinPlayers || n > game.MaxPlayers {
		return fmt.Errorf("match.players: %d players, want %d..%d", n, game.MinPlayers, game.MaxPlayers)
	}
	if len(m.Names) > 0 && len(m.Names) != len(m.Players) {
		return fmt.Errorf("match.names: %d names for %d players", len(m.Names), len(m.Players))
	}
	if m.FirstPlayer < 0 || m.FirstPlayer > len(m.Players) {
		return fmt.Errorf("match.first_player: %d out of range", m.FirstPlayer)
	}
	if m.MaxTurns < 0 {
		return fmt.Errorf("match.max_turns: must not be negative")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port: %d out of range", c.Server.Port)
	}
	if c.Web.Port <= 0 || c.Web.Port > 65535 {
		return fmt.Errorf("web.port: %d out of range", c.Web.Port)
	}
	if _, err := parseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

// KingdomCards returns the kingdom and sets to play with. A named preset
// replaces the explicit kingdom and set lists.
func (m MatchConfig) KingdomCards() ([]string, []string, error) {
	if m.Preset == "" {
		return m.Kingdom, m.Sets, nil
	}
	k, err := game.KingdomByName(m.Presets, m.Preset)
	if err != nil {
		return nil, nil, err
	}
	return k.Cards, k.Sets, nil
}

func parseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("log.level: unknown level %q", s)
}

// NewLogger builds the diagnostics logger.
func NewLogger(cfg LoggingConfig) (*zap.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	// Keep stdout free for game output and the MCP stdio transport.
	zapCfg.OutputPaths = []string{"stderr"}

	return zapCfg.Build()
}
