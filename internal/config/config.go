package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/statiolake/rich-rich-daifugo-sub002/internal/game/rules"
)

// Config is the full server configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Rules    RulesConfig    `mapstructure:"rules"`
}

// ServerConfig holds the serving parameters.
type ServerConfig struct {
	WebSocket   WebSocketConfig `mapstructure:"websocket"`
	MaxSessions int             `mapstructure:"max_sessions"`
	LeasePeriod time.Duration   `mapstructure:"lease_period"`
}

// WebSocketConfig holds the websocket listener parameters.
type WebSocketConfig struct {
	Address string `mapstructure:"address"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "console"
}

// DatabaseConfig holds the PostgreSQL connection parameters. An empty
// URL disables persistence.
type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	MaxConns int32  `mapstructure:"max_conns"`
}

// AuthConfig holds table access control. TablePasswordHash is a bcrypt
// hash; empty means public tables.
type AuthConfig struct {
	TablePasswordHash string `mapstructure:"table_password_hash"`
}

// RulesConfig selects the variant rule set: a named preset with
// per-toggle overrides on top. Unknown or absent toggles stay disabled.
type RulesConfig struct {
	Preset    string           `mapstructure:"preset"` // "standard" or "kitchen_sink"
	Overrides rules.RuleConfig `mapstructure:"overrides"`
	// UseOverrides replaces the preset entirely with Overrides.
	UseOverrides bool `mapstructure:"use_overrides"`
}

// RuleConfig resolves the configured rule set.
func (rc RulesConfig) RuleConfig() rules.RuleConfig {
	if rc.UseOverrides {
		return rc.Overrides
	}
	switch rc.Preset {
	case "kitchen_sink":
		return rules.KitchenSinkRules()
	default:
		return rules.StandardRules()
	}
}

// Load reads configuration from the given YAML file, with environment
// overrides under the DAIFUGO_ prefix. Missing file is not an error;
// defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("DAIFUGO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			// viper wraps open errors differently per backend; a missing
			// file simply means defaults.
			if !strings.Contains(err.Error(), "no such file") {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.websocket.address", ":8080")
	v.SetDefault("server.max_sessions", 1024)
	v.SetDefault("server.lease_period", "5m")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_conns", 8)
	v.SetDefault("rules.preset", "standard")
}
