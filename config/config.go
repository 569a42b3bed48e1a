// Package config loads the API configuration from a yaml file, with
// environment variables taking precedence for deployment secrets.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds every setting the API needs at startup.
type Config struct {
	HTTP          HTTPConfig          `yaml:"http"`
	Postgres      PostgresConfig      `yaml:"postgres"`
	Discord       DiscordConfig       `yaml:"discord"`
	JWT           JWTConfig           `yaml:"jwt"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// HTTPConfig holds the listener settings.
type HTTPConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// DiscordConfig holds the bot credentials and OAuth application settings.
type DiscordConfig struct {
	BotToken     string `yaml:"bot_token"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURI  string `yaml:"redirect_uri"`
	// EntityID selects which bot entity this deployment serves:
	// 0 = stable, 1 = beta, 2 = dev.
	EntityID int `yaml:"entity_id"`
}

// Beta reports whether this deployment reads the beta rows of shared tables.
func (c DiscordConfig) Beta() bool {
	return c.EntityID == 1
}

// JWTConfig holds API token signing configuration.
type JWTConfig struct {
	Secret     string        `yaml:"secret"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

// ObservabilityConfig holds configuration for the observability stack.
type ObservabilityConfig struct {
	MetricsAddress string `yaml:"metrics_address"`
	Environment    string `yaml:"environment"`
}

// LoadConfig reads the yaml file at filename, then applies environment
// variable overrides. A missing file is not an error as long as the
// environment provides the mandatory settings.
func LoadConfig(filename string) (*Config, error) {
	var cfg Config
	if data, err := os.ReadFile(filename); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// --- OVERRIDE WITH ENV VARS IF PRESENT ---
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("DISCORD_BOT_TOKEN"); v != "" {
		cfg.Discord.BotToken = v
	}
	if v := os.Getenv("DISCORD_CLIENT_ID"); v != "" {
		cfg.Discord.ClientID = v
	}
	if v := os.Getenv("DISCORD_CLIENT_SECRET"); v != "" {
		cfg.Discord.ClientSecret = v
	}
	if v := os.Getenv("DISCORD_REDIRECT_URI"); v != "" {
		cfg.Discord.RedirectURI = v
	}
	if v := os.Getenv("DISCORD_ENTITY_ID"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid DISCORD_ENTITY_ID value: %w", err)
		}
		cfg.Discord.EntityID = id
	}
	if v := os.Getenv("JWT_SECRET_TOKEN"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("JWT_DEFAULT_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_DEFAULT_TTL value: %w", err)
		}
		cfg.JWT.DefaultTTL = ttl
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Observability.Environment = v
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":3000"
	}
	if cfg.JWT.DefaultTTL == 0 {
		cfg.JWT.DefaultTTL = 7 * 24 * time.Hour
	}
	if cfg.Observability.Environment == "" {
		cfg.Observability.Environment = "production"
	}
}

func validate(cfg *Config) error {
	if cfg.Postgres.DSN == "" {
		return fmt.Errorf("missing postgres DSN (postgres.dsn or DATABASE_URL)")
	}
	if cfg.Discord.BotToken == "" {
		return fmt.Errorf("missing Discord bot token (discord.bot_token or DISCORD_BOT_TOKEN)")
	}
	if cfg.JWT.Secret == "" {
		return fmt.Errorf("missing JWT secret (jwt.secret or JWT_SECRET_TOKEN)")
	}
	if cfg.Discord.EntityID < 0 || cfg.Discord.EntityID > 2 {
		return fmt.Errorf("discord entity ID must be 0, 1 or 2, got %d", cfg.Discord.EntityID)
	}
	return nil
}
