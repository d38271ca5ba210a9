package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. YEARCAL_REDIS_URL.
const EnvPrefix = "YEARCAL"

// FallbackBuiltin selects the offline holiday tables when the API fails.
const FallbackBuiltin = "builtin"

// Config represents application configuration
type Config struct {
	Server            ServerConfig   `mapstructure:"server"`
	Holidays          HolidaysConfig `mapstructure:"holidays"`
	Redis             RedisConfig    `mapstructure:"redis"`
	Database          DatabaseConfig `mapstructure:"database"`
	Auth              AuthConfig     `mapstructure:"auth"`
	Defaults          DefaultsConfig `mapstructure:"defaults"`
	GeoDefaultCountry bool           `mapstructure:"geo_default_country"`
	Log               LogConfig      `mapstructure:"log"`
}

// ServerConfig represents the HTTP listener
type ServerConfig struct {
	Port      string `mapstructure:"port"`
	RateLimit int    `mapstructure:"rate_limit"` // requests per minute per IP
}

// HolidaysConfig represents the public holiday source
type HolidaysConfig struct {
	BaseURL  string `mapstructure:"base_url"`
	Fallback string `mapstructure:"fallback"` // "" or "builtin"
}

// RedisConfig represents the shared cache tier. Empty URL disables it.
type RedisConfig struct {
	URL string        `mapstructure:"url"`
	TTL time.Duration `mapstructure:"ttl"` // 0 keeps entries forever
}

// DatabaseConfig represents the PostgreSQL archive tier. Empty URL disables it.
type DatabaseConfig struct {
	URL        string `mapstructure:"url"`
	Migrations string `mapstructure:"migrations"` // directory; empty uses the embedded schema
}

// AuthConfig protects the admin endpoints. Empty token disables them.
type AuthConfig struct {
	Token string `mapstructure:"token"`
}

// DefaultsConfig are the settings used when a request names none.
type DefaultsConfig struct {
	Country      string `mapstructure:"country"`
	WeekStartsOn int    `mapstructure:"week_starts_on"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.rate_limit", 120)
	v.SetDefault("holidays.base_url", "https://date.nager.at/api/v3")
	v.SetDefault("holidays.fallback", "")
	v.SetDefault("redis.url", "")
	v.SetDefault("redis.ttl", "0s")
	v.SetDefault("database.url", "")
	v.SetDefault("database.migrations", "")
	v.SetDefault("auth.token", "")
	v.SetDefault("defaults.country", "FR")
	v.SetDefault("defaults.week_starts_on", 1)
	v.SetDefault("geo_default_country", false)
	v.SetDefault("log.level", "info")
}

// Load reads configuration from configPath, or from yearcal.yaml in the
// usual places when configPath is empty, and applies environment overrides.
// A missing default config file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("yearcal")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.yearcal")
		v.AddConfigPath("/etc/yearcal")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must not be negative")
	}
	if c.Holidays.BaseURL == "" {
		return fmt.Errorf("holidays.base_url is required")
	}

	switch c.Holidays.Fallback {
	case "", FallbackBuiltin:
	default:
		return fmt.Errorf("holidays.fallback must be '' or '%s', got '%s'", FallbackBuiltin, c.Holidays.Fallback)
	}

	if c.Redis.TTL < 0 {
		return fmt.Errorf("redis.ttl must not be negative")
	}
	if len(c.Defaults.Country) != 2 {
		return fmt.Errorf("defaults.country must be a two-letter country code, got '%s'", c.Defaults.Country)
	}
	if c.Defaults.WeekStartsOn < 0 || c.Defaults.WeekStartsOn > 6 {
		return fmt.Errorf("defaults.week_starts_on must be between 0 and 6")
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	return nil
}

// SlogLevel parses the configured level ("debug", "info", "warn", "error").
func (c LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo, err
	}
	return level, nil
}
