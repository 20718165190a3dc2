// Package config loads the gateway configuration from YAML with environment
// variable expansion and duration parsing.
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Authentication modes.
const (
	ModeStatic = "static"
	ModeJWT    = "jwt"
	ModeNone   = "none"
)

// Config represents the complete gateway configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Auth    AuthConfig    `yaml:"auth"`
	Tools   ToolsConfig   `yaml:"tools"`
	Cache   CacheConfig   `yaml:"cache"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds the HTTP transport configuration.
type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr"`
	BaseURL  string `yaml:"base_url"`
	Metrics  bool   `yaml:"metrics"`
}

// AuthConfig holds session authentication configuration.
type AuthConfig struct {
	Mode      string                    `yaml:"mode"`
	JWTSecret string                    `yaml:"jwt_secret"`
	Tokens    map[string]IdentityConfig `yaml:"tokens"`

	// Identity is attached to sessions that present no token, typically the
	// process owner on the stdio transport. An empty subject leaves those
	// sessions anonymous.
	Identity IdentityConfig `yaml:"identity"`
}

// IdentityConfig describes one identity in the static token table.
type IdentityConfig struct {
	Subject string `yaml:"subject"`
	Name    string `yaml:"name"`
	Email   string `yaml:"email"`
}

// ToolsConfig holds tool behavior and upstream endpoints.
type ToolsConfig struct {
	ImageAllowlist []string `yaml:"image_allowlist"`
	UserAPIURL     string   `yaml:"user_api_url"`
	ImageAPIURL    string   `yaml:"image_api_url"`
	PriceAPIURL    string   `yaml:"price_api_url"`

	Timeout time.Duration `yaml:"-"`

	// Raw string value for YAML unmarshaling
	TimeoutRaw string `yaml:"timeout"`
}

// CacheConfig holds the optional Redis quote cache configuration. An empty
// redis_addr disables caching.
type CacheConfig struct {
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`

	PriceTTL time.Duration `yaml:"-"`

	// Raw string value for YAML unmarshaling
	PriceTTLRaw string `yaml:"price_ttl"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given: anonymous
// sessions only, the public ticker endpoint for quotes, no cache.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr: ":8080",
			Metrics:  true,
		},
		Auth: AuthConfig{
			Mode: ModeNone,
		},
		Tools: ToolsConfig{
			PriceAPIURL: "https://api.binance.com/api/v3/ticker/price",
			Timeout:     10 * time.Second,
		},
		Cache: CacheConfig{
			PriceTTL: 15 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a configuration file from the given path and returns a parsed
// Config. Environment variables in the format ${VAR_NAME} are expanded,
// duration strings are parsed, and missing fields keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := expandEnvVars(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := parseDurations(cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding
// environment variable values. Unset variables expand to the empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that the configuration is internally consistent. Returns
// an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	switch c.Auth.Mode {
	case ModeStatic:
		if len(c.Auth.Tokens) == 0 {
			return fmt.Errorf("auth.tokens is required when auth.mode is %q", ModeStatic)
		}
		for token, id := range c.Auth.Tokens {
			if id.Subject == "" {
				return fmt.Errorf("auth.tokens[%q].subject is required", token)
			}
		}
	case ModeJWT:
		if c.Auth.JWTSecret == "" {
			return fmt.Errorf("auth.jwt_secret is required when auth.mode is %q", ModeJWT)
		}
	case ModeNone:
	default:
		return fmt.Errorf("auth.mode must be %q, %q or %q, got %q", ModeStatic, ModeJWT, ModeNone, c.Auth.Mode)
	}

	if c.Tools.Timeout <= 0 {
		return fmt.Errorf("tools.timeout must be positive, got %s", c.Tools.Timeout)
	}
	if c.Cache.PriceTTL <= 0 {
		return fmt.Errorf("cache.price_ttl must be positive, got %s", c.Cache.PriceTTL)
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be \"text\" or \"json\", got %q", c.Logging.Format)
	}

	return nil
}

// parseDurations converts the raw duration strings into time.Duration values.
func parseDurations(cfg *Config) error {
	var err error

	if cfg.Tools.TimeoutRaw != "" {
		cfg.Tools.Timeout, err = time.ParseDuration(cfg.Tools.TimeoutRaw)
		if err != nil {
			return fmt.Errorf("parsing tools.timeout %q: %w", cfg.Tools.TimeoutRaw, err)
		}
	}

	if cfg.Cache.PriceTTLRaw != "" {
		cfg.Cache.PriceTTL, err = time.ParseDuration(cfg.Cache.PriceTTLRaw)
		if err != nil {
			return fmt.Errorf("parsing cache.price_ttl %q: %w", cfg.Cache.PriceTTLRaw, err)
		}
	}

	return nil
}
