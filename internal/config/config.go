// Package config loads runtime settings for the CLI and HTTP server.
//
// Values are resolved with viper in the usual order: bound flags, then
// RESUME_MATCH_* environment variables (plus a few legacy names), then an
// optional YAML or JSON file, then defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/quality"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "RESUME_MATCH"

// Defaults
const (
	DefaultPort              = 8080
	DefaultRequestsPerMinute = 30
	DefaultBurst             = 5
	DefaultFetchTimeout      = 20 * time.Second
)

// legacyEnv maps config keys to environment names the older tooling used.
var legacyEnv = map[string]string{
	"api_key":    "GEMINI_API_KEY",
	"jwt_secret": "JWT_SECRET",
	"port":       "PORT",
}

// Config is the fully resolved runtime configuration.
type Config struct {
	APIKey       string          `mapstructure:"api_key"`
	Model        string          `mapstructure:"model"`
	Port         int             `mapstructure:"port"`
	JWTSecret    string          `mapstructure:"jwt_secret"`
	UseBrowser   bool            `mapstructure:"use_browser"`
	FetchTimeout time.Duration   `mapstructure:"fetch_timeout"`
	RateLimit    RateLimitConfig `mapstructure:"rate_limit"`
	Log          LogConfig       `mapstructure:"log"`
	Booster      BoosterConfig   `mapstructure:"booster"`
}

// RateLimitConfig bounds per-client request rates on the HTTP server.
// RequestsPerMinute of 0 disables limiting.
type RateLimitConfig struct {
	RequestsPerMinute int      `mapstructure:"requests_per_minute"`
	Burst             int      `mapstructure:"burst"`
	Whitelist         []string `mapstructure:"whitelist"`
}

// LogConfig selects the logger encoding and level.
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// BoosterConfig overrides the keyword booster thresholds.
type BoosterConfig struct {
	MinGain int `mapstructure:"min_gain"`
	Floor   int `mapstructure:"floor"`
	Budget  int `mapstructure:"budget"`
}

// NewViper returns a viper instance with defaults and environment bindings set.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("api_key", "")
	v.SetDefault("model", "")
	v.SetDefault("port", DefaultPort)
	v.SetDefault("jwt_secret", "")
	v.SetDefault("use_browser", false)
	v.SetDefault("fetch_timeout", DefaultFetchTimeout)
	v.SetDefault("rate_limit.requests_per_minute", DefaultRequestsPerMinute)
	v.SetDefault("rate_limit.burst", DefaultBurst)
	v.SetDefault("rate_limit.whitelist", []string{})
	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
	v.SetDefault("booster.min_gain", quality.DefaultMinGain)
	v.SetDefault("booster.floor", quality.DefaultFloor)
	v.SetDefault("booster.budget", quality.DefaultBudget)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// BindEnv with explicit names replaces the automatic one, so the
	// prefixed name goes first to keep its precedence.
	for key, legacy := range legacyEnv {
		_ = v.BindEnv(key, EnvPrefix+"_"+strings.ToUpper(key), legacy)
	}

	return v
}

// BindFlags binds command flags to config keys. Flags absent from the set are skipped.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) error {
	for key, name := range keys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return &LoadError{Message: fmt.Sprintf("failed to bind flag --%s", name), Cause: err}
		}
	}
	return nil
}

// Load resolves the configuration. An empty path skips the config file.
func Load(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = NewViper()
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, &LoadError{Message: fmt.Sprintf("config file not found: %s", path), Cause: err}
			}
			return nil, &LoadError{Message: "failed to stat config file", Cause: err}
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, &LoadError{Message: "failed to read config file", Cause: err}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &LoadError{Message: "failed to decode config", Cause: err}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects negative limits and booster values outside their ranges.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return &ValidationError{Field: "port", Message: fmt.Sprintf("must be between 0 and 65535, got %d", c.Port)}
	}
	if c.FetchTimeout < 0 {
		return &ValidationError{Field: "fetch_timeout", Message: "cannot be negative"}
	}
	if c.RateLimit.RequestsPerMinute < 0 {
		return &ValidationError{Field: "rate_limit.requests_per_minute", Message: "cannot be negative"}
	}
	if c.RateLimit.Burst < 0 {
		return &ValidationError{Field: "rate_limit.burst", Message: "cannot be negative"}
	}
	if c.RateLimit.RequestsPerMinute > 0 && c.RateLimit.Burst == 0 {
		return &ValidationError{Field: "rate_limit.burst", Message: "must be at least 1 when rate limiting is enabled"}
	}
	if c.Booster.MinGain < 0 || c.Booster.MinGain > 100 {
		return &ValidationError{Field: "booster.min_gain", Message: fmt.Sprintf("must be between 0 and 100, got %d", c.Booster.MinGain)}
	}
	if c.Booster.Floor < 0 || c.Booster.Floor > 100 {
		return &ValidationError{Field: "booster.floor", Message: fmt.Sprintf("must be between 0 and 100, got %d", c.Booster.Floor)}
	}
	if c.Booster.Budget < 0 {
		return &ValidationError{Field: "booster.budget", Message: "cannot be negative"}
	}
	return nil
}

// BoostOptions converts the booster settings for the quality package.
func (c *Config) BoostOptions() quality.BoostOptions {
	return quality.BoostOptions{
		MinGain: c.Booster.MinGain,
		Floor:   c.Booster.Floor,
		Budget:  c.Booster.Budget,
	}
}

// LLMConfig returns the generator config, overriding the draft model when one is set.
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.DefaultConfig()
	if c.Model != "" {
		cfg = cfg.WithModel(cfg.DraftTier, c.Model)
	}
	return cfg
}

// LoadError reports a failure to read or decode configuration.
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ValidationError names the offending setting.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config %s: %s", e.Field, e.Message)
}
