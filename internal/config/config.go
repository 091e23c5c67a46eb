// Package config loads the service configuration: defaults, then an optional
// YAML file, then a .env file, then SIGNUPFORM_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-signupform/internal/logging"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SIGNUPFORM_"

// Store kinds for session snapshots.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

type Config struct {
	HTTP        HTTPConfig       `yaml:"http"`
	Session     SessionConfig    `yaml:"session"`
	RateLimit   RateLimitConfig  `yaml:"rate_limit"`
	Theme       ThemeConfig      `yaml:"theme"`
	UI          UIConfig         `yaml:"ui"`
	Log         LogConfig        `yaml:"log"`
	Submissions SubmissionConfig `yaml:"submissions"`
}

type HTTPConfig struct {
	Addr          string        `yaml:"addr"`
	ShutdownGrace time.Duration `yaml:"shutdown_grace"`
	ReadTimeout   time.Duration `yaml:"read_timeout"`
	WriteTimeout  time.Duration `yaml:"write_timeout"`

	// LiveValidation streams change/blur events from the browser and keeps
	// the submit button disabled until the form is valid.
	LiveValidation bool `yaml:"live_validation"`
}

type SessionConfig struct {
	Secret     string        `yaml:"secret"`
	TTL        time.Duration `yaml:"ttl"`
	CookieName string        `yaml:"cookie_name"`
	Secure     bool          `yaml:"secure"`
	Store      string        `yaml:"store"`
	Redis      RedisConfig   `yaml:"redis"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// RateLimitConfig bounds submit attempts per form session.
type RateLimitConfig struct {
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

type ThemeConfig struct {
	Name      string                  `yaml:"name"`
	Version   string                  `yaml:"version"`
	Variant   string                  `yaml:"variant"`
	Tokens    map[string]string       `yaml:"tokens"`
	Templates map[string]string       `yaml:"templates"`
	Assets    ThemeAssets             `yaml:"assets"`
	Variants  map[string]ThemeVariant `yaml:"variants"`
}

type ThemeAssets struct {
	Prefix string            `yaml:"prefix"`
	Files  map[string]string `yaml:"files"`
}

type ThemeVariant struct {
	Tokens    map[string]string `yaml:"tokens"`
	Templates map[string]string `yaml:"templates"`
	Assets    ThemeAssets       `yaml:"assets"`
}

// UIConfig points at optional overrides on disk. Empty values use the
// embedded defaults.
type UIConfig struct {
	SchemaDir    string `yaml:"schema_dir"`
	TemplatesDir string `yaml:"templates_dir"`
	Translations string `yaml:"translations"`
	Locale       string `yaml:"locale"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// SubmissionConfig bounds the in-memory submission log.
type SubmissionConfig struct {
	Keep       int `yaml:"keep"`
	BcryptCost int `yaml:"bcrypt_cost"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Addr:           ":8080",
			ShutdownGrace:  10 * time.Second,
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   15 * time.Second,
			LiveValidation: true,
		},
		Session: SessionConfig{
			TTL:        30 * time.Minute,
			CookieName: "signupform_session",
			Store:      StoreMemory,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "signupform:session:",
			},
		},
		RateLimit: RateLimitConfig{
			PerSecond: 1,
			Burst:     5,
		},
		Theme: ThemeConfig{
			Name:    "default",
			Version: "1.0.0",
		},
		Log: LogConfig{
			Level: "info",
		},
		Submissions: SubmissionConfig{
			Keep:       100,
			BcryptCost: 10,
		},
	}
}

// Load builds the configuration. path may be empty; envFile may be empty to
// skip .env loading, and a missing .env file is not an error.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", envFile, err)
		}
	}

	if err := applyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Validate checks the values the service cannot start without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.HTTP.Addr) == "" {
		return errors.New("http.addr is required")
	}
	if c.Session.TTL <= 0 {
		return errors.New("session.ttl must be positive")
	}
	if strings.TrimSpace(c.Session.CookieName) == "" {
		return errors.New("session.cookie_name is required")
	}
	switch c.Session.Store {
	case StoreMemory:
	case StoreRedis:
		if strings.TrimSpace(c.Session.Redis.Addr) == "" {
			return errors.New("session.redis.addr is required for the redis store")
		}
	default:
		return fmt.Errorf("session.store must be %q or %q, got %q", StoreMemory, StoreRedis, c.Session.Store)
	}
	if c.RateLimit.PerSecond <= 0 || c.RateLimit.Burst <= 0 {
		return errors.New("rate_limit.per_second and rate_limit.burst must be positive")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Submissions.Keep <= 0 {
		return errors.New("submissions.keep must be positive")
	}
	return nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(EnvPrefix + key)
		if !ok || strings.TrimSpace(v) == "" {
			return "", false
		}
		return strings.TrimSpace(v), true
	}

	texts := map[string]*string{
		"HTTP_ADDR":           &cfg.HTTP.Addr,
		"SESSION_SECRET":      &cfg.Session.Secret,
		"SESSION_COOKIE_NAME": &cfg.Session.CookieName,
		"SESSION_STORE":       &cfg.Session.Store,
		"REDIS_ADDR":          &cfg.Session.Redis.Addr,
		"REDIS_PASSWORD":      &cfg.Session.Redis.Password,
		"REDIS_PREFIX":        &cfg.Session.Redis.Prefix,
		"THEME_NAME":          &cfg.Theme.Name,
		"THEME_VARIANT":       &cfg.Theme.Variant,
		"UI_SCHEMA_DIR":       &cfg.UI.SchemaDir,
		"UI_TEMPLATES_DIR":    &cfg.UI.TemplatesDir,
		"UI_TRANSLATIONS":     &cfg.UI.Translations,
		"UI_LOCALE":           &cfg.UI.Locale,
		"LOG_LEVEL":           &cfg.Log.Level,
	}
	for key, target := range texts {
		if v, ok := get(key); ok {
			*target = v
		}
	}

	durations := map[string]*time.Duration{
		"HTTP_SHUTDOWN_GRACE": &cfg.HTTP.ShutdownGrace,
		"SESSION_TTL":         &cfg.Session.TTL,
	}
	for key, target := range durations {
		if v, ok := get(key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("config: %s%s: %w", EnvPrefix, key, err)
			}
			*target = d
		}
	}

	ints := map[string]*int{
		"REDIS_DB":         &cfg.Session.Redis.DB,
		"RATE_LIMIT_BURST": &cfg.RateLimit.Burst,
		"SUBMISSIONS_KEEP": &cfg.Submissions.Keep,
	}
	for key, target := range ints {
		if v, ok := get(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("config: %s%s: %w", EnvPrefix, key, err)
			}
			*target = n
		}
	}

	bools := map[string]*bool{
		"SESSION_SECURE":       &cfg.Session.Secure,
		"HTTP_LIVE_VALIDATION": &cfg.HTTP.LiveValidation,
		"LOG_DEVELOPMENT":      &cfg.Log.Development,
	}
	for key, target := range bools {
		if v, ok := get(key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("config: %s%s: %w", EnvPrefix, key, err)
			}
			*target = b
		}
	}

	if v, ok := get("RATE_LIMIT_PER_SECOND"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: %sRATE_LIMIT_PER_SECOND: %w", EnvPrefix, err)
		}
		cfg.RateLimit.PerSecond = f
	}
	return nil
}
