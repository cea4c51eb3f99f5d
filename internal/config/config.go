// Package config loads application settings from LITERACYHUB_* environment
// variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/abhisek/literacyhub/internal/telemetry"
)

// EnvPrefix is the prefix of every application environment variable.
const EnvPrefix = "LITERACYHUB_"

// Store backends accepted by Config.Store.
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config holds process-wide settings. LLM provider settings live in
// llm.Config under LITERACYHUB_LLM_*.
type Config struct {
	// Learner is the profile the TUI and commands operate on.
	Learner string `env:"LEARNER" envDefault:"default"`

	// Timezone names the IANA zone that defines a learner's calendar day.
	// Empty means the local zone.
	Timezone string `env:"TIMEZONE"`

	Store       string `env:"STORE" envDefault:"sqlite"`
	DB          string `env:"DB"`
	PostgresURL string `env:"POSTGRES_URL"`

	// RedisURL enables the generated-quiz cache when set.
	RedisURL string        `env:"REDIS_URL"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"24h"`

	// AMQPURL enables quiz event publishing when set.
	AMQPURL      string `env:"AMQP_URL"`
	AMQPExchange string `env:"AMQP_EXCHANGE" envDefault:"literacyhub.quiz"`

	// QuestionCount overrides each topic's own question count when > 0.
	QuestionCount int `env:"QUESTION_COUNT" envDefault:"0"`

	Log  LogConfig        `envPrefix:"LOG_"`
	OTel telemetry.Config `envPrefix:"OTEL_"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"text"`
	// File receives logs while the TUI owns the terminal. Empty means
	// literacyhub.log in the data directory.
	File string `env:"FILE"`
}

// Load reads Config from the process environment.
func Load() (Config, error) {
	return parse(nil)
}

// Default returns a Config with defaults only.
func Default() Config {
	cfg, err := parse(map[string]string{})
	if err != nil {
		panic(fmt.Sprintf("config: default: %v", err))
	}
	return cfg
}

func parse(environ map[string]string) (Config, error) {
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values env tags cannot express.
func (c Config) Validate() error {
	if c.Learner == "" {
		return fmt.Errorf("%sLEARNER must not be empty", EnvPrefix)
	}
	switch c.Store {
	case StoreSQLite, StoreMemory:
	case StorePostgres:
		if c.PostgresURL == "" {
			return fmt.Errorf("%sPOSTGRES_URL is required for the postgres store", EnvPrefix)
		}
	default:
		return fmt.Errorf("unknown store %q (want sqlite, postgres or memory)", c.Store)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.QuestionCount < 0 {
		return fmt.Errorf("%sQUESTION_COUNT must not be negative", EnvPrefix)
	}
	return nil
}

// Location resolves Timezone. An empty Timezone yields time.Local.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
