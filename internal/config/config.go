// Package config resolves the server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrParsingConfig is returned when environment variables cannot be
	// parsed into the config struct (e.g. a non-numeric CAPACITY).
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrInvalidConfig is returned when parsed values are out of range.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config holds every startup setting. It is resolved once by Load.
type Config struct {
	Capacity        int           `env:"CAPACITY" envDefault:"100"`
	Host            string        `env:"HOST" envDefault:"127.0.0.1"`
	Port            int           `env:"PORT" envDefault:"3000"`
	MaxValueBytes   int64         `env:"MAX_VALUE_BYTES" envDefault:"1048576"`
	DebugEndpoint   bool          `env:"DEBUG_ENDPOINT" envDefault:"false"`
	LogLevel        slog.Level    `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"text"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
	MetricsNS       string        `env:"METRICS_NAMESPACE" envDefault:"minicache"`
}

// Addr returns the listen address in host:port form.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate checks ranges env.Parse cannot express.
func (c Config) Validate() error {
	switch {
	case c.Capacity <= 0:
		return fmt.Errorf("%w: CAPACITY must be > 0, got %d", ErrInvalidConfig, c.Capacity)
	case c.Port < 0 || c.Port > 65535:
		return fmt.Errorf("%w: PORT out of range: %d", ErrInvalidConfig, c.Port)
	case c.MaxValueBytes <= 0:
		return fmt.Errorf("%w: MAX_VALUE_BYTES must be > 0, got %d", ErrInvalidConfig, c.MaxValueBytes)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("%w: LOG_FORMAT must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	case c.ShutdownTimeout <= 0:
		return fmt.Errorf("%w: SHUTDOWN_TIMEOUT must be > 0", ErrInvalidConfig)
	}
	return nil
}

// Load reads an optional .env file, parses the environment and validates
// the result.
func Load() (Config, error) {
	// The .env file is optional.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
