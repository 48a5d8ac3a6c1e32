package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const envPrefix = "NOTESYNC_"

const (
	DriverSQLite    = "sqlite"
	DriverSurrealDB = "surrealdb"
)

// Config contains server configuration parameters.
type Config struct {
	LogLevel   string  `env:"LOG_LEVEL" envDefault:"info"`
	BcryptCost int     `env:"BCRYPT_COST" envDefault:"10"`
	HTTP       HTTP    `envPrefix:"HTTP_"`
	JWT        JWT     `envPrefix:"JWT_"`
	Store      Store   `envPrefix:"STORE_"`
	SQLite     SQLite  `envPrefix:"SQLITE_"`
	Surreal    Surreal `envPrefix:"SURREAL_"`
}

// HTTP contains listener parameters. WriteTimeout stays zero by default
// because websocket sessions outlive any write deadline.
type HTTP struct {
	Addr            string        `env:"ADDR" envDefault:":4000"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"0s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// JWT contains session token parameters.
type JWT struct {
	Secret string        `env:"SECRET" envDefault:"devsecret"`
	TTL    time.Duration `env:"TTL" envDefault:"168h"`
}

// Store selects the persistence backend.
type Store struct {
	Driver string `env:"DRIVER" envDefault:"sqlite"`
}

type SQLite struct {
	Path string `env:"PATH" envDefault:"notesync.db"`
}

type Surreal struct {
	URL       string `env:"URL" envDefault:"ws://localhost:8000"`
	Namespace string `env:"NAMESPACE" envDefault:"notesync"`
	Database  string `env:"DATABASE" envDefault:"notesync"`
	Username  string `env:"USERNAME" envDefault:"root"`
	Password  string `env:"PASSWORD" envDefault:"root"`
}

// NewConfig loads configuration from NOTESYNC_* environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	switch c.Store.Driver {
	case DriverSQLite, DriverSurrealDB:
	default:
		errs = append(errs, fmt.Errorf("unknown store driver %q", c.Store.Driver))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("jwt secret must not be empty"))
	}
	if c.JWT.TTL <= 0 {
		errs = append(errs, errors.New("jwt ttl must be positive"))
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		errs = append(errs, fmt.Errorf("bcrypt cost %d out of range", c.BcryptCost))
	}
	return errors.Join(errs...)
}
