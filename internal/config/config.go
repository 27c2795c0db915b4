package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// Weights tunes the bot's shot heuristic.
type Weights struct {
	WHitNeighbor int `env:"W_HIT_NEIGHBOR" envDefault:"100" json:"w_hit_neighbor"`
	WLine        int `env:"W_LINE" envDefault:"150" json:"w_line"`
	WParity      int `env:"W_PARITY" envDefault:"10" json:"w_parity"`
	WCenter      int `env:"W_CENTER" envDefault:"2" json:"w_center"`
}

type Config struct {
	HTTPAddr      string        `env:"BATTLEFUN_HTTP_ADDR" envDefault:":8000"`
	TokenSecret   string        `env:"BATTLEFUN_TOKEN_SECRET" envDefault:"battlefun-dev-secret"`
	TokenTTL      time.Duration `env:"BATTLEFUN_TOKEN_TTL" envDefault:"24h"`
	AllowedOrigin string        `env:"BATTLEFUN_ALLOWED_ORIGIN" envDefault:"*"`
	// Debug enables development-only affordances such as the turn flip endpoint.
	Debug bool `env:"BATTLEFUN_DEBUG" envDefault:"false"`

	Weights Weights
}

// ClientConfig configures the terminal client.
type ClientConfig struct {
	ServerURL       string        `env:"BATTLEFUN_SERVER_URL" envDefault:"http://localhost:8000"`
	PlayerName      string        `env:"BATTLEFUN_PLAYER_NAME"`
	Seed            int64         `env:"BATTLEFUN_SEED" envDefault:"0"`
	OpponentTimeout time.Duration `env:"BATTLEFUN_OPPONENT_TIMEOUT" envDefault:"0s"`
	Debug           bool          `env:"BATTLEFUN_DEBUG" envDefault:"false"`
	Auto            bool          `env:"BATTLEFUN_AUTO" envDefault:"false"`

	Weights Weights
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the server configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.TokenSecret == "" {
		return Config{}, fmt.Errorf("BATTLEFUN_TOKEN_SECRET is required")
	}
	return cfg, nil
}

// LoadClient reads the client configuration from the environment.
func LoadClient() (ClientConfig, error) {
	var cfg ClientConfig
	if err := ParseEnv(&cfg); err != nil {
		return ClientConfig{}, err
	}
	return cfg, nil
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
