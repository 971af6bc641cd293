package ampemail

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds client configuration for environment-driven construction.
// APIKey is required; BaseURL and Timeout fall back to the production
// endpoint and the default timeout.
type Config struct {
	APIKey  string        `env:"AMP_EMAIL_API_KEY,required"`
	BaseURL string        `env:"AMP_EMAIL_BASE_URL" envDefault:"https://api.amp-platform.com"`
	Timeout time.Duration `env:"AMP_EMAIL_TIMEOUT" envDefault:"30s"`
}

// NewFromConfig creates a client from an explicit Config. Options are
// applied after the config values, so they win on conflict.
func NewFromConfig(cfg Config, opts ...Option) (*Client, error) {
	base := make([]Option, 0, len(opts)+2)
	if cfg.BaseURL != "" {
		base = append(base, WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		base = append(base, WithTimeout(cfg.Timeout))
	}
	return New(cfg.APIKey, append(base, opts...)...)
}

// NewFromEnv creates a client from environment variables, loading a .env
// file first when one is present.
func NewFromEnv(opts ...Option) (*Client, error) {
	// Ignore errors - the .env file might not exist and that's ok
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return NewFromConfig(cfg, opts...)
}
