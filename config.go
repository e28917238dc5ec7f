package client

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/sethvargo/go-envconfig"
)

var _ Config = (*EnvConfig)(nil)

// EnvConfig loads client settings from the environment.
type EnvConfig struct {
	BaseURL     string        `env:"CITY_API_BASE_URL, default=http://localhost:8080/api"`
	Timeout     time.Duration `env:"CITY_API_TIMEOUT, default=10s"`
	TokenDBPath string        `env:"CITY_TOKEN_DB_PATH, default=session.db"`
	PhoneRegion string        `env:"CITY_PHONE_REGION, default=KZ"`
}

// LoadConfig reads configuration from the process environment.
func LoadConfig(ctx context.Context) (*EnvConfig, error) {
	cfg := &EnvConfig{}
	if err := envconfig.Process(ctx, cfg); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to load configuration")
	}
	return cfg, nil
}

func (c *EnvConfig) GetBaseURL() string {
	return c.BaseURL
}

func (c *EnvConfig) GetTimeout() time.Duration {
	return c.Timeout
}

func (c *EnvConfig) GetTokenDBPath() string {
	return c.TokenDBPath
}

func (c *EnvConfig) GetPhoneRegion() string {
	return c.PhoneRegion
}
