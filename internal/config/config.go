package config

import (
	"context"

	"github.com/sethvargo/go-envconfig"
)

// Config holds the application configuration.
type Config struct {
	ServerPort    int    `env:"PORT, default=8080"`
	DatabasePath  string `env:"DATABASE_PATH, default=./tourvia.db"`
	AppEnv        string `env:"APP_ENV, default=development"`
	SweepSchedule string `env:"SESSION_SWEEP_SCHEDULE, default=@hourly"`
	CORSOrigin    string `env:"CORS_ORIGIN, default=http://localhost:3000"`
}

// Load loads configuration from environment variables or sets defaults.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction reports whether the app runs in production mode. Controls
// the Secure flag on the session cookie among other things.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
