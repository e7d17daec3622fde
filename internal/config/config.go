// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvFile is the optional dotenv-style settings file read from the
// working directory.
const EnvFile = ".env"

// Config holds the endpoint settings resolved from the environment.
// The mapstructure tags are used by Viper to unmarshal the data.
type Config struct {
	URI                string        `mapstructure:"uri" validate:"required,url"`
	BearerToken        string        `mapstructure:"bearer_token" validate:"required"`
	ConcurrentRequests int           `mapstructure:"concurrent_requests" validate:"min=1"`
	RequestTimeout     time.Duration `mapstructure:"request_timeout" validate:"min=0"`
}

// Load resolves configuration from the .env file and environment
// variables, the environment winning. A missing .env file is fine; the
// environment alone is used then.
func Load() (*Config, error) {
	v := viper.New()

	// A zero request timeout keeps the transport's own defaults, i.e. no
	// client-side deadline.
	v.SetDefault("concurrent_requests", 1)
	v.SetDefault("request_timeout", time.Duration(0))

	v.SetConfigFile(EnvFile)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(EnvFile); statErr == nil {
			// The file exists but could not be read or parsed.
			return nil, fmt.Errorf("reading %s: %w", EnvFile, err)
		}
		// No settings file; rely on environment and defaults.
	}

	// AutomaticEnv does not surface env vars through Unmarshal for keys
	// never set elsewhere, so bind the known keys explicitly.
	for _, key := range []string{"uri", "bearer_token", "concurrent_requests", "request_timeout"} {
		_ = v.BindEnv(key)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
