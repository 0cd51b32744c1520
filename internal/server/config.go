package server

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/elskow/gatekeeper/internal/config"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTesting     = "testing"
)

// LoadConfig reads config/server/config.toml and merges GATEKEEPER_* environment
// variables on top, so deployments can run from environment alone.
func LoadConfig() (*config.AppConfig, error) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = EnvDevelopment
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath("./config/server")

	setDefaults(v)

	v.SetEnvPrefix("GATEKEEPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// The config file is optional once env vars cover the settings.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg config.AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Load environment-specific configurations
	if envSettings := v.GetStringMap(fmt.Sprintf("server.%s", env)); len(envSettings) > 0 {
		if err := v.UnmarshalKey(fmt.Sprintf("server.%s", env), &cfg.Server); err != nil {
			return nil, fmt.Errorf("error unmarshaling env config: %w", err)
		}
	}

	if cfg.Auth.JWTSecret == "" && env == EnvProduction {
		return nil, errors.New("auth.jwt_secret must be set in production")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_expiration", 24*time.Hour)
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("rate_limit.window", 15*time.Minute)
	v.SetDefault("rate_limit.max_attempts", 5)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "gatekeeper")
	v.SetDefault("database.ssl_mode", "disable")
}
