package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "OETPREP"

// keys lists every configuration key so that viper binds it to an
// environment variable even when no default exists.
var keys = []string{
	"server.port",
	"server.log_level",
	"storage.driver",
	"storage.data_dir",
	"storage.database_url",
	"auth.jwt_secret",
	"auth.token_lifetime_minutes",
	"session.cookie_name",
	"session.idle_timeout_minutes",
	"session.sweep_interval_minutes",
	"session.cookie_secure",
}

// FlagBindings maps command-line flag names to configuration keys.
var FlagBindings = map[string]string{
	"port":           "server.port",
	"log-level":      "server.log_level",
	"storage-driver": "storage.driver",
	"data-dir":       "storage.data_dir",
	"database-url":   "storage.database_url",
}

// Load configuration from an optional .env file, an optional config.yaml and
// OETPREP_-prefixed environment variables. Environment variables take
// precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadWithFlags(nil)
}

// LoadWithFlags is Load with the flags of fs named in FlagBindings taking
// precedence over every other source when they were set explicitly.
func LoadWithFlags(fs *pflag.FlagSet) (*Config, error) {
	// A missing .env file is the normal case outside local development.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if fs != nil {
		for name, key := range FlagBindings {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the struct tags of a Config.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("storage.driver", DriverJSONFile)
	v.SetDefault("storage.data_dir", "data")

	v.SetDefault("auth.token_lifetime_minutes", 60)

	v.SetDefault("session.cookie_name", "oetprep_session")
	v.SetDefault("session.idle_timeout_minutes", 240)
	v.SetDefault("session.sweep_interval_minutes", 5)
	v.SetDefault("session.cookie_secure", false)
}
