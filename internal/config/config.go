package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"  validate:"required"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
	Auth    AuthConfig    `mapstructure:"auth"    validate:"required"`
	Session SessionConfig `mapstructure:"session" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// Storage drivers understood by the application.
const (
	DriverMemory   = "memory"
	DriverJSONFile = "jsonfile"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// StorageConfig selects and configures the collection storage backend.
type StorageConfig struct {
	Driver string `mapstructure:"driver"   validate:"required,oneof=memory jsonfile sqlite postgres"`
	// DataDir holds JSON collections (jsonfile) or the database file (sqlite).
	DataDir string `mapstructure:"data_dir" validate:"required_if=Driver jsonfile,required_if=Driver sqlite"`
	// DatabaseURL is only consulted by the postgres driver.
	DatabaseURL string `mapstructure:"database_url" validate:"required_if=Driver postgres"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// SessionConfig controls the attempt session store.
type SessionConfig struct {
	CookieName           string `mapstructure:"cookie_name"            validate:"required"`
	IdleTimeoutMinutes   int    `mapstructure:"idle_timeout_minutes"   validate:"required,gt=0"`
	SweepIntervalMinutes int    `mapstructure:"sweep_interval_minutes" validate:"required,gt=0"`
	// CookieSecure marks the session cookie HTTPS-only.
	CookieSecure bool `mapstructure:"cookie_secure"`
}
