package ciutil

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
)

const (
	// StandardCIDatabase is used when a CI database URL names no database.
	StandardCIDatabase = "oetprep_test"
	// StandardCIOptions is used when a CI database URL carries no options.
	StandardCIOptions = "sslmode=disable"
)

// TestDatabaseURL returns the PostgreSQL URL for integration tests, or ""
// when none is configured. Under CI a URL without a database name or
// options is completed with the standard test values.
func TestDatabaseURL(logger *slog.Logger) string {
	dbURL := GetEnvWithFallbacks(
		[]string{EnvTestDatabaseURL, EnvStorageDatabaseURL, EnvDatabaseURL}, "", logger)
	if dbURL == "" || !IsCI() {
		return dbURL
	}

	standardized, err := standardizeDatabaseURL(dbURL)
	if err != nil {
		if logger != nil {
			logger.Warn("keeping unparseable database URL", slog.String("error", err.Error()))
		}
		return dbURL
	}
	return standardized
}

func standardizeDatabaseURL(dbURL string) (string, error) {
	u, err := url.Parse(dbURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse database URL: %w", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return dbURL, nil
	}
	if strings.TrimPrefix(u.Path, "/") == "" {
		u.Path = "/" + StandardCIDatabase
	}
	if u.RawQuery == "" {
		u.RawQuery = StandardCIOptions
	}
	return u.String(), nil
}
