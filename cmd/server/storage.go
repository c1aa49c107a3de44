package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/oetprep/internal/config"
	"github.com/phrazzld/oetprep/internal/platform/jsonfile"
	"github.com/phrazzld/oetprep/internal/platform/memory"
	"github.com/phrazzld/oetprep/internal/platform/sqlstore"
	"github.com/phrazzld/oetprep/internal/store"
)

func noopClose() error { return nil }

// openStore opens the configured collection store and returns a function
// releasing it.
func openStore(ctx context.Context, cfg config.StorageConfig, log *slog.Logger) (store.CollectionStore, func() error, error) {
	log.Info("opening storage", slog.String("driver", cfg.Driver))

	switch cfg.Driver {
	case config.DriverMemory:
		return memory.New(log), noopClose, nil

	case config.DriverJSONFile:
		s, err := jsonfile.New(cfg.DataDir, log)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open json storage: %w", err)
		}
		return s, noopClose, nil

	case config.DriverSQLite:
		s, err := sqlstore.OpenSQLite(ctx, cfg.DataDir, log)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite storage: %w", err)
		}
		return s, s.Close, nil

	case config.DriverPostgres:
		s, err := sqlstore.Open(ctx, sqlstore.DriverPostgres, cfg.DatabaseURL, log)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open postgres storage: %w", err)
		}
		return s, s.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
