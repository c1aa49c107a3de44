package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"github.com/phrazzld/oetprep/internal/store"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// SQLiteFile is the database file created inside the data directory.
const SQLiteFile = "oetprep.db"

// Store is a SQL-backed CollectionStore.
type Store struct {
	db     *sqlx.DB
	driver string
	logger *slog.Logger
	now    func() time.Time
}

var _ store.CollectionStore = (*Store)(nil)

// OpenSQLite opens (creating if needed) the SQLite database in dataDir.
// dataDir is created when missing.
func OpenSQLite(ctx context.Context, dataDir string, log *slog.Logger) (*Store, error) {
	if dataDir == "" {
		return nil, errors.New("data directory cannot be empty")
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	dsn := "file:" + filepath.Join(dataDir, SQLiteFile) + "?_busy_timeout=5000&_journal_mode=WAL"
	return Open(ctx, DriverSQLite, dsn, log)
}

// Open connects to the database, applies migrations and returns a Store.
func Open(ctx context.Context, driver, dsn string, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}

	var dialect string
	switch driver {
	case DriverSQLite:
		dialect = "sqlite3"
	case DriverPostgres:
		dialect = "postgres"
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if driver == DriverSQLite {
		// One connection serializes writers; SQLite allows a single writer anyway.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := Migrate(db, dialect, log); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Info("database connection established", slog.String("driver", driver))
	return &Store{
		db:     db,
		driver: driver,
		logger: log.With(slog.String("component", "sql_store")),
		now:    time.Now,
	}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle for health checks.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Load implements store.CollectionStore.
func (s *Store) Load(ctx context.Context, name string, seed []byte) ([]byte, error) {
	if err := store.ValidateName(name); err != nil {
		return nil, err
	}

	var data []byte
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		current, err := s.current(ctx, tx, name, seed, false)
		data = current
		return err
	})
	if err != nil {
		return nil, store.NewStoreError(name, "load", "failed to load collection", MapError(err))
	}
	return data, nil
}

// Save implements store.CollectionStore.
func (s *Store) Save(ctx context.Context, name string, data []byte) error {
	if err := store.ValidateName(name); err != nil {
		return err
	}
	if err := s.upsert(ctx, s.db, name, data); err != nil {
		return store.NewStoreError(name, "save", "failed to save collection", MapError(err))
	}
	return nil
}

// Update implements store.CollectionStore. The row is locked for the
// duration of fn on PostgreSQL; SQLite serializes through its single
// connection.
func (s *Store) Update(ctx context.Context, name string, seed []byte, fn store.UpdateFn) error {
	if err := store.ValidateName(name); err != nil {
		return err
	}

	var fnErr error
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		current, err := s.current(ctx, tx, name, seed, true)
		if err != nil {
			return err
		}
		next, err := fn(current)
		if err != nil {
			fnErr = err
			return err
		}
		if next == nil {
			return nil
		}
		return s.upsert(ctx, tx, name, next)
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return store.NewStoreError(name, "update", "failed to update collection", MapError(err))
	}
	return nil
}

// current ensures the row exists (inserting seed) and returns its payload.
func (s *Store) current(ctx context.Context, tx *sqlx.Tx, name string, seed []byte, lock bool) ([]byte, error) {
	insert := tx.Rebind(`INSERT INTO collections (name, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (name) DO NOTHING`)
	if _, err := tx.ExecContext(ctx, insert, name, string(seed), s.now().UTC()); err != nil {
		return nil, err
	}

	query := `SELECT payload FROM collections WHERE name = ?`
	if lock && s.driver == DriverPostgres {
		query += ` FOR UPDATE`
	}
	var payload string
	if err := tx.GetContext(ctx, &payload, tx.Rebind(query), name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return seed, nil
		}
		return nil, err
	}
	return store.ValidOrSeed(ctx, s.logger, name, []byte(payload), seed), nil
}

func (s *Store) upsert(ctx context.Context, exec sqlx.ExecerContext, name string, data []byte) error {
	q := s.db.Rebind(`INSERT INTO collections (name, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`)
	_, err := exec.ExecContext(ctx, q, name, string(data), s.now().UTC())
	return err
}
