// Package sqlstore implements store.CollectionStore on a SQL database. Each
// collection is a row of the collections table holding the JSON payload.
//
// SQLite (github.com/mattn/go-sqlite3) and PostgreSQL (pgx stdlib driver)
// are supported. The schema is managed by goose migrations embedded in the
// binary and applied by Open.
package sqlstore
