package storage

import (
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

//go:embed schema.sql
var schemaSQL string

// DB wraps sqlx.DB to provide custom functionality
type DB struct {
	*sqlx.DB
}

// NewDB opens the connection pool, applies the autour schema if missing, and
// seeds country/zone reference data on a fresh database. Callers own the
// returned DB and must call Close on every exit path.
func NewDB(dbURL string) (*DB, error) {
	sqlxdb, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		return nil, err
	}

	sqlxdb.SetMaxOpenConns(25)
	sqlxdb.SetMaxIdleConns(5)

	db := &DB{sqlxdb}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %v", err)
	}

	if err := db.seedCountries(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed countries: %v", err)
	}

	if err := db.Bootstrap(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to bootstrap zones: %v", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

// Exec wraps sqlx.DB.Exec
func (db *DB) Exec(query string, args ...interface{}) (sql.Result, error) {
	return db.DB.Exec(query, args...)
}

// Select wraps sqlx.DB.Select
func (db *DB) Select(dest interface{}, query string, args ...interface{}) error {
	return db.DB.Select(dest, query, args...)
}
