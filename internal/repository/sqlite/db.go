package sqlite

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Open connects to the database file at path and creates the schema.
// Use ":memory:" for a throwaway database.
func Open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite allows a single writer; one connection also keeps :memory: shared
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := InitDB(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return db, nil
}

// InitDB runs the embedded schema statements on db
func InitDB(db *sqlx.DB) error {
	stmts := strings.Split(schemaSQL, ";")
	for _, s := range stmts {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func dsn(path string) string {
	if path == ":memory:" {
		return "file::memory:?_txlock=immediate&_busy_timeout=5000"
	}
	return fmt.Sprintf("file:%s?_txlock=immediate&_busy_timeout=5000", path)
}
