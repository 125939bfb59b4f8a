package database

import (
	"fmt"

	"quizquest/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// NewSQLiteDB opens (and creates if necessary) the sqlite database and
// verifies connectivity.
func NewSQLiteDB(dbCfg config.DBConfig) (*sqlx.DB, error) {
	if dbCfg.Path == "" {
		return nil, fmt.Errorf("database path is not configured")
	}

	db, err := sqlx.Connect("sqlite3", dbCfg.Path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", dbCfg.Path, err)
	}

	// sqlite allows a single writer; serializing through one connection avoids
	// SQLITE_BUSY under concurrent handlers.
	db.SetMaxOpenConns(1)

	return db, nil
}
