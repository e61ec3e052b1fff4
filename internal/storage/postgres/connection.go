package postgres

import (
	"database/sql"
	"fmt"

	"github.com/admetrics-hub/admetrics-backend/config"
	_ "github.com/lib/pq"
)

// NewConnection opens the database/sql handle used by the user repository.
func NewConnection(cfg *config.DatabaseConfig) (*sql.DB, error) {
	dsn := DSN(cfg)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}
