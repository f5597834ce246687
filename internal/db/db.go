package db

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	_ "github.com/lib/pq"
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// New creates a new database connection from the provided connection string
func New(connectionString string) (*DB, error) {
	if connectionString == "" {
		return nil, fmt.Errorf("database connection string is required")
	}

	sqlDB, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		// Try with SSL disabled if connection fails and SSL mode not specified
		if !strings.Contains(strings.ToLower(connectionString), "sslmode") {
			log.Println("retrying database connection with SSL disabled")
			sqlDB.Close()
			sslDisabledConnection := connectionString
			if strings.Contains(connectionString, "?") {
				sslDisabledConnection += "&sslmode=disable"
			} else {
				sslDisabledConnection += "?sslmode=disable"
			}
			var err2 error
			sqlDB, err2 = sql.Open("postgres", sslDisabledConnection)
			if err2 != nil {
				return nil, fmt.Errorf("failed to open database: %w", err2)
			}
		}
		if err := sqlDB.Ping(); err != nil {
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
	}

	// Set connection pool settings
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return &DB{DB: sqlDB}, nil
}

// EnsureSchema creates the chat history table if it does not exist.
func (db *DB) EnsureSchema() error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS chat_history (
			session_id TEXT PRIMARY KEY,
			history TEXT NOT NULL DEFAULT '',
			updated_at TIMESTAMP DEFAULT NOW()
		)
	`)
	return err
}

// HealthCheck verifies the database connection is healthy
func (db *DB) HealthCheck() error {
	return db.Ping()
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
