package repository

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// NewDB creates a new database connection
func NewDB(dbPath string) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &DB{db}, nil
}

func runMigrations(db *sql.DB) error {
	// The knowledge base is static and never stored here; this DB holds
	// only the append-only feedback/analytics records and admin sessions.
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS feedback (
			message_id TEXT NOT NULL,
			feedback TEXT NOT NULL,
			reason TEXT,
			custom_reason TEXT,
			query TEXT NOT NULL,
			answer TEXT NOT NULL,
			session_id TEXT,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS analytics_events (
			id TEXT PRIMARY KEY,
			recommendation_text TEXT NOT NULL,
			recommendation_url TEXT NOT NULL,
			context TEXT NOT NULL,
			priority TEXT NOT NULL,
			user_query TEXT NOT NULL,
			session_id TEXT NOT NULL,
			action TEXT NOT NULL,
			message_id TEXT NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS admin_sessions (
			token TEXT PRIMARY KEY,
			login_time DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_feedback_created ON feedback(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_analytics_created ON analytics_events(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_analytics_text ON analytics_events(recommendation_text)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	return nil
}
