package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB is the global database connection
var DB *sqlx.DB

// Connect establishes a connection to the database. If DATABASE_URL is set
// the bot runs on PostgreSQL, otherwise on a local SQLite file.
func Connect() error {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		db, err := sqlx.Connect("postgres", url)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %v", err)
		}
		DB = db
		return initializeSchema()
	}

	// Create data directory if it doesn't exist
	dataDir := "data"
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dataDir, "korbot.db")
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %v", err)
	}

	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	DB = db

	return initializeSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// serial returns the dialect-specific autoincrement primary key column
func serial() string {
	if DB.DriverName() == "postgres" {
		return "SERIAL PRIMARY KEY"
	}
	return "INTEGER PRIMARY KEY AUTOINCREMENT"
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema() error {
	statements := []struct {
		name  string
		query string
	}{
		{"alphabet", fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS alphabet (
				id %s,
				glyph TEXT NOT NULL UNIQUE,
				example_word TEXT NOT NULL,
				transliteration TEXT NOT NULL DEFAULT '',
				translation TEXT NOT NULL DEFAULT '',
				sound TEXT NOT NULL DEFAULT '',
				notes TEXT NOT NULL DEFAULT '',
				image TEXT NOT NULL DEFAULT '',
				position INTEGER NOT NULL
			)`, serial())},
		{"words", fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS words (
				id %s,
				word TEXT NOT NULL UNIQUE,
				translation TEXT NOT NULL,
				level INTEGER NOT NULL,
				rank INTEGER NOT NULL DEFAULT 0,
				image TEXT NOT NULL DEFAULT '',
				romanization TEXT NOT NULL DEFAULT '',
				examples TEXT NOT NULL DEFAULT ''
			)`, serial())},
		{"user_progress", `
			CREATE TABLE IF NOT EXISTS user_progress (
				user_id BIGINT PRIMARY KEY,
				score INTEGER NOT NULL DEFAULT 0,
				current_letter_index INTEGER NOT NULL DEFAULT 0
			)`},
		{"learned_words", `
			CREATE TABLE IF NOT EXISTS learned_words (
				user_id BIGINT NOT NULL,
				word_id BIGINT NOT NULL,
				learned_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				UNIQUE(user_id, word_id)
			)`},
		{"level_cursors", `
			CREATE TABLE IF NOT EXISTS level_cursors (
				user_id BIGINT NOT NULL,
				level INTEGER NOT NULL,
				next_index INTEGER NOT NULL DEFAULT 0,
				UNIQUE(user_id, level)
			)`},
		{"subscribers", `
			CREATE TABLE IF NOT EXISTS subscribers (
				user_id BIGINT PRIMARY KEY,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)`},
	}

	for _, s := range statements {
		if _, err := DB.Exec(s.query); err != nil {
			return fmt.Errorf("failed to create %s table: %v", s.name, err)
		}
	}

	return nil
}
