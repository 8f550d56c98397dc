package database

import (
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// New creates a new database connection pool.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dataSourceName+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
// Timestamps are stored as RFC 3339 UTC text so that lexicographic
// comparison in SQL matches chronological order.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		phone TEXT,
		password_hash TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sessions (
		token TEXT NOT NULL PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		expires_at TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);

	CREATE TABLE IF NOT EXISTS attractions (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		city TEXT NOT NULL,
		description TEXT,
		category TEXT,
		price REAL,
		rating REAL,
		image_url TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS accommodations (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		city TEXT NOT NULL,
		description TEXT,
		price_per_night REAL,
		rating REAL,
		image_url TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS restaurants (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		city TEXT NOT NULL,
		description TEXT,
		cuisine TEXT,
		price REAL,
		rating REAL,
		image_url TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS guides (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		city TEXT NOT NULL,
		bio TEXT,
		languages TEXT,
		price_per_day REAL,
		rating REAL,
		image_url TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS orders (
		id TEXT NOT NULL PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		resource_id TEXT NOT NULL,
		resource_type TEXT NOT NULL,
		booking_time TEXT NOT NULL,
		party_size INTEGER NOT NULL DEFAULT 1,
		status TEXT NOT NULL,
		notes TEXT,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_orders_resource ON orders(resource_id, status, booking_time);

	CREATE TABLE IF NOT EXISTS events (
		id TEXT NOT NULL PRIMARY KEY,
		type TEXT NOT NULL,
		level TEXT NOT NULL,
		message TEXT NOT NULL,
		user_id TEXT,
		created_at TEXT NOT NULL
	);
	`
	_, err := db.Exec(sqlStmt)
	return err
}
