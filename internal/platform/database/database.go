// Package database opens the PostgreSQL connection pool and owns the schema.
package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Connect opens a pooled PostgreSQL connection and ensures the schema exists.
func Connect(databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates the tables this service owns. Idempotent; also used by the
// integration test harness against throwaway databases.
func Migrate(db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL,
		name TEXT NOT NULL,
		color TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS sentences (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL,
		text TEXT NOT NULL,
		translation TEXT NOT NULL DEFAULT '',
		difficulty TEXT,
		category_id BIGINT REFERENCES categories(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS practice_events (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL,
		sentence_id BIGINT NOT NULL REFERENCES sentences(id),
		practiced_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		score DOUBLE PRECISION,
		transcript TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_practice_events_user_time
		ON practice_events (user_id, practiced_at)`,
	`CREATE INDEX IF NOT EXISTS idx_sentences_user ON sentences (user_id)`,
}
