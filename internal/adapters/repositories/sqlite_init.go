package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"pdp-route-service/internal/domain"
	"strings"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	createProblemsQuery := `
	CREATE TABLE IF NOT EXISTS problems (
		name TEXT PRIMARY KEY,
		body TEXT NOT NULL
	);
	`

	createMatrixCacheQuery := `
	CREATE TABLE IF NOT EXISTS matrix_cache (
		cache_key TEXT PRIMARY KEY,
		size INTEGER NOT NULL,
		body TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	`

	return execSchema(db, createProblemsQuery, createMatrixCacheQuery)
}

// Initialize the Postgres database schema.
func InitPostgresSchema(db *sql.DB) error {
	createProblemsQuery := `
	CREATE TABLE IF NOT EXISTS problems (
		name TEXT PRIMARY KEY,
		body JSONB NOT NULL
	);
	`

	createMatrixCacheQuery := `
	CREATE TABLE IF NOT EXISTS matrix_cache (
		cache_key TEXT PRIMARY KEY,
		size INTEGER NOT NULL,
		body TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	return execSchema(db, createProblemsQuery, createMatrixCacheQuery)
}

func execSchema(db *sql.DB, statements ...string) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the problems table. Problems are stored as JSON documents keyed
// by name; an existing row with the same name is replaced, but names must be
// unique within one call.
func SeedProblems(ctx context.Context, db *sql.DB, dialect Dialect, problems []*domain.Problem) error {
	if db == nil {
		return errors.New("seed problems: DB is nil")
	}

	type row struct {
		name string
		body []byte
	}

	rows := make([]row, 0, len(problems))
	seen := make(map[string]int, len(problems))
	for i, p := range problems {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return fmt.Errorf("seed problems: item at index %d: name cannot be empty", i+1)
		}
		if first, dup := seen[name]; dup {
			return fmt.Errorf("seed problems: items at index %d and %d: duplicate name %q", first, i+1, name)
		}
		seen[name] = i + 1
		body, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("seed problems: encode %q: %w", name, err)
		}
		rows = append(rows, row{name: name, body: body})
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed problems: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT INTO problems (
		name,
		body
	)
	VALUES (?, ?)
	ON CONFLICT (name) DO UPDATE SET body = excluded.body;
	`
	stmt, err := tx.PrepareContext(ctx, rebind(dialect, query))
	if err != nil {
		return fmt.Errorf("seed problems: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, r.name, string(r.body)); err != nil {
			return fmt.Errorf("seed problems: insert name=%q: %w", r.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed problems: commit tx: %w", err)
	}

	return nil
}
