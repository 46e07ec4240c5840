package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"pdp-route-service/internal/domain"
	"pdp-route-service/internal/ports"
)

// SQL-backed implementation of the ProblemRepository port.
// Works on both SQLite and Postgres schemas created by this package.
type SQLProblemRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSQLProblemRepository(db *sql.DB, dialect Dialect) *SQLProblemRepository {
	return &SQLProblemRepository{DB: db, Dialect: dialect}
}

// Return the names of all stored problems.
func (s *SQLProblemRepository) ListProblems(ctx context.Context) ([]string, error) {
	if s.DB == nil {
		return nil, errors.New("sql problem repository: DB is nil")
	}

	query := `
	SELECT
		name
	FROM problems
	ORDER BY name;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list problems: query problems table: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0, 16)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("list problems: scan row: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list problems: row iteration: %w", err)
	}

	return names, nil
}

// Return one problem by name.
func (s *SQLProblemRepository) GetProblem(ctx context.Context, name string) (*domain.Problem, error) {
	if s.DB == nil {
		return nil, errors.New("sql problem repository: DB is nil")
	}

	var body string
	err := s.DB.QueryRowContext(ctx, rebind(s.Dialect, `SELECT body FROM problems WHERE name = ?;`), name).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get problem %q: %w", name, ports.ErrProblemNotFound)
		}
		return nil, fmt.Errorf("get problem %q: query problems table: %w", name, err)
	}

	var p domain.Problem
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		return nil, fmt.Errorf("get problem %q: decode body: %w", name, err)
	}

	return &p, nil
}
