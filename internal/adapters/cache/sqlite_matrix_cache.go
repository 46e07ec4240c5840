package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"pdp-route-service/internal/domain"
	"pdp-route-service/internal/matrix"
	"pdp-route-service/internal/platform/obs"
	"pdp-route-service/internal/ports"
	"strings"
)

// SQLite backed cache for built travel time matrices.
// Keys are expected to be consistent (e.g., a problem or response name)
// by the caller.
type SqliteMatrixCache struct {
	DB *sql.DB
}

func NewSqliteMatrixCache(db *sql.DB) *SqliteMatrixCache {
	return &SqliteMatrixCache{DB: db}
}

// Fetch the matrix cached under key.
func (s *SqliteMatrixCache) Get(ctx context.Context, key string) (_ domain.TravelTimeMatrix, err error) {
	defer obs.Time(ctx, "matrix.cache.sqlite.Get")(&err)

	if s.DB == nil {
		return nil, errors.New("matrix cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return nil, errors.New("get matrix cache: key must not be empty")
	}

	q := `
	SELECT
		body
	FROM matrix_cache
	WHERE cache_key = ?;
	`

	var body string
	if err := s.DB.QueryRowContext(ctx, q, key).Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ports.ErrCacheMiss
		}
		return nil, fmt.Errorf("get matrix cache: query matrix_cache table: %w", err)
	}

	m, err := matrix.ParseSerialized(body)
	if err != nil {
		return nil, fmt.Errorf("get matrix cache key=%q: %w", key, err)
	}

	return m, nil
}

// Store a matrix under key. An existing entry is kept as is.
func (s *SqliteMatrixCache) Put(ctx context.Context, key string, m domain.TravelTimeMatrix) (err error) {
	defer obs.Time(ctx, "matrix.cache.sqlite.Put")(&err)

	if s.DB == nil {
		return errors.New("matrix cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("insert matrix cache: key must not be empty")
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT OR IGNORE INTO matrix_cache (
		cache_key,
		size,
		body
	)
	VALUES (?, ?, ?)
	`, key, m.Size(), matrix.Serialize(m))
	if err != nil {
		return fmt.Errorf("insert matrix cache key=%q: %w", key, err)
	}

	return nil
}
