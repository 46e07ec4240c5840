package cache

import (
	"database/sql"
	"fmt"
	"pdp-route-service/internal/ports"
	"strings"
	"time"
)

// Options selects and configures a matrix cache backend.
type Options struct {
	// Kind is one of file, sqlite, postgres, redis or none.
	Kind     string
	Dir      string
	DB       *sql.DB
	RedisURL string
	TTL      time.Duration
}

// Open builds the cache named by opts.Kind. The returned close func releases
// backend connections the cache owns; it never closes opts.DB.
func Open(opts Options) (ports.MatrixCache, func() error, error) {
	noClose := func() error { return nil }

	switch kind := strings.ToLower(strings.TrimSpace(opts.Kind)); kind {
	case "", "none":
		return NoopMatrixCache{}, noClose, nil
	case "file":
		if strings.TrimSpace(opts.Dir) == "" {
			return nil, nil, fmt.Errorf("open matrix cache %q: dir is required", kind)
		}
		return NewFileMatrixCache(opts.Dir), noClose, nil
	case "sqlite":
		if opts.DB == nil {
			return nil, nil, fmt.Errorf("open matrix cache %q: db is required", kind)
		}
		return NewSqliteMatrixCache(opts.DB), noClose, nil
	case "postgres":
		if opts.DB == nil {
			return nil, nil, fmt.Errorf("open matrix cache %q: db is required", kind)
		}
		return NewSQLMatrixCache(opts.DB), noClose, nil
	case "redis":
		if strings.TrimSpace(opts.RedisURL) == "" {
			return nil, nil, fmt.Errorf("open matrix cache %q: redis url is required", kind)
		}
		rc, err := NewRedisMatrixCacheFromURL(opts.RedisURL, opts.TTL)
		if err != nil {
			return nil, nil, fmt.Errorf("open matrix cache %q: %w", kind, err)
		}
		return rc, rc.Close, nil
	default:
		return nil, nil, fmt.Errorf("open matrix cache: unknown kind %q", opts.Kind)
	}
}
