package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path"
	"path/filepath"
	"pdp-route-service/internal/domain"
	"pdp-route-service/internal/matrix"
	"pdp-route-service/internal/platform/metrics"
	"pdp-route-service/internal/platform/obs"
	"pdp-route-service/internal/ports"
	"strings"
)

// MatrixLoader resolves travel time matrices from distance-matrix responses,
// consulting a write-once cache first.
type MatrixLoader struct {
	Source ports.MatrixSource
	Cache  ports.MatrixCache
	// Backend labels cache metrics ("file", "sqlite", "redis", ...).
	Backend string
}

func NewMatrixLoader(source ports.MatrixSource, cache ports.MatrixCache, backend string) *MatrixLoader {
	if backend == "" {
		backend = "none"
	}
	return &MatrixLoader{Source: source, Cache: cache, Backend: backend}
}

// Load returns the matrix for ref. Cache failures never fail the load: a
// broken read falls through to the source and a broken write is only logged.
func (l *MatrixLoader) Load(ctx context.Context, ref string) (_ domain.TravelTimeMatrix, err error) {
	defer obs.Time(ctx, "matrix.Load")(&err)

	if strings.TrimSpace(ref) == "" {
		return nil, errors.New("load matrix: ref must not be empty")
	}
	key := CacheKey(ref)

	if l.Cache != nil {
		m, err := l.Cache.Get(ctx, key)
		switch {
		case err == nil:
			metrics.MatrixCacheLookups.WithLabelValues(l.Backend, "hit").Inc()
			return m, nil
		case errors.Is(err, ports.ErrCacheMiss):
			metrics.MatrixCacheLookups.WithLabelValues(l.Backend, "miss").Inc()
		default:
			metrics.MatrixCacheLookups.WithLabelValues(l.Backend, "error").Inc()
			log.Printf("req_id=%s op=matrix.cache.get key=%s err=%v", obs.RequestID(ctx), key, err)
		}
	}

	if l.Source == nil {
		return nil, fmt.Errorf("load matrix %q: no matrix source configured", ref)
	}

	resp, err := l.Source.FetchResponse(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("load matrix %q: %w", ref, err)
	}

	m, err := matrix.BuildTravelTimeMatrix(resp)
	if err != nil {
		return nil, fmt.Errorf("load matrix %q: %w", ref, err)
	}

	if l.Cache != nil {
		if err := l.Cache.Put(ctx, key, m); err != nil {
			log.Printf("req_id=%s op=matrix.cache.put key=%s err=%v", obs.RequestID(ctx), key, err)
		}
	}

	return m, nil
}

// CacheKey derives the cache key of a response ref. Refs resolving to the
// same response file share a key: "north" and "north.json" both map to
// "north". Other extensions are kept, and '/' and '%' are percent-escaped so
// distinct refs never collide ("regions/north.json" -> "regions%2Fnorth").
func CacheKey(ref string) string {
	ref = path.Clean(filepath.ToSlash(strings.TrimSpace(ref)))
	ref = strings.TrimPrefix(ref, "/")
	ref = strings.TrimSuffix(ref, ".json")
	return keyEscaper.Replace(ref)
}

var keyEscaper = strings.NewReplacer("%", "%25", "/", "%2F")
