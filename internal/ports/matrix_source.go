package ports

import (
	"context"
	"errors"
	"pdp-route-service/internal/domain"
)

// ErrCacheMiss is returned by a MatrixCache when no entry exists for a key.
var ErrCacheMiss = errors.New("matrix cache: miss")

// Contract for obtaining a raw distance-matrix response.
type MatrixSource interface {
	// Return the response identified by ref (a file name, fixture key, ...).
	FetchResponse(ctx context.Context, ref string) (*domain.DistanceMatrixResponse, error)
}

// Contract for a write-once store of built travel time matrices.
type MatrixCache interface {
	// Return the matrix stored under key, or ErrCacheMiss.
	Get(ctx context.Context, key string) (domain.TravelTimeMatrix, error)
	// Store a matrix under key.
	Put(ctx context.Context, key string, m domain.TravelTimeMatrix) error
}
