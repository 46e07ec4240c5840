package cache

import (
	"context"
	"pdp-route-service/internal/domain"
	"pdp-route-service/internal/ports"
)

// NoopMatrixCache never stores anything; every Get is a miss.
type NoopMatrixCache struct{}

func (NoopMatrixCache) Get(ctx context.Context, key string) (domain.TravelTimeMatrix, error) {
	return nil, ports.ErrCacheMiss
}

func (NoopMatrixCache) Put(ctx context.Context, key string, m domain.TravelTimeMatrix) error {
	return nil
}
