package services_test

import (
	"context"
	"errors"
	"pdp-route-service/internal/adapters/cache"
	"pdp-route-service/internal/adapters/distance"
	"pdp-route-service/internal/domain"
	"pdp-route-service/internal/matrix"
	"pdp-route-service/internal/ports"
	"pdp-route-service/internal/services"
	"testing"

	"github.com/stretchr/testify/require"
)

// countingSource records how often the wrapped source is consulted.
type countingSource struct {
	inner ports.MatrixSource
	calls int
}

func (c *countingSource) FetchResponse(ctx context.Context, ref string) (*domain.DistanceMatrixResponse, error) {
	c.calls++
	return c.inner.FetchResponse(ctx, ref)
}

type brokenCache struct{}

func (brokenCache) Get(ctx context.Context, key string) (domain.TravelTimeMatrix, error) {
	return nil, errors.New("disk on fire")
}

func (brokenCache) Put(ctx context.Context, key string, m domain.TravelTimeMatrix) error {
	return errors.New("disk on fire")
}

// secondsOf turns minutes into seconds with a sub-minute remainder, so
// building the matrix must truncate back to the minutes.
func secondsOf(m domain.TravelTimeMatrix) [][]int64 {
	out := make([][]int64, len(m))
	for i, row := range m {
		out[i] = make([]int64, len(row))
		for j, v := range row {
			if v > 0 {
				out[i][j] = v*60 + 59
			}
		}
	}
	return out
}

func TestMatrixLoader_CachesBuiltMatrix(t *testing.T) {
	src := &countingSource{inner: distance.NewStaticSource(map[string]*domain.DistanceMatrixResponse{
		"demo.json": distance.ResponseFromSeconds(secondsOf(demoMatrix())),
	})}
	fc := cache.NewFileMatrixCache(t.TempDir())
	loader := services.NewMatrixLoader(src, fc, "file")
	ctx := context.Background()

	m, err := loader.Load(ctx, "demo.json")
	require.NoError(t, err)
	require.True(t, demoMatrix().Equal(m))
	require.Equal(t, 1, src.calls)

	m, err = loader.Load(ctx, "demo.json")
	require.NoError(t, err)
	require.True(t, demoMatrix().Equal(m))
	require.Equal(t, 1, src.calls, "second load should be served from cache")

	cached, err := fc.Get(ctx, "demo")
	require.NoError(t, err)
	require.True(t, demoMatrix().Equal(cached))
}

func TestMatrixLoader_CacheFailuresAreNotFatal(t *testing.T) {
	src := distance.NewStaticSource(map[string]*domain.DistanceMatrixResponse{
		"pair": distance.ResponseFromSeconds([][]int64{{0, 600}, {660, 0}}),
	})
	loader := services.NewMatrixLoader(src, brokenCache{}, "broken")

	m, err := loader.Load(context.Background(), "pair")
	require.NoError(t, err)
	require.Equal(t, domain.TravelTimeMatrix{{0, 10}, {11, 0}}, m)
}

func TestMatrixLoader_Errors(t *testing.T) {
	bad := distance.ResponseFromSeconds([][]int64{{0, 60}, {60, 0}})
	bad.Rows[1].Elements = bad.Rows[1].Elements[:1]

	loader := services.NewMatrixLoader(distance.NewStaticSource(map[string]*domain.DistanceMatrixResponse{
		"bad": bad,
	}), nil, "")
	ctx := context.Background()

	_, err := loader.Load(ctx, "bad")
	require.ErrorIs(t, err, matrix.ErrMalformedMatrix)

	_, err = loader.Load(ctx, "missing")
	require.Error(t, err)

	_, err = loader.Load(ctx, " ")
	require.Error(t, err)

	_, err = services.NewMatrixLoader(nil, nil, "").Load(ctx, "demo")
	require.Error(t, err)
}

func TestCacheKey(t *testing.T) {
	cases := map[string]string{
		"demo.json":          "demo",
		"demo":               "demo",
		"regions/north.json": "regions%2Fnorth",
		"regions/./north":    "regions%2Fnorth",
		"regions__north":     "regions__north",
		"north.v1":           "north.v1",
		"north.v2":           "north.v2",
		"100%/x.json":        "100%25%2Fx",
		" spaced.json ":      "spaced",
	}
	for ref, want := range cases {
		require.Equal(t, want, services.CacheKey(ref), ref)
	}
}

func TestMatrixLoader_RefsSharingStemKeepSeparateEntries(t *testing.T) {
	src := distance.NewStaticSource(map[string]*domain.DistanceMatrixResponse{
		"north.v1": distance.ResponseFromSeconds([][]int64{{0, 60}, {60, 0}}),
		"north.v2": distance.ResponseFromSeconds([][]int64{{0, 600}, {600, 0}}),
	})
	loader := services.NewMatrixLoader(src, cache.NewFileMatrixCache(t.TempDir()), "file")
	ctx := context.Background()

	v1, err := loader.Load(ctx, "north.v1")
	require.NoError(t, err)
	require.Equal(t, domain.TravelTimeMatrix{{0, 1}, {1, 0}}, v1)

	v2, err := loader.Load(ctx, "north.v2")
	require.NoError(t, err)
	require.Equal(t, domain.TravelTimeMatrix{{0, 10}, {10, 0}}, v2)
}
