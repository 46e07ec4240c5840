package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pdp-route-service/internal/adapters/problems"
	"pdp-route-service/internal/api"
	"pdp-route-service/internal/api/dto"
	"pdp-route-service/internal/services"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

const demoYAML = `
vehicles: 4
depot: 0
pickups_deliveries:
  - {pickup: 1, delivery: 6}
  - {pickup: 2, delivery: 4}
  - {pickup: 5, delivery: 1}
  - {pickup: 7, delivery: 3}
time_matrix:
  - [0, 62, 78, 83, 87, 61, 74, 101, 40]
  - [65, 0, 34, 116, 35, 17, 93, 62, 47]
  - [76, 30, 0, 127, 55, 40, 104, 65, 66]
  - [82, 113, 128, 0, 138, 112, 107, 151, 103]
  - [90, 36, 59, 141, 0, 48, 118, 63, 78]
  - [63, 17, 42, 114, 44, 0, 90, 71, 36]
  - [72, 90, 106, 110, 115, 89, 0, 129, 80]
  - [100, 59, 65, 151, 61, 71, 128, 0, 89]
  - [43, 49, 68, 105, 76, 35, 82, 91, 0]
`

func newTestRouter(t *testing.T, d api.Deps) http.Handler {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "demo.yaml"), []byte(demoYAML), 0o644))

	repo := problems.NewFileRepository(dir)
	d.Problems = repo
	d.Planner = services.NewPlanner(repo, nil)
	return api.NewRouter(d)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	h := newTestRouter(t, api.Deps{})

	rec := do(t, h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))

	rec = do(t, h, http.MethodPost, "/health", "")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, http.MethodGet, rec.Header().Get("Allow"))
}

func TestHealth_PingFailure(t *testing.T) {
	h := newTestRouter(t, api.Deps{Ping: func(ctx context.Context) error { return errors.New("db down") }})

	rec := do(t, h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestListProblems(t *testing.T) {
	h := newTestRouter(t, api.Deps{})

	rec := do(t, h, http.MethodGet, "/problems", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"problems":["demo"]}`, rec.Body.String())
}

func TestPlan_StoredProblem(t *testing.T) {
	h := newTestRouter(t, api.Deps{})

	rec := do(t, h, http.MethodPost, "/plans", `{"problem":"demo"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res dto.PlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, "demo", res.Problem)
	require.NotEmpty(t, res.PlanID)
	require.Equal(t, int64(883), res.Total)
	require.Equal(t, int64(883), res.Objective)
	require.Len(t, res.Routes, 4)
	require.Equal(t, []int{0, 5, 1, 6, 0}, res.Routes[0].Nodes)
	require.Equal(t, int64(243), res.Routes[0].Cost)
	require.Contains(t, res.Text, "Route for Vehicle 0:\n0 -> 5 -> 1 -> 6 -> 0\nTime of the route: 243minutes\n")
	require.True(t, strings.HasSuffix(res.Text, "Total Time of all routes: 883minutes\n"))
}

func TestPlan_InlineDefinition(t *testing.T) {
	h := newTestRouter(t, api.Deps{})

	body := `{"definition":{"name":"pair","vehicles":1,"pickups_deliveries":[{"pickup":2,"delivery":1}],
		"time_matrix":[[0,5,9],[5,0,3],[9,3,0]]}}`
	rec := do(t, h, http.MethodPost, "/plans", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res dto.PlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, []int{0, 2, 1, 0}, res.Routes[0].Nodes)
	require.Equal(t, int64(17), res.Total)
}

func TestPlan_Errors(t *testing.T) {
	h := newTestRouter(t, api.Deps{})

	cases := []struct {
		name string
		body string
		code int
	}{
		{"bad json", `{"problem":`, http.StatusBadRequest},
		{"unknown field", `{"problem":"demo","hub":"x"}`, http.StatusBadRequest},
		{"two objects", `{"problem":"demo"}{}`, http.StatusBadRequest},
		{"empty", `{}`, http.StatusBadRequest},
		{"unknown problem", `{"problem":"nope"}`, http.StatusNotFound},
		{"ragged matrix", `{"definition":{"vehicles":1,"time_matrix":[[0,1],[1]]}}`, http.StatusUnprocessableEntity},
		{"invalid problem", `{"definition":{"vehicles":0,"time_matrix":[[0,1],[1,0]]}}`, http.StatusUnprocessableEntity},
		{"fleet too large", `{"definition":{"vehicles":1025,"time_matrix":[[0,1],[1,0]]}}`, http.StatusUnprocessableEntity},
		{"huge fleet", `{"definition":{"vehicles":9223372036854775807,"time_matrix":[[0,1],[1,0]]}}`, http.StatusUnprocessableEntity},
		{"window on depot", `{"definition":{"vehicles":1,"time_windows":[{"node":0,"open":0,"close":5}],"time_matrix":[[0,1],[1,0]]}}`, http.StatusUnprocessableEntity},
		{"no solution", `{"definition":{"vehicles":1,"horizon":10,"time_matrix":[[0,8],[8,0]]}}`, http.StatusUnprocessableEntity},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/plans", tc.body)
			require.Equal(t, tc.code, rec.Code, rec.Body.String())
			require.Contains(t, rec.Body.String(), `"error"`)
		})
	}

	rec := do(t, h, http.MethodGet, "/plans", "")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestSerializeMatrix(t *testing.T) {
	h := newTestRouter(t, api.Deps{})

	body := `{"status":"OK","origin_addresses":["a","b"],"destination_addresses":["a","b"],"rows":[
		{"elements":[{"status":"OK","duration":{"value":0}},{"status":"OK","duration":{"value":119}}]},
		{"elements":[{"status":"OK","duration":{"value":60}},{"status":"OK","duration":{"value":0}}]}]}`
	rec := do(t, h, http.MethodPost, "/matrices/serialize", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res dto.SerializeMatrixResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, [][]int64{{0, 1}, {1, 0}}, res.Matrix)
	require.Equal(t, "{{0,1,},\n{1,0,},\n}", res.Text)

	rec = do(t, h, http.MethodPost, "/matrices/serialize", `{"rows":[]}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRateLimit(t *testing.T) {
	h := newTestRouter(t, api.Deps{Limiter: rate.NewLimiter(0, 1)})

	rec := do(t, h, http.MethodGet, "/problems", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/problems", "")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "1", rec.Header().Get("Retry-After"))

	// health stays reachable when the bucket is empty
	rec = do(t, h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestRouter(t, api.Deps{})

	do(t, h, http.MethodGet, "/health", "")
	rec := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	require.Contains(t, body, "go_goroutines")
	require.True(t, bytes.Contains([]byte(body), []byte(`http_requests_total{method="GET",path="/health",status="200"}`)))
}
