package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"pdp-route-service/internal/adapters/cache"
	"pdp-route-service/internal/adapters/distance"
	"pdp-route-service/internal/adapters/problems"
	"pdp-route-service/internal/adapters/repositories"
	"pdp-route-service/internal/api"
	"pdp-route-service/internal/config"
	"pdp-route-service/internal/platform/db"
	"pdp-route-service/internal/services"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, response files, matrix
// cache) behind ports and starts the HTTP server.
func main() {
	config.Load()

	port := config.Get("PORT", "8080")
	problemDir := config.Get("PROBLEM_DIR", "data/problems")
	responseDir := config.Get("RESPONSE_DIR", "data/responses")

	conn, dialect, err := openStore()
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	// Initialize schema and seed problem files on startup for local runs.
	if err := initAndSeed(conn, dialect, problemDir); err != nil {
		log.Fatal(err)
	}

	cacheKind := config.Get("MATRIX_CACHE", string(dialect))
	matrixCache, closeCache, err := cache.Open(cache.Options{
		Kind:     cacheKind,
		Dir:      config.Get("CACHE_DIR", "data/cache"),
		DB:       conn,
		RedisURL: config.Get("REDIS_URL", ""),
		TTL:      config.GetDuration("MATRIX_CACHE_TTL", 24*time.Hour),
	})
	if err != nil {
		log.Fatal(err)
	}
	defer closeCache()

	repo := repositories.NewSQLProblemRepository(conn, dialect)
	loader := services.NewMatrixLoader(distance.NewFileSource(responseDir), matrixCache, cacheKind)

	var limiter *rate.Limiter
	if rps := config.GetFloat("RATE_LIMIT_RPS", 10); rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), config.GetInt("RATE_LIMIT_BURST", 20))
	}

	router := api.NewRouter(api.Deps{
		Problems: repo,
		Planner:  services.NewPlanner(repo, loader),
		Ping:     conn.PingContext,
		Limiter:  limiter,
	})

	log.Printf("Server listening addr=:%s store=%s matrix_cache=%s", port, dialect, cacheKind)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openStore connects to Postgres when DATABASE_URL is set and falls back to
// the local SQLite file otherwise.
func openStore() (*sql.DB, repositories.Dialect, error) {
	if url := config.Get("DATABASE_URL", ""); url != "" {
		conn, err := db.Open(url)
		if err != nil {
			return nil, "", err
		}
		return conn, repositories.Postgres, nil
	}

	conn, err := db.OpenSQLite(config.Get("DB_PATH", "data/app.db"))
	if err != nil {
		return nil, "", err
	}
	return conn, repositories.SQLite, nil
}

func initAndSeed(conn *sql.DB, dialect repositories.Dialect, problemDir string) error {
	initSchema := repositories.InitSchema
	if dialect == repositories.Postgres {
		initSchema = repositories.InitPostgresSchema
	}
	if err := initSchema(conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if strings.TrimSpace(problemDir) == "" {
		return nil
	}

	ctx := context.Background()
	all, err := problems.NewFileRepository(problemDir).LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	if err := repositories.SeedProblems(ctx, conn, dialect, all); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	log.Printf("seeded problems count=%d dir=%s", len(all), problemDir)

	return nil
}
