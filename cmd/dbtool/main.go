package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"pdp-route-service/internal/adapters/problems"
	"pdp-route-service/internal/adapters/repositories"
	"pdp-route-service/internal/config"
	"pdp-route-service/internal/platform/db"
)

// dbtool prepares a Postgres database: schema, then problem seeds.
func main() {
	config.Load()

	problemDir := flag.String("problems", config.Get("PROBLEM_DIR", "data/problems"), "directory of problem YAML files to seed (empty skips seeding)")
	flag.Parse()

	databaseURL := config.Get("DATABASE_URL", "")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	initAndSeed(conn, *problemDir)
}

func initAndSeed(conn *sql.DB, problemDir string) {
	log.Println("Initializing database schema...")
	if err := repositories.InitPostgresSchema(conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if problemDir == "" {
		return
	}

	log.Println("Seeding problems...")
	ctx := context.Background()
	all, err := problems.NewFileRepository(problemDir).LoadAll(ctx)
	if err != nil {
		log.Fatalf("loading problems failed: %v", err)
	}
	if err := repositories.SeedProblems(ctx, conn, repositories.Postgres, all); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Printf("Seeding complete. count=%d", len(all))
}
