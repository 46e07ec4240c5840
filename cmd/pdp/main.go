// Command pdp solves pickup-and-delivery problems from YAML files and prints
// each vehicle's route with its travel time.
//
//	pdp -problem data/problems/demo.yaml
//	pdp -dir data/problems -name demo -matrix-out timeMatrix.txt
//	pdp -dir data/problems -all
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"pdp-route-service/internal/adapters/cache"
	"pdp-route-service/internal/adapters/distance"
	"pdp-route-service/internal/adapters/problems"
	"pdp-route-service/internal/config"
	"pdp-route-service/internal/matrix"
	"pdp-route-service/internal/report"
	"pdp-route-service/internal/services"
)

func main() {
	config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		stop()
		log.Fatal(err)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("pdp", flag.ContinueOnError)
	fs.SetOutput(out)

	problemFile := fs.String("problem", "", "path of a single problem YAML file")
	dir := fs.String("dir", config.Get("PROBLEM_DIR", "data/problems"), "directory of problem YAML files")
	name := fs.String("name", "", "problem name inside -dir")
	all := fs.Bool("all", false, "solve every problem inside -dir")
	responses := fs.String("responses", config.Get("RESPONSE_DIR", "data/responses"), "directory of distance-matrix response files")
	cacheKind := fs.String("cache", config.Get("MATRIX_CACHE", "none"), "matrix cache: file, redis or none")
	cacheDir := fs.String("cache-dir", config.Get("CACHE_DIR", "data/cache"), "directory of the file matrix cache")
	matrixOut := fs.String("matrix-out", "", "write the travel time matrix in brace text to this file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	matrixCache, closeCache, err := cache.Open(cache.Options{
		Kind:     *cacheKind,
		Dir:      *cacheDir,
		RedisURL: config.Get("REDIS_URL", ""),
		TTL:      config.GetDuration("MATRIX_CACHE_TTL", 0),
	})
	if err != nil {
		return err
	}
	defer closeCache()

	repo := problems.NewFileRepository(*dir)
	planner := services.NewPlanner(repo, services.NewMatrixLoader(distance.NewFileSource(*responses), matrixCache, *cacheKind))

	var results []*services.PlanResult
	switch {
	case *problemFile != "":
		p, err := problems.LoadFile(*problemFile)
		if err != nil {
			return err
		}
		res, err := planner.Plan(ctx, services.PlanRequest{Problem: p})
		if err != nil {
			return err
		}
		results = append(results, res)
	case *name != "":
		res, err := planner.Plan(ctx, services.PlanRequest{ProblemName: *name})
		if err != nil {
			return err
		}
		results = append(results, res)
	case *all:
		names, err := repo.ListProblems(ctx)
		if err != nil {
			return err
		}
		results, err = planner.PlanAll(ctx, names)
		if err != nil {
			return err
		}
	default:
		return errors.New("one of -problem, -name or -all is required")
	}

	if *matrixOut != "" {
		if len(results) != 1 {
			return errors.New("-matrix-out needs exactly one problem")
		}
		if err := os.WriteFile(*matrixOut, []byte(matrix.Serialize(results[0].Matrix)), 0o644); err != nil {
			return fmt.Errorf("write matrix: %w", err)
		}
	}

	for i, res := range results {
		if len(results) > 1 {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "== %s ==\n", res.Plan.Problem)
		}
		err := report.WriteText(out, res.Plan.Objective, res.Plan.Traces, res.Plan.Total, res.Assignment.Manager())
		if err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	return nil
}
