package services

import (
	"context"
	"errors"
	"fmt"
	"pdp-route-service/internal/domain"
	"pdp-route-service/internal/matrix"
	"pdp-route-service/internal/platform/metrics"
	"pdp-route-service/internal/platform/obs"
	"pdp-route-service/internal/ports"
	"pdp-route-service/internal/report"
	"pdp-route-service/internal/routing"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// PlanRequest names a stored problem or carries one inline.
// An inline problem takes precedence over the name.
type PlanRequest struct {
	ProblemName string
	Problem     *domain.Problem
}

// PlanResult is a solved, traced plan together with what produced it.
type PlanResult struct {
	Plan       domain.RoutePlan
	Problem    *domain.Problem
	Matrix     domain.TravelTimeMatrix
	Assignment *routing.Assignment
}

// Planner runs the problem -> matrix -> plan -> trace pipeline.
type Planner struct {
	Problems ports.ProblemRepository
	Matrices *MatrixLoader
}

func NewPlanner(problems ports.ProblemRepository, matrices *MatrixLoader) *Planner {
	return &Planner{Problems: problems, Matrices: matrices}
}

func (p *Planner) Plan(ctx context.Context, req PlanRequest) (_ *PlanResult, err error) {
	defer obs.Time(ctx, "plan.Routes")(&err)

	res, err := p.plan(ctx, req)
	switch {
	case err == nil:
		metrics.PlansTotal.WithLabelValues("solved").Inc()
		metrics.RouteCost.Observe(float64(res.Plan.Total))
	case errors.Is(err, ErrNoSolutionFound):
		metrics.PlansTotal.WithLabelValues("no_solution").Inc()
	default:
		metrics.PlansTotal.WithLabelValues("error").Inc()
	}
	return res, err
}

func (p *Planner) plan(ctx context.Context, req PlanRequest) (*PlanResult, error) {
	problem, err := p.resolveProblem(ctx, req)
	if err != nil {
		return nil, err
	}

	m, err := p.resolveMatrix(ctx, problem)
	if err != nil {
		return nil, fmt.Errorf("plan routes %q: %w", problem.Name, err)
	}

	assignment, err := PlanPickupDelivery(ctx, problem, m)
	if err != nil {
		return nil, fmt.Errorf("plan routes %q: %w", problem.Name, err)
	}

	traces, total, err := report.TraceAllRoutes(problem.Vehicles, assignment)
	if err != nil {
		return nil, fmt.Errorf("plan routes %q: %w", problem.Name, err)
	}

	return &PlanResult{
		Plan: domain.RoutePlan{
			PlanID:    uuid.NewString(),
			Problem:   problem.Name,
			Traces:    traces,
			Total:     total,
			Objective: assignment.Objective(),
		},
		Problem:    problem,
		Matrix:     m,
		Assignment: assignment,
	}, nil
}

func (p *Planner) resolveProblem(ctx context.Context, req PlanRequest) (*domain.Problem, error) {
	if req.Problem != nil {
		return req.Problem, nil
	}
	if req.ProblemName == "" {
		return nil, errors.New("plan routes: problem name or inline problem required")
	}
	if p.Problems == nil {
		return nil, fmt.Errorf("plan routes %q: no problem repository configured", req.ProblemName)
	}

	problem, err := p.Problems.GetProblem(ctx, req.ProblemName)
	if err != nil {
		return nil, fmt.Errorf("plan routes: %w", err)
	}
	return problem, nil
}

func (p *Planner) resolveMatrix(ctx context.Context, problem *domain.Problem) (domain.TravelTimeMatrix, error) {
	if len(problem.Matrix) > 0 {
		if err := problem.Matrix.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", matrix.ErrMalformedMatrix, err)
		}
		return problem.Matrix, nil
	}
	if problem.MatrixSource == "" {
		return nil, errors.New("problem has neither time_matrix nor matrix_source")
	}
	if p.Matrices == nil {
		return nil, fmt.Errorf("matrix source %q: no matrix loader configured", problem.MatrixSource)
	}
	return p.Matrices.Load(ctx, problem.MatrixSource)
}

type planOutcome struct {
	name   string
	result *PlanResult
	err    error
}

// PlanAll plans every named problem concurrently, at most five at a time,
// and returns the results sorted by problem name. The first failure cancels
// the remaining work.
func (p *Planner) PlanAll(ctx context.Context, names []string) ([]*PlanResult, error) {
	if len(names) == 0 {
		return []*PlanResult{}, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := make(chan struct{}, 5)
	outcomes := make(chan planOutcome, len(names))
	var wg sync.WaitGroup

	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			res, err := p.Plan(ctx, PlanRequest{ProblemName: name})
			if err != nil {
				outcomes <- planOutcome{name: name, err: err}
				cancel()
				return
			}
			outcomes <- planOutcome{name: name, result: res}
		}(name)
	}

	wg.Wait()
	close(outcomes)

	var firstErr error
	results := make([]*PlanResult, 0, len(names))
	for o := range outcomes {
		if o.err != nil {
			// context errors are fallout from cancel(); prefer the root cause
			if firstErr == nil || errors.Is(firstErr, context.Canceled) {
				firstErr = o.err
			}
			continue
		}
		results = append(results, o.result)
	}
	if firstErr != nil {
		return nil, firstErr
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Plan.Problem < results[j].Plan.Problem })
	return results, nil
}
