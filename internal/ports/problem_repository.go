package ports

import (
	"context"
	"errors"
	"pdp-route-service/internal/domain"
)

var ErrProblemNotFound = errors.New("problem not found")

// Port: a boundary for retrieving Problem definitions from a data source.
type ProblemRepository interface {
	// Retrieve the names of all known problems.
	ListProblems(ctx context.Context) ([]string, error)
	// Retrieve a single problem by name, or ErrProblemNotFound.
	GetProblem(ctx context.Context, name string) (*domain.Problem, error)
}
