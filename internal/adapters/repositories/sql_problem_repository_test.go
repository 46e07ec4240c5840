package repositories

import (
	"context"
	"testing"

	"pdp-route-service/internal/domain"
	"pdp-route-service/internal/platform/db"
	"pdp-route-service/internal/ports"

	"github.com/stretchr/testify/require"
)

func TestSeedAndGetProblems(t *testing.T) {
	conn, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, InitSchema(conn))
	// idempotent
	require.NoError(t, InitSchema(conn))

	ctx := context.Background()
	problems := []*domain.Problem{
		{
			Name:              "zeta",
			Vehicles:          2,
			PickupsDeliveries: []domain.PickupDelivery{{Pickup: 1, Delivery: 2}},
			TimeWindows:       map[int]domain.TimeWindow{2: {Open: 5, Close: 50}},
			Matrix:            domain.TravelTimeMatrix{{0, 1, 2}, {1, 0, 3}, {2, 3, 0}},
		},
		{Name: "alpha", Vehicles: 1, MatrixSource: "alpha.json"},
	}
	require.NoError(t, SeedProblems(ctx, conn, SQLite, problems))

	repo := NewSQLProblemRepository(conn, SQLite)

	names, err := repo.ListProblems(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"alpha", "zeta"}, names)

	got, err := repo.GetProblem(ctx, "zeta")
	require.NoError(t, err)
	require.Equal(t, problems[0], got)

	// reseeding replaces the stored body
	problems[1].Vehicles = 4
	require.NoError(t, SeedProblems(ctx, conn, SQLite, problems[1:]))
	got, err = repo.GetProblem(ctx, "alpha")
	require.NoError(t, err)
	require.Equal(t, 4, got.Vehicles)

	_, err = repo.GetProblem(ctx, "missing")
	require.ErrorIs(t, err, ports.ErrProblemNotFound)
}

func TestSeedProblemsRejectsEmptyName(t *testing.T) {
	conn, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, InitSchema(conn))

	err = SeedProblems(context.Background(), conn, SQLite, []*domain.Problem{{Name: "  "}})
	require.Error(t, err)
}

func TestSeedProblemsRejectsDuplicateNames(t *testing.T) {
	conn, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, InitSchema(conn))
	ctx := context.Background()

	err = SeedProblems(ctx, conn, SQLite, []*domain.Problem{
		{Name: "demo", Vehicles: 1},
		{Name: " demo ", Vehicles: 2},
	})
	require.ErrorContains(t, err, `duplicate name "demo"`)

	repo := NewSQLProblemRepository(conn, SQLite)
	names, err := repo.ListProblems(ctx)
	require.NoError(t, err)
	require.Empty(t, names)
}

func TestRebind(t *testing.T) {
	q := "INSERT INTO t (a, b) VALUES (?, ?)"
	require.Equal(t, q, rebind(SQLite, q))
	require.Equal(t, "INSERT INTO t (a, b) VALUES ($1, $2)", rebind(Postgres, q))
}
