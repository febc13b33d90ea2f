package db

import (
	"accounts/internal/db/migrations"
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v4/pgxpool"
)

// CreateTestPool connects to TEST_POSTGRESQL_URL with migrations applied.
// Tests are skipped when the variable is not set.
func CreateTestPool(t testing.TB) *pgxpool.Pool {
	t.Helper()
	connString := os.Getenv("TEST_POSTGRESQL_URL")
	if connString == "" {
		t.Skip("TEST_POSTGRESQL_URL is not set.")
	}
	if err := migrations.Apply(connString); err != nil {
		t.Fatalf("Could not apply DB migrations: %v.", err)
	}

	pool, err := pgxpool.Connect(context.Background(), connString)
	if err != nil {
		t.Fatalf("Could not connect to the database: %v.", err)
	}
	return pool
}

func TruncateTables(t testing.TB, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(), "TRUNCATE account CASCADE")
	if err != nil {
		t.Fatalf("Could not truncate DB tables: %v.", err)
	}
}
