package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const TEST_POSTGRES_IMAGE = "postgres:15-alpine"

// CreateTestPool connects to TEST_POSTGRESQL_URL when it is set, otherwise it starts
// a disposable Postgres container. The test is skipped if neither is available.
// Migrations are applied before the pool is returned.
func CreateTestPool(t testing.TB) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	connString := os.Getenv("TEST_POSTGRESQL_URL")
	if connString == "" {
		container, err := postgres.RunContainer(
			ctx,
			testcontainers.WithImage(TEST_POSTGRES_IMAGE),
			postgres.WithDatabase("ums"),
			postgres.WithUsername("ums"),
			postgres.WithPassword("ums"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second),
			),
		)
		if err != nil {
			t.Skipf("Postgres is not available: %v", err)
		}
		t.Cleanup(func() {
			if err := container.Terminate(context.Background()); err != nil {
				t.Logf("could not terminate postgres container: %v", err)
			}
		})
		connString, err = container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			t.Fatalf("could not get connection string: %v", err)
		}
	}

	if err := Migrate(connString); err != nil {
		t.Fatalf("%v", err)
	}

	pool, err := pgxpool.Connect(ctx, connString)
	if err != nil {
		t.Fatalf("could not connect to the database: %v", err)
	}
	return pool
}

func TruncateTables(pool *pgxpool.Pool) {
	_, err := pool.Exec(context.Background(), `TRUNCATE "user", session`)
	if err != nil {
		panic("Could not truncate DB tables.")
	}
}
