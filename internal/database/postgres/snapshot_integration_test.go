package postgres

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/osse101/LevelBot_Go/internal/database"
	"github.com/osse101/LevelBot_Go/internal/domain"
	"github.com/osse101/LevelBot_Go/internal/progress"
)

var testDBConnString string

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()
	if !testing.Short() {
		testDBConnString, terminate = setupContainer(context.Background())
	}

	code := m.Run()

	if terminate != nil {
		terminate()
	}
	os.Exit(code)
}

func setupContainer(ctx context.Context) (string, func()) {
	// Handle potential panics from testcontainers
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in setupContainer: %v\n", r)
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return "", func() {}
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		_ = pgContainer.Terminate(ctx)
		return "", func() {}
	}

	return connStr, func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}
}

func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testDBConnString == "" {
		t.Skip("Skipping integration test: database not available")
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, testDBConnString, 5, time.Minute, 5*time.Minute)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.Migrate(ctx, pool))
	// idempotent
	require.NoError(t, database.Migrate(ctx, pool))
	return pool
}

func TestSnapshotBackend_RoundTrip(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	backend := NewSnapshotBackend(pool, "roundtrip")

	data, err := backend.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, data, "nothing saved yet")

	require.NoError(t, backend.Save(ctx, []byte(`{"u1":{"xp":100,"level":1}}`)))
	require.NoError(t, backend.Save(ctx, []byte(`{"u1":{"xp":250,"level":1}}`)))

	data, err = backend.Load(ctx)
	require.NoError(t, err)
	snap, err := progress.Decode(data)
	require.NoError(t, err)
	require.Contains(t, snap, "u1")
	assert.Equal(t, int64(250), snap["u1"].XP)
}

func TestSnapshotBackend_StoreRestart(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	backend := NewSnapshotBackend(pool, "restart")

	store := progress.NewStore(backend)
	require.NoError(t, store.Load(ctx))
	_, _, err := store.Mutate("u1", time.Now(), func(rec *domain.ProgressRecord) error {
		rec.XP = 2500
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, store.Flush(ctx))

	reloaded := progress.NewStore(backend)
	require.NoError(t, reloaded.Load(ctx))
	rec, ok := reloaded.Get("u1")
	require.True(t, ok)
	assert.Equal(t, int64(2500), rec.XP)
	assert.Equal(t, 5, rec.Level)
}
