package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/osse101/LevelBot_Go/internal/domain"
	"github.com/osse101/LevelBot_Go/internal/progress"
)

func newTestBackend(t *testing.T, key string) *SnapshotBackend {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	ctx := context.Background()

	container, err := testcontainers.Run(ctx, "redis:7-alpine",
		testcontainers.WithExposedPorts("6379/tcp"),
		testcontainers.WithWaitStrategy(wait.ForListeningPort("6379/tcp").WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Skipf("Skipping integration test: redis not available: %v", err)
	}
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(container) })

	addr, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client, err := NewClient(ctx, DefaultConfig(addr))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return NewSnapshotBackend(client, key)
}

func TestSnapshotBackend_RoundTrip(t *testing.T) {
	backend := newTestBackend(t, domain.DefaultSnapshotKey)
	ctx := context.Background()

	data, err := backend.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, backend.Save(ctx, []byte(`{"u1":{"xp":100}}`)))
	data, err = backend.Load(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"u1":{"xp":100}}`, string(data))
}

func TestSnapshotBackend_StoreRestart(t *testing.T) {
	backend := newTestBackend(t, "restart")
	ctx := context.Background()

	store := progress.NewStore(backend)
	require.NoError(t, store.Load(ctx))
	_, _, err := store.Mutate("u1", time.Now(), func(rec *domain.ProgressRecord) error {
		rec.XP = 400
		rec.TotalMessages = 3
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, store.Close(ctx))

	reloaded := progress.NewStore(backend)
	require.NoError(t, reloaded.Load(ctx))
	rec, ok := reloaded.Get("u1")
	require.True(t, ok)
	assert.Equal(t, 2, rec.Level)
	assert.Equal(t, int64(3), rec.TotalMessages)
}
