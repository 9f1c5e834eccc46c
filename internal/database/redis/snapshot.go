// Package redis stores the progress snapshot under a single Redis key.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/osse101/LevelBot_Go/internal/progress"
)

// BackendName labels this backend in logs and metrics
const BackendName = "redis"

// Config holds Redis connection configuration
type Config struct {
	Addr         string
	Password     string
	DB           int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultConfig returns the connection defaults for addr
func DefaultConfig(addr string) Config {
	return Config{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

// NewClient connects to Redis and verifies the connection
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// SnapshotBackend implements progress.Backend with one SET per save
type SnapshotBackend struct {
	client redis.Cmdable
	key    string
}

// NewSnapshotBackend creates a backend storing under key
func NewSnapshotBackend(client redis.Cmdable, key string) *SnapshotBackend {
	return &SnapshotBackend{client: client, key: key}
}

// Name implements progress.Backend
func (b *SnapshotBackend) Name() string { return BackendName }

// Load implements progress.Backend
func (b *SnapshotBackend) Load(ctx context.Context) ([]byte, error) {
	data, err := b.client.Get(ctx, b.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %q: %w", b.key, err)
	}
	return data, nil
}

// Save implements progress.Backend
func (b *SnapshotBackend) Save(ctx context.Context, data []byte) error {
	if err := b.client.Set(ctx, b.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot %q: %w", b.key, err)
	}
	return nil
}

var _ progress.Backend = (*SnapshotBackend)(nil)
