package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/LevelBot_Go/internal/config"
	"github.com/osse101/LevelBot_Go/internal/database"
	"github.com/osse101/LevelBot_Go/internal/database/postgres"
	redisstore "github.com/osse101/LevelBot_Go/internal/database/redis"
	"github.com/osse101/LevelBot_Go/internal/progress"
	"github.com/osse101/LevelBot_Go/internal/server"
)

// Storage is the selected snapshot backend plus the connection behind it
type Storage struct {
	Backend progress.Backend
	Checks  []server.ReadinessCheck
	closer  func() error
}

// Close releases the backend's connection, if any
func (s *Storage) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

// OpenStorage connects the backend named by cfg.Backend. The postgres
// backend applies pending migrations first.
func OpenStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	var st *Storage

	switch cfg.Backend {
	case config.BackendFile:
		st = &Storage{Backend: progress.NewFileBackend(cfg.SnapshotFile)}

	case config.BackendPostgres:
		pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
		}
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
		}
		slog.Info(LogMsgMigrationsDone)
		st = &Storage{
			Backend: postgres.NewSnapshotBackend(pool, cfg.SnapshotKey),
			Checks:  []server.ReadinessCheck{{Name: ReadinessCheckStore, Check: pool.Ping}},
			closer: func() error {
				pool.Close()
				return nil
			},
		}

	case config.BackendRedis:
		rcfg := redisstore.DefaultConfig(cfg.RedisAddr)
		rcfg.Password = cfg.RedisPassword
		rcfg.DB = cfg.RedisDB
		client, err := redisstore.NewClient(ctx, rcfg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnRedis, err)
		}
		st = &Storage{
			Backend: redisstore.NewSnapshotBackend(client, cfg.SnapshotKey),
			Checks: []server.ReadinessCheck{{Name: ReadinessCheckStore, Check: func(ctx context.Context) error {
				return client.Ping(ctx).Err()
			}}},
			closer: client.Close,
		}

	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownBackend, cfg.Backend)
	}

	slog.Info(LogMsgStorageSelected, "backend", st.Backend.Name())
	return st, nil
}
