// Package postgres stores the progress snapshot as a single JSONB row.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/LevelBot_Go/internal/progress"
)

// BackendName labels this backend in logs and metrics
const BackendName = "postgres"

const (
	querySelectSnapshot = `SELECT data FROM progress_snapshots WHERE snapshot_key = $1`
	queryUpsertSnapshot = `
		INSERT INTO progress_snapshots (snapshot_key, data, saved_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (snapshot_key) DO UPDATE SET data = EXCLUDED.data, saved_at = EXCLUDED.saved_at`
)

// Querier is the subset of pgxpool.Pool the backend uses
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// SnapshotBackend implements progress.Backend. Every save replaces the row
// for its key in one statement, so readers see either the old or the new
// snapshot.
type SnapshotBackend struct {
	db  Querier
	key string
}

// NewSnapshotBackend creates a backend storing under key
func NewSnapshotBackend(db Querier, key string) *SnapshotBackend {
	return &SnapshotBackend{db: db, key: key}
}

// Name implements progress.Backend
func (b *SnapshotBackend) Name() string { return BackendName }

// Load implements progress.Backend
func (b *SnapshotBackend) Load(ctx context.Context) ([]byte, error) {
	var data []byte
	err := b.db.QueryRow(ctx, querySelectSnapshot, b.key).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %q: %w", b.key, err)
	}
	return data, nil
}

// Save implements progress.Backend
func (b *SnapshotBackend) Save(ctx context.Context, data []byte) error {
	if _, err := b.db.Exec(ctx, queryUpsertSnapshot, b.key, data); err != nil {
		return fmt.Errorf("failed to save snapshot %q: %w", b.key, err)
	}
	return nil
}

var _ progress.Backend = (*SnapshotBackend)(nil)
