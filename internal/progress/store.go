// Package progress owns the in-memory progress records and their
// persistence.
//
// Every mutation runs under the store mutex, recomputes the level from XP and
// bumps a version counter. A single writer goroutine persists the state: it
// snapshots the records at write time and writes are serialized, so a newer
// snapshot is never replaced by an older one. Mutations never wait on I/O.
package progress

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/osse101/LevelBot_Go/internal/domain"
	"github.com/osse101/LevelBot_Go/internal/level"
	"github.com/osse101/LevelBot_Go/internal/logger"
	"github.com/osse101/LevelBot_Go/internal/metrics"
)

// MutateFunc changes a record in place. Returning an error discards the
// change, including the creation of a record that did not exist yet.
type MutateFunc func(rec *domain.ProgressRecord) error

// Option configures a Store
type Option func(*Store)

// WithRetryInterval sets how often a dirty store retries a failed write
func WithRetryInterval(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.retryInterval = d
		}
	}
}

// Store maps user id to progress record
type Store struct {
	backend       Backend
	retryInterval time.Duration

	mu      sync.Mutex
	records map[string]*domain.ProgressRecord
	version uint64
	closed  bool

	saveMu       sync.Mutex
	savedVersion atomic.Uint64

	signal  chan struct{}
	stop    chan struct{}
	done    chan struct{}
	started atomic.Bool
}

// NewStore creates an empty store persisting to backend
func NewStore(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend:       backend,
		retryInterval: DefaultRetryInterval,
		records:       make(map[string]*domain.ProgressRecord),
		signal:        make(chan struct{}, 1),
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory state with the backend's snapshot. Stored
// levels are recomputed from XP.
func (s *Store) Load(ctx context.Context) error {
	log := logger.FromContext(ctx)

	data, err := s.backend.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load snapshot from %s: %w", s.backend.Name(), err)
	}
	if data == nil {
		log.Info(LogMsgSnapshotMissing, "backend", s.backend.Name())
	}

	snap, err := Decode(data)
	if err != nil {
		return err
	}

	repaired := 0
	for id, rec := range snap {
		if rec.XP < 0 {
			rec.XP = 0
		}
		if lvl := level.For(rec.XP); lvl != rec.Level {
			log.Debug(LogMsgLevelRepaired, "user_id", id, "stored", rec.Level, "computed", lvl)
			rec.Level = lvl
			repaired++
		}
	}

	s.mu.Lock()
	s.records = snap
	s.version = 0
	s.mu.Unlock()
	s.savedVersion.Store(0)

	metrics.TrackedUsers.Set(float64(len(snap)))
	log.Info(LogMsgSnapshotLoaded, "backend", s.backend.Name(), "users", len(snap), "levels_repaired", repaired)
	return nil
}

// Get returns a copy of userID's record
func (s *Store) Get(userID string) (domain.ProgressRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[userID]
	if !ok {
		return domain.ProgressRecord{}, false
	}
	return *rec, true
}

// GetOrCreate returns userID's record, creating a zero record first seen at now
func (s *Store) GetOrCreate(userID string, now time.Time) (domain.ProgressRecord, error) {
	_, after, err := s.Mutate(userID, now, nil)
	return after, err
}

// Mutate applies fn to userID's record under the store lock, creating the
// record if needed. The level is recomputed after fn. It returns copies of the
// record before and after the change. A nil fn only ensures the record exists.
func (s *Store) Mutate(userID string, now time.Time, fn MutateFunc) (before, after domain.ProgressRecord, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return before, after, domain.ErrStoreClosed
	}

	existing, ok := s.records[userID]
	if !ok {
		existing = domain.NewProgressRecord(now)
	}
	before = *existing

	if fn == nil {
		if !ok {
			s.commit(userID, existing)
		}
		return before, *existing, nil
	}

	next := existing.Clone()
	if err := fn(next); err != nil {
		return before, before, err
	}
	next.Level = level.For(next.XP)

	s.commit(userID, next)
	return before, *next, nil
}

// commit must be called with mu held
func (s *Store) commit(userID string, rec *domain.ProgressRecord) {
	if _, ok := s.records[userID]; !ok {
		metrics.TrackedUsers.Inc()
	}
	s.records[userID] = rec
	s.version++
	s.requestSave()
}

func (s *Store) requestSave() {
	select {
	case s.signal <- struct{}{}:
	default:
	}
}

// UserIDs returns the ids known at call time
func (s *Store) UserIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	return ids
}

// Len returns the number of records
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Ranked returns up to n users ordered by XP descending. Ties keep the
// earlier member first. n <= 0 returns everyone.
func (s *Store) Ranked(n int) []domain.UserProgress {
	s.mu.Lock()
	ranked := make([]domain.UserProgress, 0, len(s.records))
	for id, rec := range s.records {
		ranked = append(ranked, domain.UserProgress{UserID: id, Record: *rec})
	}
	s.mu.Unlock()

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Record.XP != b.Record.XP {
			return a.Record.XP > b.Record.XP
		}
		if a.Record.JoinedAt != b.Record.JoinedAt {
			return a.Record.JoinedAt < b.Record.JoinedAt
		}
		return a.UserID < b.UserID
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Dirty reports whether mutations exist that have not been written yet
func (s *Store) Dirty() bool {
	s.mu.Lock()
	v := s.version
	s.mu.Unlock()
	return v != s.savedVersion.Load()
}

// Version returns the mutation counter
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

func (s *Store) snapshot() (Snapshot, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := make(Snapshot, len(s.records))
	for id, rec := range s.records {
		snap[id] = rec.Clone()
	}
	return snap, s.version
}
