package progress

import (
	"context"
	"time"

	"github.com/osse101/LevelBot_Go/internal/logger"
	"github.com/osse101/LevelBot_Go/internal/metrics"
)

// Start launches the writer goroutine. It returns immediately.
func (s *Store) Start(ctx context.Context) {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	logger.FromContext(ctx).Info(LogMsgPersisterStarted, "backend", s.backend.Name())
	go s.run(ctx)
}

func (s *Store) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.retryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ctx.Done():
			return
		case <-s.signal:
			_ = s.save(ctx)
		case <-ticker.C:
			if s.Dirty() {
				_ = s.save(ctx)
			}
		}
	}
}

// Flush writes the current state synchronously if anything changed
func (s *Store) Flush(ctx context.Context) error {
	logger.FromContext(ctx).Debug(LogMsgFlushing)
	return s.save(ctx)
}

// Close stops the writer, rejects further mutations and flushes.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	alreadyClosed := s.closed
	s.closed = true
	s.mu.Unlock()

	if !alreadyClosed && s.started.Load() {
		close(s.stop)
		select {
		case <-s.done:
		case <-ctx.Done():
		}
		logger.FromContext(ctx).Info(LogMsgPersisterStopped)
	}
	return s.Flush(ctx)
}

// save writes one snapshot. Writes are serialized by saveMu and the snapshot
// is taken after acquiring it, so the newest state always lands last.
func (s *Store) save(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	snap, version := s.snapshot()
	if version == s.savedVersion.Load() {
		return nil
	}

	log := logger.FromContext(ctx)
	name := s.backend.Name()

	data, err := Encode(snap)
	if err != nil {
		metrics.PersistenceWrites.WithLabelValues(name, metrics.ResultFailure).Inc()
		log.Error(LogMsgSnapshotSaveFailed, "backend", name, "error", err)
		return err
	}

	start := time.Now()
	err = s.backend.Save(ctx, data)
	metrics.PersistenceDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.PersistenceWrites.WithLabelValues(name, metrics.ResultFailure).Inc()
		log.Warn(LogMsgSnapshotSaveFailed, "backend", name, "version", version, "error", err)
		return err
	}

	s.savedVersion.Store(version)
	metrics.PersistenceWrites.WithLabelValues(name, metrics.ResultSuccess).Inc()
	log.Debug(LogMsgSnapshotSaved, "backend", name, "version", version, "users", len(snap))
	return nil
}
