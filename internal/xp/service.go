// Package xp implements the award pipeline: validate an amount, apply it to
// the user's record together with any counter updates, recompute the level
// and describe the resulting side effects.
//
// Side effects are returned as events and run by an Executor, so a failed
// announcement or role grant can never undo XP that was already granted.
package xp

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/LevelBot_Go/internal/domain"
	"github.com/osse101/LevelBot_Go/internal/event"
	"github.com/osse101/LevelBot_Go/internal/level"
	"github.com/osse101/LevelBot_Go/internal/logger"
	"github.com/osse101/LevelBot_Go/internal/progress"
	"github.com/osse101/LevelBot_Go/internal/reward"
)

// Store is the part of progress.Store the pipeline mutates through
type Store interface {
	Mutate(userID string, now time.Time, fn progress.MutateFunc) (domain.ProgressRecord, domain.ProgressRecord, error)
}

// Service defines the award pipeline
type Service interface {
	// Award adds amount XP to userID. amount must be positive.
	Award(ctx context.Context, userID string, amount int64, source string, opts ...AwardOption) (*AwardResult, error)

	// AddVoiceTime credits voice time without any XP
	AddVoiceTime(ctx context.Context, userID string, d time.Duration) error

	// EnsureUser creates userID's record, first seen at now, if it does not exist
	EnsureUser(ctx context.Context, userID string, now time.Time) (domain.ProgressRecord, error)

	// Progress returns the level progress of an XP total
	Progress(totalXP int64) level.Progress
}

// AwardResult describes a committed award
type AwardResult struct {
	UserID    string
	Amount    int64
	Source    string
	Before    domain.ProgressRecord
	After     domain.ProgressRecord
	LeveledUp bool

	// Effects are to be handed to an Executor
	Effects []event.Event
}

type service struct {
	store    Store
	resolver *reward.Resolver
	now      func() time.Time
}

// NewService creates a new award pipeline
func NewService(store Store, resolver *reward.Resolver) Service {
	return &service{
		store:    store,
		resolver: resolver,
		now:      time.Now,
	}
}

// Award runs the pipeline. The record fetch, XP change, counter updates and
// level recompute happen in one store mutation.
func (s *service) Award(ctx context.Context, userID string, amount int64, source string, opts ...AwardOption) (*AwardResult, error) {
	log := logger.FromContext(ctx)

	if amount <= 0 {
		log.Warn(LogMsgInvalidAward, "user_id", userID, "amount", amount, "source", source)
		return nil, fmt.Errorf("%w: amount %d from %s", domain.ErrInvalidAward, amount, source)
	}

	o := awardOptions{now: s.now()}
	for _, opt := range opts {
		opt(&o)
	}

	before, after, err := s.store.Mutate(userID, o.now, func(rec *domain.ProgressRecord) error {
		if o.dailyClaim {
			if !rec.DailyBonusDue(o.now) {
				return domain.ErrDailyNotDue
			}
			rec.LastDailyBonusAt = o.now.UnixMilli()
		}
		if o.countMessage {
			rec.TotalMessages++
		}
		if o.voiceTime > 0 {
			rec.VoiceTimeMs += o.voiceTime.Milliseconds()
		}
		rec.XP += amount
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to apply award: %w", err)
	}

	result := &AwardResult{
		UserID:    userID,
		Amount:    amount,
		Source:    source,
		Before:    before,
		After:     after,
		LeveledUp: after.Level > before.Level,
	}
	result.Effects = append(result.Effects, event.NewXPAwardedEvent(userID, amount, source, after.XP, after.Level))

	log.Debug(LogMsgAwarded, "user_id", userID, "amount", amount, "source", source, "xp", after.XP, "level", after.Level)

	if result.LeveledUp {
		crossed := s.resolver.Crossed(before.Level, after.Level)
		result.Effects = append(result.Effects,
			event.NewLevelUpEvent(userID, before.Level, after.Level, after.XP, source, crossed))
		log.Info(LogMsgLeveledUp, "user_id", userID, "old_level", before.Level, "new_level", after.Level, "source", source)
	}

	return result, nil
}

// AddVoiceTime credits a closed voice session that earned no XP
func (s *service) AddVoiceTime(ctx context.Context, userID string, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	_, _, err := s.store.Mutate(userID, s.now(), func(rec *domain.ProgressRecord) error {
		rec.VoiceTimeMs += d.Milliseconds()
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to add voice time: %w", err)
	}
	logger.FromContext(ctx).Debug(LogMsgVoiceTimeAdded, "user_id", userID, "ms", d.Milliseconds())
	return nil
}

// EnsureUser implements Service
func (s *service) EnsureUser(_ context.Context, userID string, now time.Time) (domain.ProgressRecord, error) {
	_, rec, err := s.store.Mutate(userID, now, nil)
	return rec, err
}

// Progress implements Service
func (s *service) Progress(totalXP int64) level.Progress {
	return level.ProgressFor(totalXP)
}
